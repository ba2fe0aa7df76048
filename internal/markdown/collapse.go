// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package markdown

import "strings"

// firstCollapsibleLine skips the opening front matter lines.
const firstCollapsibleLine = 3

// CollapseListGaps removes each blank line that sits between two list item
// lines, so Markdown renderers keep the items in one list.
func CollapseListGaps(text string) string {
	lines := strings.Split(text, "\n")

	drop := make(map[int]bool)
	for i := firstCollapsibleLine; i < len(lines)-1; i++ {
		if strings.TrimSpace(lines[i]) != "" {
			continue
		}
		if isListLine(lines[i-1]) && isListLine(lines[i+1]) {
			drop[i] = true
		}
	}
	if len(drop) == 0 {
		return text
	}

	kept := make([]string, 0, len(lines)-len(drop))
	for i, line := range lines {
		if !drop[i] {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}

func isListLine(line string) bool {
	t := strings.TrimSpace(line)
	return strings.HasPrefix(t, orderedMarker) || strings.HasPrefix(t, unorderedMarker)
}
