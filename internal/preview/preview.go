// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package preview renders exported Markdown for the terminal.
package preview

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/pdiddy/docs-markdown/pkg/types"
)

const (
	defaultStyle    = "dark"
	defaultWordWrap = 80
)

// Render writes md to w styled for a terminal. A leading front matter block
// is shown as a one-line header instead of being rendered as Markdown.
func Render(w io.Writer, md string, cfg types.PreviewConfig) error {
	style := cfg.Style
	if style == "" {
		style = defaultStyle
	}
	wrap := cfg.WordWrap
	if wrap <= 0 {
		wrap = defaultWordWrap
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		return fmt.Errorf("creating renderer: %w", err)
	}

	fields, body := SplitFrontMatter(md)
	if len(fields) > 0 {
		body = fmt.Sprintf("> **%s** | %s | revision %s\n\n%s",
			fields["title"], fields["documentId"], fields["revisionId"], body)
	}

	out, err := r.Render(body)
	if err != nil {
		return fmt.Errorf("rendering markdown: %w", err)
	}
	_, err = io.WriteString(w, out)
	return err
}

// SplitFrontMatter separates a leading "---" delimited block of "key: value"
// lines from the rest of md. Without one, fields is nil and body is md.
func SplitFrontMatter(md string) (fields map[string]string, body string) {
	rest, ok := strings.CutPrefix(md, "---\n")
	if !ok {
		return nil, md
	}
	head, tail, ok := strings.Cut(rest, "\n---\n")
	if !ok {
		return nil, md
	}

	fields = make(map[string]string)
	for _, line := range strings.Split(head, "\n") {
		k, v, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		fields[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	return fields, strings.TrimLeft(tail, "\n")
}
