// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package markdown

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pdiddy/docs-markdown/pkg/types"
)

// hardBreak replaces the vertical tab Docs uses for a line break inside a
// paragraph.
const hardBreak = "<br />"

// blankRun matches three or more newlines with only whitespace between them.
// \p{Z} covers the non-breaking and other Unicode spaces Docs emits.
var blankRun = regexp.MustCompile(`\n[\s\p{Z}]*\n[\s\p{Z}]*\n`)

// Convert renders doc as Markdown: front matter followed by every body block
// in reading order, normalized by Normalize.
func Convert(doc *types.Document) string {
	var b strings.Builder
	b.WriteString(FrontMatter(doc))

	prevList := false
	for _, blk := range doc.Body {
		out := RenderBlock(blk, doc)
		if out == "" {
			continue
		}
		list := isListItem(blk)
		if prevList && !list {
			// A list only ends at a blank line.
			b.WriteString("\n")
		}
		b.WriteString(strings.ReplaceAll(out, "\v", hardBreak))
		prevList = list
	}
	b.WriteString("\n")

	return Normalize(b.String())
}

// FrontMatter returns the metadata header that starts every converted
// document.
func FrontMatter(doc *types.Document) string {
	return fmt.Sprintf("---\ntitle: %s\ndocumentId: %s\nrevisionId: %s\n---\n\n",
		doc.Title, doc.DocumentID, doc.RevisionID)
}

// Normalize collapses runs of blank lines to a single blank line and then
// removes blank lines between list items. Normalize(Normalize(s)) ==
// Normalize(s).
func Normalize(text string) string {
	return CollapseListGaps(blankRun.ReplaceAllString(text, "\n\n"))
}

func isListItem(b types.Block) bool {
	p, ok := b.(*types.Paragraph)
	return ok && p.List != nil
}
