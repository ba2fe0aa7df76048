// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package markdown

import (
	"strings"

	"github.com/pdiddy/docs-markdown/pkg/types"
)

const (
	orderedMarker   = "1. "
	unorderedMarker = "- "
	listIndent      = "  "
)

// orderedGlyphs are the level-0 glyph formats of numbered lists.
var orderedGlyphs = map[string]bool{
	"%0.":  true,
	"[%0]": true,
}

// RenderBlock renders one top-level block of doc. doc supplies the list
// definitions and inline objects the block refers to.
func RenderBlock(b types.Block, doc *types.Document) string {
	switch blk := b.(type) {
	case *types.Paragraph:
		return renderParagraph(blk, doc)
	case *types.Table:
		return renderTable(blk, doc)
	default:
		return ""
	}
}

func renderParagraph(p *types.Paragraph, doc *types.Document) string {
	var b strings.Builder
	if p.List != nil {
		b.WriteString(listMarker(*p.List, lists(doc)))
	}
	b.WriteString(paragraphText(p, doc))

	out := b.String()
	if p.List == nil {
		return out + "\n\n"
	}
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	return out
}

// listMarker returns the indentation and marker for a list item. Numbered
// lists always use "1."; Markdown renderers renumber.
func listMarker(m types.ListMembership, defs map[string]types.ListDefinition) string {
	padding := strings.Repeat(listIndent, max(m.NestingLevel, 0))
	def, ok := defs[m.ListID]
	if ok && len(def.NestingLevels) > 0 && orderedGlyphs[def.NestingLevels[0].GlyphFormat] {
		return padding + orderedMarker
	}
	return padding + unorderedMarker
}

// paragraphText renders a paragraph's inline content without list marker or
// line termination.
func paragraphText(p *types.Paragraph, doc *types.Document) string {
	if p.Style.IsHeading() {
		return headingText(p, doc)
	}

	objects := inlineObjects(doc)
	var b strings.Builder
	for _, el := range p.Elements {
		if run, ok := el.(types.TextRun); ok && (run.Content == "" || run.Content == "\n") {
			continue
		}
		b.WriteString(RenderInline(el, p.Style, objects))
	}
	return b.String()
}

// headingText folds every text run of a heading paragraph into one line and
// formats it once. Images in the paragraph follow the heading text.
func headingText(p *types.Paragraph, doc *types.Document) string {
	objects := inlineObjects(doc)
	var text, images strings.Builder
	hasText := false
	for _, el := range p.Elements {
		switch e := el.(type) {
		case types.TextRun:
			hasText = true
			text.WriteString(RenderInline(e, p.Style, objects))
		case types.ImageRef:
			images.WriteString(RenderInline(e, p.Style, objects))
		}
	}

	// A heading with text runs always gets its marker, even when blank.
	if !hasText {
		return images.String()
	}
	heading := strings.TrimSuffix(text.String(), "\n")
	return formatHeading(p.Style, heading) + images.String()
}

func formatHeading(style types.StyleType, text string) string {
	switch style {
	case types.StyleTitle:
		return "# " + text
	case types.StyleSubtitle:
		return "_" + strings.TrimSpace(text) + "_"
	}
	// HEADING_1 is "##": TITLE owns the single hash.
	return strings.Repeat("#", style.HeadingLevel()+1) + " " + text
}

// renderTable emits a blank header row sized by the first row, then every row
// (the first included) as data. Each paragraph of each cell becomes one
// entry, so a multi-paragraph cell spans several columns.
func renderTable(t *types.Table, doc *types.Document) string {
	if len(t.Rows) == 0 {
		return ""
	}
	cols := len(t.Rows[0].Cells)

	var b strings.Builder
	b.WriteString(strings.Repeat("|", cols+1))
	b.WriteString("\n|")
	for range cols {
		b.WriteString("-|")
	}
	b.WriteString("\n")

	for _, row := range t.Rows {
		var entries []string
		for _, cell := range row.Cells {
			for _, p := range cell.Content {
				entries = append(entries, strings.TrimSpace(paragraphText(p, doc)))
			}
		}
		b.WriteString("| " + strings.Join(entries, " | ") + " |\n")
	}
	b.WriteString("\n")
	return b.String()
}

func lists(doc *types.Document) map[string]types.ListDefinition {
	if doc == nil {
		return nil
	}
	return doc.Lists
}

func inlineObjects(doc *types.Document) map[string]types.ImageReference {
	if doc == nil {
		return nil
	}
	return doc.InlineObjects
}
