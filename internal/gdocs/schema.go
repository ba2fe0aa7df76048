// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package gdocs

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	docs "google.golang.org/api/docs/v1"

	"github.com/pdiddy/docs-markdown/pkg/types"
)

// Decode reads a saved Docs API v1 document resource (documents.get JSON)
// and maps it onto the document model.
func Decode(r io.Reader) (*types.Document, error) {
	var raw docs.Document
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decoding document JSON: %w", err)
	}
	return toDocument(&raw), nil
}

// DecodeFile reads a saved Docs API response from path.
func DecodeFile(path string) (*types.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	doc, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// toDocument maps an API document onto the model. Structural elements other
// than paragraphs and tables (section breaks, tables of contents) are
// dropped.
func toDocument(d *docs.Document) *types.Document {
	doc := &types.Document{
		Title:         d.Title,
		DocumentID:    d.DocumentId,
		RevisionID:    d.RevisionId,
		Lists:         make(map[string]types.ListDefinition, len(d.Lists)),
		InlineObjects: make(map[string]types.ImageReference, len(d.InlineObjects)),
	}
	if d.Body != nil {
		doc.Body = toBlocks(d.Body.Content)
	}

	for id, l := range d.Lists {
		var def types.ListDefinition
		if l.ListProperties != nil {
			for _, lvl := range l.ListProperties.NestingLevels {
				if lvl == nil {
					continue
				}
				def.NestingLevels = append(def.NestingLevels, types.NestingLevel{
					GlyphFormat: lvl.GlyphFormat,
					GlyphType:   lvl.GlyphType,
					GlyphSymbol: lvl.GlyphSymbol,
				})
			}
		}
		doc.Lists[id] = def
	}

	for id, obj := range d.InlineObjects {
		props := obj.InlineObjectProperties
		if props == nil || props.EmbeddedObject == nil || props.EmbeddedObject.ImageProperties == nil {
			continue
		}
		doc.InlineObjects[id] = types.ImageReference{ContentURI: props.EmbeddedObject.ImageProperties.ContentUri}
	}

	return doc
}

func toBlocks(content []*docs.StructuralElement) []types.Block {
	var blocks []types.Block
	for _, el := range content {
		switch {
		case el == nil:
		case el.Paragraph != nil:
			blocks = append(blocks, toParagraph(el.Paragraph))
		case el.Table != nil:
			blocks = append(blocks, toTable(el.Table))
		}
	}
	return blocks
}

func toParagraph(p *docs.Paragraph) *types.Paragraph {
	out := &types.Paragraph{Elements: make([]types.InlineElement, 0, len(p.Elements))}
	if p.ParagraphStyle != nil {
		out.Style = types.StyleType(p.ParagraphStyle.NamedStyleType)
	}
	if p.Bullet != nil && p.Bullet.ListId != "" {
		out.List = &types.ListMembership{
			ListID:       p.Bullet.ListId,
			NestingLevel: int(p.Bullet.NestingLevel),
		}
	}

	for _, el := range p.Elements {
		if el == nil {
			continue
		}
		switch {
		case el.TextRun != nil:
			out.Elements = append(out.Elements, toTextRun(el.TextRun))
		case el.InlineObjectElement != nil && el.InlineObjectElement.InlineObjectId != "":
			out.Elements = append(out.Elements, types.ImageRef{InlineObjectID: el.InlineObjectElement.InlineObjectId})
		default:
			out.Elements = append(out.Elements, types.OtherInline{Kind: kind(el)})
		}
	}
	return out
}

func toTextRun(r *docs.TextRun) types.TextRun {
	run := types.TextRun{Content: r.Content}
	if st := r.TextStyle; st != nil {
		run.Style.Bold = st.Bold
		run.Style.Italic = st.Italic
		if st.Link != nil {
			run.Style.LinkURL = st.Link.Url
		}
	}
	return run
}

// kind names an element the converter does not render.
func kind(e *docs.ParagraphElement) string {
	switch {
	case e.AutoText != nil:
		return "autoText"
	case e.PageBreak != nil:
		return "pageBreak"
	case e.ColumnBreak != nil:
		return "columnBreak"
	case e.FootnoteReference != nil:
		return "footnoteReference"
	case e.HorizontalRule != nil:
		return "horizontalRule"
	case e.Equation != nil:
		return "equation"
	case e.Person != nil:
		return "person"
	case e.RichLink != nil:
		return "richLink"
	}
	return "unknown"
}

// toTable keeps only paragraphs inside cells; nested tables are dropped.
func toTable(t *docs.Table) *types.Table {
	out := &types.Table{Rows: make([]types.TableRow, 0, len(t.TableRows))}
	for _, row := range t.TableRows {
		if row == nil {
			continue
		}
		r := types.TableRow{Cells: make([]types.TableCell, 0, len(row.TableCells))}
		for _, c := range row.TableCells {
			var cell types.TableCell
			if c != nil {
				for _, el := range c.Content {
					if el != nil && el.Paragraph != nil {
						cell.Content = append(cell.Content, toParagraph(el.Paragraph))
					}
				}
			}
			r.Cells = append(r.Cells, cell)
		}
		out.Rows = append(out.Rows, r)
	}
	return out
}
