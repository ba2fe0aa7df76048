// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the document model and configuration shared by the
// conversion core, the document source, and the CLI.
package types

import "strings"

// StyleType is a paragraph's named style (Docs API namedStyleType).
type StyleType string

const (
	StyleNormal   StyleType = "NORMAL_TEXT"
	StyleTitle    StyleType = "TITLE"
	StyleSubtitle StyleType = "SUBTITLE"
	StyleHeading1 StyleType = "HEADING_1"
	StyleHeading2 StyleType = "HEADING_2"
	StyleHeading3 StyleType = "HEADING_3"
	StyleHeading4 StyleType = "HEADING_4"
	StyleHeading5 StyleType = "HEADING_5"
	StyleHeading6 StyleType = "HEADING_6"
)

// HeadingLevel returns 1-6 for HEADING_n styles and 0 for everything else.
func (s StyleType) HeadingLevel() int {
	rest, ok := strings.CutPrefix(string(s), "HEADING_")
	if !ok || len(rest) != 1 || rest[0] < '1' || rest[0] > '6' {
		return 0
	}
	return int(rest[0] - '0')
}

// IsHeading reports whether paragraphs in this style render as a single
// heading line: title, subtitle, or HEADING_1..HEADING_6.
func (s StyleType) IsHeading() bool {
	return s == StyleTitle || s == StyleSubtitle || s.HeadingLevel() > 0
}

// Document is a fetched document snapshot. The conversion core reads it and
// never modifies it.
type Document struct {
	Title      string `json:"title" yaml:"title"`
	DocumentID string `json:"document_id" yaml:"document_id"`
	RevisionID string `json:"revision_id" yaml:"revision_id"`

	// Body holds the top-level blocks in reading order.
	Body []Block `json:"-" yaml:"-"`

	// Lists maps a list id to its definition.
	Lists map[string]ListDefinition `json:"-" yaml:"-"`

	// InlineObjects maps an inline object id to its image.
	InlineObjects map[string]ImageReference `json:"-" yaml:"-"`
}

// Block is a top-level structural unit: *Paragraph or *Table.
type Block interface {
	isBlock()
}

// Paragraph is a run of inline elements with an optional named style and
// optional list membership.
type Paragraph struct {
	Elements []InlineElement
	Style    StyleType
	List     *ListMembership
}

func (*Paragraph) isBlock() {}

// ListMembership places a paragraph inside a list.
type ListMembership struct {
	ListID       string
	NestingLevel int
}

// Table is a grid of cells; each cell holds paragraphs.
type Table struct {
	Rows []TableRow
}

func (*Table) isBlock() {}

// TableRow is one row of a table.
type TableRow struct {
	Cells []TableCell
}

// TableCell is one cell of a table row.
type TableCell struct {
	Content []*Paragraph
}

// InlineElement is a unit of a paragraph's text flow: TextRun, ImageRef, or
// OtherInline.
type InlineElement interface {
	isInline()
}

// TextStyle carries the emphasis and link attributes of a text run.
type TextStyle struct {
	Bold    bool
	Italic  bool
	LinkURL string
}

// TextRun is styled text.
type TextRun struct {
	Content string
	Style   TextStyle
}

func (TextRun) isInline() {}

// ImageRef points at an entry of Document.InlineObjects.
type ImageRef struct {
	InlineObjectID string
}

func (ImageRef) isInline() {}

// OtherInline is any paragraph element the converter does not render
// (page breaks, footnote references, equations, ...). Kind names it.
type OtherInline struct {
	Kind string
}

func (OtherInline) isInline() {}

// NestingLevel describes list markers at one depth.
type NestingLevel struct {
	GlyphFormat string
	GlyphType   string
	GlyphSymbol string
}

// ListDefinition holds the per-depth marker formats of a list.
type ListDefinition struct {
	NestingLevels []NestingLevel
}

// ImageReference is a resolved inline image.
type ImageReference struct {
	ContentURI string
}
