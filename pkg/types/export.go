// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ExportStatus indicates the outcome of exporting one document.
type ExportStatus string

const (
	ExportDone    ExportStatus = "exported"
	ExportSkipped ExportStatus = "skipped"
	ExportFailed  ExportStatus = "failed"
)

// ExportTarget names a document to export and an optional output filename
// overriding the title-derived one.
type ExportTarget struct {
	DocumentID string `json:"id" yaml:"id"`
	FileName   string `json:"filename,omitempty" yaml:"filename,omitempty"`
}

// ExportRecord is the ledger entry written after a successful export.
type ExportRecord struct {
	// DocumentID is the Docs document identifier.
	DocumentID string `json:"document_id" yaml:"document_id"`

	// Title is the document title at export time.
	Title string `json:"title" yaml:"title"`

	// RevisionID is the document revision that was rendered.
	RevisionID string `json:"revision_id" yaml:"revision_id"`

	// Path is the Markdown file written.
	Path string `json:"path" yaml:"path"`

	// ContentHash is the hex BLAKE3 hash of the written Markdown.
	ContentHash string `json:"content_hash" yaml:"content_hash"`

	// ExportedAt is when the file was written.
	ExportedAt time.Time `json:"exported_at" yaml:"exported_at"`
}
