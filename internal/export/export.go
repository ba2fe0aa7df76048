// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export fetches documents, renders them to Markdown, and writes the
// result to disk. Batches run sequentially, report per-document status lines,
// and continue after individual failures.
package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"

	"github.com/pdiddy/docs-markdown/internal/gdocs"
	"github.com/pdiddy/docs-markdown/internal/ledger"
	"github.com/pdiddy/docs-markdown/internal/markdown"
	"github.com/pdiddy/docs-markdown/pkg/types"
)

// ErrMissingTitle is returned when a document has no title and the target
// names no file.
var ErrMissingTitle = errors.New("title not found")

// Source retrieves a document by id. *gdocs.Client implements it.
type Source interface {
	Fetch(ctx context.Context, documentID string) (*types.Document, error)
}

// Ledger remembers what was exported. *ledger.Ledger implements it. A nil
// Ledger disables skip detection.
type Ledger interface {
	Lookup(ctx context.Context, documentID string) (types.ExportRecord, bool, error)
	Record(ctx context.Context, rec types.ExportRecord) error
}

// BatchResult holds the outcome of a batch export run.
type BatchResult struct {
	Exported int
	Skipped  int
	Failed   int
}

// Total returns the total number of documents processed.
func (r BatchResult) Total() int {
	return r.Exported + r.Skipped + r.Failed
}

// HasFailures reports whether any document failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// ParseTarget splits a "documentId[:filename]" argument. Surrounding
// whitespace is dropped; an empty filename means the title is used.
func ParseTarget(arg string) types.ExportTarget {
	id, name, _ := strings.Cut(strings.TrimSpace(arg), ":")
	return types.ExportTarget{
		DocumentID: strings.TrimSpace(id),
		FileName:   strings.TrimSpace(name),
	}
}

// FileName returns the output file name for doc: the target's override when
// given, otherwise "<title>.md". Path separators are replaced with "-" and the
// result is NFC-normalized.
func FileName(target types.ExportTarget, doc *types.Document) (string, error) {
	name := target.FileName
	if name == "" {
		title := strings.TrimSpace(doc.Title)
		if title == "" {
			return "", ErrMissingTitle
		}
		name = title + ".md"
	}

	name = strings.NewReplacer("/", "-", "\\", "-", "\x00", "").Replace(name)
	name = norm.NFC.String(name)
	if name == "." || name == ".." {
		return "", fmt.Errorf("invalid file name %q", name)
	}
	return name, nil
}

// WriteFile writes content to path through a temporary file in the same
// directory, renaming it into place on success.
func WriteFile(path, content string) error {
	tmpFile, err := os.CreateTemp(filepath.Dir(path), ".export-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	_, writeErr := io.WriteString(tmpFile, content)
	closeErr := tmpFile.Close()
	if writeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing %s: %w", path, writeErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Chmod(tmpPath, 0o644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// ExportDocument fetches one document, converts it, and writes it under
// cfg.OutputDir. When the ledger shows the same revision and content at the
// same path and that file still exists, the write is skipped unless
// cfg.Force is set. Successful writes are recorded in the ledger.
func ExportDocument(ctx context.Context, src Source, l Ledger, target types.ExportTarget, cfg types.ExportConfig, w io.Writer) (types.ExportStatus, error) {
	if target.DocumentID == "" {
		return types.ExportFailed, fmt.Errorf("empty document id")
	}

	doc, err := src.Fetch(ctx, target.DocumentID)
	if err != nil {
		if gdocs.NotFound(err) {
			err = fmt.Errorf("%w (check the id and that the document is shared with these credentials)", err)
		}
		return types.ExportFailed, err
	}

	name, err := FileName(target, doc)
	if err != nil {
		return types.ExportFailed, err
	}
	path := filepath.Join(cfg.OutputDir, name)
	content := markdown.Convert(doc)
	hash := ledger.ContentHash(content)

	if !cfg.Force && l != nil {
		prev, found, err := l.Lookup(ctx, target.DocumentID)
		if err != nil {
			return types.ExportFailed, fmt.Errorf("ledger lookup: %w", err)
		}
		if found && unchanged(prev, doc.RevisionID, hash, path) {
			fmt.Fprintf(w, "skipped: %s (revision %s unchanged)\n", target.DocumentID, doc.RevisionID)
			return types.ExportSkipped, nil
		}
	}

	if cfg.OutputDir != "" {
		if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
			return types.ExportFailed, fmt.Errorf("creating directory %s: %w", cfg.OutputDir, err)
		}
	}
	if err := WriteFile(path, content); err != nil {
		return types.ExportFailed, err
	}

	if l != nil {
		rec := types.ExportRecord{
			DocumentID:  target.DocumentID,
			Title:       doc.Title,
			RevisionID:  doc.RevisionID,
			Path:        path,
			ContentHash: hash,
			ExportedAt:  time.Now().UTC(),
		}
		if err := l.Record(ctx, rec); err != nil {
			fmt.Fprintf(w, "  warning: recording %s in ledger: %v\n", target.DocumentID, err)
		}
	}

	fmt.Fprintf(w, "exported: %s -> %s\n", target.DocumentID, path)
	return types.ExportDone, nil
}

func unchanged(prev types.ExportRecord, revisionID, hash, path string) bool {
	if prev.RevisionID != revisionID || prev.ContentHash != hash || prev.Path != path {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// ExportBatch exports targets in order, printing per-document status to w
// and returning a summary. It continues after individual failures and waits
// cfg.FetchDelay between consecutive fetches. Cancelling ctx stops the batch;
// remaining targets count as failed.
func ExportBatch(ctx context.Context, src Source, l Ledger, targets []types.ExportTarget, cfg types.ExportConfig, w io.Writer) BatchResult {
	var result BatchResult
	for i, t := range targets {
		if i > 0 && cfg.FetchDelay > 0 {
			select {
			case <-ctx.Done():
			case <-time.After(cfg.FetchDelay):
			}
		}
		if err := ctx.Err(); err != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", t.DocumentID, err)
			result.Failed++
			continue
		}

		status, err := ExportDocument(ctx, src, l, t, cfg, w)
		if err != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", t.DocumentID, err)
			result.Failed++
			continue
		}
		switch status {
		case types.ExportDone:
			result.Exported++
		case types.ExportSkipped:
			result.Skipped++
		}
	}
	fmt.Fprintf(w, "\nBatch summary: %d exported, %d skipped, %d failed (total: %d)\n",
		result.Exported, result.Skipped, result.Failed, result.Total())
	return result
}

// ConvertFiles converts saved Docs API responses (JSON files) without
// network access. Each file is written next to the others in cfg.OutputDir,
// named after the document title, or after the input file when the title is
// empty. Existing output is overwritten only with cfg.Force.
func ConvertFiles(paths []string, cfg types.ExportConfig, w io.Writer) BatchResult {
	var result BatchResult
	for _, p := range paths {
		status, err := convertFile(p, cfg, w)
		if err != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", p, err)
			result.Failed++
			continue
		}
		switch status {
		case types.ExportDone:
			result.Exported++
		case types.ExportSkipped:
			result.Skipped++
		}
	}
	fmt.Fprintf(w, "\nBatch summary: %d converted, %d skipped, %d failed (total: %d)\n",
		result.Exported, result.Skipped, result.Failed, result.Total())
	return result
}

func convertFile(path string, cfg types.ExportConfig, w io.Writer) (types.ExportStatus, error) {
	doc, err := gdocs.DecodeFile(path)
	if err != nil {
		return types.ExportFailed, err
	}

	name, err := FileName(types.ExportTarget{}, doc)
	if errors.Is(err, ErrMissingTitle) {
		base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		name, err = FileName(types.ExportTarget{FileName: base + ".md"}, doc)
	}
	if err != nil {
		return types.ExportFailed, err
	}

	outDir := cfg.OutputDir
	if outDir == "" {
		outDir = filepath.Dir(path)
	}
	mdPath := filepath.Join(outDir, name)

	if !cfg.Force {
		if _, err := os.Stat(mdPath); err == nil {
			fmt.Fprintf(w, "skipped: %s (already exists)\n", mdPath)
			return types.ExportSkipped, nil
		}
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return types.ExportFailed, fmt.Errorf("creating directory %s: %w", outDir, err)
	}
	if err := WriteFile(mdPath, markdown.Convert(doc)); err != nil {
		return types.ExportFailed, err
	}

	fmt.Fprintf(w, "converted: %s -> %s\n", path, mdPath)
	return types.ExportDone, nil
}
