// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ledger records which document revisions were exported, where, and
// with what content, so unchanged documents can be skipped on later runs.
// The ledger is a SQLite database at <state-dir>/ledger.db.
package ledger

import (
	"context"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/zeebo/blake3"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/docs-markdown/pkg/types"
)

const dbFile = "ledger.db"

// timeLayout is fixed width so exported_at sorts chronologically as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Ledger is the export ledger.
type Ledger struct {
	db *sql.DB
}

// ContentHash returns the hex BLAKE3 digest of content.
func ContentHash(content string) string {
	sum := blake3.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}

// Open opens or creates the ledger under cfg.StateDir, creating the
// directory and schema when missing.
func Open(cfg types.LedgerConfig) (*Ledger, error) {
	if cfg.StateDir == "" {
		return nil, fmt.Errorf("ledger state directory not set")
	}
	if err := os.MkdirAll(cfg.StateDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating state directory: %w", err)
	}

	dbPath := filepath.Join(cfg.StateDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	l := &Ledger{db: db}
	if err := l.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return l, nil
}

// Close releases the database connection.
func (l *Ledger) Close() error {
	return l.db.Close()
}

func (l *Ledger) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS exports (
			document_id TEXT PRIMARY KEY,
			title TEXT,
			revision_id TEXT,
			path TEXT NOT NULL,
			content_hash TEXT NOT NULL,
			exported_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_exports_exported_at ON exports(exported_at)`,
	}
	for _, stmt := range statements {
		if _, err := l.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Lookup returns the last export of documentID. found is false when the
// document was never exported.
func (l *Ledger) Lookup(ctx context.Context, documentID string) (rec types.ExportRecord, found bool, err error) {
	row := l.db.QueryRowContext(ctx,
		`SELECT document_id, title, revision_id, path, content_hash, exported_at
		 FROM exports WHERE document_id = ?`, documentID)

	rec, err = scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return types.ExportRecord{}, false, nil
	}
	if err != nil {
		return types.ExportRecord{}, false, fmt.Errorf("looking up %s: %w", documentID, err)
	}
	return rec, true, nil
}

// Record inserts or replaces the entry for rec.DocumentID.
func (l *Ledger) Record(ctx context.Context, rec types.ExportRecord) error {
	if rec.DocumentID == "" {
		return fmt.Errorf("record without document id")
	}
	if rec.ExportedAt.IsZero() {
		rec.ExportedAt = time.Now().UTC()
	}

	_, err := l.db.ExecContext(ctx,
		`INSERT INTO exports (document_id, title, revision_id, path, content_hash, exported_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(document_id) DO UPDATE SET
			title = excluded.title,
			revision_id = excluded.revision_id,
			path = excluded.path,
			content_hash = excluded.content_hash,
			exported_at = excluded.exported_at`,
		rec.DocumentID, rec.Title, rec.RevisionID, rec.Path, rec.ContentHash,
		rec.ExportedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("recording %s: %w", rec.DocumentID, err)
	}
	return nil
}

// List returns all entries, most recent export first.
func (l *Ledger) List(ctx context.Context) ([]types.ExportRecord, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT document_id, title, revision_id, path, content_hash, exported_at
		 FROM exports ORDER BY exported_at DESC, document_id`)
	if err != nil {
		return nil, fmt.Errorf("listing exports: %w", err)
	}
	defer rows.Close()

	var records []types.ExportRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning export row: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// WriteYAML writes all entries to w as a YAML sequence.
func (l *Ledger) WriteYAML(ctx context.Context, w io.Writer) error {
	records, err := l.List(ctx)
	if err != nil {
		return err
	}
	if records == nil {
		records = []types.ExportRecord{}
	}

	data, err := yaml.Marshal(records)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// WriteJSON writes all entries to w as an indented JSON array.
func (l *Ledger) WriteJSON(ctx context.Context, w io.Writer) error {
	records, err := l.List(ctx)
	if err != nil {
		return err
	}
	if records == nil {
		records = []types.ExportRecord{}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner) (types.ExportRecord, error) {
	var (
		rec             types.ExportRecord
		title, revision sql.NullString
		exportedAt      string
	)
	if err := s.Scan(&rec.DocumentID, &title, &revision, &rec.Path, &rec.ContentHash, &exportedAt); err != nil {
		return types.ExportRecord{}, err
	}
	rec.Title = title.String
	rec.RevisionID = revision.String

	t, err := time.Parse(time.RFC3339Nano, exportedAt)
	if err != nil {
		return types.ExportRecord{}, fmt.Errorf("parsing exported_at %q: %w", exportedAt, err)
	}
	rec.ExportedAt = t
	return rec, nil
}
