// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package manifest reads and writes the list of documents to export.
//
//	documents:
//	  - id: 1AbCdEf
//	  - id: 2XyZ
//	    filename: roadmap.md
package manifest

import (
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/docs-markdown/pkg/types"
)

// File is the on-disk representation of a manifest.
type File struct {
	Documents []types.ExportTarget `yaml:"documents"`
}

// Read loads a manifest from disk. Entries without an id are rejected.
func Read(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	for i, d := range f.Documents {
		if strings.TrimSpace(d.DocumentID) == "" {
			return nil, fmt.Errorf("manifest %s: entry %d has no id", path, i+1)
		}
	}
	return &f, nil
}

// Write saves targets as a manifest file.
func Write(path string, targets []types.ExportTarget) error {
	data, err := yaml.Marshal(&File{Documents: targets})
	if err != nil {
		return fmt.Errorf("marshaling manifest: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Targets returns the manifest's documents with surrounding whitespace
// removed. Repeated ids keep their first entry.
func (f *File) Targets() []types.ExportTarget {
	seen := make(map[string]bool, len(f.Documents))
	targets := make([]types.ExportTarget, 0, len(f.Documents))
	for _, d := range f.Documents {
		t := types.ExportTarget{
			DocumentID: strings.TrimSpace(d.DocumentID),
			FileName:   strings.TrimSpace(d.FileName),
		}
		if seen[t.DocumentID] {
			continue
		}
		seen[t.DocumentID] = true
		targets = append(targets, t)
	}
	return targets
}
