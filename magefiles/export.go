//go:build mage

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// manifestFile is the default list of documents exported by Export.
const manifestFile = "docs.yaml"

// Export builds the CLI and exports every document listed in docs.yaml into docs/.
func Export() error {
	mg.Deps(Build)
	if _, err := os.Stat(manifestFile); err != nil {
		return fmt.Errorf("%s not found; list documents as `documents: [{id: ...}]`", manifestFile)
	}
	return sh.RunV(filepath.Join(binDir, binName), "fetch", "--manifest", manifestFile, "--output-dir", "docs")
}

// History prints the export ledger.
func History() error {
	mg.Deps(Build)
	return sh.RunV(filepath.Join(binDir, binName), "history")
}
