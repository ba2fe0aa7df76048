// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads OAuth client and token values from a directory of
// plain-text files. Each file in the directory represents one secret: the
// filename is the key name and the file contents (trimmed) are the value.
//
// Recognised key files: google-docs-client-id, google-docs-client-secret,
// google-docs-access-token, google-docs-refresh-token.
package secrets

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/docs-markdown/pkg/types"
)

// Key file names.
const (
	ClientIDKey     = "google-docs-client-id"
	ClientSecretKey = "google-docs-client-secret"
	AccessTokenKey  = "google-docs-access-token"
	RefreshTokenKey = "google-docs-refresh-token"
)

// Load reads all files in dir and returns a map of filename to trimmed contents.
// A missing directory or missing files are not errors; Load returns an empty map.
// Unreadable files produce a warning on warn but do not abort. A nil warn
// discards warnings.
func Load(dir string, warn io.Writer) (map[string]string, error) {
	if warn == nil {
		warn = io.Discard
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(warn, "warning: could not read secret %s: %v\n", name, err)
			continue
		}

		value := strings.TrimSpace(string(data))
		if value != "" {
			secrets[name] = value
		}
	}

	return secrets, nil
}

// Credentials fills the empty fields of base from the loaded secrets.
// Values already set in base (from flags, environment, or config) win.
func Credentials(secrets map[string]string, base types.OAuthCredentials) types.OAuthCredentials {
	fill := func(dst *string, key string) {
		if *dst == "" {
			*dst = secrets[key]
		}
	}
	fill(&base.ClientID, ClientIDKey)
	fill(&base.ClientSecret, ClientSecretKey)
	fill(&base.AccessToken, AccessTokenKey)
	fill(&base.RefreshToken, RefreshTokenKey)
	return base
}
