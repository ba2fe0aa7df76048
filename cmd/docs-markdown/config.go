// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/docs-markdown/internal/gdocs"
	"github.com/pdiddy/docs-markdown/internal/secrets"
	"github.com/pdiddy/docs-markdown/pkg/types"
)

const (
	defaultTimeout    = 60 * time.Second
	defaultDelay      = 500 * time.Millisecond
	defaultMaxRetries = 5
	defaultStateDir   = ".docs-markdown"
)

// credentialEnv lists the environment variables accepted for each
// credential key, in addition to the DOCS_MARKDOWN_ prefixed form.
var credentialEnv = map[string][]string{
	"source.credentials.client_id":     {"DOCS_MARKDOWN_CLIENT_ID", "GOOGLE_DOCS_CLIENT_ID"},
	"source.credentials.client_secret": {"DOCS_MARKDOWN_CLIENT_SECRET", "GOOGLE_DOCS_CLIENT_SECRET"},
	"source.credentials.access_token":  {"DOCS_MARKDOWN_ACCESS_TOKEN", "GOOGLE_DOCS_ACCESS"},
	"source.credentials.refresh_token": {"DOCS_MARKDOWN_REFRESH_TOKEN", "GOOGLE_DOCS_REFRESH"},
}

// setupViper installs defaults and environment bindings. Nested keys map to
// DOCS_MARKDOWN_<SECTION>_<KEY>, e.g. DOCS_MARKDOWN_EXPORT_OUTPUT_DIR.
func setupViper(v *viper.Viper) {
	v.SetEnvPrefix("DOCS_MARKDOWN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, envs := range credentialEnv {
		v.BindEnv(append([]string{key}, envs...)...)
	}

	v.SetDefault("source.endpoint", gdocs.DefaultEndpoint)
	v.SetDefault("source.timeout", defaultTimeout)
	v.SetDefault("source.user_agent", "docs-markdown/"+version)
	v.SetDefault("source.max_retries", defaultMaxRetries)
	v.SetDefault("export.output_dir", ".")
	v.SetDefault("export.fetch_delay", defaultDelay)
	v.SetDefault("ledger.state_dir", defaultStateDir)
	v.SetDefault("preview.style", "dark")
	v.SetDefault("preview.word_wrap", 80)
}

// bindFlags binds config keys to the named flags of cmd. Binding happens when
// a command runs, so commands sharing a flag name do not override each other.
func bindFlags(v *viper.Viper, cmd *cobra.Command, keys map[string]string) error {
	for key, flag := range keys {
		f := cmd.Flags().Lookup(flag)
		if f == nil {
			return fmt.Errorf("unknown flag %q", flag)
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("binding flag %s: %w", flag, err)
		}
	}
	return nil
}

// loadConfig resolves settings from flags, environment, config file, and
// defaults, in that order. Credentials missing from all of them are taken
// from the secrets directory.
func loadConfig(v *viper.Viper, loaded map[string]string) types.Config {
	creds := types.OAuthCredentials{
		ClientID:     v.GetString("source.credentials.client_id"),
		ClientSecret: v.GetString("source.credentials.client_secret"),
		AccessToken:  v.GetString("source.credentials.access_token"),
		RefreshToken: v.GetString("source.credentials.refresh_token"),
	}

	return types.Config{
		Source: types.SourceConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   v.GetDuration("source.timeout"),
				UserAgent: v.GetString("source.user_agent"),
			},
			Endpoint:    v.GetString("source.endpoint"),
			MaxRetries:  v.GetInt("source.max_retries"),
			Credentials: secrets.Credentials(loaded, creds),
		},
		Export: types.ExportConfig{
			OutputDir:  v.GetString("export.output_dir"),
			Force:      v.GetBool("export.force"),
			FetchDelay: v.GetDuration("export.fetch_delay"),
		},
		Ledger: types.LedgerConfig{
			StateDir: v.GetString("ledger.state_dir"),
			Disabled: v.GetBool("ledger.disabled"),
		},
		Preview: types.PreviewConfig{
			Style:    v.GetString("preview.style"),
			WordWrap: v.GetInt("preview.word_wrap"),
		},
	}
}
