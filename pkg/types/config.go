package types

import "time"

// HTTPConfig holds shared HTTP settings used when talking to the Docs API.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "docs-markdown/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// OAuthCredentials are the OAuth2 client and token values used to call the
// Docs API on behalf of a user.
type OAuthCredentials struct {
	ClientID     string `json:"client_id,omitempty" yaml:"client_id,omitempty"`
	ClientSecret string `json:"client_secret,omitempty" yaml:"client_secret,omitempty"`
	AccessToken  string `json:"access_token,omitempty" yaml:"access_token,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty" yaml:"refresh_token,omitempty"`
}

// IsEmpty reports whether no client credentials were supplied, in which case
// the source falls back to application default credentials.
func (c OAuthCredentials) IsEmpty() bool {
	return c.ClientID == "" && c.ClientSecret == ""
}

// SourceConfig holds settings for the document source.
type SourceConfig struct {
	HTTPConfig `yaml:",inline"`

	// Endpoint is the Docs API base URL (default https://docs.googleapis.com/).
	Endpoint string `json:"endpoint" yaml:"endpoint"`

	// MaxRetries bounds retries on rate limiting and server errors (default 5).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`

	Credentials OAuthCredentials `json:"credentials" yaml:"credentials"`
}

// ExportConfig holds settings for writing rendered documents.
type ExportConfig struct {
	// OutputDir is the directory Markdown files are written to.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// Force rewrites files even when the ledger shows an unchanged revision.
	Force bool `json:"force" yaml:"force"`

	// FetchDelay is the delay between consecutive document fetches.
	FetchDelay time.Duration `json:"fetch_delay" yaml:"fetch_delay"`
}

// LedgerConfig holds settings for the export ledger.
type LedgerConfig struct {
	// StateDir contains ledger.db.
	StateDir string `json:"state_dir" yaml:"state_dir"`

	// Disabled turns the ledger off; every export is then written.
	Disabled bool `json:"disabled" yaml:"disabled"`
}

// PreviewConfig holds settings for terminal previews.
type PreviewConfig struct {
	// Style is a glamour standard style name (dark, light, dracula, notty, ...).
	Style string `json:"style" yaml:"style"`

	// WordWrap is the wrap width in columns.
	WordWrap int `json:"word_wrap" yaml:"word_wrap"`
}

// Config groups all settings.
type Config struct {
	Source  SourceConfig  `json:"source" yaml:"source"`
	Export  ExportConfig  `json:"export" yaml:"export"`
	Ledger  LedgerConfig  `json:"ledger" yaml:"ledger"`
	Preview PreviewConfig `json:"preview" yaml:"preview"`
}
