// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package gdocs retrieves documents from the Google Docs API and maps them
// onto the document model used by the Markdown converter.
package gdocs

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	docs "google.golang.org/api/docs/v1"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/pdiddy/docs-markdown/internal/httputil"
	"github.com/pdiddy/docs-markdown/pkg/types"
)

const (
	// DefaultEndpoint is the Docs API base URL.
	DefaultEndpoint = "https://docs.googleapis.com/"

	// playgroundRedirect is the redirect URL refresh tokens issued through the
	// OAuth 2.0 Playground are bound to.
	playgroundRedirect = "https://developers.google.com/oauthplayground"
)

// Client fetches documents from the Docs API.
type Client struct {
	svc *docs.Service
}

// NewClient builds a Client authorized with cfg's OAuth2 credentials. A
// refresh token, when present, is exchanged for a fresh access token on
// first use. Without client credentials, Google application default
// credentials are used.
func NewClient(ctx context.Context, cfg types.SourceConfig) (*Client, error) {
	hc, err := authorizedClient(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return NewClientWithHTTP(ctx, hc, cfg)
}

// NewClientWithHTTP builds a Client on hc, which must attach credentials to
// every request. Rate limiting and transient server errors are retried up to
// cfg.MaxRetries times.
func NewClientWithHTTP(ctx context.Context, hc *http.Client, cfg types.SourceConfig) (*Client, error) {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if !strings.HasSuffix(endpoint, "/") {
		endpoint += "/"
	}

	svc, err := docs.NewService(ctx,
		option.WithHTTPClient(httputil.NewClient(hc, cfg.MaxRetries)),
		option.WithEndpoint(endpoint),
	)
	if err != nil {
		return nil, fmt.Errorf("creating Docs service: %w", err)
	}
	svc.UserAgent = cfg.UserAgent
	return &Client{svc: svc}, nil
}

func authorizedClient(ctx context.Context, cfg types.SourceConfig) (*http.Client, error) {
	// Token refreshes go through a client with the same timeout.
	ctx = context.WithValue(ctx, oauth2.HTTPClient, &http.Client{Timeout: cfg.Timeout})

	creds := cfg.Credentials
	if creds.IsEmpty() {
		hc, err := google.DefaultClient(ctx, docs.DocumentsReadonlyScope)
		if err != nil {
			return nil, fmt.Errorf("no OAuth client configured and no default credentials: %w", err)
		}
		hc.Timeout = cfg.Timeout
		return hc, nil
	}

	if creds.ClientID == "" || creds.ClientSecret == "" {
		return nil, fmt.Errorf("OAuth client id and secret must both be set")
	}
	if creds.AccessToken == "" && creds.RefreshToken == "" {
		return nil, fmt.Errorf("OAuth credentials need an access token or a refresh token")
	}

	oc := &oauth2.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		RedirectURL:  playgroundRedirect,
		Scopes:       []string{docs.DocumentsReadonlyScope},
		Endpoint:     google.Endpoint,
	}
	tok := &oauth2.Token{
		AccessToken:  creds.AccessToken,
		RefreshToken: creds.RefreshToken,
		TokenType:    "Bearer",
	}
	if tok.RefreshToken != "" {
		// A stored access token is usually stale; refresh before the first call.
		tok.Expiry = time.Now()
	}

	hc := oc.Client(ctx, tok)
	hc.Timeout = cfg.Timeout
	return hc, nil
}

// Fetch retrieves one document by id. Non-200 responses are returned as
// *googleapi.Error wrapped with the document id.
func (c *Client) Fetch(ctx context.Context, documentID string) (*types.Document, error) {
	documentID = strings.TrimSpace(documentID)
	if documentID == "" {
		return nil, fmt.Errorf("empty document id")
	}

	d, err := c.svc.Documents.Get(documentID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("fetching document %s: %w", documentID, err)
	}
	return toDocument(d), nil
}

// NotFound reports whether err is a Docs API response saying the document
// does not exist or is not shared with the caller.
func NotFound(err error) bool {
	var apiErr *googleapi.Error
	return errors.As(err, &apiErr) && apiErr.Code == http.StatusNotFound
}
