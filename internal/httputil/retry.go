// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers for talking to the Docs API.
package httputil

import (
	"io"
	"math"
	"net/http"
	"strconv"
	"time"
)

// RetryBaseDelay controls the base duration for exponential backoff.
// Tests override this to avoid real sleeps.
var RetryBaseDelay = 1 * time.Second

// MaxRetryAfter caps how long a Retry-After header can make us wait.
var MaxRetryAfter = 2 * time.Minute

const defaultMaxRetries = 5

// Retryable reports whether a response status is worth retrying: rate
// limiting and transient server errors.
func Retryable(status int) bool {
	switch status {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

// RetryTransport is an http.RoundTripper that retries retryable statuses
// with exponential backoff: RetryBaseDelay, then doubling each attempt. A
// Retry-After header given in seconds replaces the computed delay.
//
// When MaxRetries is 0 the default (5) is used. Before each retry the
// response body is drained and closed. If the request context is cancelled
// during a backoff wait RoundTrip returns ctx.Err(). After exhausting retries
// the last response is returned so the caller can inspect it. Requests whose
// body cannot be replayed are sent once.
type RetryTransport struct {
	// Base performs the requests. nil means http.DefaultTransport.
	Base       http.RoundTripper
	MaxRetries int
}

// NewClient returns a copy of c whose transport retries through
// RetryTransport.
func NewClient(c *http.Client, maxRetries int) *http.Client {
	out := *c
	out.Transport = &RetryTransport{Base: c.Transport, MaxRetries: maxRetries}
	return &out
}

// RoundTrip implements http.RoundTripper.
func (t *RetryTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	maxRetries := t.MaxRetries
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}
	replayable := req.Body == nil || req.Body == http.NoBody || req.GetBody != nil
	ctx := req.Context()

	for attempt := 0; ; attempt++ {
		r := req
		if attempt > 0 {
			r = req.Clone(ctx)
			if req.GetBody != nil {
				body, err := req.GetBody()
				if err != nil {
					return nil, err
				}
				r.Body = body
			}
		}

		resp, err := base.RoundTrip(r)
		if err != nil {
			return nil, err
		}

		if !replayable || !Retryable(resp.StatusCode) || attempt >= maxRetries {
			return resp, nil
		}

		wait := backoff(attempt, resp.Header.Get("Retry-After"))

		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(wait):
		}
	}
}

func backoff(attempt int, retryAfter string) time.Duration {
	if secs, err := strconv.Atoi(retryAfter); err == nil && secs >= 0 {
		return min(time.Duration(secs)*time.Second, MaxRetryAfter)
	}
	return time.Duration(math.Pow(2, float64(attempt))) * RetryBaseDelay
}
