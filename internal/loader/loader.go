// Package loader retrieves component markup and decides whether the
// retrieval really succeeded.
package loader

import (
	"bytes"
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/ziadkadry99/ui-showcase/internal/catalog"
)

// DefaultShellTitle is the title marker of the showcase shell page. A component
// body containing it means the host served the shell instead of a 404.
const DefaultShellTitle = "<title>UI Components Showcase</title>"

// Content is successfully retrieved component markup.
type Content struct {
	Descriptor catalog.Descriptor
	Body       []byte
}

// Loader retrieves descriptor content through a Fetcher.
type Loader struct {
	fetcher     Fetcher
	shellMarker []byte
	logger      zerolog.Logger
}

// New creates a Loader. An empty shellMarker disables the masked redirect check.
func New(fetcher Fetcher, shellMarker string, logger zerolog.Logger) *Loader {
	l := &Loader{fetcher: fetcher, logger: logger}
	if shellMarker != "" {
		l.shellMarker = []byte(shellMarker)
	}
	return l
}

// Load retrieves the content of d. Failures are returned as *Error, except
// context cancellation which is returned unchanged.
func (l *Loader) Load(ctx context.Context, d catalog.Descriptor) (*Content, error) {
	resp, err := l.fetcher.Fetch(ctx, d.Path)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		l.logger.Warn().Err(err).Str("path", d.Path).Msg("retrieval failed")
		return nil, &Error{Kind: KindNotFound, Path: d.Path, Reason: "retrieval failed", Err: err}
	}
	if !resp.OK() {
		l.logger.Warn().Int("status", resp.Status).Str("path", d.Path).Msg("component not found")
		return nil, &Error{Kind: KindNotFound, Path: d.Path, Reason: "HTTP status indicates failure", Status: resp.Status}
	}
	if l.shellMarker != nil && bytes.Contains(resp.Body, l.shellMarker) {
		l.logger.Warn().Str("path", d.Path).Msg("component request served the shell page")
		return nil, &Error{Kind: KindMaskedRedirect, Path: d.Path, Reason: "redirected to shell", Status: resp.Status}
	}
	return &Content{Descriptor: d, Body: resp.Body}, nil
}
