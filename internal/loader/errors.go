package loader

import (
	"errors"
	"fmt"
)

// Kind classifies why a retrieval did not produce usable content.
type Kind string

const (
	KindNotFound           Kind = "not_found"
	KindMaskedRedirect     Kind = "masked_redirect"
	KindElementMissing     Kind = "element_missing"
	KindCrossOriginBlocked Kind = "cross_origin_blocked"
)

// Sentinel errors for errors.Is matching. A masked redirect also matches
// ErrNotFound: callers treat both the same way.
var (
	ErrNotFound           = errors.New("not found")
	ErrMaskedRedirect     = errors.New("redirected to shell")
	ErrElementMissing     = errors.New("element missing")
	ErrCrossOriginBlocked = errors.New("cross-origin blocked")
)

// Error is a failed retrieval for one path.
type Error struct {
	Kind   Kind
	Path   string
	Reason string
	Status int
	Err    error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Path, e.Reason)
	if e.Status != 0 {
		msg += fmt.Sprintf(" (HTTP %d)", e.Status)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes the kind sentinel(s) and the underlying cause.
func (e *Error) Unwrap() []error {
	var errs []error
	switch e.Kind {
	case KindNotFound:
		errs = append(errs, ErrNotFound)
	case KindMaskedRedirect:
		errs = append(errs, ErrMaskedRedirect, ErrNotFound)
	case KindElementMissing:
		errs = append(errs, ErrElementMissing)
	case KindCrossOriginBlocked:
		errs = append(errs, ErrCrossOriginBlocked)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// KindOf returns the Kind of err, or "" when err is not a retrieval error.
func KindOf(err error) Kind {
	var le *Error
	if errors.As(err, &le) {
		return le.Kind
	}
	return ""
}

// Placeholder is what the viewer shows instead of content that failed to load.
type Placeholder struct {
	Title   string `json:"title"`
	Message string `json:"message"`
	Path    string `json:"path,omitempty"`
	Retry   bool   `json:"retry"`
}

// EmptyPlaceholder is shown for a category with no components.
func EmptyPlaceholder() Placeholder {
	return Placeholder{Title: "Nothing here", Message: "No components in this category"}
}

// PlaceholderFor converts a load failure into a user-facing placeholder.
func PlaceholderFor(err error, path string) Placeholder {
	switch KindOf(err) {
	case KindElementMissing:
		return Placeholder{
			Title:   "Failed to load component",
			Message: "Failed to load component. Please try again.",
			Path:    path,
		}
	default:
		return Placeholder{
			Title:   "Component Not Found",
			Message: "The component file could not be loaded.",
			Path:    path,
			Retry:   true,
		}
	}
}
