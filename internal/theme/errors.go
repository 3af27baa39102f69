package theme

import (
	"errors"
	"fmt"
	"strings"
)

// AuthError indicates the theme repository rejected our credentials.
type AuthError struct {
	URL string
	Err error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("authentication failed for %s: %v", e.URL, e.Err)
}
func (e *AuthError) Unwrap() error { return e.Err }

// NotFoundError indicates the theme repository does not exist.
type NotFoundError struct {
	URL string
	Err error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("repository not found: %s: %v", e.URL, e.Err)
}
func (e *NotFoundError) Unwrap() error { return e.Err }

// NetworkTimeoutError indicates a transient network failure worth retrying.
type NetworkTimeoutError struct {
	URL string
	Err error
}

func (e *NetworkTimeoutError) Error() string {
	return fmt.Sprintf("network timeout reaching %s: %v", e.URL, e.Err)
}
func (e *NetworkTimeoutError) Unwrap() error { return e.Err }

// classifyError wraps underlying go-git errors into typed failures so callers
// can branch without string parsing.
func classifyError(url string, err error) error {
	l := strings.ToLower(err.Error())
	switch {
	case strings.Contains(l, "authentication") || strings.Contains(l, "auth fail") || strings.Contains(l, "invalid username or password"):
		return &AuthError{URL: url, Err: err}
	case strings.Contains(l, "not found") || strings.Contains(l, "repository does not exist"):
		return &NotFoundError{URL: url, Err: err}
	case strings.Contains(l, "timeout") || strings.Contains(l, "i/o timeout") || strings.Contains(l, "connection refused"):
		return &NetworkTimeoutError{URL: url, Err: err}
	}
	return fmt.Errorf("git operation on %s failed: %w", url, err)
}

// transient reports whether an error is worth retrying.
func transient(err error) bool {
	var te *NetworkTimeoutError
	return errors.As(err, &te)
}
