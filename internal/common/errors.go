// SPDX-License-Identifier: AGPL-3.0-only
package common

import (
	"errors"
	"fmt"
	"io"
	"net/http"
)

var (
	ErrAuth           = errors.New("upstream credentials rejected") // reconnect required
	ErrSessionExpired = errors.New("upstream session expired")      // reconnect required
	ErrRateLimited    = errors.New("upstream rate limit reached")   // transient
	ErrNetwork        = errors.New("upstream request failed")       // transient
)

const maxErrorBody = 4 << 10

type APIError struct {
	StatusCode int
	Status     string
	Body       string
	kind       error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%v: %s: %s", e.kind, e.Status, e.Body)
}

func (e *APIError) Unwrap() error {
	return e.kind
}

// CheckResponse returns nil for 2xx responses and an *APIError otherwise.
func CheckResponse(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	return &APIError{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Body:       string(body),
		kind:       KindForStatus(resp.StatusCode),
	}
}

func KindForStatus(status int) error {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return ErrAuth
	case status == http.StatusTooManyRequests:
		return ErrRateLimited
	default:
		return ErrNetwork
	}
}

// IsTransient reports whether err should simply be retried on the next cycle.
func IsTransient(err error) bool {
	return errors.Is(err, ErrRateLimited) || errors.Is(err, ErrNetwork)
}
