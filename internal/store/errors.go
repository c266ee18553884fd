// SPDX-License-Identifier: AGPL-3.0-only
package store

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
)

var (
	ErrNotFound = errors.New("not found")      // 404 Not Found
	ErrConflict = errors.New("conflict")       // 409 Conflict
	ErrInvalid  = errors.New("invalid record") // 400 Bad Request
)

var (
	ErrAlreadyReposted   = fmt.Errorf("post already reposted: %w", ErrConflict)
	ErrLinkAlreadyActive = fmt.Errorf("accounts already linked: %w", ErrConflict)
	ErrUserExists        = fmt.Errorf("user already exists: %w", ErrConflict)
)

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
