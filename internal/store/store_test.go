// SPDX-License-Identifier: AGPL-3.0-only
package store

import (
	"bytes"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/fluffyriot/xpost/internal/auth"
	"github.com/fluffyriot/xpost/internal/database"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

var postColumns = []string{
	"id", "user_id", "source_post_id", "source_account_id", "source_text", "source_created_at",
	"source_like_count", "source_share_count", "destination_post_id", "destination_account_id",
	"destination_text", "destination_created_at", "destination_like_count", "destination_share_count",
	"is_reposted", "created_at", "updated_at",
}

var linkColumns = []string{
	"id", "user_id", "source_account_id", "destination_account_id", "active", "created_at", "updated_at",
}

var fixedNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func newMockQueries(t *testing.T) (*database.Queries, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})

	return database.New(db), mock
}

type postRow struct {
	id, userID           uuid.UUID
	sourceID, accountID  string
	likes, shares        int64
	destinationID        any
	destinationAccountID any
	reposted             bool
}

func (p postRow) rows() *sqlmock.Rows {
	var text, created any
	if p.reposted {
		text, created = "hello", fixedNow
	}
	return sqlmock.NewRows(postColumns).AddRow(
		p.id.String(), p.userID.String(), p.sourceID, p.accountID, "hello", fixedNow,
		p.likes, p.shares, p.destinationID, p.destinationAccountID,
		text, created, int64(0), int64(0),
		p.reposted, fixedNow, fixedNow,
	)
}

func emptyPostRows() *sqlmock.Rows {
	return sqlmock.NewRows(postColumns)
}

func linkRows(id, userID uuid.UUID, active bool) *sqlmock.Rows {
	return sqlmock.NewRows(linkColumns).AddRow(
		id.String(), userID.String(), "tw-1", "did:plc:abc", active, fixedNow, fixedNow,
	)
}

// sealedAs matches a sealed column value that opens to want.
type sealedAs struct {
	sealer *auth.Sealer
	want   string
}

func (m sealedAs) Match(v driver.Value) bool {
	s, ok := v.(string)
	if !ok || s == m.want {
		return false
	}
	opened, err := m.sealer.Open(s)
	return err == nil && opened == m.want
}

func testSealer(t *testing.T) *auth.Sealer {
	t.Helper()

	s, err := auth.NewSealer(bytes.Repeat([]byte{9}, 32))
	require.NoError(t, err)
	return s
}
