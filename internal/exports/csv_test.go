// SPDX-License-Identifier: AGPL-3.0-only
package exports

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/fluffyriot/xpost/internal/store"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWritePostsCSV(t *testing.T) {
	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	reposted := store.EnrichedPost{
		Post: store.Post{
			ID:              uuid.New(),
			SourceAccountID: "1001",
			Source:          store.SourcePost{ID: "111", Text: "hello, \"world\"\nsecond line", CreatedAt: created, LikeCount: 5, ShareCount: 2},
			Destination:     &store.DestinationPost{ID: "rkey1", AccountID: "did:plc:abc", CreatedAt: created.Add(time.Minute)},
			IsReposted:      true,
		},
		SourceURL:      "https://x.com/jack/status/111",
		DestinationURL: "https://bsky.app/profile/did:plc:abc/post/rkey1",
	}
	pending := store.EnrichedPost{
		Post: store.Post{
			ID:              uuid.New(),
			SourceAccountID: "1001",
			Source:          store.SourcePost{ID: "112", Text: "later", CreatedAt: created.Add(time.Hour)},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WritePostsCSV(&buf, []store.EnrichedPost{pending, reposted}))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, postColumns, rows[0])

	assert.Equal(t, "112", rows[1][2])
	assert.Equal(t, "false", rows[1][8])
	assert.Equal(t, "", rows[1][10])

	assert.Equal(t, reposted.ID.String(), rows[2][0])
	assert.Equal(t, "hello, \"world\"\nsecond line", rows[2][4])
	assert.Equal(t, "5", rows[2][5])
	assert.Equal(t, "true", rows[2][8])
	assert.Equal(t, "did:plc:abc", rows[2][9])
	assert.Equal(t, "rkey1", rows[2][10])
	assert.Equal(t, "2025-03-01T12:01:00Z", rows[2][11])
}

func TestWritePostsCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePostsCSV(&buf, nil))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestFilename(t *testing.T) {
	id := uuid.MustParse("8f30934e-3135-4fcf-8c59-bc7246171694")
	got := Filename(id, time.Date(2025, 3, 1, 12, 30, 5, 0, time.UTC))
	assert.Equal(t, "export_8f30934e-3135-4fcf-8c59-bc7246171694_posts_20250301_123005.csv", got)
}
