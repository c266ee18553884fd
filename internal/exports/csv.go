// SPDX-License-Identifier: AGPL-3.0-only
package exports

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/fluffyriot/xpost/internal/store"
	"github.com/google/uuid"
)

var postColumns = []string{
	"id",
	"source_account_id",
	"source_post_id",
	"source_created_at",
	"content",
	"likes",
	"reposts",
	"source_url",
	"is_reposted",
	"destination_account_id",
	"destination_post_id",
	"destination_created_at",
	"destination_url",
}

// Filename names a posts export for userID taken at t.
func Filename(userID uuid.UUID, t time.Time) string {
	return fmt.Sprintf("export_%s_posts_%s.csv", userID.String(), t.UTC().Format("20060102_150405"))
}

// WritePostsCSV writes one header row and one row per post.
func WritePostsCSV(w io.Writer, posts []store.EnrichedPost) error {

	writer := csv.NewWriter(w)

	if err := writer.Write(postColumns); err != nil {
		return err
	}

	for _, p := range posts {

		var destAccount, destID, destCreated string
		if d := p.Destination; d != nil {
			destAccount = d.AccountID
			destID = d.ID
			if !d.CreatedAt.IsZero() {
				destCreated = d.CreatedAt.Format(time.RFC3339)
			}
		}

		record := []string{
			p.ID.String(),
			p.SourceAccountID,
			p.Source.ID,
			p.Source.CreatedAt.Format(time.RFC3339),
			p.Source.Text,
			strconv.Itoa(p.Source.LikeCount),
			strconv.Itoa(p.Source.ShareCount),
			p.SourceURL,
			strconv.FormatBool(p.IsReposted),
			destAccount,
			destID,
			destCreated,
			p.DestinationURL,
		}

		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
