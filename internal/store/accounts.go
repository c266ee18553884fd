// SPDX-License-Identifier: AGPL-3.0-only
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/fluffyriot/xpost/internal/auth"
	"github.com/fluffyriot/xpost/internal/database"
	"github.com/google/uuid"
)

// Accounts stores connected source and destination accounts. Tokens are
// sealed before they reach the database and opened on the way back.
type Accounts struct {
	q      *database.Queries
	sealer *auth.Sealer
	now    func() time.Time
}

func NewAccounts(q *database.Queries, sealer *auth.Sealer) *Accounts {
	return &Accounts{q: q, sealer: sealer, now: time.Now}
}

func (s *Accounts) UpsertSource(ctx context.Context, a SourceAccount) (SourceAccount, error) {

	if a.AccountID == "" {
		return SourceAccount{}, fmt.Errorf("%w: source account id is required", ErrInvalid)
	}

	access, err := s.sealer.Seal(a.AccessToken)
	if err != nil {
		return SourceAccount{}, err
	}
	refresh, err := s.sealer.Seal(a.RefreshToken)
	if err != nil {
		return SourceAccount{}, err
	}

	now := s.now()
	row, err := s.q.UpsertSourceAccount(ctx, database.UpsertSourceAccountParams{
		ID:              uuid.New(),
		UserID:          a.UserID,
		AccountID:       a.AccountID,
		Username:        a.Username,
		DisplayName:     a.DisplayName,
		ProfileImageUrl: a.ProfileImageURL,
		AccessToken:     access,
		RefreshToken:    refresh,
		TokenExpiresAt:  nullTime(a.TokenExpiresAt),
		CreatedAt:       now,
		UpdatedAt:       now,
	})
	if err != nil {
		return SourceAccount{}, err
	}

	out := sourceFromRow(row)
	out.AccessToken = a.AccessToken
	out.RefreshToken = a.RefreshToken
	return out, nil
}

func (s *Accounts) GetSource(ctx context.Context, userID uuid.UUID, accountID string) (SourceAccount, error) {

	row, err := s.q.GetSourceAccount(ctx, database.GetSourceAccountParams{UserID: userID, AccountID: accountID})
	if errors.Is(err, sql.ErrNoRows) {
		return SourceAccount{}, fmt.Errorf("source account %s: %w", accountID, ErrNotFound)
	}
	if err != nil {
		return SourceAccount{}, err
	}

	return s.openSource(row)
}

// ListSources returns the user's source accounts without credentials.
func (s *Accounts) ListSources(ctx context.Context, userID uuid.UUID) ([]SourceAccount, error) {

	rows, err := s.q.GetUserSourceAccounts(ctx, userID)
	if err != nil {
		return nil, err
	}

	accounts := make([]SourceAccount, 0, len(rows))
	for _, r := range rows {
		accounts = append(accounts, sourceFromRow(r))
	}
	return accounts, nil
}

// EligibleSources returns connected source accounts holding an access token.
// Accounts whose tokens cannot be opened are skipped.
func (s *Accounts) EligibleSources(ctx context.Context, userID uuid.UUID) ([]SourceAccount, error) {

	rows, err := s.q.GetEligibleSourceAccounts(ctx, userID)
	if err != nil {
		return nil, err
	}

	accounts := make([]SourceAccount, 0, len(rows))
	for _, r := range rows {
		a, err := s.openSource(r)
		if err != nil {
			log.Printf("Store: skipping source account %s of user %s: %v", r.AccountID, userID, err)
			continue
		}
		accounts = append(accounts, a)
	}
	return accounts, nil
}

func (s *Accounts) UpdateSourceTokens(ctx context.Context, userID uuid.UUID, accountID, accessToken, refreshToken string, expiresAt time.Time) error {

	access, err := s.sealer.Seal(accessToken)
	if err != nil {
		return err
	}
	refresh, err := s.sealer.Seal(refreshToken)
	if err != nil {
		return err
	}

	return s.q.UpdateSourceAccountTokens(ctx, database.UpdateSourceAccountTokensParams{
		UserID:         userID,
		AccountID:      accountID,
		AccessToken:    access,
		RefreshToken:   refresh,
		TokenExpiresAt: nullTime(expiresAt),
	})
}

// SetSourceLinked records whether any active link references the account.
// It leaves the OAuth connected flag, and so sync eligibility, untouched.
func (s *Accounts) SetSourceLinked(ctx context.Context, userID uuid.UUID, accountID string, linked bool) error {
	return s.q.UpdateSourceAccountLinked(ctx, database.UpdateSourceAccountLinkedParams{
		UserID:    userID,
		AccountID: accountID,
		IsLinked:  linked,
	})
}

func (s *Accounts) SetSourceStatus(ctx context.Context, userID uuid.UUID, accountID, status, reason string) error {
	return s.q.UpdateSourceAccountSyncStatus(ctx, database.UpdateSourceAccountSyncStatusParams{
		UserID:       userID,
		AccountID:    accountID,
		SyncStatus:   status,
		StatusReason: nullString(reason),
		LastSynced:   nullTime(s.now()),
	})
}

func (s *Accounts) UpsertDestination(ctx context.Context, a DestinationAccount) (DestinationAccount, error) {

	if a.AccountID == "" {
		return DestinationAccount{}, fmt.Errorf("%w: destination account id is required", ErrInvalid)
	}

	access, err := s.sealer.Seal(a.AccessSessionToken)
	if err != nil {
		return DestinationAccount{}, err
	}
	refresh, err := s.sealer.Seal(a.RefreshSessionToken)
	if err != nil {
		return DestinationAccount{}, err
	}

	now := s.now()
	row, err := s.q.UpsertDestinationAccount(ctx, database.UpsertDestinationAccountParams{
		ID:                  uuid.New(),
		UserID:              a.UserID,
		AccountID:           a.AccountID,
		Username:            a.Username,
		DisplayName:         a.DisplayName,
		ProfileImageUrl:     a.ProfileImageURL,
		AccessSessionToken:  access,
		RefreshSessionToken: refresh,
		CreatedAt:           now,
		UpdatedAt:           now,
	})
	if err != nil {
		return DestinationAccount{}, err
	}

	out := destinationFromRow(row)
	out.AccessSessionToken = a.AccessSessionToken
	out.RefreshSessionToken = a.RefreshSessionToken
	return out, nil
}

func (s *Accounts) GetDestination(ctx context.Context, userID uuid.UUID, accountID string) (DestinationAccount, error) {

	row, err := s.q.GetDestinationAccount(ctx, database.GetDestinationAccountParams{UserID: userID, AccountID: accountID})
	if errors.Is(err, sql.ErrNoRows) {
		return DestinationAccount{}, fmt.Errorf("destination account %s: %w", accountID, ErrNotFound)
	}
	if err != nil {
		return DestinationAccount{}, err
	}

	a := destinationFromRow(row)
	if a.AccessSessionToken, err = s.sealer.Open(row.AccessSessionToken); err != nil {
		return DestinationAccount{}, fmt.Errorf("open session token: %w", err)
	}
	if a.RefreshSessionToken, err = s.sealer.Open(row.RefreshSessionToken); err != nil {
		return DestinationAccount{}, fmt.Errorf("open refresh session token: %w", err)
	}
	return a, nil
}

// ListDestinations returns the user's destination accounts without credentials.
func (s *Accounts) ListDestinations(ctx context.Context, userID uuid.UUID) ([]DestinationAccount, error) {

	rows, err := s.q.GetUserDestinationAccounts(ctx, userID)
	if err != nil {
		return nil, err
	}

	accounts := make([]DestinationAccount, 0, len(rows))
	for _, r := range rows {
		accounts = append(accounts, destinationFromRow(r))
	}
	return accounts, nil
}

func (s *Accounts) UpdateDestinationSession(ctx context.Context, userID uuid.UUID, accountID, accessToken, refreshToken string) error {

	access, err := s.sealer.Seal(accessToken)
	if err != nil {
		return err
	}
	refresh, err := s.sealer.Seal(refreshToken)
	if err != nil {
		return err
	}

	return s.q.UpdateDestinationSession(ctx, database.UpdateDestinationSessionParams{
		UserID:              userID,
		AccountID:           accountID,
		AccessSessionToken:  access,
		RefreshSessionToken: refresh,
	})
}

func (s *Accounts) SetDestinationConnected(ctx context.Context, userID uuid.UUID, accountID string, connected bool) error {
	return s.q.UpdateDestinationAccountConnected(ctx, database.UpdateDestinationAccountConnectedParams{
		UserID:      userID,
		AccountID:   accountID,
		IsConnected: connected,
	})
}

func (s *Accounts) SetDestinationStatus(ctx context.Context, userID uuid.UUID, accountID, status, reason string) error {
	return s.q.UpdateDestinationAccountSyncStatus(ctx, database.UpdateDestinationAccountSyncStatusParams{
		UserID:       userID,
		AccountID:    accountID,
		SyncStatus:   status,
		StatusReason: nullString(reason),
	})
}

func (s *Accounts) openSource(row database.SourceAccount) (SourceAccount, error) {

	a := sourceFromRow(row)

	var err error
	if a.AccessToken, err = s.sealer.Open(row.AccessToken); err != nil {
		return SourceAccount{}, fmt.Errorf("open access token: %w", err)
	}
	if a.RefreshToken, err = s.sealer.Open(row.RefreshToken); err != nil {
		return SourceAccount{}, fmt.Errorf("open refresh token: %w", err)
	}
	return a, nil
}

func sourceFromRow(r database.SourceAccount) SourceAccount {
	return SourceAccount{
		ID:              r.ID,
		UserID:          r.UserID,
		AccountID:       r.AccountID,
		Username:        r.Username,
		DisplayName:     r.DisplayName,
		ProfileImageURL: r.ProfileImageUrl,
		TokenExpiresAt:  r.TokenExpiresAt.Time,
		Connected:       r.Connected,
		Linked:          r.IsLinked,
		SyncStatus:      r.SyncStatus,
		StatusReason:    r.StatusReason.String,
		LastSynced:      r.LastSynced.Time,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

func destinationFromRow(r database.DestinationAccount) DestinationAccount {
	return DestinationAccount{
		ID:              r.ID,
		UserID:          r.UserID,
		AccountID:       r.AccountID,
		Username:        r.Username,
		DisplayName:     r.DisplayName,
		ProfileImageURL: r.ProfileImageUrl,
		IsConnected:     r.IsConnected,
		SyncStatus:      r.SyncStatus,
		StatusReason:    r.StatusReason.String,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}
