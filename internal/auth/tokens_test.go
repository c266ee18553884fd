// SPDX-License-Identifier: AGPL-3.0-only
package auth

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKey(b byte) []byte {
	return bytes.Repeat([]byte{b}, 32)
}

func TestSealOpenRoundTrip(t *testing.T) {
	s, err := NewSealer(testKey(7))
	require.NoError(t, err)

	sealed, err := s.Seal("access-token-123")
	require.NoError(t, err)
	assert.NotContains(t, sealed, "access-token-123")

	opened, err := s.Open(sealed)
	require.NoError(t, err)
	assert.Equal(t, "access-token-123", opened)
}

func TestSealUsesFreshNonce(t *testing.T) {
	s, err := NewSealer(testKey(7))
	require.NoError(t, err)

	a, err := s.Seal("same")
	require.NoError(t, err)
	b, err := s.Seal("same")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestEmptyTokensStayEmpty(t *testing.T) {
	s, err := NewSealer(testKey(1))
	require.NoError(t, err)

	sealed, err := s.Seal("")
	require.NoError(t, err)
	assert.Empty(t, sealed)

	opened, err := s.Open("")
	require.NoError(t, err)
	assert.Empty(t, opened)
}

func TestOpenRejectsForeignKeyAndGarbage(t *testing.T) {
	s1, err := NewSealer(testKey(1))
	require.NoError(t, err)
	s2, err := NewSealer(testKey(2))
	require.NoError(t, err)

	sealed, err := s1.Seal("secret")
	require.NoError(t, err)

	_, err = s2.Open(sealed)
	assert.Error(t, err)

	_, err = s1.Open("not base64 !!")
	assert.ErrorIs(t, err, ErrMalformedSeal)

	_, err = s1.Open("AAAA")
	assert.ErrorIs(t, err, ErrMalformedSeal)
}

func TestNewSealerRejectsShortKey(t *testing.T) {
	_, err := NewSealer([]byte("short"))
	assert.ErrorIs(t, err, ErrInvalidKey)
}
