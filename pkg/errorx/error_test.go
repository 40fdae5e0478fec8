package errorx

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWrapKeepsIdentity(t *testing.T) {
	err := Wrap(ErrBadResponse, "decode user %d", 42)

	require.ErrorIs(t, err, ErrBadResponse)
	require.NotErrorIs(t, err, ErrNotFound)
	require.Contains(t, err.Error(), "decode user 42")
}

func TestRateLimitError(t *testing.T) {
	resetAt := time.Now().Add(time.Minute)
	err := NewRateLimit(resetAt)

	require.ErrorIs(t, err, ErrTooManyRequests)

	got, ok := IsRateLimit(err)
	require.True(t, ok)
	require.Equal(t, resetAt, got)

	_, ok = IsRateLimit(errors.New("something else"))
	require.False(t, ok)
}

func TestStatusError(t *testing.T) {
	err := NewStatus(http.StatusForbidden)

	require.ErrorIs(t, err, ErrRequestFailed)

	status, ok := StatusOf(err)
	require.True(t, ok)
	require.Equal(t, http.StatusForbidden, status)

	_, ok = StatusOf(ErrNotFound)
	require.False(t, ok)
}
