package ratelimit

import (
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/require"

	"github.com/quartzlab/discordkit/pkg/errorx"
)

func TestGovernor_UnknownBucketGrants(t *testing.T) {
	g := NewGovernor()

	for i := 0; i < 100; i++ {
		require.NoError(t, g.Reserve(GuildKey(10)))
	}
}

func TestGovernor_DeniesWhenDrained(t *testing.T) {
	mock := clock.NewMock()
	g := NewGovernorWithClock(mock)

	key := GuildKey(10)
	resetAt := mock.Now().Add(time.Minute)
	g.Observe(key, 5, 2, resetAt)

	require.NoError(t, g.Reserve(key))
	require.NoError(t, g.Reserve(key))

	err := g.Reserve(key)
	gotReset, ok := errorx.IsRateLimit(err)
	require.True(t, ok)
	require.Equal(t, resetAt, gotReset)

	// A different target on the same scope is a different bucket.
	require.NoError(t, g.Reserve(GuildKey(11)))
}

func TestGovernor_StaleMemoryIsDiscarded(t *testing.T) {
	mock := clock.NewMock()
	g := NewGovernorWithClock(mock)

	key := ChannelKey(7)
	g.Observe(key, 5, 0, mock.Now().Add(time.Minute))

	_, ok := errorx.IsRateLimit(g.Reserve(key))
	require.True(t, ok)

	mock.Add(time.Minute + time.Second)

	// Past the reset time the bucket is treated as fresh, not trusted.
	require.NoError(t, g.Reserve(key))
	_, _, _, known := g.Snapshot(key)
	require.False(t, known)
}

func TestGovernor_ObserveOverridesPrediction(t *testing.T) {
	mock := clock.NewMock()
	g := NewGovernorWithClock(mock)

	key := GuildKey(10)
	g.Observe(key, 5, 5, mock.Now().Add(time.Minute))

	// Fresher server state wins even when it is stricter than what the
	// governor predicted locally.
	newReset := mock.Now().Add(2 * time.Minute)
	g.Observe(key, 5, 0, newReset)

	gotReset, ok := errorx.IsRateLimit(g.Reserve(key))
	require.True(t, ok)
	require.Equal(t, newReset, gotReset)
}

func TestGovernor_ZeroRemainingHeadersDenyUntilReset(t *testing.T) {
	mock := clock.NewMock()
	g := NewGovernorWithClock(mock)

	key := GuildKey(10)
	g.Observe(key, 5, 0, mock.Now().Add(60*time.Second))

	_, ok := errorx.IsRateLimit(g.Reserve(key))
	require.True(t, ok)

	// Fresh headers re-open the bucket before the reset elapses.
	g.Observe(key, 5, 1, mock.Now().Add(60*time.Second))
	require.NoError(t, g.Reserve(key))

	// And the single granted slot is gone again.
	_, ok = errorx.IsRateLimit(g.Reserve(key))
	require.True(t, ok)
}
