package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/quartzlab/discordkit/internal/entity"
	"github.com/quartzlab/discordkit/internal/ratelimit"
	"github.com/quartzlab/discordkit/pkg/api"
	"github.com/quartzlab/discordkit/pkg/errorx"
)

func newTestTransport(do func(ctx context.Context, method string, opts ...api.Opt) (*api.Response, error)) (*Transport, *ratelimit.Governor) {
	governor := ratelimit.NewGovernor()
	tr := NewTransport("test-token", governor).WithGenerator(&api.MockAPIGenerator{
		MockClient: api.MockAPIClient{DoFunc: do},
	})

	return tr, governor
}

func TestExecute_Success(t *testing.T) {
	tr, _ := newTestTransport(func(ctx context.Context, method string, opts ...api.Opt) (*api.Response, error) {
		return &api.Response{Code: http.StatusOK, RawBody: []byte(`{"id":"555","channel_id":"100","content":"pong"}`)}, nil
	})

	msg, err := tr.CreateMessage(context.Background(), 100, "pong")
	require.NoError(t, err)
	require.Equal(t, entity.ID(555), msg.ID)
	require.Equal(t, "pong", msg.Content)
}

func TestExecute_TooManyRequestsIsNotRetried(t *testing.T) {
	resetAt := time.Now().Add(time.Minute).Unix()
	calls := 0
	tr, governor := newTestTransport(func(ctx context.Context, method string, opts ...api.Opt) (*api.Response, error) {
		calls++
		return &api.Response{
			Code: http.StatusTooManyRequests,
			Header: http.Header{
				"X-Ratelimit-Limit":     []string{"5"},
				"X-Ratelimit-Remaining": []string{"0"},
				"X-Ratelimit-Reset":     []string{strconv.FormatInt(resetAt, 10)},
			},
		}, nil
	})

	var notified time.Time
	tr.OnThrottle(func(at time.Time) { notified = at })

	_, err := tr.CreateMessage(context.Background(), 100, "hi")
	gotReset, ok := errorx.IsRateLimit(err)
	require.True(t, ok)
	require.Equal(t, resetAt, gotReset.Unix())
	require.Equal(t, resetAt, notified.Unix())
	require.Equal(t, 1, calls)

	// The 429 headers were observed, so the next call on the same bucket is
	// suppressed locally without touching the network.
	_, err = tr.CreateMessage(context.Background(), 100, "again")
	_, ok = errorx.IsRateLimit(err)
	require.True(t, ok)
	require.Equal(t, 1, calls)

	// Another channel is another bucket.
	require.NoError(t, governor.Reserve(ratelimit.ChannelKey(101)))
}

func TestExecute_ObservesHeadersOnSuccess(t *testing.T) {
	resetAt := time.Now().Add(time.Minute).Unix()
	tr, governor := newTestTransport(func(ctx context.Context, method string, opts ...api.Opt) (*api.Response, error) {
		return &api.Response{
			Code: http.StatusNoContent,
			Header: http.Header{
				"X-Ratelimit-Limit":     []string{"5"},
				"X-Ratelimit-Remaining": []string{"0"},
				"X-Ratelimit-Reset":     []string{strconv.FormatInt(resetAt, 10)},
			},
		}, nil
	})

	require.NoError(t, tr.AddMemberRole(context.Background(), 10, 1, 5))

	err := governor.Reserve(ratelimit.GuildKey(10))
	gotReset, ok := errorx.IsRateLimit(err)
	require.True(t, ok)
	require.Equal(t, resetAt, gotReset.Unix())
}

func TestExecute_HeaderlessResponseIsNormal(t *testing.T) {
	tr, governor := newTestTransport(func(ctx context.Context, method string, opts ...api.Opt) (*api.Response, error) {
		return &api.Response{Code: http.StatusNoContent}, nil
	})

	require.NoError(t, tr.RemoveBan(context.Background(), 10, 1))

	_, _, _, known := governor.Snapshot(ratelimit.GuildKey(10))
	require.False(t, known)
}

func TestExecute_RequestFailedCarriesStatus(t *testing.T) {
	tr, _ := newTestTransport(func(ctx context.Context, method string, opts ...api.Opt) (*api.Response, error) {
		return &api.Response{Code: http.StatusForbidden, RawBody: []byte(`{"message":"Missing Permissions"}`)}, nil
	})

	err := tr.CreateBan(context.Background(), 10, 1, 0, "spam")
	require.ErrorIs(t, err, errorx.ErrRequestFailed)

	status, ok := errorx.StatusOf(err)
	require.True(t, ok)
	require.Equal(t, http.StatusForbidden, status)
}

func TestGetGatewayBot(t *testing.T) {
	tr, _ := newTestTransport(func(ctx context.Context, method string, opts ...api.Opt) (*api.Response, error) {
		body, _ := json.Marshal(map[string]any{"url": "wss://gateway.example", "shards": 1})
		return &api.Response{Code: http.StatusOK, RawBody: body}, nil
	})

	url, err := tr.GetGatewayBot(context.Background())
	require.NoError(t, err)
	require.Equal(t, "wss://gateway.example", url)
}

func TestGetGatewayBot_BadBody(t *testing.T) {
	tr, _ := newTestTransport(func(ctx context.Context, method string, opts ...api.Opt) (*api.Response, error) {
		return &api.Response{Code: http.StatusOK, RawBody: []byte(`{}`)}, nil
	})

	_, err := tr.GetGatewayBot(context.Background())
	require.ErrorIs(t, err, errorx.ErrBadResponse)
}
