package rest

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/quartzlab/discordkit/internal/ratelimit"
	"github.com/quartzlab/discordkit/pkg/api"
	"github.com/quartzlab/discordkit/pkg/errorx"
	"github.com/quartzlab/discordkit/pkg/xcontext"
)

const (
	DefaultBaseURL = "https://discord.com/api"

	userAgent = "DiscordBot (https://github.com/quartzlab/discordkit, 1.0)"
)

// ThrottleNotify is called whenever a call is suppressed locally or answered
// with a 429, so the caller can surface the event. No retry happens here;
// retry policy belongs to whoever owns the call.
type ThrottleNotify func(resetAt time.Time)

// Transport is the generic authenticated request executor every endpoint
// wrapper builds on. It consults the governor before sending and feeds the
// response's quota headers back afterwards.
type Transport struct {
	token    string
	gen      api.Generator
	governor *ratelimit.Governor
	notify   ThrottleNotify
}

func NewTransport(token string, governor *ratelimit.Governor) *Transport {
	return &Transport{
		token:    token,
		gen:      api.NewGenerator(DefaultBaseURL),
		governor: governor,
	}
}

// WithGenerator swaps the underlying HTTP client factory, mainly for tests
// and self-hosted API instances.
func (t *Transport) WithGenerator(gen api.Generator) *Transport {
	t.gen = gen
	return t
}

func (t *Transport) OnThrottle(fn ThrottleNotify) {
	t.notify = fn
}

// Execute runs one authenticated JSON request against the given route
// bucket. Outcomes: nil error with the response on 2xx, ErrTooManyRequests on
// governor denial or a 429, ErrRequestFailed carrying the status otherwise.
func (t *Transport) Execute(ctx context.Context, method, path string, body any, bucket ratelimit.Key) (*api.Response, error) {
	if err := t.governor.Reserve(bucket); err != nil {
		if resetAt, ok := errorx.IsRateLimit(err); ok {
			xcontext.Logger(ctx).Debugf("Suppressed %s %s, bucket %s resets at %v", method, path, bucket, resetAt)
			t.throttled(resetAt)
		}

		return nil, err
	}

	client := t.gen.New(path).Header("User-Agent", userAgent)
	if body != nil {
		client = client.Body(api.NewJSONBody(body))
	}

	resp, err := client.Do(ctx, method, api.Auth("Bot", t.token))
	if err != nil {
		return nil, err
	}

	t.observe(bucket, resp.Header)

	switch {
	case resp.Code >= 200 && resp.Code < 300:
		return resp, nil

	case resp.Code == http.StatusTooManyRequests:
		resetAt := resetFrom(resp.Header)
		xcontext.Logger(ctx).Warnf("Got 429 on %s %s, bucket %s resets at %v", method, path, bucket, resetAt)
		t.throttled(resetAt)
		return nil, errorx.NewRateLimit(resetAt)

	default:
		xcontext.Logger(ctx).Warnf("Request %s %s failed with status %d", method, path, resp.Code)
		return nil, errorx.NewStatus(resp.Code)
	}
}

func (t *Transport) throttled(resetAt time.Time) {
	if t.notify != nil {
		t.notify(resetAt)
	}
}

// observe feeds quota headers to the governor. Their absence is normal for
// unmetered routes.
func (t *Transport) observe(bucket ratelimit.Key, header http.Header) {
	limitStr := header.Get("X-RateLimit-Limit")
	remainingStr := header.Get("X-RateLimit-Remaining")
	resetStr := header.Get("X-RateLimit-Reset")
	if limitStr == "" || remainingStr == "" || resetStr == "" {
		return
	}

	limit, err := strconv.Atoi(limitStr)
	if err != nil {
		return
	}

	remaining, err := strconv.Atoi(remainingStr)
	if err != nil {
		return
	}

	reset, err := strconv.ParseInt(resetStr, 10, 64)
	if err != nil {
		return
	}

	t.governor.Observe(bucket, limit, remaining, time.Unix(reset, 0))
}

func resetFrom(header http.Header) time.Time {
	reset, err := strconv.ParseInt(header.Get("X-RateLimit-Reset"), 10, 64)
	if err != nil {
		return time.Now()
	}

	return time.Unix(reset, 0)
}
