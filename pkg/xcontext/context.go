package xcontext

import (
	"context"
	"net/http"

	"github.com/quartzlab/discordkit/pkg/logger"
)

type (
	loggerKey     struct{}
	httpClientKey struct{}
)

func WithLogger(ctx context.Context, l logger.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// Logger returns the logger attached to ctx, or a default INFO logger if none
// was attached.
func Logger(ctx context.Context) logger.Logger {
	if l, ok := ctx.Value(loggerKey{}).(logger.Logger); ok {
		return l
	}

	return logger.NewLogger(logger.INFO)
}

func WithHTTPClient(ctx context.Context, client *http.Client) context.Context {
	return context.WithValue(ctx, httpClientKey{}, client)
}

// HTTPClient returns the http client attached to ctx, falling back to
// http.DefaultClient. Timeouts are the client's business, not this layer's.
func HTTPClient(ctx context.Context) *http.Client {
	if c, ok := ctx.Value(httpClientKey{}).(*http.Client); ok {
		return c
	}

	return http.DefaultClient
}
