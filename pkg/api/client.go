package api

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/quartzlab/discordkit/pkg/xcontext"
)

// Client builds and executes a single HTTP request against the API host. All
// builder methods return the same client for chaining.
type Client interface {
	Header(name, value string) Client
	Query(query Parameter) Client
	Body(body Body) Client
	GET(ctx context.Context, opts ...Opt) (*Response, error)
	POST(ctx context.Context, opts ...Opt) (*Response, error)
	PUT(ctx context.Context, opts ...Opt) (*Response, error)
	PATCH(ctx context.Context, opts ...Opt) (*Response, error)
	DELETE(ctx context.Context, opts ...Opt) (*Response, error)
	Do(ctx context.Context, method string, opts ...Opt) (*Response, error)
}

// Generator mints clients bound to a base URL. The mock implementation in
// mock.go substitutes for it in tests.
type Generator interface {
	New(path string, args ...any) Client
}

type defaultGenerator struct {
	baseURL string
}

func NewGenerator(baseURL string) *defaultGenerator {
	return &defaultGenerator{baseURL: baseURL}
}

func (g *defaultGenerator) New(path string, args ...any) Client {
	return &defaultClient{
		baseURL: g.baseURL,
		path:    fmt.Sprintf(path, args...),
		headers: make(http.Header),
	}
}

// Body is a request payload together with its content type.
type Body interface {
	ToReader() (io.Reader, string, error)
}

// Opt mutates the outgoing request just before it is sent, e.g. to attach
// credentials.
type Opt interface {
	Do(*http.Request)
}

type defaultClient struct {
	baseURL string
	path    string
	headers http.Header
	query   Parameter
	body    Body
}

func (c *defaultClient) Header(name, value string) Client {
	c.headers.Set(name, value)
	return c
}

func (c *defaultClient) Query(query Parameter) Client {
	c.query = query
	return c
}

func (c *defaultClient) Body(body Body) Client {
	c.body = body
	return c
}

func (c *defaultClient) GET(ctx context.Context, opts ...Opt) (*Response, error) {
	return c.Do(ctx, http.MethodGet, opts...)
}

func (c *defaultClient) POST(ctx context.Context, opts ...Opt) (*Response, error) {
	return c.Do(ctx, http.MethodPost, opts...)
}

func (c *defaultClient) PUT(ctx context.Context, opts ...Opt) (*Response, error) {
	return c.Do(ctx, http.MethodPut, opts...)
}

func (c *defaultClient) PATCH(ctx context.Context, opts ...Opt) (*Response, error) {
	return c.Do(ctx, http.MethodPatch, opts...)
}

func (c *defaultClient) DELETE(ctx context.Context, opts ...Opt) (*Response, error) {
	return c.Do(ctx, http.MethodDelete, opts...)
}

func (c *defaultClient) Do(ctx context.Context, method string, opts ...Opt) (*Response, error) {
	var reader io.Reader
	var contentType string
	if c.body != nil {
		var err error
		reader, contentType, err = c.body.ToReader()
		if err != nil {
			return nil, err
		}
	}

	url := c.baseURL + c.path
	if c.query != nil {
		url = url + "?" + c.query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, err
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	for h, values := range c.headers {
		for _, v := range values {
			req.Header.Add(h, v)
		}
	}

	for _, opt := range opts {
		opt.Do(req)
	}

	result, err := xcontext.HTTPClient(ctx).Do(req)
	if err != nil {
		xcontext.Logger(ctx).Warnf("An error occurred when calling to %s: %v", url, err)
		return nil, err
	}
	defer result.Body.Close()

	body, err := io.ReadAll(result.Body)
	if err != nil {
		xcontext.Logger(ctx).Warnf("An error occurred when reading body of %s: %v", url, err)
		return nil, err
	}

	return &Response{
		Code:    result.StatusCode,
		Header:  result.Header,
		RawBody: body,
	}, nil
}
