package api

import (
	"context"
	"net/http"
)

type MockAPIGenerator struct {
	MockClient MockAPIClient
}

func (m *MockAPIGenerator) New(path string, args ...any) Client {
	m.MockClient.Path = path
	return &m.MockClient
}

type MockAPIClient struct {
	Path string

	HeaderFunc func(name, value string) Client
	QueryFunc  func(query Parameter) Client
	BodyFunc   func(body Body) Client
	DoFunc     func(ctx context.Context, method string, opts ...Opt) (*Response, error)
}

func (c *MockAPIClient) Header(name, value string) Client {
	if c.HeaderFunc != nil {
		return c.HeaderFunc(name, value)
	}

	return c
}

func (c *MockAPIClient) Query(query Parameter) Client {
	if c.QueryFunc != nil {
		return c.QueryFunc(query)
	}

	return c
}

func (c *MockAPIClient) Body(body Body) Client {
	if c.BodyFunc != nil {
		return c.BodyFunc(body)
	}

	return c
}

func (c *MockAPIClient) GET(ctx context.Context, opts ...Opt) (*Response, error) {
	return c.Do(ctx, http.MethodGet, opts...)
}

func (c *MockAPIClient) POST(ctx context.Context, opts ...Opt) (*Response, error) {
	return c.Do(ctx, http.MethodPost, opts...)
}

func (c *MockAPIClient) PUT(ctx context.Context, opts ...Opt) (*Response, error) {
	return c.Do(ctx, http.MethodPut, opts...)
}

func (c *MockAPIClient) PATCH(ctx context.Context, opts ...Opt) (*Response, error) {
	return c.Do(ctx, http.MethodPatch, opts...)
}

func (c *MockAPIClient) DELETE(ctx context.Context, opts ...Opt) (*Response, error) {
	return c.Do(ctx, http.MethodDelete, opts...)
}

func (c *MockAPIClient) Do(ctx context.Context, method string, opts ...Opt) (*Response, error) {
	if c.DoFunc != nil {
		return c.DoFunc(ctx, method, opts...)
	}

	panic("not implemented")
}
