package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClientDo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/channels/100/messages", r.URL.Path)
		require.Equal(t, "Bot secret", r.Header.Get("Authorization"))
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.Equal(t, "tester", r.Header.Get("User-Agent"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "hello", body["content"])

		w.Header().Set("X-Custom", "yes")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"id":"1"}`))
	}))
	defer srv.Close()

	resp, err := NewGenerator(srv.URL).New("/channels/%d/messages", 100).
		Header("User-Agent", "tester").
		Body(NewJSONBody(map[string]string{"content": "hello"})).
		POST(context.Background(), Auth("Bot", "secret"))
	require.NoError(t, err)

	require.Equal(t, http.StatusOK, resp.Code)
	require.Equal(t, "yes", resp.Header.Get("X-Custom"))

	var out struct {
		ID string `json:"id"`
	}
	require.NoError(t, resp.Decode(&out))
	require.Equal(t, "1", out.ID)
}

func TestClientQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "25", r.URL.Query().Get("limit"))
		require.Equal(t, "general chat", r.URL.Query().Get("q"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	resp, err := NewGenerator(srv.URL).New("/search").
		Query(Parameter{"limit": "25", "q": "general chat"}).
		GET(context.Background())
	require.NoError(t, err)
	require.Equal(t, http.StatusNoContent, resp.Code)
}

func TestParameterEncodeIsDeterministic(t *testing.T) {
	p := Parameter{"b": "2", "a": "1", "c": "x y"}
	require.Equal(t, "a=1&b=2&c=x+y", p.Encode())
}

func TestResponseDecodeEmptyBody(t *testing.T) {
	resp := &Response{Code: http.StatusNoContent}

	var out struct {
		ID string `json:"id"`
	}
	require.NoError(t, resp.Decode(&out))
	require.Empty(t, out.ID)
}
