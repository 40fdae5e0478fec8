package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
)

type Parameter map[string]string

func (p Parameter) Encode() string {
	var parameters []string
	for key, value := range p {
		parameters = append(parameters, key+"="+url.QueryEscape(value))
	}
	sort.Strings(parameters)
	return strings.Join(parameters, "&")
}

// JSONBody marshals any value into an application/json request body.
type JSONBody struct {
	V any
}

func NewJSONBody(v any) JSONBody {
	return JSONBody{V: v}
}

func (b JSONBody) ToReader() (io.Reader, string, error) {
	raw, err := json.Marshal(b.V)
	if err != nil {
		return nil, "", err
	}

	return bytes.NewReader(raw), "application/json", nil
}

// Response is the raw outcome of a request. Decoding is left to the caller so
// endpoint wrappers can project into their own types.
type Response struct {
	Code    int
	Header  http.Header
	RawBody []byte
}

func (r *Response) Decode(v any) error {
	if len(r.RawBody) == 0 {
		return nil
	}

	return json.Unmarshal(r.RawBody, v)
}
