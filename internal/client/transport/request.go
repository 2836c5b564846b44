package transport

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/bookshelf/internal/common"
)

// Request is a replayable HTTP request. Path may carry a query string and is
// resolved against the transport's base URL.
type Request struct {
	Method string
	Path   string
	Header http.Header
	Body   []byte
}

// NewRequest builds a request without a body.
func NewRequest(method, path string) Request {
	return Request{Method: method, Path: path}
}

// NewJSONRequest builds a request whose body is v encoded as JSON.
func NewJSONRequest(method, path string, v any) (Request, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return Request{}, fmt.Errorf("encode %s %s body: %w", method, path, err)
	}
	h := make(http.Header)
	h.Set(common.ContentTypeHeader, common.ContentTypeJSON)
	return Request{Method: method, Path: path, Header: h, Body: body}, nil
}

// RawResponse is a fully read HTTP response.
type RawResponse struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

// OK reports a 2xx status.
func (r *RawResponse) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// IsJSON reports whether the response declares a JSON body.
func (r *RawResponse) IsJSON() bool {
	return isJSON(r.ContentType)
}

func isJSON(contentType string) bool {
	return strings.Contains(strings.ToLower(contentType), common.ContentTypeJSON)
}
