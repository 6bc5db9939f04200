package vane

import (
	"bytes"
	stdContext "context"
	"io"
	"net/http"

	"github.com/vanehttp/vane/tools"
)

type Request interface {
	RawData() ([]byte, error)
	RawDataSetBody() ([]byte, error)
	Context() stdContext.Context
	Header(string) string
	Host() string
	Method() string
	Path() string
	Protocol() string
	Scheme() string
	RawQuery() string
	RequestURI() string
	ContentType() string
	Req() *http.Request
}

type request struct {
	req *http.Request
}

func (r *request) RawData() ([]byte, error) {
	return tools.ReadAll(r.req.Body)
}

func (r *request) RawDataSetBody() (b []byte, err error) {
	b, err = tools.ReadAll(r.req.Body)
	if err != nil {
		return
	}
	r.req.Body = io.NopCloser(bytes.NewBuffer(b))
	return
}

func (r *request) Context() stdContext.Context {
	return r.req.Context()
}

func (r *request) Header(key string) string {
	return r.req.Header.Get(key)
}

func (r *request) Method() string {
	return r.req.Method
}

func (r *request) Protocol() string {
	return r.req.Proto
}

func (r *request) Host() string {
	return r.req.Host
}

func (r *request) Path() string {
	return r.req.URL.Path
}

func (r *request) RawQuery() string {
	return r.req.URL.RawQuery
}

// RequestURI returns the unmodified request-target from the request line.
// Reverse-proxy code tends to read this field rather than the parsed URL.
func (r *request) RequestURI() string {
	return r.req.RequestURI
}

func (r *request) Scheme() string {
	scheme := r.Header("X-Forwarded-Proto")
	if scheme != "" {
		return scheme
	}

	if r.req.TLS != nil {
		return "https"
	}

	return "http"
}

func (r *request) ContentType() string {
	return filterFlags(r.Header("Content-Type"))
}

func (r *request) Req() *http.Request {
	return r.req
}
