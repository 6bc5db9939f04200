package vane

import (
	"github.com/google/uuid"
)

const (
	// RequestIDKey is the context key the request id is stored under.
	RequestIDKey = "vane_requestid"

	requestIDHeader = "X-Request-Id"
)

// RequestID returns a middleware that tags every request with an id. An id
// supplied by the client is kept, otherwise a fresh UUID is generated. The
// id is stored in the context keys and echoed in the response header.
func RequestID() Middleware {
	return func(next Handler) Handler {
		return func(c *Context) error {
			id := c.request.Header(requestIDHeader)
			if id == "" {
				id = uuid.NewString()
			}
			c.SetKey(RequestIDKey, id)
			c.response.SetHeader(requestIDHeader, id)
			return next(c)
		}
	}
}
