package vane

import (
	stdContext "context"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"
)

// RoutingResult is the decision a PreRoutingHandler hands back to the
// server. It is either "keep going" or "route against this URL instead",
// built through the RoutingToolkit, or a *Reply to answer immediately.
type RoutingResult interface {
	isRoutingResult()
}

type routingResultKind int

const (
	resultNext routingResultKind = iota + 1
	resultRewrite
)

type routingResult struct {
	kind routingResultKind
	url  string
}

func (*routingResult) isRoutingResult() {}

// RoutingToolkit builds the results a pre-routing handler may return.
type RoutingToolkit struct{}

// Next tells the server to continue routing with the request as-is.
func (RoutingToolkit) Next() RoutingResult {
	return &routingResult{kind: resultNext}
}

// RewriteURL tells the server to route the request against u instead of
// the URL the client sent. The URL the client sent stays readable through
// OriginalURL.
func (RoutingToolkit) RewriteURL(u string) RoutingResult {
	return &routingResult{kind: resultRewrite, url: u}
}

// Reply is a fully formed response a pre-routing handler can short-circuit
// the request with. Build one through a ReplyFactory.
type Reply struct {
	status int
	header http.Header
	body   []byte
}

func (*Reply) isRoutingResult() {}

// SetHeader adds a response header and returns the Reply for chaining.
func (r *Reply) SetHeader(key, value string) *Reply {
	if r.header == nil {
		r.header = http.Header{}
	}
	r.header.Set(key, value)
	return r
}

// Status returns the reply's HTTP status.
func (r *Reply) Status() int {
	return r.status
}

// Body returns the reply's body.
func (r *Reply) Body() []byte {
	return r.body
}

// ReplyFactory builds Reply values for pre-routing handlers.
type ReplyFactory struct{}

// Ok builds a 200 reply with the given body.
func (ReplyFactory) Ok(body []byte) *Reply {
	return &Reply{status: http.StatusOK, body: body}
}

// Status builds a reply with an arbitrary status code and body.
func (ReplyFactory) Status(status int, body []byte) *Reply {
	return &Reply{status: status, body: body}
}

// Redirect builds a redirect reply to the given location.
func (ReplyFactory) Redirect(status int, location string) *Reply {
	r := &Reply{status: status}
	return r.SetHeader("Location", location)
}

// Forbidden builds a 403 reply.
func (ReplyFactory) Forbidden(body []byte) *Reply {
	return &Reply{status: http.StatusForbidden, body: body}
}

// InternalError builds the generic 500 reply used whenever a pre-routing
// handler misbehaves.
func (ReplyFactory) InternalError() *Reply {
	return &Reply{
		status: http.StatusInternalServerError,
		body:   []byte(http.StatusText(http.StatusInternalServerError)),
	}
}

// PreRoutingHandler inspects a request before route matching. It returns
// exactly one of: a toolkit result (continue or rewrite), a *Reply to answer
// immediately, or an error. Errors never reach the client verbatim; the
// server logs them and answers with a generic 500.
type PreRoutingHandler func(req Request, res ReplyFactory, t RoutingToolkit) (RoutingResult, error)

// preRoutingHook is the shape the serving loop consumes. handled reports
// that a response was written and routing must stop.
type preRoutingHook func(c *Context) (handled bool)

type originalURLKey struct{}

// OriginalURL reports the request-target the client sent before the first
// pre-routing rewrite. ok is false when the request was never rewritten.
func OriginalURL(r *http.Request) (u string, ok bool) {
	u, ok = r.Context().Value(originalURLKey{}).(string)
	return
}

// adaptPreRouting turns a PreRoutingHandler into the hook shape the serving
// loop runs before route lookup. Whatever the handler does, the hook never
// panics out of the request pipeline: handler errors, panics and
// unrecognized results all become a logged generic 500.
func adaptPreRouting(logger *zap.Logger, handler PreRoutingHandler) preRoutingHook {
	return func(c *Context) (handled bool) {
		defer func() {
			if v := recover(); v != nil {
				logger.Error("pre-routing handler panicked",
					zap.Any("error", v),
					zap.String("path", c.request.Path()))
				c.writeReply(ReplyFactory{}.InternalError())
				handled = true
			}
		}()

		result, err := handler(&c.request, ReplyFactory{}, RoutingToolkit{})
		if err != nil {
			logger.Error("pre-routing handler failed",
				zap.Error(err),
				zap.String("path", c.request.Path()))
			c.writeReply(ReplyFactory{}.InternalError())
			return true
		}

		switch res := result.(type) {
		case *Reply:
			c.writeReply(res)
			return true
		case *routingResult:
			switch res.kind {
			case resultNext:
				return false
			case resultRewrite:
				if err := rewriteRequestURL(c.request.req, res.url); err != nil {
					logger.Error("pre-routing rewrite failed",
						zap.Error(err),
						zap.String("path", c.request.Path()),
						zap.String("rewrite", res.url))
					c.writeReply(ReplyFactory{}.InternalError())
					return true
				}
				return false
			}
		}

		// A result the toolkit did not build is a bug in the handler.
		logger.Error("pre-routing handler returned an unrecognized result",
			zap.String("path", c.request.Path()))
		c.writeReply(ReplyFactory{}.InternalError())
		return true
	}
}

// rewriteRequestURL points the in-flight request at target. Both the parsed
// URL the router matches against and the raw request-target read by
// reverse-proxy code are updated together; on a bad target neither changes.
// The first rewrite records the pre-rewrite URL in the request context.
func rewriteRequestURL(req *http.Request, target string) error {
	u, err := url.ParseRequestURI(target)
	if err != nil {
		return err
	}

	if _, ok := req.Context().Value(originalURLKey{}).(string); !ok {
		// Go strings are immutable values, so no copy is needed for
		// correctness; Clone only detaches the recorded URL from any
		// larger buffer backing the request line.
		original := strings.Clone(req.URL.RequestURI())
		*req = *req.WithContext(stdContext.WithValue(req.Context(), originalURLKey{}, original))
	}

	req.URL = u
	req.RequestURI = u.RequestURI()
	return nil
}
