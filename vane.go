package vane

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Vane is an HTTP application: a router plus a pre-routing interception
// phase that runs before any route is matched.
type Vane struct {
	server       *http.Server
	tlsCertFile  string
	tlsKeyFile   string
	router       *Router
	middleware   []Middleware // Global middleware
	preRouting   []preRoutingHook
	contextPool  sync.Pool
	notFoundFn   func(*Context) // 404
	errorHandler func(*Context, error)
}

// New creates a new application.
func New() *Vane {
	v := &Vane{
		router: &Router{},
		errorHandler: func(c *Context, err error) {
			Log.Error("Error in handler",
				zap.Error(err),
				zap.String("path", c.request.Path()))
		},
	}

	// Context pool
	v.contextPool.New = func() any { return &Context{v: v} }

	return v
}

// NewWithConfig creates an application carrying the server settings from cfg.
func NewWithConfig(cfg Config) *Vane {
	v := New()
	v.tlsCertFile = cfg.TLSCertFile
	v.tlsKeyFile = cfg.TLSKeyFile
	v.server = cfg.httpServer(v)
	return v
}

func (v *Vane) NotFoundFn(f func(*Context)) {
	v.notFoundFn = f
}

func (v *Vane) TlsCertFile(f string) {
	v.tlsCertFile = f
}

func (v *Vane) TlsKeyFile(f string) {
	v.tlsKeyFile = f
}

// ErrorHandler replaces the handler invoked when a routed handler returns
// an error.
func (v *Vane) ErrorHandler(f func(*Context, error)) {
	v.errorHandler = f
}

// OnPreRouting registers a handler that runs before route matching, in
// registration order. A handler can let the request through, rewrite its
// URL, or answer it outright; later handlers observe earlier rewrites.
func (v *Vane) OnPreRouting(h PreRoutingHandler) {
	v.preRouting = append(v.preRouting, adaptPreRouting(Log, h))
}

// Add registers a new handler for the given method and path.
func (v *Vane) Add(method, path string, handler Handler, m ...Middleware) {
	path = "/" + strings.Trim(path, "/")
	v.router.Add(method, path, handler.Chain(append(v.middleware, m...)...))
}

// Get registers your function to be called when the given GET path has been requested.
func (v *Vane) Get(path string, handler Handler, m ...Middleware) {
	v.Add(http.MethodGet, path, handler, m...)
}

// Post registers your function to be called when the given POST path has been requested.
func (v *Vane) Post(path string, handler Handler, m ...Middleware) {
	v.Add(http.MethodPost, path, handler, m...)
}

// Put registers your function to be called when the given PUT path has been requested.
func (v *Vane) Put(path string, handler Handler, m ...Middleware) {
	v.Add(http.MethodPut, path, handler, m...)
}

// Patch registers your function to be called when the given PATCH path has been requested.
func (v *Vane) Patch(path string, handler Handler, m ...Middleware) {
	v.Add(http.MethodPatch, path, handler, m...)
}

// Delete registers your function to be called when the given DELETE path has been requested.
func (v *Vane) Delete(path string, handler Handler, m ...Middleware) {
	v.Add(http.MethodDelete, path, handler, m...)
}

// Static binds a directory.
// v.Static("/static", "static/")
func (v *Vane) Static(path, bind string, m ...Middleware) {
	relativePath := "/" + strings.Trim(path, "/") + "/*file"
	handler := func(c *Context) error {
		return c.File(bind + c.Get("file"))
	}
	v.Get(relativePath, handler, m...)
}

// Router returns the router used by the application.
func (v *Vane) Router() *Router {
	return v.router
}

// Group creates a router group.
func (v *Vane) Group(name string, m ...Middleware) *Group {
	name = strings.Trim(name, "/")
	return &Group{app: v, name: name, middleware: m}
}

// Use adds middleware to your middleware chain.
func (v *Vane) Use(m ...Middleware) {
	v.middleware = append(v.middleware, m...)
}

// ServeHTTP responds to the given request. Pre-routing hooks run first;
// route lookup happens afterwards so it sees any rewritten URL.
func (v *Vane) ServeHTTP(response http.ResponseWriter, request *http.Request) {
	c := v.newContext(request, response)

	for _, hook := range v.preRouting {
		if hook(c) {
			c.Close()
			return
		}
	}

	c.handler = v.router.Lookup(request.Method, request.URL.Path, c.addParameter)
	if c.handler == nil {
		if v.notFoundFn != nil {
			v.notFoundFn(c)
		} else {
			response.WriteHeader(http.StatusNotFound)
		}
		c.Close()
		return
	}

	err := c.handler(c)
	if err != nil {
		v.errorHandler(c, err)
	}
	c.Close()
}

// Run starts your application and blocks until a shutdown signal arrives
// or the server fails. With no address it falls back to $PORT, then :7771.
func (v *Vane) Run(address ...string) error {
	addr := resolveAddress(address)
	Log.Debug("Listening and serving HTTP(S)", zap.String("address", addr))

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	if v.server == nil {
		v.server = &http.Server{Addr: addr}
	}
	v.server.Addr = addr
	v.server.Handler = v
	errCh := make(chan error, 1)
	go func() {
		err := v.listenAndServe()
		if err != nil && err != http.ErrServerClosed {
			Log.Error("http(s) listen error", zap.Error(err))
			errCh <- err
		}
	}()

	select {
	case sig := <-stop:
		Log.Info("Shutting down signal", zap.String("signal", sig.String()))
		return v.Shutdown()
	case err := <-errCh:
		return errors.Wrapf(err, "http(s) server error, addr: %v", addr)
	}
}

// RunListener starts your application on the given listener.
func (v *Vane) RunListener(l net.Listener) error {
	Log.Debug("Listening and serving HTTP(S) on listener",
		zap.String("address", l.Addr().String()))

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	if v.server == nil {
		v.server = &http.Server{}
	}
	v.server.Handler = v
	errCh := make(chan error, 1)
	go func() {
		var err error
		if v.tlsCertFile == "" || v.tlsKeyFile == "" {
			err = v.server.Serve(l)
		} else {
			err = v.server.ServeTLS(l, v.tlsCertFile, v.tlsKeyFile)
		}
		if err != nil && err != http.ErrServerClosed {
			Log.Error("listen server error", zap.Error(err))
			errCh <- err
		}
	}()

	select {
	case sig := <-stop:
		Log.Info("Shutting down signal", zap.String("signal", sig.String()))
		return v.Shutdown()
	case err := <-errCh:
		return errors.Wrapf(err, "listen server: %v", l.Addr())
	}
}

// Start runs the server without installing signal handlers; the caller
// controls when to stop via Shutdown.
func (v *Vane) Start(addr string) error {
	Log.Debug("Listening and serving HTTP(S)", zap.String("address", addr))

	if v.server == nil {
		v.server = &http.Server{}
	}
	v.server.Addr = addr
	v.server.Handler = v
	err := v.listenAndServe()
	if err != nil && err != http.ErrServerClosed {
		return errors.Wrapf(err, "http server error, addr: %v", addr)
	}
	return nil
}

func (v *Vane) listenAndServe() error {
	if v.tlsCertFile == "" || v.tlsKeyFile == "" {
		return v.server.ListenAndServe()
	}
	return v.server.ListenAndServeTLS(v.tlsCertFile, v.tlsKeyFile)
}

func (v *Vane) Shutdown() error {
	Log.Info("Shutting down http(s) server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := v.server.Shutdown(ctx); err != nil {
		return errors.Wrap(err, "http(s) server forced to shutdown")
	}
	Log.Info("Http(s) server exited properly")
	return nil
}

// newContext returns a new context from the pool.
func (v *Vane) newContext(req *http.Request, res http.ResponseWriter) *Context {
	c := v.contextPool.Get().(*Context)
	c.status = http.StatusOK
	c.request.req = req
	c.response.rw = res
	c.paramCount = 0
	c.sameSite = 0
	c.keys = nil
	return c
}

// EnableLogRequest records every request through the package logger.
func (v *Vane) EnableLogRequest() {
	v.Use(func(next Handler) Handler {
		return func(c *Context) error {
			start := time.Now()
			path := c.request.Path()
			query := c.request.RawQuery()
			method := c.request.Method()

			err := next(c)

			latency := time.Since(start)
			if latency > time.Minute {
				latency = latency - latency%time.Second
			}
			Log.Info("Request record",
				zap.Int("status", c.Status()),
				zap.String("method", method),
				zap.String("path", path),
				zap.String("query", query),
				zap.String("ip", c.ClientIP()),
				zap.String("user-agent", c.request.req.UserAgent()),
				zap.Duration("latency", latency))

			return err
		}
	})
}
