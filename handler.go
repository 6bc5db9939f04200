package vane

// Handler responds to a single request through its Context.
type Handler func(*Context) error

// Middleware wraps a Handler to add behavior around it.
type Middleware func(Handler) Handler

// Chain applies the middleware to the handler, first middleware outermost.
func (h Handler) Chain(middleware ...Middleware) Handler {
	for i := len(middleware) - 1; i >= 0; i-- {
		h = middleware[i](h)
	}

	return h
}
