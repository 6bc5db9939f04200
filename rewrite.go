package vane

// RewriteContext is the interface for the URI rewrite ability. *Context
// implements it; routed handlers can use it where the full pre-routing
// toolkit is not available.
type RewriteContext interface {
	Path() string
	SetPath(string)
}

var _ RewriteContext = (*Context)(nil)
