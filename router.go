package vane

import "strings"

// Router matches request paths per HTTP method. Path segments starting with
// ':' capture a single segment, '*' captures the remainder of the path.
type Router struct {
	trees map[string]*node
}

type node struct {
	static   map[string]*node
	param    *node
	catchAll *node
	name     string
	handler  Handler
}

// Add registers a handler for the given method and path.
func (router *Router) Add(method, path string, handler Handler) {
	if router.trees == nil {
		router.trees = make(map[string]*node)
	}

	current := router.trees[method]
	if current == nil {
		current = &node{}
		router.trees[method] = current
	}

	for _, segment := range strings.Split(strings.Trim(path, "/"), "/") {
		if segment == "" {
			continue
		}
		switch segment[0] {
		case ':':
			if current.param == nil {
				current.param = &node{name: segment[1:]}
			}
			current = current.param
		case '*':
			if current.catchAll == nil {
				current.catchAll = &node{name: segment[1:]}
			}
			current = current.catchAll
		default:
			if current.static == nil {
				current.static = make(map[string]*node)
			}
			next := current.static[segment]
			if next == nil {
				next = &node{}
				current.static[segment] = next
			}
			current = next
		}
	}

	current.handler = handler
}

// Lookup finds the handler for the given method and path. Captured
// parameters are reported through addParameter as they are matched.
// It returns nil when no route matches.
func (router *Router) Lookup(method, path string, addParameter func(string, string)) Handler {
	root := router.trees[method]
	if root == nil {
		return nil
	}

	start := 0
	if len(path) > 0 && path[0] == '/' {
		start = 1
	}

	return root.lookup(path, start, addParameter)
}

// lookup matches the path from offset start. A dead static descent falls
// back to the param child, then the catch-all, so a deeper static route
// never shadows a sibling param route on a shared prefix.
func (n *node) lookup(path string, start int, addParameter func(string, string)) Handler {
	if start >= len(path) {
		return n.handler
	}

	segStart := start
	end := strings.IndexByte(path[start:], '/')
	var segment string
	if end == -1 {
		segment = path[start:]
		start = len(path)
	} else {
		segment = path[start : start+end]
		start += end + 1
	}

	if next, ok := n.static[segment]; ok {
		if h := next.lookup(path, start, addParameter); h != nil {
			return h
		}
	}
	if n.param != nil && segment != "" {
		if h := n.param.lookup(path, start, addParameter); h != nil {
			addParameter(n.param.name, segment)
			return h
		}
	}
	if n.catchAll != nil && n.catchAll.handler != nil {
		addParameter(n.catchAll.name, path[segStart:])
		return n.catchAll.handler
	}
	return nil
}
