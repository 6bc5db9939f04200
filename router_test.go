package vane

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noopHandler(_ *Context) error { return nil }

func lookupParams(t *testing.T, router *Router, method, path string) (Handler, map[string]string) {
	t.Helper()
	params := map[string]string{}
	h := router.Lookup(method, path, func(name, value string) {
		params[name] = value
	})
	return h, params
}

func TestRouterStatic(t *testing.T) {
	router := &Router{}
	router.Add(http.MethodGet, "/users/all", noopHandler)

	h, _ := lookupParams(t, router, http.MethodGet, "/users/all")
	assert.NotNil(t, h)

	h, _ = lookupParams(t, router, http.MethodGet, "/users")
	assert.Nil(t, h)

	h, _ = lookupParams(t, router, http.MethodGet, "/users/all/extra")
	assert.Nil(t, h)
}

func TestRouterRoot(t *testing.T) {
	router := &Router{}
	router.Add(http.MethodGet, "/", noopHandler)

	h, _ := lookupParams(t, router, http.MethodGet, "/")
	assert.NotNil(t, h)
}

func TestRouterParam(t *testing.T) {
	router := &Router{}
	router.Add(http.MethodGet, "/users/:id/posts/:post", noopHandler)

	h, params := lookupParams(t, router, http.MethodGet, "/users/42/posts/7")
	require.NotNil(t, h)
	assert.Equal(t, "42", params["id"])
	assert.Equal(t, "7", params["post"])
}

func TestRouterStaticWinsOverParam(t *testing.T) {
	var matched string
	router := &Router{}
	router.Add(http.MethodGet, "/users/me", func(_ *Context) error {
		matched = "static"
		return nil
	})
	router.Add(http.MethodGet, "/users/:id", func(_ *Context) error {
		matched = "param"
		return nil
	})

	h, _ := lookupParams(t, router, http.MethodGet, "/users/me")
	require.NotNil(t, h)
	require.NoError(t, h(nil))
	assert.Equal(t, "static", matched)

	h, params := lookupParams(t, router, http.MethodGet, "/users/42")
	require.NotNil(t, h)
	require.NoError(t, h(nil))
	assert.Equal(t, "param", matched)
	assert.Equal(t, "42", params["id"])
}

func TestRouterParamFallbackOnDeadStaticPath(t *testing.T) {
	router := &Router{}
	router.Add(http.MethodGet, "/a/b/c", noopHandler)
	router.Add(http.MethodGet, "/a/:id", noopHandler)

	// The static "b" subtree has no handler at this depth; matching must
	// fall back to the sibling param route.
	h, params := lookupParams(t, router, http.MethodGet, "/a/b")
	require.NotNil(t, h)
	assert.Equal(t, "b", params["id"])

	// The deeper static route still wins on its own path.
	h, params = lookupParams(t, router, http.MethodGet, "/a/b/c")
	require.NotNil(t, h)
	assert.Empty(t, params)
}

func TestRouterCatchAllFallbackOnDeadStaticPath(t *testing.T) {
	router := &Router{}
	router.Add(http.MethodGet, "/files/static/logo.png", noopHandler)
	router.Add(http.MethodGet, "/files/*path", noopHandler)

	h, params := lookupParams(t, router, http.MethodGet, "/files/static")
	require.NotNil(t, h)
	assert.Equal(t, "static", params["path"])
}

func TestRouterCatchAll(t *testing.T) {
	router := &Router{}
	router.Add(http.MethodGet, "/static/*file", noopHandler)

	h, params := lookupParams(t, router, http.MethodGet, "/static/css/site.css")
	require.NotNil(t, h)
	assert.Equal(t, "css/site.css", params["file"])
}

func TestRouterMethodSeparation(t *testing.T) {
	router := &Router{}
	router.Add(http.MethodPost, "/users", noopHandler)

	h, _ := lookupParams(t, router, http.MethodGet, "/users")
	assert.Nil(t, h)

	h, _ = lookupParams(t, router, http.MethodPost, "/users")
	assert.NotNil(t, h)
}
