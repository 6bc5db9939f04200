package vane

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextJSON(t *testing.T) {
	app, _ := newTestApp(t)
	app.Get("/json", func(c *Context) error {
		return c.JSON(map[string]string{"hello": "world"})
	})

	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/json", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"hello":"world"}`, rec.Body.String())
}

func TestContextJSONAndStatus(t *testing.T) {
	app, _ := newTestApp(t)
	app.Get("/created", func(c *Context) error {
		return c.JSONAndStatus(http.StatusCreated, map[string]int{"id": 1})
	})

	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/created", nil))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"id":1}`, rec.Body.String())
}

func TestContextKeys(t *testing.T) {
	c := &Context{}
	c.SetKey("s", "text")
	c.SetKey("b", []byte("raw"))
	c.SetKey("ok", true)
	c.SetKey("n", 7)
	c.SetKey("n64", int64(9))

	assert.Equal(t, "text", c.GetKeyString("s"))
	assert.Equal(t, []byte("raw"), c.GetKeyByte("b"))
	assert.True(t, c.GetKeyBool("ok"))
	assert.Equal(t, 7, c.GetKeyInt("n"))
	assert.Equal(t, int64(9), c.GetKeyInt64("n64"))

	_, exists := c.GetKey("missing")
	assert.False(t, exists)
}

func TestContextParams(t *testing.T) {
	app, _ := newTestApp(t)
	app.Get("/users/:id", func(c *Context) error {
		id, err := c.GetInt("id")
		require.NoError(t, err)
		assert.Equal(t, 42, id)
		return c.Text(c.Get("id"))
	})

	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/42", nil))

	assert.Equal(t, "42", rec.Body.String())
}

func TestContextQuery(t *testing.T) {
	app, _ := newTestApp(t)
	app.Get("/q", func(c *Context) error {
		return c.Text(c.Query("name"))
	})

	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/q?name=vane", nil))

	assert.Equal(t, "vane", rec.Body.String())
}

func TestContextClientIP(t *testing.T) {
	app, _ := newTestApp(t)
	app.Get("/ip", func(c *Context) error {
		return c.Text(c.ClientIP())
	})

	req := httptest.NewRequest(http.MethodGet, "/ip", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	assert.Equal(t, "203.0.113.7", rec.Body.String())
}

func TestContextRedirect(t *testing.T) {
	app, _ := newTestApp(t)
	app.Get("/moved", func(c *Context) error {
		return c.Redirect(http.StatusMovedPermanently, "/elsewhere")
	})

	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/moved", nil))

	assert.Equal(t, http.StatusMovedPermanently, rec.Code)
	assert.Equal(t, "/elsewhere", rec.Header().Get("Location"))
}

func TestContextRewritePath(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/before", nil)
	c := &Context{}
	c.request.req = req

	var rw RewriteContext = c
	assert.Equal(t, "/before", rw.Path())
	rw.SetPath("/after")
	assert.Equal(t, "/after", req.URL.Path)
}

func TestContextBindJSON(t *testing.T) {
	app, _ := newTestApp(t)

	type payload struct {
		Name string `json:"name" binding:"required"`
		Age  int    `json:"age"`
	}

	app.Post("/bind", func(c *Context) error {
		var p payload
		if err := c.ShouldBindJSON(&p); err != nil {
			return c.Error(http.StatusBadRequest, err)
		}
		return c.JSON(p)
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/bind", strings.NewReader(`{"name":"ada","age":36}`))
	req.Header.Set("Content-Type", "application/json")
	app.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"name":"ada","age":36}`, rec.Body.String())

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/bind", strings.NewReader(`{"age":36}`))
	req.Header.Set("Content-Type", "application/json")
	app.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestContextCookie(t *testing.T) {
	app, _ := newTestApp(t)
	app.Get("/cookie", func(c *Context) error {
		v, err := c.Cookie("session")
		require.NoError(t, err)
		c.SetCookie("seen", "yes", 60, "", "", false, true)
		return c.Text(v)
	})

	req := httptest.NewRequest(http.MethodGet, "/cookie", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: "abc123"})
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	assert.Equal(t, "abc123", rec.Body.String())
	assert.Contains(t, rec.Header().Get("Set-Cookie"), "seen=yes")
}
