package vane

import (
	"bytes"
	"errors"
	"io"
	"mime"
	"net"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	jsoniter "github.com/json-iterator/go"
	"github.com/vanehttp/vane/binding"
	"github.com/vanehttp/vane/tools"
)

var Json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	// 路由最大参数
	maxParams = 64

	BodyBytesKey = "vane_bodybyteskey"
)

const (
	contentTypeHeader    = "Content-Type"
	contentTypeJSON      = "application/json; charset=utf-8"
	contentTypeHTML      = "text/html; charset=utf-8"
	contentTypePlainText = "text/plain; charset=utf-8"
	cacheControlHeader   = "Cache-Control"
	cacheControlMedia    = "public, max-age=31536000, immutable"
	forwardedForHeader   = "X-Forwarded-For"
	realIPHeader         = "X-Real-Ip"
)

// Context represents a request & response context.
type Context struct {
	v           *Vane
	status      int
	request     request
	response    response
	handler     Handler
	paramNames  [maxParams]string
	paramValues [maxParams]string
	paramCount  int
	sameSite    http.SameSite
	mu          sync.RWMutex
	keys        map[string]interface{}
}

// App returns the owning application.
func (c *Context) App() *Vane {
	return c.v
}

// SetKey stores a key/value pair exclusively for this context.
func (c *Context) SetKey(key string, value interface{}) {
	c.mu.Lock()
	if c.keys == nil {
		c.keys = make(map[string]interface{})
	}

	c.keys[key] = value
	c.mu.Unlock()
}

// GetKey returns the value for the given key, ie: (value, true).
// If the value does not exist it returns (nil, false).
func (c *Context) GetKey(key string) (value interface{}, exists bool) {
	c.mu.RLock()
	value, exists = c.keys[key]
	c.mu.RUnlock()
	return
}

func (c *Context) GetKeyString(key string) (s string) {
	if val, ok := c.GetKey(key); ok && val != nil {
		s = val.(string)
	}
	return
}

func (c *Context) GetKeyByte(key string) (b []byte) {
	if val, ok := c.GetKey(key); ok && val != nil {
		b = val.([]byte)
	}
	return
}

func (c *Context) GetKeyBool(key string) (b bool) {
	if val, ok := c.GetKey(key); ok && val != nil {
		b = val.(bool)
	}
	return
}

func (c *Context) GetKeyInt(key string) (i int) {
	if val, ok := c.GetKey(key); ok && val != nil {
		i = val.(int)
	}
	return
}

func (c *Context) GetKeyInt64(key string) (i64 int64) {
	if val, ok := c.GetKey(key); ok && val != nil {
		i64 = val.(int64)
	}
	return
}

// Bytes writes the body with the current status.
func (c *Context) Bytes(body []byte) error {
	// If the request has been canceled by the client, stop.
	if c.request.Context().Err() != nil {
		return errors.New("request interrupted by the client")
	}

	c.response.rw.WriteHeader(c.status)
	_, err := c.response.rw.Write(body)
	return err
}

// addParameter adds a new parameter to the context.
func (c *Context) addParameter(name string, value string) {
	c.paramNames[c.paramCount] = name
	c.paramValues[c.paramCount] = value
	c.paramCount++
}

// JSON encodes the object to a JSON string and responds.
func (c *Context) JSON(value interface{}) error {
	c.response.SetHeader(contentTypeHeader, contentTypeJSON)
	bytes, err := Json.Marshal(value)
	if err != nil {
		return err
	}

	return c.Bytes(bytes)
}

func (c *Context) JSONAndStatus(status int, value interface{}) error {
	c.status = status
	return c.JSON(value)
}

// HTML sends a HTML string.
func (c *Context) HTML(html string) error {
	c.response.SetHeader(contentTypeHeader, contentTypeHTML)
	return c.String(html)
}

// Text sends a plain text string.
func (c *Context) Text(text string) error {
	c.response.SetHeader(contentTypeHeader, contentTypePlainText)
	return c.String(text)
}

// String responds with raw text.
func (c *Context) String(body string) error {
	return c.Bytes(tools.StringToBytes(body))
}

// File sends the contents of a local file and determines its mime type by extension.
func (c *Context) File(file string) error {
	extension := filepath.Ext(file)
	contentType := mime.TypeByExtension(extension)

	if isMedia(contentType) {
		c.response.SetHeader(cacheControlHeader, cacheControlMedia)
	}

	http.ServeFile(c.response.rw, c.request.req, file)
	return nil
}

// Error should be used for sending error messages to the client.
func (c *Context) Error(statusCode int, errorList ...interface{}) error {
	c.status = statusCode

	errorLen := len(errorList)
	if errorLen == 0 {
		message := http.StatusText(statusCode)
		_ = c.String(message)
		return errors.New(message)
	}

	messageBuffer := strings.Builder{}

	for index := range errorList {
		param := errorList[index]
		switch err := param.(type) {
		case string:
			messageBuffer.WriteString(err)
		case error:
			messageBuffer.WriteString(err.Error())
		default:
			continue
		}

		if index != errorLen-1 {
			messageBuffer.WriteString(": ")
		}
	}

	message := messageBuffer.String()
	_ = c.String(message)
	return errors.New(message)
}

// writeReply sends a fully formed Reply produced by a pre-routing handler.
func (c *Context) writeReply(r *Reply) {
	header := c.response.rw.Header()
	for key, values := range r.header {
		for _, value := range values {
			header.Add(key, value)
		}
	}
	c.status = r.status
	_ = c.Bytes(r.body)
}

// 获取相对请求路径
func (c *Context) Path() string {
	return c.request.req.URL.Path
}

// 设置相对请求路径,路由会基于新路径匹配
func (c *Context) SetPath(path string) {
	c.request.req.URL.Path = path
}

// Get retrieves an URL parameter.
func (c *Context) Get(param string) string {
	for i := 0; i < c.paramCount; i++ {
		if c.paramNames[i] == param {
			return c.paramValues[i]
		}
	}

	return ""
}

// GetInt retrieves an URL parameter as an integer.
func (c *Context) GetInt(param string) (int, error) {
	return strconv.Atoi(c.Get(param))
}

// Get IP by RemoteAddr
func (c *Context) IP() string {
	if ip, _, err := net.SplitHostPort(strings.TrimSpace(c.request.req.RemoteAddr)); err == nil {
		return ip
	}
	return ""
}

// ClientIP tries to determine the real IP address of the client.
func (c *Context) ClientIP() string {
	ip := c.request.Header(forwardedForHeader)
	ip = strings.TrimSpace(strings.Split(ip, ",")[0])
	if ip == "" {
		ip = strings.TrimSpace(c.request.Header(realIPHeader))
	}
	if ip != "" {
		return ip
	}

	if ip, _, err := net.SplitHostPort(strings.TrimSpace(c.request.req.RemoteAddr)); err == nil {
		return ip
	}

	return ""
}

// 从URL获取参数值
func (c *Context) Query(param string) string {
	return c.request.req.URL.Query().Get(param)
}

// Redirect redirects to the given URL.
func (c *Context) Redirect(status int, u string) error {
	c.status = status
	c.response.SetHeader("Location", u)
	c.response.rw.WriteHeader(c.status)
	return nil
}

// Status returns the HTTP status.
func (c *Context) Status() int {
	return c.status
}

// SetStatus sets the HTTP status.
func (c *Context) SetStatus(status int) {
	c.status = status
}

// Request returns the HTTP request.
func (c *Context) Request() Request {
	return &c.request
}

// Response returns the HTTP response.
func (c *Context) Response() Response {
	return &c.response
}

// Close frees up resources and is automatically called
// in the ServeHTTP part of the web server.
func (c *Context) Close() {
	c.v.contextPool.Put(c)
}

func (c *Context) ShouldBind(obj interface{}) error {
	b := binding.Default(c.request.Method(), c.request.ContentType())
	return c.ShouldBindWith(obj, b)
}

// ShouldBindJSON is a shortcut for c.ShouldBindWith(obj, binding.JSON).
func (c *Context) ShouldBindJSON(obj interface{}) error {
	return c.ShouldBindWith(obj, binding.JSON)
}

// ShouldBindQuery is a shortcut for c.ShouldBindWith(obj, binding.Query).
func (c *Context) ShouldBindQuery(obj interface{}) error {
	return c.ShouldBindWith(obj, binding.Query)
}

// ShouldBindWith binds the passed struct pointer using the specified binding engine.
// The body is cached in the context keys so the request can be bound again.
func (c *Context) ShouldBindWith(obj interface{}, b binding.Binding) error {
	method := c.request.Method()
	isBodyRequest := method != http.MethodGet && method != http.MethodOptions && method != http.MethodHead
	if isBodyRequest {
		if _, ok := c.GetKey(BodyBytesKey); !ok {
			body, err := c.request.RawDataSetBody()
			if err != nil {
				return err
			}
			c.SetKey(BodyBytesKey, body)
		}
	}
	err := b.Bind(c.request.req, obj)
	if isBodyRequest {
		c.request.req.Body = io.NopCloser(bytes.NewBuffer(c.GetKeyByte(BodyBytesKey)))
	}
	return err
}

// Bind checks the Content-Type to select a binding engine automatically and
// aborts the request with HTTP 400 if binding fails.
func (c *Context) Bind(obj interface{}) error {
	b := binding.Default(c.request.Method(), c.request.ContentType())
	return c.MustBindWith(obj, b)
}

// MustBindWith binds the passed struct pointer using the specified binding engine.
// It will abort the request with HTTP 400 if any error occurs.
func (c *Context) MustBindWith(obj interface{}, b binding.Binding) error {
	if err := c.ShouldBindWith(obj, b); err != nil {
		return c.Error(http.StatusBadRequest, err)
	}
	return nil
}

// Get name cookie value
func (c *Context) Cookie(name string) (string, error) {
	cookie, err := c.request.req.Cookie(name)
	if err != nil {
		return "", err
	}
	v, _ := url.QueryUnescape(cookie.Value)
	return v, nil
}

// SetSameSite with cookie
func (c *Context) SetSameSite(samesite http.SameSite) {
	c.sameSite = samesite
}

// SetCookie adds a Set-Cookie header to the ResponseWriter's headers.
func (c *Context) SetCookie(name, value string, maxAge int, path, domain string, secure, httpOnly bool) {
	if path == "" {
		path = "/"
	}
	http.SetCookie(c.response.rw, &http.Cookie{
		Name:     name,
		Value:    url.QueryEscape(value),
		MaxAge:   maxAge,
		Path:     path,
		Domain:   domain,
		SameSite: c.sameSite,
		Secure:   secure,
		HttpOnly: httpOnly,
	})
}

// isMedia returns whether the given content type is a media type.
func isMedia(contentType string) bool {
	switch {
	case strings.HasPrefix(contentType, "image/"):
		return true
	case strings.HasPrefix(contentType, "video/"):
		return true
	case strings.HasPrefix(contentType, "audio/"):
		return true
	default:
		return false
	}
}
