package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/portfolio/internal/content"
	"github.com/Zachkp/portfolio/internal/page"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type timers struct {
	mu    sync.Mutex
	queue []func()
}

func (t *timers) after(_ time.Duration, fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.queue = append(t.queue, fn)
}

func (t *timers) fire() {
	t.mu.Lock()
	q := t.queue
	t.queue = nil
	t.mu.Unlock()
	for _, fn := range q {
		fn()
	}
}

type client struct {
	t      *testing.T
	srv    *Server
	cookie *http.Cookie
}

func newTestServer(t *testing.T) (*client, *timers) {
	t.Helper()
	tables, err := content.Default()
	require.NoError(t, err)

	tm := &timers{}
	reg := page.NewRegistry(tables, page.Options{
		Threshold:   0.2,
		Latency:     time.Second,
		DefaultDark: true,
		AfterFunc:   tm.after,
	}, time.Hour)

	srv, err := New(":0", reg)
	require.NoError(t, err)
	return &client{t: t, srv: srv}, tm
}

func (c *client) do(method, path string, form url.Values) *httptest.ResponseRecorder {
	c.t.Helper()
	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}

	w := httptest.NewRecorder()
	c.srv.Handler().ServeHTTP(w, req)
	for _, ck := range w.Result().Cookies() {
		if ck.Name == viewCookie {
			c.cookie = ck
		}
	}
	return w
}

func TestIndexIssuesCookie(t *testing.T) {
	c, _ := newTestServer(t)

	w := c.do(http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, c.cookie)

	body := w.Body.String()
	assert.Contains(t, body, `class="dark"`)
	assert.Contains(t, body, "Boya Siva Sai Kumar")
	assert.Contains(t, body, `id="skills"`)
	assert.Contains(t, body, `id="contact-form"`)

	first := c.cookie.Value
	w = c.do(http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, first, c.cookie.Value)
	assert.Equal(t, 1, c.srv.views.Len())
}

func TestRevealEndpoint(t *testing.T) {
	c, _ := newTestServer(t)
	c.do(http.MethodGet, "/", nil)

	w := c.do(http.MethodPost, "/reveal/skills/category/0", url.Values{"ratio": {"0.5"}})
	require.Equal(t, http.StatusOK, w.Code)

	var res page.RevealResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, "skills/category/0", string(res.Region))
	assert.True(t, res.Entered)
	assert.True(t, res.Changed)

	w = c.do(http.MethodPost, "/reveal/skills/category/0", url.Values{"ratio": {"0"}})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.True(t, res.Entered)
	assert.False(t, res.Changed)

	// a revealed category renders its bars at their levels
	w = c.do(http.MethodGet, "/", nil)
	assert.Contains(t, w.Body.String(), "width: 85%")
}

func TestRevealErrors(t *testing.T) {
	c, _ := newTestServer(t)

	tests := []struct {
		name  string
		path  string
		ratio string
		want  int
	}{
		{name: "unknown region", path: "/reveal/nowhere", ratio: "1", want: http.StatusNotFound},
		{name: "bad ratio", path: "/reveal/footer", ratio: "lots", want: http.StatusBadRequest},
		{name: "ratio out of range", path: "/reveal/footer", ratio: "1.5", want: http.StatusBadRequest},
		{name: "nan ratio", path: "/reveal/footer", ratio: "NaN", want: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := c.do(http.MethodPost, tt.path, url.Values{"ratio": {tt.ratio}})
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestRevealUnsupported(t *testing.T) {
	c, _ := newTestServer(t)

	w := c.do(http.MethodPost, "/reveal-unsupported", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = c.do(http.MethodGet, "/", nil)
	body := w.Body.String()
	assert.NotContains(t, body, `hx-post="/reveal/`)
	assert.Contains(t, body, "width: 85%")
}

func TestToggleMode(t *testing.T) {
	c, _ := newTestServer(t)

	w := c.do(http.MethodPost, "/theme/toggle", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `{"displayMode":"light"}`, w.Header().Get("HX-Trigger"))
	assert.Contains(t, w.Body.String(), `id="navbar"`)

	w = c.do(http.MethodGet, "/", nil)
	assert.Contains(t, w.Body.String(), `<html lang="en" class="light">`)

	w = c.do(http.MethodPost, "/theme/toggle", nil)
	assert.Equal(t, `{"displayMode":"dark"}`, w.Header().Get("HX-Trigger"))
}

func TestProjectOverlay(t *testing.T) {
	c, _ := newTestServer(t)

	w := c.do(http.MethodPost, "/projects/grainpalette/select", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Rice Grain Classification System")

	// clicks inside the panel do not close it
	w = c.do(http.MethodPost, "/projects/dismiss", url.Values{"origin": {"panel"}})
	assert.Contains(t, w.Body.String(), "Rice Grain Classification System")

	w = c.do(http.MethodPost, "/projects/dismiss", url.Values{"origin": {"escape"}})
	assert.NotContains(t, w.Body.String(), "Rice Grain Classification System")

	w = c.do(http.MethodPost, "/projects/weather-app/select", nil)
	assert.Contains(t, w.Body.String(), "Real-time Weather Application")

	w = c.do(http.MethodPost, "/projects/nope/select", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "Real-time Weather Application")
}

func TestContactSubmission(t *testing.T) {
	c, tm := newTestServer(t)

	w := c.do(http.MethodPost, "/contact", url.Values{
		"fullName": {"Ada"},
		"email":    {"ada@example.com"},
		"message":  {"Hello there"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Sending...")

	// a second submission while sending is refused but still rendered
	w = c.do(http.MethodPost, "/contact", url.Values{
		"name":    {"Bob"},
		"email":   {"bob@example.com"},
		"message": {"Again"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Sending...")
	assert.Contains(t, w.Body.String(), `value="Ada"`)

	w = c.do(http.MethodPost, "/contact/edit", url.Values{"field": {"name"}, "name": {"Eve"}})
	assert.Equal(t, http.StatusConflict, w.Code)

	tm.fire()

	w = c.do(http.MethodGet, "/contact-form", nil)
	body := w.Body.String()
	assert.Contains(t, body, "Message sent!")
	assert.Contains(t, body, "Send Message")
	assert.Contains(t, body, `value=""`)

	// notices are handed out once
	w = c.do(http.MethodGet, "/contact-form", nil)
	assert.NotContains(t, w.Body.String(), "Message sent!")
}

func TestContactRejected(t *testing.T) {
	c, tm := newTestServer(t)

	w := c.do(http.MethodPost, "/contact", url.Values{
		"name":    {"Ada"},
		"email":   {"not-an-address"},
		"message": {""},
	})
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Send Message")
	assert.Equal(t, 2, strings.Count(body, `class="invalid"`))
	assert.Empty(t, tm.queue)

	w = c.do(http.MethodPost, "/contact/edit", url.Values{"field": {"message"}, "message": {"Hi"}})
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = c.do(http.MethodGet, "/contact-form", nil)
	assert.NotContains(t, w.Body.String(), `class="invalid"`)
	assert.Contains(t, w.Body.String(), "not-an-address")
}

func TestContactEditUnknownField(t *testing.T) {
	c, _ := newTestServer(t)

	w := c.do(http.MethodPost, "/contact/edit", url.Values{"field": {"phone"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealth(t *testing.T) {
	c, _ := newTestServer(t)
	c.do(http.MethodGet, "/", nil)

	w := c.do(http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","views":1}`, w.Body.String())
}

func TestStatic(t *testing.T) {
	c, _ := newTestServer(t)

	w := c.do(http.MethodGet, "/static/style.css", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
