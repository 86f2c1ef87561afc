package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/arcosplaya/concierge/internal/config"
	"github.com/arcosplaya/concierge/internal/services/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestRateLimit(t *testing.T) {
	handler := RateLimitWithConfig("contact", config.RateLimitConfig{
		Enabled: true,
		MaxHits: 2,
		Window:  time.Minute,
	})(okHandler)

	send := func(remoteAddr, forwarded string) int {
		req := httptest.NewRequest(http.MethodPost, "/v1/contact", nil)
		req.RemoteAddr = remoteAddr
		if forwarded != "" {
			req.Header.Set("X-Forwarded-For", forwarded)
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, send("10.0.0.1:1111", ""))
	assert.Equal(t, http.StatusOK, send("10.0.0.1:2222", ""), "ports do not split a client")
	assert.Equal(t, http.StatusTooManyRequests, send("10.0.0.1:3333", ""))
	assert.Equal(t, http.StatusOK, send("10.0.0.2:1111", ""))

	assert.Equal(t, http.StatusOK, send("10.0.0.9:1", "203.0.113.7, 10.0.0.9"))
	assert.Equal(t, http.StatusOK, send("10.0.0.9:2", "203.0.113.7"))
	assert.Equal(t, http.StatusTooManyRequests, send("10.0.0.9:3", "203.0.113.7"))
}

func TestRateLimitDisabled(t *testing.T) {
	handler := RateLimitWithConfig("contact", config.RateLimitConfig{Enabled: false, MaxHits: 1, Window: time.Minute})(okHandler)

	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/contact", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestWithSession(t *testing.T) {
	svc := session.NewService(nil)

	var seen []string
	handler := WithSession(svc)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, GetSessionID(r))
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/panel", nil))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)

	req := httptest.NewRequest(http.MethodGet, "/v1/panel", nil)
	req.AddCookie(cookies[0])
	handler.ServeHTTP(httptest.NewRecorder(), req)

	require.Len(t, seen, 2)
	assert.NotEmpty(t, seen[0])
	assert.Equal(t, seen[0], seen[1])
}

func TestGetSessionIDOutsideMiddleware(t *testing.T) {
	assert.Empty(t, GetSessionID(httptest.NewRequest(http.MethodGet, "/", nil)))
}
