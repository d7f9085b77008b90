package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeToken(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"   ", ""},
		{"abc", "abc"},
		{"Bearer abc", "abc"},
		{"bearer abc", "abc"},
		{"  Bearer   abc  ", "abc"},
		{"Bearerabc", "Bearerabc"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, NormalizeToken(tc.in), "NormalizeToken(%q)", tc.in)
	}
}

func requestContext(t *testing.T) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/api/profile", nil)
	return c
}

func TestExtractTokenSources(t *testing.T) {
	c := requestContext(t)
	assert.Equal(t, "", extractToken(c))

	// The login cookie is httpOnly, so the browser is the only carrier; the
	// middleware has to read it directly.
	c = requestContext(t)
	c.Request.AddCookie(&http.Cookie{Name: AuthCookieName, Value: "cookie-token"})
	assert.Equal(t, "cookie-token", extractToken(c))

	c = requestContext(t)
	c.Request.AddCookie(&http.Cookie{Name: "token", Value: "legacy-cookie"})
	assert.Equal(t, "legacy-cookie", extractToken(c))

	// Header wins over cookie.
	c = requestContext(t)
	c.Request.Header.Set("Authorization", "Bearer header-token")
	c.Request.AddCookie(&http.Cookie{Name: AuthCookieName, Value: "cookie-token"})
	assert.Equal(t, "header-token", extractToken(c))

	c = requestContext(t)
	c.Request = httptest.NewRequest("GET", "/api/profile?token=query-token", nil)
	assert.Equal(t, "query-token", extractToken(c))
}

func TestShouldSkipIdempotence(t *testing.T) {
	assert.True(t, shouldSkipIdempotence("POST", "/api/auth/login"))
	assert.True(t, shouldSkipIdempotence("POST", "/api/auth/login/"))
	assert.False(t, shouldSkipIdempotence("POST", "/api/comments"))
	assert.False(t, shouldSkipIdempotence("DELETE", "/api/auth/login"))
}

func TestShouldSkipCachePath(t *testing.T) {
	patterns := []string{"/api/auth/*", "/api/health"}
	assert.True(t, shouldSkipCachePath("/api/auth/session", patterns))
	assert.True(t, shouldSkipCachePath("/api/health", patterns))
	assert.False(t, shouldSkipCachePath("/api/projects", patterns))
}
