package session

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func recordCookie(t *testing.T, fn func(c *gin.Context)) *http.Cookie {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)
	fn(c)

	cookies := w.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected one cookie, got %d (%v)", len(cookies), w.Header().Values("Set-Cookie"))
	}
	return cookies[0]
}

func TestAttachProfiles(t *testing.T) {
	tests := []struct {
		env      string
		secure   bool
		sameSite http.SameSite
	}{
		{env: "production", secure: true, sameSite: http.SameSiteNoneMode},
		{env: "development", secure: false, sameSite: http.SameSiteStrictMode},
		{env: "", secure: false, sameSite: http.SameSiteStrictMode},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			ck := recordCookie(t, func(c *gin.Context) { NewTransport(tt.env).Attach(c, "abc.def.ghi") })
			if ck.Name != CookieName || ck.Value != "abc.def.ghi" {
				t.Fatalf("cookie = %s=%s", ck.Name, ck.Value)
			}
			if !ck.HttpOnly {
				t.Fatal("cookie must be HttpOnly")
			}
			if ck.Secure != tt.secure {
				t.Fatalf("Secure = %v, want %v", ck.Secure, tt.secure)
			}
			if ck.SameSite != tt.sameSite {
				t.Fatalf("SameSite = %v, want %v", ck.SameSite, tt.sameSite)
			}
		})
	}
}

func TestClearMatchesAttributes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/logout", nil)
	NewTransport("production").Clear(c)

	header := w.Header().Get("Set-Cookie")
	for _, want := range []string{"token=", "Path=/", "Max-Age=0", "HttpOnly", "Secure", "SameSite=None"} {
		if !strings.Contains(header, want) {
			t.Fatalf("Set-Cookie %q missing %q", header, want)
		}
	}
}

func TestExtract(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	if _, ok := Extract(c); ok {
		t.Fatal("Extract reported a token on a request without cookies")
	}

	c.Request.AddCookie(&http.Cookie{Name: CookieName, Value: "abc"})
	token, ok := Extract(c)
	if !ok || token != "abc" {
		t.Fatalf("Extract = %q, %v", token, ok)
	}
}
