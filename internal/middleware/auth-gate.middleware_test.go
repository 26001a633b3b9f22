package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/duccv/whereisit/internal/model/response"
	"github.com/duccv/whereisit/internal/session"
	"github.com/duccv/whereisit/internal/token"
	"github.com/gin-gonic/gin"
)

func newGatedEngine(tokens TokenVerifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/private", AuthGate(tokens), func(c *gin.Context) {
		claims, ok := ClaimsFrom(c)
		if !ok {
			c.String(http.StatusInternalServerError, "claims missing")
			return
		}
		c.String(http.StatusOK, claims.Email())
	})
	return r
}

func doGated(r *gin.Engine, cookie string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: session.CookieName, Value: cookie})
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthGateWithoutCookie(t *testing.T) {
	w := doGated(newGatedEngine(token.NewService([]byte("secret"))), "")

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	var body response.ResponseData
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Message != "Unauthorized" {
		t.Fatalf("message = %q", body.Message)
	}
}

func TestAuthGateRejectsBadTokens(t *testing.T) {
	issuedAt := time.Now().Add(-6 * time.Hour)
	expired, err := token.NewService([]byte("secret"), token.WithClock(func() time.Time { return issuedAt })).
		Issue(map[string]any{"email": "a@b.com"})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	foreign, err := token.NewService([]byte("other-secret")).Issue(map[string]any{"email": "a@b.com"})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	r := newGatedEngine(token.NewService([]byte("secret")))
	for name, raw := range map[string]string{"expired": expired, "wrong secret": foreign, "garbage": "garbage"} {
		t.Run(name, func(t *testing.T) {
			w := doGated(r, raw)
			if w.Code != http.StatusForbidden {
				t.Fatalf("status = %d, want 403", w.Code)
			}
			var body response.ResponseData
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if body.Message != "Forbidden" {
				t.Fatalf("message = %q", body.Message)
			}
		})
	}
}

func TestAuthGateAdmitsValidToken(t *testing.T) {
	svc := token.NewService([]byte("secret"))
	raw, err := svc.Issue(map[string]any{"email": "a@b.com"})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	w := doGated(newGatedEngine(svc), raw)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (%s)", w.Code, w.Body.String())
	}
	if w.Body.String() != "a@b.com" {
		t.Fatalf("claims not attached, body = %q", w.Body.String())
	}
}
