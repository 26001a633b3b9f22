package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/duccv/whereisit/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func TestCorrelationIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CorrelationIDMiddleware(), NewLoggingMiddleware(DefaultMiddlewareConfig()).RequestLogger())
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, logger.CorrelationID(c.Request.Context()))
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(CorrelationIDHeader, "3f2504e0-4f89-41d3-9a0c-0305e82c3301")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Body.String() != "3f2504e0-4f89-41d3-9a0c-0305e82c3301" || w.Header().Get(CorrelationIDHeader) != w.Body.String() {
		t.Fatalf("incoming correlation id not propagated: body=%q header=%q", w.Body.String(), w.Header().Get(CorrelationIDHeader))
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Body.String() == "" || w.Body.String() != w.Header().Get(CorrelationIDHeader) {
		t.Fatalf("generated correlation id mismatch: body=%q header=%q", w.Body.String(), w.Header().Get(CorrelationIDHeader))
	}
}

func TestCorrelationIDMiddlewareReplacesUntrustedHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CorrelationIDMiddleware())
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, logger.CorrelationID(c.Request.Context()))
	})

	for _, incoming := range []string{"fixed-id", strings.Repeat("a", 4096), "x\r\ninjected: 1"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(CorrelationIDHeader, incoming)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		got := w.Header().Get(CorrelationIDHeader)
		if got == incoming {
			t.Fatalf("untrusted correlation id %q was echoed", incoming)
		}
		if _, err := uuid.Parse(got); err != nil || w.Body.String() != got {
			t.Fatalf("replacement id %q is not a generated uuid (body %q)", got, w.Body.String())
		}
	}
}
