package middleware

import (
	"errors"
	"net/http"

	"github.com/duccv/whereisit/internal/constant"
	"github.com/duccv/whereisit/internal/session"
	"github.com/duccv/whereisit/internal/token"
	"github.com/duccv/whereisit/pkg/logger"
	"github.com/duccv/whereisit/pkg/metrics"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TokenVerifier is the part of token.Service the gate depends on.
type TokenVerifier interface {
	Verify(raw string) (*token.Claims, error)
}

// AuthGate admits requests carrying a valid session cookie. A missing cookie is
// answered with 401, any verification failure with 403; the caller is not told which
// check failed.
func AuthGate(tokens TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := session.Extract(c)
		if !ok {
			reject(c, http.StatusUnauthorized, "missing_token", nil)
			return
		}

		claims, err := tokens.Verify(raw)
		if err != nil {
			reject(c, http.StatusForbidden, rejectReason(err), err)
			return
		}

		c.Set(constant.ClaimsKey, claims)
		c.Next()
	}
}

// ClaimsFrom returns the claims the gate attached to the request.
func ClaimsFrom(c *gin.Context) (*token.Claims, bool) {
	v, ok := c.Get(constant.ClaimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*token.Claims)
	return claims, ok
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, token.ErrExpired):
		return "expired"
	case errors.Is(err, token.ErrMalformed):
		return "malformed"
	case errors.Is(err, token.ErrMissingSecret):
		return "misconfigured"
	default:
		return "invalid_signature"
	}
}

func reject(c *gin.Context, status int, reason string, err error) {
	logger.FromContext(c.Request.Context()).Warn("Authentication failed",
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method),
		zap.String("ip", getClientIP(c)),
		zap.String("reason", reason),
		zap.Error(err))
	metrics.AuthRejected(reason)

	body := constant.FORBIDDEN
	if status == http.StatusUnauthorized {
		body = constant.UNAUTHORIZED
	}
	c.AbortWithStatusJSON(status, body)
}
