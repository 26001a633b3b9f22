package middleware

import (
	"context"

	"github.com/duccv/whereisit/internal/constant"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const CorrelationIDHeader = "X-Correlation-ID"

// CorrelationIDMiddleware reuses an incoming X-Correlation-ID only when it is a UUID;
// anything else is replaced by a fresh one.
func CorrelationIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		cid := uuid.New().String()
		if id, err := uuid.Parse(c.GetHeader(CorrelationIDHeader)); err == nil {
			cid = id.String()
		}
		ctx := context.WithValue(c.Request.Context(), constant.CorrelationIDKey, cid)
		c.Request = c.Request.WithContext(ctx)
		c.Set(constant.RequestIDKey, cid)
		c.Writer.Header().Set(CorrelationIDHeader, cid)
		c.Next()
	}
}
