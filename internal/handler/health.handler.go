package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/duccv/whereisit/internal/model/response"
	"github.com/gin-gonic/gin"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	store   Pinger
	backend string
}

func NewHealthHandler(store Pinger, backend string) *HealthHandler {
	return &HealthHandler{store: store, backend: backend}
}

// Health godoc
//
//	@Summary		Health Check
//	@Description	Pings the store. 200 when reachable, 503 otherwise.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	response.HealthResponse
//	@Failure		503	{object}	response.HealthResponse
//	@Router			/health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		_ = c.Error(err)
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, response.HealthResponse{
			Status:   "unavailable",
			Database: h.backend,
			Error:    err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, response.HealthResponse{Status: "ok", Database: h.backend})
}

// Root is the plain text liveness route.
func Root(c *gin.Context) {
	c.String(http.StatusOK, "App is running")
}
