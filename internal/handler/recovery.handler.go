package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/duccv/whereisit/internal/model"
	"github.com/duccv/whereisit/internal/repository"
	"github.com/duccv/whereisit/internal/service"
	"github.com/gin-gonic/gin"
)

// RecoveryCreator is the part of service.RecoveryService the handler depends on.
type RecoveryCreator interface {
	Create(ctx context.Context, req model.RecoveryRequest) (*service.RecoveryOutcome, error)
}

type RecoveryHandler struct {
	recoveries repository.RecoveryRepository
	service    RecoveryCreator
}

func NewRecoveryHandler(recoveries repository.RecoveryRepository, svc RecoveryCreator) *RecoveryHandler {
	return &RecoveryHandler{recoveries: recoveries, service: svc}
}

// CreateRecovery godoc
//
//	@Summary		Record a recovery
//	@Description	Stores a recovery record and marks the item recovered.
//	@Tags			Recoveries
//	@Accept			json
//	@Produce		json
//	@Param			recovery	body		model.RecoveryRequest	true	"recovery"
//	@Success		200			{object}	service.RecoveryOutcome
//	@Failure		500			{object}	response.ResponseData
//	@Router			/recoveries [post]
func (h *RecoveryHandler) CreateRecovery(c *gin.Context) {
	var req model.RecoveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortInternal(c, fmt.Errorf("decode recovery: %w", err))
		return
	}

	out, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		abortInternal(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// ListRecoveries godoc
//
//	@Summary	List recovery records
//	@Tags		Recoveries
//	@Produce	json
//	@Success	200	{array}		object
//	@Failure	401	{object}	response.ResponseData
//	@Failure	403	{object}	response.ResponseData
//	@Router		/recoveries [get]
func (h *RecoveryHandler) ListRecoveries(c *gin.Context) {
	recoveries, err := h.recoveries.FindAll(c.Request.Context())
	if err != nil {
		abortInternal(c, err)
		return
	}
	c.JSON(http.StatusOK, recoveries)
}
