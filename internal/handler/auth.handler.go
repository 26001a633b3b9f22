package handler

import (
	"fmt"
	"net/http"

	"github.com/duccv/whereisit/internal/model/response"
	"github.com/duccv/whereisit/internal/session"
	"github.com/duccv/whereisit/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TokenIssuer is the part of token.Service the login route depends on.
type TokenIssuer interface {
	Issue(claim map[string]any) (string, error)
}

type AuthHandler struct {
	tokens  TokenIssuer
	cookies *session.Transport
}

func NewAuthHandler(tokens TokenIssuer, cookies *session.Transport) *AuthHandler {
	return &AuthHandler{tokens: tokens, cookies: cookies}
}

// IssueToken godoc
//
//	@Summary		Start a session
//	@Description	Signs the posted claim (typically {"email": ...}) for five hours and sets it as the token cookie.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			claim	body		object	false	"claim to sign"
//	@Success		200		{object}	response.SuccessResponse
//	@Failure		500		{object}	response.ResponseData
//	@Router			/jwt [post]
func (h *AuthHandler) IssueToken(c *gin.Context) {
	claim, err := bindDocument(c)
	if err != nil {
		abortInternal(c, fmt.Errorf("decode claim: %w", err))
		return
	}

	signed, err := h.tokens.Issue(claim)
	if err != nil {
		abortInternal(c, fmt.Errorf("issue token: %w", err))
		return
	}

	h.cookies.Attach(c, signed)
	if email, ok := claim["email"].(string); ok {
		logger.FromContext(c.Request.Context()).Debug("Session issued", zap.String("email", email))
	}
	c.JSON(http.StatusOK, response.SuccessResponse{Success: true})
}

// Logout godoc
//
//	@Summary	End the session
//	@Tags		Auth
//	@Produce	json
//	@Success	200	{object}	response.SuccessResponse
//	@Router		/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	h.cookies.Clear(c)
	c.JSON(http.StatusOK, response.SuccessResponse{Success: true})
}
