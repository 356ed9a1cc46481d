package handler

import (
	"errors"
	"time"

	"github.com/DeveloperClyde246/ai-interview-portal/internal/auth"
	"github.com/DeveloperClyde246/ai-interview-portal/internal/intake"
	"github.com/DeveloperClyde246/ai-interview-portal/internal/notify"
	"github.com/DeveloperClyde246/ai-interview-portal/internal/repository"
	"github.com/DeveloperClyde246/ai-interview-portal/pkg/model"
	"github.com/DeveloperClyde246/ai-interview-portal/pkg/response"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	Logger    *zap.Logger
	Repo      *repository.Repository
	Intake    *intake.Pipeline
	Notify    *notify.Service
	JwtSecret string
	JwtTTL    time.Duration
}

// GetClaimsFromContext retrieves the typed claims set by the auth middleware.
func (h *Handler) GetClaimsFromContext(c *gin.Context) *auth.Claims {
	v, exists := c.Get("claims")
	if !exists {
		return nil
	}
	claims, ok := v.(*auth.Claims)
	if !ok {
		return nil
	}
	return claims
}

// writeError maps the domain error taxonomy onto HTTP responses. Anything
// outside the taxonomy is logged and hidden behind a 500.
func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrValidation):
		response.ValidationError(c, err.Error())
	case errors.Is(err, model.ErrNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, model.ErrForbidden):
		response.Forbidden(c, err.Error())
	case errors.Is(err, model.ErrDuplicateSubmission):
		response.Conflict(c, err.Error())
	case errors.Is(err, model.ErrEmailTaken):
		response.Conflict(c, err.Error())
	case errors.Is(err, model.ErrUpstream):
		h.Logger.Sugar().Errorw("upstream failure", "path", c.Request.URL.Path, "err", err)
		response.BadGateway(c, "")
	default:
		h.Logger.Sugar().Errorw("internal error", "path", c.Request.URL.Path, "err", err)
		response.InternalError(c, "")
	}
}
