package search

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/zeroclick/core/internal/pkg/response"
	"go.uber.org/zap"
)

// Querier executes guard-approved SQL. Satisfied by the records store.
type Querier interface {
	Query(ctx context.Context, q GuardedQuery) ([]map[string]interface{}, error)
}

type searchDTO struct {
	Query string `json:"query" binding:"required"`
}

type Handler struct {
	guard  *Guard
	store  Querier
	logger *zap.Logger
}

func NewHandler(guard *Guard, store Querier, logger *zap.Logger) *Handler {
	return &Handler{guard: guard, store: store, logger: logger}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/search", h.search)
}

func (h *Handler) search(c *gin.Context) {
	var dto searchDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "query is required")
		return
	}

	guarded, err := h.guard.Translate(c.Request.Context(), dto.Query)
	if err != nil {
		if errors.Is(err, ErrUnsafeQuery) {
			response.UnprocessableEntity(c, "could not translate the question into a safe query")
			return
		}
		h.logger.Error("search translation failed", zap.Error(err))
		response.InternalError(c, "search failed")
		return
	}

	rows, err := h.store.Query(c.Request.Context(), guarded)
	if err != nil {
		h.logger.Error("search query failed", zap.Error(err))
		response.InternalError(c, "search failed")
		return
	}
	response.OK(c, rows)
}
