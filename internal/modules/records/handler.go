package records

import (
	"github.com/gin-gonic/gin"
	"github.com/zeroclick/core/internal/pkg/pagination"
	"github.com/zeroclick/core/internal/pkg/response"
	"go.uber.org/zap"
)

type Handler struct {
	store  *Store
	logger *zap.Logger
}

func NewHandler(store *Store, logger *zap.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/entries", h.entries)
}

func (h *Handler) entries(c *gin.Context) {
	recs, pag, err := h.store.List(c.Request.Context(), pagination.FromContext(c))
	if err != nil {
		h.logger.Error("listing records failed", zap.Error(err))
		response.InternalError(c, "could not list records")
		return
	}
	response.Paged(c, recs, pag)
}
