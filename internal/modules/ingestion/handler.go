package ingestion

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/zeroclick/core/internal/pkg/response"
	"go.uber.org/zap"
)

type objectCreatedDTO struct {
	Bucket string `json:"bucket" binding:"required"`
	Name   string `json:"name"   binding:"required"`
}

type Handler struct {
	pipeline *Pipeline
	logger   *zap.Logger
}

func NewHandler(pipeline *Pipeline, logger *zap.Logger) *Handler {
	return &Handler{pipeline: pipeline, logger: logger}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/hooks/object-created", h.objectCreated)
}

// objectCreated accepts a storage notification and processes it in the
// background. The 202 only acknowledges receipt; transcription can take
// longer than any sane webhook timeout.
func (h *Handler) objectCreated(c *gin.Context) {
	var dto objectCreatedDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "bucket and name are required")
		return
	}

	go func() {
		defer func() {
			if r := recover(); r != nil {
				h.logger.Error("object event processing panicked",
					zap.String("bucket", dto.Bucket), zap.String("name", dto.Name), zap.Any("panic", r))
			}
		}()
		ctx := context.Background()
		if err := h.pipeline.Process(ctx, dto.Bucket, dto.Name); err != nil {
			h.logger.Error("object event processing failed",
				zap.String("bucket", dto.Bucket), zap.String("name", dto.Name), zap.Error(err))
		}
	}()

	response.Accepted(c, gin.H{"status": "accepted"})
}
