package uploads

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/zeroclick/core/internal/pkg/response"
	"go.uber.org/zap"
)

type uploadURLDTO struct {
	FileName string `json:"fileName" binding:"required"`
	FileType string `json:"fileType" binding:"required"`
	FileSize int64  `json:"fileSize" binding:"required"`
}

type Handler struct {
	broker *Broker
	logger *zap.Logger
}

func NewHandler(broker *Broker, logger *zap.Logger) *Handler {
	return &Handler{broker: broker, logger: logger}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/upload-url", h.uploadURL)
}

func (h *Handler) uploadURL(c *gin.Context) {
	var dto uploadURLDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "fileName, fileType and fileSize are required")
		return
	}

	grant, err := h.broker.Authorize(c.Request.Context(), dto.FileName, dto.FileType, dto.FileSize)
	if err != nil {
		if errors.Is(err, ErrUnsupportedType) || errors.Is(err, ErrFileTooLarge) {
			response.UnprocessableEntity(c, err.Error())
			return
		}
		h.logger.Error("presigning upload failed", zap.Error(err))
		response.InternalError(c, "could not create an upload slot")
		return
	}
	response.OK(c, grant)
}
