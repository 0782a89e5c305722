package extraction

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/zeroclick/core/internal/models"
	"github.com/zeroclick/core/internal/pkg/response"
	"go.uber.org/zap"
)

type Handler struct {
	ext    *Extractor
	logger *zap.Logger
}

func NewHandler(ext *Extractor, logger *zap.Logger) *Handler {
	return &Handler{ext: ext, logger: logger}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, idempotenceMW gin.HandlerFunc) {
	rg.POST("/process", idempotenceMW, h.process)
	rg.POST("/ingest-email", idempotenceMW, h.ingestEmail)
}

func (h *Handler) process(c *gin.Context) {
	var dto processDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "transcript is required")
		return
	}
	h.run(c, dto.Transcript, SourceVoice)
}

func (h *Handler) ingestEmail(c *gin.Context) {
	var dto ingestEmailDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "emailBody is required")
		return
	}
	h.run(c, dto.EmailBody, SourceEmail)
}

func (h *Handler) run(c *gin.Context, sourceText string, kind SourceKind) {
	rec, err := h.ext.ExtractAndStore(c.Request.Context(), sourceText, kind)
	if err != nil {
		var exErr *Error
		if errors.As(err, &exErr) && exErr.Kind == KindInvalidModelOutput {
			response.UnprocessableEntity(c, "model output could not be parsed")
			return
		}
		h.logger.Error("extraction failed",
			zap.String("source_kind", string(kind)), zap.Error(err))
		response.InternalError(c, "extraction failed")
		return
	}
	response.Created(c, toRecordResponse(rec))
}

type recordResponse struct {
	ID           string  `json:"id"`
	ContactName  *string `json:"contact_name"`
	CompanyName  *string `json:"company_name"`
	DealValueUSD *int64  `json:"deal_value_usd"`
	Sentiment    *string `json:"sentiment"`
	NextStep     *string `json:"next_step"`
	FollowUpDate *string `json:"follow_up_date"`
	FullSummary  *string `json:"full_summary"`
	AtRisk       *bool   `json:"at_risk"`
	Transcript   string  `json:"transcript"`
	CreatedAt    string  `json:"created_at"`
}

func toRecordResponse(rec *models.CrmRecordModel) recordResponse {
	return recordResponse{
		ID:           rec.ID,
		ContactName:  rec.ContactName,
		CompanyName:  rec.CompanyName,
		DealValueUSD: rec.DealValueUSD,
		Sentiment:    rec.Sentiment,
		NextStep:     rec.NextStep,
		FollowUpDate: rec.FollowUpDate,
		FullSummary:  rec.FullSummary,
		AtRisk:       rec.AtRisk,
		Transcript:   rec.Transcript,
		CreatedAt:    rec.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
