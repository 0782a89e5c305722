package extraction

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/zeroclick/core/internal/models"
	"github.com/zeroclick/core/internal/modules/genai"
	"go.uber.org/zap"
)

const emailSnippetRunes = 500

// Extractor drives one text input through the generative model and turns
// the result into a canonical record.
type Extractor struct {
	client        genai.Client
	store         Store
	voiceMaxRunes int
	logger        *zap.Logger
}

func NewExtractor(client genai.Client, store Store, voiceMaxRunes int, logger *zap.Logger) *Extractor {
	if voiceMaxRunes <= 0 {
		voiceMaxRunes = 4000
	}
	return &Extractor{
		client:        client,
		store:         store,
		voiceMaxRunes: voiceMaxRunes,
		logger:        logger,
	}
}

// Extract converts sourceText into a canonical record. Exactly one model
// call is made; the store is not touched.
func (e *Extractor) Extract(ctx context.Context, sourceText string, kind SourceKind) (*models.CrmRecordModel, error) {
	raw, err := e.client.Generate(ctx, genai.Request{
		System:      systemPromptFor(kind),
		Prompt:      userTurnFor(kind, sourceText),
		Temperature: extractionTemperature,
		JSONOutput:  true,
	})
	if err != nil {
		return nil, &Error{Kind: KindUpstream, Err: err}
	}

	parsed, err := parseModelObject(raw)
	if err != nil {
		e.logger.Warn("model output not parseable as a JSON object",
			zap.String("source_kind", string(kind)))
		e.logger.Debug("raw model output", zap.String("output", raw))
		return nil, &Error{Kind: KindInvalidModelOutput, Err: err}
	}

	rec := Normalize(parsed)
	rec.Transcript = attachTranscript(sourceText, kind, e.voiceMaxRunes)
	rec.CreatedAt = time.Now().UTC()
	return &rec, nil
}

// ExtractAndStore runs Extract and inserts the finished record. On any
// failure zero inserts happen; a record is stored whole or not at all.
func (e *Extractor) ExtractAndStore(ctx context.Context, sourceText string, kind SourceKind) (*models.CrmRecordModel, error) {
	rec, err := e.Extract(ctx, sourceText, kind)
	if err != nil {
		return nil, err
	}
	if err := e.store.Insert(ctx, rec); err != nil {
		return nil, &Error{Kind: KindUpstream, Err: err}
	}
	e.logger.Info("record extracted",
		zap.String("source_kind", string(kind)),
		zap.String("record_id", rec.ID))
	return rec, nil
}

// parseModelObject strips markdown fences and parses the remainder as a
// single JSON object. There is no regex fallback: partially salvaged
// output would silently propagate bad data.
func parseModelObject(raw string) (map[string]interface{}, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```JSON")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	if cleaned == "" {
		return nil, errors.New("empty model output")
	}

	var parsed map[string]interface{}
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		return nil, errors.New("model output is not a single JSON object")
	}
	return parsed, nil
}

// attachTranscript bounds stored source text. Voice memos can run long, so
// they are truncated; emails keep the original snippet convention.
func attachTranscript(sourceText string, kind SourceKind, voiceMaxRunes int) string {
	if kind == SourceEmail {
		return "[EMAIL] " + truncateRunes(sourceText, emailSnippetRunes)
	}
	return truncateRunes(sourceText, voiceMaxRunes)
}

func truncateRunes(text string, maxLen int) string {
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	return string(runes[:maxLen]) + "..."
}
