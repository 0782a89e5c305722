package ingestion

import (
	"context"
	"fmt"
	"time"

	"github.com/zeroclick/core/internal/models"
	"github.com/zeroclick/core/internal/modules/extraction"
	pkgredis "github.com/zeroclick/core/internal/pkg/redis"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Job states. Uploaded moves through Transcribing and Extracting to a
// terminal Inserted or Failed; there is no retry transition.
const (
	StatusUploaded     = "uploaded"
	StatusTranscribing = "transcribing"
	StatusExtracting   = "extracting"
	StatusInserted     = "inserted"
	StatusFailed       = "failed"
)

const dedupeTTL = 24 * time.Hour

// Extractor is the voice path of the extraction orchestrator.
type Extractor interface {
	ExtractAndStore(ctx context.Context, sourceText string, kind extraction.SourceKind) (*models.CrmRecordModel, error)
}

// Pipeline runs one uploaded audio object through transcription and
// extraction, bookkeeping each step on an ingestion_jobs row.
type Pipeline struct {
	db          *gorm.DB
	redis       *pkgredis.Client
	transcriber Transcriber
	extractor   Extractor
	logger      *zap.Logger
}

func NewPipeline(db *gorm.DB, rc *pkgredis.Client, transcriber Transcriber, extractor Extractor, logger *zap.Logger) *Pipeline {
	return &Pipeline{
		db:          db,
		redis:       rc,
		transcriber: transcriber,
		extractor:   extractor,
		logger:      logger,
	}
}

// Process handles one object-created event. Storage notifications are
// at-least-once, so the object locator is claimed in redis first; a
// redelivered event finds the claim and completes as a no-op. Every
// failure is terminal for this event.
func (p *Pipeline) Process(ctx context.Context, bucket, key string) error {
	uri := fmt.Sprintf("s3://%s/%s", bucket, key)

	claimed, err := p.redis.SetNX(ctx, "zc:ingest:"+uri, time.Now().UTC().Format(time.RFC3339), dedupeTTL)
	if err != nil {
		return fmt.Errorf("claim object event: %w", err)
	}
	if !claimed {
		p.logger.Info("duplicate object event suppressed", zap.String("object", uri))
		return nil
	}

	job := &models.IngestionJobModel{ObjectURI: uri, Status: StatusUploaded}
	if err := p.db.WithContext(ctx).Create(job).Error; err != nil {
		return fmt.Errorf("create ingestion job: %w", err)
	}
	p.logger.Info("ingestion started", zap.String("object", uri), zap.String("job_id", job.ID))

	p.transition(ctx, job, StatusTranscribing)
	segments, err := p.transcriber.Transcribe(ctx, bucket, key)
	if err != nil {
		p.fail(ctx, job, fmt.Errorf("transcription: %w", err))
		return nil
	}

	transcript := JoinBestAlternatives(segments)
	if transcript == "" {
		p.fail(ctx, job, fmt.Errorf("empty transcript for %s", uri))
		return nil
	}

	p.transition(ctx, job, StatusExtracting)
	rec, err := p.extractor.ExtractAndStore(ctx, transcript, extraction.SourceVoice)
	if err != nil {
		p.fail(ctx, job, fmt.Errorf("extraction: %w", err))
		return nil
	}

	job.RecordID = rec.ID
	p.transition(ctx, job, StatusInserted)
	p.logger.Info("ingestion finished",
		zap.String("object", uri), zap.String("record_id", rec.ID))
	return nil
}

func (p *Pipeline) transition(ctx context.Context, job *models.IngestionJobModel, status string) {
	job.Status = status
	job.UpdatedAt = time.Now().UTC()
	if err := p.db.WithContext(ctx).Save(job).Error; err != nil {
		p.logger.Error("persisting job transition failed",
			zap.String("job_id", job.ID), zap.String("status", status), zap.Error(err))
	}
}

func (p *Pipeline) fail(ctx context.Context, job *models.IngestionJobModel, cause error) {
	p.logger.Error("ingestion failed",
		zap.String("object", job.ObjectURI), zap.Error(cause))
	job.Error = cause.Error()
	p.transition(ctx, job, StatusFailed)
}
