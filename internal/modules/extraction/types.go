package extraction

import (
	"context"
	"fmt"

	"github.com/zeroclick/core/internal/models"
)

// SourceKind tags where a piece of sales communication came from.
type SourceKind string

const (
	SourceVoice SourceKind = "voice"
	SourceEmail SourceKind = "email"
)

// ErrorKind classifies extraction failures.
type ErrorKind string

const (
	// KindInvalidModelOutput: the model produced no output or output that
	// is not a single JSON object. The unit of work is abandoned.
	KindInvalidModelOutput ErrorKind = "invalid_model_output"
	// KindUpstream: the model or store call itself failed.
	KindUpstream ErrorKind = "upstream"
)

// Error is the failure type returned by the orchestrator. On any Error
// zero records reach the store.
type Error struct {
	Kind ErrorKind
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("extraction %s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("extraction %s", e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// Store is the append-only insert side of the record store gateway.
type Store interface {
	Insert(ctx context.Context, rec *models.CrmRecordModel) error
}

type processDTO struct {
	Transcript string `json:"transcript" binding:"required"`
}

type ingestEmailDTO struct {
	EmailBody string `json:"emailBody" binding:"required"`
}
