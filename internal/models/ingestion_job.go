package models

import "time"

// IngestionJobModel tracks the lifecycle of one uploaded audio object
// through the transcribe-then-extract pipeline. One row per trigger event;
// redelivered events are suppressed before a row is created.
type IngestionJobModel struct {
	Base
	ObjectURI string    `json:"object_uri" gorm:"type:varchar(512);index;not null"`
	Status    string    `json:"status"     gorm:"type:varchar(32);not null"`
	Error     string    `json:"error"      gorm:"type:text"`
	RecordID  string    `json:"record_id"  gorm:"type:char(36)"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (IngestionJobModel) TableName() string { return "ingestion_jobs" }
