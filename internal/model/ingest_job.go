package model

import "encoding/json"

// IngestJob records one bulk MCQ upload for the admin audit screen.
type IngestJob struct {
	BaseModel
	AdminID      uint            `gorm:"index;type:bigint unsigned" json:"adminId"`
	Filename     string          `gorm:"size:255" json:"filename"`
	FileURL      string          `gorm:"size:512" json:"fileUrl"` // archived copy of the raw upload
	SuccessCount int             `gorm:"default:0" json:"successCount"`
	FailedCount  int             `gorm:"default:0" json:"failedCount"`
	Errors       json.RawMessage `gorm:"type:json" json:"errors"` // truncated list, first 10
}

func (IngestJob) TableName() string {
	return "ingest_jobs"
}
