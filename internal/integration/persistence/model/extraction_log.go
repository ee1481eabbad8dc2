// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/invoice-tracker/invoicetrack/internal/domain/entity"
)

// ExtractionLogModel represents the extraction_logs table in the database.
type ExtractionLogModel struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	InvoiceID uuid.UUID      `gorm:"type:uuid;not null;index"`
	OwnerID   uuid.UUID      `gorm:"type:uuid;not null;index"`
	Model     string         `gorm:"type:varchar(100);not null"`
	Keywords  pq.StringArray `gorm:"type:text[]"`
	Succeeded bool           `gorm:"not null;default:false"`
	LastError string         `gorm:"type:text"`
	CreatedAt time.Time      `gorm:"not null"`
}

// TableName returns the table name for the ExtractionLogModel.
func (ExtractionLogModel) TableName() string {
	return "extraction_logs"
}

// ToEntity converts an ExtractionLogModel to a domain ExtractionLog entity.
func (m *ExtractionLogModel) ToEntity() *entity.ExtractionLog {
	return &entity.ExtractionLog{
		ID:        m.ID,
		InvoiceID: m.InvoiceID,
		OwnerID:   m.OwnerID,
		Model:     m.Model,
		Keywords:  []string(m.Keywords),
		Succeeded: m.Succeeded,
		LastError: m.LastError,
		CreatedAt: m.CreatedAt,
	}
}

// ExtractionLogModelFromEntity creates an ExtractionLogModel from a domain ExtractionLog entity.
func ExtractionLogModelFromEntity(log *entity.ExtractionLog) *ExtractionLogModel {
	return &ExtractionLogModel{
		ID:        log.ID,
		InvoiceID: log.InvoiceID,
		OwnerID:   log.OwnerID,
		Model:     log.Model,
		Keywords:  pq.StringArray(log.Keywords),
		Succeeded: log.Succeeded,
		LastError: log.LastError,
		CreatedAt: log.CreatedAt,
	}
}
