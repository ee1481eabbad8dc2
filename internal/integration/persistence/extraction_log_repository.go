// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/invoice-tracker/invoicetrack/internal/application/adapter"
	"github.com/invoice-tracker/invoicetrack/internal/domain/entity"
	"github.com/invoice-tracker/invoicetrack/internal/integration/persistence/model"
)

// extractionLogRepository implements the adapter.ExtractionLogRepository interface.
type extractionLogRepository struct {
	db *gorm.DB
}

// NewExtractionLogRepository creates a new extraction log repository instance.
func NewExtractionLogRepository(db *gorm.DB) adapter.ExtractionLogRepository {
	return &extractionLogRepository{
		db: db,
	}
}

// Create persists a new extraction log entry.
func (r *extractionLogRepository) Create(ctx context.Context, log *entity.ExtractionLog) error {
	logModel := model.ExtractionLogModelFromEntity(log)
	result := r.db.WithContext(ctx).Create(logModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByInvoice retrieves the extraction log entries for an invoice.
func (r *extractionLogRepository) FindByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]*entity.ExtractionLog, error) {
	var models []model.ExtractionLogModel
	result := r.db.WithContext(ctx).
		Where("invoice_id = ?", invoiceID).
		Order("created_at DESC").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	logs := make([]*entity.ExtractionLog, 0, len(models))
	for i := range models {
		logs = append(logs, models[i].ToEntity())
	}
	return logs, nil
}
