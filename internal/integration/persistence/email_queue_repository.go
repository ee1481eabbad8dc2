// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/invoice-tracker/invoicetrack/internal/application/adapter"
	"github.com/invoice-tracker/invoicetrack/internal/domain/entity"
	domainerror "github.com/invoice-tracker/invoicetrack/internal/domain/error"
	"github.com/invoice-tracker/invoicetrack/internal/integration/persistence/model"
)

// retryBackoff is the delay before a failed job becomes eligible again.
const retryBackoff = 30 * time.Second

// emailQueueRepository implements the adapter.EmailQueueRepository interface.
type emailQueueRepository struct {
	db *gorm.DB
}

// NewEmailQueueRepository creates a new email queue repository instance.
func NewEmailQueueRepository(db *gorm.DB) adapter.EmailQueueRepository {
	return &emailQueueRepository{
		db: db,
	}
}

// Enqueue adds a new email job to the queue.
func (r *emailQueueRepository) Enqueue(ctx context.Context, job *entity.EmailJob) error {
	emailModel := model.EmailQueueModelFromEntity(job)
	result := r.db.WithContext(ctx).Create(emailModel)
	if result.Error != nil {
		return domainerror.NewEmailError(
			domainerror.ErrCodeEmailQueueFailed,
			"failed to create email job",
			result.Error,
		)
	}
	return nil
}

// GetPendingJobs retrieves jobs ready to be processed.
func (r *emailQueueRepository) GetPendingJobs(ctx context.Context, limit int) ([]*entity.EmailJob, error) {
	var models []model.EmailQueueModel

	result := r.db.WithContext(ctx).
		Where("status = ?", entity.EmailStatusPending).
		Where("scheduled_at <= ?", time.Now().UTC()).
		Order("scheduled_at ASC").
		Limit(limit).
		Find(&models)

	if result.Error != nil {
		return nil, result.Error
	}

	jobs := make([]*entity.EmailJob, len(models))
	for i, m := range models {
		jobs[i] = m.ToEntity()
	}

	return jobs, nil
}

// MarkSent marks a job as sent and records the provider message ID.
func (r *emailQueueRepository) MarkSent(ctx context.Context, id uuid.UUID, resendID string) error {
	now := time.Now().UTC()
	result := r.db.WithContext(ctx).
		Model(&model.EmailQueueModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":       entity.EmailStatusSent,
			"resend_id":    resendID,
			"processed_at": now,
		})
	return result.Error
}

// MarkFailed records a failed attempt. The job goes back to pending with a
// backoff while attempts remain, otherwise to failed.
func (r *emailQueueRepository) MarkFailed(ctx context.Context, id uuid.UUID, lastError string, final bool) error {
	now := time.Now().UTC()
	updates := map[string]interface{}{
		"attempts":   gorm.Expr("attempts + 1"),
		"last_error": lastError,
	}
	if final {
		updates["status"] = entity.EmailStatusFailed
		updates["processed_at"] = now
	} else {
		updates["status"] = entity.EmailStatusPending
		updates["scheduled_at"] = now.Add(retryBackoff)
	}

	result := r.db.WithContext(ctx).
		Model(&model.EmailQueueModel{}).
		Where("id = ?", id).
		Updates(updates)
	return result.Error
}
