// Package email provides email sending functionality.
package email

import (
	"context"

	"github.com/invoice-tracker/invoicetrack/internal/application/adapter"
	"github.com/invoice-tracker/invoicetrack/internal/domain/entity"
	domainerror "github.com/invoice-tracker/invoicetrack/internal/domain/error"
)

// Service handles email queueing operations.
type Service struct {
	queue adapter.EmailQueueRepository
}

// NewService creates a new email service.
func NewService(queue adapter.EmailQueueRepository) *Service {
	return &Service{queue: queue}
}

// QueueWelcomeEmail queues a welcome email for a newly registered user.
func (s *Service) QueueWelcomeEmail(ctx context.Context, userEmail string) error {
	subject := "Welcome to Invoice Tracker"

	templateData := map[string]interface{}{
		"user_email": userEmail,
	}

	job := entity.NewEmailJob(
		entity.TemplateWelcome,
		userEmail,
		subject,
		templateData,
	)

	if err := s.queue.Enqueue(ctx, job); err != nil {
		return domainerror.NewEmailError(
			domainerror.ErrCodeEmailQueueFailed,
			"failed to queue welcome email",
			err,
		)
	}

	return nil
}

// Ensure Service implements adapter.EmailService.
var _ adapter.EmailService = (*Service)(nil)
