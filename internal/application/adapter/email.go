// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/invoice-tracker/invoicetrack/internal/domain/entity"
)

// SendEmailInput represents the input for sending an email.
type SendEmailInput struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

// SendEmailResult represents the result of sending an email.
type SendEmailResult struct {
	ResendID string
}

// EmailSender defines the interface for sending emails via an external provider.
type EmailSender interface {
	// Send sends an email via the email provider (e.g., Resend).
	Send(ctx context.Context, input SendEmailInput) (*SendEmailResult, error)
}

// EmailService defines the interface for queueing emails.
type EmailService interface {
	// QueueWelcomeEmail queues a welcome email for a newly registered user.
	QueueWelcomeEmail(ctx context.Context, email string) error
}

// EmailQueueRepository defines the interface for the email job queue.
type EmailQueueRepository interface {
	// Enqueue adds a new email job to the queue.
	Enqueue(ctx context.Context, job *entity.EmailJob) error

	// GetPendingJobs retrieves up to limit pending jobs ready to be sent.
	GetPendingJobs(ctx context.Context, limit int) ([]*entity.EmailJob, error)

	// MarkSent marks a job as sent and records the provider message ID.
	MarkSent(ctx context.Context, id uuid.UUID, resendID string) error

	// MarkFailed records a failed attempt; the job goes back to pending
	// while attempts remain, otherwise to failed.
	MarkFailed(ctx context.Context, id uuid.UUID, lastError string, final bool) error
}
