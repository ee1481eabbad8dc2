// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/invoice-tracker/invoicetrack/internal/application/adapter"
	"github.com/invoice-tracker/invoicetrack/internal/domain/entity"
	domainerror "github.com/invoice-tracker/invoicetrack/internal/domain/error"
	"github.com/invoice-tracker/invoicetrack/internal/integration/persistence/model"
)

// invoiceRepository implements the adapter.InvoiceRepository interface.
type invoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository creates a new invoice repository instance.
func NewInvoiceRepository(db *gorm.DB) adapter.InvoiceRepository {
	return &invoiceRepository{
		db: db,
	}
}

// Create persists a new invoice record.
func (r *invoiceRepository) Create(ctx context.Context, invoice *entity.Invoice) error {
	invoiceModel := model.InvoiceModelFromEntity(invoice)
	result := r.db.WithContext(ctx).Create(invoiceModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByOwner retrieves the invoices owned by the given user, newest upload first.
func (r *invoiceRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID, skip, limit int) ([]*entity.Invoice, error) {
	var models []model.InvoiceModel
	result := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("upload_date DESC").
		Offset(skip).
		Limit(limit).
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	invoices := make([]*entity.Invoice, 0, len(models))
	for i := range models {
		invoices = append(invoices, models[i].ToEntity())
	}
	return invoices, nil
}

// FindByIDAndOwner retrieves a single invoice scoped to its owner.
func (r *invoiceRepository) FindByIDAndOwner(ctx context.Context, id, ownerID uuid.UUID) (*entity.Invoice, error) {
	var invoiceModel model.InvoiceModel
	result := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&invoiceModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrInvoiceNotFound
		}
		return nil, result.Error
	}
	return invoiceModel.ToEntity(), nil
}

// Update updates an existing invoice record. Save writes every column, so
// cleared (nil) metadata fields reach the database as NULL.
func (r *invoiceRepository) Update(ctx context.Context, invoice *entity.Invoice) error {
	invoiceModel := model.InvoiceModelFromEntity(invoice)
	result := r.db.WithContext(ctx).Save(invoiceModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// Delete removes an invoice record scoped to its owner.
func (r *invoiceRepository) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Delete(&model.InvoiceModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrInvoiceNotFound
	}
	return nil
}
