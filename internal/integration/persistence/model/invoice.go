// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/invoice-tracker/invoicetrack/internal/domain/entity"
)

// InvoiceModel represents the invoices table in the database. The metadata
// columns are nullable; NULL means the field was never provided, which is
// distinct from a zero amount or an empty vendor.
type InvoiceModel struct {
	ID          uuid.UUID        `gorm:"type:uuid;primaryKey"`
	OwnerID     uuid.UUID        `gorm:"type:uuid;not null;index"`
	FileName    string           `gorm:"type:varchar(255);not null"`
	FilePath    string           `gorm:"type:varchar(512)"`
	Vendor      *string          `gorm:"type:varchar(255)"`
	Amount      *decimal.Decimal `gorm:"type:numeric(14,2)"`
	InvoiceDate *time.Time       `gorm:"type:date"`
	Category    *string          `gorm:"type:varchar(100)"`
	UploadDate  time.Time        `gorm:"not null;index"`
	CreatedAt   time.Time        `gorm:"not null"`
	UpdatedAt   time.Time        `gorm:"not null"`
}

// TableName returns the table name for the InvoiceModel.
func (InvoiceModel) TableName() string {
	return "invoices"
}

// ToEntity converts an InvoiceModel to a domain Invoice entity.
func (m *InvoiceModel) ToEntity() *entity.Invoice {
	return &entity.Invoice{
		ID:          m.ID,
		OwnerID:     m.OwnerID,
		FileName:    m.FileName,
		FilePath:    m.FilePath,
		Vendor:      m.Vendor,
		Amount:      m.Amount,
		InvoiceDate: m.InvoiceDate,
		Category:    m.Category,
		UploadDate:  m.UploadDate,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// InvoiceModelFromEntity creates an InvoiceModel from a domain Invoice entity.
func InvoiceModelFromEntity(invoice *entity.Invoice) *InvoiceModel {
	return &InvoiceModel{
		ID:          invoice.ID,
		OwnerID:     invoice.OwnerID,
		FileName:    invoice.FileName,
		FilePath:    invoice.FilePath,
		Vendor:      invoice.Vendor,
		Amount:      invoice.Amount,
		InvoiceDate: invoice.InvoiceDate,
		Category:    invoice.Category,
		UploadDate:  invoice.UploadDate,
		CreatedAt:   invoice.CreatedAt,
		UpdatedAt:   invoice.UpdatedAt,
	}
}
