package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/webdev26/facture-api/internal/domain/entity"
	"github.com/webdev26/facture-api/pkg/pagination"
)

// InvoiceFilterParams contains filtering parameters for invoice queries
type InvoiceFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Paid       *bool
	ClientID   *uuid.UUID
	SortBy     string
	SortOrder  string
}

// InvoiceCursorFilterParams contains filtering parameters for cursor-based
// invoice queries
type InvoiceCursorFilterParams struct {
	Cursor   *pagination.CursorParams
	Search   string
	Paid     *bool
	ClientID *uuid.UUID
}

// InvoiceRepository defines the interface for invoice data operations
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error)
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Invoice, error)
	Update(ctx context.Context, invoice *entity.Invoice) error
	Delete(ctx context.Context, id uuid.UUID) error
	// List returns invoices across the given businesses.
	List(ctx context.Context, businessIDs []uuid.UUID, params *InvoiceFilterParams) ([]entity.Invoice, int64, error)
	// ListWithCursor returns invoices using cursor-based pagination.
	ListWithCursor(ctx context.Context, businessIDs []uuid.UUID, params *InvoiceCursorFilterParams) ([]entity.Invoice, error)
	UpdatePaid(ctx context.Context, id uuid.UUID, paid bool) error
	// NextSequenceNumber returns the sequence number the next invoice of the
	// business should carry: the business sequence start when the book is
	// empty, the highest issued number plus one otherwise.
	NextSequenceNumber(ctx context.Context, businessID uuid.UUID, sequenceStart int) (int, error)
	CountByBusinesses(ctx context.Context, businessIDs []uuid.UUID) (int64, error)
	// RevenueByBusinesses sums the totals of paid invoices.
	RevenueByBusinesses(ctx context.Context, businessIDs []uuid.UUID) (float64, error)
}

// InvoiceItemRepository defines the interface for invoice line item operations
type InvoiceItemRepository interface {
	CreateBatch(ctx context.Context, items []entity.InvoiceItem) error
	GetByInvoiceID(ctx context.Context, invoiceID uuid.UUID) ([]entity.InvoiceItem, error)
	DeleteByInvoiceID(ctx context.Context, invoiceID uuid.UUID) error
}
