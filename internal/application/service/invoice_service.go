package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/webdev26/facture-api/internal/application/document"
	"github.com/webdev26/facture-api/internal/application/pricing"
	"github.com/webdev26/facture-api/internal/domain/entity"
	"github.com/webdev26/facture-api/internal/domain/enum"
	"github.com/webdev26/facture-api/internal/domain/repository"
	"github.com/webdev26/facture-api/pkg/apperror"
	"github.com/webdev26/facture-api/pkg/pagination"
)

// InvoiceService handles invoice-related operations: pricing, numbering,
// snapshotting and document rendering.
type InvoiceService struct {
	invoiceRepo     repository.InvoiceRepository
	invoiceItemRepo repository.InvoiceItemRepository
	businessRepo    repository.BusinessRepository
	clientRepo      repository.ClientRepository
	productRepo     repository.ProductRepository
	settingsRepo    repository.SettingsRepository
	documentOpts    document.Options
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(
	invoiceRepo repository.InvoiceRepository,
	invoiceItemRepo repository.InvoiceItemRepository,
	businessRepo repository.BusinessRepository,
	clientRepo repository.ClientRepository,
	productRepo repository.ProductRepository,
	settingsRepo repository.SettingsRepository,
	documentOpts document.Options,
) *InvoiceService {
	return &InvoiceService{
		invoiceRepo:     invoiceRepo,
		invoiceItemRepo: invoiceItemRepo,
		businessRepo:    businessRepo,
		clientRepo:      clientRepo,
		productRepo:     productRepo,
		settingsRepo:    settingsRepo,
		documentOpts:    documentOpts,
	}
}

// InvoiceItemInput represents a line item input. When ProductID is set the
// catalog product supplies the defaults; explicit values override them.
type InvoiceItemInput struct {
	ProductID      *uuid.UUID
	Name           string
	Description    *string
	UnitPrice      *float64
	TaxRatePercent *float64
	Quantity       int
}

// CreateInvoiceInput represents the input for creating an invoice
type CreateInvoiceInput struct {
	OwnerID       uuid.UUID
	BusinessID    uuid.UUID
	ClientID      *uuid.UUID
	Title         string
	IssueDate     time.Time
	DiscountType  enum.DiscountType
	DiscountValue float64
	Items         []InvoiceItemInput
}

func (s *InvoiceService) ownedBusiness(ctx context.Context, ownerID, businessID uuid.UUID) (*entity.Business, error) {
	business, err := s.businessRepo.GetByID(ctx, businessID)
	if err != nil {
		return nil, err
	}
	if business == nil {
		return nil, apperror.NewNotFoundError("Business")
	}
	if business.OwnerID != ownerID {
		return nil, apperror.ErrForbidden
	}
	return business, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// businessSnapshot freezes the issuing business onto the invoice
func businessSnapshot(b *entity.Business) entity.BusinessSnapshot {
	return entity.BusinessSnapshot{
		Name:             b.Name,
		Email:            deref(b.Email),
		Phone:            deref(b.Phone),
		ICE:              deref(b.ICE),
		Address:          deref(b.Address),
		City:             deref(b.City),
		LogoURL:          deref(b.LogoURL),
		BankAccountLabel: deref(b.BankAccountLabel),
		BankCurrency:     deref(b.BankCurrency),
		RIB:              deref(b.RIB),
		IBAN:             deref(b.IBAN),
		BIC:              deref(b.BIC),
		Capital:          deref(b.Capital),
		TradeRegister:    deref(b.TradeRegister),
		ProfessionalTax:  deref(b.ProfessionalTax),
		FiscalID:         deref(b.FiscalID),
	}
}

// clientSnapshot freezes the billed party onto the invoice
func clientSnapshot(c *entity.Client) entity.ClientSnapshot {
	if c == nil {
		return entity.ClientSnapshot{}
	}
	return entity.ClientSnapshot{
		Name:    c.Name,
		Email:   deref(c.Email),
		Mobile:  deref(c.Mobile),
		ICE:     deref(c.ICE),
		Address: deref(c.Address),
	}
}

// resolveItems turns item inputs into immutable line snapshots, pulling
// catalog defaults for product-backed lines.
func (s *InvoiceService) resolveItems(ctx context.Context, businessID uuid.UUID, inputs []InvoiceItemInput) ([]entity.InvoiceItem, error) {
	productIDs := make([]uuid.UUID, 0, len(inputs))
	for _, in := range inputs {
		if in.ProductID != nil {
			productIDs = append(productIDs, *in.ProductID)
		}
	}

	products := make(map[uuid.UUID]entity.Product)
	if len(productIDs) > 0 {
		resolved, err := s.productRepo.GetByIDs(ctx, productIDs)
		if err != nil {
			return nil, err
		}
		for _, p := range resolved {
			products[p.ID] = p
		}
	}

	items := make([]entity.InvoiceItem, 0, len(inputs))
	for i, in := range inputs {
		item := entity.InvoiceItem{
			ProductID:   in.ProductID,
			Position:    i + 1,
			Name:        in.Name,
			Description: deref(in.Description),
			Quantity:    in.Quantity,
		}

		if in.ProductID != nil {
			product, ok := products[*in.ProductID]
			if !ok || product.BusinessID != businessID {
				return nil, apperror.NewNotFoundError("Product")
			}
			if item.Name == "" {
				item.Name = product.Name
			}
			if item.Description == "" {
				item.Description = deref(product.Description)
			}
			item.UnitPrice = product.UnitPrice
			item.TaxRatePercent = product.TaxRatePercent
		}

		if in.UnitPrice != nil {
			item.UnitPrice = *in.UnitPrice
		}
		if in.TaxRatePercent != nil {
			item.TaxRatePercent = *in.TaxRatePercent
		}

		items = append(items, item)
	}

	return items, nil
}

// computeTotals runs the pricing engine over resolved items
func computeTotals(items []entity.InvoiceItem, discountType enum.DiscountType, discountValue float64) (*pricing.Totals, error) {
	lines := make([]pricing.LineItem, 0, len(items))
	for _, item := range items {
		lines = append(lines, pricing.LineItem{
			UnitPrice:      item.UnitPrice,
			TaxRatePercent: item.TaxRatePercent,
			Quantity:       item.Quantity,
		})
	}
	return pricing.Compute(lines, pricing.Discount{Type: discountType, Value: discountValue})
}

// CreateInvoice creates an invoice: totals are computed by the pricing
// engine, the sequence number is drawn from the business book and the issuing
// business and billed client are frozen as snapshots.
func (s *InvoiceService) CreateInvoice(ctx context.Context, input *CreateInvoiceInput) (*entity.Invoice, error) {
	business, err := s.ownedBusiness(ctx, input.OwnerID, input.BusinessID)
	if err != nil {
		return nil, err
	}

	var client *entity.Client
	if input.ClientID != nil {
		client, err = s.clientRepo.GetByID(ctx, *input.ClientID)
		if err != nil {
			return nil, err
		}
		if client == nil || client.BusinessID != business.ID {
			return nil, apperror.NewNotFoundError("Client")
		}
	}

	items, err := s.resolveItems(ctx, business.ID, input.Items)
	if err != nil {
		return nil, err
	}

	totals, err := computeTotals(items, input.DiscountType, input.DiscountValue)
	if err != nil {
		return nil, err
	}

	sequence, err := s.invoiceRepo.NextSequenceNumber(ctx, business.ID, business.SequenceStart)
	if err != nil {
		return nil, err
	}

	issueDate := input.IssueDate
	if issueDate.IsZero() {
		issueDate = time.Now()
	}

	invoice := &entity.Invoice{
		BusinessID:     business.ID,
		ClientID:       input.ClientID,
		Title:          input.Title,
		SequenceNumber: sequence,
		Number:         entity.FormatInvoiceNumber(sequence, issueDate),
		IssueDate:      issueDate,
		DiscountType:   input.DiscountType,
		DiscountValue:  input.DiscountValue,
		Subtotal:       totals.Subtotal,
		DiscountAmount: totals.DiscountAmount,
		TaxTotal:       totals.TaxTotal,
		Total:          totals.Total,
		Business:       businessSnapshot(business),
		Client:         clientSnapshot(client),
	}

	if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
		return nil, err
	}

	for i := range items {
		items[i].InvoiceID = invoice.ID
	}
	if err := s.invoiceItemRepo.CreateBatch(ctx, items); err != nil {
		return nil, err
	}

	return s.invoiceRepo.GetWithItems(ctx, invoice.ID)
}

// GetInvoice retrieves an invoice with its items
func (s *InvoiceService) GetInvoice(ctx context.Context, ownerID, id uuid.UUID) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	if _, err := s.ownedBusiness(ctx, ownerID, invoice.BusinessID); err != nil {
		return nil, err
	}
	return invoice, nil
}

// ListInvoicesInput represents the input for listing invoices
type ListInvoicesInput struct {
	OwnerID    uuid.UUID
	BusinessID *uuid.UUID
	Pagination *pagination.PaginationParams
	Search     string
	Paid       *bool
	ClientID   *uuid.UUID
	SortBy     string
	SortOrder  string
}

// scopedBusinessIDs resolves the businesses a listing may span: the one
// requested business after an ownership check, or every business of the owner.
func (s *InvoiceService) scopedBusinessIDs(ctx context.Context, ownerID uuid.UUID, businessID *uuid.UUID) ([]uuid.UUID, error) {
	if businessID != nil {
		if _, err := s.ownedBusiness(ctx, ownerID, *businessID); err != nil {
			return nil, err
		}
		return []uuid.UUID{*businessID}, nil
	}

	businesses, err := s.businessRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, 0, len(businesses))
	for _, b := range businesses {
		ids = append(ids, b.ID)
	}
	return ids, nil
}

// ListInvoices lists invoices across the owner's businesses, or one business
// when BusinessID is set.
func (s *InvoiceService) ListInvoices(ctx context.Context, input *ListInvoicesInput) (*pagination.PaginatedResult[entity.Invoice], error) {
	businessIDs, err := s.scopedBusinessIDs(ctx, input.OwnerID, input.BusinessID)
	if err != nil {
		return nil, err
	}

	params := &repository.InvoiceFilterParams{
		Pagination: input.Pagination,
		Search:     input.Search,
		Paid:       input.Paid,
		ClientID:   input.ClientID,
		SortBy:     input.SortBy,
		SortOrder:  input.SortOrder,
	}

	invoices, total, err := s.invoiceRepo.List(ctx, businessIDs, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(input.Pagination.Page, input.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(invoices, pag), nil
}

// ListInvoicesWithCursorInput represents the input for cursor-based listing
type ListInvoicesWithCursorInput struct {
	OwnerID    uuid.UUID
	BusinessID *uuid.UUID
	Cursor     *pagination.CursorParams
	Search     string
	Paid       *bool
	ClientID   *uuid.UUID
}

// ListInvoicesWithCursor lists invoices with cursor-based pagination
func (s *InvoiceService) ListInvoicesWithCursor(ctx context.Context, input *ListInvoicesWithCursorInput) (*pagination.CursorPaginatedResult[entity.Invoice], error) {
	businessIDs, err := s.scopedBusinessIDs(ctx, input.OwnerID, input.BusinessID)
	if err != nil {
		return nil, err
	}

	invoices, err := s.invoiceRepo.ListWithCursor(ctx, businessIDs, &repository.InvoiceCursorFilterParams{
		Cursor:   input.Cursor,
		Search:   input.Search,
		Paid:     input.Paid,
		ClientID: input.ClientID,
	})
	if err != nil {
		return nil, err
	}

	hasPrev := input.Cursor.Cursor != ""

	cursorPag, items := pagination.NewCursorPagination(invoices, input.Cursor.Limit,
		func(inv entity.Invoice) string { return inv.ID.String() },
		func(inv entity.Invoice) time.Time { return inv.CreatedAt },
	)
	cursorPag.HasPrev = hasPrev

	return pagination.NewCursorPaginatedResult(items, cursorPag), nil
}

// UpdateInvoiceInput represents the input for updating an invoice
type UpdateInvoiceInput struct {
	OwnerID       uuid.UUID
	ID            uuid.UUID
	ClientID      *uuid.UUID
	Title         string
	IssueDate     time.Time
	DiscountType  enum.DiscountType
	DiscountValue float64
	Items         []InvoiceItemInput
}

// UpdateInvoice replaces the invoice's editable inputs and recomputes the
// whole money bundle. The sequence number and document number assigned at
// creation never change; snapshots are refreshed from the current business
// and client records since the document is being reissued.
func (s *InvoiceService) UpdateInvoice(ctx context.Context, input *UpdateInvoiceInput) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}

	business, err := s.ownedBusiness(ctx, input.OwnerID, invoice.BusinessID)
	if err != nil {
		return nil, err
	}

	var client *entity.Client
	if input.ClientID != nil {
		client, err = s.clientRepo.GetByID(ctx, *input.ClientID)
		if err != nil {
			return nil, err
		}
		if client == nil || client.BusinessID != business.ID {
			return nil, apperror.NewNotFoundError("Client")
		}
	}

	items, err := s.resolveItems(ctx, business.ID, input.Items)
	if err != nil {
		return nil, err
	}

	totals, err := computeTotals(items, input.DiscountType, input.DiscountValue)
	if err != nil {
		return nil, err
	}

	invoice.ClientID = input.ClientID
	invoice.Title = input.Title
	if !input.IssueDate.IsZero() {
		invoice.IssueDate = input.IssueDate
	}
	invoice.DiscountType = input.DiscountType
	invoice.DiscountValue = input.DiscountValue
	invoice.Subtotal = totals.Subtotal
	invoice.DiscountAmount = totals.DiscountAmount
	invoice.TaxTotal = totals.TaxTotal
	invoice.Total = totals.Total
	invoice.Business = businessSnapshot(business)
	invoice.Client = clientSnapshot(client)

	if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
		return nil, err
	}

	// Replace line items wholesale
	if err := s.invoiceItemRepo.DeleteByInvoiceID(ctx, invoice.ID); err != nil {
		return nil, err
	}
	for i := range items {
		items[i].InvoiceID = invoice.ID
	}
	if err := s.invoiceItemRepo.CreateBatch(ctx, items); err != nil {
		return nil, err
	}

	return s.invoiceRepo.GetWithItems(ctx, invoice.ID)
}

// DeleteInvoice deletes an invoice and its items
func (s *InvoiceService) DeleteInvoice(ctx context.Context, ownerID, id uuid.UUID) error {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if invoice == nil {
		return apperror.NewNotFoundError("Invoice")
	}
	if _, err := s.ownedBusiness(ctx, ownerID, invoice.BusinessID); err != nil {
		return err
	}

	if err := s.invoiceItemRepo.DeleteByInvoiceID(ctx, id); err != nil {
		return err
	}
	return s.invoiceRepo.Delete(ctx, id)
}

// SetInvoicePaid marks an invoice paid or unpaid
func (s *InvoiceService) SetInvoicePaid(ctx context.Context, ownerID, id uuid.UUID, paid bool) error {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if invoice == nil {
		return apperror.NewNotFoundError("Invoice")
	}
	if _, err := s.ownedBusiness(ctx, ownerID, invoice.BusinessID); err != nil {
		return err
	}
	return s.invoiceRepo.UpdatePaid(ctx, id, paid)
}

// renderOptions builds the document options for a user: defaults from the
// application config, language and currency overridden by user settings.
func (s *InvoiceService) renderOptions(ctx context.Context, ownerID uuid.UUID) document.Options {
	opts := s.documentOpts

	settings, err := s.settingsRepo.GetByUserID(ctx, ownerID)
	if err != nil || settings == nil {
		return opts
	}
	if settings.Language != "" {
		opts.Language = settings.Language
	}
	if settings.Currency != "" {
		opts.Currency = settings.Currency
	}
	return opts
}

// RenderInvoicePDF projects the invoice into its document tree and renders it
// to PDF bytes. The stored invoice is never modified.
func (s *InvoiceService) RenderInvoicePDF(ctx context.Context, ownerID, id uuid.UUID) ([]byte, string, error) {
	invoice, err := s.GetInvoice(ctx, ownerID, id)
	if err != nil {
		return nil, "", err
	}

	opts := s.renderOptions(ctx, ownerID)
	doc := document.Project(invoice, opts)

	pdf, err := document.NewRenderer(opts.Language).Render(doc)
	if err != nil {
		return nil, "", err
	}

	filename := "facture-" + invoice.Number + ".pdf"
	return pdf, filename, nil
}
