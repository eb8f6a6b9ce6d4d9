package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/webdev26/facture-api/internal/application/document"
	"github.com/webdev26/facture-api/internal/domain/entity"
	"github.com/webdev26/facture-api/internal/domain/enum"
	"github.com/webdev26/facture-api/internal/domain/repository"
	"github.com/webdev26/facture-api/pkg/apperror"
	"github.com/webdev26/facture-api/pkg/pagination"
)

// In-memory repositories backing the service tests.

type fakeBusinessRepo struct {
	businesses map[uuid.UUID]*entity.Business
}

func newFakeBusinessRepo() *fakeBusinessRepo {
	return &fakeBusinessRepo{businesses: make(map[uuid.UUID]*entity.Business)}
}

func (r *fakeBusinessRepo) Create(_ context.Context, b *entity.Business) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	r.businesses[b.ID] = b
	return nil
}

func (r *fakeBusinessRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Business, error) {
	return r.businesses[id], nil
}

func (r *fakeBusinessRepo) Update(_ context.Context, b *entity.Business) error {
	r.businesses[b.ID] = b
	return nil
}

func (r *fakeBusinessRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.businesses, id)
	return nil
}

func (r *fakeBusinessRepo) List(_ context.Context, ownerID uuid.UUID, _ *pagination.PaginationParams, _ string) ([]entity.Business, int64, error) {
	var out []entity.Business
	for _, b := range r.businesses {
		if b.OwnerID == ownerID {
			out = append(out, *b)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeBusinessRepo) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]entity.Business, error) {
	var out []entity.Business
	for _, b := range r.businesses {
		if b.OwnerID == ownerID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBusinessRepo) CountByOwner(_ context.Context, ownerID uuid.UUID) (int64, error) {
	out, _ := r.ListByOwner(context.Background(), ownerID)
	return int64(len(out)), nil
}

type fakeClientRepo struct {
	clients map[uuid.UUID]*entity.Client
}

func newFakeClientRepo() *fakeClientRepo {
	return &fakeClientRepo{clients: make(map[uuid.UUID]*entity.Client)}
}

func (r *fakeClientRepo) Create(_ context.Context, c *entity.Client) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.clients[c.ID] = c
	return nil
}

func (r *fakeClientRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Client, error) {
	return r.clients[id], nil
}

func (r *fakeClientRepo) Update(_ context.Context, c *entity.Client) error {
	r.clients[c.ID] = c
	return nil
}

func (r *fakeClientRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.clients, id)
	return nil
}

func (r *fakeClientRepo) List(_ context.Context, businessID uuid.UUID, _ *pagination.PaginationParams, _ string) ([]entity.Client, int64, error) {
	var out []entity.Client
	for _, c := range r.clients {
		if c.BusinessID == businessID {
			out = append(out, *c)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeClientRepo) ListByBusinesses(_ context.Context, businessIDs []uuid.UUID) ([]entity.Client, error) {
	var out []entity.Client
	for _, c := range r.clients {
		for _, id := range businessIDs {
			if c.BusinessID == id {
				out = append(out, *c)
			}
		}
	}
	return out, nil
}

func (r *fakeClientRepo) CountByBusinesses(_ context.Context, businessIDs []uuid.UUID) (int64, error) {
	out, _ := r.ListByBusinesses(context.Background(), businessIDs)
	return int64(len(out)), nil
}

type fakeProductRepo struct {
	products map[uuid.UUID]*entity.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[uuid.UUID]*entity.Product)}
}

func (r *fakeProductRepo) Create(_ context.Context, p *entity.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Product, error) {
	return r.products[id], nil
}

func (r *fakeProductRepo) Update(_ context.Context, p *entity.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) List(_ context.Context, businessID uuid.UUID, _ *repository.ProductFilterParams) ([]entity.Product, int64, error) {
	var out []entity.Product
	for _, p := range r.products {
		if p.BusinessID == businessID {
			out = append(out, *p)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeProductRepo) GetByIDs(_ context.Context, ids []uuid.UUID) ([]entity.Product, error) {
	var out []entity.Product
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

type fakeInvoiceRepo struct {
	invoices map[uuid.UUID]*entity.Invoice
	items    *fakeInvoiceItemRepo
}

func newFakeInvoiceRepo(items *fakeInvoiceItemRepo) *fakeInvoiceRepo {
	return &fakeInvoiceRepo{invoices: make(map[uuid.UUID]*entity.Invoice), items: items}
}

func (r *fakeInvoiceRepo) Create(_ context.Context, inv *entity.Invoice) error {
	if inv.ID == uuid.Nil {
		inv.ID = uuid.New()
	}
	inv.CreatedAt = time.Now()
	r.invoices[inv.ID] = inv
	return nil
}

func (r *fakeInvoiceRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Invoice, error) {
	inv, ok := r.invoices[id]
	if !ok {
		return nil, nil
	}
	cp := *inv
	return &cp, nil
}

func (r *fakeInvoiceRepo) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	inv, err := r.GetByID(ctx, id)
	if inv == nil || err != nil {
		return inv, err
	}
	inv.Items, _ = r.items.GetByInvoiceID(ctx, id)
	return inv, nil
}

func (r *fakeInvoiceRepo) Update(_ context.Context, inv *entity.Invoice) error {
	cp := *inv
	r.invoices[inv.ID] = &cp
	return nil
}

func (r *fakeInvoiceRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.invoices, id)
	return nil
}

func (r *fakeInvoiceRepo) List(_ context.Context, businessIDs []uuid.UUID, _ *repository.InvoiceFilterParams) ([]entity.Invoice, int64, error) {
	var out []entity.Invoice
	for _, inv := range r.invoices {
		for _, id := range businessIDs {
			if inv.BusinessID == id {
				out = append(out, *inv)
			}
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeInvoiceRepo) ListWithCursor(ctx context.Context, businessIDs []uuid.UUID, params *repository.InvoiceCursorFilterParams) ([]entity.Invoice, error) {
	out, _, err := r.List(ctx, businessIDs, nil)
	return out, err
}

func (r *fakeInvoiceRepo) UpdatePaid(_ context.Context, id uuid.UUID, paid bool) error {
	if inv, ok := r.invoices[id]; ok {
		inv.Paid = paid
	}
	return nil
}

func (r *fakeInvoiceRepo) NextSequenceNumber(_ context.Context, businessID uuid.UUID, sequenceStart int) (int, error) {
	max := 0
	for _, inv := range r.invoices {
		if inv.BusinessID == businessID && inv.SequenceNumber > max {
			max = inv.SequenceNumber
		}
	}
	if max < sequenceStart {
		return sequenceStart, nil
	}
	return max + 1, nil
}

func (r *fakeInvoiceRepo) CountByBusinesses(ctx context.Context, businessIDs []uuid.UUID) (int64, error) {
	_, total, err := r.List(ctx, businessIDs, nil)
	return total, err
}

func (r *fakeInvoiceRepo) RevenueByBusinesses(ctx context.Context, businessIDs []uuid.UUID) (float64, error) {
	out, _, err := r.List(ctx, businessIDs, nil)
	if err != nil {
		return 0, err
	}
	var revenue float64
	for _, inv := range out {
		if inv.Paid {
			revenue += inv.Total
		}
	}
	return revenue, nil
}

type fakeInvoiceItemRepo struct {
	items map[uuid.UUID][]entity.InvoiceItem
}

func newFakeInvoiceItemRepo() *fakeInvoiceItemRepo {
	return &fakeInvoiceItemRepo{items: make(map[uuid.UUID][]entity.InvoiceItem)}
}

func (r *fakeInvoiceItemRepo) CreateBatch(_ context.Context, items []entity.InvoiceItem) error {
	for _, item := range items {
		r.items[item.InvoiceID] = append(r.items[item.InvoiceID], item)
	}
	return nil
}

func (r *fakeInvoiceItemRepo) GetByInvoiceID(_ context.Context, invoiceID uuid.UUID) ([]entity.InvoiceItem, error) {
	return r.items[invoiceID], nil
}

func (r *fakeInvoiceItemRepo) DeleteByInvoiceID(_ context.Context, invoiceID uuid.UUID) error {
	delete(r.items, invoiceID)
	return nil
}

type fakeSettingsRepo struct {
	settings map[uuid.UUID]*entity.UserSettings
}

func newFakeSettingsRepo() *fakeSettingsRepo {
	return &fakeSettingsRepo{settings: make(map[uuid.UUID]*entity.UserSettings)}
}

func (r *fakeSettingsRepo) GetByUserID(_ context.Context, userID uuid.UUID) (*entity.UserSettings, error) {
	return r.settings[userID], nil
}

func (r *fakeSettingsRepo) Create(_ context.Context, s *entity.UserSettings) error {
	r.settings[s.UserID] = s
	return nil
}

func (r *fakeSettingsRepo) Update(_ context.Context, s *entity.UserSettings) error {
	r.settings[s.UserID] = s
	return nil
}

type invoiceFixture struct {
	svc      *InvoiceService
	owner    uuid.UUID
	business *entity.Business
	client   *entity.Client
	product  *entity.Product

	businessRepo *fakeBusinessRepo
	clientRepo   *fakeClientRepo
	productRepo  *fakeProductRepo
	invoiceRepo  *fakeInvoiceRepo
	itemRepo     *fakeInvoiceItemRepo
}

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

func newInvoiceFixture(t *testing.T) *invoiceFixture {
	t.Helper()

	itemRepo := newFakeInvoiceItemRepo()
	f := &invoiceFixture{
		owner:        uuid.New(),
		businessRepo: newFakeBusinessRepo(),
		clientRepo:   newFakeClientRepo(),
		productRepo:  newFakeProductRepo(),
		invoiceRepo:  newFakeInvoiceRepo(itemRepo),
		itemRepo:     itemRepo,
	}

	f.business = &entity.Business{
		OwnerID:       f.owner,
		Name:          "Webdev 26",
		SequenceStart: 100,
	}
	require.NoError(t, f.businessRepo.Create(context.Background(), f.business))

	f.client = &entity.Client{
		BusinessID: f.business.ID,
		Name:       "Acme Maroc",
		Email:      strPtr("compta@acme.ma"),
	}
	require.NoError(t, f.clientRepo.Create(context.Background(), f.client))

	f.product = &entity.Product{
		BusinessID:     f.business.ID,
		Name:           "Maintenance mensuelle",
		Description:    strPtr("Forfait serveur"),
		UnitPrice:      200,
		TaxRatePercent: 20,
	}
	require.NoError(t, f.productRepo.Create(context.Background(), f.product))

	f.svc = NewInvoiceService(f.invoiceRepo, itemRepo, f.businessRepo, f.clientRepo, f.productRepo, newFakeSettingsRepo(), document.DefaultOptions())
	return f
}

func (f *invoiceFixture) createInput() *CreateInvoiceInput {
	return &CreateInvoiceInput{
		OwnerID:    f.owner,
		BusinessID: f.business.ID,
		ClientID:   &f.client.ID,
		Title:      "Prestations mars",
		IssueDate:  time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		Items: []InvoiceItemInput{
			{Name: "Audit", UnitPrice: floatPtr(100), TaxRatePercent: floatPtr(20), Quantity: 2},
		},
	}
}

func TestCreateInvoice_AssignsSequenceAndNumber(t *testing.T) {
	f := newInvoiceFixture(t)
	ctx := context.Background()

	first, err := f.svc.CreateInvoice(ctx, f.createInput())
	require.NoError(t, err)
	assert.Equal(t, 100, first.SequenceNumber)
	assert.Equal(t, "26-100", first.Number)

	second, err := f.svc.CreateInvoice(ctx, f.createInput())
	require.NoError(t, err)
	assert.Equal(t, 101, second.SequenceNumber)
	assert.Equal(t, "26-101", second.Number)
}

func TestCreateInvoice_ComputesTotals(t *testing.T) {
	f := newInvoiceFixture(t)

	input := f.createInput()
	input.DiscountType = enum.DiscountTypePercentage
	input.DiscountValue = 10

	inv, err := f.svc.CreateInvoice(context.Background(), input)
	require.NoError(t, err)

	assert.InDelta(t, 200.0, inv.Subtotal, 0.001)
	assert.InDelta(t, 20.0, inv.DiscountAmount, 0.001)
	assert.InDelta(t, 36.0, inv.TaxTotal, 0.001)
	assert.InDelta(t, 216.0, inv.Total, 0.001)
}

func TestCreateInvoice_SnapshotsBusinessAndClient(t *testing.T) {
	f := newInvoiceFixture(t)
	ctx := context.Background()

	inv, err := f.svc.CreateInvoice(ctx, f.createInput())
	require.NoError(t, err)

	// Later edits to the live records must not leak into the issued invoice
	f.business.Name = "Webdev 26 SARL"
	require.NoError(t, f.businessRepo.Update(ctx, f.business))
	f.client.Name = "Acme Maroc SA"
	require.NoError(t, f.clientRepo.Update(ctx, f.client))

	stored, err := f.svc.GetInvoice(ctx, f.owner, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, "Webdev 26", stored.Business.Name)
	assert.Equal(t, "Acme Maroc", stored.Client.Name)
	assert.Equal(t, "compta@acme.ma", stored.Client.Email)
}

func TestCreateInvoice_ProductBackedLine(t *testing.T) {
	f := newInvoiceFixture(t)

	input := f.createInput()
	input.Items = []InvoiceItemInput{
		{ProductID: &f.product.ID, Quantity: 3},
		{ProductID: &f.product.ID, Name: "Maintenance custom", UnitPrice: floatPtr(150), Quantity: 1},
	}

	inv, err := f.svc.CreateInvoice(context.Background(), input)
	require.NoError(t, err)
	require.Len(t, inv.Items, 2)

	// Catalog defaults fill the blanks
	assert.Equal(t, "Maintenance mensuelle", inv.Items[0].Name)
	assert.Equal(t, "Forfait serveur", inv.Items[0].Description)
	assert.InDelta(t, 200.0, inv.Items[0].UnitPrice, 0.001)
	assert.InDelta(t, 20.0, inv.Items[0].TaxRatePercent, 0.001)

	// Explicit values win over catalog defaults
	assert.Equal(t, "Maintenance custom", inv.Items[1].Name)
	assert.InDelta(t, 150.0, inv.Items[1].UnitPrice, 0.001)
}

func TestCreateInvoice_RejectsProductOfAnotherBusiness(t *testing.T) {
	f := newInvoiceFixture(t)
	ctx := context.Background()

	other := &entity.Business{OwnerID: f.owner, Name: "Autre", SequenceStart: 1}
	require.NoError(t, f.businessRepo.Create(ctx, other))
	foreign := &entity.Product{BusinessID: other.ID, Name: "Hors catalogue", UnitPrice: 10}
	require.NoError(t, f.productRepo.Create(ctx, foreign))

	input := f.createInput()
	input.Items = []InvoiceItemInput{{ProductID: &foreign.ID, Quantity: 1}}

	_, err := f.svc.CreateInvoice(ctx, input)
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 404, appErr.Code)
}

func TestCreateInvoice_RejectsForeignOwner(t *testing.T) {
	f := newInvoiceFixture(t)

	input := f.createInput()
	input.OwnerID = uuid.New()

	_, err := f.svc.CreateInvoice(context.Background(), input)
	assert.ErrorIs(t, err, apperror.ErrForbidden)
}

func TestCreateInvoice_RejectsClientOfAnotherBusiness(t *testing.T) {
	f := newInvoiceFixture(t)
	ctx := context.Background()

	stray := &entity.Client{BusinessID: uuid.New(), Name: "Inconnu"}
	require.NoError(t, f.clientRepo.Create(ctx, stray))

	input := f.createInput()
	input.ClientID = &stray.ID

	_, err := f.svc.CreateInvoice(ctx, input)
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 404, appErr.Code)
}

func TestUpdateInvoice_KeepsNumberAndReplacesItems(t *testing.T) {
	f := newInvoiceFixture(t)
	ctx := context.Background()

	inv, err := f.svc.CreateInvoice(ctx, f.createInput())
	require.NoError(t, err)

	updated, err := f.svc.UpdateInvoice(ctx, &UpdateInvoiceInput{
		OwnerID:   f.owner,
		ID:        inv.ID,
		ClientID:  &f.client.ID,
		Title:     "Prestations avril",
		IssueDate: time.Date(2027, 4, 1, 0, 0, 0, 0, time.UTC),
		Items: []InvoiceItemInput{
			{Name: "Formation", UnitPrice: floatPtr(500), TaxRatePercent: floatPtr(14), Quantity: 1},
		},
	})
	require.NoError(t, err)

	// The number assigned at creation survives a reissue in a later year
	assert.Equal(t, 100, updated.SequenceNumber)
	assert.Equal(t, "26-100", updated.Number)
	assert.Equal(t, "Prestations avril", updated.Title)

	require.Len(t, updated.Items, 1)
	assert.Equal(t, "Formation", updated.Items[0].Name)
	assert.InDelta(t, 500.0, updated.Subtotal, 0.001)
	assert.InDelta(t, 70.0, updated.TaxTotal, 0.001)
	assert.InDelta(t, 570.0, updated.Total, 0.001)
}

func TestUpdateInvoice_RefreshesSnapshots(t *testing.T) {
	f := newInvoiceFixture(t)
	ctx := context.Background()

	inv, err := f.svc.CreateInvoice(ctx, f.createInput())
	require.NoError(t, err)

	f.business.Name = "Webdev 26 SARL"
	require.NoError(t, f.businessRepo.Update(ctx, f.business))

	input := f.createInput()
	updated, err := f.svc.UpdateInvoice(ctx, &UpdateInvoiceInput{
		OwnerID:  f.owner,
		ID:       inv.ID,
		ClientID: input.ClientID,
		Title:    input.Title,
		Items:    input.Items,
	})
	require.NoError(t, err)
	assert.Equal(t, "Webdev 26 SARL", updated.Business.Name)
}

func TestSetInvoicePaid(t *testing.T) {
	f := newInvoiceFixture(t)
	ctx := context.Background()

	inv, err := f.svc.CreateInvoice(ctx, f.createInput())
	require.NoError(t, err)
	assert.False(t, inv.Paid)

	require.NoError(t, f.svc.SetInvoicePaid(ctx, f.owner, inv.ID, true))

	stored, err := f.svc.GetInvoice(ctx, f.owner, inv.ID)
	require.NoError(t, err)
	assert.True(t, stored.Paid)
}

func TestDeleteInvoice_RemovesItems(t *testing.T) {
	f := newInvoiceFixture(t)
	ctx := context.Background()

	inv, err := f.svc.CreateInvoice(ctx, f.createInput())
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteInvoice(ctx, f.owner, inv.ID))

	items, err := f.itemRepo.GetByInvoiceID(ctx, inv.ID)
	require.NoError(t, err)
	assert.Empty(t, items)

	_, err = f.svc.GetInvoice(ctx, f.owner, inv.ID)
	require.Error(t, err)
}

func TestRenderInvoicePDF(t *testing.T) {
	f := newInvoiceFixture(t)
	ctx := context.Background()

	inv, err := f.svc.CreateInvoice(ctx, f.createInput())
	require.NoError(t, err)

	pdf, filename, err := f.svc.RenderInvoicePDF(ctx, f.owner, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, "facture-26-100.pdf", filename)
	require.Greater(t, len(pdf), 4)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}
