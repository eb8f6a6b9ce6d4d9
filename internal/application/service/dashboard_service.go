package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/webdev26/facture-api/internal/application/pricing"
	"github.com/webdev26/facture-api/internal/domain/repository"
)

// DashboardService provides dashboard statistics
type DashboardService struct {
	businessRepo repository.BusinessRepository
	clientRepo   repository.ClientRepository
	invoiceRepo  repository.InvoiceRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	businessRepo repository.BusinessRepository,
	clientRepo repository.ClientRepository,
	invoiceRepo repository.InvoiceRepository,
) *DashboardService {
	return &DashboardService{
		businessRepo: businessRepo,
		clientRepo:   clientRepo,
		invoiceRepo:  invoiceRepo,
	}
}

// DashboardStats represents dashboard statistics across the owner's businesses
type DashboardStats struct {
	TotalBusinesses int64   `json:"total_businesses"`
	TotalClients    int64   `json:"total_clients"`
	TotalInvoices   int64   `json:"total_invoices"`
	PaidRevenue     float64 `json:"paid_revenue"`
}

// GetDashboardStats returns counts and paid revenue for the owner
func (s *DashboardService) GetDashboardStats(ctx context.Context, ownerID uuid.UUID) (*DashboardStats, error) {
	stats := &DashboardStats{}

	businessCount, err := s.businessRepo.CountByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	stats.TotalBusinesses = businessCount

	businesses, err := s.businessRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	businessIDs := make([]uuid.UUID, 0, len(businesses))
	for _, b := range businesses {
		businessIDs = append(businessIDs, b.ID)
	}

	clientCount, err := s.clientRepo.CountByBusinesses(ctx, businessIDs)
	if err != nil {
		return nil, err
	}
	stats.TotalClients = clientCount

	invoiceCount, err := s.invoiceRepo.CountByBusinesses(ctx, businessIDs)
	if err != nil {
		return nil, err
	}
	stats.TotalInvoices = invoiceCount

	revenue, err := s.invoiceRepo.RevenueByBusinesses(ctx, businessIDs)
	if err != nil {
		return nil, err
	}
	stats.PaidRevenue = pricing.Round2(revenue)

	return stats, nil
}
