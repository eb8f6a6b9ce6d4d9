package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/webdev26/facture-api/internal/application/service"
	"github.com/webdev26/facture-api/internal/domain/enum"
	"github.com/webdev26/facture-api/internal/presentation/http/dto/response"
	"github.com/webdev26/facture-api/pkg/pagination"
)

// issueDateLayout is the wire format for invoice issue dates
const issueDateLayout = "2006-01-02"

// InvoiceHandler handles invoice-related HTTP requests
type InvoiceHandler struct {
	invoiceService *service.InvoiceService
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(invoiceService *service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// invoiceItemRequest is a single invoice line in a create or update request
type invoiceItemRequest struct {
	ProductID      *uuid.UUID `json:"product_id"`
	Name           string     `json:"name"`
	Description    *string    `json:"description"`
	UnitPrice      *float64   `json:"unit_price"`
	TaxRatePercent *float64   `json:"tax_rate_percent"`
	Quantity       int        `json:"quantity" binding:"required,min=1"`
}

func toItemInputs(items []invoiceItemRequest) []service.InvoiceItemInput {
	inputs := make([]service.InvoiceItemInput, 0, len(items))
	for _, item := range items {
		inputs = append(inputs, service.InvoiceItemInput{
			ProductID:      item.ProductID,
			Name:           item.Name,
			Description:    item.Description,
			UnitPrice:      item.UnitPrice,
			TaxRatePercent: item.TaxRatePercent,
			Quantity:       item.Quantity,
		})
	}
	return inputs
}

// List handles listing invoices (supports both page-based and cursor-based pagination)
func (h *InvoiceHandler) List(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	// Check if cursor-based pagination is requested
	if cursor := c.Query("cursor"); cursor != "" || c.Query("limit") != "" {
		h.listWithCursor(c, *userID)
		return
	}

	// Default to page-based pagination
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	input := &service.ListInvoicesInput{
		OwnerID: *userID,
		Pagination: &pagination.PaginationParams{
			Page:    page,
			PerPage: perPage,
		},
		Search:    c.Query("search"),
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}

	if businessIDStr := c.Query("business_id"); businessIDStr != "" {
		businessID, err := uuid.Parse(businessIDStr)
		if err != nil {
			response.BadRequest(c, "Invalid business ID")
			return
		}
		input.BusinessID = &businessID
	}

	if clientIDStr := c.Query("client_id"); clientIDStr != "" {
		clientID, err := uuid.Parse(clientIDStr)
		if err != nil {
			response.BadRequest(c, "Invalid client ID")
			return
		}
		input.ClientID = &clientID
	}

	if paidStr := c.Query("paid"); paidStr != "" {
		paid, err := strconv.ParseBool(paidStr)
		if err != nil {
			response.BadRequest(c, "Invalid paid filter")
			return
		}
		input.Paid = &paid
	}

	result, err := h.invoiceService.ListInvoices(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Invoices retrieved successfully", result)
}

// listWithCursor handles listing invoices with cursor-based pagination
func (h *InvoiceHandler) listWithCursor(c *gin.Context, userID uuid.UUID) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "15"))

	input := &service.ListInvoicesWithCursorInput{
		OwnerID: userID,
		Cursor: &pagination.CursorParams{
			Cursor:    c.Query("cursor"),
			Direction: pagination.CursorDirection(c.DefaultQuery("direction", "next")),
			Limit:     limit,
		},
		Search: c.Query("search"),
	}

	if businessIDStr := c.Query("business_id"); businessIDStr != "" {
		businessID, err := uuid.Parse(businessIDStr)
		if err != nil {
			response.BadRequest(c, "Invalid business ID")
			return
		}
		input.BusinessID = &businessID
	}

	if clientIDStr := c.Query("client_id"); clientIDStr != "" {
		clientID, err := uuid.Parse(clientIDStr)
		if err != nil {
			response.BadRequest(c, "Invalid client ID")
			return
		}
		input.ClientID = &clientID
	}

	if paidStr := c.Query("paid"); paidStr != "" {
		paid, err := strconv.ParseBool(paidStr)
		if err != nil {
			response.BadRequest(c, "Invalid paid filter")
			return
		}
		input.Paid = &paid
	}

	result, err := h.invoiceService.ListInvoicesWithCursor(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, 200, "Invoices retrieved successfully", result)
}

// Create handles creating an invoice
func (h *InvoiceHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req struct {
		BusinessID    uuid.UUID            `json:"business_id" binding:"required"`
		ClientID      *uuid.UUID           `json:"client_id"`
		Title         string               `json:"title"`
		IssueDate     string               `json:"issue_date"`
		DiscountType  enum.DiscountType    `json:"discount_type"`
		DiscountValue float64              `json:"discount_value"`
		Items         []invoiceItemRequest `json:"items" binding:"required,min=1,dive"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	var issueDate time.Time
	if req.IssueDate != "" {
		parsed, err := time.Parse(issueDateLayout, req.IssueDate)
		if err != nil {
			response.BadRequest(c, "Invalid issue date, expected YYYY-MM-DD")
			return
		}
		issueDate = parsed
	}

	invoice, err := h.invoiceService.CreateInvoice(c.Request.Context(), &service.CreateInvoiceInput{
		OwnerID:       *userID,
		BusinessID:    req.BusinessID,
		ClientID:      req.ClientID,
		Title:         req.Title,
		IssueDate:     issueDate,
		DiscountType:  req.DiscountType,
		DiscountValue: req.DiscountValue,
		Items:         toItemInputs(req.Items),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Invoice created successfully", invoice)
}

// Get handles getting a single invoice with its items
func (h *InvoiceHandler) Get(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), *userID, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice retrieved successfully", invoice)
}

// Update handles updating an invoice
func (h *InvoiceHandler) Update(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	var req struct {
		ClientID      *uuid.UUID           `json:"client_id"`
		Title         string               `json:"title"`
		IssueDate     string               `json:"issue_date"`
		DiscountType  enum.DiscountType    `json:"discount_type"`
		DiscountValue float64              `json:"discount_value"`
		Items         []invoiceItemRequest `json:"items" binding:"required,min=1,dive"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	var issueDate time.Time
	if req.IssueDate != "" {
		parsed, err := time.Parse(issueDateLayout, req.IssueDate)
		if err != nil {
			response.BadRequest(c, "Invalid issue date, expected YYYY-MM-DD")
			return
		}
		issueDate = parsed
	}

	invoice, err := h.invoiceService.UpdateInvoice(c.Request.Context(), &service.UpdateInvoiceInput{
		OwnerID:       *userID,
		ID:            id,
		ClientID:      req.ClientID,
		Title:         req.Title,
		IssueDate:     issueDate,
		DiscountType:  req.DiscountType,
		DiscountValue: req.DiscountValue,
		Items:         toItemInputs(req.Items),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice updated successfully", invoice)
}

// Delete handles deleting an invoice
func (h *InvoiceHandler) Delete(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	if err := h.invoiceService.DeleteInvoice(c.Request.Context(), *userID, id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// SetPaid handles marking an invoice paid or unpaid
func (h *InvoiceHandler) SetPaid(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	var req struct {
		Paid bool `json:"paid"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.invoiceService.SetInvoicePaid(c.Request.Context(), *userID, id, req.Paid); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice payment status updated", gin.H{"paid": req.Paid})
}

// DownloadPDF renders the invoice document and serves it as a PDF attachment
func (h *InvoiceHandler) DownloadPDF(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	pdf, filename, err := h.invoiceService.RenderInvoicePDF(c.Request.Context(), *userID, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(200, "application/pdf", pdf)
}
