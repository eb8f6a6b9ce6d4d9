package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/webdev26/facture-api/internal/application/service"
	"github.com/webdev26/facture-api/internal/presentation/http/dto/response"
	"github.com/webdev26/facture-api/pkg/pagination"
)

// BusinessHandler handles business-related HTTP requests
type BusinessHandler struct {
	businessService *service.BusinessService
}

// NewBusinessHandler creates a new business handler
func NewBusinessHandler(businessService *service.BusinessService) *BusinessHandler {
	return &BusinessHandler{businessService: businessService}
}

// List handles listing the owner's businesses
func (h *BusinessHandler) List(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	search := c.Query("search")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &pagination.PaginationParams{
		Page:    page,
		PerPage: perPage,
	}

	result, err := h.businessService.ListBusinesses(c.Request.Context(), *userID, params, search)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Businesses retrieved successfully", result)
}

// Create handles creating a business
func (h *BusinessHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req struct {
		Name    string  `json:"name" binding:"required"`
		Email   *string `json:"email"`
		Phone   *string `json:"phone"`
		ICE     *string `json:"ice"`
		Address *string `json:"address"`
		City    *string `json:"city"`
		LogoURL *string `json:"logo_url"`

		BankAccountLabel *string `json:"bank_account_label"`
		BankCurrency     *string `json:"bank_currency"`
		RIB              *string `json:"rib"`
		IBAN             *string `json:"iban"`
		BIC              *string `json:"bic"`

		Capital         *string `json:"capital"`
		TradeRegister   *string `json:"trade_register"`
		ProfessionalTax *string `json:"professional_tax"`
		FiscalID        *string `json:"fiscal_id"`

		SequenceStart *int `json:"sequence_start"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	business, err := h.businessService.CreateBusiness(c.Request.Context(), &service.CreateBusinessInput{
		OwnerID:          *userID,
		Name:             req.Name,
		Email:            req.Email,
		Phone:            req.Phone,
		ICE:              req.ICE,
		Address:          req.Address,
		City:             req.City,
		LogoURL:          req.LogoURL,
		BankAccountLabel: req.BankAccountLabel,
		BankCurrency:     req.BankCurrency,
		RIB:              req.RIB,
		IBAN:             req.IBAN,
		BIC:              req.BIC,
		Capital:          req.Capital,
		TradeRegister:    req.TradeRegister,
		ProfessionalTax:  req.ProfessionalTax,
		FiscalID:         req.FiscalID,
		SequenceStart:    req.SequenceStart,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Business created successfully", business)
}

// Get handles getting a single business
func (h *BusinessHandler) Get(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid business ID")
		return
	}

	business, err := h.businessService.GetBusiness(c.Request.Context(), *userID, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Business retrieved successfully", business)
}

// Update handles updating a business
func (h *BusinessHandler) Update(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid business ID")
		return
	}

	var req struct {
		Name    *string `json:"name"`
		Email   *string `json:"email"`
		Phone   *string `json:"phone"`
		ICE     *string `json:"ice"`
		Address *string `json:"address"`
		City    *string `json:"city"`
		LogoURL *string `json:"logo_url"`

		BankAccountLabel *string `json:"bank_account_label"`
		BankCurrency     *string `json:"bank_currency"`
		RIB              *string `json:"rib"`
		IBAN             *string `json:"iban"`
		BIC              *string `json:"bic"`

		Capital         *string `json:"capital"`
		TradeRegister   *string `json:"trade_register"`
		ProfessionalTax *string `json:"professional_tax"`
		FiscalID        *string `json:"fiscal_id"`

		SequenceStart *int `json:"sequence_start"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	business, err := h.businessService.UpdateBusiness(c.Request.Context(), &service.UpdateBusinessInput{
		OwnerID:          *userID,
		ID:               id,
		Name:             req.Name,
		Email:            req.Email,
		Phone:            req.Phone,
		ICE:              req.ICE,
		Address:          req.Address,
		City:             req.City,
		LogoURL:          req.LogoURL,
		BankAccountLabel: req.BankAccountLabel,
		BankCurrency:     req.BankCurrency,
		RIB:              req.RIB,
		IBAN:             req.IBAN,
		BIC:              req.BIC,
		Capital:          req.Capital,
		TradeRegister:    req.TradeRegister,
		ProfessionalTax:  req.ProfessionalTax,
		FiscalID:         req.FiscalID,
		SequenceStart:    req.SequenceStart,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Business updated successfully", business)
}

// Delete handles deleting a business
func (h *BusinessHandler) Delete(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid business ID")
		return
	}

	if err := h.businessService.DeleteBusiness(c.Request.Context(), *userID, id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
