package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nasiya/backend/internal/application/dashboard"
	"github.com/nasiya/backend/internal/application/identity"
	"github.com/nasiya/backend/internal/interfaces/http/dto"
	"github.com/shopspring/decimal"
)

// SellerHandler handles seller profile, wallet and dashboard HTTP requests
type SellerHandler struct {
	BaseHandler
	sellerService    *identity.SellerService
	dashboardService *dashboard.DashboardService
}

// NewSellerHandler creates a new seller handler
func NewSellerHandler(sellerService *identity.SellerService, dashboardService *dashboard.DashboardService) *SellerHandler {
	return &SellerHandler{
		sellerService:    sellerService,
		dashboardService: dashboardService,
	}
}

// UpdateProfileRequest represents the profile update request body
type UpdateProfileRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=1,max=255"`
	Phone    *string `json:"phone" binding:"omitempty,max=20"`
	ImageURL *string `json:"imageUrl" binding:"omitempty,max=2048"`
}

// ChangePasswordRequest represents the password change request body
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

// TopUpRequest represents the wallet top-up request body
type TopUpRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
	Note   string          `json:"note" binding:"omitempty,max=255"`
}

// GetProfile godoc
// @Summary      Get seller profile
// @Tags         seller
// @Produce      json
// @Success      200 {object} dto.Response{data=identity.SellerInfo}
// @Security     BearerAuth
// @Router       /seller/profile [get]
func (h *SellerHandler) GetProfile(c *gin.Context) {
	sellerID, err := getSellerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	info, err := h.sellerService.GetProfile(c.Request.Context(), sellerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, info)
}

// UpdateProfile godoc
// @Summary      Update seller profile
// @Tags         seller
// @Accept       json
// @Produce      json
// @Param        request body UpdateProfileRequest true "Profile fields to update"
// @Success      200 {object} dto.Response{data=identity.SellerInfo}
// @Security     BearerAuth
// @Router       /seller/profile [patch]
func (h *SellerHandler) UpdateProfile(c *gin.Context) {
	sellerID, err := getSellerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	info, err := h.sellerService.UpdateProfile(c.Request.Context(), sellerID, identity.UpdateProfileInput{
		Name:     req.Name,
		Phone:    req.Phone,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, info)
}

// ChangePassword godoc
// @Summary      Change seller password
// @Tags         seller
// @Accept       json
// @Produce      json
// @Param        request body ChangePasswordRequest true "Password change request"
// @Success      200 {object} dto.Response
// @Security     BearerAuth
// @Router       /seller/password [post]
func (h *SellerHandler) ChangePassword(c *gin.Context) {
	sellerID, err := getSellerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.sellerService.ChangePassword(c.Request.Context(), sellerID, identity.ChangePasswordInput{
		OldPassword: req.OldPassword,
		NewPassword: req.NewPassword,
	}); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"message": "Password changed successfully"})
}

// TopUpWallet godoc
// @Summary      Top up the seller's wallet
// @Tags         seller
// @Accept       json
// @Produce      json
// @Param        request body TopUpRequest true "Top-up amount"
// @Success      200 {object} dto.Response{data=identity.SellerInfo}
// @Security     BearerAuth
// @Router       /seller/wallet/payments [post]
func (h *SellerHandler) TopUpWallet(c *gin.Context) {
	sellerID, err := getSellerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req TopUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	info, err := h.sellerService.TopUpWallet(c.Request.Context(), sellerID, identity.TopUpInput{
		Amount: req.Amount,
		Note:   req.Note,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, info)
}

// WalletTransactions godoc
// @Summary      List wallet transactions
// @Tags         seller
// @Produce      json
// @Success      200 {object} dto.Response{data=[]identity.WalletTransactionInfo}
// @Security     BearerAuth
// @Router       /seller/wallet/transactions [get]
func (h *SellerHandler) WalletTransactions(c *gin.Context) {
	sellerID, err := getSellerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	filter := bindListFilter(c)
	result, err := h.sellerService.WalletTransactions(c.Request.Context(), sellerID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// MonthTotal godoc
// @Summary      Debtors and amounts expected this month
// @Tags         dashboard
// @Produce      json
// @Param        year  query int false "Year (defaults to current)"
// @Param        month query int false "Month 1-12 (defaults to current)"
// @Success      200 {object} dto.Response{data=dashboard.MonthTotalResult}
// @Security     BearerAuth
// @Router       /seller/month-total [get]
func (h *SellerHandler) MonthTotal(c *gin.Context) {
	sellerID, err := getSellerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	year, month, ok := bindYearMonth(c)
	if !ok {
		h.BadRequest(c, "Invalid year or month")
		return
	}

	result, err := h.dashboardService.MonthTotal(c.Request.Context(), sellerID, year, month)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// LateCustomers godoc
// @Summary      Debtors with overdue payments
// @Tags         dashboard
// @Produce      json
// @Success      200 {object} dto.Response{data=dashboard.LateCustomersResult}
// @Security     BearerAuth
// @Router       /seller/late-customers [get]
func (h *SellerHandler) LateCustomers(c *gin.Context) {
	sellerID, err := getSellerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	result, err := h.dashboardService.LateCustomers(c.Request.Context(), sellerID, time.Now())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// TotalDebt godoc
// @Summary      Total outstanding debt across all debtors
// @Tags         dashboard
// @Produce      json
// @Success      200 {object} dto.Response{data=dashboard.TotalOutstandingResult}
// @Security     BearerAuth
// @Router       /seller/total-debt [get]
func (h *SellerHandler) TotalDebt(c *gin.Context) {
	sellerID, err := getSellerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	result, err := h.dashboardService.TotalOutstanding(c.Request.Context(), sellerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// PaymentDays godoc
// @Summary      Calendar days with expected payments in a month
// @Tags         dashboard
// @Produce      json
// @Param        year  query int false "Year (defaults to current)"
// @Param        month query int false "Month 1-12 (defaults to current)"
// @Success      200 {object} dto.Response{data=dashboard.PaymentDaysResult}
// @Security     BearerAuth
// @Router       /seller/dates [get]
func (h *SellerHandler) PaymentDays(c *gin.Context) {
	sellerID, err := getSellerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	year, month, ok := bindYearMonth(c)
	if !ok {
		h.BadRequest(c, "Invalid year or month")
		return
	}

	result, err := h.dashboardService.PaymentDays(c.Request.Context(), sellerID, year, month)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// PaymentsForDay godoc
// @Summary      Payment obligations for a calendar day
// @Tags         dashboard
// @Produce      json
// @Param        day path string true "Day in YYYY-MM-DD format"
// @Success      200 {object} dto.Response{data=[]schedule.Obligation}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /seller/dates/{day} [get]
func (h *SellerHandler) PaymentsForDay(c *gin.Context) {
	sellerID, err := getSellerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	day, err := time.ParseInLocation("2006-01-02", c.Param("day"), time.UTC)
	if err != nil {
		h.Error(c, 400, dto.ErrCodeValidationFormat, "Day must be in YYYY-MM-DD format")
		return
	}

	obligations, err := h.dashboardService.PaymentsForDay(c.Request.Context(), sellerID, day)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, obligations)
}
