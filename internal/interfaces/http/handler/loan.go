package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nasiya/backend/internal/application/loan"
	"github.com/shopspring/decimal"
)

// LoanHandler handles borrowed product and payment HTTP requests
type LoanHandler struct {
	BaseHandler
	loanService *loan.LoanService
}

// NewLoanHandler creates a new loan handler
func NewLoanHandler(loanService *loan.LoanService) *LoanHandler {
	return &LoanHandler{
		loanService: loanService,
	}
}

// CreateProductRequest represents the borrowed product creation request body
type CreateProductRequest struct {
	DebtorID     uuid.UUID       `json:"debtorId" binding:"required"`
	ProductName  string          `json:"productName" binding:"required,min=1,max=255"`
	Note         string          `json:"note" binding:"omitempty,max=1000"`
	TotalAmount  decimal.Decimal `json:"totalAmount" binding:"required"`
	TermMonths   int             `json:"termMonths" binding:"required,min=1,max=120"`
	MonthPayment decimal.Decimal `json:"monthPayment"`
	StartDate    *time.Time      `json:"startDate"`
	Images       []string        `json:"images" binding:"omitempty,max=10"`
}

// UpdateProductRequest represents the borrowed product update request body
type UpdateProductRequest struct {
	ProductName  *string          `json:"productName" binding:"omitempty,min=1,max=255"`
	Note         *string          `json:"note" binding:"omitempty,max=1000"`
	TotalAmount  *decimal.Decimal `json:"totalAmount"`
	TermMonths   *int             `json:"termMonths" binding:"omitempty,min=1,max=120"`
	MonthPayment *decimal.Decimal `json:"monthPayment"`
	Images       []string         `json:"images" binding:"omitempty,max=10"`
}

// RecordPaymentRequest represents the payment request body
type RecordPaymentRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
	Months []int           `json:"months" binding:"omitempty,dive,min=1"`
	Note   string          `json:"note" binding:"omitempty,max=500"`
}

// CreateProduct godoc
// @Summary      Create a borrowed product
// @Tags         borrowed-products
// @Accept       json
// @Produce      json
// @Param        request body CreateProductRequest true "Product to create"
// @Success      201 {object} dto.Response{data=loan.ProductInfo}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /borrowed-products [post]
func (h *LoanHandler) CreateProduct(c *gin.Context) {
	sellerID, err := getSellerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	info, err := h.loanService.CreateProduct(c.Request.Context(), sellerID, loan.CreateProductInput{
		DebtorID:     req.DebtorID,
		ProductName:  req.ProductName,
		Note:         req.Note,
		TotalAmount:  req.TotalAmount,
		TermMonths:   req.TermMonths,
		MonthPayment: req.MonthPayment,
		StartDate:    req.StartDate,
		Images:       req.Images,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, info)
}

// GetProduct godoc
// @Summary      Get a borrowed product
// @Tags         borrowed-products
// @Produce      json
// @Param        id path string true "Product ID"
// @Success      200 {object} dto.Response{data=loan.ProductInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /borrowed-products/{id} [get]
func (h *LoanHandler) GetProduct(c *gin.Context) {
	sellerID, err := getSellerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	info, err := h.loanService.GetProduct(c.Request.Context(), sellerID, productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, info)
}

// UpdateProduct godoc
// @Summary      Update a borrowed product
// @Tags         borrowed-products
// @Accept       json
// @Produce      json
// @Param        id path string true "Product ID"
// @Param        request body UpdateProductRequest true "Fields to update"
// @Success      200 {object} dto.Response{data=loan.ProductInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /borrowed-products/{id} [patch]
func (h *LoanHandler) UpdateProduct(c *gin.Context) {
	sellerID, err := getSellerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	info, err := h.loanService.UpdateProduct(c.Request.Context(), sellerID, productID, loan.UpdateProductInput{
		ProductName:  req.ProductName,
		Note:         req.Note,
		TotalAmount:  req.TotalAmount,
		TermMonths:   req.TermMonths,
		MonthPayment: req.MonthPayment,
		Images:       req.Images,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, info)
}

// DeleteProduct godoc
// @Summary      Delete a borrowed product and its payments
// @Tags         borrowed-products
// @Produce      json
// @Param        id path string true "Product ID"
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /borrowed-products/{id} [delete]
func (h *LoanHandler) DeleteProduct(c *gin.Context) {
	sellerID, err := getSellerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	if err := h.loanService.DeleteProduct(c.Request.Context(), sellerID, productID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// RecordPayment godoc
// @Summary      Record a payment against a borrowed product
// @Tags         borrowed-products
// @Accept       json
// @Produce      json
// @Param        id path string true "Product ID"
// @Param        request body RecordPaymentRequest true "Payment to record"
// @Success      201 {object} dto.Response{data=loan.PaymentInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /borrowed-products/{id}/payments [post]
func (h *LoanHandler) RecordPayment(c *gin.Context) {
	sellerID, err := getSellerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var req RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	info, err := h.loanService.RecordPayment(c.Request.Context(), sellerID, productID, loan.RecordPaymentInput{
		Amount: req.Amount,
		Months: req.Months,
		Note:   req.Note,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, info)
}

// ProductPayments godoc
// @Summary      List payments recorded against a borrowed product
// @Tags         borrowed-products
// @Produce      json
// @Param        id path string true "Product ID"
// @Success      200 {object} dto.Response{data=[]loan.PaymentInfo}
// @Security     BearerAuth
// @Router       /borrowed-products/{id}/payments [get]
func (h *LoanHandler) ProductPayments(c *gin.Context) {
	sellerID, err := getSellerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	payments, err := h.loanService.PaymentsByProduct(c.Request.Context(), sellerID, productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, payments)
}

// PaymentHistory godoc
// @Summary      List payment history
// @Description  Lists payments across the seller's portfolio, optionally
// @Description  narrowed to one debtor or one product.
// @Tags         payments
// @Produce      json
// @Param        debtorId  query string false "Filter by debtor"
// @Param        productId query string false "Filter by product"
// @Success      200 {object} dto.Response{data=[]loan.PaymentInfo}
// @Security     BearerAuth
// @Router       /payment-history [get]
func (h *LoanHandler) PaymentHistory(c *gin.Context) {
	sellerID, err := getSellerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	ctx := c.Request.Context()

	if raw := c.Query("productId"); raw != "" {
		productID, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid product ID")
			return
		}
		payments, err := h.loanService.PaymentsByProduct(ctx, sellerID, productID)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, payments)
		return
	}

	if raw := c.Query("debtorId"); raw != "" {
		debtorID, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid debtor ID")
			return
		}
		payments, err := h.loanService.PaymentsByDebtor(ctx, sellerID, debtorID)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, payments)
		return
	}

	filter := bindListFilter(c)
	result, err := h.loanService.PaymentsBySeller(ctx, sellerID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// DebtorProducts godoc
// @Summary      List a debtor's borrowed products
// @Tags         debtors
// @Produce      json
// @Param        id path string true "Debtor ID"
// @Success      200 {object} dto.Response{data=[]loan.ProductInfo}
// @Security     BearerAuth
// @Router       /debtors/{id}/borrowed-products [get]
func (h *LoanHandler) DebtorProducts(c *gin.Context) {
	sellerID, err := getSellerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	debtorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid debtor ID")
		return
	}

	products, err := h.loanService.ListByDebtor(c.Request.Context(), sellerID, debtorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, products)
}
