package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nasiya/backend/internal/application/debtor"
)

// DebtorHandler handles debtor HTTP requests
type DebtorHandler struct {
	BaseHandler
	debtorService *debtor.DebtorService
}

// NewDebtorHandler creates a new debtor handler
func NewDebtorHandler(debtorService *debtor.DebtorService) *DebtorHandler {
	return &DebtorHandler{
		debtorService: debtorService,
	}
}

// CreateDebtorRequest represents the debtor creation request body
type CreateDebtorRequest struct {
	Name         string   `json:"name" binding:"required,min=1,max=255"`
	Address      string   `json:"address" binding:"omitempty,max=500"`
	Note         string   `json:"note" binding:"omitempty,max=1000"`
	PhoneNumbers []string `json:"phoneNumbers" binding:"omitempty,dive,max=20"`
	Images       []string `json:"images" binding:"omitempty,max=10"`
}

// UpdateDebtorRequest represents the debtor update request body.
// Pointer fields distinguish "absent" from "set to empty".
type UpdateDebtorRequest struct {
	Name         *string  `json:"name" binding:"omitempty,min=1,max=255"`
	Address      *string  `json:"address" binding:"omitempty,max=500"`
	Note         *string  `json:"note" binding:"omitempty,max=1000"`
	PhoneNumbers []string `json:"phoneNumbers" binding:"omitempty,dive,max=20"`
	Images       []string `json:"images" binding:"omitempty,max=10"`
}

// Create godoc
// @Summary      Create a debtor
// @Tags         debtors
// @Accept       json
// @Produce      json
// @Param        request body CreateDebtorRequest true "Debtor to create"
// @Success      201 {object} dto.Response{data=debtor.DebtorInfo}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /debtors [post]
func (h *DebtorHandler) Create(c *gin.Context) {
	sellerID, err := getSellerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req CreateDebtorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	info, err := h.debtorService.Create(c.Request.Context(), sellerID, debtor.CreateDebtorInput{
		Name:         req.Name,
		Address:      req.Address,
		Note:         req.Note,
		PhoneNumbers: req.PhoneNumbers,
		Images:       req.Images,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, info)
}

// Get godoc
// @Summary      Get a debtor with aggregated debt
// @Tags         debtors
// @Produce      json
// @Param        id path string true "Debtor ID"
// @Success      200 {object} dto.Response{data=debtor.DebtorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /debtors/{id} [get]
func (h *DebtorHandler) Get(c *gin.Context) {
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

	info, err := h.debtorService.Get(c.Request.Context(), sellerID, debtorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, info)
}

// List godoc
// @Summary      List debtors
// @Tags         debtors
// @Produce      json
// @Param        page     query int    false "Page number"
// @Param        pageSize query int    false "Page size"
// @Param        search   query string false "Name search"
// @Success      200 {object} dto.Response{data=[]debtor.DebtorInfo}
// @Security     BearerAuth
// @Router       /debtors [get]
func (h *DebtorHandler) List(c *gin.Context) {
	sellerID, err := getSellerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	filter := bindListFilter(c)
	result, err := h.debtorService.List(c.Request.Context(), sellerID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Update godoc
// @Summary      Update a debtor
// @Tags         debtors
// @Accept       json
// @Produce      json
// @Param        id path string true "Debtor ID"
// @Param        request body UpdateDebtorRequest true "Fields to update"
// @Success      200 {object} dto.Response{data=debtor.DebtorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /debtors/{id} [patch]
func (h *DebtorHandler) Update(c *gin.Context) {
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

	var req UpdateDebtorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	info, err := h.debtorService.Update(c.Request.Context(), sellerID, debtorID, debtor.UpdateDebtorInput{
		Name:         req.Name,
		Address:      req.Address,
		Note:         req.Note,
		PhoneNumbers: req.PhoneNumbers,
		Images:       req.Images,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, info)
}

// Delete godoc
// @Summary      Delete a debtor and all related records
// @Tags         debtors
// @Produce      json
// @Param        id path string true "Debtor ID"
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /debtors/{id} [delete]
func (h *DebtorHandler) Delete(c *gin.Context) {
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

	if err := h.debtorService.Delete(c.Request.Context(), sellerID, debtorID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
