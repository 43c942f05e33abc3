package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nasiya/backend/internal/application/messaging"
	"github.com/shopspring/decimal"
)

// MessagingHandler handles message report and sample HTTP requests
type MessagingHandler struct {
	BaseHandler
	messagingService *messaging.MessagingService
}

// NewMessagingHandler creates a new messaging handler
func NewMessagingHandler(messagingService *messaging.MessagingService) *MessagingHandler {
	return &MessagingHandler{
		messagingService: messagingService,
	}
}

// SendMessageRequest represents the reminder message request body.
// Either message or sampleId must be set.
type SendMessageRequest struct {
	DebtorID  uuid.UUID       `json:"debtorId" binding:"required"`
	Message   string          `json:"message" binding:"omitempty,max=1000"`
	SampleID  *uuid.UUID      `json:"sampleId"`
	DueAmount decimal.Decimal `json:"dueAmount"`
	DueDate   *time.Time      `json:"dueDate"`
}

// SampleRequest represents a message sample create/update request body
type SampleRequest struct {
	Text string `json:"text" binding:"required,min=1,max=1000"`
}

// Send godoc
// @Summary      Send a reminder message to a debtor
// @Description  Renders the sample (if given), charges the wallet per
// @Description  message and stores the report. A failed charge leaves
// @Description  the report unsent.
// @Tags         message-reports
// @Accept       json
// @Produce      json
// @Param        request body SendMessageRequest true "Message to send"
// @Success      201 {object} dto.Response{data=messaging.ReportInfo}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /message-reports [post]
func (h *MessagingHandler) Send(c *gin.Context) {
	sellerID, err := getSellerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	info, err := h.messagingService.Send(c.Request.Context(), sellerID, messaging.SendMessageInput{
		DebtorID:  req.DebtorID,
		Message:   req.Message,
		SampleID:  req.SampleID,
		DueAmount: req.DueAmount,
		DueDate:   req.DueDate,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, info)
}

// ListReports godoc
// @Summary      List message reports
// @Description  Lists all reports for the seller, or one debtor's chat
// @Description  history when debtorId is given.
// @Tags         message-reports
// @Produce      json
// @Param        debtorId query string false "Filter by debtor"
// @Success      200 {object} dto.Response{data=[]messaging.ReportInfo}
// @Security     BearerAuth
// @Router       /message-reports [get]
func (h *MessagingHandler) ListReports(c *gin.Context) {
	sellerID, err := getSellerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	if raw := c.Query("debtorId"); raw != "" {
		debtorID, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid debtor ID")
			return
		}
		reports, err := h.messagingService.ListByDebtor(c.Request.Context(), sellerID, debtorID)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, reports)
		return
	}

	filter := bindListFilter(c)
	result, err := h.messagingService.ListAll(c.Request.Context(), sellerID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// DeleteReport godoc
// @Summary      Delete a message report
// @Tags         message-reports
// @Produce      json
// @Param        id path string true "Report ID"
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /message-reports/{id} [delete]
func (h *MessagingHandler) DeleteReport(c *gin.Context) {
	sellerID, err := getSellerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	reportID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid report ID")
		return
	}

	if err := h.messagingService.DeleteReport(c.Request.Context(), sellerID, reportID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// CreateSample godoc
// @Summary      Create a message sample
// @Tags         message-samples
// @Accept       json
// @Produce      json
// @Param        request body SampleRequest true "Sample text with {name}/{amount}/{date} placeholders"
// @Success      201 {object} dto.Response{data=messaging.SampleInfo}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /message-samples [post]
func (h *MessagingHandler) CreateSample(c *gin.Context) {
	sellerID, err := getSellerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req SampleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	info, err := h.messagingService.CreateSample(c.Request.Context(), sellerID, messaging.CreateSampleInput{
		Text: req.Text,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, info)
}

// ListSamples godoc
// @Summary      List message samples
// @Tags         message-samples
// @Produce      json
// @Success      200 {object} dto.Response{data=[]messaging.SampleInfo}
// @Security     BearerAuth
// @Router       /message-samples [get]
func (h *MessagingHandler) ListSamples(c *gin.Context) {
	sellerID, err := getSellerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	samples, err := h.messagingService.ListSamples(c.Request.Context(), sellerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, samples)
}

// UpdateSample godoc
// @Summary      Update a message sample
// @Tags         message-samples
// @Accept       json
// @Produce      json
// @Param        id path string true "Sample ID"
// @Param        request body SampleRequest true "New sample text"
// @Success      200 {object} dto.Response{data=messaging.SampleInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /message-samples/{id} [patch]
func (h *MessagingHandler) UpdateSample(c *gin.Context) {
	sellerID, err := getSellerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	sampleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid sample ID")
		return
	}

	var req SampleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	info, err := h.messagingService.UpdateSample(c.Request.Context(), sellerID, sampleID, messaging.UpdateSampleInput{
		Text: req.Text,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, info)
}

// DeleteSample godoc
// @Summary      Delete a message sample
// @Tags         message-samples
// @Produce      json
// @Param        id path string true "Sample ID"
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /message-samples/{id} [delete]
func (h *MessagingHandler) DeleteSample(c *gin.Context) {
	sellerID, err := getSellerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	sampleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid sample ID")
		return
	}

	if err := h.messagingService.DeleteSample(c.Request.Context(), sellerID, sampleID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
