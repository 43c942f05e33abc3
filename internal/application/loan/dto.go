package loan

import (
	"time"

	"github.com/google/uuid"
	"github.com/nasiya/backend/internal/domain/loan"
	"github.com/shopspring/decimal"
)

// CreateProductInput carries a borrowed product creation request.
// MonthPayment may be zero, in which case it is derived from the total
// amount and term.
type CreateProductInput struct {
	DebtorID     uuid.UUID
	ProductName  string
	Note         string
	TotalAmount  decimal.Decimal
	TermMonths   int
	MonthPayment decimal.Decimal
	StartDate    *time.Time
	Images       []string
}

// UpdateProductInput carries optional borrowed product field updates
type UpdateProductInput struct {
	ProductName  *string
	Note         *string
	TotalAmount  *decimal.Decimal
	TermMonths   *int
	MonthPayment *decimal.Decimal
	Images       []string
}

// RecordPaymentInput carries a repayment request
type RecordPaymentInput struct {
	Amount decimal.Decimal
	Months []int
	Note   string
}

// ProductInfo is the borrowed product shape returned to clients
type ProductInfo struct {
	ID              uuid.UUID       `json:"id"`
	DebtorID        uuid.UUID       `json:"debtorId"`
	ProductName     string          `json:"productName"`
	Note            string          `json:"note,omitempty"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	TermMonths      int             `json:"termMonths"`
	MonthPayment    decimal.Decimal `json:"monthPayment"`
	PaidAmount      decimal.Decimal `json:"paidAmount"`
	RemainingAmount decimal.Decimal `json:"remainingAmount"`
	StartDate       time.Time       `json:"startDate"`
	NextDueDate     *time.Time      `json:"nextDueDate,omitempty"`
	Images          []string        `json:"images"`
	Status          string          `json:"status"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// NewProductInfo maps a domain borrowed product to its client shape
func NewProductInfo(p *loan.BorrowedProduct) ProductInfo {
	images := p.Images
	if images == nil {
		images = make([]string, 0)
	}
	return ProductInfo{
		ID:              p.ID,
		DebtorID:        p.DebtorID,
		ProductName:     p.ProductName,
		Note:            p.Note,
		TotalAmount:     p.TotalAmount,
		TermMonths:      p.TermMonths,
		MonthPayment:    p.MonthPayment,
		PaidAmount:      p.PaidAmount,
		RemainingAmount: p.RemainingAmount(),
		StartDate:       p.StartDate,
		NextDueDate:     p.NextDueDate(),
		Images:          images,
		Status:          string(p.Status),
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

// PaymentInfo is the payment record shape returned to clients
type PaymentInfo struct {
	ID        uuid.UUID       `json:"id"`
	ProductID uuid.UUID       `json:"productId"`
	DebtorID  uuid.UUID       `json:"debtorId"`
	Amount    decimal.Decimal `json:"amount"`
	Months    []int           `json:"months"`
	Note      string          `json:"note,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

// NewPaymentInfo maps a domain payment record to its client shape
func NewPaymentInfo(r *loan.PaymentRecord) PaymentInfo {
	months := r.Months
	if months == nil {
		months = make([]int, 0)
	}
	return PaymentInfo{
		ID:        r.ID,
		ProductID: r.ProductID,
		DebtorID:  r.DebtorID,
		Amount:    r.Amount,
		Months:    months,
		Note:      r.Note,
		CreatedAt: r.CreatedAt,
	}
}
