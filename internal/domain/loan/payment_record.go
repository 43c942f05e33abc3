package loan

import (
	"github.com/google/uuid"
	"github.com/nasiya/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PaymentRecord is a single repayment toward a borrowed product.
// Months optionally lists the installment indexes (1-based) the payment
// was meant to cover.
type PaymentRecord struct {
	shared.BaseEntity
	ProductID uuid.UUID
	DebtorID  uuid.UUID
	SellerID  uuid.UUID
	Amount    decimal.Decimal
	Months    []int
	Note      string
}

// NewPaymentRecord creates a payment record. Amount must be strictly
// positive.
func NewPaymentRecord(sellerID, debtorID, productID uuid.UUID, amount decimal.Decimal, months []int, note string) (*PaymentRecord, error) {
	if sellerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SELLER_ID", "Seller ID cannot be empty")
	}
	if debtorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_DEBTOR_ID", "Debtor ID cannot be empty")
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT_ID", "Product ID cannot be empty")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	for _, m := range months {
		if m < 1 {
			return nil, shared.NewDomainError("INVALID_MONTH_INDEX", "Installment indexes start at 1")
		}
	}

	return &PaymentRecord{
		BaseEntity: shared.NewBaseEntity(),
		ProductID:  productID,
		DebtorID:   debtorID,
		SellerID:   sellerID,
		Amount:     amount,
		Months:     months,
		Note:       note,
	}, nil
}
