package identity

import (
	"github.com/google/uuid"
	"github.com/nasiya/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// WalletTransactionType distinguishes wallet credits from charges
type WalletTransactionType string

const (
	WalletTransactionTopUp  WalletTransactionType = "topup"
	WalletTransactionCharge WalletTransactionType = "charge"
)

// WalletTransaction records a single wallet balance movement
type WalletTransaction struct {
	shared.BaseEntity
	SellerID uuid.UUID
	Type     WalletTransactionType
	Amount   decimal.Decimal
	Note     string
}

// NewWalletTransaction creates a wallet transaction record
func NewWalletTransaction(sellerID uuid.UUID, txType WalletTransactionType, amount decimal.Decimal, note string) (*WalletTransaction, error) {
	if sellerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SELLER_ID", "Seller ID cannot be empty")
	}
	if txType != WalletTransactionTopUp && txType != WalletTransactionCharge {
		return nil, shared.NewDomainError("INVALID_TRANSACTION_TYPE", "Unknown wallet transaction type")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Transaction amount must be positive")
	}

	return &WalletTransaction{
		BaseEntity: shared.NewBaseEntity(),
		SellerID:   sellerID,
		Type:       txType,
		Amount:     amount,
		Note:       note,
	}, nil
}
