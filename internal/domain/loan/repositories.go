package loan

import (
	"context"

	"github.com/google/uuid"
	"github.com/nasiya/backend/internal/domain/shared"
)

// BorrowedProductRepository defines the persistence interface for
// borrowed products. Lookups are seller-scoped.
type BorrowedProductRepository interface {
	FindByID(ctx context.Context, sellerID, id uuid.UUID) (*BorrowedProduct, error)
	FindByDebtor(ctx context.Context, sellerID, debtorID uuid.UUID) ([]BorrowedProduct, error)
	FindActiveBySeller(ctx context.Context, sellerID uuid.UUID) ([]BorrowedProduct, error)
	Save(ctx context.Context, p *BorrowedProduct) error
	SaveWithLock(ctx context.Context, p *BorrowedProduct) error
	// Delete removes the product together with its payment records.
	Delete(ctx context.Context, sellerID, id uuid.UUID) error
}

// PaymentRecordRepository defines the persistence interface for payment
// records
type PaymentRecordRepository interface {
	FindByID(ctx context.Context, sellerID, id uuid.UUID) (*PaymentRecord, error)
	FindByProduct(ctx context.Context, sellerID, productID uuid.UUID) ([]PaymentRecord, error)
	FindByDebtor(ctx context.Context, sellerID, debtorID uuid.UUID) ([]PaymentRecord, error)
	FindBySeller(ctx context.Context, sellerID uuid.UUID, filter shared.Filter) ([]PaymentRecord, int64, error)
	Save(ctx context.Context, r *PaymentRecord) error
}
