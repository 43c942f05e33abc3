package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/nasiya/backend/internal/domain/shared"
)

// SellerRepository defines the persistence interface for sellers
type SellerRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Seller, error)
	FindByLogin(ctx context.Context, login string) (*Seller, error)
	ExistsByLogin(ctx context.Context, login string) (bool, error)
	Save(ctx context.Context, seller *Seller) error
	SaveWithLock(ctx context.Context, seller *Seller) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// WalletTransactionRepository defines the persistence interface for
// wallet transactions
type WalletTransactionRepository interface {
	FindBySeller(ctx context.Context, sellerID uuid.UUID, filter shared.Filter) ([]WalletTransaction, int64, error)
	Save(ctx context.Context, tx *WalletTransaction) error
}
