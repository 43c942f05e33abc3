package debtor

import (
	"context"

	"github.com/google/uuid"
	"github.com/nasiya/backend/internal/domain/shared"
)

// DebtorRepository defines the persistence interface for debtors.
// All lookups are scoped to the owning seller; a debtor belonging to a
// different seller is reported as not found.
type DebtorRepository interface {
	FindByID(ctx context.Context, sellerID, id uuid.UUID) (*Debtor, error)
	FindAll(ctx context.Context, sellerID uuid.UUID, filter shared.Filter) ([]Debtor, int64, error)
	FindByIDs(ctx context.Context, sellerID uuid.UUID, ids []uuid.UUID) ([]Debtor, error)
	Save(ctx context.Context, d *Debtor) error
	SaveWithLock(ctx context.Context, d *Debtor) error
	// Delete removes the debtor together with its borrowed products,
	// payment records and message reports in one transaction.
	Delete(ctx context.Context, sellerID, id uuid.UUID) error
	Count(ctx context.Context, sellerID uuid.UUID) (int64, error)
}
