package messaging

import (
	"context"

	"github.com/google/uuid"
	"github.com/nasiya/backend/internal/domain/shared"
)

// MessageReportRepository defines the persistence interface for message
// reports
type MessageReportRepository interface {
	FindByID(ctx context.Context, sellerID, id uuid.UUID) (*MessageReport, error)
	// FindByDebtor returns the debtor's thread in chronological order.
	FindByDebtor(ctx context.Context, sellerID, debtorID uuid.UUID) ([]MessageReport, error)
	FindBySeller(ctx context.Context, sellerID uuid.UUID, filter shared.Filter) ([]MessageReport, int64, error)
	Save(ctx context.Context, r *MessageReport) error
	Delete(ctx context.Context, sellerID, id uuid.UUID) error
}

// MessageSampleRepository defines the persistence interface for message
// samples
type MessageSampleRepository interface {
	FindByID(ctx context.Context, sellerID, id uuid.UUID) (*MessageSample, error)
	FindBySeller(ctx context.Context, sellerID uuid.UUID) ([]MessageSample, error)
	Save(ctx context.Context, s *MessageSample) error
	Delete(ctx context.Context, sellerID, id uuid.UUID) error
}
