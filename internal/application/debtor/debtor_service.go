// Package debtor contains the application services for debtor management.
package debtor

import (
	"context"

	"github.com/google/uuid"
	"github.com/nasiya/backend/internal/domain/debtor"
	"github.com/nasiya/backend/internal/domain/loan"
	"github.com/nasiya/backend/internal/domain/shared"
	"github.com/nasiya/backend/internal/infrastructure/cache"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// DebtorService handles debtor CRUD for a seller
type DebtorService struct {
	debtorRepo  debtor.DebtorRepository
	productRepo loan.BorrowedProductRepository
	dashCache   cache.DashboardCache
	logger      *zap.Logger
}

// NewDebtorService creates a new debtor service
func NewDebtorService(
	debtorRepo debtor.DebtorRepository,
	productRepo loan.BorrowedProductRepository,
	dashCache cache.DashboardCache,
	logger *zap.Logger,
) *DebtorService {
	return &DebtorService{
		debtorRepo:  debtorRepo,
		productRepo: productRepo,
		dashCache:   dashCache,
		logger:      logger,
	}
}

// Create creates a new debtor for the seller
func (s *DebtorService) Create(ctx context.Context, sellerID uuid.UUID, input CreateDebtorInput) (*DebtorInfo, error) {
	d, err := debtor.NewDebtor(sellerID, input.Name, input.PhoneNumbers)
	if err != nil {
		return nil, err
	}

	if input.Address != "" {
		if err := d.SetAddress(input.Address); err != nil {
			return nil, err
		}
	}
	if input.Note != "" {
		if err := d.SetNote(input.Note); err != nil {
			return nil, err
		}
	}
	if len(input.Images) > 0 {
		if err := d.SetImages(input.Images); err != nil {
			return nil, err
		}
	}

	if err := s.debtorRepo.Save(ctx, d); err != nil {
		return nil, err
	}

	s.invalidateDashboard(ctx, sellerID)
	s.logger.Info("Debtor created",
		zap.String("seller_id", sellerID.String()),
		zap.String("debtor_id", d.ID.String()))

	info := NewDebtorInfo(d, decimal.Zero)
	return &info, nil
}

// Get returns a debtor with its outstanding debt total
func (s *DebtorService) Get(ctx context.Context, sellerID, debtorID uuid.UUID) (*DebtorInfo, error) {
	d, err := s.debtorRepo.FindByID(ctx, sellerID, debtorID)
	if err != nil {
		return nil, err
	}

	totalDebt, err := s.totalDebt(ctx, sellerID, debtorID)
	if err != nil {
		return nil, err
	}

	info := NewDebtorInfo(d, totalDebt)
	return &info, nil
}

// List returns the seller's debtors with their outstanding debt totals
func (s *DebtorService) List(ctx context.Context, sellerID uuid.UUID, filter shared.Filter) (*shared.Paginated[DebtorInfo], error) {
	debtors, total, err := s.debtorRepo.FindAll(ctx, sellerID, filter)
	if err != nil {
		return nil, err
	}

	items := make([]DebtorInfo, len(debtors))
	for i := range debtors {
		totalDebt, err := s.totalDebt(ctx, sellerID, debtors[i].ID)
		if err != nil {
			return nil, err
		}
		items[i] = NewDebtorInfo(&debtors[i], totalDebt)
	}

	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

// Update applies the provided debtor field updates
func (s *DebtorService) Update(ctx context.Context, sellerID, debtorID uuid.UUID, input UpdateDebtorInput) (*DebtorInfo, error) {
	d, err := s.debtorRepo.FindByID(ctx, sellerID, debtorID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if err := d.SetName(*input.Name); err != nil {
			return nil, err
		}
	}
	if input.Address != nil {
		if err := d.SetAddress(*input.Address); err != nil {
			return nil, err
		}
	}
	if input.Note != nil {
		if err := d.SetNote(*input.Note); err != nil {
			return nil, err
		}
	}
	if input.PhoneNumbers != nil {
		if err := d.SetPhoneNumbers(input.PhoneNumbers); err != nil {
			return nil, err
		}
	}
	if input.Images != nil {
		if err := d.SetImages(input.Images); err != nil {
			return nil, err
		}
	}

	d.IncrementVersion()
	if err := s.debtorRepo.SaveWithLock(ctx, d); err != nil {
		return nil, err
	}

	s.invalidateDashboard(ctx, sellerID)
	s.logger.Info("Debtor updated",
		zap.String("seller_id", sellerID.String()),
		zap.String("debtor_id", debtorID.String()))

	totalDebt, err := s.totalDebt(ctx, sellerID, debtorID)
	if err != nil {
		return nil, err
	}

	info := NewDebtorInfo(d, totalDebt)
	return &info, nil
}

// Delete removes the debtor and all records attached to it
func (s *DebtorService) Delete(ctx context.Context, sellerID, debtorID uuid.UUID) error {
	if err := s.debtorRepo.Delete(ctx, sellerID, debtorID); err != nil {
		return err
	}

	s.invalidateDashboard(ctx, sellerID)
	s.logger.Info("Debtor deleted",
		zap.String("seller_id", sellerID.String()),
		zap.String("debtor_id", debtorID.String()))
	return nil
}

// totalDebt sums the remaining amounts of the debtor's active products
func (s *DebtorService) totalDebt(ctx context.Context, sellerID, debtorID uuid.UUID) (decimal.Decimal, error) {
	products, err := s.productRepo.FindByDebtor(ctx, sellerID, debtorID)
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for i := range products {
		if products[i].IsActive() {
			total = total.Add(products[i].RemainingAmount())
		}
	}
	return total, nil
}

// invalidateDashboard drops the seller's cached dashboard aggregates.
// Cache failures are logged, never surfaced.
func (s *DebtorService) invalidateDashboard(ctx context.Context, sellerID uuid.UUID) {
	if s.dashCache == nil {
		return
	}
	if err := s.dashCache.InvalidateSeller(ctx, sellerID); err != nil {
		s.logger.Warn("Dashboard cache invalidation failed",
			zap.String("seller_id", sellerID.String()),
			zap.Error(err))
	}
}
