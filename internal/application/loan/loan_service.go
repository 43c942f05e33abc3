// Package loan contains the application services for borrowed products
// and repayments.
package loan

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/nasiya/backend/internal/domain/debtor"
	"github.com/nasiya/backend/internal/domain/loan"
	"github.com/nasiya/backend/internal/domain/shared"
	"github.com/nasiya/backend/internal/infrastructure/cache"
	"github.com/nasiya/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// LoanService handles borrowed product lifecycle and repayments
type LoanService struct {
	productRepo     loan.BorrowedProductRepository
	paymentRepo     loan.PaymentRecordRepository
	debtorRepo      debtor.DebtorRepository
	dashCache       cache.DashboardCache
	businessMetrics *telemetry.BusinessMetrics
	logger          *zap.Logger
}

// NewLoanService creates a new loan service
func NewLoanService(
	productRepo loan.BorrowedProductRepository,
	paymentRepo loan.PaymentRecordRepository,
	debtorRepo debtor.DebtorRepository,
	dashCache cache.DashboardCache,
	logger *zap.Logger,
) *LoanService {
	return &LoanService{
		productRepo: productRepo,
		paymentRepo: paymentRepo,
		debtorRepo:  debtorRepo,
		dashCache:   dashCache,
		logger:      logger,
	}
}

// SetBusinessMetrics sets the business metrics collector
func (s *LoanService) SetBusinessMetrics(bm *telemetry.BusinessMetrics) {
	s.businessMetrics = bm
}

// CreateProduct issues a new borrowed product to a debtor
func (s *LoanService) CreateProduct(ctx context.Context, sellerID uuid.UUID, input CreateProductInput) (*ProductInfo, error) {
	// The debtor must belong to the seller
	if _, err := s.debtorRepo.FindByID(ctx, sellerID, input.DebtorID); err != nil {
		return nil, err
	}

	var startDate time.Time
	if input.StartDate != nil {
		startDate = *input.StartDate
	}

	p, err := loan.NewBorrowedProduct(sellerID, input.DebtorID, input.ProductName,
		input.TotalAmount, input.TermMonths, input.MonthPayment, startDate)
	if err != nil {
		return nil, err
	}

	if input.Note != "" {
		if err := p.SetNote(input.Note); err != nil {
			return nil, err
		}
	}
	if len(input.Images) > 0 {
		if err := p.SetImages(input.Images); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(ctx, p); err != nil {
		return nil, err
	}

	s.invalidateDashboard(ctx, sellerID)
	if s.businessMetrics != nil {
		s.businessMetrics.RecordLoanCreated(ctx, sellerID, p.TotalAmount)
	}
	s.logger.Info("Borrowed product created",
		zap.String("seller_id", sellerID.String()),
		zap.String("debtor_id", input.DebtorID.String()),
		zap.String("product_id", p.ID.String()),
		zap.String("total_amount", p.TotalAmount.String()))

	info := NewProductInfo(p)
	return &info, nil
}

// GetProduct returns a single borrowed product
func (s *LoanService) GetProduct(ctx context.Context, sellerID, productID uuid.UUID) (*ProductInfo, error) {
	p, err := s.productRepo.FindByID(ctx, sellerID, productID)
	if err != nil {
		return nil, err
	}

	info := NewProductInfo(p)
	return &info, nil
}

// ListByDebtor returns all borrowed products of a debtor, newest first
func (s *LoanService) ListByDebtor(ctx context.Context, sellerID, debtorID uuid.UUID) ([]ProductInfo, error) {
	products, err := s.productRepo.FindByDebtor(ctx, sellerID, debtorID)
	if err != nil {
		return nil, err
	}

	items := make([]ProductInfo, len(products))
	for i := range products {
		items[i] = NewProductInfo(&products[i])
	}
	return items, nil
}

// UpdateProduct applies the provided product field updates. Changing any
// of the money terms reprices the credit.
func (s *LoanService) UpdateProduct(ctx context.Context, sellerID, productID uuid.UUID, input UpdateProductInput) (*ProductInfo, error) {
	p, err := s.productRepo.FindByID(ctx, sellerID, productID)
	if err != nil {
		return nil, err
	}

	if input.ProductName != nil {
		if err := p.SetProductName(*input.ProductName); err != nil {
			return nil, err
		}
	}
	if input.Note != nil {
		if err := p.SetNote(*input.Note); err != nil {
			return nil, err
		}
	}
	if input.Images != nil {
		if err := p.SetImages(input.Images); err != nil {
			return nil, err
		}
	}

	if input.TotalAmount != nil || input.TermMonths != nil || input.MonthPayment != nil {
		totalAmount := p.TotalAmount
		if input.TotalAmount != nil {
			totalAmount = *input.TotalAmount
		}
		termMonths := p.TermMonths
		if input.TermMonths != nil {
			termMonths = *input.TermMonths
		}
		if err := p.Reprice(totalAmount, termMonths, input.MonthPayment); err != nil {
			return nil, err
		}
	}

	p.IncrementVersion()
	if err := s.productRepo.SaveWithLock(ctx, p); err != nil {
		return nil, err
	}

	s.invalidateDashboard(ctx, sellerID)
	s.logger.Info("Borrowed product updated",
		zap.String("seller_id", sellerID.String()),
		zap.String("product_id", productID.String()))

	info := NewProductInfo(p)
	return &info, nil
}

// CancelProduct marks the product cancelled without deleting its history
func (s *LoanService) CancelProduct(ctx context.Context, sellerID, productID uuid.UUID) (*ProductInfo, error) {
	p, err := s.productRepo.FindByID(ctx, sellerID, productID)
	if err != nil {
		return nil, err
	}

	if err := p.Cancel(); err != nil {
		return nil, err
	}

	p.IncrementVersion()
	if err := s.productRepo.SaveWithLock(ctx, p); err != nil {
		return nil, err
	}

	s.invalidateDashboard(ctx, sellerID)
	s.logger.Info("Borrowed product cancelled",
		zap.String("seller_id", sellerID.String()),
		zap.String("product_id", productID.String()))

	info := NewProductInfo(p)
	return &info, nil
}

// DeleteProduct removes the product together with its payment records
func (s *LoanService) DeleteProduct(ctx context.Context, sellerID, productID uuid.UUID) error {
	if err := s.productRepo.Delete(ctx, sellerID, productID); err != nil {
		return err
	}

	s.invalidateDashboard(ctx, sellerID)
	s.logger.Info("Borrowed product deleted",
		zap.String("seller_id", sellerID.String()),
		zap.String("product_id", productID.String()))
	return nil
}

// RecordPayment applies a repayment to a product and stores the payment
// record. The product and the record are written in sequence; a failed
// record write leaves the applied payment visible, which the caller can
// retry safely because records are append-only.
func (s *LoanService) RecordPayment(ctx context.Context, sellerID, productID uuid.UUID, input RecordPaymentInput) (*PaymentInfo, error) {
	p, err := s.productRepo.FindByID(ctx, sellerID, productID)
	if err != nil {
		return nil, err
	}

	if err := p.ApplyPayment(input.Amount); err != nil {
		return nil, err
	}

	p.IncrementVersion()
	if err := s.productRepo.SaveWithLock(ctx, p); err != nil {
		return nil, err
	}

	record, err := loan.NewPaymentRecord(sellerID, p.DebtorID, p.ID, input.Amount, input.Months, input.Note)
	if err != nil {
		return nil, err
	}
	if err := s.paymentRepo.Save(ctx, record); err != nil {
		return nil, err
	}

	s.invalidateDashboard(ctx, sellerID)
	if s.businessMetrics != nil {
		s.businessMetrics.RecordPayment(ctx, sellerID, input.Amount)
	}
	s.logger.Info("Payment recorded",
		zap.String("seller_id", sellerID.String()),
		zap.String("product_id", productID.String()),
		zap.String("amount", input.Amount.String()),
		zap.String("remaining", p.RemainingAmount().String()))

	info := NewPaymentInfo(record)
	return &info, nil
}

// PaymentsByProduct returns the payment history of a product, newest first
func (s *LoanService) PaymentsByProduct(ctx context.Context, sellerID, productID uuid.UUID) ([]PaymentInfo, error) {
	records, err := s.paymentRepo.FindByProduct(ctx, sellerID, productID)
	if err != nil {
		return nil, err
	}
	return toPaymentInfos(records), nil
}

// PaymentsByDebtor returns a debtor's payment history, newest first
func (s *LoanService) PaymentsByDebtor(ctx context.Context, sellerID, debtorID uuid.UUID) ([]PaymentInfo, error) {
	records, err := s.paymentRepo.FindByDebtor(ctx, sellerID, debtorID)
	if err != nil {
		return nil, err
	}
	return toPaymentInfos(records), nil
}

// PaymentsBySeller returns the seller's payment history page
func (s *LoanService) PaymentsBySeller(ctx context.Context, sellerID uuid.UUID, filter shared.Filter) (*shared.Paginated[PaymentInfo], error) {
	records, total, err := s.paymentRepo.FindBySeller(ctx, sellerID, filter)
	if err != nil {
		return nil, err
	}

	result := shared.NewPaginated(toPaymentInfos(records), total, filter.Page, filter.PageSize)
	return &result, nil
}

func toPaymentInfos(records []loan.PaymentRecord) []PaymentInfo {
	items := make([]PaymentInfo, len(records))
	for i := range records {
		items[i] = NewPaymentInfo(&records[i])
	}
	return items
}

// invalidateDashboard drops the seller's cached dashboard aggregates.
// Cache failures are logged, never surfaced.
func (s *LoanService) invalidateDashboard(ctx context.Context, sellerID uuid.UUID) {
	if s.dashCache == nil {
		return
	}
	if err := s.dashCache.InvalidateSeller(ctx, sellerID); err != nil {
		s.logger.Warn("Dashboard cache invalidation failed",
			zap.String("seller_id", sellerID.String()),
			zap.Error(err))
	}
}
