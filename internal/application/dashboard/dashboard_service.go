// Package dashboard contains the seller-scoped aggregate read models
// and calendar lookups backing the home screen.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/nasiya/backend/internal/domain/debtor"
	"github.com/nasiya/backend/internal/domain/loan"
	"github.com/nasiya/backend/internal/domain/schedule"
	"github.com/nasiya/backend/internal/infrastructure/cache"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// DashboardService computes the dashboard aggregates and calendar
// obligations. Results are cached per seller for a short TTL; cache
// failures fall through to the database.
type DashboardService struct {
	productRepo loan.BorrowedProductRepository
	debtorRepo  debtor.DebtorRepository
	dashCache   cache.DashboardCache
	logger      *zap.Logger
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	productRepo loan.BorrowedProductRepository,
	debtorRepo debtor.DebtorRepository,
	dashCache cache.DashboardCache,
	logger *zap.Logger,
) *DashboardService {
	return &DashboardService{
		productRepo: productRepo,
		debtorRepo:  debtorRepo,
		dashCache:   dashCache,
		logger:      logger,
	}
}

// MonthTotal summarizes the seller's obligations for the given month:
// the debtors due that month, their summed amounts, and the per-debtor
// payment day list.
func (s *DashboardService) MonthTotal(ctx context.Context, sellerID uuid.UUID, year int, month time.Month) (*MonthTotalResult, error) {
	key := fmt.Sprintf("month-total:%d-%02d", year, int(month))
	var cached MonthTotalResult
	if s.cacheGet(ctx, sellerID, key, &cached) {
		return &cached, nil
	}

	products, debtors, err := s.loadPortfolio(ctx, sellerID)
	if err != nil {
		return nil, err
	}

	amounts := make(map[uuid.UUID]decimal.Decimal)
	total := decimal.Zero
	for i := range products {
		p := &products[i]
		if !p.IsActive() {
			continue
		}
		info, ok := debtors[p.DebtorID]
		if !ok {
			continue
		}
		for _, due := range p.DueDates() {
			y, m, _ := due.UTC().Date()
			if y != year || m != month {
				continue
			}
			amount := p.MonthPayment
			if amount.LessThanOrEqual(decimal.Zero) {
				amount = info.TotalDebt
			}
			amounts[p.DebtorID] = amounts[p.DebtorID].Add(amount)
			total = total.Add(amount)
		}
	}

	monthDebtors := make([]MonthDebtor, 0, len(amounts))
	for id, amount := range amounts {
		monthDebtors = append(monthDebtors, MonthDebtor{
			DebtorID:   id,
			DebtorName: debtors[id].Name,
			Amount:     amount,
		})
	}
	sort.Slice(monthDebtors, func(i, j int) bool {
		if monthDebtors[i].DebtorName != monthDebtors[j].DebtorName {
			return monthDebtors[i].DebtorName < monthDebtors[j].DebtorName
		}
		return monthDebtors[i].DebtorID.String() < monthDebtors[j].DebtorID.String()
	})

	result := MonthTotalResult{
		ThisMonthDebtorsCount: len(monthDebtors),
		ThisMonthTotalAmount:  total,
		Debtors:               monthDebtors,
		PaymentDays:           schedule.PaymentDaysInMonth(products, year, month),
	}

	s.cacheSet(ctx, sellerID, key, result)
	return &result, nil
}

// LateCustomers lists debtors owning an active product with a due date
// strictly before asOf (UTC day comparison) and a positive remaining
// amount.
func (s *DashboardService) LateCustomers(ctx context.Context, sellerID uuid.UUID, asOf time.Time) (*LateCustomersResult, error) {
	key := fmt.Sprintf("late-customers:%s", asOf.UTC().Format("2006-01-02"))
	var cached LateCustomersResult
	if s.cacheGet(ctx, sellerID, key, &cached) {
		return &cached, nil
	}

	products, debtors, err := s.loadPortfolio(ctx, sellerID)
	if err != nil {
		return nil, err
	}

	amounts := make(map[uuid.UUID]decimal.Decimal)
	for i := range products {
		p := &products[i]
		if !p.IsActive() || !p.RemainingAmount().IsPositive() {
			continue
		}
		if _, ok := debtors[p.DebtorID]; !ok {
			continue
		}
		for _, due := range p.DueDates() {
			if beforeUTCDay(due, asOf) {
				amounts[p.DebtorID] = amounts[p.DebtorID].Add(p.RemainingAmount())
				break
			}
		}
	}

	late := make([]LateDebtor, 0, len(amounts))
	for id, amount := range amounts {
		late = append(late, LateDebtor{
			DebtorID:   id,
			DebtorName: debtors[id].Name,
			Amount:     amount,
		})
	}
	sort.Slice(late, func(i, j int) bool {
		if late[i].DebtorName != late[j].DebtorName {
			return late[i].DebtorName < late[j].DebtorName
		}
		return late[i].DebtorID.String() < late[j].DebtorID.String()
	})

	result := LateCustomersResult{
		LateDebtorsCount: len(late),
		LateDebtors:      late,
	}

	s.cacheSet(ctx, sellerID, key, result)
	return &result, nil
}

// TotalOutstanding sums the remaining amounts of all active products
func (s *DashboardService) TotalOutstanding(ctx context.Context, sellerID uuid.UUID) (*TotalOutstandingResult, error) {
	const key = "total-outstanding"
	var cached TotalOutstandingResult
	if s.cacheGet(ctx, sellerID, key, &cached) {
		return &cached, nil
	}

	products, err := s.productRepo.FindActiveBySeller(ctx, sellerID)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	for i := range products {
		total = total.Add(products[i].RemainingAmount())
	}

	result := TotalOutstandingResult{TotalAmount: total}
	s.cacheSet(ctx, sellerID, key, result)
	return &result, nil
}

// PaymentDays returns the days of the month with at least one
// obligation
func (s *DashboardService) PaymentDays(ctx context.Context, sellerID uuid.UUID, year int, month time.Month) (*PaymentDaysResult, error) {
	key := fmt.Sprintf("payment-days:%d-%02d", year, int(month))
	var cached PaymentDaysResult
	if s.cacheGet(ctx, sellerID, key, &cached) {
		return &cached, nil
	}

	products, err := s.productRepo.FindActiveBySeller(ctx, sellerID)
	if err != nil {
		return nil, err
	}

	result := PaymentDaysResult{Days: schedule.DaysWithObligations(products, year, month)}
	s.cacheSet(ctx, sellerID, key, result)
	return &result, nil
}

// PaymentsForDay returns the obligations falling on the given calendar
// day, ordered by debtor name then ID.
func (s *DashboardService) PaymentsForDay(ctx context.Context, sellerID uuid.UUID, day time.Time) ([]schedule.Obligation, error) {
	products, debtors, err := s.loadPortfolio(ctx, sellerID)
	if err != nil {
		return nil, err
	}

	return schedule.MatchDay(products, debtors, day), nil
}

// loadPortfolio loads the seller's active products and a debtor lookup
// with per-debtor outstanding totals.
func (s *DashboardService) loadPortfolio(ctx context.Context, sellerID uuid.UUID) ([]loan.BorrowedProduct, map[uuid.UUID]schedule.DebtorInfo, error) {
	products, err := s.productRepo.FindActiveBySeller(ctx, sellerID)
	if err != nil {
		return nil, nil, err
	}

	idSet := make(map[uuid.UUID]bool)
	totals := make(map[uuid.UUID]decimal.Decimal)
	for i := range products {
		idSet[products[i].DebtorID] = true
		totals[products[i].DebtorID] = totals[products[i].DebtorID].Add(products[i].RemainingAmount())
	}

	ids := make([]uuid.UUID, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	debtors, err := s.debtorRepo.FindByIDs(ctx, sellerID, ids)
	if err != nil {
		return nil, nil, err
	}

	infos := make(map[uuid.UUID]schedule.DebtorInfo, len(debtors))
	for i := range debtors {
		infos[debtors[i].ID] = schedule.DebtorInfo{
			ID:        debtors[i].ID,
			Name:      debtors[i].Name,
			TotalDebt: totals[debtors[i].ID],
		}
	}

	return products, infos, nil
}

// beforeUTCDay reports whether a falls on an earlier UTC calendar day
// than b
func beforeUTCDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	if ay != by {
		return ay < by
	}
	if am != bm {
		return am < bm
	}
	return ad < bd
}

// cacheGet returns true on a cache hit. Misses and failures both report
// false; failures other than a miss are logged.
func (s *DashboardService) cacheGet(ctx context.Context, sellerID uuid.UUID, key string, dest interface{}) bool {
	if s.dashCache == nil {
		return false
	}
	err := s.dashCache.Get(ctx, sellerID, key, dest)
	if err == nil {
		return true
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn("Dashboard cache read failed",
			zap.String("seller_id", sellerID.String()),
			zap.String("key", key),
			zap.Error(err))
	}
	return false
}

func (s *DashboardService) cacheSet(ctx context.Context, sellerID uuid.UUID, key string, value interface{}) {
	if s.dashCache == nil {
		return
	}
	if err := s.dashCache.Set(ctx, sellerID, key, value); err != nil {
		s.logger.Warn("Dashboard cache write failed",
			zap.String("seller_id", sellerID.String()),
			zap.String("key", key),
			zap.Error(err))
	}
}
