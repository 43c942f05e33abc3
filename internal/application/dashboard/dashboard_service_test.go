package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/nasiya/backend/internal/domain/debtor"
	"github.com/nasiya/backend/internal/domain/loan"
	"github.com/nasiya/backend/internal/domain/shared"
	"github.com/nasiya/backend/internal/infrastructure/cache"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockBorrowedProductRepository is a mock implementation of loan.BorrowedProductRepository
type MockBorrowedProductRepository struct {
	mock.Mock
}

func (m *MockBorrowedProductRepository) FindByID(ctx context.Context, sellerID, id uuid.UUID) (*loan.BorrowedProduct, error) {
	args := m.Called(ctx, sellerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*loan.BorrowedProduct), args.Error(1)
}

func (m *MockBorrowedProductRepository) FindByDebtor(ctx context.Context, sellerID, debtorID uuid.UUID) ([]loan.BorrowedProduct, error) {
	args := m.Called(ctx, sellerID, debtorID)
	return args.Get(0).([]loan.BorrowedProduct), args.Error(1)
}

func (m *MockBorrowedProductRepository) FindActiveBySeller(ctx context.Context, sellerID uuid.UUID) ([]loan.BorrowedProduct, error) {
	args := m.Called(ctx, sellerID)
	return args.Get(0).([]loan.BorrowedProduct), args.Error(1)
}

func (m *MockBorrowedProductRepository) Save(ctx context.Context, p *loan.BorrowedProduct) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockBorrowedProductRepository) SaveWithLock(ctx context.Context, p *loan.BorrowedProduct) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockBorrowedProductRepository) Delete(ctx context.Context, sellerID, id uuid.UUID) error {
	args := m.Called(ctx, sellerID, id)
	return args.Error(0)
}

// MockDebtorRepository is a mock implementation of debtor.DebtorRepository
type MockDebtorRepository struct {
	mock.Mock
}

func (m *MockDebtorRepository) FindByID(ctx context.Context, sellerID, id uuid.UUID) (*debtor.Debtor, error) {
	args := m.Called(ctx, sellerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*debtor.Debtor), args.Error(1)
}

func (m *MockDebtorRepository) FindAll(ctx context.Context, sellerID uuid.UUID, filter shared.Filter) ([]debtor.Debtor, int64, error) {
	args := m.Called(ctx, sellerID, filter)
	return args.Get(0).([]debtor.Debtor), args.Get(1).(int64), args.Error(2)
}

func (m *MockDebtorRepository) FindByIDs(ctx context.Context, sellerID uuid.UUID, ids []uuid.UUID) ([]debtor.Debtor, error) {
	args := m.Called(ctx, sellerID, ids)
	return args.Get(0).([]debtor.Debtor), args.Error(1)
}

func (m *MockDebtorRepository) Save(ctx context.Context, d *debtor.Debtor) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDebtorRepository) SaveWithLock(ctx context.Context, d *debtor.Debtor) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDebtorRepository) Delete(ctx context.Context, sellerID, id uuid.UUID) error {
	args := m.Called(ctx, sellerID, id)
	return args.Error(0)
}

func (m *MockDebtorRepository) Count(ctx context.Context, sellerID uuid.UUID) (int64, error) {
	args := m.Called(ctx, sellerID)
	return args.Get(0).(int64), args.Error(1)
}

func newTestService(productRepo *MockBorrowedProductRepository, debtorRepo *MockDebtorRepository, c cache.DashboardCache) *DashboardService {
	return NewDashboardService(productRepo, debtorRepo, c, zap.NewNop())
}

func newProduct(t *testing.T, sellerID, debtorID uuid.UUID, total int64, months int, start time.Time) loan.BorrowedProduct {
	t.Helper()
	p, err := loan.NewBorrowedProduct(sellerID, debtorID, "Product",
		decimal.NewFromInt(total), months, decimal.Zero, start)
	require.NoError(t, err)
	return *p
}

func newDebtor(t *testing.T, sellerID uuid.UUID, name string) debtor.Debtor {
	t.Helper()
	d, err := debtor.NewDebtor(sellerID, name, []string{"+998901234567"})
	require.NoError(t, err)
	return *d
}

func TestDashboardService_MonthTotal(t *testing.T) {
	productRepo := new(MockBorrowedProductRepository)
	debtorRepo := new(MockDebtorRepository)
	service := newTestService(productRepo, debtorRepo, nil)

	sellerID := uuid.New()
	d1 := newDebtor(t, sellerID, "Anvar")
	d2 := newDebtor(t, sellerID, "Bek")

	// due on the 15th of every month starting February 2024
	p1 := newProduct(t, sellerID, d1.ID, 1200000, 12, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC))
	p2 := newProduct(t, sellerID, d2.ID, 600000, 6, time.Date(2024, 2, 20, 0, 0, 0, 0, time.UTC))

	productRepo.On("FindActiveBySeller", mock.Anything, sellerID).
		Return([]loan.BorrowedProduct{p1, p2}, nil)
	debtorRepo.On("FindByIDs", mock.Anything, sellerID, mock.Anything).
		Return([]debtor.Debtor{d1, d2}, nil)

	result, err := service.MonthTotal(context.Background(), sellerID, 2024, time.March)

	require.NoError(t, err)
	assert.Equal(t, 2, result.ThisMonthDebtorsCount)
	// 100000 + 100000 monthly installments
	assert.True(t, result.ThisMonthTotalAmount.Equal(decimal.NewFromInt(200000)),
		"got %s", result.ThisMonthTotalAmount)
	require.Len(t, result.Debtors, 2)
	assert.Equal(t, "Anvar", result.Debtors[0].DebtorName)
	assert.Equal(t, "Bek", result.Debtors[1].DebtorName)
	require.Len(t, result.PaymentDays, 2)
	assert.Equal(t, 15, result.PaymentDays[0].PaymentDay)
	assert.Equal(t, 20, result.PaymentDays[1].PaymentDay)
}

func TestDashboardService_MonthTotal_CachesResult(t *testing.T) {
	productRepo := new(MockBorrowedProductRepository)
	debtorRepo := new(MockDebtorRepository)
	service := newTestService(productRepo, debtorRepo, cache.NewInMemoryDashboardCache(time.Minute))

	sellerID := uuid.New()
	d := newDebtor(t, sellerID, "Anvar")
	p := newProduct(t, sellerID, d.ID, 1200000, 12, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC))

	productRepo.On("FindActiveBySeller", mock.Anything, sellerID).
		Return([]loan.BorrowedProduct{p}, nil).Once()
	debtorRepo.On("FindByIDs", mock.Anything, sellerID, mock.Anything).
		Return([]debtor.Debtor{d}, nil).Once()

	first, err := service.MonthTotal(context.Background(), sellerID, 2024, time.March)
	require.NoError(t, err)

	// second call must be served from the cache, the mocks allow one call only
	second, err := service.MonthTotal(context.Background(), sellerID, 2024, time.March)
	require.NoError(t, err)

	assert.Equal(t, first.ThisMonthDebtorsCount, second.ThisMonthDebtorsCount)
	assert.True(t, first.ThisMonthTotalAmount.Equal(second.ThisMonthTotalAmount))
	productRepo.AssertExpectations(t)
}

func TestDashboardService_LateCustomers(t *testing.T) {
	productRepo := new(MockBorrowedProductRepository)
	debtorRepo := new(MockDebtorRepository)
	service := newTestService(productRepo, debtorRepo, nil)

	sellerID := uuid.New()
	late := newDebtor(t, sellerID, "Anvar")
	onTime := newDebtor(t, sellerID, "Bek")

	// first due date 2024-02-15, nothing paid
	lateProduct := newProduct(t, sellerID, late.ID, 1200000, 12, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC))
	// first due date 2024-07-01, not yet due as of March
	futureProduct := newProduct(t, sellerID, onTime.ID, 600000, 6, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))

	productRepo.On("FindActiveBySeller", mock.Anything, sellerID).
		Return([]loan.BorrowedProduct{lateProduct, futureProduct}, nil)
	debtorRepo.On("FindByIDs", mock.Anything, sellerID, mock.Anything).
		Return([]debtor.Debtor{late, onTime}, nil)

	asOf := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	result, err := service.LateCustomers(context.Background(), sellerID, asOf)

	require.NoError(t, err)
	assert.Equal(t, 1, result.LateDebtorsCount)
	require.Len(t, result.LateDebtors, 1)
	assert.Equal(t, "Anvar", result.LateDebtors[0].DebtorName)
	assert.True(t, result.LateDebtors[0].Amount.Equal(decimal.NewFromInt(1200000)))
}

func TestDashboardService_LateCustomers_PaidProductNotLate(t *testing.T) {
	productRepo := new(MockBorrowedProductRepository)
	debtorRepo := new(MockDebtorRepository)
	service := newTestService(productRepo, debtorRepo, nil)

	sellerID := uuid.New()
	d := newDebtor(t, sellerID, "Anvar")

	p := newProduct(t, sellerID, d.ID, 500000, 5, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, p.ApplyPayment(decimal.NewFromInt(500000)))

	productRepo.On("FindActiveBySeller", mock.Anything, sellerID).
		Return([]loan.BorrowedProduct{p}, nil)
	debtorRepo.On("FindByIDs", mock.Anything, sellerID, mock.Anything).
		Return([]debtor.Debtor{d}, nil)

	result, err := service.LateCustomers(context.Background(), sellerID,
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))

	require.NoError(t, err)
	assert.Equal(t, 0, result.LateDebtorsCount)
	assert.Empty(t, result.LateDebtors)
}

func TestDashboardService_TotalOutstanding(t *testing.T) {
	productRepo := new(MockBorrowedProductRepository)
	debtorRepo := new(MockDebtorRepository)
	service := newTestService(productRepo, debtorRepo, nil)

	sellerID := uuid.New()
	p1 := newProduct(t, sellerID, uuid.New(), 1200000, 12, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC))
	p2 := newProduct(t, sellerID, uuid.New(), 600000, 6, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, p2.ApplyPayment(decimal.NewFromInt(100000)))

	productRepo.On("FindActiveBySeller", mock.Anything, sellerID).
		Return([]loan.BorrowedProduct{p1, p2}, nil)

	result, err := service.TotalOutstanding(context.Background(), sellerID)

	require.NoError(t, err)
	assert.True(t, result.TotalAmount.Equal(decimal.NewFromInt(1700000)),
		"got %s", result.TotalAmount)
}

func TestDashboardService_PaymentDays(t *testing.T) {
	productRepo := new(MockBorrowedProductRepository)
	debtorRepo := new(MockDebtorRepository)
	service := newTestService(productRepo, debtorRepo, nil)

	sellerID := uuid.New()
	p1 := newProduct(t, sellerID, uuid.New(), 1200000, 12, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC))
	p2 := newProduct(t, sellerID, uuid.New(), 600000, 6, time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC))

	productRepo.On("FindActiveBySeller", mock.Anything, sellerID).
		Return([]loan.BorrowedProduct{p1, p2}, nil)

	result, err := service.PaymentDays(context.Background(), sellerID, 2024, time.April)

	require.NoError(t, err)
	assert.Equal(t, []int{3, 15}, result.Days)
}

func TestDashboardService_PaymentsForDay(t *testing.T) {
	productRepo := new(MockBorrowedProductRepository)
	debtorRepo := new(MockDebtorRepository)
	service := newTestService(productRepo, debtorRepo, nil)

	sellerID := uuid.New()
	d := newDebtor(t, sellerID, "Anvar")
	p := newProduct(t, sellerID, d.ID, 1200000, 12, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC))

	productRepo.On("FindActiveBySeller", mock.Anything, sellerID).
		Return([]loan.BorrowedProduct{p}, nil)
	debtorRepo.On("FindByIDs", mock.Anything, sellerID, mock.Anything).
		Return([]debtor.Debtor{d}, nil)

	// time of day must not matter
	day := time.Date(2024, 2, 15, 23, 30, 0, 0, time.UTC)
	obligations, err := service.PaymentsForDay(context.Background(), sellerID, day)

	require.NoError(t, err)
	require.Len(t, obligations, 1)
	assert.Equal(t, d.ID, obligations[0].DebtorID)
	assert.Equal(t, "Anvar", obligations[0].DebtorName)
	assert.True(t, obligations[0].Amount.Equal(decimal.NewFromInt(100000)))
	assert.Equal(t, "pending", obligations[0].Status)
}

func TestDashboardService_PaymentsForDay_MissingDebtorDropped(t *testing.T) {
	productRepo := new(MockBorrowedProductRepository)
	debtorRepo := new(MockDebtorRepository)
	service := newTestService(productRepo, debtorRepo, nil)

	sellerID := uuid.New()
	p := newProduct(t, sellerID, uuid.New(), 1200000, 12, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC))

	productRepo.On("FindActiveBySeller", mock.Anything, sellerID).
		Return([]loan.BorrowedProduct{p}, nil)
	// the debtor has been removed meanwhile
	debtorRepo.On("FindByIDs", mock.Anything, sellerID, mock.Anything).
		Return([]debtor.Debtor{}, nil)

	obligations, err := service.PaymentsForDay(context.Background(), sellerID,
		time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC))

	require.NoError(t, err)
	assert.Empty(t, obligations)
}
