package integration

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	dashboardapp "github.com/nasiya/backend/internal/application/dashboard"
	debtorapp "github.com/nasiya/backend/internal/application/debtor"
	identityapp "github.com/nasiya/backend/internal/application/identity"
	loanapp "github.com/nasiya/backend/internal/application/loan"
	messagingapp "github.com/nasiya/backend/internal/application/messaging"
	"github.com/nasiya/backend/internal/domain/identity"
	"github.com/nasiya/backend/internal/domain/shared"
	"github.com/nasiya/backend/internal/infrastructure/cache"
	"github.com/nasiya/backend/internal/infrastructure/persistence"
)

// lendingStack wires the application services the way cmd/server does,
// backed by a real database and an in-memory dashboard cache.
type lendingStack struct {
	sellerRepo *persistence.GormSellerRepository
	sellers    *identityapp.SellerService
	debtors    *debtorapp.DebtorService
	loans      *loanapp.LoanService
	messaging  *messagingapp.MessagingService
	dashboard  *dashboardapp.DashboardService
}

func newLendingStack(tdb *TestDB) *lendingStack {
	log := zap.NewNop()
	dashCache := cache.NewInMemoryDashboardCache(5 * time.Minute)

	sellerRepo := persistence.NewGormSellerRepository(tdb.DB)
	walletRepo := persistence.NewGormWalletTransactionRepository(tdb.DB)
	debtorRepo := persistence.NewGormDebtorRepository(tdb.DB)
	productRepo := persistence.NewGormBorrowedProductRepository(tdb.DB)
	paymentRepo := persistence.NewGormPaymentRecordRepository(tdb.DB)
	reportRepo := persistence.NewGormMessageReportRepository(tdb.DB)
	sampleRepo := persistence.NewGormMessageSampleRepository(tdb.DB)

	return &lendingStack{
		sellerRepo: sellerRepo,
		sellers:    identityapp.NewSellerService(sellerRepo, walletRepo, log),
		debtors:    debtorapp.NewDebtorService(debtorRepo, productRepo, dashCache, log),
		loans:      loanapp.NewLoanService(productRepo, paymentRepo, debtorRepo, dashCache, log),
		messaging: messagingapp.NewMessagingService(
			reportRepo, sampleRepo, debtorRepo, sellerRepo, walletRepo,
			decimal.NewFromInt(500), log),
		dashboard: dashboardapp.NewDashboardService(productRepo, debtorRepo, dashCache, log),
	}
}

func (s *lendingStack) createSeller(t *testing.T, ctx context.Context, login string) *identity.Seller {
	seller, err := identity.NewSeller(login, "S3cretPass", "Flow Seller")
	require.NoError(t, err)
	require.NoError(t, s.sellerRepo.Save(ctx, seller))
	return seller
}

// TestLendingFlow walks the main business path: a seller registers a
// debtor, hands out a product on installments, records repayments and
// watches the dashboard totals move.
func TestLendingFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	tdb := NewSharedTestDB(t)
	defer tdb.Close()
	tdb.CleanTables()

	ctx := context.Background()
	stack := newLendingStack(tdb)
	seller := stack.createSeller(t, ctx, "flow-seller")

	// Register a debtor
	debtorInfo, err := stack.debtors.Create(ctx, seller.ID, debtorapp.CreateDebtorInput{
		Name:         "Gulnora Azimova",
		Address:      "Yunusobod 12",
		PhoneNumbers: []string{"+998935554433"},
	})
	require.NoError(t, err)

	// Hand out a phone on a 10-month installment plan
	start := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)
	product, err := stack.loans.CreateProduct(ctx, seller.ID, loanapp.CreateProductInput{
		DebtorID:    debtorInfo.ID,
		ProductName: "Samsung A56",
		TotalAmount: decimal.NewFromInt(5000000),
		TermMonths:  10,
		StartDate:   &start,
	})
	require.NoError(t, err)
	assert.Equal(t, "active", product.Status)
	// Month payment derived from total and term
	assert.True(t, product.MonthPayment.Equal(decimal.NewFromInt(500000)),
		"expected derived month payment 500000, got %s", product.MonthPayment)

	// The full remaining debt shows up on the dashboard
	outstanding, err := stack.dashboard.TotalOutstanding(ctx, seller.ID)
	require.NoError(t, err)
	assert.True(t, outstanding.TotalAmount.Equal(decimal.NewFromInt(5000000)))

	// First two installments paid in one go
	payment, err := stack.loans.RecordPayment(ctx, seller.ID, product.ID, loanapp.RecordPaymentInput{
		Amount: decimal.NewFromInt(1000000),
		Months: []int{1, 2},
		Note:   "first two months",
	})
	require.NoError(t, err)
	assert.True(t, payment.Amount.Equal(decimal.NewFromInt(1000000)))

	updated, err := stack.loans.GetProduct(ctx, seller.ID, product.ID)
	require.NoError(t, err)
	assert.True(t, updated.PaidAmount.Equal(decimal.NewFromInt(1000000)))
	assert.True(t, updated.RemainingAmount.Equal(decimal.NewFromInt(4000000)))

	// Dashboard cache was invalidated by the payment
	outstanding, err = stack.dashboard.TotalOutstanding(ctx, seller.ID)
	require.NoError(t, err)
	assert.True(t, outstanding.TotalAmount.Equal(decimal.NewFromInt(4000000)))

	// The month containing the third installment lists this debtor
	monthTotal, err := stack.dashboard.MonthTotal(ctx, seller.ID, 2026, time.June)
	require.NoError(t, err)
	assert.Equal(t, 1, monthTotal.ThisMonthDebtorsCount)
	assert.True(t, monthTotal.ThisMonthTotalAmount.Equal(decimal.NewFromInt(500000)))

	// Payment history shows the recorded payment
	history, err := stack.loans.PaymentsByProduct(ctx, seller.ID, product.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, []int{1, 2}, history[0].Months)

	// The debtor's aggregate debt reflects the remaining amount
	found, err := stack.debtors.Get(ctx, seller.ID, debtorInfo.ID)
	require.NoError(t, err)
	assert.True(t, found.TotalDebt.Equal(decimal.NewFromInt(4000000)))
}

// TestLendingFlow_PayOffProduct pays every installment and checks the
// product closes out.
func TestLendingFlow_PayOffProduct(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	tdb := NewSharedTestDB(t)
	defer tdb.Close()
	tdb.CleanTables()

	ctx := context.Background()
	stack := newLendingStack(tdb)
	seller := stack.createSeller(t, ctx, "payoff-seller")

	debtorInfo, err := stack.debtors.Create(ctx, seller.ID, debtorapp.CreateDebtorInput{
		Name:         "Rustam Nazarov",
		PhoneNumbers: []string{"+998941112233"},
	})
	require.NoError(t, err)

	product, err := stack.loans.CreateProduct(ctx, seller.ID, loanapp.CreateProductInput{
		DebtorID:    debtorInfo.ID,
		ProductName: "Artel fridge",
		TotalAmount: decimal.NewFromInt(3000000),
		TermMonths:  3,
	})
	require.NoError(t, err)

	for month := 1; month <= 3; month++ {
		_, err := stack.loans.RecordPayment(ctx, seller.ID, product.ID, loanapp.RecordPaymentInput{
			Amount: decimal.NewFromInt(1000000),
			Months: []int{month},
		})
		require.NoError(t, err)
	}

	paid, err := stack.loans.GetProduct(ctx, seller.ID, product.ID)
	require.NoError(t, err)
	assert.Equal(t, "paid", paid.Status)
	assert.True(t, paid.RemainingAmount.IsZero())

	// A paid-off product no longer counts toward outstanding debt
	outstanding, err := stack.dashboard.TotalOutstanding(ctx, seller.ID)
	require.NoError(t, err)
	assert.True(t, outstanding.TotalAmount.IsZero())

	// Payments against a cancelled product are rejected
	_, err = stack.loans.CancelProduct(ctx, seller.ID, product.ID)
	require.NoError(t, err)
	_, err = stack.loans.RecordPayment(ctx, seller.ID, product.ID, loanapp.RecordPaymentInput{
		Amount: decimal.NewFromInt(1000000),
		Months: []int{4},
	})
	assert.Error(t, err)
}

// TestMessagingFlow_WalletCharge sends a payment reminder and checks
// the wallet debit plus the transaction trail.
func TestMessagingFlow_WalletCharge(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	tdb := NewSharedTestDB(t)
	defer tdb.Close()
	tdb.CleanTables()

	ctx := context.Background()
	stack := newLendingStack(tdb)
	seller := stack.createSeller(t, ctx, "msg-seller")

	debtorInfo, err := stack.debtors.Create(ctx, seller.ID, debtorapp.CreateDebtorInput{
		Name:         "Malika Yusupova",
		PhoneNumbers: []string{"+998936667788"},
	})
	require.NoError(t, err)

	// Sending with an empty wallet stores the report unsent
	unsent, err := stack.messaging.Send(ctx, seller.ID, messagingapp.SendMessageInput{
		DebtorID: debtorInfo.ID,
		Message:  "Hurmatli mijoz, to'lov muddati yaqinlashmoqda.",
	})
	require.NoError(t, err)
	assert.False(t, unsent.Sent)

	// Top up and retry
	profile, err := stack.sellers.TopUpWallet(ctx, seller.ID, identityapp.TopUpInput{
		Amount: decimal.NewFromInt(10000),
		Note:   "initial top-up",
	})
	require.NoError(t, err)
	assert.True(t, profile.Balance.Equal(decimal.NewFromInt(10000)))

	report, err := stack.messaging.Send(ctx, seller.ID, messagingapp.SendMessageInput{
		DebtorID: debtorInfo.ID,
		Message:  "Hurmatli mijoz, to'lov muddati yaqinlashmoqda.",
	})
	require.NoError(t, err)
	assert.True(t, report.Sent)

	// 500 charged per message
	profile, err = stack.sellers.GetProfile(ctx, seller.ID)
	require.NoError(t, err)
	assert.True(t, profile.Balance.Equal(decimal.NewFromInt(9500)))

	// Both the top-up and the charge left wallet transactions
	txs, err := stack.sellers.WalletTransactions(ctx, seller.ID, shared.DefaultFilter())
	require.NoError(t, err)
	assert.Equal(t, int64(2), txs.Total)

	// Both attempts show up in the debtor's chat history
	reports, err := stack.messaging.ListByDebtor(ctx, seller.ID, debtorInfo.ID)
	require.NoError(t, err)
	require.Len(t, reports, 2)
	assert.Equal(t, unsent.ID, reports[0].ID)
	assert.Equal(t, report.ID, reports[1].ID)
}

// TestMessagingFlow_Samples exercises the reusable message templates.
func TestMessagingFlow_Samples(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	tdb := NewSharedTestDB(t)
	defer tdb.Close()
	tdb.CleanTables()

	ctx := context.Background()
	stack := newLendingStack(tdb)
	seller := stack.createSeller(t, ctx, "sample-seller")

	sample, err := stack.messaging.CreateSample(ctx, seller.ID, messagingapp.CreateSampleInput{
		Text: "Assalomu alaykum, to'lovni unutmang.",
	})
	require.NoError(t, err)

	newText := "Assalomu alaykum, to'lov kuni keldi."
	updated, err := stack.messaging.UpdateSample(ctx, seller.ID, sample.ID, messagingapp.UpdateSampleInput{
		Text: newText,
	})
	require.NoError(t, err)
	assert.Equal(t, newText, updated.Text)

	samples, err := stack.messaging.ListSamples(ctx, seller.ID)
	require.NoError(t, err)
	require.Len(t, samples, 1)

	require.NoError(t, stack.messaging.DeleteSample(ctx, seller.ID, sample.ID))
	samples, err = stack.messaging.ListSamples(ctx, seller.ID)
	require.NoError(t, err)
	assert.Empty(t, samples)
}
