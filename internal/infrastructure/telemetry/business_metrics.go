// Package telemetry provides OpenTelemetry integration for metrics collection.
package telemetry

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// BusinessMetrics provides business metrics for the lending system.
// It tracks credit issuance, repayment activity, reminder messages and
// wallet top-ups.
type BusinessMetrics struct {
	meter  metric.Meter
	logger *zap.Logger

	// Counter metrics (monotonically increasing)
	loanCreatedTotal   *Counter
	loanAmountTotal    *Counter
	paymentTotal       *Counter
	paymentAmountTotal *Counter
	reminderSentTotal  *Counter
	walletTopUpTotal   *Counter

	// Gauge metrics (point-in-time values)
	outstandingDebtTotal *Gauge
	activeDebtorCount    *Gauge

	// Periodic collector
	stopChan    chan struct{}
	stopOnce    sync.Once
	collectOnce sync.Once

	// Data provider for periodic collection
	portfolioProvider PortfolioMetricsProvider
}

// PortfolioMetricsProvider provides loan portfolio data for periodic
// metrics collection. This interface allows the telemetry layer to query
// portfolio state without depending on the loan domain directly.
type PortfolioMetricsProvider interface {
	// GetOutstandingTotal returns the sum of unpaid amounts across a
	// seller's active borrowed products, in the smallest currency unit.
	GetOutstandingTotal(ctx context.Context, sellerID uuid.UUID) (int64, error)

	// GetActiveDebtorCount returns the number of debtors with at least
	// one active borrowed product for a seller.
	GetActiveDebtorCount(ctx context.Context, sellerID uuid.UUID) (int64, error)
}

// BusinessMetricsConfig holds configuration for business metrics.
type BusinessMetricsConfig struct {
	Meter             metric.Meter
	Logger            *zap.Logger
	CollectInterval   time.Duration // Default: 5 minutes
	PortfolioProvider PortfolioMetricsProvider
}

// NewBusinessMetrics creates a new BusinessMetrics instance.
func NewBusinessMetrics(cfg BusinessMetricsConfig) (*BusinessMetrics, error) {
	if cfg.Meter == nil {
		return nil, ErrMeterNil
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	bm := &BusinessMetrics{
		meter:             cfg.Meter,
		logger:            logger,
		stopChan:          make(chan struct{}),
		portfolioProvider: cfg.PortfolioProvider,
	}

	var err error

	// Credit issuance metrics
	bm.loanCreatedTotal, err = NewCounter(
		cfg.Meter,
		"nasiya_loan_created_total",
		"Total number of borrowed products created",
		"{loans}",
	)
	if err != nil {
		return nil, err
	}

	bm.loanAmountTotal, err = NewCounter(
		cfg.Meter,
		"nasiya_loan_amount_total",
		"Total credit issued in the smallest currency unit (tiyin)",
		"{tiyin}",
	)
	if err != nil {
		return nil, err
	}

	// Repayment metrics
	bm.paymentTotal, err = NewCounter(
		cfg.Meter,
		"nasiya_payment_total",
		"Total number of recorded repayments",
		"{payments}",
	)
	if err != nil {
		return nil, err
	}

	bm.paymentAmountTotal, err = NewCounter(
		cfg.Meter,
		"nasiya_payment_amount_total",
		"Total repaid amount in the smallest currency unit (tiyin)",
		"{tiyin}",
	)
	if err != nil {
		return nil, err
	}

	// Messaging metrics
	bm.reminderSentTotal, err = NewCounter(
		cfg.Meter,
		"nasiya_reminder_sent_total",
		"Total number of reminder messages by delivery status",
		"{messages}",
	)
	if err != nil {
		return nil, err
	}

	// Wallet metrics
	bm.walletTopUpTotal, err = NewCounter(
		cfg.Meter,
		"nasiya_wallet_topup_total",
		"Total number of wallet top-ups",
		"{topups}",
	)
	if err != nil {
		return nil, err
	}

	// Portfolio gauge metrics
	bm.outstandingDebtTotal, err = NewGauge(
		cfg.Meter,
		"nasiya_outstanding_debt_total",
		"Current outstanding debt in the smallest currency unit (tiyin)",
		"{tiyin}",
	)
	if err != nil {
		return nil, err
	}

	bm.activeDebtorCount, err = NewGauge(
		cfg.Meter,
		"nasiya_active_debtor_count",
		"Number of debtors with at least one active borrowed product",
		"{debtors}",
	)
	if err != nil {
		return nil, err
	}

	return bm, nil
}

// =============================================================================
// Credit Issuance Metrics
// =============================================================================

// RecordLoanCreated records a borrowed product creation together with the
// issued amount.
func (bm *BusinessMetrics) RecordLoanCreated(ctx context.Context, sellerID uuid.UUID, amount decimal.Decimal) {
	bm.loanCreatedTotal.Inc(ctx,
		AttrSellerID.String(sellerID.String()),
	)
	bm.loanAmountTotal.Add(ctx, toTiyin(amount),
		AttrSellerID.String(sellerID.String()),
	)
}

// =============================================================================
// Repayment Metrics
// =============================================================================

// RecordPayment records a repayment against a borrowed product.
// This should be called from the application layer when a payment is saved.
func (bm *BusinessMetrics) RecordPayment(ctx context.Context, sellerID uuid.UUID, amount decimal.Decimal) {
	bm.paymentTotal.Inc(ctx,
		AttrSellerID.String(sellerID.String()),
	)
	bm.paymentAmountTotal.Add(ctx, toTiyin(amount),
		AttrSellerID.String(sellerID.String()),
	)
}

// =============================================================================
// Messaging Metrics
// =============================================================================

// MessageStatus represents the delivery outcome of a reminder message.
type MessageStatus string

const (
	MessageStatusSent   MessageStatus = "sent"
	MessageStatusFailed MessageStatus = "failed"
)

// RecordReminderSent records a reminder message delivery attempt.
func (bm *BusinessMetrics) RecordReminderSent(ctx context.Context, sellerID uuid.UUID, status MessageStatus) {
	bm.reminderSentTotal.Inc(ctx,
		AttrSellerID.String(sellerID.String()),
		AttrMessageStatus.String(string(status)),
	)
}

// =============================================================================
// Wallet Metrics
// =============================================================================

// RecordWalletTopUp records a wallet top-up event.
func (bm *BusinessMetrics) RecordWalletTopUp(ctx context.Context, sellerID uuid.UUID) {
	bm.walletTopUpTotal.Inc(ctx,
		AttrSellerID.String(sellerID.String()),
	)
}

// =============================================================================
// Portfolio Metrics
// =============================================================================

// RecordOutstandingDebt records the current outstanding debt for a seller.
// This is a gauge metric that should be updated periodically.
func (bm *BusinessMetrics) RecordOutstandingDebt(ctx context.Context, sellerID uuid.UUID, amountTiyin int64) {
	bm.outstandingDebtTotal.Record(ctx, amountTiyin,
		AttrSellerID.String(sellerID.String()),
	)
}

// RecordActiveDebtorCount records the number of debtors with active credit.
// This is a gauge metric that should be updated periodically.
func (bm *BusinessMetrics) RecordActiveDebtorCount(ctx context.Context, sellerID uuid.UUID, count int64) {
	bm.activeDebtorCount.Record(ctx, count,
		AttrSellerID.String(sellerID.String()),
	)
}

// toTiyin converts a decimal amount to the smallest currency unit.
func toTiyin(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).IntPart()
}

// =============================================================================
// Periodic Collection
// =============================================================================

// SellerProvider provides seller IDs for periodic metrics collection.
type SellerProvider interface {
	GetActiveSellerIDs(ctx context.Context) ([]uuid.UUID, error)
}

// StartPeriodicCollection starts periodic collection of gauge metrics.
// It collects portfolio metrics every interval (default: 5 minutes).
// This is non-blocking - use Stop() to stop collection.
func (bm *BusinessMetrics) StartPeriodicCollection(ctx context.Context, sellerProvider SellerProvider, interval time.Duration) {
	bm.collectOnce.Do(func() {
		if interval <= 0 {
			interval = 5 * time.Minute
		}

		go bm.runPeriodicCollection(ctx, sellerProvider, interval)
	})
}

// runPeriodicCollection runs the periodic collection loop.
func (bm *BusinessMetrics) runPeriodicCollection(ctx context.Context, sellerProvider SellerProvider, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// Collect immediately on start
	bm.collectPortfolioMetrics(ctx, sellerProvider)

	for {
		select {
		case <-bm.stopChan:
			bm.logger.Info("Stopping periodic business metrics collection")
			return
		case <-ctx.Done():
			bm.logger.Info("Context cancelled, stopping periodic business metrics collection")
			return
		case <-ticker.C:
			bm.collectPortfolioMetrics(ctx, sellerProvider)
		}
	}
}

// collectPortfolioMetrics collects portfolio gauge metrics for all sellers.
func (bm *BusinessMetrics) collectPortfolioMetrics(ctx context.Context, sellerProvider SellerProvider) {
	if bm.portfolioProvider == nil {
		bm.logger.Debug("No portfolio provider configured, skipping portfolio metrics collection")
		return
	}

	sellerIDs, err := sellerProvider.GetActiveSellerIDs(ctx)
	if err != nil {
		bm.logger.Error("Failed to get seller IDs for metrics collection", zap.Error(err))
		return
	}

	for _, sellerID := range sellerIDs {
		bm.collectSellerPortfolioMetrics(ctx, sellerID)
	}
}

// collectSellerPortfolioMetrics collects portfolio metrics for a single seller.
func (bm *BusinessMetrics) collectSellerPortfolioMetrics(ctx context.Context, sellerID uuid.UUID) {
	outstanding, err := bm.portfolioProvider.GetOutstandingTotal(ctx, sellerID)
	if err != nil {
		bm.logger.Warn("Failed to get outstanding total for seller",
			zap.String("seller_id", sellerID.String()),
			zap.Error(err),
		)
	} else {
		bm.RecordOutstandingDebt(ctx, sellerID, outstanding)
	}

	debtorCount, err := bm.portfolioProvider.GetActiveDebtorCount(ctx, sellerID)
	if err != nil {
		bm.logger.Warn("Failed to get active debtor count for seller",
			zap.String("seller_id", sellerID.String()),
			zap.Error(err),
		)
	} else {
		bm.RecordActiveDebtorCount(ctx, sellerID, debtorCount)
	}
}

// Stop stops the periodic collection.
func (bm *BusinessMetrics) Stop() {
	bm.stopOnce.Do(func() {
		close(bm.stopChan)
	})
}

// =============================================================================
// Error Types
// =============================================================================

// ErrMeterNil is returned when meter is nil.
var ErrMeterNil = &MetricsError{Op: "NewBusinessMetrics", Err: "meter cannot be nil"}

// MetricsError represents a metrics-related error.
type MetricsError struct {
	Op  string
	Err string
}

func (e *MetricsError) Error() string {
	return e.Op + ": " + e.Err
}
