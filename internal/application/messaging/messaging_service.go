// Package messaging contains the application services for reminder
// messages and message samples.
package messaging

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nasiya/backend/internal/domain/debtor"
	"github.com/nasiya/backend/internal/domain/identity"
	"github.com/nasiya/backend/internal/domain/messaging"
	"github.com/nasiya/backend/internal/domain/shared"
	"github.com/nasiya/backend/internal/infrastructure/telemetry"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// MessagingService handles reminder message sending and sample CRUD.
// Every sent message debits the seller's wallet by the configured
// per-message price; a failed debit still stores the report with
// Sent=false so the thread shows the attempt.
type MessagingService struct {
	reportRepo      messaging.MessageReportRepository
	sampleRepo      messaging.MessageSampleRepository
	debtorRepo      debtor.DebtorRepository
	sellerRepo      identity.SellerRepository
	walletRepo      identity.WalletTransactionRepository
	messagePrice    decimal.Decimal
	businessMetrics *telemetry.BusinessMetrics
	logger          *zap.Logger
}

// NewMessagingService creates a new messaging service
func NewMessagingService(
	reportRepo messaging.MessageReportRepository,
	sampleRepo messaging.MessageSampleRepository,
	debtorRepo debtor.DebtorRepository,
	sellerRepo identity.SellerRepository,
	walletRepo identity.WalletTransactionRepository,
	messagePrice decimal.Decimal,
	logger *zap.Logger,
) *MessagingService {
	return &MessagingService{
		reportRepo:   reportRepo,
		sampleRepo:   sampleRepo,
		debtorRepo:   debtorRepo,
		sellerRepo:   sellerRepo,
		walletRepo:   walletRepo,
		messagePrice: messagePrice,
		logger:       logger,
	}
}

// SetBusinessMetrics sets the business metrics collector
func (s *MessagingService) SetBusinessMetrics(bm *telemetry.BusinessMetrics) {
	s.businessMetrics = bm
}

// Send stores a reminder message report for a debtor. The wallet is
// debited by the per-message price first; when the debit fails the
// report is still stored with Sent=false.
func (s *MessagingService) Send(ctx context.Context, sellerID uuid.UUID, input SendMessageInput) (*ReportInfo, error) {
	d, err := s.debtorRepo.FindByID(ctx, sellerID, input.DebtorID)
	if err != nil {
		return nil, err
	}

	text := input.Message
	if input.SampleID != nil {
		sample, err := s.sampleRepo.FindByID(ctx, sellerID, *input.SampleID)
		if err != nil {
			return nil, err
		}
		dueDate := time.Now().UTC()
		if input.DueDate != nil {
			dueDate = *input.DueDate
		}
		text = messaging.Render(sample.Text, d.Name, input.DueAmount, dueDate)
	}

	report, err := messaging.NewMessageReport(sellerID, input.DebtorID, text)
	if err != nil {
		return nil, err
	}

	if err := s.chargeWallet(ctx, sellerID, d.Name); err != nil {
		s.logger.Warn("Message wallet charge failed, storing unsent report",
			zap.String("seller_id", sellerID.String()),
			zap.String("debtor_id", input.DebtorID.String()),
			zap.Error(err))
	} else {
		report.MarkSent()
	}

	if err := s.reportRepo.Save(ctx, report); err != nil {
		return nil, err
	}

	if s.businessMetrics != nil {
		status := telemetry.MessageStatusFailed
		if report.Sent {
			status = telemetry.MessageStatusSent
		}
		s.businessMetrics.RecordReminderSent(ctx, sellerID, status)
	}
	s.logger.Info("Message report stored",
		zap.String("seller_id", sellerID.String()),
		zap.String("debtor_id", input.DebtorID.String()),
		zap.Bool("sent", report.Sent))

	info := NewReportInfo(report)
	return &info, nil
}

// chargeWallet debits the per-message price and records the charge
func (s *MessagingService) chargeWallet(ctx context.Context, sellerID uuid.UUID, debtorName string) error {
	if s.messagePrice.LessThanOrEqual(decimal.Zero) {
		return nil
	}

	seller, err := s.sellerRepo.FindByID(ctx, sellerID)
	if err != nil {
		return err
	}
	if err := seller.Debit(s.messagePrice); err != nil {
		return err
	}

	seller.IncrementVersion()
	if err := s.sellerRepo.SaveWithLock(ctx, seller); err != nil {
		return err
	}

	note := fmt.Sprintf("Reminder message to %s", debtorName)
	tx, err := identity.NewWalletTransaction(sellerID, identity.WalletTransactionCharge, s.messagePrice, note)
	if err != nil {
		return err
	}
	if err := s.walletRepo.Save(ctx, tx); err != nil {
		s.logger.Error("Failed to record message charge transaction",
			zap.String("seller_id", sellerID.String()),
			zap.Error(err))
	}
	return nil
}

// ListByDebtor returns a debtor's message thread in chronological order
func (s *MessagingService) ListByDebtor(ctx context.Context, sellerID, debtorID uuid.UUID) ([]ReportInfo, error) {
	reports, err := s.reportRepo.FindByDebtor(ctx, sellerID, debtorID)
	if err != nil {
		return nil, err
	}

	items := make([]ReportInfo, len(reports))
	for i := range reports {
		items[i] = NewReportInfo(&reports[i])
	}
	return items, nil
}

// ListAll returns the seller's message reports page, newest first
func (s *MessagingService) ListAll(ctx context.Context, sellerID uuid.UUID, filter shared.Filter) (*shared.Paginated[ReportInfo], error) {
	reports, total, err := s.reportRepo.FindBySeller(ctx, sellerID, filter)
	if err != nil {
		return nil, err
	}

	items := make([]ReportInfo, len(reports))
	for i := range reports {
		items[i] = NewReportInfo(&reports[i])
	}

	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

// DeleteReport removes a message report
func (s *MessagingService) DeleteReport(ctx context.Context, sellerID, reportID uuid.UUID) error {
	if err := s.reportRepo.Delete(ctx, sellerID, reportID); err != nil {
		return err
	}

	s.logger.Info("Message report deleted",
		zap.String("seller_id", sellerID.String()),
		zap.String("report_id", reportID.String()))
	return nil
}

// CreateSample stores a reusable message template
func (s *MessagingService) CreateSample(ctx context.Context, sellerID uuid.UUID, input CreateSampleInput) (*SampleInfo, error) {
	sample, err := messaging.NewMessageSample(sellerID, input.Text)
	if err != nil {
		return nil, err
	}

	if err := s.sampleRepo.Save(ctx, sample); err != nil {
		return nil, err
	}

	s.logger.Info("Message sample created",
		zap.String("seller_id", sellerID.String()),
		zap.String("sample_id", sample.ID.String()))

	info := NewSampleInfo(sample)
	return &info, nil
}

// ListSamples returns the seller's message samples, newest first
func (s *MessagingService) ListSamples(ctx context.Context, sellerID uuid.UUID) ([]SampleInfo, error) {
	samples, err := s.sampleRepo.FindBySeller(ctx, sellerID)
	if err != nil {
		return nil, err
	}

	items := make([]SampleInfo, len(samples))
	for i := range samples {
		items[i] = NewSampleInfo(&samples[i])
	}
	return items, nil
}

// UpdateSample replaces a sample's template text
func (s *MessagingService) UpdateSample(ctx context.Context, sellerID, sampleID uuid.UUID, input UpdateSampleInput) (*SampleInfo, error) {
	sample, err := s.sampleRepo.FindByID(ctx, sellerID, sampleID)
	if err != nil {
		return nil, err
	}

	if err := sample.SetText(input.Text); err != nil {
		return nil, err
	}
	if err := s.sampleRepo.Save(ctx, sample); err != nil {
		return nil, err
	}

	info := NewSampleInfo(sample)
	return &info, nil
}

// DeleteSample removes a message sample
func (s *MessagingService) DeleteSample(ctx context.Context, sellerID, sampleID uuid.UUID) error {
	if err := s.sampleRepo.Delete(ctx, sellerID, sampleID); err != nil {
		return err
	}

	s.logger.Info("Message sample deleted",
		zap.String("seller_id", sellerID.String()),
		zap.String("sample_id", sampleID.String()))
	return nil
}
