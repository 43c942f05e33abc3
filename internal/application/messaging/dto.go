package messaging

import (
	"time"

	"github.com/google/uuid"
	"github.com/nasiya/backend/internal/domain/messaging"
	"github.com/shopspring/decimal"
)

// SendMessageInput carries a reminder message send request. Either
// Message or SampleID must be set; a sample is rendered against the
// debtor's name and the provided due amount and date.
type SendMessageInput struct {
	DebtorID  uuid.UUID
	Message   string
	SampleID  *uuid.UUID
	DueAmount decimal.Decimal
	DueDate   *time.Time
}

// CreateSampleInput carries a message sample creation request
type CreateSampleInput struct {
	Text string
}

// UpdateSampleInput carries a message sample update request
type UpdateSampleInput struct {
	Text string
}

// ReportInfo is the message report shape returned to clients
type ReportInfo struct {
	ID        uuid.UUID `json:"id"`
	DebtorID  uuid.UUID `json:"debtorId"`
	Message   string    `json:"message"`
	Sent      bool      `json:"sent"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewReportInfo maps a domain message report to its client shape
func NewReportInfo(r *messaging.MessageReport) ReportInfo {
	return ReportInfo{
		ID:        r.ID,
		DebtorID:  r.DebtorID,
		Message:   r.Message,
		Sent:      r.Sent,
		CreatedAt: r.CreatedAt,
	}
}

// SampleInfo is the message sample shape returned to clients
type SampleInfo struct {
	ID        uuid.UUID `json:"id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewSampleInfo maps a domain message sample to its client shape
func NewSampleInfo(s *messaging.MessageSample) SampleInfo {
	return SampleInfo{
		ID:        s.ID,
		Text:      s.Text,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
