package messaging

import (
	"strings"

	"github.com/google/uuid"
	"github.com/nasiya/backend/internal/domain/shared"
)

// MessageReport records a reminder message sent to a debtor. The
// per-debtor list is rendered as a chat thread in the client. Sent is
// false when the message could not be paid for or dispatched.
type MessageReport struct {
	shared.BaseEntity
	SellerID uuid.UUID
	DebtorID uuid.UUID
	Message  string
	Sent     bool
}

// NewMessageReport creates a message report
func NewMessageReport(sellerID, debtorID uuid.UUID, text string) (*MessageReport, error) {
	if sellerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SELLER_ID", "Seller ID cannot be empty")
	}
	if debtorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_DEBTOR_ID", "Debtor ID cannot be empty")
	}
	if strings.TrimSpace(text) == "" {
		return nil, shared.NewDomainError("INVALID_MESSAGE", "Message cannot be empty")
	}
	if len(text) > 2000 {
		return nil, shared.NewDomainError("INVALID_MESSAGE", "Message cannot exceed 2000 characters")
	}

	return &MessageReport{
		BaseEntity: shared.NewBaseEntity(),
		SellerID:   sellerID,
		DebtorID:   debtorID,
		Message:    text,
	}, nil
}

// MarkSent marks the report as successfully dispatched
func (r *MessageReport) MarkSent() {
	r.Sent = true
}
