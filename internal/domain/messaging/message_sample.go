package messaging

import (
	"strings"

	"github.com/google/uuid"
	"github.com/nasiya/backend/internal/domain/shared"
)

// MessageSample is a reusable message template owned by a seller.
// The text may contain the placeholders {name}, {amount} and {date}.
type MessageSample struct {
	shared.BaseEntity
	SellerID uuid.UUID
	Text     string
}

// NewMessageSample creates a message sample
func NewMessageSample(sellerID uuid.UUID, text string) (*MessageSample, error) {
	if sellerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SELLER_ID", "Seller ID cannot be empty")
	}
	if err := validateSampleText(text); err != nil {
		return nil, err
	}

	return &MessageSample{
		BaseEntity: shared.NewBaseEntity(),
		SellerID:   sellerID,
		Text:       text,
	}, nil
}

// SetText updates the template text
func (s *MessageSample) SetText(text string) error {
	if err := validateSampleText(text); err != nil {
		return err
	}

	s.Text = text
	return nil
}

func validateSampleText(text string) error {
	if strings.TrimSpace(text) == "" {
		return shared.NewDomainError("INVALID_SAMPLE", "Sample text cannot be empty")
	}
	if len(text) > 1000 {
		return shared.NewDomainError("INVALID_SAMPLE", "Sample text cannot exceed 1000 characters")
	}
	return nil
}
