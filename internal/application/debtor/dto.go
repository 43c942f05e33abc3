package debtor

import (
	"time"

	"github.com/google/uuid"
	"github.com/nasiya/backend/internal/domain/debtor"
	"github.com/shopspring/decimal"
)

// CreateDebtorInput carries a debtor creation request
type CreateDebtorInput struct {
	Name         string
	Address      string
	Note         string
	PhoneNumbers []string
	Images       []string
}

// UpdateDebtorInput carries optional debtor field updates
type UpdateDebtorInput struct {
	Name         *string
	Address      *string
	Note         *string
	PhoneNumbers []string
	Images       []string
}

// PhoneNumberInfo is the phone number shape returned to clients
type PhoneNumberInfo struct {
	ID     uuid.UUID `json:"id"`
	Number string    `json:"number"`
}

// DebtorInfo is the debtor shape returned to clients
type DebtorInfo struct {
	ID           uuid.UUID         `json:"id"`
	Name         string            `json:"name"`
	Address      string            `json:"address,omitempty"`
	Note         string            `json:"note,omitempty"`
	Role         string            `json:"role"`
	PhoneNumbers []PhoneNumberInfo `json:"phoneNumbers"`
	Images       []string          `json:"images"`
	TotalDebt    decimal.Decimal   `json:"totalDebt"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

// NewDebtorInfo maps a domain debtor to its client shape.
// TotalDebt is filled in by the service from the debtor's active
// products.
func NewDebtorInfo(d *debtor.Debtor, totalDebt decimal.Decimal) DebtorInfo {
	phones := make([]PhoneNumberInfo, len(d.PhoneNumbers))
	for i, p := range d.PhoneNumbers {
		phones[i] = PhoneNumberInfo{ID: p.ID, Number: p.Number}
	}
	images := d.Images
	if images == nil {
		images = make([]string, 0)
	}
	return DebtorInfo{
		ID:           d.ID,
		Name:         d.Name,
		Address:      d.Address,
		Note:         d.Note,
		Role:         d.Role,
		PhoneNumbers: phones,
		Images:       images,
		TotalDebt:    totalDebt,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}
