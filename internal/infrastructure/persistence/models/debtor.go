package models

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/nasiya/backend/internal/domain/debtor"
	"go.uber.org/zap"
)

// modelLogger logs model conversion errors that are otherwise swallowed
var modelLogger = zap.L().Named("persistence.models")

// DebtorModel is the persistence model for the Debtor aggregate root.
// Phone numbers live in their own table; images are stored as a JSON
// array of URLs.
type DebtorModel struct {
	SellerAggregateModel
	Name       string             `gorm:"type:varchar(200);not null;index"`
	Address    string             `gorm:"type:text"`
	Note       string             `gorm:"type:text"`
	Role       string             `gorm:"type:varchar(50);not null;default:'debtor'"`
	ImagesJSON string             `gorm:"column:images;type:jsonb;default:'[]'"`
	Phones     []DebtorPhoneModel `gorm:"foreignKey:DebtorID;references:ID"`
}

// TableName returns the table name for GORM
func (DebtorModel) TableName() string {
	return "debtors"
}

// DebtorPhoneModel is a contact number row belonging to a debtor.
type DebtorPhoneModel struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key"`
	DebtorID uuid.UUID `gorm:"type:uuid;not null;index"`
	Number   string    `gorm:"type:varchar(50);not null"`
}

// TableName returns the table name for GORM
func (DebtorPhoneModel) TableName() string {
	return "debtor_phone_numbers"
}

// ToDomain converts the persistence model to a domain Debtor entity.
func (m *DebtorModel) ToDomain() *debtor.Debtor {
	d := &debtor.Debtor{
		Name:         m.Name,
		Address:      m.Address,
		Note:         m.Note,
		Role:         m.Role,
		PhoneNumbers: make([]debtor.PhoneNumber, len(m.Phones)),
		Images:       make([]string, 0),
	}
	m.PopulateSellerAggregateRoot(&d.SellerAggregateRoot)

	for i, p := range m.Phones {
		d.PhoneNumbers[i] = debtor.PhoneNumber{ID: p.ID, Number: p.Number}
	}

	if m.ImagesJSON != "" && m.ImagesJSON != "[]" {
		var images []string
		if err := json.Unmarshal([]byte(m.ImagesJSON), &images); err != nil {
			modelLogger.Warn("failed to parse debtor images JSON",
				zap.String("debtor_id", m.ID.String()),
				zap.Error(err))
		} else {
			d.Images = images
		}
	}

	return d
}

// FromDomain populates the persistence model from a domain Debtor entity.
func (m *DebtorModel) FromDomain(d *debtor.Debtor) {
	m.FromDomainSellerAggregateRoot(d.SellerAggregateRoot)
	m.Name = d.Name
	m.Address = d.Address
	m.Note = d.Note
	m.Role = d.Role
	m.ImagesJSON = marshalStringList(d.Images)

	m.Phones = make([]DebtorPhoneModel, len(d.PhoneNumbers))
	for i, p := range d.PhoneNumbers {
		m.Phones[i] = DebtorPhoneModel{
			ID:       p.ID,
			DebtorID: d.ID,
			Number:   p.Number,
		}
	}
}

// DebtorModelFromDomain creates a new persistence model from a domain Debtor entity.
func DebtorModelFromDomain(d *debtor.Debtor) *DebtorModel {
	m := &DebtorModel{}
	m.FromDomain(d)
	return m
}

func marshalStringList(values []string) string {
	if len(values) == 0 {
		return "[]"
	}
	jsonBytes, err := json.Marshal(values)
	if err != nil {
		return "[]"
	}
	return string(jsonBytes)
}
