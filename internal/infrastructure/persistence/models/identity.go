package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/nasiya/backend/internal/domain/identity"
	"github.com/nasiya/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// SellerModel is the persistence model for the Seller aggregate root.
type SellerModel struct {
	AggregateModel
	Login          string                `gorm:"type:varchar(50);not null;uniqueIndex"`
	PasswordHash   string                `gorm:"type:varchar(100);not null"`
	Name           string                `gorm:"type:varchar(200);not null"`
	Phone          string                `gorm:"type:varchar(50)"`
	ImageURL       string                `gorm:"type:text"`
	Balance        decimal.Decimal       `gorm:"type:decimal(18,2);not null;default:0"`
	Status         identity.SellerStatus `gorm:"type:varchar(20);not null;default:'active'"`
	LastLoginAt    *time.Time            `gorm:"type:timestamptz"`
	LastLoginIP    string                `gorm:"type:varchar(45)"`
	FailedAttempts int                   `gorm:"not null;default:0"`
	LockedUntil    *time.Time            `gorm:"type:timestamptz"`
}

// TableName returns the table name for GORM
func (SellerModel) TableName() string {
	return "sellers"
}

// ToDomain converts the persistence model to a domain Seller entity.
func (m *SellerModel) ToDomain() *identity.Seller {
	return &identity.Seller{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{
				ID:        m.ID,
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			},
			Version: m.Version,
		},
		Login:          m.Login,
		PasswordHash:   m.PasswordHash,
		Name:           m.Name,
		Phone:          m.Phone,
		ImageURL:       m.ImageURL,
		Balance:        m.Balance,
		Status:         m.Status,
		LastLoginAt:    m.LastLoginAt,
		LastLoginIP:    m.LastLoginIP,
		FailedAttempts: m.FailedAttempts,
		LockedUntil:    m.LockedUntil,
	}
}

// FromDomain populates the persistence model from a domain Seller entity.
func (m *SellerModel) FromDomain(s *identity.Seller) {
	m.FromDomainAggregateRoot(s.BaseAggregateRoot)
	m.Login = s.Login
	m.PasswordHash = s.PasswordHash
	m.Name = s.Name
	m.Phone = s.Phone
	m.ImageURL = s.ImageURL
	m.Balance = s.Balance
	m.Status = s.Status
	m.LastLoginAt = s.LastLoginAt
	m.LastLoginIP = s.LastLoginIP
	m.FailedAttempts = s.FailedAttempts
	m.LockedUntil = s.LockedUntil
}

// SellerModelFromDomain creates a new persistence model from a domain Seller entity.
func SellerModelFromDomain(s *identity.Seller) *SellerModel {
	m := &SellerModel{}
	m.FromDomain(s)
	return m
}

// WalletTransactionModel is the persistence model for the WalletTransaction entity.
type WalletTransactionModel struct {
	BaseModel
	SellerID uuid.UUID                      `gorm:"type:uuid;not null;index:idx_wallet_tx_seller_time,priority:1"`
	Type     identity.WalletTransactionType `gorm:"type:varchar(20);not null"`
	Amount   decimal.Decimal                `gorm:"type:decimal(18,2);not null"`
	Note     string                         `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (WalletTransactionModel) TableName() string {
	return "wallet_transactions"
}

// ToDomain converts the persistence model to a domain WalletTransaction entity.
func (m *WalletTransactionModel) ToDomain() *identity.WalletTransaction {
	return &identity.WalletTransaction{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		SellerID: m.SellerID,
		Type:     m.Type,
		Amount:   m.Amount,
		Note:     m.Note,
	}
}

// FromDomain populates the persistence model from a domain WalletTransaction entity.
func (m *WalletTransactionModel) FromDomain(t *identity.WalletTransaction) {
	m.FromDomainBaseEntity(t.BaseEntity)
	m.SellerID = t.SellerID
	m.Type = t.Type
	m.Amount = t.Amount
	m.Note = t.Note
}

// WalletTransactionModelFromDomain creates a new persistence model from a domain WalletTransaction entity.
func WalletTransactionModelFromDomain(t *identity.WalletTransaction) *WalletTransactionModel {
	m := &WalletTransactionModel{}
	m.FromDomain(t)
	return m
}
