package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/nasiya/backend/internal/domain/loan"
	"github.com/nasiya/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// BorrowedProductModel is the persistence model for the BorrowedProduct aggregate root.
type BorrowedProductModel struct {
	SellerAggregateModel
	DebtorID     uuid.UUID          `gorm:"type:uuid;not null;index"`
	ProductName  string             `gorm:"type:varchar(200);not null"`
	Note         string             `gorm:"type:text"`
	TotalAmount  decimal.Decimal    `gorm:"type:decimal(18,2);not null"`
	TermMonths   int                `gorm:"not null"`
	MonthPayment decimal.Decimal    `gorm:"type:decimal(18,2);not null"`
	PaidAmount   decimal.Decimal    `gorm:"type:decimal(18,2);not null;default:0"`
	StartDate    time.Time          `gorm:"type:timestamptz;not null;index"`
	ImagesJSON   string             `gorm:"column:images;type:jsonb;default:'[]'"`
	Status       loan.ProductStatus `gorm:"type:varchar(20);not null;default:'active';index"`
}

// TableName returns the table name for GORM
func (BorrowedProductModel) TableName() string {
	return "borrowed_products"
}

// ToDomain converts the persistence model to a domain BorrowedProduct entity.
func (m *BorrowedProductModel) ToDomain() *loan.BorrowedProduct {
	p := &loan.BorrowedProduct{
		DebtorID:     m.DebtorID,
		ProductName:  m.ProductName,
		Note:         m.Note,
		TotalAmount:  m.TotalAmount,
		TermMonths:   m.TermMonths,
		MonthPayment: m.MonthPayment,
		PaidAmount:   m.PaidAmount,
		StartDate:    m.StartDate,
		Images:       make([]string, 0),
		Status:       m.Status,
	}
	m.PopulateSellerAggregateRoot(&p.SellerAggregateRoot)

	if m.ImagesJSON != "" && m.ImagesJSON != "[]" {
		var images []string
		if err := json.Unmarshal([]byte(m.ImagesJSON), &images); err != nil {
			modelLogger.Warn("failed to parse product images JSON",
				zap.String("product_id", m.ID.String()),
				zap.Error(err))
		} else {
			p.Images = images
		}
	}

	return p
}

// FromDomain populates the persistence model from a domain BorrowedProduct entity.
func (m *BorrowedProductModel) FromDomain(p *loan.BorrowedProduct) {
	m.FromDomainSellerAggregateRoot(p.SellerAggregateRoot)
	m.DebtorID = p.DebtorID
	m.ProductName = p.ProductName
	m.Note = p.Note
	m.TotalAmount = p.TotalAmount
	m.TermMonths = p.TermMonths
	m.MonthPayment = p.MonthPayment
	m.PaidAmount = p.PaidAmount
	m.StartDate = p.StartDate
	m.ImagesJSON = marshalStringList(p.Images)
	m.Status = p.Status
}

// BorrowedProductModelFromDomain creates a new persistence model from a domain BorrowedProduct entity.
func BorrowedProductModelFromDomain(p *loan.BorrowedProduct) *BorrowedProductModel {
	m := &BorrowedProductModel{}
	m.FromDomain(p)
	return m
}

// PaymentRecordModel is the persistence model for the PaymentRecord entity.
type PaymentRecordModel struct {
	BaseModel
	SellerID   uuid.UUID       `gorm:"type:uuid;not null;index:idx_payment_seller_time,priority:1"`
	DebtorID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount     decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	MonthsJSON string          `gorm:"column:months;type:jsonb;default:'[]'"`
	Note       string          `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (PaymentRecordModel) TableName() string {
	return "payment_records"
}

// ToDomain converts the persistence model to a domain PaymentRecord entity.
func (m *PaymentRecordModel) ToDomain() *loan.PaymentRecord {
	r := &loan.PaymentRecord{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		SellerID:  m.SellerID,
		DebtorID:  m.DebtorID,
		ProductID: m.ProductID,
		Amount:    m.Amount,
		Months:    make([]int, 0),
		Note:      m.Note,
	}

	if m.MonthsJSON != "" && m.MonthsJSON != "[]" {
		var months []int
		if err := json.Unmarshal([]byte(m.MonthsJSON), &months); err != nil {
			modelLogger.Warn("failed to parse payment months JSON",
				zap.String("payment_id", m.ID.String()),
				zap.Error(err))
		} else {
			r.Months = months
		}
	}

	return r
}

// FromDomain populates the persistence model from a domain PaymentRecord entity.
func (m *PaymentRecordModel) FromDomain(r *loan.PaymentRecord) {
	m.FromDomainBaseEntity(r.BaseEntity)
	m.SellerID = r.SellerID
	m.DebtorID = r.DebtorID
	m.ProductID = r.ProductID
	m.Amount = r.Amount
	m.Note = r.Note

	if len(r.Months) > 0 {
		if jsonBytes, err := json.Marshal(r.Months); err == nil {
			m.MonthsJSON = string(jsonBytes)
		} else {
			m.MonthsJSON = "[]"
		}
	} else {
		m.MonthsJSON = "[]"
	}
}

// PaymentRecordModelFromDomain creates a new persistence model from a domain PaymentRecord entity.
func PaymentRecordModelFromDomain(r *loan.PaymentRecord) *PaymentRecordModel {
	m := &PaymentRecordModel{}
	m.FromDomain(r)
	return m
}
