package models

import (
	"github.com/google/uuid"
	"github.com/nasiya/backend/internal/domain/messaging"
	"github.com/nasiya/backend/internal/domain/shared"
)

// MessageReportModel is the persistence model for the MessageReport entity.
type MessageReportModel struct {
	BaseModel
	SellerID uuid.UUID `gorm:"type:uuid;not null;index:idx_msg_report_seller_time,priority:1"`
	DebtorID uuid.UUID `gorm:"type:uuid;not null;index"`
	Message  string    `gorm:"type:text;not null"`
	Sent     bool      `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (MessageReportModel) TableName() string {
	return "message_reports"
}

// ToDomain converts the persistence model to a domain MessageReport entity.
func (m *MessageReportModel) ToDomain() *messaging.MessageReport {
	return &messaging.MessageReport{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		SellerID: m.SellerID,
		DebtorID: m.DebtorID,
		Message:  m.Message,
		Sent:     m.Sent,
	}
}

// FromDomain populates the persistence model from a domain MessageReport entity.
func (m *MessageReportModel) FromDomain(r *messaging.MessageReport) {
	m.FromDomainBaseEntity(r.BaseEntity)
	m.SellerID = r.SellerID
	m.DebtorID = r.DebtorID
	m.Message = r.Message
	m.Sent = r.Sent
}

// MessageReportModelFromDomain creates a new persistence model from a domain MessageReport entity.
func MessageReportModelFromDomain(r *messaging.MessageReport) *MessageReportModel {
	m := &MessageReportModel{}
	m.FromDomain(r)
	return m
}

// MessageSampleModel is the persistence model for the MessageSample entity.
type MessageSampleModel struct {
	BaseModel
	SellerID uuid.UUID `gorm:"type:uuid;not null;index"`
	Text     string    `gorm:"type:varchar(1000);not null"`
}

// TableName returns the table name for GORM
func (MessageSampleModel) TableName() string {
	return "message_samples"
}

// ToDomain converts the persistence model to a domain MessageSample entity.
func (m *MessageSampleModel) ToDomain() *messaging.MessageSample {
	return &messaging.MessageSample{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		SellerID: m.SellerID,
		Text:     m.Text,
	}
}

// FromDomain populates the persistence model from a domain MessageSample entity.
func (m *MessageSampleModel) FromDomain(s *messaging.MessageSample) {
	m.FromDomainBaseEntity(s.BaseEntity)
	m.SellerID = s.SellerID
	m.Text = s.Text
}

// MessageSampleModelFromDomain creates a new persistence model from a domain MessageSample entity.
func MessageSampleModelFromDomain(s *messaging.MessageSample) *MessageSampleModel {
	m := &MessageSampleModel{}
	m.FromDomain(s)
	return m
}
