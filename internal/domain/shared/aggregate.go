package shared

import (
	"github.com/google/uuid"
)

// AggregateRoot is the base interface for all aggregate roots
type AggregateRoot interface {
	Entity
	GetVersion() int
	IncrementVersion()
}

// BaseAggregateRoot provides common fields for aggregate roots
type BaseAggregateRoot struct {
	BaseEntity
	Version int `gorm:"not null;default:1"`
}

// GetVersion returns the aggregate version for optimistic locking
func (a *BaseAggregateRoot) GetVersion() int {
	return a.Version
}

// IncrementVersion increments the version number
func (a *BaseAggregateRoot) IncrementVersion() {
	a.Version++
}

// NewBaseAggregateRoot creates a new base aggregate root
func NewBaseAggregateRoot() BaseAggregateRoot {
	return BaseAggregateRoot{
		BaseEntity: NewBaseEntity(),
		Version:    1,
	}
}

// SellerAggregateRoot extends BaseAggregateRoot with seller ownership.
// Every record a seller creates carries the owning seller's ID and all
// queries are scoped by it.
type SellerAggregateRoot struct {
	BaseAggregateRoot
	SellerID uuid.UUID `gorm:"type:uuid;not null;index"`
}

// NewSellerAggregateRoot creates a new seller-scoped aggregate root
func NewSellerAggregateRoot(sellerID uuid.UUID) SellerAggregateRoot {
	return SellerAggregateRoot{
		BaseAggregateRoot: NewBaseAggregateRoot(),
		SellerID:          sellerID,
	}
}

// GetSellerID returns the owning seller's ID
func (s *SellerAggregateRoot) GetSellerID() uuid.UUID {
	return s.SellerID
}
