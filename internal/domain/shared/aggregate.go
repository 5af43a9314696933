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

// LandlordAggregateRoot extends BaseAggregateRoot with landlord scoping.
// Every query touching a landlord-scoped aggregate must carry the landlord
// id explicitly; there is no ambient scope.
type LandlordAggregateRoot struct {
	BaseAggregateRoot
	LandlordID uuid.UUID  `gorm:"type:uuid;not null;index"`
	CreatedBy  *uuid.UUID `gorm:"type:uuid;index"`
}

// NewLandlordAggregateRoot creates a new landlord-scoped aggregate root
func NewLandlordAggregateRoot(landlordID uuid.UUID) LandlordAggregateRoot {
	return LandlordAggregateRoot{
		BaseAggregateRoot: NewBaseAggregateRoot(),
		LandlordID:        landlordID,
	}
}

// SetCreatedBy sets the creator user ID
func (l *LandlordAggregateRoot) SetCreatedBy(userID uuid.UUID) {
	l.CreatedBy = &userID
}

// GetCreatedBy returns the creator user ID
func (l *LandlordAggregateRoot) GetCreatedBy() *uuid.UUID {
	return l.CreatedBy
}
