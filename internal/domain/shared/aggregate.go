package shared

import (
	"github.com/google/uuid"
)

// BaseAggregateRoot adds optimistic-lock versioning and domain event
// recording on top of BaseEntity.
type BaseAggregateRoot struct {
	BaseEntity
	Version      int           `gorm:"not null;default:1"`
	domainEvents []DomainEvent `gorm:"-"`
}

// NewBaseAggregateRoot starts an aggregate at version 1.
func NewBaseAggregateRoot() BaseAggregateRoot {
	return BaseAggregateRoot{
		BaseEntity:   NewBaseEntity(),
		Version:      1,
		domainEvents: make([]DomainEvent, 0),
	}
}

// IncrementVersion bumps the optimistic-lock version. Aggregates call it on
// every state change.
func (a *BaseAggregateRoot) IncrementVersion() {
	a.Version++
}

// AddDomainEvent records an event raised by the aggregate.
func (a *BaseAggregateRoot) AddDomainEvent(event DomainEvent) {
	a.domainEvents = append(a.domainEvents, event)
}

// GetDomainEvents returns the events recorded since the aggregate was loaded.
func (a *BaseAggregateRoot) GetDomainEvents() []DomainEvent {
	return a.domainEvents
}

// RestaurantAggregateRoot scopes an aggregate to its owning restaurant.
// Every catalog and channel aggregate is owned by exactly one restaurant.
type RestaurantAggregateRoot struct {
	BaseAggregateRoot
	RestaurantID uuid.UUID  `gorm:"type:uuid;not null;index"`
	CreatedBy    *uuid.UUID `gorm:"type:uuid;index"`
}

// NewRestaurantAggregateRoot creates an aggregate owned by restaurantID.
func NewRestaurantAggregateRoot(restaurantID uuid.UUID) RestaurantAggregateRoot {
	return RestaurantAggregateRoot{
		BaseAggregateRoot: NewBaseAggregateRoot(),
		RestaurantID:      restaurantID,
	}
}

// SetCreatedBy records the staff user who created the record.
func (r *RestaurantAggregateRoot) SetCreatedBy(userID uuid.UUID) {
	r.CreatedBy = &userID
}
