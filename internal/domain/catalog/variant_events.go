package catalog

import (
	"github.com/DesarrolladorTAE/Clic-Menu-sub000/internal/domain/shared"
	"github.com/google/uuid"
)

// Event types for variant aggregates
const (
	EventTypeVariantCreated     = "catalog.variant.created"
	EventTypeVariantToggled     = "catalog.variant.toggled"
	EventTypeVariantInvalidated = "catalog.variant.invalidated"
	EventTypeVariantRepaired    = "catalog.variant.repaired"
	EventTypeVariantDeleted     = "catalog.variant.deleted"
)

// VariantCreatedEvent is published when a variant is generated
type VariantCreatedEvent struct {
	shared.BaseDomainEvent
	ProductID    uuid.UUID `json:"product_id"`
	Name         string    `json:"name"`
	SelectionKey string    `json:"selection_key"`
}

// NewVariantCreatedEvent creates a new VariantCreatedEvent
func NewVariantCreatedEvent(variant *Variant) *VariantCreatedEvent {
	return &VariantCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeVariantCreated, "Variant", variant.ID, variant.RestaurantID),
		ProductID:       variant.ProductID,
		Name:            variant.Name,
		SelectionKey:    variant.SelectionKey,
	}
}

// VariantToggledEvent is published when a variant is enabled or disabled
type VariantToggledEvent struct {
	shared.BaseDomainEvent
	ProductID uuid.UUID `json:"product_id"`
	IsEnabled bool      `json:"is_enabled"`
}

// NewVariantToggledEvent creates a new VariantToggledEvent
func NewVariantToggledEvent(variant *Variant) *VariantToggledEvent {
	return &VariantToggledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeVariantToggled, "Variant", variant.ID, variant.RestaurantID),
		ProductID:       variant.ProductID,
		IsEnabled:       variant.IsEnabled,
	}
}

// VariantInvalidatedEvent is published when the validity tracker marks a
// variant invalid after an attribute or value deletion
type VariantInvalidatedEvent struct {
	shared.BaseDomainEvent
	ProductID uuid.UUID `json:"product_id"`
	Reason    string    `json:"reason"`
}

// NewVariantInvalidatedEvent creates a new VariantInvalidatedEvent
func NewVariantInvalidatedEvent(variant *Variant, reason string) *VariantInvalidatedEvent {
	return &VariantInvalidatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeVariantInvalidated, "Variant", variant.ID, variant.RestaurantID),
		ProductID:       variant.ProductID,
		Reason:          reason,
	}
}

// VariantRepairedEvent is published when a variant is repaired back to validity
type VariantRepairedEvent struct {
	shared.BaseDomainEvent
	ProductID    uuid.UUID `json:"product_id"`
	SelectionKey string    `json:"selection_key"`
	IsEnabled    bool      `json:"is_enabled"`
}

// NewVariantRepairedEvent creates a new VariantRepairedEvent
func NewVariantRepairedEvent(variant *Variant) *VariantRepairedEvent {
	return &VariantRepairedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeVariantRepaired, "Variant", variant.ID, variant.RestaurantID),
		ProductID:       variant.ProductID,
		SelectionKey:    variant.SelectionKey,
		IsEnabled:       variant.IsEnabled,
	}
}

// VariantDeletedEvent is published when a variant is deleted
type VariantDeletedEvent struct {
	shared.BaseDomainEvent
	ProductID uuid.UUID `json:"product_id"`
}

// NewVariantDeletedEvent creates a new VariantDeletedEvent
func NewVariantDeletedEvent(variant *Variant) *VariantDeletedEvent {
	return &VariantDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeVariantDeleted, "Variant", variant.ID, variant.RestaurantID),
		ProductID:       variant.ProductID,
	}
}
