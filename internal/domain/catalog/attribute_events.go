package catalog

import (
	"github.com/DesarrolladorTAE/Clic-Menu-sub000/internal/domain/shared"
	"github.com/google/uuid"
)

// Event types for attribute aggregates
const (
	EventTypeAttributeCreated      = "catalog.attribute.created"
	EventTypeAttributeUpdated      = "catalog.attribute.updated"
	EventTypeAttributeDeleted      = "catalog.attribute.deleted"
	EventTypeAttributeValueAdded   = "catalog.attribute.value_added"
	EventTypeAttributeValueRemoved = "catalog.attribute.value_removed"
)

// AttributeCreatedEvent is published when an attribute is created
type AttributeCreatedEvent struct {
	shared.BaseDomainEvent
	Name string `json:"name"`
}

// NewAttributeCreatedEvent creates a new AttributeCreatedEvent
func NewAttributeCreatedEvent(attribute *Attribute) *AttributeCreatedEvent {
	return &AttributeCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAttributeCreated, "Attribute", attribute.ID, attribute.RestaurantID),
		Name:            attribute.Name,
	}
}

// AttributeUpdatedEvent is published when an attribute is renamed or its
// status changes
type AttributeUpdatedEvent struct {
	shared.BaseDomainEvent
	Name   string `json:"name"`
	Status string `json:"status"`
}

// NewAttributeUpdatedEvent creates a new AttributeUpdatedEvent
func NewAttributeUpdatedEvent(attribute *Attribute) *AttributeUpdatedEvent {
	return &AttributeUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAttributeUpdated, "Attribute", attribute.ID, attribute.RestaurantID),
		Name:            attribute.Name,
		Status:          string(attribute.Status),
	}
}

// AttributeDeletedEvent is published when an attribute is deleted.
// Deletion cascades invalidation to dependent variants.
type AttributeDeletedEvent struct {
	shared.BaseDomainEvent
	Name string `json:"name"`
}

// NewAttributeDeletedEvent creates a new AttributeDeletedEvent
func NewAttributeDeletedEvent(attribute *Attribute) *AttributeDeletedEvent {
	return &AttributeDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAttributeDeleted, "Attribute", attribute.ID, attribute.RestaurantID),
		Name:            attribute.Name,
	}
}

// AttributeValueAddedEvent is published when a value is added
type AttributeValueAddedEvent struct {
	shared.BaseDomainEvent
	ValueID uuid.UUID `json:"value_id"`
	Label   string    `json:"label"`
}

// NewAttributeValueAddedEvent creates a new AttributeValueAddedEvent
func NewAttributeValueAddedEvent(attribute *Attribute, value *AttributeValue) *AttributeValueAddedEvent {
	return &AttributeValueAddedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAttributeValueAdded, "Attribute", attribute.ID, attribute.RestaurantID),
		ValueID:         value.ID,
		Label:           value.Label,
	}
}

// AttributeValueRemovedEvent is published when a value is removed.
// Removal cascades invalidation to dependent variants.
type AttributeValueRemovedEvent struct {
	shared.BaseDomainEvent
	ValueID uuid.UUID `json:"value_id"`
	Label   string    `json:"label"`
}

// NewAttributeValueRemovedEvent creates a new AttributeValueRemovedEvent
func NewAttributeValueRemovedEvent(attribute *Attribute, value *AttributeValue) *AttributeValueRemovedEvent {
	return &AttributeValueRemovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAttributeValueRemoved, "Attribute", attribute.ID, attribute.RestaurantID),
		ValueID:         value.ID,
		Label:           value.Label,
	}
}
