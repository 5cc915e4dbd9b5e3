package catalog

import (
	"fmt"
	"sort"
	"time"

	"github.com/DesarrolladorTAE/Clic-Menu-sub000/internal/domain/shared"
	"github.com/google/uuid"
)

// AttributeStatus represents the activation state of an attribute or value
type AttributeStatus string

const (
	AttributeStatusActive   AttributeStatus = "active"
	AttributeStatusInactive AttributeStatus = "inactive"
)

// Attribute represents a variant attribute (e.g. "Size") and owns its
// ordered values. It is the aggregate root for the attribute catalog.
//
// Deactivating an attribute or value keeps existing variants intact and
// only excludes it from future generation runs. Deleting cascades: every
// variant whose selection references the deleted entity is invalidated
// in the same transaction (see AttributeRepository).
type Attribute struct {
	shared.RestaurantAggregateRoot
	Name   string           `gorm:"type:varchar(100);not null;uniqueIndex:idx_attribute_restaurant_name,priority:2"`
	Status AttributeStatus  `gorm:"type:varchar(20);not null;default:'active'"`
	Values []AttributeValue `gorm:"foreignKey:AttributeID"`
}

// TableName returns the table name for GORM
func (Attribute) TableName() string {
	return "attributes"
}

// AttributeValue is a child entity of Attribute: one selectable option
// label with a display position. SortOrder drives display ordering and
// reorder-by-swap; it is never used for identity.
type AttributeValue struct {
	shared.BaseEntity
	AttributeID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Label       string          `gorm:"type:varchar(100);not null"`
	SortOrder   int             `gorm:"not null;default:1"`
	Status      AttributeStatus `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (AttributeValue) TableName() string {
	return "attribute_values"
}

// IsActive returns true if the value is active
func (v *AttributeValue) IsActive() bool {
	return v.Status == AttributeStatusActive
}

// NewAttribute creates a new attribute with no values
func NewAttribute(restaurantID uuid.UUID, name string) (*Attribute, error) {
	if err := validateAttributeName(name); err != nil {
		return nil, err
	}

	attribute := &Attribute{
		RestaurantAggregateRoot: shared.NewRestaurantAggregateRoot(restaurantID),
		Name:                    name,
		Status:                  AttributeStatusActive,
		Values:                  make([]AttributeValue, 0),
	}

	attribute.AddDomainEvent(NewAttributeCreatedEvent(attribute))

	return attribute, nil
}

// Rename changes the attribute name. Uniqueness within the restaurant is
// checked by the application service before saving.
func (a *Attribute) Rename(name string) error {
	if err := validateAttributeName(name); err != nil {
		return err
	}

	a.Name = name
	a.UpdatedAt = time.Now()
	a.IncrementVersion()

	a.AddDomainEvent(NewAttributeUpdatedEvent(a))

	return nil
}

// Activate activates the attribute
func (a *Attribute) Activate() error {
	if a.Status == AttributeStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Attribute is already active")
	}

	a.Status = AttributeStatusActive
	a.UpdatedAt = time.Now()
	a.IncrementVersion()

	a.AddDomainEvent(NewAttributeUpdatedEvent(a))

	return nil
}

// Deactivate deactivates the attribute without touching dependent variants
func (a *Attribute) Deactivate() error {
	if a.Status == AttributeStatusInactive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Attribute is already inactive")
	}

	a.Status = AttributeStatusInactive
	a.UpdatedAt = time.Now()
	a.IncrementVersion()

	a.AddDomainEvent(NewAttributeUpdatedEvent(a))

	return nil
}

// IsActive returns true if the attribute is active
func (a *Attribute) IsActive() bool {
	return a.Status == AttributeStatusActive
}

// AddValue appends a new value. The new value takes the position after
// the current maximum, or 1 when the attribute has no values yet.
func (a *Attribute) AddValue(label string) (*AttributeValue, error) {
	if err := validateValueLabel(label); err != nil {
		return nil, err
	}

	maxOrder := 0
	for _, v := range a.Values {
		if v.SortOrder > maxOrder {
			maxOrder = v.SortOrder
		}
	}

	value := AttributeValue{
		BaseEntity:  shared.NewBaseEntity(),
		AttributeID: a.ID,
		Label:       label,
		SortOrder:   maxOrder + 1,
		Status:      AttributeStatusActive,
	}
	a.Values = append(a.Values, value)
	a.UpdatedAt = time.Now()
	a.IncrementVersion()

	a.AddDomainEvent(NewAttributeValueAddedEvent(a, &value))

	return &a.Values[len(a.Values)-1], nil
}

// UpdateValue changes the label of an existing value
func (a *Attribute) UpdateValue(valueID uuid.UUID, label string) error {
	if err := validateValueLabel(label); err != nil {
		return err
	}

	for i := range a.Values {
		if a.Values[i].ID == valueID {
			a.Values[i].Label = label
			a.Values[i].UpdatedAt = time.Now()
			a.UpdatedAt = time.Now()
			a.IncrementVersion()
			return nil
		}
	}
	return shared.ErrNotFound
}

// ActivateValue activates a value
func (a *Attribute) ActivateValue(valueID uuid.UUID) error {
	return a.setValueStatus(valueID, AttributeStatusActive)
}

// DeactivateValue deactivates a value. Dependent variants stay valid;
// the value is only excluded from future generation runs.
func (a *Attribute) DeactivateValue(valueID uuid.UUID) error {
	return a.setValueStatus(valueID, AttributeStatusInactive)
}

func (a *Attribute) setValueStatus(valueID uuid.UUID, status AttributeStatus) error {
	for i := range a.Values {
		if a.Values[i].ID == valueID {
			a.Values[i].Status = status
			a.Values[i].UpdatedAt = time.Now()
			a.UpdatedAt = time.Now()
			a.IncrementVersion()
			return nil
		}
	}
	return shared.ErrNotFound
}

// RemoveValue detaches a value from the aggregate and returns it.
// Persisting the removal and cascading invalidation to dependent
// variants is the repository's responsibility.
func (a *Attribute) RemoveValue(valueID uuid.UUID) (*AttributeValue, error) {
	for i := range a.Values {
		if a.Values[i].ID == valueID {
			removed := a.Values[i]
			a.Values = append(a.Values[:i], a.Values[i+1:]...)
			a.UpdatedAt = time.Now()
			a.IncrementVersion()

			a.AddDomainEvent(NewAttributeValueRemovedEvent(a, &removed))

			return &removed, nil
		}
	}
	return nil, shared.ErrNotFound
}

// SwapValueOrder exchanges the sort positions of two values
func (a *Attribute) SwapValueOrder(firstID, secondID uuid.UUID) error {
	if firstID == secondID {
		return shared.NewDomainError(shared.ErrCodeValidation, "Cannot swap a value with itself")
	}

	first, second := -1, -1
	for i := range a.Values {
		switch a.Values[i].ID {
		case firstID:
			first = i
		case secondID:
			second = i
		}
	}
	if first < 0 || second < 0 {
		return shared.ErrNotFound
	}

	a.Values[first].SortOrder, a.Values[second].SortOrder = a.Values[second].SortOrder, a.Values[first].SortOrder
	now := time.Now()
	a.Values[first].UpdatedAt = now
	a.Values[second].UpdatedAt = now
	a.UpdatedAt = now
	a.IncrementVersion()

	return nil
}

// FindValue returns the value with the given ID, or nil
func (a *Attribute) FindValue(valueID uuid.UUID) *AttributeValue {
	for i := range a.Values {
		if a.Values[i].ID == valueID {
			return &a.Values[i]
		}
	}
	return nil
}

// ActiveValues returns the active values ordered by sort position
func (a *Attribute) ActiveValues() []AttributeValue {
	values := make([]AttributeValue, 0, len(a.Values))
	for _, v := range a.Values {
		if v.IsActive() {
			values = append(values, v)
		}
	}
	sort.SliceStable(values, func(i, j int) bool {
		return values[i].SortOrder < values[j].SortOrder
	})
	return values
}

// InvalidReasonAttributeRemoved builds the reason recorded on variants
// invalidated by an attribute deletion.
func InvalidReasonAttributeRemoved(name string) string {
	return fmt.Sprintf("Attribute %q was removed", name)
}

// InvalidReasonValueRemoved builds the reason recorded on variants
// invalidated by a value deletion.
func InvalidReasonValueRemoved(attributeName, label string) string {
	return fmt.Sprintf("Option %q of attribute %q was removed", label, attributeName)
}

// validateAttributeName validates the attribute name
func validateAttributeName(name string) error {
	if name == "" {
		return shared.NewDomainError(shared.ErrCodeValidation, "Attribute name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError(shared.ErrCodeValidation, "Attribute name cannot exceed 100 characters")
	}
	return nil
}

// validateValueLabel validates a value label
func validateValueLabel(label string) error {
	if label == "" {
		return shared.NewDomainError(shared.ErrCodeValidation, "Value label cannot be empty")
	}
	if len(label) > 100 {
		return shared.NewDomainError(shared.ErrCodeValidation, "Value label cannot exceed 100 characters")
	}
	return nil
}
