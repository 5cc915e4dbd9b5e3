package catalog

import (
	"sort"
	"strings"
	"time"

	"github.com/DesarrolladorTAE/Clic-Menu-sub000/internal/domain/shared"
	"github.com/google/uuid"
)

// SelectionPair identifies one (attribute, value) choice of a variant
type SelectionPair struct {
	AttributeID uuid.UUID
	ValueID     uuid.UUID
}

// SelectionKeyFor computes the structural identity of a selection set:
// the sorted (attribute_id, value_id) pairs joined into one string.
// Two variants of the same product may never share a selection key; the
// database enforces this with a unique index so a concurrent duplicate
// insert is rejected rather than silently duplicated. Display names are
// derived and never used for equality.
func SelectionKeyFor(pairs []SelectionPair) string {
	sorted := make([]SelectionPair, len(pairs))
	copy(sorted, pairs)
	sort.Slice(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.AttributeID != b.AttributeID {
			return a.AttributeID.String() < b.AttributeID.String()
		}
		return a.ValueID.String() < b.ValueID.String()
	})

	parts := make([]string, len(sorted))
	for i, p := range sorted {
		parts[i] = p.AttributeID.String() + ":" + p.ValueID.String()
	}
	return strings.Join(parts, ";")
}

// validateSelectionPairs checks the structural invariant of a selection
// set: at least one pair and exactly one value per attribute.
func validateSelectionPairs(pairs []SelectionPair) error {
	if len(pairs) == 0 {
		return shared.NewDomainError(shared.ErrCodeValidation, "At least one attribute value must be selected")
	}
	seen := make(map[uuid.UUID]bool, len(pairs))
	for _, p := range pairs {
		if p.AttributeID == uuid.Nil || p.ValueID == uuid.Nil {
			return shared.NewDomainError(shared.ErrCodeValidation, "Selection references an empty attribute or value ID")
		}
		if seen[p.AttributeID] {
			return shared.NewDomainError(shared.ErrCodeValidation, "A variant can select only one value per attribute")
		}
		seen[p.AttributeID] = true
	}
	return nil
}

// VariantSelection is the persisted join row binding a variant to one
// (attribute, value) pair
type VariantSelection struct {
	shared.BaseEntity
	VariantID   uuid.UUID `gorm:"type:uuid;not null;index"`
	AttributeID uuid.UUID `gorm:"type:uuid;not null;index"`
	ValueID     uuid.UUID `gorm:"type:uuid;not null;index"`
}

// TableName returns the table name for GORM
func (VariantSelection) TableName() string {
	return "variant_selections"
}

// Variant represents one sellable combination of attribute values for a
// product. Its identity is the selection set, captured in SelectionKey.
type Variant struct {
	shared.RestaurantAggregateRoot
	ProductID     uuid.UUID          `gorm:"type:uuid;not null;index;uniqueIndex:idx_variant_product_selection,priority:1"`
	Name          string             `gorm:"type:varchar(300);not null"`
	SelectionKey  string             `gorm:"type:varchar(600);not null;uniqueIndex:idx_variant_product_selection,priority:2"`
	IsEnabled     bool               `gorm:"not null;default:false"`
	IsDefault     bool               `gorm:"not null;default:false"`
	IsInvalid     bool               `gorm:"not null;default:false"`
	InvalidReason *string            `gorm:"type:text"`
	Selections    []VariantSelection `gorm:"foreignKey:VariantID"`
}

// TableName returns the table name for GORM
func (Variant) TableName() string {
	return "product_variants"
}

// NewVariant creates a variant for the given product from a selection
// set. The name is derived by the caller (see DeriveVariantName) from
// the product name and value labels in attribute-selection order.
func NewVariant(restaurantID, productID uuid.UUID, name string, pairs []SelectionPair) (*Variant, error) {
	if err := validateSelectionPairs(pairs); err != nil {
		return nil, err
	}

	variant := &Variant{
		RestaurantAggregateRoot: shared.NewRestaurantAggregateRoot(restaurantID),
		ProductID:               productID,
		Name:                    name,
		SelectionKey:            SelectionKeyFor(pairs),
		Selections:              make([]VariantSelection, 0, len(pairs)),
	}
	for _, p := range pairs {
		variant.Selections = append(variant.Selections, VariantSelection{
			BaseEntity:  shared.NewBaseEntity(),
			VariantID:   variant.ID,
			AttributeID: p.AttributeID,
			ValueID:     p.ValueID,
		})
	}

	variant.AddDomainEvent(NewVariantCreatedEvent(variant))

	return variant, nil
}

// SelectionPairs returns the current selection set
func (v *Variant) SelectionPairs() []SelectionPair {
	pairs := make([]SelectionPair, len(v.Selections))
	for i, s := range v.Selections {
		pairs[i] = SelectionPair{AttributeID: s.AttributeID, ValueID: s.ValueID}
	}
	return pairs
}

// Enable makes the variant sellable. Invalid variants must be repaired first.
func (v *Variant) Enable() error {
	if v.IsInvalid {
		return shared.NewDomainError(shared.ErrCodePreconditionFailed, "An invalid variant cannot be enabled; repair it first")
	}

	v.IsEnabled = true
	v.UpdatedAt = time.Now()
	v.IncrementVersion()

	v.AddDomainEvent(NewVariantToggledEvent(v))

	return nil
}

// Disable stops the variant from being sellable
func (v *Variant) Disable() {
	v.IsEnabled = false
	v.UpdatedAt = time.Now()
	v.IncrementVersion()

	v.AddDomainEvent(NewVariantToggledEvent(v))
}

// MarkDefault marks the variant as the product default. The repository
// clears the previous default in the same transaction.
func (v *Variant) MarkDefault() error {
	if v.IsInvalid {
		return shared.NewDomainError(shared.ErrCodePreconditionFailed, "An invalid variant cannot be the default; repair it first")
	}

	v.IsDefault = true
	v.UpdatedAt = time.Now()
	v.IncrementVersion()

	return nil
}

// UnmarkDefault clears the default flag
func (v *Variant) UnmarkDefault() {
	v.IsDefault = false
	v.UpdatedAt = time.Now()
	v.IncrementVersion()
}

// Invalidate transitions the variant to the invalid state after one of
// its referenced attributes or values was deleted. It is forced off-sale
// and loses default status until repaired.
func (v *Variant) Invalidate(reason string) {
	v.IsInvalid = true
	v.InvalidReason = &reason
	v.IsEnabled = false
	v.IsDefault = false
	v.UpdatedAt = time.Now()
	v.IncrementVersion()

	v.AddDomainEvent(NewVariantInvalidatedEvent(v, reason))
}

// Repair replaces the selection set, clears the invalid state, and sets
// the enabled flag per the activate choice. Collision of the new
// selection key with another variant is checked by the caller against
// the repository before saving.
func (v *Variant) Repair(name string, pairs []SelectionPair, activate bool) error {
	if err := validateSelectionPairs(pairs); err != nil {
		return err
	}

	v.Name = name
	v.SelectionKey = SelectionKeyFor(pairs)
	v.Selections = make([]VariantSelection, 0, len(pairs))
	for _, p := range pairs {
		v.Selections = append(v.Selections, VariantSelection{
			BaseEntity:  shared.NewBaseEntity(),
			VariantID:   v.ID,
			AttributeID: p.AttributeID,
			ValueID:     p.ValueID,
		})
	}
	v.IsInvalid = false
	v.InvalidReason = nil
	v.IsEnabled = activate
	v.UpdatedAt = time.Now()
	v.IncrementVersion()

	v.AddDomainEvent(NewVariantRepairedEvent(v))

	return nil
}

// IsPurchasable reports whether the variant itself allows sale. Channel
// resolution applies on top of this.
func (v *Variant) IsPurchasable() bool {
	return !v.IsInvalid && v.IsEnabled
}

// DeriveVariantName builds the display name of a variant: the product
// name followed by the value labels in attribute-selection order.
func DeriveVariantName(productName string, labels []string) string {
	if len(labels) == 0 {
		return productName
	}
	return productName + " - " + strings.Join(labels, " / ")
}
