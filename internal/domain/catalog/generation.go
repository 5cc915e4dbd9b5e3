package catalog

import (
	"github.com/DesarrolladorTAE/Clic-Menu-sub000/internal/domain/shared"
	"github.com/google/uuid"
)

// DefaultMaxCombinations is the ceiling on the number of variants one
// generation run may produce. Checked before any mutation.
const DefaultMaxCombinations = 500

// DefaultPreviewLimit caps how many combination names a preview returns.
const DefaultPreviewLimit = 30

// DraftSelection is one entry of a generation draft: a chosen attribute
// and the value IDs picked for it, in pick order.
type DraftSelection struct {
	AttributeID uuid.UUID
	ValueIDs    []uuid.UUID
}

// GenerationDraft is the immutable selection state threaded through the
// generation flow (pick attribute, pick values, confirm). Transitions
// return a new draft and never mutate the receiver.
type GenerationDraft struct {
	productID  uuid.UUID
	selections []DraftSelection
}

// NewGenerationDraft creates an empty draft for a product
func NewGenerationDraft(productID uuid.UUID) GenerationDraft {
	return GenerationDraft{productID: productID}
}

// ProductID returns the product the draft generates for
func (d GenerationDraft) ProductID() uuid.UUID {
	return d.productID
}

// WithSelection returns a draft where the given attribute selects the
// given values. An existing entry for the attribute is replaced in
// place; a new attribute is appended, preserving pick order.
func (d GenerationDraft) WithSelection(attributeID uuid.UUID, valueIDs []uuid.UUID) GenerationDraft {
	next := GenerationDraft{
		productID:  d.productID,
		selections: make([]DraftSelection, 0, len(d.selections)+1),
	}
	replaced := false
	for _, s := range d.selections {
		if s.AttributeID == attributeID {
			next.selections = append(next.selections, DraftSelection{
				AttributeID: attributeID,
				ValueIDs:    append([]uuid.UUID(nil), valueIDs...),
			})
			replaced = true
			continue
		}
		next.selections = append(next.selections, s)
	}
	if !replaced {
		next.selections = append(next.selections, DraftSelection{
			AttributeID: attributeID,
			ValueIDs:    append([]uuid.UUID(nil), valueIDs...),
		})
	}
	return next
}

// WithoutAttribute returns a draft with the attribute entry removed
func (d GenerationDraft) WithoutAttribute(attributeID uuid.UUID) GenerationDraft {
	next := GenerationDraft{productID: d.productID}
	for _, s := range d.selections {
		if s.AttributeID != attributeID {
			next.selections = append(next.selections, s)
		}
	}
	return next
}

// Selections returns a copy of the draft's selections in pick order
func (d GenerationDraft) Selections() []DraftSelection {
	out := make([]DraftSelection, len(d.selections))
	copy(out, d.selections)
	return out
}

// CombinationCount returns the number of variants the draft would
// generate: the product of the per-attribute value counts.
func (d GenerationDraft) CombinationCount() int {
	return CombinationCount(d.selections)
}

// ValidateDraftSelections checks the structural rules of a selection
// list: at least one attribute, at least one value per attribute, and
// no attribute picked twice.
func ValidateDraftSelections(selections []DraftSelection) error {
	if len(selections) == 0 {
		return shared.NewDomainError(shared.ErrCodeValidation, "At least one attribute must be selected")
	}
	seen := make(map[uuid.UUID]bool, len(selections))
	for _, s := range selections {
		if s.AttributeID == uuid.Nil {
			return shared.NewDomainError(shared.ErrCodeValidation, "Selection references an empty attribute ID")
		}
		if seen[s.AttributeID] {
			return shared.NewDomainError(shared.ErrCodeValidation, "An attribute cannot be selected twice")
		}
		seen[s.AttributeID] = true
		if len(s.ValueIDs) == 0 {
			return shared.NewDomainError(shared.ErrCodeValidation, "Each selected attribute needs at least one value")
		}
		values := make(map[uuid.UUID]bool, len(s.ValueIDs))
		for _, v := range s.ValueIDs {
			if v == uuid.Nil {
				return shared.NewDomainError(shared.ErrCodeValidation, "Selection references an empty value ID")
			}
			if values[v] {
				return shared.NewDomainError(shared.ErrCodeValidation, "A value cannot be selected twice for the same attribute")
			}
			values[v] = true
		}
	}
	return nil
}

// CombinationCount returns the product of the per-attribute value
// counts, or 0 when no attribute is selected.
func CombinationCount(selections []DraftSelection) int {
	if len(selections) == 0 {
		return 0
	}
	count := 1
	for _, s := range selections {
		count *= len(s.ValueIDs)
	}
	return count
}

// ExpandCombinations computes the Cartesian product of the selected
// value lists in attribute pick order. Both the authoritative generation
// and the read-only preview go through this single function, so the
// preview can never diverge from the committed outcome.
func ExpandCombinations(selections []DraftSelection) [][]SelectionPair {
	if len(selections) == 0 {
		return nil
	}

	combos := [][]SelectionPair{{}}
	for _, s := range selections {
		next := make([][]SelectionPair, 0, len(combos)*len(s.ValueIDs))
		for _, combo := range combos {
			for _, valueID := range s.ValueIDs {
				extended := make([]SelectionPair, len(combo), len(combo)+1)
				copy(extended, combo)
				extended = append(extended, SelectionPair{
					AttributeID: s.AttributeID,
					ValueID:     valueID,
				})
				next = append(next, extended)
			}
		}
		combos = next
	}
	return combos
}
