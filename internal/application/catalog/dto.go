package catalog

import (
	"sort"
	"time"

	"github.com/DesarrolladorTAE/Clic-Menu-sub000/internal/domain/catalog"
	"github.com/google/uuid"
)

// CreateAttributeRequest represents a request to create an attribute
type CreateAttributeRequest struct {
	Name      string               `json:"name" binding:"required,min=1,max=100"`
	CreatedBy *uuid.UUID           `json:"-"`
	Values    []CreateValueRequest `json:"values" binding:"omitempty,dive"`
}

// UpdateAttributeRequest represents a request to rename an attribute
type UpdateAttributeRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// CreateValueRequest represents a request to add a value to an attribute
type CreateValueRequest struct {
	Label string `json:"label" binding:"required,min=1,max=100"`
}

// UpdateValueRequest represents a request to relabel a value
type UpdateValueRequest struct {
	Label string `json:"label" binding:"required,min=1,max=100"`
}

// SwapValueOrderRequest represents a request to exchange the sort
// positions of two values of the same attribute
type SwapValueOrderRequest struct {
	ValueID      uuid.UUID `json:"value_id" binding:"required"`
	OtherValueID uuid.UUID `json:"other_value_id" binding:"required"`
}

// AttributeValueResponse represents an attribute value in API responses
type AttributeValueResponse struct {
	ID        uuid.UUID `json:"id"`
	Label     string    `json:"label"`
	SortOrder int       `json:"sort_order"`
	Status    string    `json:"status"`
}

// AttributeResponse represents an attribute in API responses
type AttributeResponse struct {
	ID        uuid.UUID                `json:"id"`
	Name      string                   `json:"name"`
	Status    string                   `json:"status"`
	Values    []AttributeValueResponse `json:"values"`
	CreatedAt time.Time                `json:"created_at"`
	UpdatedAt time.Time                `json:"updated_at"`
	Version   int                      `json:"version"`
}

// ToAttributeResponse converts a domain Attribute to AttributeResponse.
// Values are returned in display order.
func ToAttributeResponse(a *catalog.Attribute) AttributeResponse {
	values := make([]AttributeValueResponse, len(a.Values))
	for i, v := range a.Values {
		values[i] = AttributeValueResponse{
			ID:        v.ID,
			Label:     v.Label,
			SortOrder: v.SortOrder,
			Status:    string(v.Status),
		}
	}
	sort.Slice(values, func(i, j int) bool { return values[i].SortOrder < values[j].SortOrder })
	return AttributeResponse{
		ID:        a.ID,
		Name:      a.Name,
		Status:    string(a.Status),
		Values:    values,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
		Version:   a.Version,
	}
}

// ToAttributeResponses converts a slice of attributes
func ToAttributeResponses(attributes []catalog.Attribute) []AttributeResponse {
	responses := make([]AttributeResponse, len(attributes))
	for i := range attributes {
		responses[i] = ToAttributeResponse(&attributes[i])
	}
	return responses
}

// CreateProductRequest represents a request to create a product
type CreateProductRequest struct {
	Name      string     `json:"name" binding:"required,min=1,max=200"`
	SortOrder *int       `json:"sort_order"`
	CreatedBy *uuid.UUID `json:"-"`
}

// UpdateProductRequest represents a request to update a product
type UpdateProductRequest struct {
	Name      *string `json:"name" binding:"omitempty,min=1,max=200"`
	SortOrder *int    `json:"sort_order"`
	Status    *string `json:"status" binding:"omitempty,oneof=active inactive"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	SortOrder int       `json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Version   int       `json:"version"`
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:        p.ID,
		Name:      p.Name,
		Status:    string(p.Status),
		SortOrder: p.SortOrder,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
		Version:   p.Version,
	}
}

// SelectionRequest is one (attribute, value) pair of a variant selection
type SelectionRequest struct {
	AttributeID uuid.UUID `json:"attribute_id" binding:"required"`
	ValueID     uuid.UUID `json:"value_id" binding:"required"`
}

// GenerateVariantsRequest represents a request to generate variants
// from per-attribute value selections
type GenerateVariantsRequest struct {
	Selections []GenerateSelectionRequest `json:"selections" binding:"required,min=1,dive"`
	// Mode is "merge" (default) or "replace"
	Mode      string     `json:"mode" binding:"omitempty,oneof=replace merge"`
	CreatedBy *uuid.UUID `json:"-"`
}

// GenerateSelectionRequest is one attribute with its chosen values
type GenerateSelectionRequest struct {
	AttributeID uuid.UUID   `json:"attribute_id" binding:"required"`
	ValueIDs    []uuid.UUID `json:"value_ids" binding:"required,min=1"`
}

// GenerateVariantsResponse reports the outcome of a generation run
type GenerateVariantsResponse struct {
	Mode     string            `json:"mode"`
	Total    int               `json:"total"`
	Created  int               `json:"created"`
	Skipped  int               `json:"skipped"`
	Variants []VariantResponse `json:"variants"`
}

// PreviewVariantsResponse lists the names a generation run would create
type PreviewVariantsResponse struct {
	Total     int      `json:"total"`
	Names     []string `json:"names"`
	Truncated bool     `json:"truncated"`
}

// RepairVariantRequest represents a request to repair an invalid variant
type RepairVariantRequest struct {
	Selections []SelectionRequest `json:"selections" binding:"required,min=1,dive"`
	Activate   bool               `json:"activate"`
}

// SetVariantEnabledRequest toggles a variant on or off sale
type SetVariantEnabledRequest struct {
	IsEnabled bool `json:"is_enabled"`
}

// VariantSelectionResponse is one resolved pair of a variant selection
type VariantSelectionResponse struct {
	AttributeID   uuid.UUID `json:"attribute_id"`
	AttributeName string    `json:"attribute_name,omitempty"`
	ValueID       uuid.UUID `json:"value_id"`
	ValueLabel    string    `json:"value_label,omitempty"`
}

// VariantResponse represents a variant in API responses
type VariantResponse struct {
	ID            uuid.UUID                  `json:"id"`
	ProductID     uuid.UUID                  `json:"product_id"`
	Name          string                     `json:"name"`
	IsEnabled     bool                       `json:"is_enabled"`
	IsDefault     bool                       `json:"is_default"`
	IsInvalid     bool                       `json:"is_invalid"`
	InvalidReason *string                    `json:"invalid_reason,omitempty"`
	Selections    []VariantSelectionResponse `json:"selections"`
	CreatedAt     time.Time                  `json:"created_at"`
	UpdatedAt     time.Time                  `json:"updated_at"`
	Version       int                        `json:"version"`
}

// ToVariantResponse converts a domain Variant to VariantResponse
func ToVariantResponse(v *catalog.Variant) VariantResponse {
	selections := make([]VariantSelectionResponse, len(v.Selections))
	for i, s := range v.Selections {
		selections[i] = VariantSelectionResponse{
			AttributeID: s.AttributeID,
			ValueID:     s.ValueID,
		}
	}
	return VariantResponse{
		ID:            v.ID,
		ProductID:     v.ProductID,
		Name:          v.Name,
		IsEnabled:     v.IsEnabled,
		IsDefault:     v.IsDefault,
		IsInvalid:     v.IsInvalid,
		InvalidReason: v.InvalidReason,
		Selections:    selections,
		CreatedAt:     v.CreatedAt,
		UpdatedAt:     v.UpdatedAt,
		Version:       v.Version,
	}
}

// ToVariantResponses converts a slice of variants
func ToVariantResponses(variants []catalog.Variant) []VariantResponse {
	responses := make([]VariantResponse, len(variants))
	for i := range variants {
		responses[i] = ToVariantResponse(&variants[i])
	}
	return responses
}
