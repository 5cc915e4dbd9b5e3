package channel

import (
	"github.com/DesarrolladorTAE/Clic-Menu-sub000/internal/domain/shared"
	"github.com/google/uuid"
)

// Event types for the channel context
const (
	EventTypeBranchChannelCreated = "channel.branch_channel.created"
	EventTypeBranchChannelToggled = "channel.branch_channel.toggled"
	EventTypeChannelPricesUpdated = "channel.prices.updated"
)

// BranchChannelCreatedEvent is published when a sales channel is
// activated at a branch
type BranchChannelCreatedEvent struct {
	shared.BaseDomainEvent
	BranchID       uuid.UUID `json:"branch_id"`
	SalesChannelID uuid.UUID `json:"sales_channel_id"`
	Name           string    `json:"name"`
}

// NewBranchChannelCreatedEvent creates a new branch channel created event
func NewBranchChannelCreatedEvent(bc *BranchSalesChannel) *BranchChannelCreatedEvent {
	return &BranchChannelCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBranchChannelCreated, "BranchSalesChannel", bc.ID, bc.RestaurantID),
		BranchID:        bc.BranchID,
		SalesChannelID:  bc.SalesChannelID,
		Name:            bc.Name,
	}
}

// BranchChannelToggledEvent is published when the branch-level kill
// switch flips
type BranchChannelToggledEvent struct {
	shared.BaseDomainEvent
	BranchID uuid.UUID `json:"branch_id"`
	IsActive bool      `json:"is_active"`
}

// NewBranchChannelToggledEvent creates a new branch channel toggled event
func NewBranchChannelToggledEvent(bc *BranchSalesChannel) *BranchChannelToggledEvent {
	return &BranchChannelToggledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBranchChannelToggled, "BranchSalesChannel", bc.ID, bc.RestaurantID),
		BranchID:        bc.BranchID,
		IsActive:        bc.IsActive,
	}
}

// ChannelPricesUpdatedEvent is published after a bulk price write
// commits, carrying the product whose resolution cache must be dropped
type ChannelPricesUpdatedEvent struct {
	shared.BaseDomainEvent
	ProductID uuid.UUID  `json:"product_id"`
	VariantID *uuid.UUID `json:"variant_id,omitempty"`
}

// NewChannelPricesUpdatedEvent creates a new channel prices updated event
func NewChannelPricesUpdatedEvent(restaurantID, productID uuid.UUID, variantID *uuid.UUID) *ChannelPricesUpdatedEvent {
	return &ChannelPricesUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeChannelPricesUpdated, "Product", productID, restaurantID),
		ProductID:       productID,
		VariantID:       variantID,
	}
}
