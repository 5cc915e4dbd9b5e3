package channel

import (
	"time"

	"github.com/DesarrolladorTAE/Clic-Menu-sub000/internal/domain/shared"
	"github.com/google/uuid"
)

// BranchSalesChannel is the activation of one sales channel (dine-in,
// pickup, delivery app, ...) at one branch. It acts as the kill switch
// for everything priced through it: when inactive, resolution hides
// every product and variant on the channel regardless of price rows.
type BranchSalesChannel struct {
	shared.RestaurantAggregateRoot
	BranchID       uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_branch_channel,priority:1"`
	SalesChannelID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_branch_channel,priority:2"`
	Name           string    `gorm:"type:varchar(100);not null"`
	IsActive       bool      `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (BranchSalesChannel) TableName() string {
	return "branch_sales_channels"
}

// NewBranchSalesChannel activates a sales channel at a branch
func NewBranchSalesChannel(restaurantID, branchID, salesChannelID uuid.UUID, name string) (*BranchSalesChannel, error) {
	if name == "" {
		return nil, shared.NewDomainError(shared.ErrCodeValidation, "Channel name cannot be empty")
	}
	if branchID == uuid.Nil || salesChannelID == uuid.Nil {
		return nil, shared.NewDomainError(shared.ErrCodeValidation, "Branch and sales channel IDs are required")
	}

	bc := &BranchSalesChannel{
		RestaurantAggregateRoot: shared.NewRestaurantAggregateRoot(restaurantID),
		BranchID:                branchID,
		SalesChannelID:          salesChannelID,
		Name:                    name,
		IsActive:                true,
	}

	bc.AddDomainEvent(NewBranchChannelCreatedEvent(bc))

	return bc, nil
}

// SetActive toggles the channel at this branch. Price rows are kept so
// reactivation restores the previous configuration.
func (bc *BranchSalesChannel) SetActive(active bool) {
	if bc.IsActive == active {
		return
	}

	bc.IsActive = active
	bc.UpdatedAt = time.Now()
	bc.IncrementVersion()

	bc.AddDomainEvent(NewBranchChannelToggledEvent(bc))
}
