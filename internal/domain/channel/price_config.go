package channel

import (
	"time"

	"github.com/DesarrolladorTAE/Clic-Menu-sub000/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// validatePriceRow enforces the rule shared by both price tiers: an
// enabled row must carry a non-negative price; a disabled row may omit it.
func validatePriceRow(isEnabled bool, price *decimal.Decimal) error {
	if isEnabled && price == nil {
		return shared.NewDomainError(shared.ErrCodeInvalidPrice, "An enabled channel price requires a price")
	}
	if price != nil && price.IsNegative() {
		return shared.NewDomainError(shared.ErrCodeInvalidPrice, "Channel price cannot be negative")
	}
	return nil
}

// ChannelPriceConfig is the product-tier price of a product on one
// branch sales channel. At most one row exists per (product, channel);
// it is the fallback when a variant has no override.
type ChannelPriceConfig struct {
	shared.RestaurantAggregateRoot
	ProductID            uuid.UUID        `gorm:"type:uuid;not null;index;uniqueIndex:idx_price_product_channel,priority:1"`
	BranchSalesChannelID uuid.UUID        `gorm:"type:uuid;not null;index;uniqueIndex:idx_price_product_channel,priority:2"`
	IsEnabled            bool             `gorm:"not null;default:false"`
	Price                *decimal.Decimal `gorm:"type:decimal(12,2)"`
}

// TableName returns the table name for GORM
func (ChannelPriceConfig) TableName() string {
	return "channel_price_configs"
}

// NewChannelPriceConfig creates a product-tier price row
func NewChannelPriceConfig(restaurantID, productID, branchSalesChannelID uuid.UUID, isEnabled bool, price *decimal.Decimal) (*ChannelPriceConfig, error) {
	if err := validatePriceRow(isEnabled, price); err != nil {
		return nil, err
	}

	return &ChannelPriceConfig{
		RestaurantAggregateRoot: shared.NewRestaurantAggregateRoot(restaurantID),
		ProductID:               productID,
		BranchSalesChannelID:    branchSalesChannelID,
		IsEnabled:               isEnabled,
		Price:                   price,
	}, nil
}

// Update replaces the enabled flag and price of the row
func (c *ChannelPriceConfig) Update(isEnabled bool, price *decimal.Decimal) error {
	if err := validatePriceRow(isEnabled, price); err != nil {
		return err
	}

	c.IsEnabled = isEnabled
	c.Price = price
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// VariantChannelOverride is the variant-tier price of one variant on
// one branch sales channel. Row presence means the variant overrides
// the product tier on that channel; row absence means it inherits.
type VariantChannelOverride struct {
	shared.RestaurantAggregateRoot
	VariantID            uuid.UUID        `gorm:"type:uuid;not null;index;uniqueIndex:idx_override_variant_channel,priority:1"`
	BranchSalesChannelID uuid.UUID        `gorm:"type:uuid;not null;index;uniqueIndex:idx_override_variant_channel,priority:2"`
	IsEnabled            bool             `gorm:"not null;default:false"`
	Price                *decimal.Decimal `gorm:"type:decimal(12,2)"`
}

// TableName returns the table name for GORM
func (VariantChannelOverride) TableName() string {
	return "variant_channel_overrides"
}

// NewVariantChannelOverride creates a variant-tier override row
func NewVariantChannelOverride(restaurantID, variantID, branchSalesChannelID uuid.UUID, isEnabled bool, price *decimal.Decimal) (*VariantChannelOverride, error) {
	if err := validatePriceRow(isEnabled, price); err != nil {
		return nil, err
	}

	return &VariantChannelOverride{
		RestaurantAggregateRoot: shared.NewRestaurantAggregateRoot(restaurantID),
		VariantID:               variantID,
		BranchSalesChannelID:    branchSalesChannelID,
		IsEnabled:               isEnabled,
		Price:                   price,
	}, nil
}

// Update replaces the enabled flag and price of the override
func (o *VariantChannelOverride) Update(isEnabled bool, price *decimal.Decimal) error {
	if err := validatePriceRow(isEnabled, price); err != nil {
		return err
	}

	o.IsEnabled = isEnabled
	o.Price = price
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return nil
}
