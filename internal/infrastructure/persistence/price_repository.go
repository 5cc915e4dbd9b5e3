package persistence

import (
	"context"
	"errors"

	"github.com/DesarrolladorTAE/Clic-Menu-sub000/internal/domain/channel"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPriceRepository implements PriceRepository using GORM
type GormPriceRepository struct {
	db *gorm.DB
}

// NewGormPriceRepository creates a new GormPriceRepository
func NewGormPriceRepository(db *gorm.DB) *GormPriceRepository {
	return &GormPriceRepository{db: db}
}

// FindProductConfigs returns the product-tier rows of a product
func (r *GormPriceRepository) FindProductConfigs(ctx context.Context, restaurantID, productID uuid.UUID, channelIDs []uuid.UUID) ([]channel.ChannelPriceConfig, error) {
	query := r.db.WithContext(ctx).
		Where("restaurant_id = ? AND product_id = ?", restaurantID, productID)
	if len(channelIDs) > 0 {
		query = query.Where("branch_sales_channel_id IN ?", channelIDs)
	}

	var configs []channel.ChannelPriceConfig
	if err := query.Find(&configs).Error; err != nil {
		return nil, err
	}
	return configs, nil
}

// HasEnabledProductConfig reports whether the product has at least one
// enabled product-tier price row
func (r *GormPriceRepository) HasEnabledProductConfig(ctx context.Context, restaurantID, productID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&channel.ChannelPriceConfig{}).
		Where("restaurant_id = ? AND product_id = ? AND is_enabled = ?", restaurantID, productID, true).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindVariantOverrides returns the variant-tier rows of a variant
func (r *GormPriceRepository) FindVariantOverrides(ctx context.Context, restaurantID, variantID uuid.UUID, channelIDs []uuid.UUID) ([]channel.VariantChannelOverride, error) {
	query := r.db.WithContext(ctx).
		Where("restaurant_id = ? AND variant_id = ?", restaurantID, variantID)
	if len(channelIDs) > 0 {
		query = query.Where("branch_sales_channel_id IN ?", channelIDs)
	}

	var overrides []channel.VariantChannelOverride
	if err := query.Find(&overrides).Error; err != nil {
		return nil, err
	}
	return overrides, nil
}

// ApplyProductWrites upserts and deletes product-tier rows in one transaction
func (r *GormPriceRepository) ApplyProductWrites(ctx context.Context, restaurantID, productID uuid.UUID, writes []channel.PriceWrite) error {
	if len(writes) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, write := range writes {
			if write.Remove {
				if err := tx.Where("product_id = ? AND branch_sales_channel_id = ?", productID, write.BranchSalesChannelID).
					Delete(&channel.ChannelPriceConfig{}).Error; err != nil {
					return err
				}
				continue
			}

			var existing channel.ChannelPriceConfig
			err := tx.Where("product_id = ? AND branch_sales_channel_id = ?", productID, write.BranchSalesChannelID).
				First(&existing).Error
			switch {
			case err == nil:
				if err := existing.Update(write.IsEnabled, write.Price); err != nil {
					return err
				}
				if err := tx.Save(&existing).Error; err != nil {
					return err
				}
			case errors.Is(err, gorm.ErrRecordNotFound):
				config, err := channel.NewChannelPriceConfig(restaurantID, productID, write.BranchSalesChannelID, write.IsEnabled, write.Price)
				if err != nil {
					return err
				}
				if err := tx.Create(config).Error; err != nil {
					return err
				}
			default:
				return err
			}
		}
		return nil
	})
}

// ApplyVariantWrites upserts and deletes variant-tier rows in one transaction
func (r *GormPriceRepository) ApplyVariantWrites(ctx context.Context, restaurantID, variantID uuid.UUID, writes []channel.PriceWrite) error {
	if len(writes) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, write := range writes {
			if write.Remove {
				if err := tx.Where("variant_id = ? AND branch_sales_channel_id = ?", variantID, write.BranchSalesChannelID).
					Delete(&channel.VariantChannelOverride{}).Error; err != nil {
					return err
				}
				continue
			}

			var existing channel.VariantChannelOverride
			err := tx.Where("variant_id = ? AND branch_sales_channel_id = ?", variantID, write.BranchSalesChannelID).
				First(&existing).Error
			switch {
			case err == nil:
				if err := existing.Update(write.IsEnabled, write.Price); err != nil {
					return err
				}
				if err := tx.Save(&existing).Error; err != nil {
					return err
				}
			case errors.Is(err, gorm.ErrRecordNotFound):
				override, err := channel.NewVariantChannelOverride(restaurantID, variantID, write.BranchSalesChannelID, write.IsEnabled, write.Price)
				if err != nil {
					return err
				}
				if err := tx.Create(override).Error; err != nil {
					return err
				}
			default:
				return err
			}
		}
		return nil
	})
}

// Ensure GormPriceRepository implements PriceRepository
var _ channel.PriceRepository = (*GormPriceRepository)(nil)
