package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/DesarrolladorTAE/Clic-Menu-sub000/internal/domain/catalog"
	"github.com/DesarrolladorTAE/Clic-Menu-sub000/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormAttributeRepository implements AttributeRepository using GORM
type GormAttributeRepository struct {
	db *gorm.DB
}

// NewGormAttributeRepository creates a new GormAttributeRepository
func NewGormAttributeRepository(db *gorm.DB) *GormAttributeRepository {
	return &GormAttributeRepository{db: db}
}

// FindByID finds an attribute with its values by ID
func (r *GormAttributeRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Attribute, error) {
	var attribute catalog.Attribute
	if err := r.db.WithContext(ctx).
		Preload("Values").
		First(&attribute, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &attribute, nil
}

// FindByIDForRestaurant finds an attribute with its values within a restaurant
func (r *GormAttributeRepository) FindByIDForRestaurant(ctx context.Context, restaurantID, id uuid.UUID) (*catalog.Attribute, error) {
	var attribute catalog.Attribute
	if err := r.db.WithContext(ctx).
		Preload("Values").
		Where("restaurant_id = ? AND id = ?", restaurantID, id).
		First(&attribute).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &attribute, nil
}

// FindByIDsForRestaurant finds multiple attributes with their values
func (r *GormAttributeRepository) FindByIDsForRestaurant(ctx context.Context, restaurantID uuid.UUID, ids []uuid.UUID) ([]catalog.Attribute, error) {
	if len(ids) == 0 {
		return []catalog.Attribute{}, nil
	}

	var attributes []catalog.Attribute
	if err := r.db.WithContext(ctx).
		Preload("Values").
		Where("restaurant_id = ? AND id IN ?", restaurantID, ids).
		Find(&attributes).Error; err != nil {
		return nil, err
	}
	return attributes, nil
}

// FindAllForRestaurant finds all attributes for a restaurant
func (r *GormAttributeRepository) FindAllForRestaurant(ctx context.Context, restaurantID uuid.UUID, onlyActive bool) ([]catalog.Attribute, error) {
	query := r.db.WithContext(ctx).
		Preload("Values").
		Where("restaurant_id = ?", restaurantID)
	if onlyActive {
		query = query.Where("status = ?", catalog.AttributeStatusActive)
	}

	var attributes []catalog.Attribute
	if err := query.Order("name ASC").Find(&attributes).Error; err != nil {
		return nil, err
	}
	return attributes, nil
}

// Save creates or updates an attribute and synchronizes its value rows
func (r *GormAttributeRepository) Save(ctx context.Context, attribute *catalog.Attribute) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Values").Save(attribute).Error; err != nil {
			return err
		}

		// Handle values: delete removed values and save/update existing ones
		if attribute.ID != uuid.Nil {
			currentValueIDs := make([]uuid.UUID, len(attribute.Values))
			for i, value := range attribute.Values {
				currentValueIDs[i] = value.ID
			}

			if len(currentValueIDs) > 0 {
				if err := tx.Where("attribute_id = ? AND id NOT IN ?", attribute.ID, currentValueIDs).
					Delete(&catalog.AttributeValue{}).Error; err != nil {
					return err
				}
			} else {
				if err := tx.Where("attribute_id = ?", attribute.ID).
					Delete(&catalog.AttributeValue{}).Error; err != nil {
					return err
				}
			}

			for i := range attribute.Values {
				attribute.Values[i].AttributeID = attribute.ID
				if err := tx.Save(&attribute.Values[i]).Error; err != nil {
					return err
				}
			}
		}

		return nil
	})
}

// ExistsByName checks if an attribute with the given name exists in the restaurant
func (r *GormAttributeRepository) ExistsByName(ctx context.Context, restaurantID uuid.UUID, name string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&catalog.Attribute{}).
		Where("restaurant_id = ? AND name = ?", restaurantID, name).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// DeleteWithCascade deletes the attribute and all its values,
// invalidates every variant whose selection references the attribute,
// and returns the products owning those variants
func (r *GormAttributeRepository) DeleteWithCascade(ctx context.Context, attribute *catalog.Attribute) ([]uuid.UUID, error) {
	reason := catalog.InvalidReasonAttributeRemoved(attribute.Name)

	var productIDs []uuid.UUID
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		variantIDs, err := referencingVariantIDs(tx, "attribute_id", attribute.ID)
		if err != nil {
			return err
		}
		productIDs, err = productIDsOfVariants(tx, variantIDs)
		if err != nil {
			return err
		}

		if err := invalidateVariants(tx, variantIDs, reason); err != nil {
			return err
		}

		// The selection rows of invalidated variants would otherwise
		// reference deleted attribute rows
		if err := tx.Where("attribute_id = ?", attribute.ID).
			Delete(&catalog.VariantSelection{}).Error; err != nil {
			return err
		}

		if err := tx.Where("attribute_id = ?", attribute.ID).
			Delete(&catalog.AttributeValue{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&catalog.Attribute{}, "id = ?", attribute.ID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return productIDs, nil
}

// DeleteValueWithCascade deletes a single value, invalidates every
// variant whose selection references it, and returns the products
// owning those variants
func (r *GormAttributeRepository) DeleteValueWithCascade(ctx context.Context, attribute *catalog.Attribute, value *catalog.AttributeValue) ([]uuid.UUID, error) {
	reason := catalog.InvalidReasonValueRemoved(attribute.Name, value.Label)

	var productIDs []uuid.UUID
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		variantIDs, err := referencingVariantIDs(tx, "value_id", value.ID)
		if err != nil {
			return err
		}
		productIDs, err = productIDsOfVariants(tx, variantIDs)
		if err != nil {
			return err
		}

		if err := invalidateVariants(tx, variantIDs, reason); err != nil {
			return err
		}

		if err := tx.Where("value_id = ?", value.ID).
			Delete(&catalog.VariantSelection{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&catalog.AttributeValue{}, "id = ?", value.ID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}

		// Persist the aggregate with the value already detached
		return tx.Omit("Values").Save(attribute).Error
	})
	if err != nil {
		return nil, err
	}
	return productIDs, nil
}

// referencingVariantIDs returns the IDs of variants whose selection rows
// match the given column value
func referencingVariantIDs(tx *gorm.DB, column string, id uuid.UUID) ([]uuid.UUID, error) {
	var variantIDs []uuid.UUID
	if err := tx.Model(&catalog.VariantSelection{}).
		Distinct("variant_id").
		Where(column+" = ?", id).
		Pluck("variant_id", &variantIDs).Error; err != nil {
		return nil, err
	}
	return variantIDs, nil
}

// productIDsOfVariants returns the distinct products owning the given
// variants
func productIDsOfVariants(tx *gorm.DB, variantIDs []uuid.UUID) ([]uuid.UUID, error) {
	if len(variantIDs) == 0 {
		return nil, nil
	}
	var productIDs []uuid.UUID
	if err := tx.Model(&catalog.Variant{}).
		Distinct("product_id").
		Where("id IN ?", variantIDs).
		Pluck("product_id", &productIDs).Error; err != nil {
		return nil, err
	}
	return productIDs, nil
}

// invalidateVariants forces the given variants into the invalid state.
// They drop off sale and lose default status until repaired.
func invalidateVariants(tx *gorm.DB, variantIDs []uuid.UUID, reason string) error {
	if len(variantIDs) == 0 {
		return nil
	}
	return tx.Model(&catalog.Variant{}).
		Where("id IN ?", variantIDs).
		Updates(map[string]interface{}{
			"is_invalid":     true,
			"invalid_reason": reason,
			"is_enabled":     false,
			"is_default":     false,
			"updated_at":     time.Now(),
		}).Error
}

// Ensure GormAttributeRepository implements AttributeRepository
var _ catalog.AttributeRepository = (*GormAttributeRepository)(nil)
