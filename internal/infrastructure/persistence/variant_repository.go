package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/DesarrolladorTAE/Clic-Menu-sub000/internal/domain/catalog"
	"github.com/DesarrolladorTAE/Clic-Menu-sub000/internal/domain/channel"
	"github.com/DesarrolladorTAE/Clic-Menu-sub000/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// pgUniqueViolation is the Postgres error code for unique constraint violations
const pgUniqueViolation = "23505"

// GormVariantRepository implements VariantRepository using GORM
type GormVariantRepository struct {
	db *gorm.DB
}

// NewGormVariantRepository creates a new GormVariantRepository
func NewGormVariantRepository(db *gorm.DB) *GormVariantRepository {
	return &GormVariantRepository{db: db}
}

// FindByID finds a variant with its selections by ID
func (r *GormVariantRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Variant, error) {
	var variant catalog.Variant
	if err := r.db.WithContext(ctx).
		Preload("Selections").
		First(&variant, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &variant, nil
}

// FindByIDForRestaurant finds a variant with its selections within a restaurant
func (r *GormVariantRepository) FindByIDForRestaurant(ctx context.Context, restaurantID, id uuid.UUID) (*catalog.Variant, error) {
	var variant catalog.Variant
	if err := r.db.WithContext(ctx).
		Preload("Selections").
		Where("restaurant_id = ? AND id = ?", restaurantID, id).
		First(&variant).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &variant, nil
}

// FindByProduct finds all variants of a product
func (r *GormVariantRepository) FindByProduct(ctx context.Context, restaurantID, productID uuid.UUID, filter shared.Filter) ([]catalog.Variant, error) {
	var variants []catalog.Variant
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&catalog.Variant{}).
			Preload("Selections").
			Where("restaurant_id = ? AND product_id = ?", restaurantID, productID),
		filter,
	)

	if err := query.Find(&variants).Error; err != nil {
		return nil, err
	}
	return variants, nil
}

// SelectionKeysByProduct returns the selection key of every existing
// variant of the product, mapped to its variant ID
func (r *GormVariantRepository) SelectionKeysByProduct(ctx context.Context, productID uuid.UUID) (map[string]uuid.UUID, error) {
	var rows []struct {
		ID           uuid.UUID
		SelectionKey string
	}
	if err := r.db.WithContext(ctx).
		Model(&catalog.Variant{}).
		Select("id", "selection_key").
		Where("product_id = ?", productID).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	keys := make(map[string]uuid.UUID, len(rows))
	for _, row := range rows {
		keys[row.SelectionKey] = row.ID
	}
	return keys, nil
}

// ExistsBySelectionKey checks whether another variant of the product
// already carries the given selection key
func (r *GormVariantRepository) ExistsBySelectionKey(ctx context.Context, productID uuid.UUID, key string, excludeID uuid.UUID) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).
		Model(&catalog.Variant{}).
		Where("product_id = ? AND selection_key = ?", productID, key)
	if excludeID != uuid.Nil {
		query = query.Where("id != ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// InsertBatch inserts new variants with their selection rows in one transaction
func (r *GormVariantRepository) InsertBatch(ctx context.Context, variants []*catalog.Variant) error {
	if len(variants) == 0 {
		return nil
	}

	return translateSelectionKeyConflict(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return insertVariants(tx, variants)
	}))
}

// ReplaceForProduct deletes every existing variant of the product and
// inserts the given set, all in one transaction
func (r *GormVariantRepository) ReplaceForProduct(ctx context.Context, productID uuid.UUID, variants []*catalog.Variant) error {
	return translateSelectionKeyConflict(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existingIDs, err := variantIDsByProduct(tx, productID)
		if err != nil {
			return err
		}

		if len(existingIDs) > 0 {
			if err := tx.Where("variant_id IN ?", existingIDs).
				Delete(&channel.VariantChannelOverride{}).Error; err != nil {
				return err
			}
			if err := tx.Where("variant_id IN ?", existingIDs).
				Delete(&catalog.VariantSelection{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", existingIDs).
				Delete(&catalog.Variant{}).Error; err != nil {
				return err
			}
		}

		return insertVariants(tx, variants)
	}))
}

// Save updates a variant and synchronizes its selection rows in one transaction
func (r *GormVariantRepository) Save(ctx context.Context, variant *catalog.Variant) error {
	return translateSelectionKeyConflict(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Selections").Save(variant).Error; err != nil {
			return err
		}

		// Repair replaces the selection set wholesale, so stale rows are
		// dropped before the current set is written
		currentIDs := make([]uuid.UUID, len(variant.Selections))
		for i, s := range variant.Selections {
			currentIDs[i] = s.ID
		}

		if len(currentIDs) > 0 {
			if err := tx.Where("variant_id = ? AND id NOT IN ?", variant.ID, currentIDs).
				Delete(&catalog.VariantSelection{}).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Where("variant_id = ?", variant.ID).
				Delete(&catalog.VariantSelection{}).Error; err != nil {
				return err
			}
		}

		for i := range variant.Selections {
			variant.Selections[i].VariantID = variant.ID
			if err := tx.Save(&variant.Selections[i]).Error; err != nil {
				return err
			}
		}

		return nil
	}))
}

// SetDefault marks the variant as the product default and clears the
// flag on every other variant of the product in one transaction
func (r *GormVariantRepository) SetDefault(ctx context.Context, productID, variantID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()

		if err := tx.Model(&catalog.Variant{}).
			Where("product_id = ? AND id != ? AND is_default = ?", productID, variantID, true).
			Updates(map[string]interface{}{
				"is_default": false,
				"updated_at": now,
			}).Error; err != nil {
			return err
		}

		result := tx.Model(&catalog.Variant{}).
			Where("product_id = ? AND id = ?", productID, variantID).
			Updates(map[string]interface{}{
				"is_default": true,
				"updated_at": now,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Delete removes the variant with its selections and channel overrides
// in one transaction
func (r *GormVariantRepository) Delete(ctx context.Context, variant *catalog.Variant) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("variant_id = ?", variant.ID).
			Delete(&channel.VariantChannelOverride{}).Error; err != nil {
			return err
		}
		if err := tx.Where("variant_id = ?", variant.ID).
			Delete(&catalog.VariantSelection{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&catalog.Variant{}, "id = ?", variant.ID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// CountByProduct counts the variants of a product
func (r *GormVariantRepository) CountByProduct(ctx context.Context, productID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&catalog.Variant{}).
		Where("product_id = ?", productID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormVariantRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	// Apply search
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ?", searchPattern)
	}

	// Apply additional filters
	for key, value := range filter.Filters {
		switch key {
		case "is_enabled":
			query = query.Where("is_enabled = ?", value)
		case "is_invalid":
			query = query.Where("is_invalid = ?", value)
		}
	}

	if filter.Paginates() {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}
	return query.Order(filter.OrderClause("name ASC"))
}

// variantIDsByProduct returns the IDs of every variant of the product
func variantIDsByProduct(tx *gorm.DB, productID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := tx.Model(&catalog.Variant{}).
		Where("product_id = ?", productID).
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// insertVariants writes variants and their selection rows within an
// open transaction
func insertVariants(tx *gorm.DB, variants []*catalog.Variant) error {
	for _, variant := range variants {
		if err := tx.Omit("Selections").Create(variant).Error; err != nil {
			return err
		}
		for i := range variant.Selections {
			variant.Selections[i].VariantID = variant.ID
			if err := tx.Create(&variant.Selections[i]).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

// translateSelectionKeyConflict maps a unique violation raised by the
// product+selection_key index onto the duplicate-variant domain error.
// Concurrent writers can both pass the application-level uniqueness
// check; the index is the final arbiter.
func translateSelectionKeyConflict(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.Is(err, gorm.ErrDuplicatedKey) ||
		(errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation) {
		return shared.NewDomainError(shared.ErrCodeDuplicateVariant,
			"Another variant of this product already has this selection")
	}
	return err
}

// Ensure GormVariantRepository implements VariantRepository
var _ catalog.VariantRepository = (*GormVariantRepository)(nil)
