package persistence

import (
	"context"
	"errors"

	"github.com/DesarrolladorTAE/Clic-Menu-sub000/internal/domain/channel"
	"github.com/DesarrolladorTAE/Clic-Menu-sub000/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormBranchChannelRepository implements BranchChannelRepository using GORM
type GormBranchChannelRepository struct {
	db *gorm.DB
}

// NewGormBranchChannelRepository creates a new GormBranchChannelRepository
func NewGormBranchChannelRepository(db *gorm.DB) *GormBranchChannelRepository {
	return &GormBranchChannelRepository{db: db}
}

// FindByID finds a branch sales channel by ID
func (r *GormBranchChannelRepository) FindByID(ctx context.Context, id uuid.UUID) (*channel.BranchSalesChannel, error) {
	var bc channel.BranchSalesChannel
	if err := r.db.WithContext(ctx).First(&bc, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &bc, nil
}

// FindByIDForRestaurant finds a branch sales channel within a restaurant
func (r *GormBranchChannelRepository) FindByIDForRestaurant(ctx context.Context, restaurantID, id uuid.UUID) (*channel.BranchSalesChannel, error) {
	var bc channel.BranchSalesChannel
	if err := r.db.WithContext(ctx).
		Where("restaurant_id = ? AND id = ?", restaurantID, id).
		First(&bc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &bc, nil
}

// FindByBranch returns all sales channels of a branch
func (r *GormBranchChannelRepository) FindByBranch(ctx context.Context, restaurantID, branchID uuid.UUID) ([]channel.BranchSalesChannel, error) {
	var channels []channel.BranchSalesChannel
	if err := r.db.WithContext(ctx).
		Where("restaurant_id = ? AND branch_id = ?", restaurantID, branchID).
		Order("name ASC").
		Find(&channels).Error; err != nil {
		return nil, err
	}
	return channels, nil
}

// FindAllForRestaurant returns all branch sales channels of a restaurant
func (r *GormBranchChannelRepository) FindAllForRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]channel.BranchSalesChannel, error) {
	var channels []channel.BranchSalesChannel
	if err := r.db.WithContext(ctx).
		Where("restaurant_id = ?", restaurantID).
		Order("branch_id ASC, name ASC").
		Find(&channels).Error; err != nil {
		return nil, err
	}
	return channels, nil
}

// Exists checks whether the channel is already activated at the branch
func (r *GormBranchChannelRepository) Exists(ctx context.Context, restaurantID, branchID, salesChannelID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&channel.BranchSalesChannel{}).
		Where("restaurant_id = ? AND branch_id = ? AND sales_channel_id = ?", restaurantID, branchID, salesChannelID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a branch sales channel
func (r *GormBranchChannelRepository) Save(ctx context.Context, bc *channel.BranchSalesChannel) error {
	return r.db.WithContext(ctx).Save(bc).Error
}

// Ensure GormBranchChannelRepository implements BranchChannelRepository
var _ channel.BranchChannelRepository = (*GormBranchChannelRepository)(nil)
