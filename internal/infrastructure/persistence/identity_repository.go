package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/DesarrolladorTAE/Clic-Menu-sub000/internal/domain/identity"
	"github.com/DesarrolladorTAE/Clic-Menu-sub000/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormRestaurantRepository implements RestaurantRepository using GORM
type GormRestaurantRepository struct {
	db *gorm.DB
}

// NewGormRestaurantRepository creates a new GormRestaurantRepository
func NewGormRestaurantRepository(db *gorm.DB) *GormRestaurantRepository {
	return &GormRestaurantRepository{db: db}
}

// FindByID finds a restaurant by ID
func (r *GormRestaurantRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Restaurant, error) {
	var restaurant identity.Restaurant
	if err := r.db.WithContext(ctx).First(&restaurant, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &restaurant, nil
}

// FindBySlug finds a restaurant by its URL slug
func (r *GormRestaurantRepository) FindBySlug(ctx context.Context, slug string) (*identity.Restaurant, error) {
	var restaurant identity.Restaurant
	if err := r.db.WithContext(ctx).
		Where("slug = ?", strings.ToLower(slug)).
		First(&restaurant).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &restaurant, nil
}

// Save creates or updates a restaurant
func (r *GormRestaurantRepository) Save(ctx context.Context, restaurant *identity.Restaurant) error {
	return r.db.WithContext(ctx).Save(restaurant).Error
}

// GormBranchRepository implements BranchRepository using GORM
type GormBranchRepository struct {
	db *gorm.DB
}

// NewGormBranchRepository creates a new GormBranchRepository
func NewGormBranchRepository(db *gorm.DB) *GormBranchRepository {
	return &GormBranchRepository{db: db}
}

// FindByIDForRestaurant finds a branch within a restaurant
func (r *GormBranchRepository) FindByIDForRestaurant(ctx context.Context, restaurantID, id uuid.UUID) (*identity.Branch, error) {
	var branch identity.Branch
	if err := r.db.WithContext(ctx).
		Where("restaurant_id = ? AND id = ?", restaurantID, id).
		First(&branch).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &branch, nil
}

// FindAllForRestaurant returns all branches of a restaurant
func (r *GormBranchRepository) FindAllForRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]identity.Branch, error) {
	var branches []identity.Branch
	if err := r.db.WithContext(ctx).
		Where("restaurant_id = ?", restaurantID).
		Order("name ASC").
		Find(&branches).Error; err != nil {
		return nil, err
	}
	return branches, nil
}

// Save creates or updates a branch
func (r *GormBranchRepository) Save(ctx context.Context, branch *identity.Branch) error {
	return r.db.WithContext(ctx).Save(branch).Error
}

// GormUserRepository implements UserRepository using GORM
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GormUserRepository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// FindByID finds a staff user by ID
func (r *GormUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.StaffUser, error) {
	var user identity.StaffUser
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// FindByUsername finds a staff user by username within a restaurant
func (r *GormUserRepository) FindByUsername(ctx context.Context, restaurantID uuid.UUID, username string) (*identity.StaffUser, error) {
	var user identity.StaffUser
	if err := r.db.WithContext(ctx).
		Where("restaurant_id = ? AND username = ?", restaurantID, strings.ToLower(username)).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Save creates or updates a staff user
func (r *GormUserRepository) Save(ctx context.Context, user *identity.StaffUser) error {
	return r.db.WithContext(ctx).Save(user).Error
}

// GormRoleRepository implements RoleRepository using GORM
type GormRoleRepository struct {
	db *gorm.DB
}

// NewGormRoleRepository creates a new GormRoleRepository
func NewGormRoleRepository(db *gorm.DB) *GormRoleRepository {
	return &GormRoleRepository{db: db}
}

// FindByID finds a role by ID
func (r *GormRoleRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Role, error) {
	var role identity.Role
	if err := r.db.WithContext(ctx).First(&role, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &role, nil
}

// FindByIDForRestaurant finds a role within a restaurant
func (r *GormRoleRepository) FindByIDForRestaurant(ctx context.Context, restaurantID, id uuid.UUID) (*identity.Role, error) {
	var role identity.Role
	if err := r.db.WithContext(ctx).
		Where("restaurant_id = ? AND id = ?", restaurantID, id).
		First(&role).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &role, nil
}

// FindAllForRestaurant returns all roles of a restaurant
func (r *GormRoleRepository) FindAllForRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]identity.Role, error) {
	var roles []identity.Role
	if err := r.db.WithContext(ctx).
		Where("restaurant_id = ?", restaurantID).
		Order("name ASC").
		Find(&roles).Error; err != nil {
		return nil, err
	}
	return roles, nil
}

// Save creates or updates a role
func (r *GormRoleRepository) Save(ctx context.Context, role *identity.Role) error {
	return r.db.WithContext(ctx).Save(role).Error
}

// GormAssignmentRepository implements AssignmentRepository using GORM
type GormAssignmentRepository struct {
	db *gorm.DB
}

// NewGormAssignmentRepository creates a new GormAssignmentRepository
func NewGormAssignmentRepository(db *gorm.DB) *GormAssignmentRepository {
	return &GormAssignmentRepository{db: db}
}

// FindByID finds an assignment within a restaurant
func (r *GormAssignmentRepository) FindByID(ctx context.Context, restaurantID, id uuid.UUID) (*identity.StaffAssignment, error) {
	var assignment identity.StaffAssignment
	if err := r.db.WithContext(ctx).
		Where("restaurant_id = ? AND id = ?", restaurantID, id).
		First(&assignment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &assignment, nil
}

// FindByUser returns all assignments of a user, active and inactive
func (r *GormAssignmentRepository) FindByUser(ctx context.Context, restaurantID, userID uuid.UUID) ([]identity.StaffAssignment, error) {
	var assignments []identity.StaffAssignment
	if err := r.db.WithContext(ctx).
		Where("restaurant_id = ? AND user_id = ?", restaurantID, userID).
		Order("created_at DESC").
		Find(&assignments).Error; err != nil {
		return nil, err
	}
	return assignments, nil
}

// FindActiveByUserAndRole returns the active assignments of a user for one role
func (r *GormAssignmentRepository) FindActiveByUserAndRole(ctx context.Context, restaurantID, userID, roleID uuid.UUID) ([]identity.StaffAssignment, error) {
	var assignments []identity.StaffAssignment
	if err := r.db.WithContext(ctx).
		Where("restaurant_id = ? AND user_id = ? AND role_id = ? AND is_active = ?", restaurantID, userID, roleID, true).
		Find(&assignments).Error; err != nil {
		return nil, err
	}
	return assignments, nil
}

// Save creates or updates an assignment
func (r *GormAssignmentRepository) Save(ctx context.Context, assignment *identity.StaffAssignment) error {
	return r.db.WithContext(ctx).Save(assignment).Error
}

// Ensure the repositories implement their interfaces
var (
	_ identity.RestaurantRepository = (*GormRestaurantRepository)(nil)
	_ identity.BranchRepository     = (*GormBranchRepository)(nil)
	_ identity.UserRepository       = (*GormUserRepository)(nil)
	_ identity.RoleRepository       = (*GormRoleRepository)(nil)
	_ identity.AssignmentRepository = (*GormAssignmentRepository)(nil)
)
