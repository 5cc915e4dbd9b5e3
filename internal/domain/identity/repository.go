package identity

import (
	"context"

	"github.com/google/uuid"
)

// RestaurantRepository defines the interface for restaurant persistence
type RestaurantRepository interface {
	// FindByID finds a restaurant by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Restaurant, error)

	// FindBySlug finds a restaurant by its URL slug
	FindBySlug(ctx context.Context, slug string) (*Restaurant, error)

	// Save creates or updates a restaurant
	Save(ctx context.Context, restaurant *Restaurant) error
}

// BranchRepository defines the interface for branch persistence
type BranchRepository interface {
	// FindByIDForRestaurant finds a branch within a restaurant
	FindByIDForRestaurant(ctx context.Context, restaurantID, id uuid.UUID) (*Branch, error)

	// FindAllForRestaurant returns all branches of a restaurant
	FindAllForRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]Branch, error)

	// Save creates or updates a branch
	Save(ctx context.Context, branch *Branch) error
}

// UserRepository defines the interface for staff user persistence
type UserRepository interface {
	// FindByID finds a staff user by ID
	FindByID(ctx context.Context, id uuid.UUID) (*StaffUser, error)

	// FindByUsername finds a staff user by username within a restaurant
	FindByUsername(ctx context.Context, restaurantID uuid.UUID, username string) (*StaffUser, error)

	// Save creates or updates a staff user
	Save(ctx context.Context, user *StaffUser) error
}

// RoleRepository defines the interface for role persistence
type RoleRepository interface {
	// FindByID finds a role by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Role, error)

	// FindByIDForRestaurant finds a role within a restaurant
	FindByIDForRestaurant(ctx context.Context, restaurantID, id uuid.UUID) (*Role, error)

	// FindAllForRestaurant returns all roles of a restaurant
	FindAllForRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]Role, error)

	// Save creates or updates a role
	Save(ctx context.Context, role *Role) error
}

// AssignmentRepository defines the interface for staff assignment
// persistence
type AssignmentRepository interface {
	// FindByID finds an assignment within a restaurant
	FindByID(ctx context.Context, restaurantID, id uuid.UUID) (*StaffAssignment, error)

	// FindByUser returns all assignments of a user, active and inactive
	FindByUser(ctx context.Context, restaurantID, userID uuid.UUID) ([]StaffAssignment, error)

	// FindActiveByUserAndRole returns the active assignments of a user
	// for one role. Used by the conflict check before activation.
	FindActiveByUserAndRole(ctx context.Context, restaurantID, userID, roleID uuid.UUID) ([]StaffAssignment, error)

	// Save creates or updates an assignment
	Save(ctx context.Context, assignment *StaffAssignment) error
}
