package identity

import (
	"strings"
	"time"

	"github.com/DesarrolladorTAE/Clic-Menu-sub000/internal/domain/shared"
	"github.com/google/uuid"
)

// Role is a named set of console capabilities (manager, cashier,
// menu editor). Assignment to staff happens through StaffAssignment.
type Role struct {
	shared.RestaurantAggregateRoot
	Name        string `gorm:"type:varchar(100);not null;uniqueIndex:idx_role_restaurant_name,priority:2"`
	Description string `gorm:"type:varchar(500)"`
	IsActive    bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Role) TableName() string {
	return "roles"
}

// NewRole creates a new role
func NewRole(restaurantID uuid.UUID, name, description string) (*Role, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError(shared.ErrCodeValidation, "Role name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError(shared.ErrCodeValidation, "Role name cannot exceed 100 characters")
	}

	return &Role{
		RestaurantAggregateRoot: shared.NewRestaurantAggregateRoot(restaurantID),
		Name:                    name,
		Description:             strings.TrimSpace(description),
		IsActive:                true,
	}, nil
}

// Deactivate retires the role. Existing assignments stay but stop
// granting access.
func (r *Role) Deactivate() {
	r.IsActive = false
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
}
