package identity

import (
	"strings"
	"time"

	"github.com/DesarrolladorTAE/Clic-Menu-sub000/internal/domain/shared"
	"github.com/google/uuid"
)

// RestaurantStatus represents the status of a restaurant
type RestaurantStatus string

const (
	RestaurantStatusActive    RestaurantStatus = "active"
	RestaurantStatusSuspended RestaurantStatus = "suspended"
)

// Restaurant is the tenant of the platform. Every catalog, channel and
// staff record belongs to exactly one restaurant.
type Restaurant struct {
	shared.BaseAggregateRoot
	Name   string           `gorm:"type:varchar(200);not null"`
	Slug   string           `gorm:"type:varchar(100);not null;uniqueIndex"`
	Status RestaurantStatus `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (Restaurant) TableName() string {
	return "restaurants"
}

// NewRestaurant creates a new restaurant
func NewRestaurant(name, slug string) (*Restaurant, error) {
	name = strings.TrimSpace(name)
	slug = strings.ToLower(strings.TrimSpace(slug))
	if name == "" {
		return nil, shared.NewDomainError(shared.ErrCodeValidation, "Restaurant name cannot be empty")
	}
	if slug == "" {
		return nil, shared.NewDomainError(shared.ErrCodeValidation, "Restaurant slug cannot be empty")
	}

	return &Restaurant{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Slug:              slug,
		Status:            RestaurantStatusActive,
	}, nil
}

// IsActive returns true if the restaurant is active
func (r *Restaurant) IsActive() bool {
	return r.Status == RestaurantStatusActive
}

// Suspend suspends the restaurant
func (r *Restaurant) Suspend() {
	r.Status = RestaurantStatusSuspended
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
}

// Branch is one physical location of a restaurant. Sales channels are
// activated per branch and staff may be assigned to one branch or all.
type Branch struct {
	shared.RestaurantAggregateRoot
	Name     string `gorm:"type:varchar(200);not null"`
	Address  string `gorm:"type:varchar(500)"`
	IsActive bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Branch) TableName() string {
	return "branches"
}

// NewBranch creates a new branch for a restaurant
func NewBranch(restaurantID uuid.UUID, name, address string) (*Branch, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError(shared.ErrCodeValidation, "Branch name cannot be empty")
	}

	return &Branch{
		RestaurantAggregateRoot: shared.NewRestaurantAggregateRoot(restaurantID),
		Name:                    name,
		Address:                 strings.TrimSpace(address),
		IsActive:                true,
	}, nil
}
