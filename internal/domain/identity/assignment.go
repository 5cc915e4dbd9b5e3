package identity

import (
	"fmt"
	"time"

	"github.com/DesarrolladorTAE/Clic-Menu-sub000/internal/domain/shared"
	"github.com/google/uuid"
)

// StaffAssignment grants a role to a staff user, either at one branch
// or across all branches (BranchID nil). A partial unique index in the
// database keeps at most one active all-branches row per (user, role).
type StaffAssignment struct {
	shared.RestaurantAggregateRoot
	UserID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	BranchID *uuid.UUID `gorm:"type:uuid;index"` // nil means all branches
	RoleID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	IsActive bool       `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (StaffAssignment) TableName() string {
	return "staff_assignments"
}

// NewStaffAssignment creates an active assignment. BranchID nil scopes
// the grant to all branches of the restaurant.
func NewStaffAssignment(restaurantID, userID, roleID uuid.UUID, branchID *uuid.UUID) (*StaffAssignment, error) {
	if userID == uuid.Nil || roleID == uuid.Nil {
		return nil, shared.NewDomainError(shared.ErrCodeValidation, "User and role IDs are required")
	}
	if branchID != nil && *branchID == uuid.Nil {
		return nil, shared.NewDomainError(shared.ErrCodeValidation, "Branch ID cannot be empty; omit it to assign all branches")
	}

	return &StaffAssignment{
		RestaurantAggregateRoot: shared.NewRestaurantAggregateRoot(restaurantID),
		UserID:                  userID,
		BranchID:                branchID,
		RoleID:                  roleID,
		IsActive:                true,
	}, nil
}

// IsAllBranches reports whether the assignment covers every branch
func (a *StaffAssignment) IsAllBranches() bool {
	return a.BranchID == nil
}

// Deactivate turns the assignment off without deleting it
func (a *StaffAssignment) Deactivate() {
	a.IsActive = false
	a.UpdatedAt = time.Now()
	a.IncrementVersion()
}

// CheckAssignmentConflict applies the activation rule: a branch-specific
// assignment cannot be activated while an active all-branches assignment
// exists for the same user and role, because the broad grant already
// covers the branch and the narrow row would only shadow it. The reverse
// direction, activating an all-branches assignment over existing
// branch-specific ones, is allowed; the narrow rows become redundant but
// harmless. The rule compares only active rows for the same (user, role).
func CheckAssignmentConflict(candidate *StaffAssignment, existing []StaffAssignment, roleName string) error {
	// An inactive candidate grants nothing, so it cannot conflict
	if !candidate.IsActive || candidate.IsAllBranches() {
		return nil
	}

	for _, row := range existing {
		if row.ID == candidate.ID {
			continue
		}
		if !row.IsActive || row.UserID != candidate.UserID || row.RoleID != candidate.RoleID {
			continue
		}
		if row.IsAllBranches() {
			return shared.NewDomainError(
				shared.ErrCodeRoleConflict,
				fmt.Sprintf("User already holds role %q across all branches; a branch-specific assignment would be shadowed", roleName),
			)
		}
	}
	return nil
}
