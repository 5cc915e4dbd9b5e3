package identity

import (
	"time"

	"github.com/DesarrolladorTAE/Clic-Menu-sub000/internal/domain/identity"
	"github.com/google/uuid"
)

// LoginRequest represents a login request
type LoginRequest struct {
	RestaurantSlug string `json:"restaurant_slug" binding:"required"`
	Username       string `json:"username" binding:"required"`
	Password       string `json:"password" binding:"required"`
}

// LoginResponse carries the issued tokens and the signed-in user
type LoginResponse struct {
	AccessToken           string            `json:"access_token"`
	RefreshToken          string            `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time         `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time         `json:"refresh_token_expires_at"`
	User                  StaffUserResponse `json:"user"`
}

// StaffUserResponse represents a staff user in API responses
type StaffUserResponse struct {
	ID          uuid.UUID  `json:"id"`
	Username    string     `json:"username"`
	Email       string     `json:"email,omitempty"`
	DisplayName string     `json:"display_name,omitempty"`
	Status      string     `json:"status"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

// ToStaffUserResponse converts a domain StaffUser
func ToStaffUserResponse(u *identity.StaffUser) StaffUserResponse {
	return StaffUserResponse{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		Status:      string(u.Status),
		LastLoginAt: u.LastLoginAt,
	}
}

// SaveAssignmentRequest creates or reactivates a staff assignment
type SaveAssignmentRequest struct {
	UserID   uuid.UUID  `json:"user_id" binding:"required"`
	RoleID   uuid.UUID  `json:"role_id" binding:"required"`
	BranchID *uuid.UUID `json:"branch_id"` // omit for all branches
}

// ValidateAssignmentRequest runs the conflict check without persisting
type ValidateAssignmentRequest struct {
	UserID   uuid.UUID  `json:"user_id" binding:"required"`
	RoleID   uuid.UUID  `json:"role_id" binding:"required"`
	BranchID *uuid.UUID `json:"branch_id"`
	// IsActive is the state being validated; omitted means active.
	// Deactivations always pass the conflict rule.
	IsActive *bool `json:"is_active"`
}

// ValidateAssignmentResponse reports the outcome of a conflict check
type ValidateAssignmentResponse struct {
	Valid   bool   `json:"valid"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

// AssignmentResponse represents a staff assignment in API responses
type AssignmentResponse struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"user_id"`
	RoleID    uuid.UUID  `json:"role_id"`
	BranchID  *uuid.UUID `json:"branch_id,omitempty"`
	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// ToAssignmentResponse converts a domain StaffAssignment
func ToAssignmentResponse(a *identity.StaffAssignment) AssignmentResponse {
	return AssignmentResponse{
		ID:        a.ID,
		UserID:    a.UserID,
		RoleID:    a.RoleID,
		BranchID:  a.BranchID,
		IsActive:  a.IsActive,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// ToAssignmentResponses converts a slice of assignments
func ToAssignmentResponses(assignments []identity.StaffAssignment) []AssignmentResponse {
	responses := make([]AssignmentResponse, len(assignments))
	for i := range assignments {
		responses[i] = ToAssignmentResponse(&assignments[i])
	}
	return responses
}
