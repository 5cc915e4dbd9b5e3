package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/DesarrolladorTAE/Clic-Menu-sub000/internal/domain/shared"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// StaffUserStatus represents the status of a staff user
type StaffUserStatus string

const (
	StaffUserStatusActive      StaffUserStatus = "active"
	StaffUserStatusDeactivated StaffUserStatus = "deactivated"
)

const bcryptCost = 12

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// StaffUser is a person who operates the management console for a
// restaurant. Role grants are modeled separately as StaffAssignment
// rows, scoped to one branch or to all branches.
type StaffUser struct {
	shared.RestaurantAggregateRoot
	Username     string          `gorm:"type:varchar(100);not null;uniqueIndex:idx_staff_restaurant_username,priority:2"`
	Email        string          `gorm:"type:varchar(255)"`
	PasswordHash string          `gorm:"type:varchar(100);not null"`
	DisplayName  string          `gorm:"type:varchar(200)"`
	Status       StaffUserStatus `gorm:"type:varchar(20);not null;default:'active'"`
	LastLoginAt  *time.Time
}

// TableName returns the table name for GORM
func (StaffUser) TableName() string {
	return "staff_users"
}

// NewStaffUser creates an active staff user with a hashed password
func NewStaffUser(restaurantID uuid.UUID, username, password string) (*StaffUser, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if len(username) < 3 || len(username) > 100 {
		return nil, shared.NewDomainError(shared.ErrCodeValidation, "Username must be between 3 and 100 characters")
	}
	if len(password) < 8 {
		return nil, shared.NewDomainError(shared.ErrCodeValidation, "Password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	return &StaffUser{
		RestaurantAggregateRoot: shared.NewRestaurantAggregateRoot(restaurantID),
		Username:                username,
		PasswordHash:            string(hash),
		Status:                  StaffUserStatusActive,
	}, nil
}

// SetEmail sets the user's email
func (u *StaffUser) SetEmail(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email != "" && !emailRegex.MatchString(email) {
		return shared.NewDomainError(shared.ErrCodeValidation, "Invalid email format")
	}

	u.Email = email
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	return nil
}

// VerifyPassword checks a plaintext password against the stored hash
func (u *StaffUser) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// RecordLogin stamps a successful login
func (u *StaffUser) RecordLogin() {
	now := time.Now()
	u.LastLoginAt = &now
	u.UpdatedAt = now
}

// IsActive returns true if the user may sign in
func (u *StaffUser) IsActive() bool {
	return u.Status == StaffUserStatusActive
}

// Deactivate blocks the user from signing in
func (u *StaffUser) Deactivate() {
	u.Status = StaffUserStatusDeactivated
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
}
