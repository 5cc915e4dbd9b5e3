package identity

import (
	"context"
	"errors"
	"time"

	"github.com/DesarrolladorTAE/Clic-Menu-sub000/internal/domain/identity"
	"github.com/DesarrolladorTAE/Clic-Menu-sub000/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TokenPair carries issued tokens; the concrete issuer lives in the
// infrastructure layer
type TokenPair struct {
	AccessToken           string
	RefreshToken          string
	AccessTokenExpiresAt  time.Time
	RefreshTokenExpiresAt time.Time
}

// TokenIssuer issues signed token pairs for a staff user
type TokenIssuer interface {
	IssueTokenPair(restaurantID, userID uuid.UUID, username string) (*TokenPair, error)
}

// AuthService handles staff sign-in
type AuthService struct {
	restaurantRepo identity.RestaurantRepository
	userRepo       identity.UserRepository
	tokens         TokenIssuer
	logger         *zap.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	restaurantRepo identity.RestaurantRepository,
	userRepo identity.UserRepository,
	tokens TokenIssuer,
	logger *zap.Logger,
) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		restaurantRepo: restaurantRepo,
		userRepo:       userRepo,
		tokens:         tokens,
		logger:         logger,
	}
}

// errInvalidCredentials is deliberately vague: the response must not
// reveal whether the restaurant, the user or the password was wrong.
var errInvalidCredentials = shared.NewDomainError("INVALID_CREDENTIALS", "Invalid credentials")

// Login verifies credentials and issues a token pair
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	restaurant, err := s.restaurantRepo.FindBySlug(ctx, req.RestaurantSlug)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, errInvalidCredentials
		}
		return nil, err
	}
	if !restaurant.IsActive() {
		return nil, errInvalidCredentials
	}

	user, err := s.userRepo.FindByUsername(ctx, restaurant.ID, req.Username)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, errInvalidCredentials
		}
		return nil, err
	}
	if !user.IsActive() || !user.VerifyPassword(req.Password) {
		return nil, errInvalidCredentials
	}

	pair, err := s.tokens.IssueTokenPair(restaurant.ID, user.ID, user.Username)
	if err != nil {
		return nil, err
	}

	user.RecordLogin()
	if err := s.userRepo.Save(ctx, user); err != nil {
		// The login itself succeeded; losing the timestamp is tolerable.
		s.logger.Warn("failed to record login time",
			zap.String("user_id", user.ID.String()), zap.Error(err))
	}

	return &LoginResponse{
		AccessToken:           pair.AccessToken,
		RefreshToken:          pair.RefreshToken,
		AccessTokenExpiresAt:  pair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: pair.RefreshTokenExpiresAt,
		User:                  ToStaffUserResponse(user),
	}, nil
}
