package auth

import (
	identityapp "github.com/DesarrolladorTAE/Clic-Menu-sub000/internal/application/identity"
	"github.com/google/uuid"
)

// TokenIssuerAdapter bridges the application layer's TokenIssuer port to the
// JWT service
type TokenIssuerAdapter struct {
	jwtService *JWTService
}

// NewTokenIssuerAdapter creates a new TokenIssuerAdapter
func NewTokenIssuerAdapter(jwtService *JWTService) *TokenIssuerAdapter {
	return &TokenIssuerAdapter{jwtService: jwtService}
}

// IssueTokenPair issues a signed access/refresh token pair for a staff user
func (a *TokenIssuerAdapter) IssueTokenPair(restaurantID, userID uuid.UUID, username string) (*identityapp.TokenPair, error) {
	pair, err := a.jwtService.GenerateTokenPair(GenerateTokenInput{
		RestaurantID: restaurantID,
		UserID:       userID,
		Username:     username,
	})
	if err != nil {
		return nil, err
	}
	return &identityapp.TokenPair{
		AccessToken:           pair.AccessToken,
		RefreshToken:          pair.RefreshToken,
		AccessTokenExpiresAt:  pair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: pair.RefreshTokenExpiresAt,
	}, nil
}

var _ identityapp.TokenIssuer = (*TokenIssuerAdapter)(nil)
