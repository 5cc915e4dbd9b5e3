package handler

import (
	"errors"

	identityapp "github.com/DesarrolladorTAE/Clic-Menu-sub000/internal/application/identity"
	"github.com/DesarrolladorTAE/Clic-Menu-sub000/internal/infrastructure/auth"
	"github.com/DesarrolladorTAE/Clic-Menu-sub000/internal/interfaces/http/dto"
	"github.com/DesarrolladorTAE/Clic-Menu-sub000/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

const bearerTokenType = "Bearer"

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	BaseHandler
	authService *identityapp.AuthService
	jwtService  *auth.JWTService
	blacklist   auth.TokenBlacklist
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *identityapp.AuthService, jwtService *auth.JWTService, blacklist auth.TokenBlacklist) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		jwtService:  jwtService,
		blacklist:   blacklist,
	}
}

// Login godoc
// @Summary      Staff login
// @Description  Authenticate a staff user with restaurant slug, username and password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Login credentials"
// @Success      200 {object} dto.Response{data=LoginResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.authService.Login(c.Request.Context(), identityapp.LoginRequest{
		RestaurantSlug: req.RestaurantSlug,
		Username:       req.Username,
		Password:       req.Password,
	})
	if err != nil {
		h.handleAuthServiceError(c, err)
		return
	}

	response := LoginResponse{
		Token: TokenResponse{
			AccessToken:           result.AccessToken,
			RefreshToken:          result.RefreshToken,
			AccessTokenExpiresAt:  result.AccessTokenExpiresAt,
			RefreshTokenExpiresAt: result.RefreshTokenExpiresAt,
			TokenType:             bearerTokenType,
		},
		User: AuthUserResponse{
			ID:          result.User.ID,
			Username:    result.User.Username,
			DisplayName: result.User.DisplayName,
			Email:       result.User.Email,
			Status:      result.User.Status,
			LastLoginAt: result.User.LastLoginAt,
		},
	}

	h.Success(c, response)
}

// RefreshToken godoc
// @Summary      Refresh access token
// @Description  Get a new token pair using a refresh token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body RefreshTokenRequest true "Refresh token"
// @Success      200 {object} dto.Response{data=RefreshTokenResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /auth/refresh [post]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	// Reject refresh tokens belonging to users whose sessions were revoked
	if h.blacklist != nil {
		claims, err := h.jwtService.ValidateRefreshToken(req.RefreshToken)
		if err == nil && claims.UserID != "" {
			invalidated, berr := h.blacklist.IsUserTokenInvalidated(c.Request.Context(), claims.UserID, claims.GetIssuedAtTime())
			if berr == nil && invalidated {
				h.Unauthorized(c, "Session has been revoked")
				return
			}
		}
	}

	pair, err := h.jwtService.RefreshTokenPair(req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrExpiredToken):
			h.Error(c, dto.GetHTTPStatus(dto.ErrCodeTokenExpired), dto.ErrCodeTokenExpired, "Refresh token has expired")
		case errors.Is(err, auth.ErrMaxRefreshExceeded):
			h.Unauthorized(c, "Refresh limit reached, please sign in again")
		default:
			h.Error(c, dto.GetHTTPStatus(dto.ErrCodeTokenInvalid), dto.ErrCodeTokenInvalid, "Invalid refresh token")
		}
		return
	}

	response := RefreshTokenResponse{
		Token: TokenResponse{
			AccessToken:           pair.AccessToken,
			RefreshToken:          pair.RefreshToken,
			AccessTokenExpiresAt:  pair.AccessTokenExpiresAt,
			RefreshTokenExpiresAt: pair.RefreshTokenExpiresAt,
			TokenType:             bearerTokenType,
		},
	}

	h.Success(c, response)
}

// Logout godoc
// @Summary      Staff logout
// @Description  Revoke the current access token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Success      200 {object} dto.Response{data=LogoutResponse}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.GetJWTClaims(c)
	if claims == nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	if h.blacklist != nil && claims.ID != "" {
		ttl := claims.GetRemainingTTL()
		if ttl > 0 {
			if err := h.blacklist.AddToBlacklist(c.Request.Context(), claims.ID, ttl); err != nil {
				h.InternalError(c, "Failed to revoke token")
				return
			}
		}
	}

	h.Success(c, LogoutResponse{
		Message: "Logged out successfully",
	})
}

// handleAuthServiceError maps auth service failures to HTTP responses.
// Credential failures are always reported as a generic 401.
func (h *AuthHandler) handleAuthServiceError(c *gin.Context, err error) {
	if shared := sharedDomainError(err); shared != nil && shared.Code == "INVALID_CREDENTIALS" {
		h.Unauthorized(c, "Invalid credentials")
		return
	}
	h.HandleError(c, err)
}
