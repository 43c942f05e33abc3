package identity

import (
	"context"
	"time"

	"github.com/nasiya/backend/internal/domain/identity"
	"github.com/nasiya/backend/internal/domain/shared"
	"github.com/nasiya/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// AuthServiceConfig contains configuration for the auth service
type AuthServiceConfig struct {
	MaxLoginAttempts int           // Maximum failed login attempts before lock
	LockDuration     time.Duration // How long to lock account after max attempts
}

// DefaultAuthServiceConfig returns default configuration
func DefaultAuthServiceConfig() AuthServiceConfig {
	return AuthServiceConfig{
		MaxLoginAttempts: 5,
		LockDuration:     15 * time.Minute,
	}
}

// AuthService handles seller authentication
type AuthService struct {
	sellerRepo identity.SellerRepository
	jwtService *auth.JWTService
	blacklist  auth.TokenBlacklist
	config     AuthServiceConfig
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	sellerRepo identity.SellerRepository,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	config AuthServiceConfig,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		sellerRepo: sellerRepo,
		jwtService: jwtService,
		blacklist:  blacklist,
		config:     config,
		logger:     logger,
	}
}

// Login authenticates a seller and returns a token pair
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	s.logger.Info("Login attempt", zap.String("login", input.Login))

	seller, err := s.sellerRepo.FindByLogin(ctx, input.Login)
	if err != nil {
		s.logger.Warn("Seller not found during login", zap.String("login", input.Login))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid login or password")
	}

	if !seller.CanLogin() {
		if seller.IsLocked() {
			s.logger.Warn("Login attempt for locked account", zap.String("login", input.Login))
			return nil, shared.NewDomainError("ACCOUNT_LOCKED", "Account is locked. Please try again later")
		}
		s.logger.Warn("Login attempt for deactivated account", zap.String("login", input.Login))
		return nil, shared.NewDomainError("ACCOUNT_DEACTIVATED", "Account has been deactivated")
	}

	if !seller.VerifyPassword(input.Password) {
		locked := seller.RecordLoginFailure(s.config.MaxLoginAttempts, s.config.LockDuration)
		if err := s.sellerRepo.Save(ctx, seller); err != nil {
			s.logger.Error("Failed to save seller after login failure", zap.Error(err))
		}

		if locked {
			s.logger.Warn("Account locked after too many failed attempts",
				zap.String("login", input.Login),
				zap.Int("attempts", s.config.MaxLoginAttempts))
			return nil, shared.NewDomainError("ACCOUNT_LOCKED", "Too many failed login attempts. Account has been locked")
		}

		s.logger.Warn("Invalid password attempt",
			zap.String("login", input.Login),
			zap.Int("failed_attempts", seller.FailedAttempts))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid login or password")
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		SellerID: seller.ID,
		Login:    seller.Login,
	})
	if err != nil {
		s.logger.Error("Failed to generate token pair", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate authentication tokens")
	}

	seller.RecordLoginSuccess(input.IP)
	if err := s.sellerRepo.Save(ctx, seller); err != nil {
		// Do not fail the login over bookkeeping
		s.logger.Error("Failed to save seller after successful login", zap.Error(err))
	}

	s.logger.Info("Seller logged in",
		zap.String("login", input.Login),
		zap.String("seller_id", seller.ID.String()))

	return &LoginResult{
		AccessToken:           tokenPair.AccessToken,
		RefreshToken:          tokenPair.RefreshToken,
		AccessTokenExpiresAt:  tokenPair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: tokenPair.RefreshTokenExpiresAt,
		TokenType:             tokenPair.TokenType,
		Seller:                NewSellerInfo(seller),
	}, nil
}

// RefreshToken exchanges a valid refresh token for a new pair
func (s *AuthService) RefreshToken(ctx context.Context, input RefreshTokenInput) (*RefreshTokenResult, error) {
	refreshClaims, err := s.jwtService.ValidateRefreshToken(input.RefreshToken)
	if err != nil {
		s.logger.Warn("Refresh token validation failed", zap.Error(err))
		return nil, mapTokenError(err)
	}

	sellerID, err := refreshClaims.GetSellerUUID()
	if err != nil {
		s.logger.Error("Invalid seller ID in refresh token", zap.Error(err))
		return nil, shared.NewDomainError("TOKEN_INVALID", "Invalid seller ID in token")
	}

	// Refresh tokens issued before a logout are rejected
	invalidated, err := s.blacklist.IsSellerTokenInvalidated(ctx, sellerID.String(), refreshClaims.GetIssuedAtTime())
	if err != nil {
		// Fail open: blacklist outage must not lock everyone out
		s.logger.Warn("Token blacklist check failed during refresh", zap.Error(err))
	} else if invalidated {
		return nil, shared.NewDomainError("TOKEN_INVALID", "Refresh token has been revoked")
	}

	seller, err := s.sellerRepo.FindByID(ctx, sellerID)
	if err != nil {
		s.logger.Warn("Seller not found during token refresh", zap.String("seller_id", sellerID.String()))
		return nil, shared.NewDomainError("SELLER_NOT_FOUND", "Seller not found")
	}

	if !seller.CanLogin() {
		s.logger.Warn("Token refresh for inactive seller", zap.String("seller_id", sellerID.String()))
		return nil, shared.NewDomainError("ACCOUNT_INACTIVE", "Account is no longer active")
	}

	tokenPair, err := s.jwtService.RefreshTokenPair(input.RefreshToken, seller.Login)
	if err != nil {
		s.logger.Warn("Token refresh failed", zap.Error(err))
		return nil, mapTokenError(err)
	}

	s.logger.Info("Token refreshed", zap.String("seller_id", sellerID.String()))

	return &RefreshTokenResult{
		AccessToken:           tokenPair.AccessToken,
		RefreshToken:          tokenPair.RefreshToken,
		AccessTokenExpiresAt:  tokenPair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: tokenPair.RefreshTokenExpiresAt,
		TokenType:             tokenPair.TokenType,
	}, nil
}

// Logout invalidates every token issued to the seller before now
func (s *AuthService) Logout(ctx context.Context, input LogoutInput) error {
	s.logger.Info("Seller logout", zap.String("seller_id", input.SellerID.String()))

	ttl := s.jwtService.GetRefreshTokenExpiration()
	if err := s.blacklist.AddSellerTokensToBlacklist(ctx, input.SellerID.String(), ttl); err != nil {
		s.logger.Error("Failed to blacklist seller tokens on logout", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to log out")
	}
	return nil
}

// mapTokenError translates JWT service errors to domain errors
func mapTokenError(err error) error {
	switch err {
	case auth.ErrExpiredToken:
		return shared.NewDomainError("TOKEN_EXPIRED", "Refresh token has expired")
	case auth.ErrInvalidToken:
		return shared.NewDomainError("TOKEN_INVALID", "Invalid refresh token")
	case auth.ErrMaxRefreshExceeded:
		return shared.NewDomainError("TOKEN_MAX_REFRESH", "Maximum token refresh count exceeded. Please log in again")
	default:
		return shared.NewDomainError("TOKEN_ERROR", "Failed to validate refresh token")
	}
}
