package identity

import (
	"time"

	"github.com/google/uuid"
	"github.com/nasiya/backend/internal/domain/identity"
	"github.com/shopspring/decimal"
)

// LoginInput contains login credentials
type LoginInput struct {
	Login    string
	Password string
	IP       string
}

// LoginResult is returned after successful authentication
type LoginResult struct {
	AccessToken           string     `json:"accessToken"`
	RefreshToken          string     `json:"refreshToken"`
	AccessTokenExpiresAt  time.Time  `json:"accessTokenExpiresAt"`
	RefreshTokenExpiresAt time.Time  `json:"refreshTokenExpiresAt"`
	TokenType             string     `json:"tokenType"`
	Seller                SellerInfo `json:"seller"`
}

// RefreshTokenInput contains the refresh token
type RefreshTokenInput struct {
	RefreshToken string
}

// RefreshTokenResult is returned after a successful token refresh
type RefreshTokenResult struct {
	AccessToken           string    `json:"accessToken"`
	RefreshToken          string    `json:"refreshToken"`
	AccessTokenExpiresAt  time.Time `json:"accessTokenExpiresAt"`
	RefreshTokenExpiresAt time.Time `json:"refreshTokenExpiresAt"`
	TokenType             string    `json:"tokenType"`
}

// LogoutInput identifies the seller logging out
type LogoutInput struct {
	SellerID uuid.UUID
}

// SellerInfo is the seller profile shape returned to clients
type SellerInfo struct {
	ID       uuid.UUID       `json:"id"`
	Login    string          `json:"login"`
	Name     string          `json:"name"`
	Phone    string          `json:"phone,omitempty"`
	ImageURL string          `json:"imageUrl,omitempty"`
	Balance  decimal.Decimal `json:"balance"`
	Status   string          `json:"status"`
}

// NewSellerInfo maps a domain seller to its client shape
func NewSellerInfo(s *identity.Seller) SellerInfo {
	return SellerInfo{
		ID:       s.ID,
		Login:    s.Login,
		Name:     s.Name,
		Phone:    s.Phone,
		ImageURL: s.ImageURL,
		Balance:  s.Balance,
		Status:   string(s.Status),
	}
}

// UpdateProfileInput carries optional profile field updates
type UpdateProfileInput struct {
	Name     *string
	Phone    *string
	ImageURL *string
}

// ChangePasswordInput carries a password change request
type ChangePasswordInput struct {
	OldPassword string
	NewPassword string
}

// TopUpInput carries a wallet top-up request
type TopUpInput struct {
	Amount decimal.Decimal
	Note   string
}

// WalletTransactionInfo is the wallet transaction shape returned to clients
type WalletTransactionInfo struct {
	ID        uuid.UUID       `json:"id"`
	Type      string          `json:"type"`
	Amount    decimal.Decimal `json:"amount"`
	Note      string          `json:"note,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

// NewWalletTransactionInfo maps a domain wallet transaction to its client shape
func NewWalletTransactionInfo(tx *identity.WalletTransaction) WalletTransactionInfo {
	return WalletTransactionInfo{
		ID:        tx.ID,
		Type:      string(tx.Type),
		Amount:    tx.Amount,
		Note:      tx.Note,
		CreatedAt: tx.CreatedAt,
	}
}
