package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/nasiya/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

// SellerStatus represents the status of a seller account
type SellerStatus string

const (
	SellerStatusActive      SellerStatus = "active"
	SellerStatusLocked      SellerStatus = "locked"      // Locked due to failed login attempts
	SellerStatusDeactivated SellerStatus = "deactivated" // Manually deactivated
)

// Password cost for bcrypt
const bcryptCost = 12

// Seller is the account of a micro-lender using the system.
// It is the aggregate root for authentication, profile and wallet
// operations. Wallet balance funds reminder message sending.
type Seller struct {
	shared.BaseAggregateRoot
	Login          string
	PasswordHash   string
	Name           string
	Phone          string
	ImageURL       string
	Balance        decimal.Decimal
	Status         SellerStatus
	LastLoginAt    *time.Time
	LastLoginIP    string
	FailedAttempts int
	LockedUntil    *time.Time
}

// NewSeller creates a new active seller account
func NewSeller(login, password, name string) (*Seller, error) {
	if err := validateLogin(login); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	return &Seller{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Login:             strings.ToLower(strings.TrimSpace(login)),
		PasswordHash:      passwordHash,
		Name:              strings.TrimSpace(name),
		Balance:           decimal.Zero,
		Status:            SellerStatusActive,
	}, nil
}

// SetName sets the seller's display name
func (s *Seller) SetName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Name cannot exceed 200 characters")
	}

	s.Name = name
	s.UpdatedAt = time.Now()

	return nil
}

// SetPhone sets the seller's contact phone
func (s *Seller) SetPhone(phone string) error {
	if phone != "" && len(phone) > 50 {
		return shared.NewDomainError("INVALID_PHONE", "Phone cannot exceed 50 characters")
	}

	s.Phone = strings.TrimSpace(phone)
	s.UpdatedAt = time.Now()

	return nil
}

// SetImageURL sets the seller's profile image URL
func (s *Seller) SetImageURL(url string) error {
	if url != "" && len(url) > 500 {
		return shared.NewDomainError("INVALID_IMAGE_URL", "Image URL cannot exceed 500 characters")
	}

	s.ImageURL = url
	s.UpdatedAt = time.Now()

	return nil
}

// ChangePassword changes the seller's password after verifying the old one
func (s *Seller) ChangePassword(oldPassword, newPassword string) error {
	if !s.VerifyPassword(oldPassword) {
		return shared.NewDomainError("INVALID_PASSWORD", "Current password is incorrect")
	}

	if err := validatePassword(newPassword); err != nil {
		return err
	}

	passwordHash, err := hashPassword(newPassword)
	if err != nil {
		return shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	s.PasswordHash = passwordHash
	s.UpdatedAt = time.Now()

	return nil
}

// VerifyPassword verifies if the provided password matches
func (s *Seller) VerifyPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(s.PasswordHash), []byte(password))
	return err == nil
}

// TopUp credits the wallet balance. Amount must be strictly positive.
func (s *Seller) TopUp(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Top-up amount must be positive")
	}

	s.Balance = s.Balance.Add(amount)
	s.UpdatedAt = time.Now()

	return nil
}

// Debit charges the wallet balance. The balance never goes negative.
func (s *Seller) Debit(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Debit amount must be positive")
	}
	if s.Balance.LessThan(amount) {
		return shared.ErrInsufficientBalance
	}

	s.Balance = s.Balance.Sub(amount)
	s.UpdatedAt = time.Now()

	return nil
}

// Lock locks the seller account
func (s *Seller) Lock(duration time.Duration) error {
	if s.Status == SellerStatusDeactivated {
		return shared.NewDomainError("SELLER_DEACTIVATED", "Cannot lock a deactivated seller")
	}

	s.Status = SellerStatusLocked
	if duration > 0 {
		lockedUntil := time.Now().Add(duration)
		s.LockedUntil = &lockedUntil
	}
	s.UpdatedAt = time.Now()

	return nil
}

// Unlock unlocks the seller account
func (s *Seller) Unlock() error {
	if s.Status != SellerStatusLocked {
		return shared.NewDomainError("NOT_LOCKED", "Seller is not locked")
	}

	s.Status = SellerStatusActive
	s.FailedAttempts = 0
	s.LockedUntil = nil
	s.UpdatedAt = time.Now()

	return nil
}

// RecordLoginSuccess records a successful login
func (s *Seller) RecordLoginSuccess(ip string) {
	now := time.Now()
	s.LastLoginAt = &now
	s.LastLoginIP = ip
	s.FailedAttempts = 0
	s.UpdatedAt = now
}

// RecordLoginFailure records a failed login attempt.
// Returns true if the account got locked.
func (s *Seller) RecordLoginFailure(maxAttempts int, lockDuration time.Duration) bool {
	s.FailedAttempts++
	s.UpdatedAt = time.Now()

	if s.FailedAttempts >= maxAttempts {
		_ = s.Lock(lockDuration)
		return true
	}

	return false
}

// IsLocked returns true if the seller is currently locked
func (s *Seller) IsLocked() bool {
	if s.Status != SellerStatusLocked {
		return false
	}

	// Lock may have expired
	if s.LockedUntil != nil && time.Now().After(*s.LockedUntil) {
		return false
	}

	return true
}

// CanLogin returns true if the seller can log in
func (s *Seller) CanLogin() bool {
	if s.Status == SellerStatusDeactivated {
		return false
	}
	return !s.IsLocked()
}

// Validation functions

func validateLogin(login string) error {
	login = strings.TrimSpace(login)
	if login == "" {
		return shared.NewDomainError("INVALID_LOGIN", "Login cannot be empty")
	}
	if len(login) < 3 {
		return shared.NewDomainError("INVALID_LOGIN", "Login must be at least 3 characters")
	}
	if len(login) > 100 {
		return shared.NewDomainError("INVALID_LOGIN", "Login cannot exceed 100 characters")
	}

	loginRegex := regexp.MustCompile(`^[a-zA-Z0-9_\-.@+]+$`)
	if !loginRegex.MatchString(login) {
		return shared.NewDomainError("INVALID_LOGIN", "Login can only contain letters, numbers, and _-.@+")
	}

	return nil
}

func validatePassword(password string) error {
	if password == "" {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot be empty")
	}
	if len(password) < 8 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}
	if len(password) > 128 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot exceed 128 characters")
	}

	hasLetter := regexp.MustCompile(`[a-zA-Z]`).MatchString(password)
	hasNumber := regexp.MustCompile(`[0-9]`).MatchString(password)
	if !hasLetter || !hasNumber {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must contain at least one letter and one number")
	}

	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
