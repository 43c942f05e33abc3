package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/nasiya/backend/internal/domain/identity"
	"github.com/nasiya/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// SellerService handles seller profile and wallet operations
type SellerService struct {
	sellerRepo identity.SellerRepository
	walletRepo identity.WalletTransactionRepository
	logger     *zap.Logger
}

// NewSellerService creates a new seller service
func NewSellerService(
	sellerRepo identity.SellerRepository,
	walletRepo identity.WalletTransactionRepository,
	logger *zap.Logger,
) *SellerService {
	return &SellerService{
		sellerRepo: sellerRepo,
		walletRepo: walletRepo,
		logger:     logger,
	}
}

// GetProfile returns the seller's profile
func (s *SellerService) GetProfile(ctx context.Context, sellerID uuid.UUID) (*SellerInfo, error) {
	seller, err := s.sellerRepo.FindByID(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	info := NewSellerInfo(seller)
	return &info, nil
}

// UpdateProfile applies the provided profile field updates
func (s *SellerService) UpdateProfile(ctx context.Context, sellerID uuid.UUID, input UpdateProfileInput) (*SellerInfo, error) {
	seller, err := s.sellerRepo.FindByID(ctx, sellerID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if err := seller.SetName(*input.Name); err != nil {
			return nil, err
		}
	}
	if input.Phone != nil {
		if err := seller.SetPhone(*input.Phone); err != nil {
			return nil, err
		}
	}
	if input.ImageURL != nil {
		if err := seller.SetImageURL(*input.ImageURL); err != nil {
			return nil, err
		}
	}

	seller.IncrementVersion()
	if err := s.sellerRepo.SaveWithLock(ctx, seller); err != nil {
		return nil, err
	}

	s.logger.Info("Seller profile updated", zap.String("seller_id", sellerID.String()))

	info := NewSellerInfo(seller)
	return &info, nil
}

// ChangePassword verifies the old password and sets the new one
func (s *SellerService) ChangePassword(ctx context.Context, sellerID uuid.UUID, input ChangePasswordInput) error {
	seller, err := s.sellerRepo.FindByID(ctx, sellerID)
	if err != nil {
		return err
	}

	if err := seller.ChangePassword(input.OldPassword, input.NewPassword); err != nil {
		s.logger.Warn("Password change rejected",
			zap.String("seller_id", sellerID.String()),
			zap.Error(err))
		return err
	}

	seller.IncrementVersion()
	if err := s.sellerRepo.SaveWithLock(ctx, seller); err != nil {
		return err
	}

	s.logger.Info("Seller password changed", zap.String("seller_id", sellerID.String()))
	return nil
}

// TopUpWallet credits the seller's wallet and records the transaction
func (s *SellerService) TopUpWallet(ctx context.Context, sellerID uuid.UUID, input TopUpInput) (*SellerInfo, error) {
	seller, err := s.sellerRepo.FindByID(ctx, sellerID)
	if err != nil {
		return nil, err
	}

	if err := seller.TopUp(input.Amount); err != nil {
		return nil, err
	}

	tx, err := identity.NewWalletTransaction(sellerID, identity.WalletTransactionTopUp, input.Amount, input.Note)
	if err != nil {
		return nil, err
	}

	seller.IncrementVersion()
	if err := s.sellerRepo.SaveWithLock(ctx, seller); err != nil {
		return nil, err
	}
	if err := s.walletRepo.Save(ctx, tx); err != nil {
		s.logger.Error("Failed to record wallet top-up transaction",
			zap.String("seller_id", sellerID.String()),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("Wallet topped up",
		zap.String("seller_id", sellerID.String()),
		zap.String("amount", input.Amount.String()))

	info := NewSellerInfo(seller)
	return &info, nil
}

// WalletTransactions lists the seller's wallet transactions, newest first
func (s *SellerService) WalletTransactions(ctx context.Context, sellerID uuid.UUID, filter shared.Filter) (*shared.Paginated[WalletTransactionInfo], error) {
	transactions, total, err := s.walletRepo.FindBySeller(ctx, sellerID, filter)
	if err != nil {
		return nil, err
	}

	items := make([]WalletTransactionInfo, len(transactions))
	for i := range transactions {
		items[i] = NewWalletTransactionInfo(&transactions[i])
	}

	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}
