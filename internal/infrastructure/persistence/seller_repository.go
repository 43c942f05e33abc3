package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/nasiya/backend/internal/domain/identity"
	"github.com/nasiya/backend/internal/domain/shared"
	"github.com/nasiya/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormSellerRepository implements SellerRepository using GORM
type GormSellerRepository struct {
	db *gorm.DB
}

// NewGormSellerRepository creates a new GormSellerRepository
func NewGormSellerRepository(db *gorm.DB) *GormSellerRepository {
	return &GormSellerRepository{db: db}
}

// FindByID finds a seller by its ID
func (r *GormSellerRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Seller, error) {
	var model models.SellerModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByLogin finds a seller by login name
func (r *GormSellerRepository) FindByLogin(ctx context.Context, login string) (*identity.Seller, error) {
	var model models.SellerModel
	if err := r.db.WithContext(ctx).
		Where("login = ?", strings.ToLower(login)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ExistsByLogin checks if a seller with the given login exists
func (r *GormSellerRepository) ExistsByLogin(ctx context.Context, login string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.SellerModel{}).
		Where("login = ?", strings.ToLower(login)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a seller
func (r *GormSellerRepository) Save(ctx context.Context, seller *identity.Seller) error {
	model := models.SellerModelFromDomain(seller)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLock saves a seller with optimistic locking (version check).
// Returns error if the version has changed (concurrent modification).
func (r *GormSellerRepository) SaveWithLock(ctx context.Context, seller *identity.Seller) error {
	model := models.SellerModelFromDomain(seller)
	result := r.db.WithContext(ctx).
		Model(model).
		Where("id = ? AND version = ?", seller.ID, seller.Version-1).
		Updates(model)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("OPTIMISTIC_LOCK_ERROR", "The seller record has been modified by another transaction")
	}
	return nil
}

// Delete deletes a seller
func (r *GormSellerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.SellerModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormSellerRepository implements SellerRepository
var _ identity.SellerRepository = (*GormSellerRepository)(nil)

// GormWalletTransactionRepository implements WalletTransactionRepository using GORM
type GormWalletTransactionRepository struct {
	db *gorm.DB
}

// NewGormWalletTransactionRepository creates a new GormWalletTransactionRepository
func NewGormWalletTransactionRepository(db *gorm.DB) *GormWalletTransactionRepository {
	return &GormWalletTransactionRepository{db: db}
}

// FindBySeller finds wallet transactions for a seller, newest first
func (r *GormWalletTransactionRepository) FindBySeller(ctx context.Context, sellerID uuid.UUID, filter shared.Filter) ([]identity.WalletTransaction, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&models.WalletTransactionModel{}).
		Where("seller_id = ?", sellerID)

	if txType, ok := filter.Filters["type"]; ok {
		query = query.Where("type = ?", txType)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := ValidateSortField(filter.OrderBy, WalletTransactionSortFields, "created_at") +
		" " + ValidateSortOrder(filter.OrderDir)

	var txModels []models.WalletTransactionModel
	if err := applyPagination(query.Order(order), filter).
		Find(&txModels).Error; err != nil {
		return nil, 0, err
	}

	transactions := make([]identity.WalletTransaction, len(txModels))
	for i, model := range txModels {
		transactions[i] = *model.ToDomain()
	}
	return transactions, total, nil
}

// Save creates a wallet transaction record
func (r *GormWalletTransactionRepository) Save(ctx context.Context, tx *identity.WalletTransaction) error {
	model := models.WalletTransactionModelFromDomain(tx)
	return r.db.WithContext(ctx).Save(model).Error
}

// Ensure GormWalletTransactionRepository implements WalletTransactionRepository
var _ identity.WalletTransactionRepository = (*GormWalletTransactionRepository)(nil)

// applyPagination applies page/page-size options to the query
func applyPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}
	return query
}
