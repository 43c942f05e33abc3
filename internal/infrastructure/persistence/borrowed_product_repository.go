package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/nasiya/backend/internal/domain/loan"
	"github.com/nasiya/backend/internal/domain/shared"
	"github.com/nasiya/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormBorrowedProductRepository implements BorrowedProductRepository using GORM
type GormBorrowedProductRepository struct {
	db *gorm.DB
}

// NewGormBorrowedProductRepository creates a new GormBorrowedProductRepository
func NewGormBorrowedProductRepository(db *gorm.DB) *GormBorrowedProductRepository {
	return &GormBorrowedProductRepository{db: db}
}

// FindByID finds a borrowed product by ID within a seller's scope
func (r *GormBorrowedProductRepository) FindByID(ctx context.Context, sellerID, id uuid.UUID) (*loan.BorrowedProduct, error) {
	var model models.BorrowedProductModel
	if err := r.db.WithContext(ctx).
		Where("seller_id = ? AND id = ?", sellerID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByDebtor finds all of a debtor's borrowed products, newest first
func (r *GormBorrowedProductRepository) FindByDebtor(ctx context.Context, sellerID, debtorID uuid.UUID) ([]loan.BorrowedProduct, error) {
	var productModels []models.BorrowedProductModel
	if err := r.db.WithContext(ctx).
		Where("seller_id = ? AND debtor_id = ?", sellerID, debtorID).
		Order("created_at DESC").
		Find(&productModels).Error; err != nil {
		return nil, err
	}

	products := make([]loan.BorrowedProduct, len(productModels))
	for i, model := range productModels {
		products[i] = *model.ToDomain()
	}
	return products, nil
}

// FindActiveBySeller finds all active borrowed products for a seller
func (r *GormBorrowedProductRepository) FindActiveBySeller(ctx context.Context, sellerID uuid.UUID) ([]loan.BorrowedProduct, error) {
	var productModels []models.BorrowedProductModel
	if err := r.db.WithContext(ctx).
		Where("seller_id = ? AND status = ?", sellerID, loan.ProductStatusActive).
		Find(&productModels).Error; err != nil {
		return nil, err
	}

	products := make([]loan.BorrowedProduct, len(productModels))
	for i, model := range productModels {
		products[i] = *model.ToDomain()
	}
	return products, nil
}

// Save creates or updates a borrowed product
func (r *GormBorrowedProductRepository) Save(ctx context.Context, p *loan.BorrowedProduct) error {
	model := models.BorrowedProductModelFromDomain(p)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLock saves a borrowed product with optimistic locking (version check)
func (r *GormBorrowedProductRepository) SaveWithLock(ctx context.Context, p *loan.BorrowedProduct) error {
	model := models.BorrowedProductModelFromDomain(p)
	result := r.db.WithContext(ctx).
		Model(model).
		Where("id = ? AND version = ?", p.ID, p.Version-1).
		Updates(model)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("OPTIMISTIC_LOCK_ERROR", "The product record has been modified by another transaction")
	}
	return nil
}

// Delete removes a borrowed product together with its payment records
func (r *GormBorrowedProductRepository) Delete(ctx context.Context, sellerID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&models.BorrowedProductModel{}, "seller_id = ? AND id = ?", sellerID, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return tx.Where("seller_id = ? AND product_id = ?", sellerID, id).
			Delete(&models.PaymentRecordModel{}).Error
	})
}

// Ensure GormBorrowedProductRepository implements BorrowedProductRepository
var _ loan.BorrowedProductRepository = (*GormBorrowedProductRepository)(nil)
