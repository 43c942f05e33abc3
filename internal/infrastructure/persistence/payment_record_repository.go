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

// GormPaymentRecordRepository implements PaymentRecordRepository using GORM
type GormPaymentRecordRepository struct {
	db *gorm.DB
}

// NewGormPaymentRecordRepository creates a new GormPaymentRecordRepository
func NewGormPaymentRecordRepository(db *gorm.DB) *GormPaymentRecordRepository {
	return &GormPaymentRecordRepository{db: db}
}

// FindByID finds a payment record by ID within a seller's scope
func (r *GormPaymentRecordRepository) FindByID(ctx context.Context, sellerID, id uuid.UUID) (*loan.PaymentRecord, error) {
	var model models.PaymentRecordModel
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

// FindByProduct finds a product's payment records, newest first
func (r *GormPaymentRecordRepository) FindByProduct(ctx context.Context, sellerID, productID uuid.UUID) ([]loan.PaymentRecord, error) {
	var recordModels []models.PaymentRecordModel
	if err := r.db.WithContext(ctx).
		Where("seller_id = ? AND product_id = ?", sellerID, productID).
		Order("created_at DESC").
		Find(&recordModels).Error; err != nil {
		return nil, err
	}
	return toPaymentRecords(recordModels), nil
}

// FindByDebtor finds a debtor's payment records, newest first
func (r *GormPaymentRecordRepository) FindByDebtor(ctx context.Context, sellerID, debtorID uuid.UUID) ([]loan.PaymentRecord, error) {
	var recordModels []models.PaymentRecordModel
	if err := r.db.WithContext(ctx).
		Where("seller_id = ? AND debtor_id = ?", sellerID, debtorID).
		Order("created_at DESC").
		Find(&recordModels).Error; err != nil {
		return nil, err
	}
	return toPaymentRecords(recordModels), nil
}

// FindBySeller finds payment records for a seller, newest first
func (r *GormPaymentRecordRepository) FindBySeller(ctx context.Context, sellerID uuid.UUID, filter shared.Filter) ([]loan.PaymentRecord, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&models.PaymentRecordModel{}).
		Where("seller_id = ?", sellerID)

	if debtorID, ok := filter.Filters["debtor_id"]; ok {
		query = query.Where("debtor_id = ?", debtorID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := ValidateSortField(filter.OrderBy, PaymentRecordSortFields, "created_at") +
		" " + ValidateSortOrder(filter.OrderDir)

	var recordModels []models.PaymentRecordModel
	if err := applyPagination(query.Order(order), filter).
		Find(&recordModels).Error; err != nil {
		return nil, 0, err
	}
	return toPaymentRecords(recordModels), total, nil
}

// Save creates a payment record
func (r *GormPaymentRecordRepository) Save(ctx context.Context, record *loan.PaymentRecord) error {
	model := models.PaymentRecordModelFromDomain(record)
	return r.db.WithContext(ctx).Save(model).Error
}

func toPaymentRecords(recordModels []models.PaymentRecordModel) []loan.PaymentRecord {
	records := make([]loan.PaymentRecord, len(recordModels))
	for i, model := range recordModels {
		records[i] = *model.ToDomain()
	}
	return records
}

// Ensure GormPaymentRecordRepository implements PaymentRecordRepository
var _ loan.PaymentRecordRepository = (*GormPaymentRecordRepository)(nil)
