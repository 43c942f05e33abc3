package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/nasiya/backend/internal/domain/debtor"
	"github.com/nasiya/backend/internal/domain/shared"
	"github.com/nasiya/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormDebtorRepository implements DebtorRepository using GORM
type GormDebtorRepository struct {
	db *gorm.DB
}

// NewGormDebtorRepository creates a new GormDebtorRepository
func NewGormDebtorRepository(db *gorm.DB) *GormDebtorRepository {
	return &GormDebtorRepository{db: db}
}

// FindByID finds a debtor by ID within a seller's scope
func (r *GormDebtorRepository) FindByID(ctx context.Context, sellerID, id uuid.UUID) (*debtor.Debtor, error) {
	var model models.DebtorModel
	if err := r.db.WithContext(ctx).
		Preload("Phones").
		Where("seller_id = ? AND id = ?", sellerID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all debtors for a seller matching the filter
func (r *GormDebtorRepository) FindAll(ctx context.Context, sellerID uuid.UUID, filter shared.Filter) ([]debtor.Debtor, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&models.DebtorModel{}).
		Where("seller_id = ?", sellerID)

	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where(
			"name ILIKE ? OR id IN (SELECT debtor_id FROM debtor_phone_numbers WHERE number ILIKE ?)",
			searchPattern, searchPattern,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query.Preload("Phones").Order(debtorOrder(filter)), filter)

	var debtorModels []models.DebtorModel
	if err := query.Find(&debtorModels).Error; err != nil {
		return nil, 0, err
	}

	debtors := make([]debtor.Debtor, len(debtorModels))
	for i, model := range debtorModels {
		debtors[i] = *model.ToDomain()
	}
	return debtors, total, nil
}

// FindByIDs finds multiple debtors by their IDs within a seller's scope
func (r *GormDebtorRepository) FindByIDs(ctx context.Context, sellerID uuid.UUID, ids []uuid.UUID) ([]debtor.Debtor, error) {
	if len(ids) == 0 {
		return []debtor.Debtor{}, nil
	}

	var debtorModels []models.DebtorModel
	if err := r.db.WithContext(ctx).
		Preload("Phones").
		Where("seller_id = ? AND id IN ?", sellerID, ids).
		Find(&debtorModels).Error; err != nil {
		return nil, err
	}

	debtors := make([]debtor.Debtor, len(debtorModels))
	for i, model := range debtorModels {
		debtors[i] = *model.ToDomain()
	}
	return debtors, nil
}

// Save creates or updates a debtor together with its phone numbers
func (r *GormDebtorRepository) Save(ctx context.Context, d *debtor.Debtor) error {
	model := models.DebtorModelFromDomain(d)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Phones").Save(model).Error; err != nil {
			return err
		}
		return r.savePhones(tx, model)
	})
}

// SaveWithLock saves a debtor with optimistic locking (version check)
func (r *GormDebtorRepository) SaveWithLock(ctx context.Context, d *debtor.Debtor) error {
	model := models.DebtorModelFromDomain(d)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.DebtorModel{}).
			Where("id = ? AND version = ?", d.ID, d.Version-1).
			Omit("Phones").
			Updates(model)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.NewDomainError("OPTIMISTIC_LOCK_ERROR", "The debtor record has been modified by another transaction")
		}
		return r.savePhones(tx, model)
	})
}

// savePhones replaces the debtor's phone rows with the current set
func (r *GormDebtorRepository) savePhones(tx *gorm.DB, model *models.DebtorModel) error {
	currentIDs := make([]uuid.UUID, len(model.Phones))
	for i, p := range model.Phones {
		currentIDs[i] = p.ID
	}

	if len(currentIDs) > 0 {
		if err := tx.Where("debtor_id = ? AND id NOT IN ?", model.ID, currentIDs).
			Delete(&models.DebtorPhoneModel{}).Error; err != nil {
			return err
		}
	} else {
		if err := tx.Where("debtor_id = ?", model.ID).
			Delete(&models.DebtorPhoneModel{}).Error; err != nil {
			return err
		}
	}

	for i := range model.Phones {
		model.Phones[i].DebtorID = model.ID
		if err := tx.Save(&model.Phones[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a debtor and everything attached to it: phone numbers,
// borrowed products, payment records and message reports.
func (r *GormDebtorRepository) Delete(ctx context.Context, sellerID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&models.DebtorModel{}, "seller_id = ? AND id = ?", sellerID, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}

		if err := tx.Where("debtor_id = ?", id).
			Delete(&models.DebtorPhoneModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("seller_id = ? AND debtor_id = ?", sellerID, id).
			Delete(&models.BorrowedProductModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("seller_id = ? AND debtor_id = ?", sellerID, id).
			Delete(&models.PaymentRecordModel{}).Error; err != nil {
			return err
		}
		return tx.Where("seller_id = ? AND debtor_id = ?", sellerID, id).
			Delete(&models.MessageReportModel{}).Error
	})
}

// Count counts a seller's debtors
func (r *GormDebtorRepository) Count(ctx context.Context, sellerID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.DebtorModel{}).
		Where("seller_id = ?", sellerID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// debtorOrder resolves the ORDER BY clause for debtor listings
func debtorOrder(filter shared.Filter) string {
	if filter.OrderBy == "" {
		return "name ASC, id ASC"
	}
	field := ValidateSortField(filter.OrderBy, DebtorSortFields, "name")
	return field + " " + ValidateSortOrder(filter.OrderDir)
}

// Ensure GormDebtorRepository implements DebtorRepository
var _ debtor.DebtorRepository = (*GormDebtorRepository)(nil)
