package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/nasiya/backend/internal/domain/messaging"
	"github.com/nasiya/backend/internal/domain/shared"
	"github.com/nasiya/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormMessageReportRepository implements MessageReportRepository using GORM
type GormMessageReportRepository struct {
	db *gorm.DB
}

// NewGormMessageReportRepository creates a new GormMessageReportRepository
func NewGormMessageReportRepository(db *gorm.DB) *GormMessageReportRepository {
	return &GormMessageReportRepository{db: db}
}

// FindByID finds a message report by ID within a seller's scope
func (r *GormMessageReportRepository) FindByID(ctx context.Context, sellerID, id uuid.UUID) (*messaging.MessageReport, error) {
	var model models.MessageReportModel
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

// FindByDebtor returns the debtor's message thread in chronological order
func (r *GormMessageReportRepository) FindByDebtor(ctx context.Context, sellerID, debtorID uuid.UUID) ([]messaging.MessageReport, error) {
	var reportModels []models.MessageReportModel
	if err := r.db.WithContext(ctx).
		Where("seller_id = ? AND debtor_id = ?", sellerID, debtorID).
		Order("created_at ASC").
		Find(&reportModels).Error; err != nil {
		return nil, err
	}

	reports := make([]messaging.MessageReport, len(reportModels))
	for i, model := range reportModels {
		reports[i] = *model.ToDomain()
	}
	return reports, nil
}

// FindBySeller finds message reports for a seller, newest first
func (r *GormMessageReportRepository) FindBySeller(ctx context.Context, sellerID uuid.UUID, filter shared.Filter) ([]messaging.MessageReport, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&models.MessageReportModel{}).
		Where("seller_id = ?", sellerID)

	if sent, ok := filter.Filters["sent"]; ok {
		query = query.Where("sent = ?", sent)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := ValidateSortField(filter.OrderBy, MessageReportSortFields, "created_at") +
		" " + ValidateSortOrder(filter.OrderDir)

	var reportModels []models.MessageReportModel
	if err := applyPagination(query.Order(order), filter).
		Find(&reportModels).Error; err != nil {
		return nil, 0, err
	}

	reports := make([]messaging.MessageReport, len(reportModels))
	for i, model := range reportModels {
		reports[i] = *model.ToDomain()
	}
	return reports, total, nil
}

// Save creates or updates a message report
func (r *GormMessageReportRepository) Save(ctx context.Context, report *messaging.MessageReport) error {
	model := models.MessageReportModelFromDomain(report)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a message report within a seller's scope
func (r *GormMessageReportRepository) Delete(ctx context.Context, sellerID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Delete(&models.MessageReportModel{}, "seller_id = ? AND id = ?", sellerID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormMessageReportRepository implements MessageReportRepository
var _ messaging.MessageReportRepository = (*GormMessageReportRepository)(nil)

// GormMessageSampleRepository implements MessageSampleRepository using GORM
type GormMessageSampleRepository struct {
	db *gorm.DB
}

// NewGormMessageSampleRepository creates a new GormMessageSampleRepository
func NewGormMessageSampleRepository(db *gorm.DB) *GormMessageSampleRepository {
	return &GormMessageSampleRepository{db: db}
}

// FindByID finds a message sample by ID within a seller's scope
func (r *GormMessageSampleRepository) FindByID(ctx context.Context, sellerID, id uuid.UUID) (*messaging.MessageSample, error) {
	var model models.MessageSampleModel
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

// FindBySeller finds all message samples owned by a seller, newest first
func (r *GormMessageSampleRepository) FindBySeller(ctx context.Context, sellerID uuid.UUID) ([]messaging.MessageSample, error) {
	var sampleModels []models.MessageSampleModel
	if err := r.db.WithContext(ctx).
		Where("seller_id = ?", sellerID).
		Order("created_at DESC").
		Find(&sampleModels).Error; err != nil {
		return nil, err
	}

	samples := make([]messaging.MessageSample, len(sampleModels))
	for i, model := range sampleModels {
		samples[i] = *model.ToDomain()
	}
	return samples, nil
}

// Save creates or updates a message sample
func (r *GormMessageSampleRepository) Save(ctx context.Context, sample *messaging.MessageSample) error {
	model := models.MessageSampleModelFromDomain(sample)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a message sample within a seller's scope
func (r *GormMessageSampleRepository) Delete(ctx context.Context, sellerID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Delete(&models.MessageSampleModel{}, "seller_id = ? AND id = ?", sellerID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormMessageSampleRepository implements MessageSampleRepository
var _ messaging.MessageSampleRepository = (*GormMessageSampleRepository)(nil)
