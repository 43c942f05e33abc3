// Package telemetry provides OpenTelemetry integration for metrics collection.
package telemetry

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPortfolioMetricsProvider implements PortfolioMetricsProvider using GORM.
// It queries the borrowed_products table directly for aggregated metrics.
type GormPortfolioMetricsProvider struct {
	db *gorm.DB
}

// NewGormPortfolioMetricsProvider creates a new GormPortfolioMetricsProvider.
func NewGormPortfolioMetricsProvider(db *gorm.DB) *GormPortfolioMetricsProvider {
	return &GormPortfolioMetricsProvider{db: db}
}

// GetOutstandingTotal returns the sum of unpaid amounts across a seller's
// active borrowed products, in the smallest currency unit.
func (p *GormPortfolioMetricsProvider) GetOutstandingTotal(ctx context.Context, sellerID uuid.UUID) (int64, error) {
	var totalTiyin int64
	err := p.db.WithContext(ctx).
		Table("borrowed_products").
		Select("COALESCE(SUM(ROUND((total_amount - paid_amount) * 100)), 0)").
		Where("seller_id = ? AND status = ?", sellerID, "active").
		Scan(&totalTiyin).Error

	return totalTiyin, err
}

// GetActiveDebtorCount returns the number of debtors with at least one
// active borrowed product for a seller.
func (p *GormPortfolioMetricsProvider) GetActiveDebtorCount(ctx context.Context, sellerID uuid.UUID) (int64, error) {
	var count int64
	err := p.db.WithContext(ctx).
		Table("borrowed_products").
		Where("seller_id = ? AND status = ?", sellerID, "active").
		Distinct("debtor_id").
		Count(&count).Error

	return count, err
}

// GormSellerProvider implements SellerProvider using GORM.
type GormSellerProvider struct {
	db *gorm.DB
}

// NewGormSellerProvider creates a new GormSellerProvider.
func NewGormSellerProvider(db *gorm.DB) *GormSellerProvider {
	return &GormSellerProvider{db: db}
}

// GetActiveSellerIDs returns all active seller IDs.
func (p *GormSellerProvider) GetActiveSellerIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := p.db.WithContext(ctx).
		Table("sellers").
		Select("id").
		Where("status = ?", "active").
		Find(&ids).Error

	return ids, err
}
