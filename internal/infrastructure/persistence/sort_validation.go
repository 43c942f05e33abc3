package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// CommonSortFields contains fields common to most entities
var CommonSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
}

// DebtorSortFields contains allowed sort fields for debtors
var DebtorSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"address":    true,
	"role":       true,
}

// BorrowedProductSortFields contains allowed sort fields for borrowed products
var BorrowedProductSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"product_name":  true,
	"total_amount":  true,
	"month_payment": true,
	"paid_amount":   true,
	"term_months":   true,
	"start_date":    true,
	"status":        true,
}

// PaymentRecordSortFields contains allowed sort fields for payment records
var PaymentRecordSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"amount":     true,
}

// WalletTransactionSortFields contains allowed sort fields for wallet transactions
var WalletTransactionSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"type":       true,
	"amount":     true,
}

// MessageReportSortFields contains allowed sort fields for message reports
var MessageReportSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"sent":       true,
}
