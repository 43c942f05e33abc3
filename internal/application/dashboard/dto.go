package dashboard

import (
	"github.com/google/uuid"
	"github.com/nasiya/backend/internal/domain/schedule"
	"github.com/shopspring/decimal"
)

// MonthTotalResult summarizes the seller's obligations for one month
type MonthTotalResult struct {
	ThisMonthDebtorsCount int                   `json:"thisMonthDebtorsCount"`
	ThisMonthTotalAmount  decimal.Decimal       `json:"thisMonthTotalAmount"`
	Debtors               []MonthDebtor         `json:"debtors"`
	PaymentDays           []schedule.PaymentDay `json:"paymentDays"`
}

// MonthDebtor is one debtor with obligations in the selected month
type MonthDebtor struct {
	DebtorID   uuid.UUID       `json:"debtorId"`
	DebtorName string          `json:"debtorName"`
	Amount     decimal.Decimal `json:"amount"`
}

// LateCustomersResult lists debtors with overdue unpaid products
type LateCustomersResult struct {
	LateDebtorsCount int          `json:"lateDebtorsCount"`
	LateDebtors      []LateDebtor `json:"lateDebtors"`
}

// LateDebtor is one debtor with an overdue remaining amount
type LateDebtor struct {
	DebtorID   uuid.UUID       `json:"debtorId"`
	DebtorName string          `json:"debtorName"`
	Amount     decimal.Decimal `json:"amount"`
}

// TotalOutstandingResult carries the all-products outstanding figure
type TotalOutstandingResult struct {
	TotalAmount decimal.Decimal `json:"totalAmount"`
}

// PaymentDaysResult lists the days of a month with at least one
// obligation, for calendar dot markers
type PaymentDaysResult struct {
	Days []int `json:"days"`
}
