package schedule

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/nasiya/backend/internal/domain/loan"
	"github.com/shopspring/decimal"
)

// StatusPending is the status of every calendar obligation. Obligations
// describe what is due on a day, not what was collected.
const StatusPending = "pending"

// DebtorInfo is the slice of debtor state the matcher needs
type DebtorInfo struct {
	ID        uuid.UUID
	Name      string
	TotalDebt decimal.Decimal
}

// Obligation is a payment expected on a calendar day
type Obligation struct {
	DebtorID    uuid.UUID       `json:"debtorId"`
	DebtorName  string          `json:"debtorName"`
	ProductID   uuid.UUID       `json:"productId"`
	ProductName string          `json:"productName"`
	Amount      decimal.Decimal `json:"amount"`
	Status      string          `json:"status"`
}

// SameUTCDay reports whether two instants fall on the same calendar day
// in UTC. Only the UTC year, month and day components are compared; the
// time of day is ignored, so 2024-10-01T23:30:00Z belongs to October 1st
// on every host.
func SameUTCDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

// MatchDay returns the obligations of the given calendar day: every due
// date of every active product whose UTC day equals the selected day.
// The amount is the product's monthly installment when it is set,
// otherwise the debtor's total outstanding debt. Matches whose debtor
// is absent from the debtors map are dropped. Results are ordered by
// debtor name, then debtor ID.
func MatchDay(products []loan.BorrowedProduct, debtors map[uuid.UUID]DebtorInfo, day time.Time) []Obligation {
	obligations := make([]Obligation, 0)

	for i := range products {
		p := &products[i]
		if !p.IsActive() {
			continue
		}

		for _, due := range p.DueDates() {
			if !SameUTCDay(due, day) {
				continue
			}

			info, ok := debtors[p.DebtorID]
			if !ok {
				// debtor removed since the product was loaded
				continue
			}

			amount := p.MonthPayment
			if amount.LessThanOrEqual(decimal.Zero) {
				amount = info.TotalDebt
			}

			obligations = append(obligations, Obligation{
				DebtorID:    info.ID,
				DebtorName:  info.Name,
				ProductID:   p.ID,
				ProductName: p.ProductName,
				Amount:      amount,
				Status:      StatusPending,
			})
		}
	}

	sort.Slice(obligations, func(i, j int) bool {
		if obligations[i].DebtorName != obligations[j].DebtorName {
			return obligations[i].DebtorName < obligations[j].DebtorName
		}
		return obligations[i].DebtorID.String() < obligations[j].DebtorID.String()
	})

	return obligations
}

// DaysWithObligations returns the sorted distinct days of the month
// (1-based) on which at least one active product has a due date.
func DaysWithObligations(products []loan.BorrowedProduct, year int, month time.Month) []int {
	seen := make(map[int]bool)

	for i := range products {
		p := &products[i]
		if !p.IsActive() {
			continue
		}
		for _, due := range p.DueDates() {
			y, m, d := due.UTC().Date()
			if y == year && m == month {
				seen[d] = true
			}
		}
	}

	days := make([]int, 0, len(seen))
	for d := range seen {
		days = append(days, d)
	}
	sort.Ints(days)

	return days
}

// PaymentDay pairs a debtor with the day of month a payment is due,
// used by the monthly dashboard summary.
type PaymentDay struct {
	DebtorID   uuid.UUID `json:"debtorId"`
	PaymentDay int       `json:"paymentDay"`
}

// PaymentDaysInMonth returns one entry per active product due date in
// the month, ordered by day then debtor ID.
func PaymentDaysInMonth(products []loan.BorrowedProduct, year int, month time.Month) []PaymentDay {
	entries := make([]PaymentDay, 0)

	for i := range products {
		p := &products[i]
		if !p.IsActive() {
			continue
		}
		for _, due := range p.DueDates() {
			y, m, d := due.UTC().Date()
			if y == year && m == month {
				entries = append(entries, PaymentDay{DebtorID: p.DebtorID, PaymentDay: d})
			}
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].PaymentDay != entries[j].PaymentDay {
			return entries[i].PaymentDay < entries[j].PaymentDay
		}
		return entries[i].DebtorID.String() < entries[j].DebtorID.String()
	})

	return entries
}
