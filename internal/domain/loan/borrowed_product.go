package loan

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nasiya/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ProductStatus represents the lifecycle status of a borrowed product
type ProductStatus string

const (
	ProductStatusActive    ProductStatus = "active"
	ProductStatusPaid      ProductStatus = "paid"
	ProductStatusCancelled ProductStatus = "cancelled"
)

// BorrowedProduct is a good sold to a debtor on installment credit.
// TotalAmount is the full credit price, split into TermMonths monthly
// installments of MonthPayment each, due monthly after StartDate.
type BorrowedProduct struct {
	shared.SellerAggregateRoot
	DebtorID     uuid.UUID
	ProductName  string
	Note         string
	TotalAmount  decimal.Decimal
	TermMonths   int
	MonthPayment decimal.Decimal
	PaidAmount   decimal.Decimal
	StartDate    time.Time
	Images       []string
	Status       ProductStatus
}

// NewBorrowedProduct creates a borrowed product. When monthPayment is
// zero it is derived from totalAmount and termMonths.
func NewBorrowedProduct(sellerID, debtorID uuid.UUID, productName string, totalAmount decimal.Decimal, termMonths int, monthPayment decimal.Decimal, startDate time.Time) (*BorrowedProduct, error) {
	if sellerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SELLER_ID", "Seller ID cannot be empty")
	}
	if debtorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_DEBTOR_ID", "Debtor ID cannot be empty")
	}
	if err := validateProductName(productName); err != nil {
		return nil, err
	}
	if totalAmount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Total amount must be positive")
	}
	if termMonths < 1 {
		return nil, shared.NewDomainError("INVALID_TERM", "Term must be at least one month")
	}
	if monthPayment.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Month payment cannot be negative")
	}

	if monthPayment.IsZero() {
		monthPayment = deriveMonthPayment(totalAmount, termMonths)
	}
	if startDate.IsZero() {
		startDate = time.Now().UTC()
	}

	return &BorrowedProduct{
		SellerAggregateRoot: shared.NewSellerAggregateRoot(sellerID),
		DebtorID:            debtorID,
		ProductName:         strings.TrimSpace(productName),
		TotalAmount:         totalAmount,
		TermMonths:          termMonths,
		MonthPayment:        monthPayment,
		PaidAmount:          decimal.Zero,
		StartDate:           startDate.UTC(),
		Images:              make([]string, 0),
		Status:              ProductStatusActive,
	}, nil
}

// SetProductName updates the product name
func (p *BorrowedProduct) SetProductName(name string) error {
	if err := validateProductName(name); err != nil {
		return err
	}

	p.ProductName = strings.TrimSpace(name)
	p.touch()

	return nil
}

// SetNote updates the free-form note
func (p *BorrowedProduct) SetNote(note string) error {
	if len(note) > 2000 {
		return shared.NewDomainError("INVALID_NOTE", "Note cannot exceed 2000 characters")
	}

	p.Note = note
	p.touch()

	return nil
}

// SetImages replaces the image URL list
func (p *BorrowedProduct) SetImages(urls []string) error {
	images := make([]string, 0, len(urls))
	for _, u := range urls {
		if len(u) > 500 {
			return shared.NewDomainError("INVALID_IMAGE_URL", "Image URL cannot exceed 500 characters")
		}
		if strings.TrimSpace(u) != "" {
			images = append(images, u)
		}
	}

	p.Images = images
	p.touch()

	return nil
}

// Reprice changes the credit terms. When explicitMonthPayment is nil
// the monthly installment is re-derived from the new total and term.
func (p *BorrowedProduct) Reprice(totalAmount decimal.Decimal, termMonths int, explicitMonthPayment *decimal.Decimal) error {
	if totalAmount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Total amount must be positive")
	}
	if termMonths < 1 {
		return shared.NewDomainError("INVALID_TERM", "Term must be at least one month")
	}

	p.TotalAmount = totalAmount
	p.TermMonths = termMonths
	if explicitMonthPayment != nil {
		if explicitMonthPayment.IsNegative() {
			return shared.NewDomainError("INVALID_AMOUNT", "Month payment cannot be negative")
		}
		p.MonthPayment = *explicitMonthPayment
	} else {
		p.MonthPayment = deriveMonthPayment(totalAmount, termMonths)
	}

	if p.PaidAmount.GreaterThanOrEqual(p.TotalAmount) {
		p.Status = ProductStatusPaid
	} else if p.Status == ProductStatusPaid {
		p.Status = ProductStatusActive
	}
	p.touch()

	return nil
}

// ApplyPayment records an amount paid toward the credit. Overpayment is
// allowed; the remaining amount floors at zero and the product becomes
// paid once covered.
func (p *BorrowedProduct) ApplyPayment(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if p.Status == ProductStatusCancelled {
		return shared.ErrInvalidState
	}

	p.PaidAmount = p.PaidAmount.Add(amount)
	if p.PaidAmount.GreaterThanOrEqual(p.TotalAmount) {
		p.Status = ProductStatusPaid
	}
	p.touch()

	return nil
}

// Cancel marks the product cancelled
func (p *BorrowedProduct) Cancel() error {
	if p.Status == ProductStatusCancelled {
		return shared.ErrInvalidState
	}

	p.Status = ProductStatusCancelled
	p.touch()

	return nil
}

// RemainingAmount returns the outstanding debt, never negative
func (p *BorrowedProduct) RemainingAmount() decimal.Decimal {
	remaining := p.TotalAmount.Sub(p.PaidAmount)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

// IsActive returns true while the credit is still being repaid
func (p *BorrowedProduct) IsActive() bool {
	return p.Status == ProductStatusActive
}

// DueDates returns the monthly installment due dates in UTC:
// StartDate plus 1..TermMonths months, day-of-month clamped to the
// target month's length.
func (p *BorrowedProduct) DueDates() []time.Time {
	dates := make([]time.Time, 0, p.TermMonths)
	for i := 1; i <= p.TermMonths; i++ {
		dates = append(dates, AddMonthsClamped(p.StartDate, i))
	}
	return dates
}

// NextDueDate returns the earliest installment not yet covered by the
// paid amount, or nil when the credit is fully covered.
func (p *BorrowedProduct) NextDueDate() *time.Time {
	if p.MonthPayment.LessThanOrEqual(decimal.Zero) {
		if p.RemainingAmount().IsZero() {
			return nil
		}
		d := AddMonthsClamped(p.StartDate, 1)
		return &d
	}

	covered := int(p.PaidAmount.Div(p.MonthPayment).IntPart())
	if covered >= p.TermMonths {
		return nil
	}
	d := AddMonthsClamped(p.StartDate, covered+1)
	return &d
}

// AddMonthsClamped adds months to a UTC date keeping the day of month,
// clamped to the last day of the target month. Go's AddDate normalizes
// Jan 31 + 1 month to Mar 3; installment schedules need Feb 28 instead.
func AddMonthsClamped(t time.Time, months int) time.Time {
	t = t.UTC()
	year, month, day := t.Date()

	m := int(month) + months
	y := year + (m-1)/12
	m = (m-1)%12 + 1
	if m <= 0 {
		m += 12
		y--
	}

	last := lastDayOfMonth(y, time.Month(m))
	if day > last {
		day = last
	}

	return time.Date(y, time.Month(m), day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

func lastDayOfMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func (p *BorrowedProduct) touch() {
	p.Touch()
}

func deriveMonthPayment(total decimal.Decimal, termMonths int) decimal.Decimal {
	return total.DivRound(decimal.NewFromInt(int64(termMonths)), 2)
}

func validateProductName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}
