package messaging

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Template placeholders supported in sample text
const (
	PlaceholderName   = "{name}"
	PlaceholderAmount = "{amount}"
	PlaceholderDate   = "{date}"
)

var amountPrinter = message.NewPrinter(language.MustParse("uz"))

// Render substitutes the template placeholders: the debtor's name, the
// due amount formatted with grouped thousands and a "so'm" suffix, and
// the due date as DD.MM.YYYY.
func Render(template, debtorName string, amount decimal.Decimal, dueDate time.Time) string {
	out := strings.ReplaceAll(template, PlaceholderName, debtorName)
	out = strings.ReplaceAll(out, PlaceholderAmount, FormatAmount(amount))
	out = strings.ReplaceAll(out, PlaceholderDate, dueDate.UTC().Format("02.01.2006"))
	return out
}

// FormatAmount renders a monetary amount with locale-grouped thousands
// and the so'm currency word, dropping fractional tiyin.
func FormatAmount(amount decimal.Decimal) string {
	return amountPrinter.Sprintf("%d so'm", amount.Round(0).IntPart())
}
