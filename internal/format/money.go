// Package format renders amounts in the smallest currency unit as localized strings.
package format

import (
	"fmt"
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Formatter formats amounts for one currency and locale.
type Formatter struct {
	unit    currency.Unit
	scale   int
	divisor int64
	decimal string // locale decimal separator
	printer *message.Printer
}

// New returns a Formatter for an ISO 4217 code (e.g. "KRW") and a BCP 47
// language tag (e.g. "ko-KR").
func New(code, locale string) (*Formatter, error) {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return nil, fmt.Errorf("unknown currency %q: %w", code, err)
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("unknown locale %q: %w", locale, err)
	}
	scale, _ := currency.Standard.Rounding(unit)
	divisor := int64(1)
	for i := 0; i < scale; i++ {
		divisor *= 10
	}
	printer := message.NewPrinter(tag)
	return &Formatter{
		unit:    unit,
		scale:   scale,
		divisor: divisor,
		// "1.5" rendered by the locale, minus its digits
		decimal: strings.Trim(printer.Sprintf("%.1f", 1.5), "15"),
		printer: printer,
	}, nil
}

// Money formats amount, given in minor units, with grouping and the ISO code,
// e.g. 1234567 KRW -> "1,234,567 KRW" and 123450 USD -> "1,234.50 USD".
// Whole and fractional parts are formatted as integers, so no precision is lost.
func (f *Formatter) Money(amount int64) string {
	if f.scale == 0 {
		return f.printer.Sprintf("%d %s", amount, f.unit.String())
	}
	whole, frac := amount/f.divisor, amount%f.divisor
	sign := ""
	if amount < 0 {
		sign = "-"
		// Both parts negate safely after dividing, even for math.MinInt64
		whole, frac = -whole, -frac
	}
	return fmt.Sprintf("%s%s%s%0*d %s", sign, f.printer.Sprintf("%d", whole), f.decimal, f.scale, frac, f.unit.String())
}

// Number formats an integer with locale grouping.
func (f *Formatter) Number(n int64) string {
	return f.printer.Sprintf("%d", n)
}

// Currency returns the ISO code.
func (f *Formatter) Currency() string {
	return f.unit.String()
}
