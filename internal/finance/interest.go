package finance

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidPrincipal = errors.New("principal must be positive")
	ErrInvalidRate      = errors.New("rate cannot be negative")
	ErrInvalidTerm      = errors.New("term must be between 1 and 600 months")
	ErrUnknownOption    = errors.New("unknown option")
)

// maxTermMonths caps the accrual loop for compounding.
const maxTermMonths = 600

// Product is the kind of account interest accrues on.
type Product string

const (
	// Deposit is a lump sum held for the whole term.
	Deposit Product = "deposit"
	// Savings is a fixed installment paid at the start of every month.
	Savings Product = "savings"
)

// Method is how interest accrues.
type Method string

const (
	Simple          Method = "simple"
	MonthlyCompound Method = "monthly_compound"
)

// Taxation selects the withholding rate applied to interest income.
type Taxation string

const (
	General      Taxation = "general"      // 14% income tax + 1.4% local tax
	Preferential Taxation = "preferential" // 9.5% tax-preferred savings
	Exempt       Taxation = "exempt"
)

var taxRates = map[Taxation]decimal.Decimal{
	General:      decimal.RequireFromString("0.154"),
	Preferential: decimal.RequireFromString("0.095"),
	Exempt:       decimal.Zero,
}

// InterestInput describes one interest calculation.
type InterestInput struct {
	Product Product

	// Principal is the lump sum for Deposit or the monthly installment for Savings.
	Principal int64

	// AnnualRate is a percentage, e.g. 3.5 for 3.5%.
	AnnualRate decimal.Decimal

	Months   int
	Method   Method
	Taxation Taxation
}

// InterestResult holds the outcome of an interest calculation.
// All amounts are floored to the currency unit.
type InterestResult struct {
	Principal        int64 // total paid in
	Interest         int64 // before tax
	Tax              int64
	InterestAfterTax int64
	Maturity         int64 // principal + interest after tax
}

// Interest computes accrued interest, withholding tax and the maturity amount.
func Interest(in InterestInput) (*InterestResult, error) {
	if in.Principal <= 0 {
		return nil, ErrInvalidPrincipal
	}
	if in.AnnualRate.IsNegative() {
		return nil, ErrInvalidRate
	}
	if in.Months < 1 || in.Months > maxTermMonths {
		return nil, ErrInvalidTerm
	}
	taxRate, ok := taxRates[in.Taxation]
	if !ok {
		return nil, fmt.Errorf("%w: taxation %q", ErrUnknownOption, in.Taxation)
	}

	principal := decimal.NewFromInt(in.Principal)
	months := decimal.NewFromInt(int64(in.Months))
	rate := in.AnnualRate.Div(decimal.NewFromInt(100))
	monthlyRate := rate.Div(decimal.NewFromInt(12))

	var interest decimal.Decimal
	paidIn := in.Principal
	switch in.Product {
	case Deposit:
		switch in.Method {
		case Simple:
			interest = principal.Mul(rate).Mul(months).Div(decimal.NewFromInt(12))
		case MonthlyCompound:
			interest = principal.Mul(growth(monthlyRate, in.Months).Sub(decimal.NewFromInt(1)))
		default:
			return nil, fmt.Errorf("%w: method %q", ErrUnknownOption, in.Method)
		}

	case Savings:
		paidIn = in.Principal * int64(in.Months)
		switch in.Method {
		case Simple:
			// Installment k earns interest for (n - k + 1) months: n(n+1)/2 month-units
			units := decimal.NewFromInt(int64(in.Months) * int64(in.Months+1) / 2)
			interest = principal.Mul(rate).Mul(units).Div(decimal.NewFromInt(12))
		case MonthlyCompound:
			one := decimal.NewFromInt(1)
			factor := one
			sum := decimal.Zero
			step := one.Add(monthlyRate)
			for k := 0; k < in.Months; k++ {
				factor = factor.Mul(step).Round(20)
				sum = sum.Add(factor.Sub(one))
			}
			interest = principal.Mul(sum)
		default:
			return nil, fmt.Errorf("%w: method %q", ErrUnknownOption, in.Method)
		}

	default:
		return nil, fmt.Errorf("%w: product %q", ErrUnknownOption, in.Product)
	}

	gross := interest.Floor().IntPart()
	tax := floorMul(gross, taxRate)
	return &InterestResult{
		Principal:        paidIn,
		Interest:         gross,
		Tax:              tax,
		InterestAfterTax: gross - tax,
		Maturity:         paidIn + gross - tax,
	}, nil
}

// growth returns (1 + rate)^periods.
func growth(rate decimal.Decimal, periods int) decimal.Decimal {
	step := decimal.NewFromInt(1).Add(rate)
	factor := decimal.NewFromInt(1)
	for i := 0; i < periods; i++ {
		factor = factor.Mul(step).Round(20)
	}
	return factor
}
