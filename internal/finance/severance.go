package finance

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidPeriod = errors.New("leave date must be after join date")
	ErrNegativeWage  = errors.New("wages cannot be negative")
)

// minServiceDays is the minimum employment length that earns severance pay.
const minServiceDays = 365

// SeveranceInput describes an employee's tenure and recent pay.
type SeveranceInput struct {
	JoinDate time.Time

	// LeaveDate is the day after the last working day.
	LeaveDate time.Time

	// ThreeMonthWages is the total wage paid over the three months before LeaveDate.
	ThreeMonthWages int64

	// AnnualBonus and AnnualLeavePay are the amounts for the last year;
	// three twelfths of each count toward the average wage.
	AnnualBonus    int64
	AnnualLeavePay int64

	// DailyOrdinaryWage replaces the average daily wage when it is higher. Optional.
	DailyOrdinaryWage int64
}

// SeveranceResult is the severance pay and retirement income tax breakdown.
type SeveranceResult struct {
	Eligible     bool
	ServiceDays  int
	ServiceYears int // partial years round up

	// AverageDailyWage is rounded to two decimal places for display.
	AverageDailyWage decimal.Decimal
	SeverancePay     int64

	ServiceDeduction   int64 // deduction by years of service
	ConvertedIncome    int64 // annualized income after service deduction
	ConvertedDeduction int64 // deduction on converted income
	TaxBase            int64
	ConvertedTax       int64 // tax on TaxBase before de-annualizing
	IncomeTax          int64
	LocalTax           int64
	NetPay             int64
}

// serviceStep is one tier of the service-year deduction schedule:
// base + perYear × (years − from), for years up to upTo.
type serviceStep struct {
	upTo    int
	from    int
	base    int64
	perYear int64
}

var serviceDeductionSchedule = []serviceStep{
	{upTo: 5, from: 0, base: 0, perYear: 1_000_000},
	{upTo: 10, from: 5, base: 5_000_000, perYear: 2_000_000},
	{upTo: 20, from: 10, base: 15_000_000, perYear: 2_500_000},
	{upTo: 0, from: 20, base: 40_000_000, perYear: 3_000_000},
}

// convertedStep is one tier of the converted income deduction:
// base + rate × (amount − over), for amounts up to upTo.
type convertedStep struct {
	upTo int64
	over int64
	base int64
	rate decimal.Decimal
}

var convertedDeductionSchedule = []convertedStep{
	{upTo: 8_000_000, over: 0, base: 0, rate: decimal.RequireFromString("1.00")},
	{upTo: 70_000_000, over: 8_000_000, base: 8_000_000, rate: decimal.RequireFromString("0.60")},
	{upTo: 100_000_000, over: 70_000_000, base: 45_200_000, rate: decimal.RequireFromString("0.55")},
	{upTo: 300_000_000, over: 100_000_000, base: 61_700_000, rate: decimal.RequireFromString("0.45")},
	{upTo: 0, over: 300_000_000, base: 151_700_000, rate: decimal.RequireFromString("0.35")},
}

// ServiceYearDeduction returns the deduction for the given years of service.
func ServiceYearDeduction(years int) int64 {
	if years <= 0 {
		return 0
	}
	for _, s := range serviceDeductionSchedule {
		if s.upTo == 0 || years <= s.upTo {
			return s.base + s.perYear*int64(years-s.from)
		}
	}
	return 0
}

// ConvertedIncomeDeduction returns the deduction applied to converted income.
func ConvertedIncomeDeduction(converted int64) int64 {
	if converted <= 0 {
		return 0
	}
	for _, s := range convertedDeductionSchedule {
		if s.upTo == 0 || converted <= s.upTo {
			return s.base + floorMul(converted-s.over, s.rate)
		}
	}
	return 0
}

// Severance computes statutory severance pay and the retirement income tax
// withheld from it.
func Severance(in SeveranceInput) (*SeveranceResult, error) {
	join := truncateDay(in.JoinDate)
	leave := truncateDay(in.LeaveDate)
	if !leave.After(join) {
		return nil, ErrInvalidPeriod
	}
	if in.ThreeMonthWages < 0 || in.AnnualBonus < 0 || in.AnnualLeavePay < 0 || in.DailyOrdinaryWage < 0 {
		return nil, ErrNegativeWage
	}

	result := &SeveranceResult{
		ServiceDays:  daysBetween(join, leave),
		ServiceYears: serviceYears(join, leave),
	}

	windowDays := daysBetween(leave.AddDate(0, -3, 0), leave)
	quarter := decimal.NewFromInt(3).Div(decimal.NewFromInt(12))
	wages := decimal.NewFromInt(in.ThreeMonthWages).
		Add(decimal.NewFromInt(in.AnnualBonus).Mul(quarter)).
		Add(decimal.NewFromInt(in.AnnualLeavePay).Mul(quarter))

	daily := wages.Div(decimal.NewFromInt(int64(windowDays)))
	ordinary := decimal.NewFromInt(in.DailyOrdinaryWage)
	if ordinary.GreaterThan(daily) {
		daily = ordinary
		wages = ordinary.Mul(decimal.NewFromInt(int64(windowDays)))
	}
	result.AverageDailyWage = daily.Round(2)

	if result.ServiceDays < minServiceDays {
		return result, nil
	}
	result.Eligible = true

	// daily × 30 × days / 365, kept as one fraction to avoid rounding the daily wage
	result.SeverancePay = wages.
		Mul(decimal.NewFromInt(30)).
		Mul(decimal.NewFromInt(int64(result.ServiceDays))).
		Div(decimal.NewFromInt(int64(windowDays) * 365)).
		Floor().IntPart()

	applyRetirementTax(result)
	return result, nil
}

// applyRetirementTax fills the tax fields from SeverancePay and ServiceYears.
func applyRetirementTax(r *SeveranceResult) {
	years := int64(r.ServiceYears)

	r.ServiceDeduction = min(ServiceYearDeduction(r.ServiceYears), r.SeverancePay)
	r.ConvertedIncome = (r.SeverancePay - r.ServiceDeduction) * 12 / years
	r.ConvertedDeduction = min(ConvertedIncomeDeduction(r.ConvertedIncome), r.ConvertedIncome)
	r.TaxBase = r.ConvertedIncome - r.ConvertedDeduction
	r.ConvertedTax = IncomeTax.Tax(r.TaxBase)
	r.IncomeTax = r.ConvertedTax * years / 12
	r.LocalTax = r.IncomeTax / 10
	r.NetPay = r.SeverancePay - r.IncomeTax - r.LocalTax
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}

// serviceYears counts whole years between join and leave, rounding any
// remainder up to a full year.
func serviceYears(join, leave time.Time) int {
	years := leave.Year() - join.Year()
	if join.AddDate(years, 0, 0).After(leave) {
		years--
	}
	if join.AddDate(years, 0, 0).Before(leave) {
		years++
	}
	return max(years, 1)
}
