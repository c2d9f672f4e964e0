// Package cycle predicts menstrual cycles, ovulation days and fertile windows.
package cycle

import (
	"errors"
	"time"
)

const (
	DefaultCycleLength  = 28
	DefaultPeriodLength = 5
	DefaultCycles       = 3

	// lutealDays is the assumed time from ovulation to the next period.
	lutealDays = 14
	// fertileBefore and fertileAfter bound the fertile window around ovulation.
	fertileBefore = 5
	fertileAfter  = 1
)

var (
	ErrMissingDate        = errors.New("last period start date is required")
	ErrInvalidCycleLength = errors.New("cycle length must be between 21 and 45 days")
	ErrInvalidPeriod      = errors.New("period length must be between 2 and 10 days")
	ErrInvalidCycles      = errors.New("cycles must be between 1 and 12")
)

// Input describes the most recent cycle. Zero lengths use the defaults.
type Input struct {
	LastPeriodStart time.Time
	CycleLength     int
	PeriodLength    int
	Cycles          int
}

// Cycle is one predicted cycle. All times are UTC midnight.
type Cycle struct {
	PeriodStart     time.Time
	PeriodEnd       time.Time // last day of bleeding, inclusive
	FertileStart    time.Time
	FertileEnd      time.Time
	Ovulation       time.Time
	NextPeriodStart time.Time
}

// Predict returns the upcoming cycles starting with the one that begins at
// LastPeriodStart.
func Predict(in Input) ([]Cycle, error) {
	if in.LastPeriodStart.IsZero() {
		return nil, ErrMissingDate
	}
	cycleLength := orDefault(in.CycleLength, DefaultCycleLength)
	periodLength := orDefault(in.PeriodLength, DefaultPeriodLength)
	count := orDefault(in.Cycles, DefaultCycles)

	if cycleLength < 21 || cycleLength > 45 {
		return nil, ErrInvalidCycleLength
	}
	if periodLength < 2 || periodLength > 10 {
		return nil, ErrInvalidPeriod
	}
	if count < 1 || count > 12 {
		return nil, ErrInvalidCycles
	}

	start := time.Date(in.LastPeriodStart.Year(), in.LastPeriodStart.Month(), in.LastPeriodStart.Day(), 0, 0, 0, 0, time.UTC)
	cycles := make([]Cycle, 0, count)
	for i := 0; i < count; i++ {
		next := start.AddDate(0, 0, cycleLength)
		ovulation := next.AddDate(0, 0, -lutealDays)
		cycles = append(cycles, Cycle{
			PeriodStart:     start,
			PeriodEnd:       start.AddDate(0, 0, periodLength-1),
			FertileStart:    ovulation.AddDate(0, 0, -fertileBefore),
			FertileEnd:      ovulation.AddDate(0, 0, fertileAfter),
			Ovulation:       ovulation,
			NextPeriodStart: next,
		})
		start = next
	}
	return cycles, nil
}

func orDefault(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}
