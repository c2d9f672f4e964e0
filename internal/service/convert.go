package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/mmynk/calckit/internal/calculator"
	"github.com/mmynk/calckit/internal/cycle"
	"github.com/mmynk/calckit/internal/finance"
	"github.com/mmynk/calckit/internal/models"
	"github.com/mmynk/calckit/internal/settlement"
	"github.com/mmynk/calckit/pkg/api"
)

// dateLayout is the wire format for calendar dates.
const dateLayout = "2006-01-02"

var errSplitMode = errors.New("exactly one split mode must be set")

func parseDate(field, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("%s is required", field)
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s must be YYYY-MM-DD: %w", field, err)
	}
	return t, nil
}

func formatDate(t time.Time) string {
	return t.Format(dateLayout)
}

func toBalances(in []api.Balance) []settlement.Balance {
	out := make([]settlement.Balance, len(in))
	for i, b := range in {
		out[i] = settlement.Balance{Name: b.Name, Amount: b.Amount}
	}
	return out
}

func toTransfers(in []api.Transfer) []settlement.Transfer {
	out := make([]settlement.Transfer, len(in))
	for i, t := range in {
		out[i] = settlement.Transfer{From: t.From, To: t.To, Amount: t.Amount}
	}
	return out
}

func fromTransfers(in []settlement.Transfer) []api.Transfer {
	out := make([]api.Transfer, len(in))
	for i, t := range in {
		out[i] = api.Transfer{From: t.From, To: t.To, Amount: t.Amount}
	}
	return out
}

func toParticipants(in []api.Participant) []calculator.Participant {
	out := make([]calculator.Participant, len(in))
	for i, p := range in {
		out[i] = calculator.Participant{Name: p.Name, Paid: p.Paid}
	}
	return out
}

// toSplitMode picks the mode that is set. No mode means an equal split.
func toSplitMode(s api.Split) (calculator.SplitMode, error) {
	set := 0
	var mode calculator.SplitMode = calculator.EqualSplit{}
	if s.Equal != nil {
		set++
	}
	if s.Weighted != nil {
		set++
		mode = calculator.WeightedSplit{Weights: s.Weighted.Weights}
	}
	if s.Itemized != nil {
		set++
		items := make([]calculator.Item, len(s.Itemized.Items))
		for i, item := range s.Itemized.Items {
			items[i] = calculator.Item{
				Description: item.Description,
				Price:       item.Price,
				Payer:       item.Payer,
				Consumers:   item.Consumers,
			}
		}
		mode = calculator.ItemizedSplit{Items: items}
	}
	if set > 1 {
		return nil, errSplitMode
	}
	return mode, nil
}

func dutchPay(req *api.DutchPayRequest) (*calculator.Result, error) {
	mode, err := toSplitMode(req.Split)
	if err != nil {
		return nil, err
	}
	return calculator.DutchPay(toParticipants(req.Participants), mode)
}

func fromDutchPay(r *calculator.Result) *api.DutchPayResponse {
	shares := make([]api.Share, len(r.Shares))
	for i, s := range r.Shares {
		shares[i] = api.Share{Name: s.Name, Paid: s.Paid, Owed: s.Owed, Balance: s.Balance}
	}
	return &api.DutchPayResponse{
		Total:     r.Total,
		Shares:    shares,
		Transfers: fromTransfers(r.Transfers),
		Drift:     r.Drift,
	}
}

func fromMemberBalances(in []calculator.MemberBalance) []api.MemberBalance {
	out := make([]api.MemberBalance, len(in))
	for i, m := range in {
		out[i] = api.MemberBalance{
			Name:      m.MemberName,
			Net:       m.NetBalance,
			TotalPaid: m.TotalPaid,
			TotalOwed: m.TotalOwed,
		}
	}
	return out
}

func toInterestInput(req *api.InterestRequest) finance.InterestInput {
	return finance.InterestInput{
		Product:    finance.Product(req.Product),
		Principal:  req.Principal,
		AnnualRate: req.AnnualRate,
		Months:     req.Months,
		Method:     finance.Method(req.Method),
		Taxation:   finance.Taxation(req.Taxation),
	}
}

func fromInterest(r *finance.InterestResult) *api.InterestResponse {
	return &api.InterestResponse{
		Principal:        r.Principal,
		Interest:         r.Interest,
		Tax:              r.Tax,
		InterestAfterTax: r.InterestAfterTax,
		Maturity:         r.Maturity,
	}
}

func toSeveranceInput(req *api.SeveranceRequest) (finance.SeveranceInput, error) {
	join, err := parseDate("join_date", req.JoinDate)
	if err != nil {
		return finance.SeveranceInput{}, err
	}
	leave, err := parseDate("leave_date", req.LeaveDate)
	if err != nil {
		return finance.SeveranceInput{}, err
	}
	return finance.SeveranceInput{
		JoinDate:          join,
		LeaveDate:         leave,
		ThreeMonthWages:   req.ThreeMonthWages,
		AnnualBonus:       req.AnnualBonus,
		AnnualLeavePay:    req.AnnualLeavePay,
		DailyOrdinaryWage: req.DailyOrdinaryWage,
	}, nil
}

func fromSeverance(r *finance.SeveranceResult) *api.SeveranceResponse {
	return &api.SeveranceResponse{
		Eligible:           r.Eligible,
		ServiceDays:        r.ServiceDays,
		ServiceYears:       r.ServiceYears,
		AverageDailyWage:   r.AverageDailyWage,
		SeverancePay:       r.SeverancePay,
		ServiceDeduction:   r.ServiceDeduction,
		ConvertedIncome:    r.ConvertedIncome,
		ConvertedDeduction: r.ConvertedDeduction,
		TaxBase:            r.TaxBase,
		ConvertedTax:       r.ConvertedTax,
		IncomeTax:          r.IncomeTax,
		LocalTax:           r.LocalTax,
		NetPay:             r.NetPay,
	}
}

func toCycleInput(req *api.OvulationRequest) (cycle.Input, error) {
	start, err := parseDate("last_period_start", req.LastPeriodStart)
	if err != nil {
		return cycle.Input{}, err
	}
	return cycle.Input{
		LastPeriodStart: start,
		CycleLength:     req.CycleLength,
		PeriodLength:    req.PeriodLength,
		Cycles:          req.Cycles,
	}, nil
}

func fromCycles(in []cycle.Cycle) []api.Cycle {
	out := make([]api.Cycle, len(in))
	for i, c := range in {
		out[i] = api.Cycle{
			PeriodStart:     formatDate(c.PeriodStart),
			PeriodEnd:       formatDate(c.PeriodEnd),
			FertileStart:    formatDate(c.FertileStart),
			FertileEnd:      formatDate(c.FertileEnd),
			Ovulation:       formatDate(c.Ovulation),
			NextPeriodStart: formatDate(c.NextPeriodStart),
		}
	}
	return out
}

func fromEntry(e *models.Entry) api.Entry {
	return api.Entry{
		ID:        e.ID,
		Kind:      string(e.Kind),
		Title:     e.Title,
		Input:     e.Input,
		Output:    e.Output,
		CreatedAt: e.CreatedAt,
	}
}

func fromGroup(g *models.GroupPreset) api.Group {
	return api.Group{
		Name:      g.Name,
		Members:   g.Members,
		UpdatedAt: g.UpdatedAt,
	}
}
