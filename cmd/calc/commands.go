package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/mmynk/calckit/internal/calculator"
	"github.com/mmynk/calckit/internal/cycle"
	"github.com/mmynk/calckit/internal/finance"
	"github.com/mmynk/calckit/internal/settlement"
)

const dateLayout = "2006-01-02"

func newSettleCmd(opts *options) *cobra.Command {
	var balances []string

	cmd := &cobra.Command{
		Use:     "settle",
		Short:   "Settle net balances with as few transfers as the greedy matcher finds",
		Example: `  calc settle -b Alice=20000 -b Bob=-5000 -b Charlie=-15000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			names, amounts, err := parsePairs(balances)
			if err != nil {
				return err
			}
			in := make([]settlement.Balance, len(names))
			for i := range names {
				in[i] = settlement.Balance{Name: names[i], Amount: amounts[i]}
			}
			transfers := settlement.Settle(in)

			if opts.json {
				return writeJSON(cmd.OutOrStdout(), transfers)
			}
			f, err := opts.formatter()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			printTransfers(out, f.Money, transfers)
			if drift := settlement.Net(in); drift != 0 {
				fmt.Fprintf(out, "Unresolved drift: %s\n", f.Money(drift))
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&balances, "balance", "b", nil, "Net balance as name=amount (positive is owed money)")
	_ = cmd.MarkFlagRequired("balance")
	return cmd
}

func newDutchPayCmd(opts *options) *cobra.Command {
	var (
		paid    []string
		weights []string
		items   []string
	)

	cmd := &cobra.Command{
		Use:   "dutchpay",
		Short: "Split a shared expense and list who pays whom",
		Example: `  calc dutchpay -p Alice=30000 -p Bob=0 -p Charlie=0
  calc dutchpay -p Alice=60000 -p Bob=0 -w Alice=2
  calc dutchpay -p Alice -p Bob -i "Pizza:20000:Alice" -i "Beer:8000:Alice:Bob"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			participants, err := parseParticipants(paid)
			if err != nil {
				return err
			}
			mode, err := parseSplitMode(weights, items)
			if err != nil {
				return err
			}

			result, err := calculator.DutchPay(participants, mode)
			if err != nil {
				return err
			}
			if opts.json {
				return writeJSON(cmd.OutOrStdout(), result)
			}

			f, err := opts.formatter()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Total: %s\n\n", f.Money(result.Total))
			for _, s := range result.Shares {
				fmt.Fprintf(out, "  %-12s paid %-16s owes %-16s balance %s\n",
					s.Name, f.Money(s.Paid), f.Money(s.Owed), f.Money(s.Balance))
			}
			fmt.Fprintln(out)
			printTransfers(out, f.Money, result.Transfers)
			if result.Drift != 0 {
				fmt.Fprintf(out, "Rounding drift: %s\n", f.Money(result.Drift))
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&paid, "paid", "p", nil, "Participant as name or name=amount paid")
	cmd.Flags().StringArrayVarP(&weights, "weight", "w", nil, "Weight as name=weight (others weigh 1)")
	cmd.Flags().StringArrayVarP(&items, "item", "i", nil, "Item as description:price:payer[:consumer,consumer]")
	cmd.MarkFlagsMutuallyExclusive("weight", "item")
	_ = cmd.MarkFlagRequired("paid")
	return cmd
}

func newInterestCmd(opts *options) *cobra.Command {
	var (
		in   finance.InterestInput
		rate string
	)

	cmd := &cobra.Command{
		Use:     "interest",
		Short:   "Compute deposit or savings interest after tax",
		Example: `  calc interest --principal 10000000 --rate 3.5 --months 12 --method monthly_compound`,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := decimal.NewFromString(rate)
			if err != nil {
				return fmt.Errorf("invalid rate %q: %w", rate, err)
			}
			in.AnnualRate = r

			result, err := finance.Interest(in)
			if err != nil {
				return err
			}
			if opts.json {
				return writeJSON(cmd.OutOrStdout(), result)
			}

			f, err := opts.formatter()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Principal:          %s\n", f.Money(result.Principal))
			fmt.Fprintf(out, "Interest:           %s\n", f.Money(result.Interest))
			fmt.Fprintf(out, "Tax:                %s\n", f.Money(result.Tax))
			fmt.Fprintf(out, "Interest after tax: %s\n", f.Money(result.InterestAfterTax))
			fmt.Fprintf(out, "Maturity:           %s\n", f.Money(result.Maturity))
			return nil
		},
	}

	flags := cmd.Flags()
	flags.Var(newEnumValue((*string)(&in.Product), string(finance.Deposit), string(finance.Deposit), string(finance.Savings)),
		"product", "deposit or savings")
	flags.Int64Var(&in.Principal, "principal", 0, "Lump sum, or monthly installment for savings")
	flags.StringVar(&rate, "rate", "0", "Annual rate in percent")
	flags.IntVar(&in.Months, "months", 12, "Term in months")
	flags.Var(newEnumValue((*string)(&in.Method), string(finance.Simple), string(finance.Simple), string(finance.MonthlyCompound)),
		"method", "simple or monthly_compound")
	flags.Var(newEnumValue((*string)(&in.Taxation), string(finance.General), string(finance.General), string(finance.Preferential), string(finance.Exempt)),
		"tax", "general, preferential or exempt")
	_ = cmd.MarkFlagRequired("principal")
	return cmd
}

func newSeveranceCmd(opts *options) *cobra.Command {
	var (
		in          finance.SeveranceInput
		join, leave string
	)

	cmd := &cobra.Command{
		Use:     "severance",
		Short:   "Compute severance pay and retirement income tax",
		Example: `  calc severance --join 2015-01-01 --leave 2025-01-01 --wages 9000000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if in.JoinDate, err = time.Parse(dateLayout, join); err != nil {
				return fmt.Errorf("invalid --join: %w", err)
			}
			if in.LeaveDate, err = time.Parse(dateLayout, leave); err != nil {
				return fmt.Errorf("invalid --leave: %w", err)
			}

			result, err := finance.Severance(in)
			if err != nil {
				return err
			}
			if opts.json {
				return writeJSON(cmd.OutOrStdout(), result)
			}

			f, err := opts.formatter()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Service:            %d days (%d years)\n", result.ServiceDays, result.ServiceYears)
			if !result.Eligible {
				fmt.Fprintln(out, "Not eligible: less than one year of service")
				return nil
			}
			fmt.Fprintf(out, "Average daily wage: %s\n", result.AverageDailyWage.StringFixed(2))
			fmt.Fprintf(out, "Severance pay:      %s\n", f.Money(result.SeverancePay))
			fmt.Fprintf(out, "Income tax:         %s\n", f.Money(result.IncomeTax))
			fmt.Fprintf(out, "Local tax:          %s\n", f.Money(result.LocalTax))
			fmt.Fprintf(out, "Net pay:            %s\n", f.Money(result.NetPay))
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&join, "join", "", "First day of employment (YYYY-MM-DD)")
	flags.StringVar(&leave, "leave", "", "Day after the last working day (YYYY-MM-DD)")
	flags.Int64Var(&in.ThreeMonthWages, "wages", 0, "Wages paid over the last three months")
	flags.Int64Var(&in.AnnualBonus, "bonus", 0, "Bonus paid over the last year")
	flags.Int64Var(&in.AnnualLeavePay, "leave-pay", 0, "Annual leave allowance paid over the last year")
	flags.Int64Var(&in.DailyOrdinaryWage, "ordinary-wage", 0, "Daily ordinary wage, used when higher than the average")
	_ = cmd.MarkFlagRequired("join")
	_ = cmd.MarkFlagRequired("leave")
	return cmd
}

func newOvulationCmd(opts *options) *cobra.Command {
	var (
		in   cycle.Input
		last string
	)

	cmd := &cobra.Command{
		Use:     "ovulation",
		Short:   "Predict periods, ovulation days and fertile windows",
		Example: `  calc ovulation --last 2025-03-01 --cycle 30`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if in.LastPeriodStart, err = time.Parse(dateLayout, last); err != nil {
				return fmt.Errorf("invalid --last: %w", err)
			}

			cycles, err := cycle.Predict(in)
			if err != nil {
				return err
			}
			if opts.json {
				return writeJSON(cmd.OutOrStdout(), cycles)
			}

			out := cmd.OutOrStdout()
			for _, c := range cycles {
				fmt.Fprintf(out, "Period %s to %s, fertile %s to %s, ovulation %s\n",
					c.PeriodStart.Format(dateLayout), c.PeriodEnd.Format(dateLayout),
					c.FertileStart.Format(dateLayout), c.FertileEnd.Format(dateLayout),
					c.Ovulation.Format(dateLayout))
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&last, "last", "", "Start of the last period (YYYY-MM-DD)")
	flags.IntVar(&in.CycleLength, "cycle", cycle.DefaultCycleLength, "Cycle length in days")
	flags.IntVar(&in.PeriodLength, "period", cycle.DefaultPeriodLength, "Period length in days")
	flags.IntVar(&in.Cycles, "cycles", cycle.DefaultCycles, "Number of cycles to predict")
	_ = cmd.MarkFlagRequired("last")
	return cmd
}

func printTransfers(out io.Writer, money func(int64) string, transfers []settlement.Transfer) {
	if len(transfers) == 0 {
		fmt.Fprintln(out, "Everyone is settled up.")
		return
	}
	for _, t := range transfers {
		fmt.Fprintf(out, "%s -> %s: %s\n", t.From, t.To, money(t.Amount))
	}
}

// parseParticipants accepts "name" or "name=paid".
func parseParticipants(values []string) ([]calculator.Participant, error) {
	participants := make([]calculator.Participant, 0, len(values))
	for _, v := range values {
		if !strings.Contains(v, "=") {
			participants = append(participants, calculator.Participant{Name: strings.TrimSpace(v)})
			continue
		}
		names, amounts, err := parsePairs([]string{v})
		if err != nil {
			return nil, err
		}
		participants = append(participants, calculator.Participant{Name: names[0], Paid: amounts[0]})
	}
	return participants, nil
}

func parseSplitMode(weights, items []string) (calculator.SplitMode, error) {
	switch {
	case len(items) > 0:
		parsed := make([]calculator.Item, 0, len(items))
		for _, raw := range items {
			item, err := parseItem(raw)
			if err != nil {
				return nil, err
			}
			parsed = append(parsed, item)
		}
		return calculator.ItemizedSplit{Items: parsed}, nil

	case len(weights) > 0:
		names, amounts, err := parsePairs(weights)
		if err != nil {
			return nil, err
		}
		w := make(map[string]int64, len(names))
		for i, name := range names {
			w[name] = amounts[i]
		}
		return calculator.WeightedSplit{Weights: w}, nil

	default:
		return calculator.EqualSplit{}, nil
	}
}

// parseItem parses "description:price:payer[:consumer,consumer]".
func parseItem(raw string) (calculator.Item, error) {
	parts := strings.Split(raw, ":")
	if len(parts) < 3 || len(parts) > 4 {
		return calculator.Item{}, fmt.Errorf("expected description:price:payer[:consumers], got %q", raw)
	}
	price, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return calculator.Item{}, fmt.Errorf("invalid price in %q: %w", raw, err)
	}
	item := calculator.Item{
		Description: parts[0],
		Price:       price,
		Payer:       parts[2],
	}
	if len(parts) == 4 && parts[3] != "" {
		for _, c := range strings.Split(parts[3], ",") {
			item.Consumers = append(item.Consumers, strings.TrimSpace(c))
		}
	}
	return item, nil
}
