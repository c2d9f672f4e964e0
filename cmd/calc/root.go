package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mmynk/calckit/internal/format"
)

type options struct {
	currency string
	locale   string
	json     bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "calc",
		Short:         "calckit calculators on the command line",
		Long:          `Run the calckit calculators locally: dutch pay, debt settlement, interest, severance pay and cycle prediction.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.currency, "currency", "KRW", "ISO 4217 currency code for amounts")
	rootCmd.PersistentFlags().StringVar(&opts.locale, "locale", "ko-KR", "Locale used for number grouping")
	rootCmd.PersistentFlags().BoolVar(&opts.json, "json", false, "Print the result as JSON")

	rootCmd.AddCommand(
		newSettleCmd(opts),
		newDutchPayCmd(opts),
		newInterestCmd(opts),
		newSeveranceCmd(opts),
		newOvulationCmd(opts),
	)
	return rootCmd
}

func (o *options) formatter() (*format.Formatter, error) {
	return format.New(o.currency, o.locale)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// parsePairs parses "name=amount" flags, keeping their order.
func parsePairs(values []string) ([]string, []int64, error) {
	names := make([]string, 0, len(values))
	amounts := make([]int64, 0, len(values))
	for _, v := range values {
		name, raw, ok := strings.Cut(v, "=")
		if !ok {
			return nil, nil, fmt.Errorf("expected name=amount, got %q", v)
		}
		amount, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid amount in %q: %w", v, err)
		}
		names = append(names, strings.TrimSpace(name))
		amounts = append(amounts, amount)
	}
	return names, amounts, nil
}
