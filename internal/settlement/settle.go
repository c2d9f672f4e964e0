// Package settlement turns net balances into a short list of pairwise transfers.
package settlement

import (
	"errors"
	"fmt"
	"math"
	"slices"
)

// ErrOutOfRange is returned by Validate for balances Settle cannot represent.
var ErrOutOfRange = errors.New("balance out of range")

// tolerance is the remaining magnitude below which a debtor or creditor
// counts as settled. Amounts are in the smallest currency unit.
const tolerance int64 = 1

// Balance is one person's net position: paid minus owed.
// Positive = owed money by the group, negative = owes money to the group.
type Balance struct {
	Name   string
	Amount int64
}

// Transfer is a single payment that reduces one debtor's and one creditor's
// outstanding balance. Amount is always positive.
type Transfer struct {
	From   string
	To     string
	Amount int64
}

// party is a working copy of a debtor or creditor during the sweep.
type party struct {
	name      string
	remaining int64
}

// Settle computes the transfers that zero out the given balances.
//
// Algorithm:
// - Merge entries that share a name
// - Split into debtors (negative) and creditors (positive), drop zeros
// - Sort both by magnitude, largest first (ties keep input order)
// - Greedy: match the largest debtor with the largest creditor
//
// The result is not guaranteed to be the minimum number of transfers.
// If the balances do not sum to zero, the leftover is dropped.
//
// Balances must pass Validate: math.MinInt64 has no positive magnitude and
// sums that overflow int64 give meaningless transfers.
func Settle(balances []Balance) []Transfer {
	var debtors, creditors []party
	for _, b := range merge(balances) {
		if b.Amount < 0 {
			debtors = append(debtors, party{name: b.Name, remaining: -b.Amount})
		} else if b.Amount > 0 {
			creditors = append(creditors, party{name: b.Name, remaining: b.Amount})
		}
	}

	byMagnitude := func(a, b party) int {
		switch {
		case a.remaining > b.remaining:
			return -1
		case a.remaining < b.remaining:
			return 1
		}
		return 0
	}
	slices.SortStableFunc(debtors, byMagnitude)
	slices.SortStableFunc(creditors, byMagnitude)

	var transfers []Transfer
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		debtor := &debtors[i]
		creditor := &creditors[j]

		amount := min(debtor.remaining, creditor.remaining)
		if amount > 0 {
			transfers = append(transfers, Transfer{
				From:   debtor.name,
				To:     creditor.name,
				Amount: amount,
			})
		}

		debtor.remaining -= amount
		creditor.remaining -= amount

		if debtor.remaining < tolerance {
			i++
		}
		if creditor.remaining < tolerance {
			j++
		}
	}

	return transfers
}

// Net returns the sum of all balances. A non-zero result is rounding drift
// that Settle will leave unresolved.
func Net(balances []Balance) int64 {
	var sum int64
	for _, b := range balances {
		sum += b.Amount
	}
	return sum
}

// merge sums balances that share a name, keeping first-seen order.
func merge(balances []Balance) []Balance {
	index := make(map[string]int, len(balances))
	merged := make([]Balance, 0, len(balances))
	for _, b := range balances {
		if k, ok := index[b.Name]; ok {
			merged[k].Amount += b.Amount
			continue
		}
		index[b.Name] = len(merged)
		merged = append(merged, b)
	}
	return merged
}

// Validate reports balances outside the range Settle and Net handle:
// every amount, every per-name sum and the overall sum must lie within
// [-math.MaxInt64, math.MaxInt64].
func Validate(balances []Balance) error {
	perName := make(map[string]int64, len(balances))
	var total int64
	for _, b := range balances {
		if b.Amount == math.MinInt64 {
			return fmt.Errorf("%w: %s", ErrOutOfRange, b.Name)
		}
		sum, ok := addChecked(perName[b.Name], b.Amount)
		if !ok {
			return fmt.Errorf("%w: %s", ErrOutOfRange, b.Name)
		}
		perName[b.Name] = sum
		if total, ok = addChecked(total, b.Amount); !ok {
			return fmt.Errorf("%w: sum of balances", ErrOutOfRange)
		}
	}
	return nil
}

// addChecked adds without wrapping. MinInt64 counts as overflow.
func addChecked(a, b int64) (int64, bool) {
	s := a + b
	if (b > 0 && s < a) || (b < 0 && s > a) || s == math.MinInt64 {
		return 0, false
	}
	return s, true
}
