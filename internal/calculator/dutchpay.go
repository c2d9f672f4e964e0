// Package calculator allocates shared expenses and settles the resulting balances.
package calculator

import (
	"github.com/mmynk/calckit/internal/settlement"
)

// Share is one person's position after allocation.
type Share struct {
	Name    string
	Paid    int64
	Owed    int64
	Balance int64 // Paid - Owed. Positive = should receive money
}

// Result is the outcome of a dutch-pay calculation.
type Result struct {
	// Total is the amount spent by the group.
	Total int64

	// Shares are in participant order.
	Shares []Share

	// Transfers settle all balances, largest debts first.
	Transfers []settlement.Transfer

	// Drift is the sum of rounded owed shares minus Total.
	// Transfers leave this amount unresolved.
	Drift int64
}

// DutchPay allocates the expense with the given mode and computes the
// transfers that settle it.
func DutchPay(participants []Participant, mode SplitMode) (*Result, error) {
	people, err := normalizeNames(participants)
	if err != nil {
		return nil, err
	}

	paid, owed, total, err := allocate(people, mode)
	if err != nil {
		return nil, err
	}

	result := &Result{Total: total}
	balances := make([]settlement.Balance, len(people))
	var owedSum int64
	for i, p := range people {
		share := Share{
			Name:    p.Name,
			Paid:    paid[p.Name],
			Owed:    owed[p.Name],
			Balance: paid[p.Name] - owed[p.Name],
		}
		result.Shares = append(result.Shares, share)
		balances[i] = settlement.Balance{Name: p.Name, Amount: share.Balance}
		if owedSum, err = addAmount(owedSum, share.Owed); err != nil {
			return nil, err
		}
	}

	result.Drift = owedSum - total
	result.Transfers = settlement.Settle(balances)
	return result, nil
}
