package calculator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mmynk/calckit/internal/settlement"
)

// ErrInvalidPayment is returned for a recorded payment that cannot be applied.
var ErrInvalidPayment = errors.New("invalid payment")

// MemberBalance represents the balance information for one group member.
type MemberBalance struct {
	MemberName string
	NetBalance int64 // Positive = owed money, Negative = owes money
	TotalPaid  int64 // Total amount paid across all bills
	TotalOwed  int64 // Total amount this person owes
}

// GroupBalances computes balances across several dutch-pay results and
// payments already made between members. It returns member balances in
// first-seen order and the transfers that settle what is still outstanding.
//
// Algorithm:
// - For each bill: every share adds to paid and owed
// - For each recorded payment: payer's balance improves, receiver's decreases
// - Aggregate: net_balance = total_paid - total_owed
// - Remaining debts: settled with the greedy matcher
//
// Payments need two different non-blank names and a positive amount.
func GroupBalances(bills []*Result, recorded []settlement.Transfer) ([]MemberBalance, []settlement.Transfer, error) {
	for i, payment := range recorded {
		if err := validatePayment(payment); err != nil {
			return nil, nil, fmt.Errorf("payment %d: %w", i+1, err)
		}
	}

	var order []string
	balances := make(map[string]*MemberBalance)
	member := func(name string) *MemberBalance {
		if b, ok := balances[name]; ok {
			return b
		}
		b := &MemberBalance{MemberName: name}
		balances[name] = b
		order = append(order, name)
		return b
	}

	for _, bill := range bills {
		if bill == nil {
			continue
		}
		for _, share := range bill.Shares {
			b := member(share.Name)
			if err := accumulate(b, share.Paid, share.Owed); err != nil {
				return nil, nil, err
			}
		}
	}

	for _, payment := range recorded {
		// Payer effectively "paid" toward the debt, receiver got money back
		if err := accumulate(member(strings.TrimSpace(payment.From)), payment.Amount, 0); err != nil {
			return nil, nil, err
		}
		if err := accumulate(member(strings.TrimSpace(payment.To)), 0, payment.Amount); err != nil {
			return nil, nil, err
		}
	}

	memberBalances := make([]MemberBalance, 0, len(order))
	net := make([]settlement.Balance, 0, len(order))
	for _, name := range order {
		b := balances[name]
		b.NetBalance = b.TotalPaid - b.TotalOwed
		memberBalances = append(memberBalances, *b)
		net = append(net, settlement.Balance{Name: name, Amount: b.NetBalance})
	}

	return memberBalances, settlement.Settle(net), nil
}

func validatePayment(p settlement.Transfer) error {
	from, to := strings.TrimSpace(p.From), strings.TrimSpace(p.To)
	switch {
	case from == "" || to == "":
		return fmt.Errorf("%w: payer and receiver are required", ErrInvalidPayment)
	case from == to:
		return fmt.Errorf("%w: %s cannot pay themselves", ErrInvalidPayment, from)
	case p.Amount <= 0:
		return fmt.Errorf("%w: amount must be positive, got %d", ErrInvalidPayment, p.Amount)
	}
	return nil
}

func accumulate(b *MemberBalance, paid, owed int64) error {
	var err error
	if b.TotalPaid, err = addAmount(b.TotalPaid, paid); err != nil {
		return err
	}
	b.TotalOwed, err = addAmount(b.TotalOwed, owed)
	return err
}
