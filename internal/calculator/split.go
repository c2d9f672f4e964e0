package calculator

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strings"
)

var (
	ErrTooFewParticipants = errors.New("must have at least two participants")
	ErrNegativeAmount     = errors.New("amounts cannot be negative")
	ErrDuplicateName      = errors.New("participant names must be unique")
	ErrUnknownParticipant = errors.New("unknown participant")
	ErrZeroWeight         = errors.New("weights must not all be zero")
	ErrNoItems            = errors.New("itemized split needs at least one item")
	ErrMissingPayer       = errors.New("every item needs a payer")
	ErrAmountTooLarge     = errors.New("amounts are too large to split")
)

// Participant is a person splitting an expense.
type Participant struct {
	// Name is the display label. Blank names are replaced with "Participant N".
	Name string

	// Paid is what this person actually contributed, in the smallest currency unit.
	// Ignored by ItemizedSplit, where payments come from the items.
	Paid int64
}

// SplitMode selects how the total is allocated. It is one of
// EqualSplit, WeightedSplit or ItemizedSplit.
type SplitMode interface {
	splitMode()
}

// EqualSplit divides the total paid equally among everyone.
type EqualSplit struct{}

// WeightedSplit divides the total paid in proportion to each person's weight.
// People without an entry get weight 1.
type WeightedSplit struct {
	Weights map[string]int64
}

// ItemizedSplit divides each item among the people who consumed it.
type ItemizedSplit struct {
	Items []Item
}

func (EqualSplit) splitMode()    {}
func (WeightedSplit) splitMode() {}
func (ItemizedSplit) splitMode() {}

// Item is a single line item in an itemized split.
type Item struct {
	Description string
	Price       int64

	// Payer is the participant who paid for this item.
	Payer string

	// Consumers share the item equally. Empty means everyone.
	Consumers []string
}

// normalizeNames fills blank names and rejects duplicates and negative payments.
func normalizeNames(participants []Participant) ([]Participant, error) {
	if len(participants) < 2 {
		return nil, ErrTooFewParticipants
	}

	out := make([]Participant, len(participants))
	seen := make(map[string]bool, len(participants))
	for i, p := range participants {
		name := strings.TrimSpace(p.Name)
		if name == "" {
			name = fmt.Sprintf("Participant %d", i+1)
		}
		if seen[name] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateName, name)
		}
		if p.Paid < 0 {
			return nil, fmt.Errorf("%w: %s paid %d", ErrNegativeAmount, name, p.Paid)
		}
		seen[name] = true
		out[i] = Participant{Name: name, Paid: p.Paid}
	}
	return out, nil
}

// divideRound returns round-half-up of n*num/den for non-negative inputs.
// The product is computed exactly; callers keep num <= den so the result fits.
func divideRound(n, num, den int64) int64 {
	q := new(big.Int).Mul(big.NewInt(n), big.NewInt(num))
	q.Lsh(q, 1)
	q.Add(q, big.NewInt(den))
	q.Quo(q, new(big.Int).Lsh(big.NewInt(den), 1))
	return q.Int64()
}

// addAmount returns a+b for non-negative a and b, or ErrAmountTooLarge.
func addAmount(a, b int64) (int64, error) {
	if a > math.MaxInt64-b {
		return 0, ErrAmountTooLarge
	}
	return a + b, nil
}

// allocate computes what each participant paid and owes under the mode.
// Owed shares are rounded per person, so their sum may differ from the total.
func allocate(participants []Participant, mode SplitMode) (paid, owed map[string]int64, total int64, err error) {
	paid = make(map[string]int64, len(participants))
	owed = make(map[string]int64, len(participants))

	switch m := mode.(type) {
	case EqualSplit:
		for _, p := range participants {
			paid[p.Name] = p.Paid
			if total, err = addAmount(total, p.Paid); err != nil {
				return nil, nil, 0, err
			}
		}
		n := int64(len(participants))
		for _, p := range participants {
			owed[p.Name] = divideRound(total, 1, n)
		}

	case WeightedSplit:
		var sum int64
		weights := make(map[string]int64, len(participants))
		for _, p := range participants {
			w, ok := m.Weights[p.Name]
			if !ok {
				w = 1
			}
			if w < 0 {
				return nil, nil, 0, fmt.Errorf("%w: weight for %s", ErrNegativeAmount, p.Name)
			}
			weights[p.Name] = w
			paid[p.Name] = p.Paid
			if sum, err = addAmount(sum, w); err != nil {
				return nil, nil, 0, err
			}
			if total, err = addAmount(total, p.Paid); err != nil {
				return nil, nil, 0, err
			}
		}
		for name := range m.Weights {
			if _, ok := weights[name]; !ok {
				return nil, nil, 0, fmt.Errorf("%w: %s", ErrUnknownParticipant, name)
			}
		}
		if sum == 0 {
			return nil, nil, 0, ErrZeroWeight
		}
		for _, p := range participants {
			owed[p.Name] = divideRound(total, weights[p.Name], sum)
		}

	case ItemizedSplit:
		if len(m.Items) == 0 {
			return nil, nil, 0, ErrNoItems
		}
		for _, p := range participants {
			paid[p.Name] = 0
			owed[p.Name] = 0
		}
		everyone := make([]string, len(participants))
		for i, p := range participants {
			everyone[i] = p.Name
		}

		for _, item := range m.Items {
			if item.Price < 0 {
				return nil, nil, 0, fmt.Errorf("%w: item %q", ErrNegativeAmount, item.Description)
			}
			if item.Payer == "" {
				return nil, nil, 0, fmt.Errorf("%w: item %q", ErrMissingPayer, item.Description)
			}
			if _, ok := paid[item.Payer]; !ok {
				return nil, nil, 0, fmt.Errorf("%w: payer %s", ErrUnknownParticipant, item.Payer)
			}

			consumers := item.Consumers
			if len(consumers) == 0 {
				consumers = everyone
			}
			seen := make(map[string]bool, len(consumers))
			for _, c := range consumers {
				if _, ok := owed[c]; !ok {
					return nil, nil, 0, fmt.Errorf("%w: consumer %s", ErrUnknownParticipant, c)
				}
				if seen[c] {
					return nil, nil, 0, fmt.Errorf("%w: %s listed twice on item %q", ErrDuplicateName, c, item.Description)
				}
				seen[c] = true
			}

			if total, err = addAmount(total, item.Price); err != nil {
				return nil, nil, 0, err
			}
			// A payer never pays more than the checked total
			paid[item.Payer] += item.Price
			share := divideRound(item.Price, 1, int64(len(consumers)))
			for _, c := range consumers {
				if owed[c], err = addAmount(owed[c], share); err != nil {
					return nil, nil, 0, err
				}
			}
		}

	default:
		return nil, nil, 0, fmt.Errorf("unsupported split mode %T", mode)
	}

	return paid, owed, total, nil
}
