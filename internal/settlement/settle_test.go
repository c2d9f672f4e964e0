package settlement

import (
	"errors"
	"math"
	"math/rand/v2"
	"reflect"
	"testing"
)

func TestSettle(t *testing.T) {
	tests := []struct {
		name     string
		balances []Balance
		want     []Transfer
	}{
		{
			name:     "empty input",
			balances: nil,
			want:     nil,
		},
		{
			name: "all balances zero",
			balances: []Balance{
				{Name: "Alice", Amount: 0},
				{Name: "Bob", Amount: 0},
			},
			want: nil,
		},
		{
			name: "single debtor and creditor",
			balances: []Balance{
				{Name: "Alice", Amount: -100},
				{Name: "Bob", Amount: 100},
			},
			want: []Transfer{{From: "Alice", To: "Bob", Amount: 100}},
		},
		{
			name: "three-party chain pays largest creditor first",
			balances: []Balance{
				{Name: "A", Amount: -300},
				{Name: "B", Amount: 100},
				{Name: "C", Amount: 200},
			},
			want: []Transfer{
				{From: "A", To: "C", Amount: 200},
				{From: "A", To: "B", Amount: 100},
			},
		},
		{
			name: "uneven amounts after rounding",
			balances: []Balance{
				{Name: "A", Amount: -33},
				{Name: "B", Amount: 17},
				{Name: "C", Amount: 16},
			},
			want: []Transfer{
				{From: "A", To: "B", Amount: 17},
				{From: "A", To: "C", Amount: 16},
			},
		},
		{
			name: "two debtors two creditors",
			balances: []Balance{
				{Name: "Alice", Amount: 5000},
				{Name: "Bob", Amount: -2000},
				{Name: "Charlie", Amount: -4000},
				{Name: "Diana", Amount: 1000},
			},
			want: []Transfer{
				{From: "Charlie", To: "Alice", Amount: 4000},
				{From: "Bob", To: "Alice", Amount: 1000},
				{From: "Bob", To: "Diana", Amount: 1000},
			},
		},
		{
			name: "ties keep input order",
			balances: []Balance{
				{Name: "Bob", Amount: -50},
				{Name: "Alice", Amount: -50},
				{Name: "Charlie", Amount: 100},
			},
			want: []Transfer{
				{From: "Bob", To: "Charlie", Amount: 50},
				{From: "Alice", To: "Charlie", Amount: 50},
			},
		},
		{
			name: "duplicate names are merged",
			balances: []Balance{
				{Name: "Alice", Amount: -100},
				{Name: "Alice", Amount: 40},
				{Name: "Bob", Amount: 60},
			},
			want: []Transfer{{From: "Alice", To: "Bob", Amount: 60}},
		},
		{
			name: "residual drift is dropped",
			balances: []Balance{
				{Name: "Alice", Amount: -101},
				{Name: "Bob", Amount: 100},
			},
			want: []Transfer{{From: "Alice", To: "Bob", Amount: 100}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Settle(tt.balances)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Settle() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestSettleDoesNotMutateInput(t *testing.T) {
	balances := []Balance{
		{Name: "A", Amount: -300},
		{Name: "B", Amount: 100},
		{Name: "C", Amount: 200},
	}
	Settle(balances)

	if balances[0].Amount != -300 || balances[1].Amount != 100 || balances[2].Amount != 200 {
		t.Errorf("input modified: %+v", balances)
	}
}

// randomBalances builds n balances that sum to zero.
func randomBalances(r *rand.Rand, n int) []Balance {
	names := []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K", "L"}
	balances := make([]Balance, n)
	var sum int64
	for i := 0; i < n-1; i++ {
		amount := r.Int64N(20001) - 10000
		balances[i] = Balance{Name: names[i], Amount: amount}
		sum += amount
	}
	balances[n-1] = Balance{Name: names[n-1], Amount: -sum}
	return balances
}

func TestSettleProperties(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 42))

	for round := 0; round < 200; round++ {
		balances := randomBalances(r, 2+r.IntN(10))
		transfers := Settle(balances)

		sent := make(map[string]int64)
		received := make(map[string]int64)
		for _, tr := range transfers {
			if tr.Amount <= 0 {
				t.Fatalf("round %d: non-positive transfer %+v", round, tr)
			}
			if tr.From == tr.To {
				t.Fatalf("round %d: self transfer %+v", round, tr)
			}
			sent[tr.From] += tr.Amount
			received[tr.To] += tr.Amount
		}

		for _, b := range balances {
			switch {
			case b.Amount < 0 && sent[b.Name] != -b.Amount:
				t.Errorf("round %d: %s sent %d, want %d", round, b.Name, sent[b.Name], -b.Amount)
			case b.Amount > 0 && received[b.Name] != b.Amount:
				t.Errorf("round %d: %s received %d, want %d", round, b.Name, received[b.Name], b.Amount)
			}
		}

		if len(transfers) > len(balances)-1 {
			t.Errorf("round %d: %d transfers for %d people", round, len(transfers), len(balances))
		}
	}
}

func TestSettleScaleInvariance(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))

	for round := 0; round < 50; round++ {
		balances := randomBalances(r, 2+r.IntN(8))
		k := int64(1 + r.IntN(100))

		scaled := make([]Balance, len(balances))
		for i, b := range balances {
			scaled[i] = Balance{Name: b.Name, Amount: b.Amount * k}
		}

		base := Settle(balances)
		got := Settle(scaled)
		if len(base) != len(got) {
			t.Fatalf("round %d: %d transfers, scaled %d", round, len(base), len(got))
		}
		for i := range base {
			want := Transfer{From: base[i].From, To: base[i].To, Amount: base[i].Amount * k}
			if got[i] != want {
				t.Errorf("round %d transfer %d: got %+v, want %+v", round, i, got[i], want)
			}
		}
	}
}

func TestNet(t *testing.T) {
	if got := Net([]Balance{{"A", -33}, {"B", 17}, {"C", 16}}); got != 0 {
		t.Errorf("Net() = %d, want 0", got)
	}
	if got := Net([]Balance{{"A", -101}, {"B", 100}}); got != -1 {
		t.Errorf("Net() = %d, want -1", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		balances []Balance
		wantErr  bool
	}{
		{name: "empty", balances: nil},
		{name: "ordinary", balances: []Balance{{"A", -12}, {"B", 5}, {"C", 7}}},
		{name: "extremes", balances: []Balance{{"A", -math.MaxInt64}, {"B", math.MaxInt64}}},
		{name: "min int64", balances: []Balance{{"A", math.MinInt64}, {"B", 5}, {"C", 7}}, wantErr: true},
		{name: "same name overflows", balances: []Balance{{"A", math.MaxInt64}, {"A", 1}, {"B", -1}}, wantErr: true},
		{name: "same name reaches min int64", balances: []Balance{{"A", -math.MaxInt64}, {"A", -1}}, wantErr: true},
		{name: "total overflows", balances: []Balance{{"A", math.MaxInt64}, {"B", 1}}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.balances)
			if tt.wantErr {
				if !errors.Is(err, ErrOutOfRange) {
					t.Fatalf("Validate() error = %v, want %v", err, ErrOutOfRange)
				}
				return
			}
			if err != nil {
				t.Fatalf("Validate() unexpected error: %v", err)
			}
		})
	}
}

func TestSettleAtRangeLimit(t *testing.T) {
	balances := []Balance{{"A", -math.MaxInt64}, {"B", math.MaxInt64 - 7}, {"C", 7}}
	if err := Validate(balances); err != nil {
		t.Fatalf("Validate() unexpected error: %v", err)
	}

	got := Settle(balances)
	want := []Transfer{
		{From: "A", To: "B", Amount: math.MaxInt64 - 7},
		{From: "A", To: "C", Amount: 7},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Settle() = %+v, want %+v", got, want)
	}
}
