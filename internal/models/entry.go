package models

import "encoding/json"

// Kind identifies which calculator produced an entry.
type Kind string

const (
	KindDutchPay  Kind = "dutchpay"
	KindInterest  Kind = "interest"
	KindSeverance Kind = "severance"
	KindOvulation Kind = "ovulation"
)

// Valid reports whether k is a known calculator kind.
func (k Kind) Valid() bool {
	switch k {
	case KindDutchPay, KindInterest, KindSeverance, KindOvulation:
		return true
	}
	return false
}

// Entry is one saved calculation.
type Entry struct {
	// ID is a ULID; lexical order matches creation order.
	ID string `json:"id"`

	Kind Kind `json:"kind"`

	// Title is a human-readable label. Auto-generated when empty.
	Title string `json:"title"`

	// Input and Output are the calculator request and response as sent over the wire.
	Input  json.RawMessage `json:"input"`
	Output json.RawMessage `json:"output,omitempty"`

	// CreatedAt is the Unix timestamp when the entry was saved.
	CreatedAt int64 `json:"created_at"`
}
