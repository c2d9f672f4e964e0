package api

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Balance is a participant's net position: positive = creditor, negative = debtor.
type Balance struct {
	Name   string `json:"name"`
	Amount int64  `json:"amount"`
}

// Transfer is a single payment from a debtor to a creditor.
type Transfer struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Amount int64  `json:"amount"`
}

type SettleRequest struct {
	Balances []Balance `json:"balances"`
}

type SettleResponse struct {
	Transfers []Transfer `json:"transfers"`
	// Drift is the sum of the input balances, left unresolved.
	Drift int64 `json:"drift"`
}

// Participant is a person splitting an expense.
type Participant struct {
	Name string `json:"name"`
	Paid int64  `json:"paid"`
}

// Item is a line item of an itemized split.
type Item struct {
	Description string   `json:"description"`
	Price       int64    `json:"price"`
	Payer       string   `json:"payer"`
	Consumers   []string `json:"consumers,omitempty"`
}

// Split selects the allocation mode. Exactly one field must be set.
type Split struct {
	Equal    *EqualSplit    `json:"equal,omitempty"`
	Weighted *WeightedSplit `json:"weighted,omitempty"`
	Itemized *ItemizedSplit `json:"itemized,omitempty"`
}

type EqualSplit struct{}

type WeightedSplit struct {
	Weights map[string]int64 `json:"weights"`
}

type ItemizedSplit struct {
	Items []Item `json:"items"`
}

type DutchPayRequest struct {
	Participants []Participant `json:"participants"`
	Split        Split         `json:"split"`
}

// Share is one participant's allocation.
type Share struct {
	Name    string `json:"name"`
	Paid    int64  `json:"paid"`
	Owed    int64  `json:"owed"`
	Balance int64  `json:"balance"`
}

type DutchPayResponse struct {
	Total     int64      `json:"total"`
	Shares    []Share    `json:"shares"`
	Transfers []Transfer `json:"transfers"`
	Drift     int64      `json:"drift"`
}

// SettleGroupRequest combines several bills and payments already made.
type SettleGroupRequest struct {
	Bills    []DutchPayRequest `json:"bills"`
	Payments []Transfer        `json:"payments,omitempty"`
}

type MemberBalance struct {
	Name      string `json:"name"`
	Net       int64  `json:"net"`
	TotalPaid int64  `json:"total_paid"`
	TotalOwed int64  `json:"total_owed"`
}

type SettleGroupResponse struct {
	Members   []MemberBalance `json:"members"`
	Transfers []Transfer      `json:"transfers"`
}

type InterestRequest struct {
	Product    string          `json:"product"` // deposit | savings
	Principal  int64           `json:"principal"`
	AnnualRate decimal.Decimal `json:"annual_rate"` // percent
	Months     int             `json:"months"`
	Method     string          `json:"method"`   // simple | monthly_compound
	Taxation   string          `json:"taxation"` // general | preferential | exempt
}

type InterestResponse struct {
	Principal        int64 `json:"principal"`
	Interest         int64 `json:"interest"`
	Tax              int64 `json:"tax"`
	InterestAfterTax int64 `json:"interest_after_tax"`
	Maturity         int64 `json:"maturity"`
}

type SeveranceRequest struct {
	JoinDate          string `json:"join_date"`
	LeaveDate         string `json:"leave_date"`
	ThreeMonthWages   int64  `json:"three_month_wages"`
	AnnualBonus       int64  `json:"annual_bonus,omitempty"`
	AnnualLeavePay    int64  `json:"annual_leave_pay,omitempty"`
	DailyOrdinaryWage int64  `json:"daily_ordinary_wage,omitempty"`
}

type SeveranceResponse struct {
	Eligible           bool            `json:"eligible"`
	ServiceDays        int             `json:"service_days"`
	ServiceYears       int             `json:"service_years"`
	AverageDailyWage   decimal.Decimal `json:"average_daily_wage"`
	SeverancePay       int64           `json:"severance_pay"`
	ServiceDeduction   int64           `json:"service_deduction"`
	ConvertedIncome    int64           `json:"converted_income"`
	ConvertedDeduction int64           `json:"converted_deduction"`
	TaxBase            int64           `json:"tax_base"`
	ConvertedTax       int64           `json:"converted_tax"`
	IncomeTax          int64           `json:"income_tax"`
	LocalTax           int64           `json:"local_tax"`
	NetPay             int64           `json:"net_pay"`
}

type OvulationRequest struct {
	LastPeriodStart string `json:"last_period_start"`
	CycleLength     int    `json:"cycle_length,omitempty"`
	PeriodLength    int    `json:"period_length,omitempty"`
	Cycles          int    `json:"cycles,omitempty"`
}

type Cycle struct {
	PeriodStart     string `json:"period_start"`
	PeriodEnd       string `json:"period_end"`
	FertileStart    string `json:"fertile_start"`
	FertileEnd      string `json:"fertile_end"`
	Ovulation       string `json:"ovulation"`
	NextPeriodStart string `json:"next_period_start"`
}

type OvulationResponse struct {
	Cycles []Cycle `json:"cycles"`
}

type RegisterDeviceRequest struct{}

type RegisterDeviceResponse struct {
	DeviceID  string `json:"device_id"`
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expires_at"`
}

// Entry is a saved calculation. Input and Output are opaque JSON.
type Entry struct {
	ID        string          `json:"id"`
	Kind      string          `json:"kind"`
	Title     string          `json:"title"`
	Input     json.RawMessage `json:"input"`
	Output    json.RawMessage `json:"output,omitempty"`
	CreatedAt int64           `json:"created_at"`
}

type SaveEntryRequest struct {
	Kind   string          `json:"kind"`
	Title  string          `json:"title,omitempty"`
	Input  json.RawMessage `json:"input"`
	Output json.RawMessage `json:"output,omitempty"`
}

type SaveEntryResponse struct {
	Entry Entry `json:"entry"`
}

type ListEntriesRequest struct{}

type ListEntriesResponse struct {
	Entries []Entry `json:"entries"`
}

type GetEntryRequest struct {
	ID string `json:"id"`
}

type GetEntryResponse struct {
	Entry Entry `json:"entry"`
}

type DeleteEntryRequest struct {
	ID string `json:"id"`
}

type DeleteEntryResponse struct{}

// Group is a saved participant list.
type Group struct {
	Name      string   `json:"name"`
	Members   []string `json:"members"`
	UpdatedAt int64    `json:"updated_at"`
}

type SaveGroupRequest struct {
	Name    string   `json:"name"`
	Members []string `json:"members"`
}

type SaveGroupResponse struct {
	Group Group `json:"group"`
}

type ListGroupsRequest struct{}

type ListGroupsResponse struct {
	Groups []Group `json:"groups"`
}

type DeleteGroupRequest struct {
	Name string `json:"name"`
}

type DeleteGroupResponse struct{}
