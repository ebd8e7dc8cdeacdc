package model

import "fmt"

// PositionState is what the wheel is holding going into a week.
// Keep these values stable; they are intended for CSV output.
type PositionState string

const (
	HoldingStock PositionState = "HOLDING_STOCK"
	HoldingCash  PositionState = "HOLDING_CASH"
)

// OptionKind is the option sold in a given week.
type OptionKind string

const (
	SellCall OptionKind = "SELL_CALL"
	SellPut  OptionKind = "SELL_PUT"
)

// Outcome is how the option sold this week resolved against next week's close.
type Outcome string

const (
	OutcomeExpired  Outcome = "EXPIRED"
	OutcomeAssigned Outcome = "ASSIGNED"
	OutcomePending  Outcome = "PENDING"
)

// OptionAction is the option written in one week.
// Premium is the total cash received, not a per-share amount.
type OptionAction struct {
	Kind    OptionKind `json:"kind"`
	Strike  float64    `json:"strike"`
	Premium float64    `json:"premium"`
}

// Label renders the action the way the ledger displays it.
func (a OptionAction) Label() string {
	switch a.Kind {
	case SellCall:
		return fmt.Sprintf("Sell Call (Strike: %.2f)", a.Strike)
	case SellPut:
		return fmt.Sprintf("Sell Put (Strike: %.2f)", a.Strike)
	default:
		return ""
	}
}

// DescribeOutcome returns the human description of an outcome for an option kind.
// Pending outcomes have no description.
func DescribeOutcome(kind OptionKind, outcome Outcome) string {
	switch {
	case outcome == OutcomePending:
		return ""
	case kind == SellCall && outcome == OutcomeAssigned:
		return "Shares Called Away"
	case kind == SellCall:
		return "Call Expired"
	case kind == SellPut && outcome == OutcomeAssigned:
		return "Put Assigned (Bought Stock)"
	default:
		return "Put Expired"
	}
}
