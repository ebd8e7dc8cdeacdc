package strategy

import (
	"fmt"

	"wheel-backtest/internal/model"
)

// Wheel alternates covered calls (while holding shares) and cash-secured puts
// (while holding cash). Premium is credited as soon as the option is sold; the
// option resolves against the following week's close.
type Wheel struct {
	Params model.WheelParams
}

func NewWheel(params model.WheelParams) *Wheel {
	return &Wheel{Params: params}
}

func (w *Wheel) Name() string { return "wheel" }

// Decide applies one week's transition. It does not mutate ctx.
func (w *Wheel) Decide(ctx Context) (Decision, error) {
	price := ctx.Week.WeekEndPrice
	if price <= 0 {
		return Decision{}, &model.DomainError{
			Op:     fmt.Sprintf("week %s", ctx.Week.WeekEndDate),
			Reason: fmt.Sprintf("invalid price %v", price),
		}
	}

	switch ctx.Ledger.State {
	case model.HoldingStock:
		return w.sellCall(ctx, price), nil
	case model.HoldingCash:
		return w.sellPut(ctx, price)
	default:
		return Decision{}, fmt.Errorf("unknown position state %q", ctx.Ledger.State)
	}
}

func (w *Wheel) sellCall(ctx Context, price float64) Decision {
	l := ctx.Ledger
	strike := price * model.CallStrikeFactor
	premium := price * w.Params.CallPremiumPct * l.Shares
	l.Cash += premium

	outcome := model.OutcomePending
	if ctx.Next != nil {
		if ctx.Next.WeekEndPrice > strike {
			outcome = model.OutcomeAssigned
			l.Cash += strike * l.Shares
			l.Shares = 0
			l.State = model.HoldingCash
		} else {
			outcome = model.OutcomeExpired
		}
	}

	return Decision{
		Action:  model.OptionAction{Kind: model.SellCall, Strike: strike, Premium: premium},
		Outcome: outcome,
		Ledger:  l,
	}
}

func (w *Wheel) sellPut(ctx Context, price float64) (Decision, error) {
	l := ctx.Ledger
	strike := price * model.PutStrikeFactor
	if strike <= 0 {
		return Decision{}, &model.DomainError{
			Op:     fmt.Sprintf("week %s", ctx.Week.WeekEndDate),
			Reason: fmt.Sprintf("invalid put strike %v", strike),
		}
	}
	notional := l.Cash / strike
	premium := price * w.Params.PutPremiumPct * notional
	l.Cash += premium

	outcome := model.OutcomePending
	if ctx.Next != nil {
		if ctx.Next.WeekEndPrice < strike {
			outcome = model.OutcomeAssigned
			// Share count is taken from cash after the premium was credited,
			// not from notional, so the premium buys extra shares.
			l.Shares = l.Cash / strike
			l.Cash = 0
			l.State = model.HoldingStock
		} else {
			outcome = model.OutcomeExpired
		}
	}

	return Decision{
		Action:  model.OptionAction{Kind: model.SellPut, Strike: strike, Premium: premium},
		Outcome: outcome,
		Ledger:  l,
	}, nil
}
