package pnl

import "github.com/shopspring/decimal"

// TradeInputs is the fully collected trade form. Immutable once handed to
// Derive; a leverage or price change means building a new value.
type TradeInputs struct {
	Exchange Exchange
	Symbol   string
	Side     Side
	Entry    decimal.Decimal
	Mark     decimal.Decimal
	Amount   decimal.Decimal
	Leverage int
	Deposit  decimal.Decimal // optional, zero when not supplied
}

// DerivedTrade carries every figure computed from TradeInputs.
type DerivedTrade struct {
	Qty         decimal.Decimal
	Cost        decimal.Decimal
	Liquidation decimal.Decimal
	PnL         Result
}

// Derive recomputes quantity, cost, liquidation and PnL in one shot from the
// same leverage value, so the three leverage-dependent figures can never get
// out of step with each other.
func Derive(in TradeInputs) (DerivedTrade, error) {
	liq, err := Liquidation(in.Entry, in.Leverage, in.Side)
	if err != nil {
		return DerivedTrade{}, err
	}
	qty := Quantity(in.Exchange, in.Amount, in.Entry, in.Leverage)
	res, err := Evaluate(in.Entry, in.Mark, qty, in.Side, in.Leverage)
	if err != nil {
		return DerivedTrade{}, err
	}
	return DerivedTrade{
		Qty:         qty,
		Cost:        Cost(in.Exchange, in.Amount, in.Leverage),
		Liquidation: liq,
		PnL:         res,
	}, nil
}
