// Package pnl implements the trade math behind the rendered cards:
// position quantity, cost, liquidation price and profit/loss in both
// quote-currency and percent terms. All functions are pure.
package pnl

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidSide is returned when a side is neither long nor short.
	ErrInvalidSide = errors.New("pnl: side must be long or short")
	// ErrInvalidLeverage is returned when leverage is below 1 where a
	// positive leverage is required.
	ErrInvalidLeverage = errors.New("pnl: leverage must be at least 1")
)

// DefaultMaintenanceMargin is the maintenance margin ratio used in the
// liquidation price formula.
const DefaultMaintenanceMargin = 0.005

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// Exchange selects the exchange-specific sizing formula and layout.
type Exchange string

const (
	Bybit Exchange = "bybit"
	BingX Exchange = "bingx"
)

// ParseExchange parses a user- or callback-supplied exchange name.
func ParseExchange(s string) (Exchange, error) {
	switch Exchange(strings.ToLower(s)) {
	case Bybit:
		return Bybit, nil
	case BingX:
		return BingX, nil
	}
	return "", errors.New("pnl: unknown exchange " + s)
}

// QuantityPlaces reports the decimal places used for displayed quantity.
func (e Exchange) QuantityPlaces() int32 {
	if e == BingX {
		return 2
	}
	return 4
}

// Side is the direction of a trade.
type Side string

const (
	Long  Side = "long"
	Short Side = "short"
)

// ParseSide parses a user- or callback-supplied side.
func ParseSide(s string) (Side, error) {
	switch Side(strings.ToLower(s)) {
	case Long:
		return Long, nil
	case Short:
		return Short, nil
	}
	return "", ErrInvalidSide
}

// Valid reports whether the side is one of the two allowed values.
func (s Side) Valid() bool {
	return s == Long || s == Short
}

// Quantity computes the position size for the given notional amount.
// Bybit-style sizing is linear by price (amount*leverage/entry, 4 places);
// BingX sizes by notional (amount*leverage, 2 places). Unknown exchanges
// fall back to price-based sizing.
func Quantity(exchange Exchange, amount, entry decimal.Decimal, leverage int) decimal.Decimal {
	lev := decimal.NewFromInt(int64(leverage))
	if exchange == BingX {
		return amount.Mul(lev).Round(2)
	}
	if entry.Sign() <= 0 {
		return decimal.Zero
	}
	return amount.Mul(lev).Div(entry).Round(4)
}

// Cost computes the displayed position cost. The formula is the same for
// every exchange; callers differ only in how they label it.
func Cost(_ Exchange, amount decimal.Decimal, leverage int) decimal.Decimal {
	return amount.Mul(decimal.NewFromInt(int64(leverage))).Round(2)
}

// Liquidation computes the liquidation price for an isolated position.
// For long positions it sits below entry, for short above.
func Liquidation(entry decimal.Decimal, leverage int, side Side) (decimal.Decimal, error) {
	if leverage < 1 {
		return decimal.Zero, ErrInvalidLeverage
	}
	if !side.Valid() {
		return decimal.Zero, ErrInvalidSide
	}
	inv := one.Div(decimal.NewFromInt(int64(leverage)))
	mm := decimal.NewFromFloat(DefaultMaintenanceMargin)
	if side == Long {
		return entry.Mul(one.Sub(inv).Add(mm)), nil
	}
	return entry.Mul(one.Add(inv).Sub(mm)), nil
}

// Result is the outcome of a PnL evaluation.
type Result struct {
	Amount  decimal.Decimal // quote currency, 4 places
	Margin  decimal.Decimal // quote currency, 4 places
	Percent decimal.Decimal // signed, 2 places
}

// Evaluate computes profit/loss for a linear contract. Margin is zero when
// leverage is zero, and percent is zero when margin is not positive, so a
// zero leverage can never divide by zero.
func Evaluate(entry, mark, qty decimal.Decimal, side Side, leverage int) (Result, error) {
	if !side.Valid() {
		return Result{}, ErrInvalidSide
	}
	var gross decimal.Decimal
	if side == Long {
		gross = qty.Mul(mark.Sub(entry))
	} else {
		gross = qty.Mul(entry.Sub(mark))
	}
	margin := decimal.Zero
	if leverage > 0 {
		margin = entry.Mul(qty).Div(decimal.NewFromInt(int64(leverage)))
	}
	percent := decimal.Zero
	if margin.IsPositive() {
		percent = gross.Div(margin).Mul(hundred)
	}
	return Result{
		Amount:  gross.Round(4),
		Margin:  margin.Round(4),
		Percent: percent.Round(2),
	}, nil
}

// PercentOnly computes the leveraged return on margin for a trade whose
// position size is unknown. It routes through the full quantity-aware
// calculation with a one-unit notional; the percent result is independent
// of the notional, so any positive size gives the same answer.
func PercentOnly(entry, exit decimal.Decimal, side Side, leverage int) (decimal.Decimal, error) {
	if entry.Sign() <= 0 {
		return decimal.Zero, errors.New("pnl: entry price must be positive")
	}
	qty := decimal.NewFromInt(int64(leverage)).Div(entry)
	res, err := Evaluate(entry, exit, qty, side, leverage)
	if err != nil {
		return decimal.Zero, err
	}
	return res.Percent, nil
}
