package pnl

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestParseExchange(t *testing.T) {
	t.Parallel()

	e, err := ParseExchange("Bybit")
	require.NoError(t, err)
	assert.Equal(t, Bybit, e)

	e, err = ParseExchange("BINGX")
	require.NoError(t, err)
	assert.Equal(t, BingX, e)

	_, err = ParseExchange("kraken")
	assert.Error(t, err)
}

func TestParseSide(t *testing.T) {
	t.Parallel()

	s, err := ParseSide("Long")
	require.NoError(t, err)
	assert.Equal(t, Long, s)

	s, err = ParseSide("SHORT")
	require.NoError(t, err)
	assert.Equal(t, Short, s)

	_, err = ParseSide("sideways")
	assert.ErrorIs(t, err, ErrInvalidSide)
}

func TestQuantity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		exchange Exchange
		amount   string
		entry    string
		leverage int
		want     string
	}{
		{"bybit by price", Bybit, "100", "65000", 10, "0.0154"},
		{"bybit rounds half up", Bybit, "100", "42000", 20, "0.0476"},
		{"bingx notional", BingX, "100", "42000", 20, "2000"},
		{"bybit sub-dollar entry", Bybit, "75", "0.158", 50, "23734.1772"},
		{"bingx by notional", BingX, "100", "65000", 10, "1000"},
		{"bingx ignores entry", BingX, "50", "0.0001", 20, "1000"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Quantity(tt.exchange, dec(tt.amount), dec(tt.entry), tt.leverage)
			assert.True(t, got.Equal(dec(tt.want)), "got %s want %s", got, tt.want)
		})
	}
}

func TestQuantityZeroEntry(t *testing.T) {
	t.Parallel()

	assert.True(t, Quantity(Bybit, dec("100"), decimal.Zero, 10).IsZero())
}

func TestCost(t *testing.T) {
	t.Parallel()

	assert.True(t, Cost(Bybit, dec("100"), 10).Equal(dec("1000")))
	assert.True(t, Cost(BingX, dec("33.333"), 3).Equal(dec("100")))
}

func TestLiquidation(t *testing.T) {
	t.Parallel()

	// Long: entry * (1 - 1/L + mm) = 100 * (1 - 0.1 + 0.005) = 90.5
	liq, err := Liquidation(dec("100"), 10, Long)
	require.NoError(t, err)
	assert.True(t, liq.Equal(dec("90.5")), "got %s", liq)

	// Short: entry * (1 + 1/L - mm) = 100 * (1 + 0.1 - 0.005) = 109.5
	liq, err = Liquidation(dec("100"), 10, Short)
	require.NoError(t, err)
	assert.True(t, liq.Equal(dec("109.5")), "got %s", liq)

	// Long liquidation sits below entry, short above.
	entry := dec("65000")
	long, err := Liquidation(entry, 25, Long)
	require.NoError(t, err)
	short, err := Liquidation(entry, 25, Short)
	require.NoError(t, err)
	assert.True(t, long.LessThan(entry))
	assert.True(t, short.GreaterThan(entry))
}

func TestLiquidationErrors(t *testing.T) {
	t.Parallel()

	_, err := Liquidation(dec("100"), 0, Long)
	assert.ErrorIs(t, err, ErrInvalidLeverage)

	_, err = Liquidation(dec("100"), 10, Side("upward"))
	assert.ErrorIs(t, err, ErrInvalidSide)
}

func TestEvaluateUnitQuantity(t *testing.T) {
	t.Parallel()

	res, err := Evaluate(dec("100"), dec("110"), dec("1"), Long, 10)
	require.NoError(t, err)
	assert.True(t, res.Amount.Equal(dec("10")), "amount %s", res.Amount)
	assert.True(t, res.Margin.Equal(dec("10")), "margin %s", res.Margin)
	assert.True(t, res.Percent.Equal(dec("100")), "percent %s", res.Percent)

	res, err = Evaluate(dec("100"), dec("90"), dec("1"), Short, 10)
	require.NoError(t, err)
	assert.True(t, res.Amount.Equal(dec("10")), "amount %s", res.Amount)
	assert.True(t, res.Percent.Equal(dec("100")), "percent %s", res.Percent)
}

func TestEvaluateLong(t *testing.T) {
	t.Parallel()

	// qty 0.0154 BTC, entry 65000, mark 67500: gross = 0.0154*2500 = 38.5
	// margin = 65000*0.0154/10 = 100.1, percent = 38.46%
	res, err := Evaluate(dec("65000"), dec("67500"), dec("0.0154"), Long, 10)
	require.NoError(t, err)
	assert.True(t, res.Amount.Equal(dec("38.5")), "amount %s", res.Amount)
	assert.True(t, res.Margin.Equal(dec("100.1")), "margin %s", res.Margin)
	assert.True(t, res.Percent.Equal(dec("38.46")), "percent %s", res.Percent)
}

func TestEvaluateShort(t *testing.T) {
	t.Parallel()

	// Short profits when mark falls.
	res, err := Evaluate(dec("100"), dec("90"), dec("5"), Short, 10)
	require.NoError(t, err)
	assert.True(t, res.Amount.Equal(dec("50")), "amount %s", res.Amount)
	assert.True(t, res.Percent.Equal(dec("100")), "percent %s", res.Percent)

	// And loses when it rises.
	res, err = Evaluate(dec("100"), dec("110"), dec("5"), Short, 10)
	require.NoError(t, err)
	assert.True(t, res.Amount.IsNegative())
	assert.True(t, res.Percent.Equal(dec("-100")), "percent %s", res.Percent)
}

func TestEvaluateMirrorSymmetry(t *testing.T) {
	t.Parallel()

	// Long and short of the same move are exact negatives.
	long, err := Evaluate(dec("3200"), dec("3350"), dec("0.78"), Long, 25)
	require.NoError(t, err)
	short, err := Evaluate(dec("3200"), dec("3350"), dec("0.78"), Short, 25)
	require.NoError(t, err)
	assert.True(t, long.Amount.Equal(short.Amount.Neg()))
	assert.True(t, long.Percent.Equal(short.Percent.Neg()))
}

func TestEvaluateZeroLeverage(t *testing.T) {
	t.Parallel()

	res, err := Evaluate(dec("100"), dec("110"), dec("1"), Long, 0)
	require.NoError(t, err)
	assert.True(t, res.Amount.Equal(dec("10")))
	assert.True(t, res.Margin.IsZero())
	assert.True(t, res.Percent.IsZero())
}

func TestEvaluateInvalidSide(t *testing.T) {
	t.Parallel()

	_, err := Evaluate(dec("100"), dec("110"), dec("1"), Side(""), 10)
	assert.ErrorIs(t, err, ErrInvalidSide)
}

func TestPercentOnly(t *testing.T) {
	t.Parallel()

	// 10% price move at 10x is a 100% return on margin.
	pct, err := PercentOnly(dec("100"), dec("110"), Long, 10)
	require.NoError(t, err)
	assert.True(t, pct.Equal(dec("100")), "got %s", pct)

	pct, err = PercentOnly(dec("100"), dec("90"), Short, 10)
	require.NoError(t, err)
	assert.True(t, pct.Equal(dec("100")), "got %s", pct)

	pct, err = PercentOnly(dec("100"), dec("95"), Long, 20)
	require.NoError(t, err)
	assert.True(t, pct.Equal(dec("-100")), "got %s", pct)
}

func TestPercentOnlyScaleInvariance(t *testing.T) {
	t.Parallel()

	// The percent must not depend on position size: any qty through Evaluate
	// gives the same return on margin.
	small, err := Evaluate(dec("3200"), dec("3350"), dec("0.01"), Long, 25)
	require.NoError(t, err)
	large, err := Evaluate(dec("3200"), dec("3350"), dec("10"), Long, 25)
	require.NoError(t, err)
	assert.True(t, small.Percent.Equal(large.Percent))

	direct, err := PercentOnly(dec("3200"), dec("3350"), Long, 25)
	require.NoError(t, err)
	assert.True(t, direct.Equal(small.Percent))
}

func TestPercentOnlyErrors(t *testing.T) {
	t.Parallel()

	_, err := PercentOnly(decimal.Zero, dec("110"), Long, 10)
	assert.Error(t, err)

	_, err = PercentOnly(dec("100"), dec("110"), Side("nope"), 10)
	assert.ErrorIs(t, err, ErrInvalidSide)
}

func TestDerive(t *testing.T) {
	t.Parallel()

	in := TradeInputs{
		Exchange: Bybit,
		Symbol:   "BTCUSDT",
		Side:     Long,
		Entry:    dec("65000"),
		Mark:     dec("67500"),
		Amount:   dec("100"),
		Leverage: 10,
		Deposit:  dec("1000"),
	}

	d, err := Derive(in)
	require.NoError(t, err)

	assert.True(t, d.Qty.Equal(dec("0.0154")), "qty %s", d.Qty)
	assert.True(t, d.Cost.Equal(dec("1000")), "cost %s", d.Cost)
	assert.True(t, d.Liquidation.LessThan(in.Entry))
	assert.True(t, d.PnL.Amount.IsPositive())
	assert.True(t, d.PnL.Percent.IsPositive())
}

func TestDeriveInvalid(t *testing.T) {
	t.Parallel()

	_, err := Derive(TradeInputs{Exchange: Bybit, Side: Long, Entry: dec("100"), Mark: dec("110"), Amount: dec("10"), Leverage: 0})
	assert.ErrorIs(t, err, ErrInvalidLeverage)

	_, err = Derive(TradeInputs{Exchange: Bybit, Side: Side("x"), Entry: dec("100"), Mark: dec("110"), Amount: dec("10"), Leverage: 5})
	assert.ErrorIs(t, err, ErrInvalidSide)
}

func TestQuantityPlaces(t *testing.T) {
	t.Parallel()

	assert.Equal(t, int32(4), Bybit.QuantityPlaces())
	assert.Equal(t, int32(2), BingX.QuantityPlaces())
}
