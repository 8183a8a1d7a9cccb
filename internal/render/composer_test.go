package render

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/simex888888-dotcom/tg-trade-bot3/internal/layout"
	"github.com/simex888888-dotcom/tg-trade-bot3/internal/pnl"
)

// writeAssets lays out a minimal assets tree: the Go regular font standing
// in for both faces and flat dark templates for both exchanges.
func writeAssets(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	fontsDir := filepath.Join(dir, "fonts")
	require.NoError(t, os.MkdirAll(fontsDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(fontsDir, "SF_Pro_Display_Regular.otf"), goregular.TTF, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(fontsDir, "SF_Pro_Display_Semibold.otf"), goregular.TTF, 0o644))

	for _, exchange := range []string{"bybit", "bingx"} {
		exDir := filepath.Join(dir, exchange)
		require.NoError(t, os.MkdirAll(exDir, 0o755))
		for _, name := range []string{"template.png", "screenshot_long.png", "screenshot_short.png"} {
			writePNG(t, filepath.Join(exDir, name), 934, 467)
		}
	}
	return dir
}

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{color.RGBA{18, 20, 26, 255}}, image.Point{}, draw.Src)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func newTestComposer(t *testing.T) (*Composer, string) {
	t.Helper()
	assets := writeAssets(t)
	out := t.TempDir()
	c, err := NewComposer(layout.Default(), assets, out, time.Hour)
	require.NoError(t, err)
	return c, out
}

func testTrade(exchange pnl.Exchange, side pnl.Side) (pnl.TradeInputs, pnl.DerivedTrade) {
	in := pnl.TradeInputs{
		Exchange: exchange,
		Symbol:   "BTCUSDT",
		Side:     side,
		Entry:    dec("65000"),
		Mark:     dec("67500"),
		Amount:   dec("100"),
		Leverage: 10,
		Deposit:  dec("1000"),
	}
	d, err := pnl.Derive(in)
	if err != nil {
		panic(err)
	}
	return in, d
}

func TestRenderTradeCard(t *testing.T) {
	t.Parallel()

	c, out := newTestComposer(t)

	for _, exchange := range []pnl.Exchange{pnl.Bybit, pnl.BingX} {
		for _, side := range []pnl.Side{pnl.Long, pnl.Short} {
			in, d := testTrade(exchange, side)
			path, err := c.RenderTradeCard(in, d, 2)
			require.NoError(t, err, "%s %s", exchange, side)

			assert.Equal(t, out, filepath.Dir(path))
			assertPNG(t, path, 934, 467)
		}
	}
}

func TestRenderTradeCardConcurrent(t *testing.T) {
	t.Parallel()

	c, _ := newTestComposer(t)
	in, d := testTrade(pnl.Bybit, pnl.Long)

	done := make(chan error, 4)
	for i := 0; i < 4; i++ {
		go func() {
			_, err := c.RenderTradeCard(in, d, -1)
			done <- err
		}()
	}
	for i := 0; i < 4; i++ {
		assert.NoError(t, <-done)
	}
}

func TestRenderTradeCardUnknownExchange(t *testing.T) {
	t.Parallel()

	c, _ := newTestComposer(t)
	in, d := testTrade(pnl.Bybit, pnl.Long)
	in.Exchange = pnl.Exchange("kraken")

	_, err := c.RenderTradeCard(in, d, -1)
	assert.Error(t, err)
}

func TestRenderTradeCardMissingTemplate(t *testing.T) {
	t.Parallel()

	assets := t.TempDir() // no templates at all
	c, err := NewComposer(layout.Default(), assets, t.TempDir(), time.Hour)
	require.NoError(t, err)

	in, d := testTrade(pnl.Bybit, pnl.Long)
	_, err = c.RenderTradeCard(in, d, -1)
	assert.Error(t, err)
}

func TestRenderCustomCard(t *testing.T) {
	t.Parallel()

	c, out := newTestComposer(t)

	for _, exchange := range []pnl.Exchange{pnl.Bybit, pnl.BingX} {
		in := CustomInputs{
			Exchange: exchange,
			Username: "trader",
			Symbol:   "ETHUSDT",
			Side:     pnl.Long,
			Entry:    dec("3200"),
			Exit:     dec("3350"),
			Leverage: "25x",
			Percent:  dec("117.19"),
			Referral: "REF123",
			Datetime: "2026-08-29 12:00",
		}
		path, err := c.RenderCustomCard(in)
		require.NoError(t, err, exchange)
		assert.Equal(t, out, filepath.Dir(path))
		assertPNG(t, path, 934, 467)
	}
}

func TestRenderCustomCardLossTemplate(t *testing.T) {
	t.Parallel()

	c, _ := newTestComposer(t)

	// A negative percent renders onto the short screenshot and with blank
	// optional lines skipped.
	in := CustomInputs{
		Exchange: pnl.Bybit,
		Username: "trader",
		Symbol:   "BTCUSDT",
		Side:     pnl.Short,
		Entry:    dec("65000"),
		Exit:     dec("66000"),
		Leverage: "10x",
		Percent:  dec("-15.38"),
	}
	path, err := c.RenderCustomCard(in)
	require.NoError(t, err)
	assertPNG(t, path, 934, 467)
}

func TestTemplateNotMutatedAcrossRenders(t *testing.T) {
	t.Parallel()

	c, _ := newTestComposer(t)
	in, d := testTrade(pnl.Bybit, pnl.Long)

	first, err := c.RenderTradeCard(in, d, -1)
	require.NoError(t, err)
	second, err := c.RenderTradeCard(in, d, -1)
	require.NoError(t, err)

	// Renders draw on template copies, so identical inputs give
	// pixel-identical output.
	a, err := os.ReadFile(first)
	require.NoError(t, err)
	b, err := os.ReadFile(second)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestSweepOutputs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	old := filepath.Join(dir, "result_old.png")
	fresh := filepath.Join(dir, "result_new.png")
	other := filepath.Join(dir, "keep.png")
	for _, p := range []string{old, fresh, other} {
		require.NoError(t, os.WriteFile(p, []byte("x"), 0o644))
	}
	past := time.Now().Add(-2 * time.Hour)
	require.NoError(t, os.Chtimes(old, past, past))
	require.NoError(t, os.Chtimes(other, past, past))

	sweepOutputs(dir, "result_", time.Hour)

	_, err := os.Stat(old)
	assert.True(t, os.IsNotExist(err), "old output should be swept")
	_, err = os.Stat(fresh)
	assert.NoError(t, err)
	// Files without the prefix are never touched.
	_, err = os.Stat(other)
	assert.NoError(t, err)
}

func TestOutputPathUnique(t *testing.T) {
	t.Parallel()

	a := outputPath("/tmp/out", "result_")
	b := outputPath("/tmp/out", "result_")
	assert.NotEqual(t, a, b)
	assert.Contains(t, a, "result_")
	assert.Equal(t, ".png", filepath.Ext(a))
}

func TestParseLeverage(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 50.0, parseLeverage("50x"))
	assert.Equal(t, 12.5, parseLeverage("12.5X"))
	assert.Equal(t, 1.0, parseLeverage("nope"))
	assert.Equal(t, 1.0, parseLeverage(""))
}

func TestRiskDisplayBands(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		amount   string
		notional string
		wantText string
		wantCol  color.Color
	}{
		{"low risk", "10", "100", "10.00%", green},
		{"green boundary", "40", "100", "40.00%", green},
		{"just over green", "40.01", "100", "40.01%", orange},
		{"orange boundary", "70", "100", "70.00%", orange},
		{"just over orange", "70.01", "100", "70.01%", red},
		{"full risk", "100", "100", "100.00%", red},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			text, col := riskDisplay(dec(tt.amount), dec(tt.notional))
			assert.Equal(t, tt.wantText, text)
			assert.Equal(t, tt.wantCol, col)
		})
	}
}

func TestRiskDisplayUndefined(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		amount   string
		notional string
	}{
		{"zero notional", "100", "0"},
		{"zero amount", "0", "100"},
		{"both zero", "0", "0"},
		{"negative notional", "100", "-1"},
		{"rounds to zero", "0.0001", "100000"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			text, col := riskDisplay(dec(tt.amount), dec(tt.notional))
			assert.Equal(t, "--", text)
			assert.Equal(t, color.Color(orange), col)
		})
	}
}

func TestCustomPnLSize(t *testing.T) {
	t.Parallel()

	const base = 120
	tests := []struct {
		percent string
		want    int
	}{
		{"0", base},
		{"49", base},
		{"49.01", 100},
		{"50", 100},
		{"99", 100},
		{"99.01", 80},
		{"100", 80},
		{"250", 80},
		{"-49", base},
		{"-100", 80},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, customPnLSize(base, dec(tt.percent)), "percent %s", tt.percent)
	}
}

func assertPNG(t *testing.T, path string, w, h int) {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, w, img.Bounds().Dx())
	assert.Equal(t, h, img.Bounds().Dy())
}
