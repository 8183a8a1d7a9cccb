// Package render turns trade figures into finished card bitmaps. It owns
// the coordinate resolution, region clearing, text/badge drawing and
// template compositing described by the layout tables; all I/O is reading
// cached assets and writing one PNG per render.
package render

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"time"

	"github.com/fogleman/gg"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"golang.org/x/image/font"

	"github.com/simex888888-dotcom/tg-trade-bot3/internal/layout"
	"github.com/simex888888-dotcom/tg-trade-bot3/internal/pnl"
)

// badgeGap is the pixel gap between the measured symbol text and the side
// pill on Bybit templates.
const badgeGap = 75

var hundred = decimal.NewFromInt(100)

// Composer renders trade cards onto per-exchange templates. It is safe for
// concurrent use: assets are cached read-only and every render draws on its
// own template copy.
type Composer struct {
	cfg       *layout.Config
	assets    *Cache
	assetsDir string
	outputDir string
	retention time.Duration
}

// NewComposer creates a composer writing PNGs into outputDir and sweeping
// files older than retention after each render.
func NewComposer(cfg *layout.Config, assetsDir, outputDir string, retention time.Duration) (*Composer, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	return &Composer{
		cfg:       cfg,
		assets:    NewCache(),
		assetsDir: assetsDir,
		outputDir: outputDir,
		retention: retention,
	}, nil
}

// RenderTradeCard composites one standard trade card and returns the output
// file path. pricePrecision is the exchange-reported price precision, or -1
// to use magnitude-based fallback formatting. A missing template or font is
// fatal for this render; optional decorations are skipped silently.
func (c *Composer) RenderTradeCard(in pnl.TradeInputs, d pnl.DerivedTrade, pricePrecision int) (string, error) {
	card, err := c.cfg.Standard(in.Exchange)
	if err != nil {
		return "", err
	}

	tpl, err := c.assets.Template(filepath.Join(c.assetsDir, string(in.Exchange), "template.png"))
	if err != nil {
		return "", err
	}
	img := cloneRGBA(tpl)
	dc := gg.NewContextForRGBA(img)
	w := img.Bounds().Dx()
	h := img.Bounds().Dy()

	clearAll(img, dc, card.Clears)

	regular := filepath.Join(c.assetsDir, card.Fonts.Regular)
	bold := filepath.Join(c.assetsDir, card.Fonts.Bold)

	symbolFace, err := c.assets.Font(bold, card.Sizes.Symbol)
	if err != nil {
		return "", err
	}
	pnlFace, err := c.assets.Font(bold, card.Sizes.PnL)
	if err != nil {
		return "", err
	}
	levFace, err := c.assets.Font(regular, card.Sizes.Leverage)
	if err != nil {
		return "", err
	}
	qtyFace, err := c.assets.Font(regular, card.Sizes.Qty)
	if err != nil {
		return "", err
	}
	entryFace, err := c.assets.Font(regular, card.Sizes.Entry)
	if err != nil {
		return "", err
	}
	markFace, err := c.assets.Font(regular, card.Sizes.Mark)
	if err != nil {
		return "", err
	}
	liqFace, err := c.assets.Font(regular, card.Sizes.Liq)
	if err != nil {
		return "", err
	}
	badgeFace, err := c.assets.Font(regular, ScaleFont(card.Sizes.Badge, h, c.cfg.ReferenceHeight))
	if err != nil {
		return "", err
	}

	if card.SymbolIcon != nil {
		c.drawSymbolIcon(dc, in.Exchange, *card.SymbolIcon, in.Symbol, symbolFace, w, h)
	}

	symbolX, symbolY := resolveField(card.Symbol, w, h)
	drawAnchored(dc, in.Symbol, symbolX, symbolY, card.Symbol.Anchor, white, symbolFace)

	badgeText := "Long"
	if in.Side != pnl.Long {
		badgeText = "Short"
	}
	badgeX, badgeY := resolveField(card.SideBadge, w, h)
	if in.Exchange == pnl.Bybit {
		// The Bybit template has no fixed badge slot; the pill follows
		// the symbol text. BingX uses the configured fixed box instead.
		badgeX = symbolX + int(textWidth(dc, symbolFace, in.Symbol)) + badgeGap + card.SideBadge.DX
	}
	drawSideBadge(dc, badgeX, badgeY, badgeText, sideColor(in.Side == pnl.Long), card.BadgeStyle, card.SideBadge, badgeFace)

	pnlText := fmt.Sprintf("%s$ (%s%%)", signedFixed(d.PnL.Amount, 2), signedFixed(d.PnL.Percent, 2))
	pnlCol := color.Color(green)
	if d.PnL.Percent.Sign() < 0 {
		pnlCol = red
	}
	pnlX, pnlY := resolveField(card.PnL, w, h)
	drawAnchored(dc, pnlText, pnlX, pnlY, card.PnL.Anchor, pnlCol, pnlFace)

	if in.Exchange == pnl.Bybit {
		levX, levY := resolveField(card.Leverage, w, h)
		drawAnchored(dc, fmt.Sprintf("Cross %dx", in.Leverage), levX, levY, card.Leverage.Anchor, white, levFace)
	}
	if card.MarginMode != nil && card.LeverageBox != nil {
		mx, my := resolveField(*card.MarginMode, w, h)
		drawGrayBox(dc, mx, my, "Cross", *card.MarginMode, levFace)
		lx, ly := resolveField(*card.LeverageBox, w, h)
		drawGrayBox(dc, lx, ly, fmt.Sprintf("%dx", in.Leverage), *card.LeverageBox, levFace)
	}

	qtyX, qtyY := resolveField(card.Qty, w, h)
	drawAnchored(dc, d.Qty.StringFixed(in.Exchange.QuantityPlaces()), qtyX, qtyY, card.Qty.Anchor, white, qtyFace)

	if card.Margin != nil {
		mx, my := resolveField(*card.Margin, w, h)
		drawAnchored(dc, in.Amount.StringFixed(2), mx, my, card.Margin.Anchor, white, qtyFace)
	}

	entryX, entryY := resolveField(card.Entry, w, h)
	drawAnchored(dc, FormatPrice(in.Entry, pricePrecision), entryX, entryY, card.Entry.Anchor, white, entryFace)
	markX, markY := resolveField(card.Mark, w, h)
	drawAnchored(dc, FormatPrice(in.Mark, pricePrecision), markX, markY, card.Mark.Anchor, white, markFace)
	liqX, liqY := resolveField(card.Liq, w, h)
	drawAnchored(dc, FormatPrice(d.Liquidation, pricePrecision), liqX, liqY, card.Liq.Anchor, orange, liqFace)

	if card.Risk != nil {
		c.drawRisk(dc, *card.Risk, in, d, levFace, w, h)
	}

	path := outputPath(c.outputDir, "result_")
	if err := dc.SavePNG(path); err != nil {
		return "", fmt.Errorf("save trade card: %w", err)
	}
	sweepOutputs(c.outputDir, "result_", c.retention)
	return path, nil
}

// drawSymbolIcon pastes the coin icon right after the measured symbol text.
// The icon is an optional decoration: a missing file skips it.
func (c *Composer) drawSymbolIcon(dc *gg.Context, exchange pnl.Exchange, f layout.Field, symbol string, face font.Face, w, h int) {
	icon, err := c.assets.Icon(filepath.Join(c.assetsDir, string(exchange), "icon.png"), f.Size)
	if err != nil {
		log.Debug().Err(err).Str("exchange", string(exchange)).Msg("coin icon unavailable")
		return
	}
	x, y := resolveField(f, w, h)
	x += int(textWidth(dc, face, symbol)) + f.Gap
	pasteIcon(dc, icon, x, y)
}

// riskDisplay picks the text and color band for the margin-to-notional
// risk percentage: green up to 40%, orange up to 70%, red above. Risk that
// is undefined (zero notional or amount) or rounds to zero shows "--".
func riskDisplay(amount, notional decimal.Decimal) (string, color.Color) {
	if !notional.IsPositive() || !amount.IsPositive() {
		return "--", orange
	}
	risk := amount.Div(notional).Mul(hundred)
	if risk.Round(2).IsZero() {
		return "--", orange
	}
	text := risk.StringFixed(2) + "%"
	switch {
	case risk.LessThanOrEqual(decimal.NewFromInt(40)):
		return text, green
	case risk.LessThanOrEqual(decimal.NewFromInt(70)):
		return text, orange
	default:
		return text, red
	}
}

func (c *Composer) drawRisk(dc *gg.Context, f layout.Field, in pnl.TradeInputs, d pnl.DerivedTrade, face font.Face, w, h int) {
	text, col := riskDisplay(in.Amount, in.Entry.Mul(d.Qty))
	x, y := resolveField(f, w, h)
	drawAnchored(dc, text, x, y, f.Anchor, col, face)
}
