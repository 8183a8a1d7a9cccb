package render

import (
	"fmt"
	"image"
	"image/color"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fogleman/gg"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"golang.org/x/image/font"

	"github.com/simex888888-dotcom/tg-trade-bot3/internal/layout"
	"github.com/simex888888-dotcom/tg-trade-bot3/internal/pnl"
)

// CustomInputs is the free-form PnL card form. Referral and Datetime may be
// blank, in which case those lines are skipped.
type CustomInputs struct {
	Exchange pnl.Exchange
	Username string
	Symbol   string
	Side     pnl.Side
	Entry    decimal.Decimal
	Exit     decimal.Decimal
	Leverage string // raw user text, e.g. "50x"
	Percent  decimal.Decimal
	Referral string
	Datetime string
}

// RenderCustomCard composites a custom card onto the long or short
// screenshot template. The template is chosen by the sign of the PnL
// percent, not by the side the user traded.
func (c *Composer) RenderCustomCard(in CustomInputs) (string, error) {
	card, err := c.cfg.Custom(in.Exchange)
	if err != nil {
		return "", err
	}

	screenshot := "screenshot_long.png"
	if in.Percent.Sign() < 0 {
		screenshot = "screenshot_short.png"
	}
	tpl, err := c.assets.Template(filepath.Join(c.assetsDir, string(in.Exchange), screenshot))
	if err != nil {
		return "", err
	}

	if in.Exchange == pnl.BingX {
		return c.renderCustomBingX(card, in, tpl)
	}
	return c.renderCustomBybit(card, in, tpl)
}

func (c *Composer) renderCustomBybit(card *layout.CustomCard, in CustomInputs, tpl *image.RGBA) (string, error) {
	img := cloneRGBA(tpl)
	dc := gg.NewContextForRGBA(img)
	w := img.Bounds().Dx()
	h := img.Bounds().Dy()

	regular := filepath.Join(c.assetsDir, card.Fonts.Regular)
	bold := filepath.Join(c.assetsDir, card.Fonts.Bold)

	if card.SymbolIcon != nil {
		icon, err := c.assets.Icon(filepath.Join(c.assetsDir, string(pnl.Bybit), "icon.png"), card.SymbolIcon.Size)
		if err == nil {
			x, y := resolveField(*card.SymbolIcon, w, h)
			pasteIcon(dc, icon, x, y)
		} else {
			log.Debug().Err(err).Msg("bybit coin icon unavailable")
		}
	}

	usernameFace, err := c.assets.Font(regular, card.Sizes.Username)
	if err != nil {
		return "", err
	}
	symbolFace, err := c.assets.Font(bold, card.Sizes.Symbol)
	if err != nil {
		return "", err
	}

	pnlFace, err := c.assets.Font(bold, customPnLSize(card.Sizes.PnL, in.Percent))
	if err != nil {
		return "", err
	}
	entryFace, err := c.assets.Font(bold, card.Sizes.Entry)
	if err != nil {
		return "", err
	}
	exitFace, err := c.assets.Font(bold, card.Sizes.Exit)
	if err != nil {
		return "", err
	}
	levFace, err := c.assets.Font(regular, card.Sizes.LeverageText)
	if err != nil {
		return "", err
	}

	if in.Username != "" && card.Username != nil {
		x, y := resolveField(*card.Username, w, h)
		drawAnchored(dc, in.Username, x, y, card.Username.Anchor, white, usernameFace)
	}

	sx, sy := resolveField(card.Symbol, w, h)
	drawAnchored(dc, in.Symbol, sx, sy, card.Symbol.Anchor, white, symbolFace)

	pnlCol := color.Color(green)
	if in.Percent.Sign() < 0 {
		pnlCol = red
	}
	px, py := resolveField(card.PnL, w, h)
	drawAnchored(dc, signedFixed(in.Percent, 2)+"%", px, py, card.PnL.Anchor, pnlCol, pnlFace)

	ex, ey := resolveField(card.Entry, w, h)
	drawAnchored(dc, FormatPrice(in.Entry, -1), ex, ey, card.Entry.Anchor, white, entryFace)
	xx, xy := resolveField(card.Exit, w, h)
	drawAnchored(dc, FormatPrice(in.Exit, -1), xx, xy, card.Exit.Anchor, white, exitFace)

	if card.CrossLeverage != nil {
		c.drawLeveragePill(dc, *card.CrossLeverage, in, levFace, w, h)
	}

	path := outputPath(c.outputDir, "custom_bybit_")
	if err := dc.SavePNG(path); err != nil {
		return "", fmt.Errorf("save custom card: %w", err)
	}
	sweepOutputs(c.outputDir, "custom_bybit_", c.retention)
	return path, nil
}

// drawLeveragePill draws the "Long 50.0X" pill on a translucent rounded
// overlay. Its horizontal position shifts with the symbol length so the
// pill clears the symbol text drawn at a fixed slot.
func (c *Composer) drawLeveragePill(dc *gg.Context, f layout.Field, in CustomInputs, face font.Face, w, h int) {
	direction := "Long"
	if in.Side != pnl.Long {
		direction = "Short"
	}
	text := fmt.Sprintf("%s %.1fX", direction, parseLeverage(in.Leverage))

	x := f.X*float64(w) + float64(len(in.Symbol)*10+100)
	y := f.Y * float64(h)

	dc.SetFontFace(face)
	tw, th := dc.MeasureString(text)
	boxW := tw + 2*float64(f.PadX)
	boxH := th + 2*float64(f.PadY)

	dc.SetRGBA255(35, 35, 35, 100)
	dc.DrawRoundedRectangle(x-boxW/2, y-boxH/2, boxW, boxH, float64(f.Radius))
	dc.Fill()

	dc.SetColor(sideColor(in.Side == pnl.Long))
	dc.DrawStringAnchored(text, x, y, 0.5, 0.5)
}

func (c *Composer) renderCustomBingX(card *layout.CustomCard, in CustomInputs, tpl *image.RGBA) (string, error) {
	img := cloneRGBA(tpl)
	dc := gg.NewContextForRGBA(img)
	w := img.Bounds().Dx()
	h := img.Bounds().Dy()

	regular := filepath.Join(c.assetsDir, card.Fonts.Regular)
	bold := filepath.Join(c.assetsDir, card.Fonts.Bold)

	usernameFace, err := c.assets.Font(regular, card.Sizes.Username)
	if err != nil {
		return "", err
	}
	symbolFace, err := c.assets.Font(bold, card.Sizes.Symbol)
	if err != nil {
		return "", err
	}
	pnlFace, err := c.assets.Font(bold, card.Sizes.PnL)
	if err != nil {
		return "", err
	}
	entryFace, err := c.assets.Font(bold, card.Sizes.Entry)
	if err != nil {
		return "", err
	}
	exitFace, err := c.assets.Font(bold, card.Sizes.Exit)
	if err != nil {
		return "", err
	}
	smallFace, err := c.assets.Font(regular, card.Sizes.Small)
	if err != nil {
		return "", err
	}

	if card.Lines != nil {
		c.drawBingXDividers(dc, card, in, smallFace, symbolFace, w, h)
	}

	if in.Username != "" && card.Username != nil {
		x, y := resolveField(*card.Username, w, h)
		drawAnchored(dc, in.Username, x, y, card.Username.Anchor, white, usernameFace)
	}

	sx, sy := resolveField(card.Symbol, w, h)
	drawAnchored(dc, in.Symbol, sx, sy, card.Symbol.Anchor, white, symbolFace)

	pnlCol := color.Color(green)
	if in.Percent.Sign() < 0 {
		pnlCol = red
	}
	px, py := resolveField(card.PnL, w, h)
	drawAnchored(dc, signedFixed(in.Percent, 2)+"%", px, py, card.PnL.Anchor, pnlCol, pnlFace)

	ex, ey := resolveField(card.Entry, w, h)
	drawAnchored(dc, FormatPrice(in.Entry, -1), ex, ey, card.Entry.Anchor, white, entryFace)
	xx, xy := resolveField(card.Exit, w, h)
	drawAnchored(dc, FormatPrice(in.Exit, -1), xx, xy, card.Exit.Anchor, white, exitFace)

	if dt := strings.TrimSpace(in.Datetime); dt != "" && card.Datetime != nil {
		x, y := resolveField(*card.Datetime, w, h)
		drawAnchored(dc, dt, x, y, card.Datetime.Anchor, gray, smallFace)
	}
	if ref := strings.TrimSpace(in.Referral); ref != "" && card.Referral != nil {
		x, y := resolveField(*card.Referral, w, h)
		drawAnchored(dc, ref, x, y, card.Referral.Anchor, white, smallFace)
	}

	path := outputPath(c.outputDir, "custom_bingx_")
	if err := dc.SavePNG(path); err != nil {
		return "", fmt.Errorf("save custom card: %w", err)
	}
	sweepOutputs(c.outputDir, "custom_bingx_", c.retention)
	return path, nil
}

// drawBingXDividers pastes the divider lines around the symbol slot and
// draws the side and leverage labels between them. Without the line asset
// the whole decoration block is skipped, matching the template's plain
// look.
func (c *Composer) drawBingXDividers(dc *gg.Context, card *layout.CustomCard, in CustomInputs, sideFace, symbolFace font.Face, w, h int) {
	f := card.Lines
	line, err := c.assets.Icon(filepath.Join(c.assetsDir, string(pnl.BingX), "line.png"), f.Size)
	if err != nil {
		log.Debug().Err(err).Msg("bingx divider line unavailable")
		return
	}

	baseX, baseY := resolveField(*f, w, h)
	symW := int(textWidth(dc, symbolFace, in.Symbol))
	x1 := baseX + symW + f.Gap
	x2 := x1 + f.Size + f.Spacing
	pasteIcon(dc, line, x1, baseY)
	pasteIcon(dc, line, x2, baseY)

	if card.SidePos != nil {
		text := "Long"
		if in.Side != pnl.Long {
			text = "Short"
		}
		x, y := resolveField(*card.SidePos, w, h)
		drawAnchored(dc, text, x, y, card.SidePos.Anchor, sideColor(in.Side == pnl.Long), sideFace)
	}
	if card.LeveragePos != nil {
		num := strings.ToUpper(strings.TrimSpace(strings.ReplaceAll(strings.ReplaceAll(in.Leverage, "x", ""), "X", "")))
		if num != "" {
			x, y := resolveField(*card.LeveragePos, w, h)
			drawAnchored(dc, num+"X", x, y, card.LeveragePos.Anchor, white, sideFace)
		}
	}
}

// customPnLSize steps the percent face down for large results so the text
// stays inside its template slot: three digits get the smallest face, two
// digits above 49 a middle one, everything else the layout size.
func customPnLSize(base int, percent decimal.Decimal) int {
	abs := percent.Abs()
	switch {
	case abs.GreaterThan(decimal.NewFromInt(99)):
		return 80
	case abs.GreaterThan(decimal.NewFromInt(49)):
		return 100
	}
	return base
}

// parseLeverage extracts the numeric part of a user-supplied leverage value
// such as "50x". Unparsable input defaults to 1.
func parseLeverage(raw string) float64 {
	s := strings.TrimSuffix(strings.ToLower(strings.TrimSpace(raw)), "x")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return 1
	}
	return v
}
