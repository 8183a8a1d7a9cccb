package render

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"github.com/simex888888-dotcom/tg-trade-bot3/internal/layout"
)

// Card palette.
var (
	white  = color.RGBA{255, 255, 255, 255}
	green  = color.RGBA{0, 200, 120, 255}
	red    = color.RGBA{230, 60, 60, 255}
	orange = color.RGBA{245, 166, 89, 255}
	gray   = color.RGBA{150, 150, 150, 255}

	darkPill = color.RGBA{30, 30, 30, 255}
	grayPill = color.RGBA{80, 80, 80, 255}
)

func sideColor(long bool) color.Color {
	if long {
		return green
	}
	return red
}

// drawAnchored draws a single line of text with the given anchor. No
// wrapping and no bounds check: the layout table is the sole guarantee
// against clipping.
func drawAnchored(dc *gg.Context, text string, x, y int, a layout.Anchor, col color.Color, face font.Face) {
	dc.SetFontFace(face)
	dc.SetColor(col)
	dc.DrawStringAnchored(text, float64(x), float64(y), a.AX(), a.AY())
}

// textWidth measures the horizontal advance of text in the given face.
func textWidth(dc *gg.Context, face font.Face, text string) float64 {
	dc.SetFontFace(face)
	w, _ := dc.MeasureString(text)
	return w
}

// drawSideBadge draws the Long/Short pill centered at (x, y). When the
// layout supplies a box the pill is fixed-size so "Long" and "Short" render
// into identical badges; otherwise the box fits the text plus padding.
// Style "filled" paints the pill in the side color with white text,
// "outline" keeps a dark pill and colors the text.
func drawSideBadge(dc *gg.Context, x, y int, text string, col color.Color, style layout.BadgeStyle, f layout.Field, face font.Face) {
	dc.SetFontFace(face)

	var boxW, boxH float64
	radius := float64(f.Radius)
	if f.W > 0 && f.H > 0 {
		boxW = float64(f.W)
		boxH = float64(f.H)
	} else {
		tw, th := dc.MeasureString(text)
		boxW = tw + 2*16
		boxH = th + 1.5*18
		if radius == 0 {
			radius = 20
		}
	}

	x1 := float64(x) - boxW/2
	y1 := float64(y) - boxH/2

	fill := color.Color(darkPill)
	textCol := col
	if style == layout.BadgeFilled {
		fill = col
		textCol = white
	}

	dc.SetColor(fill)
	dc.DrawRoundedRectangle(x1, y1, boxW, boxH, radius)
	dc.Fill()

	dc.SetColor(textCol)
	dc.DrawStringAnchored(text, x1+boxW/2, y1+boxH/2, 0.5, 0.5)
}

// drawGrayBox draws a neutral rounded box fitted around the text, used for
// the BingX "Cross" and leverage chips.
func drawGrayBox(dc *gg.Context, x, y int, text string, f layout.Field, face font.Face) {
	padX := f.PadX
	if padX == 0 {
		padX = 16
	}
	padY := f.PadY
	if padY == 0 {
		padY = 10
	}
	radius := f.Radius
	if radius == 0 {
		radius = 14
	}

	dc.SetFontFace(face)
	tw, th := dc.MeasureString(text)
	boxW := tw + 2*float64(padX)
	boxH := th + 2*float64(padY)

	dc.SetColor(grayPill)
	dc.DrawRoundedRectangle(float64(x)-boxW/2, float64(y)-boxH/2, boxW, boxH, float64(radius))
	dc.Fill()

	dc.SetColor(white)
	dc.DrawStringAnchored(text, float64(x), float64(y), 0.5, 0.5)
}

// pasteIcon composites an auxiliary bitmap at the given pixel position.
func pasteIcon(dc *gg.Context, icon image.Image, x, y int) {
	dc.DrawImage(icon, x, y)
}
