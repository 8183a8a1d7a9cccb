package render

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"

	"github.com/simex888888-dotcom/tg-trade-bot3/internal/layout"
)

// clearRegion repaints one configured rectangle with a background sample so
// the template copy can be redrawn without ghosting from earlier text. The
// sample comes from the explicit point when the region configures one,
// otherwise from 2px inside the rectangle's top-left corner. This assumes
// the template is locally flat there; textured backgrounds will show the
// patch.
func clearRegion(img *image.RGBA, dc *gg.Context, r layout.ClearRegion) {
	w := img.Bounds().Dx()
	h := img.Bounds().Dy()

	x := int(r.X * float64(w))
	y := int(r.Y * float64(h))
	cw := int(r.W * float64(w))
	ch := int(r.H * float64(h))

	var bg color.Color
	if r.HasBG {
		bg = img.RGBAAt(int(r.BGX*float64(w)), int(r.BGY*float64(h)))
	} else {
		bg = img.RGBAAt(x+2, y+2)
	}

	dc.SetColor(bg)
	dc.DrawRectangle(float64(x), float64(y), float64(cw), float64(ch))
	dc.Fill()
}

// clearAll repaints every configured region. It runs before any text is
// drawn in a render pass so re-renders never show stale content.
func clearAll(img *image.RGBA, dc *gg.Context, regions []layout.ClearRegion) {
	for _, r := range regions {
		clearRegion(img, dc, r)
	}
}
