package render

import "github.com/simex888888-dotcom/tg-trade-bot3/internal/layout"

// Resolve converts a fractional position into absolute pixel coordinates
// against an image of the given size, then applies the pixel offset.
func Resolve(fx, fy float64, imgW, imgH, dx, dy int) (int, int) {
	return int(fx*float64(imgW)) + dx, int(fy*float64(imgH)) + dy
}

// resolveField resolves a layout field against an image size.
func resolveField(f layout.Field, imgW, imgH int) (int, int) {
	return Resolve(f.X, f.Y, imgW, imgH, f.DX, f.DY)
}

// ScaleFont scales a base font size by the ratio of the actual template
// height to the reference height the size was tuned against. The result is
// clamped to 10px so text stays legible on small templates.
func ScaleFont(base, imgH, refH int) int {
	size := base * imgH / refH
	if size < 10 {
		return 10
	}
	return size
}
