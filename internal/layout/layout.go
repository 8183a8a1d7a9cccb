// Package layout holds the hand-tuned, per-exchange coordinate tables that
// drive card rendering. Positions are fractional (0..1 of image width and
// height) so the same table works across template resolutions; pixel
// offsets and box sizes are tuned against the native template bitmaps.
//
// The tables are built once by Default and never mutated afterwards; the
// renderer only reads them.
package layout

import (
	"fmt"

	"github.com/simex888888-dotcom/tg-trade-bot3/internal/pnl"
)

// Anchor names one of the nine text anchor combinations, horizontal first:
// l/c/r for left/center/right, then t/m/b for top/middle/bottom.
type Anchor string

const (
	LeftTop      Anchor = "lt"
	LeftMiddle   Anchor = "lm"
	LeftBottom   Anchor = "lb"
	CenterTop    Anchor = "ct"
	CenterMiddle Anchor = "cm"
	CenterBottom Anchor = "cb"
	RightTop     Anchor = "rt"
	RightMiddle  Anchor = "rm"
	RightBottom  Anchor = "rb"
)

// Valid reports whether the anchor is one of the nine known combinations.
func (a Anchor) Valid() bool {
	switch a {
	case LeftTop, LeftMiddle, LeftBottom,
		CenterTop, CenterMiddle, CenterBottom,
		RightTop, RightMiddle, RightBottom:
		return true
	}
	return false
}

// AX is the horizontal anchor fraction: 0 for left, 0.5 for center, 1 for
// right of the measured text box.
func (a Anchor) AX() float64 {
	switch a[0] {
	case 'c':
		return 0.5
	case 'r':
		return 1
	}
	return 0
}

// AY is the vertical anchor fraction in gg terms, where the baseline lands
// at y + ay*h: 1 puts the text top at y, 0.5 centers it, 0 rests it on y.
func (a Anchor) AY() float64 {
	switch a[1] {
	case 't':
		return 1
	case 'm':
		return 0.5
	}
	return 0
}

// Field places one named card element. X/Y are fractional, DX/DY pixel
// offsets. W/H/Radius describe a fixed badge or pill box where one is
// required; PadX/PadY pad content-fit boxes; Size/Gap/Spacing position
// pasted decorations (coin icon, divider lines) relative to measured text.
type Field struct {
	X, Y       float64
	DX, DY     int
	Anchor     Anchor
	W, H       int
	Radius     int
	PadX, PadY int
	Size       int
	Gap        int
	Spacing    int
}

// ClearRegion is a rectangle repainted with a sampled background color
// before redraw. The sample point defaults to 2px inside the top-left
// corner; HasBG selects the explicit BGX/BGY point instead.
type ClearRegion struct {
	X, Y, W, H float64
	BGX, BGY   float64
	HasBG      bool
}

// FontSpec names the two font files, relative to the assets directory.
type FontSpec struct {
	Regular string
	Bold    string
}

// BadgeStyle selects the side-badge color policy.
type BadgeStyle string

const (
	// BadgeOutline draws a dark pill with colored text.
	BadgeOutline BadgeStyle = "outline"
	// BadgeFilled draws a colored pill with white text.
	BadgeFilled BadgeStyle = "filled"
)

// Sizes holds per-field base font sizes for a standard card, in points at
// the template's native resolution.
type Sizes struct {
	Symbol   int
	PnL      int
	Leverage int
	Qty      int
	Entry    int
	Mark     int
	Liq      int
	Badge    int
}

// Card is the full layout of a standard per-exchange trade card. Pointer
// fields are optional: a nil entry means the exchange's template has no
// such element and the renderer skips it.
type Card struct {
	Fonts      FontSpec
	Sizes      Sizes
	BadgeStyle BadgeStyle

	Symbol    Field
	Leverage  Field
	SideBadge Field
	PnL       Field
	Qty       Field
	Entry     Field
	Mark      Field
	Liq       Field

	Margin      *Field
	Risk        *Field
	MarginMode  *Field
	LeverageBox *Field
	SymbolIcon  *Field

	// Clears are repainted in order before any field is drawn.
	Clears []ClearRegion
}

// CustomSizes holds base font sizes for a custom card.
type CustomSizes struct {
	Username     int
	Symbol       int
	PnL          int
	Entry        int
	Exit         int
	LeverageText int
	Small        int
}

// CustomCard is the layout of a free-form PnL card rendered onto a
// screenshot template.
type CustomCard struct {
	Fonts FontSpec
	Sizes CustomSizes

	Symbol Field
	PnL    Field
	Entry  Field
	Exit   Field

	Username      *Field
	SymbolIcon    *Field
	CrossLeverage *Field
	Lines         *Field
	SidePos       *Field
	LeveragePos   *Field
	Referral      *Field
	Datetime      *Field
}

// Config is the immutable layout configuration, constructed once at startup
// and shared read-only with the renderer.
type Config struct {
	// ReferenceHeight is the template height the base font sizes were
	// tuned against; see render.ScaleFont.
	ReferenceHeight int

	standard map[pnl.Exchange]*Card
	custom   map[pnl.Exchange]*CustomCard
}

// Standard returns the standard-card layout for an exchange. A missing
// table is a programming error surfaced to the caller, never silently
// substituted.
func (c *Config) Standard(e pnl.Exchange) (*Card, error) {
	card, ok := c.standard[e]
	if !ok {
		return nil, fmt.Errorf("layout: no standard card table for exchange %q", e)
	}
	return card, nil
}

// Custom returns the custom-card layout for an exchange.
func (c *Config) Custom(e pnl.Exchange) (*CustomCard, error) {
	card, ok := c.custom[e]
	if !ok {
		return nil, fmt.Errorf("layout: no custom card table for exchange %q", e)
	}
	return card, nil
}

// Exchanges lists the exchanges a standard table exists for.
func (c *Config) Exchanges() []pnl.Exchange {
	out := make([]pnl.Exchange, 0, len(c.standard))
	for e := range c.standard {
		out = append(out, e)
	}
	return out
}
