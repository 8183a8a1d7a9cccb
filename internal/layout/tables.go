package layout

import "github.com/simex888888-dotcom/tg-trade-bot3/internal/pnl"

// Shared font files, relative to the assets directory.
var defaultFonts = FontSpec{
	Regular: "fonts/SF_Pro_Display_Regular.otf",
	Bold:    "fonts/SF_Pro_Display_Semibold.otf",
}

// Default builds the layout tables for every supported exchange and card
// variant. Coordinates were calibrated by clicking through the native
// template bitmaps, so the numbers are hand-tuned, not derived.
func Default() *Config {
	return &Config{
		ReferenceHeight: 467,
		standard: map[pnl.Exchange]*Card{
			pnl.Bybit: bybitCard(),
			pnl.BingX: bingxCard(),
		},
		custom: map[pnl.Exchange]*CustomCard{
			pnl.Bybit: bybitCustomCard(),
			pnl.BingX: bingxCustomCard(),
		},
	}
}

func bybitCard() *Card {
	return &Card{
		Fonts: defaultFonts,
		Sizes: Sizes{
			Symbol:   54,
			PnL:      42,
			Leverage: 22,
			Qty:      37,
			Entry:    37,
			Mark:     37,
			Liq:      37,
			Badge:    42,
		},
		BadgeStyle: BadgeOutline,

		Symbol:   Field{X: 0.05, Y: 0.16, Anchor: LeftMiddle},
		Leverage: Field{X: 0.05, Y: 0.24, Anchor: LeftMiddle},
		// The badge X is only a fallback; on Bybit the pill tracks the
		// measured symbol width at render time and is content-fit.
		SideBadge: Field{X: 0.32, Y: 0.16, DY: -2, Anchor: LeftMiddle, Radius: 20},
		PnL:       Field{X: 0.95, Y: 0.24, Anchor: RightMiddle},
		Qty:       Field{X: 0.052, Y: 0.56, Anchor: LeftMiddle},
		Entry:     Field{X: 0.29, Y: 0.56, Anchor: LeftMiddle},
		Mark:      Field{X: 0.47, Y: 0.56, Anchor: LeftMiddle},
		Liq:       Field{X: 0.95, Y: 0.56, Anchor: RightMiddle},

		Clears: []ClearRegion{
			{X: 0.05, Y: 0.116, W: 0.19, H: 0.11},
			{X: 0.05, Y: 0.23, W: 0.18, H: 0.10},
			{X: 0.22, Y: 0.09, W: 0.18, H: 0.25, BGX: 0.10, BGY: 0.05, HasBG: true},
			{X: 0.29, Y: 0.527, W: 0.12, H: 0.10},
			{X: 0.44, Y: 0.527, W: 0.18, H: 0.10},
			{X: 0.55, Y: 0.22, W: 0.42, H: 0.18},
			{X: 0.05, Y: 0.522, W: 0.18, H: 0.10},
			{X: 0.775, Y: 0.527, W: 0.26, H: 0.10},
		},
	}
}

func bingxCard() *Card {
	return &Card{
		Fonts: defaultFonts,
		Sizes: Sizes{
			Symbol:   54,
			PnL:      54,
			Leverage: 54,
			Qty:      52,
			Entry:    52,
			Mark:     52,
			Liq:      52,
			Badge:    26,
		},
		BadgeStyle: BadgeFilled,

		Symbol:    Field{X: 0.055, Y: 0.12, Anchor: LeftMiddle},
		Leverage:  Field{X: 0.30, Y: 0.20, Anchor: LeftMiddle},
		SideBadge: Field{X: 0.10, Y: 0.19, DY: 8, Anchor: LeftMiddle, W: 150, H: 70, Radius: 14},
		PnL:       Field{X: 0.98, Y: 0.20, Anchor: RightMiddle},
		Qty:       Field{X: 0.05, Y: 0.396, Anchor: LeftMiddle},
		Entry:     Field{X: 0.05, Y: 0.57, Anchor: LeftMiddle},
		Mark:      Field{X: 0.40, Y: 0.57, Anchor: LeftMiddle},
		Liq:       Field{X: 0.96, Y: 0.57, Anchor: RightMiddle},

		Margin:      &Field{X: 0.40, Y: 0.396, Anchor: LeftMiddle},
		Risk:        &Field{X: 0.96, Y: 0.40, Anchor: RightMiddle},
		MarginMode:  &Field{X: 0.22, Y: 0.20, PadX: 16, PadY: 12, Radius: 14},
		LeverageBox: &Field{X: 0.33, Y: 0.20, PadX: 16, PadY: 16, Radius: 14},
		SymbolIcon:  &Field{X: 0.03, Y: 0.03, Size: 170, Gap: 1},

		Clears: []ClearRegion{
			{X: 0.05, Y: 0.09, W: 0.32, H: 0.05},
			{X: 0.27, Y: 0.13, W: 0.13, H: 0.14},
			{X: 0.02, Y: 0.15, W: 0.50, H: 0.10, BGX: 0.12, BGY: 0.05, HasBG: true},
			{X: 0.05, Y: 0.54, W: 0.15, H: 0.10},
			{X: 0.39, Y: 0.54, W: 0.20, H: 0.10},
			{X: 0.55, Y: 0.15, W: 0.43, H: 0.098},
			{X: 0.05, Y: 0.37, W: 0.20, H: 0.10},
			{X: 0.78, Y: 0.55, W: 0.22, H: 0.10},
			{X: 0.40, Y: 0.34, W: 0.20, H: 0.10},
			{X: 0.85, Y: 0.34, W: 0.20, H: 0.10, BGX: 0.79, BGY: 0.28, HasBG: true},
		},
	}
}

func bybitCustomCard() *CustomCard {
	return &CustomCard{
		Fonts: defaultFonts,
		Sizes: CustomSizes{
			Username:     36,
			Symbol:       58,
			PnL:          120,
			Entry:        48,
			Exit:         48,
			LeverageText: 40,
			Small:        28,
		},

		Symbol: Field{X: 0.06, Y: 0.24, Anchor: LeftMiddle},
		PnL:    Field{X: 0.06, Y: 0.39, Anchor: LeftMiddle},
		Entry:  Field{X: 0.063, Y: 0.54, Anchor: LeftMiddle},
		Exit:   Field{X: 0.063, Y: 0.65, Anchor: LeftMiddle},

		Username:      &Field{X: 0.12, Y: 0.16, Anchor: LeftMiddle},
		SymbolIcon:    &Field{X: 0.045, Y: 0.14, Size: 60, Gap: 6},
		CrossLeverage: &Field{X: 0.35, Y: 0.24, PadX: 16, PadY: 10, Radius: 65},
	}
}

func bingxCustomCard() *CustomCard {
	return &CustomCard{
		Fonts: defaultFonts,
		Sizes: CustomSizes{
			Username:     50,
			Symbol:       66,
			PnL:          200,
			Entry:        54,
			Exit:         54,
			LeverageText: 66,
			Small:        66,
		},

		Symbol: Field{X: 0.055, Y: 0.335, Anchor: LeftTop},
		PnL:    Field{X: 0.05, Y: 0.42, Anchor: LeftTop},
		Entry:  Field{X: 0.36, Y: 0.592, Anchor: LeftTop},
		Exit:   Field{X: 0.26, Y: 0.653, Anchor: LeftTop},

		Username:    &Field{X: 0.15, Y: 0.87, Anchor: LeftTop},
		Referral:    &Field{X: 0.72, Y: 0.90, Anchor: LeftTop},
		Datetime:    &Field{X: 0.15, Y: 0.90, Anchor: LeftTop},
		SidePos:     &Field{X: 0.33, Y: 0.355, Anchor: LeftMiddle},
		LeveragePos: &Field{X: 0.48, Y: 0.355, Anchor: LeftMiddle},
		Lines:       &Field{X: 0.065, Y: 0.335, Size: 80, Gap: 10, Spacing: 221},
	}
}
