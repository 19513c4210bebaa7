package room

// Color is a room colour from the hub's palette.
type Color string

// Room colours
const (
	ColorBeige1        Color = "ikea_beige_1"
	ColorBeige3        Color = "ikea_beige_no_3"
	ColorBeige4        Color = "ikea_beige_no_4"
	ColorBlue52        Color = "ikea_blue_no_52"
	ColorBlue58        Color = "ikea_blue_no_58"
	ColorBlue60        Color = "ikea_blue_no_60"
	ColorBlue63        Color = "ikea_blue_no_63"
	ColorBrown41       Color = "ikea_brown_no_41"
	ColorGreen63       Color = "ikea_green_no_63"
	ColorGreen65       Color = "ikea_green_no_65"
	ColorGreen66       Color = "ikea_green_no_66"
	ColorLilac3        Color = "ikea_lilac_no_3"
	ColorOrange11      Color = "ikea_orange_no_11"
	ColorPink4         Color = "ikea_pink_no_4"
	ColorPink6         Color = "ikea_pink_no_6"
	ColorPink8         Color = "ikea_pink_no_8"
	ColorRed39         Color = "ikea_red_no_39"
	ColorTurquoise5    Color = "ikea_turquoise_5"
	ColorWhite20       Color = "ikea_white_no_20"
	ColorYellow24      Color = "ikea_yellow_no_24"
	ColorYellow27      Color = "ikea_yellow_no_27"
	ColorYellow28      Color = "ikea_yellow_no_28"
	ColorYellow30      Color = "ikea_yellow_no_30"
	ColorYellow31      Color = "ikea_yellow_no_31"
	ColorNCS1020R10B   Color = "ncs_s_1020_r10b"
	ColorNCS4010G10Y   Color = "ncs_s_4010_g10y"
	ColorPantone150522 Color = "pantone_15_0522_tcx"
	ColorPantone160230 Color = "pantone_16_0230_tcx"
	ColorPantone160940 Color = "pantone_16_0940_tcx"
)

var palette = map[Color]struct{}{
	ColorBeige1: {}, ColorBeige3: {}, ColorBeige4: {}, ColorBlue52: {},
	ColorBlue58: {}, ColorBlue60: {}, ColorBlue63: {}, ColorBrown41: {},
	ColorGreen63: {}, ColorGreen65: {}, ColorGreen66: {}, ColorLilac3: {},
	ColorOrange11: {}, ColorPink4: {}, ColorPink6: {}, ColorPink8: {},
	ColorRed39: {}, ColorTurquoise5: {}, ColorWhite20: {}, ColorYellow24: {},
	ColorYellow27: {}, ColorYellow28: {}, ColorYellow30: {}, ColorYellow31: {},
	ColorNCS1020R10B: {}, ColorNCS4010G10Y: {}, ColorPantone150522: {},
	ColorPantone160230: {}, ColorPantone160940: {},
}

// Known reports whether c is in the palette.
func (c Color) Known() bool {
	_, ok := palette[c]
	return ok
}
