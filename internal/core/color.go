package core

// Color represents a foreground color for a screen cell.
// Values map onto the 16 standard ANSI colours plus a few extras.
type Color uint8

// Predefined colors.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// palette holds approximate RGB values used when matching image pixels.
var palette = []struct {
	c       Color
	r, g, b int
}{
	{ColorRed, 170, 0, 0},
	{ColorGreen, 0, 170, 0},
	{ColorYellow, 170, 85, 0},
	{ColorBlue, 0, 0, 170},
	{ColorMagenta, 170, 0, 170},
	{ColorCyan, 0, 170, 170},
	{ColorWhite, 170, 170, 170},
	{ColorBrightRed, 255, 85, 85},
	{ColorBrightGreen, 85, 255, 85},
	{ColorBrightYellow, 255, 255, 85},
	{ColorBrightBlue, 85, 85, 255},
	{ColorBrightMagenta, 255, 85, 255},
	{ColorBrightCyan, 85, 255, 255},
	{ColorBrightWhite, 255, 255, 255},
	{ColorOrange, 255, 135, 0},
	{ColorGray, 138, 138, 138},
}

// NearestColor returns the palette entry closest to an 8-bit RGB triple.
func NearestColor(r, g, b uint8) Color {
	best := ColorDefault
	bestDist := -1
	for _, p := range palette {
		dr := int(r) - p.r
		dg := int(g) - p.g
		db := int(b) - p.b
		d := dr*dr + dg*dg + db*db
		if bestDist < 0 || d < bestDist {
			best = p.c
			bestDist = d
		}
	}
	return best
}
