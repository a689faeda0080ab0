// Package colors picks readable text colors for cell backgrounds.
package colors

import (
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/julianstephens/hourlog/internal/constants"
)

// luminanceThreshold splits dark backgrounds from light ones on the 0-255 scale.
const luminanceThreshold = 128

// Luminance returns 0.2126R + 0.7152G + 0.0722B for a hex color, channels in 0-255.
// The leading '#' is optional.
func Luminance(hex string) (float64, bool) {
	c, ok := Parse(hex)
	if !ok {
		return 0, false
	}
	r, g, b := c.RGB255()
	return 0.2126*float64(r) + 0.7152*float64(g) + 0.0722*float64(b), true
}

// FontColorFor returns white text for dark backgrounds and black text otherwise.
// Input that does not parse as a hex color gets black, matching the default white cell.
func FontColorFor(hex string) string {
	l, ok := Luminance(hex)
	if ok && l < luminanceThreshold {
		return constants.LightFontColor
	}
	return constants.DarkFontColor
}

// Parse reads "#rrggbb", "rrggbb" or the three digit short forms.
func Parse(hex string) (colorful.Color, bool) {
	hex = strings.TrimSpace(hex)
	if hex == "" {
		return colorful.Color{}, false
	}
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return colorful.Color{}, false
	}
	return c, true
}

// Normalize returns hex as lowercase "#rrggbb", or false if it does not parse.
func Normalize(hex string) (string, bool) {
	c, ok := Parse(hex)
	if !ok {
		return "", false
	}
	return c.Hex(), true
}
