// Package color derives presentation color variants from a base hex color.
// Card gradients on the storefront are built from a product card's base
// color and a darkened second stop.
package color

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// DarkenStop is the fixed percentage used for the second gradient stop.
const DarkenStop = 15

// Lighten returns the color brightened by pct percent. Each 8-bit channel
// is increased by round(2.55 * pct) and clamped to 255.
//
// The color must be a "#rrggbb" string and pct must be in [0,100]; anything
// else is a caller bug and returns an error.
func Lighten(color string, pct int) (string, error) {
	return shift(color, pct, +1)
}

// Darken returns the color dimmed by pct percent. Each 8-bit channel is
// decreased by round(2.55 * pct) and clamped to 0.
func Darken(color string, pct int) (string, error) {
	return shift(color, pct, -1)
}

// Gradient returns the two-stop card gradient for a base color:
// the base itself and the base darkened by DarkenStop percent.
func Gradient(base string) ([2]string, error) {
	end, err := Darken(base, DarkenStop)
	if err != nil {
		return [2]string{}, err
	}
	return [2]string{strings.ToLower(base), end}, nil
}

func shift(color string, pct, sign int) (string, error) {
	r, g, b, err := parse(color)
	if err != nil {
		return "", err
	}
	if pct < 0 || pct > 100 {
		return "", fmt.Errorf("percentage %d out of range [0,100]", pct)
	}

	delta := sign * int(math.Round(2.55*float64(pct)))
	return fmt.Sprintf("#%02x%02x%02x", clamp(r+delta), clamp(g+delta), clamp(b+delta)), nil
}

// parse splits a "#rrggbb" string into its three channels.
func parse(color string) (r, g, b int, err error) {
	if len(color) != 7 || color[0] != '#' {
		return 0, 0, 0, fmt.Errorf("malformed hex color %q: want \"#rrggbb\"", color)
	}
	v, err := strconv.ParseUint(color[1:], 16, 32)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("malformed hex color %q: %w", color, err)
	}
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff), nil
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
