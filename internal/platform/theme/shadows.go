package theme

import (
	"fmt"
	"strconv"
	"strings"
)

// ShadowLevels is the number of elevation steps, including level 0.
const ShadowLevels = 25

const (
	umbraOpacity    = 0.2
	penumbraOpacity = 0.14
	ambientOpacity  = 0.12
)

// elevation holds x, y, blur, spread for umbra, penumbra and ambient layers.
var elevation = [ShadowLevels - 1][12]int{
	{0, 2, 1, -1, 0, 1, 1, 0, 0, 1, 3, 0},
	{0, 3, 1, -2, 0, 2, 2, 0, 0, 1, 5, 0},
	{0, 3, 3, -2, 0, 3, 4, 0, 0, 1, 8, 0},
	{0, 2, 4, -1, 0, 4, 5, 0, 0, 1, 10, 0},
	{0, 3, 5, -1, 0, 5, 8, 0, 0, 1, 14, 0},
	{0, 3, 5, -1, 0, 6, 10, 0, 0, 1, 18, 0},
	{0, 4, 5, -2, 0, 7, 10, 1, 0, 2, 16, 1},
	{0, 5, 5, -3, 0, 8, 10, 1, 0, 3, 14, 2},
	{0, 5, 6, -3, 0, 9, 12, 1, 0, 3, 16, 2},
	{0, 6, 6, -3, 0, 10, 14, 1, 0, 4, 18, 3},
	{0, 6, 7, -4, 0, 11, 15, 1, 0, 4, 20, 3},
	{0, 7, 8, -4, 0, 12, 17, 2, 0, 5, 22, 4},
	{0, 7, 8, -4, 0, 13, 19, 2, 0, 5, 24, 4},
	{0, 7, 9, -4, 0, 14, 21, 2, 0, 5, 26, 4},
	{0, 8, 9, -5, 0, 15, 22, 2, 0, 6, 28, 5},
	{0, 8, 10, -5, 0, 16, 24, 2, 0, 6, 30, 5},
	{0, 8, 11, -5, 0, 17, 26, 2, 0, 6, 32, 5},
	{0, 9, 11, -5, 0, 18, 28, 2, 0, 7, 34, 6},
	{0, 9, 12, -6, 0, 19, 29, 2, 0, 7, 36, 6},
	{0, 10, 13, -6, 0, 20, 31, 3, 0, 8, 38, 7},
	{0, 10, 13, -6, 0, 21, 33, 3, 0, 8, 40, 7},
	{0, 10, 14, -6, 0, 22, 35, 3, 0, 8, 42, 7},
	{0, 11, 14, -7, 0, 23, 36, 3, 0, 9, 44, 8},
	{0, 11, 15, -7, 0, 24, 38, 3, 0, 9, 46, 8},
}

// shadowChannel returns the RGB triple shadows are tinted with.
func shadowChannel(mode Mode) string {
	if mode == ModeDark {
		return "0, 0, 0"
	}
	return greyChannel
}

// Shadows returns the elevation table. Index 0 is "none".
func Shadows(mode Mode) []string {
	channel := shadowChannel(mode)
	out := make([]string, ShadowLevels)
	out[0] = "none"
	for i, px := range elevation {
		out[i+1] = strings.Join([]string{
			layer(px[0], px[1], px[2], px[3], alpha(channel, umbraOpacity)),
			layer(px[4], px[5], px[6], px[7], alpha(channel, penumbraOpacity)),
			layer(px[8], px[9], px[10], px[11], alpha(channel, ambientOpacity)),
		}, ",")
	}
	return out
}

// CustomShadowsConfig holds the named shadows used by cards, dialogs and
// colored buttons.
type CustomShadowsConfig struct {
	Levels   map[string]string `json:"levels"`
	Colors   map[string]string `json:"colors"`
	Card     string            `json:"card"`
	Dialog   string            `json:"dialog"`
	Dropdown string            `json:"dropdown"`
}

// customLevels are the z-levels exposed as named shadows.
var customLevels = []int{1, 4, 8, 12, 16, 20, 24}

// CustomShadows builds the named shadow table from mode and palette.
func CustomShadows(mode Mode, palette PaletteConfig) CustomShadowsConfig {
	channel := shadowChannel(mode)
	levels := make(map[string]string, len(customLevels))
	for _, z := range customLevels {
		levels["z"+strconv.Itoa(z)] = fmt.Sprintf("0 %dpx %dpx 0 %s", z/2+z%2, z, alpha(channel, 0.16))
	}

	colors := make(map[string]string, 6)
	for _, named := range palette.Colors() {
		colors[named.Name] = fmt.Sprintf("0 8px 16px 0 %s", alpha(hexChannel(named.Set.Main), 0.24))
	}

	return CustomShadowsConfig{
		Levels:   levels,
		Colors:   colors,
		Card:     fmt.Sprintf("0 0 2px 0 %s, 0 12px 24px -4px %s", alpha(channel, 0.2), alpha(channel, 0.12)),
		Dialog:   fmt.Sprintf("-40px 40px 80px -8px %s", alpha("0, 0, 0", 0.24)),
		Dropdown: fmt.Sprintf("0 0 2px 0 %s, -20px 20px 40px -4px %s", alpha(channel, 0.24), alpha(channel, 0.24)),
	}
}

func layer(x, y, blur, spread int, color string) string {
	return fmt.Sprintf("%dpx %dpx %dpx %dpx %s", x, y, blur, spread, color)
}

// alpha renders an rgba() color from an "r, g, b" channel string.
func alpha(channel string, opacity float64) string {
	return "rgba(" + channel + ", " + formatFloat(opacity) + ")"
}

// hexChannel converts #RRGGBB to an "r, g, b" channel string. Malformed
// input yields the grey channel.
func hexChannel(hex string) string {
	hex = strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(hex) != 6 {
		return greyChannel
	}
	value, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return greyChannel
	}
	return fmt.Sprintf("%d, %d, %d", (value>>16)&0xff, (value>>8)&0xff, value&0xff)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
