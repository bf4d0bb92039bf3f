// Package theme composes the dashboard design tokens: palette, type scale,
// shadows, spacing and shape. Every function here is pure; Compose always
// returns an equal value for equal inputs.
package theme

import "strings"

// Mode selects the light or dark palette.
type Mode string

const (
	ModeLight Mode = "light"
	ModeDark  Mode = "dark"
)

// ParseMode maps user input to a Mode, defaulting to light.
func ParseMode(raw string) Mode {
	if strings.EqualFold(strings.TrimSpace(raw), string(ModeDark)) {
		return ModeDark
	}
	return ModeLight
}

// Toggle returns the opposite mode.
func (m Mode) Toggle() Mode {
	if m == ModeDark {
		return ModeLight
	}
	return ModeDark
}

// Direction is the text direction.
type Direction string

const (
	LTR Direction = "ltr"
	RTL Direction = "rtl"
)

// ParseDirection maps user input to a Direction, defaulting to ltr.
func ParseDirection(raw string) Direction {
	if strings.EqualFold(strings.TrimSpace(raw), string(RTL)) {
		return RTL
	}
	return LTR
}

// ShapeConfig holds corner radii.
type ShapeConfig struct {
	BorderRadius int `json:"borderRadius"`
}

// Breakpoint is a named minimum viewport width.
type Breakpoint struct {
	Name     string `json:"name"`
	MinWidth int    `json:"minWidth"`
}

// SpacingUnit is the base spacing step in pixels.
const SpacingUnit = 8

// Spacing returns n spacing steps as a CSS length.
func Spacing(n float64) string {
	return formatFloat(n*SpacingUnit) + "px"
}

// Shape returns the corner radius table.
func Shape() ShapeConfig {
	return ShapeConfig{BorderRadius: 8}
}

// Breakpoints returns viewport breakpoints in ascending order.
func Breakpoints() []Breakpoint {
	return []Breakpoint{
		{Name: "xs", MinWidth: 0},
		{Name: "sm", MinWidth: 600},
		{Name: "md", MinWidth: 900},
		{Name: "lg", MinWidth: 1200},
		{Name: "xl", MinWidth: 1536},
	}
}

// Config is the composed theme.
type Config struct {
	Mode          Mode                `json:"mode"`
	Direction     Direction           `json:"direction"`
	Palette       PaletteConfig       `json:"palette"`
	Typography    TypographyConfig    `json:"typography"`
	Shadows       []string            `json:"shadows"`
	CustomShadows CustomShadowsConfig `json:"customShadows"`
	SpacingUnit   int                 `json:"spacing"`
	Shape         ShapeConfig         `json:"shape"`
	Breakpoints   []Breakpoint        `json:"breakpoints"`
}

// Compose assembles the theme for mode and direction.
func Compose(mode Mode, direction Direction) Config {
	if mode != ModeDark {
		mode = ModeLight
	}
	if direction != RTL {
		direction = LTR
	}
	palette := Palette(mode)
	return Config{
		Mode:          mode,
		Direction:     direction,
		Palette:       palette,
		Typography:    Typography(),
		Shadows:       Shadows(mode),
		CustomShadows: CustomShadows(mode, palette),
		SpacingUnit:   SpacingUnit,
		Shape:         Shape(),
		Breakpoints:   Breakpoints(),
	}
}
