package theme

// TextStyle is one typography variant. Responsive holds font sizes keyed by
// breakpoint name for variants that scale with the viewport.
type TextStyle struct {
	FontFamily    string            `json:"fontFamily,omitempty"`
	FontWeight    int               `json:"fontWeight"`
	FontSize      string            `json:"fontSize"`
	LineHeight    string            `json:"lineHeight"`
	LetterSpacing string            `json:"letterSpacing,omitempty"`
	TextTransform string            `json:"textTransform,omitempty"`
	Responsive    map[string]string `json:"responsive,omitempty"`
}

// TypographyConfig is the type scale.
type TypographyConfig struct {
	FontFamily          string               `json:"fontFamily"`
	FontSecondaryFamily string               `json:"fontSecondaryFamily"`
	FontWeightRegular   int                  `json:"fontWeightRegular"`
	FontWeightMedium    int                  `json:"fontWeightMedium"`
	FontWeightSemiBold  int                  `json:"fontWeightSemiBold"`
	FontWeightBold      int                  `json:"fontWeightBold"`
	Variants            map[string]TextStyle `json:"variants"`
}

// variantOrder lists typography variants in rendering order.
var variantOrder = []string{
	"h1", "h2", "h3", "h4", "h5", "h6",
	"subtitle1", "subtitle2", "body1", "body2",
	"caption", "overline", "button",
}

// VariantNames returns typography variant names in rendering order.
func VariantNames() []string {
	out := make([]string, len(variantOrder))
	copy(out, variantOrder)
	return out
}

// rem converts a pixel size on a 16px root to rem.
func rem(px float64) string {
	return formatFloat(px/16) + "rem"
}

func responsive(sm, md, lg float64) map[string]string {
	return map[string]string{"sm": rem(sm), "md": rem(md), "lg": rem(lg)}
}

// Typography returns the type scale. It does not depend on mode or direction.
func Typography() TypographyConfig {
	const (
		primaryFont   = `"Public Sans", sans-serif`
		secondaryFont = `"Barlow", sans-serif`
	)
	return TypographyConfig{
		FontFamily:          primaryFont,
		FontSecondaryFamily: secondaryFont,
		FontWeightRegular:   400,
		FontWeightMedium:    500,
		FontWeightSemiBold:  600,
		FontWeightBold:      700,
		Variants: map[string]TextStyle{
			"h1": {FontFamily: secondaryFont, FontWeight: 800, FontSize: rem(40), LineHeight: formatFloat(80.0 / 64), Responsive: responsive(52, 58, 64)},
			"h2": {FontFamily: secondaryFont, FontWeight: 800, FontSize: rem(32), LineHeight: formatFloat(64.0 / 48), Responsive: responsive(40, 44, 48)},
			"h3": {FontFamily: secondaryFont, FontWeight: 700, FontSize: rem(24), LineHeight: "1.5", Responsive: responsive(26, 30, 32)},
			"h4": {FontWeight: 700, FontSize: rem(20), LineHeight: "1.5", Responsive: responsive(20, 24, 24)},
			"h5": {FontWeight: 700, FontSize: rem(18), LineHeight: "1.5", Responsive: responsive(19, 20, 20)},
			"h6": {FontWeight: 600, FontSize: rem(17), LineHeight: formatFloat(28.0 / 18), Responsive: responsive(18, 18, 18)},
			"subtitle1": {FontWeight: 600, FontSize: rem(16), LineHeight: "1.5"},
			"subtitle2": {FontWeight: 600, FontSize: rem(14), LineHeight: formatFloat(22.0 / 14)},
			"body1":     {FontWeight: 400, FontSize: rem(16), LineHeight: "1.5"},
			"body2":     {FontWeight: 400, FontSize: rem(14), LineHeight: formatFloat(22.0 / 14)},
			"caption":   {FontWeight: 400, FontSize: rem(12), LineHeight: "1.5"},
			"overline":  {FontWeight: 700, FontSize: rem(12), LineHeight: "1.5", TextTransform: "uppercase"},
			"button":    {FontWeight: 700, FontSize: rem(14), LineHeight: formatFloat(24.0 / 14), TextTransform: "unset"},
		},
	}
}
