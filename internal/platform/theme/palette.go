package theme

// ColorSet is one named color with its tonal variants.
type ColorSet struct {
	Lighter      string `json:"lighter"`
	Light        string `json:"light"`
	Main         string `json:"main"`
	Dark         string `json:"dark"`
	Darker       string `json:"darker"`
	ContrastText string `json:"contrastText"`
}

// TextColors holds foreground colors for text.
type TextColors struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
	Disabled  string `json:"disabled"`
}

// BackgroundColors holds surface colors.
type BackgroundColors struct {
	Paper   string `json:"paper"`
	Default string `json:"default"`
	Neutral string `json:"neutral"`
}

// ActionColors holds interaction state colors.
type ActionColors struct {
	Active             string  `json:"active"`
	Hover              string  `json:"hover"`
	Selected           string  `json:"selected"`
	Disabled           string  `json:"disabled"`
	DisabledBackground string  `json:"disabledBackground"`
	Focus              string  `json:"focus"`
	HoverOpacity       float64 `json:"hoverOpacity"`
	DisabledOpacity    float64 `json:"disabledOpacity"`
}

// PaletteConfig is the full color table for one mode.
type PaletteConfig struct {
	Mode       Mode              `json:"mode"`
	Common     map[string]string `json:"common"`
	Primary    ColorSet          `json:"primary"`
	Secondary  ColorSet          `json:"secondary"`
	Info       ColorSet          `json:"info"`
	Success    ColorSet          `json:"success"`
	Warning    ColorSet          `json:"warning"`
	Error      ColorSet          `json:"error"`
	Grey       map[int]string    `json:"grey"`
	Divider    string            `json:"divider"`
	Text       TextColors        `json:"text"`
	Background BackgroundColors  `json:"background"`
	Action     ActionColors      `json:"action"`
}

var (
	primary = ColorSet{
		Lighter: "#C8FAD6", Light: "#5BE49B", Main: "#00A76F", Dark: "#007867", Darker: "#004B50", ContrastText: "#FFFFFF",
	}
	secondary = ColorSet{
		Lighter: "#EFD6FF", Light: "#C684FF", Main: "#8E33FF", Dark: "#5119B7", Darker: "#27097A", ContrastText: "#FFFFFF",
	}
	info = ColorSet{
		Lighter: "#CAFDF5", Light: "#61F3F3", Main: "#00B8D9", Dark: "#006C9C", Darker: "#003768", ContrastText: "#FFFFFF",
	}
	success = ColorSet{
		Lighter: "#D3FCD2", Light: "#77ED8B", Main: "#22C55E", Dark: "#118D57", Darker: "#065E49", ContrastText: "#FFFFFF",
	}
	warning = ColorSet{
		Lighter: "#FFF5CC", Light: "#FFD666", Main: "#FFAB00", Dark: "#B76E00", Darker: "#7A4100", ContrastText: "#1C252E",
	}
	errorColor = ColorSet{
		Lighter: "#FFE9D5", Light: "#FFAC82", Main: "#FF5630", Dark: "#B71D18", Darker: "#7A0916", ContrastText: "#FFFFFF",
	}
)

var greyScale = [...]struct {
	step int
	hex  string
}{
	{50, "#FCFDFD"},
	{100, "#F9FAFB"},
	{200, "#F4F6F8"},
	{300, "#DFE3E8"},
	{400, "#C4CDD5"},
	{500, "#919EAB"},
	{600, "#637381"},
	{700, "#454F5B"},
	{800, "#1C252E"},
	{900, "#141A21"},
}

// GreySteps lists the grey scale keys in ascending order.
func GreySteps() []int {
	steps := make([]int, len(greyScale))
	for i, entry := range greyScale {
		steps[i] = entry.step
	}
	return steps
}

func grey() map[int]string {
	out := make(map[int]string, len(greyScale))
	for _, entry := range greyScale {
		out[entry.step] = entry.hex
	}
	return out
}

// greyChannel is the RGB triple of grey 500, used for translucent overlays.
const greyChannel = "145, 158, 171"

// Palette returns the color table for mode.
func Palette(mode Mode) PaletteConfig {
	g := grey()
	base := PaletteConfig{
		Mode:      mode,
		Common:    map[string]string{"black": "#000000", "white": "#FFFFFF"},
		Primary:   primary,
		Secondary: secondary,
		Info:      info,
		Success:   success,
		Warning:   warning,
		Error:     errorColor,
		Grey:      g,
		Divider:   alpha(greyChannel, 0.2),
		Action: ActionColors{
			Hover:              alpha(greyChannel, 0.08),
			Selected:           alpha(greyChannel, 0.16),
			Disabled:           alpha(greyChannel, 0.8),
			DisabledBackground: alpha(greyChannel, 0.24),
			Focus:              alpha(greyChannel, 0.24),
			HoverOpacity:       0.08,
			DisabledOpacity:    0.48,
		},
	}

	if mode == ModeDark {
		base.Text = TextColors{Primary: "#FFFFFF", Secondary: g[500], Disabled: g[600]}
		base.Background = BackgroundColors{Paper: g[800], Default: g[900], Neutral: "#28323D"}
		base.Action.Active = g[500]
		return base
	}

	base.Text = TextColors{Primary: g[800], Secondary: g[600], Disabled: g[500]}
	base.Background = BackgroundColors{Paper: "#FFFFFF", Default: "#FFFFFF", Neutral: g[200]}
	base.Action.Active = g[600]
	return base
}

// Colors returns the named semantic color sets in display order.
func (p PaletteConfig) Colors() []NamedColor {
	return []NamedColor{
		{Name: "primary", Set: p.Primary},
		{Name: "secondary", Set: p.Secondary},
		{Name: "info", Set: p.Info},
		{Name: "success", Set: p.Success},
		{Name: "warning", Set: p.Warning},
		{Name: "error", Set: p.Error},
	}
}

// NamedColor pairs a semantic name with its color set.
type NamedColor struct {
	Name string
	Set  ColorSet
}
