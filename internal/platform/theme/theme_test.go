package theme

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

func TestParseModeAndDirection(t *testing.T) {
	t.Parallel()

	if ParseMode("DARK") != ModeDark || ParseMode("light") != ModeLight || ParseMode("sepia") != ModeLight {
		t.Fatal("unexpected mode parsing")
	}
	if ParseDirection(" rtl ") != RTL || ParseDirection("") != LTR || ParseDirection("up") != LTR {
		t.Fatal("unexpected direction parsing")
	}
	if ModeLight.Toggle() != ModeDark || ModeDark.Toggle() != ModeLight {
		t.Fatal("unexpected toggle")
	}
}

func TestComposeIsDeterministic(t *testing.T) {
	t.Parallel()

	a := Compose(ModeDark, RTL)
	b := Compose(ModeDark, RTL)
	if !reflect.DeepEqual(a, b) {
		t.Fatal("expected equal configs for equal inputs")
	}
	if a.Mode != ModeDark || a.Direction != RTL {
		t.Fatalf("mode/direction = %s/%s", a.Mode, a.Direction)
	}
}

func TestComposeNormalizesUnknownInputs(t *testing.T) {
	t.Parallel()

	cfg := Compose(Mode("neon"), Direction("sideways"))
	if cfg.Mode != ModeLight || cfg.Direction != LTR {
		t.Fatalf("mode/direction = %s/%s, want light/ltr", cfg.Mode, cfg.Direction)
	}
}

func TestPaletteDiffersByMode(t *testing.T) {
	t.Parallel()

	light := Palette(ModeLight)
	dark := Palette(ModeDark)
	if light.Background.Default != "#FFFFFF" {
		t.Fatalf("light background = %q", light.Background.Default)
	}
	if dark.Background.Default != light.Grey[900] {
		t.Fatalf("dark background = %q, want grey 900", dark.Background.Default)
	}
	if light.Primary != dark.Primary {
		t.Fatal("semantic colors should not change with mode")
	}
	if light.Divider != "rgba(145, 158, 171, 0.2)" {
		t.Fatalf("divider = %q", light.Divider)
	}
}

func TestShadowsTable(t *testing.T) {
	t.Parallel()

	shadows := Shadows(ModeLight)
	if len(shadows) != ShadowLevels {
		t.Fatalf("len(shadows) = %d, want %d", len(shadows), ShadowLevels)
	}
	if shadows[0] != "none" {
		t.Fatalf("shadows[0] = %q", shadows[0])
	}
	want := "0px 2px 1px -1px rgba(145, 158, 171, 0.2),0px 1px 1px 0px rgba(145, 158, 171, 0.14),0px 1px 3px 0px rgba(145, 158, 171, 0.12)"
	if shadows[1] != want {
		t.Fatalf("shadows[1] = %q, want %q", shadows[1], want)
	}
	if !strings.Contains(Shadows(ModeDark)[1], "rgba(0, 0, 0, 0.2)") {
		t.Fatal("expected dark shadows to use black channel")
	}
}

func TestCustomShadowsUsePaletteColors(t *testing.T) {
	t.Parallel()

	custom := CustomShadows(ModeLight, Palette(ModeLight))
	if got := custom.Colors["primary"]; got != "0 8px 16px 0 rgba(0, 167, 111, 0.24)" {
		t.Fatalf("primary shadow = %q", got)
	}
	if got := custom.Levels["z8"]; got != "0 4px 8px 0 rgba(145, 158, 171, 0.16)" {
		t.Fatalf("z8 = %q", got)
	}
	if got := custom.Levels["z1"]; got != "0 1px 1px 0 rgba(145, 158, 171, 0.16)" {
		t.Fatalf("z1 = %q", got)
	}
	if len(custom.Levels) != 7 {
		t.Fatalf("len(levels) = %d, want 7", len(custom.Levels))
	}
}

func TestHexChannel(t *testing.T) {
	t.Parallel()

	if got := hexChannel("#FF5630"); got != "255, 86, 48" {
		t.Fatalf("hexChannel = %q", got)
	}
	if got := hexChannel("nope"); got != greyChannel {
		t.Fatalf("hexChannel(bad) = %q", got)
	}
}

func TestTypographyVariants(t *testing.T) {
	t.Parallel()

	typo := Typography()
	for _, name := range VariantNames() {
		if _, ok := typo.Variants[name]; !ok {
			t.Fatalf("missing variant %q", name)
		}
	}
	if got := typo.Variants["body2"].FontSize; got != "0.875rem" {
		t.Fatalf("body2 size = %q", got)
	}
	if got := typo.Variants["h1"].Responsive["lg"]; got != "4rem" {
		t.Fatalf("h1 lg size = %q", got)
	}
}

func TestSpacing(t *testing.T) {
	t.Parallel()

	if Spacing(2) != "16px" || Spacing(0.5) != "4px" {
		t.Fatalf("Spacing = %q, %q", Spacing(2), Spacing(0.5))
	}
}

func TestCSSRendersVariables(t *testing.T) {
	t.Parallel()

	css := Compose(ModeDark, RTL).CSS()
	for _, marker := range []string{
		"--color-primary-main: #00A76F;",
		"--color-background-default: #141A21;",
		"--shadow-0: none;",
		"--shadow-z24:",
		"--shadow-card:",
		"--radius: 8px;",
		"html { direction: rtl; color-scheme: dark; }",
		"@media (min-width: 1200px)",
	} {
		if !strings.Contains(css, marker) {
			t.Fatalf("css missing %q", marker)
		}
	}
	if css != Compose(ModeDark, RTL).CSS() {
		t.Fatal("expected stable CSS output")
	}
}

func TestConfigMarshalsToJSON(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(Compose(ModeLight, LTR))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{"palette", "typography", "shadows", "customShadows", "spacing", "shape", "breakpoints"} {
		if _, ok := decoded[key]; !ok {
			t.Fatalf("json missing key %q", key)
		}
	}
}
