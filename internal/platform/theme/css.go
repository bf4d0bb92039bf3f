package theme

import (
	"sort"
	"strconv"
	"strings"
)

// CSS renders the theme as custom properties on :root plus base element
// rules. Output order is stable.
func (c Config) CSS() string {
	var b strings.Builder
	b.WriteString(":root {\n")
	prop := func(name, value string) {
		if value == "" {
			return
		}
		b.WriteString("  --")
		b.WriteString(name)
		b.WriteString(": ")
		b.WriteString(value)
		b.WriteString(";\n")
	}

	for _, named := range c.Palette.Colors() {
		prefix := "color-" + named.Name + "-"
		prop(prefix+"lighter", named.Set.Lighter)
		prop(prefix+"light", named.Set.Light)
		prop(prefix+"main", named.Set.Main)
		prop(prefix+"dark", named.Set.Dark)
		prop(prefix+"darker", named.Set.Darker)
		prop(prefix+"contrast", named.Set.ContrastText)
	}
	for _, step := range GreySteps() {
		prop("color-grey-"+strconv.Itoa(step), c.Palette.Grey[step])
	}
	prop("color-divider", c.Palette.Divider)
	prop("color-text-primary", c.Palette.Text.Primary)
	prop("color-text-secondary", c.Palette.Text.Secondary)
	prop("color-text-disabled", c.Palette.Text.Disabled)
	prop("color-background-paper", c.Palette.Background.Paper)
	prop("color-background-default", c.Palette.Background.Default)
	prop("color-background-neutral", c.Palette.Background.Neutral)
	prop("color-action-active", c.Palette.Action.Active)
	prop("color-action-hover", c.Palette.Action.Hover)
	prop("color-action-selected", c.Palette.Action.Selected)
	prop("color-action-disabled", c.Palette.Action.Disabled)
	prop("color-action-focus", c.Palette.Action.Focus)

	prop("font-family", c.Typography.FontFamily)
	prop("font-family-secondary", c.Typography.FontSecondaryFamily)
	for _, name := range variantOrder {
		style, ok := c.Typography.Variants[name]
		if !ok {
			continue
		}
		prefix := "type-" + name + "-"
		prop(prefix+"size", style.FontSize)
		prop(prefix+"weight", strconv.Itoa(style.FontWeight))
		prop(prefix+"line-height", style.LineHeight)
	}

	for i, shadow := range c.Shadows {
		prop("shadow-"+strconv.Itoa(i), shadow)
	}
	for _, key := range sortedKeys(c.CustomShadows.Levels) {
		prop("shadow-"+key, c.CustomShadows.Levels[key])
	}
	for _, key := range sortedKeys(c.CustomShadows.Colors) {
		prop("shadow-"+key, c.CustomShadows.Colors[key])
	}
	prop("shadow-card", c.CustomShadows.Card)
	prop("shadow-dialog", c.CustomShadows.Dialog)
	prop("shadow-dropdown", c.CustomShadows.Dropdown)

	prop("spacing", strconv.Itoa(c.SpacingUnit)+"px")
	prop("radius", strconv.Itoa(c.Shape.BorderRadius)+"px")
	b.WriteString("}\n")

	b.WriteString("html { direction: ")
	b.WriteString(string(c.Direction))
	b.WriteString("; color-scheme: ")
	b.WriteString(string(c.Mode))
	b.WriteString("; }\n")
	b.WriteString("body { font-family: var(--font-family); color: var(--color-text-primary); background: var(--color-background-default); }\n")

	for _, bp := range c.Breakpoints {
		if bp.MinWidth == 0 {
			continue
		}
		var rules []string
		for _, name := range variantOrder {
			style, ok := c.Typography.Variants[name]
			if !ok {
				continue
			}
			if size, ok := style.Responsive[bp.Name]; ok {
				rules = append(rules, "--type-"+name+"-size: "+size+";")
			}
		}
		if len(rules) == 0 {
			continue
		}
		b.WriteString("@media (min-width: ")
		b.WriteString(strconv.Itoa(bp.MinWidth))
		b.WriteString("px) { :root { ")
		b.WriteString(strings.Join(rules, " "))
		b.WriteString(" } }\n")
	}
	return b.String()
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
