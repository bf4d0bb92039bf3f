// Package format renders numbers, money, dates and durations for display.
package format

import (
	"math"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Integer renders n with locale digit grouping.
func Integer(tag language.Tag, n int64) string {
	return message.NewPrinter(tag).Sprintf("%d", n)
}

// Currency renders an amount of US cents with locale grouping and two
// decimals, e.g. $1,234.56.
func Currency(tag language.Tag, cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	amount := float64(cents) / 100
	return sign + "$" + message.NewPrinter(tag).Sprintf("%.2f", amount)
}

// CompactCurrency renders whole dollars with an SI suffix for widget headlines,
// e.g. $12k.
func CompactCurrency(cents int64) string {
	value, suffix := humanize.ComputeSI(math.Round(float64(cents) / 100))
	return "$" + humanize.Ftoa(math.Round(value*10)/10) + strings.ToLower(suffix)
}

// Percent renders part/total as a percentage with one decimal. A zero total
// renders 0%.
func Percent(tag language.Tag, part, total int64) string {
	if total == 0 {
		return "0%"
	}
	ratio := float64(part) * 100 / float64(total)
	return message.NewPrinter(tag).Sprintf("%.1f", ratio) + "%"
}

var shortDateLayouts = map[string]string{
	"en": "Jan 2, 2006",
	"pt": "02/01/2006",
}

// ShortDate renders t as a locale date. The zero time renders as an empty
// string.
func ShortDate(tag language.Tag, t time.Time) string {
	if t.IsZero() {
		return ""
	}
	base, _ := tag.Base()
	layout, ok := shortDateLayouts[base.String()]
	if !ok {
		layout = shortDateLayouts["en"]
	}
	return t.Format(layout)
}

var monthLayouts = map[string]string{
	"en": "Jan 2006",
	"pt": "01/2006",
}

// MonthLabel renders the month containing t, e.g. "Jun 2024".
func MonthLabel(tag language.Tag, t time.Time) string {
	base, _ := tag.Base()
	layout, ok := monthLayouts[base.String()]
	if !ok {
		layout = monthLayouts["en"]
	}
	return t.Format(layout)
}

// Relative renders t relative to now ("3 days ago"). The zero time renders
// as an empty string.
func Relative(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}
	return humanize.RelTime(t, now, "ago", "from now")
}

// Bytes renders a byte count in IEC units.
func Bytes(n uint64) string {
	return humanize.IBytes(n)
}
