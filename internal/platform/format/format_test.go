package format

import (
	"testing"
	"time"

	"golang.org/x/text/language"
)

func TestInteger(t *testing.T) {
	t.Parallel()

	if got := Integer(language.AmericanEnglish, 1234567); got != "1,234,567" {
		t.Fatalf("Integer(en) = %q", got)
	}
	if got := Integer(language.BrazilianPortuguese, 1234); got != "1.234" {
		t.Fatalf("Integer(pt-BR) = %q", got)
	}
}

func TestCurrency(t *testing.T) {
	t.Parallel()

	tests := []struct {
		cents int64
		want  string
	}{
		{123456, "$1,234.56"},
		{0, "$0.00"},
		{5, "$0.05"},
		{-250, "-$2.50"},
	}
	for _, tc := range tests {
		if got := Currency(language.AmericanEnglish, tc.cents); got != tc.want {
			t.Fatalf("Currency(%d) = %q, want %q", tc.cents, got, tc.want)
		}
	}
}

func TestCompactCurrency(t *testing.T) {
	t.Parallel()

	if got := CompactCurrency(1250000); got != "$12.5k" {
		t.Fatalf("CompactCurrency = %q", got)
	}
	if got := CompactCurrency(4200); got != "$42" {
		t.Fatalf("CompactCurrency small = %q", got)
	}
}

func TestPercent(t *testing.T) {
	t.Parallel()

	if got := Percent(language.AmericanEnglish, 1, 4); got != "25.0%" {
		t.Fatalf("Percent = %q", got)
	}
	if got := Percent(language.AmericanEnglish, 3, 0); got != "0%" {
		t.Fatalf("Percent zero total = %q", got)
	}
}

func TestShortDate(t *testing.T) {
	t.Parallel()

	day := time.Date(2024, time.March, 5, 10, 0, 0, 0, time.UTC)
	if got := ShortDate(language.AmericanEnglish, day); got != "Mar 5, 2024" {
		t.Fatalf("ShortDate(en) = %q", got)
	}
	if got := ShortDate(language.BrazilianPortuguese, day); got != "05/03/2024" {
		t.Fatalf("ShortDate(pt-BR) = %q", got)
	}
	if got := ShortDate(language.AmericanEnglish, time.Time{}); got != "" {
		t.Fatalf("ShortDate(zero) = %q", got)
	}
}

func TestRelative(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)
	if got := Relative(now.Add(-72*time.Hour), now); got != "3 days ago" {
		t.Fatalf("Relative = %q", got)
	}
	if got := Relative(time.Time{}, now); got != "" {
		t.Fatalf("Relative(zero) = %q", got)
	}
}

func TestMonthLabel(t *testing.T) {
	t.Parallel()

	month := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	if got := MonthLabel(language.AmericanEnglish, month); got != "Jun 2024" {
		t.Fatalf("MonthLabel(en) = %q", got)
	}
	if got := MonthLabel(language.BrazilianPortuguese, month); got != "06/2024" {
		t.Fatalf("MonthLabel(pt) = %q", got)
	}
}
