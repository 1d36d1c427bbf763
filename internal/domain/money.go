package domain

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// FormatCurrency renders amount as "$1,234.50".
func FormatCurrency(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}

	cents := int64(math.Round(amount * 100))
	whole := cents / 100
	frac := cents % 100

	digits := fmt.Sprintf("%d", whole)
	var grouped strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			grouped.WriteByte(',')
		}
		grouped.WriteRune(r)
	}

	return fmt.Sprintf("%s$%s.%02d", sign, grouped.String(), frac)
}

// CompactCurrency renders amount as "$12.4k" for dense views.
func CompactCurrency(amount float64) string {
	v := int64(math.Round(amount))
	if v < 1_000 {
		return fmt.Sprintf("$%d", v)
	}

	if v < 1_000_000 {
		return fmt.Sprintf("$%.1fk", float64(v)/1_000)
	}

	return fmt.Sprintf("$%.1fM", float64(v)/1_000_000)
}

// RelativeLabel renders the age of at relative to now, e.g. "Just now", "3m ago".
func RelativeLabel(at, now time.Time) string {
	if at.IsZero() || now.IsZero() {
		return "Just now"
	}

	age := now.Sub(at)
	switch {
	case age < time.Minute:
		return "Just now"
	case age < time.Hour:
		return fmt.Sprintf("%dm ago", int(age/time.Minute))
	case age < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(age/time.Hour))
	default:
		return fmt.Sprintf("%dd ago", int(age/(24*time.Hour)))
	}
}
