// Package utils provides shared utility functions.
package utils

import (
	"fmt"
	"strings"
	"time"
)

// FormatCurrency formats a dollar amount with grouped thousands and two
// decimal places, e.g. "$1,234.50" and "-$30.00".
func FormatCurrency(amount float64) string {
	return formatUSD(amount, 2)
}

// FormatCurrencyWhole formats a dollar amount with grouped thousands and no
// fraction digits, the stat-card and calendar-cell style, e.g. "$1,235".
func FormatCurrencyWhole(amount float64) string {
	return formatUSD(amount, 0)
}

func formatUSD(amount float64, decimals int) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	str := fmt.Sprintf("%.*f", decimals, amount)
	intPart := str
	decPart := ""
	if i := strings.IndexByte(str, '.'); i >= 0 {
		intPart, decPart = str[:i], str[i+1:]
	}

	result := "$" + groupThousands(intPart)
	if decPart != "" {
		result += "." + decPart
	}
	if negative {
		result = "-" + result
	}
	return result
}

// groupThousands inserts a comma every three digits from the right.
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	var b strings.Builder
	rem := n % 3
	if rem > 0 {
		b.WriteString(s[:rem])
	}
	for i := rem; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// FormatPercent formats a percentage with no fraction digits, e.g. "50%".
func FormatPercent(value float64) string {
	return fmt.Sprintf("%.0f%%", value)
}

// FormatDate formats a date for display, e.g. "Jan 3, 2026".
func FormatDate(t time.Time) string {
	return t.Format("Jan 2, 2006")
}

// FormatShortDate formats a date compactly, e.g. "1/3/26".
func FormatShortDate(t time.Time) string {
	return t.Format("1/2/06")
}

// FormatDayMonth formats the day-of-month and short month, the recent-trades
// row style, e.g. "3 Jan".
func FormatDayMonth(t time.Time) string {
	return t.Format("2 Jan")
}

// TruncateString truncates a string to maxLen, appending "..." when cut.
func TruncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

// PadRight pads a string with spaces to the given length.
func PadRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

// PadLeft pads a string with spaces to the given length.
func PadLeft(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return strings.Repeat(" ", length-len(s)) + s
}
