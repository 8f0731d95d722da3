// Copyright 2026 The Buybot Authors
// SPDX-License-Identifier: Apache-2.0

package listing

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// TitleWidth is the number of characters of a product title shown.
const TitleWidth = 40

// None stands in for an absent title or carrier.
const None = "None"

// FormatPrice renders minor currency units as dollars with two
// decimals: 2599 is "$25.99", -150 is "$-1.50".
func FormatPrice(cents int64) string {
	sign := ""
	magnitude := uint64(cents)
	if cents < 0 {
		sign = "-"
		magnitude = uint64(-(cents + 1)) + 1
	}
	return fmt.Sprintf("$%s%d.%02d", sign, magnitude/100, magnitude%100)
}

// formatOptionalPrice is FormatPrice, or "" for an absent price.
func formatOptionalPrice(cents *int64) string {
	if cents == nil {
		return ""
	}
	return FormatPrice(*cents)
}

// truncate keeps the first width characters of s.
func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width])
}

// clean strips terminal escape sequences from a server-supplied string.
func clean(s string) string {
	return ansi.Strip(s)
}

func carrier(name *string) string {
	if name == nil {
		return None
	}
	return strings.ReplaceAll(clean(*name), " ", "_")
}

func optional(value *string) string {
	if value == nil {
		return ""
	}
	return clean(*value)
}
