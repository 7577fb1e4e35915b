// Package format renders calculator figures the way the Swedish reference
// screen does: space-grouped whole kronor and comma decimals.
package format

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const minusSign = "−"

var printer = message.NewPrinter(language.Swedish)

// Currency formats v as whole Swedish kronor, e.g. "22 917 kr".
func Currency(v float64) string {
	return Number(math.Round(v)) + " kr"
}

// Number formats v with Swedish digit grouping and at most two decimals.
func Number(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "–"
	}

	sign := ""
	if v < 0 {
		sign = minusSign
		v = -v
	}

	whole := math.Floor(v)
	cents := int64(math.Round((v - whole) * 100))
	if cents == 100 {
		whole++
		cents = 0
	}

	out := printer.Sprintf("%d", int64(whole))
	if cents != 0 {
		frac := strings.TrimRight(fmt.Sprintf("%02d", cents), "0")
		out += "," + frac
	}
	if out == "0" {
		sign = ""
	}
	return sign + out
}

// Percent formats a ratio already expressed in percent with one decimal,
// e.g. "61,1 %".
func Percent(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "–"
	}
	tenths := math.Round(v * 10)
	sign := ""
	if tenths < 0 {
		sign = minusSign
		tenths = -tenths
	}
	whole := int64(tenths) / 10
	frac := int64(tenths) % 10
	if whole == 0 && frac == 0 {
		sign = ""
	}
	return sign + printer.Sprintf("%d", whole) + "," + string(rune('0'+frac)) + " %"
}
