package server

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"StockPulse/internal/market"
)

const (
	maxSymbolLength    = 10
	maxTextLength      = 5000
	maxBatchTextLength = 2000
)

var symbolPattern = regexp.MustCompile(`^[A-Za-z0-9.\-^=]{1,10}$`)

var intervalMessage = "Interval must be one of: " + strings.Join(market.Intervals, ", ")

func validSymbol(symbol string) bool {
	return symbolPattern.MatchString(symbol)
}

// textLength counts characters rather than bytes.
func textLength(s string) int {
	return utf8.RuneCountInString(s)
}
