package parser

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	nonPriceChars = regexp.MustCompile(`[^\d,]`)
	nonDigits     = regexp.MustCompile(`\D`)
)

// NormalizePrice parses a pt-BR price text such as "R$ 1.234,56". Thousands
// separators and symbols are dropped and the comma becomes the decimal point.
// The boolean is false when no number could be read.
func NormalizePrice(text string) (float64, bool) {
	cleaned := nonPriceChars.ReplaceAllString(text, "")
	if cleaned == "" {
		return 0, false
	}
	cleaned = strings.Replace(cleaned, ",", ".", 1)

	price, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return price, true
}

// parseDigits reads an integer from text ignoring every non-digit character,
// e.g. "45.000 quilômetros rodados" yields 45000.
func parseDigits(text string) (int, bool) {
	digits := nonDigits.ReplaceAllString(text, "")
	if digits == "" {
		return 0, false
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return n, true
}
