// Package brl parses and formats Brazilian-locale decimal amounts.
package brl

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.BrazilianPortuguese)

// Parse converts localized decimal text ("500.000,00") to a float. Dots are
// grouping separators and the comma is the decimal mark, so "1.5" parses as
// fifteen, matching what the simulator always did.
func Parse(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New("empty value")
	}
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid value %q", s)
	}
	return v, nil
}

// Format renders v with pt-BR grouping and exactly two decimals: 12345.6
// becomes "12.345,60". Callers prefix the currency symbol.
func Format(v float64) string {
	return printer.Sprintf("%v", number.Decimal(v,
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2),
	))
}
