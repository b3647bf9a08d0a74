package service

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"saajhamandi/internal/domain"
)

const CurrencySymbol = "₹"

var (
	magnitudePattern = regexp.MustCompile(`\d+\.?\d*`)
	priceDigits      = regexp.MustCompile(`[^0-9.]`)
)

var (
	gramUnits  = map[string]bool{"g": true, "gm": true, "gms": true, "gram": true, "grams": true}
	mlUnits    = map[string]bool{"ml": true, "milliliter": true, "milliliters": true}
	dozenUnits = map[string]bool{"dozen": true, "dozens": true}
)

type Pricer struct{}

func NewPricer() *Pricer {
	return &Pricer{}
}

// Price computes the line amount for quantity of entry, rounded to 2 decimals.
//
// Grams against a kg price and millilitres against a litre price are divided
// by 1000, pieces against a dozen price by 12. Any other quantity is taken to
// already be in base units, except that a dozen-priced product asked for in
// neither pieces nor dozens ("6 eggs") is charged the flat unit price.
func (p *Pricer) Price(entry domain.CatalogEntry, quantity string) float64 {
	loc := magnitudePattern.FindStringIndex(quantity)
	if loc == nil {
		return Round2(entry.UnitPrice)
	}

	magnitude, err := strconv.ParseFloat(strings.TrimSuffix(quantity[loc[0]:loc[1]], "."), 64)
	if err != nil {
		return Round2(entry.UnitPrice)
	}

	lower := strings.ToLower(quantity)
	unit := unitToken(lower[loc[1]:])

	switch {
	case gramUnits[unit] && entry.BaseUnit == domain.UnitKg:
		return Round2(entry.UnitPrice * magnitude / 1000)
	case mlUnits[unit] && entry.BaseUnit == domain.UnitLiter:
		return Round2(entry.UnitPrice * magnitude / 1000)
	case strings.Contains(lower, "piece") && entry.BaseUnit == domain.UnitDozen:
		return Round2(entry.UnitPrice * magnitude / 12)
	case entry.BaseUnit == domain.UnitDozen && !dozenUnits[unit]:
		return Round2(entry.UnitPrice)
	default:
		return Round2(entry.UnitPrice * magnitude)
	}
}

// FormatPrice renders an amount as a rupee string with 2 decimals.
func (p *Pricer) FormatPrice(amount float64) string {
	return fmt.Sprintf("%s%.2f", CurrencySymbol, Round2(amount))
}

// ParsePrice reads back a rendered price. Anything unparseable counts as 0.
func (p *Pricer) ParsePrice(price string) float64 {
	v, err := strconv.ParseFloat(priceDigits.ReplaceAllString(price, ""), 64)
	if err != nil {
		return 0
	}
	return v
}

// Total sums the rendered prices of items.
func (p *Pricer) Total(items []domain.LineItem) float64 {
	total := 0.0
	for _, item := range items {
		total += p.ParsePrice(item.Price)
	}
	return Round2(total)
}

func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// unitToken returns the first word of s, e.g. "g" for "g butter" or "kg".
func unitToken(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return strings.TrimRight(fields[0], ".,")
}
