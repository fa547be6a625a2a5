// Package pricing serves the monthly and yearly price lists shown by the
// pricing table.
package pricing

import (
	"fmt"
	"strings"
)

type Period string

const (
	Monthly Period = "monthly"
	Yearly  Period = "yearly"
)

// ParsePeriod reads a period name. An empty value selects Monthly.
func ParsePeriod(s string) (Period, error) {
	switch Period(strings.ToLower(strings.TrimSpace(s))) {
	case "", Monthly:
		return Monthly, nil
	case Yearly:
		return Yearly, nil
	}
	return "", fmt.Errorf("unknown period %q", s)
}

// Toggle returns the other period.
func Toggle(current Period) Period {
	if current == Yearly {
		return Monthly
	}
	return Yearly
}

// Indicator is the left offset of the toggle's sliding indicator.
func Indicator(p Period) string {
	if p == Yearly {
		return "163px"
	}
	return "2px"
}

type Plan struct {
	Name     string   `json:"name"`
	Price    float64  `json:"price"`
	Currency string   `json:"currency"`
	Features []string `json:"features"`
}

// Table is the price list for one period.
type Table struct {
	Period    Period `json:"period"`
	Indicator string `json:"indicator"`
	Plans     []Plan `json:"plans"`
}

var (
	basicFeatures    = []string{"Route search", "Accident markers along the route"}
	standardFeatures = []string{"Route search", "Accident markers along the route", "Place photos", "Accident reports"}
	premiumFeatures  = []string{"Route search", "Accident markers along the route", "Place photos", "Accident reports", "Dataset export"}
)

var priceLists = map[Period][]Plan{
	Monthly: {
		{Name: "Basic", Price: 0, Currency: "GBP", Features: basicFeatures},
		{Name: "Standard", Price: 4.99, Currency: "GBP", Features: standardFeatures},
		{Name: "Premium", Price: 9.99, Currency: "GBP", Features: premiumFeatures},
	},
	Yearly: {
		{Name: "Basic", Price: 0, Currency: "GBP", Features: basicFeatures},
		{Name: "Standard", Price: 49.99, Currency: "GBP", Features: standardFeatures},
		{Name: "Premium", Price: 99.99, Currency: "GBP", Features: premiumFeatures},
	},
}

// For returns the price list of the period.
func For(p Period) Table {
	plans := priceLists[p]
	out := make([]Plan, len(plans))
	copy(out, plans)
	return Table{Period: p, Indicator: Indicator(p), Plans: out}
}
