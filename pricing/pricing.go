package pricing

import (
	"math"
	"strings"
)

// ComputeTotal is the single place a payable total is derived from. Every
// surface that shows or submits a total must go through it so the displayed
// and submitted amounts never diverge.
func ComputeTotal(originalTotal, discountAmount float64) float64 {
	return math.Max(0, math.Round((originalTotal-discountAmount)*100)/100)
}

// Registry maps a normalized promo code to per-ticket-type discount amounts.
type Registry struct {
	codes map[string]map[string]float64
}

func NewRegistry() Registry {
	return Registry{
		codes: map[string]map[string]float64{
			"F2A": {
				"standard": 50,
				"friends":  150,
			},
		},
	}
}

// Apply normalizes rawInput and resolves the discount for the given ticket
// type. An unknown code yields ("", 0) rather than an error: the checkout
// silently clears any prior discount. A known code with no entry for the
// ticket type also yields 0.
func (r Registry) Apply(rawInput, ticketTypeID string) (code string, discountAmount float64) {
	normalized := strings.ToUpper(strings.TrimSpace(rawInput))
	if normalized == "" {
		return "", 0
	}

	discounts, ok := r.codes[normalized]
	if !ok {
		return "", 0
	}

	return normalized, discounts[ticketTypeID]
}
