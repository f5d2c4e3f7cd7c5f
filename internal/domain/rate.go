package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// RateTable describes the staircase price per distance unit.
//
// Payloads up to BaseWeight pay BaseRate. Every further BracketWeight, full or
// partial, adds BracketStep. Empty repositioning legs pay RepositionRate.
type RateTable struct {
	BaseRate       float64
	BaseWeight     float64
	BracketWeight  float64
	BracketStep    float64
	RepositionRate float64
}

func DefaultRates() RateTable {
	return RateTable{
		BaseRate:       10,
		BaseWeight:     5,
		BracketWeight:  5,
		BracketStep:    8,
		RepositionRate: 10,
	}
}

func (r RateTable) Validate() error {
	if r.BaseRate <= 0 || r.RepositionRate < 0 || r.BracketStep < 0 {
		return fmt.Errorf("rate table: rates must be positive (base=%v step=%v reposition=%v)", r.BaseRate, r.BracketStep, r.RepositionRate)
	}
	if r.BaseWeight < 0 || r.BracketWeight <= 0 {
		return fmt.Errorf("rate table: invalid weight bands (base=%v bracket=%v)", r.BaseWeight, r.BracketWeight)
	}
	return nil
}

// RateFor returns the per-distance rate for a payload weight.
// The caller skips empty payloads; a zero weight still prices at BaseRate.
func (r RateTable) RateFor(weight decimal.Decimal) decimal.Decimal {
	base := decimal.NewFromFloat(r.BaseRate)
	limit := decimal.NewFromFloat(r.BaseWeight)
	if weight.LessThanOrEqual(limit) {
		return base
	}

	brackets := weight.Sub(limit).Div(decimal.NewFromFloat(r.BracketWeight)).Ceil()
	return base.Add(brackets.Mul(decimal.NewFromFloat(r.BracketStep)))
}
