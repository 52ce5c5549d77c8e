package gateway

import (
	"strconv"

	"insurecost/pkg/types"
)

// Tier thresholds in currency units. Lower bounds are inclusive.
const (
	ElevatedThreshold = 12000.0
	HighThreshold     = 30000.0
)

// RoundCharge rounds v to 2 decimal places. The exact binary value of v is
// rounded to the nearest cent with ties to even: 10234.555 (stored as
// 10234.55500000000029...) yields 10234.56, 2.675 (stored as 2.67499...)
// yields 2.67 and an exact tie like 0.125 yields 0.12.
func RoundCharge(v float64) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 2, 64), 64)
	if err != nil {
		return v
	}
	return r
}

// Classify maps a rounded charge to its risk tier.
func Classify(charge float64) types.RiskTier {
	switch {
	case charge < ElevatedThreshold:
		return types.TierStandard
	case charge < HighThreshold:
		return types.TierElevated
	default:
		return types.TierHigh
	}
}
