package main

import (
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"insurecost/pkg/types"
)

// tierColors is the display color per risk tier.
var tierColors = map[types.RiskTier]string{
	types.TierStandard: "green",
	types.TierElevated: "orange",
	types.TierHigh:     "red",
}

func tierColor(t types.RiskTier) string {
	if c, ok := tierColors[t]; ok {
		return c
	}
	return "gray"
}

// renderResult writes the operator view of a prediction, with the charge
// grouped and fixed to two decimals for the given locale.
func renderResult(w io.Writer, res types.PredictionResult, tag language.Tag) {
	p := message.NewPrinter(tag)
	p.Fprintf(w, "Estimated Annual Medical Charge: $%.2f\n", res.PredictedCharge)
	p.Fprintf(w, "Risk Assessment: %s (%s)\n", res.RiskCategory, tierColor(res.RiskCategory))
}
