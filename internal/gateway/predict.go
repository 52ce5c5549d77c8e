package gateway

import (
	"fmt"
	"math"

	"insurecost/internal/model"
	"insurecost/pkg/types"
)

// PredictAndClassify estimates the annual charge for rec and assigns its risk
// tier. It fails with a ModelUnavailable error when the gateway is not ready
// and with *InferenceFailure when the artifact cannot produce a finite value.
func (g *Gateway) PredictAndClassify(rec types.PolicyholderRecord) (types.PredictionResult, error) {
	if g.state != StateReady {
		return types.PredictionResult{}, modelUnavailableError{state: g.state}
	}
	row := model.RowFromRecord(rec)
	raw, err := g.infer(row)
	if err == nil && (math.IsNaN(raw) || math.IsInf(raw, 0)) {
		err = fmt.Errorf("artifact returned non-finite value %v", raw)
	}
	if err != nil {
		g.failures.Add(1)
		return types.PredictionResult{}, &InferenceFailure{Cause: err}
	}
	charge := RoundCharge(raw)
	if charge <= 0 {
		if charge < 0 {
			g.log.Debug().Float64("raw", raw).Msg("negative prediction clamped to zero")
		}
		charge = 0
	}
	g.predictions.Add(1)
	return types.PredictionResult{PredictedCharge: charge, RiskCategory: Classify(charge)}, nil
}

func (g *Gateway) infer(row model.Row) (v float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			v, err = 0, fmt.Errorf("panic during inference: %v", r)
		}
	}()
	if g.serialize {
		g.mu.Lock()
		defer g.mu.Unlock()
	}
	return g.predictor.Predict(row)
}
