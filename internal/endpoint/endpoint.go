// Package endpoint implements the prediction request/response contract
// independently of any transport: validate, dispatch to the gateway, and map
// failures onto validation_error, service_unavailable and internal_error.
package endpoint

import (
	"insurecost/internal/gateway"
	"insurecost/pkg/types"
)

// Predictor is the gateway capability required by Handle.
type Predictor interface {
	Ready() bool
	PredictAndClassify(types.PolicyholderRecord) (types.PredictionResult, error)
}

// Handle validates raw, then asks p for a classified prediction. Every
// returned error is an *Error. Validation always runs first, so invalid input
// never reaches p.
func Handle(p Predictor, raw []byte) (types.PredictionResult, error) {
	rec, err := DecodeRecord(raw)
	if err != nil {
		return types.PredictionResult{}, err
	}
	return Dispatch(p, rec)
}

// Dispatch forwards an already validated record to p.
func Dispatch(p Predictor, rec types.PolicyholderRecord) (types.PredictionResult, error) {
	if !p.Ready() {
		return types.PredictionResult{}, unavailableError(nil)
	}
	res, err := p.PredictAndClassify(rec)
	switch {
	case err == nil:
		return res, nil
	case gateway.IsModelUnavailable(err):
		return types.PredictionResult{}, unavailableError(err)
	default:
		return types.PredictionResult{}, internalError(err)
	}
}
