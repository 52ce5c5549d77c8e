package gateway

import "errors"

// modelUnavailableError signals that no artifact is loaded so the caller can
// report an operational problem instead of an input problem.
type modelUnavailableError struct{ state State }

func (e modelUnavailableError) Error() string {
	return "model unavailable (state: " + string(e.state) + ")"
}

// IsModelUnavailable reports whether err indicates the gateway has no artifact.
func IsModelUnavailable(err error) bool {
	var e modelUnavailableError
	return errors.As(err, &e)
}

// InferenceFailure wraps any error raised while evaluating the artifact.
type InferenceFailure struct {
	Cause error
}

func (e *InferenceFailure) Error() string { return "inference failed: " + e.Cause.Error() }

func (e *InferenceFailure) Unwrap() error { return e.Cause }

// IsInferenceFailure reports whether err came from the inference step.
func IsInferenceFailure(err error) bool {
	var e *InferenceFailure
	return errors.As(err, &e)
}
