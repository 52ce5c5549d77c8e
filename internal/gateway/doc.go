// Package gateway owns the process-wide prediction artifact and turns a
// validated policyholder record into a classified prediction. It is
// structured into small files by concern:
//
//   - gateway.go: Gateway type, Config, New (the single load attempt), State.
//   - predict.go: PredictAndClassify and the guarded inference call.
//   - classify.go: cent rounding and risk-tier thresholds.
//   - errors.go: ModelUnavailable and InferenceFailure with Is* helpers.
//   - events.go, eventpub_memory.go: lifecycle events for observers and tests.
//   - status.go: Status reporting for /status.
//
// Lifecycle: a Gateway starts Uninitialized and New moves it to Ready or
// Unavailable exactly once. Neither state changes afterwards; an Unavailable
// gateway is never reloaded, the process must be restarted with a fixed
// artifact.
package gateway
