package types

// ErrorKind distinguishes failure classes so callers can branch without
// matching on message text.
type ErrorKind string

const (
	KindValidation  ErrorKind = "validation_error"
	KindUnavailable ErrorKind = "service_unavailable"
	KindInternal    ErrorKind = "internal_error"
)

// FieldError describes one invalid input field.
type FieldError struct {
	// Path of the offending field.
	// example: age
	Field string `json:"field" example:"age"`
	// example: must be between 18 and 65
	Message string `json:"message" example:"must be between 18 and 65"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: invalid input
	Error string `json:"error" example:"invalid input"`
	// HTTP status code.
	// example: 422
	Code int `json:"code" example:"422"`
	// Machine-readable error class.
	// example: validation_error
	Kind ErrorKind `json:"kind,omitempty" example:"validation_error"`
	// Every invalid field, present for validation errors only.
	Fields []FieldError `json:"fields,omitempty"`
}

// StatusResponse is returned by GET /status.
type StatusResponse struct {
	// Gateway lifecycle state (uninitialized, ready, unavailable).
	// example: ready
	State string `json:"state" example:"ready"`
	// Configured artifact location.
	// example: models/insurance.json
	ModelPath string `json:"model_path" example:"models/insurance.json"`
	// Row schema the loaded artifact was trained against.
	// example: v1
	Schema string `json:"schema,omitempty" example:"v1"`
	// Regressor family of the loaded artifact.
	// example: linear
	Regressor string `json:"regressor,omitempty" example:"linear"`
	// Load failure message, if the artifact could not be loaded.
	Error string `json:"error,omitempty"`
	// Load time in unix seconds (zero if never loaded).
	// example: 1700000000
	LoadedAtUnix int64 `json:"loaded_at_unix,omitempty" example:"1700000000"`
	// Successful predictions since start.
	// example: 42
	PredictionsTotal uint64 `json:"predictions_total" example:"42"`
	// Inference failures since start.
	// example: 0
	FailuresTotal uint64 `json:"failures_total" example:"0"`
	// Uptime of the server in seconds.
	// example: 3600
	UptimeSeconds int64 `json:"uptime_seconds" example:"3600"`
}
