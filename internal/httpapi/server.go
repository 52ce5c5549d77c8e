package httpapi

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"insurecost/internal/endpoint"
	"insurecost/pkg/types"
)

// Service defines the methods required by the HTTP API layer.
type Service interface {
	endpoint.Predictor
	Status() types.StatusResponse
}

func NewMux(svc Service) http.Handler {
	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(MetricsMiddleware)
	if corsEnabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsAllowedOrigins,
			AllowedMethods: corsAllowedMethods,
			AllowedHeaders: corsAllowedHeaders,
			MaxAge:         600,
		}))
	}
	r.Use(middleware.Compress(5))
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})

	predict := predictHandler(svc)
	r.Post("/predict_insurance_charge", predict)
	r.Post("/predict", predict)

	r.Get("/status", statusHandler(svc))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/readyz", readyzHandler(svc))

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	MountSwagger(r)
	return r
}

// predictHandler godoc
//
//	@Summary		Predict annual medical charge
//	@Description	Validates a policyholder record, estimates the annual charge and assigns a risk tier.
//	@Tags			prediction
//	@Accept			json
//	@Produce		json
//	@Param			record	body		types.PolicyholderRecord	true	"Policyholder record"
//	@Success		200		{object}	types.PredictionResult
//	@Failure		400		{object}	types.ErrorResponse	"unreadable or oversized body"
//	@Failure		415		{object}	types.ErrorResponse	"not JSON"
//	@Failure		422		{object}	types.ErrorResponse	"invalid fields or malformed JSON"
//	@Failure		500		{object}	types.ErrorResponse	"inference failed"
//	@Failure		503		{object}	types.ErrorResponse	"model not loaded"
//	@Router			/predict_insurance_charge [post]
func predictHandler(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Content-Type check
		if mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type")); err != nil || mt != "application/json" {
			writeJSONError(w, http.StatusUnsupportedMediaType, types.KindValidation, "Content-Type must be application/json")
			return
		}
		// Limit body size (configurable, default 1MiB)
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		body, err := io.ReadAll(r.Body)
		if err != nil {
			// Still 400 on oversize bodies to avoid size leak details
			writeJSONError(w, http.StatusBadRequest, types.KindValidation, "invalid JSON body")
			return
		}

		start := time.Now()
		if ev := requestEvent(r, LevelInfo); ev != nil {
			ev.Msg("predict start")
		}
		res, err := endpoint.Handle(svc, body)
		if err != nil {
			var ee *endpoint.Error
			if !errors.As(err, &ee) {
				ee = &endpoint.Error{Kind: types.KindInternal, Message: "internal error", Cause: err}
			}
			predictionErrorsTotal.WithLabelValues(string(ee.Kind)).Inc()
			resp := ee.Response()
			writeErrorResponse(w, resp)
			if ee.Kind == types.KindInternal {
				// full cause stays server-side
				logFailure(r, resp.Code, start, ee.Cause)
				return
			}
			logEnd(r, LevelInfo, resp.Code, start, err)
			return
		}
		predictionsTotal.WithLabelValues(string(res.RiskCategory)).Inc()
		writeJSON(w, http.StatusOK, res)
		if ev := requestEvent(r, LevelDebug); ev != nil {
			ev.Float64("predicted_charge", res.PredictedCharge).Str("risk_category", string(res.RiskCategory)).Msg("predict result")
		}
		logEnd(r, LevelInfo, http.StatusOK, start, nil)
	}
}

// statusHandler godoc
//
//	@Summary	Gateway status
//	@Tags		ops
//	@Produce	json
//	@Success	200	{object}	types.StatusResponse
//	@Router		/status [get]
func statusHandler(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, svc.Status())
	}
}

// readyzHandler godoc
//
//	@Summary	Readiness probe
//	@Tags		ops
//	@Produce	plain
//	@Success	200	{string}	string	"ready"
//	@Failure	503	{string}	string	"unavailable"
//	@Router		/readyz [get]
func readyzHandler(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc.Ready() {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ready"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("unavailable"))
	}
}
