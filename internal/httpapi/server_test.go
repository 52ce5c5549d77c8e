package httpapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"insurecost/internal/gateway"
	"insurecost/pkg/types"
)

type mockService struct {
	ready  bool
	res    types.PredictionResult
	err    error
	status types.StatusResponse
	calls  int
}

func (m *mockService) Ready() bool                  { return m.ready }
func (m *mockService) Status() types.StatusResponse { return m.status }
func (m *mockService) PredictAndClassify(types.PolicyholderRecord) (types.PredictionResult, error) {
	m.calls++
	return m.res, m.err
}

const validBody = `{"age":30,"sex":"male","bmi":25.0,"children":1,"smoker":"no"}`

func postPredict(h http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) types.ErrorResponse {
	t.Helper()
	var body types.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("json: %v body=%s", err, w.Body.String())
	}
	return body
}

func TestPredictSuccess(t *testing.T) {
	svc := &mockService{ready: true, res: types.PredictionResult{PredictedCharge: 14345, RiskCategory: types.TierElevated}}
	r := NewMux(svc)
	for _, path := range []string{"/predict_insurance_charge", "/predict"} {
		w := postPredict(r, path, validBody)
		if w.Code != http.StatusOK {
			t.Fatalf("%s status=%d body=%s", path, w.Code, w.Body.String())
		}
		if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "application/json") {
			t.Fatalf("content-type=%s", ct)
		}
		var body map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("json: %v", err)
		}
		if len(body) != 2 || body["predicted_charge"] != 14345.0 || body["risk_category"] != "Elevated Risk (Tier 2)" {
			t.Fatalf("unexpected body: %v", body)
		}
	}
}

func TestPredictValidationListsEveryField(t *testing.T) {
	svc := &mockService{ready: true}
	r := NewMux(svc)
	w := postPredict(r, "/predict_insurance_charge", `{"age":66,"sex":"other","bmi":14.9,"children":6,"smoker":"maybe"}`)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", w.Code)
	}
	body := decodeError(t, w)
	if body.Kind != types.KindValidation || body.Code != http.StatusUnprocessableEntity || len(body.Fields) != 5 {
		t.Fatalf("unexpected body: %+v", body)
	}
	if svc.calls != 0 {
		t.Fatalf("gateway consulted for invalid input")
	}
}

func TestPredictUnavailableMaps503(t *testing.T) {
	svc := &mockService{ready: false}
	w := postPredict(NewMux(svc), "/predict_insurance_charge", validBody)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
	body := decodeError(t, w)
	if body.Kind != types.KindUnavailable || strings.Contains(body.Error, "joblib") {
		t.Fatalf("unexpected body: %+v", body)
	}
	if strings.Contains(w.Body.String(), "predicted_charge") {
		t.Fatalf("partial success shape leaked: %s", w.Body.String())
	}
}

func TestPredictInferenceFailureMaps500(t *testing.T) {
	var logs bytes.Buffer
	SetLogger(zerolog.New(&logs))
	defer SetLogger(zerolog.New(io.Discard))

	svc := &mockService{ready: true, err: &gateway.InferenceFailure{Cause: errors.New("feature shape mismatch")}}
	w := postPredict(NewMux(svc), "/predict_insurance_charge", validBody)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	body := decodeError(t, w)
	if body.Kind != types.KindInternal || !strings.HasPrefix(body.Error, "Prediction failed due to internal error") {
		t.Fatalf("unexpected body: %+v", body)
	}
	if !strings.Contains(logs.String(), "feature shape mismatch") {
		t.Fatalf("cause not logged: %q", logs.String())
	}
}

func TestPredictBadJSON(t *testing.T) {
	for _, in := range []string{"not-json", `{"age":`, `[1,2]`, `"age"`} {
		svc := &mockService{ready: true}
		w := postPredict(NewMux(svc), "/predict_insurance_charge", in)
		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("%q: status=%d", in, w.Code)
		}
		body := decodeError(t, w)
		if body.Kind != types.KindValidation || body.Code != http.StatusUnprocessableEntity {
			t.Fatalf("%q: unexpected body: %+v", in, body)
		}
		if len(body.Fields) != 1 || body.Fields[0].Field != "body" {
			t.Fatalf("%q: unexpected fields: %+v", in, body.Fields)
		}
		if svc.calls != 0 {
			t.Fatalf("%q: gateway called on malformed body", in)
		}
	}
}

func TestPredictUnsupportedMediaType(t *testing.T) {
	r := NewMux(&mockService{ready: true})
	for _, ct := range []string{"", "text/plain", "application/jsonx", "application/json-patch+json"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/predict", bytes.NewBufferString(validBody))
		if ct != "" {
			req.Header.Set("Content-Type", ct)
		}
		r.ServeHTTP(w, req)
		if w.Code != http.StatusUnsupportedMediaType {
			t.Fatalf("%q: status=%d", ct, w.Code)
		}
	}
}

func TestContentTypeCaseInsensitive(t *testing.T) {
	r := NewMux(&mockService{ready: true})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/predict", bytes.NewBufferString(validBody))
	req.Header.Set("Content-Type", "Application/JSON; charset=utf-8")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 with mixed-case content-type, got %d", w.Code)
	}
}

func TestPredictBodyTooLarge(t *testing.T) {
	r := NewMux(&mockService{ready: true})
	big := make([]byte, (1<<20)+10)
	for i := range big {
		big[i] = 'a'
	}
	w := postPredict(r, "/predict", string(big))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for too-large body, got %d", w.Code)
	}
}

func TestStatusHandler(t *testing.T) {
	svc := &mockService{status: types.StatusResponse{State: "ready", PredictionsTotal: 3}}
	w := httptest.NewRecorder()
	NewMux(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/status", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	var body types.StatusResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("json: %v", err)
	}
	if body.State != "ready" || body.PredictionsTotal != 3 {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestReadyz(t *testing.T) {
	w := httptest.NewRecorder()
	NewMux(&mockService{ready: true}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
}

func TestReadyz_NotReady(t *testing.T) {
	w := httptest.NewRecorder()
	NewMux(&mockService{ready: false}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status=%d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "unavailable") {
		t.Fatalf("body=%q", w.Body.String())
	}
}

func TestHealthz(t *testing.T) {
	w := httptest.NewRecorder()
	NewMux(&mockService{}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
}

func TestCORSAndSecurityHeaders(t *testing.T) {
	SetCORSOptions(true, []string{"*"}, nil, nil)
	defer SetCORSOptions(false, nil, nil, nil)

	h := NewMux(&mockService{ready: true})
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("Origin", "http://localhost:8501")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Fatalf("expected X-Content-Type-Options=nosniff, got %q", got)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got == "" {
		t.Fatalf("expected CORS header Access-Control-Allow-Origin to be set, got empty")
	}
}

func TestPredictAgainstRealGateway(t *testing.T) {
	_, thisFile, _, _ := runtime.Caller(0)
	g := gateway.New(gateway.Config{ModelPath: filepath.Join(filepath.Dir(thisFile), "..", "..", "models", "insurance.json")})
	r := NewMux(g)
	w := postPredict(r, "/predict_insurance_charge", validBody)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var res types.PredictionResult
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("json: %v", err)
	}
	if res.PredictedCharge != 14345 || res.RiskCategory != types.TierElevated {
		t.Fatalf("unexpected result: %+v", res)
	}

	missing := gateway.New(gateway.Config{ModelPath: filepath.Join(t.TempDir(), "insurance.json")})
	w = postPredict(NewMux(missing), "/predict_insurance_charge", validBody)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 for unloaded model, got %d", w.Code)
	}
}
