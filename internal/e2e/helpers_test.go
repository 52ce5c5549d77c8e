package e2e

import (
	"fmt"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"insurecost/internal/client"
	"insurecost/internal/gateway"
	"insurecost/internal/httpapi"
)

// writeLinearArtifact writes a v1 linear artifact with the given intercept and
// age coefficient; all other features weigh zero.
func writeLinearArtifact(t *testing.T, intercept, age float64) string {
	t.Helper()
	doc := fmt.Sprintf(`{
  "format": "insurecost.pipeline/v1",
  "schema": "v1",
  "columns": ["age", "sex", "bmi", "children", "smoker"],
  "encoders": {
    "sex": {"categories": ["female", "male"], "drop_first": true},
    "smoker": {"categories": ["no", "yes"], "drop_first": true}
  },
  "regressor": {"kind": "linear", "intercept": %v, "coefficients": {"age": %v}}
}`, intercept, age)
	p := filepath.Join(t.TempDir(), "model.json")
	if err := os.WriteFile(p, []byte(doc), 0o644); err != nil {
		t.Fatalf("write artifact: %v", err)
	}
	return p
}

func referenceModelPath() string { return filepath.Join("..", "..", "models", "insurance.json") }

// newServerForModel starts the full HTTP stack over a gateway loaded from path.
func newServerForModel(t *testing.T, path string) (*httptest.Server, *gateway.Gateway) {
	t.Helper()
	gw := gateway.New(gateway.Config{ModelPath: path})
	srv := httptest.NewServer(httpapi.NewMux(gw))
	t.Cleanup(srv.Close)
	return srv, gw
}

func newClient(srv *httptest.Server) *client.Client {
	return client.New(srv.URL, client.WithRetry(3, 10*time.Millisecond))
}
