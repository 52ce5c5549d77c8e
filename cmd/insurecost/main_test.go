package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"insurecost/internal/config"
	"insurecost/pkg/types"
)

const referenceModel = "../../models/insurance.json"

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd(&out, &errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func TestRenderResult(t *testing.T) {
	var buf bytes.Buffer
	renderResult(&buf, types.PredictionResult{PredictedCharge: 14345, RiskCategory: types.TierElevated}, language.English)
	assert.Equal(t, "Estimated Annual Medical Charge: $14,345.00\nRisk Assessment: Elevated Risk (Tier 2) (orange)\n", buf.String())
}

func TestTierColor(t *testing.T) {
	assert.Equal(t, "green", tierColor(types.TierStandard))
	assert.Equal(t, "orange", tierColor(types.TierElevated))
	assert.Equal(t, "red", tierColor(types.TierHigh))
	assert.Equal(t, "gray", tierColor(types.RiskTier("other")))
}

func TestResolveServeConfigPrecedence(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "insurecost.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("addr: \":7000\"\nmodel_path: file.json\nlog_level: debug\n"), 0o644))

	g := &globalFlags{}
	f := &serveFlags{}
	cmd := &cobra.Command{Use: "serve"}
	bindServeFlags(cmd, f)
	require.NoError(t, cmd.ParseFlags([]string{"--config", cfgPath, "--addr", ":9000"}))

	env := map[string]string{"INSURECOST_MODEL_PATH": "/env/model.json"}
	cfg, err := resolveServeConfig(cmd, f, g, func(k string) string { return env[k] })
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, "/env/model.json", cfg.ModelPath)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, int64(config.DefaultMaxBodyBytes), cfg.MaxBodyBytes)
	assert.Equal(t, config.DefaultShutdownSeconds, cfg.ShutdownSeconds)
}

func TestResolveServeConfigDefaults(t *testing.T) {
	f := &serveFlags{}
	cmd := &cobra.Command{Use: "serve"}
	bindServeFlags(cmd, f)
	require.NoError(t, cmd.ParseFlags([]string{"--cors-enabled"}))
	cfg, err := resolveServeConfig(cmd, f, &globalFlags{}, func(string) string { return "" })
	require.NoError(t, err)
	assert.Equal(t, config.DefaultAddr, cfg.Addr)
	assert.Equal(t, config.DefaultModelPath, cfg.ModelPath)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
}

func TestResolveServeConfigBadFile(t *testing.T) {
	f := &serveFlags{configPath: "missing.toml"}
	cmd := &cobra.Command{Use: "serve"}
	bindServeFlags(cmd, f)
	_, err := resolveServeConfig(cmd, f, &globalFlags{}, func(string) string { return "" })
	assert.ErrorContains(t, err, "load config")
}

func TestModelCheckReady(t *testing.T) {
	out, _, err := execute(t, "model", "check", "--model-path", referenceModel, "--sample")
	require.NoError(t, err)
	assert.Contains(t, out, "state: ready")
	assert.Contains(t, out, "regressor: linear")
	assert.Contains(t, out, "Estimated Annual Medical Charge: $14,345.00")
}

func TestModelCheckMissing(t *testing.T) {
	out, _, err := execute(t, "model", "check", "--model-path", filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model unavailable")
	assert.Contains(t, out, "state: unavailable")
}

func TestPredictCommand(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"predicted_charge":31000.5,"risk_category":"High-Risk/Complex Case (Tier 3)"}`))
	}))
	defer srv.Close()

	out, _, err := execute(t, "predict", "--url", srv.URL, "--age", "60", "--smoker", "yes")
	require.NoError(t, err)
	assert.Equal(t, "Estimated Annual Medical Charge: $31,000.50\nRisk Assessment: High-Risk/Complex Case (Tier 3) (red)\n", out)
}

func TestPredictCommandJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"predicted_charge":5000,"risk_category":"Standard (Tier 1)"}`))
	}))
	defer srv.Close()

	out, _, err := execute(t, "predict", "--url", srv.URL, "--json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"predicted_charge":5000,"risk_category":"Standard (Tier 1)"}`, out)
}

func TestPredictCommandAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"error":"invalid input","code":422,"kind":"validation_error","fields":[{"field":"age","message":"must be between 18 and 65"}]}`))
	}))
	defer srv.Close()

	_, _, err := execute(t, "predict", "--url", srv.URL, "--age", "17")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "prediction failed due to API error")
	assert.Contains(t, err.Error(), "age: must be between 18 and 65")
}

func TestPredictCommandUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, errOut, err := execute(t, "predict", "--url", url, "--attempts", "2", "--retry-delay", "1ms")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not connect to the API after 2 attempts")
	assert.Contains(t, errOut, "(Attempt 1)")
}
