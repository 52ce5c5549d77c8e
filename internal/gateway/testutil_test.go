package gateway

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"sync/atomic"
	"testing"
	"time"

	"insurecost/internal/model"
	"insurecost/pkg/types"
)

// fixedPredictor returns v for every row.
type fixedPredictor struct{ v float64 }

func (f fixedPredictor) Predict(model.Row) (float64, error) { return f.v, nil }
func (fixedPredictor) ConcurrentSafe() bool                 { return true }

type errPredictor struct{ err error }

func (e errPredictor) Predict(model.Row) (float64, error) { return 0, e.err }
func (errPredictor) ConcurrentSafe() bool                 { return true }

type panicPredictor struct{}

func (panicPredictor) Predict(model.Row) (float64, error) { panic("boom") }
func (panicPredictor) ConcurrentSafe() bool               { return true }

// exclusivePredictor does not declare concurrency safety and records whether
// two Predict calls ever overlapped.
type exclusivePredictor struct {
	inflight atomic.Int32
	overlap  atomic.Bool
}

func (p *exclusivePredictor) Predict(model.Row) (float64, error) {
	if p.inflight.Add(1) > 1 {
		p.overlap.Store(true)
	}
	time.Sleep(time.Millisecond)
	p.inflight.Add(-1)
	return 100, nil
}

var errBadRow = errors.New("bad row")

func loaderFor(p model.Predictor) Loader {
	return func(string) (model.Predictor, error) { return p, nil }
}

// tempModelFile creates an artifact placeholder so the existence check passes.
func tempModelFile(t *testing.T) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "model.json")
	if err := os.WriteFile(p, []byte("{}"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return p
}

func referenceModelPath(t *testing.T) string {
	t.Helper()
	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("runtime.Caller failed")
	}
	return filepath.Join(filepath.Dir(filepath.Dir(filepath.Dir(thisFile))), "models", "insurance.json")
}

var sampleRecord = types.PolicyholderRecord{Age: 30, Sex: types.SexMale, BMI: 25.0, Children: 1, Smoker: types.SmokerNo}
