package gateway

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"insurecost/internal/common/fsutil"
	"insurecost/internal/model"
)

// State represents the lifecycle state of the gateway.
type State string

const (
	StateUninitialized State = "uninitialized"
	StateReady         State = "ready"
	StateUnavailable   State = "unavailable"
)

// Loader opens the artifact at path.
type Loader func(path string) (model.Predictor, error)

// LoadPipeline is the default Loader.
func LoadPipeline(path string) (model.Predictor, error) {
	return model.Load(path)
}

// Config encapsulates all tunables for Gateway construction.
type Config struct {
	// ModelPath is the artifact location. It is only checked for existence.
	ModelPath string
	// Loader defaults to LoadPipeline.
	Loader Loader
	// Logger receives the load diagnostic. Defaults to a no-op logger.
	Logger *zerolog.Logger
	// Publisher receives lifecycle events. Defaults to dropping them.
	Publisher EventPublisher
}

// Gateway holds the loaded artifact. All fields except the counters are
// written only inside New, so concurrent readers need no lock.
type Gateway struct {
	path      string
	state     State
	predictor model.Predictor
	// serialize is set when the predictor does not declare itself safe for
	// concurrent use; mu then guards every Predict call.
	serialize bool
	mu        sync.Mutex
	loadErr   error
	loadedAt  time.Time
	startTime time.Time
	log       zerolog.Logger
	pub       EventPublisher

	predictions atomic.Uint64
	failures    atomic.Uint64
}

type concurrentSafe interface {
	ConcurrentSafe() bool
}

type schemaVersioned interface {
	Schema() string
}

// New builds a Gateway and attempts to load its artifact exactly once. It
// never fails: a load error leaves the gateway permanently Unavailable.
func New(cfg Config) *Gateway {
	g := &Gateway{
		path:      cfg.ModelPath,
		state:     StateUninitialized,
		startTime: time.Now(),
		log:       zerolog.Nop(),
		pub:       cfg.Publisher,
	}
	if cfg.Logger != nil {
		g.log = *cfg.Logger
	}
	if g.pub == nil {
		g.pub = noopPublisher{}
	}
	loader := cfg.Loader
	if loader == nil {
		loader = LoadPipeline
	}

	g.pub.Publish(Event{Name: "load_start", ModelPath: g.path})
	p, err := g.load(loader)
	if err != nil {
		g.state = StateUnavailable
		g.loadErr = err
		g.log.Error().Err(err).Str("model_path", g.path).Msg("model load failed; gateway unavailable")
		g.pub.Publish(Event{Name: "load_failed", ModelPath: g.path, Fields: map[string]any{"error": err.Error()}})
		return g
	}
	g.predictor = p
	if cs, ok := p.(concurrentSafe); !ok || !cs.ConcurrentSafe() {
		g.serialize = true
	}
	g.state = StateReady
	g.loadedAt = time.Now()
	g.log.Info().Str("model_path", g.path).Bool("serialized", g.serialize).Msg("model loaded")
	g.pub.Publish(Event{Name: "load_ready", ModelPath: g.path, Fields: map[string]any{"serialized": g.serialize}})
	return g
}

func (g *Gateway) load(loader Loader) (p model.Predictor, err error) {
	if _, err := fsutil.FileExists(g.path); err != nil {
		return nil, err
	}
	defer func() {
		if r := recover(); r != nil {
			p, err = nil, fmt.Errorf("panic while loading model: %v", r)
		}
	}()
	p, err = loader(g.path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", g.path, err)
	}
	if p == nil {
		return nil, fmt.Errorf("load %s: loader returned no predictor", g.path)
	}
	if sv, ok := p.(schemaVersioned); ok && sv.Schema() != model.SchemaV1.Version {
		return nil, fmt.Errorf("load %s: artifact schema %q, gateway assembles %q", g.path, sv.Schema(), model.SchemaV1.Version)
	}
	return p, nil
}

// State returns the lifecycle state.
func (g *Gateway) State() State { return g.state }

// Ready reports whether predictions can be served.
func (g *Gateway) Ready() bool { return g.state == StateReady }

// LoadError returns the reason the artifact failed to load, if it did.
func (g *Gateway) LoadError() error { return g.loadErr }
