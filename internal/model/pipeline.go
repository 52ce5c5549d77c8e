package model

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"
)

var (
	// ErrColumnMismatch is returned when a row does not have the columns, in
	// order, that the pipeline was trained against.
	ErrColumnMismatch = errors.New("row columns do not match artifact")
	// ErrUnknownCategory is returned for a categorical value the encoder has
	// never seen.
	ErrUnknownCategory = errors.New("unknown category")
)

// Predictor turns one row into one numeric prediction.
type Predictor interface {
	Predict(row Row) (float64, error)
}

type regressor interface {
	predict(x []float64) float64
	kind() string
}

// columnStep converts one row cell into its slice of the feature vector.
type columnStep struct {
	name       string
	kind       ColumnKind
	offset     int
	scale      *ScalerSpec
	categories []string
	dropFirst  bool
}

// Pipeline is a compiled artifact. It holds no mutable state.
type Pipeline struct {
	schema   Schema
	steps    []columnStep
	features []string
	reg      regressor
}

// Compile validates doc and builds a Pipeline from it.
func Compile(doc Document) (*Pipeline, error) {
	if doc.Format != FormatV1 {
		return nil, fmt.Errorf("unsupported artifact format %q", doc.Format)
	}
	schema, ok := LookupSchema(doc.Schema)
	if !ok {
		return nil, fmt.Errorf("unknown row schema %q", doc.Schema)
	}
	if !slices.Equal(doc.Columns, schema.Names()) {
		return nil, fmt.Errorf("artifact columns %v do not match schema %s %v", doc.Columns, schema.Version, schema.Names())
	}
	p := &Pipeline{schema: schema}
	for name := range doc.Encoders {
		if c, ok := columnByName(schema, name); !ok || c.Kind != Categorical {
			return nil, fmt.Errorf("encoder for non-categorical column %q", name)
		}
	}
	for name := range doc.Scalers {
		if c, ok := columnByName(schema, name); !ok || c.Kind != Numeric {
			return nil, fmt.Errorf("scaler for non-numeric column %q", name)
		}
	}
	for _, col := range schema.Columns {
		step := columnStep{name: col.Name, kind: col.Kind, offset: len(p.features)}
		switch col.Kind {
		case Numeric:
			if s, ok := doc.Scalers[col.Name]; ok {
				if s.Scale == 0 || math.IsNaN(s.Scale) {
					return nil, fmt.Errorf("scaler %q: scale must be non-zero", col.Name)
				}
				s := s
				step.scale = &s
			}
			p.features = append(p.features, col.Name)
		case Categorical:
			enc, ok := doc.Encoders[col.Name]
			if !ok || len(enc.Categories) == 0 {
				return nil, fmt.Errorf("categorical column %q has no encoder", col.Name)
			}
			step.categories = append([]string(nil), enc.Categories...)
			step.dropFirst = enc.DropFirst
			cats := enc.Categories
			if enc.DropFirst {
				cats = cats[1:]
			}
			for _, c := range cats {
				p.features = append(p.features, col.Name+"_"+c)
			}
		}
		p.steps = append(p.steps, step)
	}
	reg, err := compileRegressor(doc.Regressor, p.featureIndex())
	if err != nil {
		return nil, fmt.Errorf("regressor: %w", err)
	}
	p.reg = reg
	return p, nil
}

func columnByName(s Schema, name string) (Column, bool) {
	for _, c := range s.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

func (p *Pipeline) featureIndex() map[string]int {
	idx := make(map[string]int, len(p.features))
	for i, f := range p.features {
		idx[f] = i
	}
	return idx
}

// Schema returns the row schema version the pipeline expects.
func (p *Pipeline) Schema() string { return p.schema.Version }

// Kind returns the regressor family.
func (p *Pipeline) Kind() string { return p.reg.kind() }

// Features returns the encoded feature names in vector order.
func (p *Pipeline) Features() []string { return append([]string(nil), p.features...) }

// ConcurrentSafe reports that Predict may be called from many goroutines.
func (p *Pipeline) ConcurrentSafe() bool { return true }

// Predict encodes row and evaluates the regressor.
func (p *Pipeline) Predict(row Row) (float64, error) {
	x, err := p.encode(row)
	if err != nil {
		return 0, err
	}
	return p.reg.predict(x), nil
}

func (p *Pipeline) encode(row Row) ([]float64, error) {
	if len(row) != len(p.steps) {
		return nil, fmt.Errorf("%w: got [%s], want [%s]", ErrColumnMismatch,
			strings.Join(row.Columns(), ","), strings.Join(p.schema.Names(), ","))
	}
	x := make([]float64, len(p.features))
	for i, step := range p.steps {
		cell := row[i]
		if cell.Column != step.name {
			return nil, fmt.Errorf("%w: position %d is %q, want %q", ErrColumnMismatch, i, cell.Column, step.name)
		}
		switch step.kind {
		case Numeric:
			v := cell.Num
			if step.scale != nil {
				v = (v - step.scale.Mean) / step.scale.Scale
			}
			x[step.offset] = v
		case Categorical:
			pos := slices.Index(step.categories, cell.Cat)
			if pos < 0 {
				return nil, fmt.Errorf("%w: %s=%q", ErrUnknownCategory, step.name, cell.Cat)
			}
			if step.dropFirst {
				if pos == 0 {
					continue
				}
				pos--
			}
			x[step.offset+pos] = 1
		}
	}
	return x, nil
}
