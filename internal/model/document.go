package model

// FormatV1 identifies the pipeline document layout understood by Compile.
const FormatV1 = "insurecost.pipeline/v1"

// Regressor kinds.
const (
	KindLinear       = "linear"
	KindTreeEnsemble = "tree_ensemble"
)

// Document is the serialized form of a pipeline artifact.
type Document struct {
	Format    string                 `json:"format" yaml:"format" toml:"format"`
	Schema    string                 `json:"schema" yaml:"schema" toml:"schema"`
	Columns   []string               `json:"columns" yaml:"columns" toml:"columns"`
	Encoders  map[string]EncoderSpec `json:"encoders,omitempty" yaml:"encoders,omitempty" toml:"encoders,omitempty"`
	Scalers   map[string]ScalerSpec  `json:"scalers,omitempty" yaml:"scalers,omitempty" toml:"scalers,omitempty"`
	Regressor RegressorSpec          `json:"regressor" yaml:"regressor" toml:"regressor"`
}

// EncoderSpec one-hot encodes a categorical column. Each category becomes a
// feature named "<column>_<category>"; with DropFirst the first category is
// the implicit baseline and produces no feature.
type EncoderSpec struct {
	Categories []string `json:"categories" yaml:"categories" toml:"categories"`
	DropFirst  bool     `json:"drop_first,omitempty" yaml:"drop_first,omitempty" toml:"drop_first,omitempty"`
}

// ScalerSpec standardizes a numeric column as (x - Mean) / Scale.
type ScalerSpec struct {
	Mean  float64 `json:"mean" yaml:"mean" toml:"mean"`
	Scale float64 `json:"scale" yaml:"scale" toml:"scale"`
}

// RegressorSpec describes the final estimator. Linear uses Intercept and
// Coefficients; tree_ensemble uses BaseScore, LearningRate and Trees.
type RegressorSpec struct {
	Kind         string             `json:"kind" yaml:"kind" toml:"kind"`
	Intercept    float64            `json:"intercept,omitempty" yaml:"intercept,omitempty" toml:"intercept,omitempty"`
	Coefficients map[string]float64 `json:"coefficients,omitempty" yaml:"coefficients,omitempty" toml:"coefficients,omitempty"`
	BaseScore    float64            `json:"base_score,omitempty" yaml:"base_score,omitempty" toml:"base_score,omitempty"`
	LearningRate float64            `json:"learning_rate,omitempty" yaml:"learning_rate,omitempty" toml:"learning_rate,omitempty"`
	Trees        []TreeSpec         `json:"trees,omitempty" yaml:"trees,omitempty" toml:"trees,omitempty"`
}

// TreeSpec is a flat list of nodes; node 0 is the root.
type TreeSpec struct {
	Nodes []NodeSpec `json:"nodes" yaml:"nodes" toml:"nodes"`
}

// NodeSpec is a split (Feature <= Threshold goes Left) or a leaf carrying Value.
type NodeSpec struct {
	Feature   string  `json:"feature,omitempty" yaml:"feature,omitempty" toml:"feature,omitempty"`
	Threshold float64 `json:"threshold,omitempty" yaml:"threshold,omitempty" toml:"threshold,omitempty"`
	Left      int     `json:"left,omitempty" yaml:"left,omitempty" toml:"left,omitempty"`
	Right     int     `json:"right,omitempty" yaml:"right,omitempty" toml:"right,omitempty"`
	Leaf      bool    `json:"leaf,omitempty" yaml:"leaf,omitempty" toml:"leaf,omitempty"`
	Value     float64 `json:"value,omitempty" yaml:"value,omitempty" toml:"value,omitempty"`
}
