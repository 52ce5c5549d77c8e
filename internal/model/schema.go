package model

import (
	"strconv"

	"insurecost/pkg/types"
)

// ColumnKind says how a column is encoded before regression.
type ColumnKind int

const (
	Numeric ColumnKind = iota
	Categorical
)

func (k ColumnKind) String() string {
	if k == Categorical {
		return "categorical"
	}
	return "numeric"
}

// Column is one named input column of a row schema.
type Column struct {
	Name string
	Kind ColumnKind
}

// Schema is a named, ordered list of columns. An artifact declares which
// schema it was trained against; rows are always assembled in schema order.
type Schema struct {
	Version string
	Columns []Column
}

// Names returns the column names in order.
func (s Schema) Names() []string {
	out := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		out[i] = c.Name
	}
	return out
}

// SchemaV1 is the five-column row the insurance artifacts are trained on.
// Changing order or names requires a new version.
var SchemaV1 = Schema{
	Version: "v1",
	Columns: []Column{
		{Name: "age", Kind: Numeric},
		{Name: "sex", Kind: Categorical},
		{Name: "bmi", Kind: Numeric},
		{Name: "children", Kind: Numeric},
		{Name: "smoker", Kind: Categorical},
	},
}

var schemas = map[string]Schema{SchemaV1.Version: SchemaV1}

// LookupSchema returns the schema registered under version.
func LookupSchema(version string) (Schema, bool) {
	s, ok := schemas[version]
	return s, ok
}

// Cell is one column value. Numeric columns use Num, categorical use Cat.
type Cell struct {
	Column string
	Num    float64
	Cat    string
}

func (c Cell) String() string {
	if c.Cat != "" {
		return c.Column + "=" + c.Cat
	}
	return c.Column + "=" + strconv.FormatFloat(c.Num, 'g', -1, 64)
}

// Row is a single tabular input row, ordered per its schema.
type Row []Cell

// Columns returns the column names of the row in order.
func (r Row) Columns() []string {
	out := make([]string, len(r))
	for i, c := range r {
		out[i] = c.Column
	}
	return out
}

// RowFromRecord assembles rec into a SchemaV1 row.
func RowFromRecord(rec types.PolicyholderRecord) Row {
	return Row{
		{Column: "age", Num: float64(rec.Age)},
		{Column: "sex", Cat: string(rec.Sex)},
		{Column: "bmi", Num: rec.BMI},
		{Column: "children", Num: float64(rec.Children)},
		{Column: "smoker", Cat: string(rec.Smoker)},
	}
}
