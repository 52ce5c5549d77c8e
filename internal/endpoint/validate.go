package endpoint

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"insurecost/pkg/types"
)

// DecodeRecord parses raw JSON into a PolicyholderRecord, checking type, enum
// membership and range of every field. All offending fields are reported,
// in schema order; unknown fields are ignored.
func DecodeRecord(raw []byte) (types.PolicyholderRecord, error) {
	var rec types.PolicyholderRecord
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil || obj == nil {
		msg := "must be a JSON object"
		if !json.Valid(raw) {
			msg = "invalid JSON"
		}
		return rec, validationError([]types.FieldError{{Field: "body", Message: msg}})
	}

	v := &fieldValidator{obj: obj}
	rec.Age = v.intField("age", types.MinAge, types.MaxAge)
	rec.Sex = types.Sex(v.enumField("sex", func(s string) bool { return types.Sex(s).Valid() }, string(types.SexMale), string(types.SexFemale)))
	rec.BMI = v.floatField("bmi", types.MinBMI, types.MaxBMI)
	rec.Children = v.intField("children", types.MinChildren, types.MaxChildren)
	rec.Smoker = types.Smoker(v.enumField("smoker", func(s string) bool { return types.Smoker(s).Valid() }, string(types.SmokerYes), string(types.SmokerNo)))
	if len(v.errs) > 0 {
		return types.PolicyholderRecord{}, validationError(v.errs)
	}
	return rec, nil
}

type fieldValidator struct {
	obj  map[string]json.RawMessage
	errs []types.FieldError
}

func (v *fieldValidator) fail(field, format string, args ...any) {
	v.errs = append(v.errs, types.FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
}

// value decodes the named field, reporting it as missing when absent or null.
func (v *fieldValidator) value(field string) (any, bool) {
	raw, ok := v.obj[field]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		v.fail(field, "field required")
		return nil, false
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var out any
	if err := dec.Decode(&out); err != nil {
		v.fail(field, "invalid value")
		return nil, false
	}
	return out, true
}

// intField accepts JSON integers and integral floats such as 30.0.
func (v *fieldValidator) intField(field string, lo, hi int) int {
	val, ok := v.value(field)
	if !ok {
		return 0
	}
	num, ok := val.(json.Number)
	if !ok {
		v.fail(field, "must be an integer")
		return 0
	}
	f, err := num.Float64()
	if err != nil || f != math.Trunc(f) {
		v.fail(field, "must be an integer")
		return 0
	}
	if f < float64(lo) || f > float64(hi) {
		v.fail(field, "must be between %d and %d", lo, hi)
		return 0
	}
	return int(f)
}

func (v *fieldValidator) floatField(field string, lo, hi float64) float64 {
	val, ok := v.value(field)
	if !ok {
		return 0
	}
	num, ok := val.(json.Number)
	if !ok {
		v.fail(field, "must be a number")
		return 0
	}
	f, err := num.Float64()
	if err != nil {
		v.fail(field, "must be a number")
		return 0
	}
	if f < lo || f > hi {
		v.fail(field, "must be between %.1f and %.1f", lo, hi)
		return 0
	}
	return f
}

// enumField checks a string field with valid; allowed only feeds the message.
func (v *fieldValidator) enumField(field string, valid func(string) bool, allowed ...string) string {
	val, ok := v.value(field)
	if !ok {
		return ""
	}
	s, ok := val.(string)
	if !ok {
		v.fail(field, "must be a string")
		return ""
	}
	if valid(s) {
		return s
	}
	v.fail(field, "must be one of: %s", strings.Join(allowed, ", "))
	return ""
}
