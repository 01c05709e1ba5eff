package gearcfg

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"

	"github.com/naccdata/flywheel-extensions/domain/model"
)

// Values holds configuration values that passed manifest validation, with
// defaults applied.
type Values map[string]any

// ValidateConfig checks cfg against the manifest. Keys are visited in sorted
// order and the first missing or mismatched key is returned as
// *model.ValidationError. Keys unknown to the manifest are dropped.
func (m *Manifest) ValidateConfig(cfg map[string]any) (Values, error) {
	out := make(Values, len(m.Config))
	for _, name := range m.ConfigKeys() {
		k := m.Config[name]
		v, ok := cfg[name]
		if !ok || v == nil {
			if k.Default != nil {
				out[name] = k.Default
				continue
			}
			if k.Required() {
				return nil, &model.ValidationError{Key: name, Reason: "required key missing"}
			}
			continue
		}
		if !conforms(k.Type, v) {
			return nil, &model.ValidationError{Key: name, Reason: fmt.Sprintf("expected %s, got %s", k.Type, describe(v))}
		}
		if len(k.Enum) > 0 && !inEnum(k.Enum, v) {
			return nil, &model.ValidationError{Key: name, Reason: fmt.Sprintf("value %v not in %v", v, k.Enum)}
		}
		out[name] = v
	}
	return out, nil
}

// String returns a string value.
func (v Values) String(key string) (string, bool) {
	s, ok := v[key].(string)
	return s, ok
}

// Bool returns a boolean value.
func (v Values) Bool(key string) (bool, bool) {
	b, ok := v[key].(bool)
	return b, ok
}

// Int returns an integer value.
func (v Values) Int(key string) (int64, bool) {
	f, ok := toFloat(v[key])
	if !ok || f != math.Trunc(f) {
		return 0, false
	}
	return int64(f), true
}

// StringMap returns an object value whose members are rendered as strings.
// Strings are kept as is; numbers, booleans, arrays and objects are JSON
// encoded.
func (v Values) StringMap(key string) (map[string]string, bool) {
	obj, ok := v[key].(map[string]any)
	if !ok {
		return nil, false
	}
	out := make(map[string]string, len(obj))
	for k, x := range obj {
		if s, ok := x.(string); ok {
			out[k] = s
			continue
		}
		b, err := json.Marshal(x)
		if err != nil {
			out[k] = fmt.Sprint(x)
			continue
		}
		out[k] = string(b)
	}
	return out, true
}

func conforms(t KeyType, v any) bool {
	switch t {
	case TypeString:
		_, ok := v.(string)
		return ok
	case TypeBoolean:
		_, ok := v.(bool)
		return ok
	case TypeNumber:
		_, ok := toFloat(v)
		return ok
	case TypeInteger:
		f, ok := toFloat(v)
		return ok && f == math.Trunc(f)
	case TypeArray:
		_, ok := v.([]any)
		return ok
	case TypeObject:
		_, ok := v.(map[string]any)
		return ok
	}
	return false
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	}
	return 0, false
}

func inEnum(enum []any, v any) bool {
	for _, e := range enum {
		if fe, ok := toFloat(e); ok {
			if fv, ok := toFloat(v); ok && fe == fv {
				return true
			}
			continue
		}
		if reflect.DeepEqual(e, v) {
			return true
		}
	}
	return false
}

func describe(v any) string {
	switch v.(type) {
	case string:
		return "string"
	case bool:
		return "boolean"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	}
	if f, ok := toFloat(v); ok {
		if f == math.Trunc(f) {
			return "integer"
		}
		return "number"
	}
	return fmt.Sprintf("%T", v)
}
