package form

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// IsNumber reports whether value is one of the numeric kinds produced by the
// JSON and YAML decoders.
func IsNumber(value any) bool {
	switch value.(type) {
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64, json.Number:
		return true
	default:
		return false
	}
}

// IsScalar reports whether value is a string, number, or boolean.
func IsScalar(value any) bool {
	switch value.(type) {
	case string, bool:
		return true
	default:
		return IsNumber(value)
	}
}

// Stringify renders a scalar the way legacy exports expect size and id
// attributes to be written: integers without a decimal point, floats in
// their shortest form. The second return is false for non-scalars.
func Stringify(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case bool:
		return strconv.FormatBool(v), true
	case json.Number:
		return v.String(), true
	case int:
		return strconv.Itoa(v), true
	case int8:
		return strconv.FormatInt(int64(v), 10), true
	case int16:
		return strconv.FormatInt(int64(v), 10), true
	case int32:
		return strconv.FormatInt(int64(v), 10), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case uint:
		return strconv.FormatUint(uint64(v), 10), true
	case uint8:
		return strconv.FormatUint(uint64(v), 10), true
	case uint16:
		return strconv.FormatUint(uint64(v), 10), true
	case uint32:
		return strconv.FormatUint(uint64(v), 10), true
	case uint64:
		return strconv.FormatUint(v, 10), true
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 64), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	default:
		return "", false
	}
}

// CoerceBool maps legacy boolean surrogates onto real booleans:
// 1, "1", "true", "yes" and positive numbers are true; 0, "0", "false" and
// "no" are false (strings compared case-insensitively). Everything else
// falls back to Truthy.
func CoerceBool(value any) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "yes":
			return true
		case "0", "false", "no":
			return false
		}
		return Truthy(v)
	}
	if f, ok := toFloat(value); ok {
		if f > 0 {
			return true
		}
		if f == 0 {
			return false
		}
	}
	return Truthy(value)
}

// Truthy applies loose truthiness: nil, false, "", zero and NaN are false;
// every other value, including empty mappings and sequences, is true.
func Truthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	}
	if f, ok := toFloat(value); ok {
		return f != 0 && !math.IsNaN(f)
	}
	return true
}

// IsBlank reports whether value counts as absent: nil, false, "", or zero.
func IsBlank(value any) bool {
	return !Truthy(value)
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case float32:
		return float64(v), true
	case float64:
		return v, true
	}
	if s, ok := Stringify(value); ok && IsNumber(value) {
		f, err := strconv.ParseFloat(s, 64)
		return f, err == nil
	}
	return 0, false
}
