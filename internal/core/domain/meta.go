package domain

import (
	"sort"
	"strconv"
)

// MetaKind discriminates the variants of a MetaValue.
type MetaKind int

// MetaValue variants.
const (
	// MetaString holds a text scalar.
	MetaString MetaKind = iota

	// MetaNumber holds a numeric scalar.
	MetaNumber

	// MetaBool holds a boolean scalar.
	MetaBool

	// MetaList holds an ordered list of values.
	MetaList

	// MetaNested holds a nested metadata map.
	MetaNested
)

// MetaValue is one value inside a metadata map: a scalar, a list, or a
// nested map. Signals and sections carry loosely shaped metadata from
// analyzers and prompt builders; modelling it as an explicit variant keeps
// flattening rules in one place instead of scattering type switches.
type MetaValue struct {
	Kind MetaKind
	Str  string
	Num  float64
	Bool bool
	List []MetaValue
	Map  MetaMap
}

// MetaMap is a string-keyed metadata map.
type MetaMap map[string]MetaValue

// Str wraps a string scalar.
func Str(s string) MetaValue { return MetaValue{Kind: MetaString, Str: s} }

// Num wraps a numeric scalar.
func Num(n float64) MetaValue { return MetaValue{Kind: MetaNumber, Num: n} }

// Boolean wraps a bool scalar.
func Boolean(b bool) MetaValue { return MetaValue{Kind: MetaBool, Bool: b} }

// Strings wraps a list of string scalars.
func Strings(items ...string) MetaValue {
	list := make([]MetaValue, 0, len(items))
	for _, item := range items {
		list = append(list, Str(item))
	}
	return MetaValue{Kind: MetaList, List: list}
}

// Nested wraps a nested map.
func Nested(m MetaMap) MetaValue { return MetaValue{Kind: MetaNested, Map: m} }

// Scalar renders a scalar value as text. Lists and nested maps yield
// empty string and false.
func (v MetaValue) Scalar() (string, bool) {
	switch v.Kind {
	case MetaString:
		return v.Str, true
	case MetaNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64), true
	case MetaBool:
		return strconv.FormatBool(v.Bool), true
	default:
		return "", false
	}
}

// Flatten collects every scalar reachable inside the value, depth first.
// Nested map keys are visited in sorted order so the output is stable.
func (v MetaValue) Flatten() []string {
	var out []string
	v.flattenInto(&out)
	return out
}

func (v MetaValue) flattenInto(out *[]string) {
	switch v.Kind {
	case MetaList:
		for _, item := range v.List {
			item.flattenInto(out)
		}
	case MetaNested:
		v.Map.flattenInto(out)
	default:
		if s, ok := v.Scalar(); ok && s != "" {
			*out = append(*out, s)
		}
	}
}

// Flatten collects every scalar reachable inside the map, keys sorted.
func (m MetaMap) Flatten() []string {
	var out []string
	m.flattenInto(&out)
	return out
}

func (m MetaMap) flattenInto(out *[]string) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		m[k].flattenInto(out)
	}
}

// StringList returns the string items of a MetaList value under the given
// key. Non-list values and non-string items are ignored.
func (m MetaMap) StringList(key string) []string {
	v, ok := m[key]
	if !ok || v.Kind != MetaList {
		return nil
	}
	var out []string
	for _, item := range v.List {
		if item.Kind == MetaString {
			out = append(out, item.Str)
		}
	}
	return out
}

// MetaFromAny converts a decoded JSON value (string, float64, bool,
// []any, map[string]any) into a MetaValue. Unknown types become empty
// strings so malformed payloads degrade instead of failing.
func MetaFromAny(value any) MetaValue {
	switch v := value.(type) {
	case string:
		return Str(v)
	case float64:
		return Num(v)
	case int:
		return Num(float64(v))
	case int64:
		return Num(float64(v))
	case bool:
		return Boolean(v)
	case []any:
		list := make([]MetaValue, 0, len(v))
		for _, item := range v {
			list = append(list, MetaFromAny(item))
		}
		return MetaValue{Kind: MetaList, List: list}
	case []string:
		return Strings(v...)
	case map[string]any:
		return Nested(MetaMapFromAny(v))
	default:
		return Str("")
	}
}

// MetaMapFromAny converts a decoded JSON object into a MetaMap.
func MetaMapFromAny(value map[string]any) MetaMap {
	if value == nil {
		return nil
	}
	m := make(MetaMap, len(value))
	for k, v := range value {
		m[k] = MetaFromAny(v)
	}
	return m
}

// ToAny converts the value back into plain JSON-encodable types.
func (v MetaValue) ToAny() any {
	switch v.Kind {
	case MetaString:
		return v.Str
	case MetaNumber:
		return v.Num
	case MetaBool:
		return v.Bool
	case MetaList:
		out := make([]any, 0, len(v.List))
		for _, item := range v.List {
			out = append(out, item.ToAny())
		}
		return out
	case MetaNested:
		return v.Map.ToAny()
	default:
		return nil
	}
}

// ToAny converts the map back into plain JSON-encodable types.
func (m MetaMap) ToAny() map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v.ToAny()
	}
	return out
}
