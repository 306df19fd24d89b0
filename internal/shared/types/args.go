package types

import "strconv"

// Value is a coerced argument tagged with its declared type
type Value struct {
	Kind ParamType
	Str  string
	Int  int
}

// StringValue wraps free text
func StringValue(s string) Value {
	return Value{Kind: ParamString, Str: s}
}

// IntValue wraps an integer
func IntValue(n int) Value {
	return Value{Kind: ParamInteger, Int: n}
}

// PathValue wraps a path without a fallback
func PathValue(p string) Value {
	return Value{Kind: ParamPath, Str: p}
}

// DirectoryValue wraps a directory path
func DirectoryValue(p string) Value {
	return Value{Kind: ParamDirectory, Str: p}
}

// Interface returns the plain Go value for serialization
func (v Value) Interface() interface{} {
	if v.Kind == ParamInteger {
		return v.Int
	}
	return v.Str
}

// String renders the value for logs
func (v Value) String() string {
	if v.Kind == ParamInteger {
		return strconv.Itoa(v.Int)
	}
	return v.Str
}

// Arguments is the coerced argument bag passed to providers
type Arguments map[string]Value

// String returns a string-like argument, or "" when absent
func (a Arguments) String(name string) string {
	return a[name].Str
}

// Int returns an integer argument, or 0 when absent
func (a Arguments) Int(name string) int {
	return a[name].Int
}

// Has reports whether the argument was supplied or defaulted
func (a Arguments) Has(name string) bool {
	_, ok := a[name]
	return ok
}

// Map converts the bag back into plain values
func (a Arguments) Map() map[string]interface{} {
	out := make(map[string]interface{}, len(a))
	for k, v := range a {
		out[k] = v.Interface()
	}
	return out
}
