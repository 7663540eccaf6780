// Package devtools holds the dev-editor patch pipeline: transient style
// overrides on live component instances, a reversible patch history, and
// the machinery to map a committed patch back onto source files.
package devtools

import "encoding/json"

// Handle identifies a live component instance. The teacher's runtime
// addresses components by a UUID-backed node handle; here it's just the
// string form, since devtools only ever treats it as an opaque key.
type Handle string

// Mode is the active dev-editor interaction mode.
type Mode int

const (
	ModeInspect Mode = iota
	ModeEdit
	ModeSimulate
	ModeMeasure
)

func (m Mode) String() string {
	switch m {
	case ModeInspect:
		return "inspect"
	case ModeEdit:
		return "edit"
	case ModeSimulate:
		return "simulate"
	case ModeMeasure:
		return "measure"
	default:
		return "unknown"
	}
}

// ValueKind discriminates a StyleValue's variant.
type ValueKind int

const (
	ValueColor ValueKind = iota
	ValueNumber
	ValueString
	ValueBool
	ValueToken
	ValueEnum
	ValueUnset
)

// StyleValue is a single style override value. Exactly one field is
// meaningful for a given Kind.
type StyleValue struct {
	Kind   ValueKind
	Color  string
	Number float64
	Unit   string
	Str    string
	Bool   bool
	Token  string
	Enum   string
}

func ColorValue(hex string) StyleValue           { return StyleValue{Kind: ValueColor, Color: hex} }
func NumberValue(v float64) StyleValue            { return StyleValue{Kind: ValueNumber, Number: v} }
func NumberValueWithUnit(v float64, unit string) StyleValue {
	return StyleValue{Kind: ValueNumber, Number: v, Unit: unit}
}
func StringValue(s string) StyleValue { return StyleValue{Kind: ValueString, Str: s} }
func BoolValue(b bool) StyleValue     { return StyleValue{Kind: ValueBool, Bool: b} }
func TokenValue(path string) StyleValue { return StyleValue{Kind: ValueToken, Token: path} }
func EnumValue(e string) StyleValue   { return StyleValue{Kind: ValueEnum, Enum: e} }
func UnsetValue() StyleValue          { return StyleValue{Kind: ValueUnset} }

// JSON renders the value the way the source-patcher and JSON export need
// it: the bare value, not the discriminated-union shape.
func (v StyleValue) JSON() json.RawMessage {
	var out []byte
	switch v.Kind {
	case ValueColor:
		out, _ = json.Marshal(v.Color)
	case ValueNumber:
		if v.Unit != "" {
			out, _ = json.Marshal(formatNumberUnit(v.Number, v.Unit))
		} else {
			out, _ = json.Marshal(v.Number)
		}
	case ValueString:
		out, _ = json.Marshal(v.Str)
	case ValueBool:
		out, _ = json.Marshal(v.Bool)
	case ValueToken:
		out, _ = json.Marshal(map[string]string{"token": v.Token})
	case ValueEnum:
		out, _ = json.Marshal(v.Enum)
	case ValueUnset:
		out = []byte("null")
	}
	return out
}

func formatNumberUnit(value float64, unit string) string {
	return trimTrailingZeros(value) + unit
}

// Source formats a value the way it would be written back into source
// text: strings/colors/tokens carry quote/sigil decoration.
func (v StyleValue) Source() string {
	switch v.Kind {
	case ValueColor:
		return `"` + v.Color + `"`
	case ValueNumber:
		if v.Unit != "" {
			return trimTrailingZeros(v.Number) + v.Unit
		}
		return trimTrailingZeros(v.Number)
	case ValueString:
		return `"` + v.Str + `"`
	case ValueBool:
		if v.Bool {
			return "true"
		}
		return "false"
	case ValueToken:
		return "$" + v.Token
	case ValueEnum:
		return v.Enum
	default:
		return ""
	}
}

// Overrides is a per-handle, per-property table of transient style
// changes. Nil-safe except for construction; use NewOverrides.
type Overrides struct {
	byHandle map[Handle]map[string]StyleValue
}

// NewOverrides returns an empty override table.
func NewOverrides() *Overrides {
	return &Overrides{byHandle: make(map[Handle]map[string]StyleValue)}
}

// Set records an override.
func (o *Overrides) Set(handle Handle, property string, value StyleValue) {
	props, ok := o.byHandle[handle]
	if !ok {
		props = make(map[string]StyleValue)
		o.byHandle[handle] = props
	}
	props[property] = value
}

// Get returns the override for a property, if any.
func (o *Overrides) Get(handle Handle, property string) (StyleValue, bool) {
	props, ok := o.byHandle[handle]
	if !ok {
		return StyleValue{}, false
	}
	v, ok := props[property]
	return v, ok
}

// Remove drops a single property override, pruning the handle entry if it
// becomes empty.
func (o *Overrides) Remove(handle Handle, property string) {
	props, ok := o.byHandle[handle]
	if !ok {
		return
	}
	delete(props, property)
	if len(props) == 0 {
		delete(o.byHandle, handle)
	}
}

// HasAny reports whether handle has any overrides at all.
func (o *Overrides) HasAny(handle Handle) bool {
	return len(o.byHandle[handle]) > 0
}

// Clear drops every override.
func (o *Overrides) Clear() {
	o.byHandle = make(map[Handle]map[string]StyleValue)
}

// Count returns the total number of property overrides across all handles.
func (o *Overrides) Count() int {
	n := 0
	for _, props := range o.byHandle {
		n += len(props)
	}
	return n
}

// AllFor returns every override recorded for a handle.
func (o *Overrides) AllFor(handle Handle) map[string]StyleValue {
	return o.byHandle[handle]
}

// PendingChange is a not-yet-committed override.
type PendingChange struct {
	Handle   Handle
	Property string
	Value    StyleValue
}
