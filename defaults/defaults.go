// Package defaults is the single table of canonical field defaults.
//
//	kind            scalar                 array
//	string          empty string           empty sequence
//	float64/uint32  0                      empty sequence
//	boolean         false                  empty sequence
//	bytes           empty byte sequence    empty sequence
//	time/duration   absent                 empty sequence
//	nested message  absent                 empty sequence
//	enum            first declared value   empty sequence
//
// An explicit schema.Field.Default replaces the scalar entry. Backends only
// format the Value they get from For; none of them decides a default itself.
package defaults

import (
	"github.com/teranos/schemagen/resolve"
	"github.com/teranos/schemagen/schema"
)

// Kind classifies a default value.
type Kind int

const (
	// Absent means the field has no default value.
	Absent Kind = iota
	String
	Integer
	Float
	Boolean
	Bytes
	EmptySequence
	EnumMember
)

// Value is a canonical default.
type Value struct {
	Kind Kind
	// Explicit is set when the value comes from the schema rather than the table.
	Explicit bool

	String  string
	Integer uint64
	Float   float64
	Boolean bool
	Enum    *schema.Enum
	Member  schema.EnumValue
}

// IsZero reports whether v is the table default of its kind (false for enum
// members that are not code 0 and for every explicit non-zero value).
func (v Value) IsZero() bool {
	switch v.Kind {
	case String:
		return v.String == ""
	case Integer:
		return v.Integer == 0
	case Float:
		return v.Float == 0
	case Boolean:
		return !v.Boolean
	case EnumMember:
		return v.Member.Value == 0
	default:
		return true
	}
}

var scalarTable = map[schema.PrimitiveKind]Value{
	schema.KindString:   {Kind: String},
	schema.KindFloat64:  {Kind: Float},
	schema.KindUint32:   {Kind: Integer},
	schema.KindBoolean:  {Kind: Boolean},
	schema.KindBytes:    {Kind: Bytes},
	schema.KindTime:     {Kind: Absent},
	schema.KindDuration: {Kind: Absent},
}

var arrayDefault = Value{Kind: EmptySequence}

// tableLookup is the resolve.Visitor for scalar fields.
type tableLookup struct{}

func (tableLookup) Primitive(kind schema.PrimitiveKind) Value { return scalarTable[kind] }
func (tableLookup) Nested(*schema.Message) Value              { return Value{Kind: Absent} }
func (tableLookup) Enum(e *schema.Enum) Value {
	return Value{Kind: EnumMember, Enum: e, Member: e.First()}
}

// For returns the default of f, whose type resolved to res.
func For(f *schema.Field, res resolve.Resolved) Value {
	if f.Array.IsArray() {
		return arrayDefault
	}
	if v, ok := explicit(f); ok {
		return v
	}
	return resolve.Visit[Value](res, tableLookup{})
}

func explicit(f *schema.Field) (Value, bool) {
	switch d := f.Default.(type) {
	case string:
		return Value{Kind: String, String: d, Explicit: true}, true
	case float64:
		return Value{Kind: Float, Float: d, Explicit: true}, true
	case uint32:
		return Value{Kind: Integer, Integer: uint64(d), Explicit: true}, true
	case bool:
		return Value{Kind: Boolean, Boolean: d, Explicit: true}, true
	}
	return Value{}, false
}
