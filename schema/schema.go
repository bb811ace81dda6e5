// Package schema defines the canonical message model that every backend renders.
//
// A Message is an ordered list of Fields. Each Field has an explicit numeric ID
// (its wire ordinal), a TypeRef and an Array shape. TypeRef is a closed sum of
// Primitive, EnumRef and NestedRef; the unexported marker method keeps other
// packages from adding cases, and resolve.Visitor turns the closed set into a
// compile-time obligation for every backend.
//
// Values of this package are plain data. They are assembled by registry.Builder
// and are read-only once the registry has been built.
package schema

import (
	"fmt"
	"math"
)

// Names of the well-known composite types shared by all schemas.
const (
	ByteVectorName = "ByteVector"
	DurationName   = "Duration"
	TimeName       = "Time"
)

// WellKnownNames lists the well-known types in their canonical emission order.
var WellKnownNames = []string{ByteVectorName, DurationName, TimeName}

// IsWellKnownName reports whether name is reserved for a well-known type.
func IsWellKnownName(name string) bool {
	for _, wk := range WellKnownNames {
		if wk == name {
			return true
		}
	}
	return false
}

// PrimitiveKind is the closed set of built-in field types.
type PrimitiveKind int

const (
	KindString PrimitiveKind = iota + 1
	KindFloat64
	KindUint32
	KindBoolean
	KindBytes
	// KindTime and KindDuration are composites of (sec, nsec), defined once per backend.
	KindTime
	KindDuration
)

var kindNames = map[PrimitiveKind]string{
	KindString:   "string",
	KindFloat64:  "float64",
	KindUint32:   "uint32",
	KindBoolean:  "boolean",
	KindBytes:    "bytes",
	KindTime:     "time",
	KindDuration: "duration",
}

func (k PrimitiveKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("PrimitiveKind(%d)", int(k))
}

// Valid reports whether k is one of the declared kinds.
func (k PrimitiveKind) Valid() bool {
	_, ok := kindNames[k]
	return ok
}

// IsComposite reports whether k is one of the well-known (sec, nsec) composites.
func (k PrimitiveKind) IsComposite() bool {
	return k == KindTime || k == KindDuration
}

// TypeRef is the declared type of a field.
type TypeRef interface {
	fmt.Stringer
	typeRef()
}

// Primitive references a built-in kind.
type Primitive struct {
	Kind PrimitiveKind
}

// EnumRef references an enum by name.
type EnumRef struct {
	Name string
}

// NestedRef references a message by name; the message is embedded by value.
type NestedRef struct {
	Name string
}

func (Primitive) typeRef() {}
func (EnumRef) typeRef()   {}
func (NestedRef) typeRef() {}

func (p Primitive) String() string { return p.Kind.String() }
func (e EnumRef) String() string   { return "enum " + e.Name }
func (n NestedRef) String() string { return "message " + n.Name }

// Shorthands for the primitive type references.
var (
	String   TypeRef = Primitive{Kind: KindString}
	Float64  TypeRef = Primitive{Kind: KindFloat64}
	Uint32   TypeRef = Primitive{Kind: KindUint32}
	Boolean  TypeRef = Primitive{Kind: KindBoolean}
	Bytes    TypeRef = Primitive{Kind: KindBytes}
	Time     TypeRef = Primitive{Kind: KindTime}
	Duration TypeRef = Primitive{Kind: KindDuration}
)

// Nested returns a reference to the message called name.
func Nested(name string) TypeRef { return NestedRef{Name: name} }

// EnumOf returns a reference to the enum called name.
func EnumOf(name string) TypeRef { return EnumRef{Name: name} }

// ArrayKind distinguishes scalar fields from variable and fixed-length arrays.
type ArrayKind int

const (
	ArrayNone ArrayKind = iota
	ArrayVariable
	ArrayFixed
)

// Array is the array shape of a field. Length is only meaningful for ArrayFixed.
type Array struct {
	Kind   ArrayKind
	Length int
}

// Scalar is the zero Array.
var Scalar = Array{}

// VariableArray returns the shape of an unbounded sequence.
func VariableArray() Array { return Array{Kind: ArrayVariable} }

// FixedArray returns the shape of a sequence of exactly n elements.
func FixedArray(n int) Array { return Array{Kind: ArrayFixed, Length: n} }

// IsArray reports whether the field holds a sequence.
func (a Array) IsArray() bool { return a.Kind != ArrayNone }

func (a Array) String() string {
	switch a.Kind {
	case ArrayVariable:
		return "[]"
	case ArrayFixed:
		return fmt.Sprintf("[%d]", a.Length)
	default:
		return ""
	}
}

// Field is one member of a message.
type Field struct {
	Name        string
	Description string
	// ID is the stable wire ordinal. It doubles as the Protobuf field number.
	ID    int
	Type  TypeRef
	Array Array
	// Default optionally overrides the canonical default of a scalar string,
	// float64, uint32 or boolean field. Its dynamic type must match the kind.
	Default interface{}
}

// Message is a structured message schema.
type Message struct {
	Name        string
	Description string
	// RosEquivalent names a pre-existing ROS type (e.g. "geometry_msgs/Pose").
	// ROS generation is skipped for such messages and references render as that type.
	RosEquivalent string
	Fields        []Field
}

// IDsContiguous reports whether the field IDs form the range 1..len(Fields).
func (m *Message) IDsContiguous() bool {
	seen := make(map[int]bool, len(m.Fields))
	for _, f := range m.Fields {
		if f.ID < 1 || f.ID > len(m.Fields) || seen[f.ID] {
			return false
		}
		seen[f.ID] = true
	}
	return true
}

// EnumValue is one named numeric code of an enum.
type EnumValue struct {
	Name        string
	Value       uint32
	Description string
}

// Enum is an enumeration schema. Values keep declaration order, which is also
// the order used to pick the default (the first value).
type Enum struct {
	Name        string
	Description string
	// Parent is the name of the owning message, if any. Formats with nested
	// enum declarations emit the enum inside that message's file.
	Parent string
	Values []EnumValue
}

// MaxEnumValue is the largest code every target can represent (Protobuf enums are int32).
const MaxEnumValue = math.MaxInt32

// First returns the first declared value. Enums are never empty once registered.
func (e *Enum) First() EnumValue {
	return e.Values[0]
}

// MaxValue returns the largest declared code.
func (e *Enum) MaxValue() uint32 {
	var largest uint32
	for _, v := range e.Values {
		if v.Value > largest {
			largest = v.Value
		}
	}
	return largest
}

// HasZero reports whether some value uses code 0.
func (e *Enum) HasZero() bool {
	for _, v := range e.Values {
		if v.Value == 0 {
			return true
		}
	}
	return false
}

// Width is the number of bits of the smallest unsigned integer type that holds
// every code of an enum.
type Width int

const (
	Width8  Width = 8
	Width16 Width = 16
	Width32 Width = 32
)

// widthTable is ordered from narrowest to widest; the first entry whose max
// covers the enum's largest code wins.
var widthTable = []struct {
	width Width
	max   uint64
}{
	{Width8, math.MaxUint8},
	{Width16, math.MaxUint16},
	{Width32, math.MaxUint32},
}

// Width returns the backing integer width for the enum.
// Codes up to 255 fit 8 bits, up to 65535 fit 16 bits, anything else 32 bits.
func (e *Enum) Width() Width {
	largest := uint64(e.MaxValue())
	for _, w := range widthTable {
		if largest <= w.max {
			return w.width
		}
	}
	return Width32
}
