package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/schemagen/errors"
	"github.com/teranos/schemagen/resolve"
	"github.com/teranos/schemagen/schema"
)

func lineTypeEnum() schema.Enum {
	return schema.Enum{
		Name:        "LineType",
		Description: "An enumeration indicating how input points should be interpreted to create lines",
		Parent:      "LinePrimitive",
		Values: []schema.EnumValue{
			{Name: "LINE_STRIP", Value: 0, Description: "Connected line segments"},
			{Name: "LINE_LOOP", Value: 1, Description: "Closed polygon"},
			{Name: "LINE_LIST", Value: 2, Description: "Individual line segments"},
		},
	}
}

func validBuilder() *Builder {
	return NewBuilder().
		AddMessage(schema.Message{
			Name: "Point3",
			Fields: []schema.Field{
				{Name: "x", ID: 1, Type: schema.Float64},
				{Name: "y", ID: 2, Type: schema.Float64},
				{Name: "z", ID: 3, Type: schema.Float64},
			},
		}).
		AddMessage(schema.Message{
			Name: "LinePrimitive",
			Fields: []schema.Field{
				{Name: "type", ID: 1, Type: schema.EnumOf("LineType")},
				{Name: "points", ID: 2, Type: schema.Nested("Point3"), Array: schema.VariableArray()},
				{Name: "thickness", ID: 3, Type: schema.Float64, Default: 1.0},
			},
		}).
		AddEnum(lineTypeEnum())
}

func TestBuildValid(t *testing.T) {
	reg, err := validBuilder().Build()
	require.NoError(t, err)

	assert.Equal(t, 3, reg.Len())

	names := []string{}
	for _, m := range reg.Messages() {
		names = append(names, m.Name)
	}
	assert.Equal(t, []string{"LinePrimitive", "Point3"}, names)

	enums := reg.EnumsOf("LinePrimitive")
	require.Len(t, enums, 1)
	assert.Equal(t, "LineType", enums[0].Name)
	assert.Empty(t, reg.StandaloneEnums())

	_, ok := reg.Message("Point3")
	assert.True(t, ok)
	_, ok = reg.Enum("Point3")
	assert.False(t, ok)
}

func TestBuildIsOneShot(t *testing.T) {
	b := validBuilder()
	_, err := b.Build()
	require.NoError(t, err)

	_, err = b.Build()
	assert.Error(t, err)
}

func TestRegistryIsDetachedFromBuilderInput(t *testing.T) {
	fields := []schema.Field{{Name: "x", ID: 1, Type: schema.Float64}}
	reg, err := NewBuilder().AddMessage(schema.Message{Name: "Vector1", Fields: fields}).Build()
	require.NoError(t, err)

	fields[0].Name = "mutated"

	m, _ := reg.Message("Vector1")
	assert.Equal(t, "x", m.Fields[0].Name)
}

func TestBuildOrderIndependent(t *testing.T) {
	a := NewBuilder().
		AddEnum(lineTypeEnum()).
		AddMessage(schema.Message{Name: "Point3", Fields: []schema.Field{{Name: "x", ID: 1, Type: schema.Float64}}}).
		AddMessage(schema.Message{Name: "LinePrimitive", Fields: []schema.Field{{Name: "type", ID: 1, Type: schema.EnumOf("LineType")}}})
	b := NewBuilder().
		AddMessage(schema.Message{Name: "LinePrimitive", Fields: []schema.Field{{Name: "type", ID: 1, Type: schema.EnumOf("LineType")}}}).
		AddMessage(schema.Message{Name: "Point3", Fields: []schema.Field{{Name: "x", ID: 1, Type: schema.Float64}}}).
		AddEnum(lineTypeEnum())

	regA, err := a.Build()
	require.NoError(t, err)
	regB, err := b.Build()
	require.NoError(t, err)

	assert.Equal(t, regA.Messages(), regB.Messages())
	assert.Equal(t, regA.Enums(), regB.Enums())
}

func TestBuildRejects(t *testing.T) {
	tests := []struct {
		name     string
		builder  func() *Builder
		sentinel error
		contains string
	}{
		{
			name: "duplicate field id",
			builder: func() *Builder {
				return NewBuilder().AddMessage(schema.Message{Name: "A", Fields: []schema.Field{
					{Name: "x", ID: 1, Type: schema.Float64},
					{Name: "y", ID: 1, Type: schema.Float64},
				}})
			},
			sentinel: errors.ErrDuplicateFieldID,
			contains: `field id 1 used by "x" and "y"`,
		},
		{
			name: "duplicate enum code",
			builder: func() *Builder {
				return NewBuilder().AddEnum(schema.Enum{Name: "E", Values: []schema.EnumValue{
					{Name: "A", Value: 1}, {Name: "B", Value: 1},
				}})
			},
			sentinel: errors.ErrDuplicateEnumValue,
			contains: "code 1 used by A and B",
		},
		{
			name: "duplicate schema name across kinds",
			builder: func() *Builder {
				return NewBuilder().
					AddMessage(schema.Message{Name: "Color"}).
					AddEnum(schema.Enum{Name: "Color", Values: []schema.EnumValue{{Name: "RED"}}})
			},
			sentinel: errors.ErrDuplicateSchema,
			contains: `enum "Color" already declared as message`,
		},
		{
			name: "reserved well-known name",
			builder: func() *Builder {
				return NewBuilder().AddMessage(schema.Message{Name: "Time"})
			},
			sentinel: errors.ErrDuplicateSchema,
			contains: "reserved",
		},
		{
			name: "unresolved nested reference",
			builder: func() *Builder {
				return NewBuilder().AddMessage(schema.Message{Name: "A", Fields: []schema.Field{
					{Name: "pose", ID: 1, Type: schema.Nested("Pose")},
				}})
			},
			sentinel: errors.ErrUnresolvedReference,
			contains: `unknown message "Pose"`,
		},
		{
			name: "unresolved enum reference",
			builder: func() *Builder {
				return NewBuilder().AddMessage(schema.Message{Name: "A", Fields: []schema.Field{
					{Name: "level", ID: 1, Type: schema.EnumOf("LogLevel")},
				}})
			},
			sentinel: errors.ErrUnresolvedReference,
			contains: `unknown enum "LogLevel"`,
		},
		{
			name: "unknown enum parent",
			builder: func() *Builder {
				return NewBuilder().AddEnum(schema.Enum{Name: "E", Parent: "Missing", Values: []schema.EnumValue{{Name: "A"}}})
			},
			sentinel: errors.ErrUnresolvedReference,
			contains: `parent message "Missing"`,
		},
		{
			name: "empty enum",
			builder: func() *Builder {
				return NewBuilder().AddEnum(schema.Enum{Name: "E"})
			},
			sentinel: errors.ErrInvalidSchema,
			contains: "no values",
		},
		{
			name: "zero field id",
			builder: func() *Builder {
				return NewBuilder().AddMessage(schema.Message{Name: "A", Fields: []schema.Field{{Name: "x", ID: 0, Type: schema.Float64}}})
			},
			sentinel: errors.ErrInvalidSchema,
			contains: "outside 1..",
		},
		{
			name: "reserved field id",
			builder: func() *Builder {
				return NewBuilder().AddMessage(schema.Message{Name: "A", Fields: []schema.Field{{Name: "x", ID: 19500, Type: schema.Float64}}})
			},
			sentinel: errors.ErrInvalidSchema,
			contains: "reserved range",
		},
		{
			name: "zero length fixed array",
			builder: func() *Builder {
				return NewBuilder().AddMessage(schema.Message{Name: "A", Fields: []schema.Field{
					{Name: "x", ID: 1, Type: schema.Float64, Array: schema.FixedArray(0)},
				}})
			},
			sentinel: errors.ErrInvalidSchema,
			contains: "fixed length 0",
		},
		{
			name: "mistyped default",
			builder: func() *Builder {
				return NewBuilder().AddMessage(schema.Message{Name: "A", Fields: []schema.Field{
					{Name: "x", ID: 1, Type: schema.Uint32, Default: 3},
				}})
			},
			sentinel: errors.ErrInvalidSchema,
			contains: "does not match kind uint32",
		},
		{
			name: "default on array",
			builder: func() *Builder {
				return NewBuilder().AddMessage(schema.Message{Name: "A", Fields: []schema.Field{
					{Name: "x", ID: 1, Type: schema.String, Array: schema.VariableArray(), Default: "a"},
				}})
			},
			sentinel: errors.ErrInvalidSchema,
			contains: "scalar primitive",
		},
		{
			name: "standalone enums share a value name",
			builder: func() *Builder {
				return NewBuilder().
					AddEnum(schema.Enum{Name: "ColorMode", Values: []schema.EnumValue{{Name: "UNKNOWN", Value: 0}, {Name: "RGB", Value: 1}}}).
					AddEnum(schema.Enum{Name: "ShapeKind", Values: []schema.EnumValue{{Name: "UNKNOWN", Value: 0}, {Name: "BOX", Value: 1}}}).
					AddMessage(schema.Message{Name: "Thing", Fields: []schema.Field{
						{Name: "color", ID: 1, Type: schema.EnumOf("ColorMode")},
						{Name: "shape", ID: 2, Type: schema.EnumOf("ShapeKind")},
					}})
			},
			sentinel: errors.ErrDuplicateEnumValue,
			contains: "value UNKNOWN of enum ShapeKind collides with enum ColorMode in the package",
		},
		{
			name: "enums of one parent share a value name",
			builder: func() *Builder {
				return NewBuilder().
					AddEnum(schema.Enum{Name: "Fill", Parent: "Shape", Values: []schema.EnumValue{{Name: "NONE", Value: 0}}}).
					AddEnum(schema.Enum{Name: "Stroke", Parent: "Shape", Values: []schema.EnumValue{{Name: "NONE", Value: 0}}}).
					AddMessage(schema.Message{Name: "Shape", Fields: []schema.Field{{Name: "size", ID: 1, Type: schema.Float64}}})
			},
			sentinel: errors.ErrDuplicateEnumValue,
			contains: "value NONE of enum Stroke collides with enum Fill in message Shape",
		},
		{
			name: "enum value shadows a field of its parent",
			builder: func() *Builder {
				return NewBuilder().
					AddEnum(schema.Enum{Name: "Mode", Parent: "Lamp", Values: []schema.EnumValue{{Name: "on", Value: 0}}}).
					AddMessage(schema.Message{Name: "Lamp", Fields: []schema.Field{{Name: "on", ID: 1, Type: schema.Boolean}}})
			},
			sentinel: errors.ErrDuplicateEnumValue,
			contains: "collides with field on in message Lamp",
		},
		{
			name: "enums reached through one message share a value name",
			builder: func() *Builder {
				return NewBuilder().
					AddEnum(schema.Enum{Name: "LogLevel", Parent: "Log", Values: []schema.EnumValue{{Name: "UNKNOWN", Value: 0}}}).
					AddEnum(schema.Enum{Name: "NumericType", Parent: "Packed", Values: []schema.EnumValue{{Name: "UNKNOWN", Value: 0}}}).
					AddMessage(schema.Message{Name: "Log", Fields: []schema.Field{{Name: "level", ID: 1, Type: schema.EnumOf("LogLevel")}}}).
					AddMessage(schema.Message{Name: "Packed", Fields: []schema.Field{{Name: "type", ID: 1, Type: schema.EnumOf("NumericType")}}}).
					AddMessage(schema.Message{Name: "Bundle", Fields: []schema.Field{
						{Name: "log", ID: 1, Type: schema.Nested("Log")},
						{Name: "packed", ID: 2, Type: schema.Nested("Packed")},
					}})
			},
			sentinel: errors.ErrDuplicateEnumValue,
			contains: "value UNKNOWN of enum NumericType collides with enum LogLevel in message Bundle",
		},
		{
			name: "value takes the synthesized zero name",
			builder: func() *Builder {
				return NewBuilder().AddEnum(schema.Enum{Name: "ExampleEnum", Values: []schema.EnumValue{
					{Name: "EXAMPLE_ENUM_UNSPECIFIED", Value: 3}, {Name: "B", Value: 1},
				}})
			},
			sentinel: errors.ErrDuplicateEnumValue,
			contains: "EXAMPLE_ENUM_UNSPECIFIED has no code 0",
		},
		{
			name: "lowercase schema name",
			builder: func() *Builder {
				return NewBuilder().AddMessage(schema.Message{Name: "pose"})
			},
			sentinel: errors.ErrInvalidSchema,
			contains: "PascalCase",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg, err := tt.builder().Build()
			require.Error(t, err)
			assert.Nil(t, reg)
			assert.True(t, errors.Is(err, tt.sentinel), "expected %v in %v", tt.sentinel, err)
			assert.True(t, errors.IsValidationError(err))
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestEnumValueNamesMayRepeatAcrossSeparateScopes(t *testing.T) {
	reg, err := NewBuilder().
		AddEnum(schema.Enum{Name: "LogLevel", Parent: "Log", Values: []schema.EnumValue{{Name: "UNKNOWN", Value: 0}}}).
		AddEnum(schema.Enum{Name: "NumericType", Parent: "Packed", Values: []schema.EnumValue{{Name: "UNKNOWN", Value: 0}}}).
		AddEnum(schema.Enum{Name: "Level", Values: []schema.EnumValue{{Name: "LEVEL_UNSPECIFIED", Value: 0}}}).
		AddMessage(schema.Message{Name: "Log", Fields: []schema.Field{
			{Name: "level", ID: 1, Type: schema.EnumOf("LogLevel")},
			{Name: "same", ID: 2, Type: schema.EnumOf("LogLevel"), Array: schema.VariableArray()},
		}}).
		AddMessage(schema.Message{Name: "Packed", Fields: []schema.Field{{Name: "type", ID: 1, Type: schema.EnumOf("NumericType")}}}).
		Build()
	require.NoError(t, err)
	assert.Len(t, reg.Enums(), 3)
}

func TestBuildReportsEveryProblem(t *testing.T) {
	_, err := NewBuilder().
		AddMessage(schema.Message{Name: "A", Fields: []schema.Field{
			{Name: "x", ID: 1, Type: schema.Float64},
			{Name: "y", ID: 1, Type: schema.Nested("Missing")},
		}}).
		AddEnum(schema.Enum{Name: "E", Values: []schema.EnumValue{{Name: "P", Value: 4}, {Name: "Q", Value: 4}}}).
		Build()

	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrDuplicateFieldID))
	assert.True(t, errors.Is(err, errors.ErrUnresolvedReference))
	assert.True(t, errors.Is(err, errors.ErrDuplicateEnumValue))
}

func TestBuildRejectsCycle(t *testing.T) {
	_, err := NewBuilder().
		AddMessage(schema.Message{Name: "A", Fields: []schema.Field{{Name: "b", ID: 1, Type: schema.Nested("B")}}}).
		AddMessage(schema.Message{Name: "B", Fields: []schema.Field{{Name: "a", ID: 1, Type: schema.Nested("A")}}}).
		Build()

	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCycle))
	assert.Contains(t, err.Error(), "A → B → A")

	var cycle *resolve.CycleError
	require.True(t, errors.As(err, &cycle))
	assert.Equal(t, []string{"A", "B", "A"}, cycle.Chain)
}

func TestMustBuildPanics(t *testing.T) {
	assert.Panics(t, func() {
		NewBuilder().AddEnum(schema.Enum{Name: "E"}).MustBuild()
	})
}
