// Package codegentest provides the registry fixture shared by backend tests.
package codegentest

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/teranos/schemagen/registry"
	"github.com/teranos/schemagen/schema"
)

// ExampleEnum is owned by ExampleMessage.
var ExampleEnum = schema.Enum{
	Name:        "ExampleEnum",
	Description: "An example enum",
	Parent:      "ExampleMessage",
	Values: []schema.EnumValue{
		{Name: "A", Value: 0, Description: "Value A"},
		{Name: "B", Value: 1, Description: "Value B"},
	},
}

// NestedMessage is referenced by ExampleMessage as a scalar and as an array.
var NestedMessage = schema.Message{
	Name:        "NestedMessage",
	Description: "An example nested message",
	Fields: []schema.Field{
		{Name: "field_enum", ID: 1, Description: "An enum field", Type: schema.Uint32},
	},
}

// ExampleMessage has one field of every kind and shape.
var ExampleMessage = schema.Message{
	Name:        "ExampleMessage",
	Description: "An example type",
	Fields:      exampleFields(),
}

func exampleFields() []schema.Field {
	type primitive struct {
		name  string
		ref   schema.TypeRef
		value interface{}
	}
	primitives := []primitive{
		{"duration", schema.Duration, nil},
		{"time", schema.Time, nil},
		{"boolean", schema.Boolean, true},
		{"bytes", schema.Bytes, nil},
		{"float64", schema.Float64, 1.0},
		{"uint32", schema.Uint32, uint32(5)},
		{"string", schema.String, "string-type"},
	}

	var fields []schema.Field
	add := func(f schema.Field) {
		f.ID = len(fields) + 1
		fields = append(fields, f)
	}
	for _, p := range primitives {
		add(schema.Field{Name: "field_" + p.name, Description: p.name + " field", Type: p.ref, Default: p.value})
	}
	for _, p := range primitives {
		add(schema.Field{Name: "field_" + p.name + "_array", Description: p.name + " array field",
			Type: p.ref, Array: schema.VariableArray()})
	}
	for _, p := range primitives {
		add(schema.Field{Name: "field_" + p.name + "_fixed_array", Description: p.name + " fixed-length array field",
			Type: p.ref, Array: schema.FixedArray(3)})
	}
	add(schema.Field{Name: "field_enum", Description: "An enum field", Type: schema.EnumOf("ExampleEnum")})
	add(schema.Field{Name: "field_enum_array", Description: "An enum array field",
		Type: schema.EnumOf("ExampleEnum"), Array: schema.VariableArray()})
	add(schema.Field{Name: "field_nested", Description: "A nested field", Type: schema.Nested("NestedMessage")})
	add(schema.Field{Name: "field_nested_array", Description: "A nested array field\nWith\na\nvery\nlong\ndescription",
		Type: schema.Nested("NestedMessage"), Array: schema.VariableArray()})
	return fields
}

// ExampleRegistry builds a registry of ExampleMessage and its dependencies.
func ExampleRegistry(t testing.TB) *registry.Registry {
	t.Helper()
	reg, err := registry.NewBuilder().
		AddEnum(ExampleEnum).
		AddMessage(NestedMessage).
		AddMessage(ExampleMessage).
		Build()
	require.NoError(t, err)
	return reg
}

// Message returns the registered message called name.
func Message(t testing.TB, reg *registry.Registry, name string) *schema.Message {
	t.Helper()
	msg, ok := reg.Message(name)
	require.True(t, ok, "message %s not registered", name)
	return msg
}
