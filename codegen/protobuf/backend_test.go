package protobuf

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/schemagen/codegen"
	"github.com/teranos/schemagen/codegen/codegentest"
	"github.com/teranos/schemagen/registry"
	"github.com/teranos/schemagen/schema"
)

func newBackend(t *testing.T, extra ...func(*registry.Builder)) (*Backend, *registry.Registry) {
	t.Helper()
	b := registry.NewBuilder().
		AddEnum(codegentest.ExampleEnum).
		AddMessage(codegentest.NestedMessage).
		AddMessage(codegentest.ExampleMessage)
	for _, fn := range extra {
		fn(b)
	}
	reg, err := b.Build()
	require.NoError(t, err)
	return New(reg, codegen.DefaultOptions()), reg
}

func TestRenderNestedMessage(t *testing.T) {
	b, reg := newBackend(t)

	out, err := b.RenderMessage(codegentest.Message(t, reg, "NestedMessage"))
	require.NoError(t, err)
	assert.Equal(t, `// Generated by https://github.com/foxglove/foxglove-sdk

syntax = "proto3";

package foxglove;

// An example nested message
message NestedMessage {
  // An enum field
  uint32 field_enum = 1;
}
`, out)
}

func TestRenderExampleMessage(t *testing.T) {
	b, reg := newBackend(t)

	out, err := b.RenderMessage(codegentest.Message(t, reg, "ExampleMessage"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, `// Generated by https://github.com/foxglove/foxglove-sdk

syntax = "proto3";

import "foxglove/NestedMessage.proto";
import "google/protobuf/duration.proto";
import "google/protobuf/timestamp.proto";

package foxglove;

// An example type
message ExampleMessage {
  // An example enum
  enum ExampleEnum {
    // Value A
    A = 0;

    // Value B
    B = 1;
  }
  // duration field
  google.protobuf.Duration field_duration = 1;

  // time field
  google.protobuf.Timestamp field_time = 2;
`), out)

	assert.Contains(t, out, "  // bytes array field\n  repeated bytes field_bytes_array = 11;\n")
	assert.Contains(t, out, "  // float64 fixed-length array field\n  // length 3\n  repeated double field_float64_fixed_array = 19;\n")
	assert.Contains(t, out, "  // An enum field\n  ExampleEnum field_enum = 22;\n")
	assert.Contains(t, out, "  repeated foxglove.NestedMessage field_nested_array = 25;\n}\n")
	assert.Contains(t, out, "  // A nested array field\n  // With\n  // a\n")
}

func TestFieldNumbersAreIDs(t *testing.T) {
	b, reg := newBackend(t, func(rb *registry.Builder) {
		rb.AddMessage(schema.Message{Name: "Sparse", Fields: []schema.Field{
			{Name: "late", ID: 40, Type: schema.String},
			{Name: "early", ID: 2, Type: schema.Float64},
		}})
	})
	msg := codegentest.Message(t, reg, "Sparse")

	out, err := b.RenderMessage(msg)
	require.NoError(t, err)
	assert.Contains(t, out, "string late = 40;")
	assert.Contains(t, out, "double early = 2;")

	md, err := b.MessageDescriptor(msg)
	require.NoError(t, err)
	assert.EqualValues(t, 40, md.Fields().ByName("late").Number())
	assert.EqualValues(t, 2, md.Fields().ByName("early").Number())
	require.NoError(t, b.VerifyMessage(msg, out))
}

func TestEnumWithoutZeroGetsUnspecified(t *testing.T) {
	b, reg := newBackend(t, func(rb *registry.Builder) {
		rb.AddEnum(schema.Enum{Name: "SeverityLevel", Values: []schema.EnumValue{
			{Name: "HIGH", Value: 3}, {Name: "LOW", Value: 1},
		}})
	})
	e, _ := reg.Enum("SeverityLevel")

	out, err := b.RenderEnum(e)
	require.NoError(t, err)
	assert.Equal(t, `// Generated by https://github.com/foxglove/foxglove-sdk

syntax = "proto3";

package foxglove;

enum SeverityLevel {
  SEVERITY_LEVEL_UNSPECIFIED = 0;

  HIGH = 3;

  LOW = 1;
}
`, out)
}

func TestZeroValueMovesFirst(t *testing.T) {
	values := enumValues(&schema.Enum{Name: "E", Values: []schema.EnumValue{
		{Name: "ON", Value: 1}, {Name: "OFF", Value: 0},
	}})
	require.Len(t, values, 2)
	assert.Equal(t, "OFF", values[0].Name)
	assert.Equal(t, "ON", values[1].Name)
}

func TestCrossMessageEnumReference(t *testing.T) {
	b, reg := newBackend(t, func(rb *registry.Builder) {
		rb.AddMessage(schema.Message{Name: "Other", Fields: []schema.Field{
			{Name: "mode", ID: 1, Type: schema.EnumOf("ExampleEnum")},
		}})
	})
	msg := codegentest.Message(t, reg, "Other")

	out, err := b.RenderMessage(msg)
	require.NoError(t, err)
	assert.Contains(t, out, `import "foxglove/ExampleMessage.proto";`)
	assert.Contains(t, out, "foxglove.ExampleMessage.ExampleEnum mode = 1;")

	set, err := b.FileDescriptorSet(msg)
	require.NoError(t, err)
	var names []string
	for _, f := range set.File {
		names = append(names, f.GetName())
	}
	assert.Equal(t, []string{
		"foxglove/NestedMessage.proto",
		"google/protobuf/duration.proto",
		"google/protobuf/timestamp.proto",
		"foxglove/ExampleMessage.proto",
		"foxglove/Other.proto",
	}, names)
	require.NoError(t, b.VerifyMessage(msg, out))
}

func TestVerifyEveryMessage(t *testing.T) {
	b, reg := newBackend(t)
	for _, msg := range reg.Messages() {
		out, err := b.RenderMessage(msg)
		require.NoError(t, err)
		assert.NoError(t, b.VerifyMessage(msg, out), msg.Name)

		data, err := b.MarshalFileDescriptorSet(msg)
		require.NoError(t, err)
		assert.NotEmpty(t, data)
	}

	msg := codegentest.Message(t, reg, "NestedMessage")
	assert.Error(t, b.VerifyMessage(msg, "message Other {}"))
}

func TestRenderArrayAndDefault(t *testing.T) {
	b, _ := newBackend(t)

	assert.Equal(t, codegen.ArrayDecl{Type: "repeated double"}, b.RenderArray("double", schema.VariableArray()))
	assert.Equal(t, codegen.ArrayDecl{Type: "repeated double", Note: "length 4"}, b.RenderArray("double", schema.FixedArray(4)))

	_, ok := b.RenderDefault(&codegentest.ExampleMessage.Fields[2])
	assert.False(t, ok)
}
