package jsonschema

import (
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/schemagen/codegen"
	"github.com/teranos/schemagen/codegen/codegentest"
	"github.com/teranos/schemagen/registry"
	"github.com/teranos/schemagen/schema"
)

func render(t *testing.T) (string, map[string]interface{}) {
	t.Helper()
	reg := codegentest.ExampleRegistry(t)
	b := New(reg, codegen.DefaultOptions())
	out, err := b.RenderMessage(codegentest.Message(t, reg, "ExampleMessage"))
	require.NoError(t, err)

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	return out, doc
}

func property(t *testing.T, doc map[string]interface{}, path ...string) map[string]interface{} {
	t.Helper()
	cur := doc
	for _, key := range path {
		next, ok := cur[key].(map[string]interface{})
		require.True(t, ok, "missing %s in %v", key, path)
		cur = next
	}
	return cur
}

func TestRenderMessageHeader(t *testing.T) {
	out, _ := render(t)

	assert.True(t, strings.HasPrefix(out, `{
  "$comment": "Generated by https://github.com/foxglove/foxglove-sdk",
  "title": "ExampleMessage",
  "description": "An example type",
  "type": "object",
  "properties": {
    "field_duration": {
      "title": "Duration",
      "description": "duration field",
      "type": "object",
      "properties": {
        "sec": {
          "type": "integer"
        },
        "nsec": {
          "type": "integer"
        }
      }
    },
`), out)
	assert.True(t, strings.HasSuffix(out, "}\n"))
}

func TestPropertiesKeepDeclarationOrder(t *testing.T) {
	out, _ := render(t)

	last := -1
	for _, f := range codegentest.ExampleMessage.Fields {
		idx := strings.Index(out, `"`+f.Name+`": {`)
		require.NotEqual(t, -1, idx, f.Name)
		assert.Greater(t, idx, last, "%s out of order", f.Name)
		last = idx
	}
}

func TestPrimitiveMapping(t *testing.T) {
	_, doc := render(t)

	tests := []struct {
		field    string
		wantType string
	}{
		{"field_string", "string"},
		{"field_bytes", "string"},
		{"field_float64", "number"},
		{"field_uint32", "integer"},
		{"field_boolean", "boolean"},
		{"field_time", "object"},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			p := property(t, doc, "properties", tt.field)
			assert.Equal(t, tt.wantType, p["type"])
		})
	}
	assert.Equal(t, "base64", property(t, doc, "properties", "field_bytes")["contentEncoding"])
	assert.Equal(t, "base64", property(t, doc, "properties", "field_bytes_array", "items")["contentEncoding"])
}

func TestEnumAndArrayDescriptions(t *testing.T) {
	_, doc := render(t)

	enum := property(t, doc, "properties", "field_enum")
	assert.Equal(t, "ExampleEnum: An example enum", enum["title"])
	assert.Equal(t, "An enum field", enum["description"])
	assert.NotContains(t, enum, "type")
	require.Len(t, enum["oneOf"], 2)
	first := enum["oneOf"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, map[string]interface{}{"const": float64(0), "title": "A", "description": "Value A"}, first)

	// Enum array items repeat the field description
	enumItems := property(t, doc, "properties", "field_enum_array", "items")
	assert.Equal(t, "An enum array field", enumItems["description"])
	assert.Equal(t, "An enum array field", property(t, doc, "properties", "field_enum_array")["description"])

	// Nested array items keep the nested schema's own description
	nestedItems := property(t, doc, "properties", "field_nested_array", "items")
	assert.Equal(t, "An example nested message", nestedItems["description"])
	assert.Equal(t, "NestedMessage", nestedItems["title"])

	// A scalar nested field takes the field description
	nested := property(t, doc, "properties", "field_nested")
	assert.Equal(t, "A nested field", nested["description"])
	assert.Equal(t, "Generated by https://github.com/foxglove/foxglove-sdk", nested["$comment"])

	// Primitive items carry no description
	assert.NotContains(t, property(t, doc, "properties", "field_string_array", "items"), "description")
}

func TestFixedArraysAreUnbounded(t *testing.T) {
	_, doc := render(t)

	fixed := property(t, doc, "properties", "field_float64_fixed_array")
	assert.Equal(t, "array", fixed["type"])
	assert.NotContains(t, fixed, "minItems")
	assert.NotContains(t, fixed, "maxItems")
}

func TestRenderIsDeterministic(t *testing.T) {
	first, _ := render(t)
	for i := 0; i < 5; i++ {
		again, _ := render(t)
		require.Equal(t, first, again)
	}
}

func TestVerifyMessage(t *testing.T) {
	reg := codegentest.ExampleRegistry(t)
	b := New(reg, codegen.DefaultOptions())

	for _, msg := range reg.Messages() {
		out, err := b.RenderMessage(msg)
		require.NoError(t, err)
		assert.NoError(t, b.VerifyMessage(msg, out), msg.Name)
	}

	msg := codegentest.Message(t, reg, "ExampleMessage")
	err := b.VerifyMessage(msg, `{"type":"object","properties":{"field_string":{"type":"integer"}}}`)
	assert.Error(t, err)

	err = b.VerifyMessage(msg, `{"type": 12}`)
	assert.Error(t, err)
}

func TestRenderDefaultAndArray(t *testing.T) {
	reg := codegentest.ExampleRegistry(t)
	b := New(reg, codegen.DefaultOptions())
	msg := codegentest.Message(t, reg, "ExampleMessage")

	byName := func(name string) *schema.Field {
		for i := range msg.Fields {
			if msg.Fields[i].Name == name {
				return &msg.Fields[i]
			}
		}
		t.Fatalf("no field %s", name)
		return nil
	}

	lit, ok := b.RenderDefault(byName("field_string"))
	require.True(t, ok)
	assert.Equal(t, `"string-type"`, lit)

	lit, ok = b.RenderDefault(byName("field_enum"))
	require.True(t, ok)
	assert.Equal(t, "0", lit)

	_, ok = b.RenderDefault(byName("field_time"))
	assert.False(t, ok)

	decl := b.RenderArray(`{"type":"number"}`, schema.FixedArray(2))
	assert.JSONEq(t, `{"type":"array","items":{"type":"number"}}`, decl.Type)
}

func TestEnumOnlyRegistry(t *testing.T) {
	reg, err := registry.NewBuilder().
		AddEnum(schema.Enum{Name: "Mode", Values: []schema.EnumValue{{Name: "ON", Value: 1}}}).
		Build()
	require.NoError(t, err)

	out, err := New(reg, codegen.DefaultOptions()).RenderEnum(reg.Enums()[0])
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"Mode","oneOf":[{"const":1,"title":"ON"}]}`, out)
}

func TestEnumArrayItemsRepeatFieldDescription(t *testing.T) {
	reg, err := registry.NewBuilder().
		AddEnum(schema.Enum{Name: "ExampleEnum", Description: "An example enum", Values: []schema.EnumValue{
			{Name: "A", Value: 1, Description: "Value A"},
			{Name: "B", Value: 2, Description: "Value B"},
		}}).
		AddMessage(schema.Message{Name: "Holder", Fields: []schema.Field{
			{Name: "field_enum", ID: 1, Description: "An enum field", Type: schema.EnumOf("ExampleEnum")},
			{Name: "field_enum_array", ID: 2, Description: "An enum array field", Type: schema.EnumOf("ExampleEnum"), Array: schema.VariableArray()},
		}}).
		Build()
	require.NoError(t, err)

	out, err := New(reg, codegen.DefaultOptions()).RenderMessage(codegentest.Message(t, reg, "Holder"))
	require.NoError(t, err)
	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))

	oneOf := `[
		{"const": 1, "title": "A", "description": "Value A"},
		{"const": 2, "title": "B", "description": "Value B"}
	]`
	scalar, err := json.Marshal(property(t, doc, "properties", "field_enum"))
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"title": "ExampleEnum: An example enum",
		"description": "An enum field",
		"oneOf": `+oneOf+`
	}`, string(scalar))

	array, err := json.Marshal(property(t, doc, "properties", "field_enum_array"))
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"type": "array",
		"description": "An enum array field",
		"items": {
			"title": "ExampleEnum: An example enum",
			"description": "An enum array field",
			"oneOf": `+oneOf+`
		}
	}`, string(array))
}
