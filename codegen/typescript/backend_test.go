package typescript

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/schemagen/codegen"
	"github.com/teranos/schemagen/codegen/codegentest"
	"github.com/teranos/schemagen/registry"
	"github.com/teranos/schemagen/schema"
)

func noDocs() codegen.Options {
	opts := codegen.DefaultOptions()
	opts.DocsURL = ""
	return opts
}

func TestRenderNestedMessage(t *testing.T) {
	reg := codegentest.ExampleRegistry(t)
	b := New(reg, codegen.DefaultOptions())

	out, err := b.RenderMessage(codegentest.Message(t, reg, "NestedMessage"))
	require.NoError(t, err)
	assert.Equal(t, `// Generated by https://github.com/foxglove/foxglove-sdk

/**
 * An example nested message
 * @see https://docs.foxglove.dev/docs/visualization/message-schemas/nested-message
 */
export type NestedMessage = {
  /** An enum field */
  field_enum: number;
};
`, out)
}

func TestRenderExampleMessage(t *testing.T) {
	reg := codegentest.ExampleRegistry(t)
	b := New(reg, noDocs())

	out, err := b.RenderMessage(codegentest.Message(t, reg, "ExampleMessage"))
	require.NoError(t, err)

	assert.Contains(t, out, `// Generated by https://github.com/foxglove/foxglove-sdk

import { Duration } from "./Duration";
import { ExampleEnum } from "./ExampleEnum";
import { NestedMessage } from "./NestedMessage";
import { Time } from "./Time";

/** An example type */
export type ExampleMessage = {
  /** duration field */
  field_duration: Duration;
`)
	assert.NotContains(t, out, "ByteVector")
	for _, want := range []string{
		"  /**\n   * boolean field\n   * @default true\n   */\n  field_boolean: boolean;\n",
		"  field_bytes: Uint8Array;\n",
		"   * @default \"string-type\"\n",
		"  field_uint32_array: number[];\n",
		"  field_bytes_array: Uint8Array[];\n",
		"  field_time_fixed_array: [Time, Time, Time];\n",
		"  field_enum: ExampleEnum;\n",
		"  field_nested_array: NestedMessage[];\n};\n",
		"  /**\n   * A nested array field\n   * With\n   * a\n",
	} {
		assert.Contains(t, out, want)
	}
	// Only explicit defaults are documented.
	assert.NotContains(t, out, "@default ExampleEnum.A")
}

func TestRenderEnum(t *testing.T) {
	reg, err := registry.NewBuilder().
		AddEnum(schema.Enum{
			Name:        "LineType",
			Description: "An enumeration indicating how input points should be interpreted to create lines",
			Values: []schema.EnumValue{
				{Name: "LINE_STRIP", Value: 0, Description: "Connected line segments: 0-1, 1-2, ..., (n-1)-n"},
				{Name: "LINE_LOOP", Value: 1},
				{Name: "NULL", Value: 2},
			},
		}).
		Build()
	require.NoError(t, err)
	e, _ := reg.Enum("LineType")

	out, err := New(reg, codegen.DefaultOptions()).RenderEnum(e)
	require.NoError(t, err)
	assert.Equal(t, `// Generated by https://github.com/foxglove/foxglove-sdk

/** An enumeration indicating how input points should be interpreted to create lines */
export enum LineType {
  /** Connected line segments: 0-1, 1-2, ..., (n-1)-n */
  LineStrip = 0,

  LineLoop = 1,

  Null = 2,
}
`, out)
}

func TestDisplayNameOverride(t *testing.T) {
	reg, err := registry.NewBuilder().
		AddMessage(schema.Message{Name: "GeoJSON", Fields: []schema.Field{{Name: "geojson", ID: 1, Type: schema.String}}}).
		AddMessage(schema.Message{Name: "Scene", Fields: []schema.Field{
			{Name: "layers", ID: 1, Type: schema.Nested("GeoJSON"), Array: schema.VariableArray()},
		}}).
		Build()
	require.NoError(t, err)
	b := New(reg, codegen.DefaultOptions())

	assert.Equal(t, "GeoJson.ts", b.Path("GeoJSON"))
	assert.Equal(t, "https://docs.foxglove.dev/docs/visualization/message-schemas/geo-j-s-o-n", b.DocsLink("GeoJSON"))

	out, err := b.RenderMessage(codegentest.Message(t, reg, "Scene"))
	require.NoError(t, err)
	assert.Contains(t, out, "import { GeoJson } from \"./GeoJson\";\n")
	assert.Contains(t, out, "  layers: GeoJson[];\n")
}

func TestRenderDefault(t *testing.T) {
	reg := codegentest.ExampleRegistry(t)
	b := New(reg, codegen.DefaultOptions())
	msg := codegentest.Message(t, reg, "ExampleMessage")

	tests := map[string]struct {
		want string
		ok   bool
	}{
		"field_float64":      {"1", true},
		"field_uint32":       {"5", true},
		"field_enum":         {"ExampleEnum.A", true},
		"field_bytes":        {"new Uint8Array()", true},
		"field_string_array": {"[]", true},
		"field_time":         {"", false},
		"field_nested":       {"", false},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			for i := range msg.Fields {
				if msg.Fields[i].Name != name {
					continue
				}
				got, ok := b.RenderDefault(&msg.Fields[i])
				assert.Equal(t, tt.ok, ok)
				assert.Equal(t, tt.want, got)
				return
			}
			t.Fatalf("no field %s", name)
		})
	}
}

func TestWellKnownAndArrays(t *testing.T) {
	b := New(codegentest.ExampleRegistry(t), codegen.DefaultOptions())

	artifacts, err := b.WellKnown()
	require.NoError(t, err)
	require.Len(t, artifacts, 2)
	assert.Equal(t, "Duration.ts", artifacts[0].Path)
	assert.Equal(t, "Time.ts", artifacts[1].Path)
	assert.Contains(t, artifacts[1].Content, "export type Time = {\n  sec: number;\n  nsec: number;\n};\n")

	assert.Equal(t, "string[]", b.RenderArray("string", schema.VariableArray()).Type)
	assert.Equal(t, "(A | B)[]", b.RenderArray("A | B", schema.VariableArray()).Type)
	assert.Equal(t, "[number, number]", b.RenderArray("number", schema.FixedArray(2)).Type)
	assert.Equal(t, codegen.EnumsSeparate, b.EnumPlacement())
}
