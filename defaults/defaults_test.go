package defaults_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/schemagen/defaults"
	"github.com/teranos/schemagen/registry"
	"github.com/teranos/schemagen/schema"
)

func buildLog(t *testing.T) (*registry.Registry, *schema.Message) {
	t.Helper()
	reg, err := registry.NewBuilder().
		AddEnum(schema.Enum{Name: "LogLevel", Parent: "Log", Values: []schema.EnumValue{
			{Name: "UNKNOWN", Value: 0}, {Name: "DEBUG", Value: 1},
		}}).
		AddEnum(schema.Enum{Name: "Severity", Values: []schema.EnumValue{
			{Name: "HIGH", Value: 3}, {Name: "LOW", Value: 1},
		}}).
		AddMessage(schema.Message{Name: "Origin", Fields: []schema.Field{{Name: "x", ID: 1, Type: schema.Float64}}}).
		AddMessage(schema.Message{Name: "Log", Fields: []schema.Field{
			{Name: "timestamp", ID: 1, Type: schema.Time},
			{Name: "level", ID: 2, Type: schema.EnumOf("LogLevel")},
			{Name: "message", ID: 3, Type: schema.String},
			{Name: "line", ID: 4, Type: schema.Uint32},
			{Name: "weight", ID: 5, Type: schema.Float64},
			{Name: "flag", ID: 6, Type: schema.Boolean},
			{Name: "payload", ID: 7, Type: schema.Bytes},
			{Name: "tags", ID: 8, Type: schema.String, Array: schema.VariableArray()},
			{Name: "origin", ID: 9, Type: schema.Nested("Origin")},
			{Name: "severity", ID: 10, Type: schema.EnumOf("Severity")},
			{Name: "scale", ID: 11, Type: schema.Float64, Default: 1.0},
			{Name: "lifetime", ID: 12, Type: schema.Duration},
			{Name: "levels", ID: 13, Type: schema.EnumOf("LogLevel"), Array: schema.FixedArray(2)},
		}}).
		Build()
	require.NoError(t, err)
	log, _ := reg.Message("Log")
	return reg, log
}

func TestFor(t *testing.T) {
	reg, log := buildLog(t)
	r := reg.Resolver()

	kinds := map[string]defaults.Kind{}
	values := map[string]defaults.Value{}
	for i := range log.Fields {
		f := &log.Fields[i]
		v := defaults.For(f, r.MustResolve(f))
		kinds[f.Name] = v.Kind
		values[f.Name] = v
	}

	assert.Equal(t, map[string]defaults.Kind{
		"timestamp": defaults.Absent,
		"level":     defaults.EnumMember,
		"message":   defaults.String,
		"line":      defaults.Integer,
		"weight":    defaults.Float,
		"flag":      defaults.Boolean,
		"payload":   defaults.Bytes,
		"tags":      defaults.EmptySequence,
		"origin":    defaults.Absent,
		"severity":  defaults.EnumMember,
		"scale":     defaults.Float,
		"lifetime":  defaults.Absent,
		"levels":    defaults.EmptySequence,
	}, kinds)

	assert.Equal(t, uint64(0), values["line"].Integer)
	assert.True(t, values["line"].IsZero())
	assert.Equal(t, "UNKNOWN", values["level"].Member.Name)

	// First declared value, not the lowest code
	assert.Equal(t, "HIGH", values["severity"].Member.Name)
	assert.False(t, values["severity"].IsZero())

	assert.True(t, values["scale"].Explicit)
	assert.Equal(t, 1.0, values["scale"].Float)
	assert.False(t, values["scale"].IsZero())
}

func TestInstance(t *testing.T) {
	reg, log := buildLog(t)

	inst, err := defaults.Instance(reg.Resolver(), log)
	require.NoError(t, err)

	assert.NotContains(t, inst, "timestamp")
	assert.NotContains(t, inst, "origin")
	assert.NotContains(t, inst, "lifetime")
	assert.Equal(t, float64(0), inst["level"])
	assert.Equal(t, float64(3), inst["severity"])
	assert.Equal(t, "", inst["message"])
	assert.Equal(t, "", inst["payload"])
	assert.Equal(t, false, inst["flag"])
	assert.Equal(t, []interface{}{}, inst["tags"])
	assert.Equal(t, 1.0, inst["scale"])
}
