package resolve_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/schemagen/errors"
	"github.com/teranos/schemagen/registry"
	"github.com/teranos/schemagen/resolve"
	"github.com/teranos/schemagen/schema"
)

// sceneRegistry: SceneUpdate -> Entity -> {Pose -> {Vector3, Quaternion}, Color, LineType}
func sceneRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	reg, err := registry.NewBuilder().
		AddMessage(schema.Message{Name: "Vector3", Fields: []schema.Field{{Name: "x", ID: 1, Type: schema.Float64}}}).
		AddMessage(schema.Message{Name: "Quaternion", Fields: []schema.Field{{Name: "w", ID: 1, Type: schema.Float64, Default: 1.0}}}).
		AddMessage(schema.Message{Name: "Color", Fields: []schema.Field{{Name: "r", ID: 1, Type: schema.Float64}}}).
		AddMessage(schema.Message{Name: "Pose", Fields: []schema.Field{
			{Name: "position", ID: 1, Type: schema.Nested("Vector3")},
			{Name: "orientation", ID: 2, Type: schema.Nested("Quaternion")},
		}}).
		AddMessage(schema.Message{Name: "Entity", Fields: []schema.Field{
			{Name: "timestamp", ID: 1, Type: schema.Time},
			{Name: "pose", ID: 2, Type: schema.Nested("Pose")},
			{Name: "color", ID: 3, Type: schema.Nested("Color")},
			{Name: "line_type", ID: 4, Type: schema.EnumOf("LineType")},
			{Name: "lifetime", ID: 5, Type: schema.Duration},
		}}).
		AddMessage(schema.Message{Name: "SceneUpdate", Fields: []schema.Field{
			{Name: "entities", ID: 1, Type: schema.Nested("Entity"), Array: schema.VariableArray()},
			{Name: "blobs", ID: 2, Type: schema.Bytes, Array: schema.VariableArray()},
			{Name: "origin", ID: 3, Type: schema.Nested("Pose")},
		}}).
		AddEnum(schema.Enum{Name: "LineType", Values: []schema.EnumValue{{Name: "LINE_STRIP"}}}).
		Build()
	require.NoError(t, err)
	return reg
}

func names(deps []resolve.Dependency) []string {
	out := make([]string, 0, len(deps))
	for _, d := range deps {
		out = append(out, d.Name)
	}
	return out
}

func TestResolve(t *testing.T) {
	reg := sceneRegistry(t)
	r := reg.Resolver()
	entity, _ := reg.Message("Entity")

	res, err := r.Resolve(&entity.Fields[0])
	require.NoError(t, err)
	assert.Equal(t, resolve.Primitive{Kind: schema.KindTime}, res)

	res, err = r.Resolve(&entity.Fields[1])
	require.NoError(t, err)
	nested, ok := res.(resolve.Nested)
	require.True(t, ok)
	assert.Equal(t, "Pose", nested.Message.Name)

	res, err = r.Resolve(&entity.Fields[3])
	require.NoError(t, err)
	enum, ok := res.(resolve.Enum)
	require.True(t, ok)
	assert.Equal(t, "LineType", enum.Enum.Name)
}

func TestResolveUnresolvedHints(t *testing.T) {
	reg := sceneRegistry(t)
	r := reg.Resolver()

	_, err := r.Resolve(&schema.Field{Name: "c", Type: schema.EnumOf("Color")})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrUnresolvedReference))
	assert.Contains(t, errors.FlattenHints(err), "Color is a message")

	_, err = r.Resolve(&schema.Field{Name: "l", Type: schema.Nested("LineType")})
	require.Error(t, err)
	assert.Contains(t, errors.FlattenHints(err), "LineType is an enum")

	_, err = r.Resolve(&schema.Field{Name: "n"})
	assert.True(t, errors.Is(err, errors.ErrInvalidSchema))
}

func TestDirectDependencies(t *testing.T) {
	reg := sceneRegistry(t)
	entity, _ := reg.Message("Entity")

	deps, err := reg.Resolver().DirectDependencies(entity)
	require.NoError(t, err)
	assert.Equal(t, []string{"Duration", "Time", "Color", "LineType", "Pose"}, names(deps))
	assert.Equal(t, resolve.WellKnown, deps[0].Kind)
	assert.Equal(t, resolve.EnumDependency, deps[3].Kind)
	assert.Equal(t, resolve.MessageDependency, deps[4].Kind)
}

func TestTransitiveDependencyOrder(t *testing.T) {
	reg := sceneRegistry(t)
	scene, _ := reg.Message("SceneUpdate")

	deps, err := reg.Resolver().TransitiveDependencyOrder(scene)
	require.NoError(t, err)

	// Well-known first in fixed order, then dependency-first with lexicographic siblings.
	assert.Equal(t, []string{
		"ByteVector", "Duration", "Time",
		"Color", "LineType", "Quaternion", "Vector3", "Pose", "Entity",
	}, names(deps))
}

func TestTransitiveOrderIsDependencyFirst(t *testing.T) {
	reg := sceneRegistry(t)
	r := reg.Resolver()

	for _, m := range reg.Messages() {
		deps, err := r.TransitiveDependencyOrder(m)
		require.NoError(t, err)

		position := map[string]int{}
		for i, d := range deps {
			_, dup := position[d.Name]
			require.False(t, dup, "%s listed twice for %s", d.Name, m.Name)
			position[d.Name] = i
			assert.NotEqual(t, m.Name, d.Name)
		}
		for _, d := range deps {
			if d.Kind != resolve.MessageDependency {
				continue
			}
			nested, _ := reg.Message(d.Name)
			inner, err := r.DirectDependencies(nested)
			require.NoError(t, err)
			for _, in := range inner {
				if in.Kind == resolve.MessageDependency {
					assert.Less(t, position[in.Name], position[d.Name], "%s must precede %s", in.Name, d.Name)
				}
			}
		}
	}
}

type kindName struct{}

func (kindName) Primitive(k schema.PrimitiveKind) string { return "primitive:" + k.String() }
func (kindName) Enum(e *schema.Enum) string             { return "enum:" + e.Name }
func (kindName) Nested(m *schema.Message) string        { return "nested:" + m.Name }

func TestVisit(t *testing.T) {
	reg := sceneRegistry(t)
	entity, _ := reg.Message("Entity")
	r := reg.Resolver()

	var got []string
	for i := range entity.Fields {
		got = append(got, resolve.Visit[string](r.MustResolve(&entity.Fields[i]), kindName{}))
	}
	assert.Equal(t, []string{"primitive:time", "nested:Pose", "nested:Color", "enum:LineType", "primitive:duration"}, got)
}
