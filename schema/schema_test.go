package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnumWidth(t *testing.T) {
	tests := []struct {
		name  string
		codes []uint32
		want  Width
	}{
		{"small", []uint32{0, 1, 2}, Width8},
		{"boundary 255", []uint32{255}, Width8},
		{"256 escalates", []uint32{1, 256}, Width16},
		{"boundary 65535", []uint32{65535}, Width16},
		{"65536 escalates", []uint32{65536}, Width32},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &Enum{Name: "E"}
			for i, c := range tt.codes {
				e.Values = append(e.Values, EnumValue{Name: string(rune('A' + i)), Value: c})
			}
			assert.Equal(t, tt.want, e.Width())
		})
	}
}

func TestEnumHelpers(t *testing.T) {
	e := &Enum{Name: "Level", Values: []EnumValue{{Name: "INFO", Value: 2}, {Name: "DEBUG", Value: 1}}}

	assert.Equal(t, "INFO", e.First().Name)
	assert.Equal(t, uint32(2), e.MaxValue())
	assert.False(t, e.HasZero())

	e.Values = append(e.Values, EnumValue{Name: "UNKNOWN", Value: 0})
	assert.True(t, e.HasZero())
}

func TestIDsContiguous(t *testing.T) {
	m := &Message{Fields: []Field{{Name: "b", ID: 2}, {Name: "a", ID: 1}}}
	assert.True(t, m.IDsContiguous())

	m.Fields = append(m.Fields, Field{Name: "c", ID: 5})
	assert.False(t, m.IDsContiguous())
}

func TestTypeRefStrings(t *testing.T) {
	assert.Equal(t, "float64", Float64.String())
	assert.Equal(t, "enum LineType", EnumOf("LineType").String())
	assert.Equal(t, "message Pose", Nested("Pose").String())
	assert.Equal(t, "PrimitiveKind(42)", PrimitiveKind(42).String())
	assert.False(t, PrimitiveKind(0).Valid())
	assert.True(t, KindTime.IsComposite())
	assert.False(t, KindBytes.IsComposite())
}

func TestArrayShape(t *testing.T) {
	assert.False(t, Scalar.IsArray())
	assert.True(t, VariableArray().IsArray())
	assert.Equal(t, "[3]", FixedArray(3).String())
	assert.Equal(t, "[]", VariableArray().String())
}

func TestIsWellKnownName(t *testing.T) {
	assert.True(t, IsWellKnownName("Time"))
	assert.True(t, IsWellKnownName("ByteVector"))
	assert.False(t, IsWellKnownName("Pose"))
}
