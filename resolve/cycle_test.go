package resolve

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/schemagen/errors"
	"github.com/teranos/schemagen/schema"
)

// mapLookup is an unvalidated Lookup, letting cycles reach the resolver directly.
type mapLookup struct {
	messages map[string]*schema.Message
	enums    map[string]*schema.Enum
}

func newMapLookup(msgs ...schema.Message) *mapLookup {
	l := &mapLookup{messages: map[string]*schema.Message{}, enums: map[string]*schema.Enum{}}
	for i := range msgs {
		l.messages[msgs[i].Name] = &msgs[i]
	}
	return l
}

func (l *mapLookup) Message(name string) (*schema.Message, bool) {
	m, ok := l.messages[name]
	return m, ok
}

func (l *mapLookup) Enum(name string) (*schema.Enum, bool) {
	e, ok := l.enums[name]
	return e, ok
}

func (l *mapLookup) Messages() []*schema.Message {
	var out []*schema.Message
	for _, m := range l.messages {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func nest(name string, targets ...string) schema.Message {
	m := schema.Message{Name: name}
	for i, target := range targets {
		m.Fields = append(m.Fields, schema.Field{Name: "f" + target, ID: i + 1, Type: schema.Nested(target)})
	}
	return m
}

func TestCheckCycles(t *testing.T) {
	tests := []struct {
		name  string
		msgs  []schema.Message
		chain []string
	}{
		{"two messages", []schema.Message{nest("A", "B"), nest("B", "A")}, []string{"A", "B", "A"}},
		{"self reference", []schema.Message{nest("Tree", "Tree")}, []string{"Tree", "Tree"}},
		{"cycle below an acyclic root", []schema.Message{nest("A", "B"), nest("B", "C"), nest("C", "D"), nest("D", "B")}, []string{"B", "C", "D", "B"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(newMapLookup(tt.msgs...)).CheckCycles()
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrCycle))

			var cycle *CycleError
			require.True(t, errors.As(err, &cycle))
			assert.Equal(t, tt.chain, cycle.Chain)
			assert.NotEmpty(t, errors.GetAllHints(err))
		})
	}
}

func TestCheckCyclesAcceptsDiamond(t *testing.T) {
	l := newMapLookup(nest("Top", "Left", "Right"), nest("Left", "Leaf"), nest("Right", "Leaf"), nest("Leaf"))
	assert.NoError(t, New(l).CheckCycles())
}

func TestCheckCyclesSkipsUnresolved(t *testing.T) {
	l := newMapLookup(nest("A", "Missing"))
	assert.NoError(t, New(l).CheckCycles())
}

func TestCycleErrorMessage(t *testing.T) {
	err := &CycleError{Chain: []string{"A", "B", "A"}}
	assert.Equal(t, "cyclic nesting: A → B → A", err.Error())
}

func TestTransitiveOrderTerminatesOnCycle(t *testing.T) {
	l := newMapLookup(nest("A", "B"), nest("B", "A"))
	a, _ := l.Message("A")

	deps, err := New(l).TransitiveDependencyOrder(a)
	require.NoError(t, err)
	require.Len(t, deps, 1)
	assert.Equal(t, "B", deps[0].Name)
}
