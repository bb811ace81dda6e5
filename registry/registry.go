// Package registry assembles schemas into an immutable, validated Registry.
//
// Schemas are declared on a Builder; Build validates the whole set (names,
// field ids, enum codes, references, defaults, nesting cycles) and either
// returns every problem at once or a Registry that backends can read
// concurrently without synchronization.
package registry

import (
	"sort"

	"github.com/teranos/schemagen/resolve"
	"github.com/teranos/schemagen/schema"
)

// Registry is the finished, read-only set of schemas for one generation run.
// Accessors return pointers into the registry; callers must not modify them.
type Registry struct {
	messages     map[string]*schema.Message
	enums        map[string]*schema.Enum
	messageOrder []*schema.Message
	enumOrder    []*schema.Enum
	resolver     *resolve.Resolver
}

// Message returns the message called name.
func (r *Registry) Message(name string) (*schema.Message, bool) {
	m, ok := r.messages[name]
	return m, ok
}

// Enum returns the enum called name.
func (r *Registry) Enum(name string) (*schema.Enum, bool) {
	e, ok := r.enums[name]
	return e, ok
}

// Messages returns every message sorted by name.
func (r *Registry) Messages() []*schema.Message {
	return append([]*schema.Message(nil), r.messageOrder...)
}

// Enums returns every enum sorted by name.
func (r *Registry) Enums() []*schema.Enum {
	return append([]*schema.Enum(nil), r.enumOrder...)
}

// EnumsOf returns the enums whose parent is the message called parent, sorted by name.
func (r *Registry) EnumsOf(parent string) []*schema.Enum {
	var out []*schema.Enum
	for _, e := range r.enumOrder {
		if e.Parent == parent {
			out = append(out, e)
		}
	}
	return out
}

// StandaloneEnums returns the enums without a parent message, sorted by name.
func (r *Registry) StandaloneEnums() []*schema.Enum {
	return r.EnumsOf("")
}

// Resolver returns the type resolver bound to this registry.
func (r *Registry) Resolver() *resolve.Resolver {
	return r.resolver
}

// Len returns the number of messages and enums.
func (r *Registry) Len() int {
	return len(r.messages) + len(r.enums)
}

func newRegistry(messages []schema.Message, enums []schema.Enum) *Registry {
	r := &Registry{
		messages: make(map[string]*schema.Message, len(messages)),
		enums:    make(map[string]*schema.Enum, len(enums)),
	}
	for i := range messages {
		m := copyMessage(messages[i])
		if _, dup := r.messages[m.Name]; dup {
			continue
		}
		r.messages[m.Name] = m
		r.messageOrder = append(r.messageOrder, m)
	}
	for i := range enums {
		e := copyEnum(enums[i])
		if _, dup := r.enums[e.Name]; dup {
			continue
		}
		r.enums[e.Name] = e
		r.enumOrder = append(r.enumOrder, e)
	}
	sort.Slice(r.messageOrder, func(i, j int) bool { return r.messageOrder[i].Name < r.messageOrder[j].Name })
	sort.Slice(r.enumOrder, func(i, j int) bool { return r.enumOrder[i].Name < r.enumOrder[j].Name })
	r.resolver = resolve.New(r)
	return r
}

// copyMessage detaches the registry from slices the caller still holds.
func copyMessage(m schema.Message) *schema.Message {
	m.Fields = append([]schema.Field(nil), m.Fields...)
	return &m
}

func copyEnum(e schema.Enum) *schema.Enum {
	e.Values = append([]schema.EnumValue(nil), e.Values...)
	return &e
}
