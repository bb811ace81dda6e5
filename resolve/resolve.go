// Package resolve classifies field types and computes the dependency graph
// shared by every backend.
//
// The Resolver works against a Lookup (normally a built registry). It never
// caches and never mutates, so one Resolver is safe for concurrent use by all
// backends of a generation run.
package resolve

import (
	"sort"

	"github.com/teranos/schemagen/errors"
	"github.com/teranos/schemagen/schema"
)

// Lookup finds schemas by name.
type Lookup interface {
	Message(name string) (*schema.Message, bool)
	Enum(name string) (*schema.Enum, bool)
	// Messages returns every message sorted by name.
	Messages() []*schema.Message
}

// Resolved is a field type after lookup: Primitive, Enum or Nested.
type Resolved interface {
	resolved()
}

// Primitive is a resolved built-in kind.
type Primitive struct {
	Kind schema.PrimitiveKind
}

// Enum is a resolved enum reference.
type Enum struct {
	Enum *schema.Enum
}

// Nested is a resolved message reference.
type Nested struct {
	Message *schema.Message
}

func (Primitive) resolved() {}
func (Enum) resolved()      {}
func (Nested) resolved()    {}

// Visitor handles each case of Resolved. Backends implement it so that a new
// case fails to compile until every backend handles it.
type Visitor[T any] interface {
	Primitive(kind schema.PrimitiveKind) T
	Enum(e *schema.Enum) T
	Nested(m *schema.Message) T
}

// Visit dispatches r to the matching method of v.
func Visit[T any](r Resolved, v Visitor[T]) T {
	switch r := r.(type) {
	case Primitive:
		return v.Primitive(r.Kind)
	case Enum:
		return v.Enum(r.Enum)
	case Nested:
		return v.Nested(r.Message)
	}
	panic(errors.AssertionFailedf("unhandled resolved type %T", r))
}

// Resolver answers type and dependency questions about a Lookup.
type Resolver struct {
	lookup Lookup
}

// New returns a Resolver over l.
func New(l Lookup) *Resolver {
	return &Resolver{lookup: l}
}

// Resolve classifies the type of f.
func (r *Resolver) Resolve(f *schema.Field) (Resolved, error) {
	switch ref := f.Type.(type) {
	case schema.Primitive:
		if !ref.Kind.Valid() {
			return nil, errors.Markf(errors.ErrInvalidSchema, "field %q has unknown primitive kind %d", f.Name, int(ref.Kind))
		}
		return Primitive{Kind: ref.Kind}, nil
	case schema.EnumRef:
		if e, ok := r.lookup.Enum(ref.Name); ok {
			return Enum{Enum: e}, nil
		}
		err := errors.Markf(errors.ErrUnresolvedReference, "field %q references unknown enum %q", f.Name, ref.Name)
		if _, isMessage := r.lookup.Message(ref.Name); isMessage {
			err = errors.WithHintf(err, "%s is a message; use schema.Nested(%q)", ref.Name, ref.Name)
		}
		return nil, err
	case schema.NestedRef:
		if m, ok := r.lookup.Message(ref.Name); ok {
			return Nested{Message: m}, nil
		}
		err := errors.Markf(errors.ErrUnresolvedReference, "field %q references unknown message %q", f.Name, ref.Name)
		if _, isEnum := r.lookup.Enum(ref.Name); isEnum {
			err = errors.WithHintf(err, "%s is an enum; use schema.EnumOf(%q)", ref.Name, ref.Name)
		}
		return nil, err
	case nil:
		return nil, errors.Markf(errors.ErrInvalidSchema, "field %q has no type", f.Name)
	}
	return nil, errors.AssertionFailedf("unhandled type reference %T", f.Type)
}

// MustResolve is Resolve for registries that have already been validated.
func (r *Resolver) MustResolve(f *schema.Field) Resolved {
	res, err := r.Resolve(f)
	if err != nil {
		panic(errors.NewAssertionErrorWithWrappedErrf(err, "resolve field %q of a validated registry", f.Name))
	}
	return res
}

// DependencyKind tells well-known types, messages and enums apart.
type DependencyKind int

const (
	WellKnown DependencyKind = iota
	MessageDependency
	EnumDependency
)

// Dependency is one schema a message needs in order to be rendered.
type Dependency struct {
	Kind DependencyKind
	Name string
}

func (d Dependency) String() string { return d.Name }

// less orders well-known types first in their fixed order, then by name.
func less(a, b Dependency) bool {
	if (a.Kind == WellKnown) != (b.Kind == WellKnown) {
		return a.Kind == WellKnown
	}
	if a.Kind == WellKnown {
		return wellKnownRank(a.Name) < wellKnownRank(b.Name)
	}
	return a.Name < b.Name
}

func wellKnownRank(name string) int {
	for i, wk := range schema.WellKnownNames {
		if wk == name {
			return i
		}
	}
	return len(schema.WellKnownNames)
}

// fieldDependencies lists what a single field pulls in.
// time and duration need their well-known types; a bytes array needs the
// ByteVector wrapper because some formats cannot nest vectors directly.
func (r *Resolver) fieldDependencies(f *schema.Field) ([]Dependency, error) {
	res, err := r.Resolve(f)
	if err != nil {
		return nil, err
	}
	switch res := res.(type) {
	case Primitive:
		switch res.Kind {
		case schema.KindTime:
			return []Dependency{{Kind: WellKnown, Name: schema.TimeName}}, nil
		case schema.KindDuration:
			return []Dependency{{Kind: WellKnown, Name: schema.DurationName}}, nil
		case schema.KindBytes:
			if f.Array.IsArray() {
				return []Dependency{{Kind: WellKnown, Name: schema.ByteVectorName}}, nil
			}
		}
		return nil, nil
	case Enum:
		return []Dependency{{Kind: EnumDependency, Name: res.Enum.Name}}, nil
	case Nested:
		return []Dependency{{Kind: MessageDependency, Name: res.Message.Name}}, nil
	}
	return nil, nil
}

// DirectDependencies returns the schemas, enums and well-known types
// referenced by any field of msg, deduplicated, well-known types first and
// the rest sorted by name.
func (r *Resolver) DirectDependencies(msg *schema.Message) ([]Dependency, error) {
	seen := make(map[string]bool)
	var deps []Dependency
	for i := range msg.Fields {
		fieldDeps, err := r.fieldDependencies(&msg.Fields[i])
		if err != nil {
			return nil, errors.Wrapf(err, "message %s", msg.Name)
		}
		for _, d := range fieldDeps {
			if !seen[d.Name] {
				seen[d.Name] = true
				deps = append(deps, d)
			}
		}
	}
	sortDependencies(deps)
	return deps, nil
}

func sortDependencies(deps []Dependency) {
	sort.SliceStable(deps, func(i, j int) bool { return less(deps[i], deps[j]) })
}

// TransitiveDependencyOrder returns everything msg needs, directly or through
// nested messages, excluding msg itself. Well-known types come first in their
// fixed order; the rest are ordered dependency-first, siblings visited in
// lexicographic order, each name once.
func (r *Resolver) TransitiveDependencyOrder(msg *schema.Message) ([]Dependency, error) {
	visited := map[string]bool{msg.Name: true}
	wellKnown := make(map[string]bool)
	var order []Dependency

	var visit func(m *schema.Message) error
	visit = func(m *schema.Message) error {
		deps, err := r.DirectDependencies(m)
		if err != nil {
			return err
		}
		for _, d := range deps {
			switch d.Kind {
			case WellKnown:
				wellKnown[d.Name] = true
			case EnumDependency:
				if !visited[d.Name] {
					visited[d.Name] = true
					order = append(order, d)
				}
			case MessageDependency:
				if visited[d.Name] {
					continue
				}
				visited[d.Name] = true
				nested, _ := r.lookup.Message(d.Name)
				if err := visit(nested); err != nil {
					return err
				}
				order = append(order, d)
			}
		}
		return nil
	}
	if err := visit(msg); err != nil {
		return nil, err
	}

	result := make([]Dependency, 0, len(wellKnown)+len(order))
	for _, name := range schema.WellKnownNames {
		if wellKnown[name] {
			result = append(result, Dependency{Kind: WellKnown, Name: name})
		}
	}
	return append(result, order...), nil
}
