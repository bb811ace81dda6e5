package registry

import (
	"regexp"

	"github.com/teranos/schemagen/errors"
	"github.com/teranos/schemagen/naming"
	"github.com/teranos/schemagen/resolve"
	"github.com/teranos/schemagen/schema"
)

// Protobuf field number limits; field ids double as Protobuf tags.
const (
	MaxFieldID           = 1<<29 - 1
	reservedFieldIDStart = 19000
	reservedFieldIDEnd   = 19999
)

var (
	schemaNamePattern = regexp.MustCompile(`^[A-Z][A-Za-z0-9]*$`)
	memberNamePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)
)

// Builder collects schema declarations. It is not safe for concurrent use
// and can build at most once.
type Builder struct {
	messages []schema.Message
	enums    []schema.Enum
	built    bool
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// AddMessage declares a message schema.
func (b *Builder) AddMessage(m schema.Message) *Builder {
	b.messages = append(b.messages, m)
	return b
}

// AddEnum declares an enum schema.
func (b *Builder) AddEnum(e schema.Enum) *Builder {
	b.enums = append(b.enums, e)
	return b
}

// Build validates every declaration and returns the immutable Registry.
// All problems found are joined into one error; nesting cycles are only
// checked once everything else is valid.
func (b *Builder) Build() (*Registry, error) {
	if b.built {
		return nil, errors.New("registry builder already used")
	}
	b.built = true

	var errs []error
	errs = append(errs, b.checkNames()...)
	for i := range b.messages {
		errs = append(errs, checkMessage(&b.messages[i])...)
	}
	for i := range b.enums {
		errs = append(errs, checkEnum(&b.enums[i])...)
	}

	reg := newRegistry(b.messages, b.enums)
	errs = append(errs, checkReferences(reg)...)

	if len(errs) == 0 {
		if err := reg.resolver.CheckCycles(); err != nil {
			errs = append(errs, err)
		} else {
			errs = append(errs, checkEnumScopes(reg)...)
		}
	}

	if len(errs) > 0 {
		return nil, errors.Wrap(errors.Join(errs...), "invalid schema registry")
	}
	return reg, nil
}

// MustBuild is Build for statically declared catalogs; it panics on invalid input.
func (b *Builder) MustBuild() *Registry {
	reg, err := b.Build()
	if err != nil {
		panic(err)
	}
	return reg
}

func (b *Builder) checkNames() []error {
	var errs []error
	seen := make(map[string]string)
	claim := func(kind, name string) {
		switch {
		case !schemaNamePattern.MatchString(name):
			errs = append(errs, errors.WithHint(
				errors.Markf(errors.ErrInvalidSchema, "%s name %q is not a PascalCase identifier", kind, name),
				"schema names become type names in every target format"))
			return
		case schema.IsWellKnownName(name):
			errs = append(errs, errors.Markf(errors.ErrDuplicateSchema, "%s name %q is reserved for a well-known type", kind, name))
			return
		}
		if prev, dup := seen[name]; dup {
			errs = append(errs, errors.Markf(errors.ErrDuplicateSchema, "%s %q already declared as %s", kind, name, prev))
			return
		}
		seen[name] = kind
	}
	for i := range b.messages {
		claim("message", b.messages[i].Name)
	}
	for i := range b.enums {
		claim("enum", b.enums[i].Name)
	}
	return errs
}

func checkMessage(m *schema.Message) []error {
	var errs []error
	fail := func(sentinel error, format string, args ...interface{}) {
		errs = append(errs, errors.Wrapf(errors.Markf(sentinel, format, args...), "message %s", m.Name))
	}

	ids := make(map[int]string)
	names := make(map[string]bool)
	for i := range m.Fields {
		f := &m.Fields[i]
		if !memberNamePattern.MatchString(f.Name) {
			fail(errors.ErrInvalidSchema, "field name %q is not an identifier", f.Name)
		}
		if names[f.Name] {
			fail(errors.ErrInvalidSchema, "field %q declared twice", f.Name)
		}
		names[f.Name] = true

		if prev, dup := ids[f.ID]; dup {
			errs = append(errs, errors.WithHint(
				errors.Wrapf(errors.Markf(errors.ErrDuplicateFieldID, "field id %d used by %q and %q", f.ID, prev, f.Name), "message %s", m.Name),
				"field ids are wire ordinals; give the new field an unused id"))
		} else {
			ids[f.ID] = f.Name
		}
		if f.ID < 1 || f.ID > MaxFieldID {
			fail(errors.ErrInvalidSchema, "field %q id %d outside 1..%d", f.Name, f.ID, MaxFieldID)
		}
		if f.ID >= reservedFieldIDStart && f.ID <= reservedFieldIDEnd {
			fail(errors.ErrInvalidSchema, "field %q id %d falls in the reserved range %d..%d", f.Name, f.ID, reservedFieldIDStart, reservedFieldIDEnd)
		}

		if f.Array.Kind == schema.ArrayFixed && f.Array.Length < 1 {
			fail(errors.ErrInvalidSchema, "field %q has fixed length %d", f.Name, f.Array.Length)
		}
		if err := checkDefault(f); err != nil {
			errs = append(errs, errors.Wrapf(err, "message %s", m.Name))
		}
	}
	return errs
}

// checkDefault accepts explicit defaults only where every backend can express them.
func checkDefault(f *schema.Field) error {
	if f.Default == nil {
		return nil
	}
	prim, ok := f.Type.(schema.Primitive)
	if !ok || f.Array.IsArray() {
		return errors.Markf(errors.ErrInvalidSchema, "field %q: explicit defaults are only allowed on scalar primitive fields", f.Name)
	}
	var match bool
	switch prim.Kind {
	case schema.KindString:
		_, match = f.Default.(string)
	case schema.KindFloat64:
		_, match = f.Default.(float64)
	case schema.KindUint32:
		_, match = f.Default.(uint32)
	case schema.KindBoolean:
		_, match = f.Default.(bool)
	default:
		return errors.Markf(errors.ErrInvalidSchema, "field %q: %s fields cannot carry an explicit default", f.Name, prim.Kind)
	}
	if !match {
		return errors.Markf(errors.ErrInvalidSchema, "field %q: default %v (%T) does not match kind %s", f.Name, f.Default, f.Default, prim.Kind)
	}
	return nil
}

func checkEnum(e *schema.Enum) []error {
	var errs []error
	if len(e.Values) == 0 {
		return []error{errors.Markf(errors.ErrInvalidSchema, "enum %s has no values", e.Name)}
	}
	codes := make(map[uint32]string)
	names := make(map[string]bool)
	for _, v := range e.Values {
		if prev, dup := codes[v.Value]; dup {
			errs = append(errs, errors.Markf(errors.ErrDuplicateEnumValue, "enum %s: code %d used by %s and %s", e.Name, v.Value, prev, v.Name))
		} else {
			codes[v.Value] = v.Name
		}
		if names[v.Name] {
			errs = append(errs, errors.Markf(errors.ErrInvalidSchema, "enum %s: value %s declared twice", e.Name, v.Name))
		}
		names[v.Name] = true
		if !memberNamePattern.MatchString(v.Name) {
			errs = append(errs, errors.Markf(errors.ErrInvalidSchema, "enum %s: value name %q is not an identifier", e.Name, v.Name))
		}
		if v.Value > schema.MaxEnumValue {
			errs = append(errs, errors.Markf(errors.ErrInvalidSchema, "enum %s: code %d of %s exceeds %d", e.Name, v.Value, v.Name, schema.MaxEnumValue))
		}
	}
	if unspecified := naming.UnspecifiedValue(e.Name); !e.HasZero() && names[unspecified] {
		errs = append(errs, errors.WithHint(
			errors.Markf(errors.ErrDuplicateEnumValue, "enum %s: value %s has no code 0 but takes the name reserved for the synthesized zero value", e.Name, unspecified),
			"give the value code 0, or rename it"))
	}
	return errs
}

func checkReferences(reg *Registry) []error {
	var errs []error
	for _, m := range reg.messageOrder {
		for i := range m.Fields {
			if _, err := reg.resolver.Resolve(&m.Fields[i]); err != nil {
				errs = append(errs, errors.Wrapf(err, "message %s", m.Name))
			}
		}
	}
	for _, e := range reg.enumOrder {
		if e.Parent == "" {
			continue
		}
		if _, ok := reg.messages[e.Parent]; !ok {
			errs = append(errs, errors.Markf(errors.ErrUnresolvedReference, "enum %s: parent message %q is not registered", e.Name, e.Parent))
		}
	}
	return errs
}

// enumScope tracks what claimed each value name within one target scope.
type enumScope struct {
	where  string
	owners map[string]string
}

func newEnumScope(where string) *enumScope {
	return &enumScope{where: where, owners: make(map[string]string)}
}

// claim records the value names of e, returning a collision for each name
// something else in the scope already holds. reported suppresses pairs
// found in an earlier scope.
func (s *enumScope) claim(e *schema.Enum, names []string, reported map[string]bool) []error {
	owner := "enum " + e.Name
	var errs []error
	for _, name := range names {
		prev, taken := s.owners[name]
		if !taken {
			s.owners[name] = owner
			continue
		}
		if prev == owner {
			continue
		}
		key := prev + "/" + owner + "/" + name
		if reported[key] {
			continue
		}
		reported[key] = true
		errs = append(errs, errors.WithHint(
			errors.Markf(errors.ErrDuplicateEnumValue, "value %s of enum %s collides with %s in %s", name, e.Name, prev, s.where),
			"Protobuf, ROS and OMG IDL place enum values in the enclosing scope; prefix the value with its enum's name"))
	}
	return errs
}

func valueNames(e *schema.Enum) []string {
	names := make([]string, 0, len(e.Values))
	for _, v := range e.Values {
		names = append(names, v.Name)
	}
	return names
}

// protoValueNames adds the zero value Protobuf synthesizes for enums without one.
func protoValueNames(e *schema.Enum) []string {
	names := valueNames(e)
	if !e.HasZero() {
		names = append(names, naming.UnspecifiedValue(e.Name))
	}
	return names
}

// checkEnumScopes rejects enum value names that collide once the enums are
// rendered together: standalone enums share the package, enums with one
// parent share the parent message, and every enum a message reaches shares
// its ROS constants and its OMG IDL module.
func checkEnumScopes(reg *Registry) []error {
	var errs []error
	reported := make(map[string]bool)

	pkg := newEnumScope("the package")
	parents := make(map[string]*enumScope)
	for _, e := range reg.enumOrder {
		if e.Parent == "" {
			errs = append(errs, pkg.claim(e, protoValueNames(e), reported)...)
			continue
		}
		scope, ok := parents[e.Parent]
		if !ok {
			scope = newEnumScope("message " + e.Parent)
			for _, f := range reg.messages[e.Parent].Fields {
				scope.owners[f.Name] = "field " + f.Name
			}
			parents[e.Parent] = scope
		}
		errs = append(errs, scope.claim(e, protoValueNames(e), reported)...)
	}

	for _, m := range reg.messageOrder {
		deps, err := reg.resolver.TransitiveDependencyOrder(m)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		scope := newEnumScope("message " + m.Name)
		for _, d := range deps {
			if d.Kind != resolve.EnumDependency {
				continue
			}
			e := reg.enums[d.Name]
			errs = append(errs, scope.claim(e, valueNames(e), reported)...)
		}
	}
	return errs
}
