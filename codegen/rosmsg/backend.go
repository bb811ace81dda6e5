// Package rosmsg renders ROS 1 and ROS 2 message text (.msg).
//
// Both versions share one renderer and differ only in the table of built-in
// type names. Messages that declare a ROS equivalent are not rendered;
// references to them use the equivalent type.
package rosmsg

import (
	"fmt"
	"strings"

	"github.com/teranos/schemagen/codegen"
	"github.com/teranos/schemagen/errors"
	"github.com/teranos/schemagen/registry"
	"github.com/teranos/schemagen/resolve"
	"github.com/teranos/schemagen/schema"
)

// Version selects the ROS dialect.
type Version int

const (
	ROS1 Version = 1
	ROS2 Version = 2
)

type dialect struct {
	name     string
	encoding string
	// schemaInfix sits between package and type in schema names ("msg/" in ROS 2)
	schemaInfix string
	primitives  map[schema.PrimitiveKind]string
}

var basePrimitives = map[schema.PrimitiveKind]string{
	schema.KindString:  "string",
	schema.KindFloat64: "float64",
	schema.KindUint32:  "uint32",
	schema.KindBoolean: "bool",
	schema.KindBytes:   "uint8[]",
}

func withTimes(time, duration string) map[schema.PrimitiveKind]string {
	m := make(map[schema.PrimitiveKind]string, len(basePrimitives)+2)
	for k, v := range basePrimitives {
		m[k] = v
	}
	m[schema.KindTime] = time
	m[schema.KindDuration] = duration
	return m
}

var dialects = map[Version]dialect{
	ROS1: {
		name:       "ros1",
		encoding:   "ros1msg",
		primitives: withTimes("time", "duration"),
	},
	ROS2: {
		name:        "ros2",
		encoding:    "ros2msg",
		schemaInfix: "msg/",
		primitives:  withTimes("builtin_interfaces/Time", "builtin_interfaces/Duration"),
	},
}

var enumWidths = map[schema.Width]string{
	schema.Width8:  "uint8",
	schema.Width16: "uint16",
	schema.Width32: "uint32",
}

// definitionSeparator precedes every dependency section of a full definition.
var definitionSeparator = strings.Repeat("=", 80)

// Backend renders ROS message text for one version.
type Backend struct {
	reg     *registry.Registry
	res     *resolve.Resolver
	opts    codegen.Options
	dialect dialect
}

// New returns a ROS backend for version over reg.
func New(reg *registry.Registry, opts codegen.Options, version Version) *Backend {
	d, ok := dialects[version]
	if !ok {
		panic(errors.AssertionFailedf("unknown ROS version %d", version))
	}
	return &Backend{reg: reg, res: reg.Resolver(), opts: opts, dialect: d}
}

func (b *Backend) Name() string                         { return b.dialect.name }
func (b *Backend) FileExtension() string                { return "msg" }
func (b *Backend) Path(name string) string              { return name + ".msg" }
func (b *Backend) EnumPlacement() codegen.EnumPlacement { return codegen.EnumsInline }

// Encoding is the MCAP schema encoding of this version's full definitions.
func (b *Backend) Encoding() string { return b.dialect.encoding }

// WellKnown returns nothing; time and duration are built-in types.
func (b *Backend) WellKnown() ([]codegen.Artifact, error) { return nil, nil }

// Skip reports whether msg maps to a pre-existing ROS type.
func (b *Backend) Skip(msg *schema.Message) bool { return msg.RosEquivalent != "" }

// TypeName returns the ROS type of msg as used in field declarations:
// its ROS equivalent if any, else "<package>/<Name>".
func (b *Backend) TypeName(msg *schema.Message) string {
	if msg.RosEquivalent != "" {
		return msg.RosEquivalent
	}
	return b.opts.RosPackage + "/" + msg.Name
}

// SchemaName returns the name under which msg is published, e.g.
// "foxglove_msgs/Pose" for ROS 1 and "foxglove_msgs/msg/Pose" for ROS 2.
func (b *Backend) SchemaName(msg *schema.Message) string {
	if msg.RosEquivalent != "" {
		pkg, name, _ := strings.Cut(msg.RosEquivalent, "/")
		return pkg + "/" + b.dialect.schemaInfix + name
	}
	return b.opts.RosPackage + "/" + b.dialect.schemaInfix + msg.Name
}

// RenderDefault always returns false: message text declares no defaults.
func (b *Backend) RenderDefault(*schema.Field) (string, bool) { return "", false }

// RenderArray appends "[]" or "[N]" to the element type.
func (b *Backend) RenderArray(elem string, arr schema.Array) codegen.ArrayDecl {
	if arr.Kind == schema.ArrayFixed {
		return codegen.ArrayDecl{Type: fmt.Sprintf("%s[%d]", elem, arr.Length)}
	}
	return codegen.ArrayDecl{Type: elem + "[]"}
}

type elementType struct{ b *Backend }

func (v elementType) Primitive(kind schema.PrimitiveKind) string {
	return v.b.dialect.primitives[kind]
}
func (v elementType) Enum(e *schema.Enum) string      { return enumWidths[e.Width()] }
func (v elementType) Nested(m *schema.Message) string { return v.b.TypeName(m) }

// RenderMessage returns the .msg file of msg.
func (b *Backend) RenderMessage(msg *schema.Message) (string, error) {
	body, err := b.body(msg)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s/msg/%s\n", b.opts.RosPackage, msg.Name)
	codegen.WriteDoc(&sb, "# ", msg.Description)
	fmt.Fprintf(&sb, "\n# %s\n", b.opts.GeneratedBy())
	sb.WriteString(body)
	return sb.String(), nil
}

// RenderEnum returns the constant declarations of e.
func (b *Backend) RenderEnum(e *schema.Enum) (string, error) {
	var sb strings.Builder
	writeConstants(&sb, e)
	return strings.TrimPrefix(sb.String(), "\n"), nil
}

func writeConstants(sb *strings.Builder, e *schema.Enum) {
	typ := enumWidths[e.Width()]
	for _, v := range e.Values {
		sb.WriteString("\n")
		codegen.WriteDoc(sb, "# ", v.Description)
		fmt.Fprintf(sb, "%s %s=%d\n", typ, v.Name, v.Value)
	}
}

// body renders the declarations of msg, each preceded by a blank line.
// An enum's constants appear once, ahead of the first field that uses it.
func (b *Backend) body(msg *schema.Message) (string, error) {
	var sb strings.Builder
	emitted := make(map[string]bool)
	for i := range msg.Fields {
		f := &msg.Fields[i]
		res, err := b.res.Resolve(f)
		if err != nil {
			return "", errors.Wrapf(err, "message %s", msg.Name)
		}
		if p, ok := res.(resolve.Primitive); ok && p.Kind == schema.KindBytes && f.Array.IsArray() {
			return "", errors.WithHint(
				errors.Markf(errors.ErrUnsupported, "%s: field %s.%s: arrays of bytes", b.Name(), msg.Name, f.Name),
				"wrap the bytes in a message and use an array of that message")
		}
		if e, ok := res.(resolve.Enum); ok && !emitted[e.Enum.Name] {
			emitted[e.Enum.Name] = true
			writeConstants(&sb, e.Enum)
		}

		typ := resolve.Visit[string](res, elementType{b: b})
		if f.Array.IsArray() {
			typ = b.RenderArray(typ, f.Array).Type
		}
		sb.WriteString("\n")
		codegen.WriteDoc(&sb, "# ", f.Description)
		fmt.Fprintf(&sb, "%s %s\n", typ, f.Name)
	}
	return sb.String(), nil
}

// FullDefinition returns the text of msg followed by the definition of every
// message it depends on, as expected in ROS connection headers and MCAP
// schema records. A dependency mapped onto a stock ROS message carries the
// stock text and its dependencies; one mapped onto a type this package does
// not know keeps the schema's own layout under the ROS name.
func (b *Backend) FullDefinition(msg *schema.Message) (string, error) {
	text, err := b.RenderMessage(msg)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	sb.WriteString(text)

	written := map[string]bool{b.TypeName(msg): true}
	section := func(name, body string) {
		written[name] = true
		fmt.Fprintf(&sb, "%s\nMSG: %s\n", definitionSeparator, name)
		sb.WriteString(body)
	}
	var writeStock func(name string)
	writeStock = func(name string) {
		if written[name] {
			return
		}
		def := stockDefinitions[name]
		section(name, def.body)
		for _, dep := range def.deps {
			writeStock(dep)
		}
	}
	var writeDeps func(m *schema.Message) error
	writeDeps = func(m *schema.Message) error {
		deps, err := b.res.DirectDependencies(m)
		if err != nil {
			return err
		}
		for _, d := range deps {
			if d.Kind != resolve.MessageDependency {
				continue
			}
			dep, ok := b.reg.Message(d.Name)
			if !ok {
				return errors.AssertionFailedf("message %s missing from registry", d.Name)
			}
			if _, stock := stockDefinitions[dep.RosEquivalent]; stock {
				writeStock(dep.RosEquivalent)
				continue
			}
			name := b.TypeName(dep)
			if written[name] {
				continue
			}
			body, err := b.body(dep)
			if err != nil {
				return err
			}
			section(name, body)
			if err := writeDeps(dep); err != nil {
				return err
			}
		}
		return nil
	}
	if err := writeDeps(msg); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// VerifyMessage parses the rendered text and checks that it declares one
// field per schema field, each enum's constants once, and no name twice.
func (b *Backend) VerifyMessage(msg *schema.Message, content string) error {
	def, err := Parse(content)
	if err != nil {
		return err
	}
	fields := Fields(def.Elements)
	if len(fields) != len(msg.Fields) {
		return errors.Newf("%s: parsed %d fields of %s, want %d", b.Name(), len(fields), msg.Name, len(msg.Fields))
	}
	for i, f := range fields {
		if f.Name != msg.Fields[i].Name {
			return errors.Newf("%s: field %d of %s is %s, want %s", b.Name(), i, msg.Name, f.Name, msg.Fields[i].Name)
		}
	}

	wantConstants := 0
	seen := make(map[string]bool)
	for _, f := range msg.Fields {
		if ref, ok := f.Type.(schema.EnumRef); ok && !seen[ref.Name] {
			seen[ref.Name] = true
			if e, ok := b.reg.Enum(ref.Name); ok {
				wantConstants += len(e.Values)
			}
		}
	}
	constants := Constants(def.Elements)
	if got := len(constants); got != wantConstants {
		return errors.Newf("%s: parsed %d constants in %s, want %d", b.Name(), got, msg.Name, wantConstants)
	}

	names := make(map[string]bool, len(fields)+len(constants))
	for _, f := range fields {
		names[f.Name] = true
	}
	for _, c := range constants {
		if names[c.Name] {
			return errors.Newf("%s: %s declares %s twice", b.Name(), msg.Name, c.Name)
		}
		names[c.Name] = true
	}
	return nil
}
