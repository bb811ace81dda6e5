// Package flatbuffers renders FlatBuffers schema (.fbs) files.
package flatbuffers

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/teranos/schemagen/codegen"
	"github.com/teranos/schemagen/defaults"
	"github.com/teranos/schemagen/logger"
	"github.com/teranos/schemagen/naming"
	"github.com/teranos/schemagen/registry"
	"github.com/teranos/schemagen/resolve"
	"github.com/teranos/schemagen/schema"
)

// widthTypes maps an enum width to its backing integer type.
var widthTypes = map[schema.Width]string{
	schema.Width8:  "ubyte",
	schema.Width16: "ushort",
	schema.Width32: "uint",
}

var scalarTypes = map[schema.PrimitiveKind]string{
	schema.KindString:   "string",
	schema.KindFloat64:  "double",
	schema.KindUint32:   "uint32",
	schema.KindBoolean:  "bool",
	schema.KindBytes:    "[uint8]",
	schema.KindTime:     schema.TimeName,
	schema.KindDuration: schema.DurationName,
}

// Backend renders FlatBuffers.
type Backend struct {
	reg  *registry.Registry
	res  *resolve.Resolver
	opts codegen.Options
}

// New returns a FlatBuffers backend over reg.
func New(reg *registry.Registry, opts codegen.Options) *Backend {
	return &Backend{reg: reg, res: reg.Resolver(), opts: opts}
}

func (b *Backend) Name() string                         { return "flatbuffers" }
func (b *Backend) FileExtension() string                { return "fbs" }
func (b *Backend) Path(name string) string              { return name + ".fbs" }
func (b *Backend) EnumPlacement() codegen.EnumPlacement { return codegen.EnumsWithParent }

type elementType struct {
	ns    string
	array bool
}

func (v elementType) Primitive(kind schema.PrimitiveKind) string {
	if kind == schema.KindBytes && v.array {
		// flatc cannot nest vectors; bytes arrays go through a wrapper table.
		return schema.ByteVectorName
	}
	return scalarTypes[kind]
}

func (v elementType) Enum(e *schema.Enum) string      { return e.Name }
func (v elementType) Nested(m *schema.Message) string { return v.ns + "." + m.Name }

// RenderDefault returns the inline default literal of a scalar field.
// Strings only get one when the schema gives a non-empty explicit default.
func (b *Backend) RenderDefault(f *schema.Field) (string, bool) {
	v := defaults.For(f, b.res.MustResolve(f))
	switch v.Kind {
	case defaults.Boolean:
		return strconv.FormatBool(v.Boolean), true
	case defaults.Integer:
		return strconv.FormatUint(v.Integer, 10), true
	case defaults.Float:
		return formatFloat(v.Float), true
	case defaults.EnumMember:
		return v.Member.Name, true
	case defaults.String:
		if v.Explicit && v.String != "" {
			return strconv.Quote(v.String), true
		}
	}
	return "", false
}

// formatFloat always includes a decimal point so flatc reads a float literal.
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// RenderArray renders a vector. Fixed lengths survive only as a doc line.
func (b *Backend) RenderArray(elem string, arr schema.Array) codegen.ArrayDecl {
	decl := codegen.ArrayDecl{Type: "[" + elem + "]"}
	if arr.Kind == schema.ArrayFixed {
		decl.Note = fmt.Sprintf("length %d", arr.Length)
	}
	return decl
}

// fileOf returns the file that declares a dependency.
func (b *Backend) fileOf(d resolve.Dependency) string {
	if d.Kind == resolve.EnumDependency {
		if e, ok := b.reg.Enum(d.Name); ok && e.Parent != "" {
			return e.Parent
		}
	}
	return d.Name
}

// Includes returns the files msg includes: well-known types first, then the
// files of every transitive dependency in lexicographic order, each once.
func (b *Backend) Includes(msg *schema.Message) ([]string, error) {
	deps, err := b.res.TransitiveDependencyOrder(msg)
	if err != nil {
		return nil, err
	}
	seen := map[string]bool{msg.Name: true}
	var wellKnown, rest []string
	for _, d := range deps {
		file := b.fileOf(d)
		if seen[file] {
			continue
		}
		seen[file] = true
		if d.Kind == resolve.WellKnown {
			wellKnown = append(wellKnown, b.Path(file))
		} else {
			rest = append(rest, b.Path(file))
		}
	}
	sort.Strings(rest)
	return append(wellKnown, rest...), nil
}

// slotIDs maps each field ID to its zero-based rank among the message's IDs.
func slotIDs(msg *schema.Message) map[int]int {
	ids := make([]int, 0, len(msg.Fields))
	for _, f := range msg.Fields {
		ids = append(ids, f.ID)
	}
	sort.Ints(ids)
	slots := make(map[int]int, len(ids))
	for i, id := range ids {
		slots[id] = i
	}
	return slots
}

func (b *Backend) header(sb *strings.Builder) {
	fmt.Fprintf(sb, "// %s\n\n", b.opts.GeneratedBy())
}

// RenderMessage returns the .fbs file of msg.
func (b *Backend) RenderMessage(msg *schema.Message) (string, error) {
	includes, err := b.Includes(msg)
	if err != nil {
		return "", err
	}
	if !msg.IDsContiguous() {
		logger.ComponentLogger("flatbuffers").Warnw("Field ids are not contiguous; table slots use their rank",
			logger.FieldSchema, msg.Name)
	}

	var sb strings.Builder
	b.header(&sb)
	for _, inc := range includes {
		fmt.Fprintf(&sb, "include %q;\n", inc)
	}
	if len(includes) > 0 {
		sb.WriteString("\n")
	}
	fmt.Fprintf(&sb, "namespace %s;\n\n", b.opts.Namespace)

	for _, e := range b.reg.EnumsOf(msg.Name) {
		writeEnum(&sb, e)
	}

	slots := slotIDs(msg)
	codegen.WriteDoc(&sb, "/// ", msg.Description)
	fmt.Fprintf(&sb, "table %s {\n", msg.Name)
	for i := range msg.Fields {
		f := &msg.Fields[i]
		if i > 0 {
			sb.WriteString("\n")
		}
		res, err := b.res.Resolve(f)
		if err != nil {
			return "", err
		}
		typ := resolve.Visit[string](res, elementType{ns: b.opts.Namespace, array: f.Array.IsArray()})
		var note string
		if f.Array.IsArray() {
			decl := b.RenderArray(typ, f.Array)
			typ, note = decl.Type, decl.Note
		}
		id := codegen.FieldIdentifier(naming.TargetFlatBuffers, f.Name)

		codegen.WriteDoc(&sb, "  /// ", codegen.JoinDoc(codegen.JoinDoc(f.Description, note), id.Note))
		fmt.Fprintf(&sb, "  %s:%s", id.Name, typ)
		if lit, ok := b.RenderDefault(f); ok {
			fmt.Fprintf(&sb, " = %s", lit)
		}
		fmt.Fprintf(&sb, " (id: %d);\n", slots[f.ID])
	}
	sb.WriteString("}\n\n")
	fmt.Fprintf(&sb, "root_type %s;\n", msg.Name)
	return sb.String(), nil
}

// RenderEnum returns a complete file for an enum without a parent, and the
// bare declaration for an enum that has one.
func (b *Backend) RenderEnum(e *schema.Enum) (string, error) {
	var sb strings.Builder
	if e.Parent == "" {
		b.header(&sb)
		fmt.Fprintf(&sb, "namespace %s;\n\n", b.opts.Namespace)
	}
	writeEnum(&sb, e)
	return sb.String(), nil
}

// writeEnum emits values in ascending code order, which flatc requires.
func writeEnum(sb *strings.Builder, e *schema.Enum) {
	values := append([]schema.EnumValue(nil), e.Values...)
	sort.SliceStable(values, func(i, j int) bool { return values[i].Value < values[j].Value })

	codegen.WriteDoc(sb, "/// ", e.Description)
	fmt.Fprintf(sb, "enum %s : %s {\n", e.Name, widthTypes[e.Width()])
	for i, v := range values {
		if i > 0 {
			sb.WriteString("\n")
		}
		codegen.WriteDoc(sb, "  /// ", v.Description)
		fmt.Fprintf(sb, "  %s = %d,\n", v.Name, v.Value)
	}
	sb.WriteString("}\n")
}

// WellKnown returns ByteVector.fbs, Duration.fbs and Time.fbs.
func (b *Backend) WellKnown() ([]codegen.Artifact, error) {
	bodies := map[string]string{
		schema.ByteVectorName: `/// Used for nesting byte vectors (a vector of vectors) in a table
table ByteVector {
  data:[uint8] (id: 0);
}
`,
		schema.DurationName: `/// A duration of time, composed of seconds and nanoseconds
struct Duration {
  /// Signed seconds of the span of time
  sec:int32;

  /// Nanoseconds offset in the positive direction
  nsec:uint32;
}
`,
		schema.TimeName: `/// A timestamp composed of seconds and nanoseconds
struct Time {
  /// Integer number of seconds since a user-defined epoch
  sec:uint32;

  /// Integer number of nanoseconds since the number of seconds
  nsec:uint32;
}
`,
	}

	artifacts := make([]codegen.Artifact, 0, len(schema.WellKnownNames))
	for _, name := range schema.WellKnownNames {
		var sb strings.Builder
		b.header(&sb)
		fmt.Fprintf(&sb, "namespace %s;\n\n", b.opts.Namespace)
		sb.WriteString(bodies[name])
		artifacts = append(artifacts, codegen.Artifact{
			Backend: b.Name(),
			Name:    name,
			Kind:    codegen.WellKnownFile,
			Path:    b.Path(name),
			Content: sb.String(),
		})
	}
	return artifacts, nil
}
