// Package protobuf renders proto3 definitions and the matching descriptors.
//
// Field numbers are the schema field IDs. Enums are declared inside the
// message that owns them; enums without an owner get a file of their own.
package protobuf

import (
	"fmt"
	"sort"
	"strings"

	"github.com/teranos/schemagen/codegen"
	"github.com/teranos/schemagen/errors"
	"github.com/teranos/schemagen/naming"
	"github.com/teranos/schemagen/registry"
	"github.com/teranos/schemagen/resolve"
	"github.com/teranos/schemagen/schema"
)

const (
	timestampImport = "google/protobuf/timestamp.proto"
	durationImport  = "google/protobuf/duration.proto"
)

// Backend renders Protobuf.
type Backend struct {
	reg  *registry.Registry
	res  *resolve.Resolver
	opts codegen.Options
}

// New returns a Protobuf backend over reg.
func New(reg *registry.Registry, opts codegen.Options) *Backend {
	return &Backend{reg: reg, res: reg.Resolver(), opts: opts}
}

func (b *Backend) Name() string                         { return "protobuf" }
func (b *Backend) FileExtension() string                { return "proto" }
func (b *Backend) EnumPlacement() codegen.EnumPlacement { return codegen.EnumsWithParent }

// Path returns "<namespace>/<name>.proto"; imports use the same path.
func (b *Backend) Path(name string) string {
	return b.opts.Namespace + "/" + name + ".proto"
}

// WellKnown returns nothing; time and duration use google.protobuf types.
func (b *Backend) WellKnown() ([]codegen.Artifact, error) { return nil, nil }

// RenderDefault always returns false: proto3 fields have no declared defaults.
func (b *Backend) RenderDefault(*schema.Field) (string, bool) { return "", false }

// RenderArray renders arrays as repeated fields. Fixed lengths survive only as a comment.
func (b *Backend) RenderArray(elem string, arr schema.Array) codegen.ArrayDecl {
	decl := codegen.ArrayDecl{Type: "repeated " + elem}
	if arr.Kind == schema.ArrayFixed {
		decl.Note = fmt.Sprintf("length %d", arr.Length)
	}
	return decl
}

// field is the rendering plan of one message field, shared by the text and
// the descriptor so both always agree.
type field struct {
	schema   *schema.Field
	ref      typeRef
	typeName string
	repeated bool
	note     string
}

type fieldKind int

const (
	scalarKind fieldKind = iota
	enumKind
	messageKind
)

// typeVisitor names the type of a field declared inside owner.
type typeVisitor struct {
	ns    string
	owner string
}

type typeRef struct {
	name string
	kind fieldKind
	// fullName is the fully-qualified message or enum name used by descriptors, with a leading dot
	fullName string
	scalar   schema.PrimitiveKind
}

var scalarNames = map[schema.PrimitiveKind]string{
	schema.KindString:  "string",
	schema.KindFloat64: "double",
	schema.KindUint32:  "uint32",
	schema.KindBoolean: "bool",
	schema.KindBytes:   "bytes",
}

var wellKnownMessages = map[schema.PrimitiveKind]string{
	schema.KindTime:     "google.protobuf.Timestamp",
	schema.KindDuration: "google.protobuf.Duration",
}

func (v typeVisitor) Primitive(kind schema.PrimitiveKind) typeRef {
	if name, ok := wellKnownMessages[kind]; ok {
		return typeRef{name: name, kind: messageKind, fullName: "." + name}
	}
	return typeRef{name: scalarNames[kind], kind: scalarKind, scalar: kind}
}

func (v typeVisitor) Enum(e *schema.Enum) typeRef {
	qualified := v.ns + "." + e.Name
	if e.Parent != "" {
		qualified = v.ns + "." + e.Parent + "." + e.Name
	}
	name := qualified
	if e.Parent == v.owner {
		name = e.Name
	}
	return typeRef{name: name, kind: enumKind, fullName: "." + qualified}
}

func (v typeVisitor) Nested(m *schema.Message) typeRef {
	qualified := v.ns + "." + m.Name
	return typeRef{name: qualified, kind: messageKind, fullName: "." + qualified}
}

func (b *Backend) plan(msg *schema.Message) ([]field, []string, error) {
	imports := make(map[string]bool)
	fields := make([]field, 0, len(msg.Fields))
	for i := range msg.Fields {
		f := &msg.Fields[i]
		res, err := b.res.Resolve(f)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "message %s", msg.Name)
		}
		ref := resolve.Visit[typeRef](res, typeVisitor{ns: b.opts.Namespace, owner: msg.Name})

		switch res := res.(type) {
		case resolve.Primitive:
			switch res.Kind {
			case schema.KindTime:
				imports[timestampImport] = true
			case schema.KindDuration:
				imports[durationImport] = true
			}
		case resolve.Enum:
			owner := res.Enum.Parent
			if owner == "" {
				owner = res.Enum.Name
			}
			if owner != msg.Name {
				imports[b.Path(owner)] = true
			}
		case resolve.Nested:
			imports[b.Path(res.Message.Name)] = true
		}

		pf := field{schema: f, ref: ref, typeName: ref.name}
		if f.Array.IsArray() {
			decl := b.RenderArray(ref.name, f.Array)
			pf.typeName, pf.repeated, pf.note = decl.Type, true, decl.Note
		}
		fields = append(fields, pf)
	}

	sorted := make([]string, 0, len(imports))
	for imp := range imports {
		sorted = append(sorted, imp)
	}
	sort.Strings(sorted)
	return fields, sorted, nil
}

func (b *Backend) writePreamble(sb *strings.Builder, imports []string) {
	fmt.Fprintf(sb, "// %s\n\n", b.opts.GeneratedBy())
	sb.WriteString("syntax = \"proto3\";\n\n")
	for _, imp := range imports {
		fmt.Fprintf(sb, "import %q;\n", imp)
	}
	if len(imports) > 0 {
		sb.WriteString("\n")
	}
	fmt.Fprintf(sb, "package %s;\n\n", b.opts.Namespace)
}

// RenderMessage returns the .proto file of msg.
func (b *Backend) RenderMessage(msg *schema.Message) (string, error) {
	fields, imports, err := b.plan(msg)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	b.writePreamble(&sb, imports)
	codegen.WriteDoc(&sb, "// ", msg.Description)
	fmt.Fprintf(&sb, "message %s {\n", msg.Name)
	for _, e := range b.reg.EnumsOf(msg.Name) {
		writeEnum(&sb, e, "  ")
	}
	for i, f := range fields {
		if i > 0 {
			sb.WriteString("\n")
		}
		codegen.WriteDoc(&sb, "  // ", codegen.JoinDoc(f.schema.Description, f.note))
		fmt.Fprintf(&sb, "  %s %s = %d;\n", f.typeName, f.schema.Name, f.schema.ID)
	}
	sb.WriteString("}\n")
	return sb.String(), nil
}

// RenderEnum returns a complete file for an enum without a parent, and the
// nested declaration for an enum that has one.
func (b *Backend) RenderEnum(e *schema.Enum) (string, error) {
	var sb strings.Builder
	if e.Parent != "" {
		writeEnum(&sb, e, "  ")
		return sb.String(), nil
	}
	b.writePreamble(&sb, nil)
	writeEnum(&sb, e, "")
	return sb.String(), nil
}

// enumValues returns the values in proto3 order: the code-0 value first,
// synthesized as <ENUM>_UNSPECIFIED when the enum declares none.
func enumValues(e *schema.Enum) []schema.EnumValue {
	values := make([]schema.EnumValue, 0, len(e.Values)+1)
	if !e.HasZero() {
		values = append(values, schema.EnumValue{Name: naming.UnspecifiedValue(e.Name)})
	}
	for _, v := range e.Values {
		if v.Value == 0 {
			values = append(values, v)
		}
	}
	for _, v := range e.Values {
		if v.Value != 0 {
			values = append(values, v)
		}
	}
	return values
}

func writeEnum(sb *strings.Builder, e *schema.Enum, indent string) {
	codegen.WriteDoc(sb, indent+"// ", e.Description)
	fmt.Fprintf(sb, "%senum %s {\n", indent, e.Name)
	for i, v := range enumValues(e) {
		if i > 0 {
			sb.WriteString("\n")
		}
		codegen.WriteDoc(sb, indent+"  // ", v.Description)
		fmt.Fprintf(sb, "%s  %s = %d;\n", indent, v.Name, v.Value)
	}
	fmt.Fprintf(sb, "%s}\n", indent)
}
