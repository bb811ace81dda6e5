// Package omgidl renders OMG IDL 4 definitions, one module-scoped struct or
// enum per file.
package omgidl

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/teranos/schemagen/codegen"
	"github.com/teranos/schemagen/defaults"
	"github.com/teranos/schemagen/errors"
	"github.com/teranos/schemagen/naming"
	"github.com/teranos/schemagen/registry"
	"github.com/teranos/schemagen/resolve"
	"github.com/teranos/schemagen/schema"
)

var primitiveTypes = map[schema.PrimitiveKind]string{
	schema.KindString:   "string",
	schema.KindFloat64:  "double",
	schema.KindUint32:   "uint32",
	schema.KindBoolean:  "boolean",
	schema.KindBytes:    "sequence<uint8>",
	schema.KindTime:     schema.TimeName,
	schema.KindDuration: schema.DurationName,
}

// Backend renders OMG IDL.
type Backend struct {
	reg  *registry.Registry
	res  *resolve.Resolver
	opts codegen.Options
}

// New returns an OMG IDL backend over reg.
func New(reg *registry.Registry, opts codegen.Options) *Backend {
	return &Backend{reg: reg, res: reg.Resolver(), opts: opts}
}

func (b *Backend) Name() string                         { return "omgidl" }
func (b *Backend) FileExtension() string                { return "idl" }
func (b *Backend) EnumPlacement() codegen.EnumPlacement { return codegen.EnumsSeparate }

// Path returns "<namespace>/<name>.idl", the path used by #include.
func (b *Backend) Path(name string) string {
	return b.opts.Namespace + "/" + name + ".idl"
}

type elementType struct{}

func (elementType) Primitive(kind schema.PrimitiveKind) string { return primitiveTypes[kind] }
func (elementType) Enum(e *schema.Enum) string                 { return e.Name }
func (elementType) Nested(m *schema.Message) string            { return m.Name }

// RenderDefault returns the @default literal of a field. Only explicit
// defaults are rendered; IDL consumers apply the table defaults themselves.
func (b *Backend) RenderDefault(f *schema.Field) (string, bool) {
	v := defaults.For(f, b.res.MustResolve(f))
	if !v.Explicit {
		return "", false
	}
	switch v.Kind {
	case defaults.String:
		return strconv.Quote(v.String), true
	case defaults.Integer:
		return strconv.FormatUint(v.Integer, 10), true
	case defaults.Float:
		s := strconv.FormatFloat(v.Float, 'f', -1, 64)
		if !strings.ContainsAny(s, ".eE") {
			s += ".0"
		}
		return s, true
	case defaults.Boolean:
		return strings.ToUpper(strconv.FormatBool(v.Boolean)), true
	}
	return "", false
}

// RenderArray uses sequence<T> for variable arrays and a declarator suffix for fixed ones.
func (b *Backend) RenderArray(elem string, arr schema.Array) codegen.ArrayDecl {
	if arr.Kind == schema.ArrayFixed {
		return codegen.ArrayDecl{Type: elem, NameSuffix: fmt.Sprintf("[%d]", arr.Length)}
	}
	return codegen.ArrayDecl{Type: "sequence<" + elem + ">"}
}

// includes lists the files of the direct dependencies of msg.
func (b *Backend) includes(msg *schema.Message) ([]string, error) {
	deps, err := b.res.DirectDependencies(msg)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, d := range deps {
		if d.Name == schema.ByteVectorName {
			continue
		}
		out = append(out, b.Path(d.Name))
	}
	return out, nil
}

func (b *Backend) writeFile(sb *strings.Builder, includes []string, body string) {
	fmt.Fprintf(sb, "// %s\n\n", b.opts.GeneratedBy())
	for _, inc := range includes {
		fmt.Fprintf(sb, "#include %q\n", inc)
	}
	if len(includes) > 0 {
		sb.WriteString("\n")
	}
	fmt.Fprintf(sb, "module %s {\n\n%s\n};\n", b.opts.Namespace, body)
}

// RenderMessage returns the .idl file of msg.
func (b *Backend) RenderMessage(msg *schema.Message) (string, error) {
	includes, err := b.includes(msg)
	if err != nil {
		return "", err
	}
	body, err := b.structBody(msg)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	b.writeFile(&sb, includes, body)
	return sb.String(), nil
}

func (b *Backend) structBody(msg *schema.Message) (string, error) {
	var body strings.Builder
	codegen.WriteDoc(&body, "// ", msg.Description)
	fmt.Fprintf(&body, "struct %s {\n", msg.Name)
	for i := range msg.Fields {
		f := &msg.Fields[i]
		if i > 0 {
			body.WriteString("\n")
		}
		res, err := b.res.Resolve(f)
		if err != nil {
			return "", errors.Wrapf(err, "message %s", msg.Name)
		}
		decl := codegen.ArrayDecl{Type: resolve.Visit[string](res, elementType{})}
		if f.Array.IsArray() {
			decl = b.RenderArray(decl.Type, f.Array)
		}
		id := codegen.FieldIdentifier(naming.TargetOMGIDL, f.Name)

		codegen.WriteDoc(&body, "  // ", codegen.JoinDoc(f.Description, id.Note))
		if lit, ok := b.RenderDefault(f); ok {
			fmt.Fprintf(&body, "  @default(%s)\n", lit)
		}
		fmt.Fprintf(&body, "  %s %s%s;\n", decl.Type, id.Name, decl.NameSuffix)
	}
	body.WriteString("};\n")
	return body.String(), nil
}

// RenderEnum returns the .idl file of e, with explicit @value codes.
func (b *Backend) RenderEnum(e *schema.Enum) (string, error) {
	var sb strings.Builder
	b.writeFile(&sb, nil, enumBody(e))
	return sb.String(), nil
}

func enumBody(e *schema.Enum) string {
	var body strings.Builder
	codegen.WriteDoc(&body, "// ", e.Description)
	fmt.Fprintf(&body, "enum %s {\n", e.Name)
	for i, v := range e.Values {
		if i > 0 {
			body.WriteString(",\n\n")
		}
		codegen.WriteDoc(&body, "  // ", v.Description)
		fmt.Fprintf(&body, "  @value(%d)\n  %s", v.Value, v.Name)
	}
	body.WriteString("\n};\n")
	return body.String()
}

// FullDefinition returns msg and everything it depends on as one
// self-contained IDL text, dependencies first, as stored in MCAP schema
// records. Each definition keeps its own module block.
func (b *Backend) FullDefinition(msg *schema.Message) (string, error) {
	deps, err := b.res.TransitiveDependencyOrder(msg)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "// %s\n", b.opts.GeneratedBy())
	writeModule := func(body string) {
		fmt.Fprintf(&sb, "\nmodule %s {\n\n%s\n};\n", b.opts.Namespace, body)
	}
	for _, d := range deps {
		switch d.Kind {
		case resolve.WellKnown:
			if body, ok := wellKnownBodies[d.Name]; ok {
				writeModule(body)
			}
		case resolve.EnumDependency:
			e, ok := b.reg.Enum(d.Name)
			if !ok {
				return "", errors.AssertionFailedf("enum %s missing from registry", d.Name)
			}
			writeModule(enumBody(e))
		case resolve.MessageDependency:
			dep, ok := b.reg.Message(d.Name)
			if !ok {
				return "", errors.AssertionFailedf("message %s missing from registry", d.Name)
			}
			body, err := b.structBody(dep)
			if err != nil {
				return "", err
			}
			writeModule(body)
		}
	}
	body, err := b.structBody(msg)
	if err != nil {
		return "", err
	}
	writeModule(body)
	return sb.String(), nil
}

// wellKnownBodies holds the definitions of Time and Duration; bytes arrays
// nest sequences directly, so ByteVector has none.
var wellKnownBodies = map[string]string{
	schema.DurationName: "struct Duration {\n  int32 sec;\n\n  uint32 nsec;\n};\n",
	schema.TimeName:     "struct Time {\n  uint32 sec;\n\n  uint32 nsec;\n};\n",
}

// WellKnown returns Time.idl and Duration.idl.
func (b *Backend) WellKnown() ([]codegen.Artifact, error) {
	names := []string{schema.DurationName, schema.TimeName}
	artifacts := make([]codegen.Artifact, 0, len(names))
	for _, name := range names {
		var sb strings.Builder
		b.writeFile(&sb, nil, wellKnownBodies[name])
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
