// Package typescript renders TypeScript type declarations, one module per
// schema, importing dependencies from sibling modules.
package typescript

import (
	"fmt"
	"sort"
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
	schema.KindFloat64:  "number",
	schema.KindUint32:   "number",
	schema.KindBoolean:  "boolean",
	schema.KindBytes:    "Uint8Array",
	schema.KindTime:     schema.TimeName,
	schema.KindDuration: schema.DurationName,
}

// Backend renders TypeScript.
type Backend struct {
	res  *resolve.Resolver
	opts codegen.Options
}

// New returns a TypeScript backend over reg.
func New(reg *registry.Registry, opts codegen.Options) *Backend {
	return &Backend{res: reg.Resolver(), opts: opts}
}

func (b *Backend) Name() string                         { return "typescript" }
func (b *Backend) FileExtension() string                { return "ts" }
func (b *Backend) Path(name string) string              { return naming.DisplayName(name) + ".ts" }
func (b *Backend) EnumPlacement() codegen.EnumPlacement { return codegen.EnumsSeparate }

type elementType struct{}

func (elementType) Primitive(kind schema.PrimitiveKind) string { return primitiveTypes[kind] }
func (elementType) Enum(e *schema.Enum) string                 { return naming.DisplayName(e.Name) }
func (elementType) Nested(m *schema.Message) string            { return naming.DisplayName(m.Name) }

// RenderDefault returns the TypeScript literal of f's default; absent defaults have none.
func (b *Backend) RenderDefault(f *schema.Field) (string, bool) {
	v := defaults.For(f, b.res.MustResolve(f))
	switch v.Kind {
	case defaults.String:
		return strconv.Quote(v.String), true
	case defaults.Integer:
		return strconv.FormatUint(v.Integer, 10), true
	case defaults.Float:
		return strconv.FormatFloat(v.Float, 'g', -1, 64), true
	case defaults.Boolean:
		return strconv.FormatBool(v.Boolean), true
	case defaults.Bytes:
		return "new Uint8Array()", true
	case defaults.EmptySequence:
		return "[]", true
	case defaults.EnumMember:
		return naming.DisplayName(v.Enum.Name) + "." + memberName(v.Member.Name), true
	}
	return "", false
}

// RenderArray renders T[] for variable arrays and a tuple for fixed ones.
func (b *Backend) RenderArray(elem string, arr schema.Array) codegen.ArrayDecl {
	if arr.Kind != schema.ArrayFixed {
		if strings.ContainsAny(elem, " |") {
			elem = "(" + elem + ")"
		}
		return codegen.ArrayDecl{Type: elem + "[]"}
	}
	elems := make([]string, arr.Length)
	for i := range elems {
		elems[i] = elem
	}
	return codegen.ArrayDecl{Type: "[" + strings.Join(elems, ", ") + "]"}
}

// memberName converts an enum value name to a TypeScript member name.
func memberName(name string) string {
	member, _ := naming.Escape(naming.TargetTypeScript, naming.TitleCase(name))
	return member
}

// writeJSDoc writes a /** */ block; a single line stays on one line.
func writeJSDoc(sb *strings.Builder, indent string, lines []string) {
	switch len(lines) {
	case 0:
		return
	case 1:
		fmt.Fprintf(sb, "%s/** %s */\n", indent, lines[0])
		return
	}
	fmt.Fprintf(sb, "%s/**\n", indent)
	for _, line := range lines {
		sb.WriteString(strings.TrimRight(fmt.Sprintf("%s * %s", indent, line), " "))
		sb.WriteString("\n")
	}
	fmt.Fprintf(sb, "%s */\n", indent)
}

func (b *Backend) header(sb *strings.Builder) {
	fmt.Fprintf(sb, "// %s\n\n", b.opts.GeneratedBy())
}

// imports returns the type names msg imports, sorted.
func (b *Backend) imports(msg *schema.Message) ([]string, error) {
	deps, err := b.res.DirectDependencies(msg)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, d := range deps {
		if d.Name == schema.ByteVectorName {
			continue
		}
		names = append(names, naming.DisplayName(d.Name))
	}
	sort.Strings(names)
	return names, nil
}

// DocsLink returns the documentation URL of a schema, or "" when links are disabled.
func (b *Backend) DocsLink(name string) string {
	if b.opts.DocsURL == "" {
		return ""
	}
	return strings.TrimRight(b.opts.DocsURL, "/") + "/" + naming.KebabCase(name)
}

// RenderMessage returns the module declaring msg as an exported type.
func (b *Backend) RenderMessage(msg *schema.Message) (string, error) {
	imports, err := b.imports(msg)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	b.header(&sb)
	for _, name := range imports {
		fmt.Fprintf(&sb, "import { %s } from \"./%s\";\n", name, name)
	}
	if len(imports) > 0 {
		sb.WriteString("\n")
	}

	doc := codegen.DocLines(msg.Description)
	if link := b.DocsLink(msg.Name); link != "" {
		doc = append(doc, "@see "+link)
	}
	writeJSDoc(&sb, "", doc)
	fmt.Fprintf(&sb, "export type %s = {\n", naming.DisplayName(msg.Name))
	for i := range msg.Fields {
		f := &msg.Fields[i]
		if i > 0 {
			sb.WriteString("\n")
		}
		res, err := b.res.Resolve(f)
		if err != nil {
			return "", errors.Wrapf(err, "message %s", msg.Name)
		}
		typ := resolve.Visit[string](res, elementType{})
		if f.Array.IsArray() {
			typ = b.RenderArray(typ, f.Array).Type
		}

		fieldDoc := codegen.DocLines(f.Description)
		if f.Default != nil {
			if lit, ok := b.RenderDefault(f); ok {
				fieldDoc = append(fieldDoc, "@default "+lit)
			}
		}
		writeJSDoc(&sb, "  ", fieldDoc)
		fmt.Fprintf(&sb, "  %s: %s;\n", f.Name, typ)
	}
	sb.WriteString("};\n")
	return sb.String(), nil
}

// RenderEnum returns the module declaring e as an exported enum.
func (b *Backend) RenderEnum(e *schema.Enum) (string, error) {
	var sb strings.Builder
	b.header(&sb)
	writeJSDoc(&sb, "", codegen.DocLines(e.Description))
	fmt.Fprintf(&sb, "export enum %s {\n", naming.DisplayName(e.Name))
	for i, v := range e.Values {
		if i > 0 {
			sb.WriteString("\n")
		}
		writeJSDoc(&sb, "  ", codegen.DocLines(v.Description))
		fmt.Fprintf(&sb, "  %s = %d,\n", memberName(v.Name), v.Value)
	}
	sb.WriteString("}\n")
	return sb.String(), nil
}

// WellKnown returns Time.ts and Duration.ts.
func (b *Backend) WellKnown() ([]codegen.Artifact, error) {
	types := []struct {
		name, doc string
	}{
		{schema.DurationName, "A signed span of time, composed of seconds and nanoseconds"},
		{schema.TimeName, "A timestamp composed of seconds and nanoseconds"},
	}
	artifacts := make([]codegen.Artifact, 0, len(types))
	for _, wk := range types {
		var sb strings.Builder
		b.header(&sb)
		writeJSDoc(&sb, "", []string{wk.doc})
		fmt.Fprintf(&sb, "export type %s = {\n  sec: number;\n  nsec: number;\n};\n", wk.name)
		artifacts = append(artifacts, codegen.Artifact{
			Backend: b.Name(),
			Name:    wk.name,
			Kind:    codegen.WellKnownFile,
			Path:    b.Path(wk.name),
			Content: sb.String(),
		})
	}
	return artifacts, nil
}
