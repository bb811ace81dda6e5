// Package jsonschema renders messages as self-contained JSON Schema documents.
//
// Nested messages are inlined, time and duration become {sec, nsec} objects,
// and properties keep field declaration order.
package jsonschema

import (
	"bytes"
	"strings"

	"github.com/goccy/go-json"
	jsv "github.com/santhosh-tekuri/jsonschema/v6"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/teranos/schemagen/codegen"
	"github.com/teranos/schemagen/defaults"
	"github.com/teranos/schemagen/errors"
	"github.com/teranos/schemagen/registry"
	"github.com/teranos/schemagen/resolve"
	"github.com/teranos/schemagen/schema"
)

// node is one JSON Schema object. Field order is the output key order.
type node struct {
	Comment         string                                 `json:"$comment,omitempty"`
	Const           *uint32                                `json:"const,omitempty"`
	Title           string                                 `json:"title,omitempty"`
	Description     string                                 `json:"description,omitempty"`
	Type            string                                 `json:"type,omitempty"`
	ContentEncoding string                                 `json:"contentEncoding,omitempty"`
	OneOf           []*node                                `json:"oneOf,omitempty"`
	Items           interface{}                            `json:"items,omitempty"`
	Properties      *orderedmap.OrderedMap[string, *node] `json:"properties,omitempty"`
}

// Backend renders JSON Schema.
type Backend struct {
	res  *resolve.Resolver
	opts codegen.Options
}

// New returns a JSON Schema backend over reg.
func New(reg *registry.Registry, opts codegen.Options) *Backend {
	return &Backend{res: reg.Resolver(), opts: opts}
}

func (b *Backend) Name() string                         { return "jsonschema" }
func (b *Backend) FileExtension() string                { return "json" }
func (b *Backend) Path(name string) string              { return name + ".json" }
func (b *Backend) EnumPlacement() codegen.EnumPlacement { return codegen.EnumsInline }

// WellKnown returns nothing; time and duration are inlined.
func (b *Backend) WellKnown() ([]codegen.Artifact, error) { return nil, nil }

// RenderMessage returns the schema document of msg.
func (b *Backend) RenderMessage(msg *schema.Message) (string, error) {
	return encode(b.messageNode(msg))
}

// RenderEnum returns the oneOf schema of e as used by enum fields.
func (b *Backend) RenderEnum(e *schema.Enum) (string, error) {
	return encode(enumNode(e, e.Description))
}

// RenderDefault returns the JSON literal of f's default.
func (b *Backend) RenderDefault(f *schema.Field) (string, bool) {
	v, ok := defaults.For(f, b.res.MustResolve(f)).JSON()
	if !ok {
		return "", false
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return "", false
	}
	return string(raw), true
}

// RenderArray wraps the JSON text of an element schema in an array schema.
// Fixed and variable arrays render alike.
func (b *Backend) RenderArray(elem string, arr schema.Array) codegen.ArrayDecl {
	raw, err := json.Marshal(arrayNode(json.RawMessage(elem), ""))
	if err != nil {
		return codegen.ArrayDecl{}
	}
	return codegen.ArrayDecl{Type: string(raw)}
}

// VerifyMessage compiles the document and validates the all-defaults instance of msg against it.
func (b *Backend) VerifyMessage(msg *schema.Message, content string) error {
	doc, err := jsv.UnmarshalJSON(strings.NewReader(content))
	if err != nil {
		return errors.Wrap(err, "failed to unmarshal JSON schema")
	}
	url := b.Path(msg.Name)
	compiler := jsv.NewCompiler()
	if err := compiler.AddResource(url, doc); err != nil {
		return errors.Wrap(err, "failed to add resource")
	}
	compiled, err := compiler.Compile(url)
	if err != nil {
		return errors.Wrap(err, "failed to compile schema")
	}

	instance, err := defaults.Instance(b.res, msg)
	if err != nil {
		return err
	}
	if err := compiled.Validate(instance); err != nil {
		return errors.WithDetail(
			errors.Wrap(err, "default instance does not validate"),
			"a field default is outside the schema of its field")
	}
	return nil
}

func (b *Backend) messageNode(msg *schema.Message) *node {
	props := orderedmap.New[string, *node]()
	for i := range msg.Fields {
		f := &msg.Fields[i]
		props.Set(f.Name, b.fieldNode(f))
	}
	return &node{
		Comment:     b.opts.GeneratedBy(),
		Title:       msg.Name,
		Description: msg.Description,
		Type:        "object",
		Properties:  props,
	}
}

// fieldNode renders f. Array items keep what the element visitor produced:
// nested schemas their own description, enums the field description, and
// primitives none.
func (b *Backend) fieldNode(f *schema.Field) *node {
	elem := resolve.Visit[*node](b.res.MustResolve(f), elementVisitor{b: b, field: f})
	if f.Array.IsArray() {
		return arrayNode(elem, f.Description)
	}
	elem.Description = f.Description
	return elem
}

type elementVisitor struct {
	b     *Backend
	field *schema.Field
}

func (v elementVisitor) Primitive(kind schema.PrimitiveKind) *node { return primitiveNode(kind) }
func (v elementVisitor) Enum(e *schema.Enum) *node                  { return enumNode(e, v.field.Description) }
func (v elementVisitor) Nested(m *schema.Message) *node             { return v.b.messageNode(m) }

func primitiveNode(kind schema.PrimitiveKind) *node {
	switch kind {
	case schema.KindString:
		return &node{Type: "string"}
	case schema.KindBytes:
		return &node{Type: "string", ContentEncoding: "base64"}
	case schema.KindFloat64:
		return &node{Type: "number"}
	case schema.KindUint32:
		return &node{Type: "integer"}
	case schema.KindBoolean:
		return &node{Type: "boolean"}
	case schema.KindTime:
		return stampNode(schema.TimeName)
	case schema.KindDuration:
		return stampNode(schema.DurationName)
	}
	panic(errors.AssertionFailedf("unhandled primitive kind %s", kind))
}

func stampNode(title string) *node {
	props := orderedmap.New[string, *node]()
	props.Set("sec", &node{Type: "integer"})
	props.Set("nsec", &node{Type: "integer"})
	return &node{Title: title, Type: "object", Properties: props}
}

func enumNode(e *schema.Enum, description string) *node {
	n := &node{Title: e.Name, Description: description}
	if e.Description != "" {
		n.Title += ": " + e.Description
	}
	for _, v := range e.Values {
		code := v.Value
		n.OneOf = append(n.OneOf, &node{Const: &code, Title: v.Name, Description: v.Description})
	}
	return n
}

// arrayNode does not bound fixed arrays: their default is the empty sequence.
func arrayNode(items interface{}, description string) *node {
	return &node{Description: description, Type: "array", Items: items}
}

// encode writes v with two-space indentation and a trailing newline.
func encode(v interface{}) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "", errors.Wrap(err, "failed to encode JSON schema")
	}
	return buf.String(), nil
}
