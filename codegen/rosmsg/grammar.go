package rosmsg

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/teranos/schemagen/errors"
)

// The grammar reads ROS message text as published in connection headers: a
// list of fields and constants, optionally followed by the definitions of
// dependencies, each introduced by a line of '=' and "MSG: <type>". Comments
// are dropped. It is used to lint generated output, not to load schemas.

// nolint:gochecknoglobals
var (
	msgLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Comment", Pattern: `#[^\n]*`},
		{Name: "Newline", Pattern: `\s*[\n\r]+`},
		{Name: "Float", Pattern: `[+-]?[0-9]+\.[0-9]+`},
		{Name: "Integer", Pattern: `[+-]?[0-9]+`},
		{Name: "Word", Pattern: `[a-zA-Z0-9\_]+`},
		{Name: "Whitespace", Pattern: `[\s\t]+`},
		{Name: "LBracket", Pattern: `\[`},
		{Name: "RBracket", Pattern: `\]`},
		{Name: "Slash", Pattern: `/`},
		{Name: "Colon", Pattern: `:`},
		{Name: "Equals", Pattern: `=`},
	})

	definitionParser = participle.MustBuild[Definition](
		participle.Lexer(msgLexer),
		participle.Union[Element](Constant{}, Field{}),
		participle.Elide("Whitespace", "Newline", "Comment"),
		participle.UseLookahead(1000),
	)
)

// Definition is a parsed message text with its dependency sections.
type Definition struct {
	Elements     []Element    `parser:"@@*"`
	Dependencies []Dependency `parser:"@@*"`
}

// Dependency is one "MSG:" section of a full definition.
type Dependency struct {
	Type     string    `parser:"Equals+ 'MSG' Colon @(Word ( Slash Word )*)"`
	Elements []Element `parser:"@@*"`
}

// Field is a "type name" line.
type Field struct {
	Type *Type  `parser:"@@"`
	Name string `parser:"@Word"`
}

// Constant is a "type NAME=value" line.
type Constant struct {
	Type  *Type         `parser:"@@"`
	Name  string        `parser:"@Word Equals"`
	Value ConstantValue `parser:"@@"`
}

// ConstantValue holds exactly one of its members.
type ConstantValue struct {
	String *string  `parser:"@Word"`
	Int    *int64   `parser:"| @Integer"`
	Float  *float64 `parser:"| @Float"`
}

// Type is a possibly package-qualified type with an optional array suffix.
type Type struct {
	Name      string `parser:"@(Word ( Slash Word )*)"`
	Array     bool   `parser:"@LBracket?"`
	FixedSize int    `parser:"(( @Integer RBracket ) | RBracket)?"`
}

// Element is a Field or a Constant.
type Element interface{ element() }

func (Field) element()    {}
func (Constant) element() {}

// Parse parses message text.
func Parse(text string) (*Definition, error) {
	def, err := definitionParser.ParseString("", text)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse message definition")
	}
	return def, nil
}

// Fields returns the fields of elements in order.
func Fields(elements []Element) []Field {
	var out []Field
	for _, e := range elements {
		if f, ok := e.(Field); ok {
			out = append(out, f)
		}
	}
	return out
}

// Constants returns the constants of elements in order.
func Constants(elements []Element) []Constant {
	var out []Constant
	for _, e := range elements {
		if c, ok := e.(Constant); ok {
			out = append(out, c)
		}
	}
	return out
}
