// Package codegen renders a validated registry into schema definitions for
// several target formats.
//
// # Architecture
//
// The package uses a two-layer design:
//  1. The registry, resolver, naming and defaults packages answer every
//     format-independent question (types, dependency order, names, defaults)
//  2. Format-specific backends (jsonschema/, protobuf/, flatbuffers/, rosmsg/,
//     omgidl/, typescript/) only decide syntax
//
// # Design Decisions
//
//   - Backends implement one Backend interface; field types are dispatched
//     through resolve.Visitor, so a new field kind breaks every backend's build
//   - Run fans work out per (backend, file) but collects results into fixed
//     slots, so output order never depends on scheduling
//   - Deterministic output enables CI validation via the check command
//   - A failure in any backend fails the run; partial output is never written
//
// # Implementing a New Backend
//
//  1. Create package: codegen/<format>/backend.go
//  2. Implement the Backend interface (and Skipper or Verifier if needed)
//  3. Register the constructor in codegen/backends
//  4. Add tests next to the backend
package codegen

import (
	"github.com/teranos/schemagen/schema"
)

// Backend renders schemas into one target format.
type Backend interface {
	// Name identifies the backend in configuration, logs and output directories (e.g. "protobuf")
	Name() string

	// FileExtension returns the extension of generated files without the dot (e.g. "proto")
	FileExtension() string

	// Path returns the file path, relative to the backend directory, of the schema called name
	Path(name string) string

	// EnumPlacement tells the runner which enums get files of their own
	EnumPlacement() EnumPlacement

	// RenderMessage returns the complete file for msg
	RenderMessage(msg *schema.Message) (string, error)

	// RenderEnum returns the declaration of e. For EnumsSeparate backends this is a complete file.
	RenderEnum(e *schema.Enum) (string, error)

	// RenderDefault returns the literal of f's canonical default, or false when
	// the format has no syntax for it
	RenderDefault(f *schema.Field) (string, bool)

	// RenderArray returns the declaration parts for an array of elem
	RenderArray(elem string, arr schema.Array) ArrayDecl

	// WellKnown returns the shared files for Time, Duration and ByteVector
	WellKnown() ([]Artifact, error)
}

// Skipper is implemented by backends that do not render some messages.
type Skipper interface {
	Skip(msg *schema.Message) bool
}

// Verifier is implemented by backends that can check their own output with a
// parser or validator for the target format.
type Verifier interface {
	VerifyMessage(msg *schema.Message, content string) error
}

// EnumPlacement describes where a format declares enums.
type EnumPlacement int

const (
	// EnumsInline: enums only appear inside the messages that use them
	EnumsInline EnumPlacement = iota
	// EnumsWithParent: enums are declared in their parent's file; enums without a parent get their own file
	EnumsWithParent
	// EnumsSeparate: every enum gets its own file
	EnumsSeparate
)

// ArrayDecl is the rendering of an array-typed field.
type ArrayDecl struct {
	// Type is the type expression, e.g. "repeated double" or "[foxglove.Point3]"
	Type string
	// NameSuffix follows the field name, e.g. "[3]" for OMG IDL fixed arrays
	NameSuffix string
	// Note is a documentation line for shapes the format cannot express, e.g. "length 3"
	Note string
}

// Options are the format-independent settings shared by all backends.
type Options struct {
	// Namespace is the package/module/namespace of generated definitions
	Namespace string
	// RosPackage is the ROS package that owns generated messages
	RosPackage string
	// Provenance is the generator reference in every file header
	Provenance string
	// DocsURL is the base of per-schema documentation links; empty disables links
	DocsURL string
}

// DefaultOptions returns the settings used when no configuration overrides them.
func DefaultOptions() Options {
	return Options{
		Namespace:  "foxglove",
		RosPackage: "foxglove_msgs",
		Provenance: "https://github.com/foxglove/foxglove-sdk",
		DocsURL:    "https://docs.foxglove.dev/docs/visualization/message-schemas",
	}
}

// GeneratedBy is the provenance sentence used in headers.
func (o Options) GeneratedBy() string {
	return "Generated by " + o.Provenance
}
