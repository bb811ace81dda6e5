// Package backends maps backend names from configuration and the command line
// to constructors.
package backends

import (
	"sort"

	"github.com/teranos/schemagen/codegen"
	"github.com/teranos/schemagen/codegen/flatbuffers"
	"github.com/teranos/schemagen/codegen/jsonschema"
	"github.com/teranos/schemagen/codegen/omgidl"
	"github.com/teranos/schemagen/codegen/protobuf"
	"github.com/teranos/schemagen/codegen/rosmsg"
	"github.com/teranos/schemagen/codegen/typescript"
	"github.com/teranos/schemagen/errors"
	"github.com/teranos/schemagen/registry"
)

// Constructor builds a backend over a registry.
type Constructor func(reg *registry.Registry, opts codegen.Options) codegen.Backend

var constructors = map[string]Constructor{
	"jsonschema": func(reg *registry.Registry, opts codegen.Options) codegen.Backend {
		return jsonschema.New(reg, opts)
	},
	"protobuf": func(reg *registry.Registry, opts codegen.Options) codegen.Backend {
		return protobuf.New(reg, opts)
	},
	"flatbuffers": func(reg *registry.Registry, opts codegen.Options) codegen.Backend {
		return flatbuffers.New(reg, opts)
	},
	"ros1": func(reg *registry.Registry, opts codegen.Options) codegen.Backend {
		return rosmsg.New(reg, opts, rosmsg.ROS1)
	},
	"ros2": func(reg *registry.Registry, opts codegen.Options) codegen.Backend {
		return rosmsg.New(reg, opts, rosmsg.ROS2)
	},
	"omgidl": func(reg *registry.Registry, opts codegen.Options) codegen.Backend {
		return omgidl.New(reg, opts)
	},
	"typescript": func(reg *registry.Registry, opts codegen.Options) codegen.Backend {
		return typescript.New(reg, opts)
	},
}

// Names returns every registered backend name, sorted.
func Names() []string {
	names := make([]string, 0, len(constructors))
	for name := range constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New returns the backend called name.
func New(name string, reg *registry.Registry, opts codegen.Options) (codegen.Backend, error) {
	ctor, ok := constructors[name]
	if !ok {
		return nil, errors.WithHintf(
			errors.Markf(errors.ErrUnsupported, "unknown backend %q", name),
			"available backends: %v", Names())
	}
	return ctor(reg, opts), nil
}

// NewAll returns the backends called names in the given order; an empty list selects all.
func NewAll(names []string, reg *registry.Registry, opts codegen.Options) ([]codegen.Backend, error) {
	if len(names) == 0 {
		names = Names()
	}
	out := make([]codegen.Backend, 0, len(names))
	seen := make(map[string]bool)
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true
		b, err := New(name, reg, opts)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}
