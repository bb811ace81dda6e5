package codegen

import (
	"sort"
)

// ArtifactKind tells what produced an artifact.
type ArtifactKind int

const (
	MessageFile ArtifactKind = iota
	EnumFile
	WellKnownFile
)

func (k ArtifactKind) String() string {
	switch k {
	case MessageFile:
		return "message"
	case EnumFile:
		return "enum"
	case WellKnownFile:
		return "well-known"
	}
	return "unknown"
}

// Artifact is one generated file.
type Artifact struct {
	// Backend is the name of the backend that produced it
	Backend string
	// Name is the schema or well-known type rendered
	Name string
	Kind ArtifactKind
	// Path is relative to the backend's output directory, slash-separated
	Path    string
	Content string
}

// Result holds every artifact of a generation run.
type Result struct {
	// Artifacts are ordered by backend (in run order), then well-known files,
	// message files and enum files, each sorted by name
	Artifacts []Artifact

	// Skipped maps backend name to the messages it chose not to render
	Skipped map[string][]string
}

// ByBackend returns the artifacts of one backend in result order.
func (r *Result) ByBackend(backend string) []Artifact {
	var out []Artifact
	for _, a := range r.Artifacts {
		if a.Backend == backend {
			out = append(out, a)
		}
	}
	return out
}

// Find returns the artifact of backend rendering name.
func (r *Result) Find(backend, name string) (Artifact, bool) {
	for _, a := range r.Artifacts {
		if a.Backend == backend && a.Name == name {
			return a, true
		}
	}
	return Artifact{}, false
}

// Backends returns the distinct backend names, sorted.
func (r *Result) Backends() []string {
	seen := make(map[string]bool)
	var names []string
	for _, a := range r.Artifacts {
		if !seen[a.Backend] {
			seen[a.Backend] = true
			names = append(names, a.Backend)
		}
	}
	sort.Strings(names)
	return names
}
