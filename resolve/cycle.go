package resolve

import (
	"strings"

	"github.com/teranos/schemagen/errors"
	"github.com/teranos/schemagen/schema"
)

// CycleError reports a message that transitively contains itself.
// Chain starts and ends with the same message name.
type CycleError struct {
	Chain []string
}

func (e *CycleError) Error() string {
	return "cyclic nesting: " + strings.Join(e.Chain, " → ")
}

type visitState int

const (
	unvisited visitState = iota
	onPath
	done
)

// CheckCycles walks the nesting graph of every message depth-first, starting
// from messages in lexicographic order, and fails on the first message found
// on its own active path. Enum references are leaves and never form cycles.
func (r *Resolver) CheckCycles() error {
	state := make(map[string]visitState)
	var path []string

	var dfs func(m *schema.Message) error
	dfs = func(m *schema.Message) error {
		state[m.Name] = onPath
		path = append(path, m.Name)

		for _, next := range r.nestedNeighbors(m) {
			switch state[next.Name] {
			case onPath:
				return errors.Mark(&CycleError{Chain: cycleChain(path, next.Name)}, errors.ErrCycle)
			case unvisited:
				if err := dfs(next); err != nil {
					return err
				}
			}
		}

		path = path[:len(path)-1]
		state[m.Name] = done
		return nil
	}

	for _, m := range r.lookup.Messages() {
		if state[m.Name] != unvisited {
			continue
		}
		if err := dfs(m); err != nil {
			return errors.WithHint(err, "nested fields embed messages by value; break the loop with a variable array or an identifier field")
		}
	}
	return nil
}

// nestedNeighbors returns the distinct messages nested directly in m, sorted by name.
// Unresolvable references are skipped; they are reported by reference validation.
func (r *Resolver) nestedNeighbors(m *schema.Message) []*schema.Message {
	deps, err := r.DirectDependencies(m)
	if err != nil {
		deps = r.resolvableDependencies(m)
	}
	var out []*schema.Message
	for _, d := range deps {
		if d.Kind != MessageDependency {
			continue
		}
		if next, ok := r.lookup.Message(d.Name); ok {
			out = append(out, next)
		}
	}
	return out
}

func (r *Resolver) resolvableDependencies(m *schema.Message) []Dependency {
	seen := make(map[string]bool)
	var deps []Dependency
	for i := range m.Fields {
		fieldDeps, err := r.fieldDependencies(&m.Fields[i])
		if err != nil {
			continue
		}
		for _, d := range fieldDeps {
			if !seen[d.Name] {
				seen[d.Name] = true
				deps = append(deps, d)
			}
		}
	}
	sortDependencies(deps)
	return deps
}

// cycleChain cuts the active path at the first occurrence of name and closes the loop.
func cycleChain(path []string, name string) []string {
	for i, p := range path {
		if p == name {
			chain := append([]string(nil), path[i:]...)
			return append(chain, name)
		}
	}
	return []string{name, name}
}
