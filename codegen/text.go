package codegen

import (
	"strings"

	"github.com/teranos/schemagen/naming"
)

// DocLines splits a description into lines with trailing whitespace removed.
// An empty description has no lines.
func DocLines(description string) []string {
	if strings.TrimSpace(description) == "" {
		return nil
	}
	lines := strings.Split(strings.TrimRight(description, "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return lines
}

// WriteDoc writes every line of description behind prefix, e.g. "/// " or "  // ".
func WriteDoc(sb *strings.Builder, prefix, description string) {
	for _, line := range DocLines(description) {
		sb.WriteString(strings.TrimRight(prefix+line, " "))
		sb.WriteByte('\n')
	}
}

// Identifier is a field name made safe for one target.
type Identifier struct {
	Name string
	// Note is the doc line recording the original name, empty when unchanged
	Note string
}

// FieldIdentifier escapes name for target.
func FieldIdentifier(target naming.Target, name string) Identifier {
	escaped, changed := naming.Escape(target, name)
	if !changed {
		return Identifier{Name: name}
	}
	return Identifier{Name: escaped, Note: naming.OriginalNameNote(name)}
}

// JoinDoc appends note to description on its own line.
func JoinDoc(description, note string) string {
	switch {
	case note == "":
		return description
	case description == "":
		return note
	default:
		return description + "\n" + note
	}
}
