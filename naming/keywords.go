package naming

import "strings"

// Target identifies a rendering syntax with its own reserved words.
type Target string

const (
	TargetJSONSchema  Target = "jsonschema"
	TargetProtobuf    Target = "protobuf"
	TargetFlatBuffers Target = "flatbuffers"
	TargetROS         Target = "ros"
	TargetOMGIDL      Target = "omgidl"
	TargetTypeScript  Target = "typescript"
)

type escapeRule struct {
	keywords map[string]struct{}
	// foldCase makes keyword matching case-insensitive (IDL identifiers collide ignoring case)
	foldCase bool
	escape   func(string) string
}

func words(list string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(list) {
		set[w] = struct{}{}
	}
	return set
}

func prefixUnderscore(s string) string { return "_" + s }
func suffixUnderscore(s string) string { return s + "_" }

// escapeRules holds the reserved words of every target and the transform applied
// on collision. Targets without an entry accept any identifier.
var escapeRules = map[Target]escapeRule{
	// IDL 4.2 keywords; a leading underscore is the IDL escape and is dropped by IDL compilers.
	TargetOMGIDL: {
		keywords: words(`abstract any alias attribute bitfield bitmask bitset boolean case char
			component connector const consumes context custom default double emits enum eventtype
			exception factory false finder fixed float getraises getter home import in inout
			interface local long manages map mirrorport module multiple native object octet oneway
			out primarykey private port porttype provides public publishes raises readonly setraises
			setter sequence short string struct supports switch truncatable true typedef typeid
			typename typeprefix unsigned union uses valuebase valuetype void wchar wstring int8
			uint8 int16 int32 int64 uint16 uint32 uint64`),
		foldCase: true,
		escape:   prefixUnderscore,
	},
	TargetFlatBuffers: {
		keywords: words(`table struct enum union namespace root_type include attribute
			rpc_service file_identifier file_extension bool byte ubyte short ushort int uint float
			long ulong double int8 uint8 int16 uint16 int32 uint32 int64 uint64 float32 float64
			string true false`),
		escape: suffixUnderscore,
	},
	TargetTypeScript: {
		keywords: words(`break case catch class const continue debugger default delete do else
			enum export extends false finally for function if import in instanceof new null return
			super switch this throw true try typeof var void while with as implements interface let
			package private protected public static yield any boolean number string symbol type
			never unknown object bigint`),
		escape: suffixUnderscore,
	},
}

// IsKeyword reports whether name is reserved in target.
func IsKeyword(target Target, name string) bool {
	rule, ok := escapeRules[target]
	if !ok {
		return false
	}
	if rule.foldCase {
		name = strings.ToLower(name)
	}
	_, reserved := rule.keywords[name]
	return reserved
}

// Escape returns name made safe for target and whether it changed.
// Callers that get true must record the original name in the generated docs.
func Escape(target Target, name string) (string, bool) {
	if !IsKeyword(target, name) {
		return name, false
	}
	return escapeRules[target].escape(name), true
}

// OriginalNameNote is the doc line emitted next to an escaped identifier.
func OriginalNameNote(name string) string {
	return "Original name: " + name
}
