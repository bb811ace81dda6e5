// Package naming holds the pure string transforms shared by all backends:
// case conversion, per-target keyword escaping and the display-name override
// table. Every rule lives in a table here so no backend grows its own.
package naming

import (
	"strings"
	"unicode"
)

// TitleCase converts a constant or snake_case identifier to PascalCase:
// "LINE_STRIP" -> "LineStrip", "word_word" -> "WordWord".
func TitleCase(s string) string {
	var result strings.Builder
	for _, part := range strings.Split(s, "_") {
		if part == "" {
			continue
		}
		runes := []rune(strings.ToLower(part))
		result.WriteRune(unicode.ToUpper(runes[0]))
		result.WriteString(string(runes[1:]))
	}
	return result.String()
}

// KebabCase converts a schema name into a documentation slug:
// "PoseInFrame" -> "pose-in-frame". Every uppercase letter after the first
// starts a new segment, so acronyms split per letter ("GeoJSON" -> "geo-j-s-o-n").
func KebabCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				result.WriteRune('-')
			}
			result.WriteRune(unicode.ToLower(r))
			continue
		}
		result.WriteRune(r)
	}
	return result.String()
}

// SnakeCase converts PascalCase or camelCase to snake_case.
// Handles acronyms ("GeoJSON" -> "geo_json", "HTTPSConnection" -> "https_connection").
func SnakeCase(s string) string {
	var result strings.Builder
	runes := []rune(s)

	for i := 0; i < len(runes); i++ {
		r := runes[i]

		if i > 0 && unicode.IsUpper(r) {
			// An acronym continues until an uppercase letter is followed by lowercase
			prevUpper := unicode.IsUpper(runes[i-1])
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			prevUnderscore := runes[i-1] == '_'

			if !prevUnderscore && (!prevUpper || nextLower) {
				result.WriteRune('_')
			}
		}

		result.WriteRune(r)
	}

	return strings.ToLower(result.String())
}

// ConstantCase converts a schema name to SCREAMING_SNAKE_CASE: "PoseInFrame" -> "POSE_IN_FRAME".
func ConstantCase(s string) string {
	return strings.ToUpper(SnakeCase(s))
}

// UnspecifiedValue returns the name of the code-0 value added to enums that
// declare none, where a target requires one: "LineType" -> "LINE_TYPE_UNSPECIFIED".
func UnspecifiedValue(enum string) string {
	return ConstantCase(enum) + "_UNSPECIFIED"
}

// displayOverrides maps schema names whose generated type name is historically irregular.
var displayOverrides = map[string]string{
	"GeoJSON": "GeoJson",
}

// DisplayName returns the type name used for a schema in language bindings.
func DisplayName(name string) string {
	if override, ok := displayOverrides[name]; ok {
		return override
	}
	return name
}
