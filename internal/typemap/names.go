package typemap

import (
	"strings"
	"unicode"

	"github.com/go-openapi/inflect"
)

// SanitizeObjectName strips an extension prefix from an object reference:
// "win/win_service" -> "win_service".
func SanitizeObjectName(name string) string {
	if i := strings.LastIndex(name, "/"); i >= 0 {
		return name[i+1:]
	}
	return name
}

// PascalCase converts a snake_case OCSF name to a proto message name,
// stripping any extension prefix first: "network_endpoint" ->
// "NetworkEndpoint", "win/win_service" -> "WinService".
func PascalCase(name string) string {
	return inflect.Camelize(SanitizeObjectName(name))
}

// ScreamingSnake converts a snake_case name to SCREAMING_SNAKE_CASE for
// proto enum type names.
func ScreamingSnake(name string) string {
	return strings.ToUpper(name)
}

// EnumVariantName converts a human-readable enum caption to a
// SCREAMING_SNAKE variant name: "Service Ticket Request" ->
// "SERVICE_TICKET_REQUEST", "TLP:AMBER+STRICT" -> "TLP_AMBER_STRICT".
// Non-alphanumeric runs collapse to a single underscore and leading or
// trailing underscores are trimmed.
func EnumVariantName(caption string) string {
	var b strings.Builder
	lastUnderscore := false
	for _, r := range caption {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToUpper(r))
			lastUnderscore = false
			continue
		}
		if !lastUnderscore && b.Len() > 0 {
			b.WriteByte('_')
			lastUnderscore = true
		}
	}
	return strings.TrimRight(b.String(), "_")
}

// VersionSlug converts an OCSF version string to a proto package segment:
// "1.7.0" -> "v1_7_0", "1.8.0-dev" -> "v1_8_0_dev".
func VersionSlug(version string) string {
	return "v" + strings.NewReplacer(".", "_", "-", "_").Replace(version)
}
