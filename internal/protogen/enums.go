package protogen

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/telhawk-systems/ocsf-protogen/internal/schema"
	"github.com/telhawk-systems/ocsf-protogen/internal/typemap"
)

// IsIntegerKeyed classifies an enum definition. OCSF uses both key formats:
//
//   - integer-keyed: {"0": "Unknown", "1": "Logon"} -> becomes a proto enum
//   - string-keyed:  {"GET": "Get", "POST": "Post"} -> stays a string field
//
// Every key must parse as a non-negative integer for the enum to qualify; a
// single non-integer key makes the whole definition string-keyed.
func IsIntegerKeyed(enum map[string]schema.EnumValue) bool {
	for key := range enum {
		n, err := strconv.Atoi(key)
		if err != nil || n < 0 {
			return false
		}
	}
	return true
}

// enumEntry is one variant of an emitted proto enum.
type enumEntry struct {
	Value   int
	Variant string
	Caption string
}

// enumEntries converts an integer-keyed enum definition to variants sorted
// by integer value ascending.
func enumEntries(enum map[string]schema.EnumValue) []enumEntry {
	entries := make([]enumEntry, 0, len(enum))
	for key, val := range enum {
		n, err := strconv.Atoi(key)
		if err != nil {
			continue
		}
		entries = append(entries, enumEntry{
			Value:   n,
			Variant: typemap.EnumVariantName(val.Caption),
			Caption: val.Caption,
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Value < entries[j].Value })
	return entries
}

// writeEnumDefinition renders one proto enum. Proto3 requires the first
// value to be 0; when the source enum defines no 0 key a synthetic
// <NAME>_UNSPECIFIED = 0 entry is added.
func writeEnumDefinition(out *strings.Builder, enumName string, enum map[string]schema.EnumValue) {
	entries := enumEntries(enum)

	out.WriteString("\n")
	fmt.Fprintf(out, "enum %s {\n", enumName)

	hasZero := false
	for _, e := range entries {
		if e.Value == 0 {
			hasZero = true
			break
		}
	}
	if !hasZero {
		fmt.Fprintf(out, "\t%s_UNSPECIFIED = 0;\n", enumName)
	}

	for _, e := range entries {
		fmt.Fprintf(out, "\t%s_%s = %d;\n", enumName, e.Variant, e.Value)
	}

	out.WriteString("}\n")
}
