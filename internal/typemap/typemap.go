// Package typemap maps OCSF attribute type identifiers onto the proto3
// scalar type system.
//
// OCSF types form a two-level hierarchy: six base primitives and eighteen
// derived identifiers that each inherit a base. The mapping is fixed:
//
//	boolean_t               -> bool
//	integer_t, port_t       -> int32
//	long_t, timestamp_t     -> int64   (timestamp_t is epoch milliseconds)
//	float_t                 -> double
//	string_t, datetime_t... -> string  (datetime_t is RFC 3339 text)
//	json_t                  -> string  (NOT google.protobuf.Struct)
//
// json_t maps to string because an open container type cannot round-trip
// through derive-based serialization downstream; a JSON-encoded string
// payload is lossless. object_t is not handled here: object references
// carry their own object_type and are resolved by the protogen package.
package typemap

import "fmt"

// Scalar is a proto3 scalar type, one case per OCSF base primitive.
type Scalar int

const (
	Bool Scalar = iota
	Int32
	Int64
	Double
	String
)

// Proto returns the proto3 type keyword for the scalar.
func (s Scalar) Proto() string {
	switch s {
	case Bool:
		return "bool"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Double:
		return "double"
	default:
		return "string"
	}
}

// UnknownTypeError reports an attribute type identifier outside the fixed
// mapping table. A well-formed schema export never triggers this; it
// indicates a schema/mapper version mismatch and is a hard generation error.
type UnknownTypeError struct {
	TypeName string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown OCSF type %q: not in the type mapping table", e.TypeName)
}

// baseTypes are the six OCSF base primitives.
var baseTypes = map[string]Scalar{
	"boolean_t": Bool,
	"integer_t": Int32,
	"long_t":    Int64,
	"float_t":   Double,
	"string_t":  String,
	"json_t":    String,
}

// derivedTypes maps each derived OCSF identifier to the base primitive it
// inherits. Resolution is two-level: derived -> base -> scalar.
var derivedTypes = map[string]string{
	"timestamp_t": "long_t",
	"port_t":      "integer_t",

	// String family. datetime_t stays RFC 3339 text, distinct from
	// timestamp_t which is epoch milliseconds.
	"datetime_t":     "string_t",
	"hostname_t":     "string_t",
	"ip_t":           "string_t",
	"mac_t":          "string_t",
	"url_t":          "string_t",
	"email_t":        "string_t",
	"file_path_t":    "string_t",
	"file_name_t":    "string_t",
	"file_hash_t":    "string_t",
	"subnet_t":       "string_t",
	"uuid_t":         "string_t",
	"username_t":     "string_t",
	"process_name_t": "string_t",
	"resource_uid_t": "string_t",
	"bytestring_t":   "string_t",
	"reg_key_path_t": "string_t",
}

// Resolve maps an OCSF type identifier to its proto3 scalar, following the
// derived -> base hierarchy. Identifiers outside the table fail with
// *UnknownTypeError rather than defaulting, so a schema carrying types this
// mapper does not know about cannot silently produce wrong output.
func Resolve(typeName string) (Scalar, error) {
	name := typeName
	if base, ok := derivedTypes[name]; ok {
		name = base
	}
	if scalar, ok := baseTypes[name]; ok {
		return scalar, nil
	}
	return String, &UnknownTypeError{TypeName: typeName}
}
