// Package schema loads and models the OCSF schema export.
//
// The export from schema.ocsf.io/export/schema arrives with inheritance
// fully resolved: every class and object already carries its complete,
// flattened attribute set, so no extends/$include/profile merging happens
// here. A loaded Schema is read-only; every accessor is non-mutating and a
// single Schema may back any number of generation runs.
package schema

import (
	"errors"
	"fmt"
	"os"
	"sort"

	json "github.com/goccy/go-json"

	"github.com/telhawk-systems/ocsf-protogen/internal/typemap"
)

// Schema is the full OCSF schema export for one version.
type Schema struct {
	// Version is the OCSF version string, e.g. "1.7.0".
	Version string `json:"version"`

	// Classes holds all event classes keyed by name, e.g. "authentication".
	Classes map[string]*Class `json:"classes"`

	// Objects holds all object types keyed by name, e.g. "network_endpoint".
	// Extension objects may be keyed with a prefix, e.g. "win/win_service".
	Objects map[string]*Object `json:"objects"`
}

// Class is one OCSF event class, e.g. Authentication.
type Class struct {
	Name         string                `json:"name"`
	UID          uint32                `json:"uid"`
	Caption      string                `json:"caption"`
	Description  string                `json:"description"`
	Extends      string                `json:"extends"`
	Category     string                `json:"category"`
	CategoryUID  uint32                `json:"category_uid"`
	CategoryName string                `json:"category_name"`
	Profiles     []string              `json:"profiles"`
	Attributes   map[string]*Attribute `json:"attributes"`
}

// Object is a reusable OCSF structured type referenced by classes or other
// objects, e.g. User or Network Endpoint.
type Object struct {
	Name        string                `json:"name"`
	Caption     string                `json:"caption"`
	Description string                `json:"description"`
	Extends     string                `json:"extends"`
	Attributes  map[string]*Attribute `json:"attributes"`
	Observable  *uint32               `json:"observable"`
}

// Attribute is a single named field of a class or object.
type Attribute struct {
	// Type is the OCSF type identifier, e.g. "string_t", "object_t".
	Type string `json:"type"`

	Caption     string `json:"caption"`
	Description string `json:"description"`

	// Requirement is "required", "recommended", or "optional".
	Requirement string `json:"requirement"`

	// IsArray marks the attribute as repeated.
	IsArray bool `json:"is_array"`

	// ObjectType names the referenced object for object_t attributes. It
	// may carry an extension prefix, e.g. "win/win_service".
	ObjectType string `json:"object_type"`

	Group   string `json:"group"`
	Sibling string `json:"sibling"`
	Profile string `json:"profile"`

	// Enum holds the value definitions for enumerated attributes. Keys are
	// either integer strings ("0", "1", "99") or string labels ("GET").
	Enum map[string]EnumValue `json:"enum"`

	// Deprecated is set when the attribute is deprecated. Deprecated
	// attributes are never emitted.
	Deprecated *Deprecation `json:"@deprecated"`
}

// EnumValue is one entry of an enum definition.
type EnumValue struct {
	Caption     string `json:"caption"`
	Description string `json:"description"`
}

// Deprecation is the @deprecated metadata of an attribute.
type Deprecation struct {
	Message string `json:"message"`
	Since   string `json:"since"`
}

// ParseError reports a schema document that does not have the expected
// shape.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("invalid OCSF schema %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("invalid OCSF schema: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// LoadError reports a schema cache file that could not be read.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to read schema %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Load reads a cached OCSF schema export from disk. The file must contain
// the JSON output of schema.ocsf.io/export/schema.
func Load(path string) (*Schema, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	s, err := Parse(content)
	if err != nil {
		var perr *ParseError
		if errors.As(err, &perr) {
			perr.Path = path
		}
		return nil, err
	}
	return s, nil
}

// Parse decodes and validates a raw schema export document.
func Parse(content []byte) (*Schema, error) {
	var s Schema
	if err := json.Unmarshal(content, &s); err != nil {
		return nil, &ParseError{Err: err}
	}
	if s.Version == "" {
		return nil, &ParseError{Err: fmt.Errorf("missing required key %q", "version")}
	}
	if s.Classes == nil {
		return nil, &ParseError{Err: fmt.Errorf("missing required key %q", "classes")}
	}
	if s.Objects == nil {
		return nil, &ParseError{Err: fmt.Errorf("missing required key %q", "objects")}
	}
	return &s, nil
}

// Class returns the event class with the given name, or nil.
func (s *Schema) Class(name string) *Class {
	return s.Classes[name]
}

// Object looks up an object type by reference, or returns nil.
func (s *Schema) Object(ref string) *Object {
	_, obj := s.ResolveObject(ref)
	return obj
}

// ResolveObject resolves an object reference to the object's own schema key
// and definition. Extension objects use path-prefixed names
// ("win/win_service"); the lookup tries the reference as-is, then with the
// prefix stripped, then scans all objects by stripped name. The returned key
// is the fully qualified key the object is stored under (prefix preserved),
// so every spelling of a reference to the same object yields the same key —
// closure deduplication relies on that. The scan iterates keys in sorted
// order so repeated lookups resolve identically.
func (s *Schema) ResolveObject(ref string) (string, *Object) {
	if obj, ok := s.Objects[ref]; ok {
		return ref, obj
	}
	sanitized := typemap.SanitizeObjectName(ref)
	if obj, ok := s.Objects[sanitized]; ok {
		return sanitized, obj
	}
	keys := make([]string, 0, len(s.Objects))
	for k := range s.Objects {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if typemap.SanitizeObjectName(s.Objects[k].Name) == sanitized {
			return k, s.Objects[k]
		}
	}
	return "", nil
}

// ClassNames returns every class name in the schema, sorted.
func (s *Schema) ClassNames() []string {
	names := make([]string, 0, len(s.Classes))
	for name := range s.Classes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
