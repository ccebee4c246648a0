// Package protogen compiles a loaded OCSF schema into proto3 definition
// files for a requested set of event classes.
//
// Output is deterministic: fields are sorted alphabetically and numbered
// sequentially from 1, objects are emitted in lexicographic key order, and
// enum variants are sorted by integer value, so identical input always
// produces byte-identical files regardless of map iteration or request
// order. One Generate call is a synchronous batch transformation; it either
// completes fully or fails with a distinct error value, and it never mutates
// the schema it reads.
package protogen

import (
	"fmt"
	"sort"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/telhawk-systems/ocsf-protogen/internal/schema"
	"github.com/telhawk-systems/ocsf-protogen/internal/typemap"
)

// Stats summarizes one generation run for reporting.
type Stats struct {
	ClassesGenerated        int `json:"classes_generated"`
	ObjectsGenerated        int `json:"objects_generated"`
	EnumsGenerated          int `json:"enums_generated"`
	DeprecatedFieldsSkipped int `json:"deprecated_fields_skipped"`
	StringEnumFieldsSkipped int `json:"string_enum_fields_skipped"`
}

// Generate renders proto files for the requested event classes plus the
// transitive closure of objects they reference, and writes them through w.
//
// Layout under the output root:
//
//	ocsf/<slug>/events/<category>/<category>.proto
//	ocsf/<slug>/events/<category>/enums/enums.proto
//	ocsf/<slug>/objects/objects.proto
//	ocsf/<slug>/objects/enums/enums.proto
//	ocsf/<slug>/enum-value-map.json
func Generate(s *schema.Schema, classNames []string, w Writer) (*Stats, error) {
	closure, err := resolveClosure(s, classNames)
	if err != nil {
		return nil, err
	}

	g := &generator{
		schema:  s,
		slug:    typemap.VersionSlug(s.Version),
		closure: closure,
		stats:   &Stats{},
	}

	names := dedupeSorted(classNames)

	// Group classes by category for file organization.
	byCategory := make(map[string][]*schema.Class)
	for _, name := range names {
		cls := s.Class(name)
		byCategory[cls.Category] = append(byCategory[cls.Category], cls)
	}
	categories := make([]string, 0, len(byCategory))
	for cat := range byCategory {
		categories = append(categories, cat)
	}
	sort.Strings(categories)

	for _, cat := range categories {
		events, err := g.eventsProto(cat, byCategory[cat])
		if err != nil {
			return nil, err
		}
		enums := g.classEnumsProto(cat, byCategory[cat])

		dir := fmt.Sprintf("ocsf/%s/events/%s", g.slug, cat)
		if err := g.write(w, fmt.Sprintf("%s/%s.proto", dir, cat), events); err != nil {
			return nil, err
		}
		if err := g.write(w, dir+"/enums/enums.proto", enums); err != nil {
			return nil, err
		}
	}
	g.stats.ClassesGenerated = len(names)

	objects, err := g.objectsProto()
	if err != nil {
		return nil, err
	}
	objectEnums, err := g.objectEnumsProto()
	if err != nil {
		return nil, err
	}

	objectsDir := fmt.Sprintf("ocsf/%s/objects", g.slug)
	if err := g.write(w, objectsDir+"/objects.proto", objects); err != nil {
		return nil, err
	}
	if err := g.write(w, objectsDir+"/enums/enums.proto", objectEnums); err != nil {
		return nil, err
	}
	g.stats.ObjectsGenerated = len(closure)

	enumMap, err := g.enumValueMap(names)
	if err != nil {
		return nil, err
	}
	if err := g.write(w, fmt.Sprintf("ocsf/%s/enum-value-map.json", g.slug), enumMap); err != nil {
		return nil, err
	}

	return g.stats, nil
}

type generator struct {
	schema  *schema.Schema
	slug    string
	closure []string
	stats   *Stats
}

func (g *generator) write(w Writer, relPath, content string) error {
	if err := w.Write(relPath, []byte(content)); err != nil {
		return &EmitError{Reason: "writing " + relPath, Err: err}
	}
	return nil
}

// ── Event class files ───────────────────────────────────────────────────

func (g *generator) eventsProto(category string, classes []*schema.Class) (string, error) {
	var out strings.Builder

	out.WriteString("syntax = \"proto3\";\n\n")
	fmt.Fprintf(&out, "package ocsf.%s.events.%s;\n\n", g.slug, category)
	fmt.Fprintf(&out, "import \"ocsf/%s/events/%s/enums/enums.proto\";\n\n", g.slug, category)
	fmt.Fprintf(&out, "import \"ocsf/%s/objects/objects.proto\";\n", g.slug)

	enumPkg := fmt.Sprintf("ocsf.%s.events.%s.enums", g.slug, category)

	for _, cls := range classes {
		out.WriteString("\n")
		fmt.Fprintf(&out, "// Event: %s\n", category)
		fmt.Fprintf(&out, "// Class UID: %d\n", cls.UID)
		fmt.Fprintf(&out, "message %s {\n", typemap.PascalCase(cls.Name))

		if err := g.writeFields(&out, cls.Attributes, typemap.ScreamingSnake(cls.Name), enumPkg); err != nil {
			return "", err
		}

		out.WriteString("}\n")
	}

	return out.String(), nil
}

func (g *generator) classEnumsProto(category string, classes []*schema.Class) string {
	var out strings.Builder

	out.WriteString("syntax = \"proto3\";\n\n")
	fmt.Fprintf(&out, "package ocsf.%s.events.%s.enums;\n", g.slug, category)

	for _, cls := range classes {
		g.writeEnums(&out, cls.Attributes, typemap.ScreamingSnake(cls.Name))
	}

	return out.String()
}

// ── Shared object files ─────────────────────────────────────────────────

func (g *generator) objectsProto() (string, error) {
	var out strings.Builder

	out.WriteString("syntax = \"proto3\";\n\n")
	fmt.Fprintf(&out, "package ocsf.%s.objects;\n\n", g.slug)
	fmt.Fprintf(&out, "import \"ocsf/%s/objects/enums/enums.proto\";\n", g.slug)

	enumPkg := fmt.Sprintf("ocsf.%s.objects.enums", g.slug)

	for _, ref := range g.closure {
		obj := g.schema.Object(ref)
		if obj == nil {
			return "", &EmitError{Reason: fmt.Sprintf("object %q in resolved closure but missing from schema", ref)}
		}

		out.WriteString("\n")
		fmt.Fprintf(&out, "message %s {\n", typemap.PascalCase(ref))

		if err := g.writeFields(&out, obj.Attributes, objectEnumPrefix(ref), enumPkg); err != nil {
			return "", err
		}

		out.WriteString("}\n")
	}

	return out.String(), nil
}

func (g *generator) objectEnumsProto() (string, error) {
	var out strings.Builder

	out.WriteString("syntax = \"proto3\";\n\n")
	fmt.Fprintf(&out, "package ocsf.%s.objects.enums;\n", g.slug)

	for _, ref := range g.closure {
		obj := g.schema.Object(ref)
		if obj == nil {
			return "", &EmitError{Reason: fmt.Sprintf("object %q in resolved closure but missing from schema", ref)}
		}
		g.writeEnums(&out, obj.Attributes, objectEnumPrefix(ref))
	}

	return out.String(), nil
}

// ── Message fields ──────────────────────────────────────────────────────

// writeFields renders the non-deprecated attributes of one message, sorted
// lexicographically by name and numbered sequentially from 1. Numbering is
// a pure function of the sorted name list, never of schema declaration
// order.
func (g *generator) writeFields(out *strings.Builder, attrs map[string]*schema.Attribute, enumPrefix, enumPkg string) error {
	fieldNum := 1
	for _, name := range sortedAttrNames(attrs) {
		attr := attrs[name]
		if attr.Deprecated != nil {
			g.stats.DeprecatedFieldsSkipped++
			continue
		}

		protoType, err := g.fieldType(attr, name, enumPrefix, enumPkg)
		if err != nil {
			return err
		}

		repeated := ""
		if attr.IsArray {
			repeated = "repeated "
		}
		fmt.Fprintf(out, "\t%s%s %s = %d; // Caption: %s;\n", repeated, protoType, name, fieldNum, attr.Caption)
		fieldNum++
	}
	return nil
}

// fieldType resolves the proto type of one attribute, in fixed precedence
// order: object reference, then integer-keyed enum, then the scalar table.
func (g *generator) fieldType(attr *schema.Attribute, attrName, enumPrefix, enumPkg string) (string, error) {
	if attr.Type == "object_t" {
		return g.objectRefType(attr)
	}

	if attr.Enum != nil {
		if IsIntegerKeyed(attr.Enum) {
			return fmt.Sprintf("%s.%s_%s", enumPkg, enumPrefix, typemap.ScreamingSnake(attrName)), nil
		}
		// String-keyed enums stay plain string fields.
		g.stats.StringEnumFieldsSkipped++
	}

	scalar, err := typemap.Resolve(attr.Type)
	if err != nil {
		return "", err
	}
	return scalar.Proto(), nil
}

// objectRefType resolves an object_t attribute to a qualified message
// reference. An object with no non-deprecated attributes would emit an
// empty message that cannot hold data, so the field degrades to string and
// carries a JSON payload instead (this covers the OCSF "unmapped" field,
// whose target is the empty base object).
func (g *generator) objectRefType(attr *schema.Attribute) (string, error) {
	if attr.ObjectType == "" {
		return "", &EmitError{Reason: "object_t attribute without object_type"}
	}
	obj := g.schema.Object(attr.ObjectType)
	if obj == nil {
		return "", &EmitError{Reason: fmt.Sprintf("object type %q not found in schema", attr.ObjectType)}
	}

	hasFields := false
	for _, a := range obj.Attributes {
		if a.Deprecated == nil {
			hasFields = true
			break
		}
	}
	if !hasFields {
		return "string", nil
	}

	return fmt.Sprintf("ocsf.%s.objects.%s", g.slug, typemap.PascalCase(attr.ObjectType)), nil
}

// ── Enum definitions ────────────────────────────────────────────────────

func (g *generator) writeEnums(out *strings.Builder, attrs map[string]*schema.Attribute, prefix string) {
	for _, name := range sortedAttrNames(attrs) {
		attr := attrs[name]
		if attr.Deprecated != nil || attr.Enum == nil || !IsIntegerKeyed(attr.Enum) {
			continue
		}
		enumName := fmt.Sprintf("%s_%s", prefix, typemap.ScreamingSnake(name))
		writeEnumDefinition(out, enumName, attr.Enum)
		g.stats.EnumsGenerated++
	}
}

// ── Enum value map ──────────────────────────────────────────────────────

type enumMapEntry struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// enumValueMap renders the flat reference file mapping every emitted enum
// variant's qualified symbolic name to its integer value. Keys are sorted
// by the JSON encoder, so the file is stable across runs.
func (g *generator) enumValueMap(classNames []string) (string, error) {
	entries := make(map[string]enumMapEntry)

	for _, name := range classNames {
		cls := g.schema.Class(name)
		collectEnumEntries(typemap.ScreamingSnake(cls.Name), cls.Attributes, entries)
	}
	for _, ref := range g.closure {
		if obj := g.schema.Object(ref); obj != nil {
			collectEnumEntries(objectEnumPrefix(ref), obj.Attributes, entries)
		}
	}

	content, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return "", &EmitError{Reason: "serializing enum value map", Err: err}
	}
	return string(content) + "\n", nil
}

func collectEnumEntries(prefix string, attrs map[string]*schema.Attribute, entries map[string]enumMapEntry) {
	for _, name := range sortedAttrNames(attrs) {
		attr := attrs[name]
		if attr.Deprecated != nil || attr.Enum == nil || !IsIntegerKeyed(attr.Enum) {
			continue
		}
		enumName := fmt.Sprintf("%s_%s", prefix, typemap.ScreamingSnake(name))
		for _, e := range enumEntries(attr.Enum) {
			entries[fmt.Sprintf("%s_%s", enumName, e.Variant)] = enumMapEntry{
				Name:  e.Caption,
				Value: e.Value,
			}
		}
	}
}

// ── Helpers ─────────────────────────────────────────────────────────────

func objectEnumPrefix(ref string) string {
	return typemap.ScreamingSnake(typemap.SanitizeObjectName(ref))
}

func sortedAttrNames(attrs map[string]*schema.Attribute) []string {
	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func dedupeSorted(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	sort.Strings(out)
	return out
}
