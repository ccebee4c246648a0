package protogen

import (
	"fmt"
	"sort"
	"strings"

	"github.com/telhawk-systems/ocsf-protogen/internal/schema"
)

// resolveClosure computes the transitive closure of objects referenced by
// the requested event classes via breadth-first traversal.
//
// Each reference is resolved to the object's own fully qualified schema key
// (extension prefix preserved) before the visited check, so varying
// spellings of the same object ("win/win_service" and "win_service")
// collapse to one closure entry: an object reachable through any number of
// classes, paths, or spellings is enqueued and emitted exactly once, and
// mutually referencing objects cannot loop. The returned keys are in
// lexicographic order, independent of discovery order, which keeps the
// emitted objects file byte-identical across runs regardless of the
// requested class order. References that resolve to no object are left out;
// the emitter rejects them when it renders the referencing field.
func resolveClosure(s *schema.Schema, classNames []string) ([]string, error) {
	for _, name := range classNames {
		if s.Class(name) == nil {
			return nil, &ClassNotFoundError{Name: name, Available: availableClasses(s)}
		}
	}

	visited := make(map[string]bool)
	var queue []string

	enqueue := func(attrs map[string]*schema.Attribute) {
		for _, attr := range attrs {
			if attr.ObjectType == "" {
				continue
			}
			key, obj := s.ResolveObject(attr.ObjectType)
			if obj == nil {
				continue
			}
			if !visited[key] {
				visited[key] = true
				queue = append(queue, key)
			}
		}
	}

	for _, name := range classNames {
		enqueue(s.Class(name).Attributes)
	}

	for len(queue) > 0 {
		key := queue[0]
		queue = queue[1:]
		enqueue(s.Objects[key].Attributes)
	}

	keys := make([]string, 0, len(visited))
	for k := range visited {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// availableClasses lists known class names for ClassNotFoundError, capped
// at ten entries.
func availableClasses(s *schema.Schema) string {
	names := s.ClassNames()
	if len(names) > 10 {
		return fmt.Sprintf("%s ... and %d more", strings.Join(names[:10], ", "), len(names)-10)
	}
	return strings.Join(names, ", ")
}
