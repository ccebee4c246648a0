package protogen

import "fmt"

// ClassNotFoundError reports a requested event class that does not exist in
// the loaded schema. Available carries a short listing of known class names
// to make typos easy to spot.
type ClassNotFoundError struct {
	Name      string
	Available string
}

func (e *ClassNotFoundError) Error() string {
	return fmt.Sprintf("class %q not found in schema (available: %s)", e.Name, e.Available)
}

// EmitError reports a failure while rendering or persisting output. A
// reference to an object missing from the resolved closure is an internal
// invariant violation and surfaces here too.
type EmitError struct {
	Reason string
	Err    error
}

func (e *EmitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("proto generation failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("proto generation failed: %s", e.Reason)
}

func (e *EmitError) Unwrap() error { return e.Err }
