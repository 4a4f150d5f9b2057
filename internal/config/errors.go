package config

import (
	"errors"
	"fmt"
)

// NotFoundError indicates that a named project or group does not exist in
// its registry.
type NotFoundError struct {
	// Kind names the registry that was searched: "project" or "group".
	Kind string
	// Name is the identifier that failed to resolve.
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %q", e.Kind, e.Name)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
