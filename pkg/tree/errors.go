package tree

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrMalformedNode matches any *MalformedNodeError.
	ErrMalformedNode = errors.New("malformed node")
	// ErrPathMismatch matches any *PathMismatchError.
	ErrPathMismatch = errors.New("path mismatch")
)

// MalformedNodeError is returned when an encoded node does not have one
// of the accepted shapes. Path holds the element indexes leading to the
// offending value, outermost first.
type MalformedNodeError struct {
	Path   []int
	Reason string
}

func (e *MalformedNodeError) Error() string {
	if len(e.Path) == 0 {
		return fmt.Sprintf("malformed node: %s", e.Reason)
	}
	idx := make([]string, len(e.Path))
	for i, p := range e.Path {
		idx[i] = strconv.Itoa(p)
	}
	return fmt.Sprintf("malformed node at [%s]: %s", strings.Join(idx, "]["), e.Reason)
}

func (e *MalformedNodeError) Is(target error) bool {
	return target == ErrMalformedNode
}

// PathMismatchError is returned when a path continues past a leaf.
// Level is the index into Path of the name that could not be descended.
type PathMismatchError struct {
	Path  []string
	Level int
}

func (e *PathMismatchError) Error() string {
	return fmt.Sprintf("path mismatch at level %d: %q is not a container in %s",
		e.Level, e.Path[e.Level], FormatPath(e.Path))
}

func (e *PathMismatchError) Is(target error) bool {
	return target == ErrPathMismatch
}

// FormatPath joins a path with "/" for display.
func FormatPath(path []string) string {
	return "/" + strings.Join(path, "/")
}
