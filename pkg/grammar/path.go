package grammar

import "strings"

// Path is a dot separated sequence of identifiers naming a package, a type
// or a static member. Every element is a substring of the parsed source.
type Path []string

// NewPath splits a dotted name into a Path. It is meant for tests and for
// names coming from configuration; parsed paths never go through it.
func NewPath(dotted string) Path {
	if dotted == "" {
		return nil
	}
	return Path(strings.Split(dotted, "."))
}

// String joins the segments with dots
func (p Path) String() string {
	return strings.Join(p, ".")
}

// Equal reports whether both paths have the same segments
func (p Path) Equal(other Path) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

// First returns the leading segment, or "" for an empty path
func (p Path) First() string {
	if len(p) == 0 {
		return ""
	}
	return p[0]
}

// Last returns the trailing segment, or "" for an empty path
func (p Path) Last() string {
	if len(p) == 0 {
		return ""
	}
	return p[len(p)-1]
}

// Parent returns every segment but the last one
func (p Path) Parent() Path {
	if len(p) == 0 {
		return nil
	}
	return p[:len(p)-1]
}

// Child returns a new path with name appended. The receiver is never
// modified, even when its backing array has spare capacity.
func (p Path) Child(name string) Path {
	child := make(Path, len(p), len(p)+1)
	copy(child, p)
	return append(child, name)
}
