package rexp

import "fmt"

// MissingAttributeError is returned when a required attribute or named
// element is absent.
type MissingAttributeError struct {
	Kind Kind
	Name string
	// Element is set when the lookup was for a named element rather than an
	// attribute.
	Element bool
}

func (e *MissingAttributeError) Error() string {
	if e.Element {
		return fmt.Sprintf("%s has no element named %q", e.Kind, e.Name)
	}
	return fmt.Sprintf("%s has no attribute %q", e.Kind, e.Name)
}

// IllegalStateError is returned when a node does not have the shape an
// accessor requires: wrong variant, wrong length, or not a factor.
type IllegalStateError struct {
	Msg string
}

func (e *IllegalStateError) Error() string {
	return e.Msg
}

func illegalState(format string, args ...interface{}) error {
	return &IllegalStateError{
		Msg: fmt.Sprintf(format, args...),
	}
}
