// Package data defines the typed values builders exchange and the DataSet
// that accumulates them over a run.
package data

// Data is a single typed value flowing through a build. Type returns the
// unique name the value is keyed by in a DataSet; builders declare the same
// names in their Provides/Consumes metadata.
type Data interface {
	Type() string
}

// Value is a generic Data carrying an arbitrary payload. It is the shape used
// for seed values loaded from flow files and for builders that have no reason
// to define their own struct.
type Value struct {
	Name    string
	Payload any
}

// Type implements the Data interface.
func (v Value) Type() string { return v.Name }

// NewValue wraps a payload as Data under the given type name.
func NewValue(name string, payload any) Value {
	return Value{Name: name, Payload: payload}
}
