package errors

import (
	"fmt"
	"strings"
)

// DuplicateFieldError occurs when two Fields in a Schema share a name
type DuplicateFieldError struct{ Name string }

// Error returns a textual representation of this DuplicateFieldError
func (e DuplicateFieldError) Error() string {
	return fmt.Sprintf("Schema already contains field with name %s", e.Name)
}

// UnknownFieldError occurs when a Schema operation references a Field which does not exist
type UnknownFieldError struct{ Name string }

// Error returns a textual representation of this UnknownFieldError
func (e UnknownFieldError) Error() string {
	return fmt.Sprintf("Schema does not contain field with name %s", e.Name)
}

// FieldCollisionError occurs when two Schemas being joined declare different Fields under the same name
type FieldCollisionError struct{ Name string }

// Error returns a textual representation of this FieldCollisionError
func (e FieldCollisionError) Error() string {
	return fmt.Sprintf("Schemas declare conflicting definitions for field %s", e.Name)
}

// InvalidConstraintError occurs when a Field declares a constraint which is incompatible with its type
type InvalidConstraintError struct {
	Name   string
	Reason string
}

// Error returns a textual representation of this InvalidConstraintError
func (e InvalidConstraintError) Error() string {
	return fmt.Sprintf("Field %s has an invalid constraint: %s", e.Name, e.Reason)
}

// UnsatisfiableConstraintError occurs when no values can be generated which satisfy a Field's constraints
type UnsatisfiableConstraintError struct {
	Name   string
	Reason string
}

// Error returns a textual representation of this UnsatisfiableConstraintError
func (e UnsatisfiableConstraintError) Error() string {
	return fmt.Sprintf("Constraints for field %s cannot be satisfied: %s", e.Name, e.Reason)
}

// MissingColumnError occurs when a Table does not contain a requested column
type MissingColumnError struct{ Name string }

// Error returns a textual representation of this MissingColumnError
func (e MissingColumnError) Error() string {
	return fmt.Sprintf("Table does not contain column with name %s", e.Name)
}

// IncompatibleValueError occurs when a value cannot be stored in a column of a particular type
type IncompatibleValueError struct {
	Name     string
	Row      int
	Value    interface{}
	TypeName string
}

// Error returns a textual representation of this IncompatibleValueError
func (e IncompatibleValueError) Error() string {
	return fmt.Sprintf("Value %#v at row %d of column %s is not compatible with column type %s", e.Value, e.Row, e.Name, e.TypeName)
}

// NilValueError occurs when a value in a Record is null
type NilValueError struct{ Name string }

// Error returns a textual representation of this NilValueError
func (e NilValueError) Error() string {
	return fmt.Sprintf("Value for column %s is nil", e.Name)
}

// FormatMultiError formats multierrors for logging
func FormatMultiError(merrs []error) string {
	var msg strings.Builder
	for i := 0; i < len(merrs); i++ {
		fmt.Fprintf(&msg, "%+v\n", merrs[i])
	}
	return msg.String()
}
