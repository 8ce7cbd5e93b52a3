package patina

// Record is a single validated row, whose values have been normalized to the
// canonical representation of each Field's SemanticType
type Record interface {
	Schema() Schema                       // Schema returns the Schema this Record was validated against
	Get(name string) (interface{}, error) // Get returns the value of a Field, which is nil for absent or null values
	IsNil(name string) bool               // IsNil returns true iff the named Field is null or absent
	Values() map[string]interface{}       // Values returns a copy of all values in this Record
	ToString() string                     // ToString returns a string representation of this Record
}
