package patina

// Schema is an ordered, named collection of Fields describing one logical
// record type. Schemas are immutable: every derivation returns a new Schema.
type Schema interface {
	Name() string                                           // Name returns the name of the record type described by this Schema
	Named(name string) Schema                               // Named returns a copy of this Schema with a different name
	NumFields() int                                         // NumFields returns the number of Fields in this Schema
	FieldNames() []string                                   // FieldNames returns the names of all Fields, in declaration order
	Fields() []Field                                        // Fields returns copies of all Fields, in declaration order
	Field(name string) (Field, error)                       // Field returns a copy of the named Field
	FieldIndex(name string) int                             // FieldIndex returns the declaration position of the named Field, or -1
	HasField(name string) bool                              // HasField returns true iff this Schema declares the named Field
	NonNullableFields() []string                            // NonNullableFields returns the names of all Fields which reject nulls
	Select(names ...string) (Schema, error)                 // Select projects this Schema onto a subset of its Fields
	Drop(names ...string) (Schema, error)                   // Drop removes Fields from this Schema
	Rename(prefix string, suffix string) Schema             // Rename prefixes and suffixes every Field name
	WithOptional(names ...string) (Schema, error)           // WithOptional marks the named Fields (or all Fields, if none are named) as nullable
	Join(other Schema) (Schema, error)                      // Join unions the Fields of two Schemas, this Schema's Fields first
	ForEachField(fn func(idx int, field Field) error) error // ForEachField iterates over Fields in declaration order
	Equals(other Schema) error                              // Equals returns nil iff both Schemas declare identical Fields in identical order
}
