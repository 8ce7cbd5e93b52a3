// Package patina contains the core vocabulary of Patina, a library for declaring the shape of
// tabular data once and enforcing it against single records and whole dataframes.
// This root package defines the storage ColumnTypes, the SemanticTypes a Field may declare,
// the Field constraint declaration itself, and the minimal Table and Column capabilities
// a dataset must expose to be validated. Implementations live in subpackages: schema
// (declaration and derivation), validate (record and table validation), report (the
// aggregated validation result), mock (example data generation), table (an in-memory
// Table) and datasource (loaders producing Tables from files and queries).
package patina
