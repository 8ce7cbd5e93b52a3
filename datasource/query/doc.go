// Package query runs SQL through an Executor and caches the resulting Tables on
// disk as lz4-compressed JSON lines, keyed by the exact SQL text. Cached results
// can optionally be validated against a Schema every time they are returned.
package query
