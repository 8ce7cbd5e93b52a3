// Package file provides a DataSource which reads data from files on disk.
// Each file matching a glob is parsed into its own Table, so files must share
// the same columns.
package file
