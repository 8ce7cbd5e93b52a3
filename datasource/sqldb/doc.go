// Package sqldb converts database/sql result sets into Tables, so that query
// results can be validated against a Schema.
package sqldb
