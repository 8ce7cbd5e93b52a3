package query

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-sif/patina"
	"github.com/go-sif/patina/datasource/sqldb"
	"github.com/go-sif/patina/report"
	"github.com/go-sif/patina/schema"
	"github.com/go-sif/patina/table"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	_ "modernc.org/sqlite"
)

// countingExecutor returns a fixed Table, counting executions
type countingExecutor struct {
	calls int
	t     patina.Table
}

func (e *countingExecutor) Execute(ctx context.Context, query string, args ...interface{}) (patina.Table, error) {
	e.calls++
	return e.t, nil
}

func createProducts(t *testing.T) patina.Table {
	tbl, err := table.FromRows(
		[]string{"id", "name", "price", "organic", "received", "updated"},
		[]patina.ColumnType{
			&patina.Int64ColumnType{},
			&patina.VarStringColumnType{},
			&patina.Float32ColumnType{},
			&patina.BoolColumnType{},
			&patina.DateColumnType{},
			&patina.TimeColumnType{},
		},
		[][]interface{}{
			{1, "Apple", 1.25, true, "2021-03-04", time.Date(2021, 3, 4, 10, 30, 0, 0, time.UTC)},
			{2, nil, nil, false, nil, nil},
		},
	)
	require.Nil(t, err)
	return tbl
}

func TestRunWithoutCache(t *testing.T) {
	exec := &countingExecutor{t: createProducts(t)}
	q := CreateSource(exec, &SourceConf{CacheDir: t.TempDir()}).Query("products", nil)
	path, err := q.CachePath("SELECT * FROM products")
	require.Nil(t, err)
	require.Equal(t, "", path)
	for i := 0; i < 2; i++ {
		_, err := q.Run(context.Background(), "SELECT * FROM products")
		require.Nil(t, err)
	}
	require.Equal(t, 2, exec.calls)
}

func TestRunWithAutomaticCache(t *testing.T) {
	defer goleak.VerifyNone(t)
	dir := t.TempDir()
	exec := &countingExecutor{t: createProducts(t)}
	q := CreateSource(exec, &SourceConf{CacheDir: dir}).Query("products", &QueryOpts{Cache: true})

	path, err := q.CachePath("SELECT * FROM products")
	require.Nil(t, err)
	require.Equal(t, filepath.Join(dir, "products"), filepath.Dir(path))
	require.True(t, strings.HasSuffix(path, CacheExtension))
	other, err := q.CachePath("SELECT id FROM products")
	require.Nil(t, err)
	require.NotEqual(t, path, other)
	again, err := q.CachePath("SELECT * FROM products")
	require.Nil(t, err)
	require.Equal(t, path, again)

	first, err := q.Run(context.Background(), "SELECT * FROM products")
	require.Nil(t, err)
	second, err := q.Run(context.Background(), "SELECT * FROM products")
	require.Nil(t, err)
	require.Equal(t, 1, exec.calls)
	require.Equal(t, first.ColumnTypes(), second.ColumnTypes())
	expected, err := table.Rows(first)
	require.Nil(t, err)
	actual, err := table.Rows(second)
	require.Nil(t, err)
	require.Equal(t, expected, actual)

	_, err = q.Run(context.Background(), "SELECT id FROM products")
	require.Nil(t, err)
	require.Equal(t, 2, exec.calls)

	_, err = q.Refresh(context.Background(), "SELECT * FROM products")
	require.Nil(t, err)
	require.Equal(t, 3, exec.calls)
}

func TestRunWithExplicitCachePath(t *testing.T) {
	dir := t.TempDir()
	exec := &countingExecutor{t: createProducts(t)}
	source := CreateSource(exec, &SourceConf{CacheDir: dir})

	q := source.Query("products", &QueryOpts{CachePath: "latest/products" + CacheExtension})
	path, err := q.CachePath("SELECT * FROM products")
	require.Nil(t, err)
	require.Equal(t, filepath.Join(dir, "latest", "products"+CacheExtension), path)

	_, err = q.Run(context.Background(), "SELECT * FROM products")
	require.Nil(t, err)
	_, err = q.Run(context.Background(), "SELECT * FROM products")
	require.Nil(t, err)
	require.Equal(t, 1, exec.calls)

	// the cache only holds the latest SQL
	_, err = q.Run(context.Background(), "SELECT * FROM products WHERE id = 1")
	require.Nil(t, err)
	_, err = q.Run(context.Background(), "SELECT * FROM products")
	require.Nil(t, err)
	require.Equal(t, 3, exec.calls)

	_, meta, err := readCache(path)
	require.Nil(t, err)
	require.Equal(t, "SELECT * FROM products", meta.SQL)
	require.Len(t, meta.Columns, 6)
	require.Equal(t, CachedColumn{Name: "price", Type: "float32"}, meta.Columns[2])

	bad := source.Query("products", &QueryOpts{CachePath: "products.parquet"})
	_, err = bad.Run(context.Background(), "SELECT * FROM products")
	require.NotNil(t, err)
	require.Equal(t, 3, exec.calls)
}

func TestRunWithExpiredCache(t *testing.T) {
	exec := &countingExecutor{t: createProducts(t)}
	q := CreateSource(exec, &SourceConf{CacheDir: t.TempDir(), TTL: time.Nanosecond}).Query("products", &QueryOpts{Cache: true})
	for i := 0; i < 2; i++ {
		_, err := q.Run(context.Background(), "SELECT * FROM products")
		require.Nil(t, err)
	}
	require.Equal(t, 2, exec.calls)

	q = CreateSource(exec, &SourceConf{CacheDir: t.TempDir(), TTL: time.Nanosecond}).Query("products", &QueryOpts{Cache: true, TTL: time.Hour})
	for i := 0; i < 2; i++ {
		_, err := q.Run(context.Background(), "SELECT * FROM products")
		require.Nil(t, err)
	}
	require.Equal(t, 3, exec.calls)
}

func TestRunWithUnreadableCache(t *testing.T) {
	exec := &countingExecutor{t: createProducts(t)}
	q := CreateSource(exec, &SourceConf{CacheDir: t.TempDir()}).Query("products", &QueryOpts{Cache: true})
	path, err := q.CachePath("SELECT * FROM products")
	require.Nil(t, err)
	require.Nil(t, os.WriteFile(path, []byte("not lz4"), 0644))
	_, err = q.Run(context.Background(), "SELECT * FROM products")
	require.Nil(t, err)
	require.Equal(t, 1, exec.calls)
	_, meta, err := readCache(path)
	require.Nil(t, err)
	require.Equal(t, "SELECT * FROM products", meta.SQL)
}

func TestRunWithSchema(t *testing.T) {
	s, err := schema.Define(
		patina.Field{Name: "id", Type: &patina.IntegerType{}, Unique: true},
		patina.Field{Name: "name", Type: &patina.StringType{}},
	)
	require.Nil(t, err)
	s = s.Named("Product")
	exec := &countingExecutor{t: createProducts(t)}
	source := CreateSource(exec, &SourceConf{CacheDir: t.TempDir()})

	q := source.Query("products", &QueryOpts{Cache: true, Schema: s})
	_, err = q.Run(context.Background(), "SELECT * FROM products")
	rep, ok := report.AsReport(err)
	require.True(t, ok)
	require.Equal(t, "Product", rep.Model)
	kinds := make([]string, len(rep.Failures))
	for i, f := range rep.Failures {
		kinds[i] = f.Column + "/" + f.Kind.String()
	}
	require.Equal(t, []string{"name/null_violation", "organic/unexpected_column", "price/unexpected_column", "received/unexpected_column", "updated/unexpected_column"}, kinds)

	// cached results are validated too
	_, err = q.Run(context.Background(), "SELECT * FROM products")
	require.NotNil(t, err)
	require.Equal(t, 1, exec.calls)
}

func TestRunWithSQLite(t *testing.T) {
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.sqlite"))
	require.Nil(t, err)
	defer db.Close()
	_, err = db.Exec(`CREATE TABLE products (id INTEGER PRIMARY KEY, name TEXT NOT NULL, price REAL)`)
	require.Nil(t, err)
	_, err = db.Exec(`INSERT INTO products (id, name, price) VALUES (1, 'Apple', 1.5), (2, 'Milk', 0.99)`)
	require.Nil(t, err)

	s, err := schema.Define(
		patina.Field{Name: "id", Type: &patina.IntegerType{}, Unique: true},
		patina.Field{Name: "name", Type: &patina.StringType{}},
		patina.Field{Name: "price", Type: &patina.FloatType{}, Bounds: &patina.Bounds{Min: 0, ExclusiveMin: true}},
	)
	require.Nil(t, err)
	q := CreateSource(sqldb.CreateExecutor(db, nil), &SourceConf{CacheDir: t.TempDir()}).
		Query("products", &QueryOpts{Cache: true, Schema: s})
	tbl, err := q.Run(context.Background(), "SELECT id, name, price FROM products ORDER BY id")
	require.Nil(t, err)
	require.Equal(t, 2, tbl.NumRows())

	_, err = db.Exec(`DELETE FROM products`)
	require.Nil(t, err)
	tbl, err = q.Run(context.Background(), "SELECT id, name, price FROM products ORDER BY id")
	require.Nil(t, err)
	require.Equal(t, 2, tbl.NumRows())
	tbl, err = q.Refresh(context.Background(), "SELECT id, name, price FROM products ORDER BY id")
	require.Nil(t, err)
	require.Equal(t, 0, tbl.NumRows())
}
