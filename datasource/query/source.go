package query

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/docker/docker/pkg/locker"
	"github.com/go-sif/patina"
	"github.com/go-sif/patina/logging"
	"github.com/go-sif/patina/validate"
	"github.com/gofrs/uuid"
)

// DefaultTTL is the lifetime of cached results when none is configured
const DefaultTTL = 100 * 52 * 7 * 24 * time.Hour

// CacheExtension is the required file extension of query caches
const CacheExtension = ".jsonl.lz4"

// Executor runs SQL and returns the result as a Table. *sqldb.Executor is an Executor.
type Executor interface {
	Execute(ctx context.Context, query string, args ...interface{}) (patina.Table, error)
}

// SourceConf configures a Source
type SourceConf struct {
	CacheDir string        // The directory in which caches are stored. Defaults to os.TempDir().
	TTL      time.Duration // The default lifetime of cached results. Defaults to DefaultTTL.
}

// Source produces Queries which share an Executor and cache directory
type Source struct {
	exec   Executor
	conf   *SourceConf
	plocks *locker.Locker
}

// CreateSource is a factory for Sources
func CreateSource(exec Executor, conf *SourceConf) *Source {
	if conf == nil {
		conf = &SourceConf{}
	}
	if conf.CacheDir == "" {
		conf.CacheDir = os.TempDir()
	}
	if conf.TTL <= 0 {
		conf.TTL = DefaultTTL
	}
	return &Source{exec: exec, conf: conf, plocks: locker.New()}
}

// QueryOpts configures a Query
type QueryOpts struct {
	Cache      bool              // If true, results are cached at <CacheDir>/<name>/<uuid of the SQL>.jsonl.lz4
	CachePath  string            // An explicit cache file, relative to CacheDir unless absolute. Only the latest SQL is kept. Overrides Cache.
	TTL        time.Duration     // The lifetime of cached results. Defaults to the Source's TTL.
	Schema     patina.Schema     // If set, every returned Table is validated against this Schema
	Validation []validate.Option // Options for validation against Schema
}

// Query is a named, optionally cached and validated, SQL query
type Query struct {
	name   string
	source *Source
	opts   QueryOpts
}

// Query creates a new named Query. Names determine the directory of automatic caches.
func (s *Source) Query(name string, opts *QueryOpts) *Query {
	q := &Query{name: name, source: s}
	if opts != nil {
		q.opts = *opts
	}
	if q.opts.TTL <= 0 {
		q.opts.TTL = s.conf.TTL
	}
	return q
}

// Name returns the name of this Query
func (q *Query) Name() string {
	return q.name
}

// CachePath returns the deterministic path of the cache for the given SQL, or "" if caching is disabled
func (q *Query) CachePath(sql string) (string, error) {
	var path string
	switch {
	case q.opts.CachePath != "":
		if !strings.HasSuffix(q.opts.CachePath, CacheExtension) {
			return "", fmt.Errorf("Cache path %s must have the %s file extension", q.opts.CachePath, CacheExtension)
		}
		path = q.opts.CachePath
		if !filepath.IsAbs(path) {
			path = filepath.Join(q.source.conf.CacheDir, path)
		}
	case q.opts.Cache:
		id := uuid.NewV5(uuid.NamespaceOID, sql)
		path = filepath.Join(q.source.conf.CacheDir, q.name, id.String()+CacheExtension)
	default:
		return "", nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", err
	}
	return path, nil
}

// Load executes the SQL, bypassing any cache, and stamps the result with Metadata
func (q *Query) Load(ctx context.Context, sql string) (patina.Table, *Metadata, error) {
	start := time.Now()
	t, err := q.source.exec.Execute(ctx, sql)
	if err != nil {
		return nil, nil, fmt.Errorf("Query %s: %w", q.name, err)
	}
	return t, &Metadata{SQL: sql, QueryStartTime: start, QueryFinishTime: time.Now()}, nil
}

// Run returns the result of the SQL, from the cache if it holds a fresh result of
// exactly the same SQL, and by executing it otherwise
func (q *Query) Run(ctx context.Context, sql string) (patina.Table, error) {
	path, err := q.CachePath(sql)
	if err != nil {
		return nil, err
	}
	if path == "" {
		t, _, err := q.Load(ctx, sql)
		if err != nil {
			return nil, err
		}
		return q.validated(t)
	}

	q.source.plocks.Lock(path)
	defer q.source.plocks.Unlock(path)
	t, meta, err := readCache(path)
	switch {
	case err == nil && meta.SQL == sql && time.Since(meta.QueryStartTime) < q.opts.TTL:
		logging.Debugf("query %s: cache hit %s", q.name, path)
		return q.validated(t)
	case err != nil && !os.IsNotExist(err):
		logging.Warnf("query %s: ignoring unreadable cache %s: %v", q.name, path, err)
	default:
		logging.Debugf("query %s: cache miss %s", q.name, path)
	}
	t, meta, err = q.Load(ctx, sql)
	if err != nil {
		return nil, err
	}
	if err := writeCache(path, t, meta); err != nil {
		return nil, err
	}
	return q.validated(t)
}

// Refresh discards any cached result for the SQL, then runs it
func (q *Query) Refresh(ctx context.Context, sql string) (patina.Table, error) {
	path, err := q.CachePath(sql)
	if err != nil {
		return nil, err
	}
	if path != "" {
		q.source.plocks.Lock(path)
		err = os.Remove(path)
		q.source.plocks.Unlock(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, err
		}
	}
	return q.Run(ctx, sql)
}

func (q *Query) validated(t patina.Table) (patina.Table, error) {
	if q.opts.Schema == nil {
		return t, nil
	}
	if err := validate.Table(q.opts.Schema, t, q.opts.Validation...); err != nil {
		return nil, err
	}
	return t, nil
}
