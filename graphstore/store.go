package graphstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/corvid-labs/causalgraph"
	"github.com/corvid-labs/causalgraph/codec"

	// Database drivers for the supported dialects.
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Store is a SQL-backed catalog of serialized causal graphs. Each graph is
// stored as one row: a generated record ID, a unique name, the wire format
// it was encoded with, and the encoded payload.
type Store struct {
	db       *sql.DB
	dialect  Dialect
	codec    codec.Codec
	cache    Cache
	cacheTTL time.Duration
	logger   *slog.Logger
}

// Record describes one stored graph.
type Record struct {
	ID        uuid.UUID
	Name      string
	Format    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Option configures a Store.
type Option func(*Store) error

// WithCodec sets the wire format used to encode saved graphs. Loading
// always honors the format recorded with each row, so stores holding
// mixed-format catalogs decode correctly regardless of this option.
// The default is Msgpack.
func WithCodec(c codec.Codec) Option {
	return func(s *Store) error {
		if c == nil {
			return fmt.Errorf("graphstore: nil codec")
		}
		s.codec = c
		return nil
	}
}

// WithCache installs a read-through payload cache. Load and LoadByName
// consult it before the database; Save, Rename and Delete invalidate the
// affected entries.
func WithCache(c Cache) Option {
	return func(s *Store) error {
		if c == nil {
			return fmt.Errorf("graphstore: nil cache")
		}
		s.cache = c
		return nil
	}
}

// WithCacheTTL bounds the lifetime of cached payloads. Zero, the default,
// keeps entries until they are invalidated.
func WithCacheTTL(ttl time.Duration) Option {
	return func(s *Store) error {
		if ttl < 0 {
			return fmt.Errorf("graphstore: negative cache ttl %s", ttl)
		}
		s.cacheTTL = ttl
		return nil
	}
}

// WithLogger sets the logger used for statement-level debug logging.
// The default logger discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) error {
		if l == nil {
			return fmt.Errorf("graphstore: nil logger")
		}
		s.logger = l
		return nil
	}
}

// Open opens a database connection for the given dialect and wraps it in a
// Store. The DSN is passed to database/sql untouched.
func Open(dialect Dialect, dsn string, opts ...Option) (*Store, error) {
	if !dialect.Valid() {
		return nil, fmt.Errorf("graphstore: unsupported dialect %q", dialect)
	}
	db, err := sql.Open(dialect.driverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("graphstore: opening %s database: %w", dialect, err)
	}
	return NewStore(db, dialect, opts...)
}

// NewStore wraps an existing database handle in a Store. The caller keeps
// ownership of the handle's configuration; Close closes it.
func NewStore(db *sql.DB, dialect Dialect, opts ...Option) (*Store, error) {
	if db == nil {
		return nil, fmt.Errorf("graphstore: nil database handle")
	}
	if !dialect.Valid() {
		return nil, fmt.Errorf("graphstore: unsupported dialect %q", dialect)
	}
	s := &Store{
		db:      db,
		dialect: dialect,
		codec:   codec.Msgpack,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// DB returns the underlying database handle.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Dialect returns the store's dialect.
func (s *Store) Dialect() Dialect {
	return s.dialect
}

// Close closes the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Catalog statements. All are written with ? placeholders and rebound per
// dialect at execution time.
const (
	insertStmt   = `INSERT INTO causal_graphs (id, name, format, payload, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`
	selectByID   = `SELECT id, name, format, payload, created_at, updated_at FROM causal_graphs WHERE id = ?`
	selectByName = `SELECT id, name, format, payload, created_at, updated_at FROM causal_graphs WHERE name = ?`
	listStmt     = `SELECT id, name, format, created_at, updated_at FROM causal_graphs ORDER BY name`
	deleteStmt   = `DELETE FROM causal_graphs WHERE id = ?`
	renameStmt   = `UPDATE causal_graphs SET name = ?, updated_at = ? WHERE id = ?`
)

// Init creates the catalog table if it does not exist.
func (s *Store) Init(ctx context.Context) error {
	ddl := s.dialect.ddl()
	s.logger.Debug("exec", "query", ddl)
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("graphstore: creating catalog table: %w", err)
	}
	return nil
}

// Save encodes the graph with the store's codec and inserts it under a
// fresh record ID. A name already present in the catalog fails with a
// NameTakenError.
func (s *Store) Save(ctx context.Context, name string, g *causalgraph.CausalGraph) (*Record, error) {
	if name == "" {
		return nil, fmt.Errorf("graphstore: graph name cannot be empty")
	}
	if g == nil {
		return nil, fmt.Errorf("graphstore: nil graph")
	}
	payload, err := codec.MarshalGraph(s.codec, g, true)
	if err != nil {
		return nil, fmt.Errorf("graphstore: encoding graph %q: %w", name, err)
	}
	r := &Record{
		ID:        uuid.New(),
		Name:      name,
		Format:    s.codec.Name(),
		CreatedAt: time.Now().UTC(),
	}
	r.UpdatedAt = r.CreatedAt
	if _, err := s.exec(ctx, s.db, insertStmt,
		r.ID.String(), r.Name, r.Format, payload, r.CreatedAt, r.UpdatedAt,
	); err != nil {
		if isUniqueViolation(err) {
			return nil, NewNameTakenError(name, err)
		}
		return nil, fmt.Errorf("graphstore: saving graph %q: %w", name, err)
	}
	s.invalidate(ctx, nameKey(name))
	s.logger.Debug("saved graph", "id", r.ID, "name", name, "format", r.Format, "payload_bytes", len(payload))
	return r, nil
}

// Load fetches and decodes the graph stored under the given record ID.
func (s *Store) Load(ctx context.Context, id uuid.UUID) (*causalgraph.CausalGraph, error) {
	key := idKey(id)
	if g, ok := s.fromCache(ctx, key); ok {
		return g, nil
	}
	r, payload, err := s.fetch(ctx, selectByID, id.String())
	if err != nil {
		return nil, err
	}
	g, err := decodePayload(r.Format, payload)
	if err != nil {
		return nil, fmt.Errorf("graphstore: decoding graph %q: %w", r.Name, err)
	}
	s.toCache(ctx, key, r.Format, payload)
	return g, nil
}

// LoadByName fetches and decodes the graph stored under the given name.
func (s *Store) LoadByName(ctx context.Context, name string) (*causalgraph.CausalGraph, error) {
	key := nameKey(name)
	if g, ok := s.fromCache(ctx, key); ok {
		return g, nil
	}
	r, payload, err := s.fetch(ctx, selectByName, name)
	if err != nil {
		return nil, err
	}
	g, err := decodePayload(r.Format, payload)
	if err != nil {
		return nil, fmt.Errorf("graphstore: decoding graph %q: %w", r.Name, err)
	}
	s.toCache(ctx, key, r.Format, payload)
	return g, nil
}

// List returns the records of all stored graphs ordered by name. Payloads
// are not fetched.
func (s *Store) List(ctx context.Context) ([]*Record, error) {
	rows, err := s.query(ctx, s.db, listStmt)
	if err != nil {
		return nil, fmt.Errorf("graphstore: listing graphs: %w", err)
	}
	defer rows.Close()
	var records []*Record
	for rows.Next() {
		var (
			r  Record
			id string
		)
		if err := rows.Scan(&id, &r.Name, &r.Format, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("graphstore: scanning record: %w", err)
		}
		if r.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("graphstore: invalid record id %q: %w", id, err)
		}
		records = append(records, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("graphstore: listing graphs: %w", err)
	}
	return records, nil
}

// Delete removes the graph stored under the given record ID. An unknown ID
// fails with ErrNotFound.
func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.exec(ctx, s.db, deleteStmt, id.String())
	if err != nil {
		return fmt.Errorf("graphstore: deleting graph %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("graphstore: deleting graph %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("graphstore: graph %s: %w", id, ErrNotFound)
	}
	// The row's name is gone with the row, so the whole name scope is
	// dropped rather than looked up first.
	s.invalidate(ctx, idKey(id))
	s.invalidatePrefix(ctx, cacheNamePrefix)
	s.logger.Debug("deleted graph", "id", id)
	return nil
}

// Rename changes the name of the graph stored under the given record ID.
// The new name must not be taken; an unknown ID fails with ErrNotFound.
// The payload and record ID are unchanged.
func (s *Store) Rename(ctx context.Context, id uuid.UUID, newName string) error {
	if newName == "" {
		return fmt.Errorf("graphstore: graph name cannot be empty")
	}
	res, err := s.exec(ctx, s.db, renameStmt, newName, time.Now().UTC(), id.String())
	if err != nil {
		if isUniqueViolation(err) {
			return NewNameTakenError(newName, err)
		}
		return fmt.Errorf("graphstore: renaming graph %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("graphstore: renaming graph %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("graphstore: graph %s: %w", id, ErrNotFound)
	}
	s.invalidatePrefix(ctx, cacheNamePrefix)
	s.logger.Debug("renamed graph", "id", id, "name", newName)
	return nil
}

// Import saves a batch of graphs keyed by name in one transaction. Payload
// encoding fans out across goroutines; the inserts run in name order. On
// any failure the transaction rolls back and nothing is stored. Records
// are returned in name order.
func (s *Store) Import(ctx context.Context, graphs map[string]*causalgraph.CausalGraph) ([]*Record, error) {
	if len(graphs) == 0 {
		return nil, nil
	}
	names := make([]string, 0, len(graphs))
	for name := range graphs {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		if name == "" {
			return nil, fmt.Errorf("graphstore: graph name cannot be empty")
		}
		if graphs[name] == nil {
			return nil, fmt.Errorf("graphstore: nil graph %q", name)
		}
	}

	payloads := make([][]byte, len(names))
	var eg errgroup.Group
	for i, name := range names {
		i, name := i, name
		eg.Go(func() error {
			data, err := codec.MarshalGraph(s.codec, graphs[name], true)
			if err != nil {
				return fmt.Errorf("graphstore: encoding graph %q: %w", name, err)
			}
			payloads[i] = data
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("graphstore: beginning import transaction: %w", err)
	}
	now := time.Now().UTC()
	records := make([]*Record, len(names))
	for i, name := range names {
		r := &Record{
			ID:        uuid.New(),
			Name:      name,
			Format:    s.codec.Name(),
			CreatedAt: now,
			UpdatedAt: now,
		}
		if _, err := s.exec(ctx, tx, insertStmt,
			r.ID.String(), r.Name, r.Format, payloads[i], r.CreatedAt, r.UpdatedAt,
		); err != nil {
			if isUniqueViolation(err) {
				err = NewNameTakenError(name, err)
			} else {
				err = fmt.Errorf("graphstore: importing graph %q: %w", name, err)
			}
			if rerr := tx.Rollback(); rerr != nil {
				err = errors.Join(err, rerr)
			}
			return nil, err
		}
		records[i] = r
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("graphstore: committing import: %w", err)
	}
	for _, name := range names {
		s.invalidate(ctx, nameKey(name))
	}
	s.logger.Debug("imported graphs", "count", len(names))
	return records, nil
}

// execQuerier is the subset of database handle methods the store uses,
// satisfied by both *sql.DB and *sql.Tx.
type execQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func (s *Store) exec(ctx context.Context, on execQuerier, query string, args ...any) (sql.Result, error) {
	q := s.dialect.rebind(query)
	s.logger.Debug("exec", "query", q)
	return on.ExecContext(ctx, q, args...)
}

func (s *Store) query(ctx context.Context, on execQuerier, query string, args ...any) (*sql.Rows, error) {
	q := s.dialect.rebind(query)
	s.logger.Debug("query", "query", q)
	return on.QueryContext(ctx, q, args...)
}

// fetch runs a single-row catalog lookup and returns the record and raw
// payload. A missing row fails with ErrNotFound.
func (s *Store) fetch(ctx context.Context, query, arg string) (*Record, []byte, error) {
	q := s.dialect.rebind(query)
	s.logger.Debug("query", "query", q)
	var (
		r       Record
		id      string
		payload []byte
	)
	err := s.db.QueryRowContext(ctx, q, arg).Scan(&id, &r.Name, &r.Format, &payload, &r.CreatedAt, &r.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, fmt.Errorf("graphstore: graph %q: %w", arg, ErrNotFound)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("graphstore: loading graph %q: %w", arg, err)
	}
	if r.ID, err = uuid.Parse(id); err != nil {
		return nil, nil, fmt.Errorf("graphstore: invalid record id %q: %w", id, err)
	}
	return &r, payload, nil
}

// decodePayload decodes a stored payload with the codec recorded for it.
func decodePayload(format string, payload []byte) (*causalgraph.CausalGraph, error) {
	c, err := codec.ByName(format)
	if err != nil {
		return nil, err
	}
	return codec.UnmarshalGraph(c, payload)
}

// cachedPayload is the cache value: the stored format plus the raw
// payload, msgpack-encoded regardless of the payload's own format.
type cachedPayload struct {
	Format  string `msgpack:"format"`
	Payload []byte `msgpack:"payload"`
}

// fromCache attempts to serve a graph from the cache. Cache failures and
// undecodable entries degrade to a database read.
func (s *Store) fromCache(ctx context.Context, key string) (*causalgraph.CausalGraph, bool) {
	if s.cache == nil {
		return nil, false
	}
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Debug("cache get failed", "key", key, "error", err)
		return nil, false
	}
	if data == nil {
		return nil, false
	}
	var env cachedPayload
	if err := codec.Msgpack.Unmarshal(data, &env); err != nil {
		s.logger.Debug("dropping undecodable cache entry", "key", key)
		s.invalidate(ctx, key)
		return nil, false
	}
	g, err := decodePayload(env.Format, env.Payload)
	if err != nil {
		s.logger.Debug("dropping undecodable cache entry", "key", key)
		s.invalidate(ctx, key)
		return nil, false
	}
	return g, true
}

// toCache stores a payload under the given key. Failures are logged and
// otherwise ignored.
func (s *Store) toCache(ctx context.Context, key, format string, payload []byte) {
	if s.cache == nil {
		return
	}
	data, err := codec.Msgpack.Marshal(cachedPayload{Format: format, Payload: payload})
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, data, s.cacheTTL); err != nil {
		s.logger.Debug("cache set failed", "key", key, "error", err)
	}
}

func (s *Store) invalidate(ctx context.Context, key string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, key); err != nil {
		s.logger.Debug("cache delete failed", "key", key, "error", err)
	}
}

func (s *Store) invalidatePrefix(ctx context.Context, prefix string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeletePrefix(ctx, prefix); err != nil {
		s.logger.Debug("cache delete failed", "prefix", prefix, "error", err)
	}
}
