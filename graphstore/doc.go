// Package graphstore provides a SQL-backed catalog for causal graphs.
//
// Graphs are serialized with a codec from the codec package and stored one
// row per graph in a single causal_graphs table: a generated UUID record
// ID, a unique human-readable name, the wire format, and the encoded
// payload. Loading decodes with the format recorded per row, so one
// catalog can hold graphs written by stores configured with different
// codecs.
//
// # Supported Dialects
//
// The following dialects are supported:
//
//   - Postgres: PostgreSQL via lib/pq
//   - MySQL: MySQL/MariaDB via go-sql-driver/mysql
//   - SQLite: SQLite via modernc.org/sqlite
//
// Each dialect is identified by a constant string:
//
//	graphstore.Postgres = "postgres"
//	graphstore.MySQL    = "mysql"
//	graphstore.SQLite   = "sqlite"
//
// Statements are written once with ? placeholders and rebound per dialect,
// and driver constraint errors are classified uniformly, so behavior is
// identical across backends.
//
// # Usage
//
// Opening a store and saving a graph:
//
//	store, err := graphstore.Open(graphstore.SQLite, "file:graphs.db")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer store.Close()
//
//	if err := store.Init(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	rec, err := store.Save(ctx, "weather", g)
//
// Loading it back, by record ID or by name:
//
//	g, err := store.Load(ctx, rec.ID)
//	g, err = store.LoadByName(ctx, "weather")
//
// # Caching
//
// An optional read-through cache serves repeated loads without touching
// the database. MemCache is a process-local implementation; the Cache
// interface admits shared backends such as Redis or Memcached:
//
//	store, err := graphstore.Open(graphstore.Postgres, dsn,
//	    graphstore.WithCache(graphstore.NewMemCache()),
//	    graphstore.WithCacheTTL(5*time.Minute),
//	)
//
// Save, Rename and Delete invalidate affected cache entries.
//
// # Errors
//
// Lookups of unknown records fail with ErrNotFound. Saving or renaming to
// a name already in the catalog fails with NameTakenError, classified from
// the driver's uniqueness violation on every supported backend:
//
//	if graphstore.IsNameTaken(err) {
//	    // pick another name
//	}
package graphstore
