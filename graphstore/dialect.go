package graphstore

import (
	"strconv"
	"strings"
)

// Dialect identifies a supported SQL backend.
type Dialect string

// The supported dialects.
const (
	// SQLite uses the modernc.org/sqlite driver.
	SQLite Dialect = "sqlite"

	// MySQL uses the go-sql-driver/mysql driver.
	MySQL Dialect = "mysql"

	// Postgres uses the lib/pq driver.
	Postgres Dialect = "postgres"
)

// String returns the dialect name.
func (d Dialect) String() string {
	return string(d)
}

// Valid reports whether d is a supported dialect.
func (d Dialect) Valid() bool {
	switch d {
	case SQLite, MySQL, Postgres:
		return true
	}
	return false
}

// driverName returns the database/sql driver name registered for the
// dialect.
func (d Dialect) driverName() string {
	switch d {
	case SQLite:
		return "sqlite"
	case MySQL:
		return "mysql"
	case Postgres:
		return "postgres"
	}
	return string(d)
}

// ddl returns the catalog table definition for the dialect.
func (d Dialect) ddl() string {
	switch d {
	case MySQL:
		return `CREATE TABLE IF NOT EXISTS causal_graphs (
	id CHAR(36) PRIMARY KEY,
	name VARCHAR(255) NOT NULL UNIQUE,
	format VARCHAR(32) NOT NULL,
	payload MEDIUMBLOB NOT NULL,
	created_at DATETIME(6) NOT NULL,
	updated_at DATETIME(6) NOT NULL
)`
	case Postgres:
		return `CREATE TABLE IF NOT EXISTS causal_graphs (
	id UUID PRIMARY KEY,
	name TEXT NOT NULL UNIQUE,
	format TEXT NOT NULL,
	payload BYTEA NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
)`
	default:
		return `CREATE TABLE IF NOT EXISTS causal_graphs (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL UNIQUE,
	format TEXT NOT NULL,
	payload BLOB NOT NULL,
	created_at TIMESTAMP NOT NULL,
	updated_at TIMESTAMP NOT NULL
)`
	}
}

// rebind rewrites ? placeholders into the dialect's placeholder style.
// Statements are written with ? and rebound once at execution time.
func (d Dialect) rebind(query string) string {
	if d != Postgres {
		return query
	}
	var (
		b strings.Builder
		n int
	)
	b.Grow(len(query) + 8)
	for _, r := range query {
		if r != '?' {
			b.WriteRune(r)
			continue
		}
		n++
		b.WriteByte('$')
		b.WriteString(strconv.Itoa(n))
	}
	return b.String()
}
