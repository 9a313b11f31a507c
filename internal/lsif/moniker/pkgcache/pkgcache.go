// # internal/lsif/moniker/pkgcache/pkgcache.go
// Package pkgcache deduplicates PackageInformation vertices by the
// triple (name, version, manager), per spec §3's "one per distinct
// package" lifecycle rule. Grounded on the teacher's
// internal/engine/graph/symbol_store.go, which promotes a hot in-memory
// lookup table to a pure-Go sqlite-backed store once the table grows
// past a size where repeated linear scans would dominate; this cache
// makes the same call for PackageInformation records, which are small
// and few relative to symbols, so the default path stays in-memory and
// the sqlite path is opt-in.
package pkgcache

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	_ "modernc.org/sqlite"

	"lsifgo/internal/lsif/model"
)

// Key identifies one distinct package.
type Key struct {
	Name    string
	Version string
	Manager string
}

// Cache maps a Key to the ID already assigned to its PackageInformation
// vertex, so the Data Manager emits each package exactly once.
type Cache interface {
	// GetOrAllocate returns the existing ID for key, or calls allocate
	// and remembers its result when key is seen for the first time.
	GetOrAllocate(key Key, allocate func() model.ID) (id model.ID, isNew bool)
	Close() error
}

// memCache is the default backend: a plain mutex-guarded map, adequate
// for the vast majority of workspaces where distinct packages number in
// the tens or hundreds.
type memCache struct {
	mu    sync.Mutex
	table map[Key]model.ID
}

// NewMemory returns the default in-memory Cache.
func NewMemory() Cache {
	return &memCache{table: make(map[Key]model.ID)}
}

func (c *memCache) GetOrAllocate(key Key, allocate func() model.ID) (model.ID, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if id, ok := c.table[key]; ok {
		return id, false
	}
	id := allocate()
	c.table[key] = id
	return id, true
}

func (c *memCache) Close() error { return nil }

// sqliteCache backs the same interface with a persistent table, for
// workspaces indexed repeatedly across runs where package identity
// should stay stable (`lsifgo --id number` requires the same package to
// receive IDs in the same relative order run over run only within a
// single process; the sqlite path exists for callers embedding the
// indexer across many short-lived invocations against the same
// dependency set, e.g. the MCP server of internal/mcpserver).
type sqliteCache struct {
	mu sync.Mutex
	db *sql.DB
}

// OpenSQLite opens (creating if absent) a sqlite-backed Cache at path.
func OpenSQLite(path string) (Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open package cache: %w", err)
	}
	if _, err := db.ExecContext(context.Background(), `
		CREATE TABLE IF NOT EXISTS package_information (
			name TEXT NOT NULL,
			version TEXT NOT NULL,
			manager TEXT NOT NULL,
			vertex_id TEXT NOT NULL,
			PRIMARY KEY (name, version, manager)
		)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create package cache table: %w", err)
	}
	return &sqliteCache{db: db}, nil
}

func (c *sqliteCache) GetOrAllocate(key Key, allocate func() model.ID) (model.ID, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var existing string
	err := c.db.QueryRow(
		`SELECT vertex_id FROM package_information WHERE name = ? AND version = ? AND manager = ?`,
		key.Name, key.Version, key.Manager,
	).Scan(&existing)
	if err == nil {
		return model.ID(existing), false
	}

	id := allocate()
	_, _ = c.db.Exec(
		`INSERT OR IGNORE INTO package_information (name, version, manager, vertex_id) VALUES (?, ?, ?, ?)`,
		key.Name, key.Version, key.Manager, string(id),
	)
	return id, true
}

func (c *sqliteCache) Close() error {
	return c.db.Close()
}
