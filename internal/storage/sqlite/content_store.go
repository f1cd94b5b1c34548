// Package sqlite persists content records in a local SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/JakeFAU/areapages/internal/content"
)

// DefaultTable is used when Config.Table is empty.
const DefaultTable = "location_content"

var validTableName = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// Config controls the SQLite store.
type Config struct {
	// Path is the database file, or ":memory:".
	Path  string
	Table string
}

// ContentStore implements content.Store on database/sql with the modernc driver.
type ContentStore struct {
	db    *sql.DB
	table string
}

// Open opens (creating if needed) the database, applies pragmas and creates the table.
func Open(ctx context.Context, cfg Config) (*ContentStore, error) {
	if cfg.Path == "" {
		return nil, errors.New("store.dsn is required")
	}
	if cfg.Path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o750); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// One connection keeps ":memory:" databases shared and serializes writers.
	db.SetMaxOpenConns(1)

	store, err := NewContentStoreWithDB(ctx, db, cfg.Table)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// NewContentStoreWithDB wraps an open database and prepares it.
func NewContentStoreWithDB(ctx context.Context, db *sql.DB, table string) (*ContentStore, error) {
	if db == nil {
		return nil, errors.New("db is required")
	}
	if table == "" {
		table = DefaultTable
	}
	if !validTableName.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 10000",
		"PRAGMA synchronous = NORMAL",
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			return nil, fmt.Errorf("apply %q: %w", pragma, err)
		}
	}
	if _, err := db.ExecContext(ctx, fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %s (
	id              TEXT NOT NULL,
	county_key      TEXT NOT NULL,
	town_key        TEXT NOT NULL,
	service_key     TEXT NOT NULL,
	narrative       TEXT NOT NULL,
	faqs            TEXT NOT NULL,
	deal_example    TEXT NOT NULL,
	rates           TEXT NOT NULL,
	seo_title       TEXT NOT NULL,
	seo_description TEXT NOT NULL,
	model           TEXT NOT NULL DEFAULT '',
	generated_at    TEXT NOT NULL,
	PRIMARY KEY (county_key, town_key, service_key)
)`, table)); err != nil {
		return nil, fmt.Errorf("create table %s: %w", table, err)
	}
	return &ContentStore{db: db, table: table}, nil
}

// Close closes the database.
func (s *ContentStore) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close sqlite: %w", err)
	}
	return nil
}

// ListExistingKeys returns every stored key.
func (s *ContentStore) ListExistingKeys(ctx context.Context) (content.KeySet, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`SELECT county_key, town_key, service_key FROM %s`, s.table))
	if err != nil {
		return nil, fmt.Errorf("query content keys: %w", err)
	}
	defer rows.Close() //nolint:errcheck // read-only cursor

	keys := make(content.KeySet)
	for rows.Next() {
		var k content.Key
		if err := rows.Scan(&k.CountyKey, &k.TownKey, &k.ServiceKey); err != nil {
			return nil, fmt.Errorf("scan content key: %w", err)
		}
		keys[k] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate content keys: %w", err)
	}
	return keys, nil
}

// WriteContentRecord inserts rec unless its key is already stored.
func (s *ContentStore) WriteContentRecord(ctx context.Context, rec content.Record) error {
	if rec.ID == "" {
		return errors.New("record id is required")
	}
	k := rec.Key
	if k.CountyKey == "" || k.TownKey == "" || k.ServiceKey == "" {
		return fmt.Errorf("record key %q is incomplete", k)
	}
	faqs, err := json.Marshal(rec.FAQs)
	if err != nil {
		return fmt.Errorf("marshal faqs: %w", err)
	}
	deal, err := json.Marshal(rec.DealExample)
	if err != nil {
		return fmt.Errorf("marshal deal example: %w", err)
	}
	rates, err := json.Marshal(rec.Rates)
	if err != nil {
		return fmt.Errorf("marshal rates: %w", err)
	}
	_, err = s.db.ExecContext(ctx, fmt.Sprintf(`
INSERT OR IGNORE INTO %s (
	id, county_key, town_key, service_key, narrative, faqs, deal_example, rates,
	seo_title, seo_description, model, generated_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, s.table),
		rec.ID, k.CountyKey, k.TownKey, k.ServiceKey, rec.Narrative,
		string(faqs), string(deal), string(rates),
		rec.SEOTitle, rec.SEODescription, rec.Model,
		rec.GeneratedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert content record: %w", err)
	}
	return nil
}

// getContentRecord loads the record stored for k.
func (s *ContentStore) getContentRecord(ctx context.Context, k content.Key) (content.Record, error) {
	row := s.db.QueryRowContext(ctx, fmt.Sprintf(`
SELECT id, narrative, faqs, deal_example, rates, seo_title, seo_description, model, generated_at
FROM %s WHERE county_key = ? AND town_key = ? AND service_key = ?`, s.table),
		k.CountyKey, k.TownKey, k.ServiceKey)

	rec := content.Record{Key: k}
	var faqs, deal, rates, generatedAt string
	if err := row.Scan(&rec.ID, &rec.Narrative, &faqs, &deal, &rates,
		&rec.SEOTitle, &rec.SEODescription, &rec.Model, &generatedAt); err != nil {
		return content.Record{}, fmt.Errorf("load content record %s: %w", k, err)
	}
	if err := json.Unmarshal([]byte(faqs), &rec.FAQs); err != nil {
		return content.Record{}, fmt.Errorf("decode faqs: %w", err)
	}
	if err := json.Unmarshal([]byte(deal), &rec.DealExample); err != nil {
		return content.Record{}, fmt.Errorf("decode deal example: %w", err)
	}
	if err := json.Unmarshal([]byte(rates), &rec.Rates); err != nil {
		return content.Record{}, fmt.Errorf("decode rates: %w", err)
	}
	ts, err := time.Parse(time.RFC3339Nano, generatedAt)
	if err != nil {
		return content.Record{}, fmt.Errorf("decode generated_at: %w", err)
	}
	rec.GeneratedAt = ts
	return rec, nil
}
