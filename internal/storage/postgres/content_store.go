// Package postgres persists content records in Postgres.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JakeFAU/areapages/internal/content"
)

// DefaultTable is used when Config.Table is empty.
const DefaultTable = "location_content"

var validTableName = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// Config controls the Postgres connection pool.
type Config struct {
	DSN             string
	Table           string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
}

type pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Close()
}

// ContentStore implements content.Store on a pgx pool.
type ContentStore struct {
	pool  pool
	table string
}

// NewContentStore connects a pool using cfg.
func NewContentStore(ctx context.Context, cfg Config) (*ContentStore, error) {
	if cfg.DSN == "" {
		return nil, errors.New("store.dsn is required")
	}
	table, err := tableName(cfg.Table)
	if err != nil {
		return nil, err
	}
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		poolCfg.MinConns = cfg.MinConns
	}
	if cfg.MaxConnLifetime > 0 {
		poolCfg.MaxConnLifetime = cfg.MaxConnLifetime
	}
	p, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return &ContentStore{pool: p, table: table}, nil
}

// NewContentStoreWithPool constructs a store from an existing pool (primarily for testing).
func NewContentStoreWithPool(p pool, table string) (*ContentStore, error) {
	if p == nil {
		return nil, errors.New("pool is required")
	}
	table, err := tableName(table)
	if err != nil {
		return nil, err
	}
	return &ContentStore{pool: p, table: table}, nil
}

func tableName(table string) (string, error) {
	if table == "" {
		return DefaultTable, nil
	}
	if !validTableName.MatchString(table) {
		return "", fmt.Errorf("invalid table name %q", table)
	}
	return table, nil
}

// EnsureSchema creates the content table when it does not exist.
func (s *ContentStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, createTableSQL(s.table)); err != nil {
		return fmt.Errorf("create table %s: %w", s.table, err)
	}
	return nil
}

// Close releases the pool.
func (s *ContentStore) Close() error {
	if s == nil || s.pool == nil {
		return nil
	}
	s.pool.Close()
	return nil
}

// ListExistingKeys returns every (county_key, town_key, service_key) in the table.
func (s *ContentStore) ListExistingKeys(ctx context.Context) (content.KeySet, error) {
	rows, err := s.pool.Query(ctx, selectKeysSQL(s.table))
	if err != nil {
		return nil, fmt.Errorf("query content keys: %w", err)
	}
	defer rows.Close()

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

// WriteContentRecord inserts rec; a row already present for the key is left untouched.
func (s *ContentStore) WriteContentRecord(ctx context.Context, rec content.Record) error {
	args, err := recordArgs(rec)
	if err != nil {
		return err
	}
	if _, err := s.pool.Exec(ctx, insertRecordSQL(s.table), args...); err != nil {
		return fmt.Errorf("insert content record: %w", err)
	}
	return nil
}

func recordArgs(rec content.Record) ([]any, error) {
	if rec.ID == "" {
		return nil, errors.New("record id is required")
	}
	k := rec.Key
	if k.CountyKey == "" || k.TownKey == "" || k.ServiceKey == "" {
		return nil, fmt.Errorf("record key %q is incomplete", k)
	}
	faqs, err := json.Marshal(rec.FAQs)
	if err != nil {
		return nil, fmt.Errorf("marshal faqs: %w", err)
	}
	deal, err := json.Marshal(rec.DealExample)
	if err != nil {
		return nil, fmt.Errorf("marshal deal example: %w", err)
	}
	rates, err := json.Marshal(rec.Rates)
	if err != nil {
		return nil, fmt.Errorf("marshal rates: %w", err)
	}
	return []any{
		rec.ID,
		k.CountyKey,
		k.TownKey,
		k.ServiceKey,
		rec.Narrative,
		faqs,
		deal,
		rates,
		rec.SEOTitle,
		rec.SEODescription,
		rec.Model,
		rec.GeneratedAt,
	}, nil
}
