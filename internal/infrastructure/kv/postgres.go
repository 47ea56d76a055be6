package kv

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log"

	"talentboard/internal/database"

	"github.com/jackc/pgx/v5"
)

// Queries target the kv_store table created by migrations/V1__kv_store.sql.
const (
	qGet         = `SELECT value FROM kv_store WHERE key = $1`
	qSet         = `INSERT INTO kv_store (key, value) VALUES ($1, $2::jsonb) ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`
	qSetIfAbsent = `INSERT INTO kv_store (key, value) VALUES ($1, $2::jsonb) ON CONFLICT (key) DO NOTHING`
	qDelete      = `DELETE FROM kv_store WHERE key = $1`
	qGetMany     = `SELECT key, value FROM kv_store WHERE key = ANY($1)`
	qList        = `SELECT key, value FROM kv_store WHERE starts_with(key, $1) ORDER BY key COLLATE "C"`
	// The upsert takes a row lock, so concurrent prepends to one key
	// serialize inside Postgres.
	qPrepend = `INSERT INTO kv_store (key, value) VALUES ($1, jsonb_build_array($2::text))
ON CONFLICT (key) DO UPDATE SET value = jsonb_build_array($2::text) || kv_store.value, updated_at = now()`
)

type Postgres struct {
	db     database.DB
	logger *log.Logger
}

func NewPostgres(db database.DB, logger *log.Logger) *Postgres {
	if logger == nil {
		logger = log.Default()
	}
	return &Postgres{db: db, logger: logger}
}

func (p *Postgres) fail(op, key string, err error) error {
	p.logger.Printf("[KV] postgres error op=%s key=%s err=%v", op, key, err)
	return opError(op, key, err)
}

func (p *Postgres) Get(ctx context.Context, key string, out any) (bool, error) {
	var b []byte
	if err := p.db.QueryRow(ctx, qGet, key).Scan(&b); err != nil {
		if isNoRows(err) {
			return false, nil
		}
		return false, p.fail("get", key, err)
	}
	if err := decode("get", key, b, out); err != nil {
		return false, err
	}
	return true, nil
}

func (p *Postgres) Set(ctx context.Context, key string, value any) error {
	b, err := encode("set", key, value)
	if err != nil {
		return err
	}
	if _, err := p.db.Exec(ctx, qSet, key, string(b)); err != nil {
		return p.fail("set", key, err)
	}
	return nil
}

func (p *Postgres) Delete(ctx context.Context, key string) error {
	if _, err := p.db.Exec(ctx, qDelete, key); err != nil {
		return p.fail("delete", key, err)
	}
	return nil
}

func (p *Postgres) GetMany(ctx context.Context, keys []string) (map[string]json.RawMessage, error) {
	out := make(map[string]json.RawMessage, len(keys))
	if len(keys) == 0 {
		return out, nil
	}
	entries, err := p.query(ctx, "get_many", "", qGetMany, keys)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		out[e.Key] = e.Value
	}
	return out, nil
}

func (p *Postgres) ListByPrefix(ctx context.Context, prefix string) ([]Entry, error) {
	return p.query(ctx, "list", prefix, qList, prefix)
}

func (p *Postgres) query(ctx context.Context, op, key, q string, args ...any) ([]Entry, error) {
	rows, err := p.db.Query(ctx, q, args...)
	if err != nil {
		return nil, p.fail(op, key, err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var k string
		var b []byte
		if err := rows.Scan(&k, &b); err != nil {
			return nil, p.fail(op, key, err)
		}
		out = append(out, Entry{Key: k, Value: json.RawMessage(b)})
	}
	if err := rows.Err(); err != nil {
		return nil, p.fail(op, key, err)
	}
	return out, nil
}

func (p *Postgres) SetIfAbsent(ctx context.Context, key string, value any) (bool, error) {
	b, err := encode("set_if_absent", key, value)
	if err != nil {
		return false, err
	}
	n, err := p.db.Exec(ctx, qSetIfAbsent, key, string(b))
	if err != nil {
		return false, p.fail("set_if_absent", key, err)
	}
	return n == 1, nil
}

func (p *Postgres) Prepend(ctx context.Context, key string, item string) error {
	if _, err := p.db.Exec(ctx, qPrepend, key, item); err != nil {
		return p.fail("prepend", key, err)
	}
	return nil
}

func (p *Postgres) Ping(ctx context.Context) error {
	if err := p.db.Ping(ctx); err != nil {
		return opError("ping", "", err)
	}
	return nil
}

func (p *Postgres) Close() error {
	return p.db.Close()
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows)
}

var _ Store = (*Postgres)(nil)
