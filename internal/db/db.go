package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/DonSam77/reservasjs/internal/store"
	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// DB is a store.Store backed by MySQL: one row per document, fields kept in a
// JSON column and keyed by (collection, id). Sub-collection paths are plain
// collection values.
type DB struct {
	*sqlx.DB
}

var _ store.Store = (*DB)(nil)

// Open connects, waits for the server to answer and ensures the schema.
func Open(ctx context.Context, dsn string, attempts int) (*DB, error) {
	xdb, err := sqlx.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}
	xdb.SetConnMaxLifetime(2 * time.Hour)
	xdb.SetMaxIdleConns(10)
	xdb.SetMaxOpenConns(50)

	if attempts <= 0 {
		attempts = 1
	}
	for i := 0; ; i++ {
		err = xdb.PingContext(ctx)
		if err == nil {
			break
		}
		if i+1 >= attempts {
			_ = xdb.Close()
			return nil, fmt.Errorf("database not reachable: %w", err)
		}
		select {
		case <-ctx.Done():
			_ = xdb.Close()
			return nil, ctx.Err()
		case <-time.After(time.Second):
		}
	}

	d := New(xdb)
	if err := d.EnsureSchema(ctx); err != nil {
		_ = xdb.Close()
		return nil, err
	}
	return d, nil
}

// New wraps an existing connection without touching the schema.
func New(x *sqlx.DB) *DB { return &DB{DB: x} }

func (d *DB) Close() error { return d.DB.Close() }

// EnsureSchema creates the documents table when missing.
func (d *DB) EnsureSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS documents (
			collection VARCHAR(512) NOT NULL,
			id VARCHAR(64) NOT NULL,
			data JSON NOT NULL,
			created_at DATETIME(6) NOT NULL DEFAULT CURRENT_TIMESTAMP(6),
			updated_at DATETIME(6) NOT NULL DEFAULT CURRENT_TIMESTAMP(6) ON UPDATE CURRENT_TIMESTAMP(6),
			PRIMARY KEY (collection, id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,
	}
	for _, s := range stmts {
		if _, err := d.DB.ExecContext(ctx, s); err != nil {
			return fmt.Errorf("schema: %w", err)
		}
	}
	return nil
}

type row struct {
	ID   string `db:"id"`
	Data []byte `db:"data"`
}

func (r row) document() (store.Document, error) {
	data := map[string]any{}
	if err := json.Unmarshal(r.Data, &data); err != nil {
		return store.Document{}, fmt.Errorf("decode document %s: %w", r.ID, err)
	}
	return store.Document{ID: r.ID, Data: data}, nil
}

func (d *DB) Get(ctx context.Context, collection, id string) (store.Document, error) {
	var r row
	err := d.GetContext(ctx, &r, "SELECT id, data FROM documents WHERE collection=? AND id=?", collection, id)
	if errors.Is(err, sql.ErrNoRows) {
		return store.Document{}, store.ErrNotFound
	}
	if err != nil {
		return store.Document{}, fmt.Errorf("get %s/%s: %w", collection, id, err)
	}
	return r.document()
}

func (d *DB) List(ctx context.Context, collection string) ([]store.Document, error) {
	var rows []row
	if err := d.SelectContext(ctx, &rows,
		"SELECT id, data FROM documents WHERE collection=? ORDER BY created_at ASC, id ASC", collection); err != nil {
		return nil, fmt.Errorf("list %s: %w", collection, err)
	}
	out := make([]store.Document, 0, len(rows))
	for _, r := range rows {
		doc, err := r.document()
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, nil
}

func (d *DB) Add(ctx context.Context, collection string, fields map[string]any) (string, error) {
	if fields == nil {
		fields = map[string]any{}
	}
	b, err := json.Marshal(fields)
	if err != nil {
		return "", fmt.Errorf("encode document: %w", err)
	}
	id := uuid.NewString()
	if _, err := d.ExecContext(ctx, "INSERT INTO documents (collection,id,data) VALUES (?,?,?)", collection, id, string(b)); err != nil {
		return "", fmt.Errorf("add %s: %w", collection, err)
	}
	return id, nil
}

// Update locks the row, merges in Go and writes back within one transaction.
func (d *DB) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	tx, err := d.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("update %s/%s: %w", collection, id, err)
	}
	defer func() { _ = tx.Rollback() }()

	var raw []byte
	err = tx.GetContext(ctx, &raw, "SELECT data FROM documents WHERE collection=? AND id=? FOR UPDATE", collection, id)
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("update %s/%s: %w", collection, id, err)
	}
	if len(fields) == 0 {
		return tx.Commit()
	}

	data := map[string]any{}
	if err := json.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("decode document %s: %w", id, err)
	}
	b, err := json.Marshal(store.Merge(data, fields))
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "UPDATE documents SET data=? WHERE collection=? AND id=?", string(b), collection, id); err != nil {
		return fmt.Errorf("update %s/%s: %w", collection, id, err)
	}
	return tx.Commit()
}

func (d *DB) Delete(ctx context.Context, collection, id string) error {
	if _, err := d.ExecContext(ctx, "DELETE FROM documents WHERE collection=? AND id=?", collection, id); err != nil {
		return fmt.Errorf("delete %s/%s: %w", collection, id, err)
	}
	return nil
}
