package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib" // driver: pgx
)

func Open(url string) (*sql.DB, error) {
	db, err := sql.Open("pgx", url)
	if err != nil {
		return nil, err
	}
	db.SetConnMaxLifetime(30 * time.Minute)
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// Определения храним как jsonb — структура фрагмента и так валидируется
// нормализацией до записи, реляционная раскладка тут не нужна.
var schemaDDL = []string{
	`create table if not exists entity_defs (
  "key" text primary key,
  definition jsonb not null,
  updated_at timestamp with time zone not null default now()
);`,
	`create index if not exists entity_defs_updated_at_ix on entity_defs (updated_at);`,
}

// EnsureSchema применяет идемпотентный DDL (create ... if not exists).
// duplicate_object (42710) не считаем ошибкой.
func EnsureSchema(db *sql.DB) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	for _, stmt := range schemaDDL {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "42710" {
				log.Printf("DDL skipped (already exists): %s", strings.TrimSpace(pgErr.Message))
				continue
			}
			return fmt.Errorf("DDL apply failed: %w", err)
		}
	}
	return nil
}
