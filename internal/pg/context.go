package pg

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"shema/internal/schema"
)

// LoadContext читает все сохранённые определения в снимок схемы.
func LoadContext(ctx context.Context, db *sql.DB) (schema.Context, error) {
	rows, err := db.QueryContext(ctx, `select "key", definition from entity_defs`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(schema.Context)
	for rows.Next() {
		var key string
		var raw []byte
		if err := rows.Scan(&key, &raw); err != nil {
			return nil, err
		}
		var frag schema.EntityFragment
		if err := json.Unmarshal(raw, &frag); err != nil {
			return nil, fmt.Errorf("entity_defs[%s]: bad definition json: %w", key, err)
		}
		out[key] = &frag
	}
	return out, rows.Err()
}

// SaveDefinition — upsert одного определения.
func SaveDefinition(ctx context.Context, db *sql.DB, key string, def *schema.EntityFragment) error {
	raw, err := json.Marshal(def)
	if err != nil {
		return fmt.Errorf("marshal definition %s: %w", key, err)
	}
	_, err = db.ExecContext(ctx, `
insert into entity_defs ("key", definition, updated_at)
values ($1, $2, now())
on conflict ("key") do update set definition = excluded.definition, updated_at = now()`,
		key, raw)
	return err
}
