package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

type sqlKV struct {
	drv     *entsql.Driver
	dialect string
}

func (r *sqlKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b := entsql.Dialect(r.dialect)
	query, args := b.Select("data").
		From(b.Table(kvTable)).
		Where(entsql.EQ("name", key)).
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, false, fmt.Errorf("get %q: %w", key, err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, false, rows.Err()
	}
	var data []byte
	if err := rows.Scan(&data); err != nil {
		return nil, false, fmt.Errorf("scan %q: %w", key, err)
	}
	return data, true, nil
}

func (r *sqlKV) Put(ctx context.Context, key string, value []byte) error {
	if value == nil {
		value = []byte{}
	}
	query, args := entsql.Dialect(r.dialect).
		Insert(kvTable).
		Columns("name", "data", "updated_at").
		Values(key, value, time.Now().UnixMilli()).
		OnConflict(
			entsql.ConflictColumns("name"),
			entsql.ResolveWithNewValues(),
		).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("put %q: %w", key, err)
	}
	return nil
}

func (r *sqlKV) Delete(ctx context.Context, key string) error {
	query, args := entsql.Dialect(r.dialect).
		Delete(kvTable).
		Where(entsql.EQ("name", key)).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}
