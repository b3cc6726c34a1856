package store

import (
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/samber/lo"
)

const kvTable = "kv_entries"

// queries renders the KV statements for one SQL dialect.
type queries struct {
	dialect string
}

func newQueries(d string) queries {
	return queries{dialect: d}
}

func (q queries) builder() *entsql.DialectBuilder {
	return entsql.Dialect(q.dialect)
}

// createTable returns the DDL for the KV table.
func (q queries) createTable() string {
	if q.dialect == dialect.Postgres {
		return `CREATE TABLE IF NOT EXISTS kv_entries (
			"key"        TEXT PRIMARY KEY,
			"value"      TEXT NOT NULL,
			"updated_at" TIMESTAMPTZ NOT NULL
		)`
	}
	return `CREATE TABLE IF NOT EXISTS kv_entries (
		"key"        TEXT PRIMARY KEY,
		"value"      TEXT NOT NULL,
		"updated_at" DATETIME NOT NULL
	)`
}

func (q queries) get(key Key) (string, []any) {
	b := q.builder()
	return b.Select("value").
		From(b.Table(kvTable)).
		Where(entsql.EQ("key", string(key))).
		Query()
}

func (q queries) upsert(key Key, value []byte, now time.Time) (string, []any) {
	return q.builder().Insert(kvTable).
		Columns("key", "value", "updated_at").
		Values(string(key), string(value), now.UTC()).
		OnConflict(
			entsql.ConflictColumns("key"),
			entsql.ResolveWithNewValues(),
		).
		Query()
}

func (q queries) remove(key Key) (string, []any) {
	return q.builder().Delete(kvTable).
		Where(entsql.EQ("key", string(key))).
		Query()
}

func (q queries) clear() (string, []any) {
	keys := lo.Map(AllKeys(), func(k Key, _ int) any { return string(k) })
	return q.builder().Delete(kvTable).
		Where(entsql.In("key", keys...)).
		Query()
}
