package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/duccv/whereisit/internal/model"
	"github.com/duccv/whereisit/pkg/database"
	"github.com/jackc/pgx/v5"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// postgresCollection is a JSONB table created by database.PostgresDB.EnsureCollections.
type postgresCollection struct {
	db    *database.PostgresDB
	table string
}

func (c postgresCollection) query(ctx context.Context, where string, args ...any) ([]bson.M, error) {
	sql := fmt.Sprintf("SELECT data FROM %s %s", pgx.Identifier{c.table}.Sanitize(), where)
	rows, err := c.db.Querier(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", c.table, err)
	}

	docs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (bson.M, error) {
		var doc map[string]any
		err := row.Scan(&doc)
		return doc, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", c.table, err)
	}
	if docs == nil {
		docs = make([]bson.M, 0)
	}
	return docs, nil
}

func (c postgresCollection) insert(ctx context.Context, doc bson.M) (any, error) {
	id, ok := doc[model.ItemIDField]
	if !ok || id == nil {
		id = bson.NewObjectID()
		doc[model.ItemIDField] = id
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}

	sql := fmt.Sprintf("INSERT INTO %s (id, data) VALUES ($1, $2::jsonb)", pgx.Identifier{c.table}.Sanitize())
	if _, err := c.db.Querier(ctx).Exec(ctx, sql, documentKey(id), data); err != nil {
		return nil, fmt.Errorf("insert into %s: %w", c.table, err)
	}
	return id, nil
}

func documentKey(id any) string {
	if oid, ok := id.(bson.ObjectID); ok {
		return oid.Hex()
	}
	return fmt.Sprint(id)
}

type postgresItemRepository struct {
	postgresCollection
}

func NewPostgresItemRepository(db *database.PostgresDB, table string) ItemRepository {
	return &postgresItemRepository{postgresCollection{db: db, table: table}}
}

func (r *postgresItemRepository) FindAll(ctx context.Context) ([]model.Item, error) {
	return r.query(ctx, "ORDER BY seq")
}

func (r *postgresItemRepository) FindByID(ctx context.Context, id string) (model.Item, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	docs, err := r.query(ctx, "WHERE id = $1", oid.Hex())
	if err != nil || len(docs) == 0 {
		return nil, err
	}
	return docs[0], nil
}

func (r *postgresItemRepository) FindLatest(ctx context.Context, limit int64) ([]model.Item, error) {
	return r.query(ctx, latestOrderClause(model.ItemDateField)+" LIMIT $1", limit)
}

// jsonbTypeSamples maps jsonb_typeof names to a Go value of the decoded type, so
// the SQL ranking reuses typeRank.
var jsonbTypeSamples = []struct {
	name   string
	sample any
}{
	{"number", float64(0)},
	{"string", ""},
	{"object", map[string]any{}},
	{"array", []any{}},
	{"boolean", false},
}

// latestOrderClause sorts by field descending with values of different types ranked
// like the other backends; missing and null values come last.
func latestOrderClause(field string) string {
	value := fmt.Sprintf("data->'%s'", field)
	var b strings.Builder
	fmt.Fprintf(&b, "ORDER BY CASE jsonb_typeof(%s)", value)
	for _, t := range jsonbTypeSamples {
		fmt.Fprintf(&b, " WHEN '%s' THEN %d", t.name, typeRank(t.sample))
	}
	fmt.Fprintf(&b, " ELSE %d END DESC, %s DESC NULLS LAST, seq", typeRank(nil), value)
	return b.String()
}

func (r *postgresItemRepository) FindByContactEmail(ctx context.Context, email *string) ([]model.Item, error) {
	if email == nil {
		return r.query(ctx, "WHERE COALESCE(data #> '{contact,email}', 'null'::jsonb) = 'null'::jsonb ORDER BY seq")
	}
	return r.query(ctx, "WHERE data #> '{contact,email}' = to_jsonb($1::text) ORDER BY seq", *email)
}

func (r *postgresItemRepository) Insert(ctx context.Context, item model.Item) (*model.InsertResult, error) {
	doc := cloneDoc(item)
	if doc == nil {
		doc = bson.M{}
	}
	id, err := r.insert(ctx, doc)
	if err != nil {
		return nil, err
	}
	return &model.InsertResult{Acknowledged: true, InsertedID: id}, nil
}

// Update applies the set inside a transaction: the row is locked, patched in Go with
// the same dotted-path rules as the other backends, and written back only if it changed.
func (r *postgresItemRepository) Update(ctx context.Context, id string, set model.Item) (*model.UpdateResult, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	res := &model.UpdateResult{Acknowledged: true}
	table := pgx.Identifier{r.table}.Sanitize()

	err = r.db.WithTransaction(ctx, func(ctx context.Context) error {
		q := r.db.Querier(ctx)

		var doc map[string]any
		err := q.QueryRow(ctx, fmt.Sprintf("SELECT data FROM %s WHERE id = $1 FOR UPDATE", table), oid.Hex()).
			Scan(&doc)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("lock item %s: %w", id, err)
		}
		res.MatchedCount = 1

		for path, v := range set {
			if err := setPath(doc, path, v); err != nil {
				return err
			}
		}
		data, err := json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("encode item %s: %w", id, err)
		}

		tag, err := q.Exec(ctx,
			fmt.Sprintf("UPDATE %s SET data = $2::jsonb WHERE id = $1 AND data IS DISTINCT FROM $2::jsonb", table),
			oid.Hex(), data)
		if err != nil {
			return fmt.Errorf("update item %s: %w", id, err)
		}
		res.ModifiedCount = tag.RowsAffected()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (r *postgresItemRepository) Delete(ctx context.Context, id string) (*model.DeleteResult, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	sql := fmt.Sprintf("DELETE FROM %s WHERE id = $1", pgx.Identifier{r.table}.Sanitize())
	tag, err := r.db.Querier(ctx).Exec(ctx, sql, oid.Hex())
	if err != nil {
		return nil, fmt.Errorf("delete item %s: %w", id, err)
	}
	return &model.DeleteResult{Acknowledged: true, DeletedCount: tag.RowsAffected()}, nil
}

type postgresRecoveryRepository struct {
	postgresCollection
}

func NewPostgresRecoveryRepository(db *database.PostgresDB, table string) RecoveryRepository {
	return &postgresRecoveryRepository{postgresCollection{db: db, table: table}}
}

func (r *postgresRecoveryRepository) FindAll(ctx context.Context) ([]bson.M, error) {
	return r.query(ctx, "ORDER BY seq")
}

func (r *postgresRecoveryRepository) Insert(ctx context.Context, recovery *model.Recovery) (*model.InsertResult, error) {
	id, err := r.insert(ctx, recovery.Document())
	if err != nil {
		return nil, err
	}
	return &model.InsertResult{Acknowledged: true, InsertedID: id}, nil
}
