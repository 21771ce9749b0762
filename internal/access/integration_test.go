package access

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"svbase/internal/meta"
	"svbase/internal/pg"
)

var fixtureDDL = []string{
	`CREATE TABLE IF NOT EXISTS "cat1__nomenclature" (
		"cat1__id" bigserial PRIMARY KEY,
		"cat1__uuid" uuid NOT NULL UNIQUE DEFAULT gen_random_uuid(),
		"cat1__code" text,
		"cat1__represent" text
	)`,
	`COMMENT ON COLUMN "cat1__nomenclature"."cat1__code" IS 'Код'`,
	`CREATE TABLE IF NOT EXISTS "usr1__ignored" ("usr1__id" bigserial PRIMARY KEY)`,
	`INSERT INTO "cat1__nomenclature" ("cat1__code", "cat1__represent") VALUES ('X1', 'Item 1'), ('X2', 'Item 2')`,
}

func startPostgres(t *testing.T) (*Records, *Lists, *meta.Registry) {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	ctx := context.Background()

	ctr, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("svbase"),
		postgres.WithUsername("svbase"),
		postgres.WithPassword("svbase"),
		postgres.BasicWaitStrategies(),
	)
	t.Cleanup(func() {
		if ctr != nil {
			_ = ctr.Terminate(context.Background())
		}
	})
	require.NoError(t, err)

	url, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := pg.Open(ctx, url, pg.DefaultPoolOptions())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, pg.ApplyDDL(ctx, db, fixtureDDL))

	gw := pg.NewGateway(db)
	reg, err := meta.Load(ctx, gw, meta.LoadOptions{})
	require.NoError(t, err)

	return NewRecords(reg, gw), NewLists(reg, gw), reg
}

func TestPostgres_EndToEnd(t *testing.T) {
	recs, lists, reg := startPostgres(t)
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	assert.Equal(t, []string{"nomenclature"}, reg.Keys())
	fields, err := reg.PublicFields("nomenclature")
	require.NoError(t, err)
	assert.Equal(t, meta.PublicField{Name: "code", Title: "Код"}, fields[2])

	all, err := lists.SelectAll(ctx, "nomenclature")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "X2", all[0]["code"])
	b := all[0]["uuid"].(string)

	// insert: id/uuid из payload игнорируются
	forged := uuid.NewString()
	created, err := recs.Insert(ctx, "nomenclature", map[string]any{
		"code": "X3", "represent": "Item 3", "id": 999, "uuid": forged,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), created["id"])
	assert.Equal(t, "X3", created["code"])
	assert.Equal(t, "Item 3", created["represent"])
	assert.NotEqual(t, forged, created["uuid"])
	_, err = uuid.Parse(created["uuid"].(string))
	assert.NoError(t, err)

	again, err := recs.Select(ctx, "nomenclature", created["uuid"].(string))
	require.NoError(t, err)
	assert.Equal(t, created, again)

	updated, err := recs.Update(ctx, "nomenclature", b, map[string]any{"represent": "Item 2 renamed"})
	require.NoError(t, err)
	assert.Equal(t, "Item 2 renamed", updated["represent"])
	assert.Equal(t, "X2", updated["code"])

	_, err = recs.Update(ctx, "nomenclature", b, map[string]any{})
	assert.ErrorIs(t, err, ErrNoValidFields)

	_, err = recs.Select(ctx, "nomenclature", uuid.NewString())
	assert.ErrorIs(t, err, ErrNotFound)

	// невалидный uuid уходит в базу как есть и возвращается ошибкой базы
	_, err = recs.Select(ctx, "nomenclature", "nonexistent-uuid")
	assert.Equal(t, 500, StatusOf(err))

	_, err = recs.Insert(ctx, "nomenclature", map[string]any{"code": "X4"})
	require.NoError(t, err)

	first, err := lists.SelectPage(ctx, "nomenclature", Page{Limit: 2})
	require.NoError(t, err)
	second, err := lists.SelectPage(ctx, "nomenclature", Page{Limit: 2, Offset: 2})
	require.NoError(t, err)
	all, err = lists.SelectAll(ctx, "nomenclature")
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, all, append(first.Records, second.Records...))
	assert.Equal(t, int64(4), first.Records[0]["id"])

	deleted, err := recs.Delete(ctx, "nomenclature", b)
	require.NoError(t, err)
	assert.Equal(t, b, deleted)
	_, err = recs.Select(ctx, "nomenclature", b)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = recs.Delete(ctx, "nomenclature", b)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPostgres_ConcurrentDeletes(t *testing.T) {
	recs, _, _ := startPostgres(t)
	ctx := context.Background()

	rec, err := recs.Insert(ctx, "nomenclature", map[string]any{"code": "RACE"})
	require.NoError(t, err)
	id := rec["uuid"].(string)

	const n = 8
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		go func() {
			_, err := recs.Delete(ctx, "nomenclature", id)
			errs <- err
		}()
	}
	var ok int
	for i := 0; i < n; i++ {
		err := <-errs
		if err == nil {
			ok++
			continue
		}
		assert.ErrorIs(t, err, ErrNotFound)
	}
	assert.Equal(t, 1, ok)
}
