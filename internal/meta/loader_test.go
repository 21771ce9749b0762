package meta

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svbase/internal/pg"
)

var columnHeader = []string{"column_name", "data_type", "is_nullable", "column_default", "column_comment"}

func TestLoad(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(tablesQuery)).
		WithArgs("public", "^(cat|doc|sys|svb)[0-9]+__").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).
			AddRow("cat1__nomenclature").
			AddRow("doc3__orders"))

	mock.ExpectQuery(regexp.QuoteMeta(columnsQuery)).
		WithArgs("public", "cat1__nomenclature").
		WillReturnRows(sqlmock.NewRows(columnHeader).
			AddRow("cat1__id", "bigint", "NO", "nextval('cat1__nomenclature_cat1__id_seq'::regclass)", nil).
			AddRow("cat1__uuid", "uuid", "NO", "gen_random_uuid()", nil).
			AddRow("cat1__code", "text", "YES", nil, "Код"))

	mock.ExpectQuery(regexp.QuoteMeta(columnsQuery)).
		WithArgs("public", "doc3__orders").
		WillReturnRows(sqlmock.NewRows(columnHeader).
			AddRow("doc3__id", "bigint", "NO", nil, nil))

	reg, err := Load(context.Background(), pg.NewGateway(db), LoadOptions{})
	require.NoError(t, err)
	assert.True(t, reg.Loaded())
	assert.Equal(t, []string{"nomenclature", "orders"}, reg.Keys())

	td, ok := reg.Lookup("nomenclature")
	require.True(t, ok)
	require.Len(t, td.Fields, 3)
	assert.Equal(t, "gen_random_uuid()", td.Fields[1].Default)
	assert.False(t, td.Fields[1].Nullable)
	assert.Equal(t, "Код", td.Fields[2].Comment)
	assert.True(t, td.Fields[2].Nullable)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoad_CustomFamiliesAndDuplicateKeys(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(tablesQuery)).
		WithArgs("erp", "^(cat)[0-9]+__").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).
			AddRow("cat1__items").
			AddRow("cat2__items"))
	mock.ExpectQuery(regexp.QuoteMeta(columnsQuery)).
		WithArgs("erp", "cat1__items").
		WillReturnRows(sqlmock.NewRows(columnHeader).AddRow("cat1__id", "bigint", "NO", nil, nil))
	mock.ExpectQuery(regexp.QuoteMeta(columnsQuery)).
		WithArgs("erp", "cat2__items").
		WillReturnRows(sqlmock.NewRows(columnHeader).AddRow("cat2__id", "bigint", "NO", nil, nil))

	reg, err := Load(context.Background(), pg.NewGateway(db), LoadOptions{Schema: "erp", Families: []string{"cat"}})
	require.NoError(t, err)
	require.Equal(t, 1, reg.Len())
	td, _ := reg.Lookup("items")
	assert.Equal(t, "cat1__items", td.RealTable)
}

func TestLoad_TablesQueryFails(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(tablesQuery)).WillReturnError(errors.New("connection refused"))

	reg, err := Load(context.Background(), pg.NewGateway(db), LoadOptions{})
	assert.Nil(t, reg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list tables")

	var qe *pg.QueryError
	assert.ErrorAs(t, err, &qe)
}

func TestLoad_ColumnsQueryFails(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(tablesQuery)).
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow("cat1__nomenclature"))
	mock.ExpectQuery(regexp.QuoteMeta(columnsQuery)).WillReturnError(errors.New("boom"))

	_, err = Load(context.Background(), pg.NewGateway(db), LoadOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "columns of cat1__nomenclature")
}
