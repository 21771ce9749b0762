package access

import (
	"testing"

	"github.com/stretchr/testify/require"

	"svbase/internal/meta"
)

const (
	nomList   = `"cat1__id" AS "id", "cat1__uuid" AS "uuid", "cat1__code" AS "code", "cat1__represent" AS "represent"`
	nomSelect = `SELECT ` + nomList + ` FROM "cat1__nomenclature" WHERE "cat1__uuid" = $1`
)

var nomColumns = []string{"id", "uuid", "code", "represent"}

func nomenclatureTable(t *testing.T) *meta.TableDescriptor {
	t.Helper()
	td, ok := meta.NewTable("cat1__nomenclature",
		meta.Column{Name: "cat1__id", Type: "bigint"},
		meta.Column{Name: "cat1__uuid", Type: "uuid"},
		meta.Column{Name: "cat1__code", Type: "text"},
		meta.Column{Name: "cat1__represent", Type: "text"},
	)
	require.True(t, ok)
	return td
}

func testRegistry(t *testing.T) *meta.Registry {
	t.Helper()
	bare, ok := meta.NewTable("sys1__empty")
	require.True(t, ok)
	return meta.New(nomenclatureTable(t), bare)
}
