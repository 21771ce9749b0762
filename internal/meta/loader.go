package meta

import (
	"context"
	"fmt"
	"log"

	"svbase/internal/pg"
)

type Querier interface {
	Query(ctx context.Context, query string, args ...any) ([]pg.Row, error)
}

type LoadOptions struct {
	Schema   string
	Families []string
}

const tablesQuery = `SELECT table_name FROM information_schema.tables ` +
	`WHERE table_schema = $1 AND table_name ~ $2 ORDER BY table_name`

const columnsQuery = `SELECT c.column_name, c.data_type, c.is_nullable, c.column_default, ` +
	`pgd.description AS column_comment ` +
	`FROM information_schema.columns c ` +
	`LEFT JOIN pg_catalog.pg_statio_all_tables st ` +
	`ON c.table_schema = st.schemaname AND c.table_name = st.relname ` +
	`LEFT JOIN pg_catalog.pg_description pgd ` +
	`ON pgd.objoid = st.relid AND pgd.objsubid = c.ordinal_position ` +
	`WHERE c.table_schema = $1 AND c.table_name = $2 ` +
	`ORDER BY c.ordinal_position`

// Load сканирует схему и строит реестр. Ошибка любого запроса фатальна для реестра
// (но не для процесса: вызывающий решает, продолжать ли с Empty()).
func Load(ctx context.Context, q Querier, opts LoadOptions) (*Registry, error) {
	if opts.Schema == "" {
		opts.Schema = "public"
	}
	if len(opts.Families) == 0 {
		opts.Families = DefaultFamilies
	}

	tableRows, err := q.Query(ctx, tablesQuery, opts.Schema, FamilyPattern(opts.Families))
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}

	tables := make([]*TableDescriptor, 0, len(tableRows))
	seen := make(map[string]string, len(tableRows))
	for _, tr := range tableRows {
		realTable := str(tr["table_name"])
		colRows, err := q.Query(ctx, columnsQuery, opts.Schema, realTable)
		if err != nil {
			return nil, fmt.Errorf("columns of %s: %w", realTable, err)
		}
		columns := make([]Column, 0, len(colRows))
		for _, cr := range colRows {
			columns = append(columns, Column{
				Name:     str(cr["column_name"]),
				Type:     str(cr["data_type"]),
				Nullable: str(cr["is_nullable"]) == "YES",
				Default:  str(cr["column_default"]),
				Comment:  str(cr["column_comment"]),
			})
		}
		t, ok := NewTable(realTable, columns...)
		if !ok {
			log.Printf("meta: table %q does not follow <prefix>__<name>, skipped", realTable)
			continue
		}
		if other, dup := seen[t.Key]; dup {
			log.Printf("meta: table %q maps to key %q already taken by %q, skipped", realTable, t.Key, other)
			continue
		}
		seen[t.Key] = realTable
		tables = append(tables, t)
	}
	return New(tables...), nil
}

func str(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	default:
		return fmt.Sprintf("%v", v)
	}
}
