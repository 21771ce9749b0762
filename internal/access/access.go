// Package access реализует универсальный доступ к таблицам реестра: одна запись по uuid
// (Records) и списки (Lists). SQL строится по метаданным, без кода под конкретную таблицу.
package access

import (
	"context"

	"svbase/internal/meta"
	"svbase/internal/pg"
)

type Gateway interface {
	Query(ctx context.Context, query string, args ...any) ([]pg.Row, error)
	Exec(ctx context.Context, query string, args ...any) (int64, error)
}

// Record: строка с ключами по чистым именам полей.
type Record map[string]any

func resolve(reg *meta.Registry, key string) (*meta.TableDescriptor, error) {
	t, ok := reg.Lookup(key)
	if !ok {
		return nil, ErrUnknownTable
	}
	if len(t.Fields) == 0 {
		return nil, ErrNoFields
	}
	return t, nil
}

func toRecords(rows []pg.Row) []Record {
	out := make([]Record, 0, len(rows))
	for _, r := range rows {
		out = append(out, Record(r))
	}
	return out
}
