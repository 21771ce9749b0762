package access

import (
	"context"

	"svbase/internal/meta"
)

// Lists читает таблицу целиком или страницей, без фильтров.
type Lists struct {
	reg *meta.Registry
	gw  Gateway
}

func NewLists(reg *meta.Registry, gw Gateway) *Lists {
	return &Lists{reg: reg, gw: gw}
}

// SelectAll читает все строки. Ограничений на количество нет.
func (l *Lists) SelectAll(ctx context.Context, key string) ([]Record, error) {
	t, err := resolve(l.reg, key)
	if err != nil {
		return nil, err
	}
	st := RenderList(t)
	rows, err := l.gw.Query(ctx, st.SQL, st.Args...)
	if err != nil {
		return nil, err
	}
	return toRecords(rows), nil
}

// Page: параметры страницы. Limit 0 означает DefaultPageLimit; верхней границы нет.
type Page struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

type PageResult struct {
	Records    []Record
	Pagination Pagination
}

func (l *Lists) SelectPage(ctx context.Context, key string, p Page) (PageResult, error) {
	t, err := resolve(l.reg, key)
	if err != nil {
		return PageResult{}, err
	}
	if p.Limit == 0 {
		p.Limit = DefaultPageLimit
	}
	st := RenderPage(t, p.Limit, p.Offset)
	rows, err := l.gw.Query(ctx, st.SQL, st.Args...)
	if err != nil {
		return PageResult{}, err
	}
	recs := toRecords(rows)
	return PageResult{
		Records: recs,
		Pagination: Pagination{
			Limit:  p.Limit,
			Offset: p.Offset,
			// count: сколько строк вернулось, не общее число
			Count: len(recs),
		},
	}, nil
}
