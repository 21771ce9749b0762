package access

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"svbase/internal/meta"
)

// Records: select/insert/update/delete одной записи по uuid.
//
// Insert и Update по умолчанию: два round trip'а (запись, затем перечитывание),
// без транзакции: если перечитывание упало, запись уже сделана и не откатывается.
// Между записью и чтением чужие изменения видны.
type Records struct {
	reg       *meta.Registry
	gw        Gateway
	returning bool
}

type Option func(*Records)

// WithReturning: Insert/Update одним запросом ... RETURNING <все колонки>.
func WithReturning() Option {
	return func(r *Records) { r.returning = true }
}

func NewRecords(reg *meta.Registry, gw Gateway, opts ...Option) *Records {
	r := &Records{reg: reg, gw: gw}
	for _, o := range opts {
		o(r)
	}
	return r
}

func (r *Records) Select(ctx context.Context, key, id string) (Record, error) {
	t, err := resolve(r.reg, key)
	if err != nil {
		return nil, err
	}
	st := RenderSelect(t, id)
	rows, err := r.gw.Query(ctx, st.SQL, st.Args...)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	// uuid уникален; если строк больше: берём первую
	return Record(rows[0]), nil
}

// InsertRow только пишет и возвращает uuid новой строки.
func (r *Records) InsertRow(ctx context.Context, key string, data map[string]any) (string, error) {
	t, err := resolve(r.reg, key)
	if err != nil {
		return "", err
	}
	set := BuildWriteSet(t, data)
	if len(set) == 0 {
		return "", ErrNoValidFields
	}
	st := RenderInsert(t, set)
	rows, err := r.gw.Query(ctx, st.SQL, st.Args...)
	if err != nil {
		return "", err
	}
	if len(rows) == 0 {
		return "", fmt.Errorf("insert into %s returned no identity", t.RealTable)
	}
	return identityString(rows[0][meta.FieldUUID]), nil
}

// Insert = InsertRow + Select.
func (r *Records) Insert(ctx context.Context, key string, data map[string]any) (Record, error) {
	if r.returning {
		return r.insertReturning(ctx, key, data)
	}
	id, err := r.InsertRow(ctx, key, data)
	if err != nil {
		return nil, err
	}
	return r.Select(ctx, key, id)
}

func (r *Records) insertReturning(ctx context.Context, key string, data map[string]any) (Record, error) {
	t, err := resolve(r.reg, key)
	if err != nil {
		return nil, err
	}
	set := BuildWriteSet(t, data)
	if len(set) == 0 {
		return nil, ErrNoValidFields
	}
	st := RenderInsertReturning(t, set)
	rows, err := r.gw.Query(ctx, st.SQL, st.Args...)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("insert into %s returned no row", t.RealTable)
	}
	return Record(rows[0]), nil
}

// UpdateRow только пишет и возвращает число затронутых строк.
// Существование записи не проверяет.
func (r *Records) UpdateRow(ctx context.Context, key, id string, data map[string]any) (int64, error) {
	t, err := resolve(r.reg, key)
	if err != nil {
		return 0, err
	}
	set := BuildWriteSet(t, data)
	if len(set) == 0 {
		return 0, errNoValidUpdateFields
	}
	st := RenderUpdate(t, id, set)
	return r.gw.Exec(ctx, st.SQL, st.Args...)
}

// Update: проверка существования, запись, перечитывание.
// Результат: то, что увидело перечитывание (в т.ч. NotFound при гонке с Delete).
func (r *Records) Update(ctx context.Context, key, id string, data map[string]any) (Record, error) {
	if _, err := r.Select(ctx, key, id); err != nil {
		return nil, err
	}
	t, err := resolve(r.reg, key)
	if err != nil {
		return nil, err
	}
	set := BuildWriteSet(t, data)
	if len(set) == 0 {
		return nil, errNoValidUpdateFields
	}

	if r.returning {
		st := RenderUpdateReturning(t, id, set)
		rows, err := r.gw.Query(ctx, st.SQL, st.Args...)
		if err != nil {
			return nil, err
		}
		if len(rows) == 0 {
			return nil, ErrNotFound
		}
		return Record(rows[0]), nil
	}

	st := RenderUpdate(t, id, set)
	if _, err := r.gw.Exec(ctx, st.SQL, st.Args...); err != nil {
		return nil, err
	}
	return r.Select(ctx, key, id)
}

// Delete: проверка существования, затем DELETE.
// 0 затронутых строк после успешной проверки значит, что запись удалил кто-то другой: NotFound.
func (r *Records) Delete(ctx context.Context, key, id string) (string, error) {
	if _, err := r.Select(ctx, key, id); err != nil {
		return "", err
	}
	t, err := resolve(r.reg, key)
	if err != nil {
		return "", err
	}
	st := RenderDelete(t, id)
	n, err := r.gw.Exec(ctx, st.SQL, st.Args...)
	if err != nil {
		return "", err
	}
	if n == 0 {
		return "", ErrNotFound
	}
	return id, nil
}

func identityString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []byte:
		if u, err := uuid.FromBytes(t); err == nil {
			return u.String()
		}
		return string(t)
	case [16]byte:
		return uuid.UUID(t).String()
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}
