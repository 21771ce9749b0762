package access

import (
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"svbase/internal/meta"
)

// DefaultPageLimit: лимит страницы, если вызывающий его не передал.
const DefaultPageLimit = 50

// Statement: готовый SQL с позиционными параметрами.
type Statement struct {
	SQL  string
	Args []any
}

type Assignment struct {
	Field  string
	Column string
	Value  any
}

// BuildWriteSet (первая стадия записи) решает, какие колонки пишем.
// Порядок: порядок полей дескриптора; id/uuid исключаются всегда;
// поле попадает в набор, если ключ присутствует в data (nil тоже пишется).
func BuildWriteSet(t *meta.TableDescriptor, data map[string]any) []Assignment {
	set := make([]Assignment, 0, len(data))
	for _, f := range t.Fields {
		if meta.IsReserved(f.Name) {
			continue
		}
		v, ok := data[f.Name]
		if !ok {
			continue
		}
		set = append(set, Assignment{Field: f.Name, Column: f.Column, Value: v})
	}
	return set
}

func ident(name string) string {
	return pgx.Identifier{name}.Sanitize()
}

func selectList(t *meta.TableDescriptor) string {
	parts := make([]string, 0, len(t.Fields))
	for _, f := range t.Fields {
		parts = append(parts, ident(f.Column)+" AS "+ident(f.Name))
	}
	return strings.Join(parts, ", ")
}

// orderClause: по алиасу "id" (внутренний числовой идентификатор), новые сверху.
// Если id в таблице нет: по первой колонке списка.
func orderClause(t *meta.TableDescriptor) string {
	if t.HasField(meta.FieldID) {
		return ident(meta.FieldID) + " DESC"
	}
	return "1 DESC"
}

func RenderSelect(t *meta.TableDescriptor, uuid string) Statement {
	return Statement{
		SQL: fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1",
			selectList(t), ident(t.RealTable), ident(t.IdentityColumn())),
		Args: []any{uuid},
	}
}

func insertStatement(t *meta.TableDescriptor, set []Assignment, returning string) Statement {
	cols := make([]string, 0, len(set))
	marks := make([]string, 0, len(set))
	args := make([]any, 0, len(set))
	for i, a := range set {
		cols = append(cols, ident(a.Column))
		marks = append(marks, fmt.Sprintf("$%d", i+1))
		args = append(args, a.Value)
	}
	return Statement{
		SQL: fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
			ident(t.RealTable), strings.Join(cols, ", "), strings.Join(marks, ", "), returning),
		Args: args,
	}
}

// RenderInsert возвращает только uuid новой строки; запись перечитывается отдельно.
func RenderInsert(t *meta.TableDescriptor, set []Assignment) Statement {
	return insertStatement(t, set, ident(t.IdentityColumn())+" AS "+ident(meta.FieldUUID))
}

// RenderInsertReturning возвращает всю строку за один round trip.
func RenderInsertReturning(t *meta.TableDescriptor, set []Assignment) Statement {
	return insertStatement(t, set, selectList(t))
}

func updateStatement(t *meta.TableDescriptor, uuid string, set []Assignment, returning string) Statement {
	sets := make([]string, 0, len(set))
	args := make([]any, 0, len(set)+1)
	for i, a := range set {
		sets = append(sets, fmt.Sprintf("%s = $%d", ident(a.Column), i+1))
		args = append(args, a.Value)
	}
	args = append(args, uuid)
	sql := fmt.Sprintf("UPDATE %s SET %s WHERE %s = $%d",
		ident(t.RealTable), strings.Join(sets, ", "), ident(t.IdentityColumn()), len(args))
	if returning != "" {
		sql += " RETURNING " + returning
	}
	return Statement{SQL: sql, Args: args}
}

func RenderUpdate(t *meta.TableDescriptor, uuid string, set []Assignment) Statement {
	return updateStatement(t, uuid, set, "")
}

func RenderUpdateReturning(t *meta.TableDescriptor, uuid string, set []Assignment) Statement {
	return updateStatement(t, uuid, set, selectList(t))
}

func RenderDelete(t *meta.TableDescriptor, uuid string) Statement {
	return Statement{
		SQL:  fmt.Sprintf("DELETE FROM %s WHERE %s = $1", ident(t.RealTable), ident(t.IdentityColumn())),
		Args: []any{uuid},
	}
}

func RenderList(t *meta.TableDescriptor) Statement {
	return Statement{
		SQL: fmt.Sprintf("SELECT %s FROM %s ORDER BY %s", selectList(t), ident(t.RealTable), orderClause(t)),
	}
}

func RenderPage(t *meta.TableDescriptor, limit, offset int) Statement {
	return Statement{
		SQL: fmt.Sprintf("SELECT %s FROM %s ORDER BY %s LIMIT $1 OFFSET $2",
			selectList(t), ident(t.RealTable), orderClause(t)),
		Args: []any{limit, offset},
	}
}
