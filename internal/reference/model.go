package reference

import "svbase/internal/meta"

// TitleSet: подписи полей одной таблицы для UI.
type TitleSet struct {
	Table  string            `yaml:"table"`
	Fields map[string]string `yaml:"fields"`
}

type Catalog map[string]TitleSet

// Apply подставляет подписи из каталога туда, где у колонки нет комментария
// (title совпадает с именем). Комментарий в базе главнее.
func (c Catalog) Apply(table string, fields []meta.PublicField) []meta.PublicField {
	set, ok := c[table]
	if !ok || len(set.Fields) == 0 {
		return fields
	}
	out := make([]meta.PublicField, len(fields))
	for i, f := range fields {
		if f.Title == f.Name {
			if title, ok := set.Fields[f.Name]; ok && title != "" {
				f.Title = title
			}
		}
		out[i] = f
	}
	return out
}
