package meta

import (
	"errors"
	"sort"
)

var ErrUnknownTable = errors.New("unknown table")

// Registry: неизменяемый снимок метаданных. Строится один раз при старте,
// дальше только читается, поэтому блокировки не нужны.
type Registry struct {
	tables map[string]*TableDescriptor
	keys   []string
	loaded bool
}

// Empty возвращает реестр без таблиц. Используется, если загрузка схемы упала.
func Empty() *Registry {
	return &Registry{tables: map[string]*TableDescriptor{}}
}

// New собирает готовый реестр из дескрипторов. Дубликаты ключей: первый побеждает.
// Индекс полей пересобирается, так что годятся и дескрипторы-литералы.
func New(tables ...*TableDescriptor) *Registry {
	r := &Registry{
		tables: make(map[string]*TableDescriptor, len(tables)),
		loaded: true,
	}
	for _, t := range tables {
		if t == nil {
			continue
		}
		if _, dup := r.tables[t.Key]; dup {
			continue
		}
		t.reindex()
		r.tables[t.Key] = t
		r.keys = append(r.keys, t.Key)
	}
	sort.Strings(r.keys)
	return r
}

func (r *Registry) Lookup(key string) (*TableDescriptor, bool) {
	if r == nil {
		return nil, false
	}
	t, ok := r.tables[key]
	return t, ok
}

// Loaded: признак готовности, false у Empty() и у nil.
func (r *Registry) Loaded() bool { return r != nil && r.loaded }

func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.tables)
}

func (r *Registry) Keys() []string {
	if r == nil {
		return nil
	}
	out := make([]string, 0, len(r.keys))
	return append(out, r.keys...)
}

type PublicField struct {
	Name  string `json:"name"`
	Title string `json:"title"`
}

// PublicFields отдаёт поля таблицы для построения форм.
func (r *Registry) PublicFields(key string) ([]PublicField, error) {
	t, ok := r.Lookup(key)
	if !ok {
		return nil, ErrUnknownTable
	}
	out := make([]PublicField, 0, len(t.Fields))
	for _, f := range t.Fields {
		out = append(out, PublicField{Name: f.Name, Title: f.Title()})
	}
	return out, nil
}
