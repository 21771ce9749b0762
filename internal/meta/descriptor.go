package meta

import "log"

// Зарезервированные поля: генерируются базой и не меняются после вставки.
const (
	FieldID   = "id"
	FieldUUID = "uuid"
)

// Column: строка из information_schema.columns.
type Column struct {
	Name     string
	Type     string
	Nullable bool
	Default  string
	Comment  string
}

type FieldDescriptor struct {
	Name     string `json:"name"`
	Column   string `json:"column"`
	Type     string `json:"type"`
	Nullable bool   `json:"nullable"`
	Default  string `json:"default,omitempty"`
	Comment  string `json:"comment,omitempty"`
}

// Title возвращает подпись для UI: комментарий колонки, иначе чистое имя.
func (f FieldDescriptor) Title() string {
	if f.Comment != "" {
		return f.Comment
	}
	return f.Name
}

func IsReserved(name string) bool {
	return name == FieldID || name == FieldUUID
}

type TableDescriptor struct {
	Key       string            `json:"key"`
	RealTable string            `json:"realTable"`
	Prefix    string            `json:"prefix"`
	Fields    []FieldDescriptor `json:"fields"`

	index map[string]int
}

// NewTable строит дескриптор по реальному имени таблицы и её колонкам
// (в порядке ordinal_position). При совпадении чистых имён побеждает первая колонка.
func NewTable(realTable string, columns ...Column) (*TableDescriptor, bool) {
	prefix, key, ok := SplitTableName(realTable)
	if !ok {
		return nil, false
	}
	t := &TableDescriptor{
		Key:       key,
		RealTable: realTable,
		Prefix:    prefix,
		Fields:    make([]FieldDescriptor, 0, len(columns)),
		index:     make(map[string]int, len(columns)),
	}
	for _, c := range columns {
		name := CleanFieldName(c.Name)
		if name == "" {
			log.Printf("meta: %s: column %q has empty clean name, skipped", realTable, c.Name)
			continue
		}
		if prev, dup := t.index[name]; dup {
			log.Printf("meta: %s: column %q collides with %q on field %q, skipped",
				realTable, c.Name, t.Fields[prev].Column, name)
			continue
		}
		t.index[name] = len(t.Fields)
		t.Fields = append(t.Fields, FieldDescriptor{
			Name:     name,
			Column:   c.Name,
			Type:     c.Type,
			Nullable: c.Nullable,
			Default:  c.Default,
			Comment:  c.Comment,
		})
	}
	return t, true
}

// reindex строит индекс по Fields (для дескрипторов, собранных литералом).
// При повторе имени побеждает первое поле.
func (t *TableDescriptor) reindex() {
	t.index = make(map[string]int, len(t.Fields))
	for i, f := range t.Fields {
		if _, dup := t.index[f.Name]; !dup {
			t.index[f.Name] = i
		}
	}
}

func (t *TableDescriptor) position(name string) (int, bool) {
	if t.index != nil {
		i, ok := t.index[name]
		return i, ok
	}
	for i, f := range t.Fields {
		if f.Name == name {
			return i, true
		}
	}
	return 0, false
}

func (t *TableDescriptor) Field(name string) (FieldDescriptor, bool) {
	i, ok := t.position(name)
	if !ok {
		return FieldDescriptor{}, false
	}
	return t.Fields[i], true
}

func (t *TableDescriptor) HasField(name string) bool {
	_, ok := t.position(name)
	return ok
}

// IdentityColumn: колонка внешнего ключа записи (<prefix>__uuid).
func (t *TableDescriptor) IdentityColumn() string {
	if f, ok := t.Field(FieldUUID); ok {
		return f.Column
	}
	return ColumnName(t.Prefix, FieldUUID)
}
