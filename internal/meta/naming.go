package meta

import (
	"regexp"
	"strings"
)

// Delimiter отделяет префикс от «чистого» имени и в таблицах, и в колонках.
const Delimiter = "__"

// DefaultFamilies: семейства таблиц (cat, doc, sys, svb).
var DefaultFamilies = []string{"cat", "doc", "sys", "svb"}

// SplitTableName делит реальное имя таблицы по первому "__":
// "cat1__nomenclature" -> ("cat1", "nomenclature").
func SplitTableName(realTable string) (prefix, key string, ok bool) {
	i := strings.Index(realTable, Delimiter)
	if i <= 0 {
		return "", "", false
	}
	prefix, key = realTable[:i], realTable[i+len(Delimiter):]
	if key == "" {
		return "", "", false
	}
	return prefix, key, true
}

// CleanFieldName отрезает всё до первого "__" включительно.
// "cat1__code" -> "code", "cat1_cat1__folder" -> "folder", "a__b__c" -> "b__c".
// Колонка без разделителя возвращается как есть.
func CleanFieldName(column string) string {
	i := strings.Index(column, Delimiter)
	if i < 0 {
		return column
	}
	return column[i+len(Delimiter):]
}

// ColumnName: обратное преобразование для колонок самой таблицы.
func ColumnName(tablePrefix, clean string) string {
	return tablePrefix + Delimiter + clean
}

// FamilyPattern собирает регулярку для information_schema: ^(cat|doc)[0-9]+__
// Пустой (после обрезки пробелов) список заменяется на DefaultFamilies.
func FamilyPattern(families []string) string {
	quoted := quoteFamilies(families)
	if len(quoted) == 0 {
		quoted = quoteFamilies(DefaultFamilies)
	}
	return "^(" + strings.Join(quoted, "|") + ")[0-9]+" + Delimiter
}

func quoteFamilies(families []string) []string {
	quoted := make([]string, 0, len(families))
	for _, f := range families {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		quoted = append(quoted, regexp.QuoteMeta(f))
	}
	return quoted
}
