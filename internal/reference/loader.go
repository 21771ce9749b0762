package reference

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar"
	"gopkg.in/yaml.v3"
)

const labelsGlob = "*.{yaml,yml}"

// LoadCatalog обходит dir вместе с подпапками и читает все *.yaml/*.yml.
// Нет папки: пустой каталог.
func LoadCatalog(dir string) (Catalog, error) {
	result := make(Catalog)
	if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		return result, nil
	}
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if ok, err := doublestar.Match(labelsGlob, d.Name()); err != nil || !ok {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		var set TitleSet
		if err := yaml.Unmarshal(data, &set); err != nil {
			return err
		}
		// ключ таблицы: из set.Table или из имени файла
		table := set.Table
		if table == "" {
			table = strings.TrimSuffix(d.Name(), filepath.Ext(d.Name()))
		}
		result[table] = set
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
