package config

import (
	"errors"
	"io/fs"
	"log"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"svbase/internal/meta"
)

type Config struct {
	Port   string `yaml:"port"`
	DBURL  string `yaml:"dbUrl"`
	Schema string `yaml:"schema"`

	// Семейства таблиц, которые попадают в реестр: cat, doc, sys, svb.
	Families  []string `yaml:"families"`
	LabelsDir string   `yaml:"labelsDir"`

	// Insert/Update одним запросом с RETURNING вместо записи + перечитывания.
	ReturningWrites bool `yaml:"returningWrites"`

	MaxOpenConns    int           `yaml:"maxOpenConns"`
	MaxIdleConns    int           `yaml:"maxIdleConns"`
	ConnMaxLifetime time.Duration `yaml:"connMaxLifetime"`
}

func def() Config {
	return Config{
		Port:      "3000",
		Schema:    "public",
		Families:  append([]string(nil), meta.DefaultFamilies...),
		LabelsDir: "reference/labels",

		MaxOpenConns:    10,
		MaxIdleConns:    5,
		ConnMaxLifetime: 30 * time.Minute,
	}
}

func loadYAML(path string, c *Config) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(b, c)
}

func getenv(k, fallback string) string {
	if v, ok := os.LookupEnv(k); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}

func getenvBool(k string, fallback bool) bool {
	if v, ok := os.LookupEnv(k); ok {
		v = strings.TrimSpace(strings.ToLower(v))
		if v == "1" || v == "true" || v == "yes" {
			return true
		}
		if v == "0" || v == "false" || v == "no" {
			return false
		}
	}
	return fallback
}

func getenvInt(k string, fallback int) int {
	if v, ok := os.LookupEnv(k); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return fallback
}

// SplitList: "cat, doc,,sys" -> [cat doc sys]
func SplitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Load: дефолты -> YAML (если файл есть) -> .env -> ENV. Флаги применяет cli.
func Load(yamlPath, envFile string) (Config, error) {
	cfg := def()

	if yamlPath != "" {
		if err := loadYAML(yamlPath, &cfg); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return cfg, err
		}
	}

	// .env не перетирает уже выставленные переменные
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			log.Printf("Файл %s не найден, продолжаем без него", envFile)
		}
	}

	cfg.Port = getenv("BACKEND_PORT", cfg.Port)
	cfg.Port = getenv("PORT", cfg.Port)
	cfg.Port = getenv("SVBASE_PORT", cfg.Port)

	cfg.DBURL = getenv("DATABASE_URL", cfg.DBURL)
	cfg.DBURL = getenv("SVBASE_DB_URL", cfg.DBURL)
	if cfg.DBURL == "" {
		cfg.DBURL = urlFromPGEnv()
	}

	cfg.Schema = getenv("SVBASE_SCHEMA", cfg.Schema)
	if fams := SplitList(getenv("SVBASE_FAMILIES", "")); len(fams) > 0 {
		cfg.Families = fams
	}
	cfg.LabelsDir = getenv("SVBASE_LABELS_DIR", cfg.LabelsDir)
	cfg.ReturningWrites = getenvBool("SVBASE_RETURNING_WRITES", cfg.ReturningWrites)
	cfg.MaxOpenConns = getenvInt("SVBASE_MAX_OPEN_CONNS", cfg.MaxOpenConns)
	cfg.MaxIdleConns = getenvInt("SVBASE_MAX_IDLE_CONNS", cfg.MaxIdleConns)

	return cfg, nil
}

// urlFromPGEnv собирает URL из переменных libpq (PGHOST, PGUSER, ...).
// Пусто, если не задан ни PGHOST, ни PGDATABASE.
func urlFromPGEnv() string {
	host := getenv("PGHOST", "")
	dbName := getenv("PGDATABASE", "")
	if host == "" && dbName == "" {
		return ""
	}
	if host == "" {
		host = "localhost"
	}
	u := url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(host, getenv("PGPORT", "5432")),
		Path:   "/" + dbName,
	}
	if user := getenv("PGUSER", ""); user != "" {
		if pass, ok := os.LookupEnv("PGPASSWORD"); ok {
			u.User = url.UserPassword(user, pass)
		} else {
			u.User = url.User(user)
		}
	}
	return u.String()
}
