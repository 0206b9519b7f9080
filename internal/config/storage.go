package config

import (
	"fmt"
	"path/filepath"

	"github.com/Kargones/profillog/internal/adapter/sqlstore"
)

// Имена хранилищ для ReaderSource.
const (
	SourceCSV  = "csv"
	SourceJSON = "json"
	SourceSQL  = "sql"
	SourceText = "text"
)

// DefaultDataDir — каталог хранилищ по умолчанию.
const DefaultDataDir = "data"

// StorageConfig перечисляет хранилища, в которые Logger пишет каждую запись.
type StorageConfig struct {
	CSV  FileStoreConfig `yaml:"csv" env-prefix:"PL_CSV_"`
	JSON FileStoreConfig `yaml:"json" env-prefix:"PL_JSON_"`
	Text FileStoreConfig `yaml:"text" env-prefix:"PL_TEXT_"`
	SQL  SQLStoreConfig  `yaml:"sql"`
}

// FileStoreConfig — файловое хранилище.
type FileStoreConfig struct {
	Enabled bool   `yaml:"enabled" env:"ENABLED"`
	Path    string `yaml:"path" env:"PATH"`
}

// SQLStoreConfig — табличное хранилище.
type SQLStoreConfig struct {
	Enabled bool `yaml:"enabled" env:"PL_SQL_ENABLED"`
	// Driver — "sqlite3" или "sqlserver".
	Driver string `yaml:"driver" env:"PL_SQL_DRIVER"`
	// DSN — путь к файлу SQLite или строка подключения SQL Server.
	DSN   string `yaml:"dsn" env:"PL_SQL_DSN"`
	Table string `yaml:"table" env:"PL_SQL_TABLE"`
}

// ToOptions переводит секцию в параметры sqlstore.
func (c SQLStoreConfig) ToOptions() sqlstore.Options {
	return sqlstore.Options{Driver: c.Driver, DSN: c.DSN, Table: c.Table}
}

func defaultStorageConfig() StorageConfig {
	return StorageConfig{
		CSV:  FileStoreConfig{Enabled: true, Path: filepath.Join(DefaultDataDir, "logs.csv")},
		JSON: FileStoreConfig{Enabled: true, Path: filepath.Join(DefaultDataDir, "logs.json")},
		Text: FileStoreConfig{Enabled: true, Path: filepath.Join(DefaultDataDir, "logs.txt")},
		SQL: SQLStoreConfig{
			Enabled: true,
			Driver:  sqlstore.DriverSQLite,
			DSN:     filepath.Join(DefaultDataDir, "logs.sqlite"),
			Table:   sqlstore.DefaultTable,
		},
	}
}

// Enabled возвращает имена включённых хранилищ в порядке csv, json, sql, text.
func (s StorageConfig) Enabled() []string {
	var names []string
	if s.CSV.Enabled {
		names = append(names, SourceCSV)
	}
	if s.JSON.Enabled {
		names = append(names, SourceJSON)
	}
	if s.SQL.Enabled {
		names = append(names, SourceSQL)
	}
	if s.Text.Enabled {
		names = append(names, SourceText)
	}
	return names
}

func (s StorageConfig) validate(readerSource string) []error {
	var errs []error

	enabled := s.Enabled()
	if len(enabled) == 0 {
		errs = append(errs, fmt.Errorf("storage: не включено ни одного хранилища"))
	}
	for name, fs := range map[string]FileStoreConfig{SourceCSV: s.CSV, SourceJSON: s.JSON, SourceText: s.Text} {
		if fs.Enabled && fs.Path == "" {
			errs = append(errs, fmt.Errorf("storage.%s.path: не задан", name))
		}
	}
	if s.SQL.Enabled {
		switch s.SQL.Driver {
		case sqlstore.DriverSQLite, sqlstore.DriverSQLServer:
		default:
			errs = append(errs, fmt.Errorf("storage.sql.driver: неподдерживаемый драйвер %q", s.SQL.Driver))
		}
		if s.SQL.DSN == "" {
			errs = append(errs, fmt.Errorf("storage.sql.dsn: не задан"))
		}
	}

	found := false
	for _, name := range enabled {
		if name == readerSource {
			found = true
			break
		}
	}
	if !found {
		errs = append(errs, fmt.Errorf("readerSource: %q не является включённым хранилищем %v", readerSource, enabled))
	}
	return errs
}
