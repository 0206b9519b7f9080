// Package sqlstore хранит записи журнала в реляционной таблице через database/sql.
//
// Поддерживаются SQLite (файл, драйвер github.com/mattn/go-sqlite3) и
// Microsoft SQL Server (драйвер github.com/denisenkom/go-mssqldb).
// Порядок добавления задаётся автоинкрементным столбцом id.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"sync"

	// blank import для драйвера SQL Server
	_ "github.com/denisenkom/go-mssqldb"
	// blank import для драйвера SQLite
	_ "github.com/mattn/go-sqlite3"

	"github.com/Kargones/profillog/internal/adapter/storage"
	"github.com/Kargones/profillog/internal/constants"
)

// BackendName — имя backend-а в логах и метриках.
const BackendName = "sql"

// Compile-time проверка реализации интерфейса
var _ storage.Adapter = (*Store)(nil)

// Options содержит параметры подключения к хранилищу.
type Options struct {
	// Driver — "sqlite3" (по умолчанию) или "sqlserver".
	Driver string
	// DSN — путь к файлу для SQLite или строка подключения для SQL Server.
	DSN string
	// Table — имя таблицы; по умолчанию "logEntry".
	Table string
}

// Store — хранилище в SQL-таблице. Безопасен для конкурентного использования,
// в том числе Close параллельно с Append и List.
type Store struct {
	mu      sync.RWMutex
	db      *sql.DB
	driver  string
	dialect dialect
}

// New открывает соединение, проверяет его и создаёт таблицу, если её нет.
// Для SQLite отсутствующие родительские директории файла создаются.
func New(ctx context.Context, opts Options) (*Store, error) {
	if opts.Driver == "" {
		opts.Driver = DriverSQLite
	}
	if opts.DSN == "" {
		return nil, storage.OpenError(BackendName, errors.New("DSN не задан"))
	}
	if opts.Driver == DriverSQLite {
		if dir := filepath.Dir(opts.DSN); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, constants.DirPermStandard); err != nil {
				return nil, storage.OpenError(BackendName, err)
			}
		}
	}
	// Проверяем драйвер и имя таблицы до открытия соединения.
	if _, err := newDialect(opts.Driver, tableOrDefault(opts.Table)); err != nil {
		return nil, storage.OpenError(BackendName, err)
	}

	db, err := sql.Open(opts.Driver, opts.DSN)
	if err != nil {
		return nil, storage.OpenError(BackendName, err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close() // best-effort close; ошибка ping важнее
		return nil, storage.OpenError(BackendName, err)
	}

	s, err := NewWithDB(ctx, db, opts.Driver, opts.Table)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// NewWithDB создаёт Store поверх уже открытого db и создаёт таблицу.
// Используется в тестах с go-sqlmock и при внешнем управлении пулом соединений.
// Владение db переходит к Store: Close закрывает его.
func NewWithDB(ctx context.Context, db *sql.DB, driver, table string) (*Store, error) {
	d, err := newDialect(driver, tableOrDefault(table))
	if err != nil {
		return nil, storage.OpenError(BackendName, err)
	}
	if _, err := db.ExecContext(ctx, d.createTable); err != nil {
		return nil, storage.OpenError(BackendName, err)
	}
	return &Store{db: db, driver: driver, dialect: d}, nil
}

func tableOrDefault(table string) string {
	if table == "" {
		return DefaultTable
	}
	return table
}

// Name возвращает имя backend-а.
func (s *Store) Name() string { return BackendName }

// Driver возвращает имя драйвера database/sql.
func (s *Store) Driver() string { return s.driver }

// Append вставляет одну строку.
func (s *Store) Append(ctx context.Context, rec storage.Record) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return storage.AppendError(BackendName, errors.New("соединение закрыто"))
	}
	if _, err := s.db.ExecContext(ctx, s.dialect.insert, rec.Date, rec.Level, rec.Message); err != nil {
		return storage.AppendError(BackendName, err)
	}
	return nil
}

// List возвращает все строки в порядке id.
func (s *Store) List(ctx context.Context) ([]storage.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return nil, storage.ListError(BackendName, errors.New("соединение закрыто"))
	}
	rows, err := s.db.QueryContext(ctx, s.dialect.selectAll)
	if err != nil {
		return nil, storage.ListError(BackendName, err)
	}
	defer rows.Close()

	records := make([]storage.Record, 0)
	for rows.Next() {
		var rec storage.Record
		if err := rows.Scan(&rec.Date, &rec.Level, &rec.Message); err != nil {
			return nil, storage.ListError(BackendName, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, storage.ListError(BackendName, err)
	}
	return records, nil
}

// Close закрывает соединение с базой. Ждёт завершения начатых Append и List;
// последующие вызовы получают ошибку "соединение закрыто".
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}
