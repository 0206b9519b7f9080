// Package csvstore хранит записи журнала в CSV-файле с заголовком date,level,message.
package csvstore

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/Kargones/profillog/internal/adapter/storage"
	"github.com/Kargones/profillog/internal/constants"
)

// BackendName — имя backend-а в логах и метриках.
const BackendName = "csv"

var header = []string{"date", "level", "message"}

// Compile-time проверка реализации интерфейса
var _ storage.Adapter = (*Store)(nil)

// Store — CSV-хранилище. Файл открывается заново на каждую операцию,
// поэтому Store не держит дескриптор и не требует Close.
type Store struct {
	mu   sync.Mutex
	path string
}

// New открывает CSV-хранилище по path. Отсутствующий файл создаётся
// вместе с родительскими директориями, в него пишется строка заголовка.
// Существующий файл дополняется.
func New(path string) (*Store, error) {
	if path == "" {
		return nil, storage.OpenError(BackendName, errors.New("путь к файлу не задан"))
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := create(path); err != nil {
			return nil, storage.OpenError(BackendName, err)
		}
	} else if err != nil {
		return nil, storage.OpenError(BackendName, err)
	}
	return &Store{path: path}, nil
}

func create(path string) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, constants.DirPermStandard); err != nil {
			return err
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, constants.FilePermStore)
	if err != nil {
		return err
	}
	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		_ = f.Close()
		return err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// Name возвращает имя backend-а.
func (s *Store) Name() string { return BackendName }

// Path возвращает путь к файлу хранилища.
func (s *Store) Path() string { return s.path }

// Append дописывает одну строку в конец файла.
// В колонке message экранируются `\` и \r (см. escapeMessage).
func (s *Store) Append(_ context.Context, rec storage.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_WRONLY, 0)
	if err != nil {
		return storage.AppendError(BackendName, err)
	}
	w := csv.NewWriter(f)
	if err := w.Write([]string{rec.Date, rec.Level, escapeMessage(rec.Message)}); err != nil {
		_ = f.Close()
		return storage.AppendError(BackendName, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = f.Close()
		return storage.AppendError(BackendName, err)
	}
	if err := f.Close(); err != nil {
		return storage.AppendError(BackendName, err)
	}
	return nil
}

// List читает все строки после заголовка. Колонки сопоставляются по имени
// из заголовка, поэтому порядок колонок в файле не важен.
func (s *Store) List(_ context.Context) ([]storage.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.path)
	if err != nil {
		return nil, storage.ListError(BackendName, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	head, err := r.Read()
	if errors.Is(err, io.EOF) {
		return []storage.Record{}, nil
	}
	if err != nil {
		return nil, storage.ListError(BackendName, err)
	}
	idx, err := columnIndex(head)
	if err != nil {
		return nil, storage.ListError(BackendName, err)
	}

	records := make([]storage.Record, 0)
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, storage.ListError(BackendName, err)
		}
		records = append(records, storage.Record{
			Date:    row[idx["date"]],
			Level:   row[idx["level"]],
			Message: unescapeMessage(row[idx["message"]]),
		})
	}
	return records, nil
}

func columnIndex(head []string) (map[string]int, error) {
	idx := make(map[string]int, len(head))
	for i, name := range head {
		idx[name] = i
	}
	for _, name := range header {
		if _, ok := idx[name]; !ok {
			return nil, fmt.Errorf("в заголовке нет колонки %q", name)
		}
	}
	return idx, nil
}
