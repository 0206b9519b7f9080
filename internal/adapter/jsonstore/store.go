// Package jsonstore хранит записи журнала в JSON-документе: массиве объектов
// {"date","level","message"}. Каждое добавление перечитывает и переписывает весь массив.
package jsonstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"unicode/utf8"

	"github.com/Kargones/profillog/internal/adapter/storage"
	"github.com/Kargones/profillog/internal/constants"
)

// BackendName — имя backend-а в логах и метриках.
const BackendName = "json"

// indent — отступ при записи документа, совпадает с форматом исходных файлов журнала.
const indent = "    "

// Compile-time проверка реализации интерфейса
var _ storage.Adapter = (*Store)(nil)

// Store — JSON-хранилище.
type Store struct {
	mu   sync.Mutex
	path string
}

// New открывает JSON-хранилище по path. Отсутствующий файл создаётся с пустым массивом.
func New(path string) (*Store, error) {
	if path == "" {
		return nil, storage.OpenError(BackendName, errors.New("путь к файлу не задан"))
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if dir := filepath.Dir(path); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, constants.DirPermStandard); err != nil {
				return nil, storage.OpenError(BackendName, err)
			}
		}
		if err := os.WriteFile(path, []byte("[]"), constants.FilePermStore); err != nil {
			return nil, storage.OpenError(BackendName, err)
		}
	} else if err != nil {
		return nil, storage.OpenError(BackendName, err)
	}
	return &Store{path: path}, nil
}

// Name возвращает имя backend-а.
func (s *Store) Name() string { return BackendName }

// Path возвращает путь к файлу хранилища.
func (s *Store) Path() string { return s.path }

// Append добавляет запись в конец массива и переписывает файл целиком.
// Сообщение с некорректной UTF-8 отклоняется: encoding/json заменил бы такие байты на U+FFFD.
func (s *Store) Append(_ context.Context, rec storage.Record) error {
	if !utf8.ValidString(rec.Message) {
		return storage.AppendError(BackendName, errors.New("сообщение не является корректной строкой UTF-8"))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.read()
	if err != nil {
		return storage.AppendError(BackendName, err)
	}
	records = append(records, rec)

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", indent)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(records); err != nil {
		return storage.AppendError(BackendName, err)
	}
	if err := os.WriteFile(s.path, buf.Bytes(), constants.FilePermStore); err != nil {
		return storage.AppendError(BackendName, err)
	}
	return nil
}

// List возвращает все записи массива.
func (s *Store) List(_ context.Context) ([]storage.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.read()
	if err != nil {
		return nil, storage.ListError(BackendName, err)
	}
	return records, nil
}

func (s *Store) read() ([]storage.Record, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, err
	}
	records := make([]storage.Record, 0)
	if len(bytes.TrimSpace(data)) == 0 {
		return records, nil
	}
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	return records, nil
}
