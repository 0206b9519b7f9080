// Package textstore хранит записи журнала построчно в текстовом файле:
//
//	2021/03/01 10:00:00|WARNING|Attention, something doesn't look good
//
// Сообщением считается всё после второго разделителя, поэтому может содержать '|'.
// Переводы строк и '\' в сообщении экранируются: \n, \r, \\.
package textstore

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Kargones/profillog/internal/adapter/storage"
	"github.com/Kargones/profillog/internal/constants"
)

// BackendName — имя backend-а в логах и метриках.
const BackendName = "text"

// Separator разделяет поля строки.
const Separator = "|"

var (
	escaper   = strings.NewReplacer(`\`, `\\`, "\n", `\n`, "\r", `\r`)
	unescaper = strings.NewReplacer(`\\`, `\`, `\n`, "\n", `\r`, "\r")
)

// Compile-time проверка реализации интерфейса
var _ storage.Adapter = (*Store)(nil)

// Store — построчное текстовое хранилище.
type Store struct {
	mu   sync.Mutex
	path string
}

// New открывает текстовое хранилище по path; отсутствующий файл создаётся пустым.
func New(path string) (*Store, error) {
	if path == "" {
		return nil, storage.OpenError(BackendName, errors.New("путь к файлу не задан"))
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, constants.DirPermStandard); err != nil {
			return nil, storage.OpenError(BackendName, err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, constants.FilePermStore)
	if err != nil {
		return nil, storage.OpenError(BackendName, err)
	}
	if err := f.Close(); err != nil {
		return nil, storage.OpenError(BackendName, err)
	}
	return &Store{path: path}, nil
}

// Name возвращает имя backend-а.
func (s *Store) Name() string { return BackendName }

// Path возвращает путь к файлу хранилища.
func (s *Store) Path() string { return s.path }

// Append дописывает строку date|level|message с экранированным сообщением.
func (s *Store) Append(_ context.Context, rec storage.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_WRONLY, 0)
	if err != nil {
		return storage.AppendError(BackendName, err)
	}
	line := strings.Join([]string{rec.Date, rec.Level, escaper.Replace(rec.Message)}, Separator) + "\n"
	if _, err := f.WriteString(line); err != nil {
		_ = f.Close()
		return storage.AppendError(BackendName, err)
	}
	if err := f.Close(); err != nil {
		return storage.AppendError(BackendName, err)
	}
	return nil
}

// List разбирает все непустые строки файла. Длина строки не ограничена.
func (s *Store) List(_ context.Context) ([]storage.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.path)
	if err != nil {
		return nil, storage.ListError(BackendName, err)
	}
	defer f.Close()

	records := make([]storage.Record, 0)
	r := bufio.NewReader(f)
	for lineNo := 1; ; lineNo++ {
		line, err := r.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, storage.ListError(BackendName, err)
		}
		// Файлы, сохранённые с окончаниями CRLF, читаются так же.
		line = strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")
		if line != "" {
			rec, perr := parseLine(line)
			if perr != nil {
				return nil, storage.ListError(BackendName, fmt.Errorf("строка %d: %w", lineNo, perr))
			}
			records = append(records, rec)
		}
		if err != nil {
			return records, nil
		}
	}
}

func parseLine(line string) (storage.Record, error) {
	parts := strings.SplitN(line, Separator, 3)
	if len(parts) != 3 {
		return storage.Record{}, fmt.Errorf("ожидалось 3 поля через %q", Separator)
	}
	return storage.Record{Date: parts[0], Level: parts[1], Message: unescaper.Replace(parts[2])}, nil
}
