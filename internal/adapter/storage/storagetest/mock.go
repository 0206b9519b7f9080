// Package storagetest предоставляет тестовые реализации storage.Adapter:
// мок с функциональными полями и in-memory хранилище.
package storagetest

import (
	"context"
	"sync"

	"github.com/Kargones/profillog/internal/adapter/storage"
)

// Compile-time проверки реализации интерфейсов
var (
	_ storage.Adapter = (*MockAdapter)(nil)
	_ storage.Named   = (*MockAdapter)(nil)
	_ storage.Adapter = (*MemoryAdapter)(nil)
	_ storage.Named   = (*MemoryAdapter)(nil)
)

// MockAdapter — мок-реализация storage.Adapter.
// Использует функциональные поля для гибкой настройки поведения в тестах.
type MockAdapter struct {
	// AdapterName — имя, возвращаемое Name(). По умолчанию "mock".
	AdapterName string
	// AppendFunc — пользовательская реализация Append
	AppendFunc func(ctx context.Context, rec storage.Record) error
	// ListFunc — пользовательская реализация List
	ListFunc func(ctx context.Context) ([]storage.Record, error)

	mu          sync.Mutex
	appendCalls []storage.Record
	listCalls   int
}

// Name возвращает имя мока.
func (m *MockAdapter) Name() string {
	if m.AdapterName == "" {
		return "mock"
	}
	return m.AdapterName
}

// Append запоминает вызов и делегирует AppendFunc.
// При отсутствии пользовательской функции возвращает nil.
func (m *MockAdapter) Append(ctx context.Context, rec storage.Record) error {
	m.mu.Lock()
	m.appendCalls = append(m.appendCalls, rec)
	m.mu.Unlock()
	if m.AppendFunc != nil {
		return m.AppendFunc(ctx, rec)
	}
	return nil
}

// List запоминает вызов и делегирует ListFunc.
// При отсутствии пользовательской функции возвращает пустой список.
func (m *MockAdapter) List(ctx context.Context) ([]storage.Record, error) {
	m.mu.Lock()
	m.listCalls++
	m.mu.Unlock()
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return []storage.Record{}, nil
}

// AppendCalls возвращает копию всех записей, переданных в Append.
func (m *MockAdapter) AppendCalls() []storage.Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]storage.Record(nil), m.appendCalls...)
}

// ListCalls возвращает количество вызовов List.
func (m *MockAdapter) ListCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.listCalls
}

// MemoryAdapter — хранилище в памяти с семантикой настоящего backend-а.
type MemoryAdapter struct {
	mu      sync.Mutex
	records []storage.Record
}

// NewMemoryAdapter создаёт MemoryAdapter, предзаполненный records.
func NewMemoryAdapter(records ...storage.Record) *MemoryAdapter {
	return &MemoryAdapter{records: append([]storage.Record(nil), records...)}
}

// Name возвращает "memory".
func (m *MemoryAdapter) Name() string { return "memory" }

// Append дописывает запись.
func (m *MemoryAdapter) Append(_ context.Context, rec storage.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, rec)
	return nil
}

// List возвращает копию всех записей в порядке добавления.
func (m *MemoryAdapter) List(_ context.Context) ([]storage.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]storage.Record{}, m.records...), nil
}
