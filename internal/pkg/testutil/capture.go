// Package testutil содержит общие утилиты для тестирования.
package testutil

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

// CaptureStdout подменяет os.Stdout на время fn и возвращает всё, что было в него записано.
// Pipe вычитывается параллельно, поэтому объём вывода не ограничен буфером pipe.
func CaptureStdout(t *testing.T, fn func()) string {
	t.Helper()
	return capture(t, &os.Stdout, fn)
}

func capture(t *testing.T, target **os.File, fn func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	require.NoError(t, err, "pipe для перехвата вывода")

	done := make(chan []byte, 1)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		_ = r.Close()
		done <- buf.Bytes()
	}()

	saved := *target
	*target = w
	func() {
		defer func() { *target = saved }()
		fn()
	}()

	require.NoError(t, w.Close())
	return string(<-done)
}
