package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]LogLevel{
		"trace":   TRACE,
		"DEBUG":   DEBUG,
		"":        INFO,
		" info ":  INFO,
		"warning": WARN,
		"Error":   ERROR,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
	assert.Equal(t, "UNKNOWN", LogLevel(42).String())
}

func TestLogger_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriterLogger("world", &buf, WARN)

	l.Debug("не видно")
	l.Info("тоже не видно")
	l.Warn("предупреждение %d", 1)
	l.Error("ошибка")

	out := buf.String()
	assert.NotContains(t, out, "не видно")
	assert.Contains(t, out, "[WARN] [world] предупреждение 1")
	assert.Contains(t, out, "[ERROR] [world] ошибка")
}

func TestLogger_WritesFile(t *testing.T) {
	dir := t.TempDir()
	l, err := NewLogger("api", dir)
	require.NoError(t, err)

	l.Debug("в файл")
	require.NoError(t, l.Close())
	require.NoError(t, l.Close(), "повторное закрытие безопасно")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, strings.HasPrefix(entries[0].Name(), "api_"))

	data, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	require.NoError(t, err)
	assert.Contains(t, string(data), "[DEBUG] [api] в файл")
}

func TestDefaultLogger_Swap(t *testing.T) {
	prev := defaultLogger
	t.Cleanup(func() { SetDefaultLogger(prev) })

	var buf bytes.Buffer
	SetDefaultLogger(NewWriterLogger("", &buf, TRACE))
	Trace("t")
	Info("генерация завершена: %d блоков", 10)

	assert.Contains(t, buf.String(), "[TRACE] t")
	assert.Contains(t, buf.String(), "[INFO] генерация завершена: 10 блоков")

	// nil-логгер молча игнорирует вызовы
	SetDefaultLogger(nil)
	assert.NotPanics(t, func() { Error("никуда") })
}

func TestLoggerManager(t *testing.T) {
	lm := NewLoggerManager("")

	a, err := lm.GetLogger("world")
	require.NoError(t, err)
	b := lm.MustGetLogger("world")
	assert.Same(t, a, b)

	lm.MustGetLogger("api")
	assert.Equal(t, []string{"api", "world"}, lm.ListComponents())

	require.NoError(t, lm.SetLogLevel("world", ERROR, ERROR))
	assert.Error(t, lm.SetLogLevel("missing", INFO, INFO))

	require.NoError(t, lm.CloseAll())
	assert.Empty(t, lm.ListComponents())
}

func TestSetDefaultLevel(t *testing.T) {
	prev := defaultLogger
	t.Cleanup(func() { SetDefaultLogger(prev) })

	var buf bytes.Buffer
	SetDefaultLogger(NewWriterLogger("", &buf, INFO))
	Debug("скрыто")
	SetDefaultLevel(DEBUG)
	Debug("видно")

	assert.NotContains(t, buf.String(), "скрыто")
	assert.Contains(t, buf.String(), "[DEBUG] видно")
}
