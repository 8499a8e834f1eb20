package io

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

// mockFlusher is a mock writer that tracks flush calls
type mockFlusher struct {
	bytes.Buffer
	flushCount int
	flushError error
}

func (m *mockFlusher) Flush() error {
	m.flushCount++
	return m.flushError
}

// errorWriter is a writer that always returns an error
type errorWriter struct {
	err error
}

func (e *errorWriter) Write(_ []byte) (n int, err error) {
	return 0, e.err
}

func TestConsole_Status(t *testing.T) {
	tests := []struct {
		status   Status
		expected string
	}{
		{StatusRun, "🔧 Upgrading pip...\n"},
		{StatusOK, "✅ Upgrading pip...\n"},
		{StatusError, "❌ Upgrading pip...\n"},
		{StatusStopped, "👋 Upgrading pip...\n"},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			var buf bytes.Buffer
			console := NewConsole(&buf, nil)

			console.Status(tt.status, "%s...", "Upgrading pip")

			assert.Equal(t, tt.expected, buf.String())
		})
	}
}

func TestConsole_PlainOutput(t *testing.T) {
	var buf bytes.Buffer
	console := NewConsole(&buf, nil)

	console.Blank()
	console.Println("1. Navigate to:", "/project")
	console.Println("  ", "jupyter lab")

	assert.Equal(t, "\n1. Navigate to: /project\n   jupyter lab\n", buf.String())
}

func TestConsole_Ask(t *testing.T) {
	t.Run("reads one line", func(t *testing.T) {
		var buf bytes.Buffer
		console := NewConsole(&buf, strings.NewReader(" Yes \nignored\n"))

		answer, err := console.Ask("Start now? (y/n): ")

		require.NoError(t, err)
		assert.Equal(t, " Yes ", answer)
		assert.Equal(t, "🤔 Start now? (y/n): ", buf.String())
	})

	t.Run("strips windows line ending", func(t *testing.T) {
		console := NewConsole(io.Discard, strings.NewReader("y\r\n"))

		answer, err := console.Ask("? ")

		require.NoError(t, err)
		assert.Equal(t, "y", answer)
	})

	t.Run("accepts final line without newline", func(t *testing.T) {
		console := NewConsole(io.Discard, strings.NewReader("yes"))

		answer, err := console.Ask("? ")

		require.NoError(t, err)
		assert.Equal(t, "yes", answer)
	})

	t.Run("returns EOF on empty input", func(t *testing.T) {
		console := NewConsole(io.Discard, strings.NewReader(""))

		_, err := console.Ask("? ")

		assert.ErrorIs(t, err, io.EOF)
	})

	t.Run("returns EOF without input stream", func(t *testing.T) {
		console := NewConsole(io.Discard, nil)

		_, err := console.Ask("? ")

		assert.ErrorIs(t, err, io.EOF)
	})

	t.Run("successive asks consume successive lines", func(t *testing.T) {
		console := NewConsole(io.Discard, strings.NewReader("n\ny\n"))

		first, err := console.Ask("? ")
		require.NoError(t, err)
		second, err := console.Ask("? ")
		require.NoError(t, err)

		assert.Equal(t, "n", first)
		assert.Equal(t, "y", second)
	})
}

func TestFlushWriter(t *testing.T) {
	t.Run("wraps non-flushing writer", func(t *testing.T) {
		var buf bytes.Buffer
		fw := newFlushWriter(&buf)

		assert.NotNil(t, fw.flusher)
		assert.NotEqual(t, &buf, fw.w)

		_, err := fw.Write([]byte("visible"))
		require.NoError(t, err)
		assert.Equal(t, "visible", buf.String(), "data should reach the wrapped writer immediately")
	})

	t.Run("uses existing flusher and flushes every write", func(t *testing.T) {
		mf := &mockFlusher{}
		fw := newFlushWriter(mf)

		_, err := fw.Write([]byte("first"))
		require.NoError(t, err)
		_, err = fw.Write([]byte(" second"))
		require.NoError(t, err)

		assert.Equal(t, 2, mf.flushCount)
		assert.Equal(t, "first second", mf.String())
	})

	t.Run("returns write error", func(t *testing.T) {
		fw := newFlushWriter(&errorWriter{err: errors.New("write failed")})

		_, err := fw.Write([]byte("test"))
		// bufio only surfaces the error on flush
		assert.ErrorContains(t, err, "write failed")
	})

	t.Run("returns flush error", func(t *testing.T) {
		fw := newFlushWriter(&mockFlusher{flushError: errors.New("flush failed")})

		_, err := fw.Write([]byte("test"))
		assert.ErrorContains(t, err, "flush failed")
	})

	t.Run("console writer is the flushing writer", func(t *testing.T) {
		mf := &mockFlusher{}
		console := NewConsole(mf, nil)

		_, err := console.Writer().Write([]byte("streamed"))
		require.NoError(t, err)
		assert.Equal(t, 1, mf.flushCount)
	})
}

func TestConsole_AskContext(t *testing.T) {
	t.Run("returns answer", func(t *testing.T) {
		console := NewConsole(io.Discard, strings.NewReader("y\n"))

		answer, err := console.AskContext(context.Background(), "? ")

		require.NoError(t, err)
		assert.Equal(t, "y", answer)
	})

	t.Run("gives up when cancelled", func(t *testing.T) {
		pr, pw := io.Pipe()
		defer pw.Close()
		console := NewConsole(io.Discard, pr)

		ctx, cancel := context.WithCancel(context.Background())
		time.AfterFunc(50*time.Millisecond, cancel)

		_, err := console.AskContext(ctx, "? ")

		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("does not prompt when already cancelled", func(t *testing.T) {
		var buf bytes.Buffer
		console := NewConsole(&buf, strings.NewReader("y\n"))
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := console.AskContext(ctx, "? ")

		assert.ErrorIs(t, err, context.Canceled)
		assert.Empty(t, buf.String())
	})
}
