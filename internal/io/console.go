package io

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Status is the emoji prefix marking what kind of progress line is printed
type Status string

const (
	StatusStart    Status = "🚀"
	StatusDir      Status = "📁"
	StatusCreate   Status = "📦"
	StatusInstall  Status = "📚"
	StatusRun      Status = "🔧"
	StatusOK       Status = "✅"
	StatusDone     Status = "🎉"
	StatusNotes    Status = "📋"
	StatusQuestion Status = "🤔"
	StatusStopped  Status = "👋"
	StatusError    Status = "❌"
)

var statusColors = map[Status]*color.Color{
	StatusOK:       color.New(color.FgGreen),
	StatusDone:     color.New(color.FgGreen, color.Bold),
	StatusError:    color.New(color.FgRed),
	StatusQuestion: color.New(color.FgCyan),
	StatusNotes:    color.New(color.FgCyan),
}

// Console prints operator-facing progress and reads answers to prompts.
// Every write is flushed immediately so a prompt is visible before the
// console blocks reading the answer.
type Console struct {
	out *flushWriter
	in  *bufio.Reader
}

// NewConsole creates a console writing to out and reading from in
func NewConsole(out io.Writer, in io.Reader) *Console {
	c := &Console{out: newFlushWriter(out)}
	if in != nil {
		c.in = bufio.NewReader(in)
	}
	return c
}

// Writer exposes the flushed output stream for streaming command output
func (c *Console) Writer() io.Writer {
	return c.out
}

// Println prints a plain line
func (c *Console) Println(a ...any) {
	fmt.Fprintln(c.out, a...)
}

// Blank prints an empty line separating sections
func (c *Console) Blank() {
	fmt.Fprintln(c.out)
}

// Status prints a line prefixed with the status emoji
func (c *Console) Status(status Status, format string, a ...any) {
	line := string(status) + " " + fmt.Sprintf(format, a...)
	if col, ok := statusColors[status]; ok {
		col.Fprintln(c.out, line)
		return
	}
	fmt.Fprintln(c.out, line)
}

// Ask prints question on the current line and reads one line of input.
// A final line without a newline still counts as an answer; io.EOF is
// returned only when nothing was typed at all.
func (c *Console) Ask(question string) (string, error) {
	line := string(StatusQuestion) + " " + question
	if col, ok := statusColors[StatusQuestion]; ok {
		col.Fprint(c.out, line)
	} else {
		fmt.Fprint(c.out, line)
	}

	if c.in == nil {
		return "", io.EOF
	}

	answer, err := c.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && answer != "") {
		return "", err
	}
	return strings.TrimRight(answer, "\r\n"), nil
}

// AskContext is Ask that gives up when ctx is done. The pending read is
// abandoned; the process is expected to be on its way out.
func (c *Console) AskContext(ctx context.Context, question string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type reply struct {
		answer string
		err    error
	}
	replies := make(chan reply, 1)
	go func() {
		answer, err := c.Ask(question)
		replies <- reply{answer, err}
	}()

	select {
	case r := <-replies:
		return r.answer, r.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// flushWriter flushes after every write. Writers without a Flush method are
// wrapped in a bufio.Writer so behaviour is the same for both.
type flushWriter struct {
	w       io.Writer
	flusher interface{ Flush() error }
}

func newFlushWriter(w io.Writer) *flushWriter {
	fw := &flushWriter{w: w}

	if f, ok := w.(interface{ Flush() error }); ok {
		fw.flusher = f
	} else {
		bw := bufio.NewWriter(w)
		fw.w = bw
		fw.flusher = bw
	}

	return fw
}

func (fw *flushWriter) Write(p []byte) (int, error) {
	n, err := fw.w.Write(p)
	if err != nil {
		return n, err
	}
	if flushErr := fw.flusher.Flush(); flushErr != nil {
		return n, flushErr
	}
	return n, nil
}

func (fw *flushWriter) Flush() error {
	return fw.flusher.Flush()
}
