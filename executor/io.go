package executor

import (
	"io"
	"slices"
)

// Sink receives printed lines, without the trailing newline.
type Sink interface {
	WriteLine(line string) error
}

// WriterSink writes each line followed by a newline.
type WriterSink struct {
	w io.Writer
}

func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

func (s *WriterSink) WriteLine(line string) error {
	_, err := io.WriteString(s.w, line+"\n")
	return err
}

// LineBuffer collects lines in memory. The zero value is ready to use.
type LineBuffer struct {
	lines []string
}

func (b *LineBuffer) WriteLine(line string) error {
	b.lines = append(b.lines, line)
	return nil
}

// Lines returns a copy of the collected lines.
func (b *LineBuffer) Lines() []string {
	return slices.Clone(b.lines)
}
