package render

import (
	"bytes"
	"io"
)

// codeWriter buffers indented text. While prefix is set, every new line
// starts with it right after the indentation.
type codeWriter struct {
	buf     bytes.Buffer
	indent  int
	prefix  string
	newline string
	fresh   bool
}

func newCodeWriter(newline string) *codeWriter {
	return &codeWriter{newline: newline, fresh: true}
}

func (w *codeWriter) write(parts ...string) *codeWriter {
	if w.fresh {
		for i := 0; i < w.indent; i++ {
			w.buf.WriteByte('\t')
		}
		w.buf.WriteString(w.prefix)
		w.fresh = false
	}
	for _, p := range parts {
		w.buf.WriteString(p)
	}
	return w
}

func (w *codeWriter) line(parts ...string) *codeWriter {
	if len(parts) > 0 {
		w.write(parts...)
	}
	w.buf.WriteString(w.newline)
	w.fresh = true
	return w
}

func (w *codeWriter) in()  { w.indent++ }
func (w *codeWriter) out() { w.indent-- }

func (w *codeWriter) flush(dst io.Writer) error {
	_, err := w.buf.WriteTo(dst)
	return err
}
