package pipeline

import (
	"bytes"
	"io"
	"strings"

	"go.trai.ch/kiln/internal/core/ports"
)

type logLevel int

const (
	levelInfo logLevel = iota
	levelWarn
)

// logWriter forwards tool output to the logger one line at a time.
// A trailing partial line is held until the next newline or Close.
type logWriter struct {
	logger ports.Logger
	level  logLevel
	buf    []byte
}

func (w *logWriter) Write(p []byte) (n int, err error) {
	w.buf = append(w.buf, p...)

	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		w.logLine(w.buf[:i])
		w.buf = w.buf[i+1:]
	}

	return len(p), nil
}

func (w *logWriter) Close() error {
	if len(w.buf) > 0 {
		w.logLine(w.buf)
		w.buf = nil
	}
	return nil
}

func (w *logWriter) logLine(line []byte) {
	// Compilers on Windows end lines with \r\n.
	msg := strings.TrimSuffix(string(line), "\r")

	if w.level == levelInfo {
		w.logger.Info(msg)
	} else {
		w.logger.Warn(msg)
	}
}

// writerOrNil keeps a nil *logWriter from becoming a non-nil io.Writer.
func writerOrNil(w *logWriter) io.Writer {
	if w == nil {
		return nil
	}
	return w
}
