package main

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// The log file is cut back to its newest keepLogSizeBytes once it grows past
// maxLogSizeBytes.
const (
	maxLogSizeBytes  = 6 * 1024 * 1024
	keepLogSizeBytes = 5 * 1024 * 1024
)

type logFileWriter struct {
	mu       sync.Mutex
	file     *os.File
	maxBytes int64
	keep     int64
}

func newLogFileWriter(path string) (*logFileWriter, *os.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, err
		}
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	w := &logFileWriter{file: file, maxBytes: maxLogSizeBytes, keep: keepLogSizeBytes}
	if err := w.trim(); err != nil {
		_ = file.Close()
		return nil, nil, err
	}
	return w, file, nil
}

func (w *logFileWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	n, err := w.file.Write(p)
	if err != nil {
		return n, err
	}
	return n, w.trim()
}

// trim keeps the tail of the file once it exceeds maxBytes.
func (w *logFileWriter) trim() error {
	info, err := w.file.Stat()
	if err != nil {
		return err
	}
	size := info.Size()
	if size <= w.maxBytes {
		return nil
	}

	tail := make([]byte, w.keep)
	n, err := w.file.ReadAt(tail, size-w.keep)
	if err != nil && err != io.EOF {
		return err
	}
	tail = tail[:n]

	if err := w.file.Truncate(0); err != nil {
		return err
	}
	if _, err := w.file.Seek(0, io.SeekStart); err != nil {
		return err
	}
	_, err = w.file.Write(tail)
	return err
}
