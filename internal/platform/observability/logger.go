package observability

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	hclog "github.com/hashicorp/go-hclog"
)

// New returns a JSON logger writing to w.
func New(w io.Writer, level string) hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:       "studyclock",
		Level:      hclog.LevelFromString(level),
		Output:     w,
		JSONFormat: true,
	})
}

// NewFile opens (appending) the log file at path. The returned close func
// must be called on shutdown.
func NewFile(path, level string) (hclog.Logger, func() error, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return New(f, level), f.Close, nil
}

// Discard is used where no log output is wanted, mostly tests.
func Discard() hclog.Logger {
	return hclog.NewNullLogger()
}
