package out

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"studyclock/internal/modules/session/domain"
	sessionout "studyclock/internal/modules/session/port/out"
	apperrors "studyclock/internal/platform/errors"
	"studyclock/internal/platform/markdown"
)

const noteSchemaVersion = 1

var sessionsBlock = markdown.Block{
	Start: "<!-- studyclock:sessions:start -->",
	End:   "<!-- studyclock:sessions:end -->",
}

// MarkdownExporter writes one note per date. Text outside the managed
// sessions block survives re-export.
type MarkdownExporter struct {
	dir string
}

func NewMarkdownExporter(dir string) sessionout.Exporter {
	return &MarkdownExporter{dir: dir}
}

func (e *MarkdownExporter) ExportDay(_ context.Context, date string, records []domain.Record) (string, error) {
	day, err := time.Parse(domain.DateLayout, date)
	if err != nil {
		return "", fmt.Errorf("%w: export date %q", apperrors.ErrInvalidInput, date)
	}
	dir := filepath.Join(e.dir, day.Format("2006"), day.Format("01"))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create notes dir: %w", err)
	}
	path := filepath.Join(dir, date+".md")

	body := "# Study " + date + "\n"
	existing, err := os.ReadFile(path)
	switch {
	case err == nil:
		prior, parseErr := markdown.ParseNote(string(existing))
		if parseErr != nil {
			return "", fmt.Errorf("parse existing note %s: %w", path, parseErr)
		}
		body = prior.Body
	case !errors.Is(err, os.ErrNotExist):
		return "", fmt.Errorf("read existing note: %w", err)
	}

	total := 0
	lines := make([]string, 0, len(records))
	for _, r := range records {
		total += r.Duration
		lines = append(lines, fmt.Sprintf("- %s — %d min", r.Time, r.Duration))
	}
	note := markdown.Note{
		Meta: map[string]any{
			"schema_version": noteSchemaVersion,
			"date":           date,
			"total_minutes":  total,
			"sessions":       len(records),
		},
		Body: sessionsBlock.Replace(body, strings.Join(lines, "\n")),
	}
	rendered, err := note.Render()
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return "", fmt.Errorf("write note: %w", err)
	}
	return path, nil
}
