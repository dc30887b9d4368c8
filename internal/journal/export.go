package journal

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// ErrNoEntries means an export matched nothing: the journal is missing,
// empty, or the filter excluded every entry. Exports refuse to produce an
// empty file so a bad room id fails loudly instead of writing a header.
var ErrNoEntries = errors.New("journal: no entries to export")

// ExportCSV writes matching entries as CSV, newest first.
func ExportCSV(ctx context.Context, j Journal, f Filter, w io.Writer) error {
	entries, err := j.List(ctx, f)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return exportErr(f, ErrNoEntries)
	}
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "created", "room", "batch", "day", "category", "message", "photo"}); err != nil {
		return fmt.Errorf("journal export: %w", err)
	}
	for _, e := range entries {
		rec := []string{
			strconv.FormatInt(e.ID, 10),
			e.Created.UTC().Format(time.RFC3339),
			e.Room,
			e.Batch,
			strconv.Itoa(e.Day),
			e.Category,
			e.Message,
			e.Photo,
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("journal export: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportJSON writes matching entries as an indented JSON array.
func ExportJSON(ctx context.Context, j Journal, f Filter, w io.Writer) error {
	entries, err := j.List(ctx, f)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return exportErr(f, ErrNoEntries)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(entries)
}

// ExportToFile writes an export into dir under a timestamped name, e.g.
// flower_1_export_20260830_074500.csv, and returns the path. Nothing is
// written when no entries match.
func ExportToFile(ctx context.Context, j Journal, f Filter, dir, format string, now time.Time) (string, error) {
	var buf bytes.Buffer
	var err error
	switch format {
	case "csv":
		err = ExportCSV(ctx, j, f, &buf)
	case "json":
		err = ExportJSON(ctx, j, f, &buf)
	default:
		return "", fmt.Errorf("journal export: unknown format %q (want csv or json)", format)
	}
	if err != nil {
		return "", err
	}

	scope := f.Room
	if scope == "" {
		scope = "journal"
	}
	if now.IsZero() {
		now = time.Now()
	}
	name := fmt.Sprintf("%s_export_%s.%s", scope, now.Format("20060102_150405"), format)
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("journal export: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("journal export: %w", err)
	}
	return path, nil
}

func exportErr(f Filter, err error) error {
	if f.Room != "" {
		return fmt.Errorf("export %s: %w", f.Room, err)
	}
	return err
}
