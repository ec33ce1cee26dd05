// Package csvsource reads a daily weather export from a CSV file.
package csvsource

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/couchcryptid/weather-wheel/internal/domain"
)

// ErrNoRows is returned for a file with a header but no data rows.
var ErrNoRows = errors.New("no data rows")

// Reader loads raw rows from a CSV file whose first line is the header.
// It implements pipeline.RowExtractor.
type Reader struct {
	path   string
	logger *slog.Logger
}

// NewReader creates a Reader for path.
func NewReader(path string, logger *slog.Logger) *Reader {
	return &Reader{path: path, logger: logger}
}

// ExtractRows reads every data row, keyed by header name. Values are trimmed
// strings; numeric conversion happens during normalization.
func (r *Reader) ExtractRows(ctx context.Context) ([]domain.RawRow, error) {
	f, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", r.path, err)
	}
	defer f.Close()

	rows, err := Parse(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", r.path, err)
	}
	r.logger.Info("csv loaded", "path", r.path, "rows", len(rows))
	return rows, nil
}

// Parse reads CSV data from src. Short rows leave the missing columns unset.
func Parse(ctx context.Context, src io.Reader) ([]domain.RawRow, error) {
	cr := csv.NewReader(src)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrNoRows
	}
	if err != nil {
		return nil, fmt.Errorf("header: %w", err)
	}
	for i, h := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(h, "\uFEFF"))
	}

	var rows []domain.RawRow
	for line := 2; ; line++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		row := make(domain.RawRow, len(header))
		for j, h := range header {
			if j < len(rec) {
				row[h] = strings.TrimSpace(rec[j])
			}
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, ErrNoRows
	}
	return rows, nil
}
