// Package export writes snapshots as JSON, XLSX workbooks or SQLite databases.
package export

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/PolySpeedRunners/INF8808-Project/internal/domain/model"
	"github.com/PolySpeedRunners/INF8808-Project/pkg/metrics"
)

// ErrUnknownFormat is returned for an unsupported export format.
var ErrUnknownFormat = errors.New("unknown export format")

// Format names an export format.
type Format string

// Supported formats.
const (
	FormatJSON   Format = "json"
	FormatXLSX   Format = "xlsx"
	FormatSQLite Format = "sqlite"
)

// ParseFormat validates a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case FormatJSON, FormatXLSX, FormatSQLite:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// JSON writes the "year,season" -> code -> stats map of snap to w.
func JSON(w io.Writer, snap *model.Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(snap.Data)
}

// ToFile writes snap to path in the given format.
func ToFile(ctx context.Context, format Format, snap *model.Snapshot, path string) (err error) {
	defer func() {
		status := "success"
		if err != nil {
			status = "failed"
		}
		metrics.RecordExport(string(format), status)
	}()

	switch format {
	case FormatJSON:
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := JSON(f, snap); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	case FormatXLSX:
		return XLSX(snap, path)
	case FormatSQLite:
		return SQLite(ctx, snap, path)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, string(format))
	}
}

// sortedDisciplines returns discipline names of s in ascending order.
func sortedDisciplines(s *model.CountryYearStats) []string {
	names := make([]string, 0, len(s.Disciplines))
	for name := range s.Disciplines {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// value unwraps an optional enrichment value; nil stays nil.
func value(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}
