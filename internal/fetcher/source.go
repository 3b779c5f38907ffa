// Package fetcher reads lead-export files (CSV, XLSX) as chunked row sources.
package fetcher

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/leadbridge/internal/model"
)

// DefaultChunkSize bounds peak memory when streaming large exports.
const DefaultChunkSize = 10000

// Source yields raw records in bounded chunks. Next returns io.EOF once
// the source is exhausted. Chunk boundaries are an implementation detail
// and never affect row content or order.
type Source interface {
	// Columns returns the header row in source order.
	Columns() []string
	// Next returns the next chunk of rows, or io.EOF.
	Next(ctx context.Context) ([]model.RawRecord, error)
	Close() error
}

// Open returns a Source for the file, dispatching on extension.
// Unrecognized extensions are treated as CSV.
func Open(path string, chunkSize int) (Source, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return OpenXLSX(path, chunkSize)
	case ".csv":
		return OpenCSV(path, chunkSize)
	default:
		return OpenCSV(path, chunkSize)
	}
}

// rowToRecord maps one data row onto the header. Cells beyond the header
// are dropped; header columns with no cell are left absent (null).
func rowToRecord(columns []string, row []string) model.RawRecord {
	rec := make(model.RawRecord, len(columns))
	for i, col := range columns {
		if i < len(row) {
			rec[col] = row[i]
		}
	}
	return rec
}

func checkCtx(ctx context.Context, what string) error {
	if err := ctx.Err(); err != nil {
		return eris.Wrapf(err, "%s: context cancelled", what)
	}
	return nil
}
