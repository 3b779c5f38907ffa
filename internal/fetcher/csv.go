package fetcher

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/leadbridge/internal/model"
)

// CSVSource streams a CSV file chunk by chunk. The header row is read at
// construction time.
type CSVSource struct {
	reader    *csv.Reader
	closer    io.Closer
	columns   []string
	chunkSize int
	done      bool
}

// OpenCSV opens a CSV file as a chunked Source.
func OpenCSV(path string, chunkSize int) (*CSVSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "csv: open file")
	}
	src, err := NewCSVSource(f, chunkSize)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	src.closer = f
	return src, nil
}

// NewCSVSource wraps a reader as a chunked Source. The first row is
// consumed as the header.
func NewCSVSource(r io.Reader, chunkSize int) (*CSVSource, error) {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // allow variable fields
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, eris.New("csv: empty file")
	}
	if err != nil {
		return nil, eris.Wrap(err, "csv: read header")
	}

	columns := make([]string, len(header))
	for i, col := range header {
		columns[i] = strings.TrimSpace(col)
	}
	if len(columns) > 0 {
		// Excel-produced CSVs often carry a UTF-8 BOM on the first cell.
		columns[0] = strings.TrimPrefix(columns[0], "\ufeff")
	}

	return &CSVSource{reader: reader, columns: columns, chunkSize: chunkSize}, nil
}

// Columns returns the header row in source order.
func (s *CSVSource) Columns() []string {
	return s.columns
}

// Next reads up to chunkSize rows. Returns io.EOF once exhausted.
func (s *CSVSource) Next(ctx context.Context) ([]model.RawRecord, error) {
	if s.done {
		return nil, io.EOF
	}

	rows := make([]model.RawRecord, 0, s.chunkSize)
	for len(rows) < s.chunkSize {
		if err := checkCtx(ctx, "csv"); err != nil {
			return nil, err
		}

		row, err := s.reader.Read()
		if err == io.EOF {
			s.done = true
			break
		}
		if err != nil {
			return nil, eris.Wrap(err, "csv: read row")
		}
		rows = append(rows, rowToRecord(s.columns, row))
	}

	if len(rows) == 0 {
		return nil, io.EOF
	}
	return rows, nil
}

// Close releases the underlying file, if any.
func (s *CSVSource) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}
