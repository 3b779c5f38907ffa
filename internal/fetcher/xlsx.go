package fetcher

import (
	"context"
	"io"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/leadbridge/internal/model"
)

// XLSXSource serves rows from the first sheet of an XLSX workbook in
// chunks. The whole sheet is held by the xlsx library; chunking only
// bounds what the pipeline sees at once.
type XLSXSource struct {
	columns   []string
	rows      [][]string
	pos       int
	chunkSize int
}

// OpenXLSX opens an XLSX workbook as a chunked Source. The first row of
// the first sheet is the header.
func OpenXLSX(path string, chunkSize int) (*XLSXSource, error) {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "xlsx: open file")
	}
	if len(f.Sheets) == 0 {
		return nil, eris.New("xlsx: workbook has no sheets")
	}
	sheet := f.Sheets[0]
	if len(sheet.Rows) == 0 {
		return nil, eris.New("xlsx: empty sheet")
	}

	header := rowToStrings(sheet.Rows[0])
	columns := make([]string, len(header))
	for i, col := range header {
		columns[i] = strings.TrimSpace(col)
	}

	rows := make([][]string, 0, len(sheet.Rows)-1)
	for _, row := range sheet.Rows[1:] {
		rows = append(rows, rowToStrings(row))
	}

	return &XLSXSource{columns: columns, rows: rows, chunkSize: chunkSize}, nil
}

// Columns returns the header row in source order.
func (s *XLSXSource) Columns() []string {
	return s.columns
}

// Next returns the next chunk of rows, or io.EOF.
func (s *XLSXSource) Next(ctx context.Context) ([]model.RawRecord, error) {
	if err := checkCtx(ctx, "xlsx"); err != nil {
		return nil, err
	}
	if s.pos >= len(s.rows) {
		return nil, io.EOF
	}

	end := min(s.pos+s.chunkSize, len(s.rows))
	chunk := make([]model.RawRecord, 0, end-s.pos)
	for _, row := range s.rows[s.pos:end] {
		chunk = append(chunk, rowToRecord(s.columns, row))
	}
	s.pos = end
	return chunk, nil
}

// Close is a no-op; the workbook is fully read at open time.
func (s *XLSXSource) Close() error {
	return nil
}

func rowToStrings(row *xlsx.Row) []string {
	cells := make([]string, len(row.Cells))
	for i, cell := range row.Cells {
		cells[i] = cell.String()
	}
	return cells
}
