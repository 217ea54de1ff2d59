package upload

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"csvalign/domain/table"
	"csvalign/internal/errors"
)

// Reader turns an uploaded spreadsheet file into a normalized Table. CSV (and
// any unrecognized extension) is treated as raw comma-separated text; XLSX
// workbooks are read through excelize. The whole file is held in memory - no
// streaming, no size limit.
type Reader struct{}

// NewReader creates an upload reader
func NewReader() *Reader {
	return &Reader{}
}

// Read normalizes the uploaded file contents into a Table.
func (r *Reader) Read(filename string, data []byte) (table.Table, error) {
	if strings.ToLower(filepath.Ext(filename)) == ".xlsx" {
		return r.readWorkbook(data)
	}
	return table.Normalize(string(data)), nil
}

// readWorkbook extracts the first sheet of an XLSX workbook as a cell grid
// and applies the same normalization rules as CSV input.
func (r *Reader) readWorkbook(data []byte) (table.Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return table.Table{}, errors.Wrap(err, "failed to open workbook")
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return table.Table{Headers: []string{}, Rows: [][]string{}}, nil
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return table.Table{}, errors.Wrapf(err, "failed to read sheet %s", sheets[0])
	}
	return table.FromGrid(rows), nil
}
