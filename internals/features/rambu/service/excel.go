package service

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrInvalidSpreadsheet: payload bukan workbook yang bisa dibaca.
// Fatal untuk seluruh request import (bukan error per baris).
var ErrInvalidSpreadsheet = errors.New("file excel tidak valid")

// Row adalah satu baris data spreadsheet, key = header kolom.
// Sel yang kosong/tidak ada selalu jadi string kosong, bukan nil,
// supaya coercion di hilir sederhana.
type Row map[string]string

// First mengembalikan nilai non-kosong pertama dari daftar alias kolom.
func (r Row) First(keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(r[k]); v != "" {
			return v
		}
	}
	return ""
}

// ParseRows membaca sheet pertama workbook menjadi deretan Row terurut.
// Baris pertama dianggap header; header kosong diberi fallback huruf kolom
// (A, B, ...) agar sel tetap bisa diakses.
func ParseRows(data []byte) ([]Row, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSpreadsheet, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook tanpa sheet", ErrInvalidSpreadsheet)
	}

	raw, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSpreadsheet, err)
	}
	if len(raw) == 0 {
		return nil, nil
	}

	header := make([]string, len(raw[0]))
	for i, h := range raw[0] {
		h = strings.TrimSpace(h)
		if h == "" {
			h, _ = excelize.ColumnNumberToName(i + 1)
		}
		header[i] = h
	}

	rows := make([]Row, 0, len(raw)-1)
	for _, cells := range raw[1:] {
		row := make(Row, len(header))
		for i, name := range header {
			if i < len(cells) {
				row[name] = cells[i]
			} else {
				row[name] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
