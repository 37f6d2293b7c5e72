package service

import (
	"errors"
	"testing"

	"github.com/xuri/excelize/v2"
)

func buildWorkbook(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf.Bytes()
}

func TestParseRows(t *testing.T) {
	data := buildWorkbook(t, [][]interface{}{
		{"Jenis Rambu", "Latitude", "Longitude", "jumlah unit"},
		{"Jalur Evakuasi", "-6.2", "106.8", "3"},
		{"Titik Kumpul", "-7,1", "110,4"},
	})

	rows, err := ParseRows(data)
	if err != nil {
		t.Fatalf("ParseRows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if got := rows[0]["Jenis Rambu"]; got != "Jalur Evakuasi" {
		t.Errorf("Jenis Rambu = %q", got)
	}
	// baris kedua lebih pendek dari header: sel hilang jadi string kosong
	if got, ok := rows[1]["jumlah unit"]; !ok || got != "" {
		t.Errorf("missing cell = %q (present=%v), want empty string", got, ok)
	}
}

func TestParseRowsBlankHeaderFallback(t *testing.T) {
	data := buildWorkbook(t, [][]interface{}{
		{"Jenis Rambu", "", "Latitude"},
		{"Rambu A", "catatan", "-6.2"},
	})

	rows, err := ParseRows(data)
	if err != nil {
		t.Fatalf("ParseRows: %v", err)
	}
	if got := rows[0]["B"]; got != "catatan" {
		t.Errorf("kolom header kosong = %q, want fallback huruf kolom", got)
	}
}

func TestParseRowsInvalidPayload(t *testing.T) {
	_, err := ParseRows([]byte("bukan spreadsheet"))
	if !errors.Is(err, ErrInvalidSpreadsheet) {
		t.Fatalf("err = %v, want ErrInvalidSpreadsheet", err)
	}
}

func TestRowFirst(t *testing.T) {
	row := Row{"alamat": "  Jl. Merdeka 1  ", "Alamat Pemasangan": ""}
	if got := row.First("Alamat Pemasangan", "alamat"); got != "Jl. Merdeka 1" {
		t.Errorf("First = %q", got)
	}
	if got := row.First("tidak ada"); got != "" {
		t.Errorf("First miss = %q, want empty", got)
	}
}
