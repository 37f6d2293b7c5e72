package service

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"path"
)

// ErrInvalidArchive: payload imagesZip bukan arsip ZIP yang bisa dibaca.
// Fatal untuk seluruh request import, seperti ErrInvalidSpreadsheet.
var ErrInvalidArchive = errors.New("file zip gambar tidak valid")

// BuildArchiveLookup membaca ZIP berisi gambar menjadi map nama file dasar
// → isi byte. Path di dalam arsip dibuang (photos/IMG_1.jpg cocok dengan
// referensi IMG_1.jpg), entry direktori dilewati, pencocokan case-sensitive.
// zipBytes nil/kosong menghasilkan map kosong: semua lookup miss, bukan error.
func BuildArchiveLookup(zipBytes []byte) (map[string][]byte, error) {
	lookup := map[string][]byte{}
	if len(zipBytes) == 0 {
		return lookup, nil
	}

	zr, err := zip.NewReader(bytes.NewReader(zipBytes), int64(len(zipBytes)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArchive, err)
	}

	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		base := path.Base(f.Name)
		if base == "" || base == "." {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("baca entry %s: %w", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("baca entry %s: %w", f.Name, err)
		}
		lookup[base] = data
	}
	return lookup, nil
}
