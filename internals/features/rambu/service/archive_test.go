package service

import (
	"archive/zip"
	"bytes"
	"errors"
	"testing"
)

func buildZip(t *testing.T, entries map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range entries {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("create entry %s: %v", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("write entry %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func TestBuildArchiveLookup(t *testing.T) {
	data := buildZip(t, map[string]string{
		"IMG_1.jpg":        "satu",
		"photos/IMG_2.jpg": "dua",
		"photos/":          "", // entry direktori, harus dilewati
	})

	lookup, err := BuildArchiveLookup(data)
	if err != nil {
		t.Fatalf("BuildArchiveLookup: %v", err)
	}
	if got := string(lookup["IMG_1.jpg"]); got != "satu" {
		t.Errorf("IMG_1.jpg = %q", got)
	}
	// path di dalam arsip dibuang, hanya nama dasar yang dipakai
	if got := string(lookup["IMG_2.jpg"]); got != "dua" {
		t.Errorf("IMG_2.jpg = %q", got)
	}
	// pencocokan case-sensitive
	if _, ok := lookup["img_1.jpg"]; ok {
		t.Error("lookup img_1.jpg harus miss (case-sensitive)")
	}
}

func TestBuildArchiveLookupEmpty(t *testing.T) {
	lookup, err := BuildArchiveLookup(nil)
	if err != nil {
		t.Fatalf("BuildArchiveLookup(nil): %v", err)
	}
	if lookup == nil || len(lookup) != 0 {
		t.Fatalf("lookup = %v, want map kosong", lookup)
	}
}

func TestBuildArchiveLookupInvalid(t *testing.T) {
	_, err := BuildArchiveLookup([]byte("bukan zip"))
	if !errors.Is(err, ErrInvalidArchive) {
		t.Fatalf("err = %v, want ErrInvalidArchive", err)
	}
}
