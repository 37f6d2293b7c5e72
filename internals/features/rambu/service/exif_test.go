package service

import (
	"bytes"
	"image"
	"image/png"
	"testing"
)

func TestExtractMetaGarbage(t *testing.T) {
	if meta := ExtractMeta([]byte("bukan gambar sama sekali")); meta != nil {
		t.Fatalf("meta = %+v, want nil", meta)
	}
}

func TestExtractMetaDimensionsFromHeader(t *testing.T) {
	// PNG tanpa EXIF: dimensi harus tetap terisi dari header gambar.
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 12, 8))); err != nil {
		t.Fatalf("encode png: %v", err)
	}

	meta := ExtractMeta(buf.Bytes())
	if meta == nil {
		t.Fatal("meta = nil")
	}
	if meta.Width == nil || *meta.Width != 12 {
		t.Errorf("width = %v, want 12", meta.Width)
	}
	if meta.Height == nil || *meta.Height != 8 {
		t.Errorf("height = %v, want 8", meta.Height)
	}
	if meta.GPS != nil {
		t.Errorf("gps = %+v, want nil", meta.GPS)
	}
}
