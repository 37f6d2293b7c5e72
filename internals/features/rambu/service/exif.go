package service

import (
	"bytes"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"time"

	"github.com/chai2010/webp"
	"github.com/cozy/goexif2/exif"
	"github.com/cozy/goexif2/mknote"
)

func init() {
	exif.RegisterParsers(mknote.All...)
	image.RegisterFormat("webp", "RIFF????WEBP", webp.Decode, webp.DecodeConfig)
}

// GPSPoint koordinat hasil ekstraksi EXIF.
type GPSPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// PhotoMeta metadata opsional sebuah foto. Semua field best-effort.
type PhotoMeta struct {
	GPS         *GPSPoint  `json:"gps,omitempty"`
	Datetime    *time.Time `json:"datetime,omitempty"`
	Orientation *int       `json:"orientation,omitempty"`
	Width       *int       `json:"width,omitempty"`
	Height      *int       `json:"height,omitempty"`
}

func (m *PhotoMeta) empty() bool {
	return m.GPS == nil && m.Datetime == nil && m.Orientation == nil &&
		m.Width == nil && m.Height == nil
}

// ExtractMeta membaca metadata EXIF (GPS, waktu pemotretan, orientasi,
// dimensi piksel) dari byte gambar. Selalu non-fatal: kegagalan parsing
// hanya dicatat di log dan mengembalikan nil — pemanggil tidak bisa
// membedakan "tidak ada metadata" dari "gagal diekstrak", dan itu memang
// kontraknya karena metadata hanya pelengkap.
func ExtractMeta(data []byte) *PhotoMeta {
	meta := &PhotoMeta{}

	ex, err := exif.Decode(bytes.NewReader(data))
	if err != nil && exif.IsCriticalError(err) {
		log.Printf("[WARN] EXIF parse gagal: %v", err)
		ex = nil
	}

	if ex != nil {
		if lat, lng, err := ex.LatLong(); err == nil {
			meta.GPS = &GPSPoint{Lat: lat, Lng: lng}
		}
		if ts, err := ex.DateTime(); err == nil {
			meta.Datetime = &ts
		}
		if tag, err := ex.Get(exif.Orientation); err == nil {
			if v, err := tag.Int(0); err == nil {
				meta.Orientation = &v
			}
		}
		if tag, err := ex.Get(exif.PixelXDimension); err == nil {
			if v, err := tag.Int(0); err == nil {
				meta.Width = &v
			}
		}
		if tag, err := ex.Get(exif.PixelYDimension); err == nil {
			if v, err := tag.Int(0); err == nil {
				meta.Height = &v
			}
		}
	}

	// Dimensi dari header gambar (jpeg/png/webp) bila EXIF tidak menyebut.
	if meta.Width == nil || meta.Height == nil {
		if cfg, _, err := image.DecodeConfig(bytes.NewReader(data)); err == nil {
			if meta.Width == nil {
				w := cfg.Width
				meta.Width = &w
			}
			if meta.Height == nil {
				h := cfg.Height
				meta.Height = &h
			}
		}
	}

	if meta.empty() {
		return nil
	}
	return meta
}
