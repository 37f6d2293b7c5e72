package model

import (
	"time"

	"gorm.io/datatypes"
)

// Kode slot foto per rambu. Untuk slot 1..4 berlaku maksimal satu foto
// hidup per (rambu, type); slot 0 bebas (foto ad-hoc).
const (
	PhotoTypeAdhoc = 0
	PhotoTypeGPS   = 1 // foto GPS terkonfirmasi di lokasi
	PhotoTypeP0    = 2 // pemasangan 0%
	PhotoTypeP50   = 3 // pemasangan 50%
	PhotoTypeP100  = 4 // pemasangan 100%
)

// Photo menyimpan bukti foto: URL objek di blob storage, checksum SHA-256
// dari byte persis yang tersimpan, dan metadata EXIF opsional.
type Photo struct {
	ID       int            `gorm:"column:id;primaryKey" json:"id"`
	RambuID  int            `gorm:"column:rambu_id;not null;index" json:"rambuId"`
	URL      string         `gorm:"column:url;size:512;not null" json:"url"`
	Checksum string         `gorm:"column:checksum;size:64;not null" json:"checksum"`
	Type     int            `gorm:"column:type;not null;default:0" json:"type"`
	Meta     datatypes.JSON `gorm:"column:meta" json:"meta,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}

func (Photo) TableName() string {
	return "photos"
}
