package model

import (
	"time"
)

// User mengikuti skema tabel users lama: role & status integer,
// kolom token menyimpan JWT aktif supaya sesi bisa dicabut saat logout.
type User struct {
	ID       int     `gorm:"column:id;primaryKey" json:"id"`
	Username string  `gorm:"column:username;size:100;uniqueIndex;not null" json:"username"`
	Password string  `gorm:"column:password;size:255;not null" json:"-"`
	Name     *string `gorm:"column:name;size:255" json:"name"`
	Role     int     `gorm:"column:role;not null;default:2" json:"role"`
	Status   int     `gorm:"column:status;not null;default:1" json:"status"`
	SatkerID *int    `gorm:"column:satker_id;index" json:"satker_id"`
	Token    *string `gorm:"column:token;type:text" json:"-"`

	SatuanKerja *SatuanKerja `gorm:"foreignKey:SatkerID" json:"satuan_kerja,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// SatuanKerja adalah unit kerja pemilik data rambu; dipakai untuk
// row-level scoping pada listing.
type SatuanKerja struct {
	ID     int     `gorm:"column:id;primaryKey" json:"id"`
	Name   string  `gorm:"column:name;size:255;not null" json:"name"`
	ProvID *int    `gorm:"column:prov_id" json:"prov_id"`
	CityID *int    `gorm:"column:city_id" json:"city_id"`
}

func (SatuanKerja) TableName() string {
	return "satuan_kerja"
}
