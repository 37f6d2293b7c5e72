package model

import "time"

// Category kategori rambu (nama unik, dipakai resolver import untuk
// pencocokan label "Jenis Rambu").
type Category struct {
	ID   int    `gorm:"column:id;primaryKey" json:"id"`
	Code string `gorm:"column:code;size:50;not null" json:"code"`
	Name string `gorm:"column:name;size:255;not null;uniqueIndex:category_unique" json:"name"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Category) TableName() string {
	return "categories"
}

// DisasterType jenis bencana.
type DisasterType struct {
	ID   int    `gorm:"column:id;primaryKey" json:"id"`
	Code string `gorm:"column:code;size:50;not null" json:"code"`
	Name string `gorm:"column:name;size:255;not null;uniqueIndex:disaster_type_unique" json:"name"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (DisasterType) TableName() string {
	return "disaster_types"
}
