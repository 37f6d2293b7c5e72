package model

import "gorm.io/datatypes"

// Tabel wilayah administratif mengikuti skema sumber (prov_id/prov_name dst).
// Read-mostly: diisi lewat seeding, aplikasi hanya membaca.

type Province struct {
	ProvID   int            `gorm:"column:prov_id;primaryKey" json:"prov_id"`
	ProvName string         `gorm:"column:prov_name;size:255" json:"prov_name"`
	Geom     datatypes.JSON `gorm:"column:geom" json:"geom,omitempty"`
}

func (Province) TableName() string { return "provinces" }

type City struct {
	CityID   int    `gorm:"column:city_id;primaryKey" json:"city_id"`
	CityName string `gorm:"column:city_name;size:255" json:"city_name"`
	ProvID   int    `gorm:"column:prov_id;index" json:"prov_id"`
}

func (City) TableName() string { return "cities" }

type District struct {
	DisID   int    `gorm:"column:dis_id;primaryKey" json:"dis_id"`
	DisName string `gorm:"column:dis_name;size:255" json:"dis_name"`
	CityID  int    `gorm:"column:city_id;index" json:"city_id"`
}

func (District) TableName() string { return "districts" }

type Subdistrict struct {
	SubdisID   int    `gorm:"column:subdis_id;primaryKey" json:"subdis_id"`
	SubdisName string `gorm:"column:subdis_name;size:255" json:"subdis_name"`
	DisID      int    `gorm:"column:dis_id;index" json:"dis_id"`
}

func (Subdistrict) TableName() string { return "subdistricts" }
