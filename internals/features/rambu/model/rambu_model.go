package model

import (
	"time"

	categoryModel "rambuku_backend/internals/features/references/model"
)

// Rambu adalah entitas pemasangan fisik yang dilacak: nama, lokasi,
// kategori, jenis bencana, wilayah administratif, dan status lifecycle
// (draft/published/rusak/hilang/trash — hapus selalu soft lewat status).
type Rambu struct {
	ID             int     `gorm:"column:id;primaryKey" json:"id"`
	Name           string  `gorm:"column:name;size:255;not null" json:"name"`
	Description    *string `gorm:"column:description;type:text" json:"description"`
	Status         string  `gorm:"column:status;size:30;not null;default:draft" json:"status"`
	Lat            float64 `gorm:"column:lat;not null" json:"lat"`
	Lng            float64 `gorm:"column:lng;not null" json:"lng"`
	CategoryID     int     `gorm:"column:category_id;not null;index" json:"categoryId"`
	DisasterTypeID int     `gorm:"column:disaster_type_id;not null;index" json:"disasterTypeId"`
	ProvID         *int    `gorm:"column:prov_id;index" json:"prov_id"`
	CityID         *int    `gorm:"column:city_id;index" json:"city_id"`
	DistrictID     *int    `gorm:"column:district_id;index" json:"district_id"`
	SubdistrictID  *int    `gorm:"column:subdistrict_id;index" json:"subdistrict_id"`
	JmlUnit        *int    `gorm:"column:jml_unit" json:"jmlUnit"`
	InputBy        *int    `gorm:"column:input_by;index" json:"input_by"`

	Category     *categoryModel.Category     `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	DisasterType *categoryModel.DisasterType `gorm:"foreignKey:DisasterTypeID" json:"disaster_type,omitempty"`
	Photos       []Photo                     `gorm:"foreignKey:RambuID" json:"photos,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Rambu) TableName() string {
	return "rambu"
}
