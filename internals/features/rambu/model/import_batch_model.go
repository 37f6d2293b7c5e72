package model

import (
	"time"

	"gorm.io/datatypes"
)

// Status lifecycle satu batch import. Transisi sekali saja:
// validating → imported | needs_fix | failed.
const (
	BatchValidating = "validating"
	BatchImported   = "imported"
	BatchNeedsFix   = "needs_fix"
	BatchFailed     = "failed"
)

// ImportBatch mencatat satu invocation bulk import beserta ringkasan
// hasilnya (jumlah sukses + error per baris) sebagai payload JSON.
type ImportBatch struct {
	ID     int            `gorm:"column:id;primaryKey" json:"id"`
	Source string         `gorm:"column:source;size:30;not null;default:excel" json:"source"`
	Status string         `gorm:"column:status;size:20;not null;default:validating" json:"status"`
	Report datatypes.JSON `gorm:"column:report" json:"report,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (ImportBatch) TableName() string {
	return "import_batches"
}
