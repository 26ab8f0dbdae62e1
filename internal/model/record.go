package model

import (
	"time"

	"gorm.io/gorm"
)

// ModuleRecord is one record owned by a module's record service. The core
// never inspects Data beyond delegating CRUD calls and applying view
// filter/sort semantics; its shape belongs entirely to the module.
type ModuleRecord struct {
	ID         string         `json:"id" gorm:"type:varchar(50);primaryKey"`
	UserID     uint           `json:"userId" gorm:"not null;index:idx_module_records_owner"`
	ModuleType string         `json:"moduleType" gorm:"type:varchar(50);not null;index:idx_module_records_owner"`
	DatabaseID string         `json:"databaseId" gorm:"type:varchar(100);index"`
	Data       JSONMap        `json:"data" gorm:"type:jsonb"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`
}

// BeforeCreate hook will be called before creating a new ModuleRecord
func (r *ModuleRecord) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == "" {
		r.ID = NewSecureID("rec_")
	}
	if r.Data == nil {
		r.Data = JSONMap{}
	}
	return nil
}

// Field returns the named data field, or nil.
func (r *ModuleRecord) Field(name string) interface{} {
	if r.Data == nil {
		return nil
	}
	return r.Data[name]
}
