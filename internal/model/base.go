package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UUIDBase carries a plain nullable deleted_at column. Soft-deleted rows are
// filtered explicitly by the repositories, never by a global ORM scope.
//
// swagger:model
type UUIDBase struct {
	ID        string     `gorm:"primaryKey;type:varchar(36)" json:"id"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	DeletedAt *time.Time `gorm:"index" json:"-"`
}

func (b *UUIDBase) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	return
}

func (b *UUIDBase) IsDeleted() bool {
	return b.DeletedAt != nil
}

func GenerateUUID() string {
	return uuid.New().String()
}
