package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LikeModel records one actor liking one item. The composite unique index
// enforces at most one row per (actor, item) triple; toggling off hard
// deletes the row, so no soft-delete column here.
type LikeModel struct {
	ID        string    `json:"id"         gorm:"type:char(36);primaryKey"`
	ActorID   string    `json:"actor_id"   gorm:"uniqueIndex:idx_like_actor_item;not null"`
	ItemType  string    `json:"item_type"  gorm:"uniqueIndex:idx_like_actor_item;not null"`
	ItemID    string    `json:"item_id"    gorm:"uniqueIndex:idx_like_actor_item;not null"`
	CreatedAt time.Time `json:"created"`
}

func (LikeModel) TableName() string { return "likes" }

func (l *LikeModel) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	return nil
}
