package model

import "time"

// WatchEntryModel is one row of a user's ordered watch history. Duplicates
// are allowed; the serial id preserves insertion order.
type WatchEntryModel struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    string    `gorm:"type:uuid;not null;index" json:"user_id"`
	VideoID   string    `gorm:"type:uuid;not null" json:"video_id"`
	WatchedAt time.Time `gorm:"autoCreateTime" json:"watched_at"`
}

func (WatchEntryModel) TableName() string {
	return "watch_history"
}
