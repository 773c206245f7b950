package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VideoModel struct {
	ID           string         `gorm:"type:uuid;primary_key" json:"id"`
	OwnerID      string         `gorm:"type:uuid;not null;index" json:"owner_id"`
	VideoURL     string         `gorm:"type:varchar(500);not null" json:"video_url"`
	ThumbnailURL string         `gorm:"type:varchar(500);not null" json:"thumbnail_url"`
	Title        string         `gorm:"not null" json:"title"`
	Description  string         `json:"description"`
	Duration     float64        `gorm:"not null" json:"duration"`
	Views        int64          `gorm:"default:0" json:"views"`
	IsPublished  bool           `gorm:"default:true" json:"is_published"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (VideoModel) TableName() string {
	return "videos"
}

func (v *VideoModel) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.New().String()
	}
	return nil
}
