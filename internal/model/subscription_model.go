package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SubscriptionModel is a directed edge: subscriber follows channel. This
// service only counts and probes the edges, it does not create them.
type SubscriptionModel struct {
	ID           string         `gorm:"type:uuid;primary_key" json:"id"`
	SubscriberID string         `gorm:"type:uuid;not null;index:idx_subscriptions_edge,unique" json:"subscriber_id"`
	ChannelID    string         `gorm:"type:uuid;not null;index:idx_subscriptions_edge,unique;index" json:"channel_id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (SubscriptionModel) TableName() string {
	return "subscriptions"
}

func (s *SubscriptionModel) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return nil
}
