package persistent

import (
	"cliphub/internal/model"

	"gorm.io/gorm"
)

// ChannelRepository answers the subscription-edge questions the channel page
// needs. Edges are owned elsewhere, this side only reads them.
type ChannelRepository interface {
	CountSubscribers(channelID string) (int64, error)
	CountSubscriptions(subscriberID string) (int64, error)
	IsSubscribed(subscriberID, channelID string) (bool, error)
}

type channelRepository struct {
	db *gorm.DB
}

func NewChannelRepository(db *gorm.DB) ChannelRepository {
	return &channelRepository{db: db}
}

func (r *channelRepository) CountSubscribers(channelID string) (int64, error) {
	var count int64
	err := r.db.Model(&model.SubscriptionModel{}).
		Where("channel_id = ?", channelID).
		Count(&count).Error
	return count, err
}

func (r *channelRepository) CountSubscriptions(subscriberID string) (int64, error) {
	var count int64
	err := r.db.Model(&model.SubscriptionModel{}).
		Where("subscriber_id = ?", subscriberID).
		Count(&count).Error
	return count, err
}

func (r *channelRepository) IsSubscribed(subscriberID, channelID string) (bool, error) {
	var count int64
	err := r.db.Model(&model.SubscriptionModel{}).
		Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID).
		Count(&count).Error
	return count > 0, err
}
