package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserModel_BeforeCreate(t *testing.T) {
	user := &UserModel{
		Username: "alice",
		Email:    "alice@example.com",
		FullName: "Alice Liddell",
		Password: "hash",
	}

	// BeforeCreate should set ID if empty
	err := user.BeforeCreate(nil)
	assert.NoError(t, err)
	assert.NotEmpty(t, user.ID)
}

func TestUserModel_BeforeCreate_WithID(t *testing.T) {
	existingID := "existing-id-123"
	user := &UserModel{
		ID:       existingID,
		Username: "alice",
		Email:    "alice@example.com",
	}

	err := user.BeforeCreate(nil)
	assert.NoError(t, err)
	// ID should remain unchanged if already set
	assert.Equal(t, existingID, user.ID)
}

func TestVideoModel_BeforeCreate(t *testing.T) {
	video := &VideoModel{
		OwnerID: "owner-123",
		Title:   "Test Video",
	}

	err := video.BeforeCreate(nil)
	assert.NoError(t, err)
	assert.NotEmpty(t, video.ID)
}

func TestSubscriptionModel_BeforeCreate(t *testing.T) {
	subscription := &SubscriptionModel{
		SubscriberID: "subscriber-123",
		ChannelID:    "channel-123",
	}

	err := subscription.BeforeCreate(nil)
	assert.NoError(t, err)
	assert.NotEmpty(t, subscription.ID)
}

func TestTableNames(t *testing.T) {
	assert.Equal(t, "users", UserModel{}.TableName())
	assert.Equal(t, "videos", VideoModel{}.TableName())
	assert.Equal(t, "subscriptions", SubscriptionModel{}.TableName())
	assert.Equal(t, "watch_history", WatchEntryModel{}.TableName())
}
