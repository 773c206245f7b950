package entity

import "time"

// ChannelProfile is the public projection of a user viewed as a channel.
// Credential fields never enter this type.
type ChannelProfile struct {
	Username                  string `json:"username"`
	Email                     string `json:"email"`
	FullName                  string `json:"full_name"`
	AvatarURL                 string `json:"avatar_url"`
	CoverImageURL             string `json:"cover_image_url,omitempty"`
	SubscribersCount          int64  `json:"subscribers_count"`
	ChannelsSubscribedToCount int64  `json:"channels_subscribed_to_count"`
	IsSubscribed              bool   `json:"is_subscribed"`
}

// VideoOwner is the projection of a video's owner embedded in watch history.
type VideoOwner struct {
	Username  string `json:"username"`
	FullName  string `json:"full_name"`
	AvatarURL string `json:"avatar_url"`
}

type WatchHistoryItem struct {
	Video     *Video      `json:"video"`
	Owner     *VideoOwner `json:"owner"`
	WatchedAt time.Time   `json:"watched_at"`
}
