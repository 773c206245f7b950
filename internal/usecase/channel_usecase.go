package usecase

import (
	"errors"
	"strings"

	"cliphub/internal/entity"
	"cliphub/internal/repo/persistent"
	"cliphub/pkg/logger"
	"cliphub/pkg/queue"

	"gorm.io/gorm"
)

type ChannelUseCase interface {
	GetChannelProfile(username, viewerID string) (*entity.ChannelProfile, error)
	GetWatchHistory(userID string) ([]*entity.WatchHistoryItem, error)
	RecordWatch(userID, videoID string) error
}

type channelUseCase struct {
	userRepo    persistent.UserRepository
	channelRepo persistent.ChannelRepository
	watchRepo   persistent.WatchHistoryRepository
	events      EventPublisher
	logger      *logger.Logger
}

func NewChannelUseCase(
	userRepo persistent.UserRepository,
	channelRepo persistent.ChannelRepository,
	watchRepo persistent.WatchHistoryRepository,
	events EventPublisher,
	logger *logger.Logger,
) ChannelUseCase {
	return &channelUseCase{
		userRepo:    userRepo,
		channelRepo: channelRepo,
		watchRepo:   watchRepo,
		events:      events,
		logger:      logger,
	}
}

func (uc *channelUseCase) GetChannelProfile(username, viewerID string) (*entity.ChannelProfile, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return nil, ErrMissingFields
	}

	user, err := uc.userRepo.GetByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChannelNotFound
		}
		uc.logger.Error("Failed to load channel %s: %v", username, err)
		return nil, ErrInternal
	}

	subscribers, err := uc.channelRepo.CountSubscribers(user.ID)
	if err != nil {
		uc.logger.Error("Failed to count subscribers for %s: %v", username, err)
		return nil, ErrInternal
	}

	subscribedTo, err := uc.channelRepo.CountSubscriptions(user.ID)
	if err != nil {
		uc.logger.Error("Failed to count subscriptions for %s: %v", username, err)
		return nil, ErrInternal
	}

	// Unauthenticated viewers are never subscribed.
	isSubscribed := false
	if viewerID != "" {
		isSubscribed, err = uc.channelRepo.IsSubscribed(viewerID, user.ID)
		if err != nil {
			uc.logger.Error("Failed to check subscription for viewer %s: %v", viewerID, err)
			return nil, ErrInternal
		}
	}

	return &entity.ChannelProfile{
		Username:                  user.Username,
		Email:                     user.Email,
		FullName:                  user.FullName,
		AvatarURL:                 user.AvatarURL,
		CoverImageURL:             user.CoverImageURL,
		SubscribersCount:          subscribers,
		ChannelsSubscribedToCount: subscribedTo,
		IsSubscribed:              isSubscribed,
	}, nil
}

// GetWatchHistory distinguishes a vanished user (stale token, 404) from an
// existing user who has watched nothing (empty list).
func (uc *channelUseCase) GetWatchHistory(userID string) ([]*entity.WatchHistoryItem, error) {
	if _, err := uc.userRepo.GetByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		uc.logger.Error("Failed to load user %s: %v", userID, err)
		return nil, ErrInternal
	}

	items, err := uc.watchRepo.ListForUser(userID)
	if err != nil {
		uc.logger.Error("Failed to load watch history for user %s: %v", userID, err)
		return nil, ErrInternal
	}

	return items, nil
}

func (uc *channelUseCase) RecordWatch(userID, videoID string) error {
	video, err := uc.watchRepo.GetVideo(videoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrVideoNotFound
		}
		uc.logger.Error("Failed to load video %s: %v", videoID, err)
		return ErrInternal
	}
	if !video.IsPublished {
		return ErrVideoNotFound
	}

	if err := uc.watchRepo.Append(userID, videoID); err != nil {
		uc.logger.Error("Failed to append watch entry for user %s: %v", userID, err)
		return ErrInternal
	}

	// View counting is best-effort; a watched video already made it into the
	// history.
	if err := uc.watchRepo.IncrementViews(videoID); err != nil {
		uc.logger.Warn("Failed to increment views for video %s: %v", videoID, err)
	}

	if uc.events != nil {
		go func() {
			event := map[string]interface{}{
				"type":     queue.EventVideoWatched,
				"user_id":  userID,
				"video_id": videoID,
			}
			if err := uc.events.PublishAccountEvent(event); err != nil {
				uc.logger.Error("Failed to publish watch event: %v", err)
			}
		}()
	}

	return nil
}
