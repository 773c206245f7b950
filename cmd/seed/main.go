package main

import (
	"fmt"

	"cliphub/internal/model"
	"cliphub/pkg/config"
	"cliphub/pkg/database"
	"cliphub/pkg/logger"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seeds a local database with a couple of channels, videos, subscription
// edges and watch history so the aggregation endpoints have something to
// chew on.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.New()
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	if err := seedDatabase(db); err != nil {
		log.Error("Failed to seed database: %v", err)
		panic(err)
	}

	log.Info("Database seeded successfully!")
}

func seedDatabase(db *gorm.DB) error {
	password, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	users := []*model.UserModel{
		{
			ID:        uuid.New().String(),
			Username:  "alice",
			Email:     "alice@example.com",
			FullName:  "Alice Liddell",
			Password:  string(password),
			AvatarURL: "https://cliphub-media.s3.us-east-1.amazonaws.com/avatars/alice.png",
		},
		{
			ID:        uuid.New().String(),
			Username:  "bob",
			Email:     "bob@example.com",
			FullName:  "Bob Gray",
			Password:  string(password),
			AvatarURL: "https://cliphub-media.s3.us-east-1.amazonaws.com/avatars/bob.png",
		},
		{
			ID:        uuid.New().String(),
			Username:  "carol",
			Email:     "carol@example.com",
			FullName:  "Carol Danvers",
			Password:  string(password),
			AvatarURL: "https://cliphub-media.s3.us-east-1.amazonaws.com/avatars/carol.png",
		},
	}
	for _, user := range users {
		if err := db.Create(user).Error; err != nil {
			return fmt.Errorf("failed to create user %s: %w", user.Username, err)
		}
	}

	videos := []*model.VideoModel{
		{
			ID:           uuid.New().String(),
			OwnerID:      users[0].ID,
			VideoURL:     "https://cliphub-media.s3.us-east-1.amazonaws.com/videos/intro.mp4",
			ThumbnailURL: "https://cliphub-media.s3.us-east-1.amazonaws.com/thumbnails/intro.jpg",
			Title:        "Channel intro",
			Description:  "Welcome to the channel",
			Duration:     42.5,
			IsPublished:  true,
		},
		{
			ID:           uuid.New().String(),
			OwnerID:      users[1].ID,
			VideoURL:     "https://cliphub-media.s3.us-east-1.amazonaws.com/videos/cooking.mp4",
			ThumbnailURL: "https://cliphub-media.s3.us-east-1.amazonaws.com/thumbnails/cooking.jpg",
			Title:        "Cooking with Bob",
			Description:  "Episode one",
			Duration:     615,
			IsPublished:  true,
		},
	}
	for _, video := range videos {
		if err := db.Create(video).Error; err != nil {
			return fmt.Errorf("failed to create video %s: %w", video.Title, err)
		}
	}

	// bob and carol subscribe to alice; alice subscribes to bob.
	subscriptions := []*model.SubscriptionModel{
		{ID: uuid.New().String(), SubscriberID: users[1].ID, ChannelID: users[0].ID},
		{ID: uuid.New().String(), SubscriberID: users[2].ID, ChannelID: users[0].ID},
		{ID: uuid.New().String(), SubscriberID: users[0].ID, ChannelID: users[1].ID},
	}
	for _, subscription := range subscriptions {
		if err := db.Create(subscription).Error; err != nil {
			return fmt.Errorf("failed to create subscription: %w", err)
		}
	}

	watchEntries := []*model.WatchEntryModel{
		{UserID: users[2].ID, VideoID: videos[0].ID},
		{UserID: users[2].ID, VideoID: videos[1].ID},
		{UserID: users[2].ID, VideoID: videos[0].ID}, // rewatch, duplicates are fine
	}
	for _, entry := range watchEntries {
		if err := db.Create(entry).Error; err != nil {
			return fmt.Errorf("failed to create watch entry: %w", err)
		}
	}

	return nil
}
