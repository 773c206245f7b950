package persistent

import (
	"database/sql"

	"cliphub/internal/entity"
	"cliphub/internal/model"

	"gorm.io/gorm"
)

type WatchHistoryRepository interface {
	GetVideo(videoID string) (*entity.Video, error)
	Append(userID, videoID string) error
	IncrementViews(videoID string) error
	ListForUser(userID string) ([]*entity.WatchHistoryItem, error)
}

type watchHistoryRepository struct {
	db *gorm.DB
}

func NewWatchHistoryRepository(db *gorm.DB) WatchHistoryRepository {
	return &watchHistoryRepository{db: db}
}

func (r *watchHistoryRepository) GetVideo(videoID string) (*entity.Video, error) {
	var videoModel model.VideoModel
	if err := r.db.Where("id = ?", videoID).First(&videoModel).Error; err != nil {
		return nil, err
	}
	return ToVideoEntity(&videoModel), nil
}

func (r *watchHistoryRepository) Append(userID, videoID string) error {
	entry := &model.WatchEntryModel{
		UserID:  userID,
		VideoID: videoID,
	}
	return r.db.Create(entry).Error
}

func (r *watchHistoryRepository) IncrementViews(videoID string) error {
	return r.db.Model(&model.VideoModel{}).
		Where("id = ?", videoID).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}

// ListForUser returns the watch history in insertion order, each entry joined
// with its video and the video owner's public fields.
func (r *watchHistoryRepository) ListForUser(userID string) ([]*entity.WatchHistoryItem, error) {
	rows, err := r.db.Table("watch_history").
		Select("watch_history.watched_at, "+
			"videos.id, videos.owner_id, videos.video_url, videos.thumbnail_url, videos.title, videos.description, videos.duration, videos.views, videos.is_published, videos.created_at, videos.updated_at, "+
			"users.username, users.full_name, users.avatar_url").
		Joins("JOIN videos ON videos.id = watch_history.video_id AND videos.deleted_at IS NULL").
		Joins("JOIN users ON users.id = videos.owner_id AND users.deleted_at IS NULL").
		Where("watch_history.user_id = ?", userID).
		Order("watch_history.id ASC").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanWatchHistoryRows(rows), nil
}

func scanWatchHistoryRows(rows *sql.Rows) []*entity.WatchHistoryItem {
	items := make([]*entity.WatchHistoryItem, 0)
	for rows.Next() {
		var watchedAt, createdAt, updatedAt sql.NullTime
		var videoID, ownerID, videoURL, thumbnailURL, title, description sql.NullString
		var duration sql.NullFloat64
		var views sql.NullInt64
		var isPublished sql.NullBool
		var ownerUsername, ownerFullName, ownerAvatarURL sql.NullString

		if err := rows.Scan(
			&watchedAt,
			&videoID, &ownerID, &videoURL, &thumbnailURL, &title, &description, &duration, &views, &isPublished, &createdAt, &updatedAt,
			&ownerUsername, &ownerFullName, &ownerAvatarURL,
		); err != nil {
			continue
		}

		items = append(items, &entity.WatchHistoryItem{
			Video: &entity.Video{
				ID:           videoID.String,
				OwnerID:      ownerID.String,
				VideoURL:     videoURL.String,
				ThumbnailURL: thumbnailURL.String,
				Title:        title.String,
				Description:  description.String,
				Duration:     duration.Float64,
				Views:        views.Int64,
				IsPublished:  isPublished.Bool,
				CreatedAt:    createdAt.Time,
				UpdatedAt:    updatedAt.Time,
			},
			Owner: &entity.VideoOwner{
				Username:  ownerUsername.String,
				FullName:  ownerFullName.String,
				AvatarURL: ownerAvatarURL.String,
			},
			WatchedAt: watchedAt.Time,
		})
	}

	return items
}
