package persistent

import (
	"cliphub/internal/entity"
	"cliphub/internal/model"
)

func ToUserEntity(m *model.UserModel) *entity.User {
	if m == nil {
		return nil
	}

	return &entity.User{
		ID:            m.ID,
		Username:      m.Username,
		Email:         m.Email,
		FullName:      m.FullName,
		Password:      m.Password,
		AvatarURL:     m.AvatarURL,
		CoverImageURL: m.CoverImageURL,
		RefreshToken:  m.RefreshToken,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func ToUserModel(e *entity.User) *model.UserModel {
	if e == nil {
		return nil
	}

	return &model.UserModel{
		ID:            e.ID,
		Username:      e.Username,
		Email:         e.Email,
		FullName:      e.FullName,
		Password:      e.Password,
		AvatarURL:     e.AvatarURL,
		CoverImageURL: e.CoverImageURL,
		RefreshToken:  e.RefreshToken,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

func ToVideoEntity(m *model.VideoModel) *entity.Video {
	if m == nil {
		return nil
	}

	return &entity.Video{
		ID:           m.ID,
		OwnerID:      m.OwnerID,
		VideoURL:     m.VideoURL,
		ThumbnailURL: m.ThumbnailURL,
		Title:        m.Title,
		Description:  m.Description,
		Duration:     m.Duration,
		Views:        m.Views,
		IsPublished:  m.IsPublished,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
