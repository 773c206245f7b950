package persistent

import (
	"cliphub/internal/entity"
	"cliphub/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByUsername(username string) (*entity.User, error)
	GetByUsernameOrEmail(username, email string) (*entity.User, error)
	UpdateDetails(id, fullName, email string) error
	UpdatePassword(id, passwordHash string) error
	UpdateAvatarURL(id, url string) error
	UpdateCoverImageURL(id, url string) error
	UpdateRefreshToken(id, token string) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *entity.User) error {
	userModel := ToUserModel(user)
	if userModel.ID == "" {
		userModel.ID = uuid.New().String()
	}
	if err := r.db.Create(userModel).Error; err != nil {
		return err
	}
	*user = *ToUserEntity(userModel)
	return nil
}

func (r *userRepository) GetByID(id string) (*entity.User, error) {
	var userModel model.UserModel
	if err := r.db.Where("id = ?", id).First(&userModel).Error; err != nil {
		return nil, err
	}
	return ToUserEntity(&userModel), nil
}

func (r *userRepository) GetByUsername(username string) (*entity.User, error) {
	var userModel model.UserModel
	if err := r.db.Where("username = ?", username).First(&userModel).Error; err != nil {
		return nil, err
	}
	return ToUserEntity(&userModel), nil
}

func (r *userRepository) GetByUsernameOrEmail(username, email string) (*entity.User, error) {
	var userModel model.UserModel
	if err := r.db.Where("username = ? OR email = ?", username, email).First(&userModel).Error; err != nil {
		return nil, err
	}
	return ToUserEntity(&userModel), nil
}

func (r *userRepository) UpdateDetails(id, fullName, email string) error {
	return r.db.Model(&model.UserModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"full_name": fullName, "email": email}).Error
}

// The single-column updates below intentionally bypass the full record:
// token and credential writes must not re-trigger model-level hooks or touch
// any other field.

func (r *userRepository) UpdatePassword(id, passwordHash string) error {
	return r.db.Model(&model.UserModel{}).Where("id = ?", id).Update("password", passwordHash).Error
}

func (r *userRepository) UpdateAvatarURL(id, url string) error {
	return r.db.Model(&model.UserModel{}).Where("id = ?", id).Update("avatar_url", url).Error
}

func (r *userRepository) UpdateCoverImageURL(id, url string) error {
	return r.db.Model(&model.UserModel{}).Where("id = ?", id).Update("cover_image_url", url).Error
}

func (r *userRepository) UpdateRefreshToken(id, token string) error {
	return r.db.Model(&model.UserModel{}).Where("id = ?", id).Update("refresh_token", token).Error
}
