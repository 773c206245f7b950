package usecase

import (
	"errors"
	"strings"

	"cliphub/internal/entity"
	"cliphub/internal/repo/persistent"
	"cliphub/pkg/jwt"
	"cliphub/pkg/logger"
	"cliphub/pkg/queue"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegisterInput struct {
	FullName   string
	Username   string
	Email      string
	Password   string
	Avatar     *UploadInput
	CoverImage *UploadInput
}

type AccountUseCase interface {
	Register(input RegisterInput) (*entity.User, error)
	Login(username, email, password string) (*entity.User, string, string, error)
	RefreshTokens(refreshToken string) (string, string, error)
	Logout(userID string) error
	CurrentUser(userID string) (*entity.User, error)
	ChangePassword(userID, oldPassword, newPassword string) error
	UpdateAccount(userID, fullName, email string) (*entity.User, error)
	UpdateAvatar(userID string, file *UploadInput) (*entity.User, error)
	UpdateCoverImage(userID string, file *UploadInput) (*entity.User, error)
}

type accountUseCase struct {
	userRepo   persistent.UserRepository
	jwtService *jwt.Service
	storage    MediaStorage
	events     EventPublisher
	logger     *logger.Logger
}

func NewAccountUseCase(
	userRepo persistent.UserRepository,
	jwtService *jwt.Service,
	storage MediaStorage,
	events EventPublisher,
	logger *logger.Logger,
) AccountUseCase {
	return &accountUseCase{
		userRepo:   userRepo,
		jwtService: jwtService,
		storage:    storage,
		events:     events,
		logger:     logger,
	}
}

func (uc *accountUseCase) Register(input RegisterInput) (*entity.User, error) {
	fullName := strings.TrimSpace(input.FullName)
	username := strings.ToLower(strings.TrimSpace(input.Username))
	email := strings.ToLower(strings.TrimSpace(input.Email))
	password := strings.TrimSpace(input.Password)

	if fullName == "" || username == "" || email == "" || password == "" {
		return nil, ErrMissingFields
	}

	// Friendly conflict answer for the common case; the racing case is
	// caught below by the unique indexes.
	_, err := uc.userRepo.GetByUsernameOrEmail(username, email)
	if err == nil {
		return nil, ErrUserExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		uc.logger.Error("Failed to check existing user: %v", err)
		return nil, ErrInternal
	}

	if input.Avatar == nil {
		return nil, ErrFileRequired
	}

	avatarURL, err := uc.storage.UploadFile(input.Avatar.Key, input.Avatar.Reader, input.Avatar.ContentType)
	if err != nil || avatarURL == "" {
		uc.logger.Error("Failed to upload avatar: %v", err)
		return nil, ErrUploadFailed
	}

	// The cover image is optional and its upload best-effort.
	coverImageURL := ""
	if input.CoverImage != nil {
		coverImageURL, err = uc.storage.UploadFile(input.CoverImage.Key, input.CoverImage.Reader, input.CoverImage.ContentType)
		if err != nil {
			uc.logger.Warn("Failed to upload cover image: %v", err)
			coverImageURL = ""
		}
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		uc.logger.Error("Failed to hash password: %v", err)
		return nil, ErrInternal
	}

	user := &entity.User{
		Username:      username,
		Email:         email,
		FullName:      fullName,
		Password:      string(hashedPassword),
		AvatarURL:     avatarURL,
		CoverImageURL: coverImageURL,
	}

	if err := uc.userRepo.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUserExists
		}
		uc.logger.Error("Failed to create user: %v", err)
		return nil, ErrInternal
	}

	// Sanity re-read; a user we cannot read back is a server-side failure.
	created, err := uc.userRepo.GetByID(user.ID)
	if err != nil {
		uc.logger.Error("Failed to load user %s after create: %v", user.ID, err)
		return nil, ErrInternal
	}

	uc.publishEvent(map[string]interface{}{
		"type":     queue.EventUserRegistered,
		"user_id":  created.ID,
		"username": created.Username,
	})

	created.Sanitize()
	return created, nil
}

func (uc *accountUseCase) Login(username, email, password string) (*entity.User, string, string, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	email = strings.ToLower(strings.TrimSpace(email))

	if (username == "" && email == "") || password == "" {
		return nil, "", "", ErrMissingFields
	}

	user, err := uc.userRepo.GetByUsernameOrEmail(username, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", "", ErrUserNotFound
		}
		uc.logger.Error("Failed to look up user on login: %v", err)
		return nil, "", "", ErrInternal
	}

	// A malformed stored digest is treated the same as a wrong password.
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", "", ErrInvalidCredentials
	}

	accessToken, refreshToken, err := uc.generateTokenPair(user.ID)
	if err != nil {
		return nil, "", "", err
	}

	user.Sanitize()
	return user, accessToken, refreshToken, nil
}

func (uc *accountUseCase) RefreshTokens(refreshToken string) (string, string, error) {
	if refreshToken == "" {
		return "", "", ErrInvalidRefreshToken
	}

	claims, err := uc.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		uc.logger.Warn("Refresh token rejected: %v", err)
		return "", "", ErrInvalidRefreshToken
	}

	user, err := uc.userRepo.GetByID(claims.UserID)
	if err != nil {
		return "", "", ErrInvalidRefreshToken
	}

	// Rotation check: only the most recently issued refresh token is
	// accepted. A superseded token means replay or a logged-out session.
	if user.RefreshToken != refreshToken {
		return "", "", ErrInvalidRefreshToken
	}

	return uc.generateTokenPair(user.ID)
}

func (uc *accountUseCase) Logout(userID string) error {
	// Clearing an already-empty token is fine.
	if err := uc.userRepo.UpdateRefreshToken(userID, ""); err != nil {
		uc.logger.Error("Failed to clear refresh token for user %s: %v", userID, err)
		return ErrInternal
	}
	return nil
}

func (uc *accountUseCase) CurrentUser(userID string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		uc.logger.Error("Failed to load user %s: %v", userID, err)
		return nil, ErrInternal
	}
	user.Sanitize()
	return user, nil
}

func (uc *accountUseCase) ChangePassword(userID, oldPassword, newPassword string) error {
	if strings.TrimSpace(oldPassword) == "" || strings.TrimSpace(newPassword) == "" {
		return ErrMissingFields
	}

	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		uc.logger.Error("Failed to load user %s: %v", userID, err)
		return ErrInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)); err != nil {
		return ErrInvalidPassword
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		uc.logger.Error("Failed to hash password: %v", err)
		return ErrInternal
	}

	if err := uc.userRepo.UpdatePassword(userID, string(hashed)); err != nil {
		uc.logger.Error("Failed to update password for user %s: %v", userID, err)
		return ErrInternal
	}

	return nil
}

func (uc *accountUseCase) UpdateAccount(userID, fullName, email string) (*entity.User, error) {
	fullName = strings.TrimSpace(fullName)
	email = strings.ToLower(strings.TrimSpace(email))

	if fullName == "" || email == "" {
		return nil, ErrMissingFields
	}

	if err := uc.userRepo.UpdateDetails(userID, fullName, email); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUserExists
		}
		uc.logger.Error("Failed to update account for user %s: %v", userID, err)
		return nil, ErrInternal
	}

	return uc.CurrentUser(userID)
}

func (uc *accountUseCase) UpdateAvatar(userID string, file *UploadInput) (*entity.User, error) {
	return uc.updateMedia(userID, file, func(u *entity.User) string { return u.AvatarURL }, uc.userRepo.UpdateAvatarURL)
}

func (uc *accountUseCase) UpdateCoverImage(userID string, file *UploadInput) (*entity.User, error) {
	return uc.updateMedia(userID, file, func(u *entity.User) string { return u.CoverImageURL }, uc.userRepo.UpdateCoverImageURL)
}

func (uc *accountUseCase) updateMedia(
	userID string,
	file *UploadInput,
	currentURL func(*entity.User) string,
	persistURL func(id, url string) error,
) (*entity.User, error) {
	if file == nil {
		return nil, ErrFileRequired
	}

	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		uc.logger.Error("Failed to load user %s: %v", userID, err)
		return nil, ErrInternal
	}

	// Best-effort cleanup of the asset being replaced.
	if old := currentURL(user); old != "" {
		if key := uc.storage.KeyFromURL(old); key != "" {
			if err := uc.storage.DeleteFile(key); err != nil {
				uc.logger.Warn("Failed to delete old media %s: %v", key, err)
			}
		}
	}

	url, err := uc.storage.UploadFile(file.Key, file.Reader, file.ContentType)
	if err != nil || url == "" {
		uc.logger.Error("Failed to upload media for user %s: %v", userID, err)
		return nil, ErrUploadFailed
	}

	if err := persistURL(userID, url); err != nil {
		uc.logger.Error("Failed to persist media URL for user %s: %v", userID, err)
		return nil, ErrInternal
	}

	return uc.CurrentUser(userID)
}

// generateTokenPair loads the user, issues both tokens and persists the new
// refresh token so previous ones stop working. Internal causes are logged
// here and collapsed to ErrTokenGeneration for callers.
func (uc *accountUseCase) generateTokenPair(userID string) (string, string, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", "", ErrUserNotFound
		}
		uc.logger.Error("Token generation: failed to load user %s: %v", userID, err)
		return "", "", ErrTokenGeneration
	}

	accessToken, err := uc.jwtService.GenerateAccessToken(user.ID, user.Email, user.Username, user.FullName)
	if err != nil || accessToken == "" {
		uc.logger.Error("Token generation: access token for user %s: %v", userID, err)
		return "", "", ErrTokenGeneration
	}

	refreshToken, err := uc.jwtService.GenerateRefreshToken(user.ID)
	if err != nil || refreshToken == "" {
		uc.logger.Error("Token generation: refresh token for user %s: %v", userID, err)
		return "", "", ErrTokenGeneration
	}

	if err := uc.userRepo.UpdateRefreshToken(user.ID, refreshToken); err != nil {
		uc.logger.Error("Token generation: failed to persist refresh token for user %s: %v", userID, err)
		return "", "", ErrTokenGeneration
	}

	return accessToken, refreshToken, nil
}

func (uc *accountUseCase) publishEvent(event map[string]interface{}) {
	if uc.events == nil {
		return
	}
	go func() {
		if err := uc.events.PublishAccountEvent(event); err != nil {
			uc.logger.Error("Failed to publish account event: %v", err)
		}
	}()
}
