package http

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"

	"cliphub/internal/entity"
	"cliphub/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	accessTokenCookie  = "accessToken"
	refreshTokenCookie = "refreshToken"
)

type AccountHandler struct {
	accountUseCase usecase.AccountUseCase
}

func NewAccountHandler(accountUseCase usecase.AccountUseCase) *AccountHandler {
	return &AccountHandler{
		accountUseCase: accountUseCase,
	}
}

type LoginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	User         *entity.User `json:"user"`
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type TokenPairResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
}

type UpdateAccountRequest struct {
	FullName string `json:"fullName" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
}

// Register godoc
// @Summary      Register a new user
// @Description  Register with full name, username, email, password, a required avatar image and an optional cover image
// @Tags         accounts
// @Accept       multipart/form-data
// @Produce      json
// @Param        fullName   formData string true  "Full name"
// @Param        username   formData string true  "Username"
// @Param        email      formData string true  "Email"
// @Param        password   formData string true  "Password"
// @Param        avatar     formData file   true  "Avatar image"
// @Param        coverImage formData file   false "Cover image"
// @Success      201  {object}  entity.User
// @Failure      400  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /users/register [post]
func (h *AccountHandler) Register(c *gin.Context) {
	input := usecase.RegisterInput{
		FullName: c.PostForm("fullName"),
		Username: c.PostForm("username"),
		Email:    c.PostForm("email"),
		Password: c.PostForm("password"),
	}

	if file, err := c.FormFile("avatar"); err == nil {
		upload, src, err := uploadInput(file, "avatars")
		if err != nil {
			respondError(c, usecase.ErrInternal)
			return
		}
		defer src.Close()
		input.Avatar = upload
	}

	if file, err := c.FormFile("coverImage"); err == nil {
		upload, src, err := uploadInput(file, "covers")
		if err != nil {
			respondError(c, usecase.ErrInternal)
			return
		}
		defer src.Close()
		input.CoverImage = upload
	}

	user, err := h.accountUseCase.Register(input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// Login godoc
// @Summary      Log in with username or email
// @Description  Authenticate and receive an access/refresh token pair, also set as httpOnly cookies
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Login credentials"
// @Success      200  {object}  LoginResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /users/login [post]
func (h *AccountHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, usecase.ErrMissingFields)
		return
	}

	user, accessToken, refreshToken, err := h.accountUseCase.Login(req.Username, req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	setAuthCookies(c, accessToken, refreshToken)
	c.JSON(http.StatusOK, LoginResponse{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	})
}

// RefreshTokens godoc
// @Summary      Exchange a refresh token for a new token pair
// @Description  Reads the refresh token from the cookie or the request body; the presented token is single-use
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        request body RefreshRequest false "Refresh token (when not sent as cookie)"
// @Success      200  {object}  TokenPairResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /users/refresh-token [post]
func (h *AccountHandler) RefreshTokens(c *gin.Context) {
	token, _ := c.Cookie(refreshTokenCookie)
	if token == "" {
		var req RefreshRequest
		if err := c.ShouldBindJSON(&req); err == nil {
			token = req.RefreshToken
		}
	}

	accessToken, refreshToken, err := h.accountUseCase.RefreshTokens(token)
	if err != nil {
		respondError(c, err)
		return
	}

	setAuthCookies(c, accessToken, refreshToken)
	c.JSON(http.StatusOK, TokenPairResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	})
}

// Logout godoc
// @Summary      Log out the current user
// @Description  Clears the stored refresh token and both session cookies
// @Tags         accounts
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  ErrorResponse
// @Router       /users/logout [post]
func (h *AccountHandler) Logout(c *gin.Context) {
	if err := h.accountUseCase.Logout(c.GetString("user_id")); err != nil {
		respondError(c, err)
		return
	}

	clearAuthCookies(c)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// Me godoc
// @Summary      Get the current user
// @Tags         accounts
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  entity.User
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /users/me [get]
func (h *AccountHandler) Me(c *gin.Context) {
	user, err := h.accountUseCase.CurrentUser(c.GetString("user_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// ChangePassword godoc
// @Summary      Change the current user's password
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body ChangePasswordRequest true "Old and new password"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /users/change-password [patch]
func (h *AccountHandler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, usecase.ErrMissingFields)
		return
	}

	if err := h.accountUseCase.ChangePassword(c.GetString("user_id"), req.OldPassword, req.NewPassword); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "password changed successfully"})
}

// UpdateAccount godoc
// @Summary      Update full name and email
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body UpdateAccountRequest true "New account details"
// @Success      200  {object}  entity.User
// @Failure      400  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Router       /users/update-account [patch]
func (h *AccountHandler) UpdateAccount(c *gin.Context) {
	var req UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, usecase.ErrMissingFields)
		return
	}

	user, err := h.accountUseCase.UpdateAccount(c.GetString("user_id"), req.FullName, req.Email)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateAvatar godoc
// @Summary      Replace the current user's avatar
// @Tags         accounts
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        avatar formData file true "Avatar image"
// @Success      200  {object}  entity.User
// @Failure      400  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /users/avatar [patch]
func (h *AccountHandler) UpdateAvatar(c *gin.Context) {
	file, err := c.FormFile("avatar")
	if err != nil {
		respondError(c, usecase.ErrFileRequired)
		return
	}

	upload, src, err := uploadInput(file, "avatars")
	if err != nil {
		respondError(c, usecase.ErrInternal)
		return
	}
	defer src.Close()

	user, err := h.accountUseCase.UpdateAvatar(c.GetString("user_id"), upload)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateCoverImage godoc
// @Summary      Replace the current user's cover image
// @Tags         accounts
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        coverImage formData file true "Cover image"
// @Success      200  {object}  entity.User
// @Failure      400  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /users/cover-image [patch]
func (h *AccountHandler) UpdateCoverImage(c *gin.Context) {
	file, err := c.FormFile("coverImage")
	if err != nil {
		respondError(c, usecase.ErrFileRequired)
		return
	}

	upload, src, err := uploadInput(file, "covers")
	if err != nil {
		respondError(c, usecase.ErrInternal)
		return
	}
	defer src.Close()

	user, err := h.accountUseCase.UpdateCoverImage(c.GetString("user_id"), upload)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func uploadInput(file *multipart.FileHeader, prefix string) (*usecase.UploadInput, multipart.File, error) {
	src, err := file.Open()
	if err != nil {
		return nil, nil, err
	}

	contentType := file.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key := fmt.Sprintf("%s/%s%s", prefix, uuid.New().String(), filepath.Ext(file.Filename))
	return &usecase.UploadInput{
		Reader:      src,
		Key:         key,
		ContentType: contentType,
	}, src, nil
}

// Session cookies: no max-age, httpOnly and secure per the session contract.
func setAuthCookies(c *gin.Context, accessToken, refreshToken string) {
	c.SetCookie(accessTokenCookie, accessToken, 0, "/", "", true, true)
	c.SetCookie(refreshTokenCookie, refreshToken, 0, "/", "", true, true)
}

func clearAuthCookies(c *gin.Context) {
	c.SetCookie(accessTokenCookie, "", -1, "/", "", true, true)
	c.SetCookie(refreshTokenCookie, "", -1, "/", "", true, true)
}
