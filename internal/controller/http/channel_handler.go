package http

import (
	"net/http"

	"cliphub/internal/usecase"

	"github.com/gin-gonic/gin"
)

type ChannelHandler struct {
	channelUseCase usecase.ChannelUseCase
}

func NewChannelHandler(channelUseCase usecase.ChannelUseCase) *ChannelHandler {
	return &ChannelHandler{
		channelUseCase: channelUseCase,
	}
}

// GetChannelProfile godoc
// @Summary      Get a channel's public profile
// @Description  Public profile with subscriber counts; is_subscribed reflects the authenticated viewer when a token is sent
// @Tags         channels
// @Produce      json
// @Param        username path string true "Channel username"
// @Success      200  {object}  entity.ChannelProfile
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /users/channel/{username} [get]
func (h *ChannelHandler) GetChannelProfile(c *gin.Context) {
	profile, err := h.channelUseCase.GetChannelProfile(c.Param("username"), c.GetString("user_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// GetWatchHistory godoc
// @Summary      Get the current user's watch history
// @Description  Watch history in viewing order, each entry joined with the video and its owner's public profile
// @Tags         channels
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /users/watch-history [get]
func (h *ChannelHandler) GetWatchHistory(c *gin.Context) {
	items, err := h.channelUseCase.GetWatchHistory(c.GetString("user_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"watch_history": items, "count": len(items)})
}

// RecordWatch godoc
// @Summary      Record a watched video
// @Tags         channels
// @Produce      json
// @Security     BearerAuth
// @Param        video_id path string true "Video ID"
// @Success      201  {object}  map[string]string
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /users/watch-history/{video_id} [post]
func (h *ChannelHandler) RecordWatch(c *gin.Context) {
	if err := h.channelUseCase.RecordWatch(c.GetString("user_id"), c.Param("video_id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "watch recorded"})
}
