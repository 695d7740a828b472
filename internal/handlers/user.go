package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/videosage-backend/internal/requestdata"
	"github.com/yungbote/videosage-backend/internal/services"
)

type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (uh *UserHandler) GetMe(c *gin.Context) {
	userID := requestdata.UserID(c.Request.Context())
	user, err := uh.userService.Get(c.Request.Context(), userID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"user": user})
}

func (uh *UserHandler) DeleteMe(c *gin.Context) {
	userID := requestdata.UserID(c.Request.Context())
	if err := uh.userService.Delete(c.Request.Context(), userID); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "account deleted"})
}
