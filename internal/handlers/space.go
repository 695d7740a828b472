package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/videosage-backend/internal/requestdata"
	"github.com/yungbote/videosage-backend/internal/services"
)

type SpaceHandler struct {
	spaceService services.SpaceService
}

func NewSpaceHandler(spaceService services.SpaceService) *SpaceHandler {
	return &SpaceHandler{spaceService: spaceService}
}

func (sh *SpaceHandler) Create(c *gin.Context) {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	userID := requestdata.UserID(c.Request.Context())
	space, err := sh.spaceService.Create(c.Request.Context(), userID, req.Name, req.Description)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"space": space})
}

func (sh *SpaceHandler) Get(c *gin.Context) {
	spaceID, err := uuid.Parse(c.Param("space_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	userID := requestdata.UserID(c.Request.Context())
	space, err := sh.spaceService.Get(c.Request.Context(), userID, spaceID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"space": space})
}

func (sh *SpaceHandler) List(c *gin.Context) {
	userID := requestdata.UserID(c.Request.Context())
	spaces, err := sh.spaceService.List(c.Request.Context(), userID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"spaces": spaces})
}

func (sh *SpaceHandler) Update(c *gin.Context) {
	spaceID, err := uuid.Parse(c.Param("space_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	userID := requestdata.UserID(c.Request.Context())
	space, err := sh.spaceService.Update(c.Request.Context(), userID, spaceID, req.Name, req.Description)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"space": space})
}

func (sh *SpaceHandler) Delete(c *gin.Context) {
	spaceID, err := uuid.Parse(c.Param("space_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	userID := requestdata.UserID(c.Request.Context())
	if err := sh.spaceService.Delete(c.Request.Context(), userID, spaceID); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "space deleted"})
}
