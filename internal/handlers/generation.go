package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/videosage-backend/internal/generation"
	"github.com/yungbote/videosage-backend/internal/requestdata"
	"github.com/yungbote/videosage-backend/internal/services"
)

type GenerationHandler struct {
	generationService services.GenerationService
}

func NewGenerationHandler(generationService services.GenerationService) *GenerationHandler {
	return &GenerationHandler{generationService: generationService}
}

// GetOrGenerate serves both the cache hit and the cache fill. The
// artifact kind comes from the path, so requesting the same artifact
// twice always lands on the same row.
func (gh *GenerationHandler) GetOrGenerate(c *gin.Context) {
	contentID, err := uuid.Parse(c.Param("content_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	kind, err := generation.ParseKind(c.Param("kind"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_kind", err)
		return
	}
	userID := requestdata.UserID(c.Request.Context())
	gen, err := gh.generationService.GetOrGenerate(c.Request.Context(), userID, contentID, kind)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"generation": gen})
}

func (gh *GenerationHandler) List(c *gin.Context) {
	contentID, err := uuid.Parse(c.Param("content_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	userID := requestdata.UserID(c.Request.Context())
	gens, err := gh.generationService.List(c.Request.Context(), userID, contentID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"generations": gens})
}

// Chat answers one message grounded in the content's transcript. The
// client replays whatever history it wants the model to see; nothing
// is stored server side.
func (gh *GenerationHandler) Chat(c *gin.Context) {
	contentID, err := uuid.Parse(c.Param("content_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	var req struct {
		Message string            `json:"message"`
		History []generation.Turn `json:"history"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	userID := requestdata.UserID(c.Request.Context())
	turn, err := gh.generationService.ChatTurn(c.Request.Context(), userID, contentID, req.Message, req.History)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"turn": turn})
}
