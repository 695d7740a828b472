package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/videosage-backend/internal/ingestion/extractor"
	"github.com/yungbote/videosage-backend/internal/pkg/logger"
	"github.com/yungbote/videosage-backend/internal/requestdata"
	"github.com/yungbote/videosage-backend/internal/services"
)

var errUploadedYouTube = errors.New("youtube sources are ingested by url, not upload")

type ContentHandler struct {
	log            *logger.Logger
	contentService services.ContentService
}

func NewContentHandler(log *logger.Logger, contentService services.ContentService) *ContentHandler {
	return &ContentHandler{
		log:            log.With("handler", "ContentHandler"),
		contentService: contentService,
	}
}

// IngestYouTube ingests a hosted video by URL.
func (ch *ContentHandler) IngestYouTube(c *gin.Context) {
	spaceID, err := uuid.Parse(c.Param("space_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	var req struct {
		URL   string `json:"url"`
		Title string `json:"title"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	title := req.Title
	if title == "" {
		title = req.URL
	}
	userID := requestdata.UserID(c.Request.Context())
	content, err := ch.contentService.Ingest(c.Request.Context(), userID, spaceID, title, extractor.KindYouTube, extractor.Source{
		URL: req.URL,
	})
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"content": content})
}

// IngestUpload ingests an uploaded file. The multipart form carries the
// file plus a "kind" field (video, pdf or image) and an optional
// "title"; the file is spooled to a temp path that lives for exactly
// this request.
func (ch *ContentHandler) IngestUpload(c *gin.Context) {
	spaceID, err := uuid.Parse(c.Param("space_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	kind, err := extractor.ParseSourceKind(c.PostForm("kind"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_kind", err)
		return
	}
	if kind == extractor.KindYouTube {
		RespondError(c, http.StatusBadRequest, "invalid_kind", errUploadedYouTube)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "missing_file", err)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "unreadable_file", err)
		return
	}
	defer file.Close()

	path, cleanup, err := extractor.SaveTemp(file, "videosage-upload-*")
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "spool_failed", err)
		return
	}
	defer cleanup()

	title := c.PostForm("title")
	if title == "" {
		title = fileHeader.Filename
	}

	userID := requestdata.UserID(c.Request.Context())
	content, err := ch.contentService.Ingest(c.Request.Context(), userID, spaceID, title, kind, extractor.Source{
		FilePath: path,
		MimeType: fileHeader.Header.Get("Content-Type"),
	})
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"content": content})
}

func (ch *ContentHandler) Get(c *gin.Context) {
	contentID, err := uuid.Parse(c.Param("content_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	userID := requestdata.UserID(c.Request.Context())
	content, err := ch.contentService.Get(c.Request.Context(), userID, contentID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"content": content})
}

func (ch *ContentHandler) List(c *gin.Context) {
	spaceID, err := uuid.Parse(c.Param("space_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	userID := requestdata.UserID(c.Request.Context())
	contents, err := ch.contentService.List(c.Request.Context(), userID, spaceID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"contents": contents})
}

func (ch *ContentHandler) Delete(c *gin.Context) {
	contentID, err := uuid.Parse(c.Param("content_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	userID := requestdata.UserID(c.Request.Context())
	if err := ch.contentService.Delete(c.Request.Context(), userID, contentID); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "content deleted"})
}
