package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/videosage-backend/internal/generation"
	"github.com/yungbote/videosage-backend/internal/ingestion/extractor"
	pkgerr "github.com/yungbote/videosage-backend/internal/pkg/errors"
	"github.com/yungbote/videosage-backend/internal/platform/apierr"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// RespondServiceError maps a service-layer error onto the wire. The
// sentinel checks run in resolution order, so a missing resource stays
// a 404 no matter who asked.
func RespondServiceError(c *gin.Context, err error) {
	var apiErr *apierr.Error
	if errors.As(err, &apiErr) {
		RespondError(c, apiErr.Status, apiErr.Code, apiErr.Err)
		return
	}

	switch {
	case errors.Is(err, pkgerr.ErrNotFound):
		RespondError(c, http.StatusNotFound, "not_found", err)
	case errors.Is(err, pkgerr.ErrForbidden):
		RespondError(c, http.StatusForbidden, "forbidden", err)
	case errors.Is(err, pkgerr.ErrUnauthorized):
		RespondError(c, http.StatusUnauthorized, "unauthorized", err)
	case errors.Is(err, pkgerr.ErrEmailTaken):
		RespondError(c, http.StatusConflict, "email_taken", err)
	case errors.Is(err, pkgerr.ErrInvalidArgument):
		RespondError(c, http.StatusBadRequest, "invalid_argument", err)
	default:
		if kind := extractor.KindOf(err); kind != "" {
			respondExtractorError(c, kind, err)
			return
		}
		if kind := generation.KindOf(err); kind != "" {
			respondGenerationError(c, kind, err)
			return
		}
		RespondError(c, http.StatusInternalServerError, "internal", err)
	}
}

func respondExtractorError(c *gin.Context, kind extractor.ErrorKind, err error) {
	switch kind {
	case extractor.KindUnreachableSource:
		RespondError(c, http.StatusBadGateway, string(kind), err)
	case extractor.KindUnsupportedFormat:
		RespondError(c, http.StatusUnsupportedMediaType, string(kind), err)
	case extractor.KindEmptyResult:
		RespondError(c, http.StatusUnprocessableEntity, string(kind), err)
	default:
		RespondError(c, http.StatusInternalServerError, string(kind), err)
	}
}

func respondGenerationError(c *gin.Context, kind generation.ErrorKind, err error) {
	switch kind {
	case generation.KindTimeout:
		RespondError(c, http.StatusGatewayTimeout, string(kind), err)
	case generation.KindBackendFailure, generation.KindUnparseableOutput:
		RespondError(c, http.StatusBadGateway, string(kind), err)
	default:
		RespondError(c, http.StatusInternalServerError, string(kind), err)
	}
}
