package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/feedbackhub/internal/common"
	"github.com/gin-gonic/gin"
)

type errorResponse struct {
	Detail string `json:"detail"`
}

// statusFor maps service errors onto HTTP statuses; anything unrecognized
// is a 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, common.ErrorUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, common.ErrorForbidden):
		return http.StatusForbidden
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound
	case errors.Is(err, common.ErrorInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, common.ErrorAlreadyExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// abortWithError writes {"detail": ...}. Internal errors are logged and
// replaced by a generic message.
func (s *HTTPServer) abortWithError(c *gin.Context, err error) {
	status := statusFor(err)
	detail := err.Error()

	if status == http.StatusUnauthorized {
		c.Header("WWW-Authenticate", "Bearer")
	}
	if status == http.StatusInternalServerError {
		s.logger.Error(c.Request.Context(), "request failed",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"error", err,
		)
		detail = "internal server error"
	}

	c.AbortWithStatusJSON(status, errorResponse{Detail: detail})
}

func (s *HTTPServer) abortWithValidation(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusUnprocessableEntity, errorResponse{Detail: err.Error()})
}
