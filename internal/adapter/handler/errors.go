package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/srgjo27/gercamp/internal/core/domain"
)

type errorBody struct {
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Fields  []domain.FieldError `json:"fields,omitempty"`
}

func statusFor(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindValidation:
		return http.StatusBadRequest
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindForbidden:
		return http.StatusForbidden
	case domain.KindConflict:
		return http.StatusConflict
	case domain.KindInvalidTransition:
		return http.StatusUnprocessableEntity
	case domain.KindUnauthenticated:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders business errors as they are and hides everything else
// behind a generic 500.
func writeError(c *gin.Context, log *zap.Logger, err error) {
	var de *domain.Error
	if errors.As(err, &de) {
		c.AbortWithStatusJSON(statusFor(de.Kind), gin.H{"error": errorBody{
			Code:    de.Kind.String(),
			Message: de.Message,
			Fields:  de.Fields,
		}})
		return
	}

	log.Error("request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": errorBody{
		Code:    "INTERNAL",
		Message: "internal server error",
	}})
}

func badBody(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": errorBody{
		Code:    domain.KindValidation.String(),
		Message: "invalid request: " + err.Error(),
	}})
}
