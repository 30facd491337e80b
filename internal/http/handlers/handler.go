package handlers

import (
	"errors"
	"net/http"

	"todai/internal/domain"
	"todai/internal/logger"
	"todai/internal/service"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Service *service.TaskService
}

func NewHandler(svc *service.TaskService) *Handler {
	return &Handler{Service: svc}
}

// respondError translates a tagged domain error into the wire error shape
// {message, errors?}. Anything unclassified becomes a generic 500 so internal
// details never leak.
func respondError(c *gin.Context, err error) {
	var derr *domain.Error
	if !errors.As(err, &derr) {
		logger.Error("unhandled error", "path", c.FullPath(), "error", err)
		derr = domain.NewInternalError()
	}

	body := gin.H{"message": derr.Message}
	if len(derr.Fields) > 0 {
		body["errors"] = derr.Fields
	}
	c.JSON(derr.Kind.HTTPStatus(), body)
}

func badRequestBody(c *gin.Context) {
	c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
}
