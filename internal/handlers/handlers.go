package handlers

import (
	"errors"
	"net/http"
	"strconv"

	apperrors "gotix/internal/errors"
	"gotix/internal/models"
	"gotix/internal/service"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	services *service.Services
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{services: services}
}

// ok writes the standard success envelope
func ok(c *gin.Context, status int, message string, data any) {
	c.JSON(status, models.Response{Message: message, Data: data})
}

// page writes the list envelope with pagination meta
func page(c *gin.Context, message string, data any, meta models.PageMeta) {
	c.JSON(http.StatusOK, models.PaginatedResponse{
		Message:    message,
		Data:       data,
		Pagination: meta,
	})
}

// fail maps a service error onto an HTTP status. Unknown errors become 500
// with a generic message so internals never leak to clients.
func fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"

	switch {
	case errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, apperrors.ErrInsufficientStock),
		apperrors.IsInvalidTransition(err):
		status, message = http.StatusBadRequest, err.Error()
	case errors.Is(err, apperrors.ErrNotFound):
		status, message = http.StatusNotFound, err.Error()
	case errors.Is(err, apperrors.ErrUnauthorized):
		status, message = http.StatusUnauthorized, err.Error()
	case errors.Is(err, apperrors.ErrForbidden):
		status, message = http.StatusForbidden, err.Error()
	}

	if status == http.StatusInternalServerError {
		_ = c.Error(err)
	}

	c.JSON(status, models.Response{Message: message, Data: nil})
}

// bindError reports a malformed request body
func bindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, models.Response{
		Message: "invalid request body: " + err.Error(),
		Data:    nil,
	})
}

// pageQuery reads the common listing parameters
func pageQuery(c *gin.Context) models.PageQuery {
	var q models.PageQuery
	q.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	q.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(models.DefaultPageLimit)))
	q.Search = c.Query("search")
	q.Normalize()
	return q
}

// idParam parses the numeric :id path parameter
func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, models.Response{Message: "invalid id", Data: nil})
		return 0, false
	}
	return id, true
}
