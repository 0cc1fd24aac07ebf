package handlers

import (
	"net/http"
	"strconv"

	apperrors "gotix/internal/errors"
	"gotix/internal/middleware"
	"gotix/internal/models"

	"github.com/gin-gonic/gin"
)

// CreateEvent - POST /api/events (admin)
func (h *Handlers) CreateEvent(c *gin.Context) {
	var req models.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	userID, okAuth := middleware.UserIDFromContext(c.Request.Context())
	if !okAuth {
		fail(c, apperrors.ErrUnauthorized)
		return
	}

	event, err := h.services.Events.Create(c.Request.Context(), userID, &req)
	if err != nil {
		fail(c, err)
		return
	}

	ok(c, http.StatusCreated, "success create event", event)
}

// eventFilter reads the optional listing filters. Boolean flags only apply
// when the query parameter is present.
func eventFilter(c *gin.Context) models.EventFilter {
	f := models.EventFilter{Search: c.Query("search")}

	if raw, exists := c.GetQuery("category"); exists {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			f.Category = &id
		}
	}
	f.IsOnline = boolQuery(c, "isOnline")
	f.IsFeatured = boolQuery(c, "isFeatured")
	f.IsPublish = boolQuery(c, "isPublish")

	return f
}

func boolQuery(c *gin.Context, name string) *bool {
	raw, exists := c.GetQuery(name)
	if !exists {
		return nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &v
}

// ListEvents - GET /api/events
func (h *Handlers) ListEvents(c *gin.Context) {
	events, meta, err := h.services.Events.List(c.Request.Context(), eventFilter(c), pageQuery(c))
	if err != nil {
		fail(c, err)
		return
	}

	page(c, "success find all events", events, meta)
}

// GetEvent - GET /api/events/:id
func (h *Handlers) GetEvent(c *gin.Context) {
	id, valid := idParam(c)
	if !valid {
		return
	}

	event, err := h.services.Events.GetByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}

	ok(c, http.StatusOK, "success find one event", event)
}

// GetEventBySlug - GET /api/events/:id/slug
// The path parameter is the slug here; it shares the :id name with the
// sibling routes because gin requires one wildcard per segment.
func (h *Handlers) GetEventBySlug(c *gin.Context) {
	event, err := h.services.Events.GetBySlug(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}

	ok(c, http.StatusOK, "success find one event by slug", event)
}

// UpdateEvent - PUT /api/events/:id (admin)
func (h *Handlers) UpdateEvent(c *gin.Context) {
	id, valid := idParam(c)
	if !valid {
		return
	}

	var req models.UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	event, err := h.services.Events.Update(c.Request.Context(), id, &req)
	if err != nil {
		fail(c, err)
		return
	}

	ok(c, http.StatusOK, "success update event", event)
}

// DeleteEvent - DELETE /api/events/:id (admin)
func (h *Handlers) DeleteEvent(c *gin.Context) {
	id, valid := idParam(c)
	if !valid {
		return
	}

	if err := h.services.Events.Delete(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}

	ok(c, http.StatusOK, "success delete event", nil)
}
