package handlers

import (
	"net/http"

	"gotix/internal/models"

	"github.com/gin-gonic/gin"
)

// CreateBanner - POST /api/banners (admin)
func (h *Handlers) CreateBanner(c *gin.Context) {
	var req models.CreateBannerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	banner, err := h.services.Banners.Create(c.Request.Context(), &req)
	if err != nil {
		fail(c, err)
		return
	}

	ok(c, http.StatusCreated, "success create banner", banner)
}

// ListBanners - GET /api/banners
func (h *Handlers) ListBanners(c *gin.Context) {
	banners, meta, err := h.services.Banners.List(c.Request.Context(), pageQuery(c))
	if err != nil {
		fail(c, err)
		return
	}

	page(c, "success find all banners", banners, meta)
}

// GetBanner - GET /api/banners/:id
func (h *Handlers) GetBanner(c *gin.Context) {
	id, valid := idParam(c)
	if !valid {
		return
	}

	banner, err := h.services.Banners.GetByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}

	ok(c, http.StatusOK, "success find one banner", banner)
}

// UpdateBanner - PUT /api/banners/:id (admin)
func (h *Handlers) UpdateBanner(c *gin.Context) {
	id, valid := idParam(c)
	if !valid {
		return
	}

	var req models.UpdateBannerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	banner, err := h.services.Banners.Update(c.Request.Context(), id, &req)
	if err != nil {
		fail(c, err)
		return
	}

	ok(c, http.StatusOK, "success update banner", banner)
}

// DeleteBanner - DELETE /api/banners/:id (admin)
func (h *Handlers) DeleteBanner(c *gin.Context) {
	id, valid := idParam(c)
	if !valid {
		return
	}

	if err := h.services.Banners.Delete(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}

	ok(c, http.StatusOK, "success delete banner", nil)
}
