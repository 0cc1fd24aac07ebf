package handlers

import (
	"net/http"

	"gotix/internal/models"

	"github.com/gin-gonic/gin"
)

// CreateCategory - POST /api/category (admin)
func (h *Handlers) CreateCategory(c *gin.Context) {
	var req models.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	category, err := h.services.Categories.Create(c.Request.Context(), &req)
	if err != nil {
		fail(c, err)
		return
	}

	ok(c, http.StatusCreated, "success create category", category)
}

// ListCategories - GET /api/category
func (h *Handlers) ListCategories(c *gin.Context) {
	categories, meta, err := h.services.Categories.List(c.Request.Context(), pageQuery(c))
	if err != nil {
		fail(c, err)
		return
	}

	page(c, "success find all categories", categories, meta)
}

// GetCategory - GET /api/category/:id
func (h *Handlers) GetCategory(c *gin.Context) {
	id, valid := idParam(c)
	if !valid {
		return
	}

	category, err := h.services.Categories.GetByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}

	ok(c, http.StatusOK, "success find one category", category)
}

// UpdateCategory - PUT /api/category/:id (admin)
func (h *Handlers) UpdateCategory(c *gin.Context) {
	id, valid := idParam(c)
	if !valid {
		return
	}

	var req models.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	category, err := h.services.Categories.Update(c.Request.Context(), id, &req)
	if err != nil {
		fail(c, err)
		return
	}

	ok(c, http.StatusOK, "success update category", category)
}

// DeleteCategory - DELETE /api/category/:id (admin)
func (h *Handlers) DeleteCategory(c *gin.Context) {
	id, valid := idParam(c)
	if !valid {
		return
	}

	if err := h.services.Categories.Delete(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}

	ok(c, http.StatusOK, "success delete category", nil)
}
