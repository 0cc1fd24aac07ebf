package handlers

import (
	"net/http"

	apperrors "gotix/internal/errors"
	"gotix/internal/middleware"
	"gotix/internal/models"

	"github.com/gin-gonic/gin"
)

func authedUser(c *gin.Context) (int64, string, bool) {
	userID, okID := middleware.UserIDFromContext(c.Request.Context())
	role, okRole := middleware.RoleFromContext(c.Request.Context())
	if !okID || !okRole {
		fail(c, apperrors.ErrUnauthorized)
		return 0, "", false
	}
	return userID, role, true
}

// CreateOrder - POST /api/orders
func (h *Handlers) CreateOrder(c *gin.Context) {
	userID, _, okAuth := authedUser(c)
	if !okAuth {
		return
	}

	var req models.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	order, err := h.services.Orders.Create(c.Request.Context(), userID, &req)
	if err != nil {
		fail(c, err)
		return
	}

	ok(c, http.StatusOK, "success create order", order)
}

// ListOrders - GET /api/orders (admin)
func (h *Handlers) ListOrders(c *gin.Context) {
	orders, meta, err := h.services.Orders.List(c.Request.Context(), pageQuery(c))
	if err != nil {
		fail(c, err)
		return
	}

	page(c, "success find all orders", orders, meta)
}

// ListMyOrders - GET /api/orders-history
func (h *Handlers) ListMyOrders(c *gin.Context) {
	userID, _, okAuth := authedUser(c)
	if !okAuth {
		return
	}

	orders, meta, err := h.services.Orders.ListMine(c.Request.Context(), userID, pageQuery(c))
	if err != nil {
		fail(c, err)
		return
	}

	page(c, "success find order history", orders, meta)
}

// GetOrder - GET /api/orders/:orderId
func (h *Handlers) GetOrder(c *gin.Context) {
	userID, role, okAuth := authedUser(c)
	if !okAuth {
		return
	}

	order, err := h.services.Orders.Get(c.Request.Context(), userID, role, c.Param("orderId"))
	if err != nil {
		fail(c, err)
		return
	}

	ok(c, http.StatusOK, "success find one order", order)
}

// CompleteOrder - PUT /api/orders/:orderId/complete
func (h *Handlers) CompleteOrder(c *gin.Context) {
	userID, _, okAuth := authedUser(c)
	if !okAuth {
		return
	}

	order, err := h.services.Orders.Complete(c.Request.Context(), userID, c.Param("orderId"))
	if err != nil {
		fail(c, err)
		return
	}

	ok(c, http.StatusOK, "success complete order", order)
}

// PendingOrder - PUT /api/orders/:orderId/pending
func (h *Handlers) PendingOrder(c *gin.Context) {
	order, err := h.services.Orders.Pending(c.Request.Context(), c.Param("orderId"))
	if err != nil {
		fail(c, err)
		return
	}

	ok(c, http.StatusOK, "success mark order pending", order)
}

// CancelOrder - PUT /api/orders/:orderId/cancel
func (h *Handlers) CancelOrder(c *gin.Context) {
	order, err := h.services.Orders.Cancel(c.Request.Context(), c.Param("orderId"))
	if err != nil {
		fail(c, err)
		return
	}

	ok(c, http.StatusOK, "success cancel order", order)
}

// DeleteOrder - DELETE /api/orders/:orderId/remove
func (h *Handlers) DeleteOrder(c *gin.Context) {
	userID, _, okAuth := authedUser(c)
	if !okAuth {
		return
	}

	order, err := h.services.Orders.Remove(c.Request.Context(), userID, c.Param("orderId"))
	if err != nil {
		fail(c, err)
		return
	}

	ok(c, http.StatusOK, "success delete order", order)
}
