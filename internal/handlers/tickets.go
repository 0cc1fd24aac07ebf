package handlers

import (
	"net/http"

	"gotix/internal/models"

	"github.com/gin-gonic/gin"
)

// CreateTicket - POST /api/tickets (admin)
func (h *Handlers) CreateTicket(c *gin.Context) {
	var req models.CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	ticket, err := h.services.Tickets.Create(c.Request.Context(), &req)
	if err != nil {
		fail(c, err)
		return
	}

	ok(c, http.StatusCreated, "success create ticket", ticket)
}

// ListTickets - GET /api/tickets (admin)
func (h *Handlers) ListTickets(c *gin.Context) {
	tickets, meta, err := h.services.Tickets.List(c.Request.Context(), pageQuery(c))
	if err != nil {
		fail(c, err)
		return
	}

	page(c, "success find all tickets", tickets, meta)
}

// GetTicket - GET /api/tickets/:id
func (h *Handlers) GetTicket(c *gin.Context) {
	id, valid := idParam(c)
	if !valid {
		return
	}

	ticket, err := h.services.Tickets.GetByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}

	ok(c, http.StatusOK, "success find one ticket", ticket)
}

// UpdateTicket - PUT /api/tickets/:id (admin)
func (h *Handlers) UpdateTicket(c *gin.Context) {
	id, valid := idParam(c)
	if !valid {
		return
	}

	var req models.UpdateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	ticket, err := h.services.Tickets.Update(c.Request.Context(), id, &req)
	if err != nil {
		fail(c, err)
		return
	}

	ok(c, http.StatusOK, "success update ticket", ticket)
}

// DeleteTicket - DELETE /api/tickets/:id (admin)
func (h *Handlers) DeleteTicket(c *gin.Context) {
	id, valid := idParam(c)
	if !valid {
		return
	}

	if err := h.services.Tickets.Delete(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}

	ok(c, http.StatusOK, "success delete ticket", nil)
}

// ListTicketsByEvent - GET /api/tickets/:id/events
func (h *Handlers) ListTicketsByEvent(c *gin.Context) {
	id, valid := idParam(c)
	if !valid {
		return
	}

	tickets, err := h.services.Tickets.ListByEvent(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}

	ok(c, http.StatusOK, "success find tickets by event", tickets)
}
