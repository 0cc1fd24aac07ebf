package service

import (
	"context"
	"fmt"

	apperrors "gotix/internal/errors"
	"gotix/internal/models"
	"gotix/internal/repository"
)

type TicketService struct {
	tickets repository.TicketRepository
	events  repository.EventRepository
}

func NewTicketService(tickets repository.TicketRepository, events repository.EventRepository) *TicketService {
	return &TicketService{tickets: tickets, events: events}
}

func (s *TicketService) Create(ctx context.Context, req *models.CreateTicketRequest) (*models.Ticket, error) {
	if req.Price.IsNegative() {
		return nil, apperrors.Validation("price cannot be negative")
	}
	if req.Quantity < 0 {
		return nil, apperrors.Validation("quantity cannot be negative")
	}

	event, err := s.events.GetByID(ctx, req.Event)
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	if event == nil {
		return nil, apperrors.Validation("event does not exist")
	}

	ticket := &models.Ticket{
		Name:        req.Name,
		Price:       req.Price,
		Quantity:    req.Quantity,
		EventID:     req.Event,
		Description: req.Description,
	}

	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, fmt.Errorf("failed to create ticket: %w", err)
	}

	return ticket, nil
}

func (s *TicketService) GetByID(ctx context.Context, id int64) (*models.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}
	if ticket == nil {
		return nil, apperrors.ErrNotFound
	}
	return ticket, nil
}

func (s *TicketService) Update(ctx context.Context, id int64, req *models.UpdateTicketRequest) (*models.Ticket, error) {
	ticket, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		ticket.Name = *req.Name
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, apperrors.Validation("price cannot be negative")
		}
		ticket.Price = *req.Price
	}
	if req.Quantity != nil {
		if *req.Quantity < 0 {
			return nil, apperrors.Validation("quantity cannot be negative")
		}
		if *req.Quantity < ticket.Reserved {
			return nil, apperrors.Validation("quantity cannot drop below the %d reserved units", ticket.Reserved)
		}
		ticket.Quantity = *req.Quantity
	}
	if req.Description != nil {
		ticket.Description = *req.Description
	}

	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, fmt.Errorf("failed to update ticket: %w", err)
	}

	return ticket, nil
}

func (s *TicketService) Delete(ctx context.Context, id int64) error {
	deleted, err := s.tickets.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete ticket: %w", err)
	}
	if !deleted {
		return apperrors.ErrNotFound
	}
	return nil
}

func (s *TicketService) List(ctx context.Context, q models.PageQuery) ([]models.Ticket, models.PageMeta, error) {
	q.Normalize()

	tickets, total, err := s.tickets.List(ctx, q)
	if err != nil {
		return nil, models.PageMeta{}, fmt.Errorf("failed to list tickets: %w", err)
	}

	return tickets, q.Meta(total), nil
}

func (s *TicketService) ListByEvent(ctx context.Context, eventID int64) ([]models.Ticket, error) {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	if event == nil {
		return nil, apperrors.ErrNotFound
	}

	tickets, err := s.tickets.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}

	return tickets, nil
}
