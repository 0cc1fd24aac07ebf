package service

import (
	"gotix/internal/auth"
	"gotix/internal/cache"
	"gotix/internal/messaging"
	"gotix/internal/repository"
	"gotix/internal/search"
)

type Services struct {
	Auth       *AuthService
	Categories *CategoryService
	Banners    *BannerService
	Events     *EventService
	Tickets    *TicketService
	Orders     *OrderService
}

// NewServices wires the service layer. searchClient and redisClient may be
// nil when those backends are not configured; publisher may be nil too, in
// which case lifecycle events are simply not emitted.
func NewServices(repos *repository.Repositories, issuer *auth.TokenIssuer, publisher messaging.Publisher, searchClient *search.ElasticsearchClient, redisClient *cache.Client) *Services {
	return &Services{
		Auth:       NewAuthService(repos.Users, issuer),
		Categories: NewCategoryService(repos.Categories),
		Banners:    NewBannerService(repos.Banners),
		Events:     NewEventService(repos.Events, repos.Categories, searchClient, redisClient),
		Tickets:    NewTicketService(repos.Tickets, repos.Events),
		Orders:     NewOrderService(repos.Orders, repos.Tickets, publisher),
	}
}
