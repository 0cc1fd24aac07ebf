package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gotix/internal/cache"
	apperrors "gotix/internal/errors"
	"gotix/internal/logger"
	"gotix/internal/models"
	"gotix/internal/repository"
	"gotix/internal/search"
)

type EventService struct {
	events       repository.EventRepository
	categories   repository.CategoryRepository
	searchClient *search.ElasticsearchClient
	redisClient  *cache.Client
}

func NewEventService(events repository.EventRepository, categories repository.CategoryRepository, searchClient *search.ElasticsearchClient, redisClient *cache.Client) *EventService {
	return &EventService{
		events:       events,
		categories:   categories,
		searchClient: searchClient,
		redisClient:  redisClient,
	}
}

// cachedEventsPage is the Redis payload for the unfiltered listing
type cachedEventsPage struct {
	Events []models.Event  `json:"events"`
	Meta   models.PageMeta `json:"meta"`
}

// slugify turns an event name into a URL slug
func slugify(name string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}

func slugSuffix() string {
	buf := make([]byte, 3)
	rand.Read(buf)
	return hex.EncodeToString(buf)
}

// uniqueSlug derives a slug from the name and disambiguates on collision
func (s *EventService) uniqueSlug(ctx context.Context, name string) (string, error) {
	slug := slugify(name)
	if slug == "" {
		slug = "event"
	}

	existing, err := s.events.GetBySlug(ctx, slug)
	if err != nil {
		return "", fmt.Errorf("failed to check slug: %w", err)
	}
	if existing == nil {
		return slug, nil
	}
	return slug + "-" + slugSuffix(), nil
}

func (s *EventService) Create(ctx context.Context, userID int64, req *models.CreateEventRequest) (*models.Event, error) {
	if !req.EndDate.After(req.StartDate) {
		return nil, apperrors.Validation("endDate must be after startDate")
	}

	category, err := s.categories.GetByID(ctx, req.Category)
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	if category == nil {
		return nil, apperrors.Validation("category does not exist")
	}

	slug, err := s.uniqueSlug(ctx, req.Name)
	if err != nil {
		return nil, err
	}

	event := &models.Event{
		Name:        req.Name,
		Slug:        slug,
		CategoryID:  req.Category,
		Description: req.Description,
		Banner:      req.Banner,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		IsOnline:    req.IsOnline,
		IsFeatured:  req.IsFeatured,
		IsPublish:   req.IsPublish,
		Region:      req.Region,
		Address:     req.Address,
		CreatedBy:   userID,
	}

	if err := s.events.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	s.index(ctx, event)
	s.redisClient.InvalidateEventsList(ctx)

	return event, nil
}

func (s *EventService) GetByID(ctx context.Context, id int64) (*models.Event, error) {
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	if event == nil {
		return nil, apperrors.ErrNotFound
	}
	return event, nil
}

func (s *EventService) GetBySlug(ctx context.Context, slug string) (*models.Event, error) {
	event, err := s.events.GetBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	if event == nil {
		return nil, apperrors.ErrNotFound
	}
	return event, nil
}

func (s *EventService) Update(ctx context.Context, id int64, req *models.UpdateEventRequest) (*models.Event, error) {
	event, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != event.Name {
		event.Name = *req.Name
		slug, err := s.uniqueSlug(ctx, event.Name)
		if err != nil {
			return nil, err
		}
		event.Slug = slug
	}
	if req.Category != nil {
		category, err := s.categories.GetByID(ctx, *req.Category)
		if err != nil {
			return nil, fmt.Errorf("failed to get category: %w", err)
		}
		if category == nil {
			return nil, apperrors.Validation("category does not exist")
		}
		event.CategoryID = *req.Category
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.Banner != nil {
		event.Banner = *req.Banner
	}
	if req.StartDate != nil {
		event.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		event.EndDate = *req.EndDate
	}
	if !event.EndDate.After(event.StartDate) {
		return nil, apperrors.Validation("endDate must be after startDate")
	}
	if req.IsOnline != nil {
		event.IsOnline = *req.IsOnline
	}
	if req.IsFeatured != nil {
		event.IsFeatured = *req.IsFeatured
	}
	if req.IsPublish != nil {
		event.IsPublish = *req.IsPublish
	}
	if req.Region != nil {
		event.Region = *req.Region
	}
	if req.Address != nil {
		event.Address = *req.Address
	}

	if err := s.events.Update(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}

	s.index(ctx, event)
	s.redisClient.InvalidateEventsList(ctx)

	return event, nil
}

func (s *EventService) Delete(ctx context.Context, id int64) error {
	deleted, err := s.events.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	if !deleted {
		return apperrors.ErrNotFound
	}

	if s.searchClient != nil {
		if err := s.searchClient.DeleteEvent(ctx, id); err != nil {
			logger.WithContext(ctx).Error("Failed to remove event from search index",
				"error", err, "event_id", id)
		}
	}
	s.redisClient.InvalidateEventsList(ctx)

	return nil
}

// List serves the events listing. Free-text search goes through
// Elasticsearch when available and falls back to the database otherwise.
// The unfiltered listing is cached in Redis.
func (s *EventService) List(ctx context.Context, f models.EventFilter, q models.PageQuery) ([]models.Event, models.PageMeta, error) {
	q.Normalize()

	if f.Search != "" && s.searchClient != nil {
		return s.listViaSearch(ctx, f.Search, q)
	}

	cacheable := f == (models.EventFilter{})
	if cacheable {
		if raw, err := s.redisClient.GetEventsListRaw(ctx, q.Page, q.Limit); err == nil && raw != nil {
			var page cachedEventsPage
			if err := json.Unmarshal(raw, &page); err == nil {
				return page.Events, page.Meta, nil
			}
		}
	}

	events, total, err := s.events.List(ctx, f, q)
	if err != nil {
		return nil, models.PageMeta{}, fmt.Errorf("failed to list events: %w", err)
	}
	meta := q.Meta(total)

	if cacheable {
		s.redisClient.SetEventsList(ctx, q.Page, q.Limit, cachedEventsPage{Events: events, Meta: meta})
	}

	return events, meta, nil
}

func (s *EventService) listViaSearch(ctx context.Context, query string, q models.PageQuery) ([]models.Event, models.PageMeta, error) {
	ids, total, err := s.searchClient.SearchIDs(ctx, query, q.Page, q.Limit)
	if err != nil {
		logger.WithContext(ctx).Error("Search backend failed, falling back to database",
			"error", err, "query", query)
		events, dbTotal, dbErr := s.events.List(ctx, models.EventFilter{Search: query}, q)
		if dbErr != nil {
			return nil, models.PageMeta{}, fmt.Errorf("failed to list events: %w", dbErr)
		}
		return events, q.Meta(dbTotal), nil
	}

	events, err := s.events.GetByIDs(ctx, ids)
	if err != nil {
		return nil, models.PageMeta{}, fmt.Errorf("failed to load searched events: %w", err)
	}

	return events, q.Meta(total), nil
}

// index writes the event into the search index, logging instead of failing
// the request when the backend is unavailable
func (s *EventService) index(ctx context.Context, event *models.Event) {
	if s.searchClient == nil {
		return
	}

	indexCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	if err := s.searchClient.IndexEvent(indexCtx, event); err != nil {
		logger.WithContext(ctx).Error("Failed to index event",
			"error", err, "event_id", event.ID)
	}
}
