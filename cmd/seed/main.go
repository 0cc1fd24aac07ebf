package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"gotix/internal/config"
	"gotix/internal/database"
	"gotix/internal/models"
	"gotix/internal/repository"
	"gotix/internal/service"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

var (
	eventCount = flag.Int("events", 3, "Number of demo events to create")
	ticketQty  = flag.Int64("quantity", 100, "Stock per demo ticket type")
	adminPass  = flag.String("admin-password", "", "Create an admin account with this password")
	dryRun     = flag.Bool("dry-run", false, "Show what would be created without writing")
)

type seeder struct {
	repos *repository.Repositories
}

func main() {
	flag.Parse()

	slog.Info("Starting seeder...")

	cfg := config.Load()
	db, err := database.Connect(cfg.Database)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	s := &seeder{repos: repository.NewRepositories(db)}
	ctx := context.Background()

	if *adminPass != "" {
		if err := s.seedAdmin(ctx, *adminPass); err != nil {
			slog.Error("Failed to seed admin", "error", err)
			os.Exit(1)
		}
	}

	if err := s.seedEvents(ctx); err != nil {
		slog.Error("Failed to seed events", "error", err)
		os.Exit(1)
	}

	slog.Info("Seeding completed successfully")
}

func (s *seeder) seedAdmin(ctx context.Context, password string) error {
	existing, err := s.repos.Users.GetByIdentifier(ctx, "admin")
	if err != nil {
		return err
	}
	if existing != nil {
		slog.Info("Admin account already exists, skipping")
		return nil
	}

	if *dryRun {
		slog.Info("Would create admin account")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := &models.User{
		FullName: "Administrator",
		Username: "admin",
		Email:    "admin@gotix.local",
		Password: string(hash),
		Role:     models.RoleAdmin,
		IsActive: true,
	}
	if err := s.repos.Users.Create(ctx, admin); err != nil {
		return err
	}

	slog.Info("Created admin account", "user_id", admin.ID)
	return nil
}

func (s *seeder) seedEvents(ctx context.Context) error {
	category := &models.Category{
		Name:        "Music",
		Description: "Concerts and festivals",
		Icon:        "music.png",
	}

	if *dryRun {
		slog.Info("Would create demo events", "count", *eventCount)
		return nil
	}

	if err := s.repos.Categories.Create(ctx, category); err != nil {
		return err
	}
	slog.Info("Created category", "category_id", category.ID, "name", category.Name)

	eventService := service.NewEventService(s.repos.Events, s.repos.Categories, nil, nil)

	for i := 1; i <= *eventCount; i++ {
		start := time.Now().AddDate(0, 1, i)
		event, err := eventService.Create(ctx, 0, &models.CreateEventRequest{
			Name:        fmt.Sprintf("Demo Concert %d", i),
			Category:    category.ID,
			Description: "Seeded demo event",
			StartDate:   start,
			EndDate:     start.Add(4 * time.Hour),
			IsPublish:   true,
			Region:      3173,
			Address:     "Jakarta Convention Center",
		})
		if err != nil {
			return err
		}

		for _, tier := range []struct {
			name  string
			price int64
		}{
			{"Early Bird", 150000},
			{"Regular", 250000},
			{"VIP", 500000},
		} {
			ticket := &models.Ticket{
				Name:        tier.name,
				Price:       decimal.NewFromInt(tier.price),
				Quantity:    *ticketQty,
				EventID:     event.ID,
				Description: tier.name + " admission",
			}
			if err := s.repos.Tickets.Create(ctx, ticket); err != nil {
				return err
			}
		}

		slog.Info("Created event with tickets", "event_id", event.ID, "slug", event.Slug)
	}

	return nil
}
