package consumers

import (
	"context"
	"log/slog"

	"gotix/internal/config"
	"gotix/internal/database"
	"gotix/internal/messaging"
	"gotix/internal/models"
	"gotix/internal/repository"
)

type ConsumerService struct {
	db       *database.DB
	nats     *messaging.NATSClient
	repos    *repository.Repositories
	handlers *Handlers
}

func NewConsumerService(cfg *config.Config) (*ConsumerService, error) {
	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, err
	}

	natsClient, err := messaging.NewNATSClient(cfg.NATS)
	if err != nil {
		db.Close()
		return nil, err
	}

	repos := repository.NewRepositories(db)
	handlers := NewHandlers(repos)

	return &ConsumerService{
		db:       db,
		nats:     natsClient,
		repos:    repos,
		handlers: handlers,
	}, nil
}

func (cs *ConsumerService) Start() error {
	slog.Info("Starting NATS consumers...")

	_, err := cs.nats.SubscribeQueue(models.SubjectOrderCreated, "consumers", cs.handlers.HandleOrderCreated)
	if err != nil {
		return err
	}

	_, err = cs.nats.SubscribeQueue(models.SubjectOrderCompleted, "consumers", cs.handlers.HandleOrderCompleted)
	if err != nil {
		return err
	}

	_, err = cs.nats.SubscribeQueue(models.SubjectOrderCancelled, "consumers", cs.handlers.HandleOrderCancelled)
	if err != nil {
		return err
	}

	slog.Info("All consumers started successfully")
	return nil
}

func (cs *ConsumerService) Shutdown(ctx context.Context) error {
	slog.Info("Shutting down consumer service...")

	if cs.nats != nil {
		if err := cs.nats.Close(); err != nil {
			slog.Error("Error closing NATS connection", "error", err)
		}
	}

	if cs.db != nil {
		if err := cs.db.Close(); err != nil {
			slog.Error("Error closing database connection", "error", err)
			return err
		}
	}

	return nil
}
