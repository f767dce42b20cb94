package main

import (
	"context"

	bookinghandler "hostelhub/internal/booking/handler"
	bookingservice "hostelhub/internal/booking/service"
	bookingvalidator "hostelhub/internal/booking/validator"
	inventoryhandler "hostelhub/internal/inventory/handler"
	inventoryservice "hostelhub/internal/inventory/service"
	inventoryvalidator "hostelhub/internal/inventory/validator"
	"hostelhub/internal/store"
	userhandler "hostelhub/internal/users/handler"
	userservice "hostelhub/internal/users/service"
	uservalidator "hostelhub/internal/users/validator"
	"hostelhub/pkg/app"
	"hostelhub/pkg/config"
	"hostelhub/pkg/contracts"
	"hostelhub/pkg/events"

	"github.com/joho/godotenv"
)

const ServiceName = "hostelhub"

func main() {
	// .env is optional; environment variables win either way.
	_ = godotenv.Load()

	cfg := config.Load(ServiceName)
	cfg.Log.Info("Starting hostelhub service")

	serverApp := app.NewApplication(cfg)

	st := initStore(cfg)
	publisher := initPublisher(cfg, serverApp)

	serverApp.SetApp(st, initHandlers(cfg, st, publisher)...)
	serverApp.Run()
}

func initStore(cfg *config.Config) store.Store {
	switch cfg.StoreBackend {
	case config.BackendMongo:
		client, err := store.Connect(context.Background(), cfg.MongoURI, cfg.MongoConnTimeout, cfg.Log)
		if err != nil {
			cfg.Log.Fatal("Failed to connect to MongoDB", "error", err)
		}
		st, err := store.NewMongoStore(context.Background(), client, cfg.MongoDatabaseName, cfg.Log)
		if err != nil {
			cfg.Log.Fatal("Failed to initialize mongo snapshot store", "error", err)
		}
		cfg.Log.Info("Snapshot store initialized", "backend", config.BackendMongo, "database", cfg.MongoDatabaseName)
		return st

	default:
		st, err := store.NewFileStore(cfg.SnapshotPath, cfg.Log)
		if err != nil {
			cfg.Log.Fatal("Failed to initialize file snapshot store", "error", err, "path", cfg.SnapshotPath)
		}
		cfg.Log.Info("Snapshot store initialized", "backend", config.BackendFile, "path", cfg.SnapshotPath)
		return st
	}
}

func initPublisher(cfg *config.Config, serverApp *app.Application) events.Publisher {
	if !cfg.EventsEnabled() {
		cfg.Log.Info("Booking events disabled, no Kafka brokers configured")
		return nil
	}

	publisher := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.BookingEventsTopic, ServiceName, cfg.Log)
	serverApp.OnShutdown(publisher.Close)
	return publisher
}

func initHandlers(cfg *config.Config, st store.Store, publisher events.Publisher) []contracts.Handler {
	inventorySvc := inventoryservice.NewInventoryService(st, inventoryvalidator.NewInventoryValidator(cfg.Log), cfg)
	bookingSvc := bookingservice.NewBookingService(st, publisher, bookingvalidator.NewBookingValidator(cfg.Log), cfg)
	userSvc := userservice.NewUserService(st, uservalidator.NewUserValidator(cfg.Log), cfg)

	cfg.Log.Info("Services initialized", "store_backend", cfg.StoreBackend)

	return []contracts.Handler{
		inventoryhandler.NewInventoryHandler(inventorySvc, cfg.Log),
		bookinghandler.NewBookingHandler(bookingSvc, cfg.Log),
		userhandler.NewUserHandler(userSvc, cfg.Log),
	}
}
