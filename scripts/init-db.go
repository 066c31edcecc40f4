package main

import (
	"context"
	"flag"

	"lyhu_portal/internal/config"
	"lyhu_portal/internal/database"
	"lyhu_portal/internal/events"
	"lyhu_portal/internal/logger"
	"lyhu_portal/internal/migrations"
	"lyhu_portal/internal/models"
	"lyhu_portal/internal/repository"
	"lyhu_portal/internal/services"
)

func main() {
	reset := flag.Bool("reset", false, "delete every storage slot before seeding")
	flag.Parse()

	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	ctx := context.Background()

	db, err := database.Initialize(cfg.DatabaseURL, logger.GormLevel(cfg.LogLevel), log)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}
	slots := repository.NewSlotRepository(db)

	if *reset {
		keys, err := slots.Keys(ctx, "")
		if err != nil {
			log.WithError(err).Fatal("Failed to list storage slots")
		}
		for _, key := range keys {
			if err := slots.Delete(ctx, key); err != nil {
				log.WithError(err).WithField("slot", key).Fatal("Failed to delete storage slot")
			}
		}
		log.WithField("slots", len(keys)).Info("Storage slots cleared")
	}

	ctvLeads := services.NewCtvLeadService(slots, log)
	salesLeads := services.NewSalesLeadService(slots, log)
	orders := services.NewOrderService(slots, events.NewBroker(1), log)

	if err := migrations.RunMigrations(ctx, slots, orders, log); err != nil {
		log.WithError(err).Fatal("Failed to run migrations")
	}

	// persist the demo seeds so they survive later writes from other tools
	seeded := 0
	if _, err := slots.Get(ctx, models.SlotCtvLeads); err != nil {
		if err := ctvLeads.SaveLeads(ctx, models.DefaultCtvLeads()); err != nil {
			log.WithError(err).Fatal("Failed to seed CTV leads")
		}
		seeded++
	}
	if _, err := slots.Get(ctx, models.SlotSalesLeads); err != nil {
		if err := salesLeads.SaveLeads(ctx, models.DefaultSalesLeads()); err != nil {
			log.WithError(err).Fatal("Failed to seed sales leads")
		}
		seeded++
	}
	if _, err := slots.Get(ctx, models.SlotOrders); err != nil {
		if err := orders.SaveOrders(ctx, []models.Order{}); err != nil {
			log.WithError(err).Fatal("Failed to seed orders")
		}
		seeded++
	}

	log.WithField("seeded_slots", seeded).Info("Database initialization completed")
}
