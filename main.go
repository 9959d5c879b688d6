package main

import (
	"log"
	"log/slog"

	"github.com/DhavalSuthar-24/transferhub/config"
	_ "github.com/DhavalSuthar-24/transferhub/docs"
	"github.com/DhavalSuthar-24/transferhub/internal/auth"
	"github.com/DhavalSuthar-24/transferhub/internal/club"
	"github.com/DhavalSuthar-24/transferhub/internal/market"
	"github.com/DhavalSuthar-24/transferhub/internal/seed"
	"github.com/DhavalSuthar-24/transferhub/internal/transfer"
	"github.com/DhavalSuthar-24/transferhub/pkg/validator"
	"github.com/DhavalSuthar-24/transferhub/routes"
)

// @title TransferHub REST API
// @version 1.0
// @description Transfer market and contract negotiation server for a football management game.
// @host localhost:8088
// @BasePath /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	cfg, db, err := config.Initialize()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	err = db.AutoMigrate(
		&auth.User{}, &auth.RefreshToken{},
		&club.League{}, &club.Club{}, &club.Player{},
		&transfer.TransferMessage{}, &transfer.NegotiationCooldown{},
		&transfer.TransferHistory{}, &transfer.SeasonState{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}
	log.Println("AutoMigrate successful")

	if err := validator.RegisterMarketValidations(); err != nil {
		log.Fatalf("Failed to register validations: %v", err)
	}

	rules, err := cfg.MarketRules()
	if err != nil {
		log.Fatalf("Invalid market rules: %v", err)
	}

	repo := transfer.NewMarketRepository(db)
	if cfg.App.SeedOnEmpty {
		if err := seedIfEmpty(repo, cfg, rules); err != nil {
			log.Fatalf("Seeding failed: %v", err)
		}
	}

	service, err := transfer.NewMarketService(repo, rules, market.NewRandom(cfg.Market.RandomSeed), slog.Default())
	if err != nil {
		log.Fatalf("Failed to load the market: %v", err)
	}

	r := routes.SetupRoutes(db, service, cfg)

	log.Printf("Starting server on port %s in %s mode\n", cfg.App.Port, cfg.App.Env)
	if err := r.Run(":" + cfg.App.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}

func seedIfEmpty(repo transfer.MarketRepository, cfg *config.Config, rules market.Rules) error {
	empty, err := repo.IsEmpty()
	if err != nil || !empty {
		return err
	}
	opts := seed.DefaultOptions()
	opts.Seed = cfg.Market.RandomSeed
	opts.StartYear = cfg.Market.StartYear
	opts.Leagues = cfg.Market.SeedLeagues
	opts.ClubsPerLeague = cfg.Market.SeedClubsPerLeague

	world, err := seed.Generate(opts, rules)
	if err != nil {
		return err
	}
	err = repo.WithTransaction(func(tx transfer.MarketRepository) error {
		return tx.SaveWorld(world, 0)
	})
	if err != nil {
		return err
	}
	log.Printf("Seeded %d clubs and %d players", len(world.Clubs()), len(world.Players()))
	return nil
}
