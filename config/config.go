package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/DhavalSuthar-24/transferhub/internal/market"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Config struct {
	App struct {
		Env               string `env:"APP_ENV" envDefault:"development"`
		Port              string `env:"PORT"    envDefault:"8088"`
		FrontendURL       string `env:"FRONTEND_URL" envDefault:"http://localhost:3000"`
		SeedOnEmpty       bool   `env:"APP_SEED_ON_EMPTY" envDefault:"true"`
		CommissionerEmail string `env:"COMMISSIONER_EMAIL"`
	}
	DB struct {
		Host     string `env:"DB_HOST"     envDefault:"localhost"`
		Port     string `env:"DB_PORT"     envDefault:"5432"`
		User     string `env:"DB_USER"     envDefault:"postgres"`
		Password string `env:"DB_PASSWORD" envDefault:"password"`
		Name     string `env:"DB_NAME"     envDefault:"transferhub_db"`
		SSLMode  string `env:"DB_SSLMODE"  envDefault:"disable"`
	}
	JWT struct {
		AccessTokenSecret        string `env:"JWT_ACCESS_TOKEN_SECRET"  envDefault:"supersecret"`
		AccessTokenExpiryMinutes int    `env:"JWT_ACCESS_TOKEN_EXPIRY_MINUTES" envDefault:"15"`
		RefreshTokenSecret       string `env:"JWT_REFRESH_TOKEN_SECRET" envDefault:"supersecretrefresh"`
		RefreshTokenExpiryDays   int    `env:"JWT_REFRESH_TOKEN_EXPIRY_DAYS"   envDefault:"7"`
	}
	Market struct {
		StartYear          int   `env:"MARKET_START_YEAR"   envDefault:"2024"`
		RandomSeed         int64 `env:"MARKET_RANDOM_SEED"  envDefault:"1"`
		MinSquadSize       int   `env:"MARKET_MIN_SQUAD_SIZE" envDefault:"16"`
		MaxSquadSize       int   `env:"MARKET_MAX_SQUAD_SIZE" envDefault:"30"`
		MessageTicks       int   `env:"MARKET_MESSAGE_TICKS" envDefault:"3"`
		ReleaseClauseTicks int   `env:"MARKET_RELEASE_CLAUSE_TICKS" envDefault:"2"`
		SeedLeagues        int   `env:"MARKET_SEED_LEAGUES" envDefault:"3"`
		SeedClubsPerLeague int   `env:"MARKET_SEED_CLUBS_PER_LEAGUE" envDefault:"8"`
	}
}

// LoadConfig loads configuration from the environment, reading a .env file
// first when one exists.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading, relying on system environment variables.")
	}

	cfg := &Config{}
	var err error

	cfg.App.Env = getEnv("APP_ENV", "development")
	cfg.App.Port = getEnv("PORT", "8088")
	cfg.App.FrontendURL = getEnv("FRONTEND_URL", "http://localhost:3000")
	cfg.App.CommissionerEmail = getEnv("COMMISSIONER_EMAIL", "")
	if cfg.App.SeedOnEmpty, err = getEnvAsBool("APP_SEED_ON_EMPTY", true); err != nil {
		return nil, err
	}

	cfg.DB.Host = getEnv("DB_HOST", "localhost")
	cfg.DB.Port = getEnv("DB_PORT", "5432")
	cfg.DB.User = getEnv("DB_USER", "postgres")
	cfg.DB.Password = getEnv("DB_PASSWORD", "password")
	cfg.DB.Name = getEnv("DB_NAME", "transferhub_db")
	cfg.DB.SSLMode = getEnv("DB_SSLMODE", "disable")

	cfg.JWT.AccessTokenSecret = getEnv("JWT_ACCESS_TOKEN_SECRET", "your-very-strong-access-secret")
	cfg.JWT.RefreshTokenSecret = getEnv("JWT_REFRESH_TOKEN_SECRET", "your-very-strong-refresh-secret")
	if cfg.JWT.AccessTokenExpiryMinutes, err = getEnvAsInt("JWT_ACCESS_TOKEN_EXPIRY_MINUTES", 15); err != nil {
		return nil, fmt.Errorf("invalid JWT_ACCESS_TOKEN_EXPIRY_MINUTES: %w", err)
	}
	if cfg.JWT.RefreshTokenExpiryDays, err = getEnvAsInt("JWT_REFRESH_TOKEN_EXPIRY_DAYS", 7); err != nil {
		return nil, fmt.Errorf("invalid JWT_REFRESH_TOKEN_EXPIRY_DAYS: %w", err)
	}

	intSettings := []struct {
		key      string
		fallback int
		dst      *int
	}{
		{"MARKET_START_YEAR", 2024, &cfg.Market.StartYear},
		{"MARKET_MIN_SQUAD_SIZE", 16, &cfg.Market.MinSquadSize},
		{"MARKET_MAX_SQUAD_SIZE", 30, &cfg.Market.MaxSquadSize},
		{"MARKET_MESSAGE_TICKS", 3, &cfg.Market.MessageTicks},
		{"MARKET_RELEASE_CLAUSE_TICKS", 2, &cfg.Market.ReleaseClauseTicks},
		{"MARKET_SEED_LEAGUES", 3, &cfg.Market.SeedLeagues},
		{"MARKET_SEED_CLUBS_PER_LEAGUE", 8, &cfg.Market.SeedClubsPerLeague},
	}
	for _, s := range intSettings {
		if *s.dst, err = getEnvAsInt(s.key, s.fallback); err != nil {
			return nil, err
		}
	}
	seed, err := getEnvAsInt("MARKET_RANDOM_SEED", 1)
	if err != nil {
		return nil, err
	}
	cfg.Market.RandomSeed = int64(seed)

	if _, err := cfg.MarketRules(); err != nil {
		return nil, err
	}

	if cfg.JWT.AccessTokenSecret == "your-very-strong-access-secret" || cfg.JWT.RefreshTokenSecret == "your-very-strong-refresh-secret" {
		log.Println("WARNING: Using default JWT secrets. Please set JWT_ACCESS_TOKEN_SECRET and JWT_REFRESH_TOKEN_SECRET environment variables for production.")
	}
	if cfg.DB.Password == "password" && cfg.App.Env == "production" {
		log.Println("WARNING: Using default DB password in production. Please set DB_PASSWORD environment variable.")
	}
	return cfg, nil
}

// MarketRules overlays the configured market settings on the default rules.
func (cfg *Config) MarketRules() (market.Rules, error) {
	rules := market.DefaultRules()
	rules.MinSquadSize = cfg.Market.MinSquadSize
	rules.MaxSquadSize = cfg.Market.MaxSquadSize
	rules.MessageTicks = cfg.Market.MessageTicks
	rules.ReleaseClauseTicks = cfg.Market.ReleaseClauseTicks
	if err := rules.Validate(); err != nil {
		return market.Rules{}, fmt.Errorf("market settings: %w", err)
	}
	return rules, nil
}

// ConnectDB opens the postgres connection described by the configuration.
func ConnectDB(cfg *Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		cfg.DB.Host,
		cfg.DB.User,
		cfg.DB.Password,
		cfg.DB.Name,
		cfg.DB.Port,
		cfg.DB.SSLMode,
	)

	gormConfig := &gorm.Config{}
	if cfg.App.Env == "development" {
		gormConfig.Logger = logger.Default.LogMode(logger.Info)
	} else {
		gormConfig.Logger = logger.Default.LogMode(logger.Silent)
	}

	db, err := gorm.Open(postgres.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Println("Successfully connected to database!")
	return db, nil
}

// Initialize loads the configuration and connects to the database.
func Initialize() (*Config, *gorm.DB, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	db, err := ConnectDB(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database during initialization: %w", err)
	}
	return cfg, db, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) (int, error) {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return fallback, fmt.Errorf("env var %s: expected integer, got '%s'", key, valueStr)
	}
	return value, nil
}

func getEnvAsBool(key string, fallback bool) (bool, error) {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback, nil
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return fallback, fmt.Errorf("env var %s: expected boolean, got '%s'", key, valueStr)
	}
	return value, nil
}
