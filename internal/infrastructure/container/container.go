package container

import (
	"fmt"

	"github.com/dmkor/sparkmatch-backend/internal/config"
	"github.com/dmkor/sparkmatch-backend/internal/delivery/http"
	"github.com/dmkor/sparkmatch-backend/internal/delivery/http/handler"
	"github.com/dmkor/sparkmatch-backend/internal/delivery/http/middleware"
	"github.com/dmkor/sparkmatch-backend/internal/infrastructure/database"
	"github.com/dmkor/sparkmatch-backend/internal/infrastructure/gateway"
	"github.com/dmkor/sparkmatch-backend/internal/infrastructure/gemini"
	"github.com/dmkor/sparkmatch-backend/internal/infrastructure/server"
	"github.com/dmkor/sparkmatch-backend/internal/repository/postgres"
	"github.com/dmkor/sparkmatch-backend/internal/repository/redisstore"
	"github.com/dmkor/sparkmatch-backend/internal/usecase/discovery"
	"github.com/dmkor/sparkmatch-backend/internal/usecase/moderation"
	"github.com/dmkor/sparkmatch-backend/internal/usecase/registration"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	DB     *sqlx.DB
	Redis  *redis.Client
	Server *server.Server
	Gemini *gemini.GeminiClient
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config) (*Container, error) {
	// Initialize database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Initialize Redis
	redisClient, err := database.NewRedisClient(&cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize redis: %w", err)
	}

	// Initialize Gemini Client
	var geminiClient *gemini.GeminiClient
	if cfg.GeminiAPIKey != "" {
		geminiClient, err = gemini.NewGeminiClient(cfg.GeminiAPIKey)
		if err != nil {
			fmt.Printf("Warning: Failed to initialize Gemini client: %v\n", err)
			// Don't fail, just continue without icebreaker suggestions
			geminiClient = nil
		}
	}

	// Initialize outbound gateway client
	gatewayClient := gateway.NewClient(cfg.Gateway.BaseURL, cfg.Gateway.Token)

	// Initialize repositories
	profileRepo := postgres.NewProfileRepository(db)
	likeRepo := postgres.NewLikeRepository(db)
	sessionRepo := redisstore.NewSessionRepository(redisClient)
	seenRepo := redisstore.NewSeenRepository(redisClient, cfg.Discovery.SeenTTL)

	// Initialize use cases
	registrationUseCase := registration.NewRegistrationUseCase(
		sessionRepo,
		profileRepo,
		cfg.Registration.GenderOptions,
	)

	discoveryUseCase := discovery.NewDiscoveryUseCase(
		profileRepo,
		likeRepo,
		seenRepo,
		gatewayClient,
		geminiClient,
	)

	moderationUseCase := moderation.NewModerationUseCase(profileRepo)

	// Initialize handlers
	turnHandler := handler.NewTurnHandler(registrationUseCase, discoveryUseCase)
	discoveryHandler := handler.NewDiscoveryHandler(discoveryUseCase)
	moderationHandler := handler.NewModerationHandler(moderationUseCase)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	// Initialize router
	router := http.NewRouter(
		turnHandler,
		discoveryHandler,
		moderationHandler,
		authMiddleware,
	)

	// Setup routes
	ginRouter := router.Setup()

	// Initialize server
	srv := server.NewServer(&cfg.Server, ginRouter)

	return &Container{
		Config: cfg,
		DB:     db,
		Redis:  redisClient,
		Server: srv,
		Gemini: geminiClient,
	}, nil
}

// Close closes all connections
func (c *Container) Close() error {
	if c.Gemini != nil {
		c.Gemini.Close()
	}

	// Close Redis
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			fmt.Printf("Error closing Redis: %v\n", err)
		}
	}

	// Close database
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}

	return nil
}
