package container

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"

	"species-catalog/internal/config"
	infraCache "species-catalog/internal/infrastructure/cache"
	"species-catalog/internal/infrastructure/database"
	"species-catalog/internal/infrastructure/llm"
	"species-catalog/internal/infrastructure/metrics"
	"species-catalog/pkg/cache"
	"species-catalog/pkg/jwt"

	chatHandler "species-catalog/internal/domains/chat/handler"
	chatService "species-catalog/internal/domains/chat/service"
	speciesHandler "species-catalog/internal/domains/species/handler"
	speciesRepo "species-catalog/internal/domains/species/repository"
	speciesService "species-catalog/internal/domains/species/service"
	userHandler "species-catalog/internal/domains/user/handler"
	userRepo "species-catalog/internal/domains/user/repository"
	userService "species-catalog/internal/domains/user/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container is the root of the dependency graph. Build order:
// config, infrastructure, repositories, services, handlers.
type Container struct {
	// Infrastructure
	Config     *config.Config
	DB         *database.PostgresDB
	Cache      cache.Cache
	Metrics    *metrics.Metrics
	JWTManager *jwt.Manager

	// Repositories
	SpeciesRepo speciesRepo.RepositoryInterface
	UserRepo    userRepo.Repository

	// Services
	SpeciesService speciesService.ServiceInterface
	SessionService speciesService.SessionServiceInterface
	UserService    userService.ServiceInterface
	ChatService    chatService.ServiceInterface

	// Handlers
	SpeciesHandler *speciesHandler.SpeciesHandler
	SessionHandler *speciesHandler.SessionHandler
	UserHandler    *userHandler.UserHandler
	ChatHandler    *chatHandler.ChatHandler
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer connects the infrastructure and wires every domain
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	log.Info().Str("env", cfg.App.Environment).Msg("initializing container")

	c := &Container{Config: cfg}

	db, err := ConnectDatabase(ctx)
	if err != nil {
		return nil, err
	}
	c.DB = db

	// Redis is non-critical: the species list simply is not cached while it is down
	redisCache := infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := redisCache.Connect(ctx); err != nil {
		log.Warn().Err(err).Str("host", cfg.Redis.Host).Msg("redis connection failed, continuing without list cache")
	} else {
		log.Info().Str("host", cfg.Redis.Host).Msg("redis connected")
	}
	c.Cache = redisCache

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m, err := metrics.New(registry)
	if err != nil {
		return nil, fmt.Errorf("failed to init metrics: %w", err)
	}
	c.Metrics = m

	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)

	c.initRepositories()

	if err := c.initServices(ctx); err != nil {
		return nil, fmt.Errorf("failed to init services: %w", err)
	}

	c.initHandlers()

	log.Info().Msg("container initialized")
	return c, nil
}

// ConnectDatabase opens and pings the PostgreSQL pool
func ConnectDatabase(ctx context.Context) (*database.PostgresDB, error) {
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := db.Connect(connectCtx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(connectCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("database health check failed: %w", err)
	}

	return db, nil
}

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.SpeciesRepo = speciesRepo.NewPostgresRepository(pool, c.Cache)
	c.UserRepo = userRepo.NewPostgresRepository(pool)
}

func (c *Container) initServices(ctx context.Context) error {
	c.SpeciesService = speciesService.NewSpeciesService(c.SpeciesRepo, c.Metrics)
	c.SessionService = speciesService.NewSessionService(c.SpeciesRepo, c.Metrics, c.Config.Session.TTL)
	c.UserService = userService.NewUserService(c.UserRepo, c.JWTManager, userService.DefaultBcryptCost)

	var completer chatService.Completer
	if c.Config.ChatEnabled() {
		gc, err := llm.NewGenAICompleter(ctx, llm.Config{
			APIKey:  c.Config.GenAI.APIKey,
			Model:   c.Config.GenAI.Model,
			BaseURL: c.Config.GenAI.BaseURL,
			Timeout: c.Config.GenAI.Timeout,
		})
		if err != nil {
			return err
		}
		completer = gc
		log.Info().Str("model", gc.Model()).Msg("chat proxy enabled")
	} else {
		log.Warn().Msg("GEMINI_API_KEY not set, chat proxy disabled")
	}
	c.ChatService = chatService.NewChatService(completer, c.Metrics)

	return nil
}

func (c *Container) initHandlers() {
	c.SpeciesHandler = speciesHandler.NewSpeciesHandler(c.SpeciesService)
	c.SessionHandler = speciesHandler.NewSessionHandler(c.SessionService)
	c.UserHandler = userHandler.NewUserHandler(c.UserService)
	c.ChatHandler = chatHandler.NewChatHandler(c.ChatService)
}

// Cleanup releases connections in reverse order of creation
func (c *Container) Cleanup() {
	if c.Cache != nil {
		if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
			if err := rc.Close(); err != nil {
				log.Warn().Err(err).Msg("failed to close redis")
			}
		}
	}

	if c.DB != nil {
		c.DB.Close()
	}

	log.Info().Msg("container cleanup completed")
}
