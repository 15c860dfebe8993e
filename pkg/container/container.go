package container

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"pressroom-backend/internal/config"
	infracache "pressroom-backend/internal/infrastructure/cache"
	"pressroom-backend/internal/infrastructure/generator"
	"pressroom-backend/internal/infrastructure/storage"
	"pressroom-backend/internal/infrastructure/wordpress"
	"pressroom-backend/pkg/cache"
	"pressroom-backend/pkg/jwt"

	"pressroom-backend/internal/domains/content"
	contenthandler "pressroom-backend/internal/domains/content/handler"
	contentrepo "pressroom-backend/internal/domains/content/repository"
	contentservice "pressroom-backend/internal/domains/content/service"
	"pressroom-backend/internal/domains/publish"
	publishhandler "pressroom-backend/internal/domains/publish/handler"
	publishrepo "pressroom-backend/internal/domains/publish/repository"
	publishservice "pressroom-backend/internal/domains/publish/service"
	"pressroom-backend/internal/domains/site"
	sitehandler "pressroom-backend/internal/domains/site/handler"
	siterepo "pressroom-backend/internal/domains/site/repository"
	siteservice "pressroom-backend/internal/domains/site/service"
)

// Container is the root of the dependency graph. Everything in it is a
// singleton built once at startup, in dependency order: config, then
// infrastructure, then repositories, services and handlers.
type Container struct {
	Config     *config.Config
	Cache      cache.Cache
	JWTManager *jwt.Manager
	Gateway    wordpress.Gateway
	Storage    *storage.MinIOStorage
	Processor  *storage.ImageProcessor
	Generator  content.Generator

	SiteRepo    site.Repository
	ContentRepo content.Repository
	PublishRepo publish.Repository

	SiteService    site.Service
	ContentService content.Service
	PublishService publish.Service

	SiteHandler    *sitehandler.SiteHandler
	ContentHandler *contenthandler.ContentHandler
	PublishHandler *publishhandler.PublishHandler
	MediaHandler   *publishhandler.MediaHandler
}

func NewContainer() (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Info().Str("environment", cfg.App.Environment).Msg("config loaded")

	if err := c.initInfrastructure(); err != nil {
		return nil, err
	}
	c.initRepositories()
	c.initServices()
	c.initHandlers()

	log.Info().Msg("container initialized")
	return c, nil
}

func (c *Container) initInfrastructure() error {
	redisCache := infracache.NewRedisCache(
		c.Config.Redis.Host,
		c.Config.Redis.Password,
		c.Config.Redis.DB,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := redisCache.Ping(ctx); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	c.Cache = redisCache
	log.Info().Str("host", c.Config.Redis.Host).Msg("redis connected")

	c.JWTManager = jwt.NewManager(c.Config.JWT.Secret)
	c.Gateway = wordpress.NewClient(c.Config.WordPress.ReadTimeout, c.Config.WordPress.WriteTimeout)
	c.Generator = generator.NewHTTPGenerator(c.Config.Generator)
	c.Processor = storage.NewImageProcessor()

	// Object storage is optional. Without it the API still runs,
	// featured-image staging just answers 503.
	store, err := storage.NewMinIOStorage(c.Config.MinIO)
	if err != nil {
		log.Warn().Err(err).Msg("object storage unavailable, featured images disabled")
	} else {
		c.Storage = store
		log.Info().Str("bucket", c.Config.MinIO.Bucket).Msg("object storage ready")
	}

	return nil
}

func (c *Container) initRepositories() {
	c.SiteRepo = siterepo.NewStoreRepository(c.Cache)
	c.ContentRepo = contentrepo.NewStoreRepository(c.Cache)
	c.PublishRepo = publishrepo.NewStoreRepository(c.Cache)
}

func (c *Container) initServices() {
	c.SiteService = siteservice.NewSiteService(c.SiteRepo, c.Gateway, c.Config.Jobs.BackoffWindow)
	c.ContentService = contentservice.NewContentService(c.ContentRepo, c.Generator, c.Config.Plan)

	var store publish.ImageStore
	if c.Storage != nil {
		store = c.Storage
	}
	c.PublishService = publishservice.NewPublishService(
		c.ContentRepo,
		c.SiteService,
		c.Gateway,
		store,
		c.Processor,
		c.PublishRepo,
	)
}

func (c *Container) initHandlers() {
	c.SiteHandler = sitehandler.NewSiteHandler(c.SiteService)
	c.ContentHandler = contenthandler.NewContentHandler(c.ContentService)
	c.PublishHandler = publishhandler.NewPublishHandler(c.PublishService)
	c.MediaHandler = publishhandler.NewMediaHandler(c.Storage, c.Processor)
}

// Cleanup releases held connections, called from graceful shutdown.
func (c *Container) Cleanup() {
	if rc, ok := c.Cache.(*infracache.RedisCache); ok {
		if err := rc.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close redis")
		}
	}
	log.Info().Msg("container cleanup completed")
}
