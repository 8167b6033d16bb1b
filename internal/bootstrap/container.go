package bootstrap

import (
	"context"
	"fmt"
	"time"

	"niche-picker-be/internal/config"
	"niche-picker-be/internal/controller"
	"niche-picker-be/internal/handler"
	"niche-picker-be/internal/pkg/logger"
	"niche-picker-be/internal/repository/contract"
	"niche-picker-be/internal/repository/implementation"
	"niche-picker-be/internal/repository/memory"
	"niche-picker-be/internal/service"
	"niche-picker-be/internal/websocket"
	"niche-picker-be/pkg/database"
	pktNats "niche-picker-be/pkg/nats"
	"niche-picker-be/pkg/selection"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Infrastructure holds the external resources the container is built on.
// Tests assemble one by hand; BuildInfrastructure derives it from config.
type Infrastructure struct {
	Logger       logger.ILogger
	WsLogger     logger.ILogger
	TaxonomyRepo contract.TaxonomyRepository
	SessionRepo  contract.SessionRepository
	PubSub       *gochannel.GoChannel

	// Optional, nil when not configured
	DB    *gorm.DB
	Redis *redis.Client
	Nats  *pktNats.Publisher
}

// BuildInfrastructure connects whatever cfg asks for. Required stores fail
// hard; NATS is best effort and only logged.
func BuildInfrastructure(cfg *config.Config) (*Infrastructure, error) {
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	infra := &Infrastructure{
		Logger:   sysLogger,
		WsLogger: logger.NewIsolatedLogger(cfg.App.WsLogFilePath),
		PubSub:   gochannel.NewGoChannel(gochannel.Config{}, watermill.NewStdLogger(false, false)),
	}

	// Taxonomy
	switch cfg.Taxonomy.Source {
	case "postgres":
		db, err := database.NewGormDBFromDSN(cfg.Database.Connection, !cfg.IsProduction())
		if err != nil {
			return nil, fmt.Errorf("connect taxonomy database: %w", err)
		}
		infra.DB = db
		infra.TaxonomyRepo = implementation.NewTaxonomyRepository(db)
	case "file", "":
		infra.TaxonomyRepo = implementation.NewFileTaxonomyRepository(cfg.Taxonomy.Path)
	default:
		return nil, fmt.Errorf("unknown TAXONOMY_SOURCE %q", cfg.Taxonomy.Source)
	}

	// Sessions
	ttl := time.Duration(cfg.Session.TTLMinutes) * time.Minute
	switch cfg.Session.Store {
	case "redis":
		opt, err := redis.ParseURL(cfg.Session.RedisURL)
		if err != nil {
			sysLogger.Warn("Bootstrap", "Failed to parse Redis URL, using it as address", map[string]interface{}{"error": err.Error()})
			opt = &redis.Options{Addr: cfg.Session.RedisURL}
		}
		rdb := redis.NewClient(opt)
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := rdb.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("connect session redis: %w", err)
		}
		infra.Redis = rdb
		infra.SessionRepo = implementation.NewRedisSessionRepository(rdb, ttl)
	case "memory", "":
		infra.SessionRepo = memory.NewSessionRepository(ttl)
	default:
		return nil, fmt.Errorf("unknown SESSION_STORE %q", cfg.Session.Store)
	}

	// NATS
	if cfg.Events.NatsEnabled {
		natsPub, err := pktNats.NewPublisher(cfg.Events.NatsURL)
		if err != nil {
			sysLogger.Warn("Bootstrap", "Failed to connect to NATS, events stay in process", map[string]interface{}{"error": err.Error()})
		} else {
			infra.Nats = natsPub
		}
	}

	return infra, nil
}

// Close releases connections in reverse order of acquisition.
func (i *Infrastructure) Close() {
	if i.Nats != nil {
		i.Nats.Close()
	}
	if i.Redis != nil {
		_ = i.Redis.Close()
	}
	if i.DB != nil {
		if sqlDB, err := i.DB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	if i.PubSub != nil {
		_ = i.PubSub.Close()
	}
	if i.Logger != nil {
		_ = i.Logger.Sync()
	}
	if i.WsLogger != nil {
		_ = i.WsLogger.Sync()
	}
}

type Container struct {
	Logger logger.ILogger

	// Controllers
	PageController      controller.IPageController
	TaxonomyController  controller.ITaxonomyController
	SelectionController controller.ISelectionController
	SessionController   controller.ISessionController

	// WebSockets
	PickerHandler *handler.PickerHandler
	WebSocketHub  *websocket.Hub

	// Services
	TaxonomyService  service.ITaxonomyService
	SelectionService service.ISelectionService
	SessionService   service.ISessionService

	// Background Services (exposed for main.go to run)
	ConsumerService service.IConsumerService

	Infrastructure *Infrastructure
}

func NewContainer(cfg *config.Config, infra *Infrastructure) (*Container, error) {
	policy := selection.ParsePolicy(cfg.Selection.DecodePolicy)

	// Event Bus
	publisherService := service.NewPublisherService(cfg.Events.Topic, infra.PubSub)
	var forwarder service.EventForwarder
	if infra.Nats != nil {
		forwarder = infra.Nats
	}
	consumerService := service.NewConsumerService(infra.PubSub, cfg.Events.Topic, forwarder, infra.Logger)

	// Services
	taxonomyService := service.NewTaxonomyService(infra.TaxonomyRepo, infra.Logger)
	selectionService := service.NewSelectionService(taxonomyService, policy, infra.Logger)
	sessionService := service.NewSessionService(infra.SessionRepo, selectionService, taxonomyService, publisherService, infra.Logger)

	// WebSocket Hub
	wsHub := websocket.NewHub(infra.Redis, infra.WsLogger)

	pageController, err := controller.NewPageController(taxonomyService, selectionService, cfg.App.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse page templates: %w", err)
	}

	infra.Logger.Info("Bootstrap", "Container ready", map[string]interface{}{
		"taxonomy_source": cfg.Taxonomy.Source,
		"session_store":   cfg.Session.Store,
		"decode_policy":   policy.String(),
		"nats":            infra.Nats != nil,
	})

	return &Container{
		Logger: infra.Logger,

		PageController:      pageController,
		TaxonomyController:  controller.NewTaxonomyController(taxonomyService),
		SelectionController: controller.NewSelectionController(selectionService),
		SessionController:   controller.NewSessionController(sessionService),

		PickerHandler: handler.NewPickerHandler(sessionService, wsHub, infra.WsLogger),
		WebSocketHub:  wsHub,

		TaxonomyService:  taxonomyService,
		SelectionService: selectionService,
		SessionService:   sessionService,

		ConsumerService: consumerService,

		Infrastructure: infra,
	}, nil
}
