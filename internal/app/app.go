package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"wedding-registry-go/internal/auth"
	"wedding-registry-go/internal/config"
	"wedding-registry-go/internal/db"
	guestbookdomain "wedding-registry-go/internal/domain/guestbook"
	guestsdomain "wedding-registry-go/internal/domain/guests"
	"wedding-registry-go/internal/metrics"
	"wedding-registry-go/internal/notification"
	"wedding-registry-go/internal/notification/resend"
	platformredis "wedding-registry-go/internal/platform/redis"
	"wedding-registry-go/internal/ratelimit"
	"wedding-registry-go/internal/repository/inmemory"
	guestbookrepo "wedding-registry-go/internal/repository/postgres/guestbook"
	guestsrepo "wedding-registry-go/internal/repository/postgres/guests"
	rediscache "wedding-registry-go/internal/repository/redis"
	"wedding-registry-go/internal/transport/httpserver"
	"wedding-registry-go/internal/transport/httpserver/handler"
	commonhandler "wedding-registry-go/internal/transport/httpserver/handler/common"
	guestbookhandler "wedding-registry-go/internal/transport/httpserver/handler/guestbook"
	guestshandler "wedding-registry-go/internal/transport/httpserver/handler/guests"
	"wedding-registry-go/pkg/logger"
)

type App struct {
	cfg        config.Config
	httpServer *http.Server
	db         *gorm.DB
	redis      *platformredis.Client
	log        logger.Logger
}

type Stores struct {
	Guests    guestsdomain.Repository
	Guestbook guestbookdomain.Repository
	DB        *gorm.DB
}

func New(ctx context.Context, log logger.Logger) (*App, error) {
	log.Info("app: loading config")
	cfg, err := config.Load(log)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	a := &App{cfg: cfg, log: log}
	pingers := map[string]commonhandler.Pinger{}

	log.Info("app: initializing storage", "driver", cfg.Store)
	stores, err := OpenStores(cfg, log)
	if err != nil {
		return nil, err
	}
	a.db = stores.DB
	if a.db != nil {
		pingers["postgres"] = dbPinger{db: a.db}
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	opts := []guestsdomain.Option{
		guestsdomain.WithLogger(log),
		guestsdomain.WithRecorder(m),
		guestsdomain.WithMaxGuestCount(cfg.RSVP.MaxGuestCount),
		guestsdomain.WithNotifier(newNotifier(cfg, log), cfg.Notify.Timeout),
	}

	redisClient, err := platformredis.New(ctx, cfg.Redis)
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	if redisClient != nil {
		log.Info("app: connected to redis")
		a.redis = redisClient
		pingers["redis"] = redisClient
	}

	if cfg.Redis.DirectoryCache {
		log.Info("app: initializing directory cache", "shared", redisClient != nil)
		opts = append(opts, guestsdomain.WithCache(directoryCache(redisClient, log), cfg.Redis.DirectoryTTL))
	}

	var limiter ratelimit.Store = ratelimit.NewMemoryStore()
	if redisClient != nil {
		limiter = ratelimit.NewRedisStore(redisClient)
	}

	credentials, err := auth.NewCredentials(cfg.Auth.WeddingPassword, cfg.Auth.AdminCode, bcrypt.DefaultCost)
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	sessions := auth.NewSessions(cfg.Auth.SessionSecret, cfg.Auth.SessionIssuer, cfg.Auth.GuestSessionTTL, cfg.Auth.AdminSessionTTL)

	guests := guestsdomain.NewService(stores.Guests, opts...)
	guestbook := guestbookdomain.NewService(stores.Guestbook)

	log.Info("app: initializing router")
	handlers := handler.New(
		commonhandler.New(credentials, sessions, pingers, log),
		guestshandler.New(guests, log),
		guestbookhandler.New(guestbook, log),
	)
	router := httpserver.NewRouter(cfg, handlers, sessions, limiter, registry, m, log)

	log.Info("app: initializing http server")
	a.httpServer = httpserver.New(cfg, router)

	return a, nil
}

// OpenStores connects the configured storage driver. The postgres driver
// applies pending migrations before returning.
func OpenStores(cfg config.Config, log logger.Logger) (Stores, error) {
	if cfg.Store == config.StoreMemory {
		log.Warn("app: using in-memory store, data is lost on restart")
		return Stores{
			Guests:    inmemory.NewGuestsRepository(),
			Guestbook: inmemory.NewGuestbookRepository(),
		}, nil
	}

	dbConn, err := db.NewPostgres(cfg.DB, log)
	if err != nil {
		return Stores{}, err
	}
	if err := db.Migrate(dbConn); err != nil {
		_ = Stores{DB: dbConn}.Close()
		return Stores{}, fmt.Errorf("migrate: %w", err)
	}
	return Stores{
		Guests:    guestsrepo.NewPostgres(dbConn),
		Guestbook: guestbookrepo.NewPostgres(dbConn),
		DB:        dbConn,
	}, nil
}

func directoryCache(client *platformredis.Client, log logger.Logger) guestsdomain.Cache {
	if client == nil {
		return inmemory.NewDirectoryCache()
	}
	return rediscache.NewDirectoryCache(client, log)
}

func newNotifier(cfg config.Config, log logger.Logger) guestsdomain.Notifier {
	if cfg.Notify.ResendAPIKey == "" {
		log.Warn("app: RESEND_API_KEY not set, emails will only be logged")
		return notification.NewLogNotifier(log)
	}
	return resend.NewClient(resend.Config{
		APIKey:            cfg.Notify.ResendAPIKey,
		BaseURL:           cfg.Notify.ResendBaseURL,
		From:              cfg.Notify.From,
		NotificationEmail: cfg.Notify.NotificationEmail,
		SiteURL:           cfg.Event.SiteURL,
		CoupleNames:       cfg.Event.CoupleNames,
		WeddingDate:       cfg.Event.WeddingDate,
	}, &http.Client{Timeout: cfg.Notify.Timeout})
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

func (a *App) Close() error {
	var errs []error
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close redis: %w", err))
		}
	}
	if a.db != nil {
		sqlDB, err := a.db.DB()
		if err != nil {
			errs = append(errs, err)
		} else if err := sqlDB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close db: %w", err))
		}
	}
	return errors.Join(errs...)
}

// Close releases the connection OpenStores made, if any.
func (s Stores) Close() error {
	if s.DB == nil {
		return nil
	}
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

type dbPinger struct {
	db *gorm.DB
}

func (p dbPinger) Health(ctx context.Context) error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
