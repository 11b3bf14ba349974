package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	httptransport "github.com/spec-kit/content-service/internal/api/http"
	"github.com/spec-kit/content-service/internal/api/http/handlers"
	"github.com/spec-kit/content-service/internal/auth"
	"github.com/spec-kit/content-service/internal/config"
	"github.com/spec-kit/content-service/internal/events"
	"github.com/spec-kit/content-service/internal/mail"
	"github.com/spec-kit/content-service/internal/media"
	"github.com/spec-kit/content-service/internal/observability"
	"github.com/spec-kit/content-service/internal/persistence"
	"github.com/spec-kit/content-service/internal/ratelimit"
	"github.com/spec-kit/content-service/internal/repository"
	"github.com/spec-kit/content-service/internal/service"
	"github.com/spec-kit/content-service/internal/storage"
	"github.com/spec-kit/content-service/internal/worker"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if len(os.Args) > 1 && os.Args[1] == "hash-password" {
		if err := printPasswordHash(os.Stdin, os.Stdout, cfg.Auth.BcryptCost); err != nil {
			log.Fatalf("failed to hash password: %v", err)
		}
		return
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdownTracing, err := observability.InitTracing(ctx, cfg.Tracing, cfg.App.Version, logger)
	if err != nil {
		logger.Fatal("failed to init tracing", zap.Error(err))
	}

	metrics, err := observability.NewMetrics()
	if err != nil {
		logger.Fatal("failed to init metrics", zap.Error(err))
	}

	deps := map[string]handlers.Pinger{}
	store, closeStore := openStore(ctx, cfg, logger, deps)
	defer closeStore()

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()
	var limiter ratelimit.Limiter = ratelimit.NewMemoryLimiter(cfg.Contact.RateLimit, cfg.Contact.RateWindow)
	if redis != nil {
		deps["redis"] = redis
		limiter = ratelimit.NewRedisLimiter(redis.Client, "contact", cfg.Contact.RateLimit, cfg.Contact.RateWindow)
	}

	var host media.Host = media.UnavailableHost{}
	if cfg.Media.Enabled() {
		minioHost, err := storage.NewMinioHost(ctx, cfg.Media, logger)
		if err != nil {
			logger.Fatal("failed to init media host", zap.Error(err))
		}
		deps["media"] = minioHost
		host = minioHost
	} else {
		logger.Warn("MEDIA_ENDPOINT not provided; image uploads are disabled")
	}
	resolver := media.NewResolver(host, logger, metrics)

	dispatcher := events.NewAsyncDispatcher(logger)
	var sender mail.Sender
	if cfg.Mail.Enabled() {
		pool, err := mail.NewPool(cfg.Mail, logger)
		if err != nil {
			logger.Fatal("failed to init mail pool", zap.Error(err))
		}
		defer pool.Close()
		sender = pool
	} else {
		logger.Warn("mail credentials not provided; contact notifications are disabled")
	}
	worker.StartNotificationWorker(service.NewNotificationService(dispatcher, sender, metrics, logger, service.NotificationConfig{
		Company:    cfg.Mail.FromName,
		OwnerEmail: cfg.Mail.OwnerEmail,
		Location:   pragueLocation(logger),
	}))

	tokens, err := auth.NewTokenService(cfg.Auth.AccessSecret, cfg.Auth.RefreshSecret, cfg.Auth.AccessTTL, cfg.Auth.RefreshTTL)
	if err != nil {
		logger.Fatal("failed to init token service", zap.Error(err))
	}
	maxUpload := cfg.Media.MaxUploadBytes

	app := httptransport.NewServer(httptransport.ServerConfig{
		AppName:   cfg.App.Name,
		BodyLimit: cfg.App.BodyLimitBytes,
		Middlewares: httptransport.MiddlewareConfig{
			Timeout:    cfg.App.RequestTimeout(),
			ShowStacks: !cfg.App.IsProduction(),
		},
		Routes: httptransport.RouteConfig{
			Health:   handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, deps),
			Admin:    handlers.NewAdminHandler(service.NewAuthService(tokens, cfg.Auth.AdminID, cfg.Auth.AdminPassword)),
			About:    handlers.NewAboutHandler(service.NewAboutService(store.About, resolver, maxUpload)),
			Team:     handlers.NewTeamHandler(service.NewTeamService(store.Team, resolver, maxUpload)),
			Projects: handlers.NewProjectHandler(service.NewProjectService(store.Projects, resolver, maxUpload)),
			Services: handlers.NewOfferingHandler(service.NewOfferingService(store.Services, resolver, maxUpload)),
			Careers:  handlers.NewCareerHandler(service.NewCareerService(store.Careers)),
			Blog:     handlers.NewBlogHandler(service.NewBlogService(store.Blog, resolver, maxUpload)),
			Contact:  handlers.NewContactHandler(service.NewContactService(store.Contacts, dispatcher, logger)),

			AuthMiddleware: auth.NewAuthMiddleware(tokens),
			ContactLimit:   ratelimit.Middleware(limiter, ratelimit.ClientIP(cfg.App.TrustedProxyHops), logger),
			CORSOrigins:    cfg.App.CORSOrigins,
			Tracing:        cfg.Tracing.Enabled,
		},
	}, logger, metrics)

	go func() {
		logger.Info("listening", zap.String("addr", cfg.App.Addr()), zap.String("store", cfg.Store.Driver))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		logger.Warn("http shutdown", zap.Error(err))
	}
	worker.StopNotificationWorker(dispatcher, shutdownTimeout, logger)

	flushCtx, flushCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer flushCancel()
	if err := shutdownTracing(flushCtx); err != nil {
		logger.Warn("tracing shutdown", zap.Error(err))
	}
}

// openStore connects the configured document store and registers it for
// readiness checks.
func openStore(ctx context.Context, cfg *config.Config, logger *zap.Logger, deps map[string]handlers.Pinger) (*repository.Store, func()) {
	switch cfg.Store.Driver {
	case config.StoreDriverMongo:
		m, err := persistence.NewMongo(ctx, cfg.Store, logger)
		if err != nil {
			logger.Fatal("failed to connect mongo", zap.Error(err))
		}
		deps["mongo"] = m
		return repository.NewMongoStore(m.Database), func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			m.Close(closeCtx)
		}
	case config.StoreDriverPostgres:
		pg, err := persistence.NewPostgres(ctx, cfg.Store, logger)
		if err != nil {
			logger.Fatal("failed to connect postgres", zap.Error(err))
		}
		if cfg.Store.RunMigrations {
			if err := persistence.RunMigrations(ctx, pg.DB, logger); err != nil {
				logger.Fatal("failed to run migrations", zap.Error(err))
			}
		}
		deps["postgres"] = pg
		return repository.NewPostgresStore(pg.DB), pg.Close
	default:
		logger.Warn("using in-memory store; data is lost on restart")
		return repository.NewMemoryStore(), func() {}
	}
}

func pragueLocation(logger *zap.Logger) *time.Location {
	loc, err := time.LoadLocation("Europe/Prague")
	if err != nil {
		logger.Warn("Europe/Prague timezone unavailable; using UTC", zap.Error(err))
		return time.UTC
	}
	return loc
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}

// printPasswordHash reads a password from the first line of r and writes its
// bcrypt hash, suitable for ADMIN_PANEL_PASSWORD.
func printPasswordHash(r io.Reader, w io.Writer, cost int) error {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		return errors.New("empty password")
	}
	hashed, err := auth.HashPassword(password, cost)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, hashed)
	return err
}
