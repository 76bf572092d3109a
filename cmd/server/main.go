package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"gatepass/internal/audit"
	authhandler "gatepass/internal/auth/handler"
	authservice "gatepass/internal/auth/service"
	authstore "gatepass/internal/auth/store"
	"gatepass/internal/auth/token"
	"gatepass/internal/badge"
	badgehandler "gatepass/internal/badge/handler"
	badgemetrics "gatepass/internal/badge/metrics"
	"gatepass/internal/badge/scansession"
	httpapi "gatepass/internal/http"
	"gatepass/internal/notify"
	notifymetrics "gatepass/internal/notify/metrics"
	orderhandler "gatepass/internal/order/handler"
	orderservice "gatepass/internal/order/service"
	orderstore "gatepass/internal/order/store"
	"gatepass/internal/platform/config"
	"gatepass/internal/platform/httpserver"
	"gatepass/internal/platform/logger"
	"gatepass/internal/platform/redis"
	visitorhandler "gatepass/internal/visitor/handler"
	visitorservice "gatepass/internal/visitor/service"
	visitorstore "gatepass/internal/visitor/store"
)

// main wires dependencies and owns the process lifecycle. Business logic
// lives in the internal service packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Persistence: PostgreSQL when configured, in-memory otherwise.
	var (
		db       *sql.DB
		visitors visitorservice.Store
		orders   orderservice.Store
	)
	if cfg.DatabaseURL != "" {
		var err error
		db, err = sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			log.Error("failed to open database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		if err := db.PingContext(ctx); err != nil {
			log.Error("database unreachable", "error", err)
			os.Exit(1)
		}
		visitors = visitorstore.NewPostgres(db)
		orders = orderstore.NewPostgres(db)
		log.Info("using postgres stores")
	} else {
		visitors = visitorstore.NewMemory()
		orders = orderstore.NewMemory()
		log.Warn("DATABASE_URL not set, using in-memory stores")
	}

	// Scan sessions: Redis when configured, in-memory otherwise.
	redisClient, err := redis.New(cfg.Redis)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	var sessions scansession.Store
	if redisClient != nil {
		defer redisClient.Close()
		sessions = scansession.NewRedis(redisClient.Client)
		log.Info("using redis scan session store")
	} else {
		sessions = scansession.NewMemory()
	}

	// Notification channels, in configuration order: email, then WhatsApp.
	channels := make([]notify.Channel, 0, 2)
	if cfg.Notify.ResendAPIKey != "" {
		channels = append(channels, notify.NewEmailChannel(
			cfg.Notify.ResendAPIKey, cfg.Notify.FromEmail, cfg.Notify.SecurityEmail))
	} else {
		log.Warn("RESEND_API_KEY not set, email channel disabled")
	}
	channels = append(channels, notify.NewWhatsAppChannel(
		cfg.Notify.WhatsAppToken, cfg.Notify.WhatsAppPhoneNumberID,
		cfg.Notify.PartnerRecipients, cfg.Notify.DefaultRecipient, log))

	dispatcher := notify.NewDispatcher(log, channels,
		notify.WithTimeout(cfg.Notify.DispatchTimeout),
		notify.WithMetrics(notifymetrics.New()),
	)

	// Audit trail: non-blocking emitter feeding a background worker.
	auditInbox := make(chan audit.Event, 256)
	auditWorker := audit.NewWorker(audit.NewMemoryStore(), auditInbox, log)
	go func() {
		if err := auditWorker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("audit worker stopped", "error", err)
		}
	}()
	emitter := audit.NewEmitter(auditInbox, log)

	// Services.
	visitorSvc := visitorservice.New(visitors, log)

	badgeOpts := []badge.Option{
		badge.WithMetrics(badgemetrics.New()),
		badge.WithAudit(emitter),
		badge.WithSessionTTL(cfg.ScanSessionTTL),
	}
	if cfg.StrictValidation {
		badgeOpts = append(badgeOpts, badge.WithPolicy(badge.StrictPolicy))
	}
	badgeSvc := badge.NewService(visitors, dispatcher, sessions, log, badgeOpts...)

	partners := orderservice.NewPartnerDirectory(cfg.Notify.PartnerRecipients, cfg.Notify.DefaultRecipient)
	orderSvc := orderservice.New(orders, dispatcher, partners, log, orderservice.WithAudit(emitter))

	tokens := token.NewService(cfg.JWTSigningKey, "gatepass", "gatepass-api")
	authSvc := authservice.New(authstore.NewMemory(), tokens, cfg.AccessTokenTTL, log)
	seedAdmin(ctx, authSvc, cfg.BootstrapAdmin, log)

	// HTTP surface.
	router := httpapi.NewRouter(httpapi.Deps{
		Logger:    log,
		Validator: tokens,
		Public: []httpapi.Registrar{
			authhandler.New(authSvc, log),
			visitorhandler.New(visitorSvc, log),
			badgehandler.New(badgeSvc, log),
		},
		Protected: []httpapi.Registrar{
			orderhandler.New(orderSvc, log),
		},
		HealthChecks: healthChecks(db, redisClient),
	})

	srv := httpserver.New(cfg.Addr, router)
	go func() {
		log.Info("starting gatepass", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
}

func seedAdmin(ctx context.Context, svc *authservice.AuthService, admin config.AdminConfig, log *slog.Logger) {
	if _, err := svc.CreateUser(ctx, admin.Email, admin.Name, admin.Password); err != nil {
		log.Error("failed to seed admin user", "email", admin.Email, "error", err)
		return
	}
	log.Info("seeded admin user", "email", admin.Email)
}

func healthChecks(db *sql.DB, redisClient *redis.Client) map[string]func(ctx context.Context) error {
	checks := make(map[string]func(ctx context.Context) error)
	if db != nil {
		checks["postgres"] = db.PingContext
	}
	if redisClient != nil {
		checks["redis"] = redisClient.Health
	}
	return checks
}
