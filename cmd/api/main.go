package main

import (
	"context"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/identity-service/internal/api/authflow"
	graphqlapi "github.com/spec-kit/identity-service/internal/api/graphql"
	grpcapi "github.com/spec-kit/identity-service/internal/api/grpc"
	httptransport "github.com/spec-kit/identity-service/internal/api/http"
	"github.com/spec-kit/identity-service/internal/api/http/handlers"
	"github.com/spec-kit/identity-service/internal/auth"
	"github.com/spec-kit/identity-service/internal/config"
	"github.com/spec-kit/identity-service/internal/events"
	"github.com/spec-kit/identity-service/internal/observability"
	"github.com/spec-kit/identity-service/internal/persistence"
	"github.com/spec-kit/identity-service/internal/service"
	"github.com/spec-kit/identity-service/internal/worker"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	logger = logger.With(zap.String("service", cfg.App.Name), zap.String("version", cfg.App.Version))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := observability.SetupTracing(ctx, cfg.Tracing, cfg.App)
	if err != nil {
		logger.Fatal("failed to init tracing", zap.Error(err))
	}

	stores, err := persistence.Open(ctx, *cfg, logger)
	if err != nil {
		logger.Fatal("failed to open identity store", zap.Error(err))
	}
	defer stores.Close()

	tokens, err := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL())
	if err != nil {
		logger.Fatal("failed to init token manager", zap.Error(err))
	}

	policy, err := service.PolicyFromConfig(cfg.Auth.AdminRegistrationPolicy)
	if err != nil {
		logger.Fatal("invalid admin registration policy", zap.Error(err))
	}

	authService := service.NewAuthService(service.AuthDependencies{
		Identities: stores.Identities,
		Tokens:     tokens,
		Policy:     policy,
		BcryptCost: cfg.Auth.BcryptCost,
	})

	if cfg.Auth.BootstrapAdminEmail != "" {
		admin, created, err := authService.BootstrapAdmin(ctx, auth.Credentials{
			Email:    cfg.Auth.BootstrapAdminEmail,
			Password: cfg.Auth.BootstrapAdminPassword,
		})
		if err != nil {
			logger.Fatal("failed to bootstrap admin", zap.Error(err))
		}
		logger.Info("bootstrap admin ready", zap.String("admin_id", admin.ID), zap.Bool("created", created))
	}

	dispatcher := events.NewInMemoryDispatcher()
	worker.StartAuditWorker(dispatcher, logger)

	metrics := observability.NewMetrics()

	newFlow := func(transport string) *authflow.Flow {
		return authflow.New(authflow.Dependencies{
			Core:         authService,
			Verifier:     tokens,
			Events:       dispatcher,
			BearerScheme: cfg.Auth.BearerScheme,
			Transport:    transport,
		})
	}

	schema, err := graphqlapi.NewSchema(newFlow(authflow.TransportGraphQL))
	if err != nil {
		logger.Fatal("failed to build graphql schema", zap.Error(err))
	}

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: true,
		ReadTimeout:           cfg.App.RequestTimeout(),
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, stores.Driver, stores),
		Metrics:        handlers.NewMetricsHandler(metrics),
		GraphQL:        graphqlapi.NewHandler(schema),
		AuthMiddleware: auth.NewAuthMiddleware(cfg.Auth.BearerHeader),
	})

	lis, err := net.Listen("tcp", cfg.GRPC.Addr())
	if err != nil {
		logger.Fatal("grpc listen", zap.Error(err))
	}
	grpcServer := grpcapi.NewServer(grpcapi.NewAuthHandler(newFlow(authflow.TransportGRPC)), logger, metrics)

	grpcDone := make(chan error, 1)
	go func() {
		grpcDone <- grpcServer.Serve(ctx, lis)
	}()

	httpDone := make(chan error, 1)
	go func() {
		logger.Info("http server listening", zap.String("addr", cfg.App.Addr()))
		httpDone <- app.Listen(cfg.App.Addr())
	}()

	grpcStopped := false
	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case err := <-grpcDone:
		grpcStopped = true
		logger.Error("grpc server stopped", zap.Error(err))
		stop()
	case err := <-httpDone:
		logger.Error("http server stopped", zap.Error(err))
		stop()
	}

	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		logger.Warn("http shutdown", zap.Error(err))
	}
	if !grpcStopped {
		if err := <-grpcDone; err != nil {
			logger.Warn("grpc shutdown", zap.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Warn("tracing shutdown", zap.Error(err))
	}
}
