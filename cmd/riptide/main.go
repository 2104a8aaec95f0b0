package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"riptide/config"
	"riptide/internal/delivery"
	"riptide/internal/delivery/http"
	httpmiddleware "riptide/internal/delivery/http/middleware"
	"riptide/internal/delivery/http/router/handler"
	"riptide/internal/delivery/worker"
	workerhandler "riptide/internal/delivery/worker/handler"
	"riptide/internal/domain/service"
	"riptide/internal/infra/auth"
	"riptide/internal/infra/callback"
	logs "riptide/internal/infra/log"
	"riptide/internal/infra/persistence/mongo"
	"riptide/internal/infra/pubsub"
	"riptide/internal/infra/push"
	"riptide/internal/infra/storage"
	"riptide/internal/infra/vision"
	"riptide/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		mongo.New,
		mongo.NewStore,
		storage.NewMediaStore,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			mongo.NewUserRepository,
			mongo.NewDeviceTokenRepository,
			mongo.NewHistoryRepository,
			mongo.NewNotificationRepository,
			mongo.NewDetectionRepository,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
			newPushService,
			pubsub.NewEventPublisher,
			newDetectorFactory,
			newCallbackClient,
		),
	)
}

// newPushService creates a push service with dependency injection
func newPushService(ctx context.Context, cfg *config.Config, logger *slog.Logger) (service.PushService, error) {
	if cfg.Firebase == nil || cfg.Firebase.CredentialsPath == "" {
		logger.Info("Firebase not configured, push messages will only be logged")

		return push.NewLogService(logger), nil
	}

	svc, err := push.NewFirebaseService(ctx, cfg.Firebase.CredentialsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create Firebase service: %w", err)
	}

	return svc, nil
}

// newDetectorFactory creates a detector factory with dependency injection
func newDetectorFactory(cfg *config.Config) service.DetectorFactory {
	return vision.NewDetectorFactory(cfg.Detection.InferenceURL)
}

// newCallbackClient creates the detection worker's API client with dependency injection
func newCallbackClient(cfg *config.Config, logger *slog.Logger) *callback.Client {
	return callback.NewClient(cfg.BaseAddress, cfg.HTTP.Port, logger)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewUserService,
			impl.NewDeviceTokenService,
			impl.NewUploadService,
			impl.NewHistoryService,
			impl.NewNotificationService,
			impl.NewDetectionService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			httpmiddleware.NewAuthMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewUserHandler,
			handler.NewDeviceTokenHandler,
			handler.NewUploadHandler,
			handler.NewDetectionHandler,
			handler.NewHistoryHandler,
			handler.NewNotificationHandler,
			workerhandler.NewPushHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
			fx.Annotate(
				worker.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
