package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lesson-display-service/internal/app/config"
	"lesson-display-service/internal/app/contracts"
	"lesson-display-service/internal/app/delivery/http/controllers"
	"lesson-display-service/internal/app/delivery/http/middlewares"
	"lesson-display-service/internal/app/delivery/http/routers"
	"lesson-display-service/internal/app/drivers/database"
	"lesson-display-service/internal/app/drivers/logger"
	"lesson-display-service/internal/app/drivers/messaging"
	"lesson-display-service/internal/app/drivers/storage"
	"lesson-display-service/internal/app/services/core/clock"
	"lesson-display-service/internal/app/services/core/display"
	"lesson-display-service/internal/app/services/core/rotation"
	"lesson-display-service/internal/app/services/core/slot"
	"lesson-display-service/internal/app/services/shared/locker"
	"lesson-display-service/internal/app/services/shared/publisher"
	"lesson-display-service/internal/app/services/shared/redis"
	scheduleStorage "lesson-display-service/internal/app/services/shared/storage"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		log.Fatalf("Error loading location: %v", err)
	}
	time.Local = location

	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)

	redisClient := database.NewRedisClient(driverConfig, zapLogger)
	minioClient := storage.NewMinio(driverConfig, internalConfig.Schedule.BucketName, zapLogger)
	rabbitMQConnection := messaging.NewRabbitMQ(driverConfig, zapLogger)
	chiRouter := chi.NewRouter()

	bootstrap := &config.Bootstrap{
		Router:         chiRouter,
		Redis:          redisClient,
		Minio:          minioClient,
		RabbitMQ:       rabbitMQConnection,
		Logger:         zapLogger,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}
	bootstrapingTheApp(bootstrap)

	server := &http.Server{
		Addr:              internalConfig.App.Port,
		Handler:           chiRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zapLogger.Info("Server listening", zap.String("addr", server.Addr))
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	log.Println("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeoutInSeconds),
	)
	defer cancel()

	err = server.Shutdown(shutdownCtx)
	if err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	err = bootstrap.Shutdown(shutdownCtx)
	if err != nil {
		log.Printf("Error during shutdown: %v", err)
	}

	log.Println("Server exiting")
}

func bootstrapingTheApp(bootstrap *config.Bootstrap) {
	internalConfig := bootstrap.InternalConfig
	scheduleConfig := internalConfig.Schedule

	// Redis
	redisRepository := redis.NewRedisRepository(bootstrap.Redis)
	scheduleCache := redis.NewScheduleCache(
		redisRepository,
		time.Duration(scheduleConfig.CacheTTLInSeconds)*time.Second,
		time.Duration(scheduleConfig.SnapshotCacheTTLInSeconds)*time.Second,
		bootstrap.Logger,
	)
	lockService := locker.NewLockService(redisRepository, bootstrap.Logger)

	// Page events
	var sink contracts.PageEventPublisher = publisher.NewLogPublisher(bootstrap.Logger)
	if bootstrap.RabbitMQ != nil {
		rabbitPublisher, err := publisher.NewRabbitMQPublisher(bootstrap.RabbitMQ, internalConfig.App.RabbitMQDisplayExchange, bootstrap.Logger)
		if err != nil {
			bootstrap.Logger.Fatal("Failed to set up page event exchange", zap.Error(err))
		}
		sink = rabbitPublisher
	}
	pagePublisher := publisher.NewPagePublisher(
		sink,
		scheduleCache,
		scheduleConfig.PublisherBufferSize,
		time.Duration(scheduleConfig.PublisherTimeoutInSeconds)*time.Second,
		bootstrap.Logger,
	)
	pagePublisher.Start(context.Background())

	// Rotation
	classifier := slot.MustNewClassifier(slot.DefaultTimeSlots)
	source := clock.NewSource(time.Local)
	scheduler := rotation.New(
		classifier,
		source.Bind(clock.Override{}),
		rotation.NewRealTimer(),
		rotation.WithDurations(rotation.Durations{
			Main:  internalConfig.Rotation.MainPageDuration(),
			Other: internalConfig.Rotation.OtherPageDuration(),
		}),
		rotation.WithLogger(bootstrap.Logger),
		rotation.WithListener(pagePublisher),
	)

	// Display
	displayUsecase := display.NewUsecase(bootstrap.Logger, classifier, source, scheduler)
	displayUsecase.ApplyBootOverride(context.Background(), internalConfig.Rotation)

	// Schedule worker
	minioStorage := scheduleStorage.NewMinioScheduleStorage(bootstrap.Minio, scheduleConfig.BucketName, scheduleConfig.ObjectKey, bootstrap.Logger)
	worker := display.NewWorker(bootstrap.Logger, internalConfig, lockService, minioStorage, scheduleCache, displayUsecase)
	worker.Start(context.Background())
	bootstrap.WorkerStop = worker.Stop
	bootstrap.RotationStop = func() {
		scheduler.Stop()
		pagePublisher.Stop()
	}

	// HTTP
	middlewareInstance := middlewares.NewMiddlewares(bootstrap.Logger, internalConfig)
	displayController := controllers.NewDisplayController(bootstrap.Logger, displayUsecase, worker)

	routers.SetupRoutes(bootstrap.Router, internalConfig, middlewareInstance, displayController)
}
