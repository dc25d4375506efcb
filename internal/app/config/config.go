package config

import (
	"lesson-display-service/internal/pkg/utils"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		Redis: Redis{
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
			DB:       utils.GetEnvInt("REDIS_DB", 0),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
		},
		RabbitMQ: RabbitMQ{
			Enabled:  utils.GetEnvBool("RABBITMQ_ENABLED", false),
			Port:     utils.GetEnvString("RABBITMQ_PORT", "5672"),
			Host:     utils.GetEnvString("RABBITMQ_HOST", "localhost"),
			Username: utils.GetEnvString("RABBITMQ_USERNAME", "guest"),
			Password: utils.GetEnvString("RABBITMQ_PASSWORD", "guest"),
		},
		Minio: Minio{
			Port:     utils.GetEnvString("MINIO_PORT", "9000"),
			Host:     utils.GetEnvString("MINIO_HOST", "localhost"),
			Username: utils.GetEnvString("MINIO_USERNAME", "minioadmin"),
			Password: utils.GetEnvString("MINIO_PASSWORD", "minioadmin"),
			UseSSL:   utils.GetEnvBool("MINIO_USE_SSL", false),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:                      utils.GetEnvString("APP_ENV", "development"),
			Port:                     utils.GetEnvString("APP_PORT", ":8080"),
			Version:                  utils.GetEnvString("APP_VERSION", "v1"),
			Timezone:                 utils.GetEnvString("APP_TIMEZONE", "Europe/Prague"),
			EndpointPrefix:           utils.GetEnvString("APP_ENDPOINT_PREFIX", "api"),
			MaxRequests:              utils.GetEnvInt("APP_MAX_REQUEST", 20),
			ShutdownTimeoutInSeconds: utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT_IN_SECONDS", 10),
			ControlAPIKey:            utils.GetEnvString("APP_CONTROL_API_KEY", ""),
			ControlRequestsPerMinute: utils.GetEnvInt("APP_CONTROL_REQUESTS_PER_MINUTE", 60),
			RabbitMQDisplayExchange:  utils.GetEnvString("APP_RABBITMQ_DISPLAY_EXCHANGE", "display.pages"),
		},
		Rotation: AppRotation{
			MainPageDurationInMilliseconds:  utils.GetEnvInt("ROTATION_MAIN_PAGE_DURATION_IN_MILLISECONDS", 15000),
			OtherPageDurationInMilliseconds: utils.GetEnvInt("ROTATION_OTHER_PAGE_DURATION_IN_MILLISECONDS", 5000),
			DebugMode:                       utils.GetEnvBool("ROTATION_DEBUG_MODE", false),
			DateOverride:                    utils.GetEnvString("ROTATION_DATE_OVERRIDE", ""),
			TimeOverride:                    utils.GetEnvString("ROTATION_TIME_OVERRIDE", ""),
		},
		Schedule: AppSchedule{
			BucketName:                utils.GetEnvString("SCHEDULE_BUCKET_NAME", "website"),
			ObjectKey:                 utils.GetEnvString("SCHEDULE_OBJECT_KEY", "data/schedule.json"),
			RefreshCronSpec:           utils.GetEnvString("SCHEDULE_REFRESH_CRON_SPEC", "@every 60s"),
			CacheTTLInSeconds:         utils.GetEnvInt("SCHEDULE_CACHE_TTL_IN_SECONDS", 300),
			LeaderLockTTLInSeconds:    utils.GetEnvInt("SCHEDULE_LEADER_LOCK_TTL_IN_SECONDS", 30),
			FetchTimeoutInSeconds:     utils.GetEnvInt("SCHEDULE_FETCH_TIMEOUT_IN_SECONDS", 20),
			SnapshotCacheTTLInSeconds: utils.GetEnvInt("SCHEDULE_SNAPSHOT_CACHE_TTL_IN_SECONDS", 120),
			PublisherBufferSize:       utils.GetEnvInt("SCHEDULE_PUBLISHER_BUFFER_SIZE", 32),
			PublisherTimeoutInSeconds: utils.GetEnvInt("SCHEDULE_PUBLISHER_TIMEOUT_IN_SECONDS", 5),
		},
	}
}
