package config

import "time"

type InternalConfig struct {
	App      App         `mapstructure:"app"`
	Rotation AppRotation `mapstructure:"rotation"`
	Schedule AppSchedule `mapstructure:"schedule"`
}

type App struct {
	Env                      string `mapstructure:"env"`
	Port                     string `mapstructure:"port"`
	Version                  string `mapstructure:"version"`
	Timezone                 string `mapstructure:"timezone"`
	EndpointPrefix           string `mapstructure:"endpoint_prefix"`
	MaxRequests              int    `mapstructure:"max_requests"`
	ShutdownTimeoutInSeconds int    `mapstructure:"shutdown_timeout_in_seconds"`
	// ControlAPIKey guards the manual control routes. Empty disables the check.
	ControlAPIKey string `mapstructure:"control_api_key"`
	// ControlRequestsPerMinute caps control calls per client IP.
	ControlRequestsPerMinute int    `mapstructure:"control_requests_per_minute"`
	RabbitMQDisplayExchange  string `mapstructure:"rabbitmq_display_exchange"`
}

// AppRotation holds dwell times and the boot-time debug controls.
type AppRotation struct {
	MainPageDurationInMilliseconds  int    `mapstructure:"main_page_duration_in_milliseconds"`
	OtherPageDurationInMilliseconds int    `mapstructure:"other_page_duration_in_milliseconds"`
	DebugMode                       bool   `mapstructure:"debug_mode"`
	DateOverride                    string `mapstructure:"date_override"`
	TimeOverride                    string `mapstructure:"time_override"`
}

func (r AppRotation) MainPageDuration() time.Duration {
	return time.Duration(r.MainPageDurationInMilliseconds) * time.Millisecond
}

func (r AppRotation) OtherPageDuration() time.Duration {
	return time.Duration(r.OtherPageDurationInMilliseconds) * time.Millisecond
}

// AppSchedule configures where schedule.json comes from and how often it is re-read.
type AppSchedule struct {
	BucketName                string `mapstructure:"bucket_name"`
	ObjectKey                 string `mapstructure:"object_key"`
	RefreshCronSpec           string `mapstructure:"refresh_cron_spec"`
	CacheTTLInSeconds         int    `mapstructure:"cache_ttl_in_seconds"`
	LeaderLockTTLInSeconds    int    `mapstructure:"leader_lock_ttl_in_seconds"`
	FetchTimeoutInSeconds     int    `mapstructure:"fetch_timeout_in_seconds"`
	SnapshotCacheTTLInSeconds int    `mapstructure:"snapshot_cache_ttl_in_seconds"`
	PublisherBufferSize       int    `mapstructure:"publisher_buffer_size"`
	PublisherTimeoutInSeconds int    `mapstructure:"publisher_timeout_in_seconds"`
}
