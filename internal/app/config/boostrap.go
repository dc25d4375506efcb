package config

import (
	"context"
	"log"

	"github.com/go-chi/chi/v5"
	"github.com/minio/minio-go/v7"
	"github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Bootstrap struct {
	Router         *chi.Mux
	Redis          *redis.Client
	Minio          *minio.Client
	Logger         *zap.Logger
	RabbitMQ       *amqp091.Connection
	InternalConfig *InternalConfig
	DriverConfig   *DriverConfig
	// WorkerStop if set will be called during Shutdown to stop the schedule refresh worker
	WorkerStop func()
	// RotationStop if set cancels the rotation timer and drains the page publisher
	RotationStop func()
}

func (b *Bootstrap) Shutdown(ctx context.Context) error {
	if b.WorkerStop != nil {
		b.WorkerStop()
		log.Println("Successfully stopped schedule worker")
	}

	if b.RotationStop != nil {
		b.RotationStop()
		log.Println("Successfully stopped page rotation")
	}

	err := b.Redis.Close()
	if err != nil {
		return err
	}
	log.Println("Successfully closing Redis")

	if b.RabbitMQ != nil {
		err = b.RabbitMQ.Close()
		if err != nil {
			return err
		}
		log.Println("Successfully closing RabbitMQ")
	}

	// Sync on stdout/stderr returns EINVAL on some platforms
	_ = b.Logger.Sync()
	log.Println("Successfully closing Logger")

	return nil
}
