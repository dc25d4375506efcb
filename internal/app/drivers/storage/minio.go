package storage

import (
	"context"
	"fmt"
	"lesson-display-service/internal/app/config"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

func NewMinio(driverConfig *config.DriverConfig, bucketName string, log *zap.Logger) *minio.Client {
	endPoint := fmt.Sprintf("%s:%s", driverConfig.Minio.Host, driverConfig.Minio.Port)
	minioClient, err := minio.New(endPoint, &minio.Options{
		Creds:  credentials.NewStaticV4(driverConfig.Minio.Username, driverConfig.Minio.Password, ""),
		Secure: driverConfig.Minio.UseSSL,
	})
	if err != nil {
		log.Fatal("Failed to initialize Minio Client", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	exists, err := minioClient.BucketExists(ctx, bucketName)
	if err != nil {
		log.Warn("Could not verify schedule bucket; continuing", zap.String("bucket", bucketName), zap.Error(err))
	} else if !exists {
		log.Warn("Schedule bucket does not exist yet", zap.String("bucket", bucketName))
	}

	log.Info("Successfully connected to minio", zap.String("endpoint", endPoint))
	return minioClient
}
