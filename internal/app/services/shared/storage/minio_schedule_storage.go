package storage

import (
	"context"
	"fmt"
	"io"

	"lesson-display-service/internal/app/contracts"
	"lesson-display-service/internal/app/models"
	"lesson-display-service/internal/app/services/core/clock"
	"lesson-display-service/internal/pkg/constvars"
	"lesson-display-service/internal/pkg/exceptions"
	"lesson-display-service/internal/pkg/utils"

	"github.com/goccy/go-json"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// maxScheduleBytes bounds the document read from the bucket.
const maxScheduleBytes = 16 << 20

type minioScheduleStorage struct {
	client     *minio.Client
	bucketName string
	objectKey  string
	log        *zap.Logger
}

func NewMinioScheduleStorage(client *minio.Client, bucketName, objectKey string, log *zap.Logger) contracts.ScheduleStorage {
	return &minioScheduleStorage{
		client:     client,
		bucketName: bucketName,
		objectKey:  objectKey,
		log:        log,
	}
}

func (m *minioScheduleStorage) FetchSchedule(ctx context.Context) (*models.ScheduleDocument, error) {
	requestID := utils.GetRequestID(ctx)

	object, err := m.client.GetObject(ctx, m.bucketName, m.objectKey, minio.GetObjectOptions{})
	if err != nil {
		m.log.Error("minioScheduleStorage.FetchSchedule error calling GetObject",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingBucketKey, m.bucketName),
			zap.String(constvars.LoggingObjectKey, m.objectKey),
			zap.Error(err),
		)
		return nil, exceptions.ErrMinioGetObject(err, m.bucketName, m.objectKey)
	}
	defer object.Close()

	doc, dropped, err := DecodeSchedule(object)
	if err != nil {
		// GetObject is lazy; a missing key surfaces on the first read.
		if resp := minio.ToErrorResponse(err); resp.Code != "" {
			return nil, exceptions.ErrMinioGetObject(err, m.bucketName, m.objectKey)
		}
		m.log.Error("minioScheduleStorage.FetchSchedule error decoding document",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingObjectKey, m.objectKey),
			zap.Error(err),
		)
		return nil, err
	}
	if len(dropped) > 0 {
		m.log.Warn("minioScheduleStorage.FetchSchedule dropped malformed date keys",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Strings("keys", dropped),
		)
	}

	m.log.Info("minioScheduleStorage.FetchSchedule succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingObjectKey, m.objectKey),
		zap.Time(constvars.LoggingGeneratedAtKey, doc.GeneratedAt),
		zap.Int("date_count", len(doc.AllLessonsByDate)),
	)
	return doc, nil
}

// DecodeSchedule parses a schedule.json stream. Date keys that are not
// DD.MM.YYYY are removed and returned so the caller can report them.
func DecodeSchedule(r io.Reader) (*models.ScheduleDocument, []string, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxScheduleBytes+1))
	if err != nil {
		return nil, nil, err
	}
	if len(data) > maxScheduleBytes {
		return nil, nil, exceptions.ErrScheduleDocumentInvalid(fmt.Errorf("document exceeds %d bytes", maxScheduleBytes))
	}

	var doc models.ScheduleDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, nil, exceptions.ErrScheduleDocumentInvalid(err)
	}

	var dropped []string
	for key := range doc.AllLessonsByDate {
		if _, err := clock.ParseDate(key); err != nil {
			dropped = append(dropped, key)
			delete(doc.AllLessonsByDate, key)
		}
	}
	if doc.AllLessonsByDate == nil {
		doc.AllLessonsByDate = map[string][]models.Lesson{}
	}
	return &doc, dropped, nil
}
