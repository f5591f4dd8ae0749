package ports

import (
	"context"
	"time"
)

// S3Storage : хранилище загруженных фотографий
type S3Storage interface {
	PutObject(ctx context.Context, key string, data []byte, contentType string) error
	GeneratePresignedGetURL(ctx context.Context, key string, expire time.Duration) (string, error)
	DeleteObject(ctx context.Context, key string) error
}

// ImageTranscoder : ресайз и перекодирование загружаемых изображений
type ImageTranscoder interface {
	ResizeJPEG(data []byte, width, height int) ([]byte, error)
}
