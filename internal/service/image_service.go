package service

import (
	"bytes"
	"fmt"

	"github.com/disintegration/imaging"
)

// ImageService приводит загружаемые фотографии к фиксированным
// размерам и перекодирует их в JPEG
type ImageService struct {
	quality int
}

func NewImageService() *ImageService {
	return &ImageService{quality: 90}
}

// ResizeJPEG обрезает изображение по центру до заданных размеров.
// Fill сохраняет пропорции, лишнее отсекается.
func (s *ImageService) ResizeJPEG(data []byte, width, height int) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("[ImageService] не удалось декодировать изображение: %w", err)
	}

	resized := imaging.Fill(img, width, height, imaging.Center, imaging.Lanczos)

	var out bytes.Buffer
	if err := imaging.Encode(&out, resized, imaging.JPEG, imaging.JPEGQuality(s.quality)); err != nil {
		return nil, fmt.Errorf("[ImageService] не удалось закодировать изображение: %w", err)
	}

	return out.Bytes(), nil
}
