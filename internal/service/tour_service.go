package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"tour-booking-api/config"
	"tour-booking-api/internal/model"
	"tour-booking-api/internal/model/requestresponse"
	"tour-booking-api/internal/ports"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// slugify : "The Forest Hiker" -> "the-forest-hiker"
func slugify(name string) string {
	slug := slugPattern.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(slug, "-")
}

type TourService struct {
	tourRepository ports.TourRepository
	imageStore     ports.S3Storage
	transcoder     ports.ImageTranscoder
	db             *config.Database
	validate       *validator.Validate
}

func NewTourService(tourRepository ports.TourRepository, imageStore ports.S3Storage, transcoder ports.ImageTranscoder, db *config.Database) *TourService {
	return &TourService{
		tourRepository: tourRepository,
		imageStore:     imageStore,
		transcoder:     transcoder,
		db:             db,
		validate:       validator.New(),
	}
}

func (s *TourService) CreateTour(ctx context.Context, req *requestresponse.CreateTourRequest) (*model.Tour, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("[TourService] некорректные данные тура: %w", err)
	}
	if req.PriceDiscount != nil && *req.PriceDiscount >= req.Price {
		return nil, fmt.Errorf("[TourService] скидка должна быть меньше цены тура")
	}

	tour := &model.Tour{
		UUID:           uuid.New().String(),
		Name:           req.Name,
		Slug:           slugify(req.Name),
		Duration:       req.Duration,
		MaxGroupSize:   req.MaxGroupSize,
		Difficulty:     req.Difficulty,
		Price:          req.Price,
		PriceDiscount:  req.PriceDiscount,
		Summary:        req.Summary,
		Description:    req.Description,
		ImageCover:     "default-cover.jpg",
		StartDates:     req.StartDates,
		RatingsAverage: 4.5,
	}

	created, err := s.tourRepository.Create(ctx, s.db, tour)
	if err != nil {
		return nil, fmt.Errorf("[TourService] ошибка создания тура: %w", err)
	}
	return created, nil
}

func (s *TourService) GetTour(ctx context.Context, uuid string) (*model.Tour, error) {
	tour, err := s.tourRepository.GetByUUID(ctx, s.db, uuid)
	if err != nil {
		return nil, fmt.Errorf("[TourService] тур не найден: %w", err)
	}
	return tour, nil
}

func (s *TourService) GetTourBySlug(ctx context.Context, slug string) (*model.Tour, error) {
	tour, err := s.tourRepository.GetBySlug(ctx, s.db, slug)
	if err != nil {
		return nil, fmt.Errorf("[TourService] тур не найден: %w", err)
	}
	return tour, nil
}

func (s *TourService) ListTours(ctx context.Context, filter model.TourFilter) ([]model.Tour, error) {
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 20
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	tours, err := s.tourRepository.List(ctx, s.db, filter)
	if err != nil {
		return nil, fmt.Errorf("[TourService] ошибка получения списка туров: %w", err)
	}
	return tours, nil
}

// UpdateTour : частичное обновление, слаг пересчитывается при смене имени
func (s *TourService) UpdateTour(ctx context.Context, uuid string, req *requestresponse.UpdateTourRequest) (*model.Tour, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("[TourService] некорректные данные тура: %w", err)
	}

	tour, err := s.tourRepository.GetByUUID(ctx, s.db, uuid)
	if err != nil {
		return nil, fmt.Errorf("[TourService] тур не найден: %w", err)
	}

	if req.Name != nil {
		tour.Name = *req.Name
		tour.Slug = slugify(*req.Name)
	}
	if req.Duration != nil {
		tour.Duration = *req.Duration
	}
	if req.MaxGroupSize != nil {
		tour.MaxGroupSize = *req.MaxGroupSize
	}
	if req.Difficulty != nil {
		tour.Difficulty = *req.Difficulty
	}
	if req.Price != nil {
		tour.Price = *req.Price
	}
	if req.PriceDiscount != nil {
		tour.PriceDiscount = req.PriceDiscount
	}
	if req.Summary != nil {
		tour.Summary = *req.Summary
	}
	if req.Description != nil {
		tour.Description = *req.Description
	}
	if tour.PriceDiscount != nil && *tour.PriceDiscount >= tour.Price {
		return nil, fmt.Errorf("[TourService] скидка должна быть меньше цены тура")
	}

	if err := s.tourRepository.Update(ctx, s.db, tour); err != nil {
		return nil, fmt.Errorf("[TourService] ошибка обновления тура: %w", err)
	}
	return tour, nil
}

// UpdateTourImages загружает обложку и до трех фотографий тура.
// Все изображения приводятся к 2000x1333 (3:2).
func (s *TourService) UpdateTourImages(ctx context.Context, uuid string, cover []byte, images [][]byte) (*model.Tour, error) {
	tour, err := s.tourRepository.GetByUUID(ctx, s.db, uuid)
	if err != nil {
		return nil, fmt.Errorf("[TourService] тур не найден: %w", err)
	}

	if len(cover) > 0 {
		resized, err := s.transcoder.ResizeJPEG(cover, 2000, 1333)
		if err != nil {
			return nil, fmt.Errorf("[TourService] ошибка обработки обложки: %w", err)
		}
		key := fmt.Sprintf("tours/tour-%s-cover.jpg", uuid)
		if err := s.imageStore.PutObject(ctx, key, resized, "image/jpeg"); err != nil {
			return nil, fmt.Errorf("[TourService] ошибка загрузки обложки: %w", err)
		}
		tour.ImageCover = key
	}

	if len(images) > 3 {
		images = images[:3]
	}
	if len(images) > 0 {
		keys := make([]string, 0, len(images))
		for i, img := range images {
			resized, err := s.transcoder.ResizeJPEG(img, 2000, 1333)
			if err != nil {
				return nil, fmt.Errorf("[TourService] ошибка обработки изображения: %w", err)
			}
			key := fmt.Sprintf("tours/tour-%s-%d.jpg", uuid, i+1)
			if err := s.imageStore.PutObject(ctx, key, resized, "image/jpeg"); err != nil {
				return nil, fmt.Errorf("[TourService] ошибка загрузки изображения: %w", err)
			}
			keys = append(keys, key)
		}
		tour.Images = keys
	}

	if err := s.tourRepository.Update(ctx, s.db, tour); err != nil {
		return nil, fmt.Errorf("[TourService] ошибка обновления тура: %w", err)
	}
	return tour, nil
}

func (s *TourService) DeleteTour(ctx context.Context, uuid string) error {
	if err := s.tourRepository.Delete(ctx, s.db, uuid); err != nil {
		return fmt.Errorf("[TourService] ошибка удаления тура: %w", err)
	}
	return nil
}

func (s *TourService) TourStats(ctx context.Context) ([]model.TourStats, error) {
	stats, err := s.tourRepository.Stats(ctx, s.db)
	if err != nil {
		return nil, fmt.Errorf("[TourService] ошибка расчета статистики: %w", err)
	}
	return stats, nil
}

func (s *TourService) MonthlyPlan(ctx context.Context, year int) ([]model.MonthlyPlanEntry, error) {
	if year < 2000 || year > 2100 {
		return nil, fmt.Errorf("[TourService] некорректный год: %d", year)
	}
	plan, err := s.tourRepository.MonthlyPlan(ctx, s.db, year)
	if err != nil {
		return nil, fmt.Errorf("[TourService] ошибка расчета плана: %w", err)
	}
	return plan, nil
}
