package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"tour-booking-api/config"
	"tour-booking-api/internal/model"
	"tour-booking-api/internal/ports"

	"github.com/google/uuid"
)

var ErrReviewForbidden = errors.New("можно изменять только собственные отзывы")

// ReviewService : отзывы и поддержание агрегатов рейтинга на туре.
// После каждой записи агрегат пересчитывается заново по таблице отзывов,
// инкрементальные формулы не используются.
type ReviewService struct {
	reviewRepository ports.ReviewRepository
	tourRepository   ports.TourRepository
	db               *config.Database
}

func NewReviewService(reviewRepository ports.ReviewRepository, tourRepository ports.TourRepository, db *config.Database) *ReviewService {
	return &ReviewService{
		reviewRepository: reviewRepository,
		tourRepository:   tourRepository,
		db:               db,
	}
}

func (s *ReviewService) CreateReview(ctx context.Context, review *model.Review) (*model.Review, error) {
	if review.Rating < 1 || review.Rating > 5 {
		return nil, fmt.Errorf("[ReviewService] рейтинг должен быть от 1 до 5")
	}
	if review.Review == "" {
		return nil, fmt.Errorf("[ReviewService] текст отзыва не может быть пустым")
	}

	review.UUID = uuid.New().String()
	created, err := s.reviewRepository.Create(ctx, s.db, review)
	if err != nil {
		return nil, fmt.Errorf("[ReviewService] ошибка создания отзыва: %w", err)
	}

	s.recalculateRatings(ctx, created.TourUUID)
	return created, nil
}

func (s *ReviewService) GetReview(ctx context.Context, uuid string) (*model.Review, error) {
	review, err := s.reviewRepository.GetByUUID(ctx, s.db, uuid)
	if err != nil {
		return nil, fmt.Errorf("[ReviewService] отзыв не найден: %w", err)
	}
	return review, nil
}

func (s *ReviewService) ListReviews(ctx context.Context, tourUUID string, limit int) ([]model.Review, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	reviews, err := s.reviewRepository.ListByTour(ctx, s.db, tourUUID, limit)
	if err != nil {
		return nil, fmt.Errorf("[ReviewService] ошибка получения отзывов: %w", err)
	}
	return reviews, nil
}

// UpdateReview : редактировать отзыв может его автор либо админ
func (s *ReviewService) UpdateReview(ctx context.Context, uuid string, text *string, rating *int, actor *model.User) (*model.Review, error) {
	review, err := s.reviewRepository.GetByUUID(ctx, s.db, uuid)
	if err != nil {
		return nil, fmt.Errorf("[ReviewService] отзыв не найден: %w", err)
	}

	if actor.Role != model.RoleAdmin && review.UserUUID != actor.UUID {
		return nil, fmt.Errorf("[ReviewService] %w", ErrReviewForbidden)
	}

	if text != nil {
		review.Review = *text
	}
	if rating != nil {
		if *rating < 1 || *rating > 5 {
			return nil, fmt.Errorf("[ReviewService] рейтинг должен быть от 1 до 5")
		}
		review.Rating = *rating
	}

	if err := s.reviewRepository.Update(ctx, s.db, review); err != nil {
		return nil, fmt.Errorf("[ReviewService] ошибка обновления отзыва: %w", err)
	}

	s.recalculateRatings(ctx, review.TourUUID)
	return review, nil
}

func (s *ReviewService) DeleteReview(ctx context.Context, uuid string, actor *model.User) error {
	review, err := s.reviewRepository.GetByUUID(ctx, s.db, uuid)
	if err != nil {
		return fmt.Errorf("[ReviewService] отзыв не найден: %w", err)
	}

	if actor.Role != model.RoleAdmin && review.UserUUID != actor.UUID {
		return fmt.Errorf("[ReviewService] %w", ErrReviewForbidden)
	}

	if err := s.reviewRepository.Delete(ctx, s.db, uuid); err != nil {
		return fmt.Errorf("[ReviewService] ошибка удаления отзыва: %w", err)
	}

	s.recalculateRatings(ctx, review.TourUUID)
	return nil
}

// recalculateRatings : сбой пересчета не роняет операцию над отзывом,
// агрегат догонит актуальное значение при следующей записи
func (s *ReviewService) recalculateRatings(ctx context.Context, tourUUID string) {
	aggregate, err := s.reviewRepository.RatingAggregate(ctx, s.db, tourUUID)
	if err != nil {
		log.Printf("[ReviewService] не удалось рассчитать агрегат рейтинга: %v", err)
		return
	}
	if err := s.tourRepository.UpdateRatings(ctx, s.db, tourUUID, aggregate); err != nil {
		log.Printf("[ReviewService] не удалось обновить рейтинг тура: %v", err)
	}
}
