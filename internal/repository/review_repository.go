package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"tour-booking-api/config"
	"tour-booking-api/internal/model"
	"tour-booking-api/internal/util"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var (
	ErrReviewNotFound  = errors.New("отзыв не найден")
	ErrDuplicateReview = errors.New("отзыв на этот тур уже оставлен")
)

type ReviewRepository struct {
	*config.Database
}

func NewReviewRepository(database *config.Database) *ReviewRepository {
	return &ReviewRepository{database}
}

func (r *ReviewRepository) Create(ctx context.Context, exec sqlx.ExtContext, review *model.Review) (*model.Review, error) {
	query := `
	INSERT INTO reviews (uuid, tour_uuid, user_uuid, review, rating)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING uuid, tour_uuid, user_uuid, review, rating, created_at
	`

	created := &model.Review{}
	err := exec.QueryRowxContext(ctx, query,
		review.UUID, review.TourUUID, review.UserUUID, review.Review, review.Rating,
	).StructScan(created)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			// 23505 — unique (tour_uuid, user_uuid), 23503 — несуществующий тур
			if pqErr.Code == "23505" {
				return nil, fmt.Errorf("[ReviewRepo] %w", ErrDuplicateReview)
			}
			if pqErr.Code == "23503" {
				return nil, fmt.Errorf("[ReviewRepo] %w", ErrTourNotFound)
			}
		}
		return nil, util.LogError("[ReviewRepo] ошибка вставки данных в БД", err)
	}

	return created, nil
}

func (r *ReviewRepository) GetByUUID(ctx context.Context, exec sqlx.ExtContext, uuid string) (*model.Review, error) {
	query := `SELECT uuid, tour_uuid, user_uuid, review, rating, created_at FROM reviews WHERE uuid = $1`
	var review model.Review
	if err := sqlx.GetContext(ctx, exec, &review, query, uuid); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("[ReviewRepo] %w", ErrReviewNotFound)
		}
		return nil, util.LogError("[ReviewRepo] не удалось найти отзыв", err)
	}
	return &review, nil
}

// ListByTour : все отзывы тура; при пустом tourUUID — все отзывы
func (r *ReviewRepository) ListByTour(ctx context.Context, exec sqlx.ExtContext, tourUUID string, limit int) ([]model.Review, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}

	query := `SELECT uuid, tour_uuid, user_uuid, review, rating, created_at FROM reviews`
	args := []interface{}{}
	if tourUUID != "" {
		args = append(args, tourUUID)
		query += ` WHERE tour_uuid = $1`
	}
	args = append(args, limit)
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d`, len(args))

	var reviews []model.Review
	if err := sqlx.SelectContext(ctx, exec, &reviews, query, args...); err != nil {
		return nil, util.LogError("[ReviewRepo] не удалось получить отзывы", err)
	}
	return reviews, nil
}

func (r *ReviewRepository) Update(ctx context.Context, exec sqlx.ExtContext, review *model.Review) error {
	query := `UPDATE reviews SET review = $2, rating = $3 WHERE uuid = $1`
	result, err := exec.ExecContext(ctx, query, review.UUID, review.Review, review.Rating)
	if err != nil {
		return util.LogError("[ReviewRepo] не удалось обновить отзыв", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return util.LogError("[ReviewRepo] не удалось проверить обновление отзыва", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("[ReviewRepo] %w", ErrReviewNotFound)
	}
	return nil
}

func (r *ReviewRepository) Delete(ctx context.Context, exec sqlx.ExtContext, uuid string) error {
	result, err := exec.ExecContext(ctx, `DELETE FROM reviews WHERE uuid = $1`, uuid)
	if err != nil {
		return util.LogError("[ReviewRepo] не удалось удалить отзыв", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return util.LogError("[ReviewRepo] не удалось проверить удаление отзыва", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("[ReviewRepo] %w", ErrReviewNotFound)
	}
	return nil
}

// RatingAggregate : пересчет среднего рейтинга и количества отзывов тура.
// COALESCE возвращает дефолты (0 отзывов, рейтинг 4.5), когда отзывов нет.
func (r *ReviewRepository) RatingAggregate(ctx context.Context, exec sqlx.ExtContext, tourUUID string) (*model.RatingAggregate, error) {
	query := `
		SELECT COUNT(*)                  AS quantity,
		       COALESCE(AVG(rating), 4.5) AS average
		FROM reviews
		WHERE tour_uuid = $1
	`
	var aggregate model.RatingAggregate
	if err := sqlx.GetContext(ctx, exec, &aggregate, query, tourUUID); err != nil {
		return nil, util.LogError("[ReviewRepo] не удалось пересчитать рейтинг", err)
	}
	return &aggregate, nil
}
