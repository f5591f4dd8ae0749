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
	ErrTourNotFound  = errors.New("тур не найден")
	ErrDuplicateTour = errors.New("тур с таким названием уже существует")
)

const tourColumns = `uuid, name, slug, duration, max_group_size, difficulty, price,
	price_discount, summary, description, image_cover, images, start_dates,
	ratings_average, ratings_quantity, secret_tour, created_at`

type TourRepository struct {
	*config.Database
}

func NewTourRepository(database *config.Database) *TourRepository {
	return &TourRepository{database}
}

func (r *TourRepository) Create(ctx context.Context, exec sqlx.ExtContext, tour *model.Tour) (*model.Tour, error) {
	query := `
	INSERT INTO tours (uuid, name, slug, duration, max_group_size, difficulty, price,
		price_discount, summary, description, image_cover, images, start_dates)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	RETURNING ` + tourColumns

	created := &model.Tour{}
	err := exec.QueryRowxContext(ctx, query,
		tour.UUID, tour.Name, tour.Slug, tour.Duration, tour.MaxGroupSize,
		tour.Difficulty, tour.Price, tour.PriceDiscount, tour.Summary,
		tour.Description, tour.ImageCover, tour.Images, tour.StartDates,
	).StructScan(created)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, fmt.Errorf("[TourRepo] %w", ErrDuplicateTour)
		}
		return nil, util.LogError("[TourRepo] ошибка вставки данных в БД", err)
	}

	return created, nil
}

func (r *TourRepository) GetByUUID(ctx context.Context, exec sqlx.ExtContext, uuid string) (*model.Tour, error) {
	query := `SELECT ` + tourColumns + ` FROM tours WHERE uuid = $1`
	var tour model.Tour
	if err := sqlx.GetContext(ctx, exec, &tour, query, uuid); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("[TourRepo] %w", ErrTourNotFound)
		}
		return nil, util.LogError("[TourRepo] не удалось найти тур", err)
	}
	return &tour, nil
}

func (r *TourRepository) GetBySlug(ctx context.Context, exec sqlx.ExtContext, slug string) (*model.Tour, error) {
	query := `SELECT ` + tourColumns + ` FROM tours WHERE slug = $1`
	var tour model.Tour
	if err := sqlx.GetContext(ctx, exec, &tour, query, slug); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("[TourRepo] %w", ErrTourNotFound)
		}
		return nil, util.LogError("[TourRepo] не удалось найти тур по slug", err)
	}
	return &tour, nil
}

// List : выборка туров с фильтрацией, сортировкой и пагинацией.
// Скрытые (secret_tour) туры в общую выдачу не попадают.
func (r *TourRepository) List(ctx context.Context, exec sqlx.ExtContext, filter model.TourFilter) ([]model.Tour, error) {
	query := `SELECT ` + tourColumns + ` FROM tours WHERE secret_tour = FALSE`
	args := []interface{}{}

	if filter.Difficulty != "" {
		args = append(args, filter.Difficulty)
		query += fmt.Sprintf(" AND difficulty = $%d", len(args))
	}
	if filter.MaxPrice > 0 {
		args = append(args, filter.MaxPrice)
		query += fmt.Sprintf(" AND price <= $%d", len(args))
	}

	switch filter.Sort {
	case "price":
		query += " ORDER BY price ASC"
	case "-price":
		query += " ORDER BY price DESC"
	case "-ratingsAverage":
		query += " ORDER BY ratings_average DESC"
	case "price,-ratingsAverage":
		query += " ORDER BY price ASC, ratings_average DESC"
	default:
		query += " ORDER BY created_at DESC"
	}

	limit := filter.Limit
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	args = append(args, limit)
	query += fmt.Sprintf(" LIMIT $%d", len(args))

	if filter.Page > 1 {
		args = append(args, (filter.Page-1)*limit)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	var tours []model.Tour
	if err := sqlx.SelectContext(ctx, exec, &tours, query, args...); err != nil {
		return nil, util.LogError("[TourRepo] не удалось получить список туров", err)
	}
	return tours, nil
}

func (r *TourRepository) Update(ctx context.Context, exec sqlx.ExtContext, tour *model.Tour) error {
	query := `
		UPDATE tours
		SET name = $2, slug = $3, duration = $4, max_group_size = $5, difficulty = $6,
		    price = $7, price_discount = $8, summary = $9, description = $10,
		    image_cover = $11, images = $12
		WHERE uuid = $1
	`
	result, err := exec.ExecContext(ctx, query,
		tour.UUID, tour.Name, tour.Slug, tour.Duration, tour.MaxGroupSize,
		tour.Difficulty, tour.Price, tour.PriceDiscount, tour.Summary,
		tour.Description, tour.ImageCover, tour.Images,
	)
	if err != nil {
		return util.LogError("[TourRepo] не удалось обновить тур", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return util.LogError("[TourRepo] не удалось проверить обновление тура", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("[TourRepo] %w", ErrTourNotFound)
	}
	return nil
}

// UpdateRatings : сохраняет пересчитанный агрегат рейтинга.
// Вызывается явно после записи отзыва, никаких скрытых хуков.
func (r *TourRepository) UpdateRatings(ctx context.Context, exec sqlx.ExtContext, tourUUID string, aggregate *model.RatingAggregate) error {
	query := `UPDATE tours SET ratings_average = $2, ratings_quantity = $3 WHERE uuid = $1`
	_, err := exec.ExecContext(ctx, query, tourUUID, aggregate.Average, aggregate.Quantity)
	if err != nil {
		return util.LogError("[TourRepo] не удалось обновить рейтинг тура", err)
	}
	return nil
}

func (r *TourRepository) Delete(ctx context.Context, exec sqlx.ExtContext, uuid string) error {
	result, err := exec.ExecContext(ctx, `DELETE FROM tours WHERE uuid = $1`, uuid)
	if err != nil {
		return util.LogError("[TourRepo] не удалось удалить тур", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return util.LogError("[TourRepo] не удалось проверить удаление тура", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("[TourRepo] %w", ErrTourNotFound)
	}
	return nil
}

// Stats : агрегаты по сложности для туров с рейтингом от 4.5
func (r *TourRepository) Stats(ctx context.Context, exec sqlx.ExtContext) ([]model.TourStats, error) {
	query := `
		SELECT difficulty,
		       COUNT(*)               AS num_tours,
		       SUM(ratings_quantity)  AS num_ratings,
		       AVG(ratings_average)   AS avg_rating,
		       AVG(price)             AS avg_price,
		       MIN(price)             AS min_price,
		       MAX(price)             AS max_price
		FROM tours
		WHERE ratings_average >= 4.5
		GROUP BY difficulty
		ORDER BY avg_price ASC
	`
	var stats []model.TourStats
	if err := sqlx.SelectContext(ctx, exec, &stats, query); err != nil {
		return nil, util.LogError("[TourRepo] не удалось получить статистику", err)
	}
	return stats, nil
}

// MonthlyPlan : количество стартов туров по месяцам заданного года
func (r *TourRepository) MonthlyPlan(ctx context.Context, exec sqlx.ExtContext, year int) ([]model.MonthlyPlanEntry, error) {
	query := `
		SELECT EXTRACT(MONTH FROM d)::int AS month,
		       COUNT(*)                   AS num_tours,
		       ARRAY_AGG(name)            AS tours
		FROM tours, UNNEST(start_dates) AS sd, LATERAL (SELECT sd::timestamptz AS d) t
		WHERE EXTRACT(YEAR FROM d) = $1
		GROUP BY month
		ORDER BY num_tours DESC
	`
	var plan []model.MonthlyPlanEntry
	if err := sqlx.SelectContext(ctx, exec, &plan, query, year); err != nil {
		return nil, util.LogError("[TourRepo] не удалось получить план по месяцам", err)
	}
	return plan, nil
}

// CountBookingsForDate : сколько броней уже есть на дату старта тура
func (r *TourRepository) CountBookingsForDate(ctx context.Context, exec sqlx.ExtContext, tourUUID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM bookings WHERE tour_uuid = $1`
	if err := sqlx.GetContext(ctx, exec, &count, query, tourUUID); err != nil {
		return 0, util.LogError("[TourRepo] не удалось посчитать брони", err)
	}
	return count, nil
}
