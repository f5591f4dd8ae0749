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

var ErrBookingNotFound = errors.New("бронь не найдена")

type BookingRepository struct {
	*config.Database
}

func NewBookingRepository(database *config.Database) *BookingRepository {
	return &BookingRepository{database}
}

func (r *BookingRepository) Create(ctx context.Context, exec sqlx.ExtContext, booking *model.Booking) (*model.Booking, error) {
	query := `
	INSERT INTO bookings (uuid, tour_uuid, user_uuid, price, paid)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING uuid, tour_uuid, user_uuid, price, paid, created_at
	`

	created := &model.Booking{}
	err := exec.QueryRowxContext(ctx, query,
		booking.UUID, booking.TourUUID, booking.UserUUID, booking.Price, booking.Paid,
	).StructScan(created)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			return nil, fmt.Errorf("[BookingRepo] %w", ErrTourNotFound)
		}
		return nil, util.LogError("[BookingRepo] ошибка вставки данных в БД", err)
	}

	return created, nil
}

func (r *BookingRepository) GetByUUID(ctx context.Context, exec sqlx.ExtContext, uuid string) (*model.Booking, error) {
	query := `SELECT uuid, tour_uuid, user_uuid, price, paid, created_at FROM bookings WHERE uuid = $1`
	var booking model.Booking
	if err := sqlx.GetContext(ctx, exec, &booking, query, uuid); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("[BookingRepo] %w", ErrBookingNotFound)
		}
		return nil, util.LogError("[BookingRepo] не удалось найти бронь", err)
	}
	return &booking, nil
}

func (r *BookingRepository) List(ctx context.Context, exec sqlx.ExtContext, limit int) ([]model.Booking, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}

	var bookings []model.Booking
	query := `SELECT uuid, tour_uuid, user_uuid, price, paid, created_at FROM bookings ORDER BY created_at DESC LIMIT $1`
	if err := sqlx.SelectContext(ctx, exec, &bookings, query, limit); err != nil {
		return nil, util.LogError("[BookingRepo] не удалось получить список броней", err)
	}
	return bookings, nil
}

// ListToursByUser : туры, на которые у пользователя есть брони
func (r *BookingRepository) ListToursByUser(ctx context.Context, exec sqlx.ExtContext, userUUID string) ([]model.Tour, error) {
	query := `
		SELECT ` + tourColumns + `
		FROM tours
		WHERE uuid IN (SELECT tour_uuid FROM bookings WHERE user_uuid = $1)
	`
	var tours []model.Tour
	if err := sqlx.SelectContext(ctx, exec, &tours, query, userUUID); err != nil {
		return nil, util.LogError("[BookingRepo] не удалось получить брони пользователя", err)
	}
	return tours, nil
}

func (r *BookingRepository) Update(ctx context.Context, exec sqlx.ExtContext, booking *model.Booking) error {
	query := `UPDATE bookings SET price = $2, paid = $3 WHERE uuid = $1`
	result, err := exec.ExecContext(ctx, query, booking.UUID, booking.Price, booking.Paid)
	if err != nil {
		return util.LogError("[BookingRepo] не удалось обновить бронь", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return util.LogError("[BookingRepo] не удалось проверить обновление брони", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("[BookingRepo] %w", ErrBookingNotFound)
	}
	return nil
}

func (r *BookingRepository) Delete(ctx context.Context, exec sqlx.ExtContext, uuid string) error {
	result, err := exec.ExecContext(ctx, `DELETE FROM bookings WHERE uuid = $1`, uuid)
	if err != nil {
		return util.LogError("[BookingRepo] не удалось удалить бронь", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return util.LogError("[BookingRepo] не удалось проверить удаление брони", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("[BookingRepo] %w", ErrBookingNotFound)
	}
	return nil
}
