package ports

import (
	"context"
	"tour-booking-api/internal/model"

	"github.com/jmoiron/sqlx"
)

type BookingRepository interface {
	Create(ctx context.Context, exec sqlx.ExtContext, booking *model.Booking) (*model.Booking, error)
	GetByUUID(ctx context.Context, exec sqlx.ExtContext, uuid string) (*model.Booking, error)
	List(ctx context.Context, exec sqlx.ExtContext, limit int) ([]model.Booking, error)
	ListToursByUser(ctx context.Context, exec sqlx.ExtContext, userUUID string) ([]model.Tour, error)
	Update(ctx context.Context, exec sqlx.ExtContext, booking *model.Booking) error
	Delete(ctx context.Context, exec sqlx.ExtContext, uuid string) error
}

type BookingService interface {
	CreateCheckoutSession(ctx context.Context, tourUUID string, user *model.User) (*model.CheckoutSession, error)
	CreateBookingCheckout(ctx context.Context, tourUUID, userUUID string, price float64) (*model.Booking, error)
	MyBookings(ctx context.Context, userUUID string) ([]model.Tour, error)
	CreateBooking(ctx context.Context, tourUUID, userUUID string, price float64) (*model.Booking, error)
	GetBooking(ctx context.Context, uuid string) (*model.Booking, error)
	ListBookings(ctx context.Context, limit int) ([]model.Booking, error)
	UpdateBooking(ctx context.Context, uuid string, price *float64, paid *bool) (*model.Booking, error)
	DeleteBooking(ctx context.Context, uuid string) error
}
