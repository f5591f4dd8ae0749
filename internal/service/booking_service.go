package service

import (
	"context"
	"errors"
	"fmt"
	"tour-booking-api/config"
	"tour-booking-api/internal/model"
	"tour-booking-api/internal/ports"

	"github.com/google/uuid"
)

var ErrTourSoldOut = errors.New("в туре не осталось свободных мест")

type BookingService struct {
	bookingRepository ports.BookingRepository
	tourRepository    ports.TourRepository
	paymentGateway    ports.PaymentGateway
	db                *config.Database
}

func NewBookingService(bookingRepository ports.BookingRepository, tourRepository ports.TourRepository, paymentGateway ports.PaymentGateway, db *config.Database) *BookingService {
	return &BookingService{
		bookingRepository: bookingRepository,
		tourRepository:    tourRepository,
		paymentGateway:    paymentGateway,
		db:                db,
	}
}

// CreateCheckoutSession создает платежную сессию у провайдера.
// Само бронирование появляется позже, в CreateBookingCheckout,
// когда оплата прошла.
func (s *BookingService) CreateCheckoutSession(ctx context.Context, tourUUID string, user *model.User) (*model.CheckoutSession, error) {
	tour, err := s.tourRepository.GetByUUID(ctx, s.db, tourUUID)
	if err != nil {
		return nil, fmt.Errorf("[BookingService] тур не найден: %w", err)
	}

	booked, err := s.tourRepository.CountBookingsForDate(ctx, s.db, tourUUID)
	if err != nil {
		return nil, fmt.Errorf("[BookingService] ошибка проверки мест: %w", err)
	}
	if booked >= tour.MaxGroupSize {
		return nil, fmt.Errorf("[BookingService] %w", ErrTourSoldOut)
	}

	session, err := s.paymentGateway.CreateCheckoutSession(ctx, tour, user.Email)
	if err != nil {
		return nil, fmt.Errorf("[BookingService] ошибка создания платежной сессии: %w", err)
	}
	return session, nil
}

// CreateBookingCheckout фиксирует оплаченное бронирование после
// возврата с checkout-страницы
func (s *BookingService) CreateBookingCheckout(ctx context.Context, tourUUID, userUUID string, price float64) (*model.Booking, error) {
	booking := &model.Booking{
		UUID:     uuid.New().String(),
		TourUUID: tourUUID,
		UserUUID: userUUID,
		Price:    price,
		Paid:     true,
	}
	created, err := s.bookingRepository.Create(ctx, s.db, booking)
	if err != nil {
		return nil, fmt.Errorf("[BookingService] ошибка создания бронирования: %w", err)
	}
	return created, nil
}

// MyBookings : туры, забронированные пользователем
func (s *BookingService) MyBookings(ctx context.Context, userUUID string) ([]model.Tour, error) {
	tours, err := s.bookingRepository.ListToursByUser(ctx, s.db, userUUID)
	if err != nil {
		return nil, fmt.Errorf("[BookingService] ошибка получения бронирований: %w", err)
	}
	return tours, nil
}

// CreateBooking : ручное создание бронирования админом, без оплаты
func (s *BookingService) CreateBooking(ctx context.Context, tourUUID, userUUID string, price float64) (*model.Booking, error) {
	if price <= 0 {
		tour, err := s.tourRepository.GetByUUID(ctx, s.db, tourUUID)
		if err != nil {
			return nil, fmt.Errorf("[BookingService] тур не найден: %w", err)
		}
		price = tour.Price
	}

	booking := &model.Booking{
		UUID:     uuid.New().String(),
		TourUUID: tourUUID,
		UserUUID: userUUID,
		Price:    price,
		Paid:     true,
	}
	created, err := s.bookingRepository.Create(ctx, s.db, booking)
	if err != nil {
		return nil, fmt.Errorf("[BookingService] ошибка создания бронирования: %w", err)
	}
	return created, nil
}

func (s *BookingService) GetBooking(ctx context.Context, uuid string) (*model.Booking, error) {
	booking, err := s.bookingRepository.GetByUUID(ctx, s.db, uuid)
	if err != nil {
		return nil, fmt.Errorf("[BookingService] бронирование не найдено: %w", err)
	}
	return booking, nil
}

func (s *BookingService) ListBookings(ctx context.Context, limit int) ([]model.Booking, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	bookings, err := s.bookingRepository.List(ctx, s.db, limit)
	if err != nil {
		return nil, fmt.Errorf("[BookingService] ошибка получения бронирований: %w", err)
	}
	return bookings, nil
}

func (s *BookingService) UpdateBooking(ctx context.Context, uuid string, price *float64, paid *bool) (*model.Booking, error) {
	booking, err := s.bookingRepository.GetByUUID(ctx, s.db, uuid)
	if err != nil {
		return nil, fmt.Errorf("[BookingService] бронирование не найдено: %w", err)
	}

	if price != nil {
		booking.Price = *price
	}
	if paid != nil {
		booking.Paid = *paid
	}

	if err := s.bookingRepository.Update(ctx, s.db, booking); err != nil {
		return nil, fmt.Errorf("[BookingService] ошибка обновления бронирования: %w", err)
	}
	return booking, nil
}

func (s *BookingService) DeleteBooking(ctx context.Context, uuid string) error {
	if err := s.bookingRepository.Delete(ctx, s.db, uuid); err != nil {
		return fmt.Errorf("[BookingService] ошибка удаления бронирования: %w", err)
	}
	return nil
}
