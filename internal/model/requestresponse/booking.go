package requestresponse

import "tour-booking-api/internal/model"

// CreateBookingCheckoutRequest : фиксация брони после успешной оплаты
type CreateBookingCheckoutRequest struct {
	Tour  string  `json:"tour" validate:"required"`
	User  string  `json:"user" validate:"required"`
	Price float64 `json:"price" validate:"required,gt=0"`
}

// CreateBookingRequest : административное создание брони
type CreateBookingRequest struct {
	Tour  string  `json:"tour" validate:"required"`
	User  string  `json:"user" validate:"required"`
	Price float64 `json:"price" validate:"required,gt=0"`
	Date  string  `json:"date,omitempty"`
}

// CheckoutSessionResponse : сессия оплаты Stripe
type CheckoutSessionResponse struct {
	Status  string                 `json:"status" example:"success"`
	Session *model.CheckoutSession `json:"session"`
}

// BookingResponse : успешный ответ с бронью
type BookingResponse struct {
	Status string `json:"status" example:"success"`
	Data   struct {
		Booking *model.Booking `json:"booking"`
	} `json:"data"`
}

// ListBookingsResponse : успешный ответ со списком броней
type ListBookingsResponse struct {
	Status  string `json:"status" example:"success"`
	Results int    `json:"results" example:"2"`
	Data    struct {
		Bookings []model.Booking `json:"bookings"`
	} `json:"data"`
}

// MyBookingsResponse : туры, забронированные текущим пользователем
type MyBookingsResponse struct {
	Status  string `json:"status" example:"success"`
	Results int    `json:"results" example:"2"`
	Tours   []model.Tour `json:"tours"`
}
