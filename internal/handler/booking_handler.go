package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"
	"tour-booking-api/internal/model/requestresponse"
	"tour-booking-api/internal/ports"
	"tour-booking-api/internal/security"

	"github.com/go-chi/chi/v5"
)

type BookingHandler struct {
	ports.BookingService
}

func NewBookingHandler(bookingService ports.BookingService) *BookingHandler {
	return &BookingHandler{bookingService}
}

// CheckoutSession godoc
// @Summary Платежная сессия для тура
// @Description Создает checkout-сессию Stripe. Бронирование фиксируется отдельным запросом после оплаты.
// @Tags Bookings
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Param tourUUID path string true "UUID тура"
// @Success 200 {object} requestresponse.CheckoutSessionResponse
// @Failure 400 {object} requestresponse.ErrorResponse "Нет свободных мест"
// @Failure 404 {object} requestresponse.ErrorResponse "Тур не найден"
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/v1/bookings/checkout-session/{tourUUID} [get]
func (h *BookingHandler) CheckoutSession(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	user, err := security.GetUserFromContext(ctx)
	if err != nil {
		sendErrorResponse(w, 401, "не авторизован")
		return
	}

	session, err := h.BookingService.CreateCheckoutSession(ctx, chi.URLParam(r, "tourUUID"), user)
	if err != nil {
		log.Println(err)
		switch {
		case strings.Contains(err.Error(), "не найден"):
			sendErrorResponse(w, 404, "тур не найден")
		case strings.Contains(err.Error(), "свободных мест"):
			sendErrorResponse(w, 400, "в туре не осталось свободных мест")
		default:
			sendErrorResponse(w, 500, "внутренняя ошибка сервера")
		}
		return
	}

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(requestresponse.CheckoutSessionResponse{
		Status:  "success",
		Session: session,
	})
}

// CreateBookingCheckout godoc
// @Summary Фиксация брони после оплаты
// @Tags Bookings
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Param body body requestresponse.CreateBookingCheckoutRequest true "Тело запроса"
// @Success 201 {object} requestresponse.BookingResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse "Тур не найден"
// @Router /api/v1/bookings/checkout [post]
func (h *BookingHandler) CreateBookingCheckout(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	var req requestresponse.CreateBookingCheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendErrorResponse(w, 400, "некорректный JSON")
		return
	}

	if req.Tour == "" || req.User == "" || req.Price <= 0 {
		sendErrorResponse(w, 400, "tour, user и price обязательны")
		return
	}

	booking, err := h.BookingService.CreateBookingCheckout(ctx, req.Tour, req.User, req.Price)
	if err != nil {
		log.Println(err)
		switch {
		case strings.Contains(err.Error(), "тур не найден"):
			sendErrorResponse(w, 404, "тур не найден")
		default:
			sendErrorResponse(w, 500, "внутренняя ошибка сервера")
		}
		return
	}

	resp := requestresponse.BookingResponse{Status: "success"}
	resp.Data.Booking = booking

	w.WriteHeader(201)
	json.NewEncoder(w).Encode(resp)
}

// MyBookings godoc
// @Summary Туры, забронированные текущим пользователем
// @Tags Bookings
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.MyBookingsResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Router /api/v1/bookings/my-tours [get]
func (h *BookingHandler) MyBookings(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	user, err := security.GetUserFromContext(ctx)
	if err != nil {
		sendErrorResponse(w, 401, "не авторизован")
		return
	}

	tours, err := h.BookingService.MyBookings(ctx, user.UUID)
	if err != nil {
		log.Println(err)
		sendErrorResponse(w, 500, "внутренняя ошибка сервера")
		return
	}

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(requestresponse.MyBookingsResponse{
		Status:  "success",
		Results: len(tours),
		Tours:   tours,
	})
}

// ListBookings godoc
// @Summary Список всех броней (админ)
// @Tags Bookings
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Param limit query int false "Размер страницы, по умолчанию 20"
// @Success 200 {object} requestresponse.ListBookingsResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Router /api/v1/bookings [get]
func (h *BookingHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	bookings, err := h.BookingService.ListBookings(r.Context(), limit)
	if err != nil {
		log.Println(err)
		sendErrorResponse(w, 500, "внутренняя ошибка сервера")
		return
	}

	resp := requestresponse.ListBookingsResponse{Status: "success", Results: len(bookings)}
	resp.Data.Bookings = bookings

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(resp)
}

// GetBooking godoc
// @Summary Бронь по UUID (админ)
// @Tags Bookings
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Param uuid path string true "UUID брони"
// @Success 200 {object} requestresponse.BookingResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /api/v1/bookings/{uuid} [get]
func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	booking, err := h.BookingService.GetBooking(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		log.Println(err)
		switch {
		case strings.Contains(err.Error(), "не найден"):
			sendErrorResponse(w, 404, "бронь не найдена")
		default:
			sendErrorResponse(w, 500, "внутренняя ошибка сервера")
		}
		return
	}

	resp := requestresponse.BookingResponse{Status: "success"}
	resp.Data.Booking = booking

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(resp)
}

// CreateBooking godoc
// @Summary Ручное создание брони (админ)
// @Tags Bookings
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Param body body requestresponse.CreateBookingRequest true "Тело запроса"
// @Success 201 {object} requestresponse.BookingResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse "Тур не найден"
// @Router /api/v1/bookings [post]
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req requestresponse.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendErrorResponse(w, 400, "некорректный JSON")
		return
	}

	if req.Tour == "" || req.User == "" {
		sendErrorResponse(w, 400, "tour и user обязательны")
		return
	}

	booking, err := h.BookingService.CreateBooking(r.Context(), req.Tour, req.User, req.Price)
	if err != nil {
		log.Println(err)
		switch {
		case strings.Contains(err.Error(), "тур не найден"):
			sendErrorResponse(w, 404, "тур не найден")
		default:
			sendErrorResponse(w, 500, "внутренняя ошибка сервера")
		}
		return
	}

	resp := requestresponse.BookingResponse{Status: "success"}
	resp.Data.Booking = booking

	w.WriteHeader(201)
	json.NewEncoder(w).Encode(resp)
}

// UpdateBooking godoc
// @Summary Обновление брони (админ)
// @Tags Bookings
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Param uuid path string true "UUID брони"
// @Success 200 {object} requestresponse.BookingResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /api/v1/bookings/{uuid} [patch]
func (h *BookingHandler) UpdateBooking(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req struct {
		Price *float64 `json:"price,omitempty"`
		Paid  *bool    `json:"paid,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendErrorResponse(w, 400, "некорректный JSON")
		return
	}

	booking, err := h.BookingService.UpdateBooking(r.Context(), chi.URLParam(r, "uuid"), req.Price, req.Paid)
	if err != nil {
		log.Println(err)
		switch {
		case strings.Contains(err.Error(), "не найден"):
			sendErrorResponse(w, 404, "бронь не найдена")
		default:
			sendErrorResponse(w, 500, "внутренняя ошибка сервера")
		}
		return
	}

	resp := requestresponse.BookingResponse{Status: "success"}
	resp.Data.Booking = booking

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(resp)
}

// DeleteBooking godoc
// @Summary Удаление брони (админ)
// @Tags Bookings
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Param uuid path string true "UUID брони"
// @Success 204 "Бронь удалена"
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /api/v1/bookings/{uuid} [delete]
func (h *BookingHandler) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	if err := h.BookingService.DeleteBooking(r.Context(), chi.URLParam(r, "uuid")); err != nil {
		log.Println(err)
		switch {
		case strings.Contains(err.Error(), "не найден"):
			sendErrorResponse(w, 404, "бронь не найдена")
		default:
			sendErrorResponse(w, 500, "внутренняя ошибка сервера")
		}
		return
	}

	w.WriteHeader(204)
}
