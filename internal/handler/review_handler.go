package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"
	"tour-booking-api/internal/model"
	"tour-booking-api/internal/model/requestresponse"
	"tour-booking-api/internal/ports"
	"tour-booking-api/internal/security"

	"github.com/go-chi/chi/v5"
)

type ReviewHandler struct {
	ports.ReviewService
}

func NewReviewHandler(reviewService ports.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService}
}

// ListReviews godoc
// @Summary Список отзывов
// @Description Вложенный маршрут /tours/{tourUUID}/reviews отдает отзывы одного тура
// @Tags Reviews
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Param limit query int false "Размер страницы, по умолчанию 20"
// @Success 200 {object} requestresponse.ListReviewsResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/v1/reviews [get]
func (h *ReviewHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	// пустой tourUUID означает выборку по всем турам
	tourUUID := chi.URLParam(r, "tourUUID")
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	reviews, err := h.ReviewService.ListReviews(r.Context(), tourUUID, limit)
	if err != nil {
		log.Println(err)
		sendErrorResponse(w, 500, "внутренняя ошибка сервера")
		return
	}

	resp := requestresponse.ListReviewsResponse{Status: "success", Results: len(reviews)}
	resp.Data.Reviews = reviews

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(resp)
}

// GetReview godoc
// @Summary Отзыв по UUID
// @Tags Reviews
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Param uuid path string true "UUID отзыва"
// @Success 200 {object} requestresponse.ReviewResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /api/v1/reviews/{uuid} [get]
func (h *ReviewHandler) GetReview(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	review, err := h.ReviewService.GetReview(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		log.Println(err)
		switch {
		case strings.Contains(err.Error(), "не найден"):
			sendErrorResponse(w, 404, "отзыв не найден")
		default:
			sendErrorResponse(w, 500, "внутренняя ошибка сервера")
		}
		return
	}

	resp := requestresponse.ReviewResponse{Status: "success"}
	resp.Data.Review = review

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(resp)
}

// CreateReview godoc
// @Summary Создание отзыва
// @Description Тур берется из URL вложенного маршрута, автор — из токена
// @Tags Reviews
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Param body body requestresponse.CreateReviewRequest true "Тело запроса"
// @Success 201 {object} requestresponse.ReviewResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse "Тур не найден"
// @Failure 400 {object} requestresponse.ErrorResponse "Отзыв на этот тур уже оставлен"
// @Router /api/v1/tours/{tourUUID}/reviews [post]
func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	actor, err := security.GetUserFromContext(ctx)
	if err != nil {
		sendErrorResponse(w, 401, "не авторизован")
		return
	}

	var req requestresponse.CreateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendErrorResponse(w, 400, "некорректный JSON")
		return
	}

	if req.Tour == "" {
		req.Tour = chi.URLParam(r, "tourUUID")
	}
	if req.User == "" {
		req.User = actor.UUID
	}
	if req.Tour == "" {
		sendErrorResponse(w, 400, "не указан тур")
		return
	}

	review, err := h.ReviewService.CreateReview(ctx, &model.Review{
		TourUUID: req.Tour,
		UserUUID: req.User,
		Review:   req.Review,
		Rating:   req.Rating,
	})
	if err != nil {
		log.Println(err)
		switch {
		case strings.Contains(err.Error(), "уже оставлен"):
			sendErrorResponse(w, 400, "отзыв на этот тур уже оставлен")
		case strings.Contains(err.Error(), "тур не найден"):
			sendErrorResponse(w, 404, "тур не найден")
		case strings.Contains(err.Error(), "рейтинг"),
			strings.Contains(err.Error(), "текст отзыва"):
			sendErrorResponse(w, 400, "некорректные данные отзыва")
		default:
			sendErrorResponse(w, 500, "внутренняя ошибка сервера")
		}
		return
	}

	resp := requestresponse.ReviewResponse{Status: "success"}
	resp.Data.Review = review

	w.WriteHeader(201)
	json.NewEncoder(w).Encode(resp)
}

// UpdateReview godoc
// @Summary Обновление отзыва
// @Description Доступно автору отзыва и админу
// @Tags Reviews
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Param uuid path string true "UUID отзыва"
// @Param body body requestresponse.UpdateReviewRequest true "Тело запроса"
// @Success 200 {object} requestresponse.ReviewResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /api/v1/reviews/{uuid} [patch]
func (h *ReviewHandler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	actor, err := security.GetUserFromContext(ctx)
	if err != nil {
		sendErrorResponse(w, 401, "не авторизован")
		return
	}

	var req requestresponse.UpdateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendErrorResponse(w, 400, "некорректный JSON")
		return
	}

	review, err := h.ReviewService.UpdateReview(ctx, chi.URLParam(r, "uuid"), req.Review, req.Rating, actor)
	if err != nil {
		log.Println(err)
		switch {
		case strings.Contains(err.Error(), "собственные отзывы"):
			sendErrorResponse(w, 403, "можно изменять только собственные отзывы")
		case strings.Contains(err.Error(), "не найден"):
			sendErrorResponse(w, 404, "отзыв не найден")
		case strings.Contains(err.Error(), "рейтинг"):
			sendErrorResponse(w, 400, "некорректные данные отзыва")
		default:
			sendErrorResponse(w, 500, "внутренняя ошибка сервера")
		}
		return
	}

	resp := requestresponse.ReviewResponse{Status: "success"}
	resp.Data.Review = review

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(resp)
}

// DeleteReview godoc
// @Summary Удаление отзыва
// @Description Доступно автору отзыва и админу
// @Tags Reviews
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Param uuid path string true "UUID отзыва"
// @Success 204 "Отзыв удален"
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /api/v1/reviews/{uuid} [delete]
func (h *ReviewHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, err := security.GetUserFromContext(ctx)
	if err != nil {
		sendErrorResponse(w, 401, "не авторизован")
		return
	}

	if err := h.ReviewService.DeleteReview(ctx, chi.URLParam(r, "uuid"), actor); err != nil {
		log.Println(err)
		switch {
		case strings.Contains(err.Error(), "собственные отзывы"):
			sendErrorResponse(w, 403, "можно изменять только собственные отзывы")
		case strings.Contains(err.Error(), "не найден"):
			sendErrorResponse(w, 404, "отзыв не найден")
		default:
			sendErrorResponse(w, 500, "внутренняя ошибка сервера")
		}
		return
	}

	w.WriteHeader(204)
}
