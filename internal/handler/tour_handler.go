package handler

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"tour-booking-api/internal/model"
	"tour-booking-api/internal/model/requestresponse"
	"tour-booking-api/internal/ports"

	"github.com/go-chi/chi/v5"
)

type TourHandler struct {
	ports.TourService
}

func NewTourHandler(tourService ports.TourService) *TourHandler {
	return &TourHandler{tourService}
}

func tourFilterFromQuery(r *http.Request) model.TourFilter {
	q := r.URL.Query()
	filter := model.TourFilter{
		Difficulty: q.Get("difficulty"),
		Sort:       q.Get("sort"),
	}
	if v, err := strconv.ParseFloat(q.Get("maxPrice"), 64); err == nil {
		filter.MaxPrice = v
	}
	if v, err := strconv.Atoi(q.Get("limit")); err == nil {
		filter.Limit = v
	}
	if v, err := strconv.Atoi(q.Get("page")); err == nil {
		filter.Page = v
	}
	return filter
}

// ListTours godoc
// @Summary Список туров
// @Tags Tours
// @Produce json
// @Param difficulty query string false "Фильтр по сложности" Enums(easy, medium, difficult)
// @Param maxPrice query number false "Верхняя граница цены"
// @Param sort query string false "Сортировка, например -ratingsAverage"
// @Param limit query int false "Размер страницы"
// @Param page query int false "Номер страницы"
// @Success 200 {object} requestresponse.ListToursResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/v1/tours [get]
func (h *TourHandler) ListTours(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	tours, err := h.TourService.ListTours(r.Context(), tourFilterFromQuery(r))
	if err != nil {
		log.Println(err)
		sendErrorResponse(w, 500, "внутренняя ошибка сервера")
		return
	}

	resp := requestresponse.ListToursResponse{Status: "success", Results: len(tours)}
	resp.Data.Tours = tours

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(resp)
}

// TopFiveTours godoc
// @Summary Пять лучших дешевых туров
// @Description Предзаданная выборка: сортировка по рейтингу и цене, лимит 5
// @Tags Tours
// @Produce json
// @Success 200 {object} requestresponse.ListToursResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/v1/tours/top-5-cheap [get]
func (h *TourHandler) TopFiveTours(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	filter := model.TourFilter{
		Sort:  "price,-ratingsAverage",
		Limit: 5,
	}

	tours, err := h.TourService.ListTours(r.Context(), filter)
	if err != nil {
		log.Println(err)
		sendErrorResponse(w, 500, "внутренняя ошибка сервера")
		return
	}

	resp := requestresponse.ListToursResponse{Status: "success", Results: len(tours)}
	resp.Data.Tours = tours

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(resp)
}

// TourStats godoc
// @Summary Статистика по турам
// @Description Агрегаты по сложности для туров с рейтингом от 4.5
// @Tags Tours
// @Produce json
// @Success 200 {object} requestresponse.TourStatsResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/v1/tours/tour-stats [get]
func (h *TourHandler) TourStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	stats, err := h.TourService.TourStats(r.Context())
	if err != nil {
		log.Println(err)
		sendErrorResponse(w, 500, "внутренняя ошибка сервера")
		return
	}

	resp := requestresponse.TourStatsResponse{Status: "success"}
	resp.Data.Stats = stats

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(resp)
}

// MonthlyPlan godoc
// @Summary План стартов туров по месяцам
// @Tags Tours
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Param year path int true "Год"
// @Success 200 {object} requestresponse.MonthlyPlanResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/v1/tours/monthly-plan/{year} [get]
func (h *TourHandler) MonthlyPlan(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		sendErrorResponse(w, 400, "некорректный год")
		return
	}

	plan, err := h.TourService.MonthlyPlan(r.Context(), year)
	if err != nil {
		log.Println(err)
		switch {
		case strings.Contains(err.Error(), "некорректный год"):
			sendErrorResponse(w, 400, "некорректный год")
		default:
			sendErrorResponse(w, 500, "внутренняя ошибка сервера")
		}
		return
	}

	resp := requestresponse.MonthlyPlanResponse{Status: "success"}
	resp.Data.Plan = plan

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(resp)
}

// GetTour godoc
// @Summary Тур по UUID
// @Tags Tours
// @Produce json
// @Param uuid path string true "UUID тура"
// @Success 200 {object} requestresponse.TourResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /api/v1/tours/{uuid} [get]
func (h *TourHandler) GetTour(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	tour, err := h.TourService.GetTour(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		log.Println(err)
		switch {
		case strings.Contains(err.Error(), "не найден"):
			sendErrorResponse(w, 404, "тур не найден")
		default:
			sendErrorResponse(w, 500, "внутренняя ошибка сервера")
		}
		return
	}

	resp := requestresponse.TourResponse{Status: "success"}
	resp.Data.Tour = tour

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(resp)
}

// GetTourBySlug godoc
// @Summary Тур по слагу
// @Tags Tours
// @Produce json
// @Param slug path string true "Слаг тура, например the-forest-hiker"
// @Success 200 {object} requestresponse.TourResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /api/v1/tours/slug/{slug} [get]
func (h *TourHandler) GetTourBySlug(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	tour, err := h.TourService.GetTourBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		log.Println(err)
		switch {
		case strings.Contains(err.Error(), "не найден"):
			sendErrorResponse(w, 404, "тур не найден")
		default:
			sendErrorResponse(w, 500, "внутренняя ошибка сервера")
		}
		return
	}

	resp := requestresponse.TourResponse{Status: "success"}
	resp.Data.Tour = tour

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(resp)
}

// CreateTour godoc
// @Summary Создание тура
// @Tags Tours
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Param body body requestresponse.CreateTourRequest true "Тело запроса"
// @Success 201 {object} requestresponse.TourResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 400 {object} requestresponse.ErrorResponse "Тур с таким названием уже существует"
// @Router /api/v1/tours [post]
func (h *TourHandler) CreateTour(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req requestresponse.CreateTourRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendErrorResponse(w, 400, "некорректный JSON")
		return
	}

	tour, err := h.TourService.CreateTour(r.Context(), &req)
	if err != nil {
		log.Println(err)
		switch {
		case strings.Contains(err.Error(), "уже существует"):
			sendErrorResponse(w, 400, "тур с таким названием уже существует")
		case strings.Contains(err.Error(), "некорректные данные"),
			strings.Contains(err.Error(), "скидка"):
			sendErrorResponse(w, 400, "некорректные данные тура")
		default:
			sendErrorResponse(w, 500, "внутренняя ошибка сервера")
		}
		return
	}

	resp := requestresponse.TourResponse{Status: "success"}
	resp.Data.Tour = tour

	w.WriteHeader(201)
	json.NewEncoder(w).Encode(resp)
}

// UpdateTour godoc
// @Summary Частичное обновление тура
// @Tags Tours
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Param uuid path string true "UUID тура"
// @Param body body requestresponse.UpdateTourRequest true "Тело запроса"
// @Success 200 {object} requestresponse.TourResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /api/v1/tours/{uuid} [patch]
func (h *TourHandler) UpdateTour(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req requestresponse.UpdateTourRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendErrorResponse(w, 400, "некорректный JSON")
		return
	}

	tour, err := h.TourService.UpdateTour(r.Context(), chi.URLParam(r, "uuid"), &req)
	if err != nil {
		log.Println(err)
		switch {
		case strings.Contains(err.Error(), "не найден"):
			sendErrorResponse(w, 404, "тур не найден")
		case strings.Contains(err.Error(), "некорректные данные"),
			strings.Contains(err.Error(), "скидка"):
			sendErrorResponse(w, 400, "некорректные данные тура")
		default:
			sendErrorResponse(w, 500, "внутренняя ошибка сервера")
		}
		return
	}

	resp := requestresponse.TourResponse{Status: "success"}
	resp.Data.Tour = tour

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(resp)
}

// UpdateTourImages godoc
// @Summary Загрузка обложки и фотографий тура
// @Description multipart/form-data: файл "imageCover" и до трех файлов "images"
// @Tags Tours
// @Accept mpfd
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Param uuid path string true "UUID тура"
// @Success 200 {object} requestresponse.TourResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /api/v1/tours/{uuid}/images [patch]
func (h *TourHandler) UpdateTourImages(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if err := r.ParseMultipartForm(4 * maxPhotoSize); err != nil {
		sendErrorResponse(w, 400, "некорректная multipart-форма")
		return
	}

	var cover []byte
	if file, _, err := r.FormFile("imageCover"); err == nil {
		defer file.Close()
		cover, err = io.ReadAll(io.LimitReader(file, maxPhotoSize))
		if err != nil {
			sendErrorResponse(w, 400, "не удалось прочитать файл")
			return
		}
	}

	var images [][]byte
	if r.MultipartForm != nil {
		for _, header := range r.MultipartForm.File["images"] {
			file, err := header.Open()
			if err != nil {
				sendErrorResponse(w, 400, "не удалось прочитать файл")
				return
			}
			data, err := io.ReadAll(io.LimitReader(file, maxPhotoSize))
			file.Close()
			if err != nil {
				sendErrorResponse(w, 400, "не удалось прочитать файл")
				return
			}
			images = append(images, data)
		}
	}

	tour, err := h.TourService.UpdateTourImages(r.Context(), chi.URLParam(r, "uuid"), cover, images)
	if err != nil {
		log.Println(err)
		switch {
		case strings.Contains(err.Error(), "не найден"):
			sendErrorResponse(w, 404, "тур не найден")
		case strings.Contains(err.Error(), "обработки"):
			sendErrorResponse(w, 400, "не удалось обработать изображение")
		default:
			sendErrorResponse(w, 500, "внутренняя ошибка сервера")
		}
		return
	}

	resp := requestresponse.TourResponse{Status: "success"}
	resp.Data.Tour = tour

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(resp)
}

// DeleteTour godoc
// @Summary Удаление тура
// @Tags Tours
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Param uuid path string true "UUID тура"
// @Success 204 "Тур удален"
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /api/v1/tours/{uuid} [delete]
func (h *TourHandler) DeleteTour(w http.ResponseWriter, r *http.Request) {
	if err := h.TourService.DeleteTour(r.Context(), chi.URLParam(r, "uuid")); err != nil {
		log.Println(err)
		switch {
		case strings.Contains(err.Error(), "не найден"):
			sendErrorResponse(w, 404, "тур не найден")
		default:
			sendErrorResponse(w, 500, "внутренняя ошибка сервера")
		}
		return
	}

	w.WriteHeader(204)
}
