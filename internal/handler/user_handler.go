package handler

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"tour-booking-api/internal/model/requestresponse"
	"tour-booking-api/internal/ports"
	"tour-booking-api/internal/security"

	"github.com/go-chi/chi/v5"
)

// 5 МБ на загружаемое фото
const maxPhotoSize = 5 << 20

type UserHandler struct {
	ports.UserService
}

func NewUserHandler(userService ports.UserService) *UserHandler {
	return &UserHandler{userService}
}

// Me godoc
// @Summary Профиль текущего пользователя
// @Tags Users
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.UserResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Router /api/v1/users/me [get]
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	user, err := security.GetUserFromContext(r.Context())
	if err != nil {
		sendErrorResponse(w, 401, "не авторизован")
		return
	}

	resp := requestresponse.UserResponse{Status: "success"}
	resp.Data.User = user

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(resp)
}

// UpdateMe godoc
// @Summary Обновление профиля текущего пользователя
// @Description Меняет имя, email и фото. Принимает JSON или multipart/form-data с файлом "photo". Пароль этим запросом изменить нельзя.
// @Tags Users
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Param body body requestresponse.UpdateMeRequest true "Тело запроса"
// @Success 200 {object} requestresponse.UserResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 400 {object} requestresponse.ErrorResponse "Email уже занят другим пользователем"
// @Router /api/v1/users/updateMe [patch]
func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	actor, err := security.GetUserFromContext(ctx)
	if err != nil {
		sendErrorResponse(w, 401, "не авторизован")
		return
	}

	var req requestresponse.UpdateMeRequest
	var photo []byte

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxPhotoSize); err != nil {
			sendErrorResponse(w, 400, "некорректная multipart-форма")
			return
		}
		req.Name = r.FormValue("name")
		req.Email = r.FormValue("email")

		if file, _, err := r.FormFile("photo"); err == nil {
			defer file.Close()
			photo, err = io.ReadAll(io.LimitReader(file, maxPhotoSize))
			if err != nil {
				sendErrorResponse(w, 400, "не удалось прочитать файл")
				return
			}
		}
	} else {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			sendErrorResponse(w, 400, "некорректный JSON")
			return
		}
	}

	user, err := h.UserService.UpdateMe(ctx, actor.UUID, req.Name, req.Email)
	if err != nil {
		log.Println(err)
		switch {
		case strings.Contains(err.Error(), "email уже существует"):
			sendErrorResponse(w, 400, "пользователь с таким email уже существует")
		case strings.Contains(err.Error(), "не найден"):
			sendErrorResponse(w, 404, "пользователь не найден")
		default:
			sendErrorResponse(w, 500, "внутренняя ошибка сервера")
		}
		return
	}

	if len(photo) > 0 {
		user, err = h.UserService.UpdatePhoto(ctx, actor.UUID, photo)
		if err != nil {
			log.Println(err)
			switch {
			case strings.Contains(err.Error(), "обработки изображения"):
				sendErrorResponse(w, 400, "не удалось обработать изображение")
			default:
				sendErrorResponse(w, 500, "внутренняя ошибка сервера")
			}
			return
		}
	}

	resp := requestresponse.UserResponse{Status: "success"}
	resp.Data.User = user

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(resp)
}

// DeleteMe godoc
// @Summary Деактивация аккаунта
// @Description Помечает аккаунт неактивным, данные из БД не удаляются
// @Tags Users
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 204 "Аккаунт деактивирован"
// @Failure 401 {object} requestresponse.ErrorResponse
// @Router /api/v1/users/deleteMe [delete]
func (h *UserHandler) DeleteMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, err := security.GetUserFromContext(ctx)
	if err != nil {
		sendErrorResponse(w, 401, "не авторизован")
		return
	}

	if err := h.UserService.DeleteMe(ctx, actor.UUID); err != nil {
		log.Println(err)
		sendErrorResponse(w, 500, "внутренняя ошибка сервера")
		return
	}

	w.WriteHeader(204)
}

// ListUsers godoc
// @Summary Список пользователей (админ)
// @Tags Users
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Param cursor query string false "Курсор из предыдущей страницы"
// @Param limit query int false "Размер страницы, по умолчанию 20"
// @Success 200 {object} requestresponse.ListUsersResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Router /api/v1/users [get]
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	cursor := r.URL.Query().Get("cursor")
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	users, nextCursor, err := h.UserService.ListUsers(ctx, cursor, limit)
	if err != nil {
		log.Println(err)
		sendErrorResponse(w, 500, "внутренняя ошибка сервера")
		return
	}

	resp := requestresponse.ListUsersResponse{Status: "success"}
	resp.Data.Users = users
	resp.Data.NextCursor = nextCursor

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(resp)
}

// GetUser godoc
// @Summary Пользователь по UUID (админ)
// @Tags Users
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Param uuid path string true "UUID пользователя"
// @Success 200 {object} requestresponse.UserResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /api/v1/users/{uuid} [get]
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	user, err := h.UserService.GetUser(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		log.Println(err)
		switch {
		case strings.Contains(err.Error(), "не найден"):
			sendErrorResponse(w, 404, "пользователь не найден")
		default:
			sendErrorResponse(w, 500, "внутренняя ошибка сервера")
		}
		return
	}

	resp := requestresponse.UserResponse{Status: "success"}
	resp.Data.User = user

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(resp)
}

// UpdateUser godoc
// @Summary Обновление пользователя (админ)
// @Description В отличие от updateMe позволяет менять роль
// @Tags Users
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Param uuid path string true "UUID пользователя"
// @Param body body requestresponse.UpdateUserRequest true "Тело запроса"
// @Success 200 {object} requestresponse.UserResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /api/v1/users/{uuid} [patch]
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req requestresponse.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendErrorResponse(w, 400, "некорректный JSON")
		return
	}

	user, err := h.UserService.UpdateUser(r.Context(), chi.URLParam(r, "uuid"), req.Name, req.Email, req.Role)
	if err != nil {
		log.Println(err)
		switch {
		case strings.Contains(err.Error(), "email уже существует"):
			sendErrorResponse(w, 400, "пользователь с таким email уже существует")
		case strings.Contains(err.Error(), "не найден"):
			sendErrorResponse(w, 404, "пользователь не найден")
		default:
			sendErrorResponse(w, 500, "внутренняя ошибка сервера")
		}
		return
	}

	resp := requestresponse.UserResponse{Status: "success"}
	resp.Data.User = user

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(resp)
}

// DeleteUser godoc
// @Summary Удаление пользователя (админ)
// @Tags Users
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Param uuid path string true "UUID пользователя"
// @Success 204 "Пользователь удален"
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /api/v1/users/{uuid} [delete]
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := h.UserService.DeleteUser(r.Context(), chi.URLParam(r, "uuid")); err != nil {
		log.Println(err)
		switch {
		case strings.Contains(err.Error(), "не найден"):
			sendErrorResponse(w, 404, "пользователь не найден")
		default:
			sendErrorResponse(w, 500, "внутренняя ошибка сервера")
		}
		return
	}

	w.WriteHeader(204)
}

func sendErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(requestresponse.ErrorResponse{
		Error: requestresponse.ErrorDetail{
			Code: statusCode,
			Text: message,
		},
	})
}
