package requestresponse

import "tour-booking-api/internal/model"

// UserResponse : успешный ответ с данными пользователя
type UserResponse struct {
	Status string `json:"status" example:"success"`
	Data   struct {
		User *model.User `json:"user"`
	} `json:"data"`
}

// UpdateMeRequest : обновление имени и email текущего пользователя.
// Пароль этим запросом менять нельзя, для него есть /updatePassword.
type UpdateMeRequest struct {
	Name  string `json:"name" validate:"omitempty,min=3,max=20" example:"Alice"`
	Email string `json:"email" validate:"omitempty,email" example:"a@x.com"`
}

// ListUsersResponse : успешный ответ со списком пользователей
type ListUsersResponse struct {
	Status string `json:"status" example:"success"`
	Data   struct {
		Users      []*model.User `json:"users"`
		NextCursor string        `json:"next_cursor,omitempty"`
	} `json:"data"`
}

// UpdateUserRequest : административное обновление пользователя
type UpdateUserRequest struct {
	Name  string `json:"name" validate:"omitempty,min=3,max=20"`
	Email string `json:"email" validate:"omitempty,email"`
	Role  string `json:"role" validate:"omitempty,oneof=user guide lead-guide admin"`
}
