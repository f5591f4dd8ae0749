package requestresponse

import "tour-booking-api/internal/model"

// CreateReviewRequest : тело запроса создания отзыва
type CreateReviewRequest struct {
	Review string `json:"review" validate:"required" example:"Отличный тур"`
	Rating int    `json:"rating" validate:"required,min=1,max=5" example:"5"`
	// Tour и User заполняются из URL и токена, если не переданы
	Tour string `json:"tour,omitempty"`
	User string `json:"user,omitempty"`
}

// UpdateReviewRequest : частичное обновление отзыва
type UpdateReviewRequest struct {
	Review *string `json:"review,omitempty"`
	Rating *int    `json:"rating,omitempty" validate:"omitempty,min=1,max=5"`
}

// ReviewResponse : успешный ответ с отзывом
type ReviewResponse struct {
	Status string `json:"status" example:"success"`
	Data   struct {
		Review *model.Review `json:"review"`
	} `json:"data"`
}

// ListReviewsResponse : успешный ответ со списком отзывов
type ListReviewsResponse struct {
	Status  string `json:"status" example:"success"`
	Results int    `json:"results" example:"3"`
	Data    struct {
		Reviews []model.Review `json:"reviews"`
	} `json:"data"`
}
