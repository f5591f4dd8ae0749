package requestresponse

import "tour-booking-api/internal/model"

// CreateTourRequest : тело запроса создания тура
type CreateTourRequest struct {
	Name          string   `json:"name" validate:"required,min=10,max=40" example:"The Forest Hiker"`
	Duration      int      `json:"duration" validate:"required,gt=0" example:"5"`
	MaxGroupSize  int      `json:"maxGroupSize" validate:"required,gt=0" example:"25"`
	Difficulty    string   `json:"difficulty" validate:"required,oneof=easy medium difficult" example:"easy"`
	Price         float64  `json:"price" validate:"required,gt=0" example:"497"`
	PriceDiscount *float64 `json:"priceDiscount,omitempty"`
	Summary       string   `json:"summary" validate:"required" example:"Breathtaking hike"`
	Description   string   `json:"description"`
	StartDates    []string `json:"startDates"`
}

// UpdateTourRequest : частичное обновление тура
type UpdateTourRequest struct {
	Name          *string  `json:"name,omitempty" validate:"omitempty,min=10,max=40"`
	Duration      *int     `json:"duration,omitempty" validate:"omitempty,gt=0"`
	MaxGroupSize  *int     `json:"maxGroupSize,omitempty" validate:"omitempty,gt=0"`
	Difficulty    *string  `json:"difficulty,omitempty" validate:"omitempty,oneof=easy medium difficult"`
	Price         *float64 `json:"price,omitempty" validate:"omitempty,gt=0"`
	PriceDiscount *float64 `json:"priceDiscount,omitempty"`
	Summary       *string  `json:"summary,omitempty"`
	Description   *string  `json:"description,omitempty"`
}

// TourResponse : успешный ответ с данными тура
type TourResponse struct {
	Status string `json:"status" example:"success"`
	Data   struct {
		Tour *model.Tour `json:"tour"`
	} `json:"data"`
}

// ListToursResponse : успешный ответ со списком туров
type ListToursResponse struct {
	Status  string `json:"status" example:"success"`
	Results int    `json:"results" example:"7"`
	Data    struct {
		Tours []model.Tour `json:"tours"`
	} `json:"data"`
}

// TourStatsResponse : агрегированная статистика по турам
type TourStatsResponse struct {
	Status string `json:"status" example:"success"`
	Data   struct {
		Stats []model.TourStats `json:"stats"`
	} `json:"data"`
}

// MonthlyPlanResponse : план стартов туров по месяцам
type MonthlyPlanResponse struct {
	Status string `json:"status" example:"success"`
	Data   struct {
		Plan []model.MonthlyPlanEntry `json:"plan"`
	} `json:"data"`
}
