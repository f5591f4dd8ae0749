package model

import (
	"time"

	"github.com/lib/pq"
)

type Tour struct {
	UUID            string         `db:"uuid" json:"uuid"`
	Name            string         `db:"name" json:"name"`
	Slug            string         `db:"slug" json:"slug"`
	Duration        int            `db:"duration" json:"duration"`
	MaxGroupSize    int            `db:"max_group_size" json:"maxGroupSize"`
	Difficulty      string         `db:"difficulty" json:"difficulty"`
	Price           float64        `db:"price" json:"price"`
	PriceDiscount   *float64       `db:"price_discount" json:"priceDiscount,omitempty"`
	Summary         string         `db:"summary" json:"summary"`
	Description     string         `db:"description" json:"description"`
	ImageCover      string         `db:"image_cover" json:"imageCover"`
	Images          pq.StringArray `db:"images" json:"images"`
	StartDates      pq.StringArray `db:"start_dates" json:"startDates"`
	RatingsAverage  float64        `db:"ratings_average" json:"ratingsAverage"`
	RatingsQuantity int            `db:"ratings_quantity" json:"ratingsQuantity"`
	SecretTour      bool           `db:"secret_tour" json:"-"`
	CreatedAt       time.Time      `db:"created_at" json:"created_at"`
}

// TourFilter : параметры выборки туров из query string
type TourFilter struct {
	Difficulty string
	MaxPrice   float64
	Sort       string
	Limit      int
	Page       int
}

// TourStats : агрегат по сложности туров
type TourStats struct {
	Difficulty string  `db:"difficulty" json:"difficulty"`
	NumTours   int     `db:"num_tours" json:"numTours"`
	NumRatings int     `db:"num_ratings" json:"numRatings"`
	AvgRating  float64 `db:"avg_rating" json:"avgRating"`
	AvgPrice   float64 `db:"avg_price" json:"avgPrice"`
	MinPrice   float64 `db:"min_price" json:"minPrice"`
	MaxPrice   float64 `db:"max_price" json:"maxPrice"`
}

// MonthlyPlanEntry : количество стартов туров по месяцам за год
type MonthlyPlanEntry struct {
	Month    int            `db:"month" json:"month"`
	NumTours int            `db:"num_tours" json:"numTourStarts"`
	Tours    pq.StringArray `db:"tours" json:"tours"`
}
