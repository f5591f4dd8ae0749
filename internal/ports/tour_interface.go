package ports

import (
	"context"
	"tour-booking-api/internal/model"
	"tour-booking-api/internal/model/requestresponse"

	"github.com/jmoiron/sqlx"
)

type TourRepository interface {
	Create(ctx context.Context, exec sqlx.ExtContext, tour *model.Tour) (*model.Tour, error)
	GetByUUID(ctx context.Context, exec sqlx.ExtContext, uuid string) (*model.Tour, error)
	GetBySlug(ctx context.Context, exec sqlx.ExtContext, slug string) (*model.Tour, error)
	List(ctx context.Context, exec sqlx.ExtContext, filter model.TourFilter) ([]model.Tour, error)
	Update(ctx context.Context, exec sqlx.ExtContext, tour *model.Tour) error
	UpdateRatings(ctx context.Context, exec sqlx.ExtContext, tourUUID string, aggregate *model.RatingAggregate) error
	Delete(ctx context.Context, exec sqlx.ExtContext, uuid string) error
	Stats(ctx context.Context, exec sqlx.ExtContext) ([]model.TourStats, error)
	MonthlyPlan(ctx context.Context, exec sqlx.ExtContext, year int) ([]model.MonthlyPlanEntry, error)
	CountBookingsForDate(ctx context.Context, exec sqlx.ExtContext, tourUUID string) (int, error)
}

type TourService interface {
	CreateTour(ctx context.Context, req *requestresponse.CreateTourRequest) (*model.Tour, error)
	GetTour(ctx context.Context, uuid string) (*model.Tour, error)
	GetTourBySlug(ctx context.Context, slug string) (*model.Tour, error)
	ListTours(ctx context.Context, filter model.TourFilter) ([]model.Tour, error)
	UpdateTour(ctx context.Context, uuid string, req *requestresponse.UpdateTourRequest) (*model.Tour, error)
	UpdateTourImages(ctx context.Context, uuid string, cover []byte, images [][]byte) (*model.Tour, error)
	DeleteTour(ctx context.Context, uuid string) error
	TourStats(ctx context.Context) ([]model.TourStats, error)
	MonthlyPlan(ctx context.Context, year int) ([]model.MonthlyPlanEntry, error)
}
