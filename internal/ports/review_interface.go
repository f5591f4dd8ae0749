package ports

import (
	"context"
	"tour-booking-api/internal/model"

	"github.com/jmoiron/sqlx"
)

type ReviewRepository interface {
	Create(ctx context.Context, exec sqlx.ExtContext, review *model.Review) (*model.Review, error)
	GetByUUID(ctx context.Context, exec sqlx.ExtContext, uuid string) (*model.Review, error)
	ListByTour(ctx context.Context, exec sqlx.ExtContext, tourUUID string, limit int) ([]model.Review, error)
	Update(ctx context.Context, exec sqlx.ExtContext, review *model.Review) error
	Delete(ctx context.Context, exec sqlx.ExtContext, uuid string) error
	RatingAggregate(ctx context.Context, exec sqlx.ExtContext, tourUUID string) (*model.RatingAggregate, error)
}

type ReviewService interface {
	CreateReview(ctx context.Context, review *model.Review) (*model.Review, error)
	GetReview(ctx context.Context, uuid string) (*model.Review, error)
	ListReviews(ctx context.Context, tourUUID string, limit int) ([]model.Review, error)
	UpdateReview(ctx context.Context, uuid string, text *string, rating *int, actor *model.User) (*model.Review, error)
	DeleteReview(ctx context.Context, uuid string, actor *model.User) error
}
