package model

import "time"

type Review struct {
	UUID      string    `db:"uuid" json:"uuid"`
	TourUUID  string    `db:"tour_uuid" json:"tour"`
	UserUUID  string    `db:"user_uuid" json:"user"`
	Review    string    `db:"review" json:"review"`
	Rating    int       `db:"rating" json:"rating"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// RatingAggregate : пересчитанные средний рейтинг и количество отзывов тура
type RatingAggregate struct {
	Quantity int     `db:"quantity"`
	Average  float64 `db:"average"`
}
