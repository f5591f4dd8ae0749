package model

import "time"

type Booking struct {
	UUID      string    `db:"uuid" json:"uuid"`
	TourUUID  string    `db:"tour_uuid" json:"tour"`
	UserUUID  string    `db:"user_uuid" json:"user"`
	Price     float64   `db:"price" json:"price"`
	Paid      bool      `db:"paid" json:"paid"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// CheckoutSession : данные сессии оплаты, отдаваемые клиенту
type CheckoutSession struct {
	SessionID string `json:"id"`
	URL       string `json:"url"`
}
