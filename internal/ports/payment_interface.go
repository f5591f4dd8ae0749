package ports

import (
	"context"
	"tour-booking-api/internal/model"
)

// PaymentGateway : создание checkout-сессии у платежного провайдера
type PaymentGateway interface {
	CreateCheckoutSession(ctx context.Context, tour *model.Tour, customerEmail string) (*model.CheckoutSession, error)
}
