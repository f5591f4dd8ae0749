package service

import (
	"context"
	"errors"
	"fmt"
	"tour-booking-api/config"
	"tour-booking-api/internal/model"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
)

// StripeService : checkout-сессии Stripe. Цена передается в центах,
// UUID тура уходит в client_reference_id, чтобы после оплаты связать
// сессию с бронированием.
type StripeService struct {
	api        *client.API
	successURL string
	cancelURL  string
}

func NewStripeService(cfg *config.StripeConfig) *StripeService {
	api := &client.API{}
	api.Init(cfg.SecretKey, nil)
	return &StripeService{
		api:        api,
		successURL: cfg.SuccessURL,
		cancelURL:  cfg.CancelURL,
	}
}

func (s *StripeService) CreateCheckoutSession(ctx context.Context, tour *model.Tour, customerEmail string) (*model.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Params: stripe.Params{
			Context: ctx,
		},
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:        stripe.String(s.successURL),
		CancelURL:         stripe.String(s.cancelURL),
		CustomerEmail:     stripe.String(customerEmail),
		ClientReferenceID: stripe.String(tour.UUID),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String("usd"),
					UnitAmount: stripe.Int64(int64(tour.Price * 100)),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripe.String(fmt.Sprintf("%s Tour", tour.Name)),
						Description: stripe.String(tour.Summary),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
	}

	session, err := s.api.CheckoutSessions.New(params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) {
			return nil, fmt.Errorf("[StripeService] ошибка Stripe (%s): %s", stripeErr.Code, stripeErr.Msg)
		}
		return nil, fmt.Errorf("[StripeService] ошибка создания сессии: %w", err)
	}

	return &model.CheckoutSession{
		SessionID: session.ID,
		URL:       session.URL,
	}, nil
}
