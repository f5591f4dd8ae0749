package service_test

import (
	"context"
	"testing"
	"tour-booking-api/config"
	"tour-booking-api/internal/model"
	"tour-booking-api/internal/service"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// ===== MOCKS =====

// MockBookingRepository
type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, exec sqlx.ExtContext, booking *model.Booking) (*model.Booking, error) {
	args := m.Called(ctx, exec, booking)
	if b, ok := args.Get(0).(*model.Booking); ok {
		return b, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBookingRepository) GetByUUID(ctx context.Context, exec sqlx.ExtContext, uuid string) (*model.Booking, error) {
	args := m.Called(ctx, exec, uuid)
	if b, ok := args.Get(0).(*model.Booking); ok {
		return b, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBookingRepository) List(ctx context.Context, exec sqlx.ExtContext, limit int) ([]model.Booking, error) {
	args := m.Called(ctx, exec, limit)
	if b, ok := args.Get(0).([]model.Booking); ok {
		return b, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBookingRepository) ListToursByUser(ctx context.Context, exec sqlx.ExtContext, userUUID string) ([]model.Tour, error) {
	args := m.Called(ctx, exec, userUUID)
	if t, ok := args.Get(0).([]model.Tour); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBookingRepository) Update(ctx context.Context, exec sqlx.ExtContext, booking *model.Booking) error {
	args := m.Called(ctx, exec, booking)
	return args.Error(0)
}

func (m *MockBookingRepository) Delete(ctx context.Context, exec sqlx.ExtContext, uuid string) error {
	args := m.Called(ctx, exec, uuid)
	return args.Error(0)
}

// MockPaymentGateway
type MockPaymentGateway struct {
	mock.Mock
}

func (m *MockPaymentGateway) CreateCheckoutSession(ctx context.Context, tour *model.Tour, customerEmail string) (*model.CheckoutSession, error) {
	args := m.Called(ctx, tour, customerEmail)
	if s, ok := args.Get(0).(*model.CheckoutSession); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

// ===== HELPERS =====

func newTestBookingService() (*service.BookingService, *MockBookingRepository, *MockTourRepository, *MockPaymentGateway) {
	mockBookingRepo := new(MockBookingRepository)
	mockTourRepo := new(MockTourRepository)
	mockGateway := new(MockPaymentGateway)

	svc := service.NewBookingService(mockBookingRepo, mockTourRepo, mockGateway, &config.Database{})
	return svc, mockBookingRepo, mockTourRepo, mockGateway
}

// ===== TESTS =====

// 1. Сессия оплаты создается с email покупателя
func TestCreateCheckoutSession_Success(t *testing.T) {
	svc, _, mockTourRepo, mockGateway := newTestBookingService()
	ctx := context.Background()

	tour := &model.Tour{UUID: "t1", Name: "The Forest Hiker", Price: 497, MaxGroupSize: 25}
	session := &model.CheckoutSession{SessionID: "cs_123", URL: "https://checkout.stripe.com/cs_123"}

	mockTourRepo.On("GetByUUID", ctx, mock.Anything, "t1").Return(tour, nil)
	mockTourRepo.On("CountBookingsForDate", ctx, mock.Anything, "t1").Return(3, nil)
	mockGateway.On("CreateCheckoutSession", ctx, tour, "a@x.com").Return(session, nil)

	result, err := svc.CreateCheckoutSession(ctx, "t1", &model.User{UUID: "u1", Email: "a@x.com"})

	assert.NoError(t, err)
	assert.Equal(t, "cs_123", result.SessionID)
	mockTourRepo.AssertExpectations(t)
	mockGateway.AssertExpectations(t)
}

// 2. При заполненной группе сессия не создается
func TestCreateCheckoutSession_SoldOut(t *testing.T) {
	svc, _, mockTourRepo, mockGateway := newTestBookingService()
	ctx := context.Background()

	tour := &model.Tour{UUID: "t1", Price: 497, MaxGroupSize: 10}

	mockTourRepo.On("GetByUUID", ctx, mock.Anything, "t1").Return(tour, nil)
	mockTourRepo.On("CountBookingsForDate", ctx, mock.Anything, "t1").Return(10, nil)

	_, err := svc.CreateCheckoutSession(ctx, "t1", &model.User{UUID: "u1", Email: "a@x.com"})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "свободных мест")
	mockGateway.AssertNotCalled(t, "CreateCheckoutSession")
}

// 3. Бронь после оплаты помечается оплаченной
func TestCreateBookingCheckout_MarksPaid(t *testing.T) {
	svc, mockBookingRepo, _, _ := newTestBookingService()
	ctx := context.Background()

	var storedBooking *model.Booking
	mockBookingRepo.On("Create", ctx, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			storedBooking = args.Get(2).(*model.Booking)
		}).
		Return(&model.Booking{UUID: "b1"}, nil)

	_, err := svc.CreateBookingCheckout(ctx, "t1", "u1", 497)

	assert.NoError(t, err)
	assert.True(t, storedBooking.Paid)
	assert.Equal(t, 497.0, storedBooking.Price)
	assert.NotEmpty(t, storedBooking.UUID)
	mockBookingRepo.AssertExpectations(t)
}

// 4. Ручное создание брони без цены берет цену тура
func TestCreateBooking_DefaultsToTourPrice(t *testing.T) {
	svc, mockBookingRepo, mockTourRepo, _ := newTestBookingService()
	ctx := context.Background()

	mockTourRepo.On("GetByUUID", ctx, mock.Anything, "t1").
		Return(&model.Tour{UUID: "t1", Price: 497}, nil)

	var storedBooking *model.Booking
	mockBookingRepo.On("Create", ctx, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			storedBooking = args.Get(2).(*model.Booking)
		}).
		Return(&model.Booking{UUID: "b1"}, nil)

	_, err := svc.CreateBooking(ctx, "t1", "u1", 0)

	assert.NoError(t, err)
	assert.Equal(t, 497.0, storedBooking.Price)
	mockTourRepo.AssertExpectations(t)
	mockBookingRepo.AssertExpectations(t)
}
