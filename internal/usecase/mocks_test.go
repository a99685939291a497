package usecase_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/gabifranca/studio-gestao/internal/entity"
	"github.com/gabifranca/studio-gestao/internal/infra/integration/asaas"
	"github.com/gabifranca/studio-gestao/internal/infra/queue"
)

// MockContactRepository
type MockContactRepository struct {
	mock.Mock
}

func (m *MockContactRepository) Upsert(ctx context.Context, c *entity.Contact) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockContactRepository) FindByID(ctx context.Context, id string) (*entity.Contact, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Contact), args.Error(1)
}

func (m *MockContactRepository) FindByPhoneSuffix(ctx context.Context, suffix string) (*entity.Contact, error) {
	args := m.Called(ctx, suffix)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Contact), args.Error(1)
}

func (m *MockContactRepository) List(ctx context.Context) ([]*entity.Contact, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Contact), args.Error(1)
}

func (m *MockContactRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockSettingsRepository
type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) Load(ctx context.Context) (*entity.Settings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Settings), args.Error(1)
}

func (m *MockSettingsRepository) Save(ctx context.Context, s *entity.Settings) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSettingsRepository) SaveField(ctx context.Context, key string, value any) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

// MockPaymentRepository
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) Create(ctx context.Context, p *entity.PaymentRecord) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPaymentRepository) FindByID(ctx context.Context, id string) (*entity.PaymentRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.PaymentRecord), args.Error(1)
}

func (m *MockPaymentRepository) FindByTransactionID(ctx context.Context, txID string) (*entity.PaymentRecord, error) {
	args := m.Called(ctx, txID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.PaymentRecord), args.Error(1)
}

func (m *MockPaymentRepository) UpdateStatus(ctx context.Context, id, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

// MockPaymentGateway
type MockPaymentGateway struct {
	mock.Mock
}

func (m *MockPaymentGateway) CreateCustomer(input asaas.CreateCustomerInput) (string, error) {
	args := m.Called(input)
	return args.String(0), args.Error(1)
}

func (m *MockPaymentGateway) CreateCharge(input asaas.CreateChargeInput) (*asaas.ChargeOutput, error) {
	args := m.Called(input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*asaas.ChargeOutput), args.Error(1)
}

func (m *MockPaymentGateway) GetPixQRCode(chargeID string) (*asaas.PixOutput, error) {
	args := m.Called(chargeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*asaas.PixOutput), args.Error(1)
}

// MockTriggerProducer
type MockTriggerProducer struct {
	mock.Mock
}

func (m *MockTriggerProducer) PublishTrigger(ctx context.Context, payload queue.TriggerPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

// Triggers devolve os triggers publicados, na ordem
func (m *MockTriggerProducer) Triggers() []string {
	var out []string
	for _, call := range m.Calls {
		if call.Method == "PublishTrigger" {
			out = append(out, call.Arguments.Get(1).(queue.TriggerPayload).Trigger)
		}
	}
	return out
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendEnrollmentConfirmation(to, name, courseName string) error {
	args := m.Called(to, name, courseName)
	return args.Error(0)
}

// MockMessagingBridge
type MockMessagingBridge struct {
	mock.Mock
}

func (m *MockMessagingBridge) SendText(ctx context.Context, phoneNumber, text string) error {
	args := m.Called(ctx, phoneNumber, text)
	return args.Error(0)
}

func (m *MockMessagingBridge) IsConnected(ctx context.Context) bool {
	args := m.Called(ctx)
	return args.Bool(0)
}
