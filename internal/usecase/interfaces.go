package usecase

import (
	"context"

	"github.com/gabifranca/studio-gestao/internal/entity"
	"github.com/gabifranca/studio-gestao/internal/infra/integration/asaas"
	"github.com/gabifranca/studio-gestao/internal/infra/queue"
)

type ContactRepositoryInterface interface {
	Upsert(ctx context.Context, c *entity.Contact) error
	FindByID(ctx context.Context, id string) (*entity.Contact, error)
	FindByPhoneSuffix(ctx context.Context, suffix string) (*entity.Contact, error)
	List(ctx context.Context) ([]*entity.Contact, error)
	Delete(ctx context.Context, id string) error
}

type SettingsRepositoryInterface interface {
	Load(ctx context.Context) (*entity.Settings, error)
	Save(ctx context.Context, s *entity.Settings) error
	SaveField(ctx context.Context, key string, value any) error
}

type PaymentRepositoryInterface interface {
	Create(ctx context.Context, p *entity.PaymentRecord) error
	FindByID(ctx context.Context, id string) (*entity.PaymentRecord, error)
	FindByTransactionID(ctx context.Context, txID string) (*entity.PaymentRecord, error)
	UpdateStatus(ctx context.Context, id, status string) error
}

type PaymentGateway interface {
	CreateCustomer(input asaas.CreateCustomerInput) (string, error)
	CreateCharge(input asaas.CreateChargeInput) (*asaas.ChargeOutput, error)
	GetPixQRCode(chargeID string) (*asaas.PixOutput, error)
}

// MessagingBridge é o colaborador externo de WhatsApp (bridge HTTP).
// Nunca bloqueia a mutação de negócio: falhas são engolidas pelo chamador.
type MessagingBridge interface {
	SendText(ctx context.Context, phoneNumber, text string) error
	IsConnected(ctx context.Context) bool
}

type TriggerProducerInterface interface {
	PublishTrigger(ctx context.Context, payload queue.TriggerPayload) error
}

type EmailService interface {
	SendEnrollmentConfirmation(to, name, courseName string) error
}
