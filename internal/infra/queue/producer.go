package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// TriggerPayload é o evento de negócio que vai pra fila. O dispatcher de
// automação consome e decide quais regras disparam.
type TriggerPayload struct {
	Trigger   string `json:"trigger"` // lead_created, enrollment_created, payment_confirmed
	ContactID string `json:"contact_id"`

	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email,omitempty"`

	CourseID    string `json:"course_id,omitempty"`
	ClassID     string `json:"class_id,omitempty"`
	AmountCents int    `json:"amount_cents,omitempty"`

	Origin string `json:"origin"` // FORM, UI, WEBHOOK_ASAAS, POS
}

type RabbitMQProducer struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

func NewProducer(conn *amqp.Connection, ch *amqp.Channel) *RabbitMQProducer {
	return &RabbitMQProducer{
		Conn: conn,
		Ch:   ch,
	}
}

func (p *RabbitMQProducer) PublishTrigger(ctx context.Context, payload TriggerPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("erro ao converter payload: %v", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName, // ex.triggers
		RoutingKey,   // k.trigger
		false,        // Mandatory
		false,        // Immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent, // Mensagem salva no disco (segurança!)
		},
	)

	if err != nil {
		return fmt.Errorf("falha ao publicar no RabbitMQ: %v", err)
	}

	return nil
}
