package queue

import (
	"context"
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/gabifranca/studio-gestao/internal/entity"
)

// RulesSource entrega as regras de automação vigentes (o blob de settings)
type RulesSource interface {
	Load(ctx context.Context) (*entity.Settings, error)
}

// MessagingBridge é o bridge HTTP de WhatsApp visto pelo dispatcher
type MessagingBridge interface {
	SendText(ctx context.Context, phoneNumber, text string) error
	IsConnected(ctx context.Context) bool
}

// Worker é o dispatcher de automação: consome os triggers da fila e envia
// as mensagens das regras que casam. Tudo aqui é best-effort — falha de
// envio nunca volta pra mutação de negócio que gerou o trigger.
type Worker struct {
	Channel *amqp.Channel
	Rules   RulesSource
	Bridge  MessagingBridge
}

func NewWorker(ch *amqp.Channel, rules RulesSource, bridge MessagingBridge) *Worker {
	return &Worker{
		Channel: ch,
		Rules:   rules,
		Bridge:  bridge,
	}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName, // fila
		"",        // consumer
		false,     // auto-ack (manual é mais seguro)
		false,     // exclusive
		false,     // no-local
		false,     // no-wait
		nil,       // args
	)
	if err != nil {
		log.Fatalf("❌ Falha ao registrar consumidor RabbitMQ: %s", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var payload TriggerPayload
			if err := json.Unmarshal(d.Body, &payload); err != nil {
				log.Printf("❌ [WORKER] JSON inválido: %s", err)
				// Mensagem podre (malformada). Rejeita sem requeue para não travar a fila.
				d.Nack(false, false)
				continue
			}

			log.Printf("📥 [WORKER] Trigger %s recebido para %s", payload.Trigger, payload.Name)

			if err := w.dispatch(context.Background(), payload); err != nil {
				log.Printf("❌ [WORKER] Erro ao despachar automação: %s", err)
				d.Nack(false, false)
				continue
			}
			d.Ack(false)
		}
	}()

	log.Printf(" [*] Worker de automação aguardando na fila '%s'", queueName)
	<-forever
}

// dispatch roda as regras que casam com o trigger. Só erros de infraestrutura
// (settings ilegível) sobem; falha de envio por regra é logada e engolida.
func (w *Worker) dispatch(ctx context.Context, payload TriggerPayload) error {
	settings, err := w.Rules.Load(ctx)
	if err != nil {
		return err
	}

	matched := entity.MatchRules(settings.Automations, payload.Trigger)
	if len(matched) == 0 {
		return nil
	}

	if !w.Bridge.IsConnected(ctx) {
		log.Printf("⚠️ [WORKER] Bridge WhatsApp desconectado, descartando %d regra(s)", len(matched))
		return nil
	}

	for _, rule := range matched {
		text := entity.RenderTemplate(rule.Template, payload.Name, payload.Phone)
		if err := w.Bridge.SendText(ctx, payload.Phone, text); err != nil {
			log.Printf("⚠️ [WORKER] Regra %q falhou para %s: %v", rule.Name, payload.Phone, err)
			continue
		}
		log.Printf("✅ [WORKER] Regra %q enviada para %s", rule.Name, payload.Phone)
	}

	return nil
}
