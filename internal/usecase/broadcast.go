package usecase

import (
	"context"
	"log"
	"time"

	"github.com/gabifranca/studio-gestao/internal/entity"
)

// BroadcastUseCase é o disparo em massa. Os envios são estritamente
// sequenciais com uma pausa fixa entre um e outro (sem pausa depois do
// último) — medida anti-spam do bridge, não otimização. Não paralelize.
type BroadcastUseCase struct {
	Bridge MessagingBridge
	Delay  time.Duration
}

func NewBroadcastUseCase(bridge MessagingBridge, delay time.Duration) *BroadcastUseCase {
	return &BroadcastUseCase{Bridge: bridge, Delay: delay}
}

// Execute envia o template renderizado para cada contato, na ordem dada.
// Falha num contato não interrompe os seguintes. Devolve quantos saíram.
// Cancelamento do contexto para entre dois envios; o que já foi, foi.
func (uc *BroadcastUseCase) Execute(ctx context.Context, contacts []*entity.Contact, template string) (int, error) {
	if !uc.Bridge.IsConnected(ctx) {
		return 0, &DomainError{Code: CodeConnectionError, Message: "bridge WhatsApp desconectado"}
	}

	sent := 0
	for i, contact := range contacts {
		if i > 0 {
			select {
			case <-ctx.Done():
				log.Printf("⚠️ Disparo interrompido após %d envio(s)", sent)
				return sent, ctx.Err()
			case <-time.After(uc.Delay):
			}
		}

		text := entity.RenderTemplate(template, contact.Name, contact.Phone)
		if err := uc.Bridge.SendText(ctx, contact.Phone, text); err != nil {
			log.Printf("⚠️ Disparo falhou para %s: %v", contact.Phone, err)
			continue
		}
		sent++
	}

	return sent, nil
}
