package asaas

import (
	"encoding/json"
	"errors"
)

// ErrUnknownWebhookShape: o corpo não casa com nenhum formato conhecido
var ErrUnknownWebhookShape = errors.New("webhook asaas em formato desconhecido")

// Notification é a forma canônica de qualquer notificação do gateway,
// independente do formato que chegou no corpo.
type Notification struct {
	TransactionID string
	Event         string
}

// Confirmed diz se a notificação representa pagamento confirmado
func (n Notification) Confirmed() bool {
	switch n.Event {
	case "PAYMENT_RECEIVED", "PAYMENT_CONFIRMED", "RECEIVED", "CONFIRMED":
		return true
	}
	return false
}

// ParseWebhook normaliza os vários formatos que o Asaas já mandou em
// produção para um só. Formatos aceitos:
//
//  1. {"event": "...", "payment": {"id": "pay_x"}}   — formato atual
//  2. {"event": "...", "payment": "pay_x"}           — payment como string
//  3. {"status": "...", "transactionId": "pay_x"}    — formato legado
//
// Qualquer outra coisa falha com ErrUnknownWebhookShape.
func ParseWebhook(body []byte) (Notification, error) {
	var raw struct {
		Event         string          `json:"event"`
		Payment       json.RawMessage `json:"payment"`
		Status        string          `json:"status"`
		TransactionID string          `json:"transactionId"`
	}

	if err := json.Unmarshal(body, &raw); err != nil {
		return Notification{}, ErrUnknownWebhookShape
	}

	if raw.Event != "" && len(raw.Payment) > 0 {
		// Formato 1: payment é objeto
		var obj struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(raw.Payment, &obj); err == nil && obj.ID != "" {
			return Notification{TransactionID: obj.ID, Event: raw.Event}, nil
		}

		// Formato 2: payment é o próprio id
		var id string
		if err := json.Unmarshal(raw.Payment, &id); err == nil && id != "" {
			return Notification{TransactionID: id, Event: raw.Event}, nil
		}
	}

	// Formato 3: legado, status + transactionId na raiz
	if raw.Status != "" && raw.TransactionID != "" {
		return Notification{TransactionID: raw.TransactionID, Event: raw.Status}, nil
	}

	return Notification{}, ErrUnknownWebhookShape
}
