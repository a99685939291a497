package handlers

import (
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/gabifranca/studio-gestao/internal/infra/database"
	"github.com/gabifranca/studio-gestao/internal/infra/http/middleware"
	"github.com/gabifranca/studio-gestao/internal/infra/integration/asaas"
	"github.com/gabifranca/studio-gestao/internal/usecase"
)

type WebhookHandler struct {
	PaymentRepo usecase.PaymentRepositoryInterface
	Reconciler  usecase.PaymentReconciler
}

func NewWebhookHandler(paymentRepo usecase.PaymentRepositoryInterface, reconciler usecase.PaymentReconciler) *WebhookHandler {
	return &WebhookHandler{
		PaymentRepo: paymentRepo,
		Reconciler:  reconciler,
	}
}

// Handle recebe a notificação do Asaas. A regra de status é deliberada:
// registro local ausente devolve 200 (pra parar o retry do gateway);
// erro de processamento devolve 500 (pro gateway tentar de novo).
func (h *WebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Bad body", http.StatusBadRequest)
		return
	}

	notification, err := asaas.ParseWebhook(body)
	if err != nil {
		log.Printf("❌ Webhook em formato desconhecido: %s", string(body))
		http.Error(w, "Bad JSON", http.StatusBadRequest)
		return
	}

	if !notification.Confirmed() {
		// Evento que não nos interessa (estorno, criação, etc)
		w.WriteHeader(http.StatusOK)
		return
	}

	payment, err := h.PaymentRepo.FindByTransactionID(r.Context(), notification.TransactionID)
	if err != nil {
		if errors.Is(err, database.ErrPaymentNotFound) {
			log.Printf("⚠️ Pagamento %s não encontrado localmente, respondendo 200 pra parar retries", notification.TransactionID)
			w.WriteHeader(http.StatusOK)
			return
		}
		log.Printf("❌ Erro ao buscar pagamento %s: %v", notification.TransactionID, err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	output, err := h.Reconciler.Execute(r.Context(), payment)
	if err != nil {
		log.Printf("❌ Erro na reconciliação do pagamento %s: %v", payment.ID, err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if !output.AlreadyProcessed {
		middleware.RecordPaymentConfirmed(payment.Method)
		if output.Class != nil {
			middleware.RecordEnrollment()
		}
		log.Printf("✅ Pagamento %s reconciliado para %s", payment.ID, output.Contact.Name)
	}

	w.WriteHeader(http.StatusOK)
}
