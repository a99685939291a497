package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gabifranca/studio-gestao/internal/entity"
	"github.com/gabifranca/studio-gestao/internal/infra/http/middleware"
	"github.com/gabifranca/studio-gestao/internal/usecase"
)

type BroadcastHandler struct {
	Bridge       usecase.MessagingBridge
	SettingsRepo usecase.SettingsRepositoryInterface
	ContactRepo  usecase.ContactRepositoryInterface
}

func NewBroadcastHandler(
	bridge usecase.MessagingBridge,
	settingsRepo usecase.SettingsRepositoryInterface,
	contactRepo usecase.ContactRepositoryInterface,
) *BroadcastHandler {
	return &BroadcastHandler{
		Bridge:       bridge,
		SettingsRepo: settingsRepo,
		ContactRepo:  contactRepo,
	}
}

type broadcastRequest struct {
	ContactIDs []string `json:"contact_ids"`
	Message    string   `json:"message"`
}

// Handle dispara em massa. O envio roda em background — com a pausa entre
// mensagens, uma lista grande leva minutos; a resposta é 202 na hora.
func (h *BroadcastHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var req broadcastRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "JSON inválido")
		return
	}
	if len(req.ContactIDs) == 0 || req.Message == "" {
		writeErrorResponse(w, http.StatusBadRequest, "MISSING_FIELDS", "contact_ids e message são obrigatórios")
		return
	}

	if !h.Bridge.IsConnected(r.Context()) {
		middleware.RecordIntegrationError("whatsapp")
		writeErrorResponse(w, http.StatusServiceUnavailable, "CONNECTION_ERROR", "bridge WhatsApp desconectado")
		return
	}

	settings, err := h.SettingsRepo.Load(r.Context())
	if err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "falha ao carregar settings")
		return
	}
	delay := time.Duration(settings.BroadcastDelaySeconds) * time.Second

	var contacts []*entity.Contact
	for _, id := range req.ContactIDs {
		contact, err := h.ContactRepo.FindByID(r.Context(), id)
		if err != nil {
			log.Printf("⚠️ Disparo: contato %s não encontrado, pulando", id)
			continue
		}
		contacts = append(contacts, contact)
	}
	if len(contacts) == 0 {
		writeErrorResponse(w, http.StatusNotFound, "CONTACT_NOT_FOUND", "nenhum contato válido na lista")
		return
	}

	uc := usecase.NewBroadcastUseCase(h.Bridge, delay)
	go func() {
		sent, err := uc.Execute(context.Background(), contacts, req.Message)
		if err != nil {
			log.Printf("⚠️ Disparo encerrado com erro após %d envio(s): %v", sent, err)
			return
		}
		log.Printf("✅ Disparo concluído: %d/%d mensagens enviadas", sent, len(contacts))
	}()

	writeJSON(w, http.StatusAccepted, map[string]any{
		"queued":  len(contacts),
		"message": "Disparo iniciado",
	})
}
