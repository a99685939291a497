package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gabifranca/studio-gestao/internal/usecase"
)

// StateHandler é a camada de sync da UI: um GET devolve o estado inteiro
// (blob de settings + contatos) e o PUT salva um campo do blob. É o
// "refresh" manual que reconcilia qualquer escrita best-effort perdida.
type StateHandler struct {
	SettingsRepo usecase.SettingsRepositoryInterface
	ContactRepo  usecase.ContactRepositoryInterface
}

func NewStateHandler(settingsRepo usecase.SettingsRepositoryInterface, contactRepo usecase.ContactRepositoryInterface) *StateHandler {
	return &StateHandler{SettingsRepo: settingsRepo, ContactRepo: contactRepo}
}

func (h *StateHandler) GetState(w http.ResponseWriter, r *http.Request) {
	settings, err := h.SettingsRepo.Load(r.Context())
	if err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "Erro ao carregar settings")
		return
	}

	contacts, err := h.ContactRepo.List(r.Context())
	if err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "Erro ao listar contatos")
		return
	}

	views := make([]contactView, 0, len(contacts))
	for _, c := range contacts {
		views = append(views, viewOf(c))
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"settings": settings,
		"contacts": views,
	})
}

// allowed é a lista fechada de campos de topo do blob que a UI pode salvar
var allowedFields = map[string]bool{
	"courses":                 true,
	"classes":                 true,
	"pipelines":               true,
	"automations":             true,
	"payment_links":           true,
	"products":                true,
	"broadcast_delay_seconds": true,
}

func (h *StateHandler) SaveField(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	if !allowedFields[key] {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_FIELD", "campo desconhecido: "+key)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_BODY", "corpo ilegível")
		return
	}

	var value any
	if err := json.Unmarshal(body, &value); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "JSON inválido")
		return
	}

	if err := h.SettingsRepo.SaveField(r.Context(), key, value); err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "Erro ao salvar campo")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
