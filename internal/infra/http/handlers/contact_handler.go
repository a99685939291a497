package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gabifranca/studio-gestao/internal/entity"
	"github.com/gabifranca/studio-gestao/internal/infra/http/middleware"
	"github.com/gabifranca/studio-gestao/internal/usecase"
)

type ContactHandler struct {
	ContactRepo usecase.ContactRepositoryInterface
	MoveUC      *usecase.MoveContactUseCase
	EnrollUC    *usecase.EnrollUseCase
}

func NewContactHandler(
	contactRepo usecase.ContactRepositoryInterface,
	moveUC *usecase.MoveContactUseCase,
	enrollUC *usecase.EnrollUseCase,
) *ContactHandler {
	return &ContactHandler{
		ContactRepo: contactRepo,
		MoveUC:      moveUC,
		EnrollUC:    enrollUC,
	}
}

// contactView embute o kind derivado, que não existe como coluna
type contactView struct {
	*entity.Contact
	Kind string `json:"kind"`
}

func viewOf(c *entity.Contact) contactView {
	return contactView{Contact: c, Kind: c.Kind()}
}

func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	contacts, err := h.ContactRepo.List(r.Context())
	if err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "Erro ao listar contatos")
		return
	}

	views := make([]contactView, 0, len(contacts))
	for _, c := range contacts {
		views = append(views, viewOf(c))
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *ContactHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var contact entity.Contact
	if err := json.NewDecoder(r.Body).Decode(&contact); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "JSON inválido")
		return
	}

	if contact.ID == "" {
		created := entity.NewLead(contact.Name, contact.Phone)
		created.Email = contact.Email
		created.CPF = contact.CPF
		created.InterestedIn = contact.InterestedIn
		contact = *created
	}

	if err := h.ContactRepo.Upsert(r.Context(), &contact); err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "Erro ao salvar contato")
		return
	}
	writeJSON(w, http.StatusOK, viewOf(&contact))
}

// Delete é ação administrativa explícita — o reconciliador nunca apaga
func (h *ContactHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.ContactRepo.Delete(r.Context(), id); err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "Erro ao remover contato")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type moveRequest struct {
	PipelineID string `json:"pipeline_id"`
	StageID    string `json:"stage_id"`
}

func (h *ContactHandler) Move(w http.ResponseWriter, r *http.Request) {
	contactID := chi.URLParam(r, "id")

	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "JSON inválido")
		return
	}

	contact, err := h.MoveUC.Execute(r.Context(), contactID, req.PipelineID, req.StageID)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, viewOf(contact))
}

func (h *ContactHandler) Enroll(w http.ResponseWriter, r *http.Request) {
	contactID := chi.URLParam(r, "id")

	var input usecase.EnrollInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "JSON inválido")
		return
	}
	input.ContactID = contactID

	output, err := h.EnrollUC.Execute(r.Context(), input)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	middleware.RecordEnrollment()
	if input.Paid {
		middleware.RecordPaymentConfirmed("MANUAL")
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"contact": viewOf(output.Contact),
		"class":   output.Class,
	})
}
