package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gabifranca/studio-gestao/internal/infra/http/middleware"
	"github.com/gabifranca/studio-gestao/internal/usecase"
)

type CheckoutHandler struct {
	CheckoutUC *usecase.CheckoutUseCase
}

func NewCheckoutHandler(uc *usecase.CheckoutUseCase) *CheckoutHandler {
	return &CheckoutHandler{CheckoutUC: uc}
}

func (h *CheckoutHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var input usecase.CheckoutInput

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "JSON inválido: "+err.Error())
		return
	}

	output, err := h.CheckoutUC.Execute(r.Context(), input)
	if err != nil {
		if usecase.DomainCode(err) == usecase.CodePaymentFailed {
			middleware.RecordIntegrationError("asaas")
		}
		writeUseCaseError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, output)
}
