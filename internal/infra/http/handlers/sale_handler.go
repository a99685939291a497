package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gabifranca/studio-gestao/internal/usecase"
)

type SaleHandler struct {
	RegisterSaleUC *usecase.RegisterSaleUseCase
}

func NewSaleHandler(registerSaleUC *usecase.RegisterSaleUseCase) *SaleHandler {
	return &SaleHandler{RegisterSaleUC: registerSaleUC}
}

func (h *SaleHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var input usecase.RegisterSaleInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "JSON inválido")
		return
	}

	output, err := h.RegisterSaleUC.Execute(r.Context(), input)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, output)
}
