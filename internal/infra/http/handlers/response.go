package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gabifranca/studio-gestao/internal/usecase"
)

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func writeErrorResponse(w http.ResponseWriter, statusCode int, code, message string) {
	writeJSON(w, statusCode, map[string]string{
		"error":   code,
		"message": message,
	})
}

// writeUseCaseError mapeia DomainError → resposta amigável; o resto é 500
func writeUseCaseError(w http.ResponseWriter, err error) {
	code := usecase.DomainCode(err)

	switch code {
	case usecase.CodeValidation, usecase.CodeCustomerIncomplete:
		writeErrorResponse(w, http.StatusBadRequest, code, err.Error())
	case usecase.CodeInvalidStage:
		writeErrorResponse(w, http.StatusUnprocessableEntity, code, err.Error())
	case usecase.CodeClassNotFound, usecase.CodeContactNotFound, usecase.CodeProductNotFound:
		writeErrorResponse(w, http.StatusNotFound, code, err.Error())
	case usecase.CodeOutOfStock:
		writeErrorResponse(w, http.StatusConflict, code, err.Error())
	case usecase.CodePaymentFailed:
		writeErrorResponse(w, http.StatusUnprocessableEntity, code, err.Error())
	case usecase.CodeConnectionError:
		writeErrorResponse(w, http.StatusServiceUnavailable, code, err.Error())
	default:
		writeErrorResponse(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
	}
}
