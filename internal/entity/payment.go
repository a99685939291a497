package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	PaymentPending = "PENDING"
	PaymentPaid    = "PAID"
	PaymentExpired = "EXPIRED"
)

const (
	MethodPix        = "PIX"
	MethodBoleto     = "BOLETO"
	MethodCreditCard = "CREDIT_CARD"
	MethodCash       = "CASH" // venda de balcão (POS), sem gateway
)

// CustomerSnapshot guarda o que o checkout sabia da cliente no momento do
// pagamento. A reconciliação usa o telefone daqui para achar o contato.
type CustomerSnapshot struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email,omitempty"`
	CPF   string `json:"cpf,omitempty"`
}

// PaymentRecord é dono do ciclo de vida do pagamento. O reconciliador só lê
// e escreve Status; a matrícula é efeito colateral.
type PaymentRecord struct {
	ID                    string           `json:"id"`
	LinkID                string           `json:"link_id,omitempty"`
	CourseID              string           `json:"course_id,omitempty"`
	AmountCents           int              `json:"amount_cents"`
	Method                string           `json:"method"`
	Status                string           `json:"status"`
	ExternalTransactionID string           `json:"external_transaction_id,omitempty"`
	Customer              CustomerSnapshot `json:"customer"`
	CreatedAt             time.Time        `json:"created_at"`
	UpdatedAt             time.Time        `json:"updated_at"`
}

func NewPaymentRecord(linkID, courseID string, amountCents int, method string, customer CustomerSnapshot) *PaymentRecord {
	now := time.Now()
	return &PaymentRecord{
		ID:          uuid.New().String(),
		LinkID:      linkID,
		CourseID:    courseID,
		AmountCents: amountCents,
		Method:      method,
		Status:      PaymentPending,
		Customer:    customer,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// PaymentLink é um link de cobrança compartilhável (fica no blob de settings)
type PaymentLink struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	CourseID    string `json:"course_id,omitempty"`
	AmountCents int    `json:"amount_cents"`
	Active      bool   `json:"active"`
}
