package usecase

import (
	"context"
	"fmt"
	"log"

	"github.com/gabifranca/studio-gestao/internal/entity"
	"github.com/gabifranca/studio-gestao/internal/infra/integration/asaas"
)

type CheckoutInput struct {
	LinkID      string `json:"link_id,omitempty"`
	CourseID    string `json:"course_id,omitempty"`
	AmountCents int    `json:"amount_cents,omitempty"`

	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email,omitempty"`
	CPF   string `json:"cpf,omitempty"`

	PaymentMethod string `json:"payment_method"` // PIX, BOLETO, CREDIT_CARD

	CardHolder string `json:"card_holder,omitempty"`
	CardNumber string `json:"card_number,omitempty"`
	CardMonth  string `json:"card_month,omitempty"`
	CardYear   string `json:"card_year,omitempty"`
	CardCVV    string `json:"card_cvv,omitempty"`
}

type CheckoutOutput struct {
	PaymentID    string `json:"payment_id"`
	Status       string `json:"status"`
	Msg          string `json:"msg"`
	PixCode      string `json:"pix_code,omitempty"`       // copia-e-cola; vazio fora do PIX
	PixQRCode    string `json:"pix_qr_code,omitempty"`    // imagem base64
	BoletoURL    string `json:"boleto_url,omitempty"`
	InvoiceURL   string `json:"invoice_url,omitempty"`
}

// PaymentReconciler é o reconciliador visto pelo checkout (cartão aprovado
// na hora já efetiva a matrícula, sem esperar webhook)
type PaymentReconciler interface {
	Execute(ctx context.Context, payment *entity.PaymentRecord) (*ReconcileOutput, error)
}

type CheckoutUseCase struct {
	SettingsRepo SettingsRepositoryInterface
	PaymentRepo  PaymentRepositoryInterface
	Gateway      PaymentGateway
	Reconciler   PaymentReconciler
}

func NewCheckoutUseCase(
	settingsRepo SettingsRepositoryInterface,
	paymentRepo PaymentRepositoryInterface,
	gateway PaymentGateway,
	reconciler PaymentReconciler,
) *CheckoutUseCase {
	return &CheckoutUseCase{
		SettingsRepo: settingsRepo,
		PaymentRepo:  paymentRepo,
		Gateway:      gateway,
		Reconciler:   reconciler,
	}
}

func (uc *CheckoutUseCase) Execute(ctx context.Context, input CheckoutInput) (*CheckoutOutput, error) {
	if input.Name == "" || input.Phone == "" {
		return nil, &DomainError{Code: CodeCustomerIncomplete, Message: "nome e telefone são obrigatórios"}
	}

	if validationErrors := ValidateCheckoutInput(input); len(validationErrors) > 0 {
		errMsg := "validation failed: "
		for _, e := range validationErrors {
			errMsg += e.Field + " (" + e.Message + "), "
		}
		return nil, &DomainError{Code: CodeValidation, Message: errMsg}
	}

	courseID := input.CourseID
	amount := input.AmountCents
	linkID := input.LinkID

	if linkID != "" {
		settings, err := uc.SettingsRepo.Load(ctx)
		if err != nil {
			return nil, &TechnicalError{Code: CodeDatabaseError, Message: "falha ao carregar settings: " + err.Error()}
		}
		link, err := settings.FindPaymentLink(linkID)
		if err != nil || !link.Active {
			return nil, &DomainError{Code: CodeValidation, Message: "link de pagamento inválido ou inativo"}
		}
		courseID = link.CourseID
		amount = link.AmountCents
	}
	if amount <= 0 {
		return nil, &DomainError{Code: CodeValidation, Message: "valor da cobrança inválido"}
	}

	record := entity.NewPaymentRecord(linkID, courseID, amount, input.PaymentMethod, entity.CustomerSnapshot{
		Name:  input.Name,
		Phone: input.Phone,
		Email: input.Email,
		CPF:   input.CPF,
	})

	gatewayID, err := uc.Gateway.CreateCustomer(asaas.CreateCustomerInput{
		Name:              input.Name,
		Email:             input.Email,
		CpfCnpj:           input.CPF,
		Phone:             input.Phone,
		MobilePhone:       input.Phone,
		ExternalReference: record.ID, // o ID do nosso banco vai pro Asaas aqui
	})
	if err != nil {
		return nil, &DomainError{Code: CodePaymentFailed, Message: "Asaas recusou o cliente: " + err.Error()}
	}

	charge, err := uc.Gateway.CreateCharge(asaas.CreateChargeInput{
		CustomerID:        gatewayID,
		BillingType:       input.PaymentMethod,
		AmountCents:       amount,
		Description:       fmt.Sprintf("Studio Gestão — cobrança %s", record.ID),
		ExternalReference: record.ID,
		CardHolderName:    input.CardHolder,
		CardNumber:        input.CardNumber,
		CardMonth:         input.CardMonth,
		CardYear:          input.CardYear,
		CardCCV:           input.CardCVV,
		HolderEmail:       input.Email,
		HolderCpfCnpj:     input.CPF,
		HolderPhone:       input.Phone,
	})
	if err != nil {
		return nil, &DomainError{Code: CodePaymentFailed, Message: "Asaas recusou o pagamento: " + err.Error()}
	}

	record.ExternalTransactionID = charge.ID
	if err := uc.PaymentRepo.Create(ctx, record); err != nil {
		return nil, &TechnicalError{Code: CodeDatabaseError, Message: "falha ao persistir pagamento: " + err.Error()}
	}

	out := &CheckoutOutput{
		PaymentID:  record.ID,
		Status:     "WAITING_PAYMENT",
		InvoiceURL: charge.InvoiceURL,
		Msg:        "Cobrança criada com sucesso!",
	}

	switch input.PaymentMethod {
	case entity.MethodPix:
		pix, pixErr := uc.Gateway.GetPixQRCode(charge.ID)
		if pixErr != nil {
			log.Printf("⚠️ Cobrança criada mas QR code PIX falhou: %v", pixErr)
		} else {
			out.PixCode = pix.CopyPaste
			out.PixQRCode = pix.EncodedImage
		}

	case entity.MethodBoleto:
		out.BoletoURL = charge.BoletoURL

	case entity.MethodCreditCard:
		// Cartão aprovado na hora: reconcilia já, sem esperar webhook
		if charge.Status == "CONFIRMED" || charge.Status == "RECEIVED" {
			if _, recErr := uc.Reconciler.Execute(ctx, record); recErr != nil {
				log.Printf("⚠️ Cartão aprovado mas reconciliação falhou (webhook corrige): %v", recErr)
			} else {
				out.Status = "CONFIRMED"
				out.Msg = "Pagamento aprovado e matrícula efetivada!"
			}
		}
	}

	return out, nil
}
