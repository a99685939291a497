package asaas

type CreateCustomerInput struct {
	Name              string
	Email             string
	CpfCnpj           string
	Phone             string
	MobilePhone       string
	ExternalReference string
}

type CreateChargeInput struct {
	CustomerID        string
	BillingType       string // PIX, BOLETO, CREDIT_CARD
	AmountCents       int
	Description       string
	ExternalReference string

	// Dados do cartão (só para CREDIT_CARD)
	CardHolderName string
	CardNumber     string
	CardMonth      string
	CardYear       string
	CardCCV        string

	// Dados do titular (anti-fraude)
	HolderEmail   string
	HolderCpfCnpj string
	HolderPhone   string
}

type ChargeOutput struct {
	ID         string
	Status     string // PENDING, CONFIRMED, RECEIVED...
	InvoiceURL string
	BoletoURL  string
}

type PixOutput struct {
	CopyPaste    string
	EncodedImage string // QR code em base64
}

// --- PAYLOADS: o que o Client manda para o Asaas (interno) ---

type createCustomerRequest struct {
	Name                 string `json:"name"`
	Email                string `json:"email,omitempty"`
	CpfCnpj              string `json:"cpfCnpj,omitempty"`
	Phone                string `json:"phone"`
	MobilePhone          string `json:"mobilePhone"`
	ExternalReference    string `json:"externalReference,omitempty"`
	NotificationDisabled bool   `json:"notificationDisabled"`
}

type customerResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type createChargeRequest struct {
	Customer             string                `json:"customer"`
	BillingType          string                `json:"billingType"`
	Value                float64               `json:"value"`
	DueDate              string                `json:"dueDate"`
	Description          string                `json:"description"`
	ExternalReference    string                `json:"externalReference,omitempty"`
	CreditCard           *creditCard           `json:"creditCard,omitempty"`
	CreditCardHolderInfo *creditCardHolderInfo `json:"creditCardHolderInfo,omitempty"`
}

type creditCard struct {
	HolderName  string `json:"holderName"`
	Number      string `json:"number"`
	ExpiryMonth string `json:"expiryMonth"`
	ExpiryYear  string `json:"expiryYear"`
	CCV         string `json:"ccv"`
}

type creditCardHolderInfo struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	CpfCnpj     string `json:"cpfCnpj"`
	Phone       string `json:"phone"`
	MobilePhone string `json:"mobilePhone"`
}

type chargeResponse struct {
	ID          string `json:"id"`
	Status      string `json:"status"`
	InvoiceURL  string `json:"invoiceUrl"`
	BankSlipURL string `json:"bankSlipUrl"`
}

type pixQRCodeResponse struct {
	Payload      string `json:"payload"`
	EncodedImage string `json:"encodedImage"`
}
