package asaas

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(apiKey, baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// CreateCustomer: Cria o cliente no Asaas e retorna o ID (cus_xxxx)
func (c *Client) CreateCustomer(input CreateCustomerInput) (string, error) {
	url := fmt.Sprintf("%s/customers", c.baseURL)

	payload := createCustomerRequest{
		Name:                 input.Name,
		Email:                input.Email,
		CpfCnpj:              input.CpfCnpj,
		Phone:                input.Phone,
		MobilePhone:          input.MobilePhone,
		ExternalReference:    input.ExternalReference,
		NotificationDisabled: true, // Quem avisa a cliente somos nós (WhatsApp)
	}

	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("erro ao marshal customer: %w", err)
	}

	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", err
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("erro request asaas: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		fmt.Printf("❌ ERRO CRIAR CLIENTE ASAAS: %s\n", string(body))
		return "", fmt.Errorf("erro criar cliente asaas (status %d)", resp.StatusCode)
	}

	var response customerResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("erro decode asaas: %w", err)
	}

	return response.ID, nil
}

// CreateCharge cria uma cobrança avulsa (PIX, boleto ou cartão).
// Cartão pode voltar já CONFIRMED; PIX e boleto voltam PENDING.
func (c *Client) CreateCharge(input CreateChargeInput) (*ChargeOutput, error) {
	url := fmt.Sprintf("%s/payments", c.baseURL)

	payload := createChargeRequest{
		Customer:          input.CustomerID,
		BillingType:       input.BillingType,
		Value:             float64(input.AmountCents) / 100.0,
		DueDate:           time.Now().Format("2006-01-02"),
		Description:       input.Description,
		ExternalReference: input.ExternalReference,
	}

	if input.BillingType == "CREDIT_CARD" {
		payload.CreditCard = &creditCard{
			HolderName:  input.CardHolderName,
			Number:      input.CardNumber,
			ExpiryMonth: input.CardMonth,
			ExpiryYear:  input.CardYear,
			CCV:         input.CardCCV,
		}
		payload.CreditCardHolderInfo = &creditCardHolderInfo{
			Name:        input.CardHolderName,
			Email:       input.HolderEmail,
			CpfCnpj:     input.HolderCpfCnpj,
			Phone:       input.HolderPhone,
			MobilePhone: input.HolderPhone,
		}
	}

	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar json: %w", err)
	}

	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, err
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("erro na conexão com asaas: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		fmt.Printf("❌ ERRO API ASAAS (Status %d): %s\n", resp.StatusCode, string(body))
		return nil, fmt.Errorf("api asaas rejeitou (status %d)", resp.StatusCode)
	}

	var response chargeResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("erro ao ler resposta asaas: %w", err)
	}

	return &ChargeOutput{
		ID:         response.ID,
		Status:     response.Status,
		InvoiceURL: response.InvoiceURL,
		BoletoURL:  response.BankSlipURL,
	}, nil
}

// GetPixQRCode busca o copia-e-cola e o QR code de uma cobrança PIX
func (c *Client) GetPixQRCode(chargeID string) (*PixOutput, error) {
	url := fmt.Sprintf("%s/payments/%s/pixQrCode", c.baseURL, chargeID)

	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, err
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("erro na conexão com asaas: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("erro ao buscar pix (status %d)", resp.StatusCode)
	}

	var response pixQRCodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("erro ao ler resposta asaas: %w", err)
	}

	return &PixOutput{
		CopyPaste:    response.Payload,
		EncodedImage: response.EncodedImage,
	}, nil
}

// setHeaders centraliza os headers obrigatórios
func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("access_token", c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "StudioGestao/1.0")
}
