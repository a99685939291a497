package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gabifranca/studio-gestao/internal/phone"
)

// Client fala com o bridge HTTP de WhatsApp (a instância conectada ao
// aparelho da escola). O bridge expõe envio de texto e status da conexão.
type Client struct {
	baseURL  string
	apiToken string
	http     *http.Client
}

func NewClient(apiToken, baseURL string) *Client {
	return &Client{
		baseURL:  baseURL,
		apiToken: apiToken,
		http:     &http.Client{Timeout: 15 * time.Second},
	}
}

// SendText envia uma mensagem de texto simples para o número
func (c *Client) SendText(ctx context.Context, phoneNumber, text string) error {
	if c.apiToken == "" || c.baseURL == "" {
		log.Println("⚠️ WhatsApp: bridge não configurado (TOKEN/URL vazios)")
		return fmt.Errorf("whatsapp não configurado")
	}

	// O bridge espera o número em E.164; o contato pode ter sido salvo
	// com formatação local ("(11) 99999-8888").
	payload := sendTextRequest{
		Phone:   phone.NormalizeE164(phoneNumber),
		Message: text,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/message/send-text", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("erro na conexão com o bridge: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		log.Printf("❌ WhatsApp: bridge retornou status %d: %s", resp.StatusCode, string(respBody))
		return fmt.Errorf("whatsapp bridge error: %d", resp.StatusCode)
	}

	var result sendTextResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return err
	}
	if !result.Success {
		return fmt.Errorf("whatsapp: %s", result.Error)
	}

	return nil
}

// IsConnected consulta o status da instância no bridge. Qualquer falha de
// rede conta como desconectado — quem chama só quer saber se pode enviar.
func (c *Client) IsConnected(ctx context.Context) bool {
	if c.apiToken == "" || c.baseURL == "" {
		return false
	}

	url := fmt.Sprintf("%s/instance/status", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return false
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false
	}

	var result statusResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return false
	}
	return result.Connected
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.apiToken))
}
