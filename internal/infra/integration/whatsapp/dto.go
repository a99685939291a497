package whatsapp

type sendTextRequest struct {
	Phone   string `json:"phone"`   // E.164, ex: "+5511999999999"
	Message string `json:"message"`
}

type sendTextResponse struct {
	Success   bool   `json:"success"`
	MessageID string `json:"message_id,omitempty"`
	Error     string `json:"error,omitempty"`
}

type statusResponse struct {
	Connected bool   `json:"connected"`
	State     string `json:"state,omitempty"` // open, connecting, close
}
