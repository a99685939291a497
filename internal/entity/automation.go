package entity

import "strings"

// Triggers de negócio que as regras de automação escutam
const (
	TriggerLeadCreated       = "lead_created"
	TriggerEnrollmentCreated = "enrollment_created"
	TriggerPaymentConfirmed  = "payment_confirmed"
)

// AutomationRule liga um trigger a um template de mensagem WhatsApp.
// O template aceita {nome}, {nome_completo} e {telefone}.
type AutomationRule struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Trigger  string `json:"trigger"`
	Template string `json:"template"`
	Active   bool   `json:"active"`
}

// RenderTemplate substitui os placeholders do template:
// {nome} → primeiro nome, {nome_completo} → nome inteiro, {telefone} → telefone
func RenderTemplate(template, fullName, phoneNumber string) string {
	firstName := fullName
	if i := strings.IndexByte(fullName, ' '); i > 0 {
		firstName = fullName[:i]
	}
	out := strings.ReplaceAll(template, "{nome_completo}", fullName)
	out = strings.ReplaceAll(out, "{nome}", firstName)
	out = strings.ReplaceAll(out, "{telefone}", phoneNumber)
	return out
}

// MatchRules filtra as regras ativas que escutam o trigger
func MatchRules(rules []AutomationRule, trigger string) []AutomationRule {
	var out []AutomationRule
	for _, r := range rules {
		if r.Active && r.Trigger == trigger {
			out = append(out, r)
		}
	}
	return out
}
