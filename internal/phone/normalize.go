// Package phone concentra a normalização de telefone usada no matching
// de pagamento → contato.
package phone

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

const defaultRegion = "BR"

const suffixLen = 8

// Digits devolve só os dígitos do número, na ordem
func Digits(input string) string {
	var b strings.Builder
	for _, r := range input {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NormalizeE164 formata para E.164 assumindo BR. Se o parse falhar,
// devolve o input com os espaços aparados.
func NormalizeE164(input string) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return trimmed
	}

	number, err := phonenumbers.Parse(trimmed, defaultRegion)
	if err != nil {
		return trimmed
	}

	if !phonenumbers.IsValidNumber(number) {
		return trimmed
	}

	return phonenumbers.Format(number, phonenumbers.E164)
}

// Suffix devolve os últimos 8 dígitos (o número local sem DDD/DDI).
// Números mais curtos voltam inteiros.
func Suffix(input string) string {
	digits := Digits(input)
	if len(digits) <= suffixLen {
		return digits
	}
	return digits[len(digits)-suffixLen:]
}
