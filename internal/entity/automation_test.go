package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gabifranca/studio-gestao/internal/entity"
)

// TestRenderTemplate - {nome} é o primeiro nome, {nome_completo} o inteiro
func TestRenderTemplate(t *testing.T) {
	out := entity.RenderTemplate(
		"Oi {nome}! Confirmamos a matrícula de {nome_completo} ({telefone}).",
		"Ana Carolina Souza",
		"11999998888",
	)
	assert.Equal(t, "Oi Ana! Confirmamos a matrícula de Ana Carolina Souza (11999998888).", out)
}

// TestRenderTemplateSingleName - nome sem sobrenome serve pros dois placeholders
func TestRenderTemplateSingleName(t *testing.T) {
	out := entity.RenderTemplate("{nome} / {nome_completo}", "Ana", "11999998888")
	assert.Equal(t, "Ana / Ana", out)
}

// TestRenderTemplateNoPlaceholders
func TestRenderTemplateNoPlaceholders(t *testing.T) {
	out := entity.RenderTemplate("Turma nova aberta!", "Ana Souza", "11999998888")
	assert.Equal(t, "Turma nova aberta!", out)
}

// TestMatchRules - só regras ativas do trigger certo
func TestMatchRules(t *testing.T) {
	rules := []entity.AutomationRule{
		{ID: "r1", Trigger: entity.TriggerLeadCreated, Active: true},
		{ID: "r2", Trigger: entity.TriggerLeadCreated, Active: false},
		{ID: "r3", Trigger: entity.TriggerPaymentConfirmed, Active: true},
		{ID: "r4", Trigger: entity.TriggerLeadCreated, Active: true},
	}

	matched := entity.MatchRules(rules, entity.TriggerLeadCreated)

	assert.Len(t, matched, 2)
	assert.Equal(t, "r1", matched[0].ID)
	assert.Equal(t, "r4", matched[1].ID)

	assert.Empty(t, entity.MatchRules(rules, entity.TriggerEnrollmentCreated))
}
