package queue

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gabifranca/studio-gestao/internal/entity"
)

type fakeRules struct {
	settings *entity.Settings
	err      error
}

func (f *fakeRules) Load(ctx context.Context) (*entity.Settings, error) {
	return f.settings, f.err
}

type fakeBridge struct {
	connected bool
	sends     []string
	failOn    string
}

func (f *fakeBridge) SendText(ctx context.Context, phoneNumber, text string) error {
	if text == f.failOn {
		return errors.New("envio recusado")
	}
	f.sends = append(f.sends, text)
	return nil
}

func (f *fakeBridge) IsConnected(ctx context.Context) bool { return f.connected }

func automationSettings() *entity.Settings {
	settings := entity.DefaultSettings()
	settings.Automations = []entity.AutomationRule{
		{ID: "r1", Name: "Boas-vindas", Trigger: entity.TriggerLeadCreated, Template: "Oi {nome}, recebemos seu interesse!", Active: true},
		{ID: "r2", Name: "Desativada", Trigger: entity.TriggerLeadCreated, Template: "nunca sai", Active: false},
		{ID: "r3", Name: "Pós-matrícula", Trigger: entity.TriggerEnrollmentCreated, Template: "Matrícula de {nome_completo} confirmada!", Active: true},
	}
	return settings
}

// TestDispatchRendersAndSendsMatchedRules
func TestDispatchRendersAndSendsMatchedRules(t *testing.T) {
	bridge := &fakeBridge{connected: true}
	w := NewWorker(nil, &fakeRules{settings: automationSettings()}, bridge)

	err := w.dispatch(context.Background(), TriggerPayload{
		Trigger: entity.TriggerLeadCreated,
		Name:    "Ana Carolina Souza",
		Phone:   "11999998888",
	})

	assert.NoError(t, err)
	assert.Equal(t, []string{"Oi Ana, recebemos seu interesse!"}, bridge.sends)
}

// TestDispatchNoMatchingRules - trigger sem regra é sucesso silencioso
func TestDispatchNoMatchingRules(t *testing.T) {
	bridge := &fakeBridge{connected: true}
	w := NewWorker(nil, &fakeRules{settings: automationSettings()}, bridge)

	err := w.dispatch(context.Background(), TriggerPayload{
		Trigger: entity.TriggerPaymentConfirmed,
		Name:    "Ana Souza",
		Phone:   "11999998888",
	})

	assert.NoError(t, err)
	assert.Empty(t, bridge.sends)
}

// TestDispatchDisconnectedBridgeDropsSilently - bridge fora do ar não é erro de fila
func TestDispatchDisconnectedBridgeDropsSilently(t *testing.T) {
	bridge := &fakeBridge{connected: false}
	w := NewWorker(nil, &fakeRules{settings: automationSettings()}, bridge)

	err := w.dispatch(context.Background(), TriggerPayload{
		Trigger: entity.TriggerLeadCreated,
		Name:    "Ana Souza",
		Phone:   "11999998888",
	})

	assert.NoError(t, err)
	assert.Empty(t, bridge.sends)
}

// TestDispatchSettingsFailureBubblesUp - só erro de infra sobe (e vira Nack)
func TestDispatchSettingsFailureBubblesUp(t *testing.T) {
	w := NewWorker(nil, &fakeRules{err: errors.New("db down")}, &fakeBridge{connected: true})

	err := w.dispatch(context.Background(), TriggerPayload{Trigger: entity.TriggerLeadCreated})

	assert.Error(t, err)
}

// TestDispatchRuleFailureContinues - falha numa regra não bloqueia as outras
func TestDispatchRuleFailureContinues(t *testing.T) {
	settings := automationSettings()
	settings.Automations = append(settings.Automations, entity.AutomationRule{
		ID: "r4", Name: "Segunda regra", Trigger: entity.TriggerLeadCreated, Template: "Aproveite o desconto!", Active: true,
	})

	bridge := &fakeBridge{connected: true, failOn: "Oi Ana, recebemos seu interesse!"}
	w := NewWorker(nil, &fakeRules{settings: settings}, bridge)

	err := w.dispatch(context.Background(), TriggerPayload{
		Trigger: entity.TriggerLeadCreated,
		Name:    "Ana Carolina Souza",
		Phone:   "11999998888",
	})

	assert.NoError(t, err)
	assert.Equal(t, []string{"Aproveite o desconto!"}, bridge.sends)
}
