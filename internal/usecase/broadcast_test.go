package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/gabifranca/studio-gestao/internal/entity"
	"github.com/gabifranca/studio-gestao/internal/usecase"
)

// recordingBridge registra a ordem e o instante de cada envio
type recordingBridge struct {
	mu    sync.Mutex
	sends []string
	times []time.Time
	fail  map[string]bool
}

func (b *recordingBridge) SendText(ctx context.Context, phoneNumber, text string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sends = append(b.sends, text)
	b.times = append(b.times, time.Now())
	if b.fail[phoneNumber] {
		return errors.New("numero bloqueado")
	}
	return nil
}

func (b *recordingBridge) IsConnected(ctx context.Context) bool { return true }

func broadcastContacts() []*entity.Contact {
	return []*entity.Contact{
		entity.NewLead("Ana Souza", "11999990001"),
		entity.NewLead("Bia Lima", "11999990002"),
		entity.NewLead("Carla Dias", "11999990003"),
	}
}

// TestBroadcastSequentialWithDelay - ordem preservada e pausa só ENTRE envios
func TestBroadcastSequentialWithDelay(t *testing.T) {
	bridge := &recordingBridge{}
	delay := 50 * time.Millisecond

	uc := usecase.NewBroadcastUseCase(bridge, delay)

	start := time.Now()
	sent, err := uc.Execute(context.Background(), broadcastContacts(), "Oi {nome}, turma nova aberta!")
	elapsed := time.Since(start)

	assert.NoError(t, err)
	assert.Equal(t, 3, sent)
	assert.Equal(t, []string{
		"Oi Ana, turma nova aberta!",
		"Oi Bia, turma nova aberta!",
		"Oi Carla, turma nova aberta!",
	}, bridge.sends)

	// 3 envios = 2 pausas; nunca 3
	assert.GreaterOrEqual(t, elapsed, 2*delay)
	assert.Less(t, elapsed, 3*delay)
	assert.GreaterOrEqual(t, bridge.times[1].Sub(bridge.times[0]), delay)
	assert.GreaterOrEqual(t, bridge.times[2].Sub(bridge.times[1]), delay)
}

// TestBroadcastSkipsFailedContact - falha no meio não para a fila
func TestBroadcastSkipsFailedContact(t *testing.T) {
	bridge := &recordingBridge{fail: map[string]bool{"11999990002": true}}

	uc := usecase.NewBroadcastUseCase(bridge, time.Millisecond)

	sent, err := uc.Execute(context.Background(), broadcastContacts(), "Oi {nome}!")

	assert.NoError(t, err)
	assert.Equal(t, 2, sent)
	assert.Len(t, bridge.sends, 3) // tentou todos
}

// TestBroadcastDisconnectedBridge - bridge fora do ar rejeita antes de enviar
func TestBroadcastDisconnectedBridge(t *testing.T) {
	mockBridge := new(MockMessagingBridge)
	mockBridge.On("IsConnected", mock.Anything).Return(false)

	uc := usecase.NewBroadcastUseCase(mockBridge, time.Millisecond)

	sent, err := uc.Execute(context.Background(), broadcastContacts(), "Oi!")

	assert.Error(t, err)
	assert.Equal(t, 0, sent)
	assert.Equal(t, usecase.CodeConnectionError, usecase.DomainCode(err))
	mockBridge.AssertNotCalled(t, "SendText")
}

// TestBroadcastCancelBetweenSends - cancelamento para entre dois envios
func TestBroadcastCancelBetweenSends(t *testing.T) {
	bridge := &recordingBridge{}

	ctx, cancel := context.WithCancel(context.Background())

	uc := usecase.NewBroadcastUseCase(bridge, 5*time.Second)

	done := make(chan struct{})
	var sent int
	var err error
	go func() {
		sent, err = uc.Execute(ctx, broadcastContacts(), "Oi {nome}!")
		close(done)
	}()

	// Deixa o primeiro envio sair e cancela durante a pausa
	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("broadcast não respeitou o cancelamento")
	}

	assert.Error(t, err)
	assert.Equal(t, 1, sent)
	assert.Len(t, bridge.sends, 1)
}
