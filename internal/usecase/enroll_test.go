package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/gabifranca/studio-gestao/internal/entity"
	"github.com/gabifranca/studio-gestao/internal/usecase"
)

func settingsWithClass() (*entity.Settings, *entity.CourseClass) {
	settings := entity.DefaultSettings()
	settings.Courses = []entity.Course{
		{ID: "curso-cilios", Name: "Extensão de Cílios", PriceCents: 89900},
	}
	class := entity.NewCourseClass("curso-cilios", "Turma de Setembro", time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC), 8)
	settings.Classes = []entity.CourseClass{*class}
	return settings, &settings.Classes[0]
}

// TestEnrollPaidPromotesContact - matrícula paga ativa o contato e vira student
func TestEnrollPaidPromotesContact(t *testing.T) {
	ctx := context.Background()
	settings, class := settingsWithClass()

	contact := entity.NewLead("Ana Souza", "11999998888")
	contact.AddInterest("curso-cilios")

	mockContactRepo := new(MockContactRepository)
	mockSettingsRepo := new(MockSettingsRepository)
	mockProducer := new(MockTriggerProducer)

	mockSettingsRepo.On("Load", ctx).Return(settings, nil)
	mockSettingsRepo.On("SaveField", ctx, "classes", mock.Anything).Return(nil)
	mockContactRepo.On("FindByID", ctx, contact.ID).Return(contact, nil)
	mockContactRepo.On("Upsert", ctx, mock.Anything).Return(nil)
	mockProducer.On("PublishTrigger", ctx, mock.Anything).Return(nil)

	uc := usecase.NewEnrollUseCase(mockContactRepo, mockSettingsRepo, mockProducer, nil)

	output, err := uc.Execute(ctx, usecase.EnrollInput{
		ContactID:   contact.ID,
		ClassID:     class.ID,
		AmountCents: 89900,
		Paid:        true,
	})

	assert.NoError(t, err)
	assert.Equal(t, entity.StatusActive, output.Contact.Status)
	assert.Equal(t, entity.KindStudent, output.Contact.Kind())
	assert.Len(t, output.Contact.History, 1)
	assert.Equal(t, entity.EnrollmentPaid, output.Contact.History[0].Status)
	// Interesse no curso sai da lista quando vira matrícula
	assert.Empty(t, output.Contact.InterestedIn)
	// Roster da turma ganha a aluna e é persistido
	assert.Contains(t, class.EnrolledStudentIDs, contact.ID)
	mockSettingsRepo.AssertCalled(t, "SaveField", ctx, "classes", mock.Anything)
	// Os dois triggers saem, nessa ordem
	assert.Equal(t, []string{entity.TriggerEnrollmentCreated, entity.TriggerPaymentConfirmed}, mockProducer.Triggers())
	// O contato original fica intacto (mutação só na cópia)
	assert.Empty(t, contact.History)
	assert.Equal(t, entity.StatusInterested, contact.Status)
}

// TestEnrollPendingKeepsStatus - matrícula sem pagamento não ativa o contato
func TestEnrollPendingKeepsStatus(t *testing.T) {
	ctx := context.Background()
	settings, class := settingsWithClass()

	contact := entity.NewLead("Ana Souza", "11999998888")

	mockContactRepo := new(MockContactRepository)
	mockSettingsRepo := new(MockSettingsRepository)
	mockProducer := new(MockTriggerProducer)

	mockSettingsRepo.On("Load", ctx).Return(settings, nil)
	mockSettingsRepo.On("SaveField", ctx, "classes", mock.Anything).Return(nil)
	mockContactRepo.On("FindByID", ctx, contact.ID).Return(contact, nil)
	mockContactRepo.On("Upsert", ctx, mock.Anything).Return(nil)
	mockProducer.On("PublishTrigger", ctx, mock.Anything).Return(nil)

	uc := usecase.NewEnrollUseCase(mockContactRepo, mockSettingsRepo, mockProducer, nil)

	output, err := uc.Execute(ctx, usecase.EnrollInput{
		ContactID: contact.ID,
		ClassID:   class.ID,
		Paid:      false,
	})

	assert.NoError(t, err)
	assert.Equal(t, entity.StatusInterested, output.Contact.Status)
	assert.Equal(t, entity.KindLead, output.Contact.Kind())
	assert.Equal(t, entity.EnrollmentPending, output.Contact.History[0].Status)
	// Sem pagamento, só sai enrollment_created
	assert.Equal(t, []string{entity.TriggerEnrollmentCreated}, mockProducer.Triggers())
}

// TestEnrollRosterIdempotent - matricular de novo na mesma turma não duplica o roster
func TestEnrollRosterIdempotent(t *testing.T) {
	ctx := context.Background()
	settings, class := settingsWithClass()

	contact := entity.NewLead("Ana Souza", "11999998888")
	class.AddStudent(contact.ID) // já estava no roster

	mockContactRepo := new(MockContactRepository)
	mockSettingsRepo := new(MockSettingsRepository)

	mockSettingsRepo.On("Load", ctx).Return(settings, nil)
	mockContactRepo.On("FindByID", ctx, contact.ID).Return(contact, nil)
	mockContactRepo.On("Upsert", ctx, mock.Anything).Return(nil)

	uc := usecase.NewEnrollUseCase(mockContactRepo, mockSettingsRepo, nil, nil)

	output, err := uc.Execute(ctx, usecase.EnrollInput{
		ContactID: contact.ID,
		ClassID:   class.ID,
		Paid:      true,
	})

	assert.NoError(t, err)
	assert.Len(t, class.EnrolledStudentIDs, 1)
	assert.Len(t, output.Contact.History, 1)
	// Roster não mudou, então o blob de classes não é re-salvo
	mockSettingsRepo.AssertNotCalled(t, "SaveField")
}

// TestEnrollRetryKeepsSingleHistoryEntry - matricular duas vezes na mesma turma
// (duplo clique) mantém uma entrada só no histórico
func TestEnrollRetryKeepsSingleHistoryEntry(t *testing.T) {
	ctx := context.Background()
	settings, class := settingsWithClass()

	contact := entity.NewLead("Ana Souza", "11999998888")

	mockContactRepo := new(MockContactRepository)
	mockSettingsRepo := new(MockSettingsRepository)

	mockSettingsRepo.On("Load", ctx).Return(settings, nil)
	mockSettingsRepo.On("SaveField", ctx, "classes", mock.Anything).Return(nil)
	// A segunda chamada enxerga o contato que a primeira gravou
	mockContactRepo.On("FindByID", ctx, contact.ID).Return(contact, nil).Once()
	mockContactRepo.On("Upsert", ctx, mock.Anything).Return(nil)

	uc := usecase.NewEnrollUseCase(mockContactRepo, mockSettingsRepo, nil, nil)

	input := usecase.EnrollInput{
		ContactID:   contact.ID,
		ClassID:     class.ID,
		AmountCents: 89900,
		Paid:        true,
	}

	first, err := uc.Execute(ctx, input)
	assert.NoError(t, err)

	mockContactRepo.On("FindByID", ctx, contact.ID).Return(first.Contact, nil)
	output, err := uc.Execute(ctx, input)
	assert.NoError(t, err)

	assert.Len(t, output.Contact.History, 1)
	assert.Len(t, class.EnrolledStudentIDs, 1)
}

// TestEnrollClassNotFound
func TestEnrollClassNotFound(t *testing.T) {
	ctx := context.Background()
	settings, _ := settingsWithClass()

	mockContactRepo := new(MockContactRepository)
	mockSettingsRepo := new(MockSettingsRepository)
	mockSettingsRepo.On("Load", ctx).Return(settings, nil)

	uc := usecase.NewEnrollUseCase(mockContactRepo, mockSettingsRepo, nil, nil)

	output, err := uc.Execute(ctx, usecase.EnrollInput{
		ContactID: "qualquer",
		ClassID:   "turma-inexistente",
	})

	assert.Error(t, err)
	assert.Nil(t, output)
	assert.Equal(t, usecase.CodeClassNotFound, usecase.DomainCode(err))
	mockContactRepo.AssertNotCalled(t, "FindByID")
	mockContactRepo.AssertNotCalled(t, "Upsert")
}

// TestEnrollOverbookingAllowed - MaxStudents é teto soft, a nona aluna entra
func TestEnrollOverbookingAllowed(t *testing.T) {
	ctx := context.Background()
	settings, class := settingsWithClass()
	for i := 0; i < class.MaxStudents; i++ {
		class.AddStudent(entity.NewLead("Aluna", "119999900"+string(rune('0'+i))).ID)
	}

	contact := entity.NewLead("Ana Souza", "11999998888")

	mockContactRepo := new(MockContactRepository)
	mockSettingsRepo := new(MockSettingsRepository)

	mockSettingsRepo.On("Load", ctx).Return(settings, nil)
	mockSettingsRepo.On("SaveField", ctx, "classes", mock.Anything).Return(nil)
	mockContactRepo.On("FindByID", ctx, contact.ID).Return(contact, nil)
	mockContactRepo.On("Upsert", ctx, mock.Anything).Return(nil)

	uc := usecase.NewEnrollUseCase(mockContactRepo, mockSettingsRepo, nil, nil)

	_, err := uc.Execute(ctx, usecase.EnrollInput{
		ContactID: contact.ID,
		ClassID:   class.ID,
		Paid:      true,
	})

	assert.NoError(t, err)
	assert.Len(t, class.EnrolledStudentIDs, class.MaxStudents+1)
}

// TestEnrollSendsConfirmationEmail - pagamento + email presente dispara a confirmação
func TestEnrollSendsConfirmationEmail(t *testing.T) {
	ctx := context.Background()
	settings, class := settingsWithClass()

	contact := entity.NewLead("Ana Souza", "11999998888")
	contact.Email = "ana@example.com"

	mockContactRepo := new(MockContactRepository)
	mockSettingsRepo := new(MockSettingsRepository)
	mockEmail := new(MockEmailService)

	done := make(chan struct{})
	mockSettingsRepo.On("Load", ctx).Return(settings, nil)
	mockSettingsRepo.On("SaveField", ctx, "classes", mock.Anything).Return(nil)
	mockContactRepo.On("FindByID", ctx, contact.ID).Return(contact, nil)
	mockContactRepo.On("Upsert", ctx, mock.Anything).Return(nil)
	mockEmail.On("SendEnrollmentConfirmation", "ana@example.com", "Ana Souza", "Extensão de Cílios").
		Run(func(args mock.Arguments) { close(done) }).
		Return(nil)

	uc := usecase.NewEnrollUseCase(mockContactRepo, mockSettingsRepo, nil, mockEmail)

	_, err := uc.Execute(ctx, usecase.EnrollInput{
		ContactID: contact.ID,
		ClassID:   class.ID,
		Paid:      true,
	})

	assert.NoError(t, err)
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("email de confirmação não foi enviado")
	}
	mockEmail.AssertCalled(t, "SendEnrollmentConfirmation", "ana@example.com", "Ana Souza", "Extensão de Cílios")
}
