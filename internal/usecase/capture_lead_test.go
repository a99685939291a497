package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/gabifranca/studio-gestao/internal/entity"
	"github.com/gabifranca/studio-gestao/internal/infra/queue"
	"github.com/gabifranca/studio-gestao/internal/usecase"
)

// TestCaptureLeadSuccess - formulário público cria o lead com follow-up em 2 dias
func TestCaptureLeadSuccess(t *testing.T) {
	ctx := context.Background()

	mockContactRepo := new(MockContactRepository)
	mockProducer := new(MockTriggerProducer)
	mockContactRepo.On("Upsert", ctx, mock.Anything).Return(nil)
	mockProducer.On("PublishTrigger", ctx, mock.Anything).Return(nil)

	uc := usecase.NewCaptureLeadUseCase(mockContactRepo, mockProducer)

	contact, err := uc.Execute(ctx, usecase.CaptureLeadInput{
		Name:     "Ana Souza",
		Phone:    "(11) 99999-8888",
		CourseID: "curso-cilios",
	})

	assert.NoError(t, err)
	assert.Equal(t, entity.StatusInterested, contact.Status)
	assert.Equal(t, entity.KindLead, contact.Kind())
	assert.Equal(t, []string{"curso-cilios"}, contact.InterestedIn)

	assert.NotNil(t, contact.NextFollowUp)
	expected := time.Now().AddDate(0, 0, 2)
	assert.WithinDuration(t, expected, *contact.NextFollowUp, time.Minute)

	mockProducer.AssertCalled(t, "PublishTrigger", ctx, mock.MatchedBy(func(p queue.TriggerPayload) bool {
		return p.Trigger == entity.TriggerLeadCreated && p.Origin == "FORM" && p.ContactID == contact.ID
	}))
}

// TestCaptureLeadMissingPhone
func TestCaptureLeadMissingPhone(t *testing.T) {
	ctx := context.Background()

	mockContactRepo := new(MockContactRepository)

	uc := usecase.NewCaptureLeadUseCase(mockContactRepo, nil)

	contact, err := uc.Execute(ctx, usecase.CaptureLeadInput{Name: "Ana Souza"})

	assert.Error(t, err)
	assert.Nil(t, contact)
	assert.Equal(t, usecase.CodeValidation, usecase.DomainCode(err))
	mockContactRepo.AssertNotCalled(t, "Upsert")
}

// TestCaptureLeadWithoutCourse - interesse é opcional no formulário
func TestCaptureLeadWithoutCourse(t *testing.T) {
	ctx := context.Background()

	mockContactRepo := new(MockContactRepository)
	mockContactRepo.On("Upsert", ctx, mock.Anything).Return(nil)

	uc := usecase.NewCaptureLeadUseCase(mockContactRepo, nil)

	contact, err := uc.Execute(ctx, usecase.CaptureLeadInput{
		Name:  "Ana Souza",
		Phone: "11999998888",
	})

	assert.NoError(t, err)
	assert.Empty(t, contact.InterestedIn)
}
