package usecase

import (
	"context"
	"log"
	"time"

	"github.com/gabifranca/studio-gestao/internal/entity"
	"github.com/gabifranca/studio-gestao/internal/infra/queue"
)

type CaptureLeadInput struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	CourseID string `json:"course_id,omitempty"`
}

// CaptureLeadUseCase atende o formulário público: cria o lead interessado
// com follow-up marcado para daqui a 2 dias.
type CaptureLeadUseCase struct {
	ContactRepo ContactRepositoryInterface
	Producer    TriggerProducerInterface
}

func NewCaptureLeadUseCase(contactRepo ContactRepositoryInterface, producer TriggerProducerInterface) *CaptureLeadUseCase {
	return &CaptureLeadUseCase{ContactRepo: contactRepo, Producer: producer}
}

func (uc *CaptureLeadUseCase) Execute(ctx context.Context, input CaptureLeadInput) (*entity.Contact, error) {
	if validationErrors := ValidateLeadInput(input); len(validationErrors) > 0 {
		errMsg := "validation failed: "
		for _, e := range validationErrors {
			errMsg += e.Field + " (" + e.Message + "), "
		}
		return nil, &DomainError{Code: CodeValidation, Message: errMsg}
	}

	contact := entity.NewLead(input.Name, input.Phone)
	if input.CourseID != "" {
		contact.AddInterest(input.CourseID)
	}
	followUp := time.Now().AddDate(0, 0, 2)
	contact.NextFollowUp = &followUp

	if err := uc.ContactRepo.Upsert(ctx, contact); err != nil {
		return nil, &TechnicalError{Code: CodeDatabaseError, Message: "falha ao salvar lead: " + err.Error()}
	}

	if uc.Producer != nil {
		payload := queue.TriggerPayload{
			Trigger:   entity.TriggerLeadCreated,
			ContactID: contact.ID,
			Name:      contact.Name,
			Phone:     contact.Phone,
			CourseID:  input.CourseID,
			Origin:    "FORM",
		}
		if err := uc.Producer.PublishTrigger(ctx, payload); err != nil {
			log.Printf("⚠️ Trigger lead_created não publicado: %v", err)
		}
	}

	return contact, nil
}
