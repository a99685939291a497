package usecase

import (
	"context"
	"log"
	"time"

	"github.com/gabifranca/studio-gestao/internal/entity"
	"github.com/gabifranca/studio-gestao/internal/infra/queue"
)

type EnrollInput struct {
	ContactID   string `json:"contact_id"`
	ClassID     string `json:"class_id"`
	AmountCents int    `json:"amount_cents"`
	Paid        bool   `json:"paid"`
	Notes       string `json:"notes,omitempty"`
}

type EnrollOutput struct {
	Contact *entity.Contact     `json:"contact"`
	Class   *entity.CourseClass `json:"class"`
}

// EnrollUseCase é a matrícula direta: a secretaria escolhe a turma na tela
// e informa se o pagamento já entrou.
type EnrollUseCase struct {
	ContactRepo  ContactRepositoryInterface
	SettingsRepo SettingsRepositoryInterface
	Producer     TriggerProducerInterface
	EmailService EmailService
}

func NewEnrollUseCase(
	contactRepo ContactRepositoryInterface,
	settingsRepo SettingsRepositoryInterface,
	producer TriggerProducerInterface,
	emailService EmailService,
) *EnrollUseCase {
	return &EnrollUseCase{
		ContactRepo:  contactRepo,
		SettingsRepo: settingsRepo,
		Producer:     producer,
		EmailService: emailService,
	}
}

func (uc *EnrollUseCase) Execute(ctx context.Context, input EnrollInput) (*EnrollOutput, error) {
	settings, err := uc.SettingsRepo.Load(ctx)
	if err != nil {
		return nil, &TechnicalError{Code: CodeDatabaseError, Message: "falha ao carregar settings: " + err.Error()}
	}

	class, err := settings.FindClass(input.ClassID)
	if err != nil {
		return nil, &DomainError{Code: CodeClassNotFound, Message: "turma não encontrada: " + input.ClassID}
	}

	contact, err := uc.ContactRepo.FindByID(ctx, input.ContactID)
	if err != nil {
		return nil, &DomainError{Code: CodeContactNotFound, Message: "contato não encontrado: " + input.ContactID}
	}

	updated := contact.Clone()

	// Roster com semântica de conjunto: repetir a matrícula não duplica.
	// MaxStudents é teto soft — overbooking é decisão da secretaria.
	rosterChanged := class.AddStudent(updated.ID)

	status := entity.EnrollmentPending
	if input.Paid {
		status = entity.EnrollmentPaid
	}
	// Retry da mesma matrícula (duplo clique, request reenviada) não
	// duplica o histórico: no máximo uma entrada por turma.
	if !updated.HasClassEntry(class.ID) {
		updated.History = append(updated.History, entity.EnrollmentRecord{
			CourseID:  class.CourseID,
			ClassID:   class.ID,
			Date:      time.Now(),
			PaidCents: input.AmountCents,
			Status:    status,
			Notes:     input.Notes,
		})
	}
	updated.RemoveInterest(class.CourseID)

	if input.Paid {
		updated.Status = entity.StatusActive
	}
	updated.UpdatedAt = time.Now()

	// Duas escritas independentes, sem transação entre elas: aceito como
	// best-effort, a tela tem o refresh manual para reconciliar.
	if err := uc.ContactRepo.Upsert(ctx, updated); err != nil {
		return nil, &TechnicalError{Code: CodeDatabaseError, Message: "falha ao salvar contato: " + err.Error()}
	}
	if rosterChanged {
		if err := uc.SettingsRepo.SaveField(ctx, "classes", settings.Classes); err != nil {
			log.Printf("⚠️ Matrícula salva mas roster da turma não persistiu: %v", err)
		}
	}

	uc.publishTriggers(ctx, updated, class, input)

	if input.Paid && updated.Email != "" && uc.EmailService != nil {
		course, courseErr := settings.FindCourse(class.CourseID)
		go func() {
			name := class.Name
			if courseErr == nil {
				name = course.Name
			}
			uc.EmailService.SendEnrollmentConfirmation(updated.Email, updated.Name, name)
		}()
	}

	return &EnrollOutput{Contact: updated, Class: class}, nil
}

// publishTriggers emite os eventos pra fila de automação. Falha de publish
// nunca desfaz a matrícula que já aconteceu — só loga.
func (uc *EnrollUseCase) publishTriggers(ctx context.Context, contact *entity.Contact, class *entity.CourseClass, input EnrollInput) {
	if uc.Producer == nil {
		return
	}

	base := queue.TriggerPayload{
		ContactID:   contact.ID,
		Name:        contact.Name,
		Phone:       contact.Phone,
		Email:       contact.Email,
		CourseID:    class.CourseID,
		ClassID:     class.ID,
		AmountCents: input.AmountCents,
		Origin:      "UI",
	}

	base.Trigger = entity.TriggerEnrollmentCreated
	if err := uc.Producer.PublishTrigger(ctx, base); err != nil {
		log.Printf("⚠️ Trigger enrollment_created não publicado: %v", err)
	}

	if input.Paid {
		base.Trigger = entity.TriggerPaymentConfirmed
		if err := uc.Producer.PublishTrigger(ctx, base); err != nil {
			log.Printf("⚠️ Trigger payment_confirmed não publicado: %v", err)
		}
	}
}
