package usecase

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/gabifranca/studio-gestao/internal/entity"
	"github.com/gabifranca/studio-gestao/internal/infra/database"
	"github.com/gabifranca/studio-gestao/internal/infra/queue"
	"github.com/gabifranca/studio-gestao/internal/phone"
)

type ReconcileOutput struct {
	Contact          *entity.Contact     `json:"contact"`
	Class            *entity.CourseClass `json:"class,omitempty"`
	AlreadyProcessed bool                `json:"already_processed"`
}

// ReconcilePaymentUseCase casa uma confirmação de pagamento (webhook ou
// confirmação imediata de cartão) com um contato local e efetiva a
// matrícula. Tolera replay de webhook em dois níveis: status do próprio
// pagamento e dedup de histórico por turma.
type ReconcilePaymentUseCase struct {
	PaymentRepo  PaymentRepositoryInterface
	ContactRepo  ContactRepositoryInterface
	SettingsRepo SettingsRepositoryInterface
	Producer     TriggerProducerInterface
	EmailService EmailService
}

func NewReconcilePaymentUseCase(
	paymentRepo PaymentRepositoryInterface,
	contactRepo ContactRepositoryInterface,
	settingsRepo SettingsRepositoryInterface,
	producer TriggerProducerInterface,
	emailService EmailService,
) *ReconcilePaymentUseCase {
	return &ReconcilePaymentUseCase{
		PaymentRepo:  paymentRepo,
		ContactRepo:  contactRepo,
		SettingsRepo: settingsRepo,
		Producer:     producer,
		EmailService: emailService,
	}
}

func (uc *ReconcilePaymentUseCase) Execute(ctx context.Context, payment *entity.PaymentRecord) (*ReconcileOutput, error) {
	// Curto-circuito de idempotência: webhook entregue em dobro não
	// reprocessa nada.
	if payment.Status == entity.PaymentPaid {
		log.Printf("ℹ️ Pagamento %s já processado, ignorando replay", payment.ID)
		return &ReconcileOutput{AlreadyProcessed: true}, nil
	}

	contact, err := uc.findOrCreateContact(ctx, payment.Customer)
	if err != nil {
		return nil, err
	}

	updated := contact.Clone()
	now := time.Now()

	var matchedClass *entity.CourseClass
	classesDirty := false

	settings, err := uc.SettingsRepo.Load(ctx)
	if err != nil {
		return nil, &TechnicalError{Code: CodeDatabaseError, Message: "falha ao carregar settings: " + err.Error()}
	}

	switch {
	case payment.CourseID != "":
		matchedClass = entity.EarliestOpenClass(settings.Classes, payment.CourseID)
		if matchedClass != nil {
			// Achamos a turma pelo ponteiro dentro do blob pra mutar o roster
			matchedClass, _ = settings.FindClass(matchedClass.ID)
			if matchedClass.AddStudent(updated.ID) {
				classesDirty = true
			}
			if !updated.HasClassEntry(matchedClass.ID) {
				updated.History = append(updated.History, entity.EnrollmentRecord{
					CourseID:  payment.CourseID,
					ClassID:   matchedClass.ID,
					Date:      now,
					PaidCents: payment.AmountCents,
					Status:    entity.EnrollmentPaid,
				})
			}
		} else {
			// Pagou e não tem turma aberta: registra mesmo assim, a
			// secretaria aloca a turma depois. Nunca derruba dinheiro pago.
			updated.History = append(updated.History, entity.EnrollmentRecord{
				CourseID:  payment.CourseID,
				Date:      now,
				PaidCents: payment.AmountCents,
				Status:    entity.EnrollmentPaid,
				Notes:     "Matrícula aguardando abertura de turma",
			})
		}
		updated.RemoveInterest(payment.CourseID)

	default:
		// Pagamento avulso, sem curso vinculado ao link
		updated.History = append(updated.History, entity.EnrollmentRecord{
			Date:      now,
			PaidCents: payment.AmountCents,
			Status:    entity.EnrollmentPaid,
			Notes:     "Pagamento avulso",
		})
	}

	updated.Status = entity.StatusActive
	updated.UpdatedAt = now

	if err := uc.ContactRepo.Upsert(ctx, updated); err != nil {
		return nil, &TechnicalError{Code: CodeDatabaseError, Message: "falha ao salvar contato: " + err.Error()}
	}
	if classesDirty {
		if err := uc.SettingsRepo.SaveField(ctx, "classes", settings.Classes); err != nil {
			log.Printf("⚠️ Contato salvo mas roster da turma não persistiu: %v", err)
		}
	}

	if err := uc.PaymentRepo.UpdateStatus(ctx, payment.ID, entity.PaymentPaid); err != nil {
		// O dedup por turma segura um eventual replay; só registra.
		log.Printf("⚠️ Falha ao marcar pagamento %s como pago: %v", payment.ID, err)
	}

	uc.publishTriggers(ctx, updated, matchedClass, payment)

	if updated.Email != "" && matchedClass != nil && uc.EmailService != nil {
		courseName := matchedClass.Name
		if course, cErr := settings.FindCourse(matchedClass.CourseID); cErr == nil {
			courseName = course.Name
		}
		go uc.EmailService.SendEnrollmentConfirmation(updated.Email, updated.Name, courseName)
	}

	return &ReconcileOutput{Contact: updated, Class: matchedClass}, nil
}

// findOrCreateContact procura pelo sufixo de 8 dígitos do telefone (absorve
// DDI/DDD/formatação). Sem match, nasce um contato novo já como aluna.
func (uc *ReconcilePaymentUseCase) findOrCreateContact(ctx context.Context, customer entity.CustomerSnapshot) (*entity.Contact, error) {
	suffix := phone.Suffix(customer.Phone)
	if suffix == "" {
		return nil, &DomainError{Code: CodeCustomerIncomplete, Message: "pagamento sem telefone do cliente"}
	}

	existing, err := uc.ContactRepo.FindByPhoneSuffix(ctx, suffix)
	if err != nil && !errors.Is(err, database.ErrContactNotFound) {
		// Falha de leitura não pode virar contato duplicado; o webhook
		// retenta depois.
		return nil, &TechnicalError{Code: CodeDatabaseError, Message: "falha ao buscar contato pelo telefone: " + err.Error()}
	}
	if existing != nil {
		return existing, nil
	}

	contact := entity.NewLead(customer.Name, customer.Phone)
	contact.Status = entity.StatusActive
	contact.Email = customer.Email
	contact.CPF = customer.CPF
	return contact, nil
}

func (uc *ReconcilePaymentUseCase) publishTriggers(ctx context.Context, contact *entity.Contact, class *entity.CourseClass, payment *entity.PaymentRecord) {
	if uc.Producer == nil {
		return
	}

	base := queue.TriggerPayload{
		ContactID:   contact.ID,
		Name:        contact.Name,
		Phone:       contact.Phone,
		Email:       contact.Email,
		CourseID:    payment.CourseID,
		AmountCents: payment.AmountCents,
		Origin:      "WEBHOOK_ASAAS",
	}
	if class != nil {
		base.ClassID = class.ID
	}

	base.Trigger = entity.TriggerPaymentConfirmed
	if err := uc.Producer.PublishTrigger(ctx, base); err != nil {
		log.Printf("⚠️ Trigger payment_confirmed não publicado: %v", err)
	}

	if class != nil {
		base.Trigger = entity.TriggerEnrollmentCreated
		if err := uc.Producer.PublishTrigger(ctx, base); err != nil {
			log.Printf("⚠️ Trigger enrollment_created não publicado: %v", err)
		}
	}
}
