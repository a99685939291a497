package usecase

import (
	"context"
	"fmt"

	"github.com/gabifranca/studio-gestao/internal/entity"
)

// MoveContact decide se o arraste de card é válido e aplica a mutação.
// Devolve (contato, moved): quando o contato já está na etapa alvo o
// retorno é o próprio ponteiro de entrada, sem cópia nem mutação.
func MoveContact(contact *entity.Contact, pipeline *entity.Pipeline, targetStageID string) (*entity.Contact, bool, error) {
	if !pipeline.HasStage(targetStageID) {
		return nil, false, &DomainError{
			Code:    CodeInvalidStage,
			Message: fmt.Sprintf("etapa %q não existe no pipeline %q", targetStageID, pipeline.Name),
		}
	}

	if pipeline.IsSystem {
		// No funil de sistema o id da etapa É o status
		if contact.Status == targetStageID {
			return contact, false, nil
		}
		updated := contact.Clone()
		updated.Status = targetStageID
		updated.PipelineID = pipeline.ID
		updated.StageID = targetStageID
		return updated, true, nil
	}

	if contact.PipelineID == pipeline.ID && contact.StageID == targetStageID {
		return contact, false, nil
	}

	// Mover para um funil custom tira o contato de qualquer outro board:
	// o par (pipeline, etapa) tem dono único.
	updated := contact.Clone()
	updated.PipelineID = pipeline.ID
	updated.StageID = targetStageID
	return updated, true, nil
}

type MoveContactUseCase struct {
	ContactRepo  ContactRepositoryInterface
	SettingsRepo SettingsRepositoryInterface
}

func NewMoveContactUseCase(contactRepo ContactRepositoryInterface, settingsRepo SettingsRepositoryInterface) *MoveContactUseCase {
	return &MoveContactUseCase{ContactRepo: contactRepo, SettingsRepo: settingsRepo}
}

func (uc *MoveContactUseCase) Execute(ctx context.Context, contactID, pipelineID, targetStageID string) (*entity.Contact, error) {
	contact, err := uc.ContactRepo.FindByID(ctx, contactID)
	if err != nil {
		return nil, &DomainError{Code: CodeContactNotFound, Message: "contato não encontrado: " + err.Error()}
	}

	settings, err := uc.SettingsRepo.Load(ctx)
	if err != nil {
		return nil, &TechnicalError{Code: CodeDatabaseError, Message: "falha ao carregar settings: " + err.Error()}
	}

	pipeline, ok := settings.FindPipeline(pipelineID)
	if !ok {
		return nil, &DomainError{Code: CodeInvalidStage, Message: fmt.Sprintf("pipeline %q não existe", pipelineID)}
	}

	updated, moved, err := MoveContact(contact, pipeline, targetStageID)
	if err != nil {
		return nil, err
	}
	if !moved {
		return contact, nil
	}

	if err := uc.ContactRepo.Upsert(ctx, updated); err != nil {
		return nil, &TechnicalError{Code: CodeDatabaseError, Message: "falha ao salvar contato: " + err.Error()}
	}
	return updated, nil
}
