package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/gabifranca/studio-gestao/internal/entity"
	"github.com/gabifranca/studio-gestao/internal/phone"
)

var ErrContactNotFound = errors.New("contato não encontrado")

type ContactRepository struct {
	DB *sql.DB
}

func NewContactRepository(db *sql.DB) *ContactRepository {
	return &ContactRepository{DB: db}
}

// Upsert grava o contato inteiro (as listas vão como JSONB). O telefone é
// normalizado para E.164 e o sufixo recalculado a cada escrita para o
// matching do webhook.
func (r *ContactRepository) Upsert(ctx context.Context, c *entity.Contact) error {
	interestedIn, err := json.Marshal(c.InterestedIn)
	if err != nil {
		return err
	}
	history, err := json.Marshal(c.History)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO contacts (
			id, name, phone, phone_suffix, email, cpf, photo,
			status, pipeline_id, stage_id,
			interested_in, history,
			last_contact, next_follow_up,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			phone = EXCLUDED.phone,
			phone_suffix = EXCLUDED.phone_suffix,
			email = EXCLUDED.email,
			cpf = EXCLUDED.cpf,
			photo = EXCLUDED.photo,
			status = EXCLUDED.status,
			pipeline_id = EXCLUDED.pipeline_id,
			stage_id = EXCLUDED.stage_id,
			interested_in = EXCLUDED.interested_in,
			history = EXCLUDED.history,
			last_contact = EXCLUDED.last_contact,
			next_follow_up = EXCLUDED.next_follow_up,
			updated_at = EXCLUDED.updated_at
	`

	normalized := phone.NormalizeE164(c.Phone)
	_, err = r.DB.ExecContext(ctx, query,
		c.ID, c.Name, normalized, phone.Suffix(normalized), c.Email, c.CPF, c.Photo,
		c.Status, c.PipelineID, c.StageID,
		interestedIn, history,
		c.LastContact, c.NextFollowUp,
		c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		log.Printf("Erro crítico no banco: %v", err)
		return err
	}
	return nil
}

func (r *ContactRepository) FindByID(ctx context.Context, id string) (*entity.Contact, error) {
	row := r.DB.QueryRowContext(ctx, selectContact+` WHERE id = $1`, id)
	c, err := scanContact(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrContactNotFound
	}
	return c, err
}

// FindByPhoneSuffix acha o contato pelos últimos 8 dígitos do telefone.
// Havendo mais de um com o mesmo sufixo, vence o mais antigo. Sem match,
// devolve ErrContactNotFound — quem chama distingue "não existe" de
// "banco fora do ar".
func (r *ContactRepository) FindByPhoneSuffix(ctx context.Context, suffix string) (*entity.Contact, error) {
	row := r.DB.QueryRowContext(ctx,
		selectContact+` WHERE phone_suffix = $1 ORDER BY created_at ASC LIMIT 1`, suffix)
	c, err := scanContact(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrContactNotFound
	}
	return c, err
}

func (r *ContactRepository) List(ctx context.Context) ([]*entity.Contact, error) {
	rows, err := r.DB.QueryContext(ctx, selectContact+` ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contacts []*entity.Contact
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}

func (r *ContactRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM contacts WHERE id = $1`, id)
	return err
}

const selectContact = `
	SELECT id, name, phone, email, cpf, photo,
	       status, pipeline_id, stage_id,
	       interested_in, history,
	       last_contact, next_follow_up,
	       created_at, updated_at
	FROM contacts`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanContact(row rowScanner) (*entity.Contact, error) {
	var c entity.Contact
	var interestedIn, history []byte
	var lastContact, nextFollowUp sql.NullTime

	err := row.Scan(
		&c.ID, &c.Name, &c.Phone, &c.Email, &c.CPF, &c.Photo,
		&c.Status, &c.PipelineID, &c.StageID,
		&interestedIn, &history,
		&lastContact, &nextFollowUp,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(interestedIn, &c.InterestedIn); err != nil {
		return nil, fmt.Errorf("interested_in corrompido: %w", err)
	}
	if err := json.Unmarshal(history, &c.History); err != nil {
		return nil, fmt.Errorf("history corrompido: %w", err)
	}
	if lastContact.Valid {
		t := lastContact.Time
		c.LastContact = &t
	}
	if nextFollowUp.Valid {
		t := nextFollowUp.Time
		c.NextFollowUp = &t
	}

	return &c, nil
}
