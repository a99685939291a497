package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/gabifranca/studio-gestao/internal/entity"
)

var ErrPaymentNotFound = errors.New("pagamento não encontrado")

type PaymentRepository struct {
	DB *sql.DB
}

func NewPaymentRepository(db *sql.DB) *PaymentRepository {
	return &PaymentRepository{DB: db}
}

func (r *PaymentRepository) Create(ctx context.Context, p *entity.PaymentRecord) error {
	customer, err := json.Marshal(p.Customer)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO payments (
			id, link_id, course_id, amount_cents, method, status,
			external_transaction_id, customer, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err = r.DB.ExecContext(ctx, query,
		p.ID, p.LinkID, p.CourseID, p.AmountCents, p.Method, p.Status,
		p.ExternalTransactionID, customer, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			// Replay do checkout com o mesmo ID: já existe, segue o jogo
			return nil
		}
		log.Printf("Erro crítico no banco: %v", err)
		return err
	}
	return nil
}

func (r *PaymentRepository) FindByID(ctx context.Context, id string) (*entity.PaymentRecord, error) {
	row := r.DB.QueryRowContext(ctx, selectPayment+` WHERE id = $1`, id)
	return scanPayment(row)
}

func (r *PaymentRepository) FindByTransactionID(ctx context.Context, txID string) (*entity.PaymentRecord, error) {
	row := r.DB.QueryRowContext(ctx, selectPayment+` WHERE external_transaction_id = $1`, txID)
	return scanPayment(row)
}

func (r *PaymentRepository) UpdateStatus(ctx context.Context, id, status string) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE payments SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	return err
}

const selectPayment = `
	SELECT id, link_id, course_id, amount_cents, method, status,
	       external_transaction_id, customer, created_at, updated_at
	FROM payments`

func scanPayment(row rowScanner) (*entity.PaymentRecord, error) {
	var p entity.PaymentRecord
	var customer []byte

	err := row.Scan(
		&p.ID, &p.LinkID, &p.CourseID, &p.AmountCents, &p.Method, &p.Status,
		&p.ExternalTransactionID, &customer, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPaymentNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(customer, &p.Customer); err != nil {
		return nil, err
	}
	return &p, nil
}
