package worker

import (
	"context"
	"database/sql"
	"log"
	"time"
)

// PaymentExpirationWorker varre cobranças PIX pendentes e marca as velhas
// como expiradas (o QR code do gateway morre em 30 minutos de qualquer
// jeito, o banco só precisa refletir isso).
type PaymentExpirationWorker struct {
	db               *sql.DB
	expirationWindow time.Duration
	tickInterval     time.Duration
}

func NewPaymentExpirationWorker(db *sql.DB) *PaymentExpirationWorker {
	return &PaymentExpirationWorker{
		db:               db,
		expirationWindow: 30 * time.Minute,
		tickInterval:     1 * time.Minute,
	}
}

func (w *PaymentExpirationWorker) Start(ctx context.Context) {
	log.Println("🕒 Payment Expiration Worker iniciado (janela de 30min)")

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	w.expireOldPayments(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Println("⚠️ Payment Expiration Worker encerrado")
			return
		case <-ticker.C:
			w.expireOldPayments(ctx)
		}
	}
}

func (w *PaymentExpirationWorker) expireOldPayments(ctx context.Context) {
	query := `
		UPDATE payments
		SET
			status = 'EXPIRED',
			updated_at = NOW()
		WHERE
			status = 'PENDING'
			AND method = 'PIX'
			AND created_at < NOW() - INTERVAL '30 minutes'
		RETURNING id, created_at
	`

	rows, err := w.db.QueryContext(ctx, query)
	if err != nil {
		log.Printf("❌ Erro ao buscar PIX expirados: %v", err)
		return
	}
	defer rows.Close()

	expiredCount := 0
	for rows.Next() {
		var paymentID string
		var createdAt time.Time

		if err := rows.Scan(&paymentID, &createdAt); err != nil {
			log.Printf("⚠️ Erro ao escanear PIX expirado: %v", err)
			continue
		}

		elapsed := time.Since(createdAt)
		log.Printf("⏱️ PIX expirado: payment=%s elapsed=%s", paymentID, elapsed.Round(time.Minute))
		expiredCount++
	}

	if expiredCount > 0 {
		log.Printf("✅ %d PIX marcados como EXPIRED", expiredCount)
	}
}
