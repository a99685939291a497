package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gabifranca/studio-gestao/internal/entity"
)

// settingsKey é a linha fixa do app_settings onde o estado de negócio
// inteiro (cursos, turmas, pipelines, automações, links, produtos) mora
// como um JSON só.
const settingsKey = "business_state"

type SettingsRepository struct {
	DB *sql.DB
}

func NewSettingsRepository(db *sql.DB) *SettingsRepository {
	return &SettingsRepository{DB: db}
}

// Load lê o blob. Primeira execução (linha ausente) devolve o default e
// já o grava, pra linha existir daí em diante.
func (r *SettingsRepository) Load(ctx context.Context) (*entity.Settings, error) {
	var raw []byte
	err := r.DB.QueryRowContext(ctx,
		`SELECT value FROM app_settings WHERE key = $1`, settingsKey,
	).Scan(&raw)

	if errors.Is(err, sql.ErrNoRows) {
		defaults := entity.DefaultSettings()
		if saveErr := r.Save(ctx, defaults); saveErr != nil {
			return nil, saveErr
		}
		return defaults, nil
	}
	if err != nil {
		return nil, err
	}

	var settings entity.Settings
	if err := json.Unmarshal(raw, &settings); err != nil {
		return nil, fmt.Errorf("blob de settings corrompido: %w", err)
	}
	return &settings, nil
}

func (r *SettingsRepository) Save(ctx context.Context, s *entity.Settings) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}

	_, err = r.DB.ExecContext(ctx, `
		INSERT INTO app_settings (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`, settingsKey, raw)
	return err
}

// SaveField troca um campo de topo do blob sem reescrever o resto
// (jsonb_set direto no banco).
func (r *SettingsRepository) SaveField(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}

	res, err := r.DB.ExecContext(ctx, `
		UPDATE app_settings
		SET value = jsonb_set(value, ARRAY[$1], $2::jsonb, true), updated_at = NOW()
		WHERE key = $3
	`, key, raw, settingsKey)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("linha %q de app_settings não existe", settingsKey)
	}
	return nil
}
