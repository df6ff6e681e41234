package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"tradutor/internal/ports/output"
)

var _ output.LanguageRepository = (*LanguageRepository)(nil)

// LanguageRepository implements output.LanguageRepository on PostgreSQL.
type LanguageRepository struct {
	pool *pgxpool.Pool
}

// NewLanguageRepository creates a LanguageRepository.
func NewLanguageRepository(pool *pgxpool.Pool) *LanguageRepository {
	return &LanguageRepository{pool: pool}
}

func (r *LanguageRepository) Get(ctx context.Context, id string) (string, error) {
	var language string
	err := r.pool.QueryRow(ctx,
		`SELECT language FROM player_languages WHERE id = $1`, id,
	).Scan(&language)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get language: %w", err)
	}
	return language, nil
}

func (r *LanguageRepository) Has(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM player_languages WHERE id = $1)`, id,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("has language: %w", err)
	}
	return exists, nil
}

func (r *LanguageRepository) Set(ctx context.Context, id string, pref output.LanguagePreference) error {
	if id == "" {
		return nil
	}
	if strings.TrimSpace(pref.Language) == "" {
		return r.Clear(ctx, id)
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO player_languages (id, username, language, ip)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			username = EXCLUDED.username,
			language = EXCLUDED.language,
			ip = CASE WHEN EXCLUDED.ip = '' THEN player_languages.ip ELSE EXCLUDED.ip END,
			updated_at = now()`,
		id, pref.Username, strings.TrimSpace(pref.Language), pref.IP,
	)
	if err != nil {
		return fmt.Errorf("set language: %w", err)
	}
	return nil
}

func (r *LanguageRepository) Clear(ctx context.Context, id string) error {
	if _, err := r.pool.Exec(ctx,
		`DELETE FROM player_languages WHERE id = $1`, id,
	); err != nil {
		return fmt.Errorf("clear language: %w", err)
	}
	return nil
}

func (r *LanguageRepository) UpdateUsername(ctx context.Context, id, username string) error {
	if id == "" || strings.TrimSpace(username) == "" {
		return nil
	}
	if _, err := r.pool.Exec(ctx,
		`UPDATE player_languages SET username = $2, updated_at = now() WHERE id = $1 AND username <> $2`,
		id, username,
	); err != nil {
		return fmt.Errorf("update username: %w", err)
	}
	return nil
}
