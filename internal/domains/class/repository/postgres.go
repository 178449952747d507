package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"librarian-backend/internal/domains/class/model"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) EnsureExists(ctx context.Context, name string, now time.Time) (bool, error) {
	query := `
		INSERT INTO classes (id, name, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (name) DO NOTHING
		RETURNING id
	`

	var id uuid.UUID
	err := r.pool.QueryRow(ctx, query, uuid.New(), name, now.UTC()).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to ensure class: %w", err)
	}
	return true, nil
}

func (r *postgresRepository) GetByName(ctx context.Context, name string) (*model.Class, error) {
	query := `SELECT id, name, created_at FROM classes WHERE name = $1`

	c := model.Class{Students: []string{}}
	if err := r.pool.QueryRow(ctx, query, name).Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get class by name: %w", err)
	}
	return &c, nil
}

func (r *postgresRepository) List(ctx context.Context, limit int) ([]*model.Class, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, created_at FROM classes ORDER BY name ASC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list classes: %w", err)
	}
	defer rows.Close()

	classes := make([]*model.Class, 0)
	for rows.Next() {
		c := model.Class{Students: []string{}}
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan class row: %w", err)
		}
		classes = append(classes, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating class rows: %w", err)
	}

	return classes, nil
}
