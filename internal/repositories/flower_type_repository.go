package repositories

import (
	"context"
	"errors"

	"flower-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type FlowerTypeRepository struct {
	DB *pgxpool.Pool
}

func NewFlowerTypeRepository(db *pgxpool.Pool) *FlowerTypeRepository {
	return &FlowerTypeRepository{DB: db}
}

func (r *FlowerTypeRepository) Create(ctx context.Context, ft *models.FlowerType) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO flower_types (name, unit) VALUES ($1, $2)
		 RETURNING id, is_active, created_at`,
		ft.Name, ft.Unit,
	).Scan(&ft.ID, &ft.IsActive, &ft.CreatedAt)
}

func (r *FlowerTypeRepository) Get(ctx context.Context, id int) (*models.FlowerType, error) {
	var ft models.FlowerType
	err := r.DB.QueryRow(ctx,
		`SELECT id, name, unit, is_active, deleted_at, created_at
		 FROM flower_types WHERE id = $1 AND deleted_at IS NULL`, id,
	).Scan(&ft.ID, &ft.Name, &ft.Unit, &ft.IsActive, &ft.DeletedAt, &ft.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ft, nil
}

func (r *FlowerTypeRepository) List(ctx context.Context) ([]models.FlowerType, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, name, unit, is_active, deleted_at, created_at
		 FROM flower_types WHERE deleted_at IS NULL ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var types []models.FlowerType
	for rows.Next() {
		var ft models.FlowerType
		if err := rows.Scan(&ft.ID, &ft.Name, &ft.Unit, &ft.IsActive, &ft.DeletedAt, &ft.CreatedAt); err != nil {
			return nil, err
		}
		types = append(types, ft)
	}
	return types, rows.Err()
}

func (r *FlowerTypeRepository) SoftDelete(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE flower_types SET deleted_at = NOW(), is_active = FALSE
		 WHERE id = $1 AND deleted_at IS NULL`, id)
	return err
}
