package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"smartpantry/internal/domain"
	"smartpantry/internal/port"
)

type foodReferenceRepo struct {
	db *sqlx.DB
}

// NewFoodReferenceRepo creates a new PostgreSQL-backed FoodReferenceRepository.
func NewFoodReferenceRepo(db *sqlx.DB) port.FoodReferenceRepository {
	return &foodReferenceRepo{db: db}
}

func (r *foodReferenceRepo) Upsert(ctx context.Context, foods []domain.FoodReference) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("foodReferenceRepo.Upsert begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i := range foods {
		if foods[i].ID == uuid.Nil {
			foods[i].ID = uuid.New()
		}
		if foods[i].CreatedAt.IsZero() {
			foods[i].CreatedAt = time.Now().UTC()
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO food_reference
				(id, name, calories, protein, fat, carbs, fiber, sugar, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			 ON CONFLICT (name) DO UPDATE SET
				calories = EXCLUDED.calories, protein = EXCLUDED.protein,
				fat = EXCLUDED.fat, carbs = EXCLUDED.carbs,
				fiber = EXCLUDED.fiber, sugar = EXCLUDED.sugar`,
			foods[i].ID, foods[i].Name, foods[i].Calories, foods[i].Protein,
			foods[i].Fat, foods[i].Carbs, foods[i].Fiber, foods[i].Sugar,
			foods[i].CreatedAt)
		if err != nil {
			return fmt.Errorf("foodReferenceRepo.Upsert %q: %w", foods[i].Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("foodReferenceRepo.Upsert commit: %w", err)
	}
	return nil
}

func (r *foodReferenceRepo) SearchByName(ctx context.Context, name string) (*domain.FoodReference, error) {
	var food domain.FoodReference
	err := r.db.GetContext(ctx, &food,
		`SELECT * FROM food_reference
		 WHERE LOWER(name) = LOWER($1) OR LOWER(name) LIKE LOWER($2)
		 ORDER BY LENGTH(name)
		 LIMIT 1`,
		name, "%"+name+"%")
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrFoodNotFound
		}
		return nil, fmt.Errorf("foodReferenceRepo.SearchByName: %w", err)
	}
	return &food, nil
}
