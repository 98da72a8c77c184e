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

type nutritionRepo struct {
	db *sqlx.DB
}

// NewNutritionRepo creates a new PostgreSQL-backed NutritionRepository.
func NewNutritionRepo(db *sqlx.DB) port.NutritionRepository {
	return &nutritionRepo{db: db}
}

func (r *nutritionRepo) Create(ctx context.Context, entry *domain.NutritionEntry) error {
	entry.ID = uuid.New()
	now := time.Now().UTC()
	entry.CreatedAt = now
	entry.UpdatedAt = now

	query := `INSERT INTO nutrition_entries
		(id, user_id, item_name, quantity, unit, calories, protein, fat, carbs,
		 fiber, sugar, source_id, source_json, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	_, err := r.db.ExecContext(ctx, query,
		entry.ID, entry.UserID, entry.ItemName, entry.Quantity, entry.Unit,
		entry.Calories, entry.Protein, entry.Fat, entry.Carbs,
		entry.Fiber, entry.Sugar, entry.SourceID, entry.SourceJSON,
		entry.CreatedAt, entry.UpdatedAt)
	if err != nil {
		return fmt.Errorf("nutritionRepo.Create: %w", err)
	}
	return nil
}

func (r *nutritionRepo) GetByID(ctx context.Context, entryID uuid.UUID) (*domain.NutritionEntry, error) {
	var entry domain.NutritionEntry
	err := r.db.GetContext(ctx, &entry,
		"SELECT * FROM nutrition_entries WHERE id = $1", entryID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("nutritionRepo.GetByID: %w", err)
	}
	return &entry, nil
}

func (r *nutritionRepo) ListByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.NutritionEntry, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM nutrition_entries WHERE user_id = $1", userID)
	if err != nil {
		return nil, 0, fmt.Errorf("nutritionRepo.ListByUser count: %w", err)
	}

	var entries []domain.NutritionEntry
	err = r.db.SelectContext(ctx, &entries,
		"SELECT * FROM nutrition_entries WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3",
		userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("nutritionRepo.ListByUser: %w", err)
	}
	return entries, total, nil
}

func (r *nutritionRepo) ListByUserBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.NutritionEntry, error) {
	var entries []domain.NutritionEntry
	err := r.db.SelectContext(ctx, &entries,
		`SELECT * FROM nutrition_entries
		 WHERE user_id = $1 AND created_at BETWEEN $2 AND $3
		 ORDER BY created_at DESC`,
		userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("nutritionRepo.ListByUserBetween: %w", err)
	}
	return entries, nil
}

func (r *nutritionRepo) Update(ctx context.Context, entry *domain.NutritionEntry) error {
	entry.UpdatedAt = time.Now().UTC()
	query := `UPDATE nutrition_entries SET
		quantity = $1, unit = $2, calories = $3, protein = $4, fat = $5,
		carbs = $6, fiber = $7, sugar = $8, updated_at = $9
		WHERE id = $10`
	result, err := r.db.ExecContext(ctx, query,
		entry.Quantity, entry.Unit, entry.Calories, entry.Protein, entry.Fat,
		entry.Carbs, entry.Fiber, entry.Sugar, entry.UpdatedAt, entry.ID)
	if err != nil {
		return fmt.Errorf("nutritionRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *nutritionRepo) Delete(ctx context.Context, entryID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM nutrition_entries WHERE id = $1", entryID)
	if err != nil {
		return fmt.Errorf("nutritionRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
