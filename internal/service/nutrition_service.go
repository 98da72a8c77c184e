package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"smartpantry/internal/domain"
	"smartpantry/internal/port"
)

// AddNutritionInput is the DTO for logging a food item.
type AddNutritionInput struct {
	ItemName string  `json:"item_name" binding:"required"`
	Quantity float64 `json:"quantity" binding:"required,gt=0"`
	Unit     string  `json:"unit" binding:"required"`
}

// UpdateNutritionInput is the DTO for adjusting a logged entry.
type UpdateNutritionInput struct {
	Quantity float64 `json:"quantity" binding:"required,gt=0"`
	Unit     string  `json:"unit" binding:"required"`
}

// NutritionService defines the food logging contract.
type NutritionService interface {
	Add(ctx context.Context, userID uuid.UUID, input AddNutritionInput) (*domain.NutritionEntry, error)
	List(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.NutritionEntry, int, error)
	Update(ctx context.Context, userID, entryID uuid.UUID, input UpdateNutritionInput) (*domain.NutritionEntry, error)
	Delete(ctx context.Context, userID, entryID uuid.UUID) error
}

type nutritionService struct {
	nutritionRepo port.NutritionRepository
	foodRefRepo   port.FoodReferenceRepository
	lookup        port.NutritionLookup
}

// NewNutritionService creates a new NutritionService implementation. The
// external lookup may be nil, in which case only the seeded local food
// reference table is consulted.
func NewNutritionService(
	nutritionRepo port.NutritionRepository,
	foodRefRepo port.FoodReferenceRepository,
	lookup port.NutritionLookup,
) NutritionService {
	return &nutritionService{
		nutritionRepo: nutritionRepo,
		foodRefRepo:   foodRefRepo,
		lookup:        lookup,
	}
}

func (s *nutritionService) Add(ctx context.Context, userID uuid.UUID, input AddNutritionInput) (*domain.NutritionEntry, error) {
	entry := &domain.NutritionEntry{
		UserID:   userID,
		ItemName: input.ItemName,
		Quantity: input.Quantity,
		Unit:     input.Unit,
	}

	if err := s.resolveNutrients(ctx, entry); err != nil {
		return nil, err
	}

	if err := s.nutritionRepo.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// resolveNutrients fills the entry's nutrient fields from the external food
// API, falling back to the seeded local table when the API has no answer.
func (s *nutritionService) resolveNutrients(ctx context.Context, entry *domain.NutritionEntry) error {
	if s.lookup != nil {
		nutrients, err := s.lookup.Lookup(ctx, entry.ItemName, entry.Quantity, entry.Unit)
		if err == nil {
			entry.Calories = nutrients.Calories
			entry.Protein = nutrients.Protein
			entry.Fat = nutrients.Fat
			entry.Carbs = nutrients.Carbs
			entry.Fiber = nutrients.Fiber
			entry.Sugar = nutrients.Sugar
			entry.SourceID = &nutrients.SourceID
			entry.SourceJSON = nutrients.Raw
			return nil
		}
		if !errors.Is(err, domain.ErrFoodNotFound) {
			log.Printf("nutritionService: external lookup failed for %q, trying local table: %v",
				entry.ItemName, err)
		}
	}

	food, err := s.foodRefRepo.SearchByName(ctx, entry.ItemName)
	if err != nil {
		return err
	}

	// Local reference rows are per 100g; scale for gram quantities and
	// treat anything else as one serving of the reference amount.
	factor := 1.0
	if entry.Unit == "g" || entry.Unit == "gram" || entry.Unit == "grams" {
		factor = entry.Quantity / 100.0
	}
	entry.Calories = food.Calories * factor
	entry.Protein = food.Protein * factor
	entry.Fat = food.Fat * factor
	entry.Carbs = food.Carbs * factor
	entry.Fiber = food.Fiber * factor
	entry.Sugar = food.Sugar * factor
	return nil
}

func (s *nutritionService) List(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.NutritionEntry, int, error) {
	return s.nutritionRepo.ListByUser(ctx, userID, offset, limit)
}

func (s *nutritionService) Update(ctx context.Context, userID, entryID uuid.UUID, input UpdateNutritionInput) (*domain.NutritionEntry, error) {
	entry, err := s.getOwned(ctx, userID, entryID)
	if err != nil {
		return nil, err
	}

	// Rescale nutrients linearly with the quantity change; a unit change
	// forces a fresh lookup because the old amounts no longer apply.
	if entry.Unit == input.Unit && entry.Quantity > 0 {
		ratio := input.Quantity / entry.Quantity
		entry.Calories *= ratio
		entry.Protein *= ratio
		entry.Fat *= ratio
		entry.Carbs *= ratio
		entry.Fiber *= ratio
		entry.Sugar *= ratio
		entry.Quantity = input.Quantity
	} else {
		entry.Quantity = input.Quantity
		entry.Unit = input.Unit
		if err := s.resolveNutrients(ctx, entry); err != nil {
			return nil, fmt.Errorf("nutritionService.Update re-resolve: %w", err)
		}
	}

	if err := s.nutritionRepo.Update(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *nutritionService) Delete(ctx context.Context, userID, entryID uuid.UUID) error {
	if _, err := s.getOwned(ctx, userID, entryID); err != nil {
		return err
	}
	return s.nutritionRepo.Delete(ctx, entryID)
}

func (s *nutritionService) getOwned(ctx context.Context, userID, entryID uuid.UUID) (*domain.NutritionEntry, error) {
	entry, err := s.nutritionRepo.GetByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if entry.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return entry, nil
}
