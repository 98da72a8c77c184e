package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"smartpantry/internal/domain"
	"smartpantry/internal/port"
	"smartpantry/internal/service"
	"smartpantry/mocks"
)

func TestNutritionAdd_ExternalLookup(t *testing.T) {
	nutritionRepo := new(mocks.MockNutritionRepo)
	foodRefRepo := new(mocks.MockFoodReferenceRepo)
	lookup := new(mocks.MockNutritionLookup)
	svc := service.NewNutritionService(nutritionRepo, foodRefRepo, lookup)
	userID := uuid.New()

	lookup.On("Lookup", mock.Anything, "banana", 1.0, "medium").Return(&port.FoodNutrients{
		SourceID: 9040,
		Calories: 105,
		Protein:  1.3,
		Fat:      0.4,
		Carbs:    27,
		Fiber:    3.1,
		Sugar:    14.4,
	}, nil)
	nutritionRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.NutritionEntry")).Return(nil).Once()

	entry, err := svc.Add(context.Background(), userID, service.AddNutritionInput{
		ItemName: "banana",
		Quantity: 1,
		Unit:     "medium",
	})

	require.NoError(t, err)
	assert.Equal(t, 105.0, entry.Calories)
	assert.Equal(t, 1.3, entry.Protein)
	require.NotNil(t, entry.SourceID)
	assert.Equal(t, int64(9040), *entry.SourceID)
	foodRefRepo.AssertNotCalled(t, "SearchByName", mock.Anything, mock.Anything)
	nutritionRepo.AssertExpectations(t)
}

func TestNutritionAdd_FallsBackToLocalTable(t *testing.T) {
	nutritionRepo := new(mocks.MockNutritionRepo)
	foodRefRepo := new(mocks.MockFoodReferenceRepo)
	lookup := new(mocks.MockNutritionLookup)
	svc := service.NewNutritionService(nutritionRepo, foodRefRepo, lookup)
	userID := uuid.New()

	lookup.On("Lookup", mock.Anything, "rice", 200.0, "g").Return(nil, domain.ErrFoodNotFound)
	// Reference rows are per 100g; 200g doubles them.
	foodRefRepo.On("SearchByName", mock.Anything, "rice").Return(&domain.FoodReference{
		Name:     "rice",
		Calories: 130,
		Protein:  2.7,
		Carbs:    28,
	}, nil)
	nutritionRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.NutritionEntry")).Return(nil).Once()

	entry, err := svc.Add(context.Background(), userID, service.AddNutritionInput{
		ItemName: "rice",
		Quantity: 200,
		Unit:     "g",
	})

	require.NoError(t, err)
	assert.Equal(t, 260.0, entry.Calories)
	assert.InDelta(t, 5.4, entry.Protein, 1e-9)
	assert.Equal(t, 56.0, entry.Carbs)
	assert.Nil(t, entry.SourceID)
}

func TestNutritionAdd_NonGramUnitUsesReferenceAsOneServing(t *testing.T) {
	nutritionRepo := new(mocks.MockNutritionRepo)
	foodRefRepo := new(mocks.MockFoodReferenceRepo)
	svc := service.NewNutritionService(nutritionRepo, foodRefRepo, nil)
	userID := uuid.New()

	foodRefRepo.On("SearchByName", mock.Anything, "apple").Return(&domain.FoodReference{
		Name:     "apple",
		Calories: 52,
	}, nil)
	nutritionRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.NutritionEntry")).Return(nil)

	entry, err := svc.Add(context.Background(), userID, service.AddNutritionInput{
		ItemName: "apple",
		Quantity: 3,
		Unit:     "piece",
	})

	require.NoError(t, err)
	assert.Equal(t, 52.0, entry.Calories)
}

func TestNutritionAdd_UnknownFood(t *testing.T) {
	nutritionRepo := new(mocks.MockNutritionRepo)
	foodRefRepo := new(mocks.MockFoodReferenceRepo)
	svc := service.NewNutritionService(nutritionRepo, foodRefRepo, nil)

	foodRefRepo.On("SearchByName", mock.Anything, "unobtainium").Return(nil, domain.ErrFoodNotFound)

	_, err := svc.Add(context.Background(), uuid.New(), service.AddNutritionInput{
		ItemName: "unobtainium",
		Quantity: 1,
		Unit:     "g",
	})

	assert.ErrorIs(t, err, domain.ErrFoodNotFound)
	nutritionRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestNutritionAdd_LookupFailureStillTriesLocal(t *testing.T) {
	nutritionRepo := new(mocks.MockNutritionRepo)
	foodRefRepo := new(mocks.MockFoodReferenceRepo)
	lookup := new(mocks.MockNutritionLookup)
	svc := service.NewNutritionService(nutritionRepo, foodRefRepo, lookup)

	lookup.On("Lookup", mock.Anything, "milk", 100.0, "ml").Return(nil, errors.New("api timeout"))
	foodRefRepo.On("SearchByName", mock.Anything, "milk").Return(&domain.FoodReference{
		Name:     "milk",
		Calories: 42,
	}, nil)
	nutritionRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.NutritionEntry")).Return(nil)

	entry, err := svc.Add(context.Background(), uuid.New(), service.AddNutritionInput{
		ItemName: "milk",
		Quantity: 100,
		Unit:     "ml",
	})

	require.NoError(t, err)
	assert.Equal(t, 42.0, entry.Calories)
}

func TestNutritionUpdate_RescalesSameUnit(t *testing.T) {
	nutritionRepo := new(mocks.MockNutritionRepo)
	foodRefRepo := new(mocks.MockFoodReferenceRepo)
	svc := service.NewNutritionService(nutritionRepo, foodRefRepo, nil)
	userID := uuid.New()
	entryID := uuid.New()

	nutritionRepo.On("GetByID", mock.Anything, entryID).Return(&domain.NutritionEntry{
		ID:       entryID,
		UserID:   userID,
		ItemName: "rice",
		Quantity: 100,
		Unit:     "g",
		Calories: 130,
		Protein:  2.7,
	}, nil)
	nutritionRepo.On("Update", mock.Anything, mock.AnythingOfType("*domain.NutritionEntry")).Return(nil).Once()

	entry, err := svc.Update(context.Background(), userID, entryID, service.UpdateNutritionInput{
		Quantity: 150,
		Unit:     "g",
	})

	require.NoError(t, err)
	assert.Equal(t, 150.0, entry.Quantity)
	assert.InDelta(t, 195.0, entry.Calories, 1e-9)
	assert.InDelta(t, 4.05, entry.Protein, 1e-9)
	foodRefRepo.AssertNotCalled(t, "SearchByName", mock.Anything, mock.Anything)
}

func TestNutritionUpdate_UnitChangeForcesFreshLookup(t *testing.T) {
	nutritionRepo := new(mocks.MockNutritionRepo)
	foodRefRepo := new(mocks.MockFoodReferenceRepo)
	svc := service.NewNutritionService(nutritionRepo, foodRefRepo, nil)
	userID := uuid.New()
	entryID := uuid.New()

	nutritionRepo.On("GetByID", mock.Anything, entryID).Return(&domain.NutritionEntry{
		ID:       entryID,
		UserID:   userID,
		ItemName: "rice",
		Quantity: 1,
		Unit:     "cup",
		Calories: 205,
	}, nil)
	foodRefRepo.On("SearchByName", mock.Anything, "rice").Return(&domain.FoodReference{
		Name:     "rice",
		Calories: 130,
	}, nil).Once()
	nutritionRepo.On("Update", mock.Anything, mock.AnythingOfType("*domain.NutritionEntry")).Return(nil)

	entry, err := svc.Update(context.Background(), userID, entryID, service.UpdateNutritionInput{
		Quantity: 50,
		Unit:     "g",
	})

	require.NoError(t, err)
	assert.Equal(t, "g", entry.Unit)
	assert.InDelta(t, 65.0, entry.Calories, 1e-9)
	foodRefRepo.AssertExpectations(t)
}

func TestNutritionUpdate_OtherUsersEntryForbidden(t *testing.T) {
	nutritionRepo := new(mocks.MockNutritionRepo)
	foodRefRepo := new(mocks.MockFoodReferenceRepo)
	svc := service.NewNutritionService(nutritionRepo, foodRefRepo, nil)
	entryID := uuid.New()

	nutritionRepo.On("GetByID", mock.Anything, entryID).Return(&domain.NutritionEntry{
		ID:     entryID,
		UserID: uuid.New(),
	}, nil)

	_, err := svc.Update(context.Background(), uuid.New(), entryID, service.UpdateNutritionInput{
		Quantity: 1,
		Unit:     "g",
	})

	assert.ErrorIs(t, err, domain.ErrForbidden)
	nutritionRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestNutritionDelete_OtherUsersEntryForbidden(t *testing.T) {
	nutritionRepo := new(mocks.MockNutritionRepo)
	foodRefRepo := new(mocks.MockFoodReferenceRepo)
	svc := service.NewNutritionService(nutritionRepo, foodRefRepo, nil)
	entryID := uuid.New()

	nutritionRepo.On("GetByID", mock.Anything, entryID).Return(&domain.NutritionEntry{
		ID:     entryID,
		UserID: uuid.New(),
	}, nil)

	err := svc.Delete(context.Background(), uuid.New(), entryID)

	assert.ErrorIs(t, err, domain.ErrForbidden)
	nutritionRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
