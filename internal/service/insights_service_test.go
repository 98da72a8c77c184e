package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"smartpantry/internal/domain"
	"smartpantry/internal/port"
	"smartpantry/internal/service"
	"smartpantry/mocks"
)

// Fixed clock so trailing windows are deterministic.
var insightsNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func newInsightsService(nutritionRepo port.NutritionRepository, riskScorer port.RiskScorer) service.InsightsService {
	svc := service.NewInsightsService(nutritionRepo, riskScorer)
	service.SetNowFunc(svc, func() time.Time { return insightsNow })
	return svc
}

func TestDaily(t *testing.T) {
	nutritionRepo := new(mocks.MockNutritionRepo)
	svc := newInsightsService(nutritionRepo, nil)
	userID := uuid.New()

	// 120 protein / 135 fat / 200 carb calories: balanced within the ideal
	// 20-30 / 25-35 / 40-50 bands.
	nutritionRepo.On("ListByUserBetween", mock.Anything, userID, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).
		Return([]domain.NutritionEntry{
			{Calories: 455, Protein: 30, Fat: 15, Carbs: 50, Fiber: 5, Sugar: 10},
		}, nil)

	insights, err := svc.Daily(context.Background(), userID, "2025-03-09")

	require.NoError(t, err)
	assert.True(t, insights.HasData)
	assert.Equal(t, "2025-03-09", insights.Date)
	require.NotNil(t, insights.Totals)
	assert.Equal(t, 455.0, insights.Totals.Calories)
	assert.Equal(t, 1, insights.Totals.Entries)
	assert.Equal(t, domain.GradeA, insights.Grade)
	assert.Equal(t, "#4CAF50", insights.GradeColor)
	assert.NotEmpty(t, insights.Interpretation)
	assert.NotEmpty(t, insights.Recommendations)
}

func TestDaily_NoData(t *testing.T) {
	nutritionRepo := new(mocks.MockNutritionRepo)
	svc := newInsightsService(nutritionRepo, nil)
	userID := uuid.New()

	nutritionRepo.On("ListByUserBetween", mock.Anything, userID, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).
		Return([]domain.NutritionEntry{}, nil)

	insights, err := svc.Daily(context.Background(), userID, "2025-03-09")

	require.NoError(t, err)
	assert.False(t, insights.HasData)
	assert.Equal(t, "No nutrition data for this date", insights.Message)
	assert.Nil(t, insights.Totals)
}

func TestDaily_BadDate(t *testing.T) {
	nutritionRepo := new(mocks.MockNutritionRepo)
	svc := newInsightsService(nutritionRepo, nil)

	_, err := svc.Daily(context.Background(), uuid.New(), "09-03-2025")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestWeekly_GroupsByDay(t *testing.T) {
	nutritionRepo := new(mocks.MockNutritionRepo)
	svc := newInsightsService(nutritionRepo, nil)
	userID := uuid.New()

	day1 := time.Date(2025, 3, 9, 9, 0, 0, 0, time.UTC)
	day2 := time.Date(2025, 3, 8, 20, 0, 0, 0, time.UTC)
	nutritionRepo.On("ListByUserBetween", mock.Anything, userID,
		insightsNow.AddDate(0, 0, -7), insightsNow).
		Return([]domain.NutritionEntry{
			{Calories: 500, Protein: 20, CreatedAt: day1},
			{Calories: 300, Protein: 10, CreatedAt: day1.Add(4 * time.Hour)},
			{Calories: 400, Protein: 15, CreatedAt: day2},
		}, nil)

	insights, err := svc.Weekly(context.Background(), userID)

	require.NoError(t, err)
	assert.Equal(t, "last_7_days", insights.Period)
	require.Len(t, insights.Days, 2)
	// Most recent day first
	assert.Equal(t, "2025-03-09", insights.Days[0].Date)
	assert.Equal(t, 800.0, insights.Days[0].Calories)
	assert.Equal(t, "2025-03-08", insights.Days[1].Date)
	assert.Equal(t, 400.0, insights.Days[1].Calories)
	assert.Equal(t, 400.0, insights.Averages.Calories)
	assert.Equal(t, 15.0, insights.Averages.Protein)
}

func TestWeekly_NoEntries(t *testing.T) {
	nutritionRepo := new(mocks.MockNutritionRepo)
	svc := newInsightsService(nutritionRepo, nil)
	userID := uuid.New()

	nutritionRepo.On("ListByUserBetween", mock.Anything, userID, mock.Anything, mock.Anything).
		Return([]domain.NutritionEntry{}, nil)

	insights, err := svc.Weekly(context.Background(), userID)

	require.NoError(t, err)
	assert.Empty(t, insights.Days)
	assert.Equal(t, 0.0, insights.Averages.Calories)
}

func TestAnalyze_TrailingWindow(t *testing.T) {
	nutritionRepo := new(mocks.MockNutritionRepo)
	svc := newInsightsService(nutritionRepo, nil)
	userID := uuid.New()

	nutritionRepo.On("ListByUserBetween", mock.Anything, userID,
		insightsNow.AddDate(0, 0, -7), insightsNow).
		Return([]domain.NutritionEntry{
			{ItemName: "rice", Calories: 1600},
			{ItemName: "milk", Calories: 800},
		}, nil)

	analysis, err := svc.Analyze(context.Background(), userID, "7", "", "")

	require.NoError(t, err)
	assert.Equal(t, "7", analysis.Period)
	assert.Equal(t, "2025-03-03 to 2025-03-10", analysis.DateRange)
	assert.Equal(t, 2400.0, analysis.Totals.Calories)
	assert.Equal(t, 300.0, analysis.AvgCaloriesPerDay)
	assert.Empty(t, analysis.Risks)
}

func TestAnalyze_CustomRange(t *testing.T) {
	nutritionRepo := new(mocks.MockNutritionRepo)
	svc := newInsightsService(nutritionRepo, nil)
	userID := uuid.New()

	nutritionRepo.On("ListByUserBetween", mock.Anything, userID, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			from := args.Get(2).(time.Time)
			to := args.Get(3).(time.Time)
			assert.Equal(t, "2025-03-01", from.Format("2006-01-02"))
			assert.Equal(t, "2025-03-05", to.Format("2006-01-02"))
		}).
		Return([]domain.NutritionEntry{{ItemName: "rice", Calories: 500}}, nil)

	analysis, err := svc.Analyze(context.Background(), userID, "custom", "2025-03-01", "2025-03-05")

	require.NoError(t, err)
	assert.Equal(t, "2025-03-01 to 2025-03-05", analysis.DateRange)
}

func TestAnalyze_NoData(t *testing.T) {
	nutritionRepo := new(mocks.MockNutritionRepo)
	svc := newInsightsService(nutritionRepo, nil)

	nutritionRepo.On("ListByUserBetween", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]domain.NutritionEntry{}, nil)

	_, err := svc.Analyze(context.Background(), uuid.New(), "7", "", "")
	assert.ErrorIs(t, err, domain.ErrNoNutritionData)
}

func TestAnalyze_RiskScoring(t *testing.T) {
	nutritionRepo := new(mocks.MockNutritionRepo)
	riskScorer := new(mocks.MockRiskScorer)
	svc := newInsightsService(nutritionRepo, riskScorer)
	userID := uuid.New()

	nutritionRepo.On("ListByUserBetween", mock.Anything, userID, mock.Anything, mock.Anything).
		Return([]domain.NutritionEntry{
			{ItemName: "instant noodles", Calories: 400},
			{ItemName: "instant noodles", Calories: 400},
			{ItemName: "apple", Calories: 52},
		}, nil)
	// Duplicate item names are deduplicated before scoring
	riskScorer.On("Score", mock.Anything, []string{"instant noodles", "apple"}).
		Return([]port.RiskScore{
			{Item: "instant noodles", Score: 0.8, Level: "high", Warnings: []string{"high sodium"}},
			{Item: "apple", Score: 0.1, Level: "low"},
		}, nil).Once()

	analysis, err := svc.Analyze(context.Background(), userID, "7", "", "")

	require.NoError(t, err)
	require.Len(t, analysis.Risks, 2)
	assert.Equal(t, "high", analysis.Risks[0].Level)
	riskScorer.AssertExpectations(t)
}

func TestAnalyze_RiskScorerFailureIsNotFatal(t *testing.T) {
	nutritionRepo := new(mocks.MockNutritionRepo)
	riskScorer := new(mocks.MockRiskScorer)
	svc := newInsightsService(nutritionRepo, riskScorer)
	userID := uuid.New()

	nutritionRepo.On("ListByUserBetween", mock.Anything, userID, mock.Anything, mock.Anything).
		Return([]domain.NutritionEntry{{ItemName: "rice", Calories: 500}}, nil)
	riskScorer.On("Score", mock.Anything, mock.Anything).
		Return(nil, errors.New("scorer unavailable"))

	analysis, err := svc.Analyze(context.Background(), userID, "7", "", "")

	require.NoError(t, err)
	assert.Empty(t, analysis.Risks)
}
