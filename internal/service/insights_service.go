package service

import (
	"context"
	"log"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"smartpantry/internal/domain"
	"smartpantry/internal/port"
)

// NutrientTotals aggregates nutrient amounts over a set of entries.
type NutrientTotals struct {
	Calories float64 `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	FatG     float64 `json:"fat_g"`
	CarbsG   float64 `json:"carbs_g"`
	FiberG   float64 `json:"fiber_g"`
	SugarG   float64 `json:"sugar_g"`
	Entries  int     `json:"entries"`
}

// MacroBreakdown is the share of calories contributed by each macronutrient.
type MacroBreakdown struct {
	Protein float64 `json:"protein"`
	Fat     float64 `json:"fat"`
	Carbs   float64 `json:"carbs"`
}

// DailyInsights is the macronutrient report for one calendar day.
type DailyInsights struct {
	Date            string             `json:"date"`
	HasData         bool               `json:"has_data"`
	Message         string             `json:"message,omitempty"`
	Totals          *NutrientTotals    `json:"totals,omitempty"`
	Breakdown       *MacroBreakdown    `json:"macronutrient_breakdown,omitempty"`
	Grade           domain.HealthGrade `json:"health_grade,omitempty"`
	GradeColor      string             `json:"grade_color,omitempty"`
	Interpretation  string             `json:"interpretation,omitempty"`
	Recommendations []string           `json:"recommendations,omitempty"`
}

// DaySummary is one day's nutrient totals within a weekly report.
type DaySummary struct {
	Date     string  `json:"date"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Fat      float64 `json:"fat"`
	Carbs    float64 `json:"carbs"`
}

// WeeklyInsights is the rolling seven day report.
type WeeklyInsights struct {
	Period   string       `json:"period"`
	Days     []DaySummary `json:"days"`
	Averages DaySummary   `json:"averages"`
}

// PeriodAnalysis is the aggregated report for an arbitrary period, with
// optional dietary risk flags from the external scorer.
type PeriodAnalysis struct {
	Period            string           `json:"period"`
	DateRange         string           `json:"date_range"`
	Totals            NutrientTotals   `json:"totals"`
	AvgCaloriesPerDay float64          `json:"avg_calories_per_day"`
	Risks             []port.RiskScore `json:"risks,omitempty"`
}

// InsightsService computes nutrition reports over logged entries.
type InsightsService interface {
	Daily(ctx context.Context, userID uuid.UUID, date string) (*DailyInsights, error)
	Weekly(ctx context.Context, userID uuid.UUID) (*WeeklyInsights, error)
	Analyze(ctx context.Context, userID uuid.UUID, period, customStart, customEnd string) (*PeriodAnalysis, error)
}

type insightsService struct {
	nutritionRepo port.NutritionRepository
	riskScorer    port.RiskScorer
	now           func() time.Time
}

// NewInsightsService creates a new InsightsService. riskScorer may be nil.
func NewInsightsService(nutritionRepo port.NutritionRepository, riskScorer port.RiskScorer) InsightsService {
	return &insightsService{
		nutritionRepo: nutritionRepo,
		riskScorer:    riskScorer,
		now:           time.Now,
	}
}

func (s *insightsService) Daily(ctx context.Context, userID uuid.UUID, date string) (*DailyInsights, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, domain.ErrNotFound
	}

	entries, err := s.nutritionRepo.ListByUserBetween(ctx, userID, day, day.AddDate(0, 0, 1).Add(-time.Nanosecond))
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return &DailyInsights{Date: date, HasData: false, Message: "No nutrition data for this date"}, nil
	}

	totals := sumEntries(entries)

	breakdown, ok := macroBreakdown(totals)
	if !ok {
		return &DailyInsights{Date: date, HasData: false, Message: "Incomplete nutrition data"}, nil
	}

	grade, color := healthGrade(breakdown)
	return &DailyInsights{
		Date:            date,
		HasData:         true,
		Totals:          &totals,
		Breakdown:       &breakdown,
		Grade:           grade,
		GradeColor:      color,
		Interpretation:  gradeInterpretation(grade),
		Recommendations: recommendations(breakdown),
	}, nil
}

func (s *insightsService) Weekly(ctx context.Context, userID uuid.UUID) (*WeeklyInsights, error) {
	now := s.now()
	from := now.AddDate(0, 0, -7)

	entries, err := s.nutritionRepo.ListByUserBetween(ctx, userID, from, now)
	if err != nil {
		return nil, err
	}

	byDay := map[string]*DaySummary{}
	for _, e := range entries {
		key := e.CreatedAt.Format("2006-01-02")
		day, ok := byDay[key]
		if !ok {
			day = &DaySummary{Date: key}
			byDay[key] = day
		}
		day.Calories += e.Calories
		day.Protein += e.Protein
		day.Fat += e.Fat
		day.Carbs += e.Carbs
	}

	days := make([]DaySummary, 0, len(byDay))
	for _, d := range byDay {
		days = append(days, *d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date > days[j].Date })

	avg := DaySummary{}
	if n := len(entries); n > 0 {
		for _, e := range entries {
			avg.Calories += e.Calories
			avg.Protein += e.Protein
			avg.Fat += e.Fat
			avg.Carbs += e.Carbs
		}
		avg.Calories = math.Round(avg.Calories / float64(n))
		avg.Protein = round1(avg.Protein / float64(n))
		avg.Fat = round1(avg.Fat / float64(n))
		avg.Carbs = round1(avg.Carbs / float64(n))
	}

	return &WeeklyInsights{Period: "last_7_days", Days: days, Averages: avg}, nil
}

func (s *insightsService) Analyze(ctx context.Context, userID uuid.UUID, period, customStart, customEnd string) (*PeriodAnalysis, error) {
	from, to := s.dateRange(period, customStart, customEnd)

	entries, err := s.nutritionRepo.ListByUserBetween(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, domain.ErrNoNutritionData
	}

	totals := sumEntries(entries)
	days := to.Sub(from).Hours()/24 + 1
	if days < 1 {
		days = 1
	}

	analysis := &PeriodAnalysis{
		Period:            period,
		DateRange:         from.Format("2006-01-02") + " to " + to.Format("2006-01-02"),
		Totals:            totals,
		AvgCaloriesPerDay: totals.Calories / math.Floor(days),
	}

	if s.riskScorer != nil {
		names := make([]string, 0, len(entries))
		seen := map[string]bool{}
		for _, e := range entries {
			if !seen[e.ItemName] {
				seen[e.ItemName] = true
				names = append(names, e.ItemName)
			}
		}
		risks, err := s.riskScorer.Score(ctx, names)
		if err != nil {
			log.Printf("insightsService.Analyze: risk scoring failed: %v", err)
		} else {
			analysis.Risks = risks
		}
	}

	return analysis, nil
}

// dateRange mirrors the period selector used by the tracking UI: today,
// a trailing window of 1/3/7/30 days, or a custom inclusive range.
func (s *insightsService) dateRange(period, customStart, customEnd string) (time.Time, time.Time) {
	now := s.now()
	startOfToday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch period {
	case "1":
		return startOfToday.AddDate(0, 0, -1), startOfToday
	case "3":
		return now.AddDate(0, 0, -3), now
	case "7":
		return now.AddDate(0, 0, -7), now
	case "30":
		return now.AddDate(0, 0, -30), now
	case "custom":
		start, err1 := time.Parse("2006-01-02", customStart)
		end, err2 := time.Parse("2006-01-02", customEnd)
		if err1 == nil && err2 == nil {
			return start, end.Add(24*time.Hour - time.Second)
		}
	}
	return startOfToday, now
}

func sumEntries(entries []domain.NutritionEntry) NutrientTotals {
	t := NutrientTotals{Entries: len(entries)}
	for _, e := range entries {
		t.Calories += e.Calories
		t.ProteinG += e.Protein
		t.FatG += e.Fat
		t.CarbsG += e.Carbs
		t.FiberG += e.Fiber
		t.SugarG += e.Sugar
	}
	return t
}

// macroBreakdown converts gram totals into calorie share percentages using
// the 4/9/4 kcal-per-gram factors. Returns false when there is nothing to
// divide by.
func macroBreakdown(t NutrientTotals) (MacroBreakdown, bool) {
	proteinCal := t.ProteinG * 4
	fatCal := t.FatG * 9
	carbsCal := t.CarbsG * 4

	total := proteinCal + fatCal + carbsCal
	if total == 0 {
		return MacroBreakdown{}, false
	}
	return MacroBreakdown{
		Protein: round1(proteinCal / total * 100),
		Fat:     round1(fatCal / total * 100),
		Carbs:   round1(carbsCal / total * 100),
	}, true
}

// healthGrade scores macronutrient balance against ideal ranges: protein
// 20-30%, fat 25-35%, carbs 40-50%. Two points per nutrient in range, one
// for near misses.
func healthGrade(b MacroBreakdown) (domain.HealthGrade, string) {
	score := 0

	switch {
	case b.Protein >= 20 && b.Protein <= 30:
		score += 2
	case (b.Protein >= 15 && b.Protein < 20) || (b.Protein > 30 && b.Protein <= 35):
		score++
	}

	switch {
	case b.Fat >= 25 && b.Fat <= 35:
		score += 2
	case (b.Fat >= 20 && b.Fat < 25) || (b.Fat > 35 && b.Fat <= 40):
		score++
	}

	switch {
	case b.Carbs >= 40 && b.Carbs <= 50:
		score += 2
	case (b.Carbs >= 35 && b.Carbs < 40) || (b.Carbs > 50 && b.Carbs <= 55):
		score++
	}

	switch {
	case score >= 5:
		return domain.GradeA, "#4CAF50"
	case score >= 4:
		return domain.GradeB, "#8BC34A"
	case score >= 3:
		return domain.GradeC, "#FFC107"
	case score >= 2:
		return domain.GradeD, "#FF9800"
	default:
		return domain.GradeF, "#F44336"
	}
}

func gradeInterpretation(grade domain.HealthGrade) string {
	switch grade {
	case domain.GradeA:
		return "Excellent balance! Your macronutrients are well distributed."
	case domain.GradeB:
		return "Good balance with minor adjustments needed."
	case domain.GradeC:
		return "Fair. Consider adjusting your protein/carb/fat ratios."
	case domain.GradeD:
		return "Needs improvement. Try to balance your meals better."
	default:
		return "Poor balance. Focus on getting more protein and healthy fats."
	}
}

func recommendations(b MacroBreakdown) []string {
	var recs []string

	if b.Protein < 20 {
		recs = append(recs, "Increase protein intake with eggs, chicken, fish, or lentils")
	} else if b.Protein > 35 {
		recs = append(recs, "Slightly high protein. Good for muscle building!")
	}

	if b.Fat < 20 {
		recs = append(recs, "Add healthy fats like avocados, nuts, or olive oil")
	} else if b.Fat > 40 {
		recs = append(recs, "Consider reducing fried foods and processed fats")
	}

	if b.Carbs < 40 {
		recs = append(recs, "Include more whole grains, fruits, and vegetables")
	} else if b.Carbs > 60 {
		recs = append(recs, "Try swapping some carbs for protein-rich foods")
	}

	if len(recs) == 0 {
		recs = append(recs, "Great balance! Maintain this macronutrient distribution")
	}
	return recs
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
