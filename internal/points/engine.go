package points

import (
	"math"

	"github.com/osse101/StardustBot_Go/internal/domain"
)

// Engine provides pure weighted-points logic (no DB dependencies)
type Engine struct{}

// NewEngine creates a new points engine
func NewEngine() *Engine {
	return &Engine{}
}

// Compute runs the two-pass dynamic-budget normalization over one week's
// raw metrics.
//
// Pass one derives each category's uncapped raw points and their sum, the
// dynamic max possible. Pass two caps each weight class at its fraction of
// that sum: every category in a class shares one proportional scaling
// factor, so results do not depend on category order. Applied points are
// floored; the floored remainder counts as waste, which keeps
// applied+wasted == raw exact per category.
//
// Negative counts are clamped to zero at this boundary; the function never
// fails.
func (e *Engine) Compute(metrics domain.RawMetrics) domain.Computation {
	type interim struct {
		config    CategoryConfig
		amount    int
		rawPoints float64
	}

	entries := make([]interim, 0, len(Categories))
	classRawTotals := make(map[domain.WeightClass]float64, len(WeightBudgets))

	dynamicMax := 0.0
	for _, cfg := range Categories {
		amount := clampNonNegative(categoryAmount(metrics, cfg.Category))
		raw := float64(amount) * cfg.PointsPerUnit

		dynamicMax += raw
		classRawTotals[cfg.WeightClass] += raw
		entries = append(entries, interim{config: cfg, amount: amount, rawPoints: raw})
	}

	classBudgets := make(map[domain.WeightClass]float64, len(WeightBudgets))
	for class, fraction := range WeightBudgets {
		classBudgets[class] = dynamicMax * fraction
	}

	result := domain.Computation{
		Details:            make([]domain.CategoryPointsDetail, 0, len(entries)),
		TotalRawPoints:     dynamicMax,
		DynamicMaxPossible: dynamicMax,
	}

	for _, entry := range entries {
		class := entry.config.WeightClass
		budget := classBudgets[class]

		scaling := 1.0
		if total := classRawTotals[class]; total > 0 {
			scaling = math.Min(1, budget/total)
		}

		applied := math.Floor(entry.rawPoints * scaling)
		wasted := entry.rawPoints - applied

		result.TotalFinalizedPoints += applied
		result.TotalWastedPoints += wasted
		result.Details = append(result.Details, domain.CategoryPointsDetail{
			Category:      entry.config.Category,
			WeightClass:   class,
			RawAmount:     entry.amount,
			RawPoints:     entry.rawPoints,
			AppliedPoints: applied,
			WastedPoints:  wasted,
			BracketBudget: budget,
		})
	}

	return result
}

// categoryAmount selects the metric count for a category.
func categoryAmount(metrics domain.RawMetrics, category domain.Category) int {
	switch category {
	case domain.CategoryModChatMessages:
		return metrics.ModChatMessages
	case domain.CategoryPublicChatMessages:
		return metrics.PublicChatMessages
	case domain.CategoryVoiceChatMinutes:
		return metrics.VoiceChatMinutes
	case domain.CategoryModActionsTaken:
		return metrics.ModActionsTaken
	case domain.CategoryCasesHandled:
		return metrics.CasesHandled
	default:
		return 0
	}
}

func clampNonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
