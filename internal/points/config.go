package points

import "github.com/osse101/StardustBot_Go/internal/domain"

// CategoryConfig maps an activity category to its weight class and per-unit
// point value. The table is a process-wide constant.
type CategoryConfig struct {
	Category      domain.Category
	WeightClass   domain.WeightClass
	PointsPerUnit float64
}

// Categories is the canonical category table, in report order.
var Categories = []CategoryConfig{
	{Category: domain.CategoryModChatMessages, WeightClass: domain.WeightClassMedium, PointsPerUnit: 1},
	{Category: domain.CategoryPublicChatMessages, WeightClass: domain.WeightClassLow, PointsPerUnit: 0.5},
	{Category: domain.CategoryVoiceChatMinutes, WeightClass: domain.WeightClassLow, PointsPerUnit: 0.25},
	{Category: domain.CategoryModActionsTaken, WeightClass: domain.WeightClassHigh, PointsPerUnit: 10},
	{Category: domain.CategoryCasesHandled, WeightClass: domain.WeightClassHigh, PointsPerUnit: 20},
}

// WeightBudgets are the budget fractions per weight class. They sum to 1.0
// of the dynamic maximum, which is recomputed from each week's activity
// rather than being a fixed ceiling.
var WeightBudgets = map[domain.WeightClass]float64{
	domain.WeightClassHigh:   0.60,
	domain.WeightClassMedium: 0.25,
	domain.WeightClassLow:    0.15,
}
