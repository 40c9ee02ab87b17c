package services

import (
	"math"

	"github.com/terraincognita07/fitledger/internal/models"
)

const (
	kilogramsPerPound = 0.453592

	goalCalorieAdjustment = 500
	proteinGramsPerPound  = 1.0
	fatCalorieShare       = 0.25

	KcalPerGramProtein = 4
	KcalPerGramCarb    = 4
	KcalPerGramFat     = 9
)

var activityMultipliers = map[string]float64{
	models.ActivitySedentary:  1.2,
	models.ActivityLight:      1.375,
	models.ActivityModerate:   1.55,
	models.ActivityActive:     1.725,
	models.ActivityVeryActive: 1.9,
}

type MacroInput struct {
	WeightLbs     float64
	HeightCm      float64
	Age           int
	Sex           string
	GoalType      string
	ActivityLevel string
}

type MacroTargets struct {
	DailyCalories int `json:"daily_calories"`
	ProteinG      int `json:"protein_g"`
	CarbG         int `json:"carb_g"`
	FatG          int `json:"fat_g"`
}

// ValidateMacroInput rejects a quiz with any mandatory answer missing.
func ValidateMacroInput(input MacroInput) error {
	if !isPositiveFinite(input.WeightLbs) || !isPositiveFinite(input.HeightCm) || input.Age <= 0 {
		return ErrQuizIncomplete
	}
	switch input.Sex {
	case models.SexMale, models.SexFemale:
	default:
		return ErrQuizIncomplete
	}
	switch input.GoalType {
	case models.GoalCut, models.GoalMaintain, models.GoalBulk:
	default:
		return ErrQuizIncomplete
	}
	if _, ok := activityMultipliers[input.ActivityLevel]; !ok {
		return ErrQuizIncomplete
	}
	return nil
}

// CalculateMacroTargets turns a validated quiz into daily energy and macro
// targets. The carbohydrate target is the calorie remainder and may be
// negative for extreme inputs.
func CalculateMacroTargets(input MacroInput) MacroTargets {
	kg := input.WeightLbs * kilogramsPerPound
	bmr := math.Round(BasalMetabolicRate(kg, input.HeightCm, input.Age, input.Sex))
	tdee := int(math.Round(bmr * ActivityMultiplier(input.ActivityLevel)))

	calories := tdee
	switch input.GoalType {
	case models.GoalCut:
		calories -= goalCalorieAdjustment
	case models.GoalBulk:
		calories += goalCalorieAdjustment
	}

	protein := int(math.Round(input.WeightLbs * proteinGramsPerPound))
	fat := int(math.Round(fatCalorieShare * float64(calories) / KcalPerGramFat))
	carbs := int(math.Round(float64(calories-protein*KcalPerGramProtein-fat*KcalPerGramFat) / KcalPerGramCarb))

	return MacroTargets{
		DailyCalories: calories,
		ProteinG:      protein,
		CarbG:         carbs,
		FatG:          fat,
	}
}

// BasalMetabolicRate is the Mifflin-St Jeor estimate, unrounded.
func BasalMetabolicRate(weightKg float64, heightCm float64, age int, sex string) float64 {
	base := 10*weightKg + 6.25*heightCm - 5*float64(age)
	if sex == models.SexFemale {
		return base - 161
	}
	return base + 5
}

func ActivityMultiplier(level string) float64 {
	if multiplier, ok := activityMultipliers[level]; ok {
		return multiplier
	}
	return activityMultipliers[models.ActivitySedentary]
}

func isPositiveFinite(value float64) bool {
	return value > 0 && !math.IsInf(value, 0) && !math.IsNaN(value)
}
