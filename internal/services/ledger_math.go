package services

import (
	"math"

	"github.com/terraincognita07/fitledger/internal/models"
)

// ConsumedCalories converts macro grams to kcal with Atwater factors.
func ConsumedCalories(proteinG float64, carbG float64, fatG float64) float64 {
	return proteinG*KcalPerGramProtein + carbG*KcalPerGramCarb + fatG*KcalPerGramFat
}

// RemainingCalories never goes below zero; over-consumption only shows in
// the consumed percentage.
func RemainingCalories(budget int, consumed float64) int {
	remaining := math.Round(float64(budget) - consumed)
	if remaining < 0 {
		return 0
	}
	return int(remaining)
}

func newLedgerEntry(userID uint, logDate string, targets MacroTargets) models.DailyLedgerEntry {
	entry := models.DailyLedgerEntry{
		UserID:  userID,
		LogDate: logDate,
	}
	applyTargets(&entry, targets)
	return entry
}

// applyTargets re-bases the day on new targets without touching the
// consumed totals.
func applyTargets(entry *models.DailyLedgerEntry, targets MacroTargets) {
	entry.CalorieBudget = targets.DailyCalories
	entry.ProteinTargetG = targets.ProteinG
	entry.CarbTargetG = targets.CarbG
	entry.FatTargetG = targets.FatG
	recomputeRemaining(entry)
}

func recomputeRemaining(entry *models.DailyLedgerEntry) {
	consumed := ConsumedCalories(entry.ProteinG, entry.CarbG, entry.FatG)
	entry.RemainingCalories = RemainingCalories(entry.CalorieBudget, consumed)
}

func targetsFromGoal(goal models.UserGoal) MacroTargets {
	return MacroTargets{
		DailyCalories: goal.DailyCalories,
		ProteinG:      goal.ProteinG,
		CarbG:         goal.CarbG,
		FatG:          goal.FatG,
	}
}

type MacroAmounts struct {
	ProteinG float64 `json:"protein_g"`
	CarbG    float64 `json:"carb_g"`
	FatG     float64 `json:"fat_g"`
}

// LedgerSnapshot is the read model handed to the presentation layer.
type LedgerSnapshot struct {
	LogDate           string       `json:"log_date"`
	CalorieBudget     int          `json:"calorie_budget"`
	RemainingCalories int          `json:"remaining_calories"`
	ConsumedCalories  float64      `json:"consumed_calories"`
	ConsumedPercent   float64      `json:"consumed_percent"`
	Consumed          MacroAmounts `json:"consumed"`
	Targets           MacroTargets `json:"targets"`
	Streak            int          `json:"streak"`
}

func SnapshotFromEntry(entry models.DailyLedgerEntry) LedgerSnapshot {
	consumed := ConsumedCalories(entry.ProteinG, entry.CarbG, entry.FatG)
	percent := 0.0
	if entry.CalorieBudget > 0 {
		percent = math.Round(consumed/float64(entry.CalorieBudget)*1000) / 10
	}

	return LedgerSnapshot{
		LogDate:           entry.LogDate,
		CalorieBudget:     entry.CalorieBudget,
		RemainingCalories: entry.RemainingCalories,
		ConsumedCalories:  consumed,
		ConsumedPercent:   percent,
		Consumed: MacroAmounts{
			ProteinG: entry.ProteinG,
			CarbG:    entry.CarbG,
			FatG:     entry.FatG,
		},
		Targets: MacroTargets{
			DailyCalories: entry.CalorieBudget,
			ProteinG:      entry.ProteinTargetG,
			CarbG:         entry.CarbTargetG,
			FatG:          entry.FatTargetG,
		},
		Streak: entry.Streak,
	}
}
