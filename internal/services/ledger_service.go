package services

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/terraincognita07/fitledger/internal/models"
)

type GoalReader interface {
	FindLatestByUser(userID uint) (models.UserGoal, bool, error)
}

type FoodLookup interface {
	FindByUserAndName(userID uint, name string) (models.FoodItem, bool, error)
}

type StreakAdvancer interface {
	AdvanceStreak(userID uint) (*int, error)
}

// FoodLogInput holds raw form values. Either all three macros are given,
// or they are blank and FoodName names a saved catalog item.
type FoodLogInput struct {
	FoodName string `json:"food_name"`
	Servings string `json:"servings"`
	ProteinG string `json:"protein_g"`
	CarbG    string `json:"carb_g"`
	FatG     string `json:"fat_g"`
}

type FoodLogResult struct {
	Ledger      LedgerSnapshot `json:"ledger"`
	Added       MacroAmounts   `json:"added"`
	StreakCount *int           `json:"streak_count,omitempty"`
}

type NutritionSession struct {
	UserID         uint             `json:"user_id"`
	HasGoal        bool             `json:"has_goal"`
	Goal           *models.UserGoal `json:"goal,omitempty"`
	Today          LedgerSnapshot   `json:"today"`
	HasLedgerToday bool             `json:"has_ledger_today"`
}

type LedgerService struct {
	goals   GoalReader
	ledger  LedgerRepository
	foods   FoodLookup
	streaks StreakAdvancer
	runtime Runtime
}

func NewLedgerService(goals GoalReader, ledger LedgerRepository, foods FoodLookup, streaks StreakAdvancer, runtime Runtime) *LedgerService {
	return &LedgerService{
		goals:   goals,
		ledger:  ledger,
		foods:   foods,
		streaks: streaks,
		runtime: runtime.withDefaults(),
	}
}

type foodLogRequest struct {
	amounts     MacroAmounts
	catalogName string
	servings    float64
}

func (request foodLogRequest) fromCatalog() bool {
	return request.catalogName != ""
}

func parseFoodLogInput(input FoodLogInput) (foodLogRequest, error) {
	proteinRaw := strings.TrimSpace(input.ProteinG)
	carbRaw := strings.TrimSpace(input.CarbG)
	fatRaw := strings.TrimSpace(input.FatG)
	name := strings.TrimSpace(input.FoodName)

	if proteinRaw == "" && carbRaw == "" && fatRaw == "" && name != "" {
		servings := 1.0
		if raw := strings.TrimSpace(input.Servings); raw != "" {
			parsed, err := strconv.ParseFloat(raw, 64)
			if err != nil || !isPositiveFinite(parsed) {
				return foodLogRequest{}, ErrInvalidServings
			}
			servings = parsed
		}
		return foodLogRequest{catalogName: name, servings: servings}, nil
	}

	protein, err := ParseMacroValue(proteinRaw)
	if err != nil {
		return foodLogRequest{}, err
	}
	carb, err := ParseMacroValue(carbRaw)
	if err != nil {
		return foodLogRequest{}, err
	}
	fat, err := ParseMacroValue(fatRaw)
	if err != nil {
		return foodLogRequest{}, err
	}
	return foodLogRequest{amounts: MacroAmounts{ProteinG: protein, CarbG: carb, FatG: fat}}, nil
}

// ParseMacroValue accepts a non-negative decimal gram amount.
func ParseMacroValue(raw string) (float64, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, ErrIncompleteInput
	}
	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) || value < 0 {
		return 0, ErrInvalidMacroNumber
	}
	return value, nil
}

// LogFood adds a meal to today's row, creating the row from the latest
// goal when the day has none yet. The first log of the day also advances
// the streak.
func (service *LedgerService) LogFood(userID uint, input FoodLogInput) (FoodLogResult, error) {
	if userID == 0 {
		return FoodLogResult{}, ErrNotSignedIn
	}

	request, err := parseFoodLogInput(input)
	if err != nil {
		return FoodLogResult{}, err
	}

	logger := service.runtime.Logger.WithField("user_id", userID)
	amounts := request.amounts
	if request.fromCatalog() {
		amounts, err = service.catalogAmounts(userID, request)
		if err != nil {
			return FoodLogResult{}, err
		}
	}

	logDate := service.runtime.dayKey(service.runtime.now())
	entry, found, err := service.ledger.FindByUserAndDate(userID, logDate)
	if err != nil {
		return FoodLogResult{}, fmt.Errorf("%w: %v", ErrLedgerLoadFailed, err)
	}

	if !found || entry.CalorieBudget <= 0 {
		goal, hasGoal, err := service.goals.FindLatestByUser(userID)
		if err != nil {
			return FoodLogResult{}, fmt.Errorf("%w: %v", ErrGoalLoadFailed, err)
		}
		if !hasGoal || goal.DailyCalories <= 0 {
			return FoodLogResult{}, ErrGoalsNotSet
		}
		if found {
			applyTargets(&entry, targetsFromGoal(goal))
		} else {
			entry = newLedgerEntry(userID, logDate, targetsFromGoal(goal))
		}
	}

	entry.ProteinG += amounts.ProteinG
	entry.CarbG += amounts.CarbG
	entry.FatG += amounts.FatG
	recomputeRemaining(&entry)

	if found {
		err = service.ledger.Save(&entry)
	} else {
		err = service.ledger.Create(&entry)
	}
	if err != nil {
		return FoodLogResult{}, fmt.Errorf("%w: %v", ErrLedgerSaveFailed, err)
	}

	persisted, ok, err := service.ledger.FindByUserAndDate(userID, logDate)
	switch {
	case err != nil:
		logger.WithError(err).Warn("ledger re-read failed, returning local totals")
		persisted = entry
	case !ok:
		logger.Warn("ledger row missing after write, returning local totals")
		persisted = entry
	}

	result := FoodLogResult{Added: amounts}
	if !persisted.StreakCounted && service.streaks != nil {
		count, err := service.streaks.AdvanceStreak(userID)
		if err != nil {
			logger.WithError(err).Warn("streak advance failed")
		} else if count != nil {
			persisted.Streak = *count
			persisted.StreakCounted = true
			result.StreakCount = count
		}
	}

	result.Ledger = SnapshotFromEntry(persisted)
	logger.WithFields(logrus.Fields{
		"log_date":           logDate,
		"remaining_calories": persisted.RemainingCalories,
	}).Debug("food logged")
	return result, nil
}

func (service *LedgerService) catalogAmounts(userID uint, request foodLogRequest) (MacroAmounts, error) {
	if service.foods == nil {
		return MacroAmounts{}, ErrIncompleteInput
	}
	item, found, err := service.foods.FindByUserAndName(userID, request.catalogName)
	if err != nil {
		return MacroAmounts{}, fmt.Errorf("%w: %v", ErrFoodLookupFailed, err)
	}
	if !found {
		return MacroAmounts{}, ErrFoodNotFound
	}
	return MacroAmounts{
		ProteinG: item.ProteinG * request.servings,
		CarbG:    item.CarbG * request.servings,
		FatG:     item.FatG * request.servings,
	}, nil
}

// LoadSession reads the signed-in user's goal and today's ledger. Nothing
// is written; a day without a row is shown against the latest goal.
func (service *LedgerService) LoadSession(userID uint) (NutritionSession, error) {
	if userID == 0 {
		return NutritionSession{}, ErrNotSignedIn
	}

	session := NutritionSession{UserID: userID}
	goal, hasGoal, err := service.goals.FindLatestByUser(userID)
	if err != nil {
		return NutritionSession{}, fmt.Errorf("%w: %v", ErrGoalLoadFailed, err)
	}
	if hasGoal {
		session.HasGoal = true
		session.Goal = &goal
	}

	logDate := service.runtime.dayKey(service.runtime.now())
	entry, found, err := service.ledger.FindByUserAndDate(userID, logDate)
	if err != nil {
		return NutritionSession{}, fmt.Errorf("%w: %v", ErrLedgerLoadFailed, err)
	}
	if !found {
		targets := MacroTargets{}
		if hasGoal {
			targets = targetsFromGoal(goal)
		}
		entry = newLedgerEntry(userID, logDate, targets)
	}
	session.HasLedgerToday = found
	session.Today = SnapshotFromEntry(entry)
	return session, nil
}

// History lists stored days between two inclusive day keys. Blank bounds
// leave that side open.
func (service *LedgerService) History(userID uint, from string, to string) ([]LedgerSnapshot, error) {
	if userID == 0 {
		return nil, ErrNotSignedIn
	}

	fromKey, err := parseOptionalDayKey(from, service.runtime)
	if err != nil {
		return nil, err
	}
	toKey, err := parseOptionalDayKey(to, service.runtime)
	if err != nil {
		return nil, err
	}
	if fromKey != "" && toKey != "" && fromKey > toKey {
		return nil, ErrInvalidDateRange
	}

	entries, err := service.ledger.ListByUserDateRange(userID, fromKey, toKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLedgerLoadFailed, err)
	}
	snapshots := make([]LedgerSnapshot, 0, len(entries))
	for _, entry := range entries {
		snapshots = append(snapshots, SnapshotFromEntry(entry))
	}
	return snapshots, nil
}

func parseOptionalDayKey(raw string, runtime Runtime) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", nil
	}
	key, err := ParseDayKey(raw, runtime.Location)
	if err != nil {
		return "", ErrInvalidDateRange
	}
	return key, nil
}
