package services

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/terraincognita07/fitledger/internal/models"
)

type GoalRepository interface {
	FindLatestByUser(userID uint) (models.UserGoal, bool, error)
	Create(goal *models.UserGoal) error
	Save(goal *models.UserGoal) error
}

type GoalChangeRepository interface {
	CountSince(userID uint, since time.Time) (int64, error)
	Create(event *models.GoalChangeEvent) error
}

type LedgerRepository interface {
	FindByUserAndDate(userID uint, logDate string) (models.DailyLedgerEntry, bool, error)
	ListByUserDateRange(userID uint, from string, to string) ([]models.DailyLedgerEntry, error)
	Create(entry *models.DailyLedgerEntry) error
	Save(entry *models.DailyLedgerEntry) error
}

type XPAwarder interface {
	AwardXP(userID uint, reason string, amount int) (int, error)
}

type GoalInput struct {
	Age             int     `json:"age"`
	Sex             string  `json:"sex"`
	HeightCm        float64 `json:"height_cm"`
	WeightLbs       float64 `json:"weight_lbs"`
	TargetWeightLbs float64 `json:"target_weight_lbs"`
	ActivityLevel   string  `json:"activity_level"`
	GoalType        string  `json:"goal_type"`
}

type GoalSubmission struct {
	Goal      models.UserGoal `json:"goal"`
	Ledger    LedgerSnapshot  `json:"ledger"`
	FirstGoal bool            `json:"first_goal"`
}

type GoalService struct {
	goals   GoalRepository
	changes GoalChangeRepository
	ledger  LedgerRepository
	rewards XPAwarder
	policy  RateLimitPolicy
	runtime Runtime
}

func NewGoalService(goals GoalRepository, changes GoalChangeRepository, ledger LedgerRepository, rewards XPAwarder, policy RateLimitPolicy, runtime Runtime) *GoalService {
	return &GoalService{
		goals:   goals,
		changes: changes,
		ledger:  ledger,
		rewards: rewards,
		policy:  policy,
		runtime: runtime.withDefaults(),
	}
}

func NormalizeGoalInput(input GoalInput) GoalInput {
	input.Sex = strings.ToLower(strings.TrimSpace(input.Sex))
	input.ActivityLevel = strings.ToLower(strings.TrimSpace(input.ActivityLevel))
	input.GoalType = strings.ToLower(strings.TrimSpace(input.GoalType))
	return input
}

func (input GoalInput) macroInput() MacroInput {
	return MacroInput{
		WeightLbs:     input.WeightLbs,
		HeightCm:      input.HeightCm,
		Age:           input.Age,
		Sex:           input.Sex,
		GoalType:      input.GoalType,
		ActivityLevel: input.ActivityLevel,
	}
}

// PreviewTargets validates a quiz and returns its targets without saving.
func PreviewTargets(input GoalInput) (MacroTargets, error) {
	input = NormalizeGoalInput(input)
	if err := ValidateMacroInput(input.macroInput()); err != nil {
		return MacroTargets{}, err
	}
	return CalculateMacroTargets(input.macroInput()), nil
}

func (service *GoalService) LatestGoal(userID uint) (models.UserGoal, bool, error) {
	if userID == 0 {
		return models.UserGoal{}, false, ErrNotSignedIn
	}
	goal, found, err := service.goals.FindLatestByUser(userID)
	if err != nil {
		return models.UserGoal{}, false, fmt.Errorf("%w: %v", ErrGoalLoadFailed, err)
	}
	return goal, found, nil
}

// SubmitGoal saves a new or edited goal and re-bases today's ledger on it.
// The goal row and the ledger row are separate writes; a ledger failure
// leaves the saved goal in place.
func (service *GoalService) SubmitGoal(userID uint, input GoalInput) (GoalSubmission, error) {
	if userID == 0 {
		return GoalSubmission{}, ErrNotSignedIn
	}

	input = NormalizeGoalInput(input)
	if err := ValidateMacroInput(input.macroInput()); err != nil {
		return GoalSubmission{}, err
	}
	if input.TargetWeightLbs < 0 || math.IsNaN(input.TargetWeightLbs) || math.IsInf(input.TargetWeightLbs, 0) {
		return GoalSubmission{}, ErrQuizIncomplete
	}

	targets := CalculateMacroTargets(input.macroInput())
	if targets.DailyCalories <= 0 || targets.CarbG < 0 {
		return GoalSubmission{}, ErrGoalInfeasible
	}

	now := service.runtime.now()
	logger := service.runtime.Logger.WithField("user_id", userID)
	if err := service.policy.check(service.changes.CountSince, userID, now, logger, "goal_change"); err != nil {
		return GoalSubmission{}, err
	}

	goal, found, err := service.goals.FindLatestByUser(userID)
	if err != nil {
		return GoalSubmission{}, fmt.Errorf("%w: %v", ErrGoalLoadFailed, err)
	}
	applyGoalInput(&goal, userID, input, targets)
	if found {
		err = service.goals.Save(&goal)
	} else {
		err = service.goals.Create(&goal)
	}
	if err != nil {
		return GoalSubmission{}, fmt.Errorf("%w: %v", ErrGoalSaveFailed, err)
	}

	firstGoal := !found
	if firstGoal && service.rewards != nil {
		if _, err := service.rewards.AwardXP(userID, models.XPReasonFirstGoal, models.FirstGoalXP); err != nil {
			logger.WithError(err).Warn("first goal reward failed")
		}
	}

	event := models.GoalChangeEvent{UserID: userID, CreatedAt: now.UTC()}
	if err := service.changes.Create(&event); err != nil {
		logger.WithError(err).Warn("goal change event not recorded")
	}

	entry, err := service.rebaseDay(userID, service.runtime.dayKey(now), targets)
	if err != nil {
		return GoalSubmission{}, err
	}

	logger.WithFields(logrus.Fields{
		"daily_calories": targets.DailyCalories,
		"first_goal":     firstGoal,
	}).Info("goal submitted")

	return GoalSubmission{
		Goal:      goal,
		Ledger:    SnapshotFromEntry(entry),
		FirstGoal: firstGoal,
	}, nil
}

// rebaseDay points the day's row at new targets. Consumed totals are kept,
// only the snapshot and the remaining budget change.
func (service *GoalService) rebaseDay(userID uint, logDate string, targets MacroTargets) (models.DailyLedgerEntry, error) {
	entry, found, err := service.ledger.FindByUserAndDate(userID, logDate)
	if err != nil {
		return models.DailyLedgerEntry{}, fmt.Errorf("%w: %v", ErrLedgerLoadFailed, err)
	}

	if !found {
		entry = newLedgerEntry(userID, logDate, targets)
		if err := service.ledger.Create(&entry); err != nil {
			return models.DailyLedgerEntry{}, fmt.Errorf("%w: %v", ErrLedgerSaveFailed, err)
		}
		return entry, nil
	}

	applyTargets(&entry, targets)
	if err := service.ledger.Save(&entry); err != nil {
		return models.DailyLedgerEntry{}, fmt.Errorf("%w: %v", ErrLedgerSaveFailed, err)
	}
	return entry, nil
}

func applyGoalInput(goal *models.UserGoal, userID uint, input GoalInput, targets MacroTargets) {
	goal.UserID = userID
	goal.Age = input.Age
	goal.Sex = input.Sex
	goal.HeightCm = input.HeightCm
	goal.WeightLbs = input.WeightLbs
	goal.TargetWeightLbs = input.TargetWeightLbs
	goal.ActivityLevel = input.ActivityLevel
	goal.GoalType = input.GoalType
	goal.DailyCalories = targets.DailyCalories
	goal.ProteinG = targets.ProteinG
	goal.CarbG = targets.CarbG
	goal.FatG = targets.FatG
}
