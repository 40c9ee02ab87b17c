package services

import (
	"fmt"

	"github.com/terraincognita07/fitledger/internal/models"
)

type StreakService struct {
	ledger  LedgerRepository
	goals   GoalReader
	rewards XPAwarder
	runtime Runtime
}

func NewStreakService(ledger LedgerRepository, goals GoalReader, rewards XPAwarder, runtime Runtime) *StreakService {
	return &StreakService{
		ledger:  ledger,
		goals:   goals,
		rewards: rewards,
		runtime: runtime.withDefaults(),
	}
}

// AdvanceStreak counts today toward the streak at most once. A counted
// yesterday extends the run, anything else restarts it at one. Returns nil
// without touching storage when nobody is signed in.
func (service *StreakService) AdvanceStreak(userID uint) (*int, error) {
	if userID == 0 {
		return nil, nil
	}

	now := service.runtime.now()
	today := service.runtime.dayKey(now)
	entry, found, err := service.ledger.FindByUserAndDate(userID, today)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLedgerLoadFailed, err)
	}
	if found && entry.StreakCounted {
		streak := entry.Streak
		return &streak, nil
	}

	previous, hasPrevious, err := service.ledger.FindByUserAndDate(userID, PreviousDayKey(now, service.runtime.Location))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLedgerLoadFailed, err)
	}
	streak := 1
	if hasPrevious && previous.StreakCounted && previous.Streak > 0 {
		streak = previous.Streak + 1
	}

	if !found {
		targets := MacroTargets{}
		if service.goals != nil {
			goal, hasGoal, err := service.goals.FindLatestByUser(userID)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrGoalLoadFailed, err)
			}
			if hasGoal {
				targets = targetsFromGoal(goal)
			}
		}
		entry = newLedgerEntry(userID, today, targets)
	}

	entry.Streak = streak
	entry.StreakCounted = true
	if found {
		err = service.ledger.Save(&entry)
	} else {
		err = service.ledger.Create(&entry)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLedgerSaveFailed, err)
	}

	if service.rewards != nil {
		if _, err := service.rewards.AwardXP(userID, models.XPReasonStreakDay, models.StreakDayXP); err != nil {
			service.runtime.Logger.WithField("user_id", userID).WithError(err).Warn("streak reward failed")
		}
	}
	return &streak, nil
}
