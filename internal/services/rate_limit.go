package services

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	GoalChangeLimit  = 25
	FoodCatalogLimit = 5
	RateLimitWindow  = time.Hour
)

// RateLimitPolicy bounds how many rows a user may create inside a trailing
// window. When the count query fails the action is allowed unless
// FailClosed is set.
type RateLimitPolicy struct {
	Limit      int
	Window     time.Duration
	FailClosed bool
}

func GoalChangePolicy(failClosed bool) RateLimitPolicy {
	return RateLimitPolicy{Limit: GoalChangeLimit, Window: RateLimitWindow, FailClosed: failClosed}
}

func FoodCatalogPolicy(failClosed bool) RateLimitPolicy {
	return RateLimitPolicy{Limit: FoodCatalogLimit, Window: RateLimitWindow, FailClosed: failClosed}
}

type windowCounter func(userID uint, since time.Time) (int64, error)

func (policy RateLimitPolicy) check(count windowCounter, userID uint, now time.Time, logger logrus.FieldLogger, action string) error {
	if policy.Limit <= 0 {
		return nil
	}

	recent, err := count(userID, now.Add(-policy.Window))
	if err != nil {
		if policy.FailClosed {
			return fmt.Errorf("%w: %v", ErrRateProbeFailed, err)
		}
		logger.WithFields(logrus.Fields{
			"user_id": userID,
			"action":  action,
		}).WithError(err).Warn("rate limit probe failed, allowing action")
		return nil
	}

	if recent >= int64(policy.Limit) {
		return ErrRateLimited
	}
	return nil
}
