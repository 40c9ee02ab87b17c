package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/terraincognita07/fitledger/internal/models"
)

const (
	DefaultLeaderboardSize = 10
	MaxLeaderboardSize     = 100
	XPPerLevel             = 100
)

var (
	ErrInvalidXPAward    = errors.New("invalid xp award")
	ErrXPAwardFailed     = errors.New("award xp failed")
	ErrLeaderboardFailed = errors.New("load leaderboard failed")
	ErrProfileLoadFailed = errors.New("load profile failed")
	ErrProfileSaveFailed = errors.New("save profile failed")
)

type ProgressUserRepository interface {
	FindByID(userID uint) (models.User, error)
	UpdateDisplayName(userID uint, displayName string) error
	AddXP(userID uint, reason string, amount int, at time.Time) (int, error)
	ListTopByXP(limit int) ([]models.User, error)
	CountXPEvents(userID uint, reason string) (int64, error)
}

// oneTimeXPReasons are granted at most once per user.
var oneTimeXPReasons = map[string]bool{
	models.XPReasonFirstGoal: true,
}

type LeaderboardEntry struct {
	Rank        int    `json:"rank"`
	UserID      uint   `json:"user_id"`
	DisplayName string `json:"display_name"`
	XP          int    `json:"xp"`
	Level       int    `json:"level"`
}

type ProfileView struct {
	ID                 uint   `json:"id"`
	Email              string `json:"email"`
	DisplayName        string `json:"display_name"`
	XP                 int    `json:"xp"`
	Level              int    `json:"level"`
	MustChangePassword bool   `json:"must_change_password"`
}

type ProgressService struct {
	users   ProgressUserRepository
	runtime Runtime
}

func NewProgressService(users ProgressUserRepository, runtime Runtime) *ProgressService {
	return &ProgressService{users: users, runtime: runtime.withDefaults()}
}

func LevelForXP(xp int) int {
	if xp <= 0 {
		return 1
	}
	return xp/XPPerLevel + 1
}

func leaderboardName(user models.User) string {
	if user.DisplayName != "" {
		return user.DisplayName
	}
	return fmt.Sprintf("Athlete #%d", user.ID)
}

// AwardXP appends an award and returns the new running total. A one-time
// reason that was already granted leaves the total unchanged.
func (service *ProgressService) AwardXP(userID uint, reason string, amount int) (int, error) {
	if userID == 0 {
		return 0, ErrNotSignedIn
	}
	if reason == "" || amount <= 0 {
		return 0, ErrInvalidXPAward
	}
	if oneTimeXPReasons[reason] {
		granted, err := service.users.CountXPEvents(userID, reason)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrXPAwardFailed, err)
		}
		if granted > 0 {
			user, err := service.users.FindByID(userID)
			if err != nil {
				return 0, fmt.Errorf("%w: %v", ErrXPAwardFailed, err)
			}
			return user.XP, nil
		}
	}
	total, err := service.users.AddXP(userID, reason, amount, service.runtime.now())
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrXPAwardFailed, err)
	}
	service.runtime.Logger.WithField("user_id", userID).WithField("reason", reason).Debug("xp awarded")
	return total, nil
}

func (service *ProgressService) Leaderboard(limit int) ([]LeaderboardEntry, error) {
	switch {
	case limit <= 0:
		limit = DefaultLeaderboardSize
	case limit > MaxLeaderboardSize:
		limit = MaxLeaderboardSize
	}

	users, err := service.users.ListTopByXP(limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLeaderboardFailed, err)
	}
	entries := make([]LeaderboardEntry, 0, len(users))
	for index, user := range users {
		entries = append(entries, LeaderboardEntry{
			Rank:        index + 1,
			UserID:      user.ID,
			DisplayName: leaderboardName(user),
			XP:          user.XP,
			Level:       LevelForXP(user.XP),
		})
	}
	return entries, nil
}

func (service *ProgressService) Profile(userID uint) (ProfileView, error) {
	if userID == 0 {
		return ProfileView{}, ErrNotSignedIn
	}
	user, err := service.users.FindByID(userID)
	if err != nil {
		return ProfileView{}, fmt.Errorf("%w: %v", ErrProfileLoadFailed, err)
	}
	return ProfileView{
		ID:                 user.ID,
		Email:              user.Email,
		DisplayName:        user.DisplayName,
		XP:                 user.XP,
		Level:              LevelForXP(user.XP),
		MustChangePassword: user.MustChangePassword,
	}, nil
}

func (service *ProgressService) UpdateDisplayName(userID uint, raw string) (ProfileView, error) {
	if userID == 0 {
		return ProfileView{}, ErrNotSignedIn
	}
	displayName, err := NormalizeDisplayName(raw)
	if err != nil {
		return ProfileView{}, err
	}
	if err := service.users.UpdateDisplayName(userID, displayName); err != nil {
		return ProfileView{}, fmt.Errorf("%w: %v", ErrProfileSaveFailed, err)
	}
	return service.Profile(userID)
}
