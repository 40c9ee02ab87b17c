package services

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/terraincognita07/fitledger/internal/models"
)

const (
	MinRepsPerSet         = 1
	MaxRepsPerSet         = 30
	MaxExerciseNameLength = 80
)

var (
	ErrInvalidWorkoutSet = errors.New("invalid workout set")
	ErrWorkoutSaveFailed = errors.New("save workout set failed")
	ErrWorkoutLoadFailed = errors.New("load workout sets failed")
)

type WorkoutRepository interface {
	Create(set *models.WorkoutSet) error
	ListByUser(userID uint) ([]models.WorkoutSet, error)
}

type WorkoutSetInput struct {
	Exercise  string  `json:"exercise"`
	WeightLbs float64 `json:"weight_lbs"`
	Reps      int     `json:"reps"`
}

type PersonalRecord struct {
	Exercise           string  `json:"exercise"`
	EstimatedOneRepMax float64 `json:"estimated_one_rep_max"`
	WeightLbs          float64 `json:"weight_lbs"`
	Reps               int     `json:"reps"`
	PerformedOn        string  `json:"performed_on"`
}

// EstimateOneRepMax applies the Epley formula, rounded to 0.1. A single
// rep is its own max.
func EstimateOneRepMax(weight float64, reps int) (float64, error) {
	if !isPositiveFinite(weight) || reps < MinRepsPerSet || reps > MaxRepsPerSet {
		return 0, ErrInvalidWorkoutSet
	}
	if reps == 1 {
		return roundTenth(weight), nil
	}
	return roundTenth(weight * (1 + float64(reps)/30)), nil
}

func roundTenth(value float64) float64 {
	return math.Round(value*10) / 10
}

type StrengthService struct {
	workouts WorkoutRepository
	runtime  Runtime
}

func NewStrengthService(workouts WorkoutRepository, runtime Runtime) *StrengthService {
	return &StrengthService{workouts: workouts, runtime: runtime.withDefaults()}
}

func (service *StrengthService) LogSet(userID uint, input WorkoutSetInput) (models.WorkoutSet, error) {
	if userID == 0 {
		return models.WorkoutSet{}, ErrNotSignedIn
	}
	exercise := strings.TrimSpace(input.Exercise)
	if exercise == "" || utf8.RuneCountInString(exercise) > MaxExerciseNameLength {
		return models.WorkoutSet{}, ErrInvalidWorkoutSet
	}
	estimate, err := EstimateOneRepMax(input.WeightLbs, input.Reps)
	if err != nil {
		return models.WorkoutSet{}, err
	}

	now := service.runtime.now()
	set := models.WorkoutSet{
		UserID:             userID,
		Exercise:           exercise,
		WeightLbs:          input.WeightLbs,
		Reps:               input.Reps,
		EstimatedOneRepMax: estimate,
		PerformedOn:        service.runtime.dayKey(now),
		CreatedAt:          now.UTC(),
	}
	if err := service.workouts.Create(&set); err != nil {
		return models.WorkoutSet{}, fmt.Errorf("%w: %v", ErrWorkoutSaveFailed, err)
	}
	return set, nil
}

// PersonalRecords keeps the best estimated max per exercise. Exercise names
// are grouped case-insensitively and the earliest set wins a tie.
func (service *StrengthService) PersonalRecords(userID uint) ([]PersonalRecord, error) {
	if userID == 0 {
		return nil, ErrNotSignedIn
	}
	sets, err := service.workouts.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWorkoutLoadFailed, err)
	}

	best := make(map[string]PersonalRecord)
	for _, set := range sets {
		key := strings.ToLower(strings.TrimSpace(set.Exercise))
		current, ok := best[key]
		if ok && current.EstimatedOneRepMax >= set.EstimatedOneRepMax {
			continue
		}
		best[key] = PersonalRecord{
			Exercise:           set.Exercise,
			EstimatedOneRepMax: set.EstimatedOneRepMax,
			WeightLbs:          set.WeightLbs,
			Reps:               set.Reps,
			PerformedOn:        set.PerformedOn,
		}
	}

	records := make([]PersonalRecord, 0, len(best))
	for _, record := range best {
		records = append(records, record)
	}
	sort.Slice(records, func(i, j int) bool {
		return strings.ToLower(records[i].Exercise) < strings.ToLower(records[j].Exercise)
	})
	return records, nil
}
