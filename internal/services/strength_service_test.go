package services

import (
	"errors"
	"testing"
	"time"

	"github.com/terraincognita07/fitledger/internal/models"
)

type workoutRepositoryStub struct {
	sets      []models.WorkoutSet
	createErr error
}

func (stub *workoutRepositoryStub) Create(set *models.WorkoutSet) error {
	if stub.createErr != nil {
		return stub.createErr
	}
	set.ID = uint(len(stub.sets) + 1)
	stub.sets = append(stub.sets, *set)
	return nil
}

func (stub *workoutRepositoryStub) ListByUser(userID uint) ([]models.WorkoutSet, error) {
	sets := make([]models.WorkoutSet, 0)
	for _, set := range stub.sets {
		if set.UserID == userID {
			sets = append(sets, set)
		}
	}
	return sets, nil
}

func TestEstimateOneRepMax(t *testing.T) {
	tests := []struct {
		name   string
		weight float64
		reps   int
		want   float64
	}{
		{name: "single", weight: 315, reps: 1, want: 315},
		{name: "five reps", weight: 225, reps: 5, want: 262.5},
		{name: "ten reps", weight: 100, reps: 10, want: 133.3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EstimateOneRepMax(tt.weight, tt.reps)
			if err != nil {
				t.Fatalf("EstimateOneRepMax() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("EstimateOneRepMax(%v, %d) = %v, want %v", tt.weight, tt.reps, got, tt.want)
			}
		})
	}

	for _, reps := range []int{0, 31} {
		if _, err := EstimateOneRepMax(100, reps); !errors.Is(err, ErrInvalidWorkoutSet) {
			t.Fatalf("expected ErrInvalidWorkoutSet for %d reps, got %v", reps, err)
		}
	}
	if _, err := EstimateOneRepMax(0, 5); !errors.Is(err, ErrInvalidWorkoutSet) {
		t.Fatalf("expected ErrInvalidWorkoutSet for zero weight, got %v", err)
	}
}

func TestPersonalRecordsKeepsBestPerExercise(t *testing.T) {
	runtime, clock := testRuntime(time.Date(2026, time.March, 2, 18, 0, 0, 0, time.UTC))
	workouts := &workoutRepositoryStub{}
	service := NewStrengthService(workouts, runtime)

	logs := []WorkoutSetInput{
		{Exercise: "Bench Press", WeightLbs: 185, Reps: 5},
		{Exercise: "bench press", WeightLbs: 205, Reps: 3},
		{Exercise: "Squat", WeightLbs: 275, Reps: 5},
	}
	for _, input := range logs {
		if _, err := service.LogSet(7, input); err != nil {
			t.Fatalf("LogSet(%+v) unexpected error: %v", input, err)
		}
		clock.advance(24 * time.Hour)
	}

	records, err := service.PersonalRecords(7)
	if err != nil {
		t.Fatalf("PersonalRecords() unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 exercises, got %+v", records)
	}
	if records[0].Exercise != "bench press" || records[0].EstimatedOneRepMax != 225.5 || records[0].PerformedOn != "2026-03-03" {
		t.Fatalf("unexpected bench record %+v", records[0])
	}
	if records[1].Exercise != "Squat" || records[1].EstimatedOneRepMax != 320.8 {
		t.Fatalf("unexpected squat record %+v", records[1])
	}
}

func TestLogSetRejectsInvalidInput(t *testing.T) {
	runtime, _ := testRuntime(time.Date(2026, time.March, 2, 18, 0, 0, 0, time.UTC))
	workouts := &workoutRepositoryStub{}
	service := NewStrengthService(workouts, runtime)

	if _, err := service.LogSet(7, WorkoutSetInput{Exercise: " ", WeightLbs: 100, Reps: 5}); !errors.Is(err, ErrInvalidWorkoutSet) {
		t.Fatalf("expected ErrInvalidWorkoutSet, got %v", err)
	}
	if _, err := service.LogSet(0, WorkoutSetInput{Exercise: "Row", WeightLbs: 100, Reps: 5}); !errors.Is(err, ErrNotSignedIn) {
		t.Fatalf("expected ErrNotSignedIn, got %v", err)
	}
	if len(workouts.sets) != 0 {
		t.Fatal("expected nothing stored")
	}
}
