package services

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func yogurtInput() FoodItemInput {
	return FoodItemInput{Name: "Greek Yogurt", Serving: "170 g", ProteinG: "17", CarbG: "6", FatG: "0"}
}

func TestAddFoodRateLimit(t *testing.T) {
	runtime, clock := testRuntime(time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC))
	foods := &foodRepositoryStub{}
	service := NewFoodCatalogService(foods, FoodCatalogPolicy(false), runtime)

	for attempt := 1; attempt <= FoodCatalogLimit; attempt++ {
		if _, err := service.AddFood(7, yogurtInput()); err != nil {
			t.Fatalf("food %d unexpected error: %v", attempt, err)
		}
		clock.advance(5 * time.Minute)
	}

	if _, err := service.AddFood(7, yogurtInput()); !errors.Is(err, ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited for food %d, got %v", FoodCatalogLimit+1, err)
	}
	if len(foods.items) != FoodCatalogLimit {
		t.Fatalf("expected %d stored foods, got %d", FoodCatalogLimit, len(foods.items))
	}

	clock.advance(40 * time.Minute)
	if _, err := service.AddFood(7, yogurtInput()); err != nil {
		t.Fatalf("expected oldest insert to have aged out, got %v", err)
	}
}

func TestAddFoodProbeFailureFailsOpen(t *testing.T) {
	runtime, _ := testRuntime(time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC))
	foods := &foodRepositoryStub{countErr: errStubStorage}
	service := NewFoodCatalogService(foods, FoodCatalogPolicy(false), runtime)

	item, err := service.AddFood(7, yogurtInput())
	if err != nil {
		t.Fatalf("AddFood() unexpected error: %v", err)
	}
	if item.ID == 0 || item.UserID != 7 || item.ProteinG != 17 {
		t.Fatalf("unexpected stored item %+v", item)
	}
}

func TestAddFoodValidation(t *testing.T) {
	tests := []struct {
		name    string
		userID  uint
		mutate  func(*FoodItemInput)
		wantErr error
	}{
		{name: "not signed in", userID: 0, mutate: func(*FoodItemInput) {}, wantErr: ErrNotSignedIn},
		{name: "blank name", userID: 7, mutate: func(input *FoodItemInput) { input.Name = "  " }, wantErr: ErrIncompleteInput},
		{name: "blank serving", userID: 7, mutate: func(input *FoodItemInput) { input.Serving = "" }, wantErr: ErrIncompleteInput},
		{name: "long name", userID: 7, mutate: func(input *FoodItemInput) { input.Name = strings.Repeat("a", MaxFoodNameLength+1) }, wantErr: ErrInvalidFoodName},
		{name: "missing fat", userID: 7, mutate: func(input *FoodItemInput) { input.FatG = "" }, wantErr: ErrIncompleteInput},
		{name: "negative carbs", userID: 7, mutate: func(input *FoodItemInput) { input.CarbG = "-1" }, wantErr: ErrInvalidMacroNumber},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runtime, _ := testRuntime(time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC))
			foods := &foodRepositoryStub{countErr: errStubStorage}
			service := NewFoodCatalogService(foods, FoodCatalogPolicy(true), runtime)

			input := yogurtInput()
			tt.mutate(&input)
			if _, err := service.AddFood(tt.userID, input); !errors.Is(err, tt.wantErr) {
				t.Fatalf("AddFood() error = %v, want %v", err, tt.wantErr)
			}
			if len(foods.items) != 0 {
				t.Fatal("expected nothing stored")
			}
		})
	}
}

func TestFindFoodByName(t *testing.T) {
	runtime, _ := testRuntime(time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC))
	foods := &foodRepositoryStub{}
	service := NewFoodCatalogService(foods, FoodCatalogPolicy(false), runtime)
	if _, err := service.AddFood(7, yogurtInput()); err != nil {
		t.Fatalf("AddFood() unexpected error: %v", err)
	}

	item, err := service.FindFoodByName(7, "GREEK YOGURT")
	if err != nil {
		t.Fatalf("FindFoodByName() unexpected error: %v", err)
	}
	if item.Serving != "170 g" {
		t.Fatalf("unexpected item %+v", item)
	}
	if _, err := service.FindFoodByName(8, "Greek Yogurt"); !errors.Is(err, ErrFoodNotFound) {
		t.Fatalf("expected other user's catalog to be separate, got %v", err)
	}

	items, err := service.ListFoods(7)
	if err != nil || len(items) != 1 {
		t.Fatalf("ListFoods() = %v, %v", items, err)
	}
}
