package services

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/terraincognita07/fitledger/internal/models"
)

const (
	MaxFoodNameLength    = 120
	MaxFoodServingLength = 120
)

type FoodRepository interface {
	CountCreatedSince(userID uint, since time.Time) (int64, error)
	Create(item *models.FoodItem) error
	ListByUser(userID uint) ([]models.FoodItem, error)
	FindByUserAndName(userID uint, name string) (models.FoodItem, bool, error)
}

type FoodItemInput struct {
	Name     string `json:"name"`
	Serving  string `json:"serving"`
	ProteinG string `json:"protein_g"`
	CarbG    string `json:"carb_g"`
	FatG     string `json:"fat_g"`
}

type FoodCatalogService struct {
	foods   FoodRepository
	policy  RateLimitPolicy
	runtime Runtime
}

func NewFoodCatalogService(foods FoodRepository, policy RateLimitPolicy, runtime Runtime) *FoodCatalogService {
	return &FoodCatalogService{
		foods:   foods,
		policy:  policy,
		runtime: runtime.withDefaults(),
	}
}

func parseFoodItemInput(input FoodItemInput) (models.FoodItem, error) {
	name := strings.TrimSpace(input.Name)
	serving := strings.TrimSpace(input.Serving)
	if name == "" || serving == "" {
		return models.FoodItem{}, ErrIncompleteInput
	}
	if utf8.RuneCountInString(name) > MaxFoodNameLength || utf8.RuneCountInString(serving) > MaxFoodServingLength {
		return models.FoodItem{}, ErrInvalidFoodName
	}

	protein, err := ParseMacroValue(input.ProteinG)
	if err != nil {
		return models.FoodItem{}, err
	}
	carb, err := ParseMacroValue(input.CarbG)
	if err != nil {
		return models.FoodItem{}, err
	}
	fat, err := ParseMacroValue(input.FatG)
	if err != nil {
		return models.FoodItem{}, err
	}

	return models.FoodItem{
		Name:     name,
		Serving:  serving,
		ProteinG: protein,
		CarbG:    carb,
		FatG:     fat,
	}, nil
}

// AddFood saves a user-defined food. Only five items may be created per
// trailing hour.
func (service *FoodCatalogService) AddFood(userID uint, input FoodItemInput) (models.FoodItem, error) {
	if userID == 0 {
		return models.FoodItem{}, ErrNotSignedIn
	}

	item, err := parseFoodItemInput(input)
	if err != nil {
		return models.FoodItem{}, err
	}

	now := service.runtime.now()
	logger := service.runtime.Logger.WithField("user_id", userID)
	if err := service.policy.check(service.foods.CountCreatedSince, userID, now, logger, "food_create"); err != nil {
		return models.FoodItem{}, err
	}

	item.UserID = userID
	item.CreatedAt = now.UTC()
	if err := service.foods.Create(&item); err != nil {
		return models.FoodItem{}, fmt.Errorf("%w: %v", ErrFoodCreateFailed, err)
	}
	logger.WithField("food_id", item.ID).Info("food item added")
	return item, nil
}

func (service *FoodCatalogService) ListFoods(userID uint) ([]models.FoodItem, error) {
	if userID == 0 {
		return nil, ErrNotSignedIn
	}
	items, err := service.foods.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFoodLookupFailed, err)
	}
	return items, nil
}

func (service *FoodCatalogService) FindFoodByName(userID uint, name string) (models.FoodItem, error) {
	if userID == 0 {
		return models.FoodItem{}, ErrNotSignedIn
	}
	item, found, err := service.foods.FindByUserAndName(userID, strings.TrimSpace(name))
	if err != nil {
		return models.FoodItem{}, fmt.Errorf("%w: %v", ErrFoodLookupFailed, err)
	}
	if !found {
		return models.FoodItem{}, ErrFoodNotFound
	}
	return item, nil
}
