package services

import (
	"errors"
	"math"
	"strings"

	"github.com/terraincognita07/fitledger/internal/models"
)

const (
	BodyFatMethodNavy = "navy"
	BodyFatMethodArmy = "army"
	BodyFatMethodBMI  = "bmi"
)

var ErrInvalidBodyMeasurements = errors.New("invalid body measurements")

// BodyFatInput uses centimetres for the navy method and pounds plus
// inches for the army method. The bmi method reads height and weight.
type BodyFatInput struct {
	Method      string  `json:"method"`
	Sex         string  `json:"sex"`
	Age         int     `json:"age"`
	HeightCm    float64 `json:"height_cm"`
	WeightLbs   float64 `json:"weight_lbs"`
	NeckCm      float64 `json:"neck_cm"`
	WaistCm     float64 `json:"waist_cm"`
	HipCm       float64 `json:"hip_cm"`
	AbdomenInch float64 `json:"abdomen_in"`
}

type BodyFatEstimate struct {
	Method     string  `json:"method"`
	BodyFatPct float64 `json:"body_fat_pct"`
}

func EstimateBodyFat(input BodyFatInput) (BodyFatEstimate, error) {
	method := strings.ToLower(strings.TrimSpace(input.Method))
	sex := strings.ToLower(strings.TrimSpace(input.Sex))
	if sex != models.SexMale && sex != models.SexFemale {
		return BodyFatEstimate{}, ErrInvalidBodyMeasurements
	}

	var (
		percent float64
		err     error
	)
	switch method {
	case BodyFatMethodNavy:
		percent, err = navyBodyFat(sex, input)
	case BodyFatMethodArmy:
		percent, err = armyBodyFat(sex, input)
	case BodyFatMethodBMI:
		percent, err = deurenbergBodyFat(sex, input)
	default:
		return BodyFatEstimate{}, ErrInvalidBodyMeasurements
	}
	if err != nil {
		return BodyFatEstimate{}, err
	}
	if math.IsNaN(percent) || math.IsInf(percent, 0) || percent <= 0 || percent >= 100 {
		return BodyFatEstimate{}, ErrInvalidBodyMeasurements
	}
	return BodyFatEstimate{Method: method, BodyFatPct: roundTenth(percent)}, nil
}

func navyBodyFat(sex string, input BodyFatInput) (float64, error) {
	if !isPositiveFinite(input.HeightCm) || !isPositiveFinite(input.NeckCm) || !isPositiveFinite(input.WaistCm) {
		return 0, ErrInvalidBodyMeasurements
	}
	if sex == models.SexMale {
		circumference := input.WaistCm - input.NeckCm
		if circumference <= 0 {
			return 0, ErrInvalidBodyMeasurements
		}
		return 495/(1.0324-0.19077*math.Log10(circumference)+0.15456*math.Log10(input.HeightCm)) - 450, nil
	}

	if !isPositiveFinite(input.HipCm) {
		return 0, ErrInvalidBodyMeasurements
	}
	circumference := input.WaistCm + input.HipCm - input.NeckCm
	if circumference <= 0 {
		return 0, ErrInvalidBodyMeasurements
	}
	return 495/(1.29579-0.35004*math.Log10(circumference)+0.22100*math.Log10(input.HeightCm)) - 450, nil
}

// armyBodyFat is the one-site abdominal tape equation.
func armyBodyFat(sex string, input BodyFatInput) (float64, error) {
	if !isPositiveFinite(input.WeightLbs) || !isPositiveFinite(input.AbdomenInch) {
		return 0, ErrInvalidBodyMeasurements
	}
	if sex == models.SexMale {
		return -26.97 - 0.12*input.WeightLbs + 1.99*input.AbdomenInch, nil
	}
	return -9.15 - 0.015*input.WeightLbs + 1.27*input.AbdomenInch, nil
}

func deurenbergBodyFat(sex string, input BodyFatInput) (float64, error) {
	if input.Age <= 0 {
		return 0, ErrInvalidBodyMeasurements
	}
	bmi, err := CalculateBMI(input.HeightCm, input.WeightLbs*kilogramsPerPound)
	if err != nil {
		return 0, err
	}
	sexFactor := 0.0
	if sex == models.SexMale {
		sexFactor = 1
	}
	return 1.20*bmi + 0.23*float64(input.Age) - 10.8*sexFactor - 5.4, nil
}

// CalculateBMI expects height in centimetres and weight in kilograms.
func CalculateBMI(heightCm float64, weightKg float64) (float64, error) {
	if !isPositiveFinite(heightCm) || !isPositiveFinite(weightKg) {
		return 0, ErrInvalidBodyMeasurements
	}
	if heightCm < 50 || heightCm > 250 || weightKg < 10 || weightKg > 400 {
		return 0, ErrInvalidBodyMeasurements
	}
	meters := heightCm / 100
	return weightKg / (meters * meters), nil
}

func BMICategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return "Underweight"
	case bmi < 25.0:
		return "Normal weight"
	case bmi < 30.0:
		return "Overweight"
	case bmi < 35.0:
		return "Obesity class I"
	case bmi < 40.0:
		return "Obesity class II"
	default:
		return "Obesity class III"
	}
}

type BMIResult struct {
	BMI      float64 `json:"bmi"`
	Category string  `json:"category"`
}

// BMIFromImperial takes the same units as the goal quiz.
func BMIFromImperial(heightCm float64, weightLbs float64) (BMIResult, error) {
	bmi, err := CalculateBMI(heightCm, weightLbs*kilogramsPerPound)
	if err != nil {
		return BMIResult{}, err
	}
	return BMIResult{BMI: roundTenth(bmi), Category: BMICategory(bmi)}, nil
}
