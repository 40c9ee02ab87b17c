package services

import "errors"

var (
	ErrNotSignedIn        = errors.New("not signed in")
	ErrRateLimited        = errors.New("rate limited")
	ErrQuizIncomplete     = errors.New("quiz incomplete")
	ErrIncompleteInput    = errors.New("incomplete input")
	ErrInvalidMacroNumber = errors.New("invalid number")
	ErrGoalsNotSet        = errors.New("set goals first")
	ErrGoalInfeasible     = errors.New("goal infeasible")
	ErrFoodNotFound       = errors.New("food not found")
	ErrInvalidFoodName    = errors.New("invalid food name")
	ErrInvalidServings    = errors.New("invalid servings")
	ErrInvalidDateRange   = errors.New("invalid date range")
)

var (
	ErrGoalLoadFailed   = errors.New("load goal failed")
	ErrGoalSaveFailed   = errors.New("save goal failed")
	ErrLedgerLoadFailed = errors.New("load ledger failed")
	ErrLedgerSaveFailed = errors.New("save ledger failed")
	ErrFoodLookupFailed = errors.New("food lookup failed")
	ErrFoodCreateFailed = errors.New("create food failed")
	ErrRateProbeFailed  = errors.New("rate limit probe failed")
)
