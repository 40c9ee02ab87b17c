package services

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/terraincognita07/fitledger/internal/models"
	"gorm.io/gorm"
)

var errStubStorage = errors.New("storage unavailable")

type fixedClock struct {
	now time.Time
}

func (clock *fixedClock) Now() time.Time {
	return clock.now
}

func (clock *fixedClock) advance(step time.Duration) {
	clock.now = clock.now.Add(step)
}

func testRuntime(now time.Time) (Runtime, *fixedClock) {
	clock := &fixedClock{now: now}
	return Runtime{Clock: clock, Location: time.UTC}, clock
}

type goalRepositoryStub struct {
	goals     []models.UserGoal
	nextID    uint
	findErr   error
	createErr error
	saveErr   error
	creates   int
	saves     int
}

func newGoalRepositoryStub() *goalRepositoryStub {
	return &goalRepositoryStub{nextID: 1}
}

func (stub *goalRepositoryStub) FindLatestByUser(userID uint) (models.UserGoal, bool, error) {
	if stub.findErr != nil {
		return models.UserGoal{}, false, stub.findErr
	}
	for index := len(stub.goals) - 1; index >= 0; index-- {
		if stub.goals[index].UserID == userID {
			return stub.goals[index], true, nil
		}
	}
	return models.UserGoal{}, false, nil
}

func (stub *goalRepositoryStub) Create(goal *models.UserGoal) error {
	if stub.createErr != nil {
		return stub.createErr
	}
	goal.ID = stub.nextID
	stub.nextID++
	stub.creates++
	stub.goals = append(stub.goals, *goal)
	return nil
}

func (stub *goalRepositoryStub) Save(goal *models.UserGoal) error {
	if stub.saveErr != nil {
		return stub.saveErr
	}
	stub.saves++
	for index := range stub.goals {
		if stub.goals[index].ID == goal.ID {
			stub.goals[index] = *goal
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type goalChangeRepositoryStub struct {
	events    []models.GoalChangeEvent
	countErr  error
	createErr error
	counts    int
}

func (stub *goalChangeRepositoryStub) CountSince(userID uint, since time.Time) (int64, error) {
	stub.counts++
	if stub.countErr != nil {
		return 0, stub.countErr
	}
	var count int64
	for _, event := range stub.events {
		if event.UserID == userID && !event.CreatedAt.Before(since) {
			count++
		}
	}
	return count, nil
}

func (stub *goalChangeRepositoryStub) Create(event *models.GoalChangeEvent) error {
	if stub.createErr != nil {
		return stub.createErr
	}
	event.ID = uint(len(stub.events) + 1)
	stub.events = append(stub.events, *event)
	return nil
}

type ledgerKey struct {
	userID  uint
	logDate string
}

type ledgerRepositoryStub struct {
	entries   map[ledgerKey]models.DailyLedgerEntry
	nextID    uint
	findErr   error
	createErr error
	saveErr   error
	finds     int
	creates   int
	saves     int

	// failFindAfter makes every lookup after the given count fail.
	failFindAfter int
}

func newLedgerRepositoryStub() *ledgerRepositoryStub {
	return &ledgerRepositoryStub{
		entries: make(map[ledgerKey]models.DailyLedgerEntry),
		nextID:  1,
	}
}

func (stub *ledgerRepositoryStub) put(entry models.DailyLedgerEntry) {
	if entry.ID == 0 {
		entry.ID = stub.nextID
		stub.nextID++
	}
	stub.entries[ledgerKey{userID: entry.UserID, logDate: entry.LogDate}] = entry
}

func (stub *ledgerRepositoryStub) get(userID uint, logDate string) (models.DailyLedgerEntry, bool) {
	entry, ok := stub.entries[ledgerKey{userID: userID, logDate: logDate}]
	return entry, ok
}

func (stub *ledgerRepositoryStub) FindByUserAndDate(userID uint, logDate string) (models.DailyLedgerEntry, bool, error) {
	stub.finds++
	if stub.findErr != nil {
		return models.DailyLedgerEntry{}, false, stub.findErr
	}
	if stub.failFindAfter > 0 && stub.finds > stub.failFindAfter {
		return models.DailyLedgerEntry{}, false, errStubStorage
	}
	entry, ok := stub.get(userID, logDate)
	return entry, ok, nil
}

func (stub *ledgerRepositoryStub) ListByUserDateRange(userID uint, from string, to string) ([]models.DailyLedgerEntry, error) {
	if stub.findErr != nil {
		return nil, stub.findErr
	}
	entries := make([]models.DailyLedgerEntry, 0)
	for key, entry := range stub.entries {
		if key.userID != userID {
			continue
		}
		if from != "" && key.logDate < from {
			continue
		}
		if to != "" && key.logDate > to {
			continue
		}
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].LogDate < entries[j].LogDate
	})
	return entries, nil
}

func (stub *ledgerRepositoryStub) Create(entry *models.DailyLedgerEntry) error {
	if stub.createErr != nil {
		return stub.createErr
	}
	if _, exists := stub.get(entry.UserID, entry.LogDate); exists {
		return errors.New("UNIQUE constraint failed: daily_ledger_entries.user_id, daily_ledger_entries.log_date")
	}
	stub.creates++
	entry.ID = stub.nextID
	stub.nextID++
	stub.put(*entry)
	return nil
}

func (stub *ledgerRepositoryStub) Save(entry *models.DailyLedgerEntry) error {
	if stub.saveErr != nil {
		return stub.saveErr
	}
	stub.saves++
	stub.put(*entry)
	return nil
}

type foodRepositoryStub struct {
	items     []models.FoodItem
	countErr  error
	createErr error
	findErr   error
}

func (stub *foodRepositoryStub) CountCreatedSince(userID uint, since time.Time) (int64, error) {
	if stub.countErr != nil {
		return 0, stub.countErr
	}
	var count int64
	for _, item := range stub.items {
		if item.UserID == userID && !item.CreatedAt.Before(since) {
			count++
		}
	}
	return count, nil
}

func (stub *foodRepositoryStub) Create(item *models.FoodItem) error {
	if stub.createErr != nil {
		return stub.createErr
	}
	item.ID = uint(len(stub.items) + 1)
	stub.items = append(stub.items, *item)
	return nil
}

func (stub *foodRepositoryStub) ListByUser(userID uint) ([]models.FoodItem, error) {
	items := make([]models.FoodItem, 0)
	for _, item := range stub.items {
		if item.UserID == userID {
			items = append(items, item)
		}
	}
	return items, nil
}

func (stub *foodRepositoryStub) FindByUserAndName(userID uint, name string) (models.FoodItem, bool, error) {
	if stub.findErr != nil {
		return models.FoodItem{}, false, stub.findErr
	}
	normalized := strings.ToLower(strings.TrimSpace(name))
	for index := len(stub.items) - 1; index >= 0; index-- {
		item := stub.items[index]
		if item.UserID == userID && strings.ToLower(item.Name) == normalized {
			return item, true, nil
		}
	}
	return models.FoodItem{}, false, nil
}

type xpAwarderStub struct {
	awards []models.XPEvent
	err    error
}

func (stub *xpAwarderStub) AwardXP(userID uint, reason string, amount int) (int, error) {
	if stub.err != nil {
		return 0, stub.err
	}
	stub.awards = append(stub.awards, models.XPEvent{UserID: userID, Reason: reason, Amount: amount})
	total := 0
	for _, award := range stub.awards {
		if award.UserID == userID {
			total += award.Amount
		}
	}
	return total, nil
}

func (stub *xpAwarderStub) count(reason string) int {
	matched := 0
	for _, award := range stub.awards {
		if award.Reason == reason {
			matched++
		}
	}
	return matched
}

type streakAdvancerStub struct {
	calls int
	count *int
	err   error
}

func (stub *streakAdvancerStub) AdvanceStreak(userID uint) (*int, error) {
	stub.calls++
	return stub.count, stub.err
}
