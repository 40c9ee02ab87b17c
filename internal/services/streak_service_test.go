package services

import (
	"errors"
	"testing"
	"time"

	"github.com/terraincognita07/fitledger/internal/models"
)

func newStreakFixture(now time.Time) (*StreakService, *ledgerRepositoryStub, *goalRepositoryStub, *xpAwarderStub, *fixedClock) {
	runtime, clock := testRuntime(now)
	ledger := newLedgerRepositoryStub()
	goals := newGoalRepositoryStub()
	rewards := &xpAwarderStub{}
	return NewStreakService(ledger, goals, rewards, runtime), ledger, goals, rewards, clock
}

func TestAdvanceStreakStartsAtOne(t *testing.T) {
	service, ledger, goals, rewards, _ := newStreakFixture(time.Date(2026, time.March, 2, 8, 0, 0, 0, time.UTC))
	_ = goals.Create(&models.UserGoal{UserID: 7, DailyCalories: 2265, ProteinG: 180, CarbG: 245, FatG: 63})

	count, err := service.AdvanceStreak(7)
	if err != nil {
		t.Fatalf("AdvanceStreak() unexpected error: %v", err)
	}
	if count == nil || *count != 1 {
		t.Fatalf("expected streak 1, got %v", count)
	}

	entry, ok := ledger.get(7, "2026-03-02")
	if !ok || !entry.StreakCounted || entry.Streak != 1 {
		t.Fatalf("expected counted row with streak 1, got %+v", entry)
	}
	if entry.CalorieBudget != 2265 || entry.RemainingCalories != 2265 {
		t.Fatalf("expected row seeded from goal, got %+v", entry)
	}
	if got := rewards.count(models.XPReasonStreakDay); got != 1 {
		t.Fatalf("expected one streak reward, got %d", got)
	}
}

func TestAdvanceStreakIsIdempotentPerDay(t *testing.T) {
	service, ledger, _, rewards, clock := newStreakFixture(time.Date(2026, time.March, 2, 8, 0, 0, 0, time.UTC))

	for attempt := 0; attempt < 3; attempt++ {
		count, err := service.AdvanceStreak(7)
		if err != nil {
			t.Fatalf("attempt %d unexpected error: %v", attempt, err)
		}
		if count == nil || *count != 1 {
			t.Fatalf("attempt %d expected streak 1, got %v", attempt, count)
		}
		clock.advance(time.Hour)
	}

	if ledger.creates != 1 || ledger.saves != 0 {
		t.Fatalf("expected a single write, got creates=%d saves=%d", ledger.creates, ledger.saves)
	}
	if got := rewards.count(models.XPReasonStreakDay); got != 1 {
		t.Fatalf("expected reward only once per day, got %d", got)
	}
}

func TestAdvanceStreakExtendsFromYesterday(t *testing.T) {
	service, ledger, _, _, _ := newStreakFixture(time.Date(2026, time.March, 2, 8, 0, 0, 0, time.UTC))
	ledger.put(models.DailyLedgerEntry{UserID: 7, LogDate: "2026-03-01", Streak: 6, StreakCounted: true})
	ledger.put(models.DailyLedgerEntry{UserID: 7, LogDate: "2026-03-02", CalorieBudget: 2265, ProteinG: 30})

	count, err := service.AdvanceStreak(7)
	if err != nil {
		t.Fatalf("AdvanceStreak() unexpected error: %v", err)
	}
	if count == nil || *count != 7 {
		t.Fatalf("expected streak 7, got %v", count)
	}

	entry, _ := ledger.get(7, "2026-03-02")
	if entry.ProteinG != 30 || entry.CalorieBudget != 2265 {
		t.Fatalf("expected existing totals kept, got %+v", entry)
	}
	if ledger.saves != 1 || ledger.creates != 0 {
		t.Fatalf("expected existing row saved, got creates=%d saves=%d", ledger.creates, ledger.saves)
	}
}

func TestAdvanceStreakResetsAfterGap(t *testing.T) {
	service, ledger, _, _, _ := newStreakFixture(time.Date(2026, time.March, 2, 8, 0, 0, 0, time.UTC))
	ledger.put(models.DailyLedgerEntry{UserID: 7, LogDate: "2026-02-28", Streak: 9, StreakCounted: true})
	ledger.put(models.DailyLedgerEntry{UserID: 7, LogDate: "2026-03-01", Streak: 0, StreakCounted: false})

	count, err := service.AdvanceStreak(7)
	if err != nil {
		t.Fatalf("AdvanceStreak() unexpected error: %v", err)
	}
	if count == nil || *count != 1 {
		t.Fatalf("expected streak reset to 1, got %v", count)
	}
}

func TestAdvanceStreakUsesLocalDay(t *testing.T) {
	location := time.FixedZone("UTC-8", -8*60*60)
	clock := &fixedClock{now: time.Date(2026, time.March, 2, 5, 0, 0, 0, time.UTC)}
	ledger := newLedgerRepositoryStub()
	ledger.put(models.DailyLedgerEntry{UserID: 7, LogDate: "2026-02-28", Streak: 2, StreakCounted: true})
	service := NewStreakService(ledger, nil, nil, Runtime{Clock: clock, Location: location})

	count, err := service.AdvanceStreak(7)
	if err != nil {
		t.Fatalf("AdvanceStreak() unexpected error: %v", err)
	}
	if count == nil || *count != 3 {
		t.Fatalf("expected local day 2026-03-01 to extend streak to 3, got %v", count)
	}
	if _, ok := ledger.get(7, "2026-03-01"); !ok {
		t.Fatal("expected row keyed by local date")
	}
}

func TestAdvanceStreakWithoutUser(t *testing.T) {
	service, ledger, _, _, _ := newStreakFixture(time.Date(2026, time.March, 2, 8, 0, 0, 0, time.UTC))

	count, err := service.AdvanceStreak(0)
	if err != nil || count != nil {
		t.Fatalf("expected nil result without user, got count=%v err=%v", count, err)
	}
	if ledger.finds != 0 {
		t.Fatalf("expected no storage access, got %d finds", ledger.finds)
	}
}

func TestAdvanceStreakStorageFailure(t *testing.T) {
	service, ledger, _, _, _ := newStreakFixture(time.Date(2026, time.March, 2, 8, 0, 0, 0, time.UTC))
	ledger.createErr = errStubStorage

	if _, err := service.AdvanceStreak(7); !errors.Is(err, ErrLedgerSaveFailed) {
		t.Fatalf("expected ErrLedgerSaveFailed, got %v", err)
	}
}
