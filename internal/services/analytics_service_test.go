package services

import (
	"context"
	"testing"
	"time"

	"homebudget/internal/money"
	"homebudget/internal/period"
	"homebudget/internal/testutil"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestSummary(t *testing.T) {
	ctx := context.Background()
	clock := fixedClock(time.Date(2025, time.May, 15, 12, 0, 0, 0, time.UTC))

	t.Run("last_month_breakdown", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAnalyticsService(db, clock)
		user := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)
		food := testutil.CreateTestCategoryNamed(t, db, "food")
		car := testutil.CreateTestCategoryNamed(t, db, "car")

		april := time.Date(2025, time.April, 10, 8, 0, 0, 0, time.UTC)
		testutil.CreateTestExpense(t, db, user.ID, &food.ID, "30", april)
		testutil.CreateTestExpense(t, db, user.ID, &food.ID, "20", april.AddDate(0, 0, 1))
		testutil.CreateTestExpense(t, db, user.ID, &car.ID, "30", april.AddDate(0, 0, 2))
		testutil.CreateTestExpense(t, db, user.ID, nil, "5", april.AddDate(0, 0, 3))
		testutil.CreateTestIncome(t, db, user.ID, "salary", "1500", april)
		testutil.CreateTestIncome(t, db, user.ID, "gift", "20", april)
		// out of range or other users
		testutil.CreateTestExpense(t, db, user.ID, &food.ID, "1000", time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC))
		testutil.CreateTestExpense(t, db, other.ID, &food.ID, "777", april)

		s, err := svc.Summary(ctx, user.ID, period.Query{Name: "last_month"})
		testutil.AssertNoError(t, err)

		if s.Period.Name != "last_month" {
			t.Errorf("expected period last_month, got %s", s.Period.Name)
		}
		if !s.Period.From.Equal(time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("unexpected period start %s", s.Period.From)
		}
		if s.Totals.Spent != money.MustParse("85") || s.Totals.Earned != money.MustParse("1520") {
			t.Errorf("expected spent 85 earned 1520, got %s / %s", s.Totals.Spent, s.Totals.Earned)
		}
		if s.Totals.Net != money.MustParse("1435") {
			t.Errorf("expected net 1435, got %s", s.Totals.Net)
		}
		if s.Totals.CountExpenses != 4 {
			t.Errorf("expected 4 expenses, got %d", s.Totals.CountExpenses)
		}

		wantCats := []CategoryTotal{
			{Category: "food", Total: money.MustParse("50")},
			{Category: "car", Total: money.MustParse("30")},
			{Category: Uncategorized, Total: money.MustParse("5")},
		}
		if len(s.ByCategory) != len(wantCats) {
			t.Fatalf("expected %d categories, got %+v", len(wantCats), s.ByCategory)
		}
		for i, want := range wantCats {
			if s.ByCategory[i] != want {
				t.Errorf("by_category[%d]: expected %+v, got %+v", i, want, s.ByCategory[i])
			}
		}

		if len(s.BySource) != 2 || s.BySource[0].Source != "salary" || s.BySource[1].Source != "gift" {
			t.Errorf("unexpected by_source: %+v", s.BySource)
		}

		// Fixtures bypass the ledger, so the balance stays at the opening 1000.
		if s.Account.CurrentBalance != money.MustParse("1000") {
			t.Errorf("expected balance 1000, got %s", s.Account.CurrentBalance)
		}
		if s.Account.LifetimeSpent != money.MustParse("1085") || s.Account.LifetimeEarned != money.MustParse("1520") {
			t.Errorf("unexpected lifetime figures: %+v", s.Account)
		}
		if s.Account.InitialEstimate != money.MustParse("565") {
			t.Errorf("expected initial estimate 565, got %s", s.Account.InitialEstimate)
		}
	})

	t.Run("ties_ordered_by_label", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAnalyticsService(db, clock)
		user := testutil.CreateTestUser(t, db)
		b := testutil.CreateTestCategoryNamed(t, db, "beta")
		a := testutil.CreateTestCategoryNamed(t, db, "alpha")

		at := time.Date(2025, time.May, 2, 0, 0, 0, 0, time.UTC)
		testutil.CreateTestExpense(t, db, user.ID, &b.ID, "10", at)
		testutil.CreateTestExpense(t, db, user.ID, &a.ID, "10", at)

		s, err := svc.Summary(ctx, user.ID, period.Query{Name: "this_month"})
		testutil.AssertNoError(t, err)
		if len(s.ByCategory) != 2 || s.ByCategory[0].Category != "alpha" {
			t.Errorf("expected alpha before beta, got %+v", s.ByCategory)
		}
	})

	t.Run("boundaries_are_inclusive", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAnalyticsService(db, clock)
		user := testutil.CreateTestUser(t, db)

		testutil.CreateTestExpense(t, db, user.ID, nil, "1", time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC))
		testutil.CreateTestExpense(t, db, user.ID, nil, "2", time.Date(2025, time.April, 30, 23, 59, 59, 999999000, time.UTC))
		testutil.CreateTestExpense(t, db, user.ID, nil, "4", time.Date(2025, time.March, 31, 23, 59, 59, 999999000, time.UTC))
		testutil.CreateTestExpense(t, db, user.ID, nil, "8", time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC))

		s, err := svc.Summary(ctx, user.ID, period.Query{Name: "last_month"})
		testutil.AssertNoError(t, err)
		if s.Totals.Spent != money.MustParse("3") {
			t.Errorf("expected only both April boundary records (3), got %s", s.Totals.Spent)
		}
	})

	t.Run("custom_range_covers_whole_end_day", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAnalyticsService(db, clock)
		user := testutil.CreateTestUser(t, db)

		testutil.CreateTestIncome(t, db, user.ID, "salary", "100", time.Date(2025, time.March, 10, 18, 0, 0, 0, time.UTC))
		from := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)

		s, err := svc.Summary(ctx, user.ID, period.Query{Name: "this_month", From: &from, To: &to})
		testutil.AssertNoError(t, err)
		if s.Period.Name != "custom" || s.Totals.Earned != money.MustParse("100") {
			t.Errorf("expected custom range earning 100, got %s / %s", s.Period.Name, s.Totals.Earned)
		}
	})

	t.Run("empty_period", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAnalyticsService(db, clock)
		user := testutil.CreateTestUser(t, db)

		s, err := svc.Summary(ctx, user.ID, period.Query{})
		testutil.AssertNoError(t, err)
		if s.Totals.Spent != 0 || s.Totals.Earned != 0 || s.Totals.CountExpenses != 0 {
			t.Errorf("expected zero totals, got %+v", s.Totals)
		}
		if s.ByCategory == nil || s.BySource == nil {
			t.Error("breakdowns should be empty slices, not nil")
		}
		if s.Account.InitialEstimate != money.MustParse("1000") {
			t.Errorf("expected initial estimate 1000, got %s", s.Account.InitialEstimate)
		}
	})

	t.Run("errors", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAnalyticsService(db, clock)
		user := testutil.CreateTestUser(t, db)
		from := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)

		_, err := svc.Summary(ctx, user.ID, period.Query{Name: "fortnight"})
		testutil.AssertAppError(t, err, "INVALID_PERIOD")

		_, err = svc.Summary(ctx, user.ID, period.Query{From: &from})
		testutil.AssertAppError(t, err, "INVALID_RANGE")

		_, err = svc.Summary(ctx, "00000000-0000-0000-0000-000000000000", period.Query{})
		testutil.AssertAppError(t, err, "USER_NOT_FOUND")
	})
}
