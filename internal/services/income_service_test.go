package services

import (
	"context"
	"testing"
	"time"

	"homebudget/internal/money"
	"homebudget/internal/pagination"
	"homebudget/internal/testutil"
)

func TestCreateIncome(t *testing.T) {
	ctx := context.Background()

	t.Run("credits_balance", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewIncomeService(db)
		user := testutil.CreateTestUser(t, db)

		income, err := svc.CreateIncome(ctx, user.ID, IncomeInput{Description: "salary", Amount: money.MustParse("1500")})
		testutil.AssertNoError(t, err)

		if income.ID == "" || income.UserID != user.ID {
			t.Fatalf("unexpected income: %+v", income)
		}
		testutil.AssertBalance(t, db, user.ID, "2500.00")
		testutil.AssertLedgerInvariant(t, db, user.ID)
	})

	t.Run("non_positive_amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewIncomeService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateIncome(ctx, user.ID, IncomeInput{Description: "refund", Amount: money.MustParse("-1")})
		testutil.AssertAppError(t, err, "VALIDATION_ERROR")
		testutil.AssertBalance(t, db, user.ID, "1000.00")
	})
}

func TestUpdateIncome(t *testing.T) {
	ctx := context.Background()

	t.Run("balance_moves_by_new_minus_old", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewIncomeService(db)
		user := testutil.CreateTestUser(t, db)

		income, err := svc.CreateIncome(ctx, user.ID, IncomeInput{Description: "salary", Amount: money.MustParse("1500")})
		testutil.AssertNoError(t, err)

		updated, err := svc.UpdateIncome(ctx, user.ID, income.ID, IncomeInput{Description: "bonus", Amount: money.MustParse("1200.50")})
		testutil.AssertNoError(t, err)

		if updated.Description != "bonus" || updated.Amount != money.MustParse("1200.50") {
			t.Errorf("unexpected updated income: %+v", updated)
		}
		// 1000 + 1500 + (1200.50 - 1500)
		testutil.AssertBalance(t, db, user.ID, "2200.50")
		testutil.AssertLedgerInvariant(t, db, user.ID)
	})

	t.Run("not_owned", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewIncomeService(db)
		owner := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)

		income, err := svc.CreateIncome(ctx, owner.ID, IncomeInput{Description: "salary", Amount: money.MustParse("100")})
		testutil.AssertNoError(t, err)

		_, err = svc.UpdateIncome(ctx, other.ID, income.ID, IncomeInput{Description: "salary", Amount: money.MustParse("1")})
		testutil.AssertAppError(t, err, "INCOME_NOT_FOUND")
		testutil.AssertBalance(t, db, owner.ID, "1100.00")
	})

	t.Run("invalid_amount_changes_nothing", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewIncomeService(db)
		user := testutil.CreateTestUser(t, db)

		income, err := svc.CreateIncome(ctx, user.ID, IncomeInput{Description: "salary", Amount: money.MustParse("100")})
		testutil.AssertNoError(t, err)

		_, err = svc.UpdateIncome(ctx, user.ID, income.ID, IncomeInput{Description: "x", Amount: 0})
		testutil.AssertAppError(t, err, "VALIDATION_ERROR")

		reloaded, err := svc.GetIncomeByID(ctx, user.ID, income.ID)
		testutil.AssertNoError(t, err)
		if reloaded.Description != "salary" {
			t.Errorf("income should be unchanged, got %+v", reloaded)
		}
		testutil.AssertBalance(t, db, user.ID, "1100.00")
	})
}

func TestDeleteIncome(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewIncomeService(db)
	user := testutil.CreateTestUser(t, db)

	income, err := svc.CreateIncome(ctx, user.ID, IncomeInput{Description: "salary", Amount: money.MustParse("1500")})
	testutil.AssertNoError(t, err)

	testutil.AssertNoError(t, svc.DeleteIncome(ctx, user.ID, income.ID))
	testutil.AssertBalance(t, db, user.ID, "1000.00")

	err = svc.DeleteIncome(ctx, user.ID, income.ID)
	testutil.AssertAppError(t, err, "INCOME_NOT_FOUND")
}

func TestListIncomes(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewIncomeService(db)
	user := testutil.CreateTestUser(t, db)

	base := time.Date(2025, time.March, 1, 9, 0, 0, 0, time.UTC)
	testutil.CreateTestIncome(t, db, user.ID, "salary", "1500", base)
	testutil.CreateTestIncome(t, db, user.ID, "freelance", "300", base.AddDate(0, 0, 5))

	page := pagination.PageRequest{}

	result, err := svc.ListIncomes(ctx, user.ID, page, IncomeFilter{})
	testutil.AssertNoError(t, err)
	if result.TotalItems != 2 || result.Data[0].Description != "freelance" {
		t.Errorf("expected 2 incomes newest first, got %+v", result.Data)
	}
	if result.PageSize != 20 {
		t.Errorf("expected default page size 20, got %d", result.PageSize)
	}

	result, err = svc.ListIncomes(ctx, user.ID, page, IncomeFilter{MinAmount: amountPtr("1000")})
	testutil.AssertNoError(t, err)
	if result.TotalItems != 1 {
		t.Errorf("expected 1 income above 1000, got %d", result.TotalItems)
	}

	to := base.AddDate(0, 0, 1)
	result, err = svc.ListIncomes(ctx, user.ID, page, IncomeFilter{ToDate: &to})
	testutil.AssertNoError(t, err)
	if result.TotalItems != 1 {
		t.Errorf("expected 1 income before %s, got %d", to, result.TotalItems)
	}
}

func TestLedgerInvariantAcrossMixedOperations(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	expenses := NewExpenseService(db)
	incomes := NewIncomeService(db)
	user := testutil.CreateTestUser(t, db)
	cat := testutil.CreateTestCategory(t, db)

	e1, err := expenses.CreateExpense(ctx, user.ID, ExpenseInput{Description: "a", Amount: money.MustParse("12.34"), CategoryID: &cat.ID})
	testutil.AssertNoError(t, err)
	e2, err := expenses.CreateExpense(ctx, user.ID, ExpenseInput{Description: "b", Amount: money.MustParse("0.10")})
	testutil.AssertNoError(t, err)
	i1, err := incomes.CreateIncome(ctx, user.ID, IncomeInput{Description: "salary", Amount: money.MustParse("999.99")})
	testutil.AssertNoError(t, err)
	testutil.AssertLedgerInvariant(t, db, user.ID)

	_, err = expenses.UpdateExpense(ctx, user.ID, e1.ID, ExpenseInput{Description: "a", Amount: money.MustParse("100")})
	testutil.AssertNoError(t, err)
	_, err = incomes.UpdateIncome(ctx, user.ID, i1.ID, IncomeInput{Description: "salary", Amount: money.MustParse("10")})
	testutil.AssertNoError(t, err)
	testutil.AssertLedgerInvariant(t, db, user.ID)

	testutil.AssertNoError(t, expenses.DeleteExpense(ctx, user.ID, e2.ID))
	testutil.AssertNoError(t, incomes.DeleteIncome(ctx, user.ID, i1.ID))
	testutil.AssertLedgerInvariant(t, db, user.ID)
	testutil.AssertBalance(t, db, user.ID, "900.00")
}
