package services

import (
	"context"
	"testing"

	"homebudget/internal/money"
	"homebudget/internal/testutil"
)

var testInitialBalance = money.MustParse("1000.00")

func TestCreateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db, testInitialBalance)

		user, err := svc.CreateUser(ctx, "alice@example.com", "password123")
		testutil.AssertNoError(t, err)

		if user.ID == "" {
			t.Fatal("expected user ID to be set")
		}
		if user.Email != "alice@example.com" {
			t.Errorf("expected email alice@example.com, got %s", user.Email)
		}
		if user.Balance != testInitialBalance || user.InitialBalance != testInitialBalance {
			t.Errorf("expected opening balance 1000.00, got balance=%s initial=%s", user.Balance, user.InitialBalance)
		}
		if user.Password == "password123" {
			t.Error("password should be stored hashed")
		}
	})

	t.Run("duplicate_email", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db, testInitialBalance)

		_, err := svc.CreateUser(ctx, "dup@example.com", "password123")
		testutil.AssertNoError(t, err)

		_, err = svc.CreateUser(ctx, "DUP@example.com", "password456")
		testutil.AssertAppError(t, err, "DUPLICATE_EMAIL")
	})

	t.Run("empty_email", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db, testInitialBalance)

		_, err := svc.CreateUser(ctx, "  ", "password123")
		testutil.AssertAppError(t, err, "VALIDATION_ERROR")
	})

	t.Run("short_password", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db, testInitialBalance)

		_, err := svc.CreateUser(ctx, "test@example.com", "12345")
		testutil.AssertAppError(t, err, "VALIDATION_ERROR")
	})

	t.Run("email_normalized_to_lowercase", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db, testInitialBalance)

		user, err := svc.CreateUser(ctx, "Alice@EXAMPLE.COM", "password123")
		testutil.AssertNoError(t, err)

		if user.Email != "alice@example.com" {
			t.Errorf("expected lowercased email, got %s", user.Email)
		}
	})
}

func TestGetUser(t *testing.T) {
	ctx := context.Background()

	t.Run("by_email_case_insensitive", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db, testInitialBalance)
		created := testutil.CreateTestUserWithEmail(t, db, "bob@example.com")

		user, err := svc.GetUserByEmail(ctx, "Bob@Example.com")
		testutil.AssertNoError(t, err)
		if user.ID != created.ID {
			t.Errorf("expected user %s, got %s", created.ID, user.ID)
		}
	})

	t.Run("by_id", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db, testInitialBalance)
		created := testutil.CreateTestUser(t, db)

		user, err := svc.GetUserByID(ctx, created.ID)
		testutil.AssertNoError(t, err)
		if user.Email != created.Email {
			t.Errorf("expected email %s, got %s", created.Email, user.Email)
		}
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db, testInitialBalance)

		_, err := svc.GetUserByID(ctx, "00000000-0000-0000-0000-000000000000")
		testutil.AssertAppError(t, err, "USER_NOT_FOUND")

		_, err = svc.GetUserByEmail(ctx, "ghost@example.com")
		testutil.AssertAppError(t, err, "USER_NOT_FOUND")
	})
}

func TestAttemptLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db, testInitialBalance)
		created := testutil.CreateTestUser(t, db)

		user, err := svc.AttemptLogin(ctx, created.Email, testutil.TestPassword)
		testutil.AssertNoError(t, err)
		if user.ID != created.ID {
			t.Errorf("expected user %s, got %s", created.ID, user.ID)
		}
	})

	t.Run("wrong_password", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db, testInitialBalance)
		created := testutil.CreateTestUser(t, db)

		_, err := svc.AttemptLogin(ctx, created.Email, "wrong-password")
		testutil.AssertAppError(t, err, "INVALID_CREDENTIALS")
	})

	t.Run("unknown_email", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db, testInitialBalance)

		_, err := svc.AttemptLogin(ctx, "nobody@example.com", "password123")
		testutil.AssertAppError(t, err, "INVALID_CREDENTIALS")
	})
}
