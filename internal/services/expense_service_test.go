package services

import (
	"testing"
	"time"

	"stockbook/internal/pagination"
	"stockbook/internal/testutil"
)

func TestAddExpense(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db)
		user := testutil.CreateTestUser(t, db)

		expense, err := svc.AddExpense(user.ID, "2025-06-15", "Groceries", 42.50, "Weekly shop")
		testutil.AssertNoError(t, err)

		if expense.ID == 0 {
			t.Fatal("expected non-zero expense ID")
		}
		if expense.Amount != 42.50 {
			t.Errorf("expected amount 42.50, got %v", expense.Amount)
		}
		if !expense.Date.Equal(time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("expected date 2025-06-15, got %v", expense.Date)
		}
	})

	t.Run("appears_in_list_exactly_once", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db)
		user := testutil.CreateTestUser(t, db)

		created, err := svc.AddExpense(user.ID, "2025-06-15", "Groceries", 42.50, "Weekly shop")
		testutil.AssertNoError(t, err)

		result, err := svc.ListExpenses(user.ID, pagination.PageRequest{}, ExpenseFilter{})
		testutil.AssertNoError(t, err)

		matches := 0
		for _, e := range result.Data {
			if e.ID == created.ID {
				matches++
			}
		}
		if matches != 1 {
			t.Errorf("expected expense to appear exactly once, found %d times", matches)
		}
	})

	t.Run("invalid_date", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.AddExpense(user.ID, "2025-13-01", "Groceries", 10, "")
		testutil.AssertAppError(t, err, "INVALID_DATE")

		_, err = svc.AddExpense(user.ID, "not-a-date", "Groceries", 10, "")
		testutil.AssertAppError(t, err, "INVALID_DATE")
	})

	t.Run("invalid_amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.AddExpense(user.ID, "2025-06-15", "Groceries", 0, "")
		testutil.AssertAppError(t, err, "INVALID_AMOUNT")

		_, err = svc.AddExpense(user.ID, "2025-06-15", "Groceries", -5, "")
		testutil.AssertAppError(t, err, "INVALID_AMOUNT")
	})

	t.Run("empty_description_defaults", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db)
		user := testutil.CreateTestUser(t, db)

		expense, err := svc.AddExpense(user.ID, "2025-06-15", "Transport", 12, "")
		testutil.AssertNoError(t, err)
		if expense.Description != "Transport expense" {
			t.Errorf("expected default description, got %q", expense.Description)
		}
	})
}

func TestListExpenses(t *testing.T) {
	t.Run("date_descending_stable", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db)
		user := testutil.CreateTestUser(t, db)

		first := testutil.CreateTestExpense(t, db, user.ID, "2025-06-10", "Groceries", 10)
		second := testutil.CreateTestExpense(t, db, user.ID, "2025-06-20", "Transport", 20)
		// Same date as first, inserted later; must come after it.
		third := testutil.CreateTestExpense(t, db, user.ID, "2025-06-10", "Dining", 30)

		result, err := svc.ListExpenses(user.ID, pagination.PageRequest{}, ExpenseFilter{})
		testutil.AssertNoError(t, err)

		if len(result.Data) != 3 {
			t.Fatalf("expected 3 expenses, got %d", len(result.Data))
		}
		if result.Data[0].ID != second.ID {
			t.Errorf("expected newest expense first, got ID %d", result.Data[0].ID)
		}
		if result.Data[1].ID != first.ID || result.Data[2].ID != third.ID {
			t.Errorf("expected insertion order on date ties, got %d then %d", result.Data[1].ID, result.Data[2].ID)
		}
	})

	t.Run("category_filter", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db)
		user := testutil.CreateTestUser(t, db)

		testutil.CreateTestExpense(t, db, user.ID, "2025-06-10", "Groceries", 10)
		testutil.CreateTestExpense(t, db, user.ID, "2025-06-11", "Transport", 20)

		category := "Groceries"
		result, err := svc.ListExpenses(user.ID, pagination.PageRequest{}, ExpenseFilter{Category: &category})
		testutil.AssertNoError(t, err)

		if len(result.Data) != 1 {
			t.Fatalf("expected 1 expense, got %d", len(result.Data))
		}
		if result.Data[0].Category != "Groceries" {
			t.Errorf("expected Groceries, got %q", result.Data[0].Category)
		}
	})

	t.Run("month_filter", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db)
		user := testutil.CreateTestUser(t, db)

		testutil.CreateTestExpense(t, db, user.ID, "2025-05-31", "Groceries", 10)
		inMonth := testutil.CreateTestExpense(t, db, user.ID, "2025-06-01", "Groceries", 20)
		testutil.CreateTestExpense(t, db, user.ID, "2025-07-01", "Groceries", 30)

		month := "2025-06"
		result, err := svc.ListExpenses(user.ID, pagination.PageRequest{}, ExpenseFilter{Month: &month})
		testutil.AssertNoError(t, err)

		if len(result.Data) != 1 {
			t.Fatalf("expected 1 expense, got %d", len(result.Data))
		}
		if result.Data[0].ID != inMonth.ID {
			t.Errorf("expected expense %d, got %d", inMonth.ID, result.Data[0].ID)
		}
	})

	t.Run("scoped_to_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db)
		user1 := testutil.CreateTestUser(t, db)
		user2 := testutil.CreateTestUser(t, db)

		testutil.CreateTestExpense(t, db, user1.ID, "2025-06-10", "Groceries", 10)

		result, err := svc.ListExpenses(user2.ID, pagination.PageRequest{}, ExpenseFilter{})
		testutil.AssertNoError(t, err)
		if len(result.Data) != 0 {
			t.Errorf("expected no expenses for other user, got %d", len(result.Data))
		}
	})
}

func TestDeleteExpense(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db)
		user := testutil.CreateTestUser(t, db)
		expense := testutil.CreateTestExpense(t, db, user.ID, "2025-06-10", "Groceries", 10)

		testutil.AssertNoError(t, svc.DeleteExpense(user.ID, expense.ID))

		_, err := svc.GetExpenseByID(user.ID, expense.ID)
		testutil.AssertAppError(t, err, "EXPENSE_NOT_FOUND")
	})

	t.Run("already_deleted", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db)
		user := testutil.CreateTestUser(t, db)
		expense := testutil.CreateTestExpense(t, db, user.ID, "2025-06-10", "Groceries", 10)
		other := testutil.CreateTestExpense(t, db, user.ID, "2025-06-11", "Transport", 20)

		testutil.AssertNoError(t, svc.DeleteExpense(user.ID, expense.ID))
		testutil.AssertAppError(t, svc.DeleteExpense(user.ID, expense.ID), "EXPENSE_NOT_FOUND")

		// Repeated deletes never alter other rows.
		_, err := svc.GetExpenseByID(user.ID, other.ID)
		testutil.AssertNoError(t, err)
	})

	t.Run("other_users_expense", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db)
		user1 := testutil.CreateTestUser(t, db)
		user2 := testutil.CreateTestUser(t, db)
		expense := testutil.CreateTestExpense(t, db, user1.ID, "2025-06-10", "Groceries", 10)

		// Reported the same as a missing record.
		testutil.AssertAppError(t, svc.DeleteExpense(user2.ID, expense.ID), "EXPENSE_NOT_FOUND")

		_, err := svc.GetExpenseByID(user1.ID, expense.ID)
		testutil.AssertNoError(t, err)
	})
}

func TestMonthlyTotal(t *testing.T) {
	t.Run("sums_month", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db)
		user := testutil.CreateTestUser(t, db)

		testutil.CreateTestExpense(t, db, user.ID, "2025-06-05", "Groceries", 10.25)
		testutil.CreateTestExpense(t, db, user.ID, "2025-06-25", "Transport", 5.75)
		testutil.CreateTestExpense(t, db, user.ID, "2025-07-01", "Groceries", 100)

		total, err := svc.MonthlyTotal(user.ID, "2025-06")
		testutil.AssertNoError(t, err)
		if total != 16.0 {
			t.Errorf("expected total 16.0, got %v", total)
		}
	})

	t.Run("zero_when_empty", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db)
		user := testutil.CreateTestUser(t, db)

		total, err := svc.MonthlyTotal(user.ID, "2025-06")
		testutil.AssertNoError(t, err)
		if total != 0 {
			t.Errorf("expected total 0, got %v", total)
		}
	})

	t.Run("invalid_month", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.MonthlyTotal(user.ID, "2025-13")
		testutil.AssertAppError(t, err, "INVALID_DATE")
	})
}
