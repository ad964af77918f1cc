package services

import (
	"testing"

	"budgeteer/internal/models"
	"budgeteer/internal/testutil"
)

func TestCreateGoal(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	svc := NewGoalService(db)

	t.Run("creates a goal", func(t *testing.T) {
		user := testutil.CreateTestUser(t, db)

		goal, err := svc.CreateGoal(user.ID, "Vacation", 500000, 0, "trip fund", nil, nil)
		testutil.AssertNoError(t, err)

		if goal.ID == 0 {
			t.Error("expected goal to have an ID")
		}
		if goal.Saved != 0 {
			t.Errorf("expected saved 0, got %d", goal.Saved)
		}
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateGoal(user.ID, "", 500000, 0, "", nil, nil)
		testutil.AssertAppError(t, err, "INVALID_INPUT")

		_, err = svc.CreateGoal(user.ID, "Vacation", 0, 0, "", nil, nil)
		testutil.AssertAppError(t, err, "INVALID_INPUT")

		_, err = svc.CreateGoal(user.ID, "Vacation", 500000, -1, "", nil, nil)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("rejects unknown user", func(t *testing.T) {
		_, err := svc.CreateGoal(99999, "Vacation", 500000, 0, "", nil, nil)
		testutil.AssertAppError(t, err, "USER_NOT_FOUND")
	})
}

func TestUpdateGoal(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	svc := NewGoalService(db)
	user := testutil.CreateTestUser(t, db)
	goal := testutil.CreateTestGoal(t, db, user.ID, 100000)

	t.Run("patches target and saved", func(t *testing.T) {
		amount := int64(200000)
		saved := int64(50000)
		updated, err := svc.UpdateGoal(user.ID, goal.ID, &amount, &saved)
		testutil.AssertNoError(t, err)

		if updated.Amount != 200000 || updated.Saved != 50000 {
			t.Errorf("expected 200000/50000, got %d/%d", updated.Amount, updated.Saved)
		}
	})

	t.Run("rejects non-positive target", func(t *testing.T) {
		bad := int64(0)
		_, err := svc.UpdateGoal(user.ID, goal.ID, &bad, nil)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("returns not found for missing goal", func(t *testing.T) {
		amount := int64(100)
		_, err := svc.UpdateGoal(user.ID, 99999, &amount, nil)
		testutil.AssertAppError(t, err, "GOAL_NOT_FOUND")
	})
}

func TestAddSaved(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	svc := NewGoalService(db)
	user := testutil.CreateTestUser(t, db)
	goal := testutil.CreateTestGoal(t, db, user.ID, 100000)

	updated, err := svc.AddSaved(user.ID, goal.ID, 2500)
	testutil.AssertNoError(t, err)
	if updated.Saved != 2500 {
		t.Errorf("expected saved 2500, got %d", updated.Saved)
	}

	updated, err = svc.AddSaved(user.ID, goal.ID, 1500)
	testutil.AssertNoError(t, err)
	if updated.Saved != 4000 {
		t.Errorf("expected saved 4000, got %d", updated.Saved)
	}
}

func TestDeleteGoal(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	svc := NewGoalService(db)
	user := testutil.CreateTestUser(t, db)
	goal := testutil.CreateTestGoal(t, db, user.ID, 100000)

	t.Run("rejects another user's goal", func(t *testing.T) {
		other := testutil.CreateTestUser(t, db)
		err := svc.DeleteGoal(other.ID, goal.ID)
		testutil.AssertAppError(t, err, "GOAL_NOT_FOUND")
	})

	t.Run("deletes own goal", func(t *testing.T) {
		testutil.AssertNoError(t, svc.DeleteGoal(user.ID, goal.ID))

		var count int64
		testutil.AssertNoError(t, db.Model(&models.Goal{}).Where("user_id = ?", user.ID).Count(&count).Error)
		if count != 0 {
			t.Errorf("expected 0 goals, got %d", count)
		}
	})
}
