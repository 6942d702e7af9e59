package plan

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"household-planner/internal/database"
)

func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	tempDir, err := os.MkdirTemp("", "plan_test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	db, err := database.NewDB(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return NewRepository(db.SQL)
}

func testFields(start string, n int) CreateFields {
	startDate, _ := time.Parse(DateLayout, start)
	return CreateFields{
		StartDate:    start,
		NumberOfDays: n,
		Days:         NewDays(startDate, n),
	}
}

func TestPlanRepository(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	var planID string

	t.Run("Create", func(t *testing.T) {
		p, err := repo.Create(ctx, testFields("2024-06-01", 3))
		if err != nil {
			t.Fatalf("Failed to create plan: %v", err)
		}
		if p.ID == "" {
			t.Error("Expected a generated ID")
		}
		if len(p.Days) != 3 {
			t.Fatalf("Expected 3 days, got %d", len(p.Days))
		}
		planID = p.ID
	})

	t.Run("Get", func(t *testing.T) {
		p, err := repo.Get(ctx, planID)
		if err != nil {
			t.Fatalf("Failed to get plan: %v", err)
		}
		if p == nil {
			t.Fatal("Expected plan, got nil")
		}
		if p.StartDate != "2024-06-01" {
			t.Errorf("Expected start date 2024-06-01, got %s", p.StartDate)
		}
		if p.Days[2].Date != "2024-06-03" {
			t.Errorf("Expected third day 2024-06-03, got %s", p.Days[2].Date)
		}
		if len(p.Days[0].DishIDs) != 0 {
			t.Errorf("Expected empty dish list, got %v", p.Days[0].DishIDs)
		}
	})

	t.Run("Get-NotFound", func(t *testing.T) {
		p, err := repo.Get(ctx, "missing-id")
		if err != nil {
			t.Fatalf("Expected no error for missing plan, got %v", err)
		}
		if p != nil {
			t.Errorf("Expected nil for missing plan, got %+v", p)
		}
	})

	t.Run("Update-NameOnly", func(t *testing.T) {
		newName := "First week of June"
		p, err := repo.Update(ctx, planID, Update{Name: &newName})
		if err != nil {
			t.Fatalf("Failed to update plan: %v", err)
		}
		if p.Name != newName {
			t.Errorf("Expected name '%s', got '%s'", newName, p.Name)
		}
		if len(p.Days) != 3 {
			t.Errorf("Expected days untouched by name update, got %d", len(p.Days))
		}
	})

	t.Run("Update-DaysReplaced", func(t *testing.T) {
		days := NewDays(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), 3)
		days[1].DishIDs = []string{"dish-1", "dish-2"}

		p, err := repo.Update(ctx, planID, Update{Days: days})
		if err != nil {
			t.Fatalf("Failed to update plan: %v", err)
		}
		if !reflect.DeepEqual(p.Days[1].DishIDs, []string{"dish-1", "dish-2"}) {
			t.Errorf("Expected replaced day sequence, got %v", p.Days[1].DishIDs)
		}
		if p.Name != "First week of June" {
			t.Errorf("Expected name untouched by days update, got '%s'", p.Name)
		}

		// The replacement must be persisted, not just returned.
		stored, err := repo.Get(ctx, planID)
		if err != nil {
			t.Fatalf("Failed to re-read plan: %v", err)
		}
		if !reflect.DeepEqual(stored.Days[1].DishIDs, []string{"dish-1", "dish-2"}) {
			t.Errorf("Expected persisted day sequence, got %v", stored.Days[1].DishIDs)
		}
	})

	t.Run("Update-NotFound", func(t *testing.T) {
		newName := "nope"
		p, err := repo.Update(ctx, "missing-id", Update{Name: &newName})
		if err != nil {
			t.Fatalf("Expected no error for missing plan, got %v", err)
		}
		if p != nil {
			t.Errorf("Expected nil for missing plan, got %+v", p)
		}
	})

	t.Run("List", func(t *testing.T) {
		if _, err := repo.Create(ctx, testFields("2024-06-08", 7)); err != nil {
			t.Fatalf("Failed to create plan: %v", err)
		}

		plans, err := repo.List(ctx)
		if err != nil {
			t.Fatalf("Failed to list plans: %v", err)
		}
		if len(plans) != 2 {
			t.Fatalf("Expected 2 plans, got %d", len(plans))
		}
	})

	t.Run("Delete", func(t *testing.T) {
		found, err := repo.Delete(ctx, planID)
		if err != nil {
			t.Fatalf("Failed to delete plan: %v", err)
		}
		if !found {
			t.Error("Expected delete to report found")
		}

		found, err = repo.Delete(ctx, planID)
		if err != nil {
			t.Fatalf("Failed on second delete: %v", err)
		}
		if found {
			t.Error("Expected second delete to report not found")
		}
	})
}
