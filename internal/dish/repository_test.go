package dish

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"household-planner/internal/database"
)

func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	tempDir, err := os.MkdirTemp("", "dish_test")
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

func TestRepository(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	var dishID string

	t.Run("Create", func(t *testing.T) {
		d, err := repo.Create(ctx, "Tacos", TypeEntree)
		if err != nil {
			t.Fatalf("Failed to create dish: %v", err)
		}
		if d.ID == "" {
			t.Error("Expected a generated ID")
		}
		if d.Name != "Tacos" {
			t.Errorf("Expected name 'Tacos', got '%s'", d.Name)
		}
		if d.Type != TypeEntree {
			t.Errorf("Expected type entree, got '%s'", d.Type)
		}
		dishID = d.ID
	})

	t.Run("Create-InvalidType", func(t *testing.T) {
		_, err := repo.Create(ctx, "Mystery", Type("dessert"))
		if err == nil {
			t.Fatal("Expected an error for invalid dish type, got nil")
		}
	})

	t.Run("Get", func(t *testing.T) {
		d, err := repo.Get(ctx, dishID)
		if err != nil {
			t.Fatalf("Failed to get dish: %v", err)
		}
		if d == nil {
			t.Fatal("Expected dish, got nil")
		}
		if d.Name != "Tacos" {
			t.Errorf("Expected name 'Tacos', got '%s'", d.Name)
		}
	})

	t.Run("Get-NotFound", func(t *testing.T) {
		d, err := repo.Get(ctx, "missing-id")
		if err != nil {
			t.Fatalf("Expected no error for missing dish, got %v", err)
		}
		if d != nil {
			t.Errorf("Expected nil for missing dish, got %+v", d)
		}
	})

	t.Run("List", func(t *testing.T) {
		if _, err := repo.Create(ctx, "Green Salad", TypeSide); err != nil {
			t.Fatalf("Failed to create dish: %v", err)
		}

		dishes, err := repo.List(ctx)
		if err != nil {
			t.Fatalf("Failed to list dishes: %v", err)
		}
		if len(dishes) != 2 {
			t.Fatalf("Expected 2 dishes, got %d", len(dishes))
		}
		// Ordered by name.
		if dishes[0].Name != "Green Salad" || dishes[1].Name != "Tacos" {
			t.Errorf("Expected name ordering, got %s, %s", dishes[0].Name, dishes[1].Name)
		}
	})

	t.Run("Update", func(t *testing.T) {
		newName := "Fish Tacos"
		d, err := repo.Update(ctx, dishID, Update{Name: &newName})
		if err != nil {
			t.Fatalf("Failed to update dish: %v", err)
		}
		if d.Name != "Fish Tacos" {
			t.Errorf("Expected updated name 'Fish Tacos', got '%s'", d.Name)
		}
		if d.Type != TypeEntree {
			t.Errorf("Expected type to be unchanged, got '%s'", d.Type)
		}
	})

	t.Run("Update-NotFound", func(t *testing.T) {
		newName := "Nope"
		d, err := repo.Update(ctx, "missing-id", Update{Name: &newName})
		if err != nil {
			t.Fatalf("Expected no error for missing dish, got %v", err)
		}
		if d != nil {
			t.Errorf("Expected nil for missing dish, got %+v", d)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		found, err := repo.Delete(ctx, dishID)
		if err != nil {
			t.Fatalf("Failed to delete dish: %v", err)
		}
		if !found {
			t.Error("Expected delete to report found")
		}

		found, err = repo.Delete(ctx, dishID)
		if err != nil {
			t.Fatalf("Failed on second delete: %v", err)
		}
		if found {
			t.Error("Expected second delete to report not found")
		}
	})
}
