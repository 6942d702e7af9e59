package suggest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"household-planner/internal/database"
	"household-planner/internal/dish"
)

func newTestCatalog(t *testing.T) *dish.Repository {
	t.Helper()
	tempDir, err := os.MkdirTemp("", "suggest_test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	db, err := database.NewDB(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return dish.NewRepository(db.SQL)
}

func TestCatalogSuggester(t *testing.T) {
	repo := newTestCatalog(t)
	ctx := context.Background()

	entree, err := repo.Create(ctx, "Tacos", dish.TypeEntree)
	if err != nil {
		t.Fatalf("Failed to create dish: %v", err)
	}
	side, err := repo.Create(ctx, "Green Salad", dish.TypeSide)
	if err != nil {
		t.Fatalf("Failed to create dish: %v", err)
	}
	if _, err := repo.Create(ctx, "Leftovers", dish.TypeOther); err != nil {
		t.Fatalf("Failed to create dish: %v", err)
	}

	suggester := NewCatalogSuggester(repo)

	t.Run("EntreeAndSide", func(t *testing.T) {
		sug, err := suggester.Suggest(ctx, nil)
		if err != nil {
			t.Fatalf("Suggest failed: %v", err)
		}
		if len(sug.Dishes) != 2 {
			t.Fatalf("Expected entree and side, got %d dishes", len(sug.Dishes))
		}
		if sug.Dishes[0].ID != entree.ID {
			t.Errorf("Expected the only entree first, got %+v", sug.Dishes[0])
		}
		if sug.Dishes[1].ID != side.ID {
			t.Errorf("Expected the only side second, got %+v", sug.Dishes[1])
		}
	})

	t.Run("ExcludesAssignedDishes", func(t *testing.T) {
		_, err := suggester.Suggest(ctx, []string{entree.ID})
		if err == nil {
			t.Fatal("Expected an error when every entree is excluded")
		}
	})

	t.Run("EmptyCatalog", func(t *testing.T) {
		empty := NewCatalogSuggester(newTestCatalog(t))
		if _, err := empty.Suggest(ctx, nil); err == nil {
			t.Fatal("Expected an error for an empty catalog")
		}
	})
}

type scriptedGenerator struct {
	response string
	err      error
}

func (s *scriptedGenerator) GenerateContent(_ context.Context, _ string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func TestGeminiSuggester(t *testing.T) {
	repo := newTestCatalog(t)
	ctx := context.Background()

	entree, err := repo.Create(ctx, "Tacos", dish.TypeEntree)
	if err != nil {
		t.Fatalf("Failed to create dish: %v", err)
	}
	side, err := repo.Create(ctx, "Green Salad", dish.TypeSide)
	if err != nil {
		t.Fatalf("Failed to create dish: %v", err)
	}

	t.Run("ParsesModelPick", func(t *testing.T) {
		gen := &scriptedGenerator{response: fmt.Sprintf("```json\n{\"dish_ids\": [%q, %q], \"note\": \"Taco night\"}\n```", entree.ID, side.ID)}
		suggester := NewGeminiSuggester(repo, gen)

		sug, err := suggester.Suggest(ctx, nil)
		if err != nil {
			t.Fatalf("Suggest failed: %v", err)
		}
		if len(sug.Dishes) != 2 {
			t.Fatalf("Expected 2 dishes, got %d", len(sug.Dishes))
		}
		if sug.Note != "Taco night" {
			t.Errorf("Expected note 'Taco night', got %q", sug.Note)
		}
	})

	t.Run("FallsBackOnModelError", func(t *testing.T) {
		gen := &scriptedGenerator{err: fmt.Errorf("quota exceeded")}
		suggester := NewGeminiSuggester(repo, gen)

		sug, err := suggester.Suggest(ctx, nil)
		if err != nil {
			t.Fatalf("Expected fallback suggestion, got error %v", err)
		}
		if len(sug.Dishes) == 0 {
			t.Error("Expected fallback to pick from the catalog")
		}
	})

	t.Run("FallsBackOnBadJSON", func(t *testing.T) {
		gen := &scriptedGenerator{response: "Tacos sound nice!"}
		suggester := NewGeminiSuggester(repo, gen)

		sug, err := suggester.Suggest(ctx, nil)
		if err != nil {
			t.Fatalf("Expected fallback suggestion, got error %v", err)
		}
		if len(sug.Dishes) == 0 {
			t.Error("Expected fallback to pick from the catalog")
		}
	})

	t.Run("FallsBackOnUnknownIDs", func(t *testing.T) {
		gen := &scriptedGenerator{response: `{"dish_ids": ["made-up"], "note": ""}`}
		suggester := NewGeminiSuggester(repo, gen)

		sug, err := suggester.Suggest(ctx, nil)
		if err != nil {
			t.Fatalf("Expected fallback suggestion, got error %v", err)
		}
		if len(sug.Dishes) == 0 {
			t.Error("Expected fallback to pick from the catalog")
		}
	})
}
