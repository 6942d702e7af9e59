package suggest

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"household-planner/internal/dish"
	"household-planner/internal/llm"
)

// GeminiSuggester asks the model to pick dishes from the catalog. Any
// failure falls back to the plain catalog picker so suggestions keep
// working without the API.
type GeminiSuggester struct {
	repo     *dish.Repository
	textGen  llm.TextGenerator
	fallback *CatalogSuggester
}

// NewGeminiSuggester creates a new GeminiSuggester.
func NewGeminiSuggester(repo *dish.Repository, textGen llm.TextGenerator) *GeminiSuggester {
	return &GeminiSuggester{
		repo:     repo,
		textGen:  textGen,
		fallback: NewCatalogSuggester(repo),
	}
}

// modelSuggestion is the JSON shape requested from the model.
type modelSuggestion struct {
	DishIDs []string `json:"dish_ids"`
	Note    string   `json:"note"`
}

// Suggest asks the model for a pairing from the catalog.
func (s *GeminiSuggester) Suggest(ctx context.Context, excludeDishIDs []string) (*Suggestion, error) {
	dishes, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load dish catalog: %w", err)
	}

	excluded := map[string]bool{}
	for _, id := range excludeDishIDs {
		excluded[id] = true
	}

	byID := map[string]dish.Dish{}
	var catalog strings.Builder
	for _, d := range dishes {
		if excluded[d.ID] {
			continue
		}
		byID[d.ID] = d
		fmt.Fprintf(&catalog, "- id: %s, name: %s, type: %s\n", d.ID, d.Name, d.Type)
	}

	prompt := fmt.Sprintf(`You are a meal planning assistant. Pick one entree and optionally one side
from the catalog below to make a balanced dinner.
Return strictly a JSON object: {"dish_ids": ["..."], "note": "one short sentence"}.

Catalog:
%s`, catalog.String())

	raw, err := s.textGen.GenerateContent(ctx, prompt)
	if err != nil {
		log.Printf("Gemini suggestion failed, falling back to catalog picker: %v", err)
		return s.fallback.Suggest(ctx, excludeDishIDs)
	}

	var parsed modelSuggestion
	if err := json.Unmarshal([]byte(cleanJSON(raw)), &parsed); err != nil {
		log.Printf("Failed to parse Gemini suggestion, falling back: %v", err)
		return s.fallback.Suggest(ctx, excludeDishIDs)
	}

	var picked []dish.Dish
	for _, id := range parsed.DishIDs {
		if d, ok := byID[id]; ok {
			picked = append(picked, d)
		}
	}
	if len(picked) == 0 {
		return s.fallback.Suggest(ctx, excludeDishIDs)
	}
	return &Suggestion{Dishes: picked, Note: parsed.Note}, nil
}

// cleanJSON strips the markdown code fences models like to wrap JSON in.
func cleanJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")
	return strings.TrimSpace(raw)
}
