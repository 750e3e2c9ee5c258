package repository

import (
	"context"
	"testing"
)

func TestListIngredientsPrefix(t *testing.T) {
	gdb := newTestDB(t)
	repo := NewCatalogRepository(gdb, nil)

	seedIngredient(t, gdb, "Salt", "g")
	seedIngredient(t, gdb, "salmon", "g")
	seedIngredient(t, gdb, "pepper", "g")

	tests := []struct {
		name   string
		prefix string
		want   int
	}{
		{"no filter", "", 3},
		{"case-insensitive prefix", "sa", 2},
		{"uppercase prefix", "SAL", 2},
		{"no match", "zz", 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := repo.ListIngredients(context.Background(), tc.prefix)
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if len(got) != tc.want {
				t.Fatalf("got %d ingredients, want %d", len(got), tc.want)
			}
		})
	}
}

func TestExistingIngredientIDs(t *testing.T) {
	gdb := newTestDB(t)
	repo := NewCatalogRepository(gdb, nil)
	salt := seedIngredient(t, gdb, "salt", "g")

	existing, err := repo.ExistingIngredientIDs(context.Background(), []uint{salt.ID, salt.ID + 100})
	if err != nil {
		t.Fatalf("existing ids: %v", err)
	}
	if !existing[salt.ID] || existing[salt.ID+100] {
		t.Fatalf("got %v, want only %d present", existing, salt.ID)
	}
}

func TestGetTagsByIDs(t *testing.T) {
	gdb := newTestDB(t)
	repo := NewCatalogRepository(gdb, nil)
	breakfast := seedTag(t, gdb, "Breakfast", "breakfast")

	tags, err := repo.GetTagsByIDs(context.Background(), []uint{breakfast.ID, breakfast.ID + 100})
	if err != nil {
		t.Fatalf("get tags: %v", err)
	}
	if len(tags) != 1 || tags[0].Slug != "breakfast" {
		t.Fatalf("got %v, want only the breakfast tag", tags)
	}
}
