package service

import (
	"context"
	"testing"

	"github.com/PozdnyakovE/foodgram/util"
)

func TestCatalogLookups(t *testing.T) {
	env := newTestEnv(t)
	tag := env.createTag(t, "Breakfast", "breakfast")
	ing := env.createIngredient(t, "salt", "g")

	ctx := context.Background()
	gotTag, err := env.catalog.GetTag(ctx, tag.ID)
	if err != nil || gotTag.Slug != "breakfast" {
		t.Fatalf("get tag: %v %+v", err, gotTag)
	}
	gotIng, err := env.catalog.GetIngredient(ctx, ing.ID)
	if err != nil || gotIng.MeasurementUnit != "g" {
		t.Fatalf("get ingredient: %v %+v", err, gotIng)
	}

	_, err = env.catalog.GetTag(ctx, tag.ID+100)
	if apiErr, ok := util.AsAPIError(err); !ok || apiErr.Status != 404 {
		t.Fatalf("unknown tag: got %v, want 404", err)
	}
	_, err = env.catalog.GetIngredient(ctx, ing.ID+100)
	if apiErr, ok := util.AsAPIError(err); !ok || apiErr.Status != 404 {
		t.Fatalf("unknown ingredient: got %v, want 404", err)
	}
}
