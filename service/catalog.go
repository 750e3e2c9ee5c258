package service

import (
	"context"
	"errors"

	"github.com/PozdnyakovE/foodgram/entity"
	"github.com/PozdnyakovE/foodgram/mapper"
	"github.com/PozdnyakovE/foodgram/repository"
	"github.com/PozdnyakovE/foodgram/util"

	"gorm.io/gorm"
)

// CatalogService exposes the read-only tag and ingredient catalogs.
type CatalogService struct {
	catalog *repository.CatalogRepository
}

// NewCatalogService creates and returns a new CatalogService.
func NewCatalogService(catalog *repository.CatalogRepository) *CatalogService {
	return &CatalogService{catalog: catalog}
}

// ListTags returns every tag.
func (s *CatalogService) ListTags(ctx context.Context) ([]entity.TagView, error) {
	tags, err := s.catalog.ListTags(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]entity.TagView, 0, len(tags))
	for i := range tags {
		views = append(views, mapper.TagToView(&tags[i]))
	}
	return views, nil
}

// GetTag returns one tag by ID.
func (s *CatalogService) GetTag(ctx context.Context, id uint) (*entity.TagView, error) {
	tag, err := s.catalog.GetTag(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NotFoundError("tag not found")
		}
		return nil, err
	}
	view := mapper.TagToView(tag)
	return &view, nil
}

// ListIngredients returns catalog ingredients, optionally narrowed by a
// name prefix.
func (s *CatalogService) ListIngredients(ctx context.Context, namePrefix string) ([]entity.IngredientView, error) {
	ingredients, err := s.catalog.ListIngredients(ctx, namePrefix)
	if err != nil {
		return nil, err
	}
	views := make([]entity.IngredientView, 0, len(ingredients))
	for i := range ingredients {
		views = append(views, mapper.IngredientToView(&ingredients[i]))
	}
	return views, nil
}

// GetIngredient returns one ingredient by ID.
func (s *CatalogService) GetIngredient(ctx context.Context, id uint) (*entity.IngredientView, error) {
	ingredient, err := s.catalog.GetIngredient(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NotFoundError("ingredient not found")
		}
		return nil, err
	}
	view := mapper.IngredientToView(ingredient)
	return &view, nil
}
