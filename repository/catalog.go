package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/PozdnyakovE/foodgram/logger"
	"github.com/PozdnyakovE/foodgram/model"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// cacheTTL bounds staleness of the catalog cache; the catalogs change only
// on import so a short TTL is enough.
const cacheTTL = 5 * time.Minute

// CatalogRepository serves the read-only ingredient and tag catalogs. A nil
// redis client disables caching and every lookup goes straight to the
// database.
type CatalogRepository struct {
	DB    *gorm.DB
	Redis *redis.Client
}

// NewCatalogRepository creates and returns a new CatalogRepository.
func NewCatalogRepository(db *gorm.DB, rdb *redis.Client) *CatalogRepository {
	return &CatalogRepository{DB: db, Redis: rdb}
}

// ListTags returns the full tag catalog ordered by name.
func (r *CatalogRepository) ListTags(ctx context.Context) ([]model.Tag, error) {
	var tags []model.Tag
	if r.cacheGet(ctx, "tags:all", &tags) {
		return tags, nil
	}
	if err := r.DB.WithContext(ctx).Order("name").Find(&tags).Error; err != nil {
		return nil, err
	}
	r.cacheSet(ctx, "tags:all", tags)
	return tags, nil
}

// GetTag fetches a single tag by ID.
func (r *CatalogRepository) GetTag(ctx context.Context, id uint) (*model.Tag, error) {
	key := fmt.Sprintf("tag:%d", id)
	var tag model.Tag
	if r.cacheGet(ctx, key, &tag) {
		return &tag, nil
	}
	if err := r.DB.WithContext(ctx).First(&tag, id).Error; err != nil {
		return nil, err
	}
	r.cacheSet(ctx, key, &tag)
	return &tag, nil
}

// GetTagsByIDs fetches the tags for the given IDs, preserving no particular
// order. A missing ID simply yields a shorter result.
func (r *CatalogRepository) GetTagsByIDs(ctx context.Context, ids []uint) ([]model.Tag, error) {
	var tags []model.Tag
	if len(ids) == 0 {
		return tags, nil
	}
	if err := r.DB.WithContext(ctx).Where("id IN ?", ids).Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

// ListIngredients returns catalog ingredients ordered by name, optionally
// filtered by a case-insensitive name prefix. Prefix queries bypass the
// cache.
func (r *CatalogRepository) ListIngredients(ctx context.Context, namePrefix string) ([]model.Ingredient, error) {
	var ingredients []model.Ingredient
	if namePrefix == "" && r.cacheGet(ctx, "ingredients:all", &ingredients) {
		return ingredients, nil
	}

	query := r.DB.WithContext(ctx).Order("name")
	if namePrefix != "" {
		query = query.Where("LOWER(name) LIKE ?", sanitizeLike(namePrefix)+"%")
	}
	if err := query.Find(&ingredients).Error; err != nil {
		return nil, err
	}
	if namePrefix == "" {
		r.cacheSet(ctx, "ingredients:all", ingredients)
	}
	return ingredients, nil
}

// GetIngredient fetches a single ingredient by ID.
func (r *CatalogRepository) GetIngredient(ctx context.Context, id uint) (*model.Ingredient, error) {
	key := fmt.Sprintf("ingredient:%d", id)
	var ingredient model.Ingredient
	if r.cacheGet(ctx, key, &ingredient) {
		return &ingredient, nil
	}
	if err := r.DB.WithContext(ctx).First(&ingredient, id).Error; err != nil {
		return nil, err
	}
	r.cacheSet(ctx, key, &ingredient)
	return &ingredient, nil
}

// ExistingIngredientIDs reports which of the given ingredient IDs exist in
// the catalog.
func (r *CatalogRepository) ExistingIngredientIDs(ctx context.Context, ids []uint) (map[uint]bool, error) {
	existing := make(map[uint]bool, len(ids))
	if len(ids) == 0 {
		return existing, nil
	}
	var found []uint
	err := r.DB.WithContext(ctx).Model(&model.Ingredient{}).
		Where("id IN ?", ids).
		Pluck("id", &found).Error
	if err != nil {
		return nil, err
	}
	for _, id := range found {
		existing[id] = true
	}
	return existing, nil
}

// sanitizeLike lowercases the prefix and escapes the LIKE metacharacters so
// user input cannot widen the match.
func sanitizeLike(prefix string) string {
	replacer := strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)
	return replacer.Replace(strings.ToLower(prefix))
}

func (r *CatalogRepository) cacheGet(ctx context.Context, key string, dest interface{}) bool {
	if r.Redis == nil {
		return false
	}
	raw, err := r.Redis.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false
	}
	return true
}

func (r *CatalogRepository) cacheSet(ctx context.Context, key string, value interface{}) {
	if r.Redis == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := r.Redis.Set(ctx, key, raw, cacheTTL).Err(); err != nil {
		logger.Warn("catalog cache write failed", zap.String("key", key), zap.Error(err))
	}
}
