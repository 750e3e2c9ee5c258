package route

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/PozdnyakovE/foodgram/config"
	"github.com/PozdnyakovE/foodgram/db"
	"github.com/PozdnyakovE/foodgram/model"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type api struct {
	t      *testing.T
	router *gin.Engine
	db     *gorm.DB
}

func newAPI(t *testing.T) *api {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	cfg := &config.Config{
		JWTSecretKey: "test-secret",
		MediaRoot:    t.TempDir(),
	}
	cfg.Server.BaseURL = "https://foodgram.example.org"

	router := gin.New()
	SetupRoutes(router, cfg, gdb, nil)
	return &api{t: t, router: router, db: gdb}
}

func (a *api) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			a.t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func (a *api) decode(rec *httptest.ResponseRecorder, dest interface{}) {
	a.t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), dest); err != nil {
		a.t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
}

func (a *api) register(username string) {
	a.t.Helper()
	rec := a.do(http.MethodPost, "/api/users", "", gin.H{
		"email":      username + "@example.com",
		"username":   username,
		"first_name": "Test",
		"last_name":  "User",
		"password":   "correct-horse",
	})
	if rec.Code != http.StatusCreated {
		a.t.Fatalf("register %s: %d %s", username, rec.Code, rec.Body.String())
	}
}

func (a *api) login(username string) string {
	a.t.Helper()
	rec := a.do(http.MethodPost, "/api/auth/token/login", "", gin.H{
		"email":    username + "@example.com",
		"password": "correct-horse",
	})
	if rec.Code != http.StatusOK {
		a.t.Fatalf("login %s: %d %s", username, rec.Code, rec.Body.String())
	}
	var resp struct {
		AuthToken string `json:"auth_token"`
	}
	a.decode(rec, &resp)
	return resp.AuthToken
}

func (a *api) seedCatalog() (tagID, ingredientID uint) {
	a.t.Helper()
	tag := model.Tag{Name: "Breakfast", Slug: "breakfast"}
	if err := a.db.Create(&tag).Error; err != nil {
		a.t.Fatalf("seed tag: %v", err)
	}
	ing := model.Ingredient{Name: "flour", MeasurementUnit: "g"}
	if err := a.db.Create(&ing).Error; err != nil {
		a.t.Fatalf("seed ingredient: %v", err)
	}
	return tag.ID, ing.ID
}

func recipePayload(tagID, ingredientID uint) gin.H {
	image := "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte{0x89, 'P', 'N', 'G'})
	return gin.H{
		"name":         "pancakes",
		"text":         "mix and fry",
		"cooking_time": 20,
		"image":        image,
		"tags":         []uint{tagID},
		"ingredients":  []gin.H{{"id": ingredientID, "amount": 300}},
	}
}

func TestRecipeLifecycle(t *testing.T) {
	a := newAPI(t)
	a.register("author")
	token := a.login("author")
	tagID, ingredientID := a.seedCatalog()

	rec := a.do(http.MethodPost, "/api/recipes", token, recipePayload(tagID, ingredientID))
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: %d %s", rec.Code, rec.Body.String())
	}
	var created struct {
		ID     uint `json:"id"`
		Author struct {
			Username string `json:"username"`
		} `json:"author"`
		IsFavorited bool `json:"is_favorited"`
	}
	a.decode(rec, &created)
	if created.Author.Username != "author" || created.IsFavorited {
		t.Fatalf("created view = %+v", created)
	}

	// Anyone can read; the envelope carries the total count.
	rec = a.do(http.MethodGet, "/api/recipes", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list: %d %s", rec.Code, rec.Body.String())
	}
	var page struct {
		Count   int64             `json:"count"`
		Results []json.RawMessage `json:"results"`
	}
	a.decode(rec, &page)
	if page.Count != 1 || len(page.Results) != 1 {
		t.Fatalf("page = count:%d results:%d", page.Count, len(page.Results))
	}

	rec = a.do(http.MethodGet, fmt.Sprintf("/api/recipes/%d/get-link", created.ID), "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get-link: %d %s", rec.Code, rec.Body.String())
	}
	var link struct {
		ShortLink string `json:"short-link"`
	}
	a.decode(rec, &link)
	want := fmt.Sprintf("https://foodgram.example.org/recipes/%d/", created.ID)
	if link.ShortLink != want {
		t.Fatalf("short link = %q, want %q", link.ShortLink, want)
	}

	// Writes stay closed to anonymous callers.
	rec = a.do(http.MethodPost, "/api/recipes", "", recipePayload(tagID, ingredientID))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous create: %d, want 401", rec.Code)
	}

	rec = a.do(http.MethodDelete, fmt.Sprintf("/api/recipes/%d", created.ID), token, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete: %d %s", rec.Code, rec.Body.String())
	}
}

func TestFavoriteRoutes(t *testing.T) {
	a := newAPI(t)
	a.register("author")
	a.register("viewer")
	authorToken := a.login("author")
	viewerToken := a.login("viewer")
	tagID, ingredientID := a.seedCatalog()

	rec := a.do(http.MethodPost, "/api/recipes", authorToken, recipePayload(tagID, ingredientID))
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: %d %s", rec.Code, rec.Body.String())
	}
	var created struct {
		ID uint `json:"id"`
	}
	a.decode(rec, &created)

	favorite := fmt.Sprintf("/api/recipes/%d/favorite", created.ID)
	rec = a.do(http.MethodPost, favorite, viewerToken, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("favorite: %d %s", rec.Code, rec.Body.String())
	}
	rec = a.do(http.MethodPost, favorite, viewerToken, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("repeat favorite: %d, want 400", rec.Code)
	}

	// The flag is viewer-relative.
	recipeURL := fmt.Sprintf("/api/recipes/%d", created.ID)
	var view struct {
		IsFavorited bool `json:"is_favorited"`
	}
	rec = a.do(http.MethodGet, recipeURL, viewerToken, nil)
	a.decode(rec, &view)
	if !view.IsFavorited {
		t.Fatal("viewer does not see is_favorited")
	}
	rec = a.do(http.MethodGet, recipeURL, authorToken, nil)
	a.decode(rec, &view)
	if view.IsFavorited {
		t.Fatal("author sees the viewer's favorite flag")
	}

	rec = a.do(http.MethodDelete, favorite, viewerToken, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("unfavorite: %d %s", rec.Code, rec.Body.String())
	}
	rec = a.do(http.MethodDelete, favorite, viewerToken, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("repeat unfavorite: %d, want 400", rec.Code)
	}
}

func TestShoppingCartDownload(t *testing.T) {
	a := newAPI(t)
	a.register("author")
	token := a.login("author")
	tagID, ingredientID := a.seedCatalog()

	rec := a.do(http.MethodPost, "/api/recipes", token, recipePayload(tagID, ingredientID))
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: %d %s", rec.Code, rec.Body.String())
	}
	var created struct {
		ID uint `json:"id"`
	}
	a.decode(rec, &created)

	rec = a.do(http.MethodPost, fmt.Sprintf("/api/recipes/%d/shopping_cart", created.ID), token, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("add to cart: %d %s", rec.Code, rec.Body.String())
	}

	rec = a.do(http.MethodGet, "/api/recipes/download_shopping_cart", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("download: %d %s", rec.Code, rec.Body.String())
	}
	if got := rec.Body.String(); got != "Shopping list:\n\nflour, 300, g" {
		t.Fatalf("document = %q", got)
	}
	if cd := rec.Header().Get("Content-Disposition"); cd != `attachment; filename="shopping_cart.txt"` {
		t.Fatalf("content disposition = %q", cd)
	}

	rec = a.do(http.MethodGet, "/api/recipes/download_shopping_cart", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous download: %d, want 401", rec.Code)
	}
}

func TestUserActionRoutes(t *testing.T) {
	a := newAPI(t)
	a.register("resident")
	token := a.login("resident")

	rec := a.do(http.MethodGet, "/api/users/me", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("me: %d %s", rec.Code, rec.Body.String())
	}
	var me struct {
		Username string `json:"username"`
	}
	a.decode(rec, &me)
	if me.Username != "resident" {
		t.Fatalf("me = %+v", me)
	}

	rec = a.do(http.MethodGet, "/api/users/me", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous me: %d, want 401", rec.Code)
	}

	rec = a.do(http.MethodGet, "/api/users/subscriptions", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("subscriptions: %d %s", rec.Code, rec.Body.String())
	}
	var page struct {
		Count int64 `json:"count"`
	}
	a.decode(rec, &page)
	if page.Count != 0 {
		t.Fatalf("subscription count = %d, want 0", page.Count)
	}

	rec = a.do(http.MethodPost, "/api/users/set_password", token, gin.H{
		"current_password": "correct-horse",
		"new_password":     "fresh-password",
	})
	if rec.Code != http.StatusNoContent {
		t.Fatalf("set password: %d %s", rec.Code, rec.Body.String())
	}

	rec = a.do(http.MethodPost, "/api/auth/token/logout", token, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("logout: %d %s", rec.Code, rec.Body.String())
	}
}

func TestSubscribeRoutes(t *testing.T) {
	a := newAPI(t)
	a.register("follower")
	a.register("author")
	token := a.login("follower")

	var author model.User
	if err := a.db.Where("username = ?", "author").First(&author).Error; err != nil {
		t.Fatalf("find author: %v", err)
	}

	subscribe := fmt.Sprintf("/api/users/%d/subscribe", author.ID)
	rec := a.do(http.MethodPost, subscribe, token, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("subscribe: %d %s", rec.Code, rec.Body.String())
	}
	var view struct {
		Username     string `json:"username"`
		IsSubscribed bool   `json:"is_subscribed"`
	}
	a.decode(rec, &view)
	if view.Username != "author" || !view.IsSubscribed {
		t.Fatalf("view = %+v", view)
	}

	rec = a.do(http.MethodGet, "/api/users/subscriptions", token, nil)
	var page struct {
		Count int64 `json:"count"`
	}
	a.decode(rec, &page)
	if page.Count != 1 {
		t.Fatalf("subscription count = %d, want 1", page.Count)
	}

	rec = a.do(http.MethodDelete, subscribe, token, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("unsubscribe: %d %s", rec.Code, rec.Body.String())
	}
}
