package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rogerio-castellano/catalog-console/internal/auth"
	"github.com/rogerio-castellano/catalog-console/internal/cache"
	"github.com/rogerio-castellano/catalog-console/internal/http/handlers"
	rl "github.com/rogerio-castellano/catalog-console/internal/http/rate_limiter"
	"github.com/rogerio-castellano/catalog-console/internal/models"
	"github.com/rogerio-castellano/catalog-console/internal/repo"
)

var testSecret = []byte("router-test-secret")

type testEnv struct {
	router http.Handler
	repo   *repo.InMemoryProductRepository
	cache  *cache.Memory
	token  string
}

// setup wires fresh in-memory storage into the handlers. A generous rate
// limit keeps the limiter out of the way unless a test asks otherwise.
func setup(t *testing.T) *testEnv {
	t.Helper()
	productRepo := repo.NewInMemoryProductRepository()
	responseCache := cache.NewMemory(time.Minute)
	handlers.SetProductRepo(productRepo)
	handlers.SetCache(responseCache)

	token, err := auth.GenerateToken(testSecret, "test", time.Hour)
	if err != nil {
		t.Fatalf("token: %v", err)
	}

	return &testEnv{
		router: NewRouter(Config{JWTSecret: testSecret, Limiter: rl.New(1000, 1000)}),
		repo:   productRepo,
		cache:  responseCache,
		token:  token,
	}
}

func (e *testEnv) do(t *testing.T, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	if method != http.MethodGet {
		req.Header.Set("Authorization", "Bearer "+e.token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) create(t *testing.T, name, category string, price float64) models.Product {
	t.Helper()
	w := e.do(t, http.MethodPost, "/products", models.CreateProductRequest{Name: name, Category: category, Price: price})
	if w.Code != http.StatusCreated {
		t.Fatalf("create %s: expected 201, got %d: %s", name, w.Code, w.Body.String())
	}
	var p models.Product
	decode(t, w, &p)
	return p
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(out); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
}

func ptr[T any](v T) *T { return &v }
