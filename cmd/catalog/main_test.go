package main

import (
	"bytes"
	"context"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rogerio-castellano/catalog-console/internal/auth"
	"github.com/rogerio-castellano/catalog-console/internal/cache"
	"github.com/rogerio-castellano/catalog-console/internal/http/handlers"
	rl "github.com/rogerio-castellano/catalog-console/internal/http/rate_limiter"
	"github.com/rogerio-castellano/catalog-console/internal/http/router"
	"github.com/rogerio-castellano/catalog-console/internal/repo"
)

const cliSecret = "cli-test-secret"

type cliEnv struct {
	url   string
	token string
}

// newCLIEnv starts the catalog API on in-memory storage and isolates the
// command from any config or .env on the machine.
func newCLIEnv(t *testing.T) *cliEnv {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("CATALOG_LOG_LEVEL", "error")
	t.Setenv("CATALOG_SERVER_JWTSECRET", "")

	handlers.SetProductRepo(repo.NewInMemoryProductRepository())
	handlers.SetCache(cache.NewMemory(time.Minute))
	srv := httptest.NewServer(router.NewRouter(router.Config{
		JWTSecret: []byte(cliSecret),
		Limiter:   rl.New(1000, 1000),
	}))
	t.Cleanup(srv.Close)

	token, err := auth.GenerateToken([]byte(cliSecret), "cli-test", time.Hour)
	require.NoError(t, err)
	return &cliEnv{url: srv.URL, token: token}
}

// run executes the root command and returns what it printed.
func (e *cliEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--api-url", e.url, "--token", e.token}, args...))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err := cmd.ExecuteContext(ctx)
	return out.String(), err
}

func (e *cliEnv) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := e.run(t, args...)
	require.NoError(t, err, out)
	return out
}

func (e *cliEnv) seed(t *testing.T) map[string]string {
	t.Helper()
	ids := map[string]string{}
	for _, p := range []struct{ name, category, price string }{
		{"Kite", "Toys", "20"},
		{"Ball", "Toys", "5"},
		{"Yoyo", "Toys", "3"},
		{"Novel", "Books", "12"},
	} {
		out := e.mustRun(t, "create", "--name", p.name, "--category", p.category, "--price", p.price, "--stock", "2")
		id, ok := strings.CutPrefix(strings.TrimSpace(out), "created ")
		require.True(t, ok, out)
		ids[p.name] = id
	}
	return ids
}

func TestListFiltersSortsAndPaginates(t *testing.T) {
	e := newCLIEnv(t)
	e.seed(t)

	out := e.mustRun(t, "list", "--category", "Toys", "--sort", "price", "--limit", "2")
	assert.Contains(t, out, "Yoyo")
	assert.Contains(t, out, "Ball")
	assert.NotContains(t, out, "Kite")
	assert.NotContains(t, out, "Novel")
	assert.Contains(t, out, "Page 1 of 2 (3 products)")
	assert.Contains(t, out, "query: ?category=Toys&limit=2&sortBy=price&sortOrder=ASC")
}

func TestListClampsPageFromQuery(t *testing.T) {
	e := newCLIEnv(t)
	e.seed(t)

	out := e.mustRun(t, "list", "--query", "?category=Toys&sortBy=price&sortOrder=DESC&limit=2&page=9")
	assert.Contains(t, out, "Page 2 of 2 (3 products)")
	assert.Contains(t, out, "Yoyo")
	assert.NotContains(t, out, "Kite")
	assert.Contains(t, out, "page=2")
}

func TestListFlagsOverrideQuery(t *testing.T) {
	e := newCLIEnv(t)
	e.seed(t)

	out := e.mustRun(t, "list", "--query", "category=Toys", "--category", "Books")
	assert.Contains(t, out, "Novel")
	assert.NotContains(t, out, "Kite")
	assert.Contains(t, out, "Page 1 of 1 (1 products)")
}

func TestListEmpty(t *testing.T) {
	e := newCLIEnv(t)

	out := e.mustRun(t, "list")
	assert.Contains(t, out, "No products found.")
	assert.Contains(t, out, "Page 0 of 0 (0 products)")
}

func TestListIgnoresMalformedQueryPairs(t *testing.T) {
	e := newCLIEnv(t)
	e.seed(t)

	out := e.mustRun(t, "list", "--query", "?category=Toys&search=%zz")
	assert.Contains(t, out, "Kite")
	assert.Contains(t, out, "Ball")
	assert.Contains(t, out, "Yoyo")
	assert.NotContains(t, out, "Novel")
	assert.Contains(t, out, "Page 1 of 1 (3 products)")
	assert.Contains(t, out, "query: ?category=Toys\n")
}

func TestListRejectsBadSort(t *testing.T) {
	e := newCLIEnv(t)

	_, err := e.run(t, "list", "--sort", "rating")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --sort")
}

func TestListReportsUnreachableAPI(t *testing.T) {
	e := newCLIEnv(t)
	e.url = "http://127.0.0.1:1"

	_, err := e.run(t, "list")
	require.Error(t, err)
}

func TestStatsAndCategories(t *testing.T) {
	e := newCLIEnv(t)
	e.seed(t)

	out := e.mustRun(t, "stats")
	assert.Contains(t, out, "Total products: 4")
	assert.Contains(t, out, "Average price:  $10.00")
	assert.Contains(t, out, "75.00%")

	out = e.mustRun(t, "stats", "--category", "Toys", "--min-price", "4")
	assert.Contains(t, out, "Total products: 2")
	assert.Contains(t, out, "Average price:  $12.50")

	out = e.mustRun(t, "categories")
	assert.Equal(t, "Books\nToys\n", out)
}

func TestGetUpdateDelete(t *testing.T) {
	e := newCLIEnv(t)
	ids := e.seed(t)
	kite := ids["Kite"]

	out := e.mustRun(t, "get", kite)
	assert.Contains(t, out, "Kite")
	assert.Contains(t, out, "$20.00")

	_, err := e.run(t, "update", kite)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing to update")

	out = e.mustRun(t, "update", kite, "--price", "22.5", "--rating", "4")
	assert.Equal(t, "updated "+kite+"\n", out)
	out = e.mustRun(t, "get", kite)
	assert.Contains(t, out, "$22.50")
	assert.Contains(t, out, "Toys")

	out = e.mustRun(t, "delete", kite)
	assert.Equal(t, "deleted "+kite+"\n", out)
	_, err = e.run(t, "get", kite)
	require.Error(t, err)
}

func TestCreateValidation(t *testing.T) {
	e := newCLIEnv(t)

	_, err := e.run(t, "create", "--name", "Kite", "--category", "Toys")
	require.Error(t, err, "price is required")

	_, err = e.run(t, "create", "--name", "Kite", "--category", "Toys", "--price", "-1")
	require.Error(t, err)
}

func TestWritesNeedToken(t *testing.T) {
	e := newCLIEnv(t)
	e.token = ""

	_, err := e.run(t, "create", "--name", "Kite", "--category", "Toys", "--price", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")

	out := e.mustRun(t, "list")
	assert.Contains(t, out, "No products found.")
}

func TestImport(t *testing.T) {
	e := newCLIEnv(t)
	e.seed(t)

	file := filepath.Join(t.TempDir(), "products.csv")
	csv := "name,category,price,rating,stock\n" +
		"Drum,Music,40,4.5,3\n" +
		"Kite,Toys,25,,\n" +
		"Broken,Toys,abc,,\n"
	require.NoError(t, os.WriteFile(file, []byte(csv), 0o600))

	out := e.mustRun(t, "import", file)
	assert.Contains(t, out, "imported 1 products")
	assert.Contains(t, out, "row 3")

	_, err := e.run(t, "import", file, "--mode", "merge")
	require.Error(t, err)
	_, err = e.run(t, "import", filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
}

func TestToken(t *testing.T) {
	e := newCLIEnv(t)

	_, err := e.run(t, "token")
	require.ErrorIs(t, err, auth.ErrMissingSecret)

	t.Setenv("CATALOG_SERVER_JWTSECRET", cliSecret)
	out := e.mustRun(t, "token", "--subject", "ops", "--ttl", "1m")
	claims, err := auth.ParseToken([]byte(cliSecret), strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, "ops", claims.Subject)

	out = e.mustRun(t, "token", "--secret", "other")
	_, err = auth.ParseToken([]byte("other"), strings.TrimSpace(out))
	require.NoError(t, err)
}

func TestVersionSkipsConfig(t *testing.T) {
	e := newCLIEnv(t)
	e.url = "not a url"

	out := e.mustRun(t, "version")
	assert.Contains(t, out, "catalog dev")
}

func TestInvalidConfigFails(t *testing.T) {
	e := newCLIEnv(t)
	e.url = "ftp://example.com"

	_, err := e.run(t, "categories")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api.baseURL")
}

func TestParseSortFlag(t *testing.T) {
	tests := []struct {
		in      string
		by      string
		order   string
		wantErr bool
	}{
		{in: "name", by: "name", order: "ASC"},
		{in: "price:desc", by: "price", order: "DESC"},
		{in: "Price:ASC", by: "price", order: "ASC"},
		{in: "rating", wantErr: true},
		{in: "name:up", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			by, order, err := parseSortFlag(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.by, string(by))
			assert.Equal(t, tt.order, string(order))
		})
	}
}

func TestParseQueryFlag(t *testing.T) {
	got := parseQueryFlag(" ?category=Toys&search=%zz&page=2", zap.NewNop())
	assert.Equal(t, url.Values{"category": {"Toys"}, "page": {"2"}}, got)

	assert.Empty(t, parseQueryFlag("", zap.NewNop()))
}
