package packages_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"pak-index/core/archive/mocks"
	"pak-index/core/category"
	"pak-index/core/database"
	"pak-index/core/engine"
	"pak-index/core/keys"
	"pak-index/feature/packages"
	"pak-index/feature/packages/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var rules = []category.Rule{
	{Name: "Characters", Prefix: "Game/Characters/", Threshold: category.Limit(0)},
}

type fixture struct {
	engine  *engine.Engine
	catalog *database.Catalog
	service *packages.Service
	app     *fiber.App
}

func newFixture(t *testing.T, catalog *database.Catalog) *fixture {
	t.Helper()
	dir := t.TempDir()
	dec := new(mocks.Decoder)
	dec.On("Open", mock.Anything, filepath.Join(dir, "pak0.pak"), "0xMAIN").
		Return(mocks.NewMemorySession("pak0", "Game/Characters/CID_001.uasset", "Game/Maps/Terrain.umap"), nil)
	dec.On("Open", mock.Anything, filepath.Join(dir, "pak1.pak"), "0xOTHER").
		Return(mocks.NewMemorySession("pak1", "Game/Characters/CID_002.uasset"), nil)
	dec.On("Open", mock.Anything, filepath.Join(dir, "pak1.pak"), mock.Anything).
		Return(nil, errors.New("cipher: message authentication failed"))

	cfg := engine.Config{
		Path:           dir,
		Pattern:        "*.pak",
		Extension:      ".pak",
		Threshold:      5,
		ContentRoot:    "Game",
		VirtualRoot:    "/Game",
		AssetExtension: ".uasset",
	}
	e, err := engine.New(cfg, dec, keys.NewStatic(keys.Chain{MainKey: "0xMAIN"}), rules, nil, nil)
	require.NoError(t, err)

	feature := packages.NewFeature(e, catalog, nil)
	app := fiber.New()
	require.NoError(t, feature.Load(app))
	return &fixture{engine: e, catalog: catalog, service: feature.Service(), app: app}
}

func newCatalog(t *testing.T) *database.Catalog {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{Logger: gormlogger.Discard})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	c := database.NewCatalog(db)
	require.NoError(t, c.Migrate(context.Background()))
	return c
}

func TestService_Status(t *testing.T) {
	f := newFixture(t, nil)
	require.NoError(t, f.engine.Open(context.Background(), "pak0", ""))

	status := f.service.Status()
	assert.False(t, status.Extracted)
	assert.Equal(t, 2, status.Files)
	require.Len(t, status.Packages, 1)
	assert.Equal(t, "pak0", status.Packages[0].ID)
	assert.Equal(t, 2, status.Packages[0].Files)
	assert.Equal(t, keys.Fingerprint("0xMAIN"), status.Packages[0].KeyFingerprint)
}

func TestService_Files(t *testing.T) {
	f := newFixture(t, nil)
	require.NoError(t, f.engine.Open(context.Background(), "pak0", ""))

	all := f.service.Files("", 0)
	assert.Equal(t, 2, all.Total)
	assert.Len(t, all.Files, 2)

	limited := f.service.Files("Game/", 1)
	assert.Equal(t, 2, limited.Total)
	assert.Len(t, limited.Files, 1)

	none := f.service.Files("Nope/", 0)
	assert.Equal(t, 0, none.Total)
	assert.NotNil(t, none.Files)
}

func TestService_OpenRecordsCatalog(t *testing.T) {
	f := newFixture(t, newCatalog(t))
	ctx := context.Background()

	view, err := f.service.Open(ctx, "pak0", "")
	require.NoError(t, err)
	assert.Equal(t, "pak0", view.ID)

	_, err = f.service.Open(ctx, "pak1", "0xOTHER")
	require.NoError(t, err)

	rows, err := f.service.Catalog(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "pak0", rows[0].ContainerID)
	assert.Equal(t, "pak1", rows[1].ContainerID)
	assert.Equal(t, keys.Fingerprint("0xOTHER"), rows[1].KeyFingerprint)
	assert.Equal(t, 1, rows[1].FileCount)
}

func TestService_CatalogDisabled(t *testing.T) {
	f := newFixture(t, nil)

	_, err := f.service.Open(context.Background(), "pak0", "")
	require.NoError(t, err)

	_, err = f.service.Catalog(context.Background())
	assert.ErrorIs(t, err, database.ErrNoDatabase)
}

func TestHandleStatus(t *testing.T) {
	f := newFixture(t, nil)
	require.NoError(t, f.engine.Open(context.Background(), "pak0", ""))

	resp, err := f.app.Test(httptest.NewRequest("GET", "/packages", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body models.Status
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Packages, 1)
	assert.Equal(t, "pak0", body.Packages[0].ID)
}

func TestHandleCategories(t *testing.T) {
	f := newFixture(t, nil)
	require.NoError(t, f.engine.Open(context.Background(), "pak0", ""))

	resp, err := f.app.Test(httptest.NewRequest("GET", "/packages/categories", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body models.Categories
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Categories, 1)
	assert.Equal(t, "Characters", body.Categories[0].Name)
}

func TestHandleFiles(t *testing.T) {
	f := newFixture(t, nil)
	require.NoError(t, f.engine.Open(context.Background(), "pak0", ""))

	resp, err := f.app.Test(httptest.NewRequest("GET", "/packages/files?prefix=Game/Maps/", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body models.FileList
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, []string{"Game/Maps/Terrain.umap"}, body.Files)
}

func TestHandleOpen(t *testing.T) {
	tests := []struct {
		name string
		id   string
		body string
		want int
	}{
		{"DefaultKey", "pak0", "", fiber.StatusOK},
		{"ExplicitKey", "pak1", `{"key":"0xOTHER"}`, fiber.StatusOK},
		{"WrongKey", "pak1", `{"key":"0xBAD"}`, fiber.StatusUnprocessableEntity},
		{"BadBody", "pak1", `{`, fiber.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, nil)
			req := httptest.NewRequest("POST", "/packages/"+tt.id+"/open", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")

			resp, err := f.app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

func TestHandleOpen_WrongKeyHidesKey(t *testing.T) {
	f := newFixture(t, nil)
	req := httptest.NewRequest("POST", "/packages/pak1/open", strings.NewReader(`{"key":"0xSECRET"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.NotContains(t, body["error"], "0xSECRET")
	assert.False(t, f.engine.Registry().IsOpen("pak1"))
}

func TestHandleCatalog(t *testing.T) {
	t.Run("Disabled", func(t *testing.T) {
		f := newFixture(t, nil)
		resp, err := f.app.Test(httptest.NewRequest("GET", "/packages/catalog", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
	})

	t.Run("Enabled", func(t *testing.T) {
		f := newFixture(t, newCatalog(t))
		_, err := f.service.Open(context.Background(), "pak0", "")
		require.NoError(t, err)

		resp, err := f.app.Test(httptest.NewRequest("GET", "/packages/catalog", nil))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		var rows []database.Container
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&rows))
		require.Len(t, rows, 1)
		assert.Equal(t, "pak0", rows[0].ContainerID)
	})
}
