package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hc2580411/vwms/internal/infra"
	"github.com/hc2580411/vwms/internal/repository"
	"github.com/hc2580411/vwms/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProductsRouter(t *testing.T) *gin.Engine {
	t.Helper()
	db, err := infra.NewDatabase(":memory:")
	require.NoError(t, err)
	require.NoError(t, infra.EnsureSchema(db))
	blobs, err := infra.NewFilesystemBlobStore(t.TempDir())
	require.NoError(t, err)
	snapshots := infra.NewSnapshotStore(db, blobs)

	productRepo := repository.NewProductRepository(db)
	logRepo := repository.NewInventoryLogRepository(db)
	catalogSvc := service.NewCatalogService(
		productRepo,
		repository.NewCategoryRepository(db),
		repository.NewUnitRepository(db),
		repository.NewContactRepository(db),
		logRepo,
		snapshots,
	)
	ledgerSvc := service.NewLedgerService(
		repository.NewOrderRepository(db),
		repository.NewPurchaseOrderRepository(db),
		productRepo,
		logRepo,
		snapshots,
	)

	h := NewProductsHandler(catalogSvc, ledgerSvc)
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/products", h.Create)
	r.GET("/products", h.List)
	r.GET("/products/:id", h.GetByID)
	r.PATCH("/products/:id/stock", h.AdjustStock)
	return r
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateProductEndpoint(t *testing.T) {
	r := newProductsRouter(t)

	w := do(r, http.MethodPost, "/products", `{"name":"HDMI Cable","price":15,"cost":4,"stock":20}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "HDMI Cable")
}

func TestCreateProductValidation(t *testing.T) {
	r := newProductsRouter(t)

	// Missing required name → field-level validation error.
	w := do(r, http.MethodPost, "/products", `{"price":15}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid input")

	// Broken JSON → bad request.
	w = do(r, http.MethodPost, "/products", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdjustStockEndpoint(t *testing.T) {
	r := newProductsRouter(t)

	w := do(r, http.MethodPost, "/products", `{"name":"Adjustable","price":9,"cost":2,"stock":5}`)
	require.Equal(t, http.StatusCreated, w.Code)

	// Seed catalog occupies ids 1-3, so the new product is id 4.
	w = do(r, http.MethodPatch, "/products/4/stock", `{"delta":-2,"reason":"breakage"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"stock":3`)

	w = do(r, http.MethodPatch, "/products/999/stock", `{"delta":1}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(r, http.MethodPatch, "/products/abc/stock", `{"delta":1}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
