package product

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"saajhamandi/internal/catalog"
	"saajhamandi/internal/domain"
)

func newTestRouter(ctrl *Controller) http.Handler {
	r := chi.NewRouter()
	r.Get("/products", ctrl.HandleListProducts)
	r.Get("/products/{name}", ctrl.HandleGetProduct)
	return r
}

func get(h http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHandleListProducts_All(t *testing.T) {
	h := newTestRouter(NewModule(catalog.Default(), zap.NewNop()))

	rec := get(h, "/products")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ListProductsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.NotEmpty(t, resp.TraceID)
	require.Len(t, resp.Products, 17)
	assert.Equal(t, "tomato", resp.Products[0].Name)
	assert.Equal(t, "Tomato", resp.Products[0].DisplayName)
	assert.Equal(t, "₹50.00 / kg", resp.Products[0].PriceLabel)
	assert.Equal(t, []string{"tomatoes"}, resp.Products[0].Variants)
	assert.Equal(t, []string{}, resp.Products[1].Variants)
}

func TestHandleListProducts_ByCategory(t *testing.T) {
	h := newTestRouter(NewModule(catalog.Default(), zap.NewNop()))

	rec := get(h, "/products?category=Vegetables")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ListProductsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))

	var names []string
	for _, p := range resp.Products {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"tomato", "potato", "onion"}, names)
}

func TestHandleListProducts_UnknownCategory(t *testing.T) {
	h := newTestRouter(NewModule(catalog.Default(), zap.NewNop()))

	rec := get(h, "/products?category=toys")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ListProductsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Empty(t, resp.Products)
	assert.NotNil(t, resp.Products)
}

func TestHandleGetProduct_ByVariant(t *testing.T) {
	h := newTestRouter(NewModule(catalog.Default(), zap.NewNop()))

	rec := get(h, "/products/Yogurt")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ProductDTO
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.NotEmpty(t, resp.TraceID)
	assert.Equal(t, "curd", resp.Name)
	assert.Equal(t, "cup", resp.Unit)
	assert.Equal(t, 40.0, resp.Price)
	assert.Equal(t, []string{"1 cup", "2 cups"}, resp.PackageSizes)
}

func TestHandleGetProduct_ByID(t *testing.T) {
	h := newTestRouter(NewModule(catalog.Default(), zap.NewNop()))

	rec := get(h, "/products/16")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ProductDTO
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "butter", resp.Name)

	rec = get(h, "/products/999")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleGetProduct_NotFound(t *testing.T) {
	h := newTestRouter(NewModule(catalog.Default(), zap.NewNop()))

	rec := get(h, "/products/mango")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleGetProduct_TooLong(t *testing.T) {
	h := newTestRouter(NewModule(catalog.Default(), zap.NewNop()))

	long := make([]byte, maxNameLength+1)
	for i := range long {
		long[i] = 'a'
	}

	rec := get(h, "/products/"+string(long))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

type mockService struct {
	ListByCategoryFunc func(ctx context.Context, category string) ([]domain.CatalogEntry, error)
	FindByNameFunc     func(ctx context.Context, name string) (domain.CatalogEntry, error)
}

func (m *mockService) ListByCategory(ctx context.Context, category string) ([]domain.CatalogEntry, error) {
	return m.ListByCategoryFunc(ctx, category)
}

func (m *mockService) FindByName(ctx context.Context, name string) (domain.CatalogEntry, error) {
	return m.FindByNameFunc(ctx, name)
}

func TestHandleListProducts_ServiceError(t *testing.T) {
	svc := &mockService{
		ListByCategoryFunc: func(ctx context.Context, category string) ([]domain.CatalogEntry, error) {
			return nil, errors.New("catalog unavailable")
		},
	}
	h := newTestRouter(NewController(NewBrowseUseCase(svc), zap.NewNop()))

	rec := get(h, "/products")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
