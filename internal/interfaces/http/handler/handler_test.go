package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/branchstock/backend/internal/application/catalog"
	"github.com/branchstock/backend/internal/application/movement"
	partnerapp "github.com/branchstock/backend/internal/application/partner"
	"github.com/branchstock/backend/internal/application/reconciliation"
	"github.com/branchstock/backend/internal/domain/shared"
	"github.com/branchstock/backend/internal/infrastructure/cache"
	"github.com/branchstock/backend/internal/infrastructure/persistence"
	"github.com/branchstock/backend/internal/interfaces/http/dto"
	"github.com/branchstock/backend/internal/interfaces/http/middleware"
	"github.com/branchstock/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *dto.ErrorInfo  `json:"error"`
}

type testAPI struct {
	engine *gin.Engine
}

func newTestAPI(t *testing.T, opts ...movement.Option) *testAPI {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, persistence.AutoMigrate(db))

	articles := persistence.NewGormArticleRepository(db)
	items := persistence.NewGormItemRepository(db)
	customers := persistence.NewGormCustomerRepository(db)
	queries := reconciliation.NewQueryService(
		persistence.NewGormSaleTransactionRepository(db),
		persistence.NewGormSalesReturnRepository(db),
		persistence.NewGormStockEntryRepository(db),
	)
	movements := movement.NewService(persistence.NewGormTransactionScope(db), opts...)

	engine := gin.New()
	engine.Use(middleware.RequestID())
	routes := Routes{
		Stock:     NewStockHandler(movements, queries),
		Returns:   NewReturnHandler(movements, queries),
		Customers: NewCustomerHandler(partnerapp.NewCustomerService(customers), queries),
		Items:     NewItemHandler(catalog.NewItemService(items, articles)),
		Articles:  NewArticleHandler(catalog.NewArticleService(articles)),
	}
	router.NewRouter(engine).Register(routes.Groups()...).Setup()
	return &testAPI{engine: engine}
}

func (a *testAPI) do(t *testing.T, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	return a.doWithHeader(t, method, path, body, nil)
}

func (a *testAPI) doWithHeader(t *testing.T, method, path string, body any, header http.Header) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, "/api/v1"+path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header[k] = v
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func (a *testAPI) createArticle(t *testing.T, name string, branchID uuid.UUID) catalog.ArticleResponse {
	t.Helper()
	w, env := a.do(t, http.MethodPost, "/articles", gin.H{"name": name, "code": "AR-1", "branch_id": branchID})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var article catalog.ArticleResponse
	require.NoError(t, json.Unmarshal(env.Data, &article))
	return article
}

func (a *testAPI) createItem(t *testing.T) uuid.UUID {
	t.Helper()
	branchID := uuid.New()
	article := a.createArticle(t, "Polo "+uuid.NewString()[:8], branchID)
	w, env := a.do(t, http.MethodPost, "/items", gin.H{
		"name": "Polo", "size": "M",
		"article_id": article.ID, "branch_id": branchID,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var item catalog.ItemResponse
	require.NoError(t, json.Unmarshal(env.Data, &item))
	return item.ID
}

func (a *testAPI) createCustomer(t *testing.T, email string) uuid.UUID {
	t.Helper()
	w, env := a.do(t, http.MethodPost, "/customers", gin.H{"name": "Ayesha", "email": email, "branch_number": 2})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var customer partnerapp.CustomerResponse
	require.NoError(t, json.Unmarshal(env.Data, &customer))
	return customer.ID
}

func (a *testAPI) item(t *testing.T, id uuid.UUID) catalog.ItemResponse {
	t.Helper()
	w, env := a.do(t, http.MethodGet, "/items/"+id.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var item catalog.ItemResponse
	require.NoError(t, json.Unmarshal(env.Data, &item))
	return item
}

func (a *testAPI) customer(t *testing.T, id uuid.UUID) partnerapp.CustomerResponse {
	t.Helper()
	w, env := a.do(t, http.MethodGet, "/customers/"+id.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var customer partnerapp.CustomerResponse
	require.NoError(t, json.Unmarshal(env.Data, &customer))
	return customer
}

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestStockHandler_Add(t *testing.T) {
	api := newTestAPI(t)
	itemID := api.createItem(t)
	branchID := uuid.New()

	w, env := api.do(t, http.MethodPost, "/stock", gin.H{
		"branch_id": branchID, "branch_name": "Mall Road", "branch_number": 3,
		"article_id": uuid.New(), "article_name": "Polo", "item_id": itemID,
		"qty": "5", "purchase": "120", "invoice_no": "P-1", "date": 1700000000,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.True(t, env.Success)

	var entry movement.StockEntryResponse
	require.NoError(t, json.Unmarshal(env.Data, &entry))
	assert.True(t, entry.TotalAmount.Equal(dec(600)))
	assert.Equal(t, int64(1700000000), entry.Date)

	item := api.item(t, itemID)
	assert.True(t, item.Qty.Equal(dec(5)))
	assert.True(t, item.InQty.Equal(dec(5)))

	t.Run("branch query", func(t *testing.T) {
		w, env := api.do(t, http.MethodPost, "/stock/branch", gin.H{"branch_id": branchID})
		require.Equal(t, http.StatusOK, w.Code)
		var entries []movement.StockEntryResponse
		require.NoError(t, json.Unmarshal(env.Data, &entries))
		assert.Len(t, entries, 1)

		w, _ = api.do(t, http.MethodPost, "/stock/branch", gin.H{})
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w, env = api.do(t, http.MethodPost, "/stock/branch", gin.H{"all": true})
		require.Equal(t, http.StatusOK, w.Code)
		require.NoError(t, json.Unmarshal(env.Data, &entries))
		assert.Len(t, entries, 1)
	})

	t.Run("range query", func(t *testing.T) {
		w, env := api.do(t, http.MethodPost, "/stock/range", gin.H{"from": 1600000000, "to": 1700000000})
		require.Equal(t, http.StatusOK, w.Code)
		var entries []movement.StockEntryResponse
		require.NoError(t, json.Unmarshal(env.Data, &entries))
		assert.Len(t, entries, 1)

		w, env = api.do(t, http.MethodPost, "/stock/range", gin.H{"from": 1, "to": 2})
		require.Equal(t, http.StatusOK, w.Code)
		require.NoError(t, json.Unmarshal(env.Data, &entries))
		assert.Empty(t, entries)
	})
}

func TestStockHandler_AddRejects(t *testing.T) {
	api := newTestAPI(t)
	itemID := api.createItem(t)
	base := func() gin.H {
		return gin.H{
			"branch_id": uuid.New(), "article_id": uuid.New(), "item_id": itemID,
			"qty": "1", "purchase": "10",
		}
	}

	t.Run("zero quantity", func(t *testing.T) {
		body := base()
		body["qty"] = "0"
		w, env := api.do(t, http.MethodPost, "/stock", body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeValidation, env.Error.Code)
	})

	t.Run("unknown item", func(t *testing.T) {
		body := base()
		body["item_id"] = uuid.New()
		w, env := api.do(t, http.MethodPost, "/stock", body)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, dto.ErrCodeNotFound, env.Error.Code)
		assert.True(t, api.item(t, itemID).Qty.IsZero())
	})

	t.Run("malformed id", func(t *testing.T) {
		body := base()
		body["item_id"] = "not-a-uuid"
		w, env := api.do(t, http.MethodPost, "/stock", body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeInvalidJSON, env.Error.Code)
	})
}

func TestStockHandler_IdempotencyKey(t *testing.T) {
	store := cache.NewInMemoryIdempotencyStore()
	t.Cleanup(func() { _ = store.Close() })
	api := newTestAPI(t, movement.WithIdempotency(store, shared.DefaultIdempotencyConfig()))
	itemID := api.createItem(t)

	body := gin.H{
		"branch_id": uuid.New(), "article_id": uuid.New(), "item_id": itemID,
		"qty": "4", "purchase": "10",
	}
	header := http.Header{"Idempotency-Key": []string{"truck-17-unload"}}

	w, _ := api.doWithHeader(t, http.MethodPost, "/stock", body, header)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w, env := api.doWithHeader(t, http.MethodPost, "/stock", body, header)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, dto.ErrCodeAlreadyExists, env.Error.Code)
	assert.True(t, api.item(t, itemID).Qty.Equal(dec(4)))
}

func TestReturnHandler_Lifecycle(t *testing.T) {
	api := newTestAPI(t)
	itemA := api.createItem(t)
	itemB := api.createItem(t)
	customerID := api.createCustomer(t, "ayesha@example.com")

	w, env := api.do(t, http.MethodPost, "/returns", gin.H{
		"customer_id": customerID, "invoice_no": "R-7", "date": 1700000000, "discount": "5",
		"items": []gin.H{
			{"item_id": itemA, "article_name": "Polo", "qty": "2", "price": "10", "purchase": "6", "amount": "20"},
			{"item_id": itemB, "article_name": "Tee", "qty": "1", "price": "15", "purchase": "9", "amount": "15"},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var ret movement.SalesReturnResponse
	require.NoError(t, json.Unmarshal(env.Data, &ret))
	assert.True(t, ret.TotalAmount.Equal(dec(35)))
	assert.Len(t, ret.LineIDs, 2)

	customer := api.customer(t, customerID)
	assert.True(t, customer.ReturnAmount.Equal(dec(35)))
	assert.True(t, customer.Remaining.Equal(dec(-35)))
	assert.True(t, api.item(t, itemA).Qty.Equal(dec(2)))

	w, env = api.do(t, http.MethodGet, "/customers/"+customerID.String()+"/bills", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var bills []reconciliation.BillNumberResponse
	require.NoError(t, json.Unmarshal(env.Data, &bills))
	require.Len(t, bills, 1)
	assert.Equal(t, "R-7", bills[0].InvoiceNo)

	w, env = api.do(t, http.MethodPost, "/returns/list", gin.H{"customer_id": customerID})
	require.Equal(t, http.StatusOK, w.Code)
	var lines []reconciliation.ReturnLineResponse
	require.NoError(t, json.Unmarshal(env.Data, &lines))
	assert.Len(t, lines, 2)

	w, env = api.do(t, http.MethodDelete, "/returns/invoice", gin.H{"customer_id": customerID, "invoice_no": "R-7"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var result movement.DeleteInvoiceResult
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Equal(t, 1, result.ReturnsRemoved)
	assert.Equal(t, 2, result.LinesReversed)
	assert.True(t, result.TotalAmount.Equal(dec(35)))
	assert.True(t, result.Discount.Equal(dec(5)))

	customer = api.customer(t, customerID)
	assert.True(t, customer.ReturnAmount.IsZero())
	assert.True(t, customer.Remaining.IsZero())
	assert.True(t, api.item(t, itemA).Qty.IsZero())

	t.Run("deleting again is a no-op", func(t *testing.T) {
		w, env := api.do(t, http.MethodDelete, "/returns/invoice", gin.H{"customer_id": customerID, "invoice_no": "R-7"})
		require.Equal(t, http.StatusOK, w.Code)
		require.NoError(t, json.Unmarshal(env.Data, &result))
		assert.Zero(t, result.ReturnsRemoved)
	})
}

func TestReturnHandler_CreateRejects(t *testing.T) {
	api := newTestAPI(t)
	itemID := api.createItem(t)

	t.Run("empty items", func(t *testing.T) {
		w, env := api.do(t, http.MethodPost, "/returns", gin.H{
			"customer_id": uuid.New(), "invoice_no": "R-1", "items": []gin.H{},
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeValidation, env.Error.Code)
	})

	t.Run("unknown customer", func(t *testing.T) {
		w, env := api.do(t, http.MethodPost, "/returns", gin.H{
			"customer_id": uuid.New(), "invoice_no": "R-1",
			"items": []gin.H{{"item_id": itemID, "qty": "1", "price": "1", "purchase": "1", "amount": "1"}},
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, dto.ErrCodeNotFound, env.Error.Code)
		assert.True(t, api.item(t, itemID).Qty.IsZero())
	})
}

func TestCustomerHandler_CRUD(t *testing.T) {
	api := newTestAPI(t)
	id := api.createCustomer(t, "bilal@example.com")

	t.Run("duplicate email", func(t *testing.T) {
		w, env := api.do(t, http.MethodPost, "/customers", gin.H{"name": "Other", "email": "bilal@example.com"})
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, dto.ErrCodeAlreadyExists, env.Error.Code)
	})

	t.Run("list by branch", func(t *testing.T) {
		w, env := api.do(t, http.MethodGet, "/customers?branch_number=2", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var list []partnerapp.CustomerResponse
		require.NoError(t, json.Unmarshal(env.Data, &list))
		assert.Len(t, list, 1)

		w, env = api.do(t, http.MethodGet, "/customers?branch_number=9", nil)
		require.Equal(t, http.StatusOK, w.Code)
		require.NoError(t, json.Unmarshal(env.Data, &list))
		assert.Empty(t, list)

		w, env = api.do(t, http.MethodGet, "/customers", nil)
		require.Equal(t, http.StatusOK, w.Code)
		require.NoError(t, json.Unmarshal(env.Data, &list))
		assert.Len(t, list, 1)
	})

	t.Run("update", func(t *testing.T) {
		w, env := api.do(t, http.MethodPut, "/customers/"+id.String(), gin.H{"address": "12 Canal Bank"})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var customer partnerapp.CustomerResponse
		require.NoError(t, json.Unmarshal(env.Data, &customer))
		assert.Equal(t, "12 Canal Bank", customer.Address)
		assert.Equal(t, "bilal@example.com", customer.Email)
	})

	t.Run("bad path id", func(t *testing.T) {
		w, env := api.do(t, http.MethodGet, "/customers/42", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeValidation, env.Error.Code)
	})

	t.Run("delete", func(t *testing.T) {
		w, _ := api.do(t, http.MethodDelete, "/customers/"+id.String(), nil)
		assert.Equal(t, http.StatusNoContent, w.Code)

		w, env := api.do(t, http.MethodGet, "/customers/"+id.String(), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, dto.ErrCodeNotFound, env.Error.Code)
	})
}

func TestArticleHandler_CRUD(t *testing.T) {
	api := newTestAPI(t)
	branchID := uuid.New()
	article := api.createArticle(t, "Kurta", branchID)
	api.createArticle(t, "Shalwar", uuid.New())

	t.Run("duplicate name at the branch", func(t *testing.T) {
		w, env := api.do(t, http.MethodPost, "/articles", gin.H{"name": "Kurta", "branch_id": branchID})
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, dto.ErrCodeAlreadyExists, env.Error.Code)
	})

	t.Run("list all and by branch", func(t *testing.T) {
		w, env := api.do(t, http.MethodGet, "/articles", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var list []catalog.ArticleResponse
		require.NoError(t, json.Unmarshal(env.Data, &list))
		assert.Len(t, list, 2)

		w, env = api.do(t, http.MethodGet, "/articles/branch/"+branchID.String(), nil)
		require.Equal(t, http.StatusOK, w.Code)
		require.NoError(t, json.Unmarshal(env.Data, &list))
		require.Len(t, list, 1)
		assert.Equal(t, article.ID, list[0].ID)
	})

	t.Run("item needs an existing article", func(t *testing.T) {
		w, env := api.do(t, http.MethodPost, "/items", gin.H{
			"name": "Polo", "size": "M", "article_id": uuid.New(), "branch_id": branchID,
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, dto.ErrCodeNotFound, env.Error.Code)
	})

	t.Run("update", func(t *testing.T) {
		w, env := api.do(t, http.MethodPut, "/articles/"+article.ID.String(), gin.H{"description": "Cotton, hand stitched"})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var updated catalog.ArticleResponse
		require.NoError(t, json.Unmarshal(env.Data, &updated))
		assert.Equal(t, "Cotton, hand stitched", updated.Description)
		assert.Equal(t, "Kurta", updated.Name)
	})

	t.Run("bad branch id", func(t *testing.T) {
		w, env := api.do(t, http.MethodGet, "/articles/branch/main", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeValidation, env.Error.Code)
	})

	t.Run("delete", func(t *testing.T) {
		w, _ := api.do(t, http.MethodDelete, "/articles/"+article.ID.String(), nil)
		assert.Equal(t, http.StatusNoContent, w.Code)

		w, env := api.do(t, http.MethodGet, "/articles/"+article.ID.String(), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, dto.ErrCodeNotFound, env.Error.Code)
	})
}

func TestBaseHandler_HandleError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
		status   int
	}{
		{"validation", shared.NewValidationError("bad"), dto.ErrCodeValidation, http.StatusBadRequest},
		{"not found", shared.NewNotFoundError("gone"), dto.ErrCodeNotFound, http.StatusNotFound},
		{"conflict", shared.NewConflictError("dup"), dto.ErrCodeAlreadyExists, http.StatusConflict},
		{"store failure", shared.NewPersistenceError("items.apply_delta", errors.New("disk full")), dto.ErrCodePersistence, http.StatusInternalServerError},
		{"transient store failure", shared.NewTransientError("items.apply_delta", errors.New("deadlock")), dto.ErrCodeUnavailable, http.StatusServiceUnavailable},
		{"unknown", errors.New("boom"), dto.ErrCodeInternal, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := gin.New()
			engine.Use(middleware.RequestID())
			h := &BaseHandler{}
			engine.GET("/", func(c *gin.Context) { h.HandleError(c, tt.err) })

			w := httptest.NewRecorder()
			engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

			assert.Equal(t, tt.status, w.Code)
			var env envelope
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
			assert.False(t, env.Success)
			assert.Equal(t, tt.wantCode, env.Error.Code)
			assert.NotEmpty(t, env.Error.RequestID)
			assert.NotContains(t, env.Error.Message, "disk full")
		})
	}
}

type stubPinger struct{ err error }

func (s stubPinger) PingContext(context.Context) error { return s.err }

func TestSystemHandler_Health(t *testing.T) {
	for _, tt := range []struct {
		name   string
		err    error
		status int
		state  string
	}{
		{"healthy", nil, http.StatusOK, "ok"},
		{"database down", errors.New("refused"), http.StatusServiceUnavailable, "error"},
	} {
		t.Run(tt.name, func(t *testing.T) {
			engine := gin.New()
			engine.GET("/health", NewSystemHandler(stubPinger{tt.err}).Health)

			w := httptest.NewRecorder()
			engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tt.status, w.Code)
			var body map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.state, body["database"])
		})
	}
}
