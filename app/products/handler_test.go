package products

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/ormsample/inventory/models"
)

// --- Mock Repository ---

type MockProductRepo struct {
	Products   []models.Product
	RefreshErr error
	ListErr    error
	CreateErr  error
	UpdateErr  error
	DeleteErr  error

	RefreshCalls int
	LastCreated  *models.Product
	LastUpdated  *models.Product
	LastDeleted  uint
}

func (m *MockProductRepo) GetAllProducts() ([]models.Product, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return m.Products, nil
}

func (m *MockProductRepo) CreateProduct(draft *models.Product) error {
	m.LastCreated = draft
	if m.CreateErr != nil {
		return m.CreateErr
	}
	draft.ID = 42
	draft.CreatedAt = time.Now()
	draft.UpdatedAt = draft.CreatedAt
	return nil
}

func (m *MockProductRepo) UpdateProduct(product *models.Product) error {
	m.LastUpdated = product
	return m.UpdateErr
}

func (m *MockProductRepo) DeleteProduct(id uint) error {
	m.LastDeleted = id
	return m.DeleteErr
}

func (m *MockProductRepo) Refresh() error {
	m.RefreshCalls++
	return m.RefreshErr
}

// --- Tests: GET /products ---

func TestHandleList(t *testing.T) {
	testCases := []struct {
		name               string
		mockRepoSetup      func() *MockProductRepo
		expectedStatusCode int
		checkResponse      func(t *testing.T, rec *httptest.ResponseRecorder)
		checkRepoCall      func(t *testing.T, repo *MockProductRepo)
	}{
		{
			name: "Success with products",
			mockRepoSetup: func() *MockProductRepo {
				return &MockProductRepo{
					Products: []models.Product{
						{
							ID:       1,
							Name:     "Sample product 1",
							Price:    decimal.NewFromInt(1000),
							Quantity: 10,
							Category: models.Category{ID: 1, Name: "Electronics"},
						},
						{
							ID:       2,
							Name:     "Sample product 2",
							Price:    decimal.NewFromInt(2000),
							Quantity: 5,
							Category: models.Category{ID: 1, Name: "Electronics"},
						},
					},
				}
			},
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp Response
				err := json.NewDecoder(rec.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Len(t, resp.Products, 2)
				assert.Equal(t, "Sample product 1", resp.Products[0].Name)
				assert.Equal(t, 1000.0, resp.Products[0].Price)
				assert.Equal(t, "Electronics", resp.Products[0].Category.Name)
			},
			checkRepoCall: func(t *testing.T, repo *MockProductRepo) {
				assert.Equal(t, 1, repo.RefreshCalls, "listing refreshes tracked entities first")
			},
		},
		{
			name: "Refresh failure surfaces and aborts",
			mockRepoSetup: func() *MockProductRepo {
				return &MockProductRepo{RefreshErr: models.ErrStoreUnavailable}
			},
			expectedStatusCode: http.StatusServiceUnavailable,
		},
		{
			name: "Store failure surfaces as message",
			mockRepoSetup: func() *MockProductRepo {
				return &MockProductRepo{ListErr: models.ErrStoreUnavailable}
			},
			expectedStatusCode: http.StatusServiceUnavailable,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var errResp map[string]string
				err := json.NewDecoder(rec.Body).Decode(&errResp)
				assert.NoError(t, err)
				assert.Contains(t, errResp["error"], "store unavailable")
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mockRepo := tc.mockRepoSetup()
			handler := NewProductsHandler(mockRepo)
			req := httptest.NewRequest("GET", "/products", nil)
			rec := httptest.NewRecorder()

			handler.HandleList(rec, req)

			assert.Equal(t, tc.expectedStatusCode, rec.Code)
			if tc.checkResponse != nil {
				tc.checkResponse(t, rec)
			}
			if tc.checkRepoCall != nil {
				tc.checkRepoCall(t, mockRepo)
			}
		})
	}
}

// --- Tests: POST /products ---

func TestHandleCreate(t *testing.T) {
	testCases := []struct {
		name               string
		requestBody        string
		mockRepoSetup      func() *MockProductRepo
		expectedStatusCode int
		checkRepoCall      func(t *testing.T, repo *MockProductRepo)
	}{
		{
			name:        "Success",
			requestBody: `{"name":"Widget","description":"","price":"9.99","quantity":"3","category_id":2}`,
			mockRepoSetup: func() *MockProductRepo {
				return &MockProductRepo{}
			},
			expectedStatusCode: http.StatusCreated,
			checkRepoCall: func(t *testing.T, repo *MockProductRepo) {
				assert.NotNil(t, repo.LastCreated)
				assert.Equal(t, "Widget", repo.LastCreated.Name)
				assert.True(t, repo.LastCreated.Price.Equal(decimal.RequireFromString("9.99")))
				assert.Equal(t, 3, repo.LastCreated.Quantity)
				assert.Equal(t, uint(2), repo.LastCreated.CategoryID)
			},
		},
		{
			name:        "Unparsable price and quantity default to zero",
			requestBody: `{"name":"Widget","price":"abc","quantity":"many","category_id":1}`,
			mockRepoSetup: func() *MockProductRepo {
				return &MockProductRepo{}
			},
			expectedStatusCode: http.StatusCreated,
			checkRepoCall: func(t *testing.T, repo *MockProductRepo) {
				assert.NotNil(t, repo.LastCreated)
				assert.True(t, repo.LastCreated.Price.IsZero())
				assert.Equal(t, 0, repo.LastCreated.Quantity)
			},
		},
		{
			name:        "Missing name",
			requestBody: `{"description":"no name","price":"1.00","quantity":"1","category_id":1}`,
			mockRepoSetup: func() *MockProductRepo {
				return &MockProductRepo{}
			},
			expectedStatusCode: http.StatusBadRequest,
			checkRepoCall: func(t *testing.T, repo *MockProductRepo) {
				assert.Nil(t, repo.LastCreated, "the guard rejects before the repository is called")
			},
		},
		{
			name:        "Missing category",
			requestBody: `{"name":"Widget","price":"1.00","quantity":"1"}`,
			mockRepoSetup: func() *MockProductRepo {
				return &MockProductRepo{}
			},
			expectedStatusCode: http.StatusBadRequest,
			checkRepoCall: func(t *testing.T, repo *MockProductRepo) {
				assert.Nil(t, repo.LastCreated)
			},
		},
		{
			name:        "Invalid JSON body",
			requestBody: `{invalid`,
			mockRepoSetup: func() *MockProductRepo {
				return &MockProductRepo{}
			},
			expectedStatusCode: http.StatusBadRequest,
		},
		{
			name:        "Constraint violation from store",
			requestBody: `{"name":"Widget","price":"1.00","quantity":"1","category_id":99}`,
			mockRepoSetup: func() *MockProductRepo {
				return &MockProductRepo{CreateErr: models.ErrConstraintViolation}
			},
			expectedStatusCode: http.StatusConflict,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mockRepo := tc.mockRepoSetup()
			handler := NewProductsHandler(mockRepo)
			req := httptest.NewRequest("POST", "/products", strings.NewReader(tc.requestBody))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()

			handler.HandleCreate(rec, req)

			assert.Equal(t, tc.expectedStatusCode, rec.Code)
			if tc.checkRepoCall != nil {
				tc.checkRepoCall(t, mockRepo)
			}
		})
	}
}

// --- Tests: PUT /products/{id} ---

func TestHandleUpdate(t *testing.T) {
	testCases := []struct {
		name               string
		productID          string
		requestBody        string
		mockRepoSetup      func() *MockProductRepo
		expectedStatusCode int
		checkRepoCall      func(t *testing.T, repo *MockProductRepo)
	}{
		{
			name:        "Success",
			productID:   "7",
			requestBody: `{"name":"Widget","price":"9.99","quantity":"5","category_id":2}`,
			mockRepoSetup: func() *MockProductRepo {
				return &MockProductRepo{}
			},
			expectedStatusCode: http.StatusOK,
			checkRepoCall: func(t *testing.T, repo *MockProductRepo) {
				assert.NotNil(t, repo.LastUpdated)
				assert.Equal(t, uint(7), repo.LastUpdated.ID)
				assert.Equal(t, 5, repo.LastUpdated.Quantity)
			},
		},
		{
			name:        "Target vanished",
			productID:   "7",
			requestBody: `{"name":"Widget","price":"9.99","quantity":"5","category_id":2}`,
			mockRepoSetup: func() *MockProductRepo {
				return &MockProductRepo{UpdateErr: models.ErrProductNotFound}
			},
			expectedStatusCode: http.StatusNotFound,
		},
		{
			name:        "Invalid id",
			productID:   "abc",
			requestBody: `{"name":"Widget","category_id":1}`,
			mockRepoSetup: func() *MockProductRepo {
				return &MockProductRepo{}
			},
			expectedStatusCode: http.StatusBadRequest,
			checkRepoCall: func(t *testing.T, repo *MockProductRepo) {
				assert.Nil(t, repo.LastUpdated)
			},
		},
		{
			name:        "Missing name",
			productID:   "7",
			requestBody: `{"price":"9.99","quantity":"5","category_id":2}`,
			mockRepoSetup: func() *MockProductRepo {
				return &MockProductRepo{}
			},
			expectedStatusCode: http.StatusBadRequest,
			checkRepoCall: func(t *testing.T, repo *MockProductRepo) {
				assert.Nil(t, repo.LastUpdated)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mockRepo := tc.mockRepoSetup()
			handler := NewProductsHandler(mockRepo)
			req := httptest.NewRequest("PUT", "/products/"+tc.productID, strings.NewReader(tc.requestBody))
			req.SetPathValue("id", tc.productID)
			rec := httptest.NewRecorder()

			handler.HandleUpdate(rec, req)

			assert.Equal(t, tc.expectedStatusCode, rec.Code)
			if tc.checkRepoCall != nil {
				tc.checkRepoCall(t, mockRepo)
			}
		})
	}
}

// --- Tests: DELETE /products/{id} ---

func TestHandleDelete(t *testing.T) {
	testCases := []struct {
		name               string
		productID          string
		mockRepoSetup      func() *MockProductRepo
		expectedStatusCode int
		checkRepoCall      func(t *testing.T, repo *MockProductRepo)
	}{
		{
			name:      "Success",
			productID: "2",
			mockRepoSetup: func() *MockProductRepo {
				return &MockProductRepo{}
			},
			expectedStatusCode: http.StatusOK,
			checkRepoCall: func(t *testing.T, repo *MockProductRepo) {
				assert.Equal(t, uint(2), repo.LastDeleted)
			},
		},
		{
			name:      "Already deleted",
			productID: "2",
			mockRepoSetup: func() *MockProductRepo {
				return &MockProductRepo{DeleteErr: models.ErrProductNotFound}
			},
			expectedStatusCode: http.StatusNotFound,
		},
		{
			name:      "Invalid id",
			productID: "two",
			mockRepoSetup: func() *MockProductRepo {
				return &MockProductRepo{}
			},
			expectedStatusCode: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mockRepo := tc.mockRepoSetup()
			handler := NewProductsHandler(mockRepo)
			req := httptest.NewRequest("DELETE", "/products/"+tc.productID, nil)
			req.SetPathValue("id", tc.productID)
			rec := httptest.NewRecorder()

			handler.HandleDelete(rec, req)

			assert.Equal(t, tc.expectedStatusCode, rec.Code)
			if tc.checkRepoCall != nil {
				tc.checkRepoCall(t, mockRepo)
			}
		})
	}
}
