package cart

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/burgerhub/menu-ordering/models"
	"github.com/burgerhub/menu-ordering/storage"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// --- Mock Product Lookup ---

type MockProductLookup struct {
	Products map[string]models.Product
	Err      error
}

func (m *MockProductLookup) GetProduct(_ context.Context, id string) (*models.Product, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	p, ok := m.Products[id]
	if !ok {
		return nil, models.ErrProductNotFound
	}
	return &p, nil
}

// --- Helpers ---

var testLink = models.DeepLink{Host: "wa.me", Recipient: "5511999999999"}

func testProducts() *MockProductLookup {
	return &MockProductLookup{Products: map[string]models.Product{
		"101": {ID: "101", Name: "X-Bacon", Price: decimal.RequireFromString("32.90"), CategoryID: "1", IsAvailable: true},
		"102": {ID: "102", Name: "Smash Salad", Price: decimal.RequireFromString("24.50"), CategoryID: "1", IsAvailable: true},
		"105": {ID: "105", Name: "Heineken", Price: decimal.RequireFromString("14.00"), CategoryID: "4", IsAvailable: false},
	}}
}

func newTestHandler(t *testing.T, docs storage.Documents) (*CartHandler, *models.Cart) {
	t.Helper()
	c, err := models.LoadCart(context.Background(), docs)
	require.NoError(t, err)
	return NewCartHandler(c, testProducts(), testLink, models.DefaultRestaurantName, zap.NewNop()), c
}

func doJSON(t *testing.T, fn http.HandlerFunc, method, target, body, id string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if id != "" {
		req.SetPathValue("id", id)
	}
	rec := httptest.NewRecorder()
	fn(rec, req)
	return rec
}

func decodeCart(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

// --- Tests ---

func TestHandleGet_EmptyCart(t *testing.T) {
	handler, _ := newTestHandler(t, storage.NewMemory(0))

	rec := doJSON(t, handler.HandleGet, "GET", "/cart", "", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeCart(t, rec)
	assert.Empty(t, resp.Items)
	assert.Equal(t, 0, resp.Count)
	assert.Equal(t, "0,00", resp.TotalLabel)
}

func TestHandleAddItem(t *testing.T) {
	testCases := []struct {
		name               string
		requestBody        string
		lookup             *MockProductLookup
		expectedStatusCode int
		expectedError      string
		expectedCount      int
	}{
		{
			name:               "Success",
			requestBody:        `{"productId":"101"}`,
			lookup:             testProducts(),
			expectedStatusCode: http.StatusOK,
			expectedCount:      1,
		},
		{
			name:               "Unavailable product",
			requestBody:        `{"productId":"105"}`,
			lookup:             testProducts(),
			expectedStatusCode: http.StatusConflict,
			expectedError:      "Produto indisponível",
		},
		{
			name:               "Unknown product",
			requestBody:        `{"productId":"999"}`,
			lookup:             testProducts(),
			expectedStatusCode: http.StatusNotFound,
			expectedError:      "Product not found",
		},
		{
			name:               "Missing product id",
			requestBody:        `{}`,
			lookup:             testProducts(),
			expectedStatusCode: http.StatusBadRequest,
			expectedError:      "Invalid JSON body",
		},
		{
			name:               "Lookup failure",
			requestBody:        `{"productId":"101"}`,
			lookup:             &MockProductLookup{Err: errors.New("db down")},
			expectedStatusCode: http.StatusInternalServerError,
			expectedError:      "Failed to retrieve product",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			c, err := models.LoadCart(context.Background(), storage.NewMemory(0))
			require.NoError(t, err)
			handler := NewCartHandler(c, tc.lookup, testLink, models.DefaultRestaurantName, zap.NewNop())

			// Act
			rec := doJSON(t, handler.HandleAddItem, "POST", "/cart/items", tc.requestBody, "")

			// Assert
			assert.Equal(t, tc.expectedStatusCode, rec.Code)
			if tc.expectedError != "" {
				var errResp map[string]string
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&errResp))
				assert.Equal(t, tc.expectedError, errResp["error"])
				assert.Equal(t, 0, c.Count())
				return
			}
			resp := decodeCart(t, rec)
			assert.Equal(t, tc.expectedCount, resp.Count)
		})
	}
}

func TestHandleAddItem_StorageFull(t *testing.T) {
	handler, c := newTestHandler(t, storage.NewMemory(10))

	rec := doJSON(t, handler.HandleAddItem, "POST", "/cart/items", `{"productId":"101"}`, "")

	assert.Equal(t, http.StatusInsufficientStorage, rec.Code)
	assert.Empty(t, c.Items())
}

func TestCartFlow(t *testing.T) {
	handler, _ := newTestHandler(t, storage.NewMemory(0))

	doJSON(t, handler.HandleAddItem, "POST", "/cart/items", `{"productId":"102"}`, "")
	doJSON(t, handler.HandleAddItem, "POST", "/cart/items", `{"productId":"101"}`, "")
	rec := doJSON(t, handler.HandleChangeQuantity, "PATCH", "/cart/items/102", `{"delta":1}`, "102")
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeCart(t, rec)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, "102", resp.Items[0].ProductID)
	assert.Equal(t, 2, resp.Items[0].Quantity)
	assert.Equal(t, "49,00", resp.Items[0].SubtotalLabel)
	assert.Equal(t, 3, resp.Count)
	assert.Equal(t, "81,90", resp.TotalLabel)

	rec = doJSON(t, handler.HandleSetObservation, "PUT", "/cart/items/102/observation", `{"observation":"sem cebola"}`, "102")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "sem cebola", decodeCart(t, rec).Items[0].Observation)

	rec = doJSON(t, handler.HandleChangeQuantity, "PATCH", "/cart/items/101", `{"delta":-5}`, "101")
	resp = decodeCart(t, rec)
	require.Len(t, resp.Items, 1, "line reaching zero is removed")
	assert.Equal(t, "102", resp.Items[0].ProductID)

	rec = doJSON(t, handler.HandleRemoveItem, "DELETE", "/cart/items/102", "", "102")
	assert.Empty(t, decodeCart(t, rec).Items)
}

func TestHandleClear(t *testing.T) {
	handler, c := newTestHandler(t, storage.NewMemory(0))
	doJSON(t, handler.HandleAddItem, "POST", "/cart/items", `{"productId":"101"}`, "")

	rec := doJSON(t, handler.HandleClear, "DELETE", "/cart", "", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, c.Count())
}

func TestHandleChangeQuantity_HugeDeltaKeepsLine(t *testing.T) {
	handler, _ := newTestHandler(t, storage.NewMemory(0))
	doJSON(t, handler.HandleAddItem, "POST", "/cart/items", `{"productId":"102"}`, "")

	rec := doJSON(t, handler.HandleChangeQuantity, "PATCH", "/cart/items/102", `{"delta":9223372036854775807}`, "102")

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeCart(t, rec)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "102", resp.Items[0].ProductID)
	assert.Positive(t, resp.Items[0].Quantity)
}

func TestHandleChangeQuantity_InvalidBody(t *testing.T) {
	handler, _ := newTestHandler(t, storage.NewMemory(0))

	rec := doJSON(t, handler.HandleChangeQuantity, "PATCH", "/cart/items/101", `{"delta":"x"}`, "101")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleCheckout(t *testing.T) {
	testCases := []struct {
		name               string
		requestBody        string
		fillCart           bool
		expectedStatusCode int
		expectedField      string
		expectedError      string
	}{
		{
			name:               "Success",
			requestBody:        `{"customerName":"Ana","location":"Mesa 4","paymentMethod":"card"}`,
			fillCart:           true,
			expectedStatusCode: http.StatusOK,
		},
		{
			name:               "Missing name",
			requestBody:        `{"customerName":" ","location":"Mesa 4"}`,
			fillCart:           true,
			expectedStatusCode: http.StatusBadRequest,
			expectedField:      "customerName",
		},
		{
			name:               "Missing location",
			requestBody:        `{"customerName":"Ana","location":""}`,
			fillCart:           true,
			expectedStatusCode: http.StatusBadRequest,
			expectedField:      "location",
		},
		{
			name:               "Unknown payment method",
			requestBody:        `{"customerName":"Ana","location":"Mesa 4","paymentMethod":"boleto"}`,
			fillCart:           true,
			expectedStatusCode: http.StatusBadRequest,
			expectedField:      "paymentMethod",
		},
		{
			name:               "Empty cart",
			requestBody:        `{"customerName":"Ana","location":"Mesa 4"}`,
			expectedStatusCode: http.StatusBadRequest,
			expectedError:      "Seu carrinho está vazio.",
		},
		{
			name:               "Invalid JSON body",
			requestBody:        `{`,
			fillCart:           true,
			expectedStatusCode: http.StatusBadRequest,
			expectedError:      "Invalid JSON body",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			handler, c := newTestHandler(t, storage.NewMemory(0))
			if tc.fillCart {
				doJSON(t, handler.HandleAddItem, "POST", "/cart/items", `{"productId":"102"}`, "")
				doJSON(t, handler.HandleAddItem, "POST", "/cart/items", `{"productId":"102"}`, "")
			}

			// Act
			rec := doJSON(t, handler.HandleCheckout, "POST", "/checkout", tc.requestBody, "")

			// Assert
			assert.Equal(t, tc.expectedStatusCode, rec.Code)
			if tc.expectedStatusCode != http.StatusOK {
				var errResp map[string]string
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&errResp))
				if tc.expectedField != "" {
					assert.Equal(t, tc.expectedField, errResp["field"])
				}
				if tc.expectedError != "" {
					assert.Equal(t, tc.expectedError, errResp["error"])
				}
				return
			}

			var resp CheckoutResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			assert.Contains(t, resp.Message, "*🍔 NOVO PEDIDO - KING BURGUER*")
			assert.Contains(t, resp.Message, "*Pagamento:* Cartão")
			assert.Contains(t, resp.Message, "2x Smash Salad")
			assert.Contains(t, resp.Message, "*💰 TOTAL: R$ 49,00*")

			u, err := url.Parse(resp.URL)
			require.NoError(t, err)
			assert.Equal(t, "wa.me", u.Host)
			assert.Equal(t, "/5511999999999", u.Path)
			assert.Equal(t, resp.Message, u.Query().Get("text"))

			assert.Equal(t, 2, c.Count(), "checkout leaves the cart untouched")
		})
	}
}
