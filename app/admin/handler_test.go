package admin

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/burgerhub/menu-ordering/auth"
	"github.com/burgerhub/menu-ordering/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestHandler(docs storage.Documents) *AdminHandler {
	session := auth.NewSession(docs, auth.StaticCredentials{Identifier: "admin@admin.com", Secret: "123456"})
	return NewAdminHandler(session, zap.NewNop())
}

func TestHandleLogin(t *testing.T) {
	testCases := []struct {
		name               string
		requestBody        string
		quota              int
		expectedStatusCode int
		expectedError      string
		expectedSession    bool
	}{
		{
			name:               "Valid credentials",
			requestBody:        `{"email":"admin@admin.com","password":"123456"}`,
			expectedStatusCode: http.StatusOK,
			expectedSession:    true,
		},
		{
			name:               "Wrong password",
			requestBody:        `{"email":"admin@admin.com","password":"nope"}`,
			expectedStatusCode: http.StatusUnauthorized,
			expectedError:      "Credenciais inválidas. Tente novamente.",
		},
		{
			name:               "Invalid JSON body",
			requestBody:        `nope`,
			expectedStatusCode: http.StatusBadRequest,
			expectedError:      "Invalid JSON body",
		},
		{
			name:               "Storage full",
			requestBody:        `{"email":"admin@admin.com","password":"123456"}`,
			quota:              2,
			expectedStatusCode: http.StatusInsufficientStorage,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			docs := storage.NewMemory(tc.quota)
			handler := newTestHandler(docs)
			req := httptest.NewRequest("POST", "/admin/login", strings.NewReader(tc.requestBody))
			rec := httptest.NewRecorder()

			// Act
			handler.HandleLogin(rec, req)

			// Assert
			assert.Equal(t, tc.expectedStatusCode, rec.Code)
			if tc.expectedError != "" {
				var errResp map[string]string
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&errResp))
				assert.Equal(t, tc.expectedError, errResp["error"])
			}

			ok, err := handler.session.IsAuthenticated(req.Context())
			require.NoError(t, err)
			assert.Equal(t, tc.expectedSession, ok)
		})
	}
}

func TestHandleLogoutAndSession(t *testing.T) {
	docs := storage.NewMemory(0)
	handler := newTestHandler(docs)

	rec := httptest.NewRecorder()
	handler.HandleLogin(rec, httptest.NewRequest("POST", "/admin/login", strings.NewReader(`{"email":"admin@admin.com","password":"123456"}`)))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	handler.HandleSession(rec, httptest.NewRequest("GET", "/admin/session", nil))
	var resp SessionResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.True(t, resp.Authenticated)

	rec = httptest.NewRecorder()
	handler.HandleLogout(rec, httptest.NewRequest("POST", "/admin/logout", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	handler.HandleSession(rec, httptest.NewRequest("GET", "/admin/session", nil))
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.False(t, resp.Authenticated)
}

// failingDeletes wraps a memory store whose deletes always fail.
type failingDeletes struct {
	*storage.Memory
	err error
}

func (f *failingDeletes) Delete(context.Context, string) error {
	return f.err
}

func TestHandleLogout_StoreFailure(t *testing.T) {
	testCases := []struct {
		name               string
		deleteErr          error
		expectedStatusCode int
	}{
		{name: "Store full", deleteErr: storage.ErrQuotaExceeded, expectedStatusCode: http.StatusInsufficientStorage},
		{name: "Store down", deleteErr: errors.New("connection refused"), expectedStatusCode: http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			handler := newTestHandler(&failingDeletes{Memory: storage.NewMemory(0), err: tc.deleteErr})
			rec := httptest.NewRecorder()

			// Act
			handler.HandleLogout(rec, httptest.NewRequest("POST", "/admin/logout", nil))

			// Assert
			assert.Equal(t, tc.expectedStatusCode, rec.Code)
			var errResp map[string]string
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&errResp))
			assert.Equal(t, "Failed to end session", errResp["error"])
		})
	}
}

func TestRequireSession(t *testing.T) {
	testCases := []struct {
		name               string
		storedFlag         string
		expectedStatusCode int
	}{
		{name: "No flag", expectedStatusCode: http.StatusUnauthorized},
		{name: "Flag set", storedFlag: "true", expectedStatusCode: http.StatusTeapot},
		{name: "Flag not true", storedFlag: "false", expectedStatusCode: http.StatusUnauthorized},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			docs := storage.NewMemory(0)
			if tc.storedFlag != "" {
				req := httptest.NewRequest("GET", "/", nil)
				require.NoError(t, docs.Put(req.Context(), storage.KeyAdminAuth, []byte(tc.storedFlag)))
			}
			handler := newTestHandler(docs)
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusTeapot)
			})
			rec := httptest.NewRecorder()

			handler.RequireSession(next).ServeHTTP(rec, httptest.NewRequest("GET", "/admin/products", nil))

			assert.Equal(t, tc.expectedStatusCode, rec.Code)
		})
	}
}
