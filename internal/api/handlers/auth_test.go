package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ramonskie/mediareaparr/internal/config"
	"github.com/ramonskie/mediareaparr/internal/services"
	"github.com/ramonskie/mediareaparr/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func setupAuthHandler(t *testing.T, password string) *AuthHandler {
	t.Helper()

	utils.InitJWT("test-secret-key-for-testing-min-32-chars", 24*time.Hour)

	cfg := &config.Config{
		Admin: config.AdminConfig{
			Username: "admin",
			Password: password,
		},
	}

	return NewAuthHandler(services.NewAuthService(cfg))
}

func postLogin(t *testing.T, handler *AuthHandler, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var raw []byte
	if str, ok := body.(string); ok {
		raw = []byte(str)
	} else {
		var err error
		raw, err = json.Marshal(body)
		require.NoError(t, err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	handler.Login(w, req)
	return w
}

func TestAuthHandlerLogin(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		expectedStatus int
	}{
		{
			name:           "valid credentials",
			body:           LoginRequest{Username: "admin", Password: "testpassword"},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "wrong password",
			body:           LoginRequest{Username: "admin", Password: "nope"},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "wrong username",
			body:           LoginRequest{Username: "root", Password: "testpassword"},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "invalid JSON",
			body:           `{"username": "admin"`,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := setupAuthHandler(t, "testpassword")

			w := postLogin(t, handler, tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

			if tt.expectedStatus == http.StatusOK {
				var resp LoginResponse
				require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
				assert.NotEmpty(t, resp.Token)

				claims, err := utils.ValidateToken(resp.Token)
				require.NoError(t, err)
				assert.Equal(t, "admin", claims.Username)
			}
		})
	}
}

func TestAuthHandlerLoginBcrypt(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("testpassword"), bcrypt.DefaultCost)
	require.NoError(t, err)

	handler := setupAuthHandler(t, string(hashed))

	t.Run("accepts matching password against hash", func(t *testing.T) {
		w := postLogin(t, handler, LoginRequest{Username: "admin", Password: "testpassword"})
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("rejects wrong password against hash", func(t *testing.T) {
		w := postLogin(t, handler, LoginRequest{Username: "admin", Password: "other"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
