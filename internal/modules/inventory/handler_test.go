package inventory

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc, _ := setupTestService(t)
	h := NewHandler(svc)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		if role := c.GetHeader("X-Test-Role"); role != "" {
			c.Set("user_id", int64(7))
			c.Set("role", role)
		}
		c.Next()
	})
	h.RegisterRoutes(r.Group("/api/v1"))
	return r
}

func doJSONRequest(r http.Handler, method, path string, body any, role string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if role != "" {
		req.Header.Set("X-Test-Role", role)
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Code string `json:"code"`
	} `json:"error"`
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env), rr.Body.String())
	return env
}

func TestInventoryEndpoints_Flow(t *testing.T) {
	r := setupTestRouter(t)

	rr := doJSONRequest(r, http.MethodPost, "/api/v1/inventory", map[string]any{
		"name": "Bolts", "category": "Hardware", "quantity": 2, "minimum": 5,
	}, "Manager")
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var item struct {
		ID     int64  `json:"id"`
		Health string `json:"health"`
	}
	require.NoError(t, json.Unmarshal(decode(t, rr).Data, &item))
	assert.Equal(t, "Low", item.Health)

	rr = doJSONRequest(r, http.MethodGet, "/api/v1/inventory/low-stock", nil, "Admin")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"name":"Bolts"`)

	path := "/api/v1/inventory/" + strconv.FormatInt(item.ID, 10)
	rr = doJSONRequest(r, http.MethodPost, path+"/movements", map[string]any{"delta": 10}, "Manager")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Contains(t, rr.Body.String(), `"health":"OK"`)
	assert.Contains(t, rr.Body.String(), `"last_movement":"2024-02-10"`)

	rr = doJSONRequest(r, http.MethodPost, path+"/movements", map[string]any{"delta": -50}, "Manager")
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, "INSUFFICIENT_STOCK", decode(t, rr).Error.Code)

	rr = doJSONRequest(r, http.MethodGet, "/api/v1/inventory/categories", nil, "Manager")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `["Hardware"]`, string(decode(t, rr).Data))

	rr = doJSONRequest(r, http.MethodDelete, path, nil, "Admin")
	assert.Equal(t, http.StatusOK, rr.Code)
	rr = doJSONRequest(r, http.MethodGet, path, nil, "Admin")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestInventoryEndpoints_Access(t *testing.T) {
	r := setupTestRouter(t)

	rr := doJSONRequest(r, http.MethodGet, "/api/v1/inventory", nil, "User")
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = doJSONRequest(r, http.MethodGet, "/api/v1/inventory", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = doJSONRequest(r, http.MethodGet, "/api/v1/inventory", nil, "Manager")
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestInventoryEndpoints_Errors(t *testing.T) {
	r := setupTestRouter(t)

	cases := []struct {
		name   string
		method string
		path   string
		body   any
		status int
		code   string
	}{
		{"bad id", http.MethodGet, "/api/v1/inventory/x", nil, http.StatusBadRequest, "INVALID_ID"},
		{"missing", http.MethodGet, "/api/v1/inventory/404", nil, http.StatusNotFound, "NOT_FOUND"},
		{"zero minimum", http.MethodPost, "/api/v1/inventory", map[string]any{
			"name": "X", "category": "Y", "quantity": 1, "minimum": 0,
		}, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"negative quantity", http.MethodPost, "/api/v1/inventory", map[string]any{
			"name": "X", "category": "Y", "quantity": -1, "minimum": 1,
		}, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"zero delta", http.MethodPost, "/api/v1/inventory/1/movements", map[string]any{"delta": 0}, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"bad health filter", http.MethodGet, "/api/v1/inventory?health=Bad", nil, http.StatusBadRequest, "VALIDATION_ERROR"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := doJSONRequest(r, tc.method, tc.path, tc.body, "Admin")
			assert.Equal(t, tc.status, rr.Code, rr.Body.String())
			env := decode(t, rr)
			assert.False(t, env.Success)
			assert.Equal(t, tc.code, env.Error.Code)
		})
	}
}
