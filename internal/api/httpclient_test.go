package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stocktrack/internal/models"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewHTTPClient(srv.URL, 5*time.Second)
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, body any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(body))
}

func TestAuthenticate_Login_Success(t *testing.T) {
	var gotPath string
	var gotCreds Credentials

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotCreds))
		assert.NotEmpty(t, r.Header.Get("X-Request-Id"))
		assert.Empty(t, r.Header.Get("Authorization"))
		writeJSON(t, w, http.StatusOK, map[string]any{
			"token": "tok123",
			"user":  map[string]string{"_id": "u1", "name": "Ann", "email": "ann@example.com", "role": "admin"},
		})
	})

	res, err := c.Authenticate(context.Background(), AuthLogin, Credentials{Email: "ann@example.com", Password: "secret"})
	require.NoError(t, err)

	assert.Equal(t, "/api/auth/login", gotPath)
	assert.Equal(t, "ann@example.com", gotCreds.Email)
	assert.Equal(t, "tok123", res.Token)
	assert.Equal(t, "u1", res.Principal.ID)
	assert.Equal(t, "admin", res.Principal.Role)
}

func TestAuthenticate_BadCredentials(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusUnauthorized, map[string]string{"message": "Invalid credentials"})
	})

	_, err := c.Authenticate(context.Background(), AuthLogin, Credentials{Email: "bad", Password: "bad"})
	require.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, "Invalid credentials", ErrorMessage(err, "fallback"))
}

func TestValidateSession_SendsBearerToken(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok123", r.Header.Get("Authorization"))
		writeJSON(t, w, http.StatusOK, map[string]any{
			"data": map[string]string{"_id": "u1", "name": "Ann"},
		})
	})
	c.SetToken("tok123")

	p, err := c.ValidateSession(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "u1", p.ID)
}

func TestClearToken_RemovesAuthorizationHeader(t *testing.T) {
	var gotAuth string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		writeJSON(t, w, http.StatusOK, map[string]any{"data": []any{}})
	})
	c.SetToken("tok123")
	c.ClearToken()

	_, err := c.ListProducts(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestListProducts_ParsesItemsAndAggregates(t *testing.T) {
	var gotQuery url.Values
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		writeJSON(t, w, http.StatusOK, map[string]any{
			"data": []map[string]any{
				{"_id": "a", "name": "A", "price": 10.0, "quantity": 2},
				{"_id": "b", "name": "B", "price": 5.0, "quantity": 10},
			},
			"count":         2,
			"totalValue":    70.0,
			"lowStockCount": 1,
		})
	})

	params := url.Values{"search": {"widget"}, "sort": {"price"}}
	list, err := c.ListProducts(context.Background(), params)
	require.NoError(t, err)

	assert.Equal(t, "widget", gotQuery.Get("search"))
	assert.Equal(t, "price", gotQuery.Get("sort"))
	require.Len(t, list.Items, 2)
	assert.Equal(t, "a", list.Items[0].ID)
	assert.Equal(t, 2, list.Count)
	assert.InDelta(t, 70.0, list.TotalValue, 1e-9)
	assert.Equal(t, 1, list.LowStockCount)
}

func TestCreateProduct_JSONWhenNoImage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Widget", body["name"])
		assert.NotContains(t, body, "Image")

		writeJSON(t, w, http.StatusCreated, map[string]any{
			"data": map[string]any{"_id": "p1", "name": "Widget", "category": "Tools", "price": 9.99, "quantity": 3},
		})
	})

	created, err := c.CreateProduct(context.Background(), models.ProductDraft{
		Name: "Widget", Category: "Tools", Price: 9.99, Quantity: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, "p1", created.ID)
}

func TestCreateProduct_MultipartWhenImageAttached(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "Widget", r.FormValue("name"))
		assert.Equal(t, "Tools", r.FormValue("category"))
		assert.Equal(t, "9.99", r.FormValue("price"))
		assert.Equal(t, "3", r.FormValue("quantity"))

		file, header, err := r.FormFile("image")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "widget.png", header.Filename)
		assert.Equal(t, "image/png", header.Header.Get("Content-Type"))

		writeJSON(t, w, http.StatusCreated, map[string]any{
			"data": map[string]any{"_id": "p1", "name": "Widget", "imageUrl": "/uploads/widget.png"},
		})
	})

	created, err := c.CreateProduct(context.Background(), models.ProductDraft{
		Name: "Widget", Category: "Tools", Price: 9.99, Quantity: 3,
		Image: &models.Attachment{FileName: "widget.png", ContentType: "image/png", Data: []byte{1, 2, 3}},
	})
	require.NoError(t, err)
	assert.Equal(t, "/uploads/widget.png", created.ImageURL)
}

func TestUpdateProduct_PutsToEntityPath(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/products/p1", r.URL.Path)
		writeJSON(t, w, http.StatusOK, map[string]any{
			"data": map[string]any{"_id": "p1", "name": "Widget v2"},
		})
	})

	updated, err := c.UpdateProduct(context.Background(), "p1", models.ProductDraft{Name: "Widget v2", Category: "Tools"})
	require.NoError(t, err)
	assert.Equal(t, "Widget v2", updated.Name)
}

func TestDeleteProduct_NotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusNotFound, map[string]string{"message": "Product not found"})
	})

	err := c.DeleteProduct(context.Background(), "missing-id")
	require.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "Product not found", ErrorMessage(err, "fallback"))
}

func TestDo_ServerErrorWithoutMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := c.GetProduct(context.Background(), "p1")
	require.ErrorIs(t, err, ErrServer)
	assert.Equal(t, "fallback", ErrorMessage(err, "fallback"))
}

func TestTransportFailure_MapsToUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // connection refused from here on
	c := NewHTTPClient(srv.URL, time.Second)

	_, err := c.ListProducts(context.Background(), nil)
	require.ErrorIs(t, err, ErrUnavailable)

	err = c.Ping(context.Background())
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestPing_AnyResponseCountsAsReachable(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	require.NoError(t, c.Ping(context.Background()))
}
