package handlers_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"product-catalog/internal/models"
	"product-catalog/internal/testutil"

	"github.com/stretchr/testify/require"
)

func adminToken(t *testing.T, env *testutil.Env) string {
	t.Helper()
	token, err := env.Auth.GenerateToken("admin")
	require.NoError(t, err)
	return token
}

func listProducts(t *testing.T, env *testutil.Env, token string) []models.ProductResponse {
	t.Helper()

	rec := env.DoJSON(t, http.MethodGet, "/products", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)

	var products []models.ProductResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &products))
	return products
}

func doMultipart(t *testing.T, env *testutil.Env, fields map[string]string, fileName, fileContent, token string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if fileName != "" {
		fw, err := w.CreateFormFile("image", fileName)
		require.NoError(t, err)
		_, err = fw.Write([]byte(fileContent))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/admin/products", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	env.Router.ServeHTTP(rec, req)
	return rec
}

func TestGetProductsSameWithAndWithoutToken(t *testing.T) {
	env := testutil.NewEnv(t)
	_, err := env.DB.Exec(
		"INSERT INTO products (name, description, price) VALUES ('Laptop', 'High-performance laptop', 999.99)",
	)
	require.NoError(t, err)

	anonymous := listProducts(t, env, "")
	authenticated := listProducts(t, env, adminToken(t, env))

	require.Equal(t, anonymous, authenticated)
	require.Len(t, anonymous, 1)
	require.Equal(t, "Laptop", anonymous[0].Name)
}

func TestGetProductsImageURLs(t *testing.T) {
	env := testutil.NewEnv(t)
	_, err := env.DB.Exec("INSERT INTO products (name, price) VALUES ('Mouse', 29.99)")
	require.NoError(t, err)
	_, err = env.DB.Exec("INSERT INTO products (name, price, image_url) VALUES ('Keyboard', 59.99, 'abc123_kb.png')")
	require.NoError(t, err)

	products := listProducts(t, env, "")
	require.Len(t, products, 2)
	for _, p := range products {
		require.True(t, strings.HasPrefix(p.ImageURL, "/static/images/"), "image url %q not under asset prefix", p.ImageURL)
	}
	require.Equal(t, "/static/images/default-product.jpg", products[0].ImageURL)
	require.Equal(t, "/static/images/abc123_kb.png", products[1].ImageURL)
}

func TestGetProductsEmpty(t *testing.T) {
	env := testutil.NewEnv(t)

	rec := env.DoJSON(t, http.MethodGet, "/products", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, "[]", rec.Body.String())
}

func TestAddProductRequiresToken(t *testing.T) {
	env := testutil.NewEnv(t)

	price := 29.99
	body := models.CreateProductRequest{Name: "Mouse", Price: &price}

	noToken := env.DoJSON(t, http.MethodPost, "/admin/products", body, "")
	require.Equal(t, http.StatusUnauthorized, noToken.Code)

	token := adminToken(t, env)
	tampered := token + "x"
	badToken := env.DoJSON(t, http.MethodPost, "/admin/products", body, tampered)
	require.Equal(t, http.StatusUnauthorized, badToken.Code)

	require.Empty(t, listProducts(t, env, ""))
}

func TestAddProductJSON(t *testing.T) {
	env := testutil.NewEnv(t)
	token := adminToken(t, env)

	price := 29.99
	rec := env.DoJSON(t, http.MethodPost, "/admin/products", models.CreateProductRequest{
		Name:  "Mouse",
		Price: &price,
	}, token)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp models.CreateProductResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "Product added", resp.Msg)
	require.NotZero(t, resp.ID)
	require.Equal(t, "/static/images/default-product.jpg", resp.ImageURL)

	products := listProducts(t, env, "")
	require.Len(t, products, 1)
	require.Equal(t, resp.ID, products[0].ID)
	require.Equal(t, "Mouse", products[0].Name)
	require.Equal(t, 29.99, products[0].Price)
}

func TestAddProductJSONWithImageURL(t *testing.T) {
	env := testutil.NewEnv(t)
	token := adminToken(t, env)

	price := 59.99
	rec := env.DoJSON(t, http.MethodPost, "/admin/products", models.CreateProductRequest{
		Name:        "Keyboard",
		Description: "Mechanical keyboard",
		Price:       &price,
		ImageURL:    "kb.png",
	}, token)

	require.Equal(t, http.StatusCreated, rec.Code)

	products := listProducts(t, env, "")
	require.Len(t, products, 1)
	require.Equal(t, "/static/images/kb.png", products[0].ImageURL)
	require.Equal(t, "Mechanical keyboard", products[0].Description)
}

func TestAddProductJSONMissingFields(t *testing.T) {
	env := testutil.NewEnv(t)
	token := adminToken(t, env)

	price := 29.99
	noName := env.DoJSON(t, http.MethodPost, "/admin/products", models.CreateProductRequest{Price: &price}, token)
	require.Equal(t, http.StatusBadRequest, noName.Code)

	noPrice := env.DoJSON(t, http.MethodPost, "/admin/products", models.CreateProductRequest{Name: "Mouse"}, token)
	require.Equal(t, http.StatusBadRequest, noPrice.Code)

	require.Empty(t, listProducts(t, env, ""))
}

func TestAddProductJSONMalformedPrice(t *testing.T) {
	env := testutil.NewEnv(t)
	token := adminToken(t, env)

	rec := env.DoJSON(t, http.MethodPost, "/admin/products", map[string]interface{}{
		"name":  "Mouse",
		"price": "twenty-nine",
	}, token)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Empty(t, listProducts(t, env, ""))
}

func TestAddProductUnsupportedContentType(t *testing.T) {
	env := testutil.NewEnv(t)
	token := adminToken(t, env)

	req := httptest.NewRequest(http.MethodPost, "/admin/products", strings.NewReader("name=Mouse&price=29.99"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+token)

	rec := httptest.NewRecorder()
	env.Router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "unsupported content type")
}

func TestAddProductMultipart(t *testing.T) {
	env := testutil.NewEnv(t)
	token := adminToken(t, env)

	rec := doMultipart(t, env, map[string]string{
		"name":        "Webcam",
		"description": "1080p webcam",
		"price":       "49.99",
	}, "cam.png", "png bytes", token)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp models.CreateProductResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, strings.HasPrefix(resp.ImageURL, "/static/images/"))
	require.True(t, strings.HasSuffix(resp.ImageURL, "_cam.png"))

	stored := strings.TrimPrefix(resp.ImageURL, "/static/images/")
	data, err := os.ReadFile(filepath.Join(env.Cfg.UploadDir, stored))
	require.NoError(t, err)
	require.Equal(t, "png bytes", string(data))
}

func TestAddProductMultipartNoImage(t *testing.T) {
	env := testutil.NewEnv(t)
	token := adminToken(t, env)

	rec := doMultipart(t, env, map[string]string{
		"name":  "Monitor",
		"price": "149.99",
	}, "", "", token)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp models.CreateProductResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "/static/images/default-product.jpg", resp.ImageURL)
}

func TestAddProductMultipartSameFilenameTwice(t *testing.T) {
	env := testutil.NewEnv(t)
	token := adminToken(t, env)

	first := doMultipart(t, env, map[string]string{"name": "A", "price": "1.00"}, "photo.png", "first", token)
	second := doMultipart(t, env, map[string]string{"name": "B", "price": "2.00"}, "photo.png", "second", token)

	require.Equal(t, http.StatusCreated, first.Code)
	require.Equal(t, http.StatusCreated, second.Code)

	var respA, respB models.CreateProductResponse
	require.NoError(t, json.Unmarshal(first.Body.Bytes(), &respA))
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &respB))
	require.NotEqual(t, respA.ImageURL, respB.ImageURL)

	dataA, err := os.ReadFile(filepath.Join(env.Cfg.UploadDir, strings.TrimPrefix(respA.ImageURL, "/static/images/")))
	require.NoError(t, err)
	dataB, err := os.ReadFile(filepath.Join(env.Cfg.UploadDir, strings.TrimPrefix(respB.ImageURL, "/static/images/")))
	require.NoError(t, err)
	require.Equal(t, "first", string(dataA))
	require.Equal(t, "second", string(dataB))
}

func TestAddProductMultipartMissingFields(t *testing.T) {
	env := testutil.NewEnv(t)
	token := adminToken(t, env)

	rec := doMultipart(t, env, map[string]string{"name": "Mouse"}, "", "", token)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doMultipart(t, env, map[string]string{"name": "Mouse", "price": "cheap"}, "", "", token)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	require.Empty(t, listProducts(t, env, ""))
}
