package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"product-catalog/internal/config"
	"product-catalog/internal/db"
	"product-catalog/internal/router"
	"product-catalog/internal/services"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

const TestJWTSecret = "test-secret"

// OpenTestDB opens an in-memory SQLite database and applies the schema.
// The shared-cache name is derived from the test so parallel tests do not
// see each other's data.
func OpenTestDB(t *testing.T) *sql.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	database, err := db.InitDB("sqlite3", "file:"+name+"?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })

	if err := db.RunMigrations(database, "sqlite3"); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return database
}

// Env wires a test database and the full router, so handler tests exercise
// the same middleware chain as production requests.
type Env struct {
	DB     *sql.DB
	Cfg    config.Config
	Router http.Handler
	Auth   *services.AuthService
}

func NewEnv(t *testing.T) *Env {
	t.Helper()

	database := OpenTestDB(t)
	staticDir := t.TempDir()
	cfg := config.Config{
		Port:      "0",
		Env:       "test",
		DBDriver:  "sqlite3",
		JWTSecret: []byte(TestJWTSecret),
		StaticDir: staticDir,
		UploadDir: staticDir + "/images",
	}

	logger := zerolog.Nop()
	return &Env{
		DB:     database,
		Cfg:    cfg,
		Router: router.SetupRouter(database, cfg, logger),
		Auth:   services.NewAuthService(cfg.JWTSecret, logger),
	}
}

// CreateUser inserts a user with a bcrypt-hashed password.
func CreateUser(t *testing.T, database *sql.DB, username, password string) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	_, err = database.Exec(
		"INSERT INTO users (username, password_hash) VALUES ($1, $2)",
		username, string(hash),
	)
	if err != nil {
		t.Fatalf("insert user: %v", err)
	}
}

// DoJSON sends a JSON request through the router. An empty token leaves the
// Authorization header unset.
func (e *Env) DoJSON(t *testing.T, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.Router.ServeHTTP(rec, req)
	return rec
}
