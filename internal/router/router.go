package router

import (
	"database/sql"
	"net/http"
	"path/filepath"

	"product-catalog/internal/config"
	"product-catalog/internal/handlers"
	"product-catalog/internal/middleware"
	"product-catalog/internal/services"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// SetupRouter wires services, handlers and the middleware chain. The outer
// middleware (recovery, logging, CORS, rate limit) wraps the mux router
// directly so it also covers preflight requests and unmatched routes.
func SetupRouter(db *sql.DB, cfg config.Config, logger zerolog.Logger) http.Handler {
	authService := services.NewAuthService(cfg.JWTSecret, logger)
	userService := services.NewUserService(db, logger)
	productService := services.NewProductService(db, logger)
	uploadService := services.NewUploadService(cfg.UploadDir, logger)

	authHandler := handlers.NewAuthHandler(userService, authService, logger)
	productHandler := handlers.NewProductHandler(productService, uploadService, logger)

	r := mux.NewRouter()

	r.HandleFunc("/login", authHandler.Login).Methods("POST")

	products := r.PathPrefix("/products").Subrouter()
	products.Use(middleware.OptionalAuthentication(authService, logger))
	products.HandleFunc("", productHandler.GetProducts).Methods("GET")

	admin := r.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.Authentication(authService, logger))
	admin.HandleFunc("/products", productHandler.AddProduct).Methods("POST")

	r.PathPrefix("/static/").Handler(
		http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticDir))),
	).Methods("GET")

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	indexPage := filepath.Join(cfg.StaticDir, "index.html")
	r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, indexPage)
	}).Methods("GET")

	rateLimiter := middleware.NewRateLimiter(rate.Limit(10), 20)

	var handler http.Handler = r
	handler = rateLimiter.Middleware()(handler)
	handler = middleware.CORS()(handler)
	handler = middleware.SecurityHeaders()(handler)
	handler = middleware.RequestLogging(logger)(handler)
	handler = middleware.ErrorHandling(logger)(handler)

	return handler
}
