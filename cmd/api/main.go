package main

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"booklib/internal/author"
	"booklib/internal/book"
	"booklib/internal/category"
	"booklib/internal/httpx"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	dbPool := mustOpenDB(cfg.DatabaseDSN)
	defer dbPool.Close()

	authorRepo := author.NewPostgresRepo(dbPool, cfg.DBTimeout)
	categoryRepo := category.NewPostgresRepo(dbPool, cfg.DBTimeout)
	bookRepo := book.NewPostgresRepo(dbPool, cfg.DBTimeout)

	authorHandler := author.NewHandler(author.NewService(authorRepo))
	categoryHandler := category.NewHandler(category.NewService(categoryRepo))
	bookHandler := book.NewHandler(book.NewService(bookRepo, authorRepo, categoryRepo))

	router := newRouter(dbPool, bookHandler, authorHandler, categoryHandler)

	rateLimiter := httpx.NewRateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst)
	var handler http.Handler = router
	handler = httpx.RequestSizeLimitMiddleware(cfg.MaxBodyBytes)(handler)
	handler = rateLimiter.Middleware(handler)
	handler = httpx.CORSMiddleware(cfg.AllowedOrigins)(handler)
	handler = httpx.SecurityHeadersMiddleware(handler)
	handler = httpx.RecoveryMiddleware(handler)
	handler = httpx.AccessLogMiddleware(handler)
	handler = httpx.RequestIDMiddleware(handler)

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	log.Printf("Starting server on %s", cfg.Addr)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}

func newRouter(dbPool *pgxpool.Pool, books *book.Handler, authors *author.Handler, categories *category.Handler) *http.ServeMux {
	router := http.NewServeMux()

	router.HandleFunc("GET /{$}", apiInfo)
	router.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		if err := dbPool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.Handle("/books", httpx.MethodMux(map[string]http.HandlerFunc{
		http.MethodGet:  books.List,
		http.MethodPost: books.Create,
	}))
	router.Handle("/books/{id}", httpx.MethodMux(map[string]http.HandlerFunc{
		http.MethodGet:    books.Get,
		http.MethodPut:    books.Update,
		http.MethodDelete: books.Delete,
	}))

	router.Handle("/authors", httpx.MethodMux(map[string]http.HandlerFunc{
		http.MethodGet:  authors.List,
		http.MethodPost: authors.Create,
	}))
	router.Handle("/authors/{id}", httpx.MethodMux(map[string]http.HandlerFunc{
		http.MethodGet:    authors.Get,
		http.MethodPut:    authors.Update,
		http.MethodDelete: authors.Delete,
	}))

	router.Handle("/categories", httpx.MethodMux(map[string]http.HandlerFunc{
		http.MethodGet:  categories.List,
		http.MethodPost: categories.Create,
	}))
	router.Handle("/categories/{id}", httpx.MethodMux(map[string]http.HandlerFunc{
		http.MethodGet:    categories.Get,
		http.MethodDelete: categories.Delete,
	}))

	// Everything else falls through to the JSON 404.
	router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		httpx.NotFoundResponse(w)
	})

	return router
}

func apiInfo(w http.ResponseWriter, r *http.Request) {
	httpx.JSONSuccess(w, map[string]any{
		"message": "Book Library API",
		"version": "3.0",
		"endpoints": map[string]any{
			"books": map[string]string{
				"GET /books":         "List books (with search, filter, pagination)",
				"GET /books/{id}":    "Get specific book",
				"POST /books":        "Create book",
				"PUT /books/{id}":    "Update book",
				"DELETE /books/{id}": "Delete book",
			},
			"authors": map[string]string{
				"GET /authors":         "List authors (with pagination)",
				"GET /authors/{id}":    "Get specific author with books",
				"POST /authors":        "Create author",
				"PUT /authors/{id}":    "Update author",
				"DELETE /authors/{id}": "Delete author",
			},
			"categories": map[string]string{
				"GET /categories":         "List all categories",
				"GET /categories/{id}":    "Get specific category",
				"POST /categories":        "Create category",
				"DELETE /categories/{id}": "Delete category",
			},
		},
	})
}

func mustOpenDB(dsn string) *pgxpool.Pool {
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatalf("cannot create db pool: %v", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		log.Fatalf("cannot ping database (%s): %v", redactDSN(dsn), err)
	}
	log.Println("database connection OK")
	return pool
}

func redactDSN(dsn string) string {
	const marker = "://"
	start := strings.Index(dsn, marker)
	if start < 0 {
		return dsn
	}
	start += len(marker)
	end := strings.Index(dsn[start:], "@")
	if end < 0 {
		return dsn
	}
	return dsn[:start] + "***" + dsn[start+end:]
}
