package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"expofloor/auth"
	"expofloor/dashboard"
	"expofloor/db"
	"expofloor/floorplans"
	"expofloor/globals"
	"expofloor/mq"
	"expofloor/ratelim"
	"expofloor/rdx"
	"expofloor/routes"
	"expofloor/utils"

	"github.com/joho/godotenv"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"
)

// securityHeaders applies a set of recommended HTTP security headers.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "frame-ancestors 'none'")
		w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains; preload")
		w.Header().Set("Referrer-Policy", "no-referrer")
		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware logs each request method, path, remote address, and duration.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s from %s – %v", r.Method, r.RequestURI, r.RemoteAddr, time.Since(start))
	})
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	// load .env if present
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}
	globals.Init()

	port := envOr("PORT", ":8080")
	if port[0] != ':' {
		port = ":" + port
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	store, err := db.Connect(ctx, envOr("MONGODB_URI", "mongodb://localhost:27017"), envOr("MONGODB_DB", "imtma_flooring"))
	cancel()
	if err != nil {
		log.Fatalf("MongoDB connection failed: %v", err)
	}
	log.Println("MongoDB connection successful")

	ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
	if err := store.EnsureIndexes(ctx); err != nil {
		log.Printf("index creation failed: %v", err)
	}
	cancel()

	cache := rdx.New(envOr("REDIS_ADDR", "localhost:6379"))
	events := mq.NewEmitter(cache)
	rateLimiter := ratelim.NewRateLimiter()

	authHandler := auth.New(store)
	planHandler := floorplans.New(store, cache, events)
	dashHandler := dashboard.New(store)

	router := httprouter.New()
	router.GET("/health", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := store.Ping(ctx); err != nil {
			utils.RespondWithJSON(w, http.StatusInternalServerError, utils.M{
				"status":   "unhealthy",
				"database": "disconnected",
			})
			return
		}
		utils.RespondWithJSON(w, http.StatusOK, utils.M{
			"status":    "healthy",
			"database":  "connected",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	routes.AddAuthRoutes(router, authHandler, rateLimiter)
	routes.AddFloorPlanRoutes(router, planHandler, rateLimiter)
	routes.AddPublicRoutes(router, planHandler)
	routes.AddDashboardRoutes(router, dashHandler)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(envOr("CORS_ORIGINS", "http://localhost:5173"), ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(router)

	server := &http.Server{
		Addr:              port,
		Handler:           loggingMiddleware(securityHeaders(corsHandler)),
		ReadTimeout:       7 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
	}

	go func() {
		log.Printf("Server listening on %s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe error: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Println("Shutdown signal received; shutting down gracefully...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Graceful shutdown failed: %v", err)
	}
	if err := store.Close(shutdownCtx); err != nil {
		log.Printf("MongoDB disconnect failed: %v", err)
	}

	log.Println("Server stopped cleanly")
}
