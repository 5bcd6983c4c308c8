package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"contentapi/cmd/app"
	"contentapi/internal/config"
	handlers "contentapi/internal/handler"
	"contentapi/internal/middleware"
)

func main() {
	// setting up config
	cfg := config.LoadConfig()

	db, repo := app.App(cfg)
	if db != nil {
		defer db.Close(context.Background())
	}

	handler := handlers.NewHandlers(repo, cfg)
	router := handler.Routes()

	handlerChain := middleware.Chain(
		router,
		middleware.CORSMiddleware,
		middleware.LoggingMiddleware,
	)

	// Starting the server
	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	log.Printf("listening on %s (backend: %s)", addr, cfg.StorageBackend)

	if err := http.ListenAndServe(addr, handlerChain); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
