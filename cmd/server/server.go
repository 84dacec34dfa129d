package main

import (
	"fmt"
	"log"
	"net/http"

	"coursegen/config"
	"coursegen/db"
	"coursegen/handlers"
	"coursegen/services"
	"coursegen/services/generator"
	"coursegen/services/pinecone"
	"coursegen/services/render"
	"coursegen/services/sources"

	"github.com/gorilla/mux"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/ollama"
)

func main() {
	cfg := config.Load()

	if cfg.DatabaseURL == "" {
		log.Fatal("DB_URL environment variable is required")
	}

	courseRepo, err := db.NewPostgresCourseRepository(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize course database: %v", err)
	}
	defer courseRepo.Close()

	contentRepo, err := db.NewPostgresContentRepository(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize content database: %v", err)
	}
	defer contentRepo.Close()

	sourceRepo, err := db.NewPostgresSourceRepository(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize source database: %v", err)
	}
	defer sourceRepo.Close()

	llm, err := ollama.New(
		ollama.WithServerURL(cfg.OllamaBaseURL),
		ollama.WithModel(cfg.OllamaModel),
	)
	if err != nil {
		log.Fatalf("Failed to create Ollama client: %v", err)
	}

	// Semantic retrieval is optional: without a Pinecone key, chunks are
	// served straight from Postgres in stored order.
	var chunkStore sources.ChunkStore = sources.NewRepositoryStore(sourceRepo)
	if cfg.PineconeAPIKey != "" {
		embedder, err := embeddings.NewEmbedder(llm)
		if err != nil {
			log.Fatalf("Failed to create embedder: %v", err)
		}

		pineconeService, err := pinecone.NewService(cfg.PineconeAPIKey, cfg.PineconeIndexName, embedder)
		if err != nil {
			log.Fatalf("Failed to initialize Pinecone chunk store: %v", err)
		}
		chunkStore = pineconeService
	}

	sourceService := sources.NewService(chunkStore, cfg.Generation.ContextTokenBudget)
	generatorService := generator.NewService(llm, sourceService, cfg.Generation)
	generateHandler := handlers.NewGenerateHandler(generatorService)

	rendererService := render.NewService(cfg.RendererURL)
	exportHandler := handlers.NewExportHandler(rendererService)

	courseService := services.NewCourseService(courseRepo)
	courseHandler := handlers.NewCourseHandler(courseService)

	contentService := services.NewContentService(contentRepo)
	contentHandler := handlers.NewContentHandler(contentService)

	sourceHandler := handlers.NewSourceHandler(sourceRepo)

	router := mux.NewRouter()

	router.Use(corsMiddleware)
	router.Use(jsonMiddleware)

	router.PathPrefix("/").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods("OPTIONS")

	generateHandler.RegisterRoutes(router)
	exportHandler.RegisterRoutes(router)
	courseHandler.RegisterRoutes(router)
	contentHandler.RegisterRoutes(router)
	sourceHandler.RegisterRoutes(router)

	router.HandleFunc("/health", healthCheckHandler).Methods("GET")

	addr := ":" + cfg.Port
	fmt.Printf("Server starting on port %s\n", cfg.Port)

	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, PATCH")
		w.Header().Set("Access-Control-Allow-Headers", "*")
		w.Header().Set("Access-Control-Expose-Headers", "*")
		w.Header().Set("Access-Control-Allow-Credentials", "true")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func jsonMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "healthy"}`))
}
