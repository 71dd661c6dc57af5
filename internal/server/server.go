package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/joho/godotenv"
	httpSwagger "github.com/swaggo/http-swagger"
	"google.golang.org/api/option"

	"github.com/gorilla/mux"

	"genai-stack/internal/auth"
	"genai-stack/internal/db"
	"genai-stack/internal/handlers"
	"genai-stack/internal/repositories"
	"genai-stack/internal/routes"
	"genai-stack/internal/services"
)

const (
	defaultEmbeddingModel  = "text-embedding-004"
	defaultGenerativeModel = "gemini-1.5-flash"
)

// corsMiddleware adds CORS headers to all responses
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		// Handle preflight requests
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// NewServer wires up repositories, services and routes
func NewServer() (*http.Server, error) {
	logger := log.New(os.Stdout, "[SERVER] ", log.LstdFlags)

	// .env is optional; real deployments set variables directly
	if err := godotenv.Load(); err == nil {
		logger.Println("Loaded configuration from .env")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Redis
	redisConfig := getRedisConfig()
	logger.Printf("Connecting to Redis: %s:%d (DB: %d)", redisConfig.Host, redisConfig.Port, redisConfig.DB)
	redisClient := db.NewRedisClient(redisConfig)
	if err := db.PingRedis(ctx, redisClient); err != nil {
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}
	logger.Println("✅ Redis connected successfully")

	// ChromaDB
	chromaConfig := getChromaConfig()
	logger.Printf("Connecting to ChromaDB: %s:%d", chromaConfig.Host, chromaConfig.Port)
	chromaClient := db.NewChromaDBClient(chromaConfig)
	if err := chromaClient.Heartbeat(ctx); err != nil {
		return nil, fmt.Errorf("chromadb connection failed: %w", err)
	}
	logger.Println("✅ ChromaDB connected successfully")

	// Gemini
	geminiKey := os.Getenv("GEMINI_API_KEY")
	if geminiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}
	genaiClient, err := genai.NewClient(context.Background(), option.WithAPIKey(geminiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	logger.Println("✅ Gemini client initialized")

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "./uploads"
	}

	// Repositories
	userRepo := repositories.NewRedisUserRepository(redisClient)
	workflowRepo := repositories.NewRedisWorkflowRepository(redisClient)
	documentRepo := repositories.NewRedisDocumentRepository(redisClient)
	chatRepo := repositories.NewRedisChatRepository(redisClient)
	vectorRepo := repositories.NewChromaVectorRepository(chromaClient)

	// Services
	tokens := auth.NewTokenManager(jwtSecret, auth.DefaultTokenTTL)
	embedder := services.NewGeminiEmbedder(genaiClient, envOrDefault("GEMINI_EMBEDDING_MODEL", defaultEmbeddingModel))
	embeddingStore := services.NewEmbeddingStore(embedder, vectorRepo, logger)
	generativeModel := envOrDefault("GEMINI_MODEL", defaultGenerativeModel)
	llmService := services.NewLLMService(services.NewGeminiGenerator(genaiClient, generativeModel), logger)
	retriever := services.NewRetrievalAssembler(embeddingStore, documentRepo, logger)
	searcher := services.NewSerpAPIClient(os.Getenv("SERPAPI_API_KEY"), logger)
	assistant := services.NewGeminiAssistant(genaiClient, generativeModel, logger)
	keywords := services.NewKeywordExtractor()

	userService := services.NewUserService(userRepo, tokens, logger)
	workflowService := services.NewWorkflowService(workflowRepo, chatRepo, logger)
	documentService := services.NewDocumentService(documentRepo, embeddingStore, keywords, uploadDir, logger)
	executionService := services.NewExecutionService(workflowRepo, chatRepo, retriever, llmService, searcher, logger)

	// Handlers and routes
	h := &routes.Handlers{
		Auth:           handlers.NewAuthHandler(userService, logger),
		Workflow:       handlers.NewWorkflowHandler(workflowService, executionService, logger),
		Document:       handlers.NewDocumentHandler(documentService, logger),
		Chat:           handlers.NewChatHandler(assistant, logger),
		AuthMiddleware: auth.Middleware(tokens),
	}

	router := mux.NewRouter()
	routes.RegisterRoutes(router, h)

	port := envOrDefault("PORT", "8080")

	// Add Swagger endpoints
	router.PathPrefix("/swagger/").Handler(httpSwagger.Handler(
		httpSwagger.URL("http://localhost:"+port+"/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("none"),
		httpSwagger.DomID("swagger-ui"),
	))

	logger.Println("✅ All services initialized successfully")

	return &http.Server{
		Addr:    ":" + port,
		Handler: corsMiddleware(router),
	}, nil
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getRedisConfig reads Redis configuration from environment variables
func getRedisConfig() db.RedisConfig {
	config := db.DefaultRedisConfig()

	if host := os.Getenv("REDIS_HOST"); host != "" {
		config.Host = host
	}
	if portStr := os.Getenv("REDIS_PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil {
			config.Port = port
		}
	}
	if password := os.Getenv("REDIS_PASSWORD"); password != "" {
		config.Password = password
	}
	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		if dbNum, err := strconv.Atoi(dbStr); err == nil {
			config.DB = dbNum
		}
	}

	return config
}

// getChromaConfig reads ChromaDB configuration from environment variables
func getChromaConfig() db.ChromaDBConfig {
	config := db.ChromaDBConfig{
		Host:     "localhost",
		Port:     8000,
		Tenant:   "default_tenant",
		Database: "default_database",
		Timeout:  30 * time.Second,
	}

	if host := os.Getenv("CHROMA_HOST"); host != "" {
		config.Host = host
	}
	if portStr := os.Getenv("CHROMA_PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil {
			config.Port = port
		}
	}
	if tenant := os.Getenv("CHROMA_TENANT"); tenant != "" {
		config.Tenant = tenant
	}
	if database := os.Getenv("CHROMA_DATABASE"); database != "" {
		config.Database = database
	}

	return config
}
