// main.go
package main

import (
	"log"
	"math/rand"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/ernurtorekul/cinema/agents"
	"github.com/ernurtorekul/cinema/characters"
	"github.com/ernurtorekul/cinema/internal/platform"
	"github.com/ernurtorekul/cinema/llm"
	"github.com/ernurtorekul/cinema/projects"
	"github.com/ernurtorekul/cinema/store"
)

type Server struct {
	Config platform.Config
	Store  store.Store
	Redis  *redis.Client
	Router *gin.Engine
}

func NewServer() (*Server, error) {
	cfg := platform.LoadConfig()

	dataStore := newStore(cfg)
	rdb := platform.NewRedisClient(cfg)

	router := gin.Default()

	// CORS middleware for the frontend
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", cfg.FrontendURL)
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	server := &Server{
		Config: cfg,
		Store:  dataStore,
		Redis:  rdb,
		Router: router,
	}

	server.setupRoutes()

	return server, nil
}

// newStore picks the persistence backend: postgres normally, the in-memory
// store when MOCK_MODE is set or the database is unreachable.
func newStore(cfg platform.Config) store.Store {
	if cfg.MockMode {
		log.Println("MOCK_MODE enabled, using in-memory store")
		return store.NewMemoryStore()
	}
	db, err := platform.NewDBConnection(cfg)
	if err != nil {
		log.Printf("Could not connect to database: %v. Falling back to in-memory store.", err)
		return store.NewMemoryStore()
	}
	return store.NewGormStore(db)
}

func (s *Server) setupRoutes() {
	llmClient := llm.NewClient()

	orchestrator := &agents.Orchestrator{
		Store: s.Store,
		Scenario: &agents.ScenarioAgent{
			LLM:    llmClient,
			Store:  s.Store,
			APIKey: s.Config.OpenAIAPIKey,
		},
		Character: &agents.CharacterAgent{
			LLM:    llmClient,
			APIKey: s.Config.GeminiAPIKey,
		},
		Source: &agents.SourceAgent{
			LLM:    llmClient,
			APIKey: s.Config.GeminiAPIKey,
		},
		Prompt: &agents.PromptAgent{
			LLM:    llmClient,
			APIKey: s.Config.AnthropicAPIKey,
			Rand:   rand.New(rand.NewSource(time.Now().UnixNano())),
		},
		Sound: &agents.SoundDesignAgent{
			LLM:    llmClient,
			APIKey: s.Config.GeminiAPIKey,
		},
	}

	projectHandler := projects.NewHandler(s.Store, s.Redis, orchestrator)
	characterHandler := characters.NewHandler(characters.NewPool(s.Config.CharactersFile))

	s.Router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"name":    "AI Video Generation Platform",
			"version": "1.0.0",
			"status":  "running",
		})
	})

	s.Router.GET("/health", func(c *gin.Context) {
		if err := s.Store.Ping(c.Request.Context()); err != nil {
			c.JSON(500, gin.H{"status": "unhealthy", "error": err.Error()})
			return
		}
		c.JSON(200, gin.H{"status": "healthy"})
	})

	api := s.Router.Group("/api")
	{
		projectRoutes := api.Group("/projects")
		{
			projectRoutes.POST("", projectHandler.CreateProject)
			projectRoutes.GET("/:id", projectHandler.GetProject)
			projectRoutes.POST("/:id/scenario", projectHandler.SubmitScenario)
			projectRoutes.POST("/:id/generate", projectHandler.Generate)
			projectRoutes.GET("/:id/status", projectHandler.GetStatus)
			projectRoutes.GET("/:id/results", projectHandler.GetResults)
			projectRoutes.POST("/:id/step/:step", projectHandler.RunStep)
		}

		api.GET("/characters/pool", characterHandler.GetPool)
	}
}

func (s *Server) Run() error {
	log.Printf("Server starting on port %s", s.Config.Port)
	return s.Router.Run(":" + s.Config.Port)
}

func main() {
	server, err := NewServer()
	if err != nil {
		log.Fatal("Failed to create server:", err)
	}

	if err := server.Run(); err != nil {
		log.Fatal("Failed to run server:", err)
	}
}
