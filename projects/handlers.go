package projects

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"github.com/ernurtorekul/cinema/agents"
	"github.com/ernurtorekul/cinema/models"
	"github.com/ernurtorekul/cinema/store"
)

const generationCompletedChannel = "generation_completed"

type Handler struct {
	Store        store.Store
	Redis        *redis.Client
	Orchestrator *agents.Orchestrator
}

func NewHandler(s store.Store, rdb *redis.Client, orc *agents.Orchestrator) *Handler {
	return &Handler{Store: s, Redis: rdb, Orchestrator: orc}
}

type CreateProjectRequest struct {
	Type             string                 `json:"type" binding:"required"`
	TotalDuration    int                    `json:"total_duration"`
	SceneCountTarget int                    `json:"scene_count_target"`
	Pacing           string                 `json:"pacing"`
	StylePreferences map[string]interface{} `json:"style_preferences"`
}

func (h *Handler) CreateProject(c *gin.Context) {
	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	prefs := req.StylePreferences
	if prefs == nil {
		prefs = map[string]interface{}{}
	}
	if req.SceneCountTarget > 0 {
		prefs["scene_count"] = req.SceneCountTarget
	}
	pacing := req.Pacing
	if pacing == "" {
		pacing = "mixed"
	}
	prefs["pacing"] = pacing

	project := models.Project{
		ID:               uuid.NewString(),
		Type:             req.Type,
		TotalDuration:    req.TotalDuration,
		StylePreferences: prefs,
		CreatedAt:        time.Now().UTC(),
	}

	if err := h.Store.CreateProject(c.Request.Context(), &project); err != nil {
		log.Printf("Failed to create project: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to create project. Check database configuration or set MOCK_MODE=true",
		})
		return
	}

	c.JSON(http.StatusCreated, project)
}

func (h *Handler) GetProject(c *gin.Context) {
	project, err := h.Store.GetProject(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		} else {
			log.Printf("Error getting project: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		}
		return
	}
	c.JSON(http.StatusOK, project)
}

type SubmitScenarioRequest struct {
	Text string `json:"text" binding:"required"`
}

func (h *Handler) SubmitScenario(c *gin.Context) {
	projectID := c.Param("id")

	var req SubmitScenarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := h.Store.GetProject(c.Request.Context(), projectID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		}
		return
	}

	scenario := models.Scenario{
		ID:        uuid.NewString(),
		ProjectID: projectID,
		Text:      req.Text,
		CreatedAt: time.Now().UTC(),
	}
	if err := h.Store.CreateScenario(c.Request.Context(), &scenario); err != nil {
		log.Printf("Error saving scenario: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save scenario"})
		return
	}

	c.JSON(http.StatusOK, scenario)
}

type GenerateRequest struct {
	CharacterConfig    *agents.CharacterConfig `json:"character_config"`
	SourceRules        string                  `json:"source_rules"`
	StyleGuide         *agents.StyleGuide      `json:"style_guide"`
	IncludeSoundDesign *bool                   `json:"include_sound_design"`
}

type generationCompletedMessage struct {
	ProjectID string `json:"project_id"`
	Status    string `json:"status"`
}

// Generate runs the full pipeline synchronously and returns the aggregated
// result. Requires a previously submitted scenario.
func (h *Handler) Generate(c *gin.Context) {
	projectID := c.Param("id")

	var req GenerateRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	scenario, err := h.Store.GetScenarioByProject(c.Request.Context(), projectID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "No scenario found for this project. Please submit a scenario first.",
			})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		}
		return
	}

	includeSound := true
	if req.IncludeSoundDesign != nil {
		includeSound = *req.IncludeSoundDesign
	}

	log.Printf("Starting generation pipeline for project %s", projectID)
	result, err := h.Orchestrator.RunFullPipeline(c.Request.Context(), projectID, scenario.Text, agents.GenerateOptions{
		CharacterConfig:    req.CharacterConfig,
		SourceRules:        req.SourceRules,
		StyleGuide:         req.StyleGuide,
		IncludeSoundDesign: includeSound,
	})
	if err != nil {
		log.Printf("Error in generation: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if err := h.Store.SetGenerationStatus(c.Request.Context(), projectID, "completed"); err != nil {
		log.Printf("Failed to update generation status: %v", err)
	}
	h.publishCompleted(c, projectID)

	c.JSON(http.StatusOK, result)
}

// publishCompleted notifies listeners that a pipeline run finished. Redis is
// optional; a nil client disables publishing.
func (h *Handler) publishCompleted(c *gin.Context, projectID string) {
	if h.Redis == nil {
		return
	}
	payload, err := json.Marshal(generationCompletedMessage{ProjectID: projectID, Status: "completed"})
	if err != nil {
		log.Printf("Error marshalling json: %v", err)
		return
	}
	if err := h.Redis.Publish(c.Request.Context(), generationCompletedChannel, payload).Err(); err != nil {
		log.Printf("Error publishing to redis: %v", err)
	}
}

func (h *Handler) GetStatus(c *gin.Context) {
	projectID := c.Param("id")
	project, err := h.Store.GetProject(c.Request.Context(), projectID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"project_id": projectID, "status": "not_found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	status := "pending"
	if v, ok := project.StylePreferences["generation_status"].(string); ok && v != "" {
		status = v
	}
	c.JSON(http.StatusOK, gin.H{"project_id": projectID, "status": status})
}

func (h *Handler) GetResults(c *gin.Context) {
	projectID := c.Param("id")
	scenes, err := h.Store.ListScenes(c.Request.Context(), projectID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if scenes == nil {
		scenes = []models.Scene{}
	}

	// Prompts and audio design live only in pipeline results; the stored
	// aggregation carries the scene rows.
	c.JSON(http.StatusOK, gin.H{
		"project_id":   projectID,
		"scenes":       scenes,
		"prompts":      []interface{}{},
		"audio_design": []interface{}{},
	})
}

// RunStep executes exactly one named pipeline stage.
func (h *Handler) RunStep(c *gin.Context) {
	projectID := c.Param("id")
	step := c.Param("step")

	var args agents.StepArgs
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&args); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	result, err := h.Orchestrator.RunStep(c.Request.Context(), projectID, step, args)
	if err != nil {
		if errors.Is(err, agents.ErrUnknownStep) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.Printf("Error in step %s: %v", step, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}
