package characters

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Pool *Pool
}

func NewHandler(pool *Pool) *Handler {
	return &Handler{Pool: pool}
}

// GetPool returns the character pool parsed from the names file, or the
// built-in table when the file is unavailable.
func (h *Handler) GetPool(c *gin.Context) {
	pool, err := h.Pool.Load()
	if err != nil {
		log.Printf("Error loading characters: %v", err)
		c.JSON(http.StatusOK, gin.H{
			"pool_name":   "Default Celebrity Pool",
			"description": "Default celebrity pool (characters file not available)",
			"characters":  DefaultPool(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"pool_name":   "Characters from " + h.Pool.FilePath,
		"description": "AI will choose from these characters based on scene requirements",
		"characters":  pool,
	})
}
