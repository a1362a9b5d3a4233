package characters

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
)

func getPool(t *testing.T, handler *Handler) map[string]interface{} {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/api/characters/pool", handler.GetPool)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/characters/pool", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return body
}

func TestGetPoolFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "characters.txt")
	if err := os.WriteFile(path, []byte("zendaya, jane doe"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	body := getPool(t, NewHandler(NewPool(path)))
	chars, ok := body["characters"].([]interface{})
	if !ok || len(chars) != 2 {
		t.Fatalf("characters %v", body["characters"])
	}
	if body["pool_name"] != "Characters from "+path {
		t.Errorf("pool_name %v", body["pool_name"])
	}
}

func TestGetPoolFallsBackToDefault(t *testing.T) {
	body := getPool(t, NewHandler(NewPool(filepath.Join(t.TempDir(), "missing.txt"))))
	chars, ok := body["characters"].([]interface{})
	if !ok || len(chars) != len(database) {
		t.Fatalf("characters %v", body["characters"])
	}
	if body["pool_name"] != "Default Celebrity Pool" {
		t.Errorf("pool_name %v", body["pool_name"])
	}
}
