package handlers

import (
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"dualwell-tea/internal/api/models"
	"dualwell-tea/internal/config"

	"github.com/gin-gonic/gin"
	"gopkg.in/yaml.v3"
)

// ScenarioHandler handles scenario preset requests
type ScenarioHandler struct {
	scenarioDir string
}

// NewScenarioHandler creates a new scenario handler
func NewScenarioHandler() *ScenarioHandler {
	dir := defaultScenarioDir()
	log.Printf("ScenarioHandler: using scenario directory: %s", dir)
	return &ScenarioHandler{scenarioDir: dir}
}

// defaultScenarioDir resolves the preset directory: SCENARIO_DIR if set,
// otherwise examples/scenarios under the working directory.
func defaultScenarioDir() string {
	dir := os.Getenv("SCENARIO_DIR")
	if dir == "" {
		wd, err := os.Getwd()
		if err == nil {
			dir = filepath.Join(wd, "examples", "scenarios")
		} else {
			dir = "./examples/scenarios"
		}
	}
	if absDir, err := filepath.Abs(dir); err == nil {
		dir = absDir
	}
	return dir
}

// ListScenarios handles GET /api/v1/scenarios
func (h *ScenarioHandler) ListScenarios(c *gin.Context) {
	scenarios := []models.ScenarioInfo{}

	entries, err := os.ReadDir(h.scenarioDir)
	if err != nil {
		log.Printf("ScenarioHandler: failed to read scenario directory %s: %v", h.scenarioDir, err)
		c.JSON(http.StatusOK, gin.H{"scenarios": scenarios})
		return
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}

		path := filepath.Join(h.scenarioDir, entry.Name())
		info, err := h.loadScenarioInfo(path, entry.Name())
		if err != nil {
			log.Printf("ScenarioHandler: failed to load scenario file %s: %v", path, err)
			continue // Skip invalid files
		}

		scenarios = append(scenarios, *info)
	}

	c.JSON(http.StatusOK, gin.H{"scenarios": scenarios})
}

func (h *ScenarioHandler) loadScenarioInfo(path, filename string) (*models.ScenarioInfo, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var wrapper struct {
		Scenario config.ScenarioConfig `yaml:"scenario"`
	}
	if err := yaml.Unmarshal(raw, &wrapper); err != nil {
		return nil, err
	}

	// The filename without extension is the ID requests use in scenario_file.
	id := strings.TrimSuffix(filename, ".yaml")

	name := wrapper.Scenario.Name
	if name == "" {
		name = id
	}

	sc := wrapper.Scenario.WithDefaults()
	return &models.ScenarioInfo{
		ID:   id,
		Name: name,
		File: path,
		Specs: models.ScenarioSpecs{
			CostModel:             sc.CostModel,
			CapturedAndStoredMtpa: sc.CapturedAndStoredMtpa,
			ProjectLifeYears:      sc.ProjectLifeYears,
		},
	}, nil
}
