package mission

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Spec represents the structured input required to start an earning campaign.
type Spec struct {
	Objective      string   `json:"objective" yaml:"objective"`
	TargetEarnings float64  `json:"target_earnings" yaml:"target_earnings"`
	Cycles         int      `json:"cycles" yaml:"cycles"`
	Engines        []string `json:"engines" yaml:"engines"` // Glob patterns, empty means all
	Constraints    []string `json:"constraints" yaml:"constraints"`
}

// ValidationResult represents the outcome of a linting pass.
type ValidationResult struct {
	Valid    bool
	Warnings []string
	Errors   []string
}

// Planner provides the logic to load and validate mission specifications.
type Planner struct{}

func New() *Planner {
	return &Planner{}
}

// LoadSpec reads a mission specification from a file (JSON or YAML).
func (p *Planner) LoadSpec(path string) (*Spec, error) {
	data, err := os.ReadFile(path) // #nosec G304
	if err != nil {
		return nil, fmt.Errorf("failed to read mission file: %w", err)
	}

	var spec Spec
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".json":
		if err := json.Unmarshal(data, &spec); err != nil {
			return nil, fmt.Errorf("failed to unmarshal JSON mission: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &spec); err != nil {
			return nil, fmt.Errorf("failed to unmarshal YAML mission: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported mission format: %s (use .json or .yaml)", ext)
	}

	return &spec, nil
}

// Validate checks the Spec for completeness and quality.
func (p *Planner) Validate(spec Spec) ValidationResult {
	res := ValidationResult{
		Valid:    true,
		Warnings: []string{},
		Errors:   []string{},
	}

	if spec.Objective == "" {
		res.Valid = false
		res.Errors = append(res.Errors, "Objective is required")
	} else if len(spec.Objective) < 10 {
		res.Warnings = append(res.Warnings, "Objective is very short; consider adding more detail")
	}

	if spec.Cycles <= 0 {
		res.Valid = false
		res.Errors = append(res.Errors, "Cycles must be positive")
	} else if spec.Cycles > 1000 {
		res.Warnings = append(res.Warnings, "More than 1000 cycles; sessions this long rarely finish")
	}

	if spec.TargetEarnings < 0 {
		res.Valid = false
		res.Errors = append(res.Errors, "Target earnings cannot be negative")
	} else if spec.TargetEarnings == 0 {
		res.Warnings = append(res.Warnings, "No earnings target; the session will run all cycles")
	}

	if len(spec.Constraints) == 0 {
		res.Warnings = append(res.Warnings, "No constraints specified. Are there really no limits?")
	}

	return res
}

// Default returns a mission usable without a spec file.
func Default() Spec {
	return Spec{
		Objective:      "Maximize projected earnings across all engines",
		TargetEarnings: 0,
		Cycles:         10,
	}
}
