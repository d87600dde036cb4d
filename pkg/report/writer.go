package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/254carbon/graph-validator/pkg/logging"
)

const (
	// GraphFileName is the YAML graph artifact written into the output dir
	GraphFileName = "dependency-graph.yaml"
	// ViolationsFileName is the JSON violations report written next to it
	ViolationsFileName = "dependency-violations.json"
)

// Write persists both outputs into dir, fully overwriting any previous run.
// Single-writer model: one process, one run, no locking.
func Write(dir string, artifact *GraphArtifact, rep *Report) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output dir %s: %w", dir, err)
	}

	graphData, err := yaml.Marshal(artifact)
	if err != nil {
		return fmt.Errorf("marshaling graph artifact: %w", err)
	}
	graphPath := filepath.Join(dir, GraphFileName)
	if err := os.WriteFile(graphPath, graphData, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", graphPath, err)
	}
	logging.Info("saved dependency graph", "path", graphPath)

	reportData, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling violations report: %w", err)
	}
	reportPath := filepath.Join(dir, ViolationsFileName)
	if err := os.WriteFile(reportPath, reportData, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", reportPath, err)
	}
	logging.Info("saved violations report", "path", reportPath)

	return nil
}
